package service

import (
	"context"
	"time"

	"github.com/MKhiriev/go-ride-keeper/models"
)

// TripService drives the rider's current trip and keeps its history.
//
// Phase changes are delegated to a trip holder; whenever a trip starts, ends
// or is cancelled while running, the record is mirrored into the local
// history with locations and driver details encrypted.
type TripService interface {
	// StartSearch begins a new trip attempt. Allowed while idle or after a
	// completed trip.
	StartSearch(ctx context.Context, origin, destination models.Location) error

	// Quote sets the estimated fare before the trip starts.
	Quote(ctx context.Context, estimatedFare float64) error

	// AssignDriver records the driver who accepted the request.
	AssignDriver(ctx context.Context, driver models.Driver) error

	// StartTrip moves to in_progress and saves a new history record. When
	// saving fails the trip is still running and the returned error wraps
	// [ErrHistoryNotSaved].
	StartTrip(ctx context.Context) (models.TripRecord, error)

	// EndTrip completes the running trip with the final fare and marks the
	// history record completed.
	EndTrip(ctx context.Context, fareAmount float64) (models.TripRecord, error)

	// Cancel resets the trip to idle. If a trip was running, its history
	// record is marked cancelled and returned with ok set.
	Cancel(ctx context.Context) (record models.TripRecord, ok bool, err error)

	// State returns a copy of the current trip state.
	State() models.TripState

	// IsInTrip reports whether a trip attempt is active.
	IsInTrip() bool

	// History returns decrypted trip records matching filter, newest first.
	History(ctx context.Context, filter models.HistoryFilter) ([]models.TripRecord, error)

	// GetTrip returns one decrypted history record.
	GetTrip(ctx context.Context, id string) (models.TripRecord, error)

	// PruneHistory deletes finished trips that ended more than retention ago
	// and returns how many were removed.
	PruneHistory(ctx context.Context, retention time.Duration) (int64, error)
}

// CardService keeps the rider's payment cards. Full numbers only ever leave
// the service through RevealCard.
type CardService interface {
	SaveCard(ctx context.Context, holderName, cardNumber string) (models.SavedCard, error)
	ListCards(ctx context.Context) ([]models.SavedCard, error)
	RevealCard(ctx context.Context, id string) (string, error)
	DeleteCard(ctx context.Context, id string) error
}

// AppInfoService exposes version and build metadata.
type AppInfoService interface {
	GetAppVersion(ctx context.Context) string
	GetBuildInfo(ctx context.Context) models.AppBuildInfo
}
