package store

import (
	"context"
	"time"

	"github.com/MKhiriev/go-ride-keeper/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// TripHistoryRepository keeps the local trip history. Rows hold
// [models.CipheredTrip] values: the repository never sees plain locations or
// driver details.
type TripHistoryRepository interface {
	SaveTrip(ctx context.Context, trip models.CipheredTrip) error
	FinishTrip(ctx context.Context, finish models.TripFinish) error
	GetTrip(ctx context.Context, id string) (models.CipheredTrip, error)
	ListTrips(ctx context.Context, filter models.HistoryFilter) ([]models.CipheredTrip, error)
	DeleteFinishedBefore(ctx context.Context, before time.Time) (int64, error)
}

// CardRepository keeps payment cards encrypted by the field cipher.
type CardRepository interface {
	SaveCard(ctx context.Context, card models.SavedCard) error
	GetCard(ctx context.Context, id string) (models.SavedCard, error)
	ListCards(ctx context.Context) ([]models.SavedCard, error)
	DeleteCard(ctx context.Context, id string) error
}

// ErrorClassificator decides whether a failed database call is worth
// repeating.
type ErrorClassificator interface {
	Classify(err error) ErrorClassification
}
