package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-ride-keeper/internal/logger"
	"github.com/MKhiriev/go-ride-keeper/models"
)

// tripHistoryRepository is the SQL implementation of [TripHistoryRepository]
// over the "trips" table. It works unchanged on SQLite and Postgres.
type tripHistoryRepository struct {
	db     *DB
	logger *logger.Logger
}

// NewTripHistoryRepository constructs a [TripHistoryRepository] backed by db.
func NewTripHistoryRepository(db *DB, logger *logger.Logger) TripHistoryRepository {
	logger.Debug().Msg("creating trip history repository")
	return &tripHistoryRepository{
		db:     db,
		logger: logger,
	}
}

// SaveTrip inserts a new trip record. Timestamps are stored in UTC.
//
// Error handling:
//   - duplicate id → [ErrTripAlreadyExists].
//   - zero affected rows → [ErrNothingSaved].
func (r *tripHistoryRepository) SaveTrip(ctx context.Context, trip models.CipheredTrip) error {
	log := logger.FromContext(ctx)

	now := time.Now().UTC()
	if trip.CreatedAt.IsZero() {
		trip.CreatedAt = now
	}
	if trip.UpdatedAt.IsZero() {
		trip.UpdatedAt = trip.CreatedAt
	}

	res, err := r.db.execContext(ctx, saveTrip,
		trip.ID,
		string(trip.Status),
		string(trip.Origin),
		string(trip.Destination),
		string(trip.Driver),
		trip.EstimatedFare,
		trip.FinalFare,
		trip.StartedAt.UTC(),
		utcOrNil(trip.EndedAt),
		trip.CreatedAt.UTC(),
		trip.UpdatedAt.UTC(),
	)
	if err != nil {
		log.Err(err).
			Str("func", "tripHistoryRepository.SaveTrip").
			Str("trip_id", trip.ID).
			Msg("failed to insert trip")
		if uniqueViolation(err) {
			return ErrTripAlreadyExists
		}
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return ErrNothingSaved
	}

	return nil
}

// FinishTrip moves a running trip to its final status. Only rows still in
// progress are touched, so a trip cannot be finished twice.
func (r *tripHistoryRepository) FinishTrip(ctx context.Context, finish models.TripFinish) error {
	log := logger.FromContext(ctx)

	endedAt := finish.EndedAt.UTC()
	res, err := r.db.execContext(ctx, finishTrip,
		string(finish.Status),
		finish.FinalFare,
		endedAt,
		endedAt,
		finish.ID,
		string(models.RecordInProgress),
	)
	if err != nil {
		log.Err(err).
			Str("func", "tripHistoryRepository.FinishTrip").
			Str("trip_id", finish.ID).
			Msg("failed to update trip")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: %s is not in progress", ErrTripNotFound, finish.ID)
	}

	return nil
}

// GetTrip returns the trip with the given id or [ErrTripNotFound].
func (r *tripHistoryRepository) GetTrip(ctx context.Context, id string) (models.CipheredTrip, error) {
	log := logger.FromContext(ctx)

	trip, err := scanTrip(r.db.QueryRowContext(ctx, getTrip, id))
	if errors.Is(err, sql.ErrNoRows) {
		return models.CipheredTrip{}, ErrTripNotFound
	}
	if err != nil {
		log.Err(err).
			Str("func", "tripHistoryRepository.GetTrip").
			Str("trip_id", id).
			Msg("failed to scan trip row")
		return models.CipheredTrip{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return trip, nil
}

// ListTrips returns the trips matching filter, newest first.
func (r *tripHistoryRepository) ListTrips(ctx context.Context, filter models.HistoryFilter) ([]models.CipheredTrip, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildListTripsQuery(filter)
	if err != nil {
		log.Err(err).
			Str("func", "tripHistoryRepository.ListTrips").
			Msg("failed to create query")
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "tripHistoryRepository.ListTrips").
			Str("status", string(filter.Status)).
			Msg("failed to execute query for listing trips")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	trips := make([]models.CipheredTrip, 0, 16)
	for rows.Next() {
		trip, scanErr := scanTrip(rows)
		if scanErr != nil {
			log.Err(scanErr).
				Str("func", "tripHistoryRepository.ListTrips").
				Msg("failed to scan trip row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}
		trips = append(trips, trip)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		log.Err(rowsErr).
			Str("func", "tripHistoryRepository.ListTrips").
			Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, rowsErr)
	}

	return trips, nil
}

// DeleteFinishedBefore removes completed and cancelled trips that ended
// before the given time and reports how many rows went away. Running trips
// are never removed.
func (r *tripHistoryRepository) DeleteFinishedBefore(ctx context.Context, before time.Time) (int64, error) {
	log := logger.FromContext(ctx)

	res, err := r.db.execContext(ctx, deleteFinishedTripsBefore,
		string(models.RecordCompleted),
		string(models.RecordCancelled),
		before.UTC(),
	)
	if err != nil {
		log.Err(err).
			Str("func", "tripHistoryRepository.DeleteFinishedBefore").
			Time("before", before).
			Msg("failed to delete finished trips")
		return 0, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	deleted, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return deleted, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTrip(row rowScanner) (models.CipheredTrip, error) {
	var (
		trip    models.CipheredTrip
		status  string
		origin  string
		dest    string
		driver  string
		endedAt sql.NullTime
	)

	err := row.Scan(
		&trip.ID,
		&status,
		&origin,
		&dest,
		&driver,
		&trip.EstimatedFare,
		&trip.FinalFare,
		&trip.StartedAt,
		&endedAt,
		&trip.CreatedAt,
		&trip.UpdatedAt,
	)
	if err != nil {
		return models.CipheredTrip{}, err
	}

	trip.Status = models.RecordStatus(status)
	trip.Origin = models.CipheredLocation(origin)
	trip.Destination = models.CipheredLocation(dest)
	trip.Driver = models.CipheredDriver(driver)
	if endedAt.Valid {
		t := endedAt.Time
		trip.EndedAt = &t
	}

	return trip, nil
}

func utcOrNil(t *time.Time) any {
	if t == nil {
		return nil
	}
	return t.UTC()
}
