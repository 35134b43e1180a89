package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/MKhiriev/go-ride-keeper/internal/crypto"
	"github.com/MKhiriev/go-ride-keeper/internal/logger"
	"github.com/MKhiriev/go-ride-keeper/internal/store"
	"github.com/MKhiriev/go-ride-keeper/internal/trip"
	"github.com/MKhiriev/go-ride-keeper/models"
)

type tripService struct {
	holder  *trip.Holder
	history store.TripHistoryRepository
	cipher  crypto.FieldCipher

	now    func() time.Time
	logger *logger.Logger
}

func NewTripService(holder *trip.Holder, storages *store.Storages, cipher crypto.FieldCipher, logger *logger.Logger) TripService {
	return &tripService{
		holder:  holder,
		history: storages.TripHistoryRepository,
		cipher:  cipher,
		now:     time.Now,
		logger:  logger,
	}
}

func (s *tripService) StartSearch(ctx context.Context, origin, destination models.Location) error {
	return s.holder.StartSearch(origin, destination)
}

func (s *tripService) Quote(ctx context.Context, estimatedFare float64) error {
	return s.holder.Quote(estimatedFare)
}

func (s *tripService) AssignDriver(ctx context.Context, driver models.Driver) error {
	return s.holder.AssignDriver(driver)
}

func (s *tripService) StartTrip(ctx context.Context) (models.TripRecord, error) {
	record, err := s.holder.StartTrip()
	if err != nil {
		return models.TripRecord{}, err
	}

	sealed, err := s.sealTrip(record)
	if err != nil {
		return record, fmt.Errorf("%w: %w", ErrHistoryNotSaved, err)
	}

	if err = s.history.SaveTrip(ctx, sealed); err != nil {
		s.logger.Err(err).
			Str("func", "tripService.StartTrip").
			Str("trip_id", record.ID).
			Msg("trip started but history record was not saved")
		return record, fmt.Errorf("%w: %w", ErrHistoryNotSaved, err)
	}

	s.logger.Info().
		Str("func", "tripService.StartTrip").
		Str("trip_id", record.ID).
		Msg("trip started")
	return record, nil
}

func (s *tripService) EndTrip(ctx context.Context, fareAmount float64) (models.TripRecord, error) {
	record, err := s.holder.EndTrip(fareAmount)
	if err != nil {
		return models.TripRecord{}, err
	}

	if err = s.finish(ctx, record); err != nil {
		return record, err
	}

	s.logger.Info().
		Str("func", "tripService.EndTrip").
		Str("trip_id", record.ID).
		Float64("final_fare", record.FinalFare).
		Dur("duration", record.Duration()).
		Msg("trip completed")
	return record, nil
}

func (s *tripService) Cancel(ctx context.Context) (models.TripRecord, bool, error) {
	record, ok := s.holder.Cancel()
	if !ok {
		return models.TripRecord{}, false, nil
	}

	if err := s.finish(ctx, record); err != nil {
		return record, true, err
	}

	s.logger.Info().
		Str("func", "tripService.Cancel").
		Str("trip_id", record.ID).
		Msg("running trip cancelled")
	return record, true, nil
}

func (s *tripService) State() models.TripState {
	return s.holder.State()
}

func (s *tripService) IsInTrip() bool {
	return s.holder.IsInTrip()
}

func (s *tripService) History(ctx context.Context, filter models.HistoryFilter) ([]models.TripRecord, error) {
	sealed, err := s.history.ListTrips(ctx, filter)
	if err != nil {
		return nil, err
	}

	records := make([]models.TripRecord, 0, len(sealed))
	for _, item := range sealed {
		record, err := s.openTrip(item)
		if err != nil {
			s.logger.Err(err).
				Str("func", "tripService.History").
				Str("trip_id", item.ID).
				Msg("failed to open history record")
			return nil, err
		}
		records = append(records, record)
	}

	return records, nil
}

func (s *tripService) GetTrip(ctx context.Context, id string) (models.TripRecord, error) {
	sealed, err := s.history.GetTrip(ctx, id)
	if err != nil {
		return models.TripRecord{}, err
	}
	return s.openTrip(sealed)
}

func (s *tripService) PruneHistory(ctx context.Context, retention time.Duration) (int64, error) {
	if retention < 0 {
		return 0, fmt.Errorf("%w: negative retention %s", ErrInvalidDataProvided, retention)
	}

	cutoff := s.now().Add(-retention)
	deleted, err := s.history.DeleteFinishedBefore(ctx, cutoff)
	if err != nil {
		return 0, err
	}

	s.logger.Debug().
		Str("func", "tripService.PruneHistory").
		Time("cutoff", cutoff).
		Int64("deleted", deleted).
		Msg("trip history pruned")
	return deleted, nil
}

func (s *tripService) finish(ctx context.Context, record models.TripRecord) error {
	err := s.history.FinishTrip(ctx, models.TripFinish{
		ID:        record.ID,
		Status:    record.Status,
		FinalFare: record.FinalFare,
		EndedAt:   *record.EndedAt,
	})
	if err != nil {
		s.logger.Err(err).
			Str("func", "tripService.finish").
			Str("trip_id", record.ID).
			Str("status", string(record.Status)).
			Msg("history record was not updated")
		return fmt.Errorf("%w: %w", ErrHistoryNotSaved, err)
	}
	return nil
}

// sealTrip encrypts the parts of record that identify people or places.
func (s *tripService) sealTrip(record models.TripRecord) (models.CipheredTrip, error) {
	origin, err := s.sealJSON(record.Origin)
	if err != nil {
		return models.CipheredTrip{}, fmt.Errorf("encrypt origin: %w", err)
	}
	destination, err := s.sealJSON(record.Destination)
	if err != nil {
		return models.CipheredTrip{}, fmt.Errorf("encrypt destination: %w", err)
	}
	driver, err := s.sealJSON(record.Driver)
	if err != nil {
		return models.CipheredTrip{}, fmt.Errorf("encrypt driver: %w", err)
	}

	return models.CipheredTrip{
		ID:            record.ID,
		Status:        record.Status,
		Origin:        models.CipheredLocation(origin),
		Destination:   models.CipheredLocation(destination),
		Driver:        models.CipheredDriver(driver),
		EstimatedFare: record.EstimatedFare,
		FinalFare:     record.FinalFare,
		StartedAt:     record.StartedAt,
		EndedAt:       record.EndedAt,
	}, nil
}

func (s *tripService) openTrip(sealed models.CipheredTrip) (models.TripRecord, error) {
	record := models.TripRecord{
		ID:            sealed.ID,
		Status:        sealed.Status,
		EstimatedFare: sealed.EstimatedFare,
		FinalFare:     sealed.FinalFare,
		StartedAt:     sealed.StartedAt,
		EndedAt:       sealed.EndedAt,
	}

	if err := s.openJSON(string(sealed.Origin), &record.Origin); err != nil {
		return models.TripRecord{}, fmt.Errorf("%w: origin of %s: %w", ErrCorruptedRecord, sealed.ID, err)
	}
	if err := s.openJSON(string(sealed.Destination), &record.Destination); err != nil {
		return models.TripRecord{}, fmt.Errorf("%w: destination of %s: %w", ErrCorruptedRecord, sealed.ID, err)
	}
	if err := s.openJSON(string(sealed.Driver), &record.Driver); err != nil {
		return models.TripRecord{}, fmt.Errorf("%w: driver of %s: %w", ErrCorruptedRecord, sealed.ID, err)
	}

	return record, nil
}

func (s *tripService) sealJSON(v any) (string, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return s.cipher.Encrypt(string(raw))
}

func (s *tripService) openJSON(payload string, v any) error {
	raw, err := s.cipher.Decrypt(payload)
	if err != nil {
		return err
	}
	return json.Unmarshal([]byte(raw), v)
}
