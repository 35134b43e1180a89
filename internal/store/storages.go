package store

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-ride-keeper/internal/config"
	"github.com/MKhiriev/go-ride-keeper/internal/logger"
)

type Storages struct {
	TripHistoryRepository TripHistoryRepository
	CardRepository        CardRepository

	db *DB
}

// NewStorages wires the repositories over an already migrated db.
func NewStorages(db *DB, log *logger.Logger) *Storages {
	return &Storages{
		TripHistoryRepository: NewTripHistoryRepository(db, log),
		CardRepository:        NewCardRepository(db, log),
		db:                    db,
	}
}

// NewLocalStorages connects to cfg.DSN, applies migrations and returns the
// repositories on top of it.
func NewLocalStorages(ctx context.Context, cfg config.DB, log *logger.Logger) (*Storages, error) {
	db, err := NewConnect(ctx, cfg, log)
	if err != nil {
		return nil, err
	}

	if err = db.Migrate(); err != nil {
		log.Err(err).Str("func", "NewLocalStorages").Msg("error applying migrations")
		db.Close()
		return nil, fmt.Errorf("error applying migrations: %w", err)
	}

	return NewStorages(db, log), nil
}

// Close releases the underlying connection pool.
func (s *Storages) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}
