package store

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-ride-keeper/internal/logger"
	"github.com/MKhiriev/go-ride-keeper/models"
)

func newMockDB(t *testing.T) (*DB, sqlmock.Sqlmock) {
	t.Helper()
	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	return &DB{
		DB:                 conn,
		logger:             logger.Nop(),
		errorClassificator: NewPostgresErrorClassifier(),
	}, mock
}

func pgError(code string) error {
	return &pgconn.PgError{Code: code}
}

var (
	tripStart = time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	tripEnd   = tripStart.Add(25 * time.Minute)
)

func sampleTrip(id string) models.CipheredTrip {
	return models.CipheredTrip{
		ID:            id,
		Status:        models.RecordInProgress,
		Origin:        "00aa:11bb",
		Destination:   "22cc:33dd",
		Driver:        "44ee:55ff",
		EstimatedFare: 21,
		StartedAt:     tripStart,
		CreatedAt:     tripStart,
		UpdatedAt:     tripStart,
	}
}

var tripRowColumns = []string{
	"id", "status", "origin", "destination", "driver",
	"estimated_fare", "final_fare", "started_at", "ended_at", "created_at", "updated_at",
}
