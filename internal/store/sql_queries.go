// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-ride-keeper/models"
)

// Both dialects accept $N placeholders, so the statements are shared.
const (
	saveTrip = `
		INSERT INTO trips (
			id,
			status,
			origin,
			destination,
			driver,
			estimated_fare,
			final_fare,
			started_at,
			ended_at,
			created_at,
			updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);`

	finishTrip = `
		UPDATE trips
		SET status = $1, final_fare = $2, ended_at = $3, updated_at = $4
		WHERE id = $5 AND status = $6;`

	getTrip = `
		SELECT
			id,
			status,
			origin,
			destination,
			driver,
			estimated_fare,
			final_fare,
			started_at,
			ended_at,
			created_at,
			updated_at
		FROM trips
		WHERE id = $1;`

	deleteFinishedTripsBefore = `
		DELETE FROM trips
		WHERE status IN ($1, $2) AND ended_at < $3;`

	saveCard = `
		INSERT INTO payment_cards (id, holder_name, masked, encrypted, created_at)
		VALUES ($1, $2, $3, $4, $5);`

	getCard = `
		SELECT id, holder_name, masked, encrypted, created_at
		FROM payment_cards
		WHERE id = $1;`

	listCards = `
		SELECT id, holder_name, masked, encrypted, created_at
		FROM payment_cards
		ORDER BY created_at DESC, id DESC;`

	deleteCard = `
		DELETE FROM payment_cards
		WHERE id = $1;`
)

var tripColumns = []string{
	"id",
	"status",
	"origin",
	"destination",
	"driver",
	"estimated_fare",
	"final_fare",
	"started_at",
	"ended_at",
	"created_at",
	"updated_at",
}

// buildListTripsQuery builds the history listing for filter. Newest trips
// come first; zero filter fields add no condition.
func buildListTripsQuery(filter models.HistoryFilter) (string, []any, error) {
	query := sq.Select(tripColumns...).
		From("trips").
		PlaceholderFormat(sq.Dollar).
		OrderBy("started_at DESC", "id DESC")

	if filter.Status != "" {
		query = query.Where(sq.Eq{"status": string(filter.Status)})
	}
	if !filter.Since.IsZero() {
		query = query.Where(sq.GtOrEq{"started_at": filter.Since.UTC()})
	}
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}

	return query.ToSql()
}
