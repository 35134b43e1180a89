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

type cardRepository struct {
	db     *DB
	logger *logger.Logger
}

// NewCardRepository constructs a [CardRepository] backed by db.
func NewCardRepository(db *DB, logger *logger.Logger) CardRepository {
	logger.Debug().Msg("creating card repository")
	return &cardRepository{
		db:     db,
		logger: logger,
	}
}

func (r *cardRepository) SaveCard(ctx context.Context, card models.SavedCard) error {
	log := logger.FromContext(ctx)

	if card.CreatedAt.IsZero() {
		card.CreatedAt = time.Now()
	}

	res, err := r.db.execContext(ctx, saveCard,
		card.ID,
		card.HolderName,
		card.Masked,
		card.Encrypted,
		card.CreatedAt.UTC(),
	)
	if err != nil {
		log.Err(err).
			Str("func", "cardRepository.SaveCard").
			Str("card_id", card.ID).
			Msg("failed to insert card")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return ErrNothingSaved
	}

	return nil
}

func (r *cardRepository) GetCard(ctx context.Context, id string) (models.SavedCard, error) {
	log := logger.FromContext(ctx)

	card, err := scanCard(r.db.QueryRowContext(ctx, getCard, id))
	if errors.Is(err, sql.ErrNoRows) {
		return models.SavedCard{}, ErrCardNotFound
	}
	if err != nil {
		log.Err(err).
			Str("func", "cardRepository.GetCard").
			Str("card_id", id).
			Msg("failed to scan card row")
		return models.SavedCard{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return card, nil
}

func (r *cardRepository) ListCards(ctx context.Context) ([]models.SavedCard, error) {
	log := logger.FromContext(ctx)

	rows, err := r.db.QueryContext(ctx, listCards)
	if err != nil {
		log.Err(err).
			Str("func", "cardRepository.ListCards").
			Msg("failed to execute query for listing cards")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	cards := make([]models.SavedCard, 0, 4)
	for rows.Next() {
		card, scanErr := scanCard(rows)
		if scanErr != nil {
			log.Err(scanErr).
				Str("func", "cardRepository.ListCards").
				Msg("failed to scan card row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}
		cards = append(cards, card)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, rowsErr)
	}

	return cards, nil
}

func (r *cardRepository) DeleteCard(ctx context.Context, id string) error {
	log := logger.FromContext(ctx)

	res, err := r.db.execContext(ctx, deleteCard, id)
	if err != nil {
		log.Err(err).
			Str("func", "cardRepository.DeleteCard").
			Str("card_id", id).
			Msg("failed to delete card")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if affected == 0 {
		return ErrCardNotFound
	}

	return nil
}

func scanCard(row rowScanner) (models.SavedCard, error) {
	var card models.SavedCard
	err := row.Scan(
		&card.ID,
		&card.HolderName,
		&card.Masked,
		&card.Encrypted,
		&card.CreatedAt,
	)
	return card, err
}
