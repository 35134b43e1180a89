package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/MKhiriev/go-ride-keeper/internal/crypto"
	"github.com/MKhiriev/go-ride-keeper/internal/logger"
	"github.com/MKhiriev/go-ride-keeper/internal/store"
	"github.com/MKhiriev/go-ride-keeper/internal/trip"
	"github.com/MKhiriev/go-ride-keeper/models"
)

type cardService struct {
	cards  store.CardRepository
	cipher crypto.FieldCipher
	ids    trip.IDGenerator

	now    func() time.Time
	logger *logger.Logger
}

func NewCardService(storages *store.Storages, cipher crypto.FieldCipher, ids trip.IDGenerator, logger *logger.Logger) CardService {
	return &cardService{
		cards:  storages.CardRepository,
		cipher: cipher,
		ids:    ids,
		now:    time.Now,
		logger: logger,
	}
}

// SaveCard encrypts cardNumber and stores it together with its masked form.
func (s *cardService) SaveCard(ctx context.Context, holderName, cardNumber string) (models.SavedCard, error) {
	field, err := s.cipher.EncryptCard(cardNumber)
	if err != nil {
		return models.SavedCard{}, fmt.Errorf("encrypt card: %w", err)
	}

	card := models.SavedCard{
		ID:         s.ids.Generate(),
		HolderName: strings.TrimSpace(holderName),
		CardField:  field,
		CreatedAt:  s.now().UTC(),
	}

	if err = s.cards.SaveCard(ctx, card); err != nil {
		s.logger.Err(err).
			Str("func", "cardService.SaveCard").
			Str("masked", card.Masked).
			Msg("failed to save card")
		return models.SavedCard{}, err
	}

	return card, nil
}

func (s *cardService) ListCards(ctx context.Context) ([]models.SavedCard, error) {
	return s.cards.ListCards(ctx)
}

// RevealCard decrypts the full number of a saved card.
func (s *cardService) RevealCard(ctx context.Context, id string) (string, error) {
	card, err := s.cards.GetCard(ctx, id)
	if err != nil {
		return "", err
	}

	number, err := s.cipher.Decrypt(card.Encrypted)
	if err != nil {
		s.logger.Err(err).
			Str("func", "cardService.RevealCard").
			Str("card_id", id).
			Msg("failed to decrypt card")
		return "", fmt.Errorf("%w: card %s: %w", ErrCorruptedRecord, id, err)
	}

	return number, nil
}

func (s *cardService) DeleteCard(ctx context.Context, id string) error {
	return s.cards.DeleteCard(ctx, id)
}
