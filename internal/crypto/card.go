package crypto

import (
	"strings"

	"github.com/MKhiriev/go-ride-keeper/models"
)

const (
	minCardDigits = 12
	maxCardDigits = 19
	maskPrefix    = "**** **** **** "
)

// EncryptCard implements [FieldCipher].
func (c *fieldCipher) EncryptCard(cardNumber string) (models.CardField, error) {
	digits, err := NormalizeCardNumber(cardNumber)
	if err != nil {
		return models.CardField{}, err
	}

	encrypted, err := c.Encrypt(digits)
	if err != nil {
		return models.CardField{}, err
	}

	return models.CardField{
		Masked:    MaskCardNumber(digits),
		Encrypted: encrypted,
	}, nil
}

// NormalizeCardNumber drops spaces and dashes and checks that what remains
// is 12 to 19 digits.
func NormalizeCardNumber(cardNumber string) (string, error) {
	digits := strings.Map(func(r rune) rune {
		if r == ' ' || r == '-' {
			return -1
		}
		return r
	}, cardNumber)

	if len(digits) < minCardDigits || len(digits) > maxCardDigits {
		return "", ErrInvalidCardNumber
	}
	for _, r := range digits {
		if r < '0' || r > '9' {
			return "", ErrInvalidCardNumber
		}
	}
	return digits, nil
}

// MaskCardNumber keeps the last four digits of a normalised card number.
func MaskCardNumber(digits string) string {
	if len(digits) < 4 {
		return maskPrefix + digits
	}
	return maskPrefix + digits[len(digits)-4:]
}
