package crypto

import "github.com/MKhiriev/go-ride-keeper/models"

//go:generate mockgen -source=interfaces.go -destination=../mock/field_cipher_mock.go -package=mock

// FieldCipher encrypts individual sensitive fields (phone numbers, addresses,
// card numbers) before they are stored or transmitted. It knows nothing about
// storage or the network.
//
// Wire format of an encrypted field:
//
//	hex(iv) ":" hex(ciphertext ‖ tag)
//
// where iv is 16 random bytes, ciphertext is AES-256-CBC with PKCS#7 padding
// and tag is HMAC-SHA256 over iv ‖ ciphertext.
type FieldCipher interface {
	// Encrypt wraps plaintext into an encrypted field. An empty plaintext is
	// a valid "no value" and is returned as "" without error.
	Encrypt(plaintext string) (string, error)

	// EncryptOptional is Encrypt for nullable fields: nil in, nil out.
	EncryptOptional(plaintext *string) (*string, error)

	// Decrypt unwraps a field produced by Encrypt. Any malformed, tampered or
	// foreign-key input yields ("", ErrDecryptionFailed); partial plaintext is
	// never returned. An empty payload is returned as "" without error.
	Decrypt(payload string) (string, error)

	// EncryptCard normalises a card number, masks all but the last four
	// digits and encrypts the full number.
	EncryptCard(cardNumber string) (models.CardField, error)
}
