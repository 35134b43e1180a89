package crypto

import "errors"

var (
	// ErrDecryptionFailed is the single failure kind of [FieldCipher.Decrypt]:
	// malformed input, wrong key and corrupted ciphertext all map to it.
	ErrDecryptionFailed = errors.New("decryption failed")

	// ErrInvalidKey is returned when a field key is not exactly 32 bytes.
	ErrInvalidKey = errors.New("field key must be 32 bytes")

	// ErrInvalidCardNumber is returned by EncryptCard for anything that is
	// not 12 to 19 digits once spaces and dashes are removed.
	ErrInvalidCardNumber = errors.New("invalid card number")
)
