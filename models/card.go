package models

import "time"

// CardField is the result of encrypting a payment card number: a display form
// that keeps only the last four digits and the encrypted full number.
type CardField struct {
	// Masked is safe to show in the UI, e.g. "**** **** **** 1111".
	Masked string `json:"masked"`

	// Encrypted is the full card number as an encrypted field
	// ("<ivHex>:<ciphertextHex>").
	Encrypted string `json:"encrypted"`
}

// SavedCard is a payment card kept in the local store.
type SavedCard struct {
	ID         string
	HolderName string
	CardField
	CreatedAt time.Time
}
