package utils

import "github.com/google/uuid"

// UUIDGenerator produces identifiers for trip records and saved cards.
type UUIDGenerator struct{}

// NewUUIDGenerator returns a ready-to-use [UUIDGenerator].
func NewUUIDGenerator() *UUIDGenerator {
	return &UUIDGenerator{}
}

// Generate returns a time-ordered UUID v7, so IDs sort by creation time in
// the local history. Falls back to a random v4 if v7 generation fails.
func (g *UUIDGenerator) Generate() string {
	v7, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}

	return v7.String()
}
