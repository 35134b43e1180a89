package service

import "errors"

var (
	// ErrHistoryNotSaved is returned when the trip itself moved on but its
	// history record could not be written.
	ErrHistoryNotSaved = errors.New("trip history was not saved")

	// ErrCorruptedRecord is returned when a stored record cannot be
	// decrypted or decoded.
	ErrCorruptedRecord = errors.New("stored record is corrupted")

	ErrInvalidDataProvided = errors.New("invalid data provided")
)
