package models

import "time"

type (
	// CipheredLocation is a JSON-encoded [Location] wrapped by the field
	// cipher. The database never sees the plain address or coordinates.
	CipheredLocation string
	// CipheredDriver is a JSON-encoded [Driver] wrapped by the field cipher.
	CipheredDriver string
)

// CipheredTrip is the storage form of a [TripRecord]: everything that could
// identify the rider or the driver is encrypted, while status, fares and
// timestamps stay in clear so the history can be filtered and pruned.
type CipheredTrip struct {
	ID            string
	Status        RecordStatus
	Origin        CipheredLocation
	Destination   CipheredLocation
	Driver        CipheredDriver
	EstimatedFare float64
	FinalFare     float64
	StartedAt     time.Time
	EndedAt       *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// TripFinish carries the columns that change when a trip stops running.
type TripFinish struct {
	ID        string
	Status    RecordStatus
	FinalFare float64
	EndedAt   time.Time
}
