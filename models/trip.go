// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// Phase is one of the discrete states of a trip attempt.
type Phase string

const (
	// PhaseIdle is the initial phase: no trip attempt is active.
	PhaseIdle Phase = "idle"
	// PhaseSearching means the rider requested a ride and a driver is being looked for.
	PhaseSearching Phase = "searching"
	// PhaseDriverAssigned means a driver accepted the request and is on the way.
	PhaseDriverAssigned Phase = "driver_assigned"
	// PhaseInProgress means the rider is in the car.
	PhaseInProgress Phase = "in_progress"
	// PhaseCompleted means the trip ended and the final fare is known.
	PhaseCompleted Phase = "completed"
)

// String implements [fmt.Stringer].
func (p Phase) String() string {
	return string(p)
}

// Location describes a pickup or drop-off point.
type Location struct {
	Latitude  float64 `json:"lat"`
	Longitude float64 `json:"lng"`
	Address   string  `json:"address,omitempty"`
}

// IsZero reports whether l carries neither coordinates nor an address.
func (l Location) IsZero() bool {
	return l.Address == "" && l.Latitude == 0 && l.Longitude == 0
}

// Driver describes the driver assigned to a trip.
type Driver struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Phone        string  `json:"phone,omitempty"`
	VehiclePlate string  `json:"vehicle_plate,omitempty"`
	VehicleModel string  `json:"vehicle_model,omitempty"`
	Rating       float64 `json:"rating,omitempty"`
}

// IsZero reports whether d identifies no driver at all.
func (d Driver) IsZero() bool {
	return d.ID == "" && d.Name == ""
}

// TripState is the in-memory state of the current trip attempt.
//
// Origin and Destination are set when the search starts. Driver is non-nil
// from the driver_assigned phase onwards. StartTime and EndTime are filled in
// by the in_progress and completed transitions respectively. The zero value
// (with Phase set to [PhaseIdle]) is the initial state.
type TripState struct {
	Phase         Phase
	Origin        *Location
	Destination   *Location
	Driver        *Driver
	EstimatedFare float64
	FinalFare     float64
	StartTime     *time.Time
	EndTime       *time.Time
}

// Clone returns a deep copy of s so callers cannot mutate the holder's state
// through the returned pointers.
func (s TripState) Clone() TripState {
	out := s
	if s.Origin != nil {
		o := *s.Origin
		out.Origin = &o
	}
	if s.Destination != nil {
		d := *s.Destination
		out.Destination = &d
	}
	if s.Driver != nil {
		d := *s.Driver
		out.Driver = &d
	}
	if s.StartTime != nil {
		t := *s.StartTime
		out.StartTime = &t
	}
	if s.EndTime != nil {
		t := *s.EndTime
		out.EndTime = &t
	}
	return out
}

// RecordStatus is the status of a trip in the local history.
type RecordStatus string

const (
	RecordInProgress RecordStatus = "in_progress"
	RecordCompleted  RecordStatus = "completed"
	RecordCancelled  RecordStatus = "cancelled"
)

// IsFinished reports whether the record will not change anymore.
func (s RecordStatus) IsFinished() bool {
	return s == RecordCompleted || s == RecordCancelled
}

// TripRecord is the snapshot of a trip taken when it starts, updated when it
// ends or is cancelled. It is what the local trip history stores.
type TripRecord struct {
	ID            string
	Status        RecordStatus
	Origin        Location
	Destination   Location
	Driver        Driver
	EstimatedFare float64
	FinalFare     float64
	StartedAt     time.Time
	EndedAt       *time.Time
}

// Duration returns how long the trip lasted, or zero while it is still running.
func (r TripRecord) Duration() time.Duration {
	if r.EndedAt == nil {
		return 0
	}
	return r.EndedAt.Sub(r.StartedAt)
}

// HistoryFilter narrows a trip history listing. Zero fields are ignored.
type HistoryFilter struct {
	Status RecordStatus
	Since  time.Time
	Limit  uint64
}
