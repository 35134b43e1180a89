// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package trip

import (
	"fmt"

	"github.com/MKhiriev/go-ride-keeper/models"
)

// Event is an operation that may move the holder to another phase.
type Event string

const (
	EventStartSearch  Event = "start_search"
	EventQuote        Event = "quote"
	EventAssignDriver Event = "assign_driver"
	EventStartTrip    Event = "start_trip"
	EventEndTrip      Event = "end_trip"
	EventCancel       Event = "cancel"
)

// transitions lists, per source phase, every event accepted in that phase and
// the phase it leads to. Cancel is accepted from every phase.
var transitions = map[models.Phase]map[Event]models.Phase{
	models.PhaseIdle: {
		EventStartSearch: models.PhaseSearching,
		EventCancel:      models.PhaseIdle,
	},
	models.PhaseSearching: {
		EventQuote:        models.PhaseSearching,
		EventAssignDriver: models.PhaseDriverAssigned,
		EventCancel:       models.PhaseIdle,
	},
	models.PhaseDriverAssigned: {
		EventQuote:     models.PhaseDriverAssigned,
		EventStartTrip: models.PhaseInProgress,
		EventCancel:    models.PhaseIdle,
	},
	models.PhaseInProgress: {
		EventEndTrip: models.PhaseCompleted,
		EventCancel:  models.PhaseIdle,
	},
	models.PhaseCompleted: {
		EventStartSearch: models.PhaseSearching,
		EventCancel:      models.PhaseIdle,
	},
}

// Next returns the phase reached by applying event in phase from. The error
// wraps [ErrIllegalTransition] when the table has no such edge.
func Next(from models.Phase, event Event) (models.Phase, error) {
	to, ok := transitions[from][event]
	if !ok {
		return from, fmt.Errorf("%w: cannot %s while %s", ErrIllegalTransition, event, from)
	}
	return to, nil
}

// CanApply reports whether event is accepted in phase from.
func CanApply(from models.Phase, event Event) bool {
	_, ok := transitions[from][event]
	return ok
}
