// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package trip holds the lifecycle of the rider's current trip attempt.
//
// A [Holder] is an explicitly constructed, owned value: there is no
// package-level trip. Phases move idle → searching → driver_assigned →
// in_progress → completed, and Cancel resets to idle from any phase. Every
// other move is rejected with [ErrIllegalTransition].
package trip

import (
	"sync"
	"time"

	"github.com/MKhiriev/go-ride-keeper/internal/logger"
	"github.com/MKhiriev/go-ride-keeper/internal/utils"
	"github.com/MKhiriev/go-ride-keeper/models"
)

// IDGenerator produces identifiers for trip records.
type IDGenerator interface {
	Generate() string
}

// Holder is the in-memory trip state machine. It is safe for concurrent use.
type Holder struct {
	mu     sync.Mutex
	state  models.TripState
	record *models.TripRecord

	now    func() time.Time
	ids    IDGenerator
	logger *logger.Logger
}

// Option configures a [Holder].
type Option func(*Holder)

// WithClock replaces time.Now, mostly for tests.
func WithClock(now func() time.Time) Option {
	return func(h *Holder) {
		h.now = now
	}
}

// WithIDGenerator replaces the UUID v7 generator used for trip record IDs.
func WithIDGenerator(ids IDGenerator) Option {
	return func(h *Holder) {
		h.ids = ids
	}
}

// WithLogger attaches a logger; transitions are logged at debug level.
func WithLogger(l *logger.Logger) Option {
	return func(h *Holder) {
		h.logger = l
	}
}

// NewHolder returns a holder in the idle phase.
func NewHolder(opts ...Option) *Holder {
	h := &Holder{
		state:  initialState(),
		now:    time.Now,
		ids:    utils.NewUUIDGenerator(),
		logger: logger.Nop(),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

func initialState() models.TripState {
	return models.TripState{Phase: models.PhaseIdle}
}

// StartSearch begins a new trip attempt from origin to destination.
// Allowed from idle and completed; a completed trip is discarded.
func (h *Holder) StartSearch(origin, destination models.Location) error {
	if origin.IsZero() || destination.IsZero() {
		return ErrEmptyLocation
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	next, err := h.apply(EventStartSearch)
	if err != nil {
		return err
	}

	h.state = models.TripState{
		Phase:       next,
		Origin:      &origin,
		Destination: &destination,
	}
	h.record = nil
	return nil
}

// Quote sets the estimated fare shown to the rider before the trip starts.
func (h *Holder) Quote(estimatedFare float64) error {
	if estimatedFare < 0 {
		return ErrInvalidFare
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if _, err := h.apply(EventQuote); err != nil {
		return err
	}
	h.state.EstimatedFare = estimatedFare
	return nil
}

// AssignDriver records the driver who accepted the request. Requires the
// searching phase.
func (h *Holder) AssignDriver(driver models.Driver) error {
	if driver.IsZero() {
		return ErrEmptyDriver
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	next, err := h.apply(EventAssignDriver)
	if err != nil {
		return err
	}

	h.state.Phase = next
	h.state.Driver = &driver
	return nil
}

// StartTrip moves to in_progress, records the start time and snapshots the
// trip into a new record, which is returned.
func (h *Holder) StartTrip() (models.TripRecord, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	next, err := h.apply(EventStartTrip)
	if err != nil {
		return models.TripRecord{}, err
	}

	start := h.now()
	h.state.Phase = next
	h.state.StartTime = &start

	h.record = &models.TripRecord{
		ID:            h.ids.Generate(),
		Status:        models.RecordInProgress,
		Origin:        *h.state.Origin,
		Destination:   *h.state.Destination,
		Driver:        *h.state.Driver,
		EstimatedFare: h.state.EstimatedFare,
		StartedAt:     start,
	}
	return *h.record, nil
}

// EndTrip completes the running trip with the final fare and returns the
// completed record.
func (h *Holder) EndTrip(fareAmount float64) (models.TripRecord, error) {
	if fareAmount < 0 {
		return models.TripRecord{}, ErrInvalidFare
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	next, err := h.apply(EventEndTrip)
	if err != nil {
		return models.TripRecord{}, err
	}

	end := h.now()
	h.state.Phase = next
	h.state.EndTime = &end
	h.state.FinalFare = fareAmount

	h.record.Status = models.RecordCompleted
	h.record.FinalFare = fareAmount
	h.record.EndedAt = &end
	return *h.record, nil
}

// Cancel clears every field and returns the holder to idle. It never fails.
// When a trip had been started and not completed, the record is returned
// with status cancelled so the caller can keep it in history; otherwise ok is
// false.
func (h *Holder) Cancel() (cancelled models.TripRecord, ok bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	from := h.state.Phase
	if from == models.PhaseInProgress && h.record != nil {
		end := h.now()
		cancelled = *h.record
		cancelled.Status = models.RecordCancelled
		cancelled.EndedAt = &end
		ok = true
	}

	h.state = initialState()
	h.record = nil

	h.logger.Debug().
		Str("func", "Holder.Cancel").
		Str("from", from.String()).
		Bool("had_record", ok).
		Msg("trip cancelled")
	return cancelled, ok
}

// State returns a copy of the current trip state.
func (h *Holder) State() models.TripState {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.state.Clone()
}

// Phase returns the current phase.
func (h *Holder) Phase() models.Phase {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.state.Phase
}

// Record returns the snapshot taken by StartTrip, if the current attempt has one.
func (h *Holder) Record() (models.TripRecord, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.record == nil {
		return models.TripRecord{}, false
	}
	r := *h.record
	return r, true
}

// IsInTrip reports whether a trip attempt is active, i.e. the phase is
// neither idle nor completed.
func (h *Holder) IsInTrip() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return IsInTrip(h.state.Phase)
}

// IsInTrip reports whether phase belongs to an active trip attempt.
func IsInTrip(phase models.Phase) bool {
	return phase != models.PhaseIdle && phase != models.PhaseCompleted
}

// apply looks up the transition for event. Must be called with h.mu held.
func (h *Holder) apply(event Event) (models.Phase, error) {
	from := h.state.Phase
	next, err := Next(from, event)
	if err != nil {
		h.logger.Warn().
			Str("func", "Holder.apply").
			Str("event", string(event)).
			Str("from", from.String()).
			Msg("rejected trip transition")
		return from, err
	}

	h.logger.Debug().
		Str("func", "Holder.apply").
		Str("event", string(event)).
		Str("from", from.String()).
		Str("to", next.String()).
		Msg("trip transition")
	return next, nil
}
