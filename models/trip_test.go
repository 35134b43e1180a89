package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLocation_IsZero(t *testing.T) {
	assert.True(t, Location{}.IsZero())
	assert.False(t, Location{Address: "Main St 1"}.IsZero())
	assert.False(t, Location{Latitude: 52.52}.IsZero())
}

func TestDriver_IsZero(t *testing.T) {
	assert.True(t, Driver{Phone: "+100"}.IsZero())
	assert.False(t, Driver{ID: "d-1"}.IsZero())
	assert.False(t, Driver{Name: "Ann"}.IsZero())
}

func TestTripState_Clone_IsDeep(t *testing.T) {
	now := time.Now()
	s := TripState{
		Phase:       PhaseInProgress,
		Origin:      &Location{Address: "A"},
		Destination: &Location{Address: "B"},
		Driver:      &Driver{ID: "d-1"},
		StartTime:   &now,
	}

	c := s.Clone()
	c.Origin.Address = "changed"
	c.Driver.ID = "changed"
	*c.StartTime = now.Add(time.Hour)

	assert.Equal(t, "A", s.Origin.Address)
	assert.Equal(t, "d-1", s.Driver.ID)
	assert.Equal(t, now, *s.StartTime)
}

func TestRecordStatus_IsFinished(t *testing.T) {
	assert.False(t, RecordInProgress.IsFinished())
	assert.True(t, RecordCompleted.IsFinished())
	assert.True(t, RecordCancelled.IsFinished())
}

func TestTripRecord_Duration(t *testing.T) {
	start := time.Date(2026, 1, 1, 10, 0, 0, 0, time.UTC)
	r := TripRecord{StartedAt: start}
	assert.Zero(t, r.Duration())

	end := start.Add(25 * time.Minute)
	r.EndedAt = &end
	assert.Equal(t, 25*time.Minute, r.Duration())
}
