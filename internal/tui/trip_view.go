package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/MKhiriev/go-ride-keeper/models"
)

const (
	timeLayout     = "2006-01-02 15:04"
	addressWidth   = 28
	shortIDLength  = 8
	historyHintFmt = "%d trip(s)"
)

// RenderHistory prints trip records as a table, newest first as given.
func RenderHistory(records []models.TripRecord) string {
	if len(records) == 0 {
		return renderPage("TRIP HISTORY", "", "no trips yet")
	}

	t := newTable("ID", "STATUS", "FROM", "TO", "DRIVER", "STARTED", "DURATION", "FARE")
	for _, r := range records {
		t.Row(
			shortID(r.ID),
			renderRecordStatus(r.Status),
			fitText(locationLabel(r.Origin), addressWidth),
			fitText(locationLabel(r.Destination), addressWidth),
			valueOrDash(r.Driver.Name),
			r.StartedAt.Local().Format(timeLayout),
			durationLabel(r),
			fareLabel(r),
		)
	}

	return renderPage("TRIP HISTORY", t.String(), fmt.Sprintf(historyHintFmt, len(records)))
}

// RenderTripState prints the current trip attempt.
func RenderTripState(state models.TripState) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Phase: %s\n", state.Phase)
	if state.Origin != nil {
		fmt.Fprintf(&b, "From: %s\n", locationLabel(*state.Origin))
	}
	if state.Destination != nil {
		fmt.Fprintf(&b, "To: %s\n", locationLabel(*state.Destination))
	}
	if state.Driver != nil {
		fmt.Fprintf(&b, "Driver: %s (%s)\n", state.Driver.Name, valueOrDash(state.Driver.VehiclePlate))
	}
	if state.EstimatedFare > 0 {
		fmt.Fprintf(&b, "Estimated fare: %.2f\n", state.EstimatedFare)
	}
	if state.StartTime != nil {
		fmt.Fprintf(&b, "Started: %s\n", state.StartTime.Local().Format(timeLayout))
	}
	if state.EndTime != nil {
		fmt.Fprintf(&b, "Ended: %s\n", state.EndTime.Local().Format(timeLayout))
		fmt.Fprintf(&b, "Final fare: %.2f\n", state.FinalFare)
	}

	return boxStyle.Render(strings.TrimRight(b.String(), "\n")) + "\n"
}

func renderRecordStatus(s models.RecordStatus) string {
	if style, ok := statusStyles[string(s)]; ok {
		return style.Render(string(s))
	}
	return string(s)
}

func locationLabel(l models.Location) string {
	if l.Address != "" {
		return l.Address
	}
	return fmt.Sprintf("%.5f, %.5f", l.Latitude, l.Longitude)
}

func durationLabel(r models.TripRecord) string {
	if r.EndedAt == nil {
		return "-"
	}
	return r.Duration().Round(time.Minute).String()
}

func fareLabel(r models.TripRecord) string {
	switch r.Status {
	case models.RecordCompleted:
		return fmt.Sprintf("%.2f", r.FinalFare)
	case models.RecordInProgress:
		return fmt.Sprintf("~%.2f", r.EstimatedFare)
	default:
		return "-"
	}
}

func shortID(id string) string {
	if len(id) <= shortIDLength {
		return id
	}
	return id[len(id)-shortIDLength:]
}
