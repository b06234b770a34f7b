package scheduler

import (
	"testing"
	"time"

	"github.com/mdqapps/turnos-api/pkg/models"
)

func TestBuildSnapshot(t *testing.T) {
	shifts := []models.Shift{
		shift("s1", "e1", day(2024, 3, 4), "09:00", "13:00"),
		shift("s2", "e2", day(2024, 3, 5), "14:00", "18:30"),
	}
	shifts[0].Location = &models.Location{ID: "l1", Name: "Centro"}

	snap, err := BuildSnapshot(shifts, day(2024, 3, 6), "u1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if snap.TotalHours != 8.5 {
		t.Errorf("Expected 8.5 hours, got %f", snap.TotalHours)
	}
	if snap.TotalShifts != 2 {
		t.Errorf("Expected 2 shifts, got %d", snap.TotalShifts)
	}
	if snap.Name != "Semana del 04/03 al 10/03" {
		t.Errorf("Unexpected name %q", snap.Name)
	}
	if !snap.WeekStart.Equal(day(2024, 3, 4)) {
		t.Errorf("Unexpected week start %s", snap.WeekStart)
	}
	if snap.CreatedBy != "u1" {
		t.Errorf("Unexpected creator %q", snap.CreatedBy)
	}
	if snap.Shifts[0].Location != nil {
		t.Errorf("Snapshot copies should not carry display details")
	}

	// Mutating the source must not reach the snapshot
	shifts[1].EndTime = "23:00"
	shifts[1].Active = false
	if snap.Shifts[1].EndTime != "18:30" || !snap.Shifts[1].Active {
		t.Errorf("Snapshot shares state with its source")
	}
}

func TestBuildSnapshot_Empty(t *testing.T) {
	snap, err := BuildSnapshot(nil, time.Now(), "u1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if snap.TotalHours != 0 || snap.TotalShifts != 0 {
		t.Errorf("Expected zero totals, got %f / %d", snap.TotalHours, snap.TotalShifts)
	}
	if snap.Name == "" {
		t.Errorf("Expected a week name")
	}
	if snap.Shifts == nil {
		t.Errorf("Expected an empty, non-nil shift list")
	}
}

func TestTotalHours_InvalidClock(t *testing.T) {
	_, err := TotalHours([]models.Shift{shift("s1", "e1", day(2024, 3, 4), "9", "13:00")})
	if err == nil {
		t.Errorf("Expected an error for a malformed shift")
	}
}
