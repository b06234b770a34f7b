package scheduler

import (
	"fmt"
	"time"

	"github.com/mdqapps/turnos-api/pkg/models"
)

// TotalHours sums the duration of all shifts in hours
func TotalHours(shifts []models.Shift) (float64, error) {
	minutes := 0
	for _, s := range shifts {
		start, end, err := parseRange(s.StartTime, s.EndTime)
		if err != nil {
			return 0, fmt.Errorf("shift %s: %w", s.ID, err)
		}
		minutes += end - start
	}
	return float64(minutes) / 60, nil
}

// BuildSnapshot freezes activeShifts into a snapshot of the week containing anchor.
// The shifts are copied by value and stripped of display details, so the
// snapshot stays unchanged whatever happens to the live shifts later.
// An empty slice is valid and yields zero totals.
func BuildSnapshot(activeShifts []models.Shift, anchor time.Time, creatorID string) (models.Snapshot, error) {
	monday, sunday := Week(anchor)

	hours, err := TotalHours(activeShifts)
	if err != nil {
		return models.Snapshot{}, err
	}

	return models.Snapshot{
		Name:        WeekName(monday, sunday),
		WeekStart:   monday,
		WeekEnd:     sunday,
		Shifts:      copyShifts(activeShifts),
		TotalHours:  hours,
		TotalShifts: len(activeShifts),
		CreatedAt:   time.Now(),
		CreatedBy:   creatorID,
	}, nil
}

func copyShifts(shifts []models.Shift) []models.Shift {
	out := make([]models.Shift, len(shifts))
	for i, s := range shifts {
		s.Employee = nil
		s.Location = nil
		out[i] = s
	}
	return out
}
