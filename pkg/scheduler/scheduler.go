package scheduler

import (
	"fmt"
	"strings"
	"time"

	"github.com/mdqapps/turnos-api/pkg/models"
)

// fallbackLocationName is used in conflict messages when the conflicting
// shift carries no location details
const fallbackLocationName = "otro local"

// CheckConflict decides whether a proposed shift for employeeID collides with
// that employee's other active shifts on the same calendar day. The shift with
// id excludeID is ignored so an edit never conflicts with its own prior state.
// Only the first conflicting shift is reported. existing is never modified.
func CheckConflict(employeeID string, date time.Time, start, end string, existing []models.Shift, excludeID string) (models.ConflictResult, error) {
	startMin, endMin, err := parseRange(start, end)
	if err != nil {
		return models.ConflictResult{}, err
	}

	day := DayOf(date)
	for i := range existing {
		other := &existing[i]
		if other.EmployeeID != employeeID || !other.Active {
			continue
		}
		if excludeID != "" && other.ID == excludeID {
			continue
		}
		if !SameDay(day, other.Date) {
			continue
		}

		otherStart, otherEnd, err := parseRange(other.StartTime, other.EndTime)
		if err != nil {
			return models.ConflictResult{}, fmt.Errorf("shift %s: %w", other.ID, err)
		}
		if overlapMinutes(startMin, endMin, otherStart, otherEnd) {
			return models.ConflictResult{
				Conflict: true,
				Message: fmt.Sprintf("Este empleado ya tiene un turno este día de %s a %s en %s",
					other.StartTime, other.EndTime, locationName(other)),
			}, nil
		}
	}

	return models.ConflictResult{}, nil
}

// CheckConflictsBatch checks every proposed shift independently against the
// same existing shifts and reports all conflicting dates, not just the first.
// Proposed shifts are not checked against each other.
func CheckConflictsBatch(employeeID string, proposed []models.ProposedShift, existing []models.Shift) (models.BatchConflictResult, error) {
	dates := []string{}
	for _, p := range proposed {
		res, err := CheckConflict(employeeID, p.Date, p.StartTime, p.EndTime, existing, "")
		if err != nil {
			return models.BatchConflictResult{}, err
		}
		if res.Conflict {
			dates = append(dates, DayLabel(p.Date))
		}
	}

	if len(dates) == 0 {
		return models.BatchConflictResult{ConflictingDates: dates}, nil
	}
	return models.BatchConflictResult{
		Conflict:         true,
		Message:          "Ya hay turnos asignados en: " + strings.Join(dates, ", "),
		ConflictingDates: dates,
	}, nil
}

func locationName(s *models.Shift) string {
	if s.Location != nil && s.Location.Name != "" {
		return s.Location.Name
	}
	return fallbackLocationName
}
