package scheduler

import (
	"fmt"
	"time"
)

// DayOf strips the time of day, keeping t's location
func DayOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// SameDay reports whether a and b fall on the same calendar day as seen from a's location
func SameDay(a, b time.Time) bool {
	return DayOf(a).Equal(DayOf(b.In(a.Location())))
}

// MondayOf returns Monday 00:00:00.000 of the week containing t.
// Sunday belongs to the week that started six days before it.
func MondayOf(t time.Time) time.Time {
	wd := int(t.Weekday())
	offset := 1 - wd
	if wd == 0 {
		offset = -6
	}
	return time.Date(t.Year(), t.Month(), t.Day()+offset, 0, 0, 0, 0, t.Location())
}

// SundayOf returns the last instant (23:59:59.999) of the Sunday six days after monday
func SundayOf(monday time.Time) time.Time {
	return time.Date(monday.Year(), monday.Month(), monday.Day()+6, 23, 59, 59, int(999*time.Millisecond), monday.Location())
}

// Week returns the Monday–Sunday window containing t
func Week(t time.Time) (time.Time, time.Time) {
	monday := MondayOf(t)
	return monday, SundayOf(monday)
}

// DayLabel formats t as dd/mm
func DayLabel(t time.Time) string {
	return t.Format("02/01")
}

// WeekName renders the human readable label of a week window
func WeekName(monday, sunday time.Time) string {
	return fmt.Sprintf("Semana del %s al %s", DayLabel(monday), DayLabel(sunday))
}
