package models

import "time"

// ProposedShift is a shift slot that has not been persisted yet
type ProposedShift struct {
	Date      time.Time `json:"date"`
	StartTime string    `json:"start_time"`
	EndTime   string    `json:"end_time"`
}

// ConflictResult is the outcome of checking a single proposed shift
type ConflictResult struct {
	Conflict bool   `json:"conflict"`
	Message  string `json:"message,omitempty"`
}

// BatchConflictResult is the outcome of checking several proposed shifts at once
type BatchConflictResult struct {
	Conflict         bool     `json:"conflict"`
	Message          string   `json:"message,omitempty"`
	ConflictingDates []string `json:"conflicting_dates"`
}

// ShiftFilter narrows a shift listing. Date bounds are inclusive.
type ShiftFilter struct {
	LocationID string
	EmployeeID string
	Active     *bool
	DateFrom   *time.Time
	DateTo     *time.Time
}

// AuditFilter narrows an audit log listing
type AuditFilter struct {
	UserID     string
	EntityType EntityType
	EntityID   string
	Limit      int
}
