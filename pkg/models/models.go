package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Employee represents a person that can be assigned to shifts
type Employee struct {
	ID        string    `gorm:"type:varchar(36);primaryKey" json:"id"`
	FirstName string    `gorm:"size:100;not null" json:"first_name"`
	LastName  string    `gorm:"size:100;not null;index" json:"last_name"`
	Phone     string    `gorm:"size:40" json:"phone,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	CreatedBy string    `gorm:"size:36" json:"created_by"`
}

func (e *Employee) BeforeCreate(tx *gorm.DB) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	return nil
}

// FullName returns "first last"
func (e *Employee) FullName() string {
	if e.LastName == "" {
		return e.FirstName
	}
	return e.FirstName + " " + e.LastName
}

// Location represents a business location where shifts take place
type Location struct {
	ID        string    `gorm:"type:varchar(36);primaryKey" json:"id"`
	Name      string    `gorm:"size:100;not null" json:"name"`
	Address   string    `gorm:"size:200" json:"address,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	CreatedBy string    `gorm:"size:36" json:"created_by"`
}

func (l *Location) BeforeCreate(tx *gorm.DB) error {
	if l.ID == "" {
		l.ID = uuid.NewString()
	}
	return nil
}

// Shift is one employee's work block at one location on one calendar day.
// Date always holds midnight of that day.
type Shift struct {
	ID         string    `gorm:"type:varchar(36);primaryKey" json:"id"`
	EmployeeID string    `gorm:"type:varchar(36);not null;index:idx_shift_employee_date" json:"employee_id"`
	LocationID string    `gorm:"type:varchar(36);not null;index" json:"location_id"`
	Date       time.Time `gorm:"column:shift_date;not null;index:idx_shift_employee_date" json:"date"`
	StartTime  string    `gorm:"size:5;not null" json:"start_time"`
	EndTime    string    `gorm:"size:5;not null" json:"end_time"`
	Active     bool      `gorm:"not null;index" json:"active"`
	CreatedAt  time.Time `json:"created_at"`

	// Filled in by the service layer, never persisted
	Employee *Employee `gorm:"-" json:"employee,omitempty"`
	Location *Location `gorm:"-" json:"location,omitempty"`
}

func (s *Shift) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	return nil
}

// Snapshot is a frozen copy of the active shifts at the time it was taken.
// Shifts are stored by value so later edits to live shifts never reach it.
type Snapshot struct {
	ID          string    `gorm:"type:varchar(36);primaryKey" json:"id"`
	Name        string    `gorm:"size:100;not null" json:"name"`
	WeekStart   time.Time `gorm:"not null;index" json:"week_start"`
	WeekEnd     time.Time `gorm:"not null" json:"week_end"`
	Shifts      []Shift   `gorm:"type:text;serializer:json" json:"shifts"`
	TotalHours  float64   `gorm:"not null;default:0" json:"total_hours"`
	TotalShifts int       `gorm:"not null;default:0" json:"total_shifts"`
	CreatedAt   time.Time `json:"created_at"`
	CreatedBy   string    `gorm:"size:36" json:"created_by"`
}

func (s *Snapshot) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	return nil
}

// AuditAction enumerates the state changes recorded in the audit log
type AuditAction string

const (
	ActionShiftCreated    AuditAction = "shift_created"
	ActionShiftUpdated    AuditAction = "shift_updated"
	ActionShiftDeleted    AuditAction = "shift_deleted"
	ActionShiftMoved      AuditAction = "shift_moved"
	ActionFullWeekCreated AuditAction = "full_week_created"
	ActionSnapshotCreated AuditAction = "snapshot_created"
	ActionSnapshotDeleted AuditAction = "snapshot_deleted"
)

// IsValid reports whether a is one of the known actions
func (a AuditAction) IsValid() bool {
	switch a {
	case ActionShiftCreated, ActionShiftUpdated, ActionShiftDeleted, ActionShiftMoved,
		ActionFullWeekCreated, ActionSnapshotCreated, ActionSnapshotDeleted:
		return true
	}
	return false
}

// EntityType is the kind of entity an audit record talks about
type EntityType string

const (
	EntityShift    EntityType = "asignacion"
	EntitySnapshot EntityType = "snapshot"
)

// AuditLog is an append-only record of who changed what
type AuditLog struct {
	ID         string         `gorm:"type:varchar(36);primaryKey" json:"id"`
	Action     AuditAction    `gorm:"size:40;not null;index" json:"action"`
	EntityType EntityType     `gorm:"size:20;not null;index" json:"entity_type"`
	EntityID   string         `gorm:"size:36;index" json:"entity_id,omitempty"`
	Details    map[string]any `gorm:"type:text;serializer:json" json:"details"`
	UserID     string         `gorm:"size:36;not null;index" json:"user_id"`
	UserEmail  string         `gorm:"size:200" json:"user_email"`
	CreatedAt  time.Time      `gorm:"index" json:"created_at"`
}

func (a *AuditLog) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	return nil
}

// Role of an account allowed to manage the roster
type Role string

const (
	RoleOwner Role = "owner"
	RoleAdmin Role = "admin"
)

// User represents an account that can log in and manage the roster
type User struct {
	ID           string    `gorm:"type:varchar(36);primaryKey" json:"id"`
	Email        string    `gorm:"size:200;unique;not null" json:"email"`
	PasswordHash string    `gorm:"not null" json:"-"`
	Role         Role      `gorm:"size:20;not null;default:owner" json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}

// Actor identifies who performs a mutating operation
type Actor struct {
	ID    string
	Email string
}
