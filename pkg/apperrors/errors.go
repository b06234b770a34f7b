package apperrors

import (
	"errors"
	"fmt"
	"strings"
)

// NotFoundError represents an error when an entity is not found
type NotFoundError struct {
	Entity string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found", e.Entity)
}

// Is enables errors.Is() comparison for NotFoundError
func (e *NotFoundError) Is(target error) bool {
	t, ok := target.(*NotFoundError)
	if !ok {
		return false
	}
	return e.Entity == t.Entity
}

// ValidationError represents a rejected input. Message is meant for end users.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation error: %s", e.Message)
}

// ConflictError is returned when a well formed shift collides with existing ones
type ConflictError struct {
	Message string
	Dates   []string
}

func (e *ConflictError) Error() string {
	if len(e.Dates) > 0 {
		return fmt.Sprintf("schedule conflict on %s: %s", strings.Join(e.Dates, ", "), e.Message)
	}
	return fmt.Sprintf("schedule conflict: %s", e.Message)
}

// AuthenticationError represents authentication-related errors
type AuthenticationError struct {
	Message string
}

func (e *AuthenticationError) Error() string {
	return e.Message
}

// Entity Not Found Errors
var (
	ErrEmployeeNotFound = &NotFoundError{Entity: "employee"}
	ErrLocationNotFound = &NotFoundError{Entity: "location"}
	ErrShiftNotFound    = &NotFoundError{Entity: "shift"}
	ErrSnapshotNotFound = &NotFoundError{Entity: "snapshot"}
	ErrUserNotFound     = &NotFoundError{Entity: "user"}
)

var (
	ErrInvalidCredentials = &AuthenticationError{Message: "invalid credentials"}
	ErrEmptyBatch         = &ValidationError{Field: "days", Message: "selecciona al menos un día"}
	ErrInvalidTimeRange   = &ValidationError{Field: "end_time", Message: "la hora de inicio debe ser anterior a la hora de fin"}
)

// IsNotFound checks if an error is a NotFoundError
func IsNotFound(err error) bool {
	var notFoundErr *NotFoundError
	return errors.As(err, &notFoundErr)
}

// IsValidation checks if an error is a ValidationError
func IsValidation(err error) bool {
	var validationErr *ValidationError
	return errors.As(err, &validationErr)
}

// IsConflict checks if an error is a ConflictError
func IsConflict(err error) bool {
	var conflictErr *ConflictError
	return errors.As(err, &conflictErr)
}

// IsAuthentication checks if an error is an AuthenticationError
func IsAuthentication(err error) bool {
	var authErr *AuthenticationError
	return errors.As(err, &authErr)
}

// NewValidationError creates a new ValidationError
func NewValidationError(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// NewConflictError creates a new ConflictError
func NewConflictError(message string, dates ...string) error {
	return &ConflictError{Message: message, Dates: dates}
}
