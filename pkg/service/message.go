package service

import (
	"context"
	"fmt"
	"time"

	apperrors "github.com/mdqapps/turnos-api/pkg/apperrors"
	"github.com/mdqapps/turnos-api/pkg/messaging"
	"github.com/mdqapps/turnos-api/pkg/models"
	"github.com/mdqapps/turnos-api/pkg/repository"
	"github.com/mdqapps/turnos-api/pkg/scheduler"
)

// MessageService prepares the weekly schedule message sent to employees
type MessageService struct {
	shifts    repository.ShiftRepositoryInterface
	employees repository.EmployeeRepositoryInterface
	dir       directory
	loc       *time.Location
}

// NewMessageService creates a new message service
func NewMessageService(shifts repository.ShiftRepositoryInterface, employees repository.EmployeeRepositoryInterface, locations repository.LocationRepositoryInterface, loc *time.Location) *MessageService {
	if loc == nil {
		loc = time.UTC
	}
	return &MessageService{
		shifts:    shifts,
		employees: employees,
		dir:       directory{employees: employees, locations: locations},
		loc:       loc,
	}
}

// ScheduleMessage is the text for one employee plus a link that opens it in WhatsApp.
// The link is empty when the employee has no phone.
type ScheduleMessage struct {
	EmployeeID  string  `json:"employee_id"`
	Text        string  `json:"text"`
	TotalHours  float64 `json:"total_hours"`
	WhatsAppURL string  `json:"whatsapp_url,omitempty"`
}

// WeeklyMessage renders the active shifts of employeeID in the week containing anchor
func (s *MessageService) WeeklyMessage(ctx context.Context, employeeID string, anchor time.Time) (*ScheduleMessage, error) {
	employee, err := s.employees.GetByID(ctx, employeeID)
	if err != nil {
		return nil, notFoundOr(err, apperrors.ErrEmployeeNotFound, "get employee")
	}

	monday, sunday := scheduler.Week(anchor.In(s.loc))
	active := true
	shifts, err := s.shifts.List(ctx, models.ShiftFilter{
		EmployeeID: employeeID,
		Active:     &active,
		DateFrom:   &monday,
		DateTo:     &sunday,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list shifts: %w", err)
	}
	if err := s.dir.resolve(ctx, shifts); err != nil {
		return nil, err
	}
	for i := range shifts {
		shifts[i].Date = shifts[i].Date.In(s.loc)
	}

	text, err := messaging.FormatSchedule(*employee, shifts)
	if err != nil {
		return nil, err
	}
	hours, err := scheduler.TotalHours(shifts)
	if err != nil {
		return nil, err
	}

	msg := &ScheduleMessage{EmployeeID: employee.ID, Text: text, TotalHours: hours}
	if employee.Phone != "" {
		msg.WhatsAppURL = messaging.WhatsAppURL(employee.Phone, text)
	}
	return msg, nil
}
