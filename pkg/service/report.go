package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/mdqapps/turnos-api/pkg/models"
	"github.com/mdqapps/turnos-api/pkg/repository"
	"github.com/mdqapps/turnos-api/pkg/scheduler"
)

// ReportService computes weekly workload figures
type ReportService struct {
	shifts    repository.ShiftRepositoryInterface
	employees repository.EmployeeRepositoryInterface
	loc       *time.Location
}

// NewReportService creates a new report service
func NewReportService(shifts repository.ShiftRepositoryInterface, employees repository.EmployeeRepositoryInterface, loc *time.Location) *ReportService {
	if loc == nil {
		loc = time.UTC
	}
	return &ReportService{shifts: shifts, employees: employees, loc: loc}
}

// EmployeeHours is one employee's load for the week
type EmployeeHours struct {
	Employee models.Employee `json:"employee"`
	Hours    float64         `json:"hours"`
	Shifts   int             `json:"shifts"`
}

// WeeklyReport summarizes the active shifts of one week
type WeeklyReport struct {
	Name         string          `json:"name"`
	WeekStart    time.Time       `json:"week_start"`
	WeekEnd      time.Time       `json:"week_end"`
	Employees    []EmployeeHours `json:"employees"`
	TotalHours   float64         `json:"total_hours"`
	TotalShifts  int             `json:"total_shifts"`
	AverageHours float64         `json:"average_hours"`
}

// Weekly reports hours per current employee for the week containing anchor,
// busiest first. TotalShifts also counts shifts of employees that were
// deleted; the hour figures only cover current employees.
func (s *ReportService) Weekly(ctx context.Context, anchor time.Time) (*WeeklyReport, error) {
	monday, sunday := scheduler.Week(anchor.In(s.loc))

	active := true
	shifts, err := s.shifts.List(ctx, models.ShiftFilter{Active: &active, DateFrom: &monday, DateTo: &sunday})
	if err != nil {
		return nil, fmt.Errorf("failed to list shifts: %w", err)
	}
	employees, err := s.employees.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}

	byEmployee := make(map[string][]models.Shift)
	for _, sh := range shifts {
		byEmployee[sh.EmployeeID] = append(byEmployee[sh.EmployeeID], sh)
	}

	report := &WeeklyReport{
		Name:        scheduler.WeekName(monday, sunday),
		WeekStart:   monday,
		WeekEnd:     sunday,
		Employees:   make([]EmployeeHours, 0, len(employees)),
		TotalShifts: len(shifts),
	}
	for _, e := range employees {
		own := byEmployee[e.ID]
		hours, err := scheduler.TotalHours(own)
		if err != nil {
			return nil, err
		}
		report.Employees = append(report.Employees, EmployeeHours{Employee: e, Hours: hours, Shifts: len(own)})
		report.TotalHours += hours
	}
	sort.SliceStable(report.Employees, func(i, j int) bool {
		return report.Employees[i].Hours > report.Employees[j].Hours
	})

	if len(employees) > 0 {
		report.AverageHours = report.TotalHours / float64(len(employees))
	}
	return report, nil
}
