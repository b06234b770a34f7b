package service

import (
	"context"
	"fmt"

	"github.com/mdqapps/turnos-api/pkg/models"
	"github.com/mdqapps/turnos-api/pkg/repository"
)

// Shown in place of references that no longer resolve
const (
	DeletedEmployeeName = "Empleado eliminado"
	DeletedLocationName = "Local eliminado"
)

// directory resolves the employee and location ids carried by shifts
type directory struct {
	employees repository.EmployeeRepositoryInterface
	locations repository.LocationRepositoryInterface
}

// resolve attaches employee and location details to every shift, using
// placeholders for ids that no longer exist
func (d directory) resolve(ctx context.Context, shifts []models.Shift) error {
	if len(shifts) == 0 {
		return nil
	}
	employees, locations, err := d.lookup(ctx, shifts)
	if err != nil {
		return err
	}

	for i := range shifts {
		s := &shifts[i]
		if e, ok := employees[s.EmployeeID]; ok {
			s.Employee = e
		} else {
			s.Employee = &models.Employee{ID: s.EmployeeID, FirstName: DeletedEmployeeName}
		}
		if l, ok := locations[s.LocationID]; ok {
			s.Location = l
		} else {
			s.Location = &models.Location{ID: s.LocationID, Name: DeletedLocationName}
		}
	}
	return nil
}

// attachLocations sets Location only where it resolves. Conflict messages
// fall back to a generic name for the rest.
func (d directory) attachLocations(ctx context.Context, shifts []models.Shift) error {
	if len(shifts) == 0 {
		return nil
	}
	ids := uniqueIDs(shifts, func(s models.Shift) string { return s.LocationID })
	found, err := d.locations.GetByIDs(ctx, ids)
	if err != nil {
		return fmt.Errorf("failed to load locations: %w", err)
	}
	byID := make(map[string]*models.Location, len(found))
	for i := range found {
		byID[found[i].ID] = &found[i]
	}
	for i := range shifts {
		if l, ok := byID[shifts[i].LocationID]; ok {
			shifts[i].Location = l
		}
	}
	return nil
}

func (d directory) lookup(ctx context.Context, shifts []models.Shift) (map[string]*models.Employee, map[string]*models.Location, error) {
	empIDs := uniqueIDs(shifts, func(s models.Shift) string { return s.EmployeeID })
	locIDs := uniqueIDs(shifts, func(s models.Shift) string { return s.LocationID })

	foundEmployees, err := d.employees.GetByIDs(ctx, empIDs)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load employees: %w", err)
	}
	foundLocations, err := d.locations.GetByIDs(ctx, locIDs)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load locations: %w", err)
	}

	employees := make(map[string]*models.Employee, len(foundEmployees))
	for i := range foundEmployees {
		employees[foundEmployees[i].ID] = &foundEmployees[i]
	}
	locations := make(map[string]*models.Location, len(foundLocations))
	for i := range foundLocations {
		locations[foundLocations[i].ID] = &foundLocations[i]
	}
	return employees, locations, nil
}

func uniqueIDs(shifts []models.Shift, key func(models.Shift) string) []string {
	seen := make(map[string]struct{}, len(shifts))
	ids := make([]string, 0, len(shifts))
	for _, s := range shifts {
		id := key(s)
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	return ids
}
