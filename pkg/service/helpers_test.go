package service_test

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/mdqapps/turnos-api/pkg/mocks"
	"github.com/mdqapps/turnos-api/pkg/models"
	"go.uber.org/mock/gomock"
)

var actor = models.Actor{ID: "u1", Email: "owner@example.com"}

func date(d int) time.Time {
	return time.Date(2024, 3, d, 0, 0, 0, 0, time.UTC)
}

func strPtr(s string) *string { return &s }

func boolPtr(b bool) *bool { return &b }

type auditRecord struct {
	Action     models.AuditAction
	EntityType models.EntityType
	Actor      models.Actor
	EntityID   string
	Details    map[string]any
}

// fakeAudit keeps recorded entries in memory and can be told to fail
type fakeAudit struct {
	mu      sync.Mutex
	records []auditRecord
	err     error
}

func (f *fakeAudit) Record(_ context.Context, action models.AuditAction, entityType models.EntityType, a models.Actor, entityID string, details map[string]any) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return "", f.err
	}
	f.records = append(f.records, auditRecord{action, entityType, a, entityID, details})
	return fmt.Sprintf("log-%d", len(f.records)), nil
}

func (f *fakeAudit) all() []auditRecord {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]auditRecord(nil), f.records...)
}

// expectDirectory answers GetByIDs lookups from the given fixtures
func expectDirectory(employees *mocks.MockEmployeeRepositoryInterface, locations *mocks.MockLocationRepositoryInterface, knownEmployees []models.Employee, knownLocations []models.Location) {
	employees.EXPECT().GetByIDs(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, ids []string) ([]models.Employee, error) {
			var out []models.Employee
			for _, e := range knownEmployees {
				if contains(ids, e.ID) {
					out = append(out, e)
				}
			}
			return out, nil
		}).AnyTimes()
	locations.EXPECT().GetByIDs(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, ids []string) ([]models.Location, error) {
			var out []models.Location
			for _, l := range knownLocations {
				if contains(ids, l.ID) {
					out = append(out, l)
				}
			}
			return out, nil
		}).AnyTimes()
}

// expectShiftList answers List calls by filtering stored the way the repository does
func expectShiftList(shifts *mocks.MockShiftRepositoryInterface, stored []models.Shift) {
	shifts.EXPECT().List(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, f models.ShiftFilter) ([]models.Shift, error) {
			var out []models.Shift
			for _, s := range stored {
				if f.EmployeeID != "" && s.EmployeeID != f.EmployeeID {
					continue
				}
				if f.LocationID != "" && s.LocationID != f.LocationID {
					continue
				}
				if f.Active != nil && s.Active != *f.Active {
					continue
				}
				if f.DateFrom != nil && s.Date.Before(*f.DateFrom) {
					continue
				}
				if f.DateTo != nil && s.Date.After(*f.DateTo) {
					continue
				}
				out = append(out, s)
			}
			return out, nil
		}).AnyTimes()
}

func contains(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
