package service_test

import (
	"context"
	"errors"
	"net/url"
	"strings"
	"testing"
	"time"

	apperrors "github.com/mdqapps/turnos-api/pkg/apperrors"
	"github.com/mdqapps/turnos-api/pkg/mocks"
	"github.com/mdqapps/turnos-api/pkg/models"
	"github.com/mdqapps/turnos-api/pkg/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"gorm.io/gorm"
)

func TestReportService_Weekly(t *testing.T) {
	ctrl := gomock.NewController(t)
	shifts := mocks.NewMockShiftRepositoryInterface(ctrl)
	employees := mocks.NewMockEmployeeRepositoryInterface(ctrl)

	expectShiftList(shifts, []models.Shift{
		{ID: "s1", EmployeeID: "e1", Date: date(4), StartTime: "09:00", EndTime: "13:00", Active: true},
		{ID: "s2", EmployeeID: "e2", Date: date(5), StartTime: "09:00", EndTime: "17:30", Active: true},
		{ID: "s3", EmployeeID: "e1", Date: date(6), StartTime: "14:00", EndTime: "16:00", Active: true},
		{ID: "s4", EmployeeID: "gone", Date: date(6), StartTime: "14:00", EndTime: "16:00", Active: true},
		{ID: "s5", EmployeeID: "e2", Date: date(12), StartTime: "09:00", EndTime: "17:00", Active: true},
		{ID: "s6", EmployeeID: "e3", Date: date(7), StartTime: "09:00", EndTime: "17:00", Active: false},
	})
	employees.EXPECT().GetAll(gomock.Any()).Return([]models.Employee{
		{ID: "e1", FirstName: "Ana"},
		{ID: "e2", FirstName: "Bruno"},
		{ID: "e3", FirstName: "Carla"},
	}, nil)

	report, err := service.NewReportService(shifts, employees, time.UTC).Weekly(context.Background(), date(8))
	require.NoError(t, err)

	assert.Equal(t, "Semana del 04/03 al 10/03", report.Name)
	require.Len(t, report.Employees, 3)
	assert.Equal(t, "Bruno", report.Employees[0].Employee.FirstName)
	assert.InDelta(t, 8.5, report.Employees[0].Hours, 1e-9)
	assert.Equal(t, "Ana", report.Employees[1].Employee.FirstName)
	assert.InDelta(t, 6.0, report.Employees[1].Hours, 1e-9)
	assert.Equal(t, 2, report.Employees[1].Shifts)
	assert.Equal(t, "Carla", report.Employees[2].Employee.FirstName)
	assert.Zero(t, report.Employees[2].Hours)

	assert.Equal(t, 4, report.TotalShifts, "counts shifts of deleted employees too")
	assert.InDelta(t, 14.5, report.TotalHours, 1e-9)
	assert.InDelta(t, 14.5/3, report.AverageHours, 1e-9)
}

func TestReportService_NoEmployees(t *testing.T) {
	ctrl := gomock.NewController(t)
	shifts := mocks.NewMockShiftRepositoryInterface(ctrl)
	employees := mocks.NewMockEmployeeRepositoryInterface(ctrl)
	expectShiftList(shifts, nil)
	employees.EXPECT().GetAll(gomock.Any()).Return(nil, nil)

	report, err := service.NewReportService(shifts, employees, time.UTC).Weekly(context.Background(), date(8))
	require.NoError(t, err)
	assert.Zero(t, report.AverageHours)
	assert.Empty(t, report.Employees)
}

func TestMessageService_WeeklyMessage(t *testing.T) {
	ctrl := gomock.NewController(t)
	shifts := mocks.NewMockShiftRepositoryInterface(ctrl)
	employees := mocks.NewMockEmployeeRepositoryInterface(ctrl)
	locations := mocks.NewMockLocationRepositoryInterface(ctrl)

	ana := models.Employee{ID: "e1", FirstName: "Ana", LastName: "Zapata", Phone: "223 555-1234"}
	expectDirectory(employees, locations, []models.Employee{ana}, []models.Location{{ID: "l1", Name: "Centro"}})
	employees.EXPECT().GetByID(gomock.Any(), "e1").Return(&ana, nil)
	expectShiftList(shifts, []models.Shift{
		{ID: "s1", EmployeeID: "e1", LocationID: "l1", Date: date(4), StartTime: "09:00", EndTime: "13:00", Active: true},
		{ID: "s2", EmployeeID: "e1", LocationID: "l1", Date: date(11), StartTime: "09:00", EndTime: "13:00", Active: true},
	})

	msg, err := service.NewMessageService(shifts, employees, locations, time.UTC).WeeklyMessage(context.Background(), "e1", date(6))
	require.NoError(t, err)

	assert.Contains(t, msg.Text, "*Hola Ana!*")
	assert.Contains(t, msg.Text, "• Lunes 04/03: 09:00 - 13:00")
	assert.NotContains(t, msg.Text, "11/03")
	assert.InDelta(t, 4.0, msg.TotalHours, 1e-9)
	require.True(t, strings.HasPrefix(msg.WhatsAppURL, "https://wa.me/542235551234?text="))

	u, err := url.Parse(msg.WhatsAppURL)
	require.NoError(t, err)
	assert.Equal(t, msg.Text, u.Query().Get("text"))
}

func TestMessageService_NoPhoneNoShifts(t *testing.T) {
	ctrl := gomock.NewController(t)
	shifts := mocks.NewMockShiftRepositoryInterface(ctrl)
	employees := mocks.NewMockEmployeeRepositoryInterface(ctrl)
	locations := mocks.NewMockLocationRepositoryInterface(ctrl)

	employees.EXPECT().GetByID(gomock.Any(), "e1").Return(&models.Employee{ID: "e1", FirstName: "Ana"}, nil)
	expectShiftList(shifts, nil)

	msg, err := service.NewMessageService(shifts, employees, locations, time.UTC).WeeklyMessage(context.Background(), "e1", date(6))
	require.NoError(t, err)
	assert.Equal(t, "Hola Ana! No tenés turnos asignados.", msg.Text)
	assert.Empty(t, msg.WhatsAppURL)
}

func TestMessageService_UnknownEmployee(t *testing.T) {
	ctrl := gomock.NewController(t)
	employees := mocks.NewMockEmployeeRepositoryInterface(ctrl)
	employees.EXPECT().GetByID(gomock.Any(), "nope").Return(nil, gorm.ErrRecordNotFound)

	_, err := service.NewMessageService(nil, employees, nil, time.UTC).WeeklyMessage(context.Background(), "nope", date(6))
	assert.ErrorIs(t, err, apperrors.ErrEmployeeNotFound)
}

func TestAuditService(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockAuditLogRepositoryInterface(ctrl)
	svc := service.NewAuditService(repo)
	ctx := context.Background()

	repo.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, e *models.AuditLog) error {
		assert.Equal(t, "owner@example.com", e.UserEmail)
		assert.NotNil(t, e.Details)
		e.ID = "log-1"
		return nil
	})
	id, err := svc.Record(ctx, models.ActionShiftDeleted, models.EntityShift, actor, "s1", nil)
	require.NoError(t, err)
	assert.Equal(t, "log-1", id)

	_, err = svc.Record(ctx, models.AuditAction("shift_exploded"), models.EntityShift, actor, "s1", nil)
	assert.True(t, apperrors.IsValidation(err))

	repo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(errors.New("down"))
	_, err = svc.Record(ctx, models.ActionShiftCreated, models.EntityShift, actor, "s1", nil)
	assert.Error(t, err)

	repo.EXPECT().List(gomock.Any(), models.AuditFilter{EntityType: models.EntityShift, Limit: 100}).Return([]models.AuditLog{{ID: "log-1"}}, nil)
	entries, err := svc.List(ctx, models.AuditFilter{EntityType: models.EntityShift})
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}
