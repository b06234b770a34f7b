package handlers_test

import (
	"context"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mdqapps/turnos-api/pkg/auth"
	"github.com/mdqapps/turnos-api/pkg/handlers"
	"github.com/mdqapps/turnos-api/pkg/models"
	"github.com/mdqapps/turnos-api/pkg/repository"
	"github.com/mdqapps/turnos-api/pkg/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

// HandlerTestSuite drives the full router against a SQLite database
type HandlerTestSuite struct {
	suite.Suite
	http       *testutils.HTTPTestSuite
	employeeID string
	locationID string
}

func (suite *HandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	db := testutils.NewTestDB(suite.T())
	suite.Require().NoError(auth.EnsureAdminExists(context.Background(), repository.NewUserRepository(db), "admin@turnos.local", "admin123"))

	h := handlers.New(db, "test-secret", time.UTC)
	suite.http = testutils.SetupHTTPTest(handlers.NewRouter(h))

	rec := suite.http.MakeRequest("POST", "/auth/login", map[string]string{"email": "admin@turnos.local", "password": "admin123"})
	suite.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())
	var login struct {
		AccessToken string `json:"access_token"`
	}
	testutils.ParseJSONResponse(suite.T(), rec, &login)
	suite.http.Token = login.AccessToken

	var employee models.Employee
	rec = suite.http.MakeRequest("POST", "/api/employees", map[string]string{"first_name": "Ana", "last_name": "Zapata", "phone": "223 555-1234"})
	suite.Require().Equal(http.StatusCreated, rec.Code, rec.Body.String())
	testutils.ParseJSONResponse(suite.T(), rec, &employee)
	suite.employeeID = employee.ID

	var location models.Location
	rec = suite.http.MakeRequest("POST", "/api/locations", map[string]string{"name": "Centro"})
	suite.Require().Equal(http.StatusCreated, rec.Code, rec.Body.String())
	testutils.ParseJSONResponse(suite.T(), rec, &location)
	suite.locationID = location.ID
}

func (suite *HandlerTestSuite) shiftBody(day, start, end string) map[string]string {
	return map[string]string{
		"employee_id": suite.employeeID,
		"location_id": suite.locationID,
		"date":        day,
		"start_time":  start,
		"end_time":    end,
	}
}

func (suite *HandlerTestSuite) createShift(day, start, end string) models.Shift {
	rec := suite.http.MakeRequest("POST", "/api/shifts", suite.shiftBody(day, start, end))
	suite.Require().Equal(http.StatusCreated, rec.Code, rec.Body.String())
	var shift models.Shift
	testutils.ParseJSONResponse(suite.T(), rec, &shift)
	return shift
}

func (suite *HandlerTestSuite) TestIndexIsPublic() {
	suite.http.Token = ""
	rec := suite.http.MakeRequest("GET", "/", nil)
	suite.Equal(http.StatusOK, rec.Code)
}

func (suite *HandlerTestSuite) TestAuthRequired() {
	suite.http.Token = ""
	testutils.AssertErrorResponse(suite.T(), suite.http.MakeRequest("GET", "/api/shifts", nil), http.StatusUnauthorized, "Authorization header required")

	suite.http.Token = "not-a-token"
	testutils.AssertErrorResponse(suite.T(), suite.http.MakeRequest("GET", "/api/shifts", nil), http.StatusUnauthorized, "Invalid token")
}

func (suite *HandlerTestSuite) TestLogin_BadCredentials() {
	rec := suite.http.MakeRequest("POST", "/auth/login", map[string]string{"email": "admin@turnos.local", "password": "nope"})
	testutils.AssertErrorResponse(suite.T(), rec, http.StatusUnauthorized, "Invalid credentials")
}

func (suite *HandlerTestSuite) TestLogin_RateLimited() {
	limited := false
	for i := 0; i < 10 && !limited; i++ {
		rec := suite.http.MakeRequest("POST", "/auth/login", map[string]string{"email": "admin@turnos.local", "password": "nope"})
		limited = rec.Code == http.StatusTooManyRequests
	}
	suite.True(limited)
}

func (suite *HandlerTestSuite) TestCreateShift_ConflictIs409() {
	shift := suite.createShift("2024-03-04", "09:00", "13:00")
	suite.Equal("Centro", shift.Location.Name)

	rec := suite.http.MakeRequest("POST", "/api/shifts", suite.shiftBody("2024-03-04", "12:00", "14:00"))
	suite.Equal(http.StatusConflict, rec.Code)

	var body map[string]interface{}
	testutils.ParseJSONResponse(suite.T(), rec, &body)
	suite.Equal("Este empleado ya tiene un turno este día de 09:00 a 13:00 en Centro", body["message"])
}

func (suite *HandlerTestSuite) TestCreateShift_ValidationIs400() {
	rec := suite.http.MakeRequest("POST", "/api/shifts", suite.shiftBody("2024-03-04", "14:00", "09:00"))
	testutils.AssertErrorResponse(suite.T(), rec, http.StatusBadRequest, "la hora de inicio debe ser anterior")

	rec = suite.http.MakeRequest("POST", "/api/shifts", suite.shiftBody("2024-03-04", "9:00", "13:00"))
	suite.Equal(http.StatusBadRequest, rec.Code)
	var body map[string]interface{}
	testutils.ParseJSONResponse(suite.T(), rec, &body)
	suite.Equal("start_time", body["field"])
}

func (suite *HandlerTestSuite) TestCreateShift_UnknownEmployeeIs404() {
	body := suite.shiftBody("2024-03-04", "09:00", "13:00")
	body["employee_id"] = "missing"
	rec := suite.http.MakeRequest("POST", "/api/shifts", body)
	suite.Equal(http.StatusNotFound, rec.Code)
}

func (suite *HandlerTestSuite) TestCheckConflict() {
	suite.createShift("2024-03-04", "09:00", "13:00")

	rec := suite.http.MakeRequest("POST", "/api/shifts/check", map[string]string{
		"employee_id": suite.employeeID, "date": "2024-03-04", "start_time": "13:00", "end_time": "15:00",
	})
	suite.Require().Equal(http.StatusOK, rec.Code)
	var res map[string]interface{}
	testutils.ParseJSONResponse(suite.T(), rec, &res)
	suite.Equal(true, res["valid"])

	rec = suite.http.MakeRequest("POST", "/api/shifts/check", map[string]string{
		"employee_id": suite.employeeID, "date": "2024-03-04", "start_time": "12:00", "end_time": "15:00",
	})
	suite.Require().Equal(http.StatusOK, rec.Code)
	testutils.ParseJSONResponse(suite.T(), rec, &res)
	suite.Equal(true, res["conflict"])
}

func (suite *HandlerTestSuite) TestFullWeek() {
	suite.createShift("2024-03-06", "10:00", "11:00")

	body := map[string]interface{}{
		"employee_id": suite.employeeID,
		"location_id": suite.locationID,
		"week_of":     "2024-03-04",
		"days":        []int{0, 1, 2, 3, 4},
		"start_time":  "09:00",
		"end_time":    "17:00",
	}
	rec := suite.http.MakeRequest("POST", "/api/shifts/full-week", body)
	suite.Require().Equal(http.StatusConflict, rec.Code)
	var conflict struct {
		Message          string   `json:"message"`
		ConflictingDates []string `json:"conflicting_dates"`
	}
	testutils.ParseJSONResponse(suite.T(), rec, &conflict)
	suite.Equal("Ya hay turnos asignados en: 06/03", conflict.Message)
	suite.Equal([]string{"06/03"}, conflict.ConflictingDates)

	body["days"] = []int{0, 1, 3, 4}
	rec = suite.http.MakeRequest("POST", "/api/shifts/full-week", body)
	suite.Require().Equal(http.StatusCreated, rec.Code, rec.Body.String())

	rec = suite.http.MakeRequest("GET", "/api/shifts?week=2024-03-07&active=true", nil)
	suite.Require().Equal(http.StatusOK, rec.Code)
	var list struct {
		Shifts []models.Shift `json:"shifts"`
	}
	testutils.ParseJSONResponse(suite.T(), rec, &list)
	suite.Len(list.Shifts, 5)

	rec = suite.http.MakeRequest("GET", "/api/audit-logs?entity_type=asignacion", nil)
	var logs struct {
		AuditLogs []models.AuditLog `json:"audit_logs"`
	}
	testutils.ParseJSONResponse(suite.T(), rec, &logs)
	suite.Require().Len(logs.AuditLogs, 2)
	suite.Equal(models.ActionFullWeekCreated, logs.AuditLogs[0].Action)
	suite.Equal("admin@turnos.local", logs.AuditLogs[0].UserEmail)
}

func (suite *HandlerTestSuite) TestUpdateMoveDelete() {
	shift := suite.createShift("2024-03-04", "09:00", "13:00")

	rec := suite.http.MakeRequest("PUT", "/api/shifts/"+shift.ID, map[string]string{"end_time": "15:00"})
	suite.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())

	var puerto models.Location
	rec = suite.http.MakeRequest("POST", "/api/locations", map[string]string{"name": "Puerto"})
	testutils.ParseJSONResponse(suite.T(), rec, &puerto)

	rec = suite.http.MakeRequest("POST", "/api/shifts/"+shift.ID+"/move", map[string]string{"location_id": puerto.ID})
	suite.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())
	var moved models.Shift
	testutils.ParseJSONResponse(suite.T(), rec, &moved)
	suite.Equal("Puerto", moved.Location.Name)
	suite.Equal("15:00", moved.EndTime)

	rec = suite.http.MakeRequest("DELETE", "/api/shifts/"+shift.ID, nil)
	suite.Equal(http.StatusOK, rec.Code)
	rec = suite.http.MakeRequest("GET", "/api/shifts/"+shift.ID, nil)
	suite.Equal(http.StatusNotFound, rec.Code)
}

func (suite *HandlerTestSuite) TestDeletedEmployeePlaceholder() {
	suite.createShift("2024-03-04", "09:00", "13:00")
	rec := suite.http.MakeRequest("DELETE", "/api/employees/"+suite.employeeID, nil)
	suite.Require().Equal(http.StatusOK, rec.Code)

	rec = suite.http.MakeRequest("GET", "/api/shifts", nil)
	var list struct {
		Shifts []models.Shift `json:"shifts"`
	}
	testutils.ParseJSONResponse(suite.T(), rec, &list)
	suite.Require().Len(list.Shifts, 1)
	suite.Equal("Empleado eliminado", list.Shifts[0].Employee.FirstName)
}

func (suite *HandlerTestSuite) TestSnapshots() {
	suite.createShift("2024-03-04", "09:00", "13:00")

	rec := suite.http.MakeRequest("POST", "/api/snapshots", map[string]string{"date": "2024-03-05"})
	suite.Require().Equal(http.StatusCreated, rec.Code, rec.Body.String())
	var snap models.Snapshot
	testutils.ParseJSONResponse(suite.T(), rec, &snap)
	suite.Equal("Semana del 04/03 al 10/03", snap.Name)
	suite.Equal(1, snap.TotalShifts)

	rec = suite.http.MakeRequest("POST", "/api/snapshots", nil)
	suite.Require().Equal(http.StatusCreated, rec.Code, "body is optional")

	rec = suite.http.MakeRequest("GET", "/api/snapshots/"+snap.ID+"/csv", nil)
	suite.Require().Equal(http.StatusOK, rec.Code)
	suite.True(strings.HasPrefix(rec.Header().Get("Content-Type"), "text/csv"))
	suite.Contains(rec.Body.String(), "Ana Zapata,Centro,2024-03-04,09:00,13:00,4.00")

	rec = suite.http.MakeRequest("GET", "/api/snapshots", nil)
	var list struct {
		Snapshots []models.Snapshot `json:"snapshots"`
	}
	testutils.ParseJSONResponse(suite.T(), rec, &list)
	suite.Len(list.Snapshots, 2)

	rec = suite.http.MakeRequest("DELETE", "/api/snapshots/"+snap.ID, nil)
	suite.Equal(http.StatusOK, rec.Code)
	rec = suite.http.MakeRequest("GET", "/api/snapshots/"+snap.ID, nil)
	suite.Equal(http.StatusNotFound, rec.Code)
}

func (suite *HandlerTestSuite) TestWeeklyReportAndMessage() {
	suite.createShift("2024-03-04", "09:00", "13:00")
	suite.createShift("2024-03-05", "14:00", "18:30")

	rec := suite.http.MakeRequest("GET", "/api/reports/weekly?date=2024-03-06", nil)
	suite.Require().Equal(http.StatusOK, rec.Code)
	var report struct {
		TotalHours   float64 `json:"total_hours"`
		TotalShifts  int     `json:"total_shifts"`
		AverageHours float64 `json:"average_hours"`
	}
	testutils.ParseJSONResponse(suite.T(), rec, &report)
	suite.InDelta(8.5, report.TotalHours, 1e-9)
	suite.Equal(2, report.TotalShifts)
	suite.InDelta(8.5, report.AverageHours, 1e-9)

	rec = suite.http.MakeRequest("GET", "/api/employees/"+suite.employeeID+"/schedule-message?date=2024-03-06", nil)
	suite.Require().Equal(http.StatusOK, rec.Code)
	var msg struct {
		Text        string `json:"text"`
		WhatsAppURL string `json:"whatsapp_url"`
	}
	testutils.ParseJSONResponse(suite.T(), rec, &msg)
	suite.Contains(msg.Text, "• Martes 05/03: 14:00 - 18:30")
	suite.Contains(msg.Text, "⏰ *Total:* 8.5 horas")
	suite.True(strings.HasPrefix(msg.WhatsAppURL, "https://wa.me/542235551234?text="))

	rec = suite.http.MakeRequest("GET", "/api/reports/weekly?date=06-03-2024", nil)
	suite.Equal(http.StatusBadRequest, rec.Code)
}

func TestHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(HandlerTestSuite))
}

func TestRouterRegistersRoutes(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := handlers.NewRouter(handlers.New(testutils.NewTestDB(t), "s", nil))
	assert.GreaterOrEqual(t, len(r.Routes()), 25)
}
