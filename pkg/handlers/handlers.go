package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	apperrors "github.com/mdqapps/turnos-api/pkg/apperrors"
	"github.com/mdqapps/turnos-api/pkg/auth"
	"github.com/mdqapps/turnos-api/pkg/logger"
	"github.com/mdqapps/turnos-api/pkg/models"
	"github.com/mdqapps/turnos-api/pkg/repository"
	"github.com/mdqapps/turnos-api/pkg/service"
	"gorm.io/gorm"
)

const actorKey = "actor"

// Handler contains dependencies for the route handlers
type Handler struct {
	Auth      *auth.Service
	Employees *service.EmployeeService
	Locations *service.LocationService
	Shifts    *service.ShiftService
	Snapshots *service.SnapshotService
	Audit     *service.AuditService
	Reports   *service.ReportService
	Messages  *service.MessageService

	// Zone used to read dates in query strings
	TZ  *time.Location
	now func() time.Time
}

// New wires repositories and services on top of db
func New(db *gorm.DB, jwtSecret string, tz *time.Location) *Handler {
	if tz == nil {
		tz = time.UTC
	}
	v := service.NewValidator()

	users := repository.NewUserRepository(db)
	employees := repository.NewEmployeeRepository(db)
	locations := repository.NewLocationRepository(db)
	shifts := repository.NewShiftRepository(db)
	snapshots := repository.NewSnapshotRepository(db)
	audit := service.NewAuditService(repository.NewAuditLogRepository(db))

	return &Handler{
		Auth:      auth.NewService(users, jwtSecret),
		Employees: service.NewEmployeeService(employees, shifts, v),
		Locations: service.NewLocationService(locations, v),
		Shifts:    service.NewShiftService(shifts, employees, locations, audit, v, tz),
		Snapshots: service.NewSnapshotService(snapshots, shifts, employees, locations, audit, v, tz),
		Audit:     audit,
		Reports:   service.NewReportService(shifts, employees, tz),
		Messages:  service.NewMessageService(shifts, employees, locations, tz),
		TZ:        tz,
		now:       time.Now,
	}
}

// AuthMiddleware verifies the JWT token and records who is acting
func (h *Handler) AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.GetHeader("Authorization")
		if token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required"})
			c.Abort()
			return
		}

		// Strip "Bearer " if present
		token = strings.TrimPrefix(token, "Bearer ")

		claims, err := h.Auth.VerifyToken(token)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			c.Abort()
			return
		}

		c.Set(actorKey, claims.Actor())
		c.Request = c.Request.WithContext(logger.ContextWithActor(c.Request.Context(), claims.Email))
		c.Next()
	}
}

// Login handles user login
func (h *Handler) Login(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	token, user, err := h.Auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if apperrors.IsAuthentication(err) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
			return
		}
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"access_token": token, "token_type": "bearer", "user": user})
}

// Index is the service banner
func (h *Handler) Index(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "Turnos API",
		"version": "1.0.0",
	})
}

func actorFrom(c *gin.Context) models.Actor {
	if v, ok := c.Get(actorKey); ok {
		if a, ok := v.(models.Actor); ok {
			return a
		}
	}
	return models.Actor{}
}

// respondError maps service errors to status codes
func (h *Handler) respondError(c *gin.Context, err error) {
	var verr *apperrors.ValidationError
	var cerr *apperrors.ConflictError
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, gin.H{"error": verr.Message, "field": verr.Field})
	case apperrors.IsNotFound(err):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.As(err, &cerr):
		body := gin.H{"error": cerr.Message, "message": cerr.Message}
		if len(cerr.Dates) > 0 {
			body["conflicting_dates"] = cerr.Dates
		}
		c.JSON(http.StatusConflict, body)
	case apperrors.IsAuthentication(err):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	default:
		logger.WithContext(c.Request.Context()).WithField("path", c.FullPath()).Errorf("request failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}

// bindJSON decodes the body into req and answers 400 on failure
func bindJSON(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return false
	}
	return true
}

// dayParam reads a YYYY-MM-DD query parameter, defaulting to today
func (h *Handler) dayParam(c *gin.Context, name string) (time.Time, bool) {
	raw := c.Query(name)
	if raw == "" {
		return h.now().In(h.TZ), true
	}
	t, err := time.ParseInLocation("2006-01-02", raw, h.TZ)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": name + " must be YYYY-MM-DD"})
		return time.Time{}, false
	}
	return t, true
}
