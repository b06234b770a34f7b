package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mdqapps/turnos-api/pkg/models"
	"github.com/mdqapps/turnos-api/pkg/scheduler"
	"github.com/mdqapps/turnos-api/pkg/service"
)

// ListShifts returns shifts filtered by query parameters. "week" selects the
// Monday to Sunday window containing that date; "from" and "to" bound the
// range explicitly.
func (h *Handler) ListShifts(c *gin.Context) {
	filter := models.ShiftFilter{
		EmployeeID: c.Query("employee_id"),
		LocationID: c.Query("location_id"),
	}

	if raw := c.Query("active"); raw != "" {
		active, err := strconv.ParseBool(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "active must be true or false"})
			return
		}
		filter.Active = &active
	}

	if c.Query("week") != "" {
		anchor, ok := h.dayParam(c, "week")
		if !ok {
			return
		}
		monday, sunday := scheduler.Week(anchor)
		filter.DateFrom, filter.DateTo = &monday, &sunday
	}
	if c.Query("from") != "" {
		from, ok := h.dayParam(c, "from")
		if !ok {
			return
		}
		filter.DateFrom = &from
	}
	if c.Query("to") != "" {
		to, ok := h.dayParam(c, "to")
		if !ok {
			return
		}
		end := time.Date(to.Year(), to.Month(), to.Day(), 23, 59, 59, int(999*time.Millisecond), to.Location())
		filter.DateTo = &end
	}

	shifts, err := h.Shifts.List(c.Request.Context(), filter)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"shifts": shifts})
}

func (h *Handler) GetShift(c *gin.Context) {
	shift, err := h.Shifts.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, shift)
}

func (h *Handler) CreateShift(c *gin.Context) {
	var req service.CreateShiftRequest
	if !bindJSON(c, &req) {
		return
	}

	shift, err := h.Shifts.Create(c.Request.Context(), actorFrom(c), &req)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, shift)
}

func (h *Handler) UpdateShift(c *gin.Context) {
	var req service.UpdateShiftRequest
	if !bindJSON(c, &req) {
		return
	}

	shift, err := h.Shifts.Update(c.Request.Context(), actorFrom(c), c.Param("id"), &req)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, shift)
}

// MoveShift changes the location of a shift
func (h *Handler) MoveShift(c *gin.Context) {
	var req service.MoveShiftRequest
	if !bindJSON(c, &req) {
		return
	}

	shift, err := h.Shifts.Move(c.Request.Context(), actorFrom(c), c.Param("id"), &req)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, shift)
}

func (h *Handler) DeleteShift(c *gin.Context) {
	if err := h.Shifts.Delete(c.Request.Context(), actorFrom(c), c.Param("id")); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Shift deleted"})
}

// CreateFullWeek assigns one slot on several days of a week
func (h *Handler) CreateFullWeek(c *gin.Context) {
	var req service.FullWeekRequest
	if !bindJSON(c, &req) {
		return
	}

	res, err := h.Shifts.CreateFullWeek(c.Request.Context(), actorFrom(c), &req)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, res)
}
