package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/mdqapps/turnos-api/pkg/models"
)

// ListAuditLogs returns audit entries, newest first
func (h *Handler) ListAuditLogs(c *gin.Context) {
	filter := models.AuditFilter{
		UserID:     c.Query("user_id"),
		EntityType: models.EntityType(c.Query("entity_type")),
		EntityID:   c.Query("entity_id"),
	}
	if raw := c.Query("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a positive number"})
			return
		}
		filter.Limit = limit
	}

	entries, err := h.Audit.List(c.Request.Context(), filter)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"audit_logs": entries})
}

// WeeklyReport returns hours per employee for the week containing ?date=
func (h *Handler) WeeklyReport(c *gin.Context) {
	anchor, ok := h.dayParam(c, "date")
	if !ok {
		return
	}

	report, err := h.Reports.Weekly(c.Request.Context(), anchor)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

// ScheduleMessage returns the weekly schedule text for one employee
func (h *Handler) ScheduleMessage(c *gin.Context) {
	anchor, ok := h.dayParam(c, "date")
	if !ok {
		return
	}

	msg, err := h.Messages.WeeklyMessage(c.Request.Context(), c.Param("id"), anchor)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, msg)
}
