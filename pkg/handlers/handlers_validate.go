package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mdqapps/turnos-api/pkg/service"
)

// CheckConflict validates a proposed shift without saving it. A collision is
// reported in the body with status 200; only malformed input is an error.
func (h *Handler) CheckConflict(c *gin.Context) {
	var req service.CheckConflictRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"valid": false,
			"error": err.Error(),
		})
		return
	}

	res, err := h.Shifts.CheckConflict(c.Request.Context(), &req)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"valid":    !res.Conflict,
		"conflict": res.Conflict,
		"message":  res.Message,
	})
}
