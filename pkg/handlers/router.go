package handlers

import (
	"github.com/gin-gonic/gin"
)

// NewRouter registers every route on a fresh gin engine
func NewRouter(h *Handler) *gin.Engine {
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	r.GET("/", h.Index)
	// Slow down password guessing
	r.POST("/auth/login", RateLimitByIP(1, 5), h.Login)

	api := r.Group("/api")
	api.Use(h.AuthMiddleware())
	{
		api.GET("/employees", h.ListEmployees)
		api.POST("/employees", h.CreateEmployee)
		api.GET("/employees/:id", h.GetEmployee)
		api.PUT("/employees/:id", h.UpdateEmployee)
		api.DELETE("/employees/:id", h.DeleteEmployee)
		api.GET("/employees/:id/schedule-message", h.ScheduleMessage)

		api.GET("/locations", h.ListLocations)
		api.POST("/locations", h.CreateLocation)
		api.GET("/locations/:id", h.GetLocation)
		api.PUT("/locations/:id", h.UpdateLocation)
		api.DELETE("/locations/:id", h.DeleteLocation)

		api.GET("/shifts", h.ListShifts)
		api.POST("/shifts", h.CreateShift)
		api.POST("/shifts/check", h.CheckConflict)
		api.POST("/shifts/full-week", h.CreateFullWeek)
		api.GET("/shifts/:id", h.GetShift)
		api.PUT("/shifts/:id", h.UpdateShift)
		api.DELETE("/shifts/:id", h.DeleteShift)
		api.POST("/shifts/:id/move", h.MoveShift)

		api.GET("/snapshots", h.ListSnapshots)
		api.POST("/snapshots", h.CreateSnapshot)
		api.GET("/snapshots/:id", h.GetSnapshot)
		api.DELETE("/snapshots/:id", h.DeleteSnapshot)
		api.GET("/snapshots/:id/csv", h.ExportSnapshotCSV)

		api.GET("/audit-logs", h.ListAuditLogs)
		api.GET("/reports/weekly", h.WeeklyReport)
	}

	return r
}
