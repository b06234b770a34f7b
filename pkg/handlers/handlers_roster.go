package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mdqapps/turnos-api/pkg/service"
)

func (h *Handler) ListEmployees(c *gin.Context) {
	employees, err := h.Employees.GetAll(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"employees": employees})
}

func (h *Handler) GetEmployee(c *gin.Context) {
	employee, err := h.Employees.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, employee)
}

func (h *Handler) CreateEmployee(c *gin.Context) {
	var req service.CreateEmployeeRequest
	if !bindJSON(c, &req) {
		return
	}

	employee, err := h.Employees.Create(c.Request.Context(), actorFrom(c), &req)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, employee)
}

func (h *Handler) UpdateEmployee(c *gin.Context) {
	var req service.UpdateEmployeeRequest
	if !bindJSON(c, &req) {
		return
	}

	employee, err := h.Employees.Update(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, employee)
}

// DeleteEmployee removes an employee; their shifts are kept
func (h *Handler) DeleteEmployee(c *gin.Context) {
	if err := h.Employees.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Employee deleted"})
}

func (h *Handler) ListLocations(c *gin.Context) {
	locations, err := h.Locations.GetAll(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"locations": locations})
}

func (h *Handler) GetLocation(c *gin.Context) {
	location, err := h.Locations.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, location)
}

func (h *Handler) CreateLocation(c *gin.Context) {
	var req service.LocationRequest
	if !bindJSON(c, &req) {
		return
	}

	location, err := h.Locations.Create(c.Request.Context(), actorFrom(c), &req)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, location)
}

func (h *Handler) UpdateLocation(c *gin.Context) {
	var req service.LocationRequest
	if !bindJSON(c, &req) {
		return
	}

	location, err := h.Locations.Update(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, location)
}

func (h *Handler) DeleteLocation(c *gin.Context) {
	if err := h.Locations.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Location deleted"})
}
