package handlers

import (
	"bytes"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mdqapps/turnos-api/pkg/service"
)

func (h *Handler) ListSnapshots(c *gin.Context) {
	snapshots, err := h.Snapshots.List(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"snapshots": snapshots})
}

func (h *Handler) GetSnapshot(c *gin.Context) {
	snapshot, err := h.Snapshots.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, snapshot)
}

// CreateSnapshot saves the current roster. The body is optional.
func (h *Handler) CreateSnapshot(c *gin.Context) {
	var req service.CreateSnapshotRequest
	if c.Request.ContentLength > 0 && !bindJSON(c, &req) {
		return
	}

	snapshot, err := h.Snapshots.Create(c.Request.Context(), actorFrom(c), &req)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, snapshot)
}

func (h *Handler) DeleteSnapshot(c *gin.Context) {
	if err := h.Snapshots.Delete(c.Request.Context(), actorFrom(c), c.Param("id")); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Snapshot deleted"})
}

// ExportSnapshotCSV downloads the shifts of a snapshot as CSV
func (h *Handler) ExportSnapshotCSV(c *gin.Context) {
	id := c.Param("id")

	var buf bytes.Buffer
	if err := h.Snapshots.ExportCSV(c.Request.Context(), id, &buf); err != nil {
		h.respondError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="snapshot-`+id+`.csv"`)
	c.Data(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}
