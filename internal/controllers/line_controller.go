package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"transport_registry/internal/models"
)

// CreateLine adds a new line; numbers are unique.
func (ctl *Controller) CreateLine(c *gin.Context) {
	var line models.Line
	if !bindJSON(c, "CreateLine", &line) {
		return
	}
	if err := ctl.reg.CreateLine(c.Request.Context(), &line); err != nil {
		respondError(c, "CreateLine", err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"line": line})
}

func (ctl *Controller) GetLine(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	line, err := ctl.reg.GetLine(c.Request.Context(), id)
	if err != nil {
		respondError(c, "GetLine", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"line": line})
}

// ListLines lists lines ordered by number.
func (ctl *Controller) ListLines(c *gin.Context) {
	list, err := ctl.reg.ListLines(c.Request.Context())
	if err != nil {
		respondError(c, "ListLines", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": list})
}

func (ctl *Controller) UpdateLine(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var patch models.LinePatch
	if !bindPatch(c, "UpdateLine", &patch) {
		return
	}
	line, err := ctl.reg.UpdateLine(c.Request.Context(), id, patch)
	if err != nil {
		respondError(c, "UpdateLine", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"line": line})
}

// DeleteLine removes a line that nothing links to any more.
func (ctl *Controller) DeleteLine(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := ctl.reg.DeleteLine(c.Request.Context(), id); err != nil {
		respondError(c, "DeleteLine", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Line deleted"})
}
