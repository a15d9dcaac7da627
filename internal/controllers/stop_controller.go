package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"transport_registry/internal/models"
)

// CreateStop adds a stop with its coordinates.
func (ctl *Controller) CreateStop(c *gin.Context) {
	var stop models.Stop
	if !bindJSON(c, "CreateStop", &stop) {
		return
	}
	if err := ctl.reg.CreateStop(c.Request.Context(), &stop); err != nil {
		respondError(c, "CreateStop", err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"stop": stop})
}

func (ctl *Controller) GetStop(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	stop, err := ctl.reg.GetStop(c.Request.Context(), id)
	if err != nil {
		respondError(c, "GetStop", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"stop": stop})
}

func (ctl *Controller) ListStops(c *gin.Context) {
	list, err := ctl.reg.ListStops(c.Request.Context())
	if err != nil {
		respondError(c, "ListStops", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": list})
}

// UpdateStop applies a partial update; omitted or null fields keep their value.
func (ctl *Controller) UpdateStop(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var patch models.StopPatch
	if !bindPatch(c, "UpdateStop", &patch) {
		return
	}
	stop, err := ctl.reg.UpdateStop(c.Request.Context(), id, patch)
	if err != nil {
		respondError(c, "UpdateStop", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"stop": stop})
}

// DeleteStop removes a stop that nothing links to any more.
func (ctl *Controller) DeleteStop(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := ctl.reg.DeleteStop(c.Request.Context(), id); err != nil {
		respondError(c, "DeleteStop", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Stop deleted"})
}
