package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"transport_registry/internal/models"
)

// CreateBus registers a new bus; the registration plate must be unique.
func (ctl *Controller) CreateBus(c *gin.Context) {
	var bus models.Bus
	if !bindJSON(c, "CreateBus", &bus) {
		return
	}
	if err := ctl.reg.CreateBus(c.Request.Context(), &bus); err != nil {
		respondError(c, "CreateBus", err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"bus": bus})
}

func (ctl *Controller) GetBus(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	bus, err := ctl.reg.GetBus(c.Request.Context(), id)
	if err != nil {
		respondError(c, "GetBus", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"bus": bus})
}

// ListBuses lists every bus.
func (ctl *Controller) ListBuses(c *gin.Context) {
	list, err := ctl.reg.ListBuses(c.Request.Context())
	if err != nil {
		respondError(c, "ListBuses", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": list})
}

// UpdateBus applies a partial update; omitted or null fields keep their value.
func (ctl *Controller) UpdateBus(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var patch models.BusPatch
	if !bindPatch(c, "UpdateBus", &patch) {
		return
	}
	bus, err := ctl.reg.UpdateBus(c.Request.Context(), id, patch)
	if err != nil {
		respondError(c, "UpdateBus", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"bus": bus})
}

func (ctl *Controller) DeleteBus(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := ctl.reg.DeleteBus(c.Request.Context(), id); err != nil {
		respondError(c, "DeleteBus", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Bus deleted"})
}
