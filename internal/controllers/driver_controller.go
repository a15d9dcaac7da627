package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"transport_registry/internal/models"
)

// CreateDriver registers a driver; national_id (PESEL) must be unique.
func (ctl *Controller) CreateDriver(c *gin.Context) {
	var driver models.Driver
	if !bindJSON(c, "CreateDriver", &driver) {
		return
	}
	if err := ctl.reg.CreateDriver(c.Request.Context(), &driver); err != nil {
		respondError(c, "CreateDriver", err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"driver": driver})
}

func (ctl *Controller) GetDriver(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	driver, err := ctl.reg.GetDriver(c.Request.Context(), id)
	if err != nil {
		respondError(c, "GetDriver", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"driver": driver})
}

func (ctl *Controller) ListDrivers(c *gin.Context) {
	list, err := ctl.reg.ListDrivers(c.Request.Context())
	if err != nil {
		respondError(c, "ListDrivers", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": list})
}

func (ctl *Controller) UpdateDriver(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var patch models.DriverPatch
	if !bindPatch(c, "UpdateDriver", &patch) {
		return
	}
	driver, err := ctl.reg.UpdateDriver(c.Request.Context(), id, patch)
	if err != nil {
		respondError(c, "UpdateDriver", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"driver": driver})
}

func (ctl *Controller) DeleteDriver(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := ctl.reg.DeleteDriver(c.Request.Context(), id); err != nil {
		respondError(c, "DeleteDriver", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Driver deleted"})
}
