package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"transport_registry/internal/models"
)

func (ctl *Controller) CreateShift(c *gin.Context) {
	var shift models.Shift
	if !bindJSON(c, "CreateShift", &shift) {
		return
	}
	if err := ctl.reg.CreateShift(c.Request.Context(), &shift); err != nil {
		respondError(c, "CreateShift", err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"shift": shift})
}

func (ctl *Controller) GetShift(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	shift, err := ctl.reg.GetShift(c.Request.Context(), id)
	if err != nil {
		respondError(c, "GetShift", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"shift": shift})
}

// ListShifts lists shifts ordered by name.
func (ctl *Controller) ListShifts(c *gin.Context) {
	list, err := ctl.reg.ListShifts(c.Request.Context())
	if err != nil {
		respondError(c, "ListShifts", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": list})
}

func (ctl *Controller) UpdateShift(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var patch models.ShiftPatch
	if !bindPatch(c, "UpdateShift", &patch) {
		return
	}
	shift, err := ctl.reg.UpdateShift(c.Request.Context(), id, patch)
	if err != nil {
		respondError(c, "UpdateShift", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"shift": shift})
}

func (ctl *Controller) DeleteShift(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := ctl.reg.DeleteShift(c.Request.Context(), id); err != nil {
		respondError(c, "DeleteShift", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Shift deleted"})
}
