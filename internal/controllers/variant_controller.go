package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"transport_registry/internal/models"
)

// CreateRouteVariant adds a standalone variant. Stops and the owning route
// are attached afterwards.
func (ctl *Controller) CreateRouteVariant(c *gin.Context) {
	var variant models.RouteVariant
	if !bindJSON(c, "CreateRouteVariant", &variant) {
		return
	}
	if err := ctl.reg.CreateRouteVariant(c.Request.Context(), &variant); err != nil {
		respondError(c, "CreateRouteVariant", err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"variant": variant})
}

func (ctl *Controller) GetRouteVariant(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	variant, err := ctl.reg.GetRouteVariant(c.Request.Context(), id)
	if err != nil {
		respondError(c, "GetRouteVariant", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"variant": variant})
}

func (ctl *Controller) ListRouteVariants(c *gin.Context) {
	list, err := ctl.reg.ListRouteVariants(c.Request.Context())
	if err != nil {
		respondError(c, "ListRouteVariants", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": list})
}

// UpdateRouteVariant applies a partial update; omitted or null fields keep their value.
func (ctl *Controller) UpdateRouteVariant(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var patch models.RouteVariantPatch
	if !bindPatch(c, "UpdateRouteVariant", &patch) {
		return
	}
	variant, err := ctl.reg.UpdateRouteVariant(c.Request.Context(), id, patch)
	if err != nil {
		respondError(c, "UpdateRouteVariant", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"variant": variant})
}

// DeleteRouteVariant removes a route variant that nothing links to any more.
func (ctl *Controller) DeleteRouteVariant(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := ctl.reg.DeleteRouteVariant(c.Request.Context(), id); err != nil {
		respondError(c, "DeleteRouteVariant", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Route variant deleted"})
}
