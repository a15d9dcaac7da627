package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"transport_registry/internal/registry"
)

type variantStopsInput struct {
	StopIDs []uint `json:"stop_ids" binding:"required"`
}

// CreateRouteWithVariant builds a route, its variant and the variant's stop
// sequence in one go, optionally assigning it to a line by number.
func (ctl *Controller) CreateRouteWithVariant(c *gin.Context) {
	var input registry.RouteWithVariantInput
	if !bindJSON(c, "CreateRouteWithVariant", &input) {
		return
	}
	route, err := ctl.reg.CreateRouteWithVariant(c.Request.Context(), input)
	if err != nil {
		respondError(c, "CreateRouteWithVariant", err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"route": route})
}

func (ctl *Controller) GetVariantStops(c *gin.Context) {
	variantID, ok := parseID(c, "id")
	if !ok {
		return
	}
	stops, err := ctl.reg.VariantStops(c.Request.Context(), variantID)
	if err != nil {
		respondError(c, "GetVariantStops", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": stops})
}

// ReplaceVariantStops replaces the variant's whole stop sequence.
func (ctl *Controller) ReplaceVariantStops(c *gin.Context) {
	variantID, ok := parseID(c, "id")
	if !ok {
		return
	}
	var input variantStopsInput
	if !bindJSON(c, "ReplaceVariantStops", &input) {
		return
	}
	stops, err := ctl.reg.ReplaceVariantStops(c.Request.Context(), variantID, input.StopIDs)
	if err != nil {
		respondError(c, "ReplaceVariantStops", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": stops})
}

// GetVariantGeometry returns the variant path as a GeoJSON FeatureCollection.
func (ctl *Controller) GetVariantGeometry(c *gin.Context) {
	variantID, ok := parseID(c, "id")
	if !ok {
		return
	}
	fc, err := ctl.reg.VariantGeometry(c.Request.Context(), variantID)
	if err != nil {
		respondError(c, "GetVariantGeometry", err)
		return
	}
	c.JSON(http.StatusOK, fc)
}
