package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"transport_registry/internal/models"
)

func (ctl *Controller) CreateRoute(c *gin.Context) {
	var route models.Route
	if !bindJSON(c, "CreateRoute", &route) {
		return
	}
	if err := ctl.reg.CreateRoute(c.Request.Context(), &route); err != nil {
		respondError(c, "CreateRoute", err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"route": route})
}

func (ctl *Controller) GetRoute(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	route, err := ctl.reg.GetRoute(c.Request.Context(), id)
	if err != nil {
		respondError(c, "GetRoute", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"route": route})
}

func (ctl *Controller) ListRoutes(c *gin.Context) {
	list, err := ctl.reg.ListRoutes(c.Request.Context())
	if err != nil {
		respondError(c, "ListRoutes", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": list})
}

func (ctl *Controller) UpdateRoute(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var patch models.RoutePatch
	if !bindPatch(c, "UpdateRoute", &patch) {
		return
	}
	route, err := ctl.reg.UpdateRoute(c.Request.Context(), id, patch)
	if err != nil {
		respondError(c, "UpdateRoute", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"route": route})
}

// DeleteRoute removes a route that nothing links to any more.
func (ctl *Controller) DeleteRoute(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := ctl.reg.DeleteRoute(c.Request.Context(), id); err != nil {
		respondError(c, "DeleteRoute", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Route deleted"})
}
