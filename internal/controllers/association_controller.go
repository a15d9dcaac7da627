package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type assignRouteInput struct {
	LineNumber *string `json:"line_number"`
}

type batchAssignInput struct {
	LineID   uint   `json:"line_id" binding:"required"`
	RouteIDs []uint `json:"route_ids" binding:"required"`
}

// AssignRouteToLine links a route to a line. The label may come from the
// line_number query parameter or body; it defaults to the line's number.
func (ctl *Controller) AssignRouteToLine(c *gin.Context) {
	lineID, ok := parseID(c, "id")
	if !ok {
		return
	}
	routeID, ok := parseID(c, "route_id")
	if !ok {
		return
	}

	var input assignRouteInput
	if !bindPatch(c, "AssignRouteToLine", &input) {
		return
	}
	if n, set := c.GetQuery("line_number"); set {
		input.LineNumber = &n
	}

	lr, err := ctl.reg.AssignRoute(c.Request.Context(), lineID, routeID, input.LineNumber)
	if err != nil {
		respondError(c, "AssignRouteToLine", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"assignment": lr})
}

func (ctl *Controller) RemoveRouteFromLine(c *gin.Context) {
	lineID, ok := parseID(c, "id")
	if !ok {
		return
	}
	routeID, ok := parseID(c, "route_id")
	if !ok {
		return
	}
	if err := ctl.reg.UnassignRoute(c.Request.Context(), lineID, routeID); err != nil {
		respondError(c, "RemoveRouteFromLine", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Route removed from line"})
}

func (ctl *Controller) RoutesForLine(c *gin.Context) {
	lineID, ok := parseID(c, "id")
	if !ok {
		return
	}
	routes, err := ctl.reg.RoutesForLine(c.Request.Context(), lineID)
	if err != nil {
		respondError(c, "RoutesForLine", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": routes})
}

func (ctl *Controller) LinesForRoute(c *gin.Context) {
	routeID, ok := parseID(c, "id")
	if !ok {
		return
	}
	lines, err := ctl.reg.LinesForRoute(c.Request.Context(), routeID)
	if err != nil {
		respondError(c, "LinesForRoute", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": lines})
}

// GetLineComplete returns a line with all its routes.
func (ctl *Controller) GetLineComplete(c *gin.Context) {
	lineID, ok := parseID(c, "id")
	if !ok {
		return
	}
	line, err := ctl.reg.LineWithRoutes(c.Request.Context(), lineID)
	if err != nil {
		respondError(c, "GetLineComplete", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"line": line})
}

// GetRouteComplete returns a route with all lines using it.
func (ctl *Controller) GetRouteComplete(c *gin.Context) {
	routeID, ok := parseID(c, "id")
	if !ok {
		return
	}
	route, err := ctl.reg.RouteWithLines(c.Request.Context(), routeID)
	if err != nil {
		respondError(c, "GetRouteComplete", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"route": route})
}

// AssignRoutesBatch assigns several routes to one line. Items fail
// independently and are reported in "errors".
func (ctl *Controller) AssignRoutesBatch(c *gin.Context) {
	var input batchAssignInput
	if !bindJSON(c, "AssignRoutesBatch", &input) {
		return
	}
	res, err := ctl.reg.AssignRoutes(c.Request.Context(), input.LineID, input.RouteIDs)
	if err != nil {
		respondError(c, "AssignRoutesBatch", err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (ctl *Controller) LinkVariantToRoute(c *gin.Context) {
	routeID, ok := parseID(c, "id")
	if !ok {
		return
	}
	variantID, ok := parseID(c, "variant_id")
	if !ok {
		return
	}
	link, err := ctl.reg.LinkVariant(c.Request.Context(), routeID, variantID)
	if err != nil {
		respondError(c, "LinkVariantToRoute", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"link": link})
}

func (ctl *Controller) UnlinkVariantFromRoute(c *gin.Context) {
	routeID, ok := parseID(c, "id")
	if !ok {
		return
	}
	variantID, ok := parseID(c, "variant_id")
	if !ok {
		return
	}
	if err := ctl.reg.UnlinkVariant(c.Request.Context(), routeID, variantID); err != nil {
		respondError(c, "UnlinkVariantFromRoute", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Variant removed from route"})
}

func (ctl *Controller) VariantsForRoute(c *gin.Context) {
	routeID, ok := parseID(c, "id")
	if !ok {
		return
	}
	variants, err := ctl.reg.VariantsForRoute(c.Request.Context(), routeID)
	if err != nil {
		respondError(c, "VariantsForRoute", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": variants})
}
