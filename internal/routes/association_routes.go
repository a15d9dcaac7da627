package routes

import (
	"github.com/gin-gonic/gin"

	"transport_registry/internal/controllers"
)

func AssociationRoutes(g *gin.RouterGroup, ctl *controllers.Controller) {
	// line <-> route
	g.POST("/lines/:id/routes/:route_id", ctl.AssignRouteToLine)
	g.DELETE("/lines/:id/routes/:route_id", ctl.RemoveRouteFromLine)
	g.GET("/lines/:id/routes", ctl.RoutesForLine)
	g.GET("/lines/:id/complete", ctl.GetLineComplete)
	g.GET("/routes/:id/lines", ctl.LinesForRoute)
	g.GET("/routes/:id/complete", ctl.GetRouteComplete)
	g.POST("/line-routes/batch", ctl.AssignRoutesBatch)

	// route <-> variant
	g.POST("/routes/:id/variants/:variant_id", ctl.LinkVariantToRoute)
	g.DELETE("/routes/:id/variants/:variant_id", ctl.UnlinkVariantFromRoute)
	g.GET("/routes/:id/variants", ctl.VariantsForRoute)

	// variant <-> stops
	g.GET("/variants/:id/stops", ctl.GetVariantStops)
	g.PUT("/variants/:id/stops", ctl.ReplaceVariantStops)
	g.GET("/variants/:id/geometry", ctl.GetVariantGeometry)

	g.POST("/routes-with-variant", ctl.CreateRouteWithVariant)
}
