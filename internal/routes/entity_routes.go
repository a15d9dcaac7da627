package routes

import (
	"github.com/gin-gonic/gin"

	"transport_registry/internal/controllers"
)

// EntityRoutes registers CRUD endpoints. Updates accept PUT and PATCH alike.
func EntityRoutes(g *gin.RouterGroup, ctl *controllers.Controller) {
	crud(g, "/buses", ctl.CreateBus, ctl.ListBuses, ctl.GetBus, ctl.UpdateBus, ctl.DeleteBus)
	crud(g, "/drivers", ctl.CreateDriver, ctl.ListDrivers, ctl.GetDriver, ctl.UpdateDriver, ctl.DeleteDriver)
	crud(g, "/shifts", ctl.CreateShift, ctl.ListShifts, ctl.GetShift, ctl.UpdateShift, ctl.DeleteShift)
	crud(g, "/stops", ctl.CreateStop, ctl.ListStops, ctl.GetStop, ctl.UpdateStop, ctl.DeleteStop)
	crud(g, "/lines", ctl.CreateLine, ctl.ListLines, ctl.GetLine, ctl.UpdateLine, ctl.DeleteLine)
	crud(g, "/routes", ctl.CreateRoute, ctl.ListRoutes, ctl.GetRoute, ctl.UpdateRoute, ctl.DeleteRoute)
	crud(g, "/variants", ctl.CreateRouteVariant, ctl.ListRouteVariants, ctl.GetRouteVariant, ctl.UpdateRouteVariant, ctl.DeleteRouteVariant)
}

func crud(g *gin.RouterGroup, path string, create, list, get, update, del gin.HandlerFunc) {
	res := g.Group(path)
	{
		res.POST("", create)
		res.GET("", list)
		res.GET("/:id", get)
		res.PUT("/:id", update)
		res.PATCH("/:id", update)
		res.DELETE("/:id", del)
	}
}
