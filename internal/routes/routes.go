package routes

import (
	"io"

	ginlog "github.com/gin-contrib/logger"
	"github.com/gin-gonic/gin"

	"transport_registry/internal/controllers"
)

// SetupRouter builds the gin engine. Access logs go to accessLog.
func SetupRouter(ctl *controllers.Controller, accessLog io.Writer) *gin.Engine {
	if accessLog == nil {
		accessLog = io.Discard
	}

	r := gin.New()

	// Request logging middleware
	r.Use(ginlog.SetLogger(
		ginlog.WithWriter(accessLog),
		ginlog.WithUTC(true),
		ginlog.WithSkipPath([]string{"/healthz"}),
	))
	// Recovery middleware
	r.Use(gin.Recovery())

	r.GET("/healthz", ctl.Health)

	transport := r.Group("/transport")
	EntityRoutes(transport, ctl)
	AssociationRoutes(transport, ctl)

	return r
}
