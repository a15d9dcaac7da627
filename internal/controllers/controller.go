package controllers

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"transport_registry/internal/registry"
)

// Controller exposes the transport registry over HTTP.
type Controller struct {
	reg *registry.Registry
}

func New(reg *registry.Registry) *Controller {
	return &Controller{reg: reg}
}

// StatusFor maps a registry error to the HTTP status it is reported with.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, registry.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, registry.ErrDuplicateKey),
		errors.Is(err, registry.ErrReferentialConflict),
		errors.Is(err, registry.ErrInvalidInput):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes the error body. Store failures are logged and hidden
// from the client.
func respondError(c *gin.Context, op string, err error) {
	status := StatusFor(err)
	entry := logrus.WithError(err).WithFields(logrus.Fields{"op": op, "status": status})
	if status >= http.StatusInternalServerError {
		entry.Error(op + ": store failure")
		c.JSON(status, gin.H{"error": "Internal server error"})
		return
	}
	entry.Warn(op + ": request rejected")
	c.JSON(status, gin.H{"error": err.Error()})
}

// parseID reads a positive numeric path parameter; it answers 400 itself on failure.
func parseID(c *gin.Context, param string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(param), 10, 64)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid " + param + ": " + c.Param(param)})
		return 0, false
	}
	return uint(id), true
}

func bindJSON(c *gin.Context, op string, dst interface{}) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		logrus.WithError(err).Warn(op + ": invalid input payload")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return false
	}
	return true
}

// bindPatch is bindJSON for partial updates; an empty body is an empty patch.
func bindPatch(c *gin.Context, op string, dst interface{}) bool {
	if err := c.ShouldBindJSON(dst); err != nil && !errors.Is(err, io.EOF) {
		logrus.WithError(err).Warn(op + ": invalid patch payload")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return false
	}
	return true
}

// Health reports whether the store is reachable.
func (ctl *Controller) Health(c *gin.Context) {
	if err := ctl.reg.Ping(c.Request.Context()); err != nil {
		logrus.WithError(err).Error("Health: store unreachable")
		c.JSON(http.StatusInternalServerError, gin.H{"status": "unavailable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
