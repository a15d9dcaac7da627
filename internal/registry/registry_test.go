package registry

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"

	"transport_registry/internal/config"
	"transport_registry/internal/models"
)

var dbSeq atomic.Int64

// newTestRegistry returns a registry over a fresh in-memory sqlite database.
func newTestRegistry(t *testing.T) *Registry {
	t.Helper()
	dsn := fmt.Sprintf("file:registry_test_%d?mode=memory&cache=shared", dbSeq.Add(1))
	db, err := config.InitDB(config.DatabaseConfig{Driver: "sqlite", SQLitePath: dsn}, nil)
	require.NoError(t, err)
	require.NoError(t, config.Migrate(db))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return New(db)
}

func mustStop(t *testing.T, r *Registry, name string, lon, lat float64) *models.Stop {
	t.Helper()
	s := &models.Stop{Name: name, Longitude: lon, Latitude: lat, Street: name + " St"}
	require.NoError(t, r.CreateStop(context.Background(), s))
	return s
}

func mustLine(t *testing.T, r *Registry, number string) *models.Line {
	t.Helper()
	l := &models.Line{Number: number, Direction: "Centrum", Description: "line " + number}
	require.NoError(t, r.CreateLine(context.Background(), l))
	return l
}

func mustRoute(t *testing.T, r *Registry, name string) *models.Route {
	t.Helper()
	rt := &models.Route{Name: name}
	require.NoError(t, r.CreateRoute(context.Background(), rt))
	return rt
}

func mustVariant(t *testing.T, r *Registry, code string) *models.RouteVariant {
	t.Helper()
	v := &models.RouteVariant{VariantCode: code, DepartureTimes: models.DepartureTimes{"06:00"}}
	require.NoError(t, r.CreateRouteVariant(context.Background(), v))
	return v
}

func strPtr(s string) *string { return &s }

func TestPing(t *testing.T) {
	r := newTestRegistry(t)
	require.NoError(t, r.Ping(context.Background()))
}
