package routes

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"transport_registry/internal/config"
	"transport_registry/internal/controllers"
	"transport_registry/internal/registry"
)

var dbSeq atomic.Int64

func newTestServer(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	dsn := fmt.Sprintf("file:routes_test_%d?mode=memory&cache=shared", dbSeq.Add(1))
	db, err := config.InitDB(config.DatabaseConfig{Driver: "sqlite", SQLitePath: dsn}, nil)
	require.NoError(t, err)
	require.NoError(t, config.Migrate(db))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return SetupRouter(controllers.New(registry.New(db)), io.Discard)
}

// call performs a request and decodes the JSON response into a map.
func call(t *testing.T, r http.Handler, method, path string, body interface{}) (int, map[string]interface{}) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	out := map[string]interface{}{}
	if rec.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	}
	return rec.Code, out
}

func idOf(t *testing.T, body map[string]interface{}, key string) uint {
	t.Helper()
	obj, ok := body[key].(map[string]interface{})
	require.True(t, ok, "missing %q in %v", key, body)
	return uint(obj["id"].(float64))
}

func TestHealth(t *testing.T) {
	r := newTestServer(t)
	code, body := call(t, r, http.MethodGet, "/healthz", nil)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "ok", body["status"])
}

func TestBusCRUD(t *testing.T) {
	r := newTestServer(t)

	code, body := call(t, r, http.MethodPost, "/transport/buses", gin.H{"registration": "WB 100", "make": "Solaris", "model": "Urbino 18"})
	require.Equal(t, http.StatusCreated, code, body)
	id := idOf(t, body, "bus")

	code, body = call(t, r, http.MethodPost, "/transport/buses", gin.H{"registration": "WB 100", "make": "MAN", "model": "Lion"})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Contains(t, body["error"], "registration")

	code, body = call(t, r, http.MethodGet, fmt.Sprintf("/transport/buses/%d", id), nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "Urbino 18", body["bus"].(map[string]interface{})["model"])

	code, body = call(t, r, http.MethodPatch, fmt.Sprintf("/transport/buses/%d", id), gin.H{"model": "Urbino 12", "make": nil})
	require.Equal(t, http.StatusOK, code)
	bus := body["bus"].(map[string]interface{})
	assert.Equal(t, "Urbino 12", bus["model"])
	assert.Equal(t, "Solaris", bus["make"], "null leaves the field unchanged")

	code, _ = call(t, r, http.MethodPut, fmt.Sprintf("/transport/buses/%d", id), nil)
	assert.Equal(t, http.StatusOK, code, "empty patch")

	code, body = call(t, r, http.MethodGet, "/transport/buses", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Len(t, body["data"], 1)

	code, _ = call(t, r, http.MethodDelete, fmt.Sprintf("/transport/buses/%d", id), nil)
	assert.Equal(t, http.StatusOK, code)
	code, _ = call(t, r, http.MethodGet, fmt.Sprintf("/transport/buses/%d", id), nil)
	assert.Equal(t, http.StatusNotFound, code)
	code, _ = call(t, r, http.MethodDelete, fmt.Sprintf("/transport/buses/%d", id), nil)
	assert.Equal(t, http.StatusNotFound, code)
}

func TestBadRequests(t *testing.T) {
	r := newTestServer(t)

	code, _ := call(t, r, http.MethodGet, "/transport/drivers/abc", nil)
	assert.Equal(t, http.StatusBadRequest, code)

	req := httptest.NewRequest(http.MethodPost, "/transport/drivers", bytes.NewBufferString("{not json"))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	code, body := call(t, r, http.MethodPost, "/transport/drivers", gin.H{"first_name": "Jan"})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.NotEmpty(t, body["error"])
}

func TestVariantPatchUsesCode(t *testing.T) {
	r := newTestServer(t)

	code, body := call(t, r, http.MethodPost, "/transport/variants", gin.H{"variant_code": "3A", "departure_times": []string{"06:15"}})
	require.Equal(t, http.StatusCreated, code, body)
	id := idOf(t, body, "variant")

	code, body = call(t, r, http.MethodPatch, fmt.Sprintf("/transport/variants/%d", id), gin.H{"code": "3B"})
	require.Equal(t, http.StatusOK, code, body)
	v := body["variant"].(map[string]interface{})
	assert.Equal(t, "3B", v["variant_code"])
	assert.Equal(t, []interface{}{"06:15"}, v["departure_times"])
}

func TestLineRouteAssociations(t *testing.T) {
	r := newTestServer(t)

	_, body := call(t, r, http.MethodPost, "/transport/lines", gin.H{"number": "5", "direction": "Centrum"})
	lineID := idOf(t, body, "line")
	_, body = call(t, r, http.MethodPost, "/transport/routes", gin.H{"name": "A"})
	routeID := idOf(t, body, "route")

	path := fmt.Sprintf("/transport/lines/%d/routes/%d", lineID, routeID)
	code, body := call(t, r, http.MethodPost, path+"?line_number=5N", nil)
	require.Equal(t, http.StatusOK, code, body)
	assert.Equal(t, "5N", body["assignment"].(map[string]interface{})["line_number"])

	code, _ = call(t, r, http.MethodPost, path, nil)
	assert.Equal(t, http.StatusBadRequest, code)

	code, _ = call(t, r, http.MethodPost, fmt.Sprintf("/transport/lines/%d/routes/999", lineID), nil)
	assert.Equal(t, http.StatusNotFound, code)

	code, body = call(t, r, http.MethodGet, fmt.Sprintf("/transport/lines/%d/routes", lineID), nil)
	require.Equal(t, http.StatusOK, code)
	routes := body["data"].([]interface{})
	require.Len(t, routes, 1)
	assert.Equal(t, "A", routes[0].(map[string]interface{})["route_name"])

	code, body = call(t, r, http.MethodGet, fmt.Sprintf("/transport/routes/%d/complete", routeID), nil)
	require.Equal(t, http.StatusOK, code)
	assert.Len(t, body["route"].(map[string]interface{})["lines"], 1)

	code, _ = call(t, r, http.MethodGet, "/transport/lines/77/complete", nil)
	assert.Equal(t, http.StatusNotFound, code)

	code, body = call(t, r, http.MethodDelete, fmt.Sprintf("/transport/lines/%d", lineID), nil)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Contains(t, body["error"], "remove the links first")

	code, _ = call(t, r, http.MethodDelete, path, nil)
	assert.Equal(t, http.StatusOK, code)
	code, _ = call(t, r, http.MethodDelete, path, nil)
	assert.Equal(t, http.StatusNotFound, code)
	code, _ = call(t, r, http.MethodDelete, fmt.Sprintf("/transport/lines/%d", lineID), nil)
	assert.Equal(t, http.StatusOK, code)
}

func TestBatchAssign(t *testing.T) {
	r := newTestServer(t)

	_, body := call(t, r, http.MethodPost, "/transport/lines", gin.H{"number": "1"})
	lineID := idOf(t, body, "line")
	_, body = call(t, r, http.MethodPost, "/transport/routes", gin.H{"name": "A"})
	routeID := idOf(t, body, "route")

	code, body := call(t, r, http.MethodPost, "/transport/line-routes/batch", gin.H{"line_id": lineID, "route_ids": []uint{routeID, 999}})
	require.Equal(t, http.StatusOK, code, body)
	assert.Equal(t, float64(1), body["success_count"])
	assert.Equal(t, float64(1), body["error_count"])

	code, _ = call(t, r, http.MethodPost, "/transport/line-routes/batch", gin.H{"route_ids": []uint{routeID}})
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestRouteWithVariantFlow(t *testing.T) {
	r := newTestServer(t)

	var stopIDs []uint
	for i, name := range []string{"Dworzec", "Rynek"} {
		_, body := call(t, r, http.MethodPost, "/transport/stops", gin.H{"name": name, "longitude": 19.9 + float64(i)/100, "latitude": 50.0})
		stopIDs = append(stopIDs, idOf(t, body, "stop"))
	}
	call(t, r, http.MethodPost, "/transport/lines", gin.H{"number": "9"})

	code, body := call(t, r, http.MethodPost, "/transport/routes-with-variant", gin.H{
		"route_name": "Dworzec - Rynek", "variant_code": "9A", "stop_ids": []uint{stopIDs[0], 4242},
	})
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "stop 4242 not found", body["error"])

	code, _ = call(t, r, http.MethodPost, "/transport/routes-with-variant", gin.H{
		"route_name": "Dworzec - Rynek", "variant_code": "9A", "stop_ids": []uint{stopIDs[0]},
	})
	assert.Equal(t, http.StatusBadRequest, code)

	code, body = call(t, r, http.MethodPost, "/transport/routes-with-variant", gin.H{
		"route_name":      "Dworzec - Rynek",
		"variant_code":    "9A",
		"stop_ids":        stopIDs,
		"departure_times": []string{"05:00", "06:00"},
		"line_number":     "9",
	})
	require.Equal(t, http.StatusCreated, code, body)
	route := body["route"].(map[string]interface{})
	assert.Equal(t, "9", route["line_number"])
	assert.Len(t, route["stops"], 2)
	variant := route["variant"].(map[string]interface{})
	assert.Equal(t, []interface{}{"05:00", "06:00"}, variant["departure_times"])
	variantID := uint(variant["id"].(float64))

	code, body = call(t, r, http.MethodGet, fmt.Sprintf("/transport/variants/%d/stops", variantID), nil)
	require.Equal(t, http.StatusOK, code)
	stops := body["data"].([]interface{})
	require.Len(t, stops, 2)
	assert.Equal(t, float64(1), stops[0].(map[string]interface{})["position"])
	assert.Equal(t, "Dworzec", stops[0].(map[string]interface{})["name"])

	code, body = call(t, r, http.MethodGet, fmt.Sprintf("/transport/variants/%d/geometry", variantID), nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "FeatureCollection", body["type"])
	assert.Len(t, body["features"], 3)

	code, body = call(t, r, http.MethodPut, fmt.Sprintf("/transport/variants/%d/stops", variantID), gin.H{"stop_ids": []uint{stopIDs[1], stopIDs[0]}})
	require.Equal(t, http.StatusOK, code, body)
	assert.Equal(t, "Rynek", body["data"].([]interface{})[0].(map[string]interface{})["name"])

	code, body = call(t, r, http.MethodGet, fmt.Sprintf("/transport/routes/%d/variants", uint(route["id"].(float64))), nil)
	require.Equal(t, http.StatusOK, code)
	assert.Len(t, body["data"], 1)
}
