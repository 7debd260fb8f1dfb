package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sea-routing/algo"
	"sea-routing/db"
	"sea-routing/errs"
	"sea-routing/model"
	"sea-routing/service"
)

func newRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	log := zerolog.Nop()

	store := db.NewMemoryLocationStore(
		model.Location{ID: 1, Name: "Island A", Lat: 49.9167, Lon: -6.3167, Type: model.LocationPort,
			UpdatedAt: time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)},
		model.Location{ID: 2, Name: "Port B", Lat: 44.2, Lon: -76.7333, Type: model.LocationPort,
			UpdatedAt: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)},
	)
	graph := algo.NewGraph([]model.Turn{
		{ID: 1, FromNode: 1, ToNode: 2, Length: 5, Path: []model.Coordinate{{Lat: 50, Lon: -6}, {Lat: 50, Lon: -5}}},
		{ID: 2, FromNode: 2, ToNode: 3, Length: 3, Path: []model.Coordinate{{Lat: 50, Lon: -5}, {Lat: 44, Lon: -76}}},
		{ID: 3, FromNode: 1, ToNode: 3, Length: 10, Path: []model.Coordinate{{Lat: 50, Lon: -6}, {Lat: 44.5, Lon: -76}}},
	})

	resolver := service.NewResolver(store, graph, log)
	planner := service.NewPlanner(graph, log)
	routes := service.NewRoutes(resolver, planner, service.NewRoutePlanner(resolver, planner, log))

	r := gin.New()
	New(service.NewLocationSearch(store, service.DefaultSearchOptions(), log, nil), routes, log).Register(r)
	return r
}

func get(t *testing.T, r http.Handler, url string) (int, map[string]any) {
	t.Helper()
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, url, nil))

	var body map[string]any
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body), rr.Body.String())
	return rr.Code, body
}

func TestSearchByCoords(t *testing.T) {
	r := newRouter(t)

	code, body := get(t, r, "/api/locations/coords?lat=49.9167&lon=-6.3167&method=range&range=1")
	require.Equal(t, http.StatusOK, code)
	assert.EqualValues(t, 1, body["count"])
	locs := body["locations"].([]any)
	first := locs[0].(map[string]any)
	assert.Equal(t, "Island A", first["locationName"])
	assert.InDelta(t, 0, first["distanceKm"], 1e-6)

	code, body = get(t, r, "/api/locations/coords?lat=49.9167&lon=-6.3167&method=specific")
	require.Equal(t, http.StatusOK, code)
	assert.EqualValues(t, 1, body["count"])
	_, hasDistance := body["locations"].([]any)[0].(map[string]any)["distanceKm"]
	assert.False(t, hasDistance)

	code, body = get(t, r, "/api/locations/coords?lat=0&lon=0&method=specific")
	require.Equal(t, http.StatusOK, code)
	assert.EqualValues(t, 0, body["count"])
}

func TestSearchByCoords_BadRequest(t *testing.T) {
	r := newRouter(t)

	for _, url := range []string{
		"/api/locations/coords?lon=1&method=range",
		"/api/locations/coords?lat=95&lon=1&method=range",
		"/api/locations/coords?lat=1&lon=1&method=nearby",
		"/api/locations/coords?lat=1&lon=1&method=range&take=-1",
		"/api/locations/coords?lat=abc&lon=1&method=range",
	} {
		code, body := get(t, r, url)
		assert.Equal(t, http.StatusBadRequest, code, url)
		assert.NotEmpty(t, body["error"], url)
	}
}

func TestSearchByName(t *testing.T) {
	r := newRouter(t)

	code, body := get(t, r, "/api/locations?keyword=island&sort=asc")
	require.Equal(t, http.StatusOK, code)
	assert.EqualValues(t, 1, body["count"])

	code, _ = get(t, r, "/api/locations?sort=up")
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestGetLocation(t *testing.T) {
	r := newRouter(t)

	code, body := get(t, r, "/api/locations/2")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "Port B", body["locationName"])

	code, body = get(t, r, "/api/locations/99")
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "Location 99 not found", body["error"])

	code, _ = get(t, r, "/api/locations/zero")
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestNearestNodes(t *testing.T) {
	r := newRouter(t)

	code, body := get(t, r, "/api/turns/nearest?startPoint=Island%20A&endPoint=Port%20B")
	require.Equal(t, http.StatusOK, code)
	assert.EqualValues(t, 1, body["startNode"].(map[string]any)["id"])
	assert.EqualValues(t, 2, body["endNode"].(map[string]any)["id"])

	code, body = get(t, r, "/api/turns/nearest?startPoint=Island%20A&endPoint=Atlantis")
	assert.Equal(t, http.StatusNotFound, code)
	assert.Contains(t, body["error"], "Atlantis")

	code, _ = get(t, r, "/api/turns/nearest?startPoint=Island%20A")
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestPlanRoute(t *testing.T) {
	r := newRouter(t)

	code, body := get(t, r, "/api/turns/plans?startNode=1&endNode=3")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "text", body["type"])
	assert.InDelta(t, 8, body["cost"], 1e-12)
	assert.Len(t, body["segments"], 2)

	code, body = get(t, r, "/api/turns/plans?startNode=1&endNode=3&type=line")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "LINESTRING(-6 50,-5 50,-76 44)", body["l_str"])
	assert.NotEmpty(t, body["polyline"])

	code, body = get(t, r, "/api/turns/plans?startNode=3&endNode=1")
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "Planning not found", body["error"])

	code, _ = get(t, r, "/api/turns/plans?startNode=1&endNode=3&type=svg")
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestPlanRouteByName(t *testing.T) {
	r := newRouter(t)

	code, body := get(t, r, "/api/turns/plans/by-name?startPoint=Island%20A&endPoint=Port%20B&type=text")
	require.Equal(t, http.StatusOK, code)
	assert.EqualValues(t, 1, body["startNode"])
	assert.EqualValues(t, 3, body["endNode"])
}

type failingLocations struct{ LocationService }

func (failingLocations) GetByID(context.Context, uint) (*model.Location, error) {
	return nil, errs.Internal("location.get", errors.New("pq: connection refused"))
}

func TestInternalErrorIsHidden(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	New(failingLocations{}, nil, zerolog.Nop()).Register(r)

	code, body := get(t, r, "/api/locations/1")
	assert.Equal(t, http.StatusInternalServerError, code)
	assert.Equal(t, "internal server error", body["error"])
}
