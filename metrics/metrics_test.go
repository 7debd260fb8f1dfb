package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProvider_HandlerServesRegisteredMetrics(t *testing.T) {
	p := Init(BuildInfo{Version: "test", Revision: "r"})
	p.ObservePlan("text", "ok", 0.01)
	p.SetGraphEdges(3)

	rr := httptest.NewRecorder()
	p.Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rr.Code)

	body := rr.Body.String()
	assert.Contains(t, body, "go_goroutines")
	assert.Contains(t, body, `sea_routing_build_info{revision="r",version="test"} 1`)
	assert.Contains(t, body, "sea_routing_plan_duration_seconds_count")
	assert.Contains(t, body, "sea_routing_graph_edges 3")
}

func TestProvider_CacheResult(t *testing.T) {
	p := Init(BuildInfo{})
	p.CacheResult(true)
	p.CacheResult(false)
	p.CacheResult(false)

	assert.InDelta(t, 1, testutil.ToFloat64(p.cacheLookups.WithLabelValues("hit")), 0)
	assert.InDelta(t, 2, testutil.ToFloat64(p.cacheLookups.WithLabelValues("miss")), 0)
}

func TestProvider_MiddlewareUsesRouteTemplate(t *testing.T) {
	gin.SetMode(gin.TestMode)
	p := Init(BuildInfo{})

	r := gin.New()
	r.Use(p.Middleware())
	r.GET("/api/locations/:id", func(c *gin.Context) { c.Status(http.StatusNotFound) })

	for _, path := range []string{"/api/locations/1", "/api/locations/2", "/nope"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
	}

	assert.InDelta(t, 2, testutil.ToFloat64(p.httpRequests.WithLabelValues("/api/locations/:id", "GET", "404")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(p.httpRequests.WithLabelValues("unmatched", "GET", "404")), 0)
}
