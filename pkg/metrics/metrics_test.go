package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestRegisterCollectors(t *testing.T) {
	reg := prometheus.NewRegistry()
	require.NotPanics(t, func() { RegisterCollectors(reg) })
	require.Panics(t, func() { RegisterCollectors(reg) })
}

func TestMiddlewareCountsByRoute(t *testing.T) {
	g := gin.New()
	g.Use(Middleware())
	g.GET("/items/:id", func(c *gin.Context) { c.Status(http.StatusOK) })

	before := testutil.ToFloat64(HTTPRequests.WithLabelValues("GET", "/items/:id", "200"))
	for _, p := range []string{"/items/1", "/items/2"} {
		w := httptest.NewRecorder()
		g.ServeHTTP(w, httptest.NewRequest(http.MethodGet, p, nil))
		require.Equal(t, http.StatusOK, w.Code)
	}
	after := testutil.ToFloat64(HTTPRequests.WithLabelValues("GET", "/items/:id", "200"))
	require.Equal(t, before+2, after)

	w := httptest.NewRecorder()
	g.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/missing", nil))
	require.Equal(t, 1.0, testutil.ToFloat64(HTTPRequests.WithLabelValues("GET", "unmatched", "404")))
}
