package metrics

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestRecordAuthEvent(t *testing.T) {
	before := testutil.ToFloat64(AuthEventsTotal.WithLabelValues(EventLogin, OutcomeInvalid))
	RecordAuthEvent(EventLogin, OutcomeInvalid)
	after := testutil.ToFloat64(AuthEventsTotal.WithLabelValues(EventLogin, OutcomeInvalid))
	assert.Equal(t, before+1, after)
}

func TestGinMiddlewareLabelsByRoute(t *testing.T) {
	router := gin.New()
	router.Use(GinMiddleware())
	router.GET("/items/:id", func(c *gin.Context) { c.Status(http.StatusTeapot) })

	before := testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues("GET", "/items/:id", "418"))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/items/42", nil))
	require.Equal(t, http.StatusTeapot, rec.Code)

	after := testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues("GET", "/items/:id", "418"))
	assert.Equal(t, before+1, after)
}

func TestGinMiddlewareUnmatchedRoute(t *testing.T) {
	router := gin.New()
	router.Use(GinMiddleware())

	before := testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues("GET", unmatchedRoute, "404"))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/nope", nil))

	after := testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues("GET", unmatchedRoute, "404"))
	assert.Equal(t, before+1, after)
}

func TestHandlerExposesMetrics(t *testing.T) {
	RecordAuthEvent(EventRegister, OutcomeSuccess)

	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), "alumniportal_auth_events_total"))
}

func TestDBCollectorStopsWithContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		NewDBCollector(nil).Run(ctx, time.Millisecond)
		close(done)
	}()
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("collector did not stop")
	}
}
