package middlewares

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestPrometheusMiddlewareCountsByRoute(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(PrometheusMiddleware())
	r.GET("/api/v1/orders/:order_id", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	counter := httpRequestsTotal.WithLabelValues(http.MethodGet, "/api/v1/orders/:order_id", "204")
	before := testutil.ToFloat64(counter)

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/v1/orders/abc", nil))

	assert.Equal(t, before+1, testutil.ToFloat64(counter))
}

func TestRecordOrderOperation(t *testing.T) {
	ok := orderOperations.WithLabelValues("list", "success")
	failed := orderOperations.WithLabelValues("list", "error")
	okBefore, failedBefore := testutil.ToFloat64(ok), testutil.ToFloat64(failed)

	RecordOrderOperation("list", true)
	RecordOrderOperation("list", false)

	assert.Equal(t, okBefore+1, testutil.ToFloat64(ok))
	assert.Equal(t, failedBefore+1, testutil.ToFloat64(failed))
}

func TestRecordAuthOperation(t *testing.T) {
	ok := authOperations.WithLabelValues("login", "success")
	failed := authOperations.WithLabelValues("login", "error")
	orders := orderOperations.WithLabelValues("login", "success")
	okBefore, failedBefore, ordersBefore := testutil.ToFloat64(ok), testutil.ToFloat64(failed), testutil.ToFloat64(orders)

	RecordAuthOperation("login", true)
	RecordAuthOperation("login", false)

	assert.Equal(t, okBefore+1, testutil.ToFloat64(ok))
	assert.Equal(t, failedBefore+1, testutil.ToFloat64(failed))
	assert.Equal(t, ordersBefore, testutil.ToFloat64(orders))
}

func TestRecordAuthFailure(t *testing.T) {
	counter := authFailures.WithLabelValues("401")
	before := testutil.ToFloat64(counter)

	RecordAuthFailure(http.StatusUnauthorized)

	assert.Equal(t, before+1, testutil.ToFloat64(counter))
}
