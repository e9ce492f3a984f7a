package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestCountersIncrement(t *testing.T) {
	before := testutil.ToFloat64(PaymentPersistenceGaps.WithLabelValues("card"))
	PaymentPersistenceGaps.WithLabelValues("card").Inc()
	assert.Equal(t, before+1, testutil.ToFloat64(PaymentPersistenceGaps.WithLabelValues("card")))
}

func TestHandlerExposesRegistry(t *testing.T) {
	gin.SetMode(gin.TestMode)
	EnrollmentAttempts.WithLabelValues(OutcomeSuccess).Inc()
	router := gin.New()
	router.GET("/metrics", Handler())

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "enrollment_attempts_total")
}

func TestRequestMiddlewareUsesRouteTemplate(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(RequestMiddleware())
	router.GET("/items/:id", func(ctx *gin.Context) { ctx.Status(http.StatusNoContent) })

	counter := HTTPRequests.WithLabelValues(http.MethodGet, "/items/:id", "204")
	before := testutil.ToFloat64(counter)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/items/42", nil))

	assert.Equal(t, before+1, testutil.ToFloat64(counter))
}
