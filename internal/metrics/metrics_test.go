package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	promdto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func counterValue(t *testing.T, c prometheus.Counter) float64 {
	t.Helper()
	var m promdto.Metric
	require.NoError(t, c.Write(&m))
	return m.GetCounter().GetValue()
}

func TestMiddleware_UsesRouteTemplate(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Middleware())
	r.GET("/api/clients/:id/", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	before := counterValue(t, httpRequestsTotal.WithLabelValues("GET", "/api/clients/:id/", "204"))
	for _, path := range []string{"/api/clients/1/", "/api/clients/2/"} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusNoContent, w.Code)
	}

	after := counterValue(t, httpRequestsTotal.WithLabelValues("GET", "/api/clients/:id/", "204"))
	assert.Equal(t, before+2, after)
}

func TestObserveLogin(t *testing.T) {
	before := counterValue(t, loginAttempts.WithLabelValues(LoginInvalid))
	ObserveLogin(LoginInvalid)
	assert.Equal(t, before+1, counterValue(t, loginAttempts.WithLabelValues(LoginInvalid)))
}
