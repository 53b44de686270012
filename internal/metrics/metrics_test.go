package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics_Counters(t *testing.T) {
	m := New()

	m.ObservePage(http.StatusOK)
	m.ObservePage(http.StatusOK)
	m.ObservePage(http.StatusForbidden)
	m.ObservePage(0)
	m.RateLimited()
	m.CacheLookup(CacheHit)
	m.CacheLookup(CacheMismatch)
	m.LoadFinished(LoadSuperseded)

	assert.Equal(t, float64(2), testutil.ToFloat64(m.pageRequests.WithLabelValues("200")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.pageRequests.WithLabelValues("403")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.pageRequests.WithLabelValues("error")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.rateLimited))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.cacheLookups.WithLabelValues(CacheHit)))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.cacheLookups.WithLabelValues(CacheMismatch)))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.loads.WithLabelValues(LoadSuperseded)))
}

func TestMetrics_NilIsNoop(t *testing.T) {
	var m *Metrics

	assert.NotPanics(t, func() {
		m.ObservePage(http.StatusOK)
		m.RateLimited()
		m.CacheLookup(CacheMiss)
		m.LoadFinished(LoadRendered)
		m.ObserveFetch(time.Second)
	})
}

func TestMetrics_Handler(t *testing.T) {
	m := New()
	m.RateLimited()

	w := httptest.NewRecorder()
	m.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "release_viewer_upstream_rate_limited_total")
}
