package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanonicalPath(t *testing.T) {
	cases := map[string]string{
		"":                                    "/",
		"/":                                   "/",
		"/api/v1/health/":                     "/api/v1/health",
		"/api/v1/ar/placement/save":           "/api/v1/ar/placement/save",
		"/api/v1/ar/placement/abc-123":        "/api/v1/ar/placement/:id",
		"/api/v1/ar/placement/abc-123/export": "/api/v1/ar/placement/:id/export",
		"/nope":                               "/nope",
	}
	for in, want := range cases {
		assert.Equal(t, want, CanonicalPath(in), in)
	}
}

func TestInstrumentHandler_CountsRequests(t *testing.T) {
	h := InstrumentHandler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/v1/health" {
			w.WriteHeader(http.StatusOK)
			return
		}
		http.NotFound(w, r)
	}))

	ok := httpRequests.WithLabelValues("GET", "/api/v1/health", "200")
	unmatched := httpRequests.WithLabelValues("GET", "unmatched", "404")
	okBefore := testutil.ToFloat64(ok)
	unmatchedBefore := testutil.ToFloat64(unmatched)

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/v1/health", nil))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/random/path", nil))

	assert.Equal(t, okBefore+1, testutil.ToFloat64(ok))
	assert.Equal(t, unmatchedBefore+1, testutil.ToFloat64(unmatched))
}

func TestDomainCounters(t *testing.T) {
	low := scansProcessed.WithLabelValues("low")
	before := testutil.ToFloat64(low)
	RecordScan(0.4, 0.6)
	assert.Equal(t, before+1, testutil.ToFloat64(low))

	itemsBefore := testutil.ToFloat64(placementItems)
	RecordPlacementItems(3)
	assert.Equal(t, itemsBefore+3, testutil.ToFloat64(placementItems))

	seating := recommendations.WithLabelValues("seating")
	recBefore := testutil.ToFloat64(seating)
	RecordRecommendations("Seating", 2)
	assert.Equal(t, recBefore+2, testutil.ToFloat64(seating))

	RecordAuthFailure("invalid_token")
	assert.GreaterOrEqual(t, testutil.ToFloat64(authFailures.WithLabelValues("invalid_token")), 1.0)
}

func TestHandler_ExposesMetrics(t *testing.T) {
	RecordPlacementItems(1)
	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), "roommait_ar_placement_items_total"))
}
