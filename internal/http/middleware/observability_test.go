package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/require"

	"dispatch-platform-go/internal/logx"
)

// Labels must use the chi route pattern, not the raw URL, so that
// /orders/123 and /orders/456 land on the same series.
func TestObservability_UsesRoutePatternForLabels(t *testing.T) {
	t.Parallel()

	// unique per test run to keep parallel tests off each other's series
	prefix := "/t/" + strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	pattern := prefix + "/{id}"

	r := chi.NewRouter()
	r.Use(Observability(logx.Nop()))
	r.Get(pattern, func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	counterBefore := testutil.ToFloat64(requestsTotal.WithLabelValues(http.MethodGet, pattern, "204"))
	histBefore := sampleCount(t, requestDuration, http.MethodGet, pattern, "204")

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, prefix+"/123", nil))
	require.Equal(t, http.StatusNoContent, rec.Code)

	counterAfter := testutil.ToFloat64(requestsTotal.WithLabelValues(http.MethodGet, pattern, "204"))
	histAfter := sampleCount(t, requestDuration, http.MethodGet, pattern, "204")

	require.Equal(t, counterBefore+1, counterAfter)
	require.Equal(t, histBefore+1, histAfter)
}

func TestPathPattern_FallsBackToURLPath(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/no/chi/context", nil)
	require.Equal(t, "/no/chi/context", pathPattern(req))
}

func sampleCount(t *testing.T, hv *prometheus.HistogramVec, labels ...string) uint64 {
	t.Helper()

	obs, err := hv.GetMetricWithLabelValues(labels...)
	require.NoError(t, err)

	metric, ok := obs.(prometheus.Metric)
	require.True(t, ok)

	m := &dto.Metric{}
	require.NoError(t, metric.Write(m))

	h := m.GetHistogram()
	require.NotNil(t, h)
	return h.GetSampleCount()
}
