package metric

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRegistry(t *testing.T) {
	r := NewRegistry()
	require.NotNil(t, r.Metrics)

	r.Metrics.ObserveRequest("GET", "/api/v1/strings", 200, 15*time.Millisecond)
	r.Metrics.ObserveRequest("GET", "/api/v1/strings", 200, time.Millisecond)
	r.Metrics.NLQuery(true)
	r.Metrics.NLQuery(false)
	r.Metrics.NLQuery(false)
	r.Metrics.StringsCreated.Inc()

	assert.Equal(t, 2.0, testutil.ToFloat64(r.Metrics.RequestsTotal.WithLabelValues("GET", "/api/v1/strings", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.Metrics.NLQueries.WithLabelValues("interpreted")))
	assert.Equal(t, 2.0, testutil.ToFloat64(r.Metrics.NLQueries.WithLabelValues("uninterpretable")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.Metrics.StringsCreated))
}

func TestRegistriesAreIndependent(t *testing.T) {
	a, b := NewRegistry(), NewRegistry()
	a.Metrics.StringsCreated.Inc()

	assert.Equal(t, 1.0, testutil.ToFloat64(a.Metrics.StringsCreated))
	assert.Equal(t, 0.0, testutil.ToFloat64(b.Metrics.StringsCreated))
}

func TestHandler(t *testing.T) {
	r := NewRegistry()
	r.Metrics.StringsDeleted.Inc()

	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Equal(t, 200, rec.Code)
	assert.True(t, strings.Contains(string(body), "stringscope_strings_deleted_total 1"))
}
