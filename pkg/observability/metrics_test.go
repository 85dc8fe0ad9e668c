package observability_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/aretw0/dwellkeys/pkg/domain"
	"github.com/aretw0/dwellkeys/pkg/observability"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_Hooks(t *testing.T) {
	m := observability.NewMetrics()
	hooks := m.Hooks()

	hooks.OnDwellStart(&domain.DwellEvent{Type: domain.EventDwellStart, Duration: 800 * time.Millisecond})
	hooks.OnDwellStart(&domain.DwellEvent{Type: domain.EventDwellStart, Duration: time.Second})
	hooks.OnDwellCancel(&domain.DwellEvent{Type: domain.EventDwellCancel})
	hooks.OnActivate(&domain.DwellEvent{Type: domain.EventActivate, Source: domain.SourceDwell})
	hooks.OnActivate(&domain.DwellEvent{Type: domain.EventActivate, Source: domain.SourceClick})
	hooks.OnActivate(&domain.DwellEvent{Type: domain.EventActivate, Source: domain.SourceClick})

	assert.Equal(t, 2.0, testutil.ToFloat64(m.DwellStarts))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.DwellCancels))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Activations.WithLabelValues(string(domain.SourceDwell))))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.Activations.WithLabelValues(string(domain.SourceClick))))
	assert.Nil(t, hooks.OnCooldownEnd)
}

func TestMetrics_ObservePrediction(t *testing.T) {
	m := observability.NewMetrics()
	m.ObservePrediction(3, time.Microsecond)
	m.ObservePrediction(0, time.Microsecond)
	m.ObservePrediction(0, time.Microsecond)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.Predictions.WithLabelValues("hit")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.Predictions.WithLabelValues("empty")))
	assert.Equal(t, 1, testutil.CollectAndCount(m.PredictionLatency))
}

func TestMetrics_Handler(t *testing.T) {
	m := observability.NewMetrics()
	m.DwellStarts.Inc()

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), "dwellkeys_dwell_starts_total 1"))
}
