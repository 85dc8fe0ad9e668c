package http_test

import (
	"bufio"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/aretw0/dwellkeys"
	"github.com/aretw0/dwellkeys/internal/testutils"
	"github.com/aretw0/dwellkeys/pkg/adapters/memory"
	httpadapter "github.com/aretw0/dwellkeys/pkg/adapters/http"
	"github.com/aretw0/dwellkeys/pkg/domain"
	"github.com/aretw0/dwellkeys/pkg/observability"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	kb      *dwellkeys.Keyboard
	clock   *testutils.FakeClock
	handler http.Handler
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	clock := testutils.NewFakeClock()
	streams := httpadapter.NewStreamManager(nil)
	metrics := observability.NewMetrics()

	kb := dwellkeys.New(
		dwellkeys.WithClock(clock),
		dwellkeys.WithSettings(domain.Settings{Dwell: time.Second, Cooldown: 300 * time.Millisecond, DwellEnabled: true}),
		dwellkeys.WithSource(memory.NewSource(
			domain.Entry{Word: "hola", Frequency: 10},
			domain.Entry{Word: "hoy", Frequency: 5},
		)),
		dwellkeys.WithIndicator(streams),
		dwellkeys.WithLifecycleHooks(streams.Hooks()),
		dwellkeys.WithLifecycleHooks(metrics.Hooks()),
		dwellkeys.WithChangeListener(streams.PublishState),
	)
	_, err := kb.Reload(context.Background())
	require.NoError(t, err)

	h, err := httpadapter.NewHandler(kb, httpadapter.WithStreams(streams), httpadapter.WithMetrics(metrics.Handler()))
	require.NoError(t, err)
	return fixture{kb: kb, clock: clock, handler: h}
}

func (f fixture) do(t *testing.T, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	f.handler.ServeHTTP(rec, req)
	return rec
}

func TestServer_Health(t *testing.T) {
	f := newFixture(t)
	rec := f.do(t, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestServer_PointerEvents(t *testing.T) {
	f := newFixture(t)

	rec := f.do(t, http.MethodPost, "/targets/h/enter", "")
	require.Equal(t, http.StatusAccepted, rec.Code)
	assert.JSONEq(t, `{"id":"h","phase":"dwelling"}`, rec.Body.String())

	rec = f.do(t, http.MethodPost, "/targets/h/leave", "")
	assert.JSONEq(t, `{"id":"h","phase":"idle"}`, rec.Body.String())

	f.do(t, http.MethodPost, "/targets/h/enter", "")
	f.clock.Advance(time.Second)

	rec = f.do(t, http.MethodGet, "/targets/h", "")
	assert.JSONEq(t, `{"id":"h","phase":"cooldown"}`, rec.Body.String())

	rec = f.do(t, http.MethodPost, "/targets/o/down", "")
	require.Equal(t, http.StatusAccepted, rec.Code)

	var snap dwellkeys.Snapshot
	rec = f.do(t, http.MethodGet, "/state", "")
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &snap))
	assert.Equal(t, "ho", snap.Text)
	assert.Equal(t, []string{"hola", "hoy"}, snap.Suggestions)

	rec = f.do(t, http.MethodPost, "/targets/nope/down", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestServer_Predict(t *testing.T) {
	f := newFixture(t)

	rec := f.do(t, http.MethodGet, "/predict?prefix=HO&limit=1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"prefix":"HO","suggestions":["hola"]}`, rec.Body.String())

	rec = f.do(t, http.MethodGet, "/predict?prefix=zz", "")
	assert.JSONEq(t, `{"prefix":"zz","suggestions":[]}`, rec.Body.String())

	rec = f.do(t, http.MethodGet, "/predict?prefix=ho&limit=x", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = f.do(t, http.MethodGet, "/predict?prefix="+strings.Repeat("a", 300), "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	for _, limit := range []string{"-1", "1001", "99999999999999999999"} {
		rec = f.do(t, http.MethodGet, "/predict?prefix=ho&limit="+limit, "")
		assert.Equal(t, http.StatusBadRequest, rec.Code, "limit %s", limit)
	}
}

func TestServer_Settings(t *testing.T) {
	f := newFixture(t)

	rec := f.do(t, http.MethodPut, "/settings", `{"dwell_ms": 200, "sound": true}`)
	require.Equal(t, http.StatusOK, rec.Code)

	got := f.kb.Snapshot().Settings
	assert.Equal(t, 200*time.Millisecond, got.Dwell)
	assert.Equal(t, 300*time.Millisecond, got.Cooldown, "omitted fields are kept")
	assert.True(t, got.Sound)

	rec = f.do(t, http.MethodPut, "/settings", `{"cooldown_ms": -1}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = f.do(t, http.MethodPut, "/settings", `not json`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	t.Run("Out of range durations", func(t *testing.T) {
		for _, body := range []string{
			`{"dwell_ms": 600001}`,
			`{"dwell_ms": 9223372036854775807}`,
			`{"cooldown_ms": 1e30}`,
		} {
			rec := f.do(t, http.MethodPut, "/settings", body)
			assert.Equal(t, http.StatusBadRequest, rec.Code, body)
		}
		assert.Equal(t, 200*time.Millisecond, f.kb.Snapshot().Settings.Dwell, "rejected bodies leave settings alone")
	})

	t.Run("Unknown field", func(t *testing.T) {
		rec := f.do(t, http.MethodPut, "/settings", `{"dwell": 5}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestServer_OpenAPI(t *testing.T) {
	doc, err := httpadapter.LoadSpec()
	require.NoError(t, err)
	for _, path := range []string{"/state", "/predict", "/settings", "/prediction", "/targets/{id}", "/targets/{id}/enter", "/events"} {
		assert.NotNil(t, doc.Paths.Value(path), path)
	}

	f := newFixture(t)
	rec := f.do(t, http.MethodGet, "/openapi.yaml", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "openapi: 3.0.3")

	rec = f.do(t, http.MethodGet, "/swagger", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	t.Run("Unsupported content type", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPut, "/prediction", strings.NewReader(`{"enabled": true}`))
		req.Header.Set("Content-Type", "text/plain")
		rec := httptest.NewRecorder()
		f.handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("Unknown topic", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		req := httptest.NewRequestWithContext(ctx, http.MethodGet, "/events?topics=dwell,bogus", nil)
		rec := httptest.NewRecorder()
		f.handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestServer_PredictionToggle(t *testing.T) {
	f := newFixture(t)
	f.do(t, http.MethodPost, "/targets/h/down", "")

	rec := f.do(t, http.MethodPut, "/prediction", `{"enabled": false}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, f.kb.Snapshot().Suggestions)

	rec = f.do(t, http.MethodPut, "/prediction", `{}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestServer_Metrics(t *testing.T) {
	f := newFixture(t)
	f.do(t, http.MethodPost, "/targets/h/down", "")

	rec := f.do(t, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `dwellkeys_activations_total{source="click"} 1`)
}

func TestServer_SubscribeEvents(t *testing.T) {
	f := newFixture(t)
	srv := httptest.NewServer(f.handler)
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, srv.URL+"/events?topics=dwell,state", nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, "text/event-stream", resp.Header.Get("Content-Type"))

	lines := bufio.NewScanner(resp.Body)
	next := func() string {
		require.True(t, lines.Scan(), "stream ended early")
		return lines.Text()
	}
	require.Equal(t, "event: ping", next())
	require.Equal(t, "data: connected", next())
	require.Equal(t, "", next())

	// The subscription exists once the ping was flushed.
	down, err := http.Post(srv.URL+"/targets/h/down", "application/json", nil)
	require.NoError(t, err)
	down.Body.Close()

	require.Equal(t, "event: dwell", next())
	assert.Contains(t, next(), `"type":"activate"`)
	require.Equal(t, "", next())

	require.Equal(t, "event: state", next())
	assert.Contains(t, next(), `"text":"h"`)
}

func TestStreamManager_Unsubscribe(t *testing.T) {
	sm := httpadapter.NewStreamManager(nil)
	ch, cancel := sm.Subscribe(httpadapter.TopicProgress)

	sm.Progress("a", 0.5)
	msg := <-ch
	assert.Equal(t, httpadapter.TopicProgress, msg.Topic)
	assert.JSONEq(t, `{"target_id":"a","fraction":0.5}`, msg.Data)

	cancel()
	cancel()
	_, ok := <-ch
	assert.False(t, ok)

	sm.Progress("a", 1) // no subscribers left
}
