package http

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/aretw0/dwellkeys"
	"github.com/aretw0/dwellkeys/api"
	"github.com/aretw0/dwellkeys/internal/logging"
	"github.com/aretw0/dwellkeys/pkg/compose"
	"github.com/aretw0/dwellkeys/pkg/domain"
	"github.com/aretw0/dwellkeys/pkg/predict"
	"github.com/go-chi/chi/v5"
	"github.com/oapi-codegen/runtime"
)

// maxDurationMs bounds dwell_ms and cooldown_ms (ten minutes).
const maxDurationMs = int64(10 * time.Minute / time.Millisecond)

// Keyboard defines what the interaction surface needs from the core.
type Keyboard interface {
	PointerEnter(id domain.TargetID)
	PointerLeave(id domain.TargetID)
	PointerDown(id domain.TargetID)
	Phase(id domain.TargetID) domain.Phase
	Configure(s domain.Settings)
	SetPredictionEnabled(enabled bool)
	Predict(prefix string, limit int) []string
	Layout() compose.Layout
	Snapshot() dwellkeys.Snapshot
}

// Server serves the keyboard over HTTP.
type Server struct {
	Keyboard Keyboard
	Streams  *StreamManager
	metrics  http.Handler
	logger   *slog.Logger
}

// Option configures the Server.
type Option func(*Server)

// WithStreams shares a StreamManager already wired into the keyboard.
func WithStreams(sm *StreamManager) Option {
	return func(s *Server) {
		s.Streams = sm
	}
}

// WithMetrics mounts a metrics handler on /metrics.
func WithMetrics(h http.Handler) Option {
	return func(s *Server) {
		s.metrics = h
	}
}

// WithLogger configures a logger for the Server.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// NewHandler creates the HTTP handler for kb. Requests on routes of the
// OpenAPI contract are validated against it before reaching a handler.
func NewHandler(kb Keyboard, opts ...Option) (http.Handler, error) {
	s := &Server{
		Keyboard: kb,
		logger:   logging.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.Streams == nil {
		s.Streams = NewStreamManager(s.logger)
	}

	contract, err := newContractRouter()
	if err != nil {
		return nil, err
	}

	r := chi.NewRouter()
	r.Use(s.validateRequests(contract))

	r.Get("/openapi.yaml", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/yaml")
		w.Write(api.Spec)
	})
	r.Get("/swagger", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(swaggerHTML))
	})

	r.Get("/health", s.GetHealth)
	r.Get("/info", s.GetInfo)
	r.Get("/state", s.GetState)
	r.Get("/layout", s.GetLayout)
	r.Get("/predict", s.GetPredict)
	r.Put("/settings", s.PutSettings)
	r.Put("/prediction", s.PutPrediction)
	r.Route("/targets/{id}", func(r chi.Router) {
		r.Get("/", s.GetTarget)
		r.Post("/enter", s.pointer(kb.PointerEnter))
		r.Post("/leave", s.pointer(kb.PointerLeave))
		r.Post("/down", s.pointer(kb.PointerDown))
	})
	r.Get("/events", s.SubscribeEvents)
	if s.metrics != nil {
		r.Method(http.MethodGet, "/metrics", s.metrics)
	}

	return enableCORS(r), nil
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// GetHealth handles the GET /health request.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// GetInfo handles the GET /info request.
func (s *Server) GetInfo(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{
		"app":     "dwellkeys-http",
		"version": strings.TrimSpace(dwellkeys.Version),
	})
}

// GetState handles the GET /state request.
func (s *Server) GetState(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, s.Keyboard.Snapshot())
}

// GetLayout handles the GET /layout request.
func (s *Server) GetLayout(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, s.Keyboard.Layout())
}

// TargetResponse is the body of every /targets/{id} response.
type TargetResponse struct {
	ID    domain.TargetID `json:"id"`
	Phase domain.Phase    `json:"phase"`
}

// targetID binds the {id} path parameter.
func targetID(r *http.Request) (domain.TargetID, error) {
	var id string
	err := runtime.BindStyledParameterWithOptions("simple", "id", chi.URLParam(r, "id"), &id, runtime.BindStyledParameterOptions{
		ParamLocation: runtime.ParamLocationPath,
		Explode:       false,
		Required:      true,
	})
	if err != nil {
		return "", fmt.Errorf("invalid format for parameter id: %w", err)
	}
	return domain.TargetID(id), nil
}

// GetTarget handles the GET /targets/{id} request.
func (s *Server) GetTarget(w http.ResponseWriter, r *http.Request) {
	id, err := targetID(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	phase := s.Keyboard.Phase(id)
	if phase == domain.PhaseUnknown {
		http.Error(w, fmt.Sprintf("Unknown target: %s", id), http.StatusNotFound)
		return
	}
	s.writeJSON(w, http.StatusOK, TargetResponse{ID: id, Phase: phase})
}

// pointer adapts a pointer event to a POST /targets/{id}/... handler.
// Unknown targets are rejected here; the engine would ignore them anyway.
func (s *Server) pointer(forward func(domain.TargetID)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := targetID(r)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		if s.Keyboard.Phase(id) == domain.PhaseUnknown {
			http.Error(w, fmt.Sprintf("Unknown target: %s", id), http.StatusNotFound)
			return
		}
		forward(id)
		s.writeJSON(w, http.StatusAccepted, TargetResponse{ID: id, Phase: s.Keyboard.Phase(id)})
	}
}

// GetPredictParams are the query parameters of GET /predict.
type GetPredictParams struct {
	Prefix *string `form:"prefix,omitempty" json:"prefix,omitempty"`
	Limit  *int    `form:"limit,omitempty" json:"limit,omitempty"`
}

// GetPredict handles the GET /predict?prefix=&limit= request.
func (s *Server) GetPredict(w http.ResponseWriter, r *http.Request) {
	var params GetPredictParams
	if err := runtime.BindQueryParameter("form", true, false, "prefix", r.URL.Query(), &params.Prefix); err != nil {
		http.Error(w, fmt.Sprintf("Invalid format for parameter prefix: %s", err), http.StatusBadRequest)
		return
	}
	if err := runtime.BindQueryParameter("form", true, false, "limit", r.URL.Query(), &params.Limit); err != nil {
		http.Error(w, fmt.Sprintf("Invalid format for parameter limit: %s", err), http.StatusBadRequest)
		return
	}

	var raw string
	if params.Prefix != nil {
		raw = *params.Prefix
	}
	prefix, err := predict.SanitizePrefix(raw)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	limit := predict.DefaultLimit
	if params.Limit != nil {
		if limit, err = predict.CheckLimit(*params.Limit); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
	}

	s.writeJSON(w, http.StatusOK, map[string]any{
		"prefix":      prefix,
		"suggestions": s.Keyboard.Predict(prefix, limit),
	})
}

// SettingsRequest is the body of PUT /settings. Durations are milliseconds;
// omitted fields keep their current value.
type SettingsRequest struct {
	DwellMs      *int64 `json:"dwell_ms,omitempty"`
	CooldownMs   *int64 `json:"cooldown_ms,omitempty"`
	Sound        *bool  `json:"sound,omitempty"`
	DwellEnabled *bool  `json:"dwell_enabled,omitempty"`
}

// PutSettings handles the PUT /settings request.
func (s *Server) PutSettings(w http.ResponseWriter, r *http.Request) {
	var body SettingsRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		s.logger.Warn("PutSettings: Invalid request body", "error", err)
		return
	}
	if !validDurationMs(body.DwellMs) || !validDurationMs(body.CooldownMs) {
		http.Error(w, fmt.Sprintf("Durations must be between 0 and %d ms", maxDurationMs), http.StatusBadRequest)
		return
	}

	settings := s.Keyboard.Snapshot().Settings
	if body.DwellMs != nil {
		settings.Dwell = time.Duration(*body.DwellMs) * time.Millisecond
	}
	if body.CooldownMs != nil {
		settings.Cooldown = time.Duration(*body.CooldownMs) * time.Millisecond
	}
	if body.Sound != nil {
		settings.Sound = *body.Sound
	}
	if body.DwellEnabled != nil {
		settings.DwellEnabled = *body.DwellEnabled
	}

	s.Keyboard.Configure(settings)
	s.logger.Info("Settings updated", "dwell", settings.Dwell, "cooldown", settings.Cooldown)
	s.writeJSON(w, http.StatusOK, s.Keyboard.Snapshot().Settings)
}

func validDurationMs(ms *int64) bool {
	return ms == nil || (*ms >= 0 && *ms <= maxDurationMs)
}

// PutPrediction handles the PUT /prediction request.
func (s *Server) PutPrediction(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Enabled *bool `json:"enabled"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Enabled == nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	s.Keyboard.SetPredictionEnabled(*body.Enabled)
	s.writeJSON(w, http.StatusOK, map[string]bool{"enabled": *body.Enabled})
}

// SubscribeEvents handles the GET /events request (SSE).
// The optional "topics" query parameter narrows the stream (comma separated).
func (s *Server) SubscribeEvents(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming not supported", http.StatusInternalServerError)
		s.logger.Error("SubscribeEvents: Streaming not supported")
		return
	}

	var filter *[]string
	if err := runtime.BindQueryParameter("form", false, false, "topics", r.URL.Query(), &filter); err != nil {
		http.Error(w, fmt.Sprintf("Invalid format for parameter topics: %s", err), http.StatusBadRequest)
		return
	}
	topics := Topics
	if filter != nil && len(*filter) > 0 {
		topics = *filter
	}

	ch, cancel := s.Streams.Subscribe(topics...)
	defer cancel()

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	s.logger.Info("SSE: Client subscribed", "topics", topics)
	fmt.Fprintf(w, "event: ping\ndata: connected\n\n")
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			s.logger.Info("SSE: Client disconnected")
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			fmt.Fprintf(w, "event: %s\ndata: %s\n\n", msg.Topic, msg.Data)
			flusher.Flush()
		}
	}
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("Response encode failed", "error", err)
	}
}
