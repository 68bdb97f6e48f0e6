// Package http exposes the dialog engine over a webhook-style HTTP surface.
package http

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/scenekit/scenekit/internal/logging"
	"github.com/scenekit/scenekit/pkg/domain"
	"github.com/scenekit/scenekit/pkg/observability"
)

// Engine is the slice of the dialog engine the HTTP adapter consumes.
type Engine interface {
	HandleEvent(ctx context.Context, event domain.Event) (domain.Result, error)
}

// Server dispatches webhook events into the engine.
type Server struct {
	engine  Engine
	metrics *observability.Metrics
	logger  *slog.Logger
}

// Option configures the server.
type Option func(*Server)

// WithMetrics mounts the Prometheus handler at /metrics.
func WithMetrics(m *observability.Metrics) Option {
	return func(s *Server) { s.metrics = m }
}

// WithLogger configures the request logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) { s.logger = logger }
}

// NewHandler builds the HTTP handler for the engine.
//
// POST /sessions/{chatID}/{userID}/events ingests one event; the response is
// 200 with the result when the dialog graph handled it, 204 when nothing in
// the graph owns the event, 400 on a malformed body.
func NewHandler(engine Engine, opts ...Option) http.Handler {
	server := &Server{
		engine: engine,
		logger: logging.NewNop(),
	}
	for _, opt := range opts {
		opt(server)
	}

	r := chi.NewRouter()
	r.Post("/sessions/{chatID}/{userID}/events", server.handleEvent)
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	if server.metrics != nil {
		r.Method(http.MethodGet, "/metrics", server.metrics.Handler())
	}
	return r
}

type eventBody struct {
	Type    string         `json:"type"`
	Text    string         `json:"text"`
	Payload map[string]any `json:"payload"`
}

func (s *Server) handleEvent(w http.ResponseWriter, r *http.Request) {
	var body eventBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if body.Type == "" {
		body.Type = string(domain.EventMessage)
	}

	event := domain.Event{
		Type:    domain.EventType(body.Type),
		ChatID:  chi.URLParam(r, "chatID"),
		UserID:  chi.URLParam(r, "userID"),
		Text:    body.Text,
		Payload: body.Payload,
	}

	result, err := s.engine.HandleEvent(r.Context(), event)
	switch {
	case errors.Is(err, domain.ErrTransitionLoop):
		s.logger.Error("transitional chain exceeded limit", "session_key", event.SessionKey())
		http.Error(w, err.Error(), http.StatusLoopDetected)
		return
	case err != nil:
		s.logger.Error("event processing failed", "session_key", event.SessionKey(), "err", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	case !result.Handled:
		w.WriteHeader(http.StatusNoContent)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(result); err != nil {
		s.logger.Error("failed to encode response", "err", err)
	}
}
