package scenekit

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/scenekit/scenekit/internal/logging"
	"github.com/scenekit/scenekit/internal/runtime"
	"github.com/scenekit/scenekit/pkg/domain"
	"github.com/scenekit/scenekit/pkg/observability"
	"github.com/scenekit/scenekit/pkg/ports"
	"github.com/scenekit/scenekit/pkg/registry"
	"github.com/scenekit/scenekit/pkg/session"
)

// Engine is the high-level entry point for the scenekit library. It wraps the
// internal runtime and the session manager behind a simplified API.
type Engine struct {
	runtime  *runtime.Engine
	registry *registry.Registry
	sessions *session.Manager

	messenger ports.Messenger
	locker    ports.DistributedLocker
	metrics   *observability.Metrics
	logger    *slog.Logger
	maxChain  int
}

// Option configures the Engine.
type Option func(*Engine)

// WithMessenger installs the transport used by the default view action.
func WithMessenger(m ports.Messenger) Option {
	return func(e *Engine) { e.messenger = m }
}

// WithLocker enables distributed session locking (multi-replica deployments).
func WithLocker(l ports.DistributedLocker) Option {
	return func(e *Engine) { e.locker = l }
}

// WithMetrics enables Prometheus instrumentation.
func WithMetrics(m *observability.Metrics) Option {
	return func(e *Engine) { e.metrics = m }
}

// WithLogger configures the engine logger.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) { e.logger = logger }
}

// WithMaxTransitions overrides the bound on transitional scene chains within
// one event (default runtime.DefaultMaxTransitions).
func WithMaxTransitions(n int) Option {
	return func(e *Engine) { e.maxChain = n }
}

// New resolves the declared dialogs into a frozen registry and builds an
// engine over the given store. Declaration mistakes (an unnamed scene, a
// duplicate full name, a relation to an unknown scene) surface here, before
// the first event is accepted.
func New(dialogs []*domain.Dialog, store ports.SceneStore, opts ...Option) (*Engine, error) {
	reg, err := registry.NewBuilder().Add(dialogs...).Resolve()
	if err != nil {
		return nil, fmt.Errorf("failed to resolve dialog registry: %w", err)
	}
	return NewFromRegistry(reg, store, opts...), nil
}

// NewFromRegistry builds an engine over an already-resolved registry.
func NewFromRegistry(reg *registry.Registry, store ports.SceneStore, opts ...Option) *Engine {
	e := &Engine{
		registry: reg,
		logger:   logging.NewNop(),
		maxChain: runtime.DefaultMaxTransitions,
	}
	for _, opt := range opts {
		opt(e)
	}

	sessionOpts := []session.Option{session.WithLogger(e.logger)}
	if e.locker != nil {
		sessionOpts = append(sessionOpts, session.WithLocker(e.locker))
	}
	e.sessions = session.NewManager(store, sessionOpts...)

	e.runtime = runtime.NewEngine(reg, e.sessions,
		runtime.WithMessenger(e.messenger),
		runtime.WithMetrics(e.metrics),
		runtime.WithLogger(e.logger),
		runtime.WithMaxTransitions(e.maxChain),
	)
	return e
}

// HandleEvent processes one incoming event. Result.Handled is false when the
// dialog graph does not own the event; that is a normal outcome, and the
// caller is free to dispatch the event elsewhere.
func (e *Engine) HandleEvent(ctx context.Context, event domain.Event) (domain.Result, error) {
	return e.runtime.HandleEvent(ctx, event)
}

// CurrentScene returns the session's current scene, or nil for a fresh
// session.
func (e *Engine) CurrentScene(ctx context.Context, chatID, userID string) (*domain.Scene, error) {
	return e.runtime.CurrentScene(ctx, chatID, userID)
}

// PreviousScene returns the session's previous scene, or nil when history
// holds fewer than two entries.
func (e *Engine) PreviousScene(ctx context.Context, chatID, userID string) (*domain.Scene, error) {
	return e.runtime.PreviousScene(ctx, chatID, userID)
}

// Registry exposes the frozen scene table.
func (e *Engine) Registry() *registry.Registry {
	return e.registry
}

// Sessions exposes the session manager, for hooks that need locked access to
// the store (for example a "go back" transition truncating history).
func (e *Engine) Sessions() *session.Manager {
	return e.sessions
}

// Current is a dynamic relation target that re-enters the session's current
// scene ("repeat the question"). The edge is discarded for fresh sessions.
func Current() domain.TargetFunc {
	return func(_ context.Context, ev *domain.Context) (*domain.Scene, error) {
		return ev.CurrentScene(), nil
	}
}

// Previous is a dynamic relation target that returns to the session's
// previous scene ("go back"). The edge is discarded when there is none.
func Previous() domain.TargetFunc {
	return func(_ context.Context, ev *domain.Context) (*domain.Scene, error) {
		return ev.PreviousScene(), nil
	}
}

// CurrentOr re-enters the current scene, falling back to the named scene for
// fresh sessions. This is the usual target of a "/start" router relation.
func CurrentOr(fullName string) domain.TargetFunc {
	return func(_ context.Context, ev *domain.Context) (*domain.Scene, error) {
		if s := ev.CurrentScene(); s != nil {
			return s, nil
		}
		s, ok := ev.LookupScene(fullName)
		if !ok {
			return nil, fmt.Errorf("start target %q: %w", fullName, domain.ErrSceneNotFound)
		}
		return s, nil
	}
}
