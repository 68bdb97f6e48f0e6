package runtime

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/scenekit/scenekit/internal/logging"
	"github.com/scenekit/scenekit/pkg/domain"
	"github.com/scenekit/scenekit/pkg/observability"
	"github.com/scenekit/scenekit/pkg/ports"
	"github.com/scenekit/scenekit/pkg/registry"
	"github.com/scenekit/scenekit/pkg/session"
)

// DefaultMaxTransitions bounds transitional scene chains within one event.
// The graph language imposes no cycle limit of its own, so the engine treats
// exceeding this bound as a fatal condition rather than looping forever.
const DefaultMaxTransitions = 32

// Engine orchestrates one incoming event end to end: it loads the session's
// scene history, drives the resolver in a loop to absorb transitional scenes,
// runs lifecycle hooks in order and persists the resulting history.
type Engine struct {
	registry *registry.Registry
	resolver *Resolver
	sessions *session.Manager

	messenger ports.Messenger
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

// WithMetrics enables Prometheus instrumentation.
func WithMetrics(m *observability.Metrics) Option {
	return func(e *Engine) { e.metrics = m }
}

// WithLogger configures the engine logger.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) { e.logger = logger }
}

// WithMaxTransitions overrides the transitional chain bound.
func WithMaxTransitions(n int) Option {
	return func(e *Engine) { e.maxChain = n }
}

// NewEngine creates an engine over a frozen registry and a session manager.
func NewEngine(reg *registry.Registry, sessions *session.Manager, opts ...Option) *Engine {
	e := &Engine{
		registry: reg,
		resolver: NewResolver(reg),
		sessions: sessions,
		logger:   logging.NewNop(),
		maxChain: DefaultMaxTransitions,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// HandleEvent processes one incoming event under the session lock.
//
// Result.Handled is false when no relation anywhere owns the event; that is a
// normal outcome, not an error. Errors raised by predicates, hooks or views
// propagate unchanged: the engine performs no retry and no rollback, so hook
// execution is at-least-once, and history may be updated even when a later
// hook fails.
func (e *Engine) HandleEvent(ctx context.Context, event domain.Event) (domain.Result, error) {
	var result domain.Result
	err := e.sessions.WithLock(ctx, event.SessionKey(), func(ctx context.Context) error {
		var err error
		result, err = e.process(ctx, event)
		return err
	})

	switch {
	case err != nil:
		e.metrics.ObserveEvent(observability.ResultError, len(result.Chain))
	case result.Handled:
		e.metrics.ObserveEvent(observability.ResultHandled, len(result.Chain))
	default:
		e.metrics.ObserveEvent(observability.ResultUnhandled, 0)
	}

	return result, err
}

func (e *Engine) process(ctx context.Context, event domain.Event) (domain.Result, error) {
	var result domain.Result

	store := e.sessions.Store()

	history, err := store.History(ctx, event.ChatID, event.UserID)
	if err != nil {
		return result, fmt.Errorf("failed to load scene history: %w", err)
	}

	previous := e.sceneFromHistory(history, 2)
	current := e.sceneFromHistory(history, 1)

	ev := domain.NewContext(event)
	ev.SetDefaultView(e.defaultView)
	ev.SetLookup(e.registry)

	for steps := 0; ; steps++ {
		if steps >= e.maxChain {
			return result, fmt.Errorf("%d scenes entered for one event: %w", steps, domain.ErrTransitionLoop)
		}

		ev.SetPreviousScene(previous)
		ev.SetCurrentScene(current)
		ev.SetNextScene(nil)

		next, err := e.resolver.NextScene(ctx, current, event.Type, ev)
		if err != nil {
			return result, err
		}
		if next == nil {
			// Nothing owns the event. On the first pass the caller should
			// dispatch it elsewhere; mid-chain it simply ends the run.
			result.Handled = len(result.Chain) > 0
			return result, nil
		}

		if current != nil {
			// Exit hooks see the pending target; the slot is cleared again
			// before the next phase to avoid stale reads.
			ev.SetNextScene(next)
			for _, hook := range current.OnExit {
				if err := hook(ctx, ev); err != nil {
					return result, err
				}
			}
			ev.SetNextScene(nil)
		}

		if next.CanStay && next != current {
			if _, err := store.SetCurrentScene(ctx, event.ChatID, event.UserID, next); err != nil {
				return result, fmt.Errorf("failed to persist scene %s: %w", next.FullName(), err)
			}
		}

		previous, current = current, next
		ev.SetPreviousScene(previous)
		ev.SetCurrentScene(current)

		for _, hook := range current.OnEnter {
			if err := hook(ctx, ev); err != nil {
				return result, err
			}
		}

		if _, err := current.View(ctx, ev); err != nil {
			return result, err
		}

		result.Chain = append(result.Chain, current.FullName())
		e.metrics.ObserveTransition(current.FullName())
		e.logger.Debug("scene entered",
			"scene", current.FullName(),
			"session_key", event.SessionKey(),
			"event_type", string(event.Type),
		)

		if !current.Transitional {
			result.Handled = true
			return result, nil
		}
		// Transitional: loop again with the same event, without consuming a
		// new external one.
	}
}

// CurrentScene resolves the session's current scene through the registry, or
// nil when the history is empty.
func (e *Engine) CurrentScene(ctx context.Context, chatID, userID string) (*domain.Scene, error) {
	history, err := e.sessions.Store().History(ctx, chatID, userID)
	if err != nil {
		return nil, err
	}
	return e.sceneFromHistory(history, 1), nil
}

// PreviousScene resolves the session's previous scene, or nil when the
// history holds fewer than two entries.
func (e *Engine) PreviousScene(ctx context.Context, chatID, userID string) (*domain.Scene, error) {
	history, err := e.sessions.Store().History(ctx, chatID, userID)
	if err != nil {
		return nil, err
	}
	return e.sceneFromHistory(history, 2), nil
}

// sceneFromHistory resolves the n-th entry from the end of the history.
// Names that no longer resolve (a scene renamed between deploys) are treated
// as no scene at all, so the session falls back to router relations.
func (e *Engine) sceneFromHistory(history []string, fromEnd int) *domain.Scene {
	if len(history) < fromEnd {
		return nil
	}
	name := history[len(history)-fromEnd]
	scene, err := e.registry.Scene(name)
	if err != nil {
		e.logger.Warn("history names unknown scene", "scene", name)
		return nil
	}
	return scene
}

// defaultView walks the scene's message bag and sends everything it yields
// through the configured messenger. It is installed on the context once per
// run; scenes with their own view action never reach it.
func (e *Engine) defaultView(ctx context.Context, ev *domain.Context) (any, error) {
	scene := ev.CurrentScene()
	if scene == nil || e.messenger == nil {
		return nil, nil
	}

	var sent []domain.Message
	for _, produce := range scene.Messages {
		msgs, err := produce(ctx, ev)
		if err != nil {
			return sent, err
		}
		for _, msg := range msgs {
			if err := e.messenger.Send(ctx, ev.Event.ChatID, msg); err != nil {
				return sent, fmt.Errorf("failed to deliver message: %w", err)
			}
			sent = append(sent, msg)
		}
	}
	return sent, nil
}
