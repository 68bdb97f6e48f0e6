package runtime

import (
	"context"

	"github.com/scenekit/scenekit/pkg/domain"
	"github.com/scenekit/scenekit/pkg/registry"
)

// Resolver is the pure transition decision: given the session's current scene
// and an event, pick the next scene or report that nothing owns the event.
type Resolver struct {
	registry *registry.Registry
}

// NewResolver creates a resolver over a frozen registry.
func NewResolver(reg *registry.Registry) *Resolver {
	return &Resolver{registry: reg}
}

// NextScene scans the current scene's relations in declaration order, then
// every router's relations in registration order, and returns the target of
// the first relation that matches the event type, whose filter chain accepts,
// and whose target's entry filters accept. A nil scene with a nil error means
// no relation owns this event.
func (r *Resolver) NextScene(ctx context.Context, current *domain.Scene, et domain.EventType, ev *domain.Context) (*domain.Scene, error) {
	if current != nil {
		next, err := r.scan(ctx, current.Relations, et, ev)
		if err != nil || next != nil {
			return next, err
		}
	}

	for _, router := range r.registry.Routers() {
		next, err := r.scan(ctx, router.Relations, et, ev)
		if err != nil || next != nil {
			return next, err
		}
	}

	return nil, nil
}

func (r *Resolver) scan(ctx context.Context, relations []*domain.Relation, et domain.EventType, ev *domain.Context) (*domain.Scene, error) {
	for _, relation := range relations {
		if !relation.Matches(et) {
			continue
		}

		ok, err := relation.Filters.Evaluate(ctx, ev)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}

		target, err := relation.Target(ctx, ev)
		if err != nil {
			return nil, err
		}
		if target == nil {
			// A dynamic target declined this event; the edge is discarded.
			continue
		}

		// The target may re-check entry on its own terms. A rejection here
		// discards the matched edge and scanning continues; the edge is not
		// retried.
		if target.Filters != nil {
			ok, err := target.Filters.Evaluate(ctx, ev)
			if err != nil {
				return nil, err
			}
			if !ok {
				continue
			}
		}

		// Transition side effects run once the edge is final, with the
		// pending target visible in the context.
		if len(relation.OnTransition) > 0 {
			ev.SetNextScene(target)
			for _, hook := range relation.OnTransition {
				if err := hook(ctx, ev); err != nil {
					ev.SetNextScene(nil)
					return nil, err
				}
			}
			ev.SetNextScene(nil)
		}

		return target, nil
	}

	return nil, nil
}
