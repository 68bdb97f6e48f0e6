package domain

import (
	"context"
	"fmt"
	"strings"
)

// TargetFunc resolves a relation target dynamically from the event context.
// Returning a nil scene discards the edge for this event; the resolver then
// keeps scanning subsequent relations.
type TargetFunc func(ctx context.Context, ev *Context) (*Scene, error)

// LazyRef names a scene of a dialog that may not be declared yet. It is the
// typed stand-in for a forward reference, resolved once during the registry
// build after every dialog is known.
type LazyRef struct {
	// Dialog is the declaring dialog's name. Empty means the scene lives in
	// the relation's own namespace.
	Dialog string
	Scene  string
}

// TargetLookup is the read surface a Relation needs to turn names and lazy
// references into concrete scenes. The registry builder implements it.
type TargetLookup interface {
	SceneByFullName(fullName string) (*Scene, bool)
	DialogScene(dialog, scene string) (*Scene, bool)
}

// Relation is a guarded, directed edge from a scene or a router to a target
// scene. Exactly one target form is set; construction goes through To,
// ToName, ToLazy or ToFunc. Targets other than TargetFunc are resolved to a
// concrete scene exactly once, by Resolve, before any evaluation happens.
type Relation struct {
	EventTypes   []EventType
	Filters      *FilterChain
	OnTransition []Hook

	scene   *Scene
	name    string
	lazy    *LazyRef
	dynamic TargetFunc

	resolved *Scene
}

// RelationOption configures a relation at declaration time.
type RelationOption func(*Relation)

// OnEvents restricts the relation to the given event types. The default is
// EventMessage alone.
func OnEvents(types ...EventType) RelationOption {
	return func(r *Relation) {
		r.EventTypes = types
	}
}

// Guard appends predicates to the relation's filter chain, preserving
// declaration order.
func Guard(predicates ...Predicate) RelationOption {
	return func(r *Relation) {
		if r.Filters == nil {
			r.Filters = NewFilterChain()
		}
		r.Filters.Append(predicates...)
	}
}

// OnTransition appends hooks that run exactly once, after the edge is chosen
// and before the scene actually changes.
func OnTransition(hooks ...Hook) RelationOption {
	return func(r *Relation) {
		r.OnTransition = append(r.OnTransition, hooks...)
	}
}

func newRelation(opts []RelationOption) *Relation {
	r := &Relation{
		EventTypes: []EventType{EventMessage},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// To declares a relation to an already-constructed scene.
func To(target *Scene, opts ...RelationOption) *Relation {
	r := newRelation(opts)
	r.scene = target
	return r
}

// ToName declares a relation to a scene by name. A bare name (no dot) is
// qualified with the owning namespace during resolution.
func ToName(name string, opts ...RelationOption) *Relation {
	r := newRelation(opts)
	r.name = name
	return r
}

// ToLazy declares a forward reference to a scene of a dialog that may not be
// declared yet.
func ToLazy(dialog, scene string, opts ...RelationOption) *Relation {
	r := newRelation(opts)
	r.lazy = &LazyRef{Dialog: dialog, Scene: scene}
	return r
}

// ToFunc declares a dynamic target computed from the event context at
// resolution time.
func ToFunc(fn TargetFunc, opts ...RelationOption) *Relation {
	r := newRelation(opts)
	r.dynamic = fn
	return r
}

// Matches reports whether the relation applies to the given event type.
func (r *Relation) Matches(et EventType) bool {
	for _, t := range r.EventTypes {
		if t == et {
			return true
		}
	}
	return false
}

// Resolve pins the relation's target to a concrete scene. It is called once
// by the registry builder, after every dialog has been declared; namespace is
// the namespace of the owning scene or router, used to qualify bare names.
// Dynamic targets are left alone.
func (r *Relation) Resolve(lookup TargetLookup, namespace string) error {
	switch {
	case r.dynamic != nil:
		return nil

	case r.scene != nil:
		r.resolved = r.scene
		return nil

	case r.name != "":
		fullName := r.name
		if !strings.Contains(fullName, ".") {
			fullName = namespace + "." + fullName
		}
		scene, ok := lookup.SceneByFullName(fullName)
		if !ok {
			return fmt.Errorf("relation target %q: %w", fullName, ErrSceneNotFound)
		}
		r.resolved = scene
		return nil

	case r.lazy != nil:
		if r.lazy.Dialog == "" {
			return r.resolveLazyByName(lookup, namespace)
		}
		scene, ok := lookup.DialogScene(r.lazy.Dialog, r.lazy.Scene)
		if !ok {
			return fmt.Errorf("relation target %q of dialog %q: %w",
				r.lazy.Scene, r.lazy.Dialog, ErrSceneNotFound)
		}
		r.resolved = scene
		return nil

	default:
		return fmt.Errorf("relation declared without a target")
	}
}

func (r *Relation) resolveLazyByName(lookup TargetLookup, namespace string) error {
	fullName := r.lazy.Scene
	if !strings.Contains(fullName, ".") {
		fullName = namespace + "." + fullName
	}
	scene, ok := lookup.SceneByFullName(fullName)
	if !ok {
		return fmt.Errorf("relation target %q: %w", fullName, ErrSceneNotFound)
	}
	r.resolved = scene
	return nil
}

// Target returns the concrete scene this relation leads to for the given
// event. Static targets must have been pinned by Resolve beforehand.
func (r *Relation) Target(ctx context.Context, ev *Context) (*Scene, error) {
	if r.dynamic != nil {
		return r.dynamic(ctx, ev)
	}
	if r.resolved == nil {
		return nil, fmt.Errorf("relation evaluated before target resolution")
	}
	return r.resolved, nil
}
