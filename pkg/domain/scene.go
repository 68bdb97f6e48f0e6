package domain

import "context"

// Scene is a named conversational state: outgoing relations, lifecycle hooks,
// a view action and two behavior flags. Scenes are built once at declaration
// time and are immutable in topology after registration; only the per-session
// history of scene names changes at runtime.
type Scene struct {
	Name      string
	Namespace string

	// Relations are scanned in declaration order; the first accepted edge
	// wins.
	Relations []*Relation

	OnEnter    []Hook
	OnExit     []Hook
	OnPreView  []Hook
	OnPostView []Hook

	// Messages is the ordered bag consumed by the default view action.
	Messages []MessageFunc

	// Filters guard entry into this scene through any relation. A rejection
	// here discards the matched edge; the resolver keeps scanning.
	Filters *FilterChain

	// Transitional scenes trigger another resolution pass for the same event
	// immediately after being entered.
	Transitional bool

	// CanStay=false marks ephemeral scenes that are never persisted as the
	// session's current scene (for example a one-shot score screen).
	CanStay bool

	// Ext is an open bag for author-supplied custom data.
	Ext map[string]any

	view    ViewAction
	wrapped ViewAction
}

// SceneOption configures a scene at declaration time.
type SceneOption func(*Scene)

// InNamespace sets the scene's namespace explicitly. Scenes without one
// inherit the namespace of the dialog that declares them.
func InNamespace(ns string) SceneOption {
	return func(s *Scene) { s.Namespace = ns }
}

// WithRelations appends outgoing relations in declaration order.
func WithRelations(relations ...*Relation) SceneOption {
	return func(s *Scene) { s.Relations = append(s.Relations, relations...) }
}

// OnEnter appends hooks run when the scene becomes current.
func OnEnter(hooks ...Hook) SceneOption {
	return func(s *Scene) { s.OnEnter = append(s.OnEnter, hooks...) }
}

// OnExit appends hooks run when the session leaves the scene.
func OnExit(hooks ...Hook) SceneOption {
	return func(s *Scene) { s.OnExit = append(s.OnExit, hooks...) }
}

// OnPreView appends hooks run before the view action.
func OnPreView(hooks ...Hook) SceneOption {
	return func(s *Scene) { s.OnPreView = append(s.OnPreView, hooks...) }
}

// OnPostView appends hooks run after the view action, with its result
// available under KeyViewResult.
func OnPostView(hooks ...Hook) SceneOption {
	return func(s *Scene) { s.OnPostView = append(s.OnPostView, hooks...) }
}

// WithView replaces the default view action.
func WithView(view ViewAction) SceneOption {
	return func(s *Scene) { s.view = view }
}

// WithMessages appends message producers consumed by the default view.
func WithMessages(funcs ...MessageFunc) SceneOption {
	return func(s *Scene) { s.Messages = append(s.Messages, funcs...) }
}

// Say is shorthand for a bag of fixed message texts.
func Say(texts ...string) SceneOption {
	return WithMessages(StaticMessages(texts...))
}

// Entry appends predicates to the scene's entry filter chain.
func Entry(predicates ...Predicate) SceneOption {
	return func(s *Scene) {
		if s.Filters == nil {
			s.Filters = NewFilterChain()
		}
		s.Filters.Append(predicates...)
	}
}

// Transitional marks the scene as pass-through: entering it immediately
// triggers another resolution pass for the same event.
func Transitional() SceneOption {
	return func(s *Scene) { s.Transitional = true }
}

// Ephemeral marks the scene as one that can never stay the session's current
// scene.
func Ephemeral() SceneOption {
	return func(s *Scene) { s.CanStay = false }
}

// WithExt stores an author-supplied value on the scene's extension bag.
func WithExt(key string, value any) SceneOption {
	return func(s *Scene) {
		if s.Ext == nil {
			s.Ext = make(map[string]any)
		}
		s.Ext[key] = value
	}
}

// NewScene builds a scene. The pre/post-view wrapping of the view action is
// composed here, once; the raw action stays available through RawView.
func NewScene(name string, opts ...SceneOption) *Scene {
	s := &Scene{
		Name:    name,
		CanStay: true,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.wrapped = s.composeView()
	return s
}

// FullName returns the globally unique "namespace.name" identifier.
func (s *Scene) FullName() string {
	return s.Namespace + "." + s.Name
}

// RawView returns the scene's own view action without the hook wrapping, or
// nil if the scene relies on the engine default.
func (s *Scene) RawView() ViewAction {
	return s.view
}

// View runs the scene's view action wrapped by the on-pre-view and
// on-post-view hooks. Scenes without a view of their own fall back to the
// default installed on the context by the engine.
func (s *Scene) View(ctx context.Context, ev *Context) (any, error) {
	return s.wrapped(ctx, ev)
}

// ExtValue returns an entry of the extension bag.
func (s *Scene) ExtValue(key string) (any, bool) {
	v, ok := s.Ext[key]
	return v, ok
}

// ExtString returns an extension entry if it is a string.
func (s *Scene) ExtString(key string) (string, bool) {
	v, ok := s.Ext[key].(string)
	return v, ok
}

func (s *Scene) composeView() ViewAction {
	base := func(ctx context.Context, ev *Context) (any, error) {
		if s.view != nil {
			return s.view(ctx, ev)
		}
		if ev.defaultView != nil {
			return ev.defaultView(ctx, ev)
		}
		return nil, nil
	}

	return func(ctx context.Context, ev *Context) (any, error) {
		for _, hook := range s.OnPreView {
			if err := hook(ctx, ev); err != nil {
				return nil, err
			}
		}

		result, err := base(ctx, ev)
		if err != nil {
			return nil, err
		}

		ev.Set(KeyViewResult, result)

		for _, hook := range s.OnPostView {
			if err := hook(ctx, ev); err != nil {
				return result, err
			}
		}

		return result, nil
	}
}

func (s *Scene) String() string {
	return "<Scene " + s.FullName() + ">"
}
