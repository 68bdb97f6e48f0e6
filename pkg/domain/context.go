package domain

import "context"

// Reserved context keys. These slots are maintained by the engine during a
// run; predicates, hooks and views read them through the typed accessors.
const (
	KeyPreviousScene = "previous_scene"
	KeyCurrentScene  = "current_scene"
	KeyNextScene     = "next_scene"
	KeyViewResult    = "view_result"
)

// Context carries the incoming event plus the mutable value bag shared by
// reference with every predicate, hook and view action of one engine run.
// Values injected by a predicate are visible to later predicates in the same
// chain and to every downstream hook.
//
// Context is not safe for concurrent use; one engine run owns it exclusively.
type Context struct {
	Event Event

	values      map[string]any
	defaultView ViewAction
	lookup      TargetLookup
}

// NewContext creates the value bag for a single engine run.
func NewContext(ev Event) *Context {
	return &Context{
		Event:  ev,
		values: make(map[string]any),
	}
}

// Get returns the value stored under key.
func (c *Context) Get(key string) (any, bool) {
	v, ok := c.values[key]
	return v, ok
}

// String returns the value under key if it is a string.
func (c *Context) String(key string) (string, bool) {
	s, ok := c.values[key].(string)
	return s, ok
}

// Set stores a value under key, overwriting any existing entry.
func (c *Context) Set(key string, value any) {
	c.values[key] = value
}

// Merge copies every entry of kv into the bag, overwriting existing keys.
func (c *Context) Merge(kv map[string]any) {
	for k, v := range kv {
		c.values[k] = v
	}
}

// Values exposes the live underlying map. Mutations are visible to every
// later predicate and hook of the same run.
func (c *Context) Values() map[string]any {
	return c.values
}

// PreviousScene returns the scene that was current before the last transition.
func (c *Context) PreviousScene() *Scene { return c.sceneAt(KeyPreviousScene) }

// CurrentScene returns the scene the session is currently in.
func (c *Context) CurrentScene() *Scene { return c.sceneAt(KeyCurrentScene) }

// NextScene returns the pending transition target. It is only set while
// on-exit and on-transition hooks run, and cleared again afterwards.
func (c *Context) NextScene() *Scene { return c.sceneAt(KeyNextScene) }

// SetPreviousScene updates the previous-scene slot. A nil scene clears it.
func (c *Context) SetPreviousScene(s *Scene) { c.setScene(KeyPreviousScene, s) }

// SetCurrentScene updates the current-scene slot. A nil scene clears it.
func (c *Context) SetCurrentScene(s *Scene) { c.setScene(KeyCurrentScene, s) }

// SetNextScene updates the next-scene slot. A nil scene clears it.
func (c *Context) SetNextScene(s *Scene) { c.setScene(KeyNextScene, s) }

// ViewResult returns whatever the last view action produced, or nil if no
// view ran yet in this invocation.
func (c *Context) ViewResult() any {
	return c.values[KeyViewResult]
}

// SetDefaultView installs the fallback view action used by scenes that do not
// declare one of their own. The engine sets this once per run.
func (c *Context) SetDefaultView(view ViewAction) {
	c.defaultView = view
}

// SetLookup gives dynamic targets read access to the frozen scene table. The
// engine sets this once per run.
func (c *Context) SetLookup(lookup TargetLookup) {
	c.lookup = lookup
}

// LookupScene resolves a full name through the scene table, if one was
// installed.
func (c *Context) LookupScene(fullName string) (*Scene, bool) {
	if c.lookup == nil {
		return nil, false
	}
	return c.lookup.SceneByFullName(fullName)
}

func (c *Context) sceneAt(key string) *Scene {
	s, _ := c.values[key].(*Scene)
	return s
}

func (c *Context) setScene(key string, s *Scene) {
	if s == nil {
		// Remove the key entirely so a cleared slot never trips HasKey-style
		// predicates on a typed nil.
		delete(c.values, key)
		return
	}
	c.values[key] = s
}

// Hook is a side-effecting lifecycle callback. Hooks run sequentially in
// declaration order; an error aborts the current engine run.
type Hook func(ctx context.Context, ev *Context) error

// ViewAction produces the outgoing messages of a scene. Its return value is
// stored under KeyViewResult before the on-post-view hooks run.
type ViewAction func(ctx context.Context, ev *Context) (any, error)
