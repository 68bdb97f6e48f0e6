package domain

// Router is a namespace-scoped bag of fallback relations not owned by any
// single scene. Router relations are evaluated only when no scene-owned
// relation matched. Relations keep their declaration order, and routers keep
// their registration order: match order is semantically significant.
type Router struct {
	Namespace string
	Relations []*Relation
}

// NewRouter builds a router from relations in declaration order. The
// namespace is filled in by the declaring dialog unless set explicitly.
func NewRouter(relations ...*Relation) *Router {
	return &Router{Relations: relations}
}

// Dialog is the declaration unit: a named group of scenes and routers that
// share a namespace. Scenes declared without a namespace inherit the
// dialog's; the dialog's namespace defaults to its name.
type Dialog struct {
	Name      string
	Namespace string
	Scenes    []*Scene
	Routers   []*Router
}

// NewDialog creates an empty dialog.
func NewDialog(name string) *Dialog {
	return &Dialog{Name: name, Namespace: name}
}

// Add appends scenes to the dialog.
func (d *Dialog) Add(scenes ...*Scene) *Dialog {
	d.Scenes = append(d.Scenes, scenes...)
	return d
}

// AddRouter appends routers to the dialog.
func (d *Dialog) AddRouter(routers ...*Router) *Dialog {
	d.Routers = append(d.Routers, routers...)
	return d
}
