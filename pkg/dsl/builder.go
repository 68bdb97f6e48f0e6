package dsl

import "github.com/scenekit/scenekit/pkg/domain"

// Builder accumulates the scenes and routers of one dialog.
type Builder struct {
	dialog *domain.Dialog
}

// New starts a dialog builder. The namespace defaults to the dialog name.
func New(name string) *Builder {
	return &Builder{dialog: domain.NewDialog(name)}
}

// Namespace overrides the dialog's namespace.
func (b *Builder) Namespace(ns string) *Builder {
	b.dialog.Namespace = ns
	return b
}

// Scene declares a scene with the given options. Scenes inherit the dialog
// namespace unless one is set explicitly.
func (b *Builder) Scene(name string, opts ...domain.SceneOption) *Builder {
	b.dialog.Add(domain.NewScene(name, opts...))
	return b
}

// Add appends an already-constructed scene.
func (b *Builder) Add(scenes ...*domain.Scene) *Builder {
	b.dialog.Add(scenes...)
	return b
}

// Router declares a router holding fallback relations in declaration order.
func (b *Builder) Router(relations ...*domain.Relation) *Builder {
	b.dialog.AddRouter(domain.NewRouter(relations...))
	return b
}

// Build returns the declared dialog, ready for the registry builder.
func (b *Builder) Build() *domain.Dialog {
	return b.dialog
}
