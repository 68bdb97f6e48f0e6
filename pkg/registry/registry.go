// Package registry turns declared dialogs into a frozen, process-wide scene
// table. Construction is two-phase: dialogs are collected into a Builder,
// then a single Resolve pass validates names, pins every relation target and
// produces an immutable Registry. No relation may be evaluated before that
// pass completes; after it, the Registry is read-only and safe for
// lock-free concurrent readers.
package registry

import (
	"fmt"
	"sort"

	"github.com/scenekit/scenekit/pkg/domain"
)

// Builder collects dialogs during the declaration phase.
type Builder struct {
	dialogs []*domain.Dialog
}

// NewBuilder creates an empty builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// Add appends dialogs in declaration order.
func (b *Builder) Add(dialogs ...*domain.Dialog) *Builder {
	b.dialogs = append(b.dialogs, dialogs...)
	return b
}

// Resolve validates every declared dialog, pins every relation target and
// freezes the result. Any failure here is fatal to startup: an unnamed scene
// or router, a duplicate full name, or a target that cannot be found.
func (b *Builder) Resolve() (*Registry, error) {
	idx := &index{
		scenes:       make(map[string]*domain.Scene),
		dialogScenes: make(map[string]map[string]*domain.Scene),
	}
	reg := &Registry{
		index:   idx,
		dialogs: make(map[string]*domain.Dialog),
	}

	// Phase one: register every scene and router so that forward references
	// can be resolved regardless of declaration order.
	for _, dialog := range b.dialogs {
		if dialog.Name == "" {
			return nil, fmt.Errorf("cannot register dialog without a name")
		}
		if dialog.Namespace == "" {
			dialog.Namespace = dialog.Name
		}
		if _, dup := reg.dialogs[dialog.Name]; dup {
			return nil, fmt.Errorf("dialog %q registered twice", dialog.Name)
		}
		reg.dialogs[dialog.Name] = dialog
		idx.dialogScenes[dialog.Name] = make(map[string]*domain.Scene)

		for _, scene := range dialog.Scenes {
			if scene.Name == "" {
				return nil, fmt.Errorf("dialog %q: cannot register scene without a name", dialog.Name)
			}
			if scene.Namespace == "" {
				scene.Namespace = dialog.Namespace
			}

			fullName := scene.FullName()
			if _, dup := idx.scenes[fullName]; dup {
				return nil, fmt.Errorf("scene %q registered twice", fullName)
			}
			idx.scenes[fullName] = scene
			idx.dialogScenes[dialog.Name][scene.Name] = scene
		}

		for _, router := range dialog.Routers {
			if router.Namespace == "" {
				router.Namespace = dialog.Namespace
			}
			if router.Namespace == "" {
				return nil, fmt.Errorf("dialog %q: cannot register router without a namespace", dialog.Name)
			}
			reg.routers = append(reg.routers, router)
		}
	}

	// Phase two: pin every relation target now that the whole graph is known.
	for _, dialog := range b.dialogs {
		for _, scene := range dialog.Scenes {
			for i, relation := range scene.Relations {
				if err := relation.Resolve(idx, scene.Namespace); err != nil {
					return nil, fmt.Errorf("scene %q relation %d: %w", scene.FullName(), i, err)
				}
			}
		}
		for _, router := range dialog.Routers {
			for i, relation := range router.Relations {
				if err := relation.Resolve(idx, router.Namespace); err != nil {
					return nil, fmt.Errorf("router of %q relation %d: %w", router.Namespace, i, err)
				}
			}
		}
	}

	return reg, nil
}

// index implements domain.TargetLookup over the staged scenes.
type index struct {
	scenes       map[string]*domain.Scene
	dialogScenes map[string]map[string]*domain.Scene
}

func (i *index) SceneByFullName(fullName string) (*domain.Scene, bool) {
	s, ok := i.scenes[fullName]
	return s, ok
}

func (i *index) DialogScene(dialog, scene string) (*domain.Scene, bool) {
	scenes, ok := i.dialogScenes[dialog]
	if !ok {
		return nil, false
	}
	s, ok := scenes[scene]
	return s, ok
}

// Registry is the frozen scene table. It is populated exclusively by
// Builder.Resolve and read-only afterwards; concurrent readers need no
// locking because no writer exists after the init phase.
type Registry struct {
	index   *index
	routers []*domain.Router
	dialogs map[string]*domain.Dialog
}

// Scene looks up a scene by its full "namespace.name" identifier.
func (r *Registry) Scene(fullName string) (*domain.Scene, error) {
	s, ok := r.index.scenes[fullName]
	if !ok {
		return nil, fmt.Errorf("%q: %w", fullName, domain.ErrSceneNotFound)
	}
	return s, nil
}

// SceneByFullName implements domain.TargetLookup.
func (r *Registry) SceneByFullName(fullName string) (*domain.Scene, bool) {
	return r.index.SceneByFullName(fullName)
}

// DialogScene implements domain.TargetLookup.
func (r *Registry) DialogScene(dialog, scene string) (*domain.Scene, bool) {
	return r.index.DialogScene(dialog, scene)
}

// Dialog looks up a dialog by name.
func (r *Registry) Dialog(name string) (*domain.Dialog, bool) {
	d, ok := r.dialogs[name]
	return d, ok
}

// Routers returns every registered router in registration order.
func (r *Registry) Routers() []*domain.Router {
	return r.routers
}

// SceneNames returns the full names of every registered scene, sorted.
func (r *Registry) SceneNames() []string {
	names := make([]string, 0, len(r.index.scenes))
	for name := range r.index.scenes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
