// Package dialogyaml loads dialog topologies from YAML documents.
//
// The declarative form covers scenes, flags, static message texts, relations
// and keyword filter specs. Hooks, dynamic targets and custom view actions
// are code, not data; dialogs that need them are built programmatically (or
// the loaded dialog is post-processed before registration).
package dialogyaml

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/scenekit/scenekit/pkg/domain"
	"github.com/scenekit/scenekit/pkg/filters"
)

// File is the root of a dialog definition document.
type File struct {
	Dialogs []DialogDef `yaml:"dialogs"`
}

// DialogDef declares one dialog.
type DialogDef struct {
	Name      string      `yaml:"name"`
	Namespace string      `yaml:"namespace"`
	Scenes    []SceneDef  `yaml:"scenes"`
	Routers   []RouterDef `yaml:"routers"`
}

// SceneDef declares one scene.
type SceneDef struct {
	Name         string         `yaml:"name"`
	Namespace    string         `yaml:"namespace"`
	Messages     []string       `yaml:"messages"`
	Relations    []RelationDef  `yaml:"relations"`
	Entry        map[string]any `yaml:"entry"`
	Transitional bool           `yaml:"transitional"`
	CanStay      *bool          `yaml:"can_stay"`
	Ext          map[string]any `yaml:"ext"`
}

// RouterDef declares one router.
type RouterDef struct {
	Namespace string        `yaml:"namespace"`
	Relations []RelationDef `yaml:"relations"`
}

// RelationDef declares one guarded edge. Either To (a plain, possibly
// qualified scene name) or ToDialog+ToScene (a forward reference into another
// dialog) names the target.
type RelationDef struct {
	To       string         `yaml:"to"`
	ToDialog string         `yaml:"to_dialog"`
	ToScene  string         `yaml:"to_scene"`
	Events   []string       `yaml:"events"`
	Filters  map[string]any `yaml:"filters"`
}

// Load parses a definition document into dialogs ready for the registry
// builder.
func Load(r io.Reader) ([]*domain.Dialog, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read dialog definition: %w", err)
	}

	var file File
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse dialog definition: %w", err)
	}
	if len(file.Dialogs) == 0 {
		return nil, fmt.Errorf("dialog definition declares no dialogs")
	}

	dialogs := make([]*domain.Dialog, 0, len(file.Dialogs))
	for _, def := range file.Dialogs {
		dialog, err := buildDialog(def)
		if err != nil {
			return nil, err
		}
		dialogs = append(dialogs, dialog)
	}
	return dialogs, nil
}

// LoadFile is Load over a file path.
func LoadFile(path string) ([]*domain.Dialog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open dialog definition: %w", err)
	}
	defer f.Close()
	return Load(f)
}

func buildDialog(def DialogDef) (*domain.Dialog, error) {
	dialog := domain.NewDialog(def.Name)
	if def.Namespace != "" {
		dialog.Namespace = def.Namespace
	}

	for _, sceneDef := range def.Scenes {
		scene, err := buildScene(def.Name, sceneDef)
		if err != nil {
			return nil, err
		}
		dialog.Add(scene)
	}

	for _, routerDef := range def.Routers {
		relations, err := buildRelations(def.Name, "router", routerDef.Relations)
		if err != nil {
			return nil, err
		}
		router := domain.NewRouter(relations...)
		router.Namespace = routerDef.Namespace
		dialog.AddRouter(router)
	}

	return dialog, nil
}

func buildScene(dialogName string, def SceneDef) (*domain.Scene, error) {
	opts := []domain.SceneOption{}

	if def.Namespace != "" {
		opts = append(opts, domain.InNamespace(def.Namespace))
	}
	if len(def.Messages) > 0 {
		opts = append(opts, domain.Say(def.Messages...))
	}
	if def.Transitional {
		opts = append(opts, domain.Transitional())
	}
	if def.CanStay != nil && !*def.CanStay {
		opts = append(opts, domain.Ephemeral())
	}
	for key, value := range def.Ext {
		opts = append(opts, domain.WithExt(key, value))
	}

	if len(def.Entry) > 0 {
		predicates, err := filters.FromSpec(def.Entry)
		if err != nil {
			return nil, fmt.Errorf("dialog %q scene %q entry: %w", dialogName, def.Name, err)
		}
		opts = append(opts, domain.Entry(predicates...))
	}

	relations, err := buildRelations(dialogName, def.Name, def.Relations)
	if err != nil {
		return nil, err
	}
	if len(relations) > 0 {
		opts = append(opts, domain.WithRelations(relations...))
	}

	return domain.NewScene(def.Name, opts...), nil
}

func buildRelations(dialogName, owner string, defs []RelationDef) ([]*domain.Relation, error) {
	relations := make([]*domain.Relation, 0, len(defs))
	for i, def := range defs {
		relation, err := buildRelation(def)
		if err != nil {
			return nil, fmt.Errorf("dialog %q %s relation %d: %w", dialogName, owner, i, err)
		}
		relations = append(relations, relation)
	}
	return relations, nil
}

func buildRelation(def RelationDef) (*domain.Relation, error) {
	opts := []domain.RelationOption{}

	if len(def.Events) > 0 {
		types := make([]domain.EventType, len(def.Events))
		for i, e := range def.Events {
			types[i] = domain.EventType(e)
		}
		opts = append(opts, domain.OnEvents(types...))
	}

	if len(def.Filters) > 0 {
		predicates, err := filters.FromSpec(def.Filters)
		if err != nil {
			return nil, err
		}
		opts = append(opts, domain.Guard(predicates...))
	}

	switch {
	case def.To != "" && def.ToScene != "":
		return nil, fmt.Errorf("relation declares both 'to' and 'to_scene'")
	case def.To != "":
		return domain.ToName(def.To, opts...), nil
	case def.ToScene != "":
		return domain.ToLazy(def.ToDialog, def.ToScene, opts...), nil
	default:
		return nil, fmt.Errorf("relation declares no target")
	}
}
