package filters

import (
	"fmt"

	"github.com/mitchellh/mapstructure"
	"github.com/scenekit/scenekit/pkg/domain"
)

// Spec is the keyword form of a filter chain, as it appears in YAML dialog
// definitions. Scalar values decode into single-element slices.
type Spec struct {
	Text    []string       `mapstructure:"text"`
	Command []string       `mapstructure:"command"`
	Regexp  string         `mapstructure:"regexp"`
	HasKey  []string       `mapstructure:"has_key"`
	Inject  map[string]any `mapstructure:"inject"`
	Always  bool           `mapstructure:"always"`
}

// FromSpec decodes a keyword filter spec into predicates, in a fixed keyword
// order (command, text, regexp, has_key, inject). Unknown keywords are an
// error at build time, not silently ignored.
func FromSpec(raw map[string]any) ([]domain.Predicate, error) {
	var spec Spec
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &spec,
		WeaklyTypedInput: true,
		ErrorUnused:      true,
	})
	if err != nil {
		return nil, err
	}
	if err := decoder.Decode(raw); err != nil {
		return nil, fmt.Errorf("invalid filter spec: %w", err)
	}

	var predicates []domain.Predicate

	if len(spec.Command) > 0 {
		predicates = append(predicates, Command(spec.Command...))
	}
	if len(spec.Text) > 0 {
		predicates = append(predicates, Text(spec.Text...))
	}
	if spec.Regexp != "" {
		p, err := Regexp(spec.Regexp)
		if err != nil {
			return nil, err
		}
		predicates = append(predicates, p)
	}
	for _, key := range spec.HasKey {
		predicates = append(predicates, HasKey(key))
	}
	if len(spec.Inject) > 0 {
		predicates = append(predicates, Inject(spec.Inject))
	}
	if spec.Always {
		predicates = append(predicates, Always())
	}

	return predicates, nil
}
