// Package filters builds the predicates that guard relations and scene
// entries. The engine only ever calls the resulting predicates; everything
// about how they are constructed from author-declared keyword specs lives
// here.
package filters

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/scenekit/scenekit/pkg/domain"
)

// Always accepts every event.
func Always() domain.Predicate {
	return func(context.Context, *domain.Context) (domain.Verdict, error) {
		return domain.Accept(), nil
	}
}

// Text accepts when the event text equals one of the variants,
// case-insensitively.
func Text(variants ...string) domain.Predicate {
	return func(_ context.Context, ev *domain.Context) (domain.Verdict, error) {
		for _, v := range variants {
			if strings.EqualFold(strings.TrimSpace(ev.Event.Text), v) {
				return domain.Accept(), nil
			}
		}
		return domain.Reject(), nil
	}
}

// Regexp accepts when the event text matches the pattern.
func Regexp(pattern string) (domain.Predicate, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("invalid filter pattern %q: %w", pattern, err)
	}
	return func(_ context.Context, ev *domain.Context) (domain.Verdict, error) {
		if re.MatchString(ev.Event.Text) {
			return domain.Accept(), nil
		}
		return domain.Reject(), nil
	}, nil
}

// MustRegexp is Regexp for patterns known valid at declaration time.
func MustRegexp(pattern string) domain.Predicate {
	p, err := Regexp(pattern)
	if err != nil {
		panic(err)
	}
	return p
}

// Command accepts command events whose name (without the leading slash)
// equals one of names. A message event whose text starts with "/" is treated
// as a command too, so platforms without a distinct command update still
// work.
func Command(names ...string) domain.Predicate {
	return func(_ context.Context, ev *domain.Context) (domain.Verdict, error) {
		text := strings.TrimSpace(ev.Event.Text)
		if ev.Event.Type != domain.EventCommand && !strings.HasPrefix(text, "/") {
			return domain.Reject(), nil
		}

		name := strings.TrimPrefix(text, "/")
		if i := strings.IndexAny(name, " @"); i >= 0 {
			name = name[:i]
		}

		for _, want := range names {
			if strings.EqualFold(name, strings.TrimPrefix(want, "/")) {
				return domain.Accept(), nil
			}
		}
		return domain.Reject(), nil
	}
}

// HasKey accepts when the context bag contains key.
func HasKey(key string) domain.Predicate {
	return func(_ context.Context, ev *domain.Context) (domain.Verdict, error) {
		if _, ok := ev.Get(key); ok {
			return domain.Accept(), nil
		}
		return domain.Reject(), nil
	}
}

// KeyEquals accepts when the context bag holds want under key.
func KeyEquals(key string, want any) domain.Predicate {
	return func(_ context.Context, ev *domain.Context) (domain.Verdict, error) {
		if got, ok := ev.Get(key); ok && got == want {
			return domain.Accept(), nil
		}
		return domain.Reject(), nil
	}
}

// Inject always accepts and contributes kv to the context, making it visible
// to later predicates in the same chain and to downstream hooks and views.
func Inject(kv map[string]any) domain.Predicate {
	return func(context.Context, *domain.Context) (domain.Verdict, error) {
		return domain.AcceptWith(kv), nil
	}
}

// Not inverts a predicate. Values injected by the inner predicate are
// discarded on inversion.
func Not(p domain.Predicate) domain.Predicate {
	return func(ctx context.Context, ev *domain.Context) (domain.Verdict, error) {
		verdict, err := p(ctx, ev)
		if err != nil {
			return domain.Reject(), err
		}
		if verdict.Pass {
			return domain.Reject(), nil
		}
		return domain.Accept(), nil
	}
}

// HasCurrentScene guards on the reserved current-scene slot: it accepts when
// the session is currently inside any scene.
func HasCurrentScene() domain.Predicate {
	return func(_ context.Context, ev *domain.Context) (domain.Verdict, error) {
		if ev.CurrentScene() != nil {
			return domain.Accept(), nil
		}
		return domain.Reject(), nil
	}
}
