package domain

import "context"

// Verdict is the outcome of a single predicate: either an accept/reject
// decision, or an accept that also injects values into the event context.
type Verdict struct {
	Pass   bool
	Inject map[string]any
}

// Accept passes the predicate without touching the context.
func Accept() Verdict {
	return Verdict{Pass: true}
}

// Reject fails the predicate, short-circuiting the chain.
func Reject() Verdict {
	return Verdict{}
}

// AcceptWith passes the predicate and merges kv into the event context,
// making it visible to later predicates in the same chain and to every
// downstream hook and view.
func AcceptWith(kv map[string]any) Verdict {
	return Verdict{Pass: true, Inject: kv}
}

// Predicate guards a relation or a scene entry. How predicates are built from
// author-declared filter specs is a platform concern; the engine only ever
// calls them.
type Predicate func(ctx context.Context, ev *Context) (Verdict, error)

// FilterChain is an ordered predicate sequence. Order is load-bearing: values
// injected by an earlier predicate are visible to later ones.
type FilterChain struct {
	predicates []Predicate
}

// NewFilterChain builds a chain from predicates in declaration order.
func NewFilterChain(predicates ...Predicate) *FilterChain {
	return &FilterChain{predicates: predicates}
}

// Append adds predicates to the end of the chain.
func (f *FilterChain) Append(predicates ...Predicate) {
	f.predicates = append(f.predicates, predicates...)
}

// Len returns the number of predicates in the chain.
func (f *FilterChain) Len() int {
	if f == nil {
		return 0
	}
	return len(f.predicates)
}

// Evaluate runs the chain against the event context. Injected values are
// merged into the context as soon as their predicate returns; a rejection
// short-circuits the rest of the chain. A nil or empty chain accepts.
func (f *FilterChain) Evaluate(ctx context.Context, ev *Context) (bool, error) {
	if f == nil {
		return true, nil
	}

	for _, predicate := range f.predicates {
		verdict, err := predicate(ctx, ev)
		if err != nil {
			return false, err
		}

		if len(verdict.Inject) > 0 {
			ev.Merge(verdict.Inject)
		}

		if !verdict.Pass {
			return false, nil
		}
	}

	return true, nil
}
