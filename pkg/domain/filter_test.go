package domain_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scenekit/scenekit/pkg/domain"
)

func reject() domain.Predicate {
	return func(context.Context, *domain.Context) (domain.Verdict, error) {
		return domain.Reject(), nil
	}
}

func TestFilterChain_NilChainAccepts(t *testing.T) {
	var chain *domain.FilterChain

	ok, err := chain.Evaluate(context.Background(), domain.NewContext(domain.Event{}))
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 0, chain.Len())
}

func TestFilterChain_InjectionVisibleToLaterPredicates(t *testing.T) {
	inject := func(context.Context, *domain.Context) (domain.Verdict, error) {
		return domain.AcceptWith(map[string]any{"user": "alice"}), nil
	}
	requireUser := func(_ context.Context, ev *domain.Context) (domain.Verdict, error) {
		if v, ok := ev.Get("user"); ok && v == "alice" {
			return domain.Accept(), nil
		}
		return domain.Reject(), nil
	}

	ev := domain.NewContext(domain.Event{})
	chain := domain.NewFilterChain(inject, requireUser)

	ok, err := chain.Evaluate(context.Background(), ev)
	require.NoError(t, err)
	assert.True(t, ok)

	v, ok := ev.String("user")
	require.True(t, ok)
	assert.Equal(t, "alice", v)
}

func TestFilterChain_RejectShortCircuits(t *testing.T) {
	var called bool
	probe := func(context.Context, *domain.Context) (domain.Verdict, error) {
		called = true
		return domain.Accept(), nil
	}

	chain := domain.NewFilterChain(reject(), probe)

	ok, err := chain.Evaluate(context.Background(), domain.NewContext(domain.Event{}))
	require.NoError(t, err)
	assert.False(t, ok)
	assert.False(t, called, "predicates after a rejection must not run")
}

func TestFilterChain_RejectionStillInjects(t *testing.T) {
	// A predicate may report why it rejected; the injected values stay in
	// the context even though the chain fails.
	rejectWith := func(context.Context, *domain.Context) (domain.Verdict, error) {
		return domain.Verdict{Pass: false, Inject: map[string]any{"reason": "quota"}}, nil
	}

	ev := domain.NewContext(domain.Event{})
	ok, err := domain.NewFilterChain(rejectWith).Evaluate(context.Background(), ev)
	require.NoError(t, err)
	assert.False(t, ok)

	reason, _ := ev.String("reason")
	assert.Equal(t, "quota", reason)
}

func TestFilterChain_ErrorStopsEvaluation(t *testing.T) {
	boom := errors.New("predicate exploded")
	failing := func(context.Context, *domain.Context) (domain.Verdict, error) {
		return domain.Verdict{}, boom
	}

	var called bool
	probe := func(context.Context, *domain.Context) (domain.Verdict, error) {
		called = true
		return domain.Accept(), nil
	}

	chain := domain.NewFilterChain(failing, probe)
	_, err := chain.Evaluate(context.Background(), domain.NewContext(domain.Event{}))
	assert.ErrorIs(t, err, boom)
	assert.False(t, called)
}

func TestFilterChain_AppendPreservesOrder(t *testing.T) {
	var order []int
	mark := func(n int) domain.Predicate {
		return func(context.Context, *domain.Context) (domain.Verdict, error) {
			order = append(order, n)
			return domain.Accept(), nil
		}
	}

	chain := domain.NewFilterChain(mark(1))
	chain.Append(mark(2), mark(3))

	_, err := chain.Evaluate(context.Background(), domain.NewContext(domain.Event{}))
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3}, order)
}
