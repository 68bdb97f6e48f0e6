package memory_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scenekit/scenekit/pkg/adapters/memory"
	"github.com/scenekit/scenekit/pkg/domain"
	"github.com/scenekit/scenekit/pkg/ports/tests"
)

func TestStore_Contract(t *testing.T) {
	tests.RunSceneStoreContract(t, memory.NewStore())
}

func TestStore_HistoryIsACopy(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()

	_, err := store.SetCurrentScene(ctx, "c", "u", domain.NewScene("q1", domain.InNamespace("Quiz")))
	require.NoError(t, err)

	history, err := store.History(ctx, "c", "u")
	require.NoError(t, err)
	history[0] = "mutated"

	again, err := store.History(ctx, "c", "u")
	require.NoError(t, err)
	assert.Equal(t, []string{"Quiz.q1"}, again)
}

func TestStore_UpdateHistoryDetachesInput(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()

	input := []string{"Quiz.q1"}
	_, err := store.UpdateHistory(ctx, "c", "u", input)
	require.NoError(t, err)
	input[0] = "mutated"

	history, err := store.History(ctx, "c", "u")
	require.NoError(t, err)
	assert.Equal(t, []string{"Quiz.q1"}, history)
}
