package tests

import (
	"context"
	"testing"

	"github.com/scenekit/scenekit/pkg/domain"
	"github.com/scenekit/scenekit/pkg/ports"
)

// RunSceneStoreContract verifies that a store implementation honors the
// SceneStore semantics the engine depends on. Adapter test suites call this
// against a fresh, empty store.
func RunSceneStoreContract(t *testing.T, store ports.SceneStore) {
	t.Helper()

	ctx := context.Background()

	q1 := domain.NewScene("q1", domain.InNamespace("quiz"))
	q2 := domain.NewScene("q2", domain.InNamespace("quiz"))

	t.Run("EmptyHistory", func(t *testing.T) {
		history, err := store.History(ctx, "chat-contract", "user-empty")
		if err != nil {
			t.Fatalf("unexpected error for unknown session: %v", err)
		}
		if len(history) != 0 {
			t.Errorf("expected empty history, got %v", history)
		}
	})

	t.Run("SetCurrentSceneAppends", func(t *testing.T) {
		history, err := store.SetCurrentScene(ctx, "chat-contract", "user-append", q1)
		if err != nil {
			t.Fatalf("SetCurrentScene failed: %v", err)
		}
		if len(history) != 1 || history[0] != "quiz.q1" {
			t.Errorf("expected [quiz.q1], got %v", history)
		}

		history, err = store.SetCurrentScene(ctx, "chat-contract", "user-append", q2)
		if err != nil {
			t.Fatalf("SetCurrentScene failed: %v", err)
		}
		if len(history) != 2 || history[1] != "quiz.q2" {
			t.Errorf("expected [quiz.q1 quiz.q2], got %v", history)
		}
	})

	t.Run("AppendIfDifferent", func(t *testing.T) {
		if _, err := store.SetCurrentScene(ctx, "chat-contract", "user-idem", q1); err != nil {
			t.Fatalf("SetCurrentScene failed: %v", err)
		}
		history, err := store.SetCurrentScene(ctx, "chat-contract", "user-idem", q1)
		if err != nil {
			t.Fatalf("SetCurrentScene failed: %v", err)
		}
		if len(history) != 1 {
			t.Errorf("repeated SetCurrentScene must not grow history, got %v", history)
		}
	})

	t.Run("UpdateHistoryReplaces", func(t *testing.T) {
		if _, err := store.SetCurrentScene(ctx, "chat-contract", "user-update", q1); err != nil {
			t.Fatalf("SetCurrentScene failed: %v", err)
		}
		if _, err := store.SetCurrentScene(ctx, "chat-contract", "user-update", q2); err != nil {
			t.Fatalf("SetCurrentScene failed: %v", err)
		}

		// Truncate to simulate "go back".
		history, err := store.UpdateHistory(ctx, "chat-contract", "user-update", []string{"quiz.q1"})
		if err != nil {
			t.Fatalf("UpdateHistory failed: %v", err)
		}
		if len(history) != 1 || history[0] != "quiz.q1" {
			t.Errorf("expected [quiz.q1] after truncation, got %v", history)
		}

		stored, err := store.History(ctx, "chat-contract", "user-update")
		if err != nil {
			t.Fatalf("History failed: %v", err)
		}
		if len(stored) != 1 || stored[0] != "quiz.q1" {
			t.Errorf("truncation not persisted, got %v", stored)
		}
	})

	t.Run("SessionIsolation", func(t *testing.T) {
		if _, err := store.SetCurrentScene(ctx, "chat-a", "user-iso", q1); err != nil {
			t.Fatalf("SetCurrentScene failed: %v", err)
		}
		history, err := store.History(ctx, "chat-b", "user-iso")
		if err != nil {
			t.Fatalf("History failed: %v", err)
		}
		if len(history) != 0 {
			t.Errorf("sessions must not share history, got %v", history)
		}
	})
}
