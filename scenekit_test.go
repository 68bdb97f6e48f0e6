package scenekit_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scenekit/scenekit"
	"github.com/scenekit/scenekit/pkg/adapters/memory"
	"github.com/scenekit/scenekit/pkg/domain"
	"github.com/scenekit/scenekit/pkg/dsl"
	"github.com/scenekit/scenekit/pkg/filters"
	"github.com/scenekit/scenekit/pkg/observability"
)

func quizDialog() *domain.Dialog {
	return dsl.New("Quiz").
		Scene("q1",
			domain.Say("Question one: a or b?"),
			domain.WithRelations(
				domain.ToName("q2", domain.Guard(filters.Text("a", "b"))),
			),
		).
		Scene("q2",
			domain.Say("Question two: a or b?"),
			domain.WithRelations(
				domain.ToName("finish", domain.Guard(filters.Text("a", "b"))),
			),
		).
		Scene("finish", domain.Say("All done.")).
		Router(
			domain.ToFunc(scenekit.CurrentOr("Quiz.q1"),
				domain.OnEvents(domain.EventCommand),
				domain.Guard(filters.Command("start")),
			),
			domain.ToFunc(scenekit.Current(),
				domain.OnEvents(domain.EventCommand),
				domain.Guard(filters.Command("repeat")),
			),
			domain.ToFunc(scenekit.Previous(),
				domain.OnEvents(domain.EventCommand),
				domain.Guard(filters.Command("back")),
			),
		).
		Build()
}

func command(text string) domain.Event {
	return domain.Event{Type: domain.EventCommand, ChatID: "chat", UserID: "user", Text: text}
}

func message(text string) domain.Event {
	return domain.Event{Type: domain.EventMessage, ChatID: "chat", UserID: "user", Text: text}
}

func TestNew_RejectsBrokenDialogs(t *testing.T) {
	broken := dsl.New("Quiz").
		Scene("q1", domain.WithRelations(domain.ToName("nowhere"))).
		Build()

	_, err := scenekit.New([]*domain.Dialog{broken}, memory.NewStore())
	assert.ErrorIs(t, err, domain.ErrSceneNotFound)
}

func TestEngine_QuizFlow(t *testing.T) {
	store := memory.NewStore()
	engine, err := scenekit.New([]*domain.Dialog{quizDialog()}, store,
		scenekit.WithMetrics(observability.New()),
	)
	require.NoError(t, err)
	ctx := context.Background()

	// A fresh session: /start falls back to the first question.
	result, err := engine.HandleEvent(ctx, command("/start"))
	require.NoError(t, err)
	assert.True(t, result.Handled)
	assert.Equal(t, []string{"Quiz.q1"}, result.Chain)

	// Answering moves forward.
	result, err = engine.HandleEvent(ctx, message("a"))
	require.NoError(t, err)
	assert.Equal(t, []string{"Quiz.q2"}, result.Chain)

	// /repeat re-enters the current question without growing history.
	result, err = engine.HandleEvent(ctx, command("/repeat"))
	require.NoError(t, err)
	assert.Equal(t, []string{"Quiz.q2"}, result.Chain)

	history, err := store.History(ctx, "chat", "user")
	require.NoError(t, err)
	assert.Equal(t, []string{"Quiz.q1", "Quiz.q2"}, history)

	// /back returns to the previous question.
	result, err = engine.HandleEvent(ctx, command("/back"))
	require.NoError(t, err)
	assert.Equal(t, []string{"Quiz.q1"}, result.Chain)

	current, err := engine.CurrentScene(ctx, "chat", "user")
	require.NoError(t, err)
	require.NotNil(t, current)
	assert.Equal(t, "Quiz.q1", current.FullName())

	// /start mid-session resumes where the session is instead of resetting.
	result, err = engine.HandleEvent(ctx, command("/start"))
	require.NoError(t, err)
	assert.Equal(t, []string{"Quiz.q1"}, result.Chain)
}

func TestEngine_UnownedEvent(t *testing.T) {
	engine, err := scenekit.New([]*domain.Dialog{quizDialog()}, memory.NewStore())
	require.NoError(t, err)

	result, err := engine.HandleEvent(context.Background(), message("unrelated chatter"))
	require.NoError(t, err)
	assert.False(t, result.Handled)
	assert.Empty(t, result.Chain)
}

func TestEngine_BackOnFreshSessionIsUnhandled(t *testing.T) {
	engine, err := scenekit.New([]*domain.Dialog{quizDialog()}, memory.NewStore())
	require.NoError(t, err)

	// No history: the dynamic target declines, the edge is discarded, and
	// nothing else owns the command.
	result, err := engine.HandleEvent(context.Background(), command("/back"))
	require.NoError(t, err)
	assert.False(t, result.Handled)
}

func TestEngine_SessionsAreIsolated(t *testing.T) {
	engine, err := scenekit.New([]*domain.Dialog{quizDialog()}, memory.NewStore())
	require.NoError(t, err)
	ctx := context.Background()

	_, err = engine.HandleEvent(ctx, command("/start"))
	require.NoError(t, err)

	other := domain.Event{Type: domain.EventCommand, ChatID: "other", UserID: "user", Text: "/back"}
	result, err := engine.HandleEvent(ctx, other)
	require.NoError(t, err)
	assert.False(t, result.Handled, "another chat's session must start fresh")
}

func TestEngine_RegistryExposed(t *testing.T) {
	engine, err := scenekit.New([]*domain.Dialog{quizDialog()}, memory.NewStore())
	require.NoError(t, err)

	names := engine.Registry().SceneNames()
	assert.Equal(t, []string{"Quiz.finish", "Quiz.q1", "Quiz.q2"}, names)
}
