package ports

import (
	"context"

	"github.com/scenekit/scenekit/pkg/domain"
)

// SceneStore persists the ordered scene-name history of every session. The
// invariant the engine relies on: the last element is the session's current
// scene, the second-to-last its previous scene. The engine itself only ever
// appends; UpdateHistory exists so hooks can truncate ("go back").
type SceneStore interface {
	// History returns the session's scene full names, oldest first. An
	// unknown session yields an empty history, not an error.
	History(ctx context.Context, chatID, userID string) ([]string, error)

	// UpdateHistory replaces the session's history wholesale and returns the
	// stored result.
	UpdateHistory(ctx context.Context, chatID, userID string, history []string) ([]string, error)

	// SetCurrentScene appends the scene's full name unless it already equals
	// the last entry, and returns the resulting history.
	SetCurrentScene(ctx context.Context, chatID, userID string, scene *domain.Scene) ([]string, error)
}

// Messenger delivers a scene's outgoing messages to the end user. The engine
// does not interpret message content; implementations own formatting,
// attachments and transport.
type Messenger interface {
	Send(ctx context.Context, chatID string, msg domain.Message) error
}
