// Package memory provides an in-memory SceneStore, suitable for tests and
// single-process bots.
package memory

import (
	"context"
	"sync"

	"github.com/scenekit/scenekit/pkg/domain"
)

// Store implements ports.SceneStore in memory.
// Safe for concurrent use.
type Store struct {
	mu       sync.RWMutex
	sessions map[string][]string
}

// NewStore creates a new in-memory store.
func NewStore() *Store {
	return &Store{
		sessions: make(map[string][]string),
	}
}

func key(chatID, userID string) string {
	return chatID + "/" + userID
}

// History returns a copy of the session's scene history.
func (s *Store) History(ctx context.Context, chatID, userID string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	history := s.sessions[key(chatID, userID)]
	out := make([]string, len(history))
	copy(out, history)
	return out, nil
}

// UpdateHistory replaces the session's history wholesale.
func (s *Store) UpdateHistory(ctx context.Context, chatID, userID string, history []string) ([]string, error) {
	stored := make([]string, len(history))
	copy(stored, history)

	s.mu.Lock()
	s.sessions[key(chatID, userID)] = stored
	s.mu.Unlock()

	out := make([]string, len(stored))
	copy(out, stored)
	return out, nil
}

// SetCurrentScene appends the scene's full name unless it already equals the
// last entry.
func (s *Store) SetCurrentScene(ctx context.Context, chatID, userID string, scene *domain.Scene) ([]string, error) {
	fullName := scene.FullName()

	s.mu.Lock()
	defer s.mu.Unlock()

	k := key(chatID, userID)
	history := s.sessions[k]
	if len(history) == 0 || history[len(history)-1] != fullName {
		history = append(history, fullName)
		s.sessions[k] = history
	}

	out := make([]string, len(history))
	copy(out, history)
	return out, nil
}
