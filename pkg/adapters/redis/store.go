// Package redis persists scene histories in Redis and provides a distributed
// session locker for multi-replica deployments.
package redis

import (
	"context"
	"fmt"
	"time"

	backend "github.com/redis/go-redis/v9"

	"github.com/scenekit/scenekit/pkg/domain"
)

// appendIfDifferent pushes the scene name unless it already equals the list
// tail, refreshes the TTL, and returns the whole history in one atomic step.
const appendIfDifferent = `
if redis.call("LINDEX", KEYS[1], -1) ~= ARGV[1] then
	redis.call("RPUSH", KEYS[1], ARGV[1])
end
if tonumber(ARGV[2]) > 0 then
	redis.call("PEXPIRE", KEYS[1], ARGV[2])
end
return redis.call("LRANGE", KEYS[1], 0, -1)
`

// Store implements ports.SceneStore using a Redis list per session.
type Store struct {
	client *backend.Client
	prefix string
	ttl    time.Duration
}

// Option configures the store.
type Option func(*Store)

// WithTTL sets the expiration for session histories.
func WithTTL(ttl time.Duration) Option {
	return func(s *Store) {
		s.ttl = ttl
	}
}

// WithPrefix sets the key prefix for session histories.
func WithPrefix(prefix string) Option {
	return func(s *Store) {
		s.prefix = prefix
	}
}

// New creates a Redis store with its own client.
func New(address, password string, db int, opts ...Option) *Store {
	client := backend.NewClient(&backend.Options{
		Addr:     address,
		Password: password,
		DB:       db,
	})
	return NewFromClient(client, opts...)
}

// NewFromClient creates a Redis store from an existing client.
func NewFromClient(client *backend.Client, opts ...Option) *Store {
	store := &Store{
		client: client,
		prefix: "scenekit:history:",
		ttl:    0, // No expiration by default
	}
	for _, opt := range opts {
		opt(store)
	}
	return store
}

func (s *Store) key(chatID, userID string) string {
	return s.prefix + chatID + ":" + userID
}

// History returns the session's scene history. A missing key is an empty
// history.
func (s *Store) History(ctx context.Context, chatID, userID string) ([]string, error) {
	history, err := s.client.LRange(ctx, s.key(chatID, userID), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read history from redis: %w", err)
	}
	return history, nil
}

// UpdateHistory replaces the session's history wholesale.
func (s *Store) UpdateHistory(ctx context.Context, chatID, userID string, history []string) ([]string, error) {
	k := s.key(chatID, userID)

	pipe := s.client.TxPipeline()
	pipe.Del(ctx, k)
	if len(history) > 0 {
		values := make([]any, len(history))
		for i, name := range history {
			values[i] = name
		}
		pipe.RPush(ctx, k, values...)
		if s.ttl > 0 {
			pipe.Expire(ctx, k, s.ttl)
		}
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return nil, fmt.Errorf("failed to update history in redis: %w", err)
	}

	out := make([]string, len(history))
	copy(out, history)
	return out, nil
}

// SetCurrentScene appends the scene's full name unless it already equals the
// last entry. The check-and-append runs as a Lua script so racing writers
// cannot duplicate the tail.
func (s *Store) SetCurrentScene(ctx context.Context, chatID, userID string, scene *domain.Scene) ([]string, error) {
	raw, err := s.client.Eval(ctx, appendIfDifferent,
		[]string{s.key(chatID, userID)},
		scene.FullName(), s.ttl.Milliseconds(),
	).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to append scene in redis: %w", err)
	}

	entries, ok := raw.([]any)
	if !ok {
		return nil, fmt.Errorf("unexpected redis reply %T", raw)
	}

	history := make([]string, 0, len(entries))
	for _, entry := range entries {
		name, ok := entry.(string)
		if !ok {
			return nil, fmt.Errorf("unexpected redis list entry %T", entry)
		}
		history = append(history, name)
	}
	return history, nil
}

// Client exposes the underlying redis client, so a Locker can share the
// connection pool.
func (s *Store) Client() *backend.Client {
	return s.client
}

// Close closes the redis client.
func (s *Store) Close() error {
	return s.client.Close()
}
