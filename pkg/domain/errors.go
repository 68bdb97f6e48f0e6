package domain

import "errors"

// ErrSceneNotFound is returned when a full name cannot be resolved against
// the registry.
var ErrSceneNotFound = errors.New("scene not found")

// ErrTransitionLoop is returned when a chain of transitional scenes exceeds
// the engine's configured bound within a single event.
var ErrTransitionLoop = errors.New("transitional scene chain exceeded limit")
