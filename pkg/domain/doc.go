/*
Package domain contains the core domain models for the scenekit dialog engine.

It defines the fundamental entities of the scene graph: Scenes, Relations,
Routers, Dialogs, and the filter chains that guard transitions between them.
This package is kept pure and free of external dependencies like I/O or
persistence, following Hexagonal Architecture principles.

# Key Entities

  - Scene: a named conversational state with lifecycle hooks, guards and a view action.
  - Relation: a guarded, directed edge from a scene (or a router) to a target scene.
  - Router: a namespace-scoped bag of fallback relations not owned by a single scene.
  - FilterChain: an ordered predicate sequence; predicates may inject values into the context.
  - Context: the mutable per-event bag shared by reference with predicates, hooks and views.
*/
package domain
