/*
Package ports defines the driven ports (interfaces) for the scenekit engine.

These interfaces decouple the decision core from external implementations,
allowing the engine to work with various history stores, message transports
and locking backends.

# Key Interfaces

  - SceneStore: persists the per-(chat, user) scene-name history.
  - Messenger: delivers outgoing messages produced by scene views.
  - DistributedLocker: coordinates same-session access across replicas.
*/
package ports
