/*
Package scenekit is a dialog engine for chat bots: authors declare
conversational "scenes" (states) and "relations" (guarded transitions), and
the engine decides, for every incoming event, which scene the session moves to
next, runs lifecycle hooks in order and persists the resulting history.

# Concept

A dialog is a graph of scenes. Each scene owns an ordered list of relations;
each relation is guarded by a chain of predicates evaluated in declaration
order, where a predicate may also inject values into the shared event context.
Routers contribute global fallback relations consulted when no scene-owned
relation matches. Transitional scenes are absorbed in a loop: entering one
immediately triggers another resolution pass for the same event.

The engine is platform-agnostic by construction (Hexagonal Architecture): how
histories are stored, how messages reach the user and how predicates are built
from keyword specs are all collaborators behind the interfaces in pkg/ports
and pkg/filters.

# Usage

	package main

	import (
		"context"
		"log"

		"github.com/scenekit/scenekit"
		"github.com/scenekit/scenekit/pkg/adapters/memory"
		"github.com/scenekit/scenekit/pkg/domain"
		"github.com/scenekit/scenekit/pkg/dsl"
		"github.com/scenekit/scenekit/pkg/filters"
	)

	func main() {
		quiz := dsl.New("Quiz").
			Scene("q1",
				domain.Say("Question 1: 2 + 2 = ?"),
				domain.WithRelations(
					domain.ToName("q2", domain.Guard(filters.Text("4", "four"))),
				),
			).
			Scene("q2", domain.Say("Question 2: 3 + 3 = ?")).
			Router(
				domain.ToFunc(scenekit.CurrentOr("Quiz.q1"),
					domain.OnEvents(domain.EventCommand),
					domain.Guard(filters.Command("start")),
				),
			).
			Build()

		engine, err := scenekit.New([]*domain.Dialog{quiz}, memory.NewStore())
		if err != nil {
			log.Fatal(err)
		}

		result, err := engine.HandleEvent(context.Background(), domain.Event{
			Type: domain.EventCommand, ChatID: "c1", UserID: "u1", Text: "/start",
		})
		if err != nil {
			log.Fatal(err)
		}
		log.Println("scenes entered:", result.Chain)
	}
*/
package scenekit
