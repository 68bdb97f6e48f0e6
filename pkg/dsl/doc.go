/*
Package dsl provides a fluent builder for declaring dialogs programmatically.

It is a thin, type-safe layer over pkg/domain, useful when a dialog needs
hooks, dynamic targets or custom views that the YAML form cannot express.

Example usage:

	quiz := dsl.New("Quiz").
		Scene("q1",
			domain.Say("Question 1: 2 + 2 = ?"),
			domain.WithRelations(
				domain.ToName("q2", domain.Guard(filters.Text("4", "four"))),
			),
		).
		Router(
			domain.ToName("q1", domain.Guard(filters.Command("start"))),
		).
		Build()

	reg, err := registry.NewBuilder().Add(quiz).Resolve()
*/
package dsl
