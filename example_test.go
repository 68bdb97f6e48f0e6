package scenekit_test

import (
	"context"
	"fmt"

	"github.com/scenekit/scenekit"
	"github.com/scenekit/scenekit/pkg/adapters/memory"
	"github.com/scenekit/scenekit/pkg/domain"
	"github.com/scenekit/scenekit/pkg/dsl"
	"github.com/scenekit/scenekit/pkg/filters"
)

type printMessenger struct{}

func (printMessenger) Send(_ context.Context, _ string, msg domain.Message) error {
	fmt.Println("bot:", msg.Text)
	return nil
}

func ExampleNew() {
	greeter := dsl.New("Greeter").
		Scene("hello", domain.Say("Hello! Ask me anything.")).
		Router(
			domain.ToName("hello",
				domain.OnEvents(domain.EventCommand),
				domain.Guard(filters.Command("start")),
			),
		).
		Build()

	engine, err := scenekit.New([]*domain.Dialog{greeter}, memory.NewStore(),
		scenekit.WithMessenger(printMessenger{}),
	)
	if err != nil {
		fmt.Println("init failed:", err)
		return
	}

	result, err := engine.HandleEvent(context.Background(), domain.Event{
		Type:   domain.EventCommand,
		ChatID: "chat-1",
		UserID: "user-1",
		Text:   "/start",
	})
	if err != nil {
		fmt.Println("event failed:", err)
		return
	}

	fmt.Println("handled:", result.Handled)
	fmt.Println("chain:", result.Chain)
	// Output:
	// bot: Hello! Ask me anything.
	// handled: true
	// chain: [Greeter.hello]
}
