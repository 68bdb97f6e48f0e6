package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/scenekit/scenekit"
	"github.com/scenekit/scenekit/internal/presentation/tui"
	"github.com/scenekit/scenekit/pkg/adapters/dialogyaml"
	"github.com/scenekit/scenekit/pkg/adapters/memory"
	"github.com/scenekit/scenekit/pkg/domain"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a dialog interactively on the terminal",
	Long:  `Loads the dialogs from the YAML file and drives them from stdin, rendering scene messages as markdown. Lines starting with "/" are dispatched as commands.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		file, _ := cmd.Flags().GetString("file")
		if !cmd.Flags().Changed("file") && len(args) > 0 {
			file = args[0]
		}
		plain, _ := cmd.Flags().GetBool("plain")
		return runInteractive(file, plain)
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().Bool("plain", false, "Print messages without markdown rendering")
}

// consoleMessenger prints scene messages to stdout, optionally rendered as
// markdown.
type consoleMessenger struct {
	render func(string) (string, error)
}

func (m *consoleMessenger) Send(_ context.Context, _ string, msg domain.Message) error {
	text := msg.Text
	if m.render != nil {
		if out, err := m.render(msg.Text); err == nil {
			text = out
		}
	}
	fmt.Print(text)
	if !strings.HasSuffix(text, "\n") {
		fmt.Println()
	}
	return nil
}

func runInteractive(file string, plain bool) error {
	dialogs, err := dialogyaml.LoadFile(file)
	if err != nil {
		return fmt.Errorf("failed to load %s: %w", file, err)
	}

	messenger := &consoleMessenger{}
	if !plain {
		messenger.render = tui.NewRenderer()
	}

	engine, err := scenekit.New(dialogs, memory.NewStore(),
		scenekit.WithMessenger(messenger),
		scenekit.WithLogger(newLogger()),
	)
	if err != nil {
		return err
	}

	tui.PrintBanner()
	fmt.Println("Type a message, /command, or Ctrl-D to quit.")
	fmt.Println()

	ctx := context.Background()
	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		event := domain.Event{
			Type:   domain.EventMessage,
			ChatID: "local",
			UserID: "local",
			Text:   line,
		}
		if strings.HasPrefix(line, "/") {
			event.Type = domain.EventCommand
		}

		result, err := engine.HandleEvent(ctx, event)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			continue
		}
		if !result.Handled {
			fmt.Println("(no scene claimed that, try /start)")
		}
	}
	fmt.Println()
	return scanner.Err()
}
