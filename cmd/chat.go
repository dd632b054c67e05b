package cmd

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/arlerug/wesafe-assistant/internal/app"
	"github.com/arlerug/wesafe-assistant/internal/config"
	"github.com/arlerug/wesafe-assistant/internal/log"
	"github.com/arlerug/wesafe-assistant/internal/turn"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Conversazione interattiva con l'assistente",
	RunE:  runChat,
}

func init() {
	rootCmd.AddCommand(chatCmd)
}

func runChat(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()

	a, err := setupApp(ctx)
	if err != nil {
		return err
	}

	conv := turn.NewConversation()

	// The opening control message produces the fixed greeting.
	greeting, err := a.Pipeline.Respond(ctx, conv, turn.BootstrapMessage)
	if err != nil {
		return fmt.Errorf("opening conversation: %w", err)
	}
	fmt.Println(greeting)
	fmt.Println()

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")

		if !scanner.Scan() {
			// EOF (Ctrl+D)
			fmt.Println("\nArrivederci!")
			break
		}

		input := strings.TrimSpace(scanner.Text())
		if input == "" {
			continue
		}
		if input == "/exit" || input == "/quit" {
			fmt.Println("Arrivederci!")
			break
		}

		answer, err := a.Pipeline.Respond(ctx, conv, input)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Errore: %v\n", err)
			continue
		}

		fmt.Println(answer)
		fmt.Println()
	}

	return scanner.Err()
}

// setupApp loads the configuration and assembles the application.
func setupApp(ctx context.Context) (*app.App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("loading configuration: %w", err)
	}

	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	logger := log.New(log.Config{Level: level})

	a, err := app.Setup(ctx, cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("initializing application: %w", err)
	}
	return a, nil
}
