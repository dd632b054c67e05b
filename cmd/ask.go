package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/arlerug/wesafe-assistant/internal/turn"
)

var askCmd = &cobra.Command{
	Use:   "ask [domanda]",
	Short: "Fai una singola domanda all'assistente",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runAsk,
}

func init() {
	rootCmd.AddCommand(askCmd)
}

func runAsk(_ *cobra.Command, args []string) error {
	ctx := context.Background()

	a, err := setupApp(ctx)
	if err != nil {
		return err
	}

	question := strings.TrimSpace(strings.Join(args, " "))
	if question == "" {
		return fmt.Errorf("la domanda non può essere vuota")
	}

	answer, err := a.Pipeline.Respond(ctx, turn.NewConversation(), question)
	if err != nil {
		return fmt.Errorf("generating answer: %w", err)
	}

	fmt.Println(answer)
	return nil
}
