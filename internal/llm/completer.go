// Package llm wraps the text-completion capability the pipeline consumes.
//
// The model is an opaque prompt-in/text-out collaborator. Components depend
// on the Completer interface; production wiring provides the Genkit-backed
// implementation, tests provide scripted fakes.
package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/firebase/genkit/go/ai"
	"github.com/firebase/genkit/go/genkit"
)

// Completer is the single contract to the language model: one prompt in,
// one text out. Implementations must respect ctx cancellation.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// GenkitCompleter completes prompts through a Genkit model.
type GenkitCompleter struct {
	g         *genkit.Genkit
	modelName string
}

// NewGenkitCompleter creates a Completer backed by the named model,
// e.g. "googleai/gemini-2.5-flash" or "ollama/llama3.3".
func NewGenkitCompleter(g *genkit.Genkit, modelName string) *GenkitCompleter {
	return &GenkitCompleter{g: g, modelName: modelName}
}

// Complete runs one generation round trip and returns the trimmed text.
func (c *GenkitCompleter) Complete(ctx context.Context, prompt string) (string, error) {
	resp, err := genkit.Generate(ctx, c.g,
		ai.WithModelName(c.modelName),
		ai.WithPrompt(prompt),
	)
	if err != nil {
		return "", fmt.Errorf("generating completion: %w", err)
	}
	return strings.TrimSpace(resp.Text()), nil
}
