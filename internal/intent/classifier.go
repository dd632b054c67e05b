// Package intent classifies an inbound message as an information request or
// a direct document-download request.
//
// Classification is a single LLM round trip with a strict JSON contract.
// It is total: any call or parse failure falls back to Informational, so the
// pipeline never blocks on a misbehaving model.
package intent

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/arlerug/wesafe-assistant/internal/llm"
	"github.com/arlerug/wesafe-assistant/internal/log"
)

// Intent is the two-way request category.
type Intent string

const (
	// Informational marks questions, clarifications and analysis requests.
	Informational Intent = "info"

	// Download marks direct requests to obtain a document.
	Download Intent = "download"
)

// classifierPrompt constrains the model to the two-way choice with a strict
// single-line JSON answer.
const classifierPrompt = `Sei un classificatore di richieste relative a documenti notarili e catastali.

Devi decidere SOLO tra due categorie:
1. "info" → l'utente fa domande, vuole chiarimenti, analisi, spiegazioni (es. "Devo controllare i gravami", "Quale documento serve per la conformità").
2. "download" → l'utente chiede direttamente un documento da ottenere/scaricare (es. "Voglio la visura catastale attuale", "Scarica la planimetria").

Rispondi SOLO in JSON nel formato:
{"intent": "info"}
oppure
{"intent": "download"}

MESSAGGIO UTENTE:
`

// Classifier maps free text onto an Intent.
type Classifier struct {
	completer llm.Completer
	logger    log.Logger
}

// NewClassifier creates a Classifier using the given completion capability.
func NewClassifier(completer llm.Completer, logger log.Logger) *Classifier {
	return &Classifier{completer: completer, logger: logger}
}

// Classify returns the intent for text. One LLM attempt, no retry; any call
// or parse failure and any unknown label coerce to Informational.
func (c *Classifier) Classify(ctx context.Context, text string) Intent {
	raw, err := c.completer.Complete(ctx, classifierPrompt+text)
	if err != nil {
		c.logger.Warn("intent classification call failed, defaulting to info", "error", err)
		return Informational
	}

	var decoded struct {
		Intent string `json:"intent"`
	}
	if err := json.Unmarshal([]byte(strings.TrimSpace(raw)), &decoded); err != nil {
		c.logger.Warn("intent response is not valid JSON, defaulting to info",
			"error", err, "raw", truncateForLog(raw))
		return Informational
	}

	switch Intent(decoded.Intent) {
	case Informational, Download:
		return Intent(decoded.Intent)
	default:
		c.logger.Warn("unknown intent label, defaulting to info", "label", decoded.Intent)
		return Informational
	}
}

func truncateForLog(s string) string {
	const max = 120
	if len(s) <= max {
		return s
	}
	return s[:max] + "…"
}
