package expertise

import (
	"context"
	"strings"
)

// Keyword signals for the no-LLM strategy. The two sets are disjoint:
// expert terms are the registry/Conservatoria vocabulary a practitioner
// uses, intermediate terms are everyday cadastral vocabulary.
var (
	expertKeywords = []string{
		"art.",
		"trascrizione",
		"conservatoria",
		"ventennale",
		"gravami",
		"ipotecaria",
		"formalità",
		"voltura",
		"pignoramento",
		"dante causa",
	}

	intermediateKeywords = []string{
		"visura",
		"catasto",
		"planimetria",
		"rendita",
		"particella",
		"subalterno",
		"rogito",
		"foglio",
		"accatastamento",
	}
)

// Heuristic estimates expertise by keyword matching. It is deterministic and
// total: the same text always yields the same level, no external calls.
//
// Policy: at least two expert hits mean expert; exactly one expert hit or at
// least two intermediate hits mean intermediate; anything else is a novice.
type Heuristic struct{}

// NewHeuristic creates the keyword-based estimator.
func NewHeuristic() *Heuristic {
	return &Heuristic{}
}

// Estimate implements Estimator. The judgement carries only the level (no
// lists, confidence 0) since keyword counting supports nothing richer.
func (h *Heuristic) Estimate(_ context.Context, text string) Result {
	level := classify(text)

	j := DefaultJudgement()
	j.SeniorityGuess = string(level)

	return Result{Level: level, Judgement: j}
}

func classify(text string) Level {
	lowered := strings.ToLower(text)

	expertHits := countHits(lowered, expertKeywords)
	intermediateHits := countHits(lowered, intermediateKeywords)

	switch {
	case expertHits >= 2:
		return LevelExpert
	case expertHits == 1 || intermediateHits >= 2:
		return LevelIntermediate
	default:
		return LevelNovice
	}
}

// countHits counts how many distinct keywords occur in lowered text.
func countHits(lowered string, keywords []string) int {
	hits := 0
	for _, kw := range keywords {
		if strings.Contains(lowered, kw) {
			hits++
		}
	}
	return hits
}
