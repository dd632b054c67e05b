// Package expertise estimates how experienced the user is with cadastral and
// notarial matters, to let the composer adapt tone and depth.
//
// Two interchangeable strategies implement Estimator:
//
//   - LLMJudge asks the model for a structured Judgement and derives
//     instruction lines from it. Parsing is two-stage (strict decode, then
//     first balanced JSON span) with a documented default on total failure.
//   - Heuristic counts domain keywords. Deterministic, total, no I/O.
//
// Deployment configuration selects the strategy; both write the same Result
// shape into the turn state.
package expertise

import (
	"context"
	"fmt"
)

// Level is the estimated seniority of the user.
type Level string

const (
	LevelNovice       Level = "novizio"
	LevelIntermediate Level = "intermedio"
	LevelExpert       Level = "esperto"
	LevelUncertain    Level = "incerto"
)

// normalizeLevel coerces arbitrary model output to a known Level.
func normalizeLevel(s string) Level {
	switch Level(s) {
	case LevelNovice, LevelIntermediate, LevelExpert, LevelUncertain:
		return Level(s)
	default:
		return LevelUncertain
	}
}

// Judgement is the structured expertise assessment for one message.
type Judgement struct {
	CapabilitiesKnown []string `json:"capabilities_known"`
	ConceptsUnknown   []string `json:"concepts_unknown"`
	Misconceptions    []string `json:"misconceptions"`
	SeniorityGuess    string   `json:"seniority_guess"`
	Confidence        float64  `json:"confidence"`
}

// DefaultJudgement is the safe fallback: empty lists, uncertain seniority,
// zero confidence.
func DefaultJudgement() Judgement {
	return Judgement{
		CapabilitiesKnown: []string{},
		ConceptsUnknown:   []string{},
		Misconceptions:    []string{},
		SeniorityGuess:    string(LevelUncertain),
		Confidence:        0,
	}
}

// Result is what either strategy hands to the turn state.
type Result struct {
	Level        Level
	Judgement    Judgement
	Instructions []string
}

// Estimator maps free text to an expertise Result. Implementations must be
// total: they return a usable Result for any input and never fail the turn.
type Estimator interface {
	Estimate(ctx context.Context, text string) Result
}

// Instructions derives natural-language coaching lines from a judgement,
// one line per list entry, using fixed templates.
func Instructions(j Judgement) []string {
	var lines []string
	for _, x := range j.CapabilitiesKnown {
		lines = append(lines, fmt.Sprintf("L'utente conosce %s", x))
	}
	for _, x := range j.ConceptsUnknown {
		lines = append(lines, fmt.Sprintf("L'utente non sa cos'è %s", x))
	}
	for _, x := range j.Misconceptions {
		lines = append(lines, fmt.Sprintf("L'utente potrebbe avere un fraintendimento su %s", x))
	}
	return lines
}
