package expertise

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/arlerug/wesafe-assistant/internal/llm"
	"github.com/arlerug/wesafe-assistant/internal/log"
)

const wellFormedJudgement = `{
	"capabilities_known": ["visura catastale"],
	"concepts_unknown": ["nota di trascrizione"],
	"misconceptions": ["rendita come valore di mercato"],
	"seniority_guess": "intermedio",
	"confidence": 0.8
}`

func TestLLMJudgeEstimate(t *testing.T) {
	ctx := context.Background()

	t.Run("strict decode", func(t *testing.T) {
		fake := &llm.Fake{Responses: []string{wellFormedJudgement}}
		j := NewLLMJudge(fake, log.NewNop())

		got := j.Estimate(ctx, "Che differenza c'è tra visura e nota di trascrizione?")

		if got.Level != LevelIntermediate {
			t.Errorf("Level = %q, want intermedio", got.Level)
		}
		if got.Judgement.Confidence != 0.8 {
			t.Errorf("Confidence = %v, want 0.8", got.Judgement.Confidence)
		}
		wantLines := []string{
			"L'utente conosce visura catastale",
			"L'utente non sa cos'è nota di trascrizione",
			"L'utente potrebbe avere un fraintendimento su rendita come valore di mercato",
		}
		if !reflect.DeepEqual(got.Instructions, wantLines) {
			t.Errorf("Instructions = %v, want %v", got.Instructions, wantLines)
		}
	})

	t.Run("JSON embedded in prose decodes via span extraction", func(t *testing.T) {
		fake := &llm.Fake{Responses: []string{
			"Ecco la valutazione richiesta:\n" + wellFormedJudgement + "\nSpero sia utile!",
		}}
		j := NewLLMJudge(fake, log.NewNop())

		got := j.Estimate(ctx, "testo")
		if got.Level != LevelIntermediate {
			t.Errorf("Level = %q, want intermedio (span-extracted)", got.Level)
		}
	})

	t.Run("braces inside strings do not break span extraction", func(t *testing.T) {
		fake := &llm.Fake{Responses: []string{
			`nota: {"capabilities_known": ["uso {strano} di parentesi"], "concepts_unknown": [], "misconceptions": [], "seniority_guess": "esperto", "confidence": 0.5}`,
		}}
		j := NewLLMJudge(fake, log.NewNop())

		got := j.Estimate(ctx, "testo")
		if got.Level != LevelExpert {
			t.Errorf("Level = %q, want esperto", got.Level)
		}
	})

	t.Run("malformed response yields default judgement", func(t *testing.T) {
		fake := &llm.Fake{Responses: []string{"the user seems experienced"}}
		j := NewLLMJudge(fake, log.NewNop())

		got := j.Estimate(ctx, "testo")

		if got.Level != LevelUncertain {
			t.Errorf("Level = %q, want incerto", got.Level)
		}
		if got.Judgement.Confidence != 0 {
			t.Errorf("Confidence = %v, want 0", got.Judgement.Confidence)
		}
		if len(got.Judgement.CapabilitiesKnown) != 0 || len(got.Instructions) != 0 {
			t.Errorf("default judgement must be empty, got %+v", got)
		}
	})

	t.Run("call failure yields default judgement", func(t *testing.T) {
		fake := &llm.Fake{Err: errors.New("model unavailable")}
		j := NewLLMJudge(fake, log.NewNop())

		got := j.Estimate(ctx, "testo")
		if got.Level != LevelUncertain || got.Judgement.Confidence != 0 {
			t.Errorf("want default judgement on failure, got %+v", got)
		}
	})

	t.Run("unknown seniority and wild confidence are sanitized", func(t *testing.T) {
		fake := &llm.Fake{Responses: []string{
			`{"capabilities_known": null, "concepts_unknown": null, "misconceptions": null, "seniority_guess": "wizard", "confidence": 3.5}`,
		}}
		j := NewLLMJudge(fake, log.NewNop())

		got := j.Estimate(ctx, "testo")
		if got.Level != LevelUncertain {
			t.Errorf("Level = %q, want incerto for unknown label", got.Level)
		}
		if got.Judgement.Confidence != 1 {
			t.Errorf("Confidence = %v, want clamped to 1", got.Judgement.Confidence)
		}
		if got.Judgement.CapabilitiesKnown == nil {
			t.Error("nil slices must be replaced with empty ones")
		}
	})
}

func TestFirstJSONObject(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
		ok    bool
	}{
		{"bare object", `{"a": 1}`, `{"a": 1}`, true},
		{"leading prose", `sure: {"a": 1} done`, `{"a": 1}`, true},
		{"nested objects", `x {"a": {"b": 2}} y`, `{"a": {"b": 2}}`, true},
		{"brace in string", `{"a": "}"}`, `{"a": "}"}`, true},
		{"escaped quote in string", `{"a": "\"}"}`, `{"a": "\"}"}`, true},
		{"no object", `nothing here`, "", false},
		{"unbalanced", `{"a": 1`, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := firstJSONObject(tt.input)
			if ok != tt.ok || got != tt.want {
				t.Errorf("firstJSONObject(%q) = (%q, %v), want (%q, %v)",
					tt.input, got, ok, tt.want, tt.ok)
			}
		})
	}
}
