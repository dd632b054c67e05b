package expertise

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/arlerug/wesafe-assistant/internal/llm"
	"github.com/arlerug/wesafe-assistant/internal/log"
)

// schemaGuide constrains the model to the Judgement JSON shape.
const schemaGuide = `Sei un esperto di certificazione notarile e catasto. Valuta quanto emerge dal MESSAGGIO UTENTE.
Rispondi SOLO in JSON valido, senza testo extra, con questo schema:

{
  "capabilities_known": ["breve voce 1", "breve voce 2"],
  "concepts_unknown": ["breve voce 1", "breve voce 2"],
  "misconceptions": ["breve voce 1", "breve voce 2"],
  "seniority_guess": "novizio" | "intermedio" | "esperto" | "incerto",
  "confidence": 0.0-1.0
}

Regole:
- Le voci devono essere sintetiche (2-5 parole), es. "visura ipocatastale", "nota di trascrizione".
- Inserisci in "concepts_unknown" SOLO se il messaggio suggerisce esplicitamente mancanza o richiesta di definizione.
- "misconceptions" se noti termini usati in modo improprio o affermazioni probabilmente errate.
- "seniority_guess": scegli il livello più plausibile in base al messaggio; usa "incerto" se il testo non basta.
- "confidence": stima soggettiva (0..1).
- NON aggiungere testo fuori dal JSON.

MESSAGGIO UTENTE:
`

// LLMJudge estimates expertise with one schema-constrained LLM call.
type LLMJudge struct {
	completer llm.Completer
	logger    log.Logger
}

// NewLLMJudge creates the LLM-backed estimator.
func NewLLMJudge(completer llm.Completer, logger log.Logger) *LLMJudge {
	return &LLMJudge{completer: completer, logger: logger}
}

// Estimate implements Estimator. On any call or parse failure it returns the
// default judgement (uncertain, confidence 0, empty lists).
func (e *LLMJudge) Estimate(ctx context.Context, text string) Result {
	j := e.judge(ctx, text)
	return Result{
		Level:        normalizeLevel(j.SeniorityGuess),
		Judgement:    j,
		Instructions: Instructions(j),
	}
}

func (e *LLMJudge) judge(ctx context.Context, text string) Judgement {
	raw, err := e.completer.Complete(ctx, schemaGuide+text)
	if err != nil {
		e.logger.Warn("expertise judgement call failed, using default", "error", err)
		return DefaultJudgement()
	}

	j, ok := decodeJudgement(raw)
	if !ok {
		e.logger.Warn("expertise judgement is not parseable JSON, using default")
		return DefaultJudgement()
	}
	return j
}

// decodeJudgement applies the two-stage parse strategy: strict decode of the
// whole response first, then a best-effort decode of the first balanced
// {...} span. Both tiers are required behavior, not cleverness; models wrap
// JSON in prose often enough that tier two carries real traffic.
func decodeJudgement(raw string) (Judgement, bool) {
	raw = strings.TrimSpace(raw)

	var j Judgement
	if err := json.Unmarshal([]byte(raw), &j); err == nil {
		return sanitize(j), true
	}

	if span, ok := firstJSONObject(raw); ok {
		if err := json.Unmarshal([]byte(span), &j); err == nil {
			return sanitize(j), true
		}
	}

	return Judgement{}, false
}

// sanitize fills nil slices and clamps out-of-range values so downstream
// consumers never see a partially useful judgement blow up rendering.
func sanitize(j Judgement) Judgement {
	if j.CapabilitiesKnown == nil {
		j.CapabilitiesKnown = []string{}
	}
	if j.ConceptsUnknown == nil {
		j.ConceptsUnknown = []string{}
	}
	if j.Misconceptions == nil {
		j.Misconceptions = []string{}
	}
	if j.Confidence < 0 {
		j.Confidence = 0
	}
	if j.Confidence > 1 {
		j.Confidence = 1
	}
	j.SeniorityGuess = string(normalizeLevel(j.SeniorityGuess))
	return j
}

// firstJSONObject returns the first balanced top-level {...} span in s.
// Braces inside JSON strings are skipped, including escaped quotes.
func firstJSONObject(s string) (string, bool) {
	start := strings.IndexByte(s, '{')
	if start < 0 {
		return "", false
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(s); i++ {
		c := s[i]
		switch {
		case escaped:
			escaped = false
		case c == '\\' && inString:
			escaped = true
		case c == '"':
			inString = !inString
		case inString:
			// brace characters inside strings are data
		case c == '{':
			depth++
		case c == '}':
			depth--
			if depth == 0 {
				return s[start : i+1], true
			}
		}
	}
	return "", false
}
