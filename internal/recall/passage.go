package recall

import (
	"encoding/json"
	"strings"
)

// Passage is one normalized knowledge passage from the store.
// Created fresh per recall call and discarded at end of turn.
type Passage struct {
	Text     string         // non-empty after normalization
	Metadata map[string]any // source|file|url, page|chunk_id, title used for rendering
	Score    *float64       // similarity score when the store reports one
}

// normalize converts one raw result item into a Passage.
//
// Policy, in order: a JSON string wraps as-is; an object prefers
// text/metadata ("metadata" or "meta")/score fields; an empty text looks one
// level deeper into payload.text / payload.metadata; anything still empty
// stringifies the whole item. The result always has non-empty Text.
func normalize(raw json.RawMessage) Passage {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return Passage{Text: s, Metadata: map[string]any{}}
	}

	var obj map[string]any
	if err := json.Unmarshal(raw, &obj); err != nil {
		return Passage{Text: string(raw), Metadata: map[string]any{}}
	}

	text := strings.TrimSpace(asString(obj["text"]))
	meta := asMap(obj["metadata"])
	if meta == nil {
		meta = asMap(obj["meta"])
	}

	var score *float64
	if f, ok := obj["score"].(float64); ok {
		score = &f
	}

	if text == "" {
		if payload := asMap(obj["payload"]); payload != nil {
			text = strings.TrimSpace(asString(payload["text"]))
			if m := asMap(payload["metadata"]); m != nil {
				meta = m
			}
		}
	}

	if text == "" {
		text = string(raw)
	}
	if meta == nil {
		meta = map[string]any{}
	}

	return Passage{Text: text, Metadata: meta, Score: score}
}

func asString(v any) string {
	s, _ := v.(string)
	return s
}

func asMap(v any) map[string]any {
	m, _ := v.(map[string]any)
	return m
}
