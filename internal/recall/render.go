package recall

import (
	"fmt"
	"strings"
)

const (
	// separator delimits passage blocks in the rendered context.
	separator = "\n\n---\n\n"

	// TruncationMarker is appended when the context exceeds its bound.
	TruncationMarker = " …[troncato]"
)

// Render turns an ordered passage list into a single context block.
//
// Each passage gets a citation header "[i] <source> (p.<page>)" where i is
// the 1-based rank, source is the first non-empty of the source/file/url
// metadata keys, and the page suffix is dropped when no page/chunk_id exists.
// The joined body is trimmed and hard-truncated to maxChars characters, with
// TruncationMarker appended on cut. Empty input renders to "".
//
// Render is pure: same passages and bound always yield the same string.
func Render(passages []Passage, maxChars int) string {
	if len(passages) == 0 {
		return ""
	}

	parts := make([]string, 0, len(passages))
	for i, p := range passages {
		src := metaString(p.Metadata, "source", "file", "url")
		head := fmt.Sprintf("[%d] %s", i+1, src)
		if page := metaString(p.Metadata, "page", "chunk_id"); page != "" {
			head += fmt.Sprintf(" (p.%s)", page)
		}
		block := strings.TrimSpace(strings.TrimSpace(head) + "\n" + strings.TrimSpace(p.Text))
		parts = append(parts, block)
	}

	body := strings.TrimSpace(strings.Join(parts, separator))

	if maxChars > 0 {
		if runes := []rune(body); len(runes) > maxChars {
			return string(runes[:maxChars]) + TruncationMarker
		}
	}
	return body
}

// metaString returns the first non-empty metadata value among keys,
// stringifying numeric values the store may emit (e.g. page numbers).
func metaString(meta map[string]any, keys ...string) string {
	for _, key := range keys {
		switch v := meta[key].(type) {
		case string:
			if s := strings.TrimSpace(v); s != "" {
				return s
			}
		case float64:
			return fmt.Sprintf("%v", v)
		case int:
			return fmt.Sprintf("%d", v)
		}
	}
	return ""
}
