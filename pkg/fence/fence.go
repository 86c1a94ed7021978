// Package fence unwraps markdown code fences that LLMs tend to wrap around
// JSON payloads even when asked not to.
package fence

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Unwrap removes an optional leading fence marker (``` plus an optional
// language tag) and an optional trailing fence from raw. Content without
// fences passes through untouched. The grammar is deliberately forgiving:
// an unterminated fence still yields the inner content.
func Unwrap(raw string) string {
	s := strings.TrimSpace(raw)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if idx := strings.IndexByte(s, '\n'); idx >= 0 {
		tag := strings.TrimSpace(s[:idx])
		if isLanguageTag(tag) {
			s = s[idx+1:]
		}
	} else {
		// Single-line fence such as ```json{...}```.
		s = strings.TrimPrefix(s, "json")
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

// DecodeJSON unwraps fences and unmarshals the remaining content into v.
func DecodeJSON(raw string, v any) error {
	inner := Unwrap(raw)
	if inner == "" {
		return fmt.Errorf("decode fenced json: empty content")
	}
	if err := json.Unmarshal([]byte(inner), v); err != nil {
		return fmt.Errorf("decode fenced json: %w", err)
	}
	return nil
}

func isLanguageTag(tag string) bool {
	if tag == "" {
		return true
	}
	for _, r := range tag {
		if (r < 'a' || r > 'z') && (r < 'A' || r > 'Z') && (r < '0' || r > '9') {
			return false
		}
	}
	return true
}
