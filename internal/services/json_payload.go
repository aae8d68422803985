package services

import (
	"encoding/json"
	"regexp"
	"strings"
)

var (
	jsonFencePattern   = regexp.MustCompile("(?s)```json\\s*(\\{.*?\\}|\\[.*?\\])\\s*```")
	anyFencePattern    = regexp.MustCompile("(?s)```\\s*(\\{.*?\\}|\\[.*?\\])\\s*```")
	looseObjectPattern = regexp.MustCompile(`(?s)(\{.*\})`)
)

// locateJSON finds the JSON payload in a model reply. Fenced blocks win over
// bare JSON, which wins over the widest brace span. A reply whose first opener
// is '[' yields the bracket span when it parses, so arrays are never narrowed
// to an element. The second return value is false when nothing was found or
// the located span does not parse.
func locateJSON(text string) (any, bool) {
	if m := jsonFencePattern.FindStringSubmatch(text); m != nil {
		return decodeJSON(m[1])
	}
	if m := anyFencePattern.FindStringSubmatch(text); m != nil {
		return decodeJSON(m[1])
	}

	trimmed := strings.TrimSpace(text)
	if trimmed != "" && json.Valid([]byte(trimmed)) {
		return decodeJSON(trimmed)
	}

	if start := strings.IndexAny(text, "{["); start >= 0 && text[start] == '[' {
		if end := strings.LastIndexByte(text, ']'); end > start {
			if v, ok := decodeJSON(text[start : end+1]); ok {
				return v, true
			}
		}
	}

	if m := looseObjectPattern.FindStringSubmatch(text); m != nil {
		return decodeJSON(m[1])
	}
	return nil, false
}

func decodeJSON(s string) (any, bool) {
	var v any
	if err := json.Unmarshal([]byte(s), &v); err != nil {
		return nil, false
	}
	return v, true
}
