package llm

import (
	"strings"

	"github.com/tidwall/gjson"
)

// Clean strips markdown code fences and any prose around the outermost JSON
// value. Models asked for JSON often wrap it as ```json ... ``` or prefix a
// sentence. Text with no JSON value is returned trimmed.
func Clean(raw string) string {
	s := strings.TrimSpace(raw)

	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```")
		if nl := strings.IndexByte(s, '\n'); nl >= 0 {
			// Drop the info string ("json", "JSON", ...).
			s = s[nl+1:]
		}
		if end := strings.LastIndex(s, "```"); end >= 0 {
			s = s[:end]
		}
		s = strings.TrimSpace(s)
	}

	if gjson.Valid(s) {
		return s
	}

	start := strings.IndexAny(s, "{[")
	if start < 0 {
		return s
	}
	closer := byte('}')
	if s[start] == '[' {
		closer = ']'
	}
	end := strings.LastIndexByte(s, closer)
	if end <= start {
		return s
	}
	if candidate := s[start : end+1]; gjson.Valid(candidate) {
		return candidate
	}
	return s
}
