package ai

import (
	"fmt"
	"strings"

	"github.com/srikarboddupally/analyzejd/internal/domain"
)

// CleanJSONResponse extracts the JSON object from a raw model response.
// Models wrap output in markdown fences or prepend prose despite being told
// not to; this strips fences and then scans for the first balanced object.
func CleanJSONResponse(raw string) (string, error) {
	s := stripFences(raw)
	s = strings.TrimSpace(s)
	obj, ok := balancedObject(s)
	if !ok {
		return "", fmt.Errorf("op=ai.clean: no JSON object in response: %w", domain.ErrProviderMalformed)
	}
	return obj, nil
}

func stripFences(s string) string {
	if i := strings.Index(s, "```json"); i >= 0 {
		s = s[i+len("```json"):]
		if j := strings.Index(s, "```"); j >= 0 {
			s = s[:j]
		}
		return s
	}
	if i := strings.Index(s, "```"); i >= 0 {
		s = s[i+3:]
		if j := strings.Index(s, "```"); j >= 0 {
			s = s[:j]
		}
	}
	return s
}

// balancedObject returns the first brace-balanced object in s, tracking
// string literals so braces inside values do not break the count.
func balancedObject(s string) (string, bool) {
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
