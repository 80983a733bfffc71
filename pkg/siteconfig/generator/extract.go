package generator

import "strings"

// stripCodeFences removes ```json ... ``` wrapping around a model response.
func stripCodeFences(s string) string {
	trimmed := strings.TrimSpace(s)
	if !strings.HasPrefix(trimmed, "```") {
		return trimmed
	}
	firstNewline := strings.Index(trimmed, "\n")
	if firstNewline == -1 {
		return trimmed
	}
	lastFence := strings.LastIndex(trimmed, "```")
	if lastFence <= firstNewline {
		return trimmed
	}
	return strings.TrimSpace(trimmed[firstNewline+1 : lastFence])
}

// extractJSON returns the first balanced JSON object in s, or "" if there is
// none. Braces inside string literals are ignored.
func extractJSON(s string) string {
	start := strings.Index(s, "{")
	if start == -1 {
		return ""
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(s); i++ {
		c := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return s[start : i+1]
			}
		}
	}
	return ""
}
