package pipeline

import "strings"

// ShouldRespond decides whether a message warrants an automated reply.
// The heuristic is deliberately simple: a question mark at the end, or a
// "help"/"assistant" keyword anywhere in the text.
func ShouldRespond(text string) bool {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return false
	}
	lowered := strings.ToLower(trimmed)
	if strings.Contains(lowered, "assistant") || strings.Contains(lowered, "help") {
		return true
	}
	return strings.HasSuffix(trimmed, "?")
}
