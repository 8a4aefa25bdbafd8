package agent

import "strings"

const (
	SystemPreamble = "You are a helpful assistant."

	memoryHeader = "Recent memory:\n"
	userHeader   = "User:\n"
	blockSep     = "\n\n"
)

// BuildPrompt assembles the single user message sent for a turn: the
// system preamble, the recent memory block when memory is non-empty, and
// the new user text, separated by blank lines.
func BuildPrompt(userText, memory string) string {
	parts := make([]string, 0, 3)
	parts = append(parts, SystemPreamble)
	if memory != "" {
		parts = append(parts, memoryHeader+memory)
	}
	parts = append(parts, userHeader+userText)
	return strings.Join(parts, blockSep)
}
