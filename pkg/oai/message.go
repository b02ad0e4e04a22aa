// Package oai defines the OpenAI-compatible wire types the server speaks.
// Field names follow the upstream API exactly; clients unmarshal these
// responses with unmodified OpenAI SDKs.
package oai

// Message is a single conversation turn.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Conversation roles.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// LastUserContent returns the content of the most recent user turn, or the
// empty string if the conversation has none.
func LastUserContent(messages []Message) string {
	for i := len(messages) - 1; i >= 0; i-- {
		if messages[i].Role == RoleUser {
			return messages[i].Content
		}
	}
	return ""
}
