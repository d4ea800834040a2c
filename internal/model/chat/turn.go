package chat

import "strings"

// Conversation roles accepted from the client.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleSystem    = "system"
)

// ConversationTurn is one entry of the chat history sent by the browser.
type ConversationTurn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Valid reports whether the turn can be forwarded to a model.
func (t ConversationTurn) Valid() bool {
	switch t.Role {
	case RoleUser, RoleAssistant, RoleSystem:
	default:
		return false
	}
	return strings.TrimSpace(t.Content) != ""
}

// Sanitize drops turns with unknown roles or empty content and returns the
// kept turns together with the number dropped.
func Sanitize(turns []ConversationTurn) ([]ConversationTurn, int) {
	kept := make([]ConversationTurn, 0, len(turns))
	for _, turn := range turns {
		if turn.Valid() {
			kept = append(kept, turn)
		}
	}
	return kept, len(turns) - len(kept)
}
