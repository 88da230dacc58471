package domain

import "context"

// ChatMessage is one turn sent to the chat completion provider.
type ChatMessage struct {
	Role    string
	Content string
}

// Chat roles understood by the provider.
const (
	ChatRoleSystem = "system"
	ChatRoleUser   = "user"
)

// ChatCompleter forwards a conversation to a hosted chat completion model and
// returns the text of the first choice.
type ChatCompleter interface {
	Complete(ctx context.Context, messages []ChatMessage) (string, error)
}

// ChatService answers guest questions about one event.
type ChatService interface {
	Chat(ctx context.Context, eventID, message string) (string, error)
}
