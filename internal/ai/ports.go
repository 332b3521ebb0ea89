package ai

import "context"

// AI is the external model. It knows nothing about pricing or chats.
type AI interface {
	GetReply(
		ctx context.Context,
		systemPrompt string,
		input string,
	) (string, error)
}

// Message is the role/text pair sent to the model.
type Message struct {
	Role string // "user" | "assistant" | "system"
	Text string
}
