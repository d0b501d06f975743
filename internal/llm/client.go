package llm

import (
	"context"
	"io"
)

// Message is one turn of a chat exchange.
type Message struct {
	Role    string
	Content string
}

const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Client generates chat completions and handles the audio endpoints used by
// the practice interview flow.
type Client interface {
	Generate(ctx context.Context, messages []Message) (string, error)
	Transcribe(ctx context.Context, fileName string, audio io.Reader) (string, error)
	Speak(ctx context.Context, text string) ([]byte, error)
}
