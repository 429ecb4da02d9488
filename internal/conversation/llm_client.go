package conversation

import "context"

const (
	ChatRoleSystem    = "system"
	ChatRoleUser      = "user"
	ChatRoleAssistant = "assistant"
)

// ChatMessage is one turn of conversation memory.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// LLMRequest describes one completion call.
type LLMRequest struct {
	Model       string
	System      []string
	Messages    []ChatMessage
	MaxTokens   int
	Temperature float32
}

// LLMResponse is the text result of a completion call.
type LLMResponse struct {
	Text       string
	StopReason string
}

// LLMClient abstracts the completion service so the conversation components
// can be tested without network access.
type LLMClient interface {
	Complete(ctx context.Context, req LLMRequest) (LLMResponse, error)
}
