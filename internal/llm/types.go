package llm

// Role represents the role of a message sender in a conversation.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message represents a single message in a conversation.
type Message struct {
	Role    Role
	Content string
}

// CompletionRequest contains the parameters for a chat-completion request.
// Every sampling field is sent as-is, zero values included.
type CompletionRequest struct {
	Model           string
	Messages        []Message
	MaxTokens       int
	Temperature     float64
	TopP            float64
	PresencePenalty float64
}

// CompletionResponse contains the result of a chat-completion request.
type CompletionResponse struct {
	Content      string
	InputTokens  int
	OutputTokens int
	Model        string
	FinishReason string
}

// UserPrompt builds a request carrying a single user message.
func UserPrompt(model, prompt string) CompletionRequest {
	return CompletionRequest{
		Model:    model,
		Messages: []Message{{Role: RoleUser, Content: prompt}},
	}
}
