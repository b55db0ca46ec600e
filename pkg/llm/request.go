package llm

// DefaultModel is forwarded upstream when the client omits a model name.
// LM Studio serves whatever model is loaded regardless of the identifier.
const DefaultModel = "local-model"

// ChatRequest represents a chat completion request (OpenAI-compatible).
// Generation parameters ride alongside these fields in the JSON body and
// are validated and clamped by pkg/params before forwarding.
type ChatRequest struct {
	Model    string    `json:"model"`            // Model identifier
	Messages []Message `json:"messages"`         // Conversation history
	Stream   *bool     `json:"stream,omitempty"` // Whether to stream responses
}

// CompletionRequest represents a legacy text completion request.
type CompletionRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
	Stream *bool  `json:"stream,omitempty"`
}
