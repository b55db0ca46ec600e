package llm

// StreamDone is the sentinel payload that terminates an SSE stream.
const StreamDone = "[DONE]"

// StreamChunk represents a single server-sent-event chunk in a streaming
// chat completion. Chunks arrive as "data: {json}" lines terminated by a
// literal "data: [DONE]".
type StreamChunk struct {
	ID      string        `json:"id"`
	Object  string        `json:"object"` // "chat.completion.chunk"
	Created int64         `json:"created"`
	Model   string        `json:"model"`
	Choices []StreamDelta `json:"choices"`
}

// StreamDelta carries the incremental content of a streamed choice.
type StreamDelta struct {
	Index        int     `json:"index"`
	Delta        Message `json:"delta"`
	FinishReason *string `json:"finish_reason"`
}
