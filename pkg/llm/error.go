// Package llm provides internal representations of LM Studio's
// OpenAI-compatible inference API requests and responses which are then
// further mutated and handled.
package llm

// ErrorResponse represents an error returned to proxy clients.
type ErrorResponse struct {
	Error string `json:"error"`

	// Populated when the upstream returned a non-2xx response that we
	// pass through to the client.
	StatusCode int    `json:"status_code,omitempty"`
	Details    string `json:"details,omitempty"`
}
