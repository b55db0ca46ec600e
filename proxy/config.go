package proxy

import "time"

// Config is the proxy server configuration.
type Config struct {
	// Address to listen on (e.g., ":8080")
	ListenAddr string

	// Upstream LM Studio base URL (e.g., "http://localhost:1234/v1")
	UpstreamURL string
}

// Upstream timeouts. Generation requests can be slow on local hardware;
// the health probe should fail fast.
const (
	completionTimeout = 2 * time.Minute
	modelListTimeout  = 10 * time.Second
	healthTimeout     = 5 * time.Second
)
