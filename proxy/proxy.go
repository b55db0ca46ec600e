// Package proxy provides an HTTP proxy in front of a local LM Studio
// server. It validates and clamps generation parameters before forwarding
// chat and text completion requests, and passes upstream responses and
// error statuses through to the client.
package proxy

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/onrampdev/onramp/pkg/llm"
	"github.com/onrampdev/onramp/pkg/params"
)

// Proxy is a thin validation layer between clients and the inference
// server. It is stateless: every request is validated, forwarded, and the
// upstream response relayed without any stored session state.
type Proxy struct {
	config     Config
	logger     *zap.Logger
	httpClient *http.Client
	server     *fiber.App
}

// New creates a new Proxy.
func New(config Config, logger *zap.Logger) *Proxy {
	app := fiber.New(fiber.Config{
		// Disable startup message for cleaner logs
		DisableStartupMessage: true,
		// Enable streaming
		StreamRequestBody: true,
		ErrorHandler:      jsonErrorHandler,
	})

	p := &Proxy{
		config: config,
		logger: logger,
		server: app,
		httpClient: &http.Client{
			Timeout: completionTimeout,
		},
	}

	// Register routes
	app.Get("/health", p.handleHealth)
	app.Get("/models", p.handleModels)
	app.Post("/chat/completions", p.handleChatCompletions)
	app.Post("/completions", p.handleCompletions)
	app.Post("/parameters/validate", p.handleValidateParameters)
	app.Get("/parameters/defaults", p.handleDefaultParameters)

	return p
}

// Run starts the proxy server on the configured listening address.
func (p *Proxy) Run() error {
	p.logger.Info("starting proxy server",
		zap.String("listen", p.config.ListenAddr),
		zap.String("upstream", p.config.UpstreamURL),
	)

	return p.server.Listen(p.config.ListenAddr)
}

// Shutdown gracefully stops the server.
func (p *Proxy) Shutdown() error {
	return p.server.Shutdown()
}

// jsonErrorHandler keeps every error surface JSON, including router-level
// 404 and 405 responses.
func jsonErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "internal server error"

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		code = fiberErr.Code
		switch code {
		case fiber.StatusNotFound:
			message = "endpoint not found"
		case fiber.StatusMethodNotAllowed:
			message = "method not allowed"
		default:
			message = fiberErr.Message
		}
	}

	return c.Status(code).JSON(llm.ErrorResponse{Error: message})
}

// handleHealth probes the upstream model listing to report whether the
// inference server is reachable.
func (p *Proxy) handleHealth(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), healthTimeout)
	defer cancel()

	body, status, err := p.upstreamGet(ctx, "/models")
	if err != nil {
		p.logger.Warn("health probe failed", zap.Error(err))
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"status":              "unhealthy",
			"lm_studio_connected": false,
			"error":               err.Error(),
		})
	}

	if status != http.StatusOK {
		return c.JSON(fiber.Map{
			"status":              "partial",
			"lm_studio_connected": false,
			"message":             "LM Studio not accessible",
		})
	}

	var models llm.ModelList
	if err := json.Unmarshal(body, &models); err != nil {
		p.logger.Warn("health probe returned malformed model list", zap.Error(err))
	}

	return c.JSON(fiber.Map{
		"status":              "healthy",
		"lm_studio_connected": true,
		"available_models":    models.Data,
	})
}

// handleModels passes the upstream model listing through to the client.
func (p *Proxy) handleModels(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), modelListTimeout)
	defer cancel()

	body, status, err := p.upstreamGet(ctx, "/models")
	if err != nil {
		p.logger.Error("failed to fetch models", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(llm.ErrorResponse{Error: err.Error()})
	}
	if status != http.StatusOK {
		return c.Status(fiber.StatusInternalServerError).JSON(llm.ErrorResponse{Error: "failed to fetch models"})
	}

	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	return c.Send(body)
}

// handleChatCompletions validates the chat request, clamps its generation
// parameters, and forwards it upstream.
func (p *Proxy) handleChatCompletions(c *fiber.Ctx) error {
	body, err := parseBody(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(llm.ErrorResponse{Error: err.Error()})
	}

	messages, present := body["messages"]
	if !present {
		return c.Status(fiber.StatusBadRequest).JSON(llm.ErrorResponse{Error: "messages field is required"})
	}
	list, ok := messages.([]any)
	if !ok || len(list) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(llm.ErrorResponse{Error: "messages must be a non-empty array"})
	}

	validated, err := params.Validate(body)
	if err != nil {
		p.logger.Debug("rejected malformed parameters", zap.Error(err))
		return c.Status(fiber.StatusBadRequest).JSON(llm.ErrorResponse{Error: err.Error()})
	}

	upstream := map[string]any{
		"model":    modelName(body),
		"messages": messages,
	}
	for k, v := range validated.Map() {
		upstream[k] = v
	}

	p.logger.Info("processing chat completion",
		zap.Int("message_count", len(list)),
		zap.Bool("stream", validated.Stream),
	)

	if validated.Stream {
		return p.relayStream(c, "/chat/completions", upstream)
	}
	return p.forward(c, "/chat/completions", upstream)
}

// handleCompletions validates the legacy text completion request and
// forwards it upstream.
func (p *Proxy) handleCompletions(c *fiber.Ctx) error {
	body, err := parseBody(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(llm.ErrorResponse{Error: err.Error()})
	}

	prompt, present := body["prompt"]
	if !present {
		return c.Status(fiber.StatusBadRequest).JSON(llm.ErrorResponse{Error: "prompt field is required"})
	}

	validated, err := params.Validate(body)
	if err != nil {
		p.logger.Debug("rejected malformed parameters", zap.Error(err))
		return c.Status(fiber.StatusBadRequest).JSON(llm.ErrorResponse{Error: err.Error()})
	}

	upstream := map[string]any{
		"model":  modelName(body),
		"prompt": prompt,
	}
	for k, v := range validated.Map() {
		upstream[k] = v
	}

	if validated.Stream {
		return p.relayStream(c, "/completions", upstream)
	}
	return p.forward(c, "/completions", upstream)
}

// forward sends a non-streaming request upstream and relays the response,
// passing non-2xx statuses and bodies through to the client.
func (p *Proxy) forward(c *fiber.Ctx, path string, payload map[string]any) error {
	startTime := time.Now()

	reqBody, err := json.Marshal(payload)
	if err != nil {
		p.logger.Error("failed to marshal upstream request", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(llm.ErrorResponse{Error: "internal server error"})
	}

	upstreamURL := p.config.UpstreamURL + path
	p.logger.Debug("forwarding request to upstream",
		zap.String("url", upstreamURL),
		zap.Int("body_size", len(reqBody)),
	)

	httpReq, err := http.NewRequestWithContext(c.Context(), http.MethodPost, upstreamURL, bytes.NewReader(reqBody))
	if err != nil {
		p.logger.Error("failed to create upstream request", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(llm.ErrorResponse{Error: "internal server error"})
	}
	httpReq.Header.Set("Content-Type", "application/json")

	httpResp, err := p.httpClient.Do(httpReq)
	if err != nil {
		p.logger.Error("upstream request failed", zap.Error(err))
		return c.Status(fiber.StatusServiceUnavailable).JSON(llm.ErrorResponse{Error: "failed to connect to LM Studio"})
	}
	defer httpResp.Body.Close()

	respBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		p.logger.Error("failed to read upstream response", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(llm.ErrorResponse{Error: "internal server error"})
	}

	if httpResp.StatusCode != http.StatusOK {
		p.logger.Error("upstream returned error",
			zap.Int("status", httpResp.StatusCode),
			zap.String("body", truncate(string(respBody), 200)),
		)
		return c.Status(httpResp.StatusCode).JSON(llm.ErrorResponse{
			Error:      "LM Studio request failed",
			StatusCode: httpResp.StatusCode,
			Details:    string(respBody),
		})
	}

	p.logger.Debug("received response from upstream",
		zap.Duration("duration", time.Since(startTime)),
		zap.Int("body_size", len(respBody)),
	)

	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	return c.Send(respBody)
}

// relayStream forwards a streaming request upstream and relays the SSE
// stream to the client line by line, flushing after each event.
func (p *Proxy) relayStream(c *fiber.Ctx, path string, payload map[string]any) error {
	reqBody, err := json.Marshal(payload)
	if err != nil {
		p.logger.Error("failed to marshal upstream request", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(llm.ErrorResponse{Error: "internal server error"})
	}

	upstreamURL := p.config.UpstreamURL + path
	httpReq, err := http.NewRequestWithContext(c.Context(), http.MethodPost, upstreamURL, bytes.NewReader(reqBody))
	if err != nil {
		p.logger.Error("failed to create upstream request", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(llm.ErrorResponse{Error: "internal server error"})
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "text/event-stream")

	p.logger.Debug("forwarding streaming request to upstream",
		zap.String("url", upstreamURL),
	)

	httpResp, err := p.httpClient.Do(httpReq)
	if err != nil {
		p.logger.Error("upstream request failed", zap.Error(err))
		return c.Status(fiber.StatusServiceUnavailable).JSON(llm.ErrorResponse{Error: "failed to connect to LM Studio"})
	}

	if httpResp.StatusCode != http.StatusOK {
		defer httpResp.Body.Close()
		respBody, _ := io.ReadAll(httpResp.Body)
		p.logger.Error("upstream returned error",
			zap.Int("status", httpResp.StatusCode),
			zap.String("body", truncate(string(respBody), 200)),
		)
		return c.Status(httpResp.StatusCode).JSON(llm.ErrorResponse{
			Error:      "LM Studio request failed",
			StatusCode: httpResp.StatusCode,
			Details:    string(respBody),
		})
	}

	c.Set(fiber.HeaderContentType, "text/event-stream")
	c.Set(fiber.HeaderCacheControl, "no-cache")
	c.Set("Connection", "keep-alive")

	c.Context().SetBodyStreamWriter(fasthttp.StreamWriter(func(w *bufio.Writer) {
		defer httpResp.Body.Close()

		scanner := bufio.NewScanner(httpResp.Body)
		scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

		for scanner.Scan() {
			line := scanner.Bytes()

			if payload, ok := bytes.CutPrefix(line, []byte("data: ")); ok {
				if string(payload) == llm.StreamDone {
					p.logger.Debug("streaming complete")
				} else {
					var chunk llm.StreamChunk
					if err := json.Unmarshal(payload, &chunk); err == nil && len(chunk.Choices) > 0 {
						p.logger.Debug("streaming chunk",
							zap.String("content", truncate(chunk.Choices[0].Delta.Content, 50)),
						)
					}
				}
			}

			w.Write(line)
			w.Write([]byte("\n"))
			w.Flush()
		}

		if err := scanner.Err(); err != nil {
			p.logger.Error("error reading stream", zap.Error(err))
		}
	}))

	return nil
}

// upstreamGet fetches an upstream path and returns the raw body and status.
func (p *Proxy) upstreamGet(ctx context.Context, path string) ([]byte, int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.config.UpstreamURL+path, nil)
	if err != nil {
		return nil, 0, fmt.Errorf("create request: %w", err)
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("GET %s: %w", path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, 0, fmt.Errorf("read response: %w", err)
	}

	return body, resp.StatusCode, nil
}

// parseBody decodes the request body as a JSON object.
func parseBody(c *fiber.Ctx) (map[string]any, error) {
	var body map[string]any
	if err := json.Unmarshal(c.Body(), &body); err != nil || body == nil {
		return nil, errors.New("no JSON data provided")
	}
	return body, nil
}

// modelName extracts the model field, defaulting for clients that omit it.
func modelName(body map[string]any) string {
	if model, ok := body["model"].(string); ok && model != "" {
		return model
	}
	return llm.DefaultModel
}

func truncate(s string, maxLen int) string {
	s = strings.ReplaceAll(s, "\n", " ")
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
