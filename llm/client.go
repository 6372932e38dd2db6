// Package llm wraps a single chat-completions style text-generation call.
// Retry and fan-out policy belong to callers.
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
	"yt-highlights/config"
	"yt-highlights/errors"
)

// Request is one immutable generation request. SystemRole frames the model's
// behavior; Prompt carries the partition text.
type Request struct {
	SystemRole  string
	Prompt      string
	Model       string
	MaxTokens   int
	Temperature float64
}

// Generator is the call surface the pipeline fans out over. Satisfied by
// *Client and by test stubs.
type Generator interface {
	Generate(ctx context.Context, req Request) (string, error)
}

type Client struct {
	endpoint    string
	apiKey      string
	callTimeout time.Duration
	httpClient  *http.Client
	limiter     *rate.Limiter
	logger      *logrus.Logger
}

func NewClient(cfg config.LLMConfig) *Client {
	var limiter *rate.Limiter
	if cfg.RequestsPerMinute > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.RequestsPerMinute)/60, cfg.RequestsPerMinute)
	}

	return &Client{
		endpoint:    cfg.Endpoint,
		apiKey:      cfg.APIKey,
		callTimeout: cfg.CallTimeout,
		// Shared client for connection pooling only; each call owns its
		// own request and response.
		httpClient: &http.Client{},
		limiter:    limiter,
		logger:     logrus.StandardLogger(),
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Generate issues one generation call and returns the trimmed output text.
// Non-2xx responses surface as an upstream error carrying the remote status
// and body; they are never retried here.
func (c *Client) Generate(ctx context.Context, req Request) (string, error) {
	const op = "llm.Client.Generate"

	if c.apiKey == "" {
		return "", errors.Configuration(op, "LLM API key is not set")
	}

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return "", errors.Upstream(op, 0, err.Error())
		}
	}

	ctx, cancel := context.WithTimeout(ctx, c.callTimeout)
	defer cancel()

	payload := chatRequest{
		Model: req.Model,
		Messages: []chatMessage{
			{Role: "system", Content: req.SystemRole},
			{Role: "user", Content: req.Prompt},
		},
		Temperature: req.Temperature,
		MaxTokens:   req.MaxTokens,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", errors.Internal(op, err, "failed to encode generation request")
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", errors.Internal(op, err, "failed to build generation request")
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)

	start := time.Now()
	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		// Timeouts and transport failures are upstream failures too.
		return "", errors.Upstream(op, 0, err.Error())
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", errors.Upstream(op, resp.StatusCode, err.Error())
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.logger.WithFields(logrus.Fields{
			"status":   resp.StatusCode,
			"duration": time.Since(start),
		}).Warn("Generation call rejected")
		return "", errors.Upstream(op, resp.StatusCode, string(respBody))
	}

	var parsed chatResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return "", errors.Internal(op, err, "failed to decode generation response")
	}
	if len(parsed.Choices) == 0 {
		return "", errors.Internal(op, nil, "generation response contained no choices")
	}

	c.logger.WithFields(logrus.Fields{
		"model":    req.Model,
		"duration": time.Since(start),
	}).Debug("Generation call completed")

	return strings.TrimSpace(parsed.Choices[0].Message.Content), nil
}
