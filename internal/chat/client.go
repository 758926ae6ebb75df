package chat

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

const (
	// DefaultURL is the chat endpoint used when none is configured.
	DefaultURL = "http://localhost:5000/api/chat"

	// FallbackReply is shown when the backend answers without a usable reply.
	FallbackReply = "I couldn't process your request."

	// ErrorReply is shown when the request fails outright.
	ErrorReply = "Sorry, I encountered an error. Please try again later."

	// MaxHistory is the number of most recent turns sent with a question.
	MaxHistory = 20
)

// replySchema describes a usable backend reply.
const replySchema = `{
	"type": "object",
	"properties": {
		"response": {"type": "string", "minLength": 1}
	},
	"required": ["response"]
}`

var (
	compileOnce sync.Once
	compiled    *jsonschema.Schema
	compileErr  error
)

func replyValidator() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		doc, err := jsonschema.UnmarshalJSON(strings.NewReader(replySchema))
		if err != nil {
			compileErr = fmt.Errorf("parse schema: %w", err)
			return
		}
		c := jsonschema.NewCompiler()
		const url = "schema://chat-reply.json"
		if err := c.AddResource(url, doc); err != nil {
			compileErr = fmt.Errorf("add resource: %w", err)
			return
		}
		compiled, compileErr = c.Compile(url)
	})
	return compiled, compileErr
}

// Client posts questions to the chat backend. There is no timeout and no
// retry; a request runs until the server answers or the connection fails.
type Client struct {
	url        string
	httpClient *http.Client
}

// NewClient creates a Client for url. An empty url uses DefaultURL.
func NewClient(url string) *Client {
	if url == "" {
		url = DefaultURL
	}
	return &Client{
		url:        url,
		httpClient: &http.Client{},
	}
}

// URL returns the endpoint this client posts to.
func (c *Client) URL() string {
	return c.url
}

type askRequest struct {
	Text    string `json:"text"`
	History []Turn `json:"history,omitempty"`
}

// Ask sends text with the earlier turns of the conversation and returns the
// text to show as the assistant's reply. Only the last MaxHistory turns are
// sent. It never fails: errors become ErrorReply and replies without a
// usable response field become FallbackReply.
func (c *Client) Ask(ctx context.Context, text string, history ...Turn) string {
	if len(history) > MaxHistory {
		history = history[len(history)-MaxHistory:]
	}
	reply, err := c.do(ctx, askRequest{Text: text, History: history})
	if err != nil {
		slog.Warn("chat request failed", "url", c.url, "error", err)
		return ErrorReply
	}
	return reply
}

func (c *Client) do(ctx context.Context, ask askRequest) (string, error) {
	body, err := json.Marshal(ask)
	if err != nil {
		return "", fmt.Errorf("encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}

	schema, err := replyValidator()
	if err != nil {
		return "", fmt.Errorf("reply schema: %w", err)
	}
	if err := schema.Validate(parsed); err != nil {
		slog.Debug("chat reply without usable response", "error", err)
		return FallbackReply, nil
	}

	return parsed.(map[string]any)["response"].(string), nil
}
