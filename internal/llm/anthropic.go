package llm

import (
	"context"
	"io"
	"net/http"
	"strings"

	json "github.com/goccy/go-json"
)

const (
	anthropicDefaultBaseURL   = "https://api.anthropic.com"
	anthropicVersion          = "2023-06-01"
	AnthropicDefaultMaxTokens = 4096
)

type Anthropic struct {
	BaseURL string
	HTTP    *http.Client
}

type anthropicPayload struct {
	Model       string            `json:"model"`
	System      string            `json:"system,omitempty"`
	Messages    []Message         `json:"messages"`
	MaxTokens   int               `json:"max_tokens"`
	Temperature *float64          `json:"temperature,omitempty"`
	Tools       []json.RawMessage `json:"tools,omitempty"`
	Stream      bool              `json:"stream"`
}

// anthropicPayloadFor lifts system messages into the system field; the Messages API
// has no system role.
func anthropicPayloadFor(req Request) anthropicPayload {
	system, rest := splitSystem(req.Messages)
	p := anthropicPayload{
		Model:       req.Model,
		System:      system,
		Messages:    rest,
		MaxTokens:   AnthropicDefaultMaxTokens,
		Temperature: req.Temperature,
		Tools:       req.Tools,
		Stream:      req.Stream,
	}
	if p.Messages == nil {
		p.Messages = []Message{}
	}
	if req.MaxTokens != nil {
		p.MaxTokens = *req.MaxTokens
	}
	return p
}

func (a Anthropic) Complete(ctx context.Context, apiKey string, req Request) (io.ReadCloser, error) {
	base := a.BaseURL
	if base == "" {
		base = anthropicDefaultBaseURL
	}
	client := a.HTTP
	if client == nil {
		client = defaultHTTPClient()
	}
	return postJSON(ctx, client, "anthropic", strings.TrimRight(base, "/")+"/v1/messages",
		map[string]string{"x-api-key": apiKey, "anthropic-version": anthropicVersion},
		anthropicPayloadFor(req), req.Stream)
}
