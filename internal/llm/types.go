// Package llm translates one normalized chat request into each provider's native call
// and streams the result back as server-sent events.
package llm

import (
	"context"
	"io"
	"math"
	"strings"

	"admindash/internal/domain"

	json "github.com/goccy/go-json"
)

const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Request is the provider-neutral chat request accepted by the playground.
type Request struct {
	Model           string            `json:"model"`
	Messages        []Message         `json:"messages"`
	Temperature     *float64          `json:"temperature,omitempty"`
	MaxTokens       *int              `json:"maxTokens,omitempty"`
	ResponseFormat  string            `json:"responseFormat,omitempty"`
	Tools           []json.RawMessage `json:"tools,omitempty"`
	ReasoningEffort string            `json:"reasoningEffort,omitempty"`
	Stream          bool              `json:"stream"`
}

// JSONMode reports whether the caller asked for a JSON object response.
func (r Request) JSONMode() bool {
	switch strings.ToLower(strings.TrimSpace(r.ResponseFormat)) {
	case "json", "json_object":
		return true
	}
	return false
}

// Validate normalizes roles and checks the fields every provider needs.
func (r Request) Validate() (Request, error) {
	r.Model = strings.TrimSpace(r.Model)
	if r.Model == "" {
		return r, domain.ValidationError{Field: "model", Msg: "is required"}
	}
	if len(r.Messages) == 0 {
		return r, domain.ValidationError{Field: "messages", Msg: "must not be empty"}
	}
	msgs := make([]Message, 0, len(r.Messages))
	for _, m := range r.Messages {
		role := strings.ToLower(strings.TrimSpace(m.Role))
		if role == "developer" {
			role = RoleSystem
		}
		switch role {
		case RoleSystem, RoleUser, RoleAssistant:
		default:
			return r, domain.ValidationError{Field: "messages", Msg: "role must be system, user or assistant"}
		}
		msgs = append(msgs, Message{Role: role, Content: m.Content})
	}
	r.Messages = msgs
	if r.MaxTokens != nil && *r.MaxTokens < 1 {
		return r, domain.ValidationError{Field: "maxTokens", Msg: "must be positive"}
	}
	if r.MaxTokens != nil && *r.MaxTokens > math.MaxInt32 {
		return r, domain.ValidationError{Field: "maxTokens", Msg: "is too large"}
	}
	return r, nil
}

// splitSystem separates system messages from the conversation.
func splitSystem(msgs []Message) (system string, rest []Message) {
	var parts []string
	for _, m := range msgs {
		if m.Role == RoleSystem {
			parts = append(parts, m.Content)
			continue
		}
		rest = append(rest, m)
	}
	return strings.Join(parts, "\n\n"), rest
}

// Adapter performs one completion and returns an SSE byte stream that always ends
// with the DONE frame.
type Adapter interface {
	Complete(ctx context.Context, apiKey string, req Request) (io.ReadCloser, error)
}

type AdapterFunc func(ctx context.Context, apiKey string, req Request) (io.ReadCloser, error)

func (f AdapterFunc) Complete(ctx context.Context, apiKey string, req Request) (io.ReadCloser, error) {
	return f(ctx, apiKey, req)
}
