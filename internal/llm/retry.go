package llm

import (
	"context"
	"errors"
	"io"

	"admindash/internal/utils"

	"go.uber.org/zap"
)

// WithRetryLadder retries a failed completion at most once per error class: once without
// the rejected optional parameter, once with system messages sent as user messages.
// Any further failure is returned unmodified.
func WithRetryLadder(next Adapter) Adapter {
	return AdapterFunc(func(ctx context.Context, apiKey string, req Request) (io.ReadCloser, error) {
		droppedParam, remappedRoles := false, false
		for {
			body, err := next.Complete(ctx, apiKey, req)
			if err == nil {
				return body, nil
			}
			var pe *ProviderError
			if !errors.As(err, &pe) {
				return nil, err
			}

			if !droppedParam {
				if param, ok := pe.UnsupportedParam(); ok && req.has(param) {
					droppedParam = true
					req = req.without(param)
					utils.Logger().Warn("llm retry without parameter",
						zap.String("provider", pe.Provider), zap.String("param", param), zap.String("model", req.Model))
					continue
				}
			}
			if !remappedRoles && pe.UnsupportedSystemRole() && req.hasSystem() {
				remappedRoles = true
				req = req.systemAsUser()
				utils.Logger().Warn("llm retry with system messages as user",
					zap.String("provider", pe.Provider), zap.String("model", req.Model))
				continue
			}
			return nil, err
		}
	})
}

func (r Request) has(param string) bool {
	switch param {
	case "reasoning_effort":
		return r.ReasoningEffort != ""
	case "temperature":
		return r.Temperature != nil
	case "max_tokens":
		return r.MaxTokens != nil
	case "response_format":
		return r.ResponseFormat != ""
	case "tools":
		return len(r.Tools) > 0
	}
	return false
}

func (r Request) without(param string) Request {
	switch param {
	case "reasoning_effort":
		r.ReasoningEffort = ""
	case "temperature":
		r.Temperature = nil
	case "max_tokens":
		r.MaxTokens = nil
	case "response_format":
		r.ResponseFormat = ""
	case "tools":
		r.Tools = nil
	}
	return r
}

func (r Request) hasSystem() bool {
	for _, m := range r.Messages {
		if m.Role == RoleSystem {
			return true
		}
	}
	return false
}

func (r Request) systemAsUser() Request {
	msgs := make([]Message, len(r.Messages))
	for i, m := range r.Messages {
		if m.Role == RoleSystem {
			m.Role = RoleUser
		}
		msgs[i] = m
	}
	r.Messages = msgs
	return r
}
