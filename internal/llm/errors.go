package llm

import (
	"fmt"
	"strings"

	json "github.com/goccy/go-json"
)

// ProviderError carries a provider's own error text and HTTP status.
type ProviderError struct {
	Provider string
	Status   int
	Message  string
	// Param is the offending parameter when the provider names one.
	Param string
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("%s: %s", e.Provider, e.Message)
}

type providerErrorBody struct {
	Error struct {
		Message string `json:"message"`
		Param   string `json:"param"`
	} `json:"error"`
	Message string `json:"message"`
}

// newProviderError decodes the {"error":{"message"}} shape OpenAI and Anthropic share,
// falling back to the raw body.
func newProviderError(provider string, status int, raw []byte) *ProviderError {
	pe := &ProviderError{Provider: provider, Status: status}
	var body providerErrorBody
	if json.Unmarshal(raw, &body) == nil {
		pe.Message = body.Error.Message
		pe.Param = body.Error.Param
		if pe.Message == "" {
			pe.Message = body.Message
		}
	}
	if pe.Message == "" {
		pe.Message = strings.TrimSpace(string(raw))
	}
	if pe.Message == "" {
		pe.Message = fmt.Sprintf("status %d", status)
	}
	return pe
}

// optional parameters the ladder may drop, keyed by the names providers use in errors.
// The bare "reasoning" entry stays last: messages about other parameters often mention
// reasoning models.
var droppableParams = []struct {
	names []string
	param string
}{
	{[]string{"reasoning_effort", "reasoning.effort"}, "reasoning_effort"},
	{[]string{"temperature"}, "temperature"},
	{[]string{"max_output_tokens", "max_tokens", "max_completion_tokens"}, "max_tokens"},
	{[]string{"response_format", "text.format"}, "response_format"},
	{[]string{"tools", "tool_choice"}, "tools"},
	{[]string{"reasoning"}, "reasoning_effort"},
}

func isUnsupported(msg string) bool {
	for _, marker := range []string{"not supported", "unsupported", "unrecognized", "unknown parameter", "does not support", "not allowed"} {
		if strings.Contains(msg, marker) {
			return true
		}
	}
	return false
}

// UnsupportedSystemRole reports a rejection of system-role messages.
func (e *ProviderError) UnsupportedSystemRole() bool {
	msg := strings.ToLower(e.Message)
	return isUnsupported(msg) && strings.Contains(msg, "system") && strings.Contains(msg, "role")
}

// UnsupportedParam names the optional parameter the provider rejected.
func (e *ProviderError) UnsupportedParam() (string, bool) {
	if e.UnsupportedSystemRole() {
		return "", false
	}
	msg := strings.ToLower(e.Message)
	if !isUnsupported(msg) {
		return "", false
	}
	if param := strings.ToLower(e.Param); param != "" {
		for _, d := range droppableParams {
			for _, name := range d.names {
				if param == name {
					return d.param, true
				}
			}
		}
	}
	for _, d := range droppableParams {
		for _, name := range d.names {
			if strings.Contains(msg, name) {
				return d.param, true
			}
		}
	}
	return "", false
}
