package llm

import (
	"context"
	"io"
	"net/http"
	"regexp"
	"strings"

	json "github.com/goccy/go-json"
)

const (
	openAIDefaultBaseURL = "https://api.openai.com"
	// openAIDefaultTemperature is the only value reasoning models accept.
	openAIDefaultTemperature = 1.0
)

var oSeriesModel = regexp.MustCompile(`^o\d`)

// fixedTemperatureModel reports model families that reject a non-default temperature.
func fixedTemperatureModel(model string) bool {
	m := strings.ToLower(strings.TrimSpace(model))
	if i := strings.LastIndex(m, "/"); i >= 0 {
		m = m[i+1:]
	}
	return oSeriesModel.MatchString(m) || strings.HasPrefix(m, "gpt-5")
}

type OpenAI struct {
	BaseURL string
	HTTP    *http.Client
}

type openAIFormat struct {
	Type string `json:"type"`
}

type openAIText struct {
	Format openAIFormat `json:"format"`
}

type openAIReasoning struct {
	Effort string `json:"effort"`
}

type openAIPayload struct {
	Model           string            `json:"model"`
	Input           []Message         `json:"input"`
	Temperature     *float64          `json:"temperature,omitempty"`
	MaxOutputTokens *int              `json:"max_output_tokens,omitempty"`
	Text            *openAIText       `json:"text,omitempty"`
	Tools           []json.RawMessage `json:"tools,omitempty"`
	Reasoning       *openAIReasoning  `json:"reasoning,omitempty"`
	Stream          bool              `json:"stream"`
}

// openAIPayloadFor builds the Responses API body.
func openAIPayloadFor(req Request) openAIPayload {
	p := openAIPayload{
		Model:           req.Model,
		Input:           req.Messages,
		MaxOutputTokens: req.MaxTokens,
		Tools:           req.Tools,
		Stream:          req.Stream,
	}
	if req.Temperature != nil {
		if !fixedTemperatureModel(req.Model) || *req.Temperature == openAIDefaultTemperature {
			t := *req.Temperature
			p.Temperature = &t
		}
	}
	if req.JSONMode() {
		p.Text = &openAIText{Format: openAIFormat{Type: "json_object"}}
	}
	if req.ReasoningEffort != "" {
		p.Reasoning = &openAIReasoning{Effort: req.ReasoningEffort}
	}
	return p
}

func (o OpenAI) Complete(ctx context.Context, apiKey string, req Request) (io.ReadCloser, error) {
	base := o.BaseURL
	if base == "" {
		base = openAIDefaultBaseURL
	}
	client := o.HTTP
	if client == nil {
		client = defaultHTTPClient()
	}
	return postJSON(ctx, client, "openai", strings.TrimRight(base, "/")+"/v1/responses",
		map[string]string{"Authorization": "Bearer " + apiKey},
		openAIPayloadFor(req), req.Stream)
}
