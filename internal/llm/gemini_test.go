package llm

import (
	"context"
	"io"
	"iter"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

func textChunk(s string) *genai.GenerateContentResponse {
	return &genai.GenerateContentResponse{Candidates: []*genai.Candidate{{Content: genai.NewContentFromText(s, genai.RoleModel)}}}
}

func fakeGeminiStream(chunks []*genai.GenerateContentResponse, errAt int, err error, captured *[]*genai.Content, cfgOut **genai.GenerateContentConfig) geminiStreamFunc {
	return func(_ context.Context, _, _ string, contents []*genai.Content, cfg *genai.GenerateContentConfig) (iter.Seq2[*genai.GenerateContentResponse, error], error) {
		*captured = contents
		*cfgOut = cfg
		return func(yield func(*genai.GenerateContentResponse, error) bool) {
			for i, c := range chunks {
				if i == errAt {
					yield(nil, err)
					return
				}
				if !yield(c, nil) {
					return
				}
			}
		}, nil
	}
}

func TestGeminiRolesAndSystemInstruction(t *testing.T) {
	contents, cfg := geminiRequest(Request{
		Model:       "gemini-2.0-flash",
		Temperature: ptr(0.5),
		MaxTokens:   ptr(64),
		Messages: []Message{
			{Role: RoleSystem, Content: "be kind"},
			{Role: RoleUser, Content: "hi"},
			{Role: RoleAssistant, Content: "hello"},
		},
	})
	require.Len(t, contents, 2)
	assert.Equal(t, "user", contents[0].Role)
	assert.Equal(t, "model", contents[1].Role)
	require.NotNil(t, cfg.SystemInstruction)
	assert.Equal(t, "be kind", cfg.SystemInstruction.Parts[0].Text)
	assert.Equal(t, float32(0.5), *cfg.Temperature)
	assert.Equal(t, int32(64), cfg.MaxOutputTokens)
}

func TestGeminiStreamsFramesThenDone(t *testing.T) {
	var contents []*genai.Content
	var cfg *genai.GenerateContentConfig
	g := Gemini{stream: fakeGeminiStream([]*genai.GenerateContentResponse{textChunk("Hel"), textChunk("lo")}, -1, nil, &contents, &cfg)}

	body, err := g.Complete(context.Background(), "gk", Request{Model: "gemini", Messages: []Message{{Role: RoleUser, Content: "hi"}}})
	require.NoError(t, err)
	defer body.Close()
	out, err := io.ReadAll(body)
	require.NoError(t, err)

	assert.Equal(t, "data: {\"text\":\"Hel\"}\n\ndata: {\"text\":\"lo\"}\n\n"+DoneFrame, string(out))
}

func TestGeminiFirstChunkErrorIsReturned(t *testing.T) {
	var contents []*genai.Content
	var cfg *genai.GenerateContentConfig
	apiErr := genai.APIError{Code: 400, Message: "API key not valid"}
	g := Gemini{stream: fakeGeminiStream([]*genai.GenerateContentResponse{textChunk("x")}, 0, apiErr, &contents, &cfg)}

	_, err := g.Complete(context.Background(), "bad", Request{Model: "gemini", Messages: []Message{{Role: RoleUser, Content: "hi"}}})
	var pe *ProviderError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, "API key not valid", pe.Message)
	assert.Equal(t, 400, pe.Status)
}

func TestGeminiMidStreamErrorBecomesFrame(t *testing.T) {
	var contents []*genai.Content
	var cfg *genai.GenerateContentConfig
	g := Gemini{stream: fakeGeminiStream([]*genai.GenerateContentResponse{textChunk("a"), textChunk("b")}, 1,
		genai.APIError{Code: 500, Message: "internal"}, &contents, &cfg)}

	body, err := g.Complete(context.Background(), "k", Request{Model: "gemini", Messages: []Message{{Role: RoleUser, Content: "hi"}}})
	require.NoError(t, err)
	out, _ := io.ReadAll(body)
	assert.True(t, strings.Contains(string(out), `{"error":"gemini: internal"}`))
	assert.True(t, strings.HasSuffix(string(out), DoneFrame))
}
