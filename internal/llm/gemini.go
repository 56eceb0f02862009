package llm

import (
	"context"
	"errors"
	"io"
	"iter"

	"admindash/internal/domain"

	"google.golang.org/genai"
)

// geminiStreamFunc opens a streaming generation. Tests substitute it for the SDK.
type geminiStreamFunc func(ctx context.Context, apiKey, model string, contents []*genai.Content, cfg *genai.GenerateContentConfig) (iter.Seq2[*genai.GenerateContentResponse, error], error)

type Gemini struct {
	BaseURL string
	stream  geminiStreamFunc
}

type geminiFrame struct {
	Text         string `json:"text"`
	FinishReason string `json:"finish_reason,omitempty"`
}

type geminiErrorFrame struct {
	Error string `json:"error"`
}

func (g Gemini) sdkStream(ctx context.Context, apiKey, model string, contents []*genai.Content, cfg *genai.GenerateContentConfig) (iter.Seq2[*genai.GenerateContentResponse, error], error) {
	cc := &genai.ClientConfig{APIKey: apiKey, Backend: genai.BackendGeminiAPI}
	if g.BaseURL != "" {
		cc.HTTPOptions = genai.HTTPOptions{BaseURL: g.BaseURL}
	}
	client, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, err
	}
	return client.Models.GenerateContentStream(ctx, model, contents, cfg), nil
}

// geminiRequest maps roles (assistant becomes model) and moves system text into
// SystemInstruction.
func geminiRequest(req Request) ([]*genai.Content, *genai.GenerateContentConfig) {
	system, rest := splitSystem(req.Messages)
	contents := make([]*genai.Content, 0, len(rest))
	for _, m := range rest {
		role := genai.Role(genai.RoleUser)
		if m.Role == RoleAssistant {
			role = genai.RoleModel
		}
		contents = append(contents, genai.NewContentFromText(m.Content, role))
	}

	cfg := &genai.GenerateContentConfig{}
	if system != "" {
		cfg.SystemInstruction = genai.NewContentFromText(system, genai.RoleUser)
	}
	if req.Temperature != nil {
		t := float32(*req.Temperature)
		cfg.Temperature = &t
	}
	if req.MaxTokens != nil {
		cfg.MaxOutputTokens = int32(*req.MaxTokens)
	}
	if req.JSONMode() {
		cfg.ResponseMIMEType = "application/json"
	}
	return contents, cfg
}

func geminiError(err error) error {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return &ProviderError{Provider: "gemini", Status: apiErr.Code, Message: apiErr.Message}
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	return domain.UpstreamError{Service: "gemini", Err: err}
}

// Complete pulls the first chunk before returning so provider errors surface as errors
// rather than mid-stream frames. The remaining chunks are framed on a pipe.
func (g Gemini) Complete(ctx context.Context, apiKey string, req Request) (io.ReadCloser, error) {
	open := g.stream
	if open == nil {
		open = g.sdkStream
	}
	contents, cfg := geminiRequest(req)
	seq, err := open(ctx, apiKey, req.Model, contents, cfg)
	if err != nil {
		return nil, geminiError(err)
	}

	next, stop := iter.Pull2(seq)
	first, err, ok := next()
	if ok && err != nil {
		stop()
		return nil, geminiError(err)
	}

	pr, pw := io.Pipe()
	go func() {
		defer stop()
		resp, more := first, ok
		for more {
			if werr := WriteFrame(pw, chunkFrame(resp)); werr != nil {
				pw.CloseWithError(werr)
				return
			}
			var serr error
			resp, serr, more = next()
			if more && serr != nil {
				_ = WriteFrame(pw, geminiErrorFrame{Error: geminiError(serr).Error()})
				break
			}
		}
		_, _ = io.WriteString(pw, DoneFrame)
		pw.Close()
	}()
	return pr, nil
}

func chunkFrame(resp *genai.GenerateContentResponse) geminiFrame {
	if resp == nil {
		return geminiFrame{}
	}
	f := geminiFrame{Text: resp.Text()}
	if len(resp.Candidates) > 0 && resp.Candidates[0] != nil {
		f.FinishReason = string(resp.Candidates[0].FinishReason)
	}
	return f
}
