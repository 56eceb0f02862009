package llm

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"time"

	"admindash/internal/domain"

	json "github.com/goccy/go-json"
)

func defaultHTTPClient() *http.Client {
	return &http.Client{Timeout: 5 * time.Minute}
}

// postJSON sends payload and turns the reply into an SSE stream. Non-2xx replies become
// a ProviderError carrying the provider's message; transport failures are UpstreamErrors.
func postJSON(ctx context.Context, client *http.Client, provider, url string, headers map[string]string, payload any, stream bool) (io.ReadCloser, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, domain.InternalError{Msg: "could not encode provider request", Err: err}
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(raw))
	if err != nil {
		return nil, domain.InternalError{Msg: "could not build provider request", Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	if stream {
		req.Header.Set("Accept", "text/event-stream")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, domain.UpstreamError{Service: provider, Err: err}
	}
	if resp.StatusCode >= 300 {
		defer resp.Body.Close()
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
		return nil, newProviderError(provider, resp.StatusCode, body)
	}
	if stream {
		return withDone(resp.Body), nil
	}

	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, domain.UpstreamError{Service: provider, Err: err}
	}
	return singleFrame(body), nil
}
