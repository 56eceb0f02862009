package handlers

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"admindash/internal/http/middleware"
	"admindash/internal/llm"
	"admindash/internal/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func bearerKey(c *gin.Context) string {
	h := strings.TrimSpace(c.GetHeader("Authorization"))
	if len(h) > 7 && strings.EqualFold(h[:7], "bearer ") {
		return strings.TrimSpace(h[7:])
	}
	return ""
}

// respondProviderError relays the provider's own message. 4xx keep their status, anything
// else becomes 502.
func respondProviderError(c *gin.Context, pe *llm.ProviderError) {
	status := pe.Status
	if status < 400 || status >= 500 {
		status = http.StatusBadGateway
	}
	RespondError(c, status, "provider_error", pe.Message)
}

// AIPlayground forwards a normalized chat request to :provider and streams SSE frames
// ending with data: [DONE].
func (a API) AIPlayground(c *gin.Context) {
	provider := c.Param("provider")
	adapter, ok := a.LLM.Get(provider)
	if !ok {
		RespondError(c, http.StatusNotFound, "not_found", "unknown provider "+provider)
		return
	}
	apiKey := bearerKey(c)
	if apiKey == "" {
		RespondError(c, http.StatusUnauthorized, "unauthorized", "provider api key required as bearer token")
		return
	}

	var req llm.Request
	if !BindJSONOrError(c, &req) {
		return
	}
	req, err := req.Validate()
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	body, err := adapter.Complete(c.Request.Context(), apiKey, req)
	if err != nil {
		var pe *llm.ProviderError
		if errors.As(err, &pe) {
			respondProviderError(c, pe)
			return
		}
		RespondDomainError(c, err)
		return
	}
	defer body.Close()

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")
	c.Status(http.StatusOK)

	buf := make([]byte, 4096)
	for {
		n, rerr := body.Read(buf)
		if n > 0 {
			if _, werr := c.Writer.Write(buf[:n]); werr != nil {
				return
			}
			c.Writer.Flush()
		}
		if rerr == io.EOF {
			return
		}
		if rerr != nil {
			utils.Logger().Warn("ai playground stream aborted",
				zap.String("request_id", middleware.GetRequestID(c)),
				zap.String("provider", provider),
				zap.Error(rerr))
			return
		}
	}
}
