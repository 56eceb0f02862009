package repositories

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"admindash/internal/domain"
	"admindash/internal/domain/models"
	"admindash/internal/utils"

	json "github.com/goccy/go-json"
	"github.com/sony/gobreaker"
	"go.uber.org/zap"
)

// scraperStatusError is a non-2xx reply. 4xx replies do not count against the breaker.
type scraperStatusError struct {
	Status  int
	Message string
}

func (e scraperStatusError) Error() string {
	return fmt.Sprintf("scraper status %d: %s", e.Status, e.Message)
}

// ScraperClient talks to the crawl backend through a circuit breaker.
type ScraperClient struct {
	BaseURL string
	APIKey  string
	HTTP    *http.Client
	breaker *gobreaker.CircuitBreaker
}

func NewScraperClient(baseURL, apiKey string) *ScraperClient {
	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "scraper",
		MaxRequests: 5,
		Interval:    30 * time.Second,
		Timeout:     60 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < 5 {
				return false
			}
			return float64(counts.TotalFailures)/float64(counts.Requests) >= 0.8
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			utils.Logger().Warn("circuit breaker state changed",
				zap.String("breaker", name), zap.String("from", from.String()), zap.String("to", to.String()))
		},
		IsSuccessful: func(err error) bool {
			var se scraperStatusError
			if errors.As(err, &se) {
				return se.Status < 500
			}
			return err == nil
		},
	})
	return &ScraperClient{
		BaseURL: strings.TrimRight(baseURL, "/"),
		APIKey:  apiKey,
		HTTP:    &http.Client{Timeout: 20 * time.Second},
		breaker: cb,
	}
}

func (c *ScraperClient) do(ctx context.Context, method, path string, body any, out any) error {
	if c.BaseURL == "" {
		return domain.UpstreamError{Service: "scraper", Err: fmt.Errorf("SCRAPER_URL not configured")}
	}
	_, err := c.breaker.Execute(func() (interface{}, error) {
		var reader io.Reader
		if body != nil {
			raw, err := json.Marshal(body)
			if err != nil {
				return nil, err
			}
			reader = bytes.NewReader(raw)
		}
		req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, reader)
		if err != nil {
			return nil, err
		}
		req.Header.Set("Accept", "application/json")
		if body != nil {
			req.Header.Set("Content-Type", "application/json")
		}
		if c.APIKey != "" {
			req.Header.Set("X-API-Key", c.APIKey)
		}

		resp, err := c.HTTP.Do(req)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()

		if resp.StatusCode >= 300 {
			msg, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
			return nil, scraperStatusError{Status: resp.StatusCode, Message: scraperMessage(msg)}
		}
		if out != nil {
			return nil, json.NewDecoder(resp.Body).Decode(out)
		}
		return nil, nil
	})
	return mapScraperError(err)
}

func scraperMessage(raw []byte) string {
	var body struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if json.Unmarshal(raw, &body) == nil {
		if body.Error != "" {
			return body.Error
		}
		if body.Message != "" {
			return body.Message
		}
	}
	return strings.TrimSpace(string(raw))
}

func mapScraperError(err error) error {
	if err == nil {
		return nil
	}
	var se scraperStatusError
	if errors.As(err, &se) {
		switch {
		case se.Status == http.StatusNotFound:
			return domain.NotFoundError{Resource: "crawl task", Err: err}
		case se.Status == http.StatusBadRequest || se.Status == http.StatusUnprocessableEntity:
			return domain.ValidationError{Msg: se.Message, Err: err}
		}
	}
	return domain.UpstreamError{Service: "scraper", Err: err}
}

type scraperTaskPage struct {
	Tasks []models.CrawlTask `json:"tasks"`
	Total int                `json:"total"`
}

func (c *ScraperClient) ListTasks(ctx context.Context, req domain.PageRequest, status string) ([]models.CrawlTask, int, error) {
	q := url.Values{}
	q.Set("page", strconv.Itoa(req.Page))
	q.Set("limit", strconv.Itoa(req.Limit))
	q.Set("sort", req.SortField)
	q.Set("order", string(req.SortOrder))
	if req.Search != "" {
		q.Set("search", req.Search)
	}
	if status != "" {
		q.Set("status", status)
	}

	var page scraperTaskPage
	if err := c.do(ctx, http.MethodGet, "/tasks?"+q.Encode(), nil, &page); err != nil {
		return nil, 0, err
	}
	if page.Tasks == nil {
		page.Tasks = []models.CrawlTask{}
	}
	return page.Tasks, page.Total, nil
}

func (c *ScraperClient) GetTask(ctx context.Context, id string) (models.CrawlTask, error) {
	var t models.CrawlTask
	err := c.do(ctx, http.MethodGet, "/tasks/"+url.PathEscape(id), nil, &t)
	return t, err
}

func (c *ScraperClient) CreateTask(ctx context.Context, in models.CrawlTaskInput) (models.CrawlTask, error) {
	var t models.CrawlTask
	err := c.do(ctx, http.MethodPost, "/tasks", in, &t)
	return t, err
}
