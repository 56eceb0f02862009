package models

import "time"

// CrawlTask is a task as reported by the scraper backend.
type CrawlTask struct {
	ID           string     `json:"id"`
	ProjectID    string     `json:"project_id"`
	URL          string     `json:"url"`
	Status       string     `json:"status"`
	PagesCrawled int        `json:"pages_crawled"`
	Error        string     `json:"error,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	CompletedAt  *time.Time `json:"completed_at"`
}

type CrawlTaskInput struct {
	ProjectID string `json:"project_id" binding:"required"`
	URL       string `json:"url" binding:"required"`
	MaxPages  int    `json:"max_pages"`
}
