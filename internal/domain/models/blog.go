package models

import "time"

// Blog is a document from the blogs collection. Content is omitted from list queries.
type Blog struct {
	ID        string     `json:"id"`
	Title     string     `json:"title"`
	Slug      string     `json:"slug"`
	Status    string     `json:"status"`
	Content   string     `json:"content,omitempty"`
	ProjectID string     `json:"project_id"`
	UserID    string     `json:"user_id"`
	IsActive  bool       `json:"is_active"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	DeletedAt *time.Time `json:"deleted_at"`
	DeletedBy *string    `json:"deleted_by"`
}
