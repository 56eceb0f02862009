package models

import "time"

// SystemLog mirrors the system_logs monitoring table.
type SystemLog struct {
	ID        int64     `json:"id"`
	Level     string    `json:"level"`
	Source    string    `json:"source"`
	Message   string    `json:"message"`
	UserID    string    `json:"user_id"`
	ProjectID string    `json:"project_id"`
	CreatedAt time.Time `json:"created_at"`
}

type LevelCount struct {
	Level string `json:"level"`
	Count int    `json:"count"`
}
