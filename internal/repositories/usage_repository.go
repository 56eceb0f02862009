package repositories

import (
	"context"
	"database/sql"
	"time"

	intconfig "admindash/internal/config"
	"admindash/internal/domain/models"
)

// UsageRepository aggregates the usage table. USAGE is a reserved word in MySQL, hence the backticks.
type UsageRepository struct {
	DB *sql.DB
}

func (r UsageRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

func (r UsageRepository) DailyTotals(ctx context.Context, since time.Time) ([]models.DailyUsage, error) {
	rows, err := r.db().QueryContext(ctx, `
		SELECT DATE(created_at) AS day, COUNT(*), COALESCE(SUM(tokens),0)
		FROM `+"`usage`"+`
		WHERE created_at >= ?
		GROUP BY day
		ORDER BY day ASC
	`, since)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.DailyUsage{}
	for rows.Next() {
		var (
			day time.Time
			d   models.DailyUsage
		)
		if err := rows.Scan(&day, &d.Requests, &d.Tokens); err != nil {
			return nil, err
		}
		d.Date = day.Format("2006-01-02")
		out = append(out, d)
	}
	return out, rows.Err()
}

func (r UsageRepository) TotalsByType(ctx context.Context, since time.Time) ([]models.UsageByType, error) {
	rows, err := r.db().QueryContext(ctx, `
		SELECT COALESCE(type,'unknown'), COUNT(*), COALESCE(SUM(tokens),0)
		FROM `+"`usage`"+`
		WHERE created_at >= ?
		GROUP BY type
		ORDER BY COUNT(*) DESC
	`, since)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.UsageByType{}
	for rows.Next() {
		var u models.UsageByType
		if err := rows.Scan(&u.Type, &u.Requests, &u.Tokens); err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

func (r UsageRepository) ForProject(ctx context.Context, projectID string) (models.UsageTotals, error) {
	var t models.UsageTotals
	err := r.db().QueryRowContext(ctx,
		"SELECT COUNT(*), COALESCE(SUM(tokens),0) FROM `usage` WHERE project_id = ?", projectID,
	).Scan(&t.Requests, &t.Tokens)
	return t, err
}
