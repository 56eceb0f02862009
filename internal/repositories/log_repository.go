package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	intconfig "admindash/internal/config"
	intdb "admindash/internal/db"
	"admindash/internal/domain"
	"admindash/internal/domain/models"
)

var logSortColumns = map[string]string{
	"created_at": "created_at",
	"level":      "level",
	"source":     "source",
}

// LogLevels are the accepted values of the level filter.
var LogLevels = []string{"debug", "info", "warn", "error"}

type LogRepository struct {
	DB *sql.DB
}

func (r LogRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

// List pages system_logs filtered by level and a message/source search.
func (r LogRepository) List(ctx context.Context, req domain.PageRequest, level string) ([]models.SystemLog, int, error) {
	where := []string{"1=1"}
	args := []any{}
	if level != "" {
		where = append(where, "level = ?")
		args = append(args, level)
	}
	if req.Search != "" {
		like := intdb.LikePattern(req.Search)
		where = append(where, "(LOWER(message) LIKE ? OR LOWER(source) LIKE ?)")
		args = append(args, like, like)
	}
	whereSQL := " WHERE " + strings.Join(where, " AND ")

	var total int
	if err := r.db().QueryRowContext(ctx, `SELECT COUNT(*) FROM system_logs`+whereSQL, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := fmt.Sprintf(`SELECT id, COALESCE(level,''), COALESCE(source,''), COALESCE(message,''),
		COALESCE(user_id,''), COALESCE(project_id,''), created_at
		FROM system_logs%s ORDER BY %s LIMIT ? OFFSET ?`,
		whereSQL, intdb.OrderBy(req.SortField, req.SortOrder == domain.SortAsc, logSortColumns))
	rows, err := r.db().QueryContext(ctx, query, append(args, req.Limit, req.Offset())...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out := []models.SystemLog{}
	for rows.Next() {
		var l models.SystemLog
		if err := rows.Scan(&l.ID, &l.Level, &l.Source, &l.Message, &l.UserID, &l.ProjectID, &l.CreatedAt); err != nil {
			return nil, 0, err
		}
		out = append(out, l)
	}
	return out, total, rows.Err()
}

func (r LogRepository) CountByLevel(ctx context.Context) ([]models.LevelCount, error) {
	rows, err := r.db().QueryContext(ctx,
		`SELECT COALESCE(level,''), COUNT(*) FROM system_logs GROUP BY level ORDER BY COUNT(*) DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.LevelCount{}
	for rows.Next() {
		var c models.LevelCount
		if err := rows.Scan(&c.Level, &c.Count); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}
