package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	intconfig "admindash/internal/config"
	intdb "admindash/internal/db"
	"admindash/internal/domain"
	"admindash/internal/domain/models"
	"admindash/internal/enrich"
)

var projectSortColumns = map[string]string{
	"created_at": "created_at",
	"name":       "name",
	"url":        "url",
	"status":     "status",
}

type ProjectRepository struct {
	DB *sql.DB
}

func (r ProjectRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

const projectColumns = `id, COALESCE(name,''), COALESCE(url,''), COALESCE(user_id,''), COALESCE(status,''), created_at`

func scanProject(s interface{ Scan(...any) error }) (models.Project, error) {
	var p models.Project
	err := s.Scan(&p.ID, &p.Name, &p.URL, &p.UserID, &p.Status, &p.CreatedAt)
	return p, err
}

// List returns one page of projects. Search matches name or url, case-insensitive.
func (r ProjectRepository) List(ctx context.Context, req domain.PageRequest) ([]models.Project, int, error) {
	where := ""
	args := []any{}
	if req.Search != "" {
		like := intdb.LikePattern(req.Search)
		where = " WHERE (LOWER(name) LIKE ? OR LOWER(url) LIKE ?)"
		args = append(args, like, like)
	}

	var total int
	if err := r.db().QueryRowContext(ctx, `SELECT COUNT(*) FROM projects`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := fmt.Sprintf(`SELECT %s FROM projects%s ORDER BY %s LIMIT ? OFFSET ?`,
		projectColumns, where, intdb.OrderBy(req.SortField, req.SortOrder == domain.SortAsc, projectSortColumns))
	rows, err := r.db().QueryContext(ctx, query, append(args, req.Limit, req.Offset())...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out := []models.Project{}
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, p)
	}
	return out, total, rows.Err()
}

func (r ProjectRepository) GetByID(ctx context.Context, id string) (models.Project, error) {
	row := r.db().QueryRowContext(ctx, `SELECT `+projectColumns+` FROM projects WHERE id = ?`, id)
	p, err := scanProject(row)
	if errors.Is(err, sql.ErrNoRows) {
		return p, domain.NotFoundError{Resource: "project", Err: err}
	}
	return p, err
}

// ProjectDetailsByIDs resolves a page's project ids with a single IN query.
func (r ProjectRepository) ProjectDetailsByIDs(ctx context.Context, ids []string) (map[string]enrich.ProjectDetails, error) {
	out := make(map[string]enrich.ProjectDetails, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	marks, args := intdb.InClause(ids)
	rows, err := r.db().QueryContext(ctx,
		`SELECT id, COALESCE(name,''), COALESCE(url,''), COALESCE(user_id,'') FROM projects WHERE id IN (`+marks+`)`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var d enrich.ProjectDetails
		if err := rows.Scan(&d.ID, &d.Name, &d.URL, &d.UserID); err != nil {
			return nil, err
		}
		out[d.ID] = d
	}
	return out, rows.Err()
}

func (r ProjectRepository) Count(ctx context.Context) (int, error) {
	var n int
	err := r.db().QueryRowContext(ctx, `SELECT COUNT(*) FROM projects`).Scan(&n)
	return n, err
}
