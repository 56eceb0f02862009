package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	intconfig "admindash/internal/config"
	intdb "admindash/internal/db"
	"admindash/internal/domain"
	"admindash/internal/domain/models"
)

type AuthorizedUserRepository struct {
	DB *sql.DB
}

func (r AuthorizedUserRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

func (r AuthorizedUserRepository) GetByEmail(ctx context.Context, email string) (models.AuthorizedUser, error) {
	var u models.AuthorizedUser
	err := r.db().QueryRowContext(ctx, `
		SELECT id, email, COALESCE(name,''), COALESCE(role,''), password_hash, created_at
		FROM authorized_users
		WHERE LOWER(email) = ?
		LIMIT 1
	`, strings.ToLower(strings.TrimSpace(email))).Scan(&u.ID, &u.Email, &u.Name, &u.Role, &u.PasswordHash, &u.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return u, domain.NotFoundError{Resource: "authorized user", Err: err}
	}
	return u, err
}

func (r AuthorizedUserRepository) Count(ctx context.Context) (int, error) {
	var n int
	err := r.db().QueryRowContext(ctx, `SELECT COUNT(*) FROM authorized_users`).Scan(&n)
	return n, err
}

var submissionSortColumns = map[string]string{
	"created_at": "created_at",
	"email":      "email",
	"status":     "status",
}

type SubmissionRepository struct {
	DB *sql.DB
}

func (r SubmissionRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

func (r SubmissionRepository) List(ctx context.Context, req domain.PageRequest) ([]models.FreeAnalysisSubmission, int, error) {
	where := ""
	args := []any{}
	if req.Search != "" {
		like := intdb.LikePattern(req.Search)
		where = " WHERE (LOWER(email) LIKE ? OR LOWER(url) LIKE ?)"
		args = append(args, like, like)
	}

	var total int
	if err := r.db().QueryRowContext(ctx, `SELECT COUNT(*) FROM free_analysis_submissions`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := fmt.Sprintf(`SELECT id, COALESCE(email,''), COALESCE(url,''), COALESCE(status,''), created_at
		FROM free_analysis_submissions%s ORDER BY %s LIMIT ? OFFSET ?`,
		where, intdb.OrderBy(req.SortField, req.SortOrder == domain.SortAsc, submissionSortColumns))
	rows, err := r.db().QueryContext(ctx, query, append(args, req.Limit, req.Offset())...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out := []models.FreeAnalysisSubmission{}
	for rows.Next() {
		var s models.FreeAnalysisSubmission
		if err := rows.Scan(&s.ID, &s.Email, &s.URL, &s.Status, &s.CreatedAt); err != nil {
			return nil, 0, err
		}
		out = append(out, s)
	}
	return out, total, rows.Err()
}

func (r SubmissionRepository) Count(ctx context.Context) (int, error) {
	var n int
	err := r.db().QueryRowContext(ctx, `SELECT COUNT(*) FROM free_analysis_submissions`).Scan(&n)
	return n, err
}
