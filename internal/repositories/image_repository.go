package repositories

import (
	"context"
	"database/sql"
	"fmt"

	intconfig "admindash/internal/config"
	intdb "admindash/internal/db"
	"admindash/internal/domain"
	"admindash/internal/domain/models"
)

// ScanBatchSize is the page size used when every image row has to be read.
const ScanBatchSize = 1000

var imageSortColumns = map[string]string{
	"created_at": "created_at",
	"alt_text":   "alt_text",
}

type ImageRepository struct {
	DB *sql.DB
}

func (r ImageRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

const imageColumns = `id, COALESCE(project_id,''), COALESCE(user_id,''), COALESCE(blog_id,''), COALESCE(image_url,''), COALESCE(alt_text,''), created_at`

func scanImages(rows *sql.Rows) ([]models.ProjectImage, error) {
	defer rows.Close()
	out := []models.ProjectImage{}
	for rows.Next() {
		var im models.ProjectImage
		if err := rows.Scan(&im.ID, &im.ProjectID, &im.UserID, &im.BlogID, &im.ImageURL, &im.AltText, &im.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, im)
	}
	return out, rows.Err()
}

func imageWhere(projectID string) (string, []any) {
	if projectID == "" {
		return "", []any{}
	}
	return " WHERE project_id = ?", []any{projectID}
}

// List pages at the store level. Search is not applied here; see ScanAll.
func (r ImageRepository) List(ctx context.Context, req domain.PageRequest, projectID string) ([]models.ProjectImage, int, error) {
	where, args := imageWhere(projectID)

	var total int
	if err := r.db().QueryRowContext(ctx, `SELECT COUNT(*) FROM project_images`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := fmt.Sprintf(`SELECT %s FROM project_images%s ORDER BY %s LIMIT ? OFFSET ?`,
		imageColumns, where, intdb.OrderBy(req.SortField, req.SortOrder == domain.SortAsc, imageSortColumns))
	rows, err := r.db().QueryContext(ctx, query, append(args, req.Limit, req.Offset())...)
	if err != nil {
		return nil, 0, err
	}
	out, err := scanImages(rows)
	return out, total, err
}

// ScanAll reads every matching row in batches of ScanBatchSize, in list order.
func (r ImageRepository) ScanAll(ctx context.Context, req domain.PageRequest, projectID string) ([]models.ProjectImage, error) {
	where, args := imageWhere(projectID)
	query := fmt.Sprintf(`SELECT %s FROM project_images%s ORDER BY %s, id DESC LIMIT ? OFFSET ?`,
		imageColumns, where, intdb.OrderBy(req.SortField, req.SortOrder == domain.SortAsc, imageSortColumns))

	all := []models.ProjectImage{}
	for offset := 0; ; offset += ScanBatchSize {
		rows, err := r.db().QueryContext(ctx, query, append(append([]any{}, args...), ScanBatchSize, offset)...)
		if err != nil {
			return nil, err
		}
		batch, err := scanImages(rows)
		if err != nil {
			return nil, err
		}
		all = append(all, batch...)
		if len(batch) < ScanBatchSize {
			return all, nil
		}
	}
}

func (r ImageRepository) CountByProject(ctx context.Context, projectID string) (int, error) {
	var n int
	err := r.db().QueryRowContext(ctx, `SELECT COUNT(*) FROM project_images WHERE project_id = ?`, projectID).Scan(&n)
	return n, err
}

func (r ImageRepository) Count(ctx context.Context) (int, error) {
	var n int
	err := r.db().QueryRowContext(ctx, `SELECT COUNT(*) FROM project_images`).Scan(&n)
	return n, err
}
