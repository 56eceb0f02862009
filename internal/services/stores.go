package services

import (
	"context"
	"time"

	"admindash/internal/domain"
	"admindash/internal/domain/models"
	"admindash/internal/repositories"
)

// The interfaces below are the store surfaces services depend on. The repositories
// package satisfies them; tests use in-package fakes.

type BlogStore interface {
	List(ctx context.Context, q repositories.BlogQuery) ([]models.Blog, error)
	Count(ctx context.Context, q repositories.BlogQuery) (int, error)
	GetByID(ctx context.Context, id string) (models.Blog, error)
	SoftDelete(ctx context.Context, id, actor string, at time.Time) (bool, error)
	Restore(ctx context.Context, id string, at time.Time) (bool, error)
}

type ProjectStore interface {
	List(ctx context.Context, req domain.PageRequest) ([]models.Project, int, error)
	GetByID(ctx context.Context, id string) (models.Project, error)
	Count(ctx context.Context) (int, error)
}

type ImageStore interface {
	List(ctx context.Context, req domain.PageRequest, projectID string) ([]models.ProjectImage, int, error)
	ScanAll(ctx context.Context, req domain.PageRequest, projectID string) ([]models.ProjectImage, error)
	CountByProject(ctx context.Context, projectID string) (int, error)
	Count(ctx context.Context) (int, error)
}

type LogStore interface {
	List(ctx context.Context, req domain.PageRequest, level string) ([]models.SystemLog, int, error)
	CountByLevel(ctx context.Context) ([]models.LevelCount, error)
}

type UsageStore interface {
	DailyTotals(ctx context.Context, since time.Time) ([]models.DailyUsage, error)
	TotalsByType(ctx context.Context, since time.Time) ([]models.UsageByType, error)
	ForProject(ctx context.Context, projectID string) (models.UsageTotals, error)
}

type SubmissionStore interface {
	List(ctx context.Context, req domain.PageRequest) ([]models.FreeAnalysisSubmission, int, error)
	Count(ctx context.Context) (int, error)
}

type AuthorizedUserStore interface {
	GetByEmail(ctx context.Context, email string) (models.AuthorizedUser, error)
	Count(ctx context.Context) (int, error)
}

type CrawlStore interface {
	ListTasks(ctx context.Context, req domain.PageRequest, status string) ([]models.CrawlTask, int, error)
	GetTask(ctx context.Context, id string) (models.CrawlTask, error)
	CreateTask(ctx context.Context, in models.CrawlTaskInput) (models.CrawlTask, error)
}

type UserDirectory interface {
	ListUsers(ctx context.Context, page, perPage int) ([]models.DirectoryUser, error)
	GetUser(ctx context.Context, id string) (models.DirectoryUser, error)
}

// ListResult is one enriched page plus its pagination.
type ListResult[T any] struct {
	Items      []T
	Pagination domain.Pagination
	Meta       domain.ListMeta
}

func newListResult[T any](items []T, req domain.PageRequest, total int) ListResult[T] {
	if items == nil {
		items = []T{}
	}
	return ListResult[T]{
		Items:      items,
		Pagination: domain.NewPagination(req.Page, req.Limit, total),
		Meta:       req.Meta(),
	}
}

// storeErr marks primary-fetch failures as upstream so handlers answer with a generic 500.
// Typed domain errors pass through unchanged.
func storeErr(service string, err error) error {
	if err == nil {
		return nil
	}
	switch {
	case domain.IsNotFound(err), domain.IsValidation(err), domain.IsInvalidState(err),
		domain.IsConflict(err), domain.IsUpstream(err):
		return err
	}
	if _, ok := domain.AsAuth(err); ok {
		return err
	}
	return domain.UpstreamError{Service: service, Err: err}
}
