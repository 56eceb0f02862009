package services

import (
	"context"
	"net/url"
	"strings"

	"admindash/internal/domain"
	"admindash/internal/domain/models"
	"admindash/internal/enrich"
	"admindash/internal/utils"

	"go.uber.org/zap"
)

var CrawlListOptions = domain.ListOptions{
	DefaultLimit: 20,
	MaxLimit:     50,
	SortFields:   []string{"created_at", "status"},
}

// MaxCrawlPages caps max_pages on new tasks.
const MaxCrawlPages = 500

type EnrichedCrawlTask struct {
	models.CrawlTask
	ProjectDetails *enrich.ProjectDetails `json:"project_details"`
	UserDetails    *enrich.UserDetails    `json:"user_details"`
}

type CrawlService struct {
	Tasks     CrawlStore
	Resolver  enrich.Resolver
	RequestID string
}

func (s CrawlService) List(ctx context.Context, req domain.PageRequest, status string) (ListResult[EnrichedCrawlTask], error) {
	tasks, total, err := s.Tasks.ListTasks(ctx, req, strings.TrimSpace(status))
	if err != nil {
		return ListResult[EnrichedCrawlTask]{}, storeErr("scraper", err)
	}
	return newListResult(s.join(ctx, tasks), req, total), nil
}

func (s CrawlService) Get(ctx context.Context, id string) (EnrichedCrawlTask, error) {
	if strings.TrimSpace(id) == "" {
		return EnrichedCrawlTask{}, domain.ValidationError{Field: "id", Msg: "is required"}
	}
	t, err := s.Tasks.GetTask(ctx, id)
	if err != nil {
		return EnrichedCrawlTask{}, storeErr("scraper", err)
	}
	return s.join(ctx, []models.CrawlTask{t})[0], nil
}

func (s CrawlService) Create(ctx context.Context, in models.CrawlTaskInput) (models.CrawlTask, error) {
	in.ProjectID = strings.TrimSpace(in.ProjectID)
	in.URL = strings.TrimSpace(in.URL)
	if in.ProjectID == "" {
		return models.CrawlTask{}, domain.ValidationError{Field: "project_id", Msg: "is required"}
	}
	u, err := url.ParseRequestURI(in.URL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return models.CrawlTask{}, domain.ValidationError{Field: "url", Msg: "must be an absolute http(s) url", Err: err}
	}
	if in.MaxPages < 0 || in.MaxPages > MaxCrawlPages {
		return models.CrawlTask{}, domain.ValidationError{Field: "max_pages", Msg: "must be between 0 and 500"}
	}

	t, err := s.Tasks.CreateTask(ctx, in)
	if err != nil {
		return models.CrawlTask{}, storeErr("scraper", err)
	}
	utils.LogEvent(s.RequestID, "crawl", "create", "crawl task queued",
		zap.String("task_id", t.ID), zap.String("project_id", in.ProjectID))
	return t, nil
}

// join attaches the project and, through it, the owning user.
func (s CrawlService) join(ctx context.Context, tasks []models.CrawlTask) []EnrichedCrawlTask {
	lk := s.Resolver.Resolve(ctx, enrich.Refs{
		ProjectIDs:    enrich.CollectIDs(tasks, func(t models.CrawlTask) string { return t.ProjectID }),
		ProjectOwners: true,
	})
	out := make([]EnrichedCrawlTask, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, EnrichedCrawlTask{
			CrawlTask:      t,
			ProjectDetails: lk.Project(t.ProjectID),
			UserDetails:    lk.UserFor("", t.ProjectID),
		})
	}
	return out
}
