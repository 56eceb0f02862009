package services

import (
	"context"
	"slices"
	"strings"

	"admindash/internal/domain"
	"admindash/internal/domain/models"
	"admindash/internal/enrich"
	"admindash/internal/repositories"
)

var LogListOptions = domain.ListOptions{
	DefaultLimit: 50,
	MaxLimit:     100,
	SortFields:   []string{"created_at", "level", "source"},
}

type EnrichedLog struct {
	models.SystemLog
	UserDetails    *enrich.UserDetails    `json:"user_details"`
	ProjectDetails *enrich.ProjectDetails `json:"project_details"`
}

type LogService struct {
	Logs     LogStore
	Resolver enrich.Resolver
}

func (s LogService) List(ctx context.Context, req domain.PageRequest, level string) (ListResult[EnrichedLog], error) {
	level = strings.ToLower(strings.TrimSpace(level))
	if level != "" && !slices.Contains(repositories.LogLevels, level) {
		return ListResult[EnrichedLog]{}, domain.ValidationError{
			Field: "level",
			Msg:   "must be one of " + strings.Join(repositories.LogLevels, ", "),
		}
	}

	logs, total, err := s.Logs.List(ctx, req, level)
	if err != nil {
		return ListResult[EnrichedLog]{}, storeErr("log store", err)
	}

	lk := s.Resolver.Resolve(ctx, enrich.Refs{
		UserIDs:    enrich.CollectIDs(logs, func(l models.SystemLog) string { return l.UserID }),
		ProjectIDs: enrich.CollectIDs(logs, func(l models.SystemLog) string { return l.ProjectID }),
	})

	out := make([]EnrichedLog, 0, len(logs))
	for _, l := range logs {
		out = append(out, EnrichedLog{
			SystemLog:      l,
			UserDetails:    lk.User(l.UserID),
			ProjectDetails: lk.Project(l.ProjectID),
		})
	}
	return newListResult(out, req, total), nil
}

func (s LogService) Summary(ctx context.Context) ([]models.LevelCount, error) {
	counts, err := s.Logs.CountByLevel(ctx)
	return counts, storeErr("log store", err)
}
