package services

import (
	"context"

	"admindash/internal/domain"
	"admindash/internal/domain/models"
	"admindash/internal/enrich"

	"golang.org/x/sync/errgroup"
)

var ProjectListOptions = domain.ListOptions{
	DefaultLimit: 20,
	MaxLimit:     50,
	SortFields:   []string{"created_at", "name", "url", "status"},
}

type EnrichedProject struct {
	models.Project
	UserDetails *enrich.UserDetails `json:"user_details"`
}

// ProjectDetail is the project page: the project, its owner, image count and usage totals.
type ProjectDetail struct {
	EnrichedProject
	ImageCount int                `json:"image_count"`
	Usage      models.UsageTotals `json:"usage"`
}

type ProjectService struct {
	Projects ProjectStore
	Images   ImageStore
	Usage    UsageStore
	Resolver enrich.Resolver
}

func (s ProjectService) List(ctx context.Context, req domain.PageRequest) (ListResult[EnrichedProject], error) {
	projects, total, err := s.Projects.List(ctx, req)
	if err != nil {
		return ListResult[EnrichedProject]{}, storeErr("project store", err)
	}

	users := s.Resolver.ResolveUsers(ctx, enrich.CollectIDs(projects, func(p models.Project) string { return p.UserID }))
	lk := enrich.Lookups{Users: users}

	out := make([]EnrichedProject, 0, len(projects))
	for _, p := range projects {
		out = append(out, EnrichedProject{Project: p, UserDetails: lk.User(p.UserID)})
	}
	return newListResult(out, req, total), nil
}

// Detail loads the project then fans out for owner, image count and usage.
func (s ProjectService) Detail(ctx context.Context, id string) (ProjectDetail, error) {
	p, err := s.Projects.GetByID(ctx, id)
	if err != nil {
		return ProjectDetail{}, storeErr("project store", err)
	}

	out := ProjectDetail{EnrichedProject: EnrichedProject{Project: p}}
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		users := s.Resolver.ResolveUsers(gctx, enrich.CollectIDs([]models.Project{p}, func(p models.Project) string { return p.UserID }))
		out.UserDetails = enrich.Lookups{Users: users}.User(p.UserID)
		return nil
	})
	g.Go(func() error {
		n, err := s.Images.CountByProject(gctx, p.ID)
		out.ImageCount = n
		return err
	})
	g.Go(func() error {
		u, err := s.Usage.ForProject(gctx, p.ID)
		out.Usage = u
		return err
	})
	if err := g.Wait(); err != nil {
		return ProjectDetail{}, storeErr("project store", err)
	}
	return out, nil
}
