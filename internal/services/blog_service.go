package services

import (
	"context"
	"time"

	"admindash/internal/cache"
	"admindash/internal/domain"
	"admindash/internal/domain/models"
	"admindash/internal/enrich"
	"admindash/internal/repositories"
	"admindash/internal/utils"

	"go.uber.org/zap"
)

// BlogCountTTL bounds how stale a cached blog total can be between writes.
const BlogCountTTL = 60 * time.Second

// BlogListOptions are the paging limits of the blog list.
var BlogListOptions = domain.ListOptions{
	DefaultLimit: 20,
	MaxLimit:     50,
	SortFields:   []string{"created_at", "updated_at", "title", "status"},
}

type EnrichedBlog struct {
	models.Blog
	ProjectDetails *enrich.ProjectDetails `json:"project_details"`
	UserDetails    *enrich.UserDetails    `json:"user_details"`
}

type BlogService struct {
	Blogs     BlogStore
	Resolver  enrich.Resolver
	Cache     cache.Store
	Now       func() time.Time
	RequestID string
}

func (s BlogService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now().UTC()
}

func (s BlogService) cache() cache.Store {
	if s.Cache != nil {
		return s.Cache
	}
	return cache.Shared()
}

func (s BlogService) count(ctx context.Context, q repositories.BlogQuery) (int, error) {
	key := cache.BlogCountKey(q.Page.Search, q.ProjectID, q.IncludeDeleted)
	if n, ok := cache.GetAs[int](s.cache(), key); ok {
		return n, nil
	}
	n, err := s.Blogs.Count(ctx, q)
	if err != nil {
		return 0, err
	}
	s.cache().Set(key, n, BlogCountTTL)
	return n, nil
}

// List fetches one page of blogs and attaches project_details and user_details.
// user_details falls back to the project owner when the blog has no user_id.
func (s BlogService) List(ctx context.Context, q repositories.BlogQuery) (ListResult[EnrichedBlog], error) {
	blogs, err := s.Blogs.List(ctx, q)
	if err != nil {
		return ListResult[EnrichedBlog]{}, storeErr("blog store", err)
	}
	total, err := s.count(ctx, q)
	if err != nil {
		return ListResult[EnrichedBlog]{}, storeErr("blog store", err)
	}

	lk := s.Resolver.Resolve(ctx, enrich.Refs{
		UserIDs:       enrich.CollectIDs(blogs, func(b models.Blog) string { return b.UserID }),
		ProjectIDs:    enrich.CollectIDs(blogs, func(b models.Blog) string { return b.ProjectID }),
		ProjectOwners: true,
	})

	out := make([]EnrichedBlog, 0, len(blogs))
	for _, b := range blogs {
		out = append(out, EnrichedBlog{
			Blog:           b,
			ProjectDetails: lk.Project(b.ProjectID),
			UserDetails:    lk.UserFor(b.UserID, b.ProjectID),
		})
	}
	return newListResult(out, q.Page, total), nil
}

func (s BlogService) Get(ctx context.Context, id string) (EnrichedBlog, error) {
	b, err := s.Blogs.GetByID(ctx, id)
	if err != nil {
		return EnrichedBlog{}, storeErr("blog store", err)
	}
	lk := s.Resolver.Resolve(ctx, enrich.Refs{
		UserIDs:       enrich.CollectIDs([]models.Blog{b}, func(b models.Blog) string { return b.UserID }),
		ProjectIDs:    enrich.CollectIDs([]models.Blog{b}, func(b models.Blog) string { return b.ProjectID }),
		ProjectOwners: true,
	})
	return EnrichedBlog{
		Blog:           b,
		ProjectDetails: lk.Project(b.ProjectID),
		UserDetails:    lk.UserFor(b.UserID, b.ProjectID),
	}, nil
}

// Delete soft-deletes a blog. Deleting an inactive blog is an InvalidStateError and
// leaves deleted_at untouched.
func (s BlogService) Delete(ctx context.Context, id, actor string) (models.Blog, error) {
	if _, err := repositories.ParseBlogID(id); err != nil {
		return models.Blog{}, err
	}
	current, err := s.Blogs.GetByID(ctx, id)
	if err != nil {
		return models.Blog{}, storeErr("blog store", err)
	}
	if !current.IsActive {
		return models.Blog{}, domain.InvalidStateError{Resource: "blog", Msg: "is already deleted"}
	}

	ok, err := s.Blogs.SoftDelete(ctx, id, actor, s.now())
	if err != nil {
		return models.Blog{}, storeErr("blog store", err)
	}
	if !ok {
		// lost a race with another delete
		return models.Blog{}, domain.InvalidStateError{Resource: "blog", Msg: "is already deleted"}
	}
	s.invalidate("delete", id)
	return s.refetch(ctx, id)
}

// Restore reactivates a soft-deleted blog. Restoring an active blog is an InvalidStateError.
func (s BlogService) Restore(ctx context.Context, id string) (models.Blog, error) {
	if _, err := repositories.ParseBlogID(id); err != nil {
		return models.Blog{}, err
	}
	current, err := s.Blogs.GetByID(ctx, id)
	if err != nil {
		return models.Blog{}, storeErr("blog store", err)
	}
	if current.IsActive {
		return models.Blog{}, domain.InvalidStateError{Resource: "blog", Msg: "is already active"}
	}

	ok, err := s.Blogs.Restore(ctx, id, s.now())
	if err != nil {
		return models.Blog{}, storeErr("blog store", err)
	}
	if !ok {
		return models.Blog{}, domain.InvalidStateError{Resource: "blog", Msg: "is already active"}
	}
	s.invalidate("restore", id)
	return s.refetch(ctx, id)
}

func (s BlogService) invalidate(action, id string) {
	n := s.cache().InvalidatePattern(cache.BlogsPrefix)
	utils.LogEvent(s.RequestID, "blogs", action, "blog updated, cache invalidated",
		zap.String("blog_id", id), zap.Int("evicted", n))
}

func (s BlogService) refetch(ctx context.Context, id string) (models.Blog, error) {
	b, err := s.Blogs.GetByID(ctx, id)
	return b, storeErr("blog store", err)
}
