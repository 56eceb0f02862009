package enrich

import (
	"context"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const defaultConcurrency = 8

// Refs are the id sets collected from one page.
// With ProjectOwners set, the owners of ProjectIDs are resolved as users too.
type Refs struct {
	UserIDs       []string
	ProjectIDs    []string
	BlogIDs       []string
	ProjectOwners bool
}

// Resolver turns Refs into Lookups. Lookup failures never fail the request:
// the id is recorded with a placeholder entity instead.
type Resolver struct {
	Users       UserSource
	Projects    ProjectSource
	Blogs       BlogSource
	Concurrency int
	Logger      *zap.Logger
}

func (r Resolver) logger() *zap.Logger {
	if r.Logger != nil {
		return r.Logger
	}
	return zap.NewNop()
}

// Resolve resolves every field type concurrently. When owners are requested, projects
// resolve first and users resolve over the union of direct and owner ids.
func (r Resolver) Resolve(ctx context.Context, refs Refs) Lookups {
	var (
		out Lookups
		g   errgroup.Group
	)

	g.Go(func() error {
		out.Projects = r.ResolveProjects(ctx, refs.ProjectIDs)
		return nil
	})
	g.Go(func() error {
		out.Blogs = r.ResolveBlogs(ctx, refs.BlogIDs)
		return nil
	})

	if !refs.ProjectOwners {
		g.Go(func() error {
			out.Users = r.ResolveUsers(ctx, refs.UserIDs)
			return nil
		})
		_ = g.Wait()
		return out
	}

	_ = g.Wait()
	userIDs := append([]string{}, refs.UserIDs...)
	for _, pid := range refs.ProjectIDs {
		if p, ok := out.Projects[pid]; ok && p.UserID != "" {
			userIDs = append(userIDs, p.UserID)
		}
	}
	out.Users = r.ResolveUsers(ctx, CollectIDs(userIDs, func(s string) string { return s }))
	return out
}

// ResolveUsers fans out one lookup per id, at most Concurrency at a time.
func (r Resolver) ResolveUsers(ctx context.Context, ids []string) map[string]UserDetails {
	out := make(map[string]UserDetails, len(ids))
	if len(ids) == 0 {
		return out
	}
	if r.Users == nil {
		for _, id := range ids {
			out[id] = UnknownUser(id)
		}
		return out
	}

	limit := r.Concurrency
	if limit < 1 {
		limit = defaultConcurrency
	}

	results := make([]UserDetails, len(ids))
	var g errgroup.Group
	g.SetLimit(limit)
	for i, id := range ids {
		g.Go(func() error {
			u, err := r.Users.UserDetails(ctx, id)
			if err != nil {
				r.logger().Warn("user lookup failed", zap.String("user_id", id), zap.Error(err))
				u = UnknownUser(id)
			}
			if u.ID == "" {
				u.ID = id
			}
			results[i] = u
			return nil
		})
	}
	_ = g.Wait()

	for i, id := range ids {
		out[id] = results[i]
	}
	return out
}

// ResolveProjects runs one batched lookup. Missing ids and batch failures get placeholders.
func (r Resolver) ResolveProjects(ctx context.Context, ids []string) map[string]ProjectDetails {
	out := make(map[string]ProjectDetails, len(ids))
	if len(ids) == 0 {
		return out
	}
	var found map[string]ProjectDetails
	if r.Projects != nil {
		var err error
		found, err = r.Projects.ProjectDetailsByIDs(ctx, ids)
		if err != nil {
			r.logger().Warn("project batch lookup failed", zap.Int("ids", len(ids)), zap.Error(err))
		}
	}
	for _, id := range ids {
		if p, ok := found[id]; ok {
			out[id] = p
			continue
		}
		out[id] = UnknownProject(id)
	}
	return out
}

func (r Resolver) ResolveBlogs(ctx context.Context, ids []string) map[string]BlogDetails {
	out := make(map[string]BlogDetails, len(ids))
	if len(ids) == 0 {
		return out
	}
	var found map[string]BlogDetails
	if r.Blogs != nil {
		var err error
		found, err = r.Blogs.BlogDetailsByIDs(ctx, ids)
		if err != nil {
			r.logger().Warn("blog batch lookup failed", zap.Int("ids", len(ids)), zap.Error(err))
		}
	}
	for _, id := range ids {
		if b, ok := found[id]; ok {
			out[id] = b
			continue
		}
		out[id] = UnknownBlog(id)
	}
	return out
}
