package services

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"admindash/internal/domain"
	"admindash/internal/domain/models"
	"admindash/internal/enrich"
	"admindash/internal/repositories"
)

type fakeBlogs struct {
	mu      sync.Mutex
	blogs   map[string]models.Blog
	order   []string
	counts  int
	listErr error
}

func newFakeBlogs(blogs ...models.Blog) *fakeBlogs {
	f := &fakeBlogs{blogs: map[string]models.Blog{}}
	for _, b := range blogs {
		f.blogs[b.ID] = b
		f.order = append(f.order, b.ID)
	}
	return f
}

func (f *fakeBlogs) List(_ context.Context, q repositories.BlogQuery) ([]models.Blog, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []models.Blog{}
	for _, id := range f.order {
		b := f.blogs[id]
		if !q.IncludeDeleted && !b.IsActive {
			continue
		}
		out = append(out, b)
	}
	return domain.Paginate(out, q.Page.Page, q.Page.Limit), nil
}

func (f *fakeBlogs) Count(_ context.Context, q repositories.BlogQuery) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.counts++
	n := 0
	for _, b := range f.blogs {
		if q.IncludeDeleted || b.IsActive {
			n++
		}
	}
	return n, nil
}

func (f *fakeBlogs) GetByID(_ context.Context, id string) (models.Blog, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, ok := f.blogs[id]
	if !ok {
		return models.Blog{}, domain.NotFoundError{Resource: "blog"}
	}
	return b, nil
}

func (f *fakeBlogs) SoftDelete(_ context.Context, id, actor string, at time.Time) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, ok := f.blogs[id]
	if !ok || !b.IsActive {
		return false, nil
	}
	b.IsActive = false
	b.DeletedAt = &at
	b.DeletedBy = &actor
	f.blogs[id] = b
	return true, nil
}

func (f *fakeBlogs) Restore(_ context.Context, id string, at time.Time) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, ok := f.blogs[id]
	if !ok || b.IsActive {
		return false, nil
	}
	b.IsActive = true
	b.DeletedAt = nil
	b.DeletedBy = nil
	b.UpdatedAt = at
	f.blogs[id] = b
	return true, nil
}

type fakeProjects map[string]enrich.ProjectDetails

func (f fakeProjects) ProjectDetailsByIDs(_ context.Context, ids []string) (map[string]enrich.ProjectDetails, error) {
	out := map[string]enrich.ProjectDetails{}
	for _, id := range ids {
		if p, ok := f[id]; ok {
			out[id] = p
		}
	}
	return out, nil
}

type fakeUsers map[string]enrich.UserDetails

func (f fakeUsers) UserDetails(_ context.Context, id string) (enrich.UserDetails, error) {
	u, ok := f[id]
	if !ok {
		return enrich.UserDetails{}, errors.New("user not found")
	}
	return u, nil
}

type fakeBlogDetails map[string]enrich.BlogDetails

func (f fakeBlogDetails) BlogDetailsByIDs(_ context.Context, ids []string) (map[string]enrich.BlogDetails, error) {
	out := map[string]enrich.BlogDetails{}
	for _, id := range ids {
		if b, ok := f[id]; ok {
			out[id] = b
		}
	}
	return out, nil
}

type fakeImages struct {
	rows  []models.ProjectImage
	scans int
	lists int
}

func (f *fakeImages) List(_ context.Context, req domain.PageRequest, _ string) ([]models.ProjectImage, int, error) {
	f.lists++
	return domain.Paginate(f.rows, req.Page, req.Limit), len(f.rows), nil
}

func (f *fakeImages) ScanAll(context.Context, domain.PageRequest, string) ([]models.ProjectImage, error) {
	f.scans++
	return append([]models.ProjectImage{}, f.rows...), nil
}

func (f *fakeImages) CountByProject(_ context.Context, projectID string) (int, error) {
	n := 0
	for _, r := range f.rows {
		if r.ProjectID == projectID {
			n++
		}
	}
	return n, nil
}

func (f *fakeImages) Count(context.Context) (int, error) { return len(f.rows), nil }

type fakeDirectory struct {
	mu    sync.Mutex
	users []models.DirectoryUser
	calls int
}

func (f *fakeDirectory) ListUsers(_ context.Context, page, perPage int) ([]models.DirectoryUser, error) {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()
	return domain.Paginate(f.users, page, perPage), nil
}

func (f *fakeDirectory) GetUser(_ context.Context, id string) (models.DirectoryUser, error) {
	for _, u := range f.users {
		if u.ID == id {
			return u, nil
		}
	}
	return models.DirectoryUser{}, domain.NotFoundError{Resource: "user"}
}

type fakeAccounts struct {
	users map[string]models.AuthorizedUser
	err   error
}

func (f fakeAccounts) GetByEmail(_ context.Context, email string) (models.AuthorizedUser, error) {
	if f.err != nil {
		return models.AuthorizedUser{}, f.err
	}
	u, ok := f.users[strings.ToLower(email)]
	if !ok {
		return models.AuthorizedUser{}, domain.NotFoundError{Resource: "authorized user"}
	}
	return u, nil
}

func (f fakeAccounts) Count(context.Context) (int, error) { return len(f.users), nil }

type fakeTasks struct {
	tasks   []models.CrawlTask
	created []models.CrawlTaskInput
}

func (f *fakeTasks) ListTasks(_ context.Context, req domain.PageRequest, _ string) ([]models.CrawlTask, int, error) {
	return domain.Paginate(f.tasks, req.Page, req.Limit), len(f.tasks), nil
}

func (f *fakeTasks) GetTask(_ context.Context, id string) (models.CrawlTask, error) {
	for _, t := range f.tasks {
		if t.ID == id {
			return t, nil
		}
	}
	return models.CrawlTask{}, domain.NotFoundError{Resource: "crawl task"}
}

func (f *fakeTasks) CreateTask(_ context.Context, in models.CrawlTaskInput) (models.CrawlTask, error) {
	f.created = append(f.created, in)
	return models.CrawlTask{ID: "t-new", ProjectID: in.ProjectID, URL: in.URL, Status: "queued"}, nil
}

type fakeUsage struct {
	since time.Time
}

func (f *fakeUsage) DailyTotals(_ context.Context, since time.Time) ([]models.DailyUsage, error) {
	f.since = since
	return []models.DailyUsage{{Date: "2025-06-01", Requests: 3, Tokens: 300}, {Date: "2025-06-02", Requests: 2, Tokens: 50}}, nil
}

func (f *fakeUsage) TotalsByType(context.Context, time.Time) ([]models.UsageByType, error) {
	return []models.UsageByType{{Type: "chat", Requests: 5, Tokens: 350}}, nil
}

func (f *fakeUsage) ForProject(context.Context, string) (models.UsageTotals, error) {
	return models.UsageTotals{Requests: 5, Tokens: 350}, nil
}

type fakeCounter int

func (f fakeCounter) Count(context.Context) (int, error) { return int(f), nil }

type fakeProjectStore struct {
	fakeCounter
	projects []models.Project
}

func (f fakeProjectStore) List(_ context.Context, req domain.PageRequest) ([]models.Project, int, error) {
	return domain.Paginate(f.projects, req.Page, req.Limit), len(f.projects), nil
}

func (f fakeProjectStore) GetByID(_ context.Context, id string) (models.Project, error) {
	for _, p := range f.projects {
		if p.ID == id {
			return p, nil
		}
	}
	return models.Project{}, domain.NotFoundError{Resource: "project"}
}

type fakeSubmissions struct{ fakeCounter }

func (fakeSubmissions) List(context.Context, domain.PageRequest) ([]models.FreeAnalysisSubmission, int, error) {
	return []models.FreeAnalysisSubmission{}, 0, nil
}
