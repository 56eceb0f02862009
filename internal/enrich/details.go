// Package enrich resolves foreign ids found on a page of records and attaches the
// resolved entities back onto them.
package enrich

import "context"

type UserDetails struct {
	ID     string  `json:"id"`
	Name   string  `json:"name"`
	Email  string  `json:"email"`
	Avatar *string `json:"avatar"`
}

type ProjectDetails struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	URL    string `json:"url"`
	UserID string `json:"user_id"`
}

type BlogDetails struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Slug  string `json:"slug"`
}

func UnknownUser(id string) UserDetails {
	return UserDetails{ID: id, Name: "Unknown User"}
}

func UnknownProject(id string) ProjectDetails {
	return ProjectDetails{ID: id, Name: "Unknown Project"}
}

func UnknownBlog(id string) BlogDetails {
	return BlogDetails{ID: id, Title: "Unknown Blog"}
}

// UserSource looks users up one id at a time; the identity provider has no batch get.
type UserSource interface {
	UserDetails(ctx context.Context, id string) (UserDetails, error)
}

type ProjectSource interface {
	ProjectDetailsByIDs(ctx context.Context, ids []string) (map[string]ProjectDetails, error)
}

type BlogSource interface {
	BlogDetailsByIDs(ctx context.Context, ids []string) (map[string]BlogDetails, error)
}

// CollectIDs returns the distinct non-empty values of key across records, in first-seen order.
func CollectIDs[T any](records []T, key func(T) string) []string {
	seen := make(map[string]struct{}, len(records))
	out := make([]string, 0, len(records))
	for _, r := range records {
		id := key(r)
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

// Lookups holds one id → entity map per field type. Accessors return nil for an empty id.
type Lookups struct {
	Users    map[string]UserDetails
	Projects map[string]ProjectDetails
	Blogs    map[string]BlogDetails
}

func (l Lookups) User(id string) *UserDetails {
	return lookup(l.Users, id)
}

func (l Lookups) Project(id string) *ProjectDetails {
	return lookup(l.Projects, id)
}

func (l Lookups) Blog(id string) *BlogDetails {
	return lookup(l.Blogs, id)
}

// UserFor prefers the record's own user id and falls back to the owner of projectID.
func (l Lookups) UserFor(directUserID, projectID string) *UserDetails {
	if u := l.User(directUserID); u != nil {
		return u
	}
	if p := l.Project(projectID); p != nil {
		return l.User(p.UserID)
	}
	return nil
}

func lookup[T any](m map[string]T, id string) *T {
	if id == "" {
		return nil
	}
	v, ok := m[id]
	if !ok {
		return nil
	}
	return &v
}
