package services

import (
	"context"
	"strings"
	"time"

	"admindash/internal/cache"
	"admindash/internal/domain"
	"admindash/internal/domain/models"
)

// UsersTotalTTL keeps the identity-provider total from being re-walked on every page.
const UsersTotalTTL = 5 * time.Minute

// UserScanPageSize is the per_page used when walking every identity-provider page.
const UserScanPageSize = 1000

var UserListOptions = domain.ListOptions{
	DefaultLimit: 50,
	MaxLimit:     50,
	SortFields:   []string{"created_at"},
}

type UserService struct {
	Directory UserDirectory
	Cache     cache.Store
}

func (s UserService) cache() cache.Store {
	if s.Cache != nil {
		return s.Cache
	}
	return cache.Shared()
}

// List pages the user directory. A search walks every page, filters on email and name,
// then slices; without one a single page is fetched and the cached total drives paging.
func (s UserService) List(ctx context.Context, req domain.PageRequest) (ListResult[models.DirectoryUser], error) {
	if req.Search != "" {
		all, err := s.all(ctx)
		if err != nil {
			return ListResult[models.DirectoryUser]{}, err
		}
		matched := make([]models.DirectoryUser, 0, len(all))
		for _, u := range all {
			if strings.Contains(strings.ToLower(u.Email), req.Search) ||
				strings.Contains(strings.ToLower(u.Name), req.Search) {
				matched = append(matched, u)
			}
		}
		return newListResult(domain.Paginate(matched, req.Page, req.Limit), req, len(matched)), nil
	}

	users, err := s.Directory.ListUsers(ctx, req.Page, req.Limit)
	if err != nil {
		return ListResult[models.DirectoryUser]{}, storeErr("identity provider", err)
	}
	total, err := s.Total(ctx)
	if err != nil {
		return ListResult[models.DirectoryUser]{}, err
	}
	return newListResult(users, req, total), nil
}

func (s UserService) Get(ctx context.Context, id string) (models.DirectoryUser, error) {
	u, err := s.Directory.GetUser(ctx, id)
	return u, storeErr("identity provider", err)
}

// Total returns the number of directory users, cached for UsersTotalTTL.
func (s UserService) Total(ctx context.Context) (int, error) {
	if n, ok := cache.GetAs[int](s.cache(), cache.KeyUsersTotal); ok {
		return n, nil
	}
	all, err := s.all(ctx)
	if err != nil {
		return 0, err
	}
	return len(all), nil
}

// all walks the directory page by page until a short page. It refreshes the cached total.
func (s UserService) all(ctx context.Context) ([]models.DirectoryUser, error) {
	out := []models.DirectoryUser{}
	for page := 1; ; page++ {
		batch, err := s.Directory.ListUsers(ctx, page, UserScanPageSize)
		if err != nil {
			return nil, storeErr("identity provider", err)
		}
		out = append(out, batch...)
		if len(batch) < UserScanPageSize {
			break
		}
	}
	s.cache().Set(cache.KeyUsersTotal, len(out), UsersTotalTTL)
	return out, nil
}
