package domain

import (
	"math"
	"strconv"
	"strings"
)

// DefaultSortField is used whenever a requested sort field is not allow-listed.
const DefaultSortField = "created_at"

type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// PageRequest is a normalized list query. Build it with ParsePageRequest.
type PageRequest struct {
	Page      int
	Limit     int
	Search    string
	SortField string
	SortOrder SortOrder
}

func (p PageRequest) Offset() int {
	if p.Page < 1 || p.Limit < 1 || p.Page-1 > math.MaxInt/p.Limit {
		return 0
	}
	return (p.Page - 1) * p.Limit
}

// ListOptions holds the per-endpoint paging limits and sort allow-list.
type ListOptions struct {
	DefaultLimit int
	MaxLimit     int
	SortFields   []string
}

func (o ListOptions) allowsSort(field string) bool {
	for _, f := range o.SortFields {
		if f == field {
			return true
		}
	}
	return false
}

// ParsePageRequest clamps raw query values into a PageRequest.
// page < 1 becomes 1, limit is clamped to [1, MaxLimit], search is trimmed and lower-cased,
// unknown sort fields fall back to created_at desc.
func ParsePageRequest(page, limit, search, sort, order string, opts ListOptions) PageRequest {
	if opts.MaxLimit < 1 {
		opts.MaxLimit = 50
	}
	if opts.DefaultLimit < 1 || opts.DefaultLimit > opts.MaxLimit {
		opts.DefaultLimit = opts.MaxLimit
	}

	p, err := strconv.Atoi(strings.TrimSpace(page))
	if err != nil || p < 1 {
		p = 1
	}
	// keeps (page-1)*limit inside int
	if maxPage := math.MaxInt / opts.MaxLimit; p > maxPage {
		p = maxPage
	}

	l, err := strconv.Atoi(strings.TrimSpace(limit))
	switch {
	case err != nil:
		l = opts.DefaultLimit
	case l < 1:
		l = 1
	case l > opts.MaxLimit:
		l = opts.MaxLimit
	}

	req := PageRequest{
		Page:      p,
		Limit:     l,
		Search:    strings.ToLower(strings.TrimSpace(search)),
		SortField: DefaultSortField,
		SortOrder: SortDesc,
	}

	sort = strings.TrimSpace(sort)
	if sort != "" && opts.allowsSort(sort) {
		req.SortField = sort
		if strings.EqualFold(strings.TrimSpace(order), string(SortAsc)) {
			req.SortOrder = SortAsc
		}
	}
	return req
}

// Pagination is derived arithmetically from total and limit.
type Pagination struct {
	CurrentPage int  `json:"currentPage"`
	TotalPages  int  `json:"totalPages"`
	Total       int  `json:"total"`
	Limit       int  `json:"limit"`
	HasNextPage bool `json:"hasNextPage"`
	HasPrevPage bool `json:"hasPrevPage"`
}

func NewPagination(page, limit, total int) Pagination {
	if limit < 1 {
		limit = 1
	}
	if page < 1 {
		page = 1
	}
	if total < 0 {
		total = 0
	}
	totalPages := (total + limit - 1) / limit
	if totalPages < 1 {
		totalPages = 1
	}
	return Pagination{
		CurrentPage: page,
		TotalPages:  totalPages,
		Total:       total,
		Limit:       limit,
		HasNextPage: page < totalPages,
		HasPrevPage: page > 1,
	}
}

// Paginate slices items to [(page-1)*limit, page*limit).
func Paginate[T any](items []T, page, limit int) []T {
	if limit < 1 || page < 1 || page-1 > len(items)/limit {
		return []T{}
	}
	start := (page - 1) * limit
	if start >= len(items) {
		return []T{}
	}
	end := start + limit
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}

// ListMeta echoes the effective query back to the client.
type ListMeta struct {
	Search    string    `json:"search,omitempty"`
	SortField string    `json:"sortField"`
	SortOrder SortOrder `json:"sortOrder"`
}

func (p PageRequest) Meta() ListMeta {
	return ListMeta{Search: p.Search, SortField: p.SortField, SortOrder: p.SortOrder}
}

// RequestContext carries the authenticated admin session when available.
type RequestContext struct {
	UserID string `json:"userId"`
	Email  string `json:"email"`
	Role   string `json:"role"`
}
