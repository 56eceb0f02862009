package domain

import (
	"math"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
)

var blogListOptions = ListOptions{
	DefaultLimit: 20,
	MaxLimit:     50,
	SortFields:   []string{"created_at", "title", "status"},
}

func TestParsePageRequestClampsLimit(t *testing.T) {
	req := ParsePageRequest("1", "1000", "", "", "", blogListOptions)
	assert.Equal(t, 50, req.Limit)

	req = ParsePageRequest("1", "0", "", "", "", blogListOptions)
	assert.Equal(t, 1, req.Limit)

	req = ParsePageRequest("1", "abc", "", "", "", blogListOptions)
	assert.Equal(t, 20, req.Limit)
}

func TestParsePageRequestClampsPage(t *testing.T) {
	assert.Equal(t, 1, ParsePageRequest("-3", "10", "", "", "", blogListOptions).Page)
	assert.Equal(t, 1, ParsePageRequest("", "10", "", "", "", blogListOptions).Page)
	assert.Equal(t, 4, ParsePageRequest("4", "10", "", "", "", blogListOptions).Page)
}

func TestParsePageRequestNormalizesSearch(t *testing.T) {
	req := ParsePageRequest("1", "10", "  Hello World ", "", "", blogListOptions)
	assert.Equal(t, "hello world", req.Search)
}

func TestParsePageRequestSortFallback(t *testing.T) {
	req := ParsePageRequest("1", "10", "", "nonexistent_field", "asc", blogListOptions)
	assert.Equal(t, "created_at", req.SortField)
	assert.Equal(t, SortDesc, req.SortOrder)

	req = ParsePageRequest("1", "10", "", "title", "ASC", blogListOptions)
	assert.Equal(t, "title", req.SortField)
	assert.Equal(t, SortAsc, req.SortOrder)

	req = ParsePageRequest("1", "10", "", "title", "sideways", blogListOptions)
	assert.Equal(t, SortDesc, req.SortOrder)
}

func TestNewPaginationInvariant(t *testing.T) {
	for _, limit := range []int{1, 3, 7, 50} {
		for _, total := range []int{0, 1, 2, 49, 50, 51, 100, 1001} {
			p := NewPagination(1, limit, total)
			want := (total + limit - 1) / limit
			if want < 1 {
				want = 1
			}
			assert.Equal(t, want, p.TotalPages, "limit=%d total=%d", limit, total)
			assert.Equal(t, limit, p.Limit)
		}
	}
}

func TestNewPaginationFlags(t *testing.T) {
	p := NewPagination(2, 10, 25)
	assert.Equal(t, 3, p.TotalPages)
	assert.True(t, p.HasNextPage)
	assert.True(t, p.HasPrevPage)

	p = NewPagination(3, 10, 25)
	assert.False(t, p.HasNextPage)

	p = NewPagination(1, 10, 0)
	assert.Equal(t, 1, p.TotalPages)
	assert.False(t, p.HasNextPage)
	assert.False(t, p.HasPrevPage)
}

func TestPaginate(t *testing.T) {
	items := []int{1, 2, 3, 4, 5, 6, 7}
	assert.Equal(t, []int{1, 2, 3}, Paginate(items, 1, 3))
	assert.Equal(t, []int{7}, Paginate(items, 3, 3))
	assert.Empty(t, Paginate(items, 4, 3))
	for page := 1; page <= 4; page++ {
		assert.LessOrEqual(t, len(Paginate(items, page, 3)), 3)
	}
}

func TestHugePageStaysInRange(t *testing.T) {
	req := ParsePageRequest(strconv.Itoa(math.MaxInt), "50", "", "", "", blogListOptions)
	assert.Equal(t, math.MaxInt/50, req.Page)
	assert.GreaterOrEqual(t, req.Offset(), 0)

	assert.Equal(t, 0, PageRequest{Page: math.MaxInt, Limit: 50}.Offset())
	assert.Empty(t, Paginate([]int{1, 2, 3}, math.MaxInt, 50))
	assert.Empty(t, Paginate([]int{1, 2, 3}, req.Page, req.Limit))
}
