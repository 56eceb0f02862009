package services

import (
	"bytes"
	"context"
	"testing"
	"time"

	"admindash/internal/cache"
	"admindash/internal/domain/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClampUsageDays(t *testing.T) {
	assert.Equal(t, DefaultUsageDays, ClampUsageDays(0))
	assert.Equal(t, 1, ClampUsageDays(-4))
	assert.Equal(t, 7, ClampUsageDays(7))
	assert.Equal(t, MaxUsageDays, ClampUsageDays(365))
}

func TestUsageWindowAndTotals(t *testing.T) {
	usage := &fakeUsage{}
	svc := AnalyticsService{UsageRows: usage, Now: func() time.Time { return time.Date(2025, 6, 10, 15, 0, 0, 0, time.UTC) }}

	r, err := svc.Usage(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, "2025-06-04", r.Since)
	assert.Equal(t, time.Date(2025, 6, 4, 0, 0, 0, 0, time.UTC), usage.since)
	assert.Equal(t, 5, r.Totals.Requests)
	assert.Equal(t, int64(350), r.Totals.Tokens)
}

func TestUsageReportPDF(t *testing.T) {
	svc := AnalyticsService{UsageRows: &fakeUsage{}, Now: func() time.Time { return time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC) }}

	pdf, name, err := svc.UsageReportPDF(context.Background(), 30)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(pdf, []byte("%PDF-")))
	assert.Equal(t, "usage_2025-05-12_30d.pdf", name)
}

func TestOverviewCounts(t *testing.T) {
	svc := AnalyticsService{
		Users:       UserService{Directory: directoryOf(7), Cache: cache.NewMemory()},
		Projects:    fakeProjectStore{fakeCounter: 3},
		Images:      &fakeImages{rows: make([]models.ProjectImage, 11)},
		Blogs:       newFakeBlogs(models.Blog{ID: blogA, IsActive: true}, models.Blog{ID: blogB}),
		Submissions: fakeSubmissions{fakeCounter: 4},
		Accounts:    fakeAccounts{users: map[string]models.AuthorizedUser{"a": {}, "b": {}}},
	}

	o, err := svc.Overview(context.Background())
	require.NoError(t, err)
	assert.Equal(t, models.Overview{Users: 7, Projects: 3, Images: 11, ActiveBlogs: 1, Submissions: 4, AuthorizedUsers: 2}, o)
}
