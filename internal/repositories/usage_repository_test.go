package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUsageDailyTotals_FormatsDates(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	since := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)
	mock.ExpectQuery("FROM `usage`").WithArgs(since).
		WillReturnRows(sqlmock.NewRows([]string{"day", "requests", "tokens"}).
			AddRow(time.Date(2025, 5, 2, 0, 0, 0, 0, time.UTC), 4, 1200).
			AddRow(time.Date(2025, 5, 3, 0, 0, 0, 0, time.UTC), 1, 90))

	days, err := UsageRepository{DB: db}.DailyTotals(context.Background(), since)
	require.NoError(t, err)
	require.Len(t, days, 2)
	assert.Equal(t, "2025-05-02", days[0].Date)
	assert.Equal(t, int64(1200), days[0].Tokens)
}

func TestUsageForProject(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("FROM `usage` WHERE project_id = \\?").WithArgs("p1").
		WillReturnRows(sqlmock.NewRows([]string{"requests", "tokens"}).AddRow(9, 4500))

	totals, err := UsageRepository{DB: db}.ForProject(context.Background(), "p1")
	require.NoError(t, err)
	assert.Equal(t, 9, totals.Requests)
	assert.Equal(t, int64(4500), totals.Tokens)
}
