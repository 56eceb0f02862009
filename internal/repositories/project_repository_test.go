package repositories

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"admindash/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var projectRowCols = []string{"id", "name", "url", "user_id", "status", "created_at"}

func TestProjectList_SearchAndPaging(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	now := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	req := domain.PageRequest{Page: 2, Limit: 10, Search: "acme", SortField: "name", SortOrder: domain.SortAsc}

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM projects WHERE \(LOWER\(name\) LIKE \? OR LOWER\(url\) LIKE \?\)`).
		WithArgs("%acme%", "%acme%").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(11))
	mock.ExpectQuery(`FROM projects WHERE .* ORDER BY name ASC LIMIT \? OFFSET \?`).
		WithArgs("%acme%", "%acme%", 10, 10).
		WillReturnRows(sqlmock.NewRows(projectRowCols).AddRow("p11", "Acme 11", "https://acme.io", "u1", "active", now))

	items, total, err := ProjectRepository{DB: db}.List(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, 11, total)
	require.Len(t, items, 1)
	assert.Equal(t, "Acme 11", items[0].Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProjectList_EmptyPageIsNotNil(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM projects`).WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectQuery(`ORDER BY created_at DESC`).WithArgs(20, 0).WillReturnRows(sqlmock.NewRows(projectRowCols))

	items, total, err := ProjectRepository{DB: db}.List(context.Background(),
		domain.PageRequest{Page: 1, Limit: 20, SortField: "bogus", SortOrder: domain.SortDesc})
	require.NoError(t, err)
	assert.Equal(t, 0, total)
	assert.NotNil(t, items)
	assert.Empty(t, items)
}

func TestProjectGetByID_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`FROM projects WHERE id = \?`).WithArgs("missing").WillReturnError(sql.ErrNoRows)

	_, err = ProjectRepository{DB: db}.GetByID(context.Background(), "missing")
	assert.True(t, domain.IsNotFound(err))
}

func TestProjectDetailsByIDs_SingleInQuery(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`WHERE id IN \(\?,\?\)`).WithArgs("p1", "p2").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "url", "user_id"}).AddRow("p1", "Acme", "https://acme.io", "u9"))

	got, err := ProjectRepository{DB: db}.ProjectDetailsByIDs(context.Background(), []string{"p1", "p2"})
	require.NoError(t, err)
	assert.Len(t, got, 1)
	assert.Equal(t, "u9", got["p1"].UserID)
	_, ok := got["p2"]
	assert.False(t, ok)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProjectDetailsByIDs_NoIDsSkipsQuery(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	got, err := ProjectRepository{DB: db}.ProjectDetailsByIDs(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}
