package db

import (
	"context"
	"database/sql"
	"strings"
)

type QueryRower interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func HasTable(ctx context.Context, q QueryRower, table string) bool {
	var name sql.NullString
	err := q.QueryRowContext(ctx, `
		SELECT table_name
		FROM information_schema.tables
		WHERE table_schema = DATABASE()
		  AND table_name = ?
		LIMIT 1
	`, table).Scan(&name)
	if err != nil {
		return false
	}
	return name.Valid && name.String != ""
}

// MissingTables reports which of tables do not exist in the current schema.
func MissingTables(ctx context.Context, q QueryRower, tables ...string) []string {
	missing := []string{}
	for _, t := range tables {
		if !HasTable(ctx, q, t) {
			missing = append(missing, t)
		}
	}
	return missing
}

// LikePattern lower-cases s, escapes LIKE wildcards and wraps it for substring matching.
func LikePattern(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(strings.ToLower(s)) + "%"
}

// InClause returns "?,?,?" and the args for ids.
func InClause(ids []string) (string, []any) {
	marks := make([]string, len(ids))
	args := make([]any, len(ids))
	for i, id := range ids {
		marks[i] = "?"
		args[i] = id
	}
	return strings.Join(marks, ","), args
}

// OrderBy maps an allow-listed sort field to its column; unknown fields sort by created_at desc.
func OrderBy(field string, asc bool, columns map[string]string) string {
	col, ok := columns[field]
	if !ok {
		return "created_at DESC"
	}
	if asc {
		return col + " ASC"
	}
	return col + " DESC"
}
