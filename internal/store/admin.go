package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

var ErrQueryRejected = errors.New("query rejected")

// allowedTables is the browse whitelist for the admin console; everything
// else in sqlite_master is invisible to it.
var allowedTables = map[string]bool{
	"users":          true,
	"quizzes":        true,
	"quiz_questions": true,
	"quiz_results":   true,
	"schema_version": true,
}

// TableRows is one table's dump: column order preserved, one map per row.
type TableRows struct {
	Columns []string         `json:"columns"`
	Rows    []map[string]any `json:"rows"`
}

// DumpTables returns the contents of every whitelisted table that exists.
func (s *Store) DumpTables(ctx context.Context) (map[string]TableRows, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT name FROM sqlite_master WHERE type = 'table'`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tables []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		if allowedTables[name] {
			tables = append(tables, name)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	dump := make(map[string]TableRows, len(tables))
	for _, table := range tables {
		// Table names come from the whitelist, never from the caller.
		data, err := s.queryRows(ctx, fmt.Sprintf("SELECT * FROM %q", table))
		if err != nil {
			return nil, err
		}
		dump[table] = data
	}
	return dump, nil
}

const maxQueryLength = 1000

var dangerousKeywords = []string{"drop", "delete", "update", "insert", "alter", "create", "pragma"}

// RunQuery executes an administrator-supplied query under a restrictive
// guard: SELECT-only, no mutating keywords anywhere in the text, bounded
// length.
func (s *Store) RunQuery(ctx context.Context, query string) (TableRows, error) {
	if len(query) > maxQueryLength {
		return TableRows{}, fmt.Errorf("%w: query too long", ErrQueryRejected)
	}

	lowered := strings.ToLower(strings.TrimSpace(query))
	if !strings.HasPrefix(lowered, "select") {
		return TableRows{}, fmt.Errorf("%w: only SELECT queries are allowed", ErrQueryRejected)
	}
	for _, keyword := range dangerousKeywords {
		if strings.Contains(lowered, keyword) {
			return TableRows{}, fmt.Errorf("%w: contains %q", ErrQueryRejected, keyword)
		}
	}

	return s.queryRows(ctx, query)
}

func (s *Store) queryRows(ctx context.Context, query string) (TableRows, error) {
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return TableRows{}, err
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return TableRows{}, err
	}

	result := TableRows{Columns: columns, Rows: make([]map[string]any, 0)}
	for rows.Next() {
		values := make([]any, len(columns))
		pointers := make([]any, len(columns))
		for i := range values {
			pointers[i] = &values[i]
		}
		if err := rows.Scan(pointers...); err != nil {
			return TableRows{}, err
		}

		row := make(map[string]any, len(columns))
		for i, column := range columns {
			if b, ok := values[i].([]byte); ok {
				values[i] = string(b)
			}
			row[column] = values[i]
		}
		result.Rows = append(result.Rows, row)
	}
	return result, rows.Err()
}
