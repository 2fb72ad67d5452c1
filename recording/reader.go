package recording

import (
	"database/sql"
	"fmt"

	// Need to use SQLite connections.
	_ "github.com/mattn/go-sqlite3"
)

// A Reader reads back a recorded run database.
type Reader struct {
	*sql.DB
}

// NewReader opens the database at path + ".sqlite3" for reading.
func NewReader(path string) (*Reader, error) {
	db, err := sql.Open("sqlite3", path+".sqlite3")
	if err != nil {
		return nil, fmt.Errorf("open run database: %w", err)
	}

	return &Reader{DB: db}, nil
}

// ListTables returns the names of all the tables in the database.
func (r *Reader) ListTables() ([]string, error) {
	rows, err := r.Query(
		"SELECT name FROM sqlite_master WHERE type='table' ORDER BY name")
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
		tables = append(tables, name)
	}

	return tables, rows.Err()
}

// Dump returns the column names and all the rows of one table, with every
// value rendered as a string.
func (r *Reader) Dump(tableName string) ([]string, [][]string, error) {
	rows, err := r.Query("SELECT * FROM " + tableName)
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, nil, err
	}

	var out [][]string
	for rows.Next() {
		raw := make([]any, len(columns))
		ptrs := make([]any, len(columns))
		for i := range raw {
			ptrs[i] = &raw[i]
		}

		if err := rows.Scan(ptrs...); err != nil {
			return nil, nil, err
		}

		row := make([]string, len(columns))
		for i, v := range raw {
			row[i] = fmt.Sprintf("%v", v)
		}
		out = append(out, row)
	}

	return columns, out, rows.Err()
}
