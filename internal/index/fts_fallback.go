//go:build !sqlite_fts5

package index

import (
	"database/sql"
	"fmt"
)

func initFTS(_ *sql.DB) error {
	// Without FTS5 compiled in, search degrades to LIKE over the
	// documents table.
	return nil
}

func ftsUpsert(_ *sql.Tx, _, _, _, _ string) error {
	// Body already lives in the documents table.
	return nil
}

func ftsDelete(_ *sql.Tx, _ string) {}

// Search is the LIKE fallback used when FTS5 is not compiled in. There is
// no ranking; hits come back in table order with a fixed body prefix
// standing in for a match snippet. A non-empty kind narrows the hits to
// one record category.
func (db *DB) Search(query, kind string, limit int) ([]SearchResult, error) {
	if limit <= 0 {
		limit = defaultSearchLimit
	}
	like := "%" + query + "%"
	q := `
		SELECT path, title, kind, substr(body, 1, 200)
		FROM documents
		WHERE (title LIKE ? OR body LIKE ?)`
	args := []any{like, like}
	if kind != "" {
		q += ` AND kind = ?`
		args = append(args, kind)
	}
	q += ` LIMIT ?`
	args = append(args, limit)

	rows, err := db.conn.Query(q, args...)
	if err != nil {
		return nil, fmt.Errorf("index: search: %w", err)
	}
	return scanSearchRows(rows)
}
