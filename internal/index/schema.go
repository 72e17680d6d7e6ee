// Package index provides SQLite-backed document indexing with optional
// FTS5 full-text search. The index is a derived cache over the record
// store: it backs full-text search only, never repository lookups, and
// can always be rebuilt from the files on disk.
package index

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

// schemaVersion is bumped on any incompatible schema change. Because the
// index is derived, a version mismatch drops the tables instead of
// migrating them; the next Sync repopulates everything from the store.
const schemaVersion = 2

const schemaSQL = `
CREATE TABLE IF NOT EXISTS documents (
	path       TEXT PRIMARY KEY,
	kind       TEXT NOT NULL DEFAULT '',
	title      TEXT NOT NULL DEFAULT '',
	checksum   TEXT NOT NULL DEFAULT '',
	body       TEXT NOT NULL DEFAULT '',
	updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_documents_kind ON documents(kind);
`

// DB wraps a sql.DB with index-specific operations.
type DB struct {
	conn *sql.DB
}

// Open opens (or creates) the SQLite index at path and brings its schema
// up to date. WAL keeps searches readable while the watcher writes; the
// busy timeout rides out the brief exclusive lock a checkpoint takes.
func Open(path string) (*DB, error) {
	conn, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_busy_timeout=5000&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("index: open db: %w", err)
	}
	if err := setup(conn); err != nil {
		conn.Close()
		return nil, err
	}
	return &DB{conn: conn}, nil
}

func setup(conn *sql.DB) error {
	if err := conn.Ping(); err != nil {
		return fmt.Errorf("index: ping: %w", err)
	}
	var version int
	if err := conn.QueryRow(`PRAGMA user_version`).Scan(&version); err != nil {
		return fmt.Errorf("index: read schema version: %w", err)
	}
	if version != 0 && version != schemaVersion {
		_, err := conn.Exec(`DROP TABLE IF EXISTS documents; DROP TABLE IF EXISTS documents_fts`)
		if err != nil {
			return fmt.Errorf("index: reset stale schema %d: %w", version, err)
		}
	}
	if _, err := conn.Exec(schemaSQL); err != nil {
		return fmt.Errorf("index: apply schema: %w", err)
	}
	if err := initFTS(conn); err != nil {
		return fmt.Errorf("index: apply fts schema: %w", err)
	}
	// PRAGMA does not take bind parameters.
	if _, err := conn.Exec(fmt.Sprintf(`PRAGMA user_version = %d`, schemaVersion)); err != nil {
		return fmt.Errorf("index: stamp schema version: %w", err)
	}
	return nil
}

// Close closes the underlying database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}
