// Package sqlite persists editor state that outlives a session, currently
// the register file restored at startup.
package sqlite

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"

	"github.com/zjrosen/videre/internal/log"
)

// migrations are applied in order; PRAGMA user_version records how many
// have run.
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS registers (
		name       TEXT PRIMARY KEY,
		kind       TEXT NOT NULL CHECK (kind IN ('chars', 'lines')),
		payload    TEXT NOT NULL,
		updated_at INTEGER NOT NULL
	)`,
}

// DB owns the connection to the state database.
type DB struct {
	conn *sql.DB
	path string
}

// NewDB opens (creating if needed) the database at path and brings its
// schema up to date. Use ":memory:" for a throwaway database.
func NewDB(path string) (*DB, error) {
	dsn := ":memory:"
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
			return nil, fmt.Errorf("creating state directory: %w", err)
		}
		dsn = "file:" + path
	}

	log.Debug(log.CatStore, "Opening database", "path", path)
	conn, err := sql.Open("sqlite3", dsn)
	if err != nil {
		log.ErrorErr(log.CatStore, "Failed to open database", err, "path", path)
		return nil, fmt.Errorf("opening database: %w", err)
	}
	// A single connection keeps ":memory:" databases coherent and
	// serializes writers.
	conn.SetMaxOpenConns(1)

	db := &DB{conn: conn, path: path}
	if err := db.init(); err != nil {
		_ = conn.Close()
		return nil, err
	}
	return db, nil
}

func (db *DB) init() error {
	if _, err := db.conn.Exec(`PRAGMA busy_timeout = 2000`); err != nil {
		return fmt.Errorf("setting busy timeout: %w", err)
	}
	if db.path != ":memory:" {
		var mode string
		if err := db.conn.QueryRow(`PRAGMA journal_mode = WAL`).Scan(&mode); err != nil {
			return fmt.Errorf("enabling WAL: %w", err)
		}
	}
	return db.migrate()
}

func (db *DB) migrate() error {
	var version int
	if err := db.conn.QueryRow(`PRAGMA user_version`).Scan(&version); err != nil {
		return fmt.Errorf("reading schema version: %w", err)
	}
	if version > len(migrations) {
		return fmt.Errorf("database schema version %d is newer than supported %d", version, len(migrations))
	}

	for i := version; i < len(migrations); i++ {
		tx, err := db.conn.Begin()
		if err != nil {
			return fmt.Errorf("starting migration %d: %w", i+1, err)
		}
		if _, err := tx.Exec(migrations[i]); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("applying migration %d: %w", i+1, err)
		}
		// PRAGMA does not accept bound parameters.
		if _, err := tx.Exec(fmt.Sprintf(`PRAGMA user_version = %d`, i+1)); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("recording migration %d: %w", i+1, err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("committing migration %d: %w", i+1, err)
		}
		log.Info(log.CatStore, "Applied migration", "version", i+1)
	}
	return nil
}

// Registers returns the register repository backed by this database.
func (db *DB) Registers() *RegisterRepository {
	return &RegisterRepository{db: db.conn}
}

// Close closes the connection.
func (db *DB) Close() error {
	return db.conn.Close()
}
