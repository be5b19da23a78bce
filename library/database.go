package library

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
)

// Database is a Storage backed by a local SQLite file. It stands in for the
// browser's local storage: a handful of string slots that survive restarts.
type Database struct {
	db *sql.DB

	getStmt    *sql.Stmt
	setStmt    *sql.Stmt
	removeStmt *sql.Stmt
}

// NewDatabase opens (or creates) the SQLite database at dbPath, applies schema
// migrations, and prepares the slot statements.
func NewDatabase(dbPath string) (*Database, error) {
	// Ensure directory exists so first-run succeeds.
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create db dir: %w", err)
		}
	}

	dsn := fmt.Sprintf("file:%s?_busy_timeout=5000", dbPath)
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	if err := applyMigrations(db); err != nil {
		db.Close()
		return nil, err
	}

	database := &Database{db: db}
	if err := database.prepareStatements(); err != nil {
		database.Close()
		return nil, err
	}
	return database, nil
}

// Close releases prepared statements and closes the DB.
func (d *Database) Close() error {
	for _, stmt := range []*sql.Stmt{d.getStmt, d.setStmt, d.removeStmt} {
		if stmt != nil {
			stmt.Close()
		}
	}
	return d.db.Close()
}

// ---------------------------------------------------------------------------
// Schema migration
// ---------------------------------------------------------------------------

const schemaVersion = 1

func applyMigrations(db *sql.DB) error {
	if _, err := db.Exec("PRAGMA journal_mode=WAL;"); err != nil {
		return fmt.Errorf("enable WAL: %w", err)
	}

	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS meta (key TEXT PRIMARY KEY, value TEXT);`); err != nil {
		return err
	}

	var current int
	_ = db.QueryRow(`SELECT value FROM meta WHERE key='schema_version';`).Scan(&current)
	if current >= schemaVersion {
		return nil
	}

	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`CREATE TABLE IF NOT EXISTS kv (
            key TEXT PRIMARY KEY,
            value TEXT NOT NULL
        );`); err != nil {
		return fmt.Errorf("apply migration: %w", err)
	}
	if _, err := tx.Exec(`INSERT INTO meta(key,value) VALUES('schema_version',?)
            ON CONFLICT(key) DO UPDATE SET value=excluded.value;`, schemaVersion); err != nil {
		return fmt.Errorf("apply migration: %w", err)
	}

	return tx.Commit()
}

// ---------------------------------------------------------------------------
// Prepared statements
// ---------------------------------------------------------------------------

func (d *Database) prepareStatements() error {
	var err error
	if d.getStmt, err = d.db.Prepare(`SELECT value FROM kv WHERE key=?`); err != nil {
		return err
	}
	if d.setStmt, err = d.db.Prepare(`INSERT INTO kv(key,value) VALUES(?,?)
        ON CONFLICT(key) DO UPDATE SET value=excluded.value`); err != nil {
		return err
	}
	if d.removeStmt, err = d.db.Prepare(`DELETE FROM kv WHERE key=?`); err != nil {
		return err
	}
	return nil
}

// ---------------------------------------------------------------------------
// Slots
// ---------------------------------------------------------------------------

// Get reads a slot. A missing slot is not an error.
func (d *Database) Get(key string) (string, bool, error) {
	var v string
	err := d.getStmt.QueryRow(key).Scan(&v)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("read slot %q: %w", key, err)
	}
	return v, true, nil
}

// Set writes or overwrites a slot.
func (d *Database) Set(key, value string) error {
	if _, err := d.setStmt.Exec(key, value); err != nil {
		return fmt.Errorf("write slot %q: %w", key, err)
	}
	return nil
}

// Remove deletes a slot. Removing a missing slot is a no-op.
func (d *Database) Remove(key string) error {
	if _, err := d.removeStmt.Exec(key); err != nil {
		return fmt.Errorf("remove slot %q: %w", key, err)
	}
	return nil
}
