package database

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/mattn/go-sqlite3"
)

var (
	ErrNotFound       = errors.New("record not found")
	ErrStaleVersion   = errors.New("record was modified concurrently")
	ErrDuplicateName  = errors.New("user name already taken")
	ErrDuplicateEmail = errors.New("email already registered")
)

type Database struct {
	db   *sql.DB
	path string
}

// NewDatabase creates a new database connection and brings the schema up to date
func NewDatabase(dbPath string) (*Database, error) {
	database, err := Open(dbPath)
	if err != nil {
		return nil, err
	}

	if _, err := database.Migrate(); err != nil {
		database.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return database, nil
}

// Open connects without touching the schema. Used by the migrate tool.
func Open(dbPath string) (*Database, error) {
	// Ensure the directory exists
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_foreign_keys=on&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite works best with a single writer
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	return &Database{db: db, path: dbPath}, nil
}

// Close closes the database connection
func (d *Database) Close() error {
	return d.db.Close()
}

// Path returns the file the database was opened from
func (d *Database) Path() string {
	return d.path
}

// Ping checks the connection is usable
func (d *Database) Ping() error {
	return d.db.Ping()
}

// uniqueViolation reports which column of a UNIQUE constraint an insert tripped, if any
func uniqueViolation(err error) (string, bool) {
	var se sqlite3.Error
	if !errors.As(err, &se) || se.ExtendedCode != sqlite3.ErrConstraintUnique {
		return "", false
	}
	msg := se.Error()
	if i := strings.LastIndex(msg, "."); i >= 0 {
		return msg[i+1:], true
	}
	return "", true
}

func toNanos(t time.Time) int64 {
	return t.UTC().UnixNano()
}

func fromNanos(n int64) time.Time {
	return time.Unix(0, n).UTC()
}
