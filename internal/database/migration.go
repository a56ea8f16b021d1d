package database

import (
	"database/sql"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

type migration struct {
	version int
	name    string
	stmts   []string
}

// migrations are applied in order; each runs once, in its own transaction
var migrations = []migration{
	{
		version: 1,
		name:    "create users and games",
		stmts: []string{
			`CREATE TABLE IF NOT EXISTS users (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				name TEXT NOT NULL UNIQUE,
				email TEXT NOT NULL UNIQUE COLLATE NOCASE,
				games_won INTEGER NOT NULL DEFAULT 0 CHECK (games_won >= 0),
				games_played INTEGER NOT NULL DEFAULT 0 CHECK (games_played >= 0),
				created_at INTEGER NOT NULL
			)`,
			`CREATE TABLE IF NOT EXISTS games (
				id TEXT PRIMARY KEY,
				player_one INTEGER NOT NULL REFERENCES users(id),
				player_two INTEGER REFERENCES users(id),
				player_winner INTEGER REFERENCES users(id),
				game_state TEXT NOT NULL,
				game_settings TEXT NOT NULL,
				game_board TEXT NOT NULL DEFAULT '{}',
				game_history TEXT NOT NULL DEFAULT '[]',
				created_at INTEGER NOT NULL,
				last_update INTEGER NOT NULL,
				version INTEGER NOT NULL DEFAULT 1
			)`,
		},
	},
	{
		version: 2,
		name:    "index game queries",
		stmts: []string{
			`CREATE INDEX IF NOT EXISTS idx_games_state_update ON games(game_state, last_update DESC)`,
			`CREATE INDEX IF NOT EXISTS idx_games_player_one ON games(player_one)`,
			`CREATE INDEX IF NOT EXISTS idx_games_player_two ON games(player_two)`,
		},
	},
}

const metadataTable = `CREATE TABLE IF NOT EXISTS database_metadata (
	key TEXT PRIMARY KEY,
	value TEXT NOT NULL,
	updated_at INTEGER NOT NULL
)`

// LatestVersion is the schema version this build expects
func LatestVersion() int {
	return migrations[len(migrations)-1].version
}

// SchemaVersion returns the applied schema version, 0 for a fresh database
func (d *Database) SchemaVersion() (int, error) {
	if _, err := d.db.Exec(metadataTable); err != nil {
		return 0, fmt.Errorf("failed to create metadata table: %w", err)
	}

	var value string
	err := d.db.QueryRow("SELECT value FROM database_metadata WHERE key = 'schema_version'").Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to read schema version: %w", err)
	}

	v, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid schema version %q: %w", value, err)
	}
	return v, nil
}

// Migrate applies every pending migration and returns how many ran
func (d *Database) Migrate() (int, error) {
	current, err := d.SchemaVersion()
	if err != nil {
		return 0, err
	}

	applied := 0
	for _, m := range migrations {
		if m.version <= current {
			continue
		}
		if err := d.apply(m); err != nil {
			return applied, err
		}
		log.Printf("[Database] applied migration %d: %s", m.version, m.name)
		applied++
	}
	return applied, nil
}

func (d *Database) apply(m migration) error {
	tx, err := d.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	for _, stmt := range m.stmts {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("migration %d failed: %w", m.version, err)
		}
	}

	_, err = tx.Exec(`
		INSERT INTO database_metadata (key, value, updated_at) VALUES ('schema_version', ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`, strconv.Itoa(m.version), toNanos(time.Now()))
	if err != nil {
		return fmt.Errorf("failed to record schema version: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit migration %d: %w", m.version, err)
	}
	return nil
}

// Stats summarises table sizes for the migrate tool
type Stats struct {
	Users       int
	Games       int
	ActiveGames int
}

// Stats counts users and games
func (d *Database) Stats() (Stats, error) {
	var s Stats
	if err := d.db.QueryRow("SELECT COUNT(*) FROM users").Scan(&s.Users); err != nil {
		return s, fmt.Errorf("failed to count users: %w", err)
	}
	if err := d.db.QueryRow("SELECT COUNT(*) FROM games").Scan(&s.Games); err != nil {
		return s, fmt.Errorf("failed to count games: %w", err)
	}
	query := "SELECT COUNT(*) FROM games WHERE game_state IN (" + activeStatesSQL() + ")"
	if err := d.db.QueryRow(query).Scan(&s.ActiveGames); err != nil {
		return s, fmt.Errorf("failed to count active games: %w", err)
	}
	return s, nil
}

// Backup copies the database file into a timestamped directory next to it
func (d *Database) Backup() (string, error) {
	// Flush the WAL so the main file is complete
	if _, err := d.db.Exec("PRAGMA wal_checkpoint(TRUNCATE)"); err != nil {
		return "", fmt.Errorf("failed to checkpoint: %w", err)
	}

	backupDir := filepath.Join(filepath.Dir(d.path), fmt.Sprintf("backup_%d", time.Now().Unix()))
	if err := os.MkdirAll(backupDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create backup directory: %w", err)
	}

	dst := filepath.Join(backupDir, filepath.Base(d.path))
	if err := copyFile(d.path, dst); err != nil {
		return "", fmt.Errorf("failed to backup %s: %w", d.path, err)
	}
	return dst, nil
}

// copyFile copies a file from src to dst
func copyFile(src, dst string) error {
	data, err := os.ReadFile(src)
	if err != nil {
		return err
	}
	return os.WriteFile(dst, data, 0644)
}
