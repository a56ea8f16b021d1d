package database

import (
	"os"
	"path/filepath"
	"testing"
)

func TestMigrateIsIdempotent(t *testing.T) {
	db := newTestDatabase(t)
	defer db.Close()

	version, err := db.SchemaVersion()
	if err != nil {
		t.Fatalf("SchemaVersion failed: %v", err)
	}
	if version != LatestVersion() {
		t.Fatalf("expected version %d, got %d", LatestVersion(), version)
	}

	applied, err := db.Migrate()
	if err != nil {
		t.Fatalf("second migrate failed: %v", err)
	}
	if applied != 0 {
		t.Fatalf("expected no pending migrations, got %d", applied)
	}
}

func TestOpenLeavesSchemaAlone(t *testing.T) {
	db, err := Open(filepath.Join(t.TempDir(), "fresh.db"))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer db.Close()

	version, err := db.SchemaVersion()
	if err != nil {
		t.Fatalf("SchemaVersion failed: %v", err)
	}
	if version != 0 {
		t.Fatalf("expected fresh database at version 0, got %d", version)
	}

	applied, err := db.Migrate()
	if err != nil {
		t.Fatalf("Migrate failed: %v", err)
	}
	if applied != len(migrations) {
		t.Fatalf("expected %d migrations, got %d", len(migrations), applied)
	}
}

func TestStatsAndBackup(t *testing.T) {
	db := newTestDatabase(t)
	defer db.Close()

	createUser(t, db, "alice", "alice@example.com")

	stats, err := db.Stats()
	if err != nil {
		t.Fatalf("Stats failed: %v", err)
	}
	if stats.Users != 1 || stats.Games != 0 {
		t.Fatalf("unexpected stats: %+v", stats)
	}

	dst, err := db.Backup()
	if err != nil {
		t.Fatalf("Backup failed: %v", err)
	}
	if _, err := os.Stat(dst); err != nil {
		t.Fatalf("expected backup file: %v", err)
	}
}
