package main

import (
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"

	"battleships/internal/database"
)

func main() {
	fmt.Println("🗃️  Battleships Database Migration Tool")
	fmt.Println("=======================================")

	if len(os.Args) < 2 {
		fmt.Println("Usage: go run cmd/migrate/main.go <command>")
		fmt.Println("Commands:")
		fmt.Println("  init          - Initialize database with current schema")
		fmt.Println("  migrate       - Run pending migrations")
		fmt.Println("  status        - Show migration status")
		fmt.Println("  backup        - Copy the database file to a timestamped directory")
		os.Exit(1)
	}

	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}
	dbPath := os.Getenv("DATABASE_PATH")
	if dbPath == "" {
		dbPath = "./data/battleships.db"
	}

	db, err := database.Open(dbPath)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	defer db.Close()

	switch command := os.Args[1]; command {
	case "init", "migrate":
		runMigrations(db)
	case "status":
		showMigrationStatus(db)
	case "backup":
		backupDatabase(db)
	default:
		log.Fatal("Unknown command:", command)
	}
}

func runMigrations(db *database.Database) {
	fmt.Println("Running database migrations...")

	current, err := db.SchemaVersion()
	if err != nil {
		log.Fatal("Failed to read schema version:", err)
	}
	fmt.Printf("Current schema version: %d\n", current)

	applied, err := db.Migrate()
	if err != nil {
		log.Fatal("❌ Migration failed:", err)
	}

	if applied == 0 {
		fmt.Println("✅ No migrations needed - database is up to date!")
	} else {
		fmt.Printf("✅ Applied %d migrations successfully!\n", applied)
	}
}

func showMigrationStatus(db *database.Database) {
	current, err := db.SchemaVersion()
	if err != nil {
		log.Fatal("Failed to read schema version:", err)
	}

	fmt.Printf("Database: %s\n", db.Path())
	fmt.Printf("Schema version: %d (latest %d)\n", current, database.LatestVersion())
	if current < database.LatestVersion() {
		fmt.Println("⚠️  Pending migrations - run 'migrate'")
		return
	}

	stats, err := db.Stats()
	if err != nil {
		log.Fatal("Failed to read stats:", err)
	}
	fmt.Println("\n📊 Database Statistics:")
	fmt.Printf("  Users: %d\n", stats.Users)
	fmt.Printf("  Games: %d\n", stats.Games)
	fmt.Printf("  Active games: %d\n", stats.ActiveGames)
}

func backupDatabase(db *database.Database) {
	dst, err := db.Backup()
	if err != nil {
		log.Fatal("❌ Backup failed:", err)
	}
	fmt.Printf("✅ Backup written to %s\n", dst)
}
