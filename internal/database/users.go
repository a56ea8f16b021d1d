package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"battleships/internal/models"
)

// CreateUser inserts a user. The email and name checks run in the same
// transaction as the insert; the UNIQUE constraints catch anything that slips past.
func (d *Database) CreateUser(ctx context.Context, user *models.User) error {
	tx, err := d.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var count int
	if err := tx.QueryRowContext(ctx, "SELECT COUNT(*) FROM users WHERE email = ?", user.Email).Scan(&count); err != nil {
		return fmt.Errorf("failed to check email: %w", err)
	}
	if count > 0 {
		return ErrDuplicateEmail
	}
	if err := tx.QueryRowContext(ctx, "SELECT COUNT(*) FROM users WHERE name = ?", user.Name).Scan(&count); err != nil {
		return fmt.Errorf("failed to check name: %w", err)
	}
	if count > 0 {
		return ErrDuplicateName
	}

	result, err := tx.ExecContext(ctx, `
		INSERT INTO users (name, email, games_won, games_played, created_at)
		VALUES (?, ?, 0, 0, ?)
	`, user.Name, user.Email, toNanos(user.CreatedAt))
	if err != nil {
		if col, ok := uniqueViolation(err); ok {
			if col == "email" {
				return ErrDuplicateEmail
			}
			return ErrDuplicateName
		}
		return fmt.Errorf("failed to create user: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get user ID: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit user: %w", err)
	}

	user.ID = id
	user.GamesWon = 0
	user.GamesPlayed = 0
	return nil
}

const userColumns = `id, name, email, games_won, games_played, created_at`

func scanUser(row interface{ Scan(...any) error }) (*models.User, error) {
	var user models.User
	var createdAt int64
	if err := row.Scan(&user.ID, &user.Name, &user.Email, &user.GamesWon, &user.GamesPlayed, &createdAt); err != nil {
		return nil, err
	}
	user.CreatedAt = fromNanos(createdAt)
	return &user, nil
}

// GetUserByEmail retrieves a user by email
func (d *Database) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	row := d.db.QueryRowContext(ctx, "SELECT "+userColumns+" FROM users WHERE email = ?", email)
	user, err := scanUser(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

// GetUserByID retrieves a user by ID
func (d *Database) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	row := d.db.QueryRowContext(ctx, "SELECT "+userColumns+" FROM users WHERE id = ?", id)
	user, err := scanUser(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

// Rankings orders users by win ratio, then games played, then name
func (d *Database) Rankings(ctx context.Context, limit int) ([]models.Ranking, error) {
	query := `
		SELECT name, games_won, games_played,
		       CASE WHEN games_played = 0 THEN 0.0
		            ELSE CAST(games_won AS REAL) / games_played END AS win_ratio
		FROM users
		ORDER BY win_ratio DESC, games_played DESC, name ASC
	`
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := d.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query rankings: %w", err)
	}
	defer rows.Close()

	rankings := []models.Ranking{}
	for rows.Next() {
		var r models.Ranking
		if err := rows.Scan(&r.Player, &r.GamesWon, &r.GamesPlayed, &r.WinRatio); err != nil {
			return nil, fmt.Errorf("failed to scan ranking: %w", err)
		}
		rankings = append(rankings, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read rankings: %w", err)
	}
	return rankings, nil
}
