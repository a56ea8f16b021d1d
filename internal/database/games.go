package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"battleships/internal/models"
)

const gameColumns = `id, player_one, player_two, player_winner, game_state, game_settings,
	game_board, game_history, created_at, last_update, version`

// CreateGame inserts a new game at version 1
func (d *Database) CreateGame(ctx context.Context, g *models.Game) error {
	settings, board, history, err := encodeGame(g)
	if err != nil {
		return err
	}

	_, err = d.db.ExecContext(ctx, `
		INSERT INTO games (id, player_one, player_two, player_winner, game_state, game_settings,
			game_board, game_history, created_at, last_update, version)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, 1)
	`, g.ID, g.PlayerOne, nullID(g.PlayerTwo), nullID(g.Winner), string(g.State), settings,
		board, history, toNanos(g.CreatedAt), toNanos(g.LastUpdate))
	if err != nil {
		return fmt.Errorf("failed to create game: %w", err)
	}

	g.Version = 1
	return nil
}

// GetGame loads a game by key. Board and history are validated against the game's rules.
func (d *Database) GetGame(ctx context.Context, id string) (*models.Game, error) {
	row := d.db.QueryRowContext(ctx, "SELECT "+gameColumns+" FROM games WHERE id = ?", id)
	g, err := scanGame(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get game %s: %w", id, err)
	}
	return g, nil
}

// UpdateGame writes the game back if nobody else has since g was read.
// On success g.Version is advanced; on a lost race ErrStaleVersion is returned.
func (d *Database) UpdateGame(ctx context.Context, g *models.Game) error {
	return d.updateGame(ctx, d.db, g)
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func (d *Database) updateGame(ctx context.Context, db execer, g *models.Game) error {
	_, board, history, err := encodeGame(g)
	if err != nil {
		return err
	}

	result, err := db.ExecContext(ctx, `
		UPDATE games
		SET player_two = ?, player_winner = ?, game_state = ?, game_board = ?, game_history = ?,
		    last_update = ?, version = version + 1
		WHERE id = ? AND version = ?
	`, nullID(g.PlayerTwo), nullID(g.Winner), string(g.State), board, history,
		toNanos(g.LastUpdate), g.ID, g.Version)
	if err != nil {
		return fmt.Errorf("failed to update game %s: %w", g.ID, err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update of game %s: %w", g.ID, err)
	}
	if n == 0 {
		return ErrStaleVersion
	}

	g.Version++
	return nil
}

// RecordWin commits a completed game and both players' records in one transaction
func (d *Database) RecordWin(ctx context.Context, g *models.Game) error {
	if g.State != models.StateGameComplete || g.Winner == nil || g.PlayerTwo == nil {
		return fmt.Errorf("game %s is not a completed two-player game", g.ID)
	}
	if *g.Winner != g.PlayerOne && *g.Winner != *g.PlayerTwo {
		return fmt.Errorf("game %s winner %d is not a player", g.ID, *g.Winner)
	}

	tx, err := d.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	version := g.Version
	if err := d.updateGame(ctx, tx, g); err != nil {
		g.Version = version
		return err
	}

	if err := execExpect(ctx, tx, 2,
		"UPDATE users SET games_played = games_played + 1 WHERE id IN (?, ?)",
		g.PlayerOne, *g.PlayerTwo); err != nil {
		g.Version = version
		return fmt.Errorf("failed to update games played: %w", err)
	}
	if err := execExpect(ctx, tx, 1,
		"UPDATE users SET games_won = games_won + 1 WHERE id = ?", *g.Winner); err != nil {
		g.Version = version
		return fmt.Errorf("failed to update games won: %w", err)
	}

	if err := tx.Commit(); err != nil {
		g.Version = version
		return fmt.Errorf("failed to commit win: %w", err)
	}
	return nil
}

// execExpect runs an update that must touch exactly want rows
func execExpect(ctx context.Context, db execer, want int64, query string, args ...any) error {
	res, err := db.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n != want {
		return fmt.Errorf("expected %d rows updated, got %d", want, n)
	}
	return nil
}

// GamesByState lists games in one state, most recently updated first
func (d *Database) GamesByState(ctx context.Context, state models.GameState, limit int) ([]*models.Game, error) {
	query := "SELECT " + gameColumns + " FROM games WHERE game_state = ? ORDER BY last_update DESC"
	args := []any{string(state)}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}
	return d.queryGames(ctx, query, args...)
}

// ActiveGamesForUser lists unfinished games the user plays in. A limit of 0 returns all of them.
func (d *Database) ActiveGamesForUser(ctx context.Context, userID int64, limit int) ([]*models.Game, error) {
	query := "SELECT " + gameColumns + " FROM games WHERE (player_one = ? OR player_two = ?) AND game_state IN (" +
		activeStatesSQL() + ") ORDER BY last_update DESC"
	args := []any{userID, userID}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}
	return d.queryGames(ctx, query, args...)
}

// StaleGames lists unfinished games last updated at or before olderThan
func (d *Database) StaleGames(ctx context.Context, olderThan time.Time) ([]*models.Game, error) {
	query := "SELECT " + gameColumns + " FROM games WHERE game_state IN (" + activeStatesSQL() +
		") AND last_update <= ? ORDER BY last_update DESC"
	return d.queryGames(ctx, query, toNanos(olderThan))
}

func (d *Database) queryGames(ctx context.Context, query string, args ...any) ([]*models.Game, error) {
	rows, err := d.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query games: %w", err)
	}
	defer rows.Close()

	games := []*models.Game{}
	for rows.Next() {
		g, err := scanGame(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan game: %w", err)
		}
		games = append(games, g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read games: %w", err)
	}
	return games, nil
}

func scanGame(row interface{ Scan(...any) error }) (*models.Game, error) {
	var g models.Game
	var state, settings, board, history string
	var playerTwo, winner sql.NullInt64
	var createdAt, lastUpdate int64

	err := row.Scan(&g.ID, &g.PlayerOne, &playerTwo, &winner, &state, &settings,
		&board, &history, &createdAt, &lastUpdate, &g.Version)
	if err != nil {
		return nil, err
	}

	g.State, err = models.ParseGameState(state)
	if err != nil {
		return nil, fmt.Errorf("game %s: %w", g.ID, err)
	}
	if playerTwo.Valid {
		id := playerTwo.Int64
		g.PlayerTwo = &id
	}
	if winner.Valid {
		id := winner.Int64
		g.Winner = &id
	}
	g.CreatedAt = fromNanos(createdAt)
	g.LastUpdate = fromNanos(lastUpdate)

	if err := decodeStrict(settings, &g.Rules); err != nil {
		return nil, fmt.Errorf("game %s settings: %w", g.ID, err)
	}
	if err := decodeStrict(board, &g.Board); err != nil {
		return nil, fmt.Errorf("game %s board: %w", g.ID, err)
	}
	if g.Board == nil {
		g.Board = models.Board{}
	}
	if err := g.Board.Validate(g.State, g.Rules); err != nil {
		return nil, fmt.Errorf("game %s board: %w", g.ID, err)
	}
	if err := decodeStrict(history, &g.History); err != nil {
		return nil, fmt.Errorf("game %s history: %w", g.ID, err)
	}
	if g.History == nil {
		g.History = []models.Guess{}
	}
	if err := models.ValidateHistory(g.History, g.Rules); err != nil {
		return nil, fmt.Errorf("game %s history: %w", g.ID, err)
	}
	return &g, nil
}

func encodeGame(g *models.Game) (settings, board, history string, err error) {
	s, err := json.Marshal(g.Rules)
	if err != nil {
		return "", "", "", fmt.Errorf("failed to marshal settings: %w", err)
	}
	b := g.Board
	if b == nil {
		b = models.Board{}
	}
	bb, err := json.Marshal(b)
	if err != nil {
		return "", "", "", fmt.Errorf("failed to marshal board: %w", err)
	}
	h := g.History
	if h == nil {
		h = []models.Guess{}
	}
	hb, err := json.Marshal(h)
	if err != nil {
		return "", "", "", fmt.Errorf("failed to marshal history: %w", err)
	}
	return string(s), string(bb), string(hb), nil
}

// decodeStrict rejects unknown fields so a malformed column fails on load
func decodeStrict(data string, v any) error {
	dec := json.NewDecoder(strings.NewReader(data))
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

func nullID(id *int64) any {
	if id == nil {
		return nil
	}
	return *id
}

func activeStatesSQL() string {
	quoted := make([]string, len(models.ActiveStates))
	for i, st := range models.ActiveStates {
		quoted[i] = "'" + string(st) + "'"
	}
	return strings.Join(quoted, ", ")
}
