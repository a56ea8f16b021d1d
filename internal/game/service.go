package game

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"battleships/internal/database"
	"battleships/internal/models"
	"battleships/internal/validation"
)

const (
	DefaultLimit = 10
	MaxLimit     = 100
)

// Store is the persistence the service needs. *database.Database implements it.
type Store interface {
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByID(ctx context.Context, id int64) (*models.User, error)
	CreateGame(ctx context.Context, g *models.Game) error
	GetGame(ctx context.Context, id string) (*models.Game, error)
	UpdateGame(ctx context.Context, g *models.Game) error
	RecordWin(ctx context.Context, g *models.Game) error
	GamesByState(ctx context.Context, state models.GameState, limit int) ([]*models.Game, error)
	ActiveGamesForUser(ctx context.Context, userID int64, limit int) ([]*models.Game, error)
	StaleGames(ctx context.Context, olderThan time.Time) ([]*models.Game, error)
	Rankings(ctx context.Context, limit int) ([]models.Ranking, error)
}

// Service runs the game operations exposed by the API on top of a Store
type Service struct {
	store Store
	now   func() time.Time
}

// NewService creates a service using the wall clock
func NewService(store Store) *Service {
	return &Service{
		store: store,
		now:   func() time.Time { return time.Now().UTC() },
	}
}

// SetClock replaces the time source; used by tests and the sweeper
func (s *Service) SetClock(now func() time.Time) {
	s.now = now
}

// Now returns the service's current time
func (s *Service) Now() time.Time {
	return s.now()
}

// RegisterUser claims a username for the caller's email
func (s *Service) RegisterUser(ctx context.Context, id models.Identity, name string) (*models.User, error) {
	if id.Email == "" {
		return nil, ErrUnauthorized
	}
	if err := validation.ValidateUsername(name); err != nil {
		return nil, withDetail(ErrInvalidUserName, err.Error())
	}
	user := &models.User{Name: name, Email: id.Email, CreatedAt: s.now()}
	if err := s.store.CreateUser(ctx, user); err != nil {
		return nil, s.storeErr(err)
	}
	log.Printf("Registered user %s", user.Name)
	return user, nil
}

// CurrentUser resolves the caller to a registered user
func (s *Service) CurrentUser(ctx context.Context, id models.Identity) (*models.User, error) {
	if id.Email == "" {
		return nil, ErrUnauthorized
	}
	user, err := s.store.GetUserByEmail(ctx, id.Email)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, ErrNotRegistered
		}
		return nil, fmt.Errorf("failed to resolve caller: %w", err)
	}
	return user, nil
}

// CreateGame hosts a new game; nil rules mean the defaults
func (s *Service) CreateGame(ctx context.Context, id models.Identity, rules *models.BoardRulesInput) (*models.GameInfo, error) {
	user, err := s.CurrentUser(ctx, id)
	if err != nil {
		return nil, err
	}
	g, err := NewGame(NewKey(), user.ID, rules.Merge(DefaultRules()), s.now())
	if err != nil {
		return nil, err
	}
	if err := s.store.CreateGame(ctx, g); err != nil {
		return nil, s.storeErr(err)
	}
	return s.info(ctx, g)
}

// GetGame returns a single game by key
func (s *Service) GetGame(ctx context.Context, key string) (*models.GameInfo, error) {
	g, err := s.loadGame(ctx, key)
	if err != nil {
		return nil, err
	}
	return s.info(ctx, g)
}

// ListGames returns games in the given state, most recently updated first
func (s *Service) ListGames(ctx context.Context, state models.GameState, limit int) ([]models.GameInfo, error) {
	if state == "" {
		state = models.StateWaitingForOpponent
	}
	games, err := s.store.GamesByState(ctx, state, clampLimit(limit))
	if err != nil {
		return nil, s.storeErr(err)
	}
	return s.infos(ctx, games)
}

// ActiveGames returns the caller's games that have not finished
func (s *Service) ActiveGames(ctx context.Context, id models.Identity) ([]models.GameInfo, error) {
	user, err := s.CurrentUser(ctx, id)
	if err != nil {
		return nil, err
	}
	games, err := s.store.ActiveGamesForUser(ctx, user.ID, 0)
	if err != nil {
		return nil, s.storeErr(err)
	}
	return s.infos(ctx, games)
}

// JoinGame seats the caller as player two
func (s *Service) JoinGame(ctx context.Context, id models.Identity, key string) (*models.GameInfo, error) {
	user, err := s.CurrentUser(ctx, id)
	if err != nil {
		return nil, err
	}
	g, err := s.mutate(ctx, key, func(g *models.Game, now time.Time) error {
		return Join(g, user.ID, now)
	})
	if err != nil {
		return nil, err
	}
	return s.info(ctx, g)
}

// CancelGame lets either player abandon a game that is not complete
func (s *Service) CancelGame(ctx context.Context, id models.Identity, key string) (*models.GameInfo, error) {
	user, err := s.CurrentUser(ctx, id)
	if err != nil {
		return nil, err
	}
	g, err := s.mutate(ctx, key, func(g *models.Game, now time.Time) error {
		if !g.HasPlayer(user.ID) {
			return ErrNotAParticipant
		}
		return Cancel(g, now)
	})
	if err != nil {
		return nil, err
	}
	return s.info(ctx, g)
}

// ExpireGame cancels an idle game on behalf of the system. version is the one the
// caller saw when it judged the game idle; if the game has moved since, nothing is
// written and ErrConcurrentUpdate is returned.
func (s *Service) ExpireGame(ctx context.Context, key string, version int64) error {
	_, err := s.mutate(ctx, key, func(g *models.Game, now time.Time) error {
		if g.Version != version {
			return ErrConcurrentUpdate
		}
		return Cancel(g, now)
	})
	return err
}

// PlaceShips submits the caller's fleet
func (s *Service) PlaceShips(ctx context.Context, id models.Identity, key string, ships []models.ShipPlacement) (string, error) {
	user, err := s.CurrentUser(ctx, id)
	if err != nil {
		return "", err
	}
	var msg string
	_, err = s.mutate(ctx, key, func(g *models.Game, now time.Time) error {
		var err error
		msg, err = PlaceShips(g, user.ID, ships, now)
		return err
	})
	if err != nil {
		return "", err
	}
	return msg, nil
}

// SubmitGuess fires the caller's shot. A winning shot is committed together with
// both players' records in one transaction.
func (s *Service) SubmitGuess(ctx context.Context, id models.Identity, key string, x, y int) (string, error) {
	user, err := s.CurrentUser(ctx, id)
	if err != nil {
		return "", err
	}
	g, err := s.loadGame(ctx, key)
	if err != nil {
		return "", err
	}
	outcome, err := Guess(g, user, x, y, s.now())
	if err != nil {
		return "", err
	}

	if outcome.Won() {
		err = s.store.RecordWin(ctx, g)
	} else {
		err = s.store.UpdateGame(ctx, g)
	}
	if err != nil {
		return "", s.storeErr(err)
	}
	if outcome.Won() {
		log.Printf("Game %s won by %s", g.ID, user.Name)
	}
	return outcome.Message(), nil
}

// GameHistory returns every guess of a game in the order it was made
func (s *Service) GameHistory(ctx context.Context, key string) ([]models.GameGuess, error) {
	g, err := s.loadGame(ctx, key)
	if err != nil {
		return nil, err
	}
	out := make([]models.GameGuess, 0, len(g.History))
	for _, h := range g.History {
		x, y, err := models.ParseCoord(h.Coordinate)
		if err != nil {
			return nil, fmt.Errorf("corrupt history in game %s: %w", g.ID, err)
		}
		out = append(out, models.GameGuess{
			Player:   h.Player,
			Position: models.Position{X: x, Y: y},
			Result:   h.Result,
		})
	}
	return out, nil
}

// Rankings returns users ordered by win ratio
func (s *Service) Rankings(ctx context.Context, limit int) ([]models.Ranking, error) {
	rankings, err := s.store.Rankings(ctx, clampLimit(limit))
	if err != nil {
		return nil, s.storeErr(err)
	}
	return rankings, nil
}

// StaleGames returns active games not updated since olderThan
func (s *Service) StaleGames(ctx context.Context, olderThan time.Time) ([]*models.Game, error) {
	games, err := s.store.StaleGames(ctx, olderThan)
	if err != nil {
		return nil, s.storeErr(err)
	}
	return games, nil
}

// Players loads both players of a game; the second is nil until someone joins
func (s *Service) Players(ctx context.Context, g *models.Game) (*models.User, *models.User, error) {
	p1, err := s.store.GetUserByID(ctx, g.PlayerOne)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load player one of %s: %w", g.ID, err)
	}
	if g.PlayerTwo == nil {
		return p1, nil, nil
	}
	p2, err := s.store.GetUserByID(ctx, *g.PlayerTwo)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load player two of %s: %w", g.ID, err)
	}
	return p1, p2, nil
}

func (s *Service) loadGame(ctx context.Context, key string) (*models.Game, error) {
	id, err := ParseKey(key)
	if err != nil {
		return nil, err
	}
	g, err := s.store.GetGame(ctx, id)
	if err != nil {
		return nil, s.storeErr(err)
	}
	return g, nil
}

// mutate re-reads the game, applies fn and writes it back guarded by the game's version
func (s *Service) mutate(ctx context.Context, key string, fn func(*models.Game, time.Time) error) (*models.Game, error) {
	g, err := s.loadGame(ctx, key)
	if err != nil {
		return nil, err
	}
	if err := fn(g, s.now()); err != nil {
		return nil, err
	}
	if err := s.store.UpdateGame(ctx, g); err != nil {
		return nil, s.storeErr(err)
	}
	return g, nil
}

func (s *Service) info(ctx context.Context, g *models.Game) (*models.GameInfo, error) {
	p1, p2, err := s.Players(ctx, g)
	if err != nil {
		return nil, err
	}
	info := &models.GameInfo{
		URLSafeKey: g.ID,
		PlayerOne:  p1.Name,
		GameState:  g.State,
		Rules:      g.Rules,
	}
	if p2 != nil {
		name := p2.Name
		info.PlayerTwo = &name
	}
	return info, nil
}

func (s *Service) infos(ctx context.Context, games []*models.Game) ([]models.GameInfo, error) {
	out := make([]models.GameInfo, 0, len(games))
	for _, g := range games {
		info, err := s.info(ctx, g)
		if err != nil {
			return nil, err
		}
		out = append(out, *info)
	}
	return out, nil
}

func (s *Service) storeErr(err error) error {
	switch {
	case errors.Is(err, database.ErrNotFound):
		return ErrGameNotFound
	case errors.Is(err, database.ErrStaleVersion):
		return ErrConcurrentUpdate
	case errors.Is(err, database.ErrDuplicateEmail):
		return ErrAlreadyRegistered
	case errors.Is(err, database.ErrDuplicateName):
		return ErrNameTaken
	}
	return err
}

func clampLimit(limit int) int {
	if limit <= 0 {
		return DefaultLimit
	}
	if limit > MaxLimit {
		return MaxLimit
	}
	return limit
}
