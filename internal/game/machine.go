package game

import (
	"fmt"
	"time"

	"battleships/internal/models"
)

// transitions lists every state change a game may make. Anything not listed is rejected.
var transitions = map[models.GameState][]models.GameState{
	models.StateWaitingForOpponent: {models.StatePreparingBoard, models.StateGameCancelled},
	models.StatePreparingBoard:     {models.StatePlayerOneTurn, models.StateGameCancelled},
	models.StatePlayerOneTurn:      {models.StatePlayerTwoTurn, models.StateGameComplete, models.StateGameCancelled},
	models.StatePlayerTwoTurn:      {models.StatePlayerOneTurn, models.StateGameComplete, models.StateGameCancelled},
}

// CanTransition reports whether from -> to is in the transition table
func CanTransition(from, to models.GameState) bool {
	for _, st := range transitions[from] {
		if st == to {
			return true
		}
	}
	return false
}

func moveTo(g *models.Game, to models.GameState, now time.Time) error {
	if !CanTransition(g.State, to) {
		return fmt.Errorf("illegal transition %s -> %s", g.State, to)
	}
	g.State = to
	g.LastUpdate = now
	return nil
}

// NewGame returns a game hosted by playerOne, waiting for an opponent
func NewGame(id string, playerOne int64, rules models.BoardRules, now time.Time) (*models.Game, error) {
	if err := ValidateRules(rules); err != nil {
		return nil, err
	}
	return &models.Game{
		ID:         id,
		PlayerOne:  playerOne,
		State:      models.StateWaitingForOpponent,
		Rules:      rules,
		Board:      models.Board{},
		History:    []models.Guess{},
		CreatedAt:  now,
		LastUpdate: now,
	}, nil
}

// Join seats the user as player two
func Join(g *models.Game, userID int64, now time.Time) error {
	if g.State != models.StateWaitingForOpponent {
		return ErrAlreadyAccepting
	}
	if g.PlayerOne == userID {
		return ErrSelfJoin
	}
	if err := moveTo(g, models.StatePreparingBoard, now); err != nil {
		return err
	}
	g.PlayerTwo = &userID
	return nil
}

const (
	msgPlacedReady   = "Your ship placement has been set. Game is ready to begin"
	msgPlacedWaiting = "Your ship placement has been set. Waiting for opponent to place ships."
)

// PlaceShips stores the user's fleet. Once both fleets are in, player one moves first.
func PlaceShips(g *models.Game, userID int64, ships []models.ShipPlacement, now time.Time) (string, error) {
	if g.State != models.StatePreparingBoard {
		return "", ErrNotPlacing
	}
	fleet, err := PlaceFleet(g.Rules, ships)
	if err != nil {
		return "", err
	}
	slot, ok := g.SlotOf(userID)
	if !ok {
		return "", ErrNotAParticipant
	}
	if _, placed := g.Board[slot]; placed {
		return "", ErrAlreadyPlaced
	}

	if g.Board == nil {
		g.Board = models.Board{}
	}
	g.Board[slot] = fleet

	_, p1 := g.Board[models.SlotPlayerOne]
	_, p2 := g.Board[models.SlotPlayerTwo]
	if p1 && p2 {
		if err := moveTo(g, models.StatePlayerOneTurn, now); err != nil {
			return "", err
		}
		return msgPlacedReady, nil
	}
	g.LastUpdate = now
	return msgPlacedWaiting, nil
}

// Guess fires the user's shot at the opponent's fleet, records it in the history and
// passes the turn. A shot that sinks the last ship completes the game with the user
// as winner; the caller must then commit the result through the scoring transaction.
func Guess(g *models.Game, user *models.User, x, y int, now time.Time) (Outcome, error) {
	if !g.State.IsTurn() {
		return Outcome{}, ErrNotInPlay
	}
	slot, ok := g.SlotOf(user.ID)
	if !ok {
		return Outcome{}, ErrNotAParticipant
	}
	if (slot == models.SlotPlayerOne) != (g.State == models.StatePlayerOneTurn) {
		return Outcome{}, ErrNotYourTurn
	}

	target := slot.Other()
	fleet, outcome, err := ResolveGuess(g.Board[target], g.Rules, x, y)
	if err != nil {
		return Outcome{}, err
	}

	next := models.StatePlayerOneTurn
	if g.State == models.StatePlayerOneTurn {
		next = models.StatePlayerTwoTurn
	}
	if outcome.Won() {
		next = models.StateGameComplete
	}
	if err := moveTo(g, next, now); err != nil {
		return Outcome{}, err
	}

	g.Board[target] = fleet
	g.History = append(g.History, models.Guess{
		Player:     user.Name,
		Coordinate: models.FormatCoord(x, y),
		Result:     string(outcome.Result),
	})
	if outcome.Won() {
		winner := user.ID
		g.Winner = &winner
	}
	return outcome, nil
}

// Cancel ends a game that has not been completed
func Cancel(g *models.Game, now time.Time) error {
	switch g.State {
	case models.StateGameComplete:
		return ErrAlreadyComplete
	case models.StateGameCancelled:
		return ErrAlreadyCancelled
	}
	return moveTo(g, models.StateGameCancelled, now)
}
