package game

import (
	"fmt"

	"battleships/internal/models"
)

// Result is the classification of a single shot
type Result string

const (
	ResultMiss Result = "Miss."
	ResultHit  Result = "Hit!"
	ResultSunk Result = "Ship sunk!"
)

// Outcome describes what a guess did to the defender's fleet
type Outcome struct {
	Result         Result
	ShipsRemaining int
}

// Won reports whether the shot destroyed the last ship
func (o Outcome) Won() bool {
	return o.ShipsRemaining == 0
}

// Message is the text returned to the guessing player
func (o Outcome) Message() string {
	if o.Won() {
		return string(o.Result) + " You have won!"
	}
	plural := ""
	if o.ShipsRemaining > 1 {
		plural = "s"
	}
	return fmt.Sprintf("%s %d ship%s remaining.", o.Result, o.ShipsRemaining, plural)
}

// ResolveGuess fires at (x, y). The input fleet is left untouched; the returned
// fleet has the hit cell removed from the first ship that held it.
func ResolveGuess(fleet models.Fleet, rules models.BoardRules, x, y int) (models.Fleet, Outcome, error) {
	if !rules.InBounds(x, y) {
		return fleet, Outcome{}, ErrGuessOutOfBounds
	}

	coord := models.FormatCoord(x, y)
	next := fleet.Clone()
	outcome := Outcome{Result: ResultMiss}

	for i, ship := range next {
		idx := indexOf(ship, coord)
		if idx < 0 {
			continue
		}
		next[i] = append(ship[:idx], ship[idx+1:]...)
		if len(next[i]) == 0 {
			outcome.Result = ResultSunk
		} else {
			outcome.Result = ResultHit
		}
		break
	}

	outcome.ShipsRemaining = next.Remaining()
	return next, outcome, nil
}

func indexOf(ship models.Ship, coord string) int {
	for i, c := range ship {
		if c == coord {
			return i
		}
	}
	return -1
}
