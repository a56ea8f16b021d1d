package game

import (
	"fmt"

	"battleships/internal/models"
)

const (
	MinBoardSize = 8
	MaxBoardSize = 20
	MaxShipCount = 5
)

// DefaultRules returns the classic 10x10 board with five ships
func DefaultRules() models.BoardRules {
	return models.BoardRules{
		Width:  10,
		Height: 10,
		Ship2:  1,
		Ship3:  2,
		Ship4:  1,
		Ship5:  1,
	}
}

// ValidateRules checks board dimensions and ship counts
func ValidateRules(r models.BoardRules) error {
	if r.Width < MinBoardSize || r.Width > MaxBoardSize ||
		r.Height < MinBoardSize || r.Height > MaxBoardSize {
		return withDetail(ErrInvalidConfiguration,
			fmt.Sprintf("Board dimensions must be between %d-%d", MinBoardSize, MaxBoardSize))
	}
	for _, n := range []int{r.Ship2, r.Ship3, r.Ship4, r.Ship5} {
		if n < 0 || n > MaxShipCount {
			return withDetail(ErrInvalidConfiguration,
				fmt.Sprintf("Ship count must be between 0-%d", MaxShipCount))
		}
	}
	if r.Ship2+r.Ship3+r.Ship4+r.Ship5 == 0 {
		return withDetail(ErrInvalidConfiguration, "Fleet must contain at least one ship")
	}
	if r.OccupiedCells() > r.Width*r.Height {
		return withDetail(ErrInvalidConfiguration, "Fleet does not fit on the board")
	}
	return nil
}
