package game

import "battleships/internal/models"

// PlaceFleet validates proposed ship placements against the rules and returns
// the fleet to store under the submitting player's slot.
func PlaceFleet(rules models.BoardRules, ships []models.ShipPlacement) (models.Fleet, error) {
	counts := rules.ShipCounts()
	occupied := make(map[string]struct{})
	totalLength := 0
	fleet := make(models.Fleet, 0, len(ships))

	for _, ship := range ships {
		if _, ok := counts[ship.Length]; !ok {
			return nil, ErrInvalidShipLength
		}
		counts[ship.Length]--
		totalLength += ship.Length

		x, y := ship.Position.X, ship.Position.Y
		maxX, maxY := x, y
		if ship.Vertical {
			maxY = y + ship.Length - 1
		} else {
			maxX = x + ship.Length - 1
		}
		if !rules.InBounds(x, y) || !rules.InBounds(maxX, maxY) {
			return nil, ErrShipOutOfBounds
		}

		cells := make(models.Ship, 0, ship.Length)
		for i := x; i <= maxX; i++ {
			for j := y; j <= maxY; j++ {
				coord := models.FormatCoord(i, j)
				cells = append(cells, coord)
				occupied[coord] = struct{}{}
			}
		}
		fleet = append(fleet, cells)
	}

	for _, remaining := range counts {
		if remaining != 0 {
			return nil, ErrInvalidShipCount
		}
	}
	if len(occupied) != totalLength {
		return nil, ErrOverlap
	}
	return fleet, nil
}
