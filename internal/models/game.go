package models

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// GameState is the lifecycle stage of a match
type GameState string

const (
	StateWaitingForOpponent GameState = "WAITING_FOR_OPPONENT"
	StatePreparingBoard     GameState = "PREPARING_BOARD"
	StatePlayerOneTurn      GameState = "PLAYER_ONE_TURN"
	StatePlayerTwoTurn      GameState = "PLAYER_TWO_TURN"
	StateGameComplete       GameState = "GAME_COMPLETE"
	StateGameCancelled      GameState = "GAME_CANCELLED"
)

// ActiveStates are the states a game can still progress from
var ActiveStates = []GameState{
	StateWaitingForOpponent,
	StatePreparingBoard,
	StatePlayerOneTurn,
	StatePlayerTwoTurn,
}

// ParseGameState accepts the upper-case state name
func ParseGameState(s string) (GameState, error) {
	switch st := GameState(strings.ToUpper(strings.TrimSpace(s))); st {
	case StateWaitingForOpponent, StatePreparingBoard, StatePlayerOneTurn,
		StatePlayerTwoTurn, StateGameComplete, StateGameCancelled:
		return st, nil
	}
	return "", fmt.Errorf("unknown game state %q", s)
}

// IsActive reports whether the state is non-terminal
func (s GameState) IsActive() bool {
	for _, st := range ActiveStates {
		if st == s {
			return true
		}
	}
	return false
}

// IsTurn reports whether a guess may be taken in this state
func (s GameState) IsTurn() bool {
	return s == StatePlayerOneTurn || s == StatePlayerTwoTurn
}

// BoardRules describes the board dimensions and fleet composition of a game
type BoardRules struct {
	Width  int `json:"width"`
	Height int `json:"height"`
	Ship2  int `json:"ship_2"`
	Ship3  int `json:"ship_3"`
	Ship4  int `json:"ship_4"`
	Ship5  int `json:"ship_5"`
}

// ShipCounts maps ship length to the number of ships of that length
func (r BoardRules) ShipCounts() map[int]int {
	return map[int]int{2: r.Ship2, 3: r.Ship3, 4: r.Ship4, 5: r.Ship5}
}

// OccupiedCells is the number of cells a complete fleet covers
func (r BoardRules) OccupiedCells() int {
	return 2*r.Ship2 + 3*r.Ship3 + 4*r.Ship4 + 5*r.Ship5
}

// InBounds reports whether a 1-indexed coordinate lies on the board
func (r BoardRules) InBounds(x, y int) bool {
	return x >= 1 && x <= r.Width && y >= 1 && y <= r.Height
}

// BoardRulesInput is the optional rules payload of a new game; omitted fields take defaults
type BoardRulesInput struct {
	Width  *int `json:"width,omitempty"`
	Height *int `json:"height,omitempty"`
	Ship2  *int `json:"ship_2,omitempty"`
	Ship3  *int `json:"ship_3,omitempty"`
	Ship4  *int `json:"ship_4,omitempty"`
	Ship5  *int `json:"ship_5,omitempty"`
}

// Merge overlays the provided fields on top of base
func (in *BoardRulesInput) Merge(base BoardRules) BoardRules {
	if in == nil {
		return base
	}
	pick := func(v *int, def int) int {
		if v == nil {
			return def
		}
		return *v
	}
	return BoardRules{
		Width:  pick(in.Width, base.Width),
		Height: pick(in.Height, base.Height),
		Ship2:  pick(in.Ship2, base.Ship2),
		Ship3:  pick(in.Ship3, base.Ship3),
		Ship4:  pick(in.Ship4, base.Ship4),
		Ship5:  pick(in.Ship5, base.Ship5),
	}
}

// Slot names which player role a board belongs to
type Slot string

const (
	SlotPlayerOne Slot = "player_one"
	SlotPlayerTwo Slot = "player_two"
)

// Other returns the opposing slot
func (s Slot) Other() Slot {
	if s == SlotPlayerOne {
		return SlotPlayerTwo
	}
	return SlotPlayerOne
}

// Ship is the ordered list of cells of a ship that have not been hit yet
type Ship []string

// Fleet is a player's ships in placement order
type Fleet []Ship

// Remaining counts ships that still have unhit cells
func (f Fleet) Remaining() int {
	n := 0
	for _, s := range f {
		if len(s) > 0 {
			n++
		}
	}
	return n
}

// Clone deep-copies the fleet
func (f Fleet) Clone() Fleet {
	out := make(Fleet, len(f))
	for i, s := range f {
		out[i] = append(Ship{}, s...)
	}
	return out
}

// Board holds each player's fleet keyed by slot
type Board map[Slot]Fleet

// Validate checks a board loaded from storage against the game's state and rules.
// No fleet exists before an opponent joins, and both must be present once play starts.
func (b Board) Validate(state GameState, rules BoardRules) error {
	switch {
	case state == StateWaitingForOpponent && len(b) != 0:
		return fmt.Errorf("board has %d fleets before an opponent joined", len(b))
	case state.IsTurn() || state == StateGameComplete:
		for _, slot := range []Slot{SlotPlayerOne, SlotPlayerTwo} {
			if _, ok := b[slot]; !ok {
				return fmt.Errorf("%s fleet missing in state %s", slot, state)
			}
		}
	}
	for slot, fleet := range b {
		if slot != SlotPlayerOne && slot != SlotPlayerTwo {
			return fmt.Errorf("unknown board slot %q", slot)
		}
		for i, ship := range fleet {
			if len(ship) > 5 {
				return fmt.Errorf("%s ship %d has %d cells", slot, i, len(ship))
			}
			for _, cell := range ship {
				x, y, err := ParseCoord(cell)
				if err != nil {
					return fmt.Errorf("%s ship %d: %w", slot, i, err)
				}
				if !rules.InBounds(x, y) {
					return fmt.Errorf("%s ship %d: cell %s outside board", slot, i, cell)
				}
			}
		}
	}
	return nil
}

// Guess is one entry of a game's history
type Guess struct {
	Player     string `json:"player"`
	Coordinate string `json:"coordinate"`
	Result     string `json:"result"`
}

// ValidateHistory checks history rows loaded from storage
func ValidateHistory(history []Guess, rules BoardRules) error {
	for i, g := range history {
		if g.Player == "" || g.Result == "" {
			return fmt.Errorf("history entry %d is incomplete", i)
		}
		x, y, err := ParseCoord(g.Coordinate)
		if err != nil {
			return fmt.Errorf("history entry %d: %w", i, err)
		}
		if !rules.InBounds(x, y) {
			return fmt.Errorf("history entry %d: %s outside board", i, g.Coordinate)
		}
	}
	return nil
}

// FormatCoord renders a cell as "x,y"
func FormatCoord(x, y int) string {
	return strconv.Itoa(x) + "," + strconv.Itoa(y)
}

// ParseCoord parses an "x,y" cell
func ParseCoord(s string) (int, int, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("invalid coordinate %q", s)
	}
	x, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, fmt.Errorf("invalid coordinate %q", s)
	}
	y, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, fmt.Errorf("invalid coordinate %q", s)
	}
	return x, y, nil
}

// Game is the authoritative record of a single match
type Game struct {
	ID         string     `json:"id" db:"id"`
	PlayerOne  int64      `json:"playerOne" db:"player_one"`
	PlayerTwo  *int64     `json:"playerTwo,omitempty" db:"player_two"`
	Winner     *int64     `json:"winner,omitempty" db:"player_winner"`
	State      GameState  `json:"gameState" db:"game_state"`
	Rules      BoardRules `json:"rules" db:"-"`
	Board      Board      `json:"-" db:"game_board"`
	History    []Guess    `json:"-" db:"game_history"`
	CreatedAt  time.Time  `json:"createdAt" db:"created_at"`
	LastUpdate time.Time  `json:"lastUpdate" db:"last_update"`
	Version    int64      `json:"-" db:"version"`
}

// SlotOf returns the slot a user plays in
func (g *Game) SlotOf(userID int64) (Slot, bool) {
	if g.PlayerOne == userID {
		return SlotPlayerOne, true
	}
	if g.PlayerTwo != nil && *g.PlayerTwo == userID {
		return SlotPlayerTwo, true
	}
	return "", false
}

// HasPlayer reports whether the user is one of the two players
func (g *Game) HasPlayer(userID int64) bool {
	_, ok := g.SlotOf(userID)
	return ok
}

// GameInfo is the external representation of a game
type GameInfo struct {
	URLSafeKey string     `json:"urlsafe_key"`
	PlayerOne  string     `json:"player_one"`
	PlayerTwo  *string    `json:"player_two,omitempty"`
	GameState  GameState  `json:"game_state"`
	Rules      BoardRules `json:"rules"`
}

// NewGameRequest for creating a game
type NewGameRequest struct {
	Rules *BoardRulesInput `json:"rules,omitempty"`
}

// Position is a 1-indexed board coordinate
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// ShipPlacement is a proposed ship: top-left anchor, length and orientation
type ShipPlacement struct {
	Position Position `json:"position"`
	Length   int      `json:"length"`
	Vertical bool     `json:"vertical"`
}

// ShipPlacementRequest carries a player's whole fleet
type ShipPlacementRequest struct {
	Ships []ShipPlacement `json:"ships" binding:"required"`
}

// GuessRequest is a single shot at the opponent's board
type GuessRequest struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// GameGuess is the external form of a history entry
type GameGuess struct {
	Player   string   `json:"player"`
	Position Position `json:"position"`
	Result   string   `json:"result"`
}

// GameList wraps a list of games
type GameList struct {
	Games []GameInfo `json:"games"`
}

// GameHistory wraps the guesses of one game in the order they were made
type GameHistory struct {
	Guesses []GameGuess `json:"guesses"`
}
