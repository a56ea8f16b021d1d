package game

import "errors"

// Kind classifies an error by who can fix it
type Kind string

const (
	KindValidation    Kind = "validation"
	KindConflict      Kind = "conflict"
	KindAuthorization Kind = "authorization"
	KindUnauthorized  Kind = "unauthorized"
	KindState         Kind = "state"
	KindNotFound      Kind = "not_found"
	KindInternal      Kind = "internal"
)

// Error is a rule violation reported back to the caller unchanged
type Error struct {
	Kind    Kind
	Code    string
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func newError(kind Kind, code, message string) *Error {
	return &Error{Kind: kind, Code: code, Message: message}
}

var (
	ErrInvalidConfiguration = newError(KindValidation, "invalid_configuration", "Invalid board rules")
	ErrInvalidShipLength    = newError(KindValidation, "invalid_ship_length", "Invalid ship length.")
	ErrShipOutOfBounds      = newError(KindValidation, "out_of_bounds", "Ship out of bounds.")
	ErrGuessOutOfBounds     = newError(KindValidation, "out_of_bounds", "Coordinates out of bounds.")
	ErrOverlap              = newError(KindValidation, "overlap", "Ships cannot overlap.")
	ErrInvalidShipCount     = newError(KindValidation, "invalid_ship_count", "Invalid ship count.")
	ErrInvalidUserName      = newError(KindValidation, "invalid_user_name", "Invalid user name")

	ErrAlreadyRegistered = newError(KindConflict, "already_registered", "You have already registered!")
	ErrNameTaken         = newError(KindConflict, "name_taken", "A User with that name already exists!")
	ErrAlreadyPlaced     = newError(KindConflict, "already_placed", "You have already submitted your ships.")
	ErrSelfJoin          = newError(KindConflict, "self_join", "You cannot join your own game.")
	ErrConcurrentUpdate  = newError(KindConflict, "concurrent_update", "Game was modified by another request, reload and try again.")

	ErrUnauthorized    = newError(KindUnauthorized, "unauthorized", "Unauthorized.")
	ErrNotRegistered   = newError(KindUnauthorized, "not_registered", "You must register a user name first.")
	ErrNotAParticipant = newError(KindAuthorization, "not_a_participant", "You are not a player of this game.")
	ErrNotYourTurn     = newError(KindAuthorization, "not_your_turn", "It is not your turn.")

	ErrAlreadyAccepting = newError(KindState, "not_accepting_players", "Game is not accepting additional players.")
	ErrNotPlacing       = newError(KindState, "wrong_state", "Game is not accepting ship placements")
	ErrNotInPlay        = newError(KindState, "wrong_state", "Game is not in play.")
	ErrAlreadyComplete  = newError(KindState, "already_complete", "Cannot cancel a completed game.")
	ErrAlreadyCancelled = newError(KindState, "already_cancelled", "Game has already been cancelled.")

	ErrInvalidKey   = newError(KindNotFound, "invalid_key", "Invalid Key")
	ErrGameNotFound = newError(KindNotFound, "game_not_found", "Game not found!")
)

// KindOf returns the kind of a game error, or KindInternal for anything else
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// detail wraps a sentinel with a more specific message while keeping errors.Is working
type detail struct {
	base *Error
	msg  string
}

func (d *detail) Error() string { return d.msg }

func (d *detail) Unwrap() error { return d.base }

func withDetail(base *Error, msg string) error {
	return &detail{base: base, msg: msg}
}
