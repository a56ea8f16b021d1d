package game

import (
	"strings"

	"github.com/google/uuid"
)

// NewKey returns a fresh urlsafe game key
func NewKey() string {
	return uuid.NewString()
}

// ParseKey normalises a urlsafe game key, rejecting anything that is not one
func ParseKey(key string) (string, error) {
	id, err := uuid.Parse(strings.TrimSpace(key))
	if err != nil {
		return "", ErrInvalidKey
	}
	return id.String(), nil
}
