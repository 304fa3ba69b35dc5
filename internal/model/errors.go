package model

import (
	"errors"
	"fmt"
)

// Common errors used across the application
var (
	// Round errors
	ErrInvalidRound = errors.New("invalid round")

	// Session errors
	ErrSessionNotFound     = errors.New("session not found")
	ErrSessionLocked       = errors.New("session is not accepting new rounds")
	ErrInvalidDate         = errors.New("invalid session date")
	ErrInvalidPlayerIndex  = errors.New("invalid player index")
	ErrInvalidPlayerName   = errors.New("invalid player name")
	ErrDuplicatePlayerName = errors.New("player name already in roster")

	// Store errors. Wrapped around the underlying cause so its message survives.
	ErrStore = errors.New("store error")
)

// StoreError wraps a persistence failure so callers can match ErrStore while
// the underlying message is preserved
func StoreError(err error) error {
	if err == nil || errors.Is(err, ErrStore) {
		return err
	}
	return fmt.Errorf("%w: %w", ErrStore, err)
}
