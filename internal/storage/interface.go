package storage

import (
	"context"

	"github.com/mcoot/findingfriends/internal/model"
)

// UpdateFunc mutates a session in place. Returning an error aborts the update
// and nothing is written.
type UpdateFunc func(session *model.Session) error

// Storage defines the interface for session persistence
type Storage interface {
	// GetSession returns a copy of the stored session, or ErrSessionNotFound
	GetSession(ctx context.Context, date model.SessionDate) (*model.Session, error)

	// UpdateSession reads the session (a fresh default one if absent),
	// applies fn and replaces the stored entry as a single step.
	// It returns the session as written.
	UpdateSession(ctx context.Context, date model.SessionDate, fn UpdateFunc) (*model.Session, error)

	// ListSessions returns every stored session ordered by date
	ListSessions(ctx context.Context) ([]*model.Session, error)
}
