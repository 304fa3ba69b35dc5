// Package archive records every appended round outside the session store.
// The archive is append-only; sessions never read back from it.
package archive

import (
	"context"
	"time"

	"github.com/mcoot/findingfriends/internal/model"
)

// DefaultRecentLimit is used by Recent when the caller passes limit <= 0
const DefaultRecentLimit = 10

// RecordInput is the per-round payload handed to Append
type RecordInput struct {
	SessionDate model.SessionDate
	Round       int
	Mode        model.Mode
	Players     []string
	Scores      map[string]float64
}

// Record is a persisted round record
type Record struct {
	ID          string
	SessionDate model.SessionDate
	Round       int
	Mode        model.Mode
	Players     []string
	Scores      map[string]float64
	CreatedAt   time.Time
}

// Archive persists round records
type Archive interface {
	// Append stores one record and returns it with ID and CreatedAt set
	Append(ctx context.Context, in RecordInput) (Record, error)

	// Recent returns up to limit records, newest first
	Recent(ctx context.Context, limit int) ([]Record, error)

	Close() error
}

// NormalizeLimit applies DefaultRecentLimit to non-positive limits
func NormalizeLimit(limit int) int {
	if limit <= 0 {
		return DefaultRecentLimit
	}
	return limit
}

// InputFromRound builds the archive payload for a round appended to date
func InputFromRound(date model.SessionDate, r model.Round) RecordInput {
	scores := make(map[string]float64, len(r.Scores))
	for name, v := range r.Scores {
		scores[name] = v
	}
	return RecordInput{
		SessionDate: date,
		Round:       r.Round,
		Mode:        r.Mode,
		Players:     append([]string(nil), r.Players...),
		Scores:      scores,
	}
}
