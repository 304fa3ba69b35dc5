// Package memory keeps round records in process memory.
package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/mcoot/findingfriends/internal/archive"
	"github.com/mcoot/findingfriends/internal/dependencies/clock"
)

// Archive is an in-memory implementation of archive.Archive
type Archive struct {
	mu      sync.RWMutex
	clock   clock.Clock
	records []archive.Record
}

// New creates an empty in-memory archive
func New(clk clock.Clock) *Archive {
	return &Archive{clock: clk}
}

// Ensure Archive implements the interface
var _ archive.Archive = (*Archive)(nil)

func (a *Archive) Append(ctx context.Context, in archive.RecordInput) (archive.Record, error) {
	if err := ctx.Err(); err != nil {
		return archive.Record{}, err
	}

	record := archive.Record{
		ID:          uuid.NewString(),
		SessionDate: in.SessionDate,
		Round:       in.Round,
		Mode:        in.Mode,
		Players:     append([]string(nil), in.Players...),
		Scores:      copyScores(in.Scores),
		CreatedAt:   a.clock.Now().UTC(),
	}

	a.mu.Lock()
	a.records = append(a.records, record)
	a.mu.Unlock()

	return record, nil
}

func (a *Archive) Recent(ctx context.Context, limit int) ([]archive.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	limit = archive.NormalizeLimit(limit)

	a.mu.RLock()
	defer a.mu.RUnlock()

	// Appends are in insertion order, so newest is last
	result := make([]archive.Record, 0, min(limit, len(a.records)))
	for i := len(a.records) - 1; i >= 0 && len(result) < limit; i-- {
		r := a.records[i]
		r.Players = append([]string(nil), r.Players...)
		r.Scores = copyScores(r.Scores)
		result = append(result, r)
	}
	return result, nil
}

// Close is a no-op
func (a *Archive) Close() error {
	return nil
}

func copyScores(scores map[string]float64) map[string]float64 {
	c := make(map[string]float64, len(scores))
	for k, v := range scores {
		c[k] = v
	}
	return c
}
