// Package sqlite provides a SQLite-backed round archive.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/mcoot/findingfriends/internal/archive"
	"github.com/mcoot/findingfriends/internal/archive/sqlite/migrations"
	"github.com/mcoot/findingfriends/internal/dependencies/clock"
	"github.com/mcoot/findingfriends/internal/model"
	"github.com/mcoot/findingfriends/internal/platform/sqlitemigrate"
)

// Archive persists round records in SQLite.
type Archive struct {
	sqlDB *sql.DB
	clock clock.Clock
}

// Ensure Archive implements the interface
var _ archive.Archive = (*Archive)(nil)

func toMillis(value time.Time) int64 {
	return value.UTC().UnixMilli()
}

func fromMillis(value int64) time.Time {
	return time.UnixMilli(value).UTC()
}

// Open opens the archive database at path and applies embedded migrations.
func Open(ctx context.Context, path string, clk clock.Clock) (*Archive, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("archive path is required")
	}
	dsn := filepath.Clean(path) + "?_journal_mode=WAL&_foreign_keys=ON&_busy_timeout=5000&_synchronous=NORMAL"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if err := sqlitemigrate.Apply(ctx, sqlDB, migrations.FS, ""); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return &Archive{sqlDB: sqlDB, clock: clk}, nil
}

// Close closes the SQLite handle.
func (a *Archive) Close() error {
	if a == nil || a.sqlDB == nil {
		return nil
	}
	return a.sqlDB.Close()
}

// Append inserts one round record.
func (a *Archive) Append(ctx context.Context, in archive.RecordInput) (archive.Record, error) {
	if err := ctx.Err(); err != nil {
		return archive.Record{}, err
	}
	if a == nil || a.sqlDB == nil {
		return archive.Record{}, errors.New("archive is not configured")
	}

	players, err := json.Marshal(in.Players)
	if err != nil {
		return archive.Record{}, fmt.Errorf("encode players: %w", err)
	}
	scores, err := json.Marshal(in.Scores)
	if err != nil {
		return archive.Record{}, fmt.Errorf("encode scores: %w", err)
	}

	record := archive.Record{
		ID:          uuid.NewString(),
		SessionDate: in.SessionDate,
		Round:       in.Round,
		Mode:        in.Mode,
		Players:     append([]string(nil), in.Players...),
		Scores:      make(map[string]float64, len(in.Scores)),
		// stored at millisecond precision
		CreatedAt: fromMillis(toMillis(a.clock.Now())),
	}
	for k, v := range in.Scores {
		record.Scores[k] = v
	}

	_, err = a.sqlDB.ExecContext(
		ctx,
		`INSERT INTO round_records (
		   id,
		   session_date,
		   round,
		   mode,
		   players_json,
		   scores_json,
		   created_at
		 ) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		record.ID,
		string(record.SessionDate),
		record.Round,
		string(record.Mode),
		string(players),
		string(scores),
		toMillis(record.CreatedAt),
	)
	if err != nil {
		return archive.Record{}, fmt.Errorf("insert round record: %w", err)
	}
	return record, nil
}

// Recent returns the newest records first.
func (a *Archive) Recent(ctx context.Context, limit int) ([]archive.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if a == nil || a.sqlDB == nil {
		return nil, errors.New("archive is not configured")
	}

	rows, err := a.sqlDB.QueryContext(
		ctx,
		`SELECT id, session_date, round, mode, players_json, scores_json, created_at
		 FROM round_records
		 ORDER BY created_at DESC, seq DESC
		 LIMIT ?`,
		archive.NormalizeLimit(limit),
	)
	if err != nil {
		return nil, fmt.Errorf("query round records: %w", err)
	}
	defer rows.Close()

	records := make([]archive.Record, 0)
	for rows.Next() {
		var (
			record      archive.Record
			date, mode  string
			playersJSON string
			scoresJSON  string
			createdAt   int64
		)
		if err := rows.Scan(&record.ID, &date, &record.Round, &mode, &playersJSON, &scoresJSON, &createdAt); err != nil {
			return nil, fmt.Errorf("scan round record: %w", err)
		}
		if err := json.Unmarshal([]byte(playersJSON), &record.Players); err != nil {
			return nil, fmt.Errorf("decode players for %s: %w", record.ID, err)
		}
		if err := json.Unmarshal([]byte(scoresJSON), &record.Scores); err != nil {
			return nil, fmt.Errorf("decode scores for %s: %w", record.ID, err)
		}
		record.SessionDate = model.SessionDate(date)
		record.Mode = model.Mode(mode)
		record.CreatedAt = fromMillis(createdAt)
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate round records: %w", err)
	}
	return records, nil
}
