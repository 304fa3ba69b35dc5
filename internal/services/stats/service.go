package stats

import (
	"context"
	"errors"
	"log/slog"

	"github.com/mcoot/findingfriends/internal/model"
	"github.com/mcoot/findingfriends/internal/storage"
)

// Service derives standings from stored sessions. Nothing is cached; every
// call reads the store and recomputes.
type Service struct {
	storage storage.Storage
	logger  *slog.Logger
}

// New creates a new stats Service
func New(storage storage.Storage, logger *slog.Logger) *Service {
	return &Service{
		storage: storage,
		logger:  logger.With(slog.String("component", "stats-service")),
	}
}

// SessionSummary ranks one session. A date with no stored session yields
// the default roster with zero totals.
func (s *Service) SessionSummary(ctx context.Context, date model.SessionDate) (model.Summary, error) {
	session, err := s.storage.GetSession(ctx, date)
	if errors.Is(err, model.ErrSessionNotFound) {
		session = model.NewSession(date)
	} else if err != nil {
		s.logger.Error("failed to load session",
			slog.String("date", string(date)),
			slog.String("error", err.Error()),
		)
		return model.Summary{}, model.StoreError(err)
	}

	summary := Summarize(SessionRankings(session), len(session.Rounds))
	summary.SessionCount = 1
	return summary, nil
}

// AllTimeSummary ranks every player across every stored session
func (s *Service) AllTimeSummary(ctx context.Context) (model.Summary, error) {
	sessions, err := s.storage.ListSessions(ctx)
	if err != nil {
		s.logger.Error("failed to list sessions", slog.String("error", err.Error()))
		return model.Summary{}, model.StoreError(err)
	}

	rounds := AllRounds(sessions)
	summary := Summarize(Rankings(rounds), len(rounds))
	summary.SessionCount = len(sessions)
	return summary, nil
}
