package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/mcoot/findingfriends/internal/archive"
	"github.com/mcoot/findingfriends/internal/dependencies/clock"
	"github.com/mcoot/findingfriends/internal/model"
	"github.com/mcoot/findingfriends/internal/services/scoring"
	"github.com/mcoot/findingfriends/internal/storage"
)

// Publisher receives session change notifications for live views
type Publisher interface {
	Publish(event model.Event)
}

type noopPublisher struct{}

func (noopPublisher) Publish(model.Event) {}

// Controller owns session state: lazy creation, roster renames and round appends
type Controller struct {
	storage   storage.Storage
	archive   archive.Archive
	clock     clock.Clock
	location  *time.Location
	publisher Publisher
	logger    *slog.Logger

	mu    sync.Mutex
	locks map[model.SessionDate]*sync.Mutex
}

// NewController creates a new session Controller.
// location decides which calendar date is "today"; nil means time.Local.
func NewController(
	storage storage.Storage,
	archive archive.Archive,
	clock clock.Clock,
	location *time.Location,
	publisher Publisher,
	logger *slog.Logger,
) *Controller {
	if location == nil {
		location = time.Local
	}
	if publisher == nil {
		publisher = noopPublisher{}
	}
	return &Controller{
		storage:   storage,
		archive:   archive,
		clock:     clock,
		location:  location,
		publisher: publisher,
		logger:    logger.With(slog.String("component", "session-controller")),
		locks:     make(map[model.SessionDate]*sync.Mutex),
	}
}

// sessionLock returns the mutex serialising writers of one session
func (c *Controller) sessionLock(date model.SessionDate) *sync.Mutex {
	c.mu.Lock()
	defer c.mu.Unlock()
	l, ok := c.locks[date]
	if !ok {
		l = &sync.Mutex{}
		c.locks[date] = l
	}
	return l
}

// Today returns the current session date
func (c *Controller) Today() model.SessionDate {
	return model.SessionDate(clock.Today(c.clock, c.location))
}

// IsEditable reports whether date currently accepts new rounds
func (c *Controller) IsEditable(date model.SessionDate) bool {
	return date == c.Today()
}

// GetOrCreate returns the session for date, creating it with the default roster on first access
func (c *Controller) GetOrCreate(ctx context.Context, date model.SessionDate) (*model.Session, error) {
	session, err := c.storage.GetSession(ctx, date)
	if err == nil {
		return session, nil
	}
	if !errors.Is(err, model.ErrSessionNotFound) {
		return nil, model.StoreError(err)
	}

	session, err = c.storage.UpdateSession(ctx, date, func(*model.Session) error { return nil })
	if err != nil {
		return nil, model.StoreError(err)
	}
	c.logger.Info("session created", slog.String("date", string(date)))
	return session, nil
}

// ListSessions returns every stored session in date order
func (c *Controller) ListSessions(ctx context.Context) ([]*model.Session, error) {
	sessions, err := c.storage.ListSessions(ctx)
	if err != nil {
		return nil, model.StoreError(err)
	}
	return sessions, nil
}

// Rename replaces one roster slot. Rounds already recorded keep the old name.
func (c *Controller) Rename(ctx context.Context, date model.SessionDate, index int, newName string) (*model.Session, error) {
	if index < 0 || index >= model.RosterSize {
		return nil, fmt.Errorf("%w: %d", model.ErrInvalidPlayerIndex, index)
	}
	name := strings.TrimSpace(newName)
	if name == "" {
		return nil, fmt.Errorf("%w: name must not be empty", model.ErrInvalidPlayerName)
	}

	lock := c.sessionLock(date)
	lock.Lock()
	defer lock.Unlock()

	var previous string
	session, err := c.storage.UpdateSession(ctx, date, func(s *model.Session) error {
		if other := s.PlayerIndex(name); other != -1 && other != index {
			return fmt.Errorf("%w: %q", model.ErrDuplicatePlayerName, name)
		}
		previous = s.Players[index]
		s.Players[index] = name
		return nil
	})
	if err != nil {
		if errors.Is(err, model.ErrDuplicatePlayerName) {
			return nil, err
		}
		return nil, model.StoreError(err)
	}

	c.logger.Info("player renamed",
		slog.String("date", string(date)),
		slog.Int("index", index),
		slog.String("from", previous),
		slog.String("to", name),
	)
	c.publisher.Publish(model.Event{
		Type:      model.EventRosterUpdated,
		Timestamp: c.clock.Now(),
		Date:      date,
	})
	return session, nil
}

// AppendRound validates and scores a round, archives it, then appends it to
// the session under the session's lock. Nothing is written when validation
// or archiving fails.
func (c *Controller) AppendRound(ctx context.Context, date model.SessionDate, input model.RoundInput) (*model.Round, error) {
	if !c.IsEditable(date) {
		return nil, fmt.Errorf("%w: %s is not today's session", model.ErrSessionLocked, date)
	}

	lock := c.sessionLock(date)
	lock.Lock()
	defer lock.Unlock()

	session, err := c.GetOrCreate(ctx, date)
	if err != nil {
		return nil, err
	}

	resolved, err := scoring.ResolveRound(session.Players, input)
	if err != nil {
		return nil, err
	}
	if err := scoring.Validate(resolved.Mode, resolved.FriendIndices, resolved.Bid, resolved.OpponentScore); err != nil {
		return nil, err
	}

	result := scoring.Compute(resolved.Mode, session.Players, resolved.HostIndex, resolved.FriendIndices, resolved.Bid, resolved.OpponentScore)

	friends := make([]string, 0, len(resolved.FriendIndices))
	for _, i := range resolved.FriendIndices {
		friends = append(friends, session.Players[i])
	}
	round := model.Round{
		Round:         session.NextRound,
		Mode:          resolved.Mode,
		Players:       append([]string(nil), session.Players...),
		Host:          session.Players[resolved.HostIndex],
		Friends:       friends,
		Bid:           resolved.Bid,
		OpponentScore: resolved.OpponentScore,
		Scores:        result.Scores,
		Winner:        result.Winner,
		Distribution:  result.Distribution,
		RecordedAt:    c.clock.Now(),
	}

	if _, err := c.archive.Append(ctx, archive.InputFromRound(date, round)); err != nil {
		c.logger.Error("failed to archive round",
			slog.String("date", string(date)),
			slog.Int("round", round.Round),
			slog.String("error", err.Error()),
		)
		return nil, model.StoreError(err)
	}

	_, err = c.storage.UpdateSession(ctx, date, func(s *model.Session) error {
		s.Rounds = append(s.Rounds, round.Clone())
		s.NextRound = round.Round + 1
		return nil
	})
	if err != nil {
		c.logger.Error("failed to save session",
			slog.String("date", string(date)),
			slog.Int("round", round.Round),
			slog.String("error", err.Error()),
		)
		return nil, model.StoreError(err)
	}

	c.logger.Info("round recorded",
		slog.String("date", string(date)),
		slog.Int("round", round.Round),
		slog.String("mode", string(round.Mode)),
		slog.String("winner", string(round.Winner)),
	)

	published := round.Clone()
	c.publisher.Publish(model.Event{
		Type:      model.EventRoundAdded,
		Timestamp: round.RecordedAt,
		Date:      date,
		Round:     &published,
	})
	return &round, nil
}

// RecentRecords returns the newest archived round records
func (c *Controller) RecentRecords(ctx context.Context, limit int) ([]archive.Record, error) {
	records, err := c.archive.Recent(ctx, limit)
	if err != nil {
		return nil, model.StoreError(err)
	}
	return records, nil
}
