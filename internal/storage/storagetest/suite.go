// Package storagetest holds the behaviour every storage.Storage must share.
package storagetest

import (
	"context"
	"errors"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/findingfriends/internal/model"
	"github.com/mcoot/findingfriends/internal/storage"
)

// Suite runs the storage contract against the Storage returned by NewStorage.
// Embed it and set NewStorage in SetupTest.
type Suite struct {
	suite.Suite
	Storage storage.Storage
	Ctx     context.Context
}

func sampleRound(n int, players []string) model.Round {
	return model.Round{
		Round:         n,
		Mode:          model.ModeNormal,
		Players:       append([]string(nil), players...),
		Host:          players[0],
		Friends:       []string{players[1]},
		Bid:           150,
		OpponentScore: 130,
		Scores: map[string]float64{
			players[0]: 203, players[1]: 67,
			players[2]: 0, players[3]: 0, players[4]: 0, players[5]: 0,
		},
		Winner:       model.WinnerHostTeam,
		Distribution: "Host Team wins",
		RecordedAt:   time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC),
	}
}

func (s *Suite) TestGetSessionNotFound() {
	_, err := s.Storage.GetSession(s.Ctx, "2024-01-01")
	s.ErrorIs(err, model.ErrSessionNotFound)
}

func (s *Suite) TestUpdateCreatesDefaultSession() {
	session, err := s.Storage.UpdateSession(s.Ctx, "2024-01-01", func(*model.Session) error { return nil })
	s.Require().NoError(err)

	s.Equal(model.SessionDate("2024-01-01"), session.Date)
	s.Equal(model.DefaultRoster(), session.Players)
	s.Empty(session.Rounds)
	s.Equal(1, session.NextRound)

	stored, err := s.Storage.GetSession(s.Ctx, "2024-01-01")
	s.Require().NoError(err)
	s.Equal(session.Players, stored.Players)
}

func (s *Suite) TestUpdateAppliesChanges() {
	_, err := s.Storage.UpdateSession(s.Ctx, "2024-01-01", func(session *model.Session) error {
		session.Players[0] = "Alice"
		session.Rounds = append(session.Rounds, sampleRound(session.NextRound, session.Players))
		session.NextRound++
		return nil
	})
	s.Require().NoError(err)

	stored, err := s.Storage.GetSession(s.Ctx, "2024-01-01")
	s.Require().NoError(err)
	s.Equal("Alice", stored.Players[0])
	s.Require().Len(stored.Rounds, 1)
	s.Equal(1, stored.Rounds[0].Round)
	s.Equal(203.0, stored.Rounds[0].Scores["Alice"])
	s.Equal([]string{"Player 2"}, stored.Rounds[0].Friends)
	s.Equal(model.WinnerHostTeam, stored.Rounds[0].Winner)
	s.Equal(2, stored.NextRound)
}

func (s *Suite) TestUpdateErrorWritesNothing() {
	boom := errors.New("boom")

	_, err := s.Storage.UpdateSession(s.Ctx, "2024-01-01", func(session *model.Session) error {
		session.Players[0] = "Alice"
		return boom
	})
	s.ErrorIs(err, boom)

	_, err = s.Storage.GetSession(s.Ctx, "2024-01-01")
	s.ErrorIs(err, model.ErrSessionNotFound)
}

func (s *Suite) TestReturnedSessionIsACopy() {
	_, err := s.Storage.UpdateSession(s.Ctx, "2024-01-01", func(*model.Session) error { return nil })
	s.Require().NoError(err)

	first, err := s.Storage.GetSession(s.Ctx, "2024-01-01")
	s.Require().NoError(err)
	first.Players[0] = "Mallory"

	second, err := s.Storage.GetSession(s.Ctx, "2024-01-01")
	s.Require().NoError(err)
	s.Equal("Player 1", second.Players[0])
}

func (s *Suite) TestListSessionsOrderedByDate() {
	for _, date := range []model.SessionDate{"2024-03-01", "2024-01-15", "2024-02-10"} {
		_, err := s.Storage.UpdateSession(s.Ctx, date, func(*model.Session) error { return nil })
		s.Require().NoError(err)
	}

	sessions, err := s.Storage.ListSessions(s.Ctx)
	s.Require().NoError(err)
	s.Require().Len(sessions, 3)
	s.Equal(model.SessionDate("2024-01-15"), sessions[0].Date)
	s.Equal(model.SessionDate("2024-02-10"), sessions[1].Date)
	s.Equal(model.SessionDate("2024-03-01"), sessions[2].Date)
}

func (s *Suite) TestListSessionsEmpty() {
	sessions, err := s.Storage.ListSessions(s.Ctx)
	s.Require().NoError(err)
	s.Empty(sessions)
}
