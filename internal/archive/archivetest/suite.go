// Package archivetest holds the behaviour every archive.Archive must share.
package archivetest

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"github.com/mcoot/findingfriends/internal/archive"
	"github.com/mcoot/findingfriends/internal/dependencies/mocks"
	"github.com/mcoot/findingfriends/internal/model"
)

// Suite runs the archive contract. Embedders set Archive and Clock in SetupTest;
// Clock must be the clock the archive was built with.
type Suite struct {
	suite.Suite
	Archive archive.Archive
	Clock   *mocks.MockClock
	Ctx     context.Context
}

// StartTime is a convenient initial reading for Clock
var StartTime = time.Date(2024, 5, 4, 19, 30, 0, 0, time.UTC)

func input(round int) archive.RecordInput {
	players := model.DefaultRoster()
	return archive.RecordInput{
		SessionDate: "2024-05-04",
		Round:       round,
		Mode:        model.ModeNormal,
		Players:     players,
		Scores: map[string]float64{
			players[0]: 203, players[1]: 67,
			players[2]: 0, players[3]: 0, players[4]: 0, players[5]: 0,
		},
	}
}

func (s *Suite) TestAppendAssignsIDAndTimestamp() {
	record, err := s.Archive.Append(s.Ctx, input(1))
	s.Require().NoError(err)

	_, err = uuid.Parse(record.ID)
	s.NoError(err)
	s.True(record.CreatedAt.Equal(StartTime), "created at %v", record.CreatedAt)
	s.Equal(model.SessionDate("2024-05-04"), record.SessionDate)
	s.Equal(1, record.Round)
	s.Equal(model.ModeNormal, record.Mode)
}

func (s *Suite) TestRecentNewestFirst() {
	for round := 1; round <= 3; round++ {
		_, err := s.Archive.Append(s.Ctx, input(round))
		s.Require().NoError(err)
		s.Clock.Advance(time.Minute)
	}

	records, err := s.Archive.Recent(s.Ctx, 10)
	s.Require().NoError(err)
	s.Require().Len(records, 3)
	s.Equal(3, records[0].Round)
	s.Equal(2, records[1].Round)
	s.Equal(1, records[2].Round)
	s.Equal(203.0, records[0].Scores["Player 1"])
	s.Equal(model.DefaultRoster(), records[0].Players)
}

func (s *Suite) TestRecentSameInstantUsesInsertOrder() {
	for round := 1; round <= 2; round++ {
		_, err := s.Archive.Append(s.Ctx, input(round))
		s.Require().NoError(err)
	}

	records, err := s.Archive.Recent(s.Ctx, 10)
	s.Require().NoError(err)
	s.Require().Len(records, 2)
	s.Equal(2, records[0].Round)
}

func (s *Suite) TestRecentLimit() {
	for round := 1; round <= 12; round++ {
		_, err := s.Archive.Append(s.Ctx, input(round))
		s.Require().NoError(err)
		s.Clock.Advance(time.Second)
	}

	records, err := s.Archive.Recent(s.Ctx, 5)
	s.Require().NoError(err)
	s.Len(records, 5)
	s.Equal(12, records[0].Round)

	records, err = s.Archive.Recent(s.Ctx, 0)
	s.Require().NoError(err)
	s.Len(records, archive.DefaultRecentLimit)
}

func (s *Suite) TestRecentEmpty() {
	records, err := s.Archive.Recent(s.Ctx, 10)
	s.Require().NoError(err)
	s.Empty(records)
}

func (s *Suite) TestRecordsAreCopies() {
	in := input(1)
	_, err := s.Archive.Append(s.Ctx, in)
	s.Require().NoError(err)

	in.Players[0] = "Mallory"
	in.Scores["Player 1"] = -1

	records, err := s.Archive.Recent(s.Ctx, 1)
	s.Require().NoError(err)
	s.Require().Len(records, 1)
	s.Equal("Player 1", records[0].Players[0])
	s.Equal(203.0, records[0].Scores["Player 1"])
}

func (s *Suite) TestCancelledContext() {
	ctx, cancel := context.WithCancel(s.Ctx)
	cancel()

	_, err := s.Archive.Append(ctx, input(1))
	s.ErrorIs(err, context.Canceled)
}
