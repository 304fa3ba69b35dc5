package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/findingfriends/internal/archive/archivetest"
	"github.com/mcoot/findingfriends/internal/dependencies/mocks"
)

type ArchiveSuite struct {
	archivetest.Suite
}

func TestArchiveSuite(t *testing.T) {
	suite.Run(t, new(ArchiveSuite))
}

func (s *ArchiveSuite) SetupTest() {
	s.Clock = mocks.NewMockClock(archivetest.StartTime)
	s.Archive = New(s.Clock)
	s.Ctx = context.Background()
}
