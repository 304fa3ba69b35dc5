package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/findingfriends/internal/storage/storagetest"
)

type StorageSuite struct {
	storagetest.Suite
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupTest() {
	s.Storage = New()
	s.Ctx = context.Background()
}

func (s *StorageSuite) TestCancelledContextRejectsUpdate() {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := s.Storage.UpdateSession(ctx, "2024-01-01", nil)
	s.ErrorIs(err, context.Canceled)
}
