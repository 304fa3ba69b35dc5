package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"

	"github.com/mcoot/findingfriends/internal/model"
	"github.com/mcoot/findingfriends/internal/storage/storagetest"
)

type StorageSuite struct {
	storagetest.Suite
	mini    *miniredis.Miniredis
	storage *Storage
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupTest() {
	s.mini = miniredis.RunT(s.T())

	client := redis.NewClient(&redis.Options{
		Addr: s.mini.Addr(),
	})

	cfg := DefaultConfig()
	cfg.SessionTTL = time.Hour

	s.storage = NewWithClient(client, cfg)
	s.Storage = s.storage
	s.Ctx = context.Background()
}

func (s *StorageSuite) TearDownTest() {
	if s.storage != nil {
		_ = s.storage.Close()
	}
	if s.mini != nil {
		s.mini.Close()
	}
}

func (s *StorageSuite) TestSessionKeyHasTTL() {
	_, err := s.storage.UpdateSession(s.Ctx, "2024-01-01", func(*model.Session) error { return nil })
	s.Require().NoError(err)

	s.True(s.mini.Exists("ffscore:session:2024-01-01"))
	s.Equal(time.Hour, s.mini.TTL("ffscore:session:2024-01-01"))

	members, err := s.mini.Members("ffscore:idx:sessions")
	s.Require().NoError(err)
	s.Equal([]string{"ffscore:session:2024-01-01"}, members)
}

func (s *StorageSuite) TestExpiredSessionDroppedFromList() {
	_, err := s.storage.UpdateSession(s.Ctx, "2024-01-01", func(*model.Session) error { return nil })
	s.Require().NoError(err)
	_, err = s.storage.UpdateSession(s.Ctx, "2024-01-02", func(*model.Session) error { return nil })
	s.Require().NoError(err)

	s.mini.Del("ffscore:session:2024-01-01")

	sessions, err := s.storage.ListSessions(s.Ctx)
	s.Require().NoError(err)
	s.Require().Len(sessions, 1)
	s.Equal(model.SessionDate("2024-01-02"), sessions[0].Date)

	members, err := s.mini.Members("ffscore:idx:sessions")
	s.Require().NoError(err)
	s.Equal([]string{"ffscore:session:2024-01-02"}, members)
}

func (s *StorageSuite) TestCorruptSessionReturnsError() {
	s.Require().NoError(s.mini.Set("ffscore:session:2024-01-01", "{not json"))

	_, err := s.storage.GetSession(s.Ctx, "2024-01-01")
	s.Error(err)
}

func (s *StorageSuite) TestConnectionLossSurfacesError() {
	s.mini.Close()

	_, err := s.storage.UpdateSession(s.Ctx, "2024-01-01", func(*model.Session) error { return nil })
	s.Error(err)
	s.mini = nil
}
