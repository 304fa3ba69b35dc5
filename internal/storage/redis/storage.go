package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/mcoot/findingfriends/internal/model"
	"github.com/mcoot/findingfriends/internal/storage"
)

// ErrTxContention is returned when UpdateSession loses the optimistic lock too many times
var ErrTxContention = errors.New("session update contended")

// Storage is a Redis-backed implementation of the storage interface
type Storage struct {
	client *redis.Client
	cfg    Config
}

// New creates a new Redis storage instance
func New(cfg Config) (*Storage, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}

	return &Storage{
		client: client,
		cfg:    cfg,
	}, nil
}

// NewWithClient creates a Redis storage with an existing client (for testing)
func NewWithClient(client *redis.Client, cfg Config) *Storage {
	return &Storage{
		client: client,
		cfg:    cfg,
	}
}

// Close closes the Redis connection
func (s *Storage) Close() error {
	return s.client.Close()
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

func decodeSession(data []byte) (*model.Session, error) {
	var session model.Session
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, fmt.Errorf("decode session: %w", err)
	}
	if session.Rounds == nil {
		session.Rounds = []model.Round{}
	}
	return &session, nil
}

func (s *Storage) GetSession(ctx context.Context, date model.SessionDate) (*model.Session, error) {
	data, err := s.client.Get(ctx, sessionKey(date)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrSessionNotFound
		}
		return nil, err
	}
	return decodeSession(data)
}

// UpdateSession runs fn inside a WATCH transaction on the session key,
// retrying when another writer got there first.
func (s *Storage) UpdateSession(ctx context.Context, date model.SessionDate, fn storage.UpdateFunc) (*model.Session, error) {
	key := sessionKey(date)
	retries := s.cfg.MaxTxRetries
	if retries <= 0 {
		retries = 1
	}

	var written *model.Session
	txf := func(tx *redis.Tx) error {
		var working *model.Session
		data, err := tx.Get(ctx, key).Bytes()
		switch {
		case errors.Is(err, redis.Nil):
			working = model.NewSession(date)
		case err != nil:
			return err
		default:
			if working, err = decodeSession(data); err != nil {
				return err
			}
		}

		if err := fn(working); err != nil {
			return err
		}

		encoded, err := json.Marshal(working)
		if err != nil {
			return err
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, encoded, s.cfg.SessionTTL)
			pipe.SAdd(ctx, sessionIndexKey(), key)
			return nil
		})
		if err != nil {
			return err
		}
		written = working
		return nil
	}

	for i := 0; i < retries; i++ {
		err := s.client.Watch(ctx, txf, key)
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		if err != nil {
			return nil, err
		}
		return written.Clone(), nil
	}
	return nil, ErrTxContention
}

func (s *Storage) ListSessions(ctx context.Context) ([]*model.Session, error) {
	indexKey := sessionIndexKey()

	keys, err := s.client.SMembers(ctx, indexKey).Result()
	if err != nil {
		return nil, err
	}

	if len(keys) == 0 {
		return []*model.Session{}, nil
	}

	values, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, err
	}

	sessions := make([]*model.Session, 0, len(values))
	var stale []interface{}
	for i, val := range values {
		raw, ok := val.(string)
		if !ok {
			stale = append(stale, keys[i]) // session expired
			continue
		}
		session, err := decodeSession([]byte(raw))
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, session)
	}

	if len(stale) > 0 {
		_ = s.client.SRem(ctx, indexKey, stale...).Err()
	}

	sort.Slice(sessions, func(i, j int) bool {
		return sessions[i].Date < sessions[j].Date
	})
	return sessions, nil
}
