// Package session keeps the server-side record of issued sign-ins in Redis.
// A token is only honoured while its session key exists.
package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	keyPrefix     = "session:"
	userKeyPrefix = "user_sessions:"
)

var ErrSessionNotFound = errors.New("session not found")

type Session struct {
	ID     string
	UserID string
}

type Store struct {
	rdb redis.UniversalClient
	ttl time.Duration
}

func NewStore(rdb redis.UniversalClient, ttl time.Duration) *Store {
	return &Store{rdb: rdb, ttl: ttl}
}

// Create registers a new session for userID and returns it.
func (s *Store) Create(ctx context.Context, userID string) (*Session, error) {
	sess := &Session{ID: uuid.NewString(), UserID: userID}
	_, err := s.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, keyPrefix+sess.ID, userID, s.ttl)
		pipe.SAdd(ctx, userKeyPrefix+userID, sess.ID)
		pipe.Expire(ctx, userKeyPrefix+userID, s.ttl)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}
	return sess, nil
}

// Get returns ErrSessionNotFound for unknown, expired or revoked sessions.
func (s *Store) Get(ctx context.Context, id string) (*Session, error) {
	userID, err := s.rdb.Get(ctx, keyPrefix+id).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("get session: %w", err)
	}
	return &Session{ID: id, UserID: userID}, nil
}

// Revoke deletes the session. Revoking an unknown session is not an error.
func (s *Store) Revoke(ctx context.Context, id string) error {
	if err := s.rdb.Del(ctx, keyPrefix+id).Err(); err != nil {
		return fmt.Errorf("revoke session: %w", err)
	}
	return nil
}

// RevokeUser deletes every session userID holds.
func (s *Store) RevokeUser(ctx context.Context, userID string) error {
	ids, err := s.rdb.SMembers(ctx, userKeyPrefix+userID).Result()
	if err != nil {
		return fmt.Errorf("list user sessions: %w", err)
	}
	keys := make([]string, 0, len(ids)+1)
	for _, id := range ids {
		keys = append(keys, keyPrefix+id)
	}
	keys = append(keys, userKeyPrefix+userID)
	if err := s.rdb.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("revoke user sessions: %w", err)
	}
	return nil
}
