package sessions

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// ErrUnavailable is returned when Redis cannot be reached. Callers must not
// treat it as an absent session.
var ErrUnavailable = errors.New("session store unavailable")

const keyPrefix = "auth_"

// Store maps opaque session tokens to user ids with a TTL. Expiry is
// enforced by Redis itself; nothing here polls the clock. One user may hold
// any number of concurrent sessions.
type Store struct {
	rdb *redis.Client
	ttl time.Duration
}

func New(rdb *redis.Client, ttl time.Duration) *Store {
	return &Store{rdb: rdb, ttl: ttl}
}

// Create stores a fresh random token for userID and returns it. Tokens are
// v4 UUIDs and are never reused.
func (s *Store) Create(ctx context.Context, userID string) (string, error) {
	token := uuid.NewString()
	if err := s.rdb.Set(ctx, keyPrefix+token, userID, s.ttl).Err(); err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return token, nil
}

// Resolve returns the user id mapped to token, or "" when the token is
// missing, malformed or expired. The three absent cases are
// indistinguishable to callers.
func (s *Store) Resolve(ctx context.Context, token string) (string, error) {
	userID, err := s.rdb.Get(ctx, keyPrefix+token).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return userID, nil
}

// Revoke removes the mapping immediately, regardless of remaining TTL.
// Revoking an unknown token is not an error.
func (s *Store) Revoke(ctx context.Context, token string) error {
	if err := s.rdb.Del(ctx, keyPrefix+token).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return nil
}

// Alive reports whether Redis answers a ping.
func (s *Store) Alive(ctx context.Context) bool {
	return s.rdb.Ping(ctx).Err() == nil
}
