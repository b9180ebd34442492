package redis

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// SessionStore records the instant each user's sessions were last revoked.
// Key format: revoked:<uid> holding unix seconds. The key expires after the
// session TTL since no older token can still be valid by then.
type SessionStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewSessionStore(client *redis.Client, sessionTTL time.Duration) *SessionStore {
	return &SessionStore{client: client, ttl: sessionTTL}
}

func (s *SessionStore) RevokeSessions(ctx context.Context, uid string) error {
	now := time.Now().UTC().Unix()
	if err := s.client.Set(ctx, revokedKey(uid), now, s.ttl).Err(); err != nil {
		return fmt.Errorf("revoke sessions: %w", err)
	}
	return nil
}

func (s *SessionStore) RevokedSince(ctx context.Context, uid string) (time.Time, error) {
	raw, err := s.client.Get(ctx, revokedKey(uid)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return time.Time{}, nil
		}
		return time.Time{}, fmt.Errorf("read revocation: %w", err)
	}

	secs, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse revocation %q: %w", raw, err)
	}
	return time.Unix(secs, 0).UTC(), nil
}

func revokedKey(uid string) string {
	return "revoked:" + uid
}
