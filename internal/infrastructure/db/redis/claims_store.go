package redis

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/bhargav3929/myacademydask-sub000/internal/core/domain"
)

// ClaimsStore keeps each user's claims in a hash.
// Key format: claims:<uid>
type ClaimsStore struct {
	client *redis.Client
}

func NewClaimsStore(client *redis.Client) *ClaimsStore {
	return &ClaimsStore{client: client}
}

func (s *ClaimsStore) Get(ctx context.Context, uid string) (domain.Claims, error) {
	attrs, err := s.client.HGetAll(ctx, claimsKey(uid)).Result()
	if err != nil {
		return domain.Claims{}, fmt.Errorf("get claims: %w", err)
	}
	return domain.ClaimsFromAttributes(attrs), nil
}

// Set replaces the whole hash in one MULTI/EXEC, so readers never see a mix
// of old and new attributes. Empty claims delete the key.
func (s *ClaimsStore) Set(ctx context.Context, uid string, claims domain.Claims) error {
	key := claimsKey(uid)
	attrs := claims.Attributes()

	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, key)
		if len(attrs) > 0 {
			pipe.HSet(ctx, key, attrs)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("set claims: %w", err)
	}
	return nil
}

func claimsKey(uid string) string {
	return "claims:" + uid
}
