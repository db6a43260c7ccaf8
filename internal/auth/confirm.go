package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

var ErrUnknownConfirmToken = errors.New("unknown confirmation token")

// ConfirmStore keeps one-shot email confirmation tokens in redis.
type ConfirmStore struct {
	client *redis.Client
	ttl    time.Duration
}

const confirmTTL = 48 * time.Hour

func NewConfirmStore(client *redis.Client) *ConfirmStore {
	return &ConfirmStore{client: client, ttl: confirmTTL}
}

func confirmKey(token string) string {
	return fmt.Sprintf("confirm:%s", token)
}

func (s *ConfirmStore) Save(ctx context.Context, token string, userID uint64) error {
	if err := s.client.Set(ctx, confirmKey(token), userID, s.ttl).Err(); err != nil {
		return fmt.Errorf("save confirm token: %w", err)
	}
	return nil
}

// Resolve returns the user the token was issued for and consumes the token.
func (s *ConfirmStore) Resolve(ctx context.Context, token string) (uint64, error) {
	key := confirmKey(token)
	id, err := s.client.Get(ctx, key).Uint64()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, ErrUnknownConfirmToken
		}
		return 0, fmt.Errorf("resolve confirm token: %w", err)
	}
	if err := s.client.Del(ctx, key).Err(); err != nil && !errors.Is(err, redis.Nil) {
		return 0, fmt.Errorf("consume confirm token: %w", err)
	}
	return id, nil
}
