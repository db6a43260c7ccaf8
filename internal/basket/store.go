package basket

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Store keeps each visitor's basket in redis under an opaque session id.
// Read-modify-write is unguarded; concurrent updates to the same session can
// race, which the request model accepts.
type Store struct {
	client *redis.Client
	ttl    time.Duration
}

const defaultTTL = 30 * 24 * time.Hour

func NewStore(client *redis.Client) *Store {
	return &Store{client: client, ttl: defaultTTL}
}

func key(sessionID string) string {
	return fmt.Sprintf("basket:%s", sessionID)
}

// Get returns the basket item ids, or an empty list when the session has no
// basket yet.
func (s *Store) Get(ctx context.Context, sessionID string) ([]uint64, error) {
	val, err := s.client.Get(ctx, key(sessionID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("get basket: %w", err)
	}
	var ids []uint64
	if err := json.Unmarshal([]byte(val), &ids); err != nil {
		return nil, fmt.Errorf("decode basket: %w", err)
	}
	return ids, nil
}

func (s *Store) save(ctx context.Context, sessionID string, ids []uint64) error {
	data, err := json.Marshal(ids)
	if err != nil {
		return fmt.Errorf("encode basket: %w", err)
	}
	if err := s.client.Set(ctx, key(sessionID), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("save basket: %w", err)
	}
	return nil
}

func (s *Store) Add(ctx context.Context, sessionID string, itemID uint64) error {
	ids, err := s.Get(ctx, sessionID)
	if err != nil {
		return err
	}
	return s.save(ctx, sessionID, Add(ids, itemID))
}

func (s *Store) Remove(ctx context.Context, sessionID string, itemID uint64) error {
	ids, err := s.Get(ctx, sessionID)
	if err != nil {
		return err
	}
	return s.save(ctx, sessionID, Remove(ids, itemID))
}

func (s *Store) Contains(ctx context.Context, sessionID string, itemID uint64) (bool, error) {
	ids, err := s.Get(ctx, sessionID)
	if err != nil {
		return false, err
	}
	return Contains(ids, itemID), nil
}

// Clear resets the basket to empty. Called after a successful checkout.
func (s *Store) Clear(ctx context.Context, sessionID string) error {
	if err := s.client.Del(ctx, key(sessionID)).Err(); err != nil && !errors.Is(err, redis.Nil) {
		return fmt.Errorf("clear basket: %w", err)
	}
	return nil
}
