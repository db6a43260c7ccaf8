package service

import (
	"context"
	"errors"

	"github.com/avolkov/goshop/internal/model"
	"github.com/avolkov/goshop/internal/repository"
	"gorm.io/gorm"
)

// BasketStore is the session-scoped id list behind the basket, keyed by the
// visitor's opaque session id. Implemented by basket.Store.
type BasketStore interface {
	Get(ctx context.Context, sessionID string) ([]uint64, error)
	Add(ctx context.Context, sessionID string, itemID uint64) error
	Remove(ctx context.Context, sessionID string, itemID uint64) error
	Contains(ctx context.Context, sessionID string, itemID uint64) (bool, error)
	Clear(ctx context.Context, sessionID string) error
}

type BasketService interface {
	Add(ctx context.Context, sessionID string, itemID uint64) error
	Remove(ctx context.Context, sessionID string, itemID uint64) error
	Contains(ctx context.Context, sessionID string, itemID uint64) (bool, error)
	// Materialize resolves the basket against the current catalog; items
	// deleted since they were added drop out silently.
	Materialize(ctx context.Context, sessionID string) ([]model.Item, error)
}

type basketService struct {
	store    BasketStore
	itemRepo repository.ItemRepository
}

func NewBasketService(store BasketStore, itemRepo repository.ItemRepository) BasketService {
	return &basketService{store: store, itemRepo: itemRepo}
}

func (s *basketService) Add(ctx context.Context, sessionID string, itemID uint64) error {
	if _, err := s.itemRepo.FindByID(ctx, itemID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	return s.store.Add(ctx, sessionID, itemID)
}

// Remove is a no-op when the item is not in the basket.
func (s *basketService) Remove(ctx context.Context, sessionID string, itemID uint64) error {
	return s.store.Remove(ctx, sessionID, itemID)
}

func (s *basketService) Contains(ctx context.Context, sessionID string, itemID uint64) (bool, error) {
	return s.store.Contains(ctx, sessionID, itemID)
}

func (s *basketService) Materialize(ctx context.Context, sessionID string) ([]model.Item, error) {
	ids, err := s.store.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return s.itemRepo.FindByIDs(ctx, ids)
}
