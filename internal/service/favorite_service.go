package service

import (
	"context"
	"errors"

	"github.com/avolkov/goshop/internal/model"
	"github.com/avolkov/goshop/internal/repository"
	"gorm.io/gorm"
)

type FavoriteService interface {
	Add(ctx context.Context, userID, itemID uint64) error
	Remove(ctx context.Context, userID, itemID uint64) error
	Contains(ctx context.Context, userID, itemID uint64) (bool, error)
}

type favoriteService struct {
	favoriteRepo repository.FavoriteRepository
	itemRepo     repository.ItemRepository
}

func NewFavoriteService(favoriteRepo repository.FavoriteRepository, itemRepo repository.ItemRepository) FavoriteService {
	return &favoriteService{favoriteRepo: favoriteRepo, itemRepo: itemRepo}
}

// Add bookmarks the item. A duplicate add is a conflict; the unique index on
// (user,item) backs this up against races.
func (s *favoriteService) Add(ctx context.Context, userID, itemID uint64) error {
	if _, err := s.itemRepo.FindByID(ctx, itemID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	exists, err := s.favoriteRepo.Exists(ctx, userID, itemID)
	if err != nil {
		return err
	}
	if exists {
		return ErrAlreadyFavorite
	}
	return s.favoriteRepo.Create(ctx, &model.Favorite{UserID: userID, ItemID: itemID})
}

// Remove fails when the item was never favorited.
func (s *favoriteService) Remove(ctx context.Context, userID, itemID uint64) error {
	n, err := s.favoriteRepo.Delete(ctx, userID, itemID)
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFavorite
	}
	return nil
}

func (s *favoriteService) Contains(ctx context.Context, userID, itemID uint64) (bool, error) {
	return s.favoriteRepo.Exists(ctx, userID, itemID)
}
