package service

import (
	"context"
	"errors"
	"strings"

	"github.com/avolkov/goshop/internal/model"
	"github.com/avolkov/goshop/internal/repository"
	"gorm.io/gorm"
)

type ReviewService interface {
	// AddReview creates a review unconditionally: no purchase check and no
	// per-(author,item) uniqueness. Out-of-range rates are rejected.
	AddReview(ctx context.Context, itemID, authorID uint64, rate int, text string) (*model.Review, error)
	AverageRating(ctx context.Context, itemID uint64) (*float64, error)
}

type reviewService struct {
	reviewRepo repository.ReviewRepository
	itemRepo   repository.ItemRepository
}

func NewReviewService(reviewRepo repository.ReviewRepository, itemRepo repository.ItemRepository) ReviewService {
	return &reviewService{reviewRepo: reviewRepo, itemRepo: itemRepo}
}

func (s *reviewService) AddReview(ctx context.Context, itemID, authorID uint64, rate int, text string) (*model.Review, error) {
	if rate < 0 || rate > 100 {
		return nil, ErrInvalidRate
	}
	if _, err := s.itemRepo.FindByID(ctx, itemID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	review := &model.Review{
		AuthorID: authorID,
		ItemID:   itemID,
		Text:     strings.TrimSpace(text),
		Rate:     rate,
	}
	if err := s.reviewRepo.Create(ctx, review); err != nil {
		return nil, err
	}
	return review, nil
}

// AverageRating returns nil for an item without reviews.
func (s *reviewService) AverageRating(ctx context.Context, itemID uint64) (*float64, error) {
	return s.reviewRepo.AverageRate(ctx, itemID)
}
