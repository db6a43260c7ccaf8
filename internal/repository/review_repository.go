package repository

import (
	"context"
	"database/sql"

	"github.com/avolkov/goshop/internal/model"
	"gorm.io/gorm"
)

type ReviewRepository interface {
	Create(ctx context.Context, review *model.Review) error
	ListByItem(ctx context.Context, itemID uint64) ([]model.Review, error)
	CountByItem(ctx context.Context, itemID uint64) (int64, error)
	AverageRate(ctx context.Context, itemID uint64) (*float64, error)
}

type reviewRepository struct {
	db *gorm.DB
}

func NewReviewRepository(db *gorm.DB) ReviewRepository {
	return &reviewRepository{db: db}
}

func (r *reviewRepository) Create(ctx context.Context, review *model.Review) error {
	return r.db.WithContext(ctx).Create(review).Error
}

func (r *reviewRepository) ListByItem(ctx context.Context, itemID uint64) ([]model.Review, error) {
	var reviews []model.Review
	if err := r.db.WithContext(ctx).
		Where("item_id = ?", itemID).
		Order("created_at ASC, id ASC").
		Find(&reviews).Error; err != nil {
		return nil, err
	}
	return reviews, nil
}

func (r *reviewRepository) CountByItem(ctx context.Context, itemID uint64) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Review{}).
		Where("item_id = ?", itemID).
		Count(&n).Error
	return n, err
}

// AverageRate returns nil when the item has no reviews.
func (r *reviewRepository) AverageRate(ctx context.Context, itemID uint64) (*float64, error) {
	var avg sql.NullFloat64
	err := r.db.WithContext(ctx).Model(&model.Review{}).
		Where("item_id = ?", itemID).
		Select("AVG(rate)").
		Scan(&avg).Error
	if err != nil {
		return nil, err
	}
	if !avg.Valid {
		return nil, nil
	}
	return &avg.Float64, nil
}
