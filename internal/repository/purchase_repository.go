package repository

import (
	"context"

	"github.com/avolkov/goshop/internal/model"
	"gorm.io/gorm"
)

type PurchaseRepository interface {
	// Create persists the purchase and its item links in one transaction.
	Create(ctx context.Context, p *model.Purchase, itemIDs []uint64) error
	ListByUser(ctx context.Context, userID uint64) ([]model.Purchase, error)
	ListItems(ctx context.Context, purchaseID uint64) ([]model.Item, error)
	CountByItem(ctx context.Context, itemID uint64) (int64, error)
}

type purchaseRepository struct {
	db *gorm.DB
}

func NewPurchaseRepository(db *gorm.DB) PurchaseRepository {
	return &purchaseRepository{db: db}
}

func (r *purchaseRepository) Create(ctx context.Context, p *model.Purchase, itemIDs []uint64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(p).Error; err != nil {
			return err
		}
		for _, id := range itemIDs {
			link := model.PurchaseItem{PurchaseID: p.ID, ItemID: id}
			if err := tx.Create(&link).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *purchaseRepository) ListByUser(ctx context.Context, userID uint64) ([]model.Purchase, error) {
	var list []model.Purchase
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("id DESC").
		Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *purchaseRepository) ListItems(ctx context.Context, purchaseID uint64) ([]model.Item, error) {
	var items []model.Item
	if err := r.db.WithContext(ctx).Model(&model.Item{}).
		Select("items.*").
		Joins("JOIN purchase_items ON purchase_items.item_id = items.id").
		Where("purchase_items.purchase_id = ?", purchaseID).
		Order("items.id ASC").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *purchaseRepository) CountByItem(ctx context.Context, itemID uint64) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.PurchaseItem{}).
		Where("item_id = ?", itemID).
		Count(&n).Error
	return n, err
}
