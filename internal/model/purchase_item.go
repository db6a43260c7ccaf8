package model

import "time"

type PurchaseItem struct {
	PurchaseID uint64    `gorm:"column:purchase_id;not null;primaryKey"`
	ItemID     uint64    `gorm:"column:item_id;not null;primaryKey"`
	CreatedAt  time.Time `gorm:"autoCreateTime"`
}

func (PurchaseItem) TableName() string {
	return "purchase_items"
}
