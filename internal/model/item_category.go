package model

import "time"

// ItemCategory links an item to a category node. An item may sit in any node
// of the tree, not only leaves.
type ItemCategory struct {
	ItemID     uint64    `gorm:"column:item_id;not null;primaryKey"`
	CategoryID uint64    `gorm:"column:category_id;not null;primaryKey"`
	CreatedAt  time.Time `gorm:"autoCreateTime"`
}

func (ItemCategory) TableName() string {
	return "item_categories"
}
