package model

import "time"

// Favorite bookmarks an item for a user. Uniqueness per (user,item) is
// enforced at the schema level.
type Favorite struct {
	ID        uint64    `gorm:"primaryKey;autoIncrement"`
	UserID    uint64    `gorm:"column:user_id;not null;uniqueIndex:uk_favorites_user_item"`
	ItemID    uint64    `gorm:"column:item_id;not null;uniqueIndex:uk_favorites_user_item"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

func (Favorite) TableName() string {
	return "favorites"
}
