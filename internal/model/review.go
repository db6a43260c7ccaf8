package model

import "time"

// Review rates an item on a 0..100 scale. An author may review the same item
// more than once.
type Review struct {
	ID        uint64    `gorm:"primaryKey;autoIncrement"`
	AuthorID  uint64    `gorm:"column:author_id;index;not null"`
	ItemID    uint64    `gorm:"column:item_id;index;not null"`
	Text      string    `gorm:"type:text;not null"`
	Rate      int       `gorm:"not null"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

func (Review) TableName() string {
	return "reviews"
}
