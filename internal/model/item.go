package model

import "time"

// Item is a sellable product. Prices are stored in cents to keep the
// two-decimal fixed point exact.
type Item struct {
	ID          uint64    `gorm:"primaryKey;autoIncrement"`
	Title       string    `gorm:"size:124;not null"`
	Description string    `gorm:"type:text;not null"`
	PriceCents  int64     `gorm:"column:price_cents;not null"`
	SalesmanID  uint64    `gorm:"column:salesman_id;index;not null"`
	CreatedAt   time.Time `gorm:"autoCreateTime"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime"`
}

func (Item) TableName() string {
	return "items"
}
