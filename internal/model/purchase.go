package model

import "time"

// Purchase is an immutable record of a completed checkout. UserID is nil for
// guest purchases. TotalPriceCents captures item prices at checkout time.
type Purchase struct {
	ID              uint64    `gorm:"primaryKey;autoIncrement"`
	UserID          *uint64   `gorm:"column:user_id;index"`
	IsDelivery      bool      `gorm:"column:is_delivery;not null"`
	TotalPriceCents *int64    `gorm:"column:total_price_cents"`
	Email           string    `gorm:"size:254;not null"`
	Phone           string    `gorm:"size:32"`
	Country         string    `gorm:"size:64"`
	City            string    `gorm:"size:64"`
	Street          string    `gorm:"size:128"`
	CreatedAt       time.Time `gorm:"autoCreateTime"`
}

func (Purchase) TableName() string {
	return "purchases"
}
