package model

import "time"

// Category is a node in the shop taxonomy. The parent relation forms a tree;
// deleting a node cascades to its descendants.
type Category struct {
	ID        uint64    `gorm:"primaryKey;autoIncrement"`
	Name      string    `gorm:"size:32;not null"`
	Slug      string    `gorm:"size:40;not null;uniqueIndex:uk_categories_slug"`
	ParentID  *uint64   `gorm:"column:parent_id;index"`
	Parent    *Category `gorm:"foreignKey:ParentID;constraint:OnDelete:CASCADE"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (Category) TableName() string {
	return "categories"
}
