package repository

import (
	"testing"

	"github.com/avolkov/goshop/internal/model"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens a fresh in-memory database per test. Prod runs mysql; the
// queries stick to portable SQL so sqlite behaves the same.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("db handle: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	err = db.AutoMigrate(
		&model.User{},
		&model.UserProfile{},
		&model.Category{},
		&model.Item{},
		&model.ItemCategory{},
		&model.ItemImage{},
		&model.Review{},
		&model.Favorite{},
		&model.Purchase{},
		&model.PurchaseItem{},
	)
	if err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func mustCreate(t *testing.T, db *gorm.DB, value interface{}) {
	t.Helper()
	if err := db.Create(value).Error; err != nil {
		t.Fatalf("create %T: %v", value, err)
	}
}

func seedItem(t *testing.T, db *gorm.DB, title string, priceCents int64) *model.Item {
	t.Helper()
	item := &model.Item{Title: title, Description: "d", PriceCents: priceCents, SalesmanID: 1}
	mustCreate(t, db, item)
	return item
}
