package main

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/avolkov/goshop/internal/config"
	"github.com/avolkov/goshop/internal/db"
	"github.com/avolkov/goshop/internal/model"
	"github.com/joho/godotenv"
	"gorm.io/gorm"
)

type seedCategory struct {
	Name     string
	Slug     string
	Children []seedCategory
}

type seedItem struct {
	Title        string
	Description  string
	PriceCents   int64
	CategorySlug string
}

func main() {
	if err := run(); err != nil {
		log.Fatalf("seed failed: %v", err)
	}
}

func run() error {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	gdb, err := db.Connect(cfg)
	if err != nil {
		return fmt.Errorf("connect db: %w", err)
	}

	canSeed, err := shouldSeed(gdb)
	if err != nil {
		return err
	}
	if !canSeed {
		log.Printf("items already exist; skipping seed (set FORCE_SEED=true to override)")
		return nil
	}

	return gdb.Transaction(func(tx *gorm.DB) error {
		slugToID, err := insertCategories(tx, buildSeedCategories(), nil)
		if err != nil {
			return err
		}
		salesman, err := ensureSalesman(tx)
		if err != nil {
			return err
		}
		for _, it := range buildSeedItems() {
			catID, ok := slugToID[it.CategorySlug]
			if !ok {
				return fmt.Errorf("unknown seed category %q", it.CategorySlug)
			}
			item := model.Item{
				Title:       it.Title,
				Description: it.Description,
				PriceCents:  it.PriceCents,
				SalesmanID:  salesman.ID,
			}
			if err := tx.Create(&item).Error; err != nil {
				return fmt.Errorf("insert item %q: %w", it.Title, err)
			}
			link := model.ItemCategory{ItemID: item.ID, CategoryID: catID}
			if err := tx.Create(&link).Error; err != nil {
				return fmt.Errorf("link item %q: %w", it.Title, err)
			}
		}
		log.Printf("seeded %d items", len(buildSeedItems()))
		return nil
	})
}

func shouldSeed(gdb *gorm.DB) (bool, error) {
	if strings.EqualFold(os.Getenv("FORCE_SEED"), "true") {
		return true, nil
	}
	var count int64
	if err := gdb.Model(&model.Item{}).Count(&count).Error; err != nil {
		return false, fmt.Errorf("count items: %w", err)
	}
	return count == 0, nil
}

func insertCategories(tx *gorm.DB, cats []seedCategory, parentID *uint64) (map[string]uint64, error) {
	out := map[string]uint64{}
	for _, sc := range cats {
		cat := model.Category{Name: sc.Name, Slug: sc.Slug, ParentID: parentID}
		if err := tx.Where(model.Category{Slug: sc.Slug}).FirstOrCreate(&cat).Error; err != nil {
			return nil, fmt.Errorf("insert category %q: %w", sc.Slug, err)
		}
		out[sc.Slug] = cat.ID
		children, err := insertCategories(tx, sc.Children, &cat.ID)
		if err != nil {
			return nil, err
		}
		for slug, id := range children {
			out[slug] = id
		}
	}
	return out, nil
}

func ensureSalesman(tx *gorm.DB) (*model.User, error) {
	user := model.User{
		Email:        "seed@goshop.local",
		PasswordHash: "*",
	}
	if err := tx.Where(model.User{Email: user.Email}).FirstOrCreate(&user).Error; err != nil {
		return nil, fmt.Errorf("ensure salesman: %w", err)
	}
	profile := model.UserProfile{UserID: user.ID}
	if err := tx.Where(model.UserProfile{UserID: user.ID}).FirstOrCreate(&profile).Error; err != nil {
		return nil, fmt.Errorf("ensure salesman profile: %w", err)
	}
	return &user, nil
}

func buildSeedCategories() []seedCategory {
	return []seedCategory{
		{Name: "Clothes", Slug: "clothes", Children: []seedCategory{
			{Name: "Shirts", Slug: "shirts"},
			{Name: "Shoes", Slug: "shoes"},
		}},
		{Name: "Electronics", Slug: "electronics", Children: []seedCategory{
			{Name: "Phones", Slug: "phones"},
			{Name: "Laptops", Slug: "laptops"},
		}},
		{Name: "Books", Slug: "books"},
	}
}

func buildSeedItems() []seedItem {
	return []seedItem{
		{Title: "Plain White Shirt", Description: "Cotton, regular fit.", PriceCents: 1990, CategorySlug: "shirts"},
		{Title: "Red Flannel Shirt", Description: "Warm flannel for cold days.", PriceCents: 3490, CategorySlug: "shirts"},
		{Title: "Canvas Sneakers", Description: "Lightweight everyday sneakers.", PriceCents: 4590, CategorySlug: "shoes"},
		{Title: "Leather Boots", Description: "Water resistant leather boots.", PriceCents: 12900, CategorySlug: "shoes"},
		{Title: "Budget Phone", Description: "6.1 inch display, dual SIM.", PriceCents: 19900, CategorySlug: "phones"},
		{Title: "Flagship Phone", Description: "Top of the line camera and display.", PriceCents: 89900, CategorySlug: "phones"},
		{Title: "Thin Laptop", Description: "13 inch, 16GB RAM, all day battery.", PriceCents: 119900, CategorySlug: "laptops"},
		{Title: "Classic Novel", Description: "Paperback edition.", PriceCents: 990, CategorySlug: "books"},
		{Title: "Cookbook", Description: "120 weeknight recipes.", PriceCents: 2490, CategorySlug: "books"},
	}
}
