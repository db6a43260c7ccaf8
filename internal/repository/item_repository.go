package repository

import (
	"context"
	"strings"

	"github.com/avolkov/goshop/internal/catalog"
	"github.com/avolkov/goshop/internal/model"
	"gorm.io/gorm"
)

// ListRefinement narrows a filtered listing to a category, a title search or
// one user's favorites. Zero values mean "no refinement".
type ListRefinement struct {
	CategorySlug string
	Search       string
	FavoritesOf  *uint64
}

type ItemRepository interface {
	Create(ctx context.Context, item *model.Item) error
	FindByID(ctx context.Context, id uint64) (*model.Item, error)
	FindByIDs(ctx context.Context, ids []uint64) ([]model.Item, error)
	ListFiltered(ctx context.Context, spec catalog.FilterSpec, ref ListRefinement, page int) ([]model.Item, int64, error)
	AttachCategories(ctx context.Context, itemID uint64, categoryIDs []uint64) error
	AddImages(ctx context.Context, itemID uint64, urls []string) error
	ListImages(ctx context.Context, itemID uint64) ([]model.ItemImage, error)
}

// likeEscaper neutralizes LIKE metacharacters so the search needle matches
// literally. '!' is the escape character because both mysql and sqlite accept
// it in an ESCAPE clause, unlike a backslash.
var likeEscaper = strings.NewReplacer("!", "!!", "%", "!%", "_", "!_")

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

type itemRepository struct {
	db *gorm.DB
}

func NewItemRepository(db *gorm.DB) ItemRepository {
	return &itemRepository{db: db}
}

func (r *itemRepository) Create(ctx context.Context, item *model.Item) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *itemRepository) FindByID(ctx context.Context, id uint64) (*model.Item, error) {
	var item model.Item
	if err := r.db.WithContext(ctx).First(&item, id).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

// FindByIDs resolves ids against the catalog, preserving the order of ids and
// silently dropping ids that no longer exist.
func (r *itemRepository) FindByIDs(ctx context.Context, ids []uint64) ([]model.Item, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var found []model.Item
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&found).Error; err != nil {
		return nil, err
	}
	byID := make(map[uint64]model.Item, len(found))
	for _, it := range found {
		byID[it.ID] = it
	}
	items := make([]model.Item, 0, len(found))
	for _, id := range ids {
		if it, ok := byID[id]; ok {
			items = append(items, it)
		}
	}
	return items, nil
}

// filtered builds the price-bounded, refined base query. Price bounds arrive
// in whole units and the column holds cents.
func (r *itemRepository) filtered(ctx context.Context, spec catalog.FilterSpec, ref ListRefinement) *gorm.DB {
	q := r.db.WithContext(ctx).Model(&model.Item{}).
		Where("items.price_cents BETWEEN ? AND ?", int64(spec.MinPrice)*100, int64(spec.MaxPrice)*100)

	if ref.CategorySlug != "" {
		// Exact slug match: browsing a parent category does not include
		// descendant categories' items.
		q = q.Joins("JOIN item_categories ON item_categories.item_id = items.id").
			Joins("JOIN categories ON categories.id = item_categories.category_id").
			Where("categories.slug = ?", ref.CategorySlug)
	}
	if ref.Search != "" {
		q = q.Where("LOWER(items.title) LIKE ? ESCAPE '!'", "%"+escapeLike(strings.ToLower(ref.Search))+"%")
	}
	if ref.FavoritesOf != nil {
		q = q.Joins("JOIN favorites ON favorites.item_id = items.id").
			Where("favorites.user_id = ?", *ref.FavoritesOf)
	}
	return q
}

// ListFiltered applies the filter spec and refinement in one parameterized
// query. Aggregate joins are added only for the sort keys that need them, and
// every ordering breaks ties by items.id so pages stay stable.
func (r *itemRepository) ListFiltered(ctx context.Context, spec catalog.FilterSpec, ref ListRefinement, page int) ([]model.Item, int64, error) {
	var total int64
	if err := r.filtered(ctx, spec, ref).Distinct("items.id").Count(&total).Error; err != nil {
		return nil, 0, err
	}

	q := r.filtered(ctx, spec, ref).Select("items.*")
	var order string
	switch spec.Sort {
	case catalog.SortPriceDesc:
		order = "items.price_cents DESC, items.id ASC"
	case catalog.SortPurchases:
		q = q.Joins("LEFT JOIN purchase_items ON purchase_items.item_id = items.id").
			Group("items.id")
		order = "COUNT(purchase_items.purchase_id) DESC, items.id ASC"
	case catalog.SortReviews:
		q = q.Joins("LEFT JOIN reviews ON reviews.item_id = items.id").
			Group("items.id")
		order = "COUNT(reviews.id) DESC, items.id ASC"
	case catalog.SortRating:
		// Items with no reviews have a NULL average and sort after any rated
		// item on both mysql and sqlite.
		q = q.Joins("LEFT JOIN reviews ON reviews.item_id = items.id").
			Group("items.id")
		order = "AVG(reviews.rate) DESC, items.id ASC"
	default:
		order = "items.price_cents ASC, items.id ASC"
	}

	var items []model.Item
	if err := q.Order(order).
		Limit(catalog.PageSize).
		Offset(catalog.Offset(page)).
		Find(&items).Error; err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (r *itemRepository) AttachCategories(ctx context.Context, itemID uint64, categoryIDs []uint64) error {
	for _, cid := range categoryIDs {
		link := model.ItemCategory{ItemID: itemID, CategoryID: cid}
		if err := r.db.WithContext(ctx).Create(&link).Error; err != nil {
			return err
		}
	}
	return nil
}

func (r *itemRepository) AddImages(ctx context.Context, itemID uint64, urls []string) error {
	for _, u := range urls {
		img := model.ItemImage{ItemID: itemID, URL: u}
		if err := r.db.WithContext(ctx).Create(&img).Error; err != nil {
			return err
		}
	}
	return nil
}

func (r *itemRepository) ListImages(ctx context.Context, itemID uint64) ([]model.ItemImage, error) {
	var images []model.ItemImage
	if err := r.db.WithContext(ctx).
		Where("item_id = ?", itemID).
		Order("id ASC").
		Find(&images).Error; err != nil {
		return nil, err
	}
	return images, nil
}
