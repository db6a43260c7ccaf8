package repository

import (
	"context"

	"github.com/avolkov/goshop/internal/model"
	"gorm.io/gorm"
)

type CategoryRepository interface {
	Create(ctx context.Context, c *model.Category) error
	Update(ctx context.Context, c *model.Category) error
	Delete(ctx context.Context, id uint64) error
	FindByID(ctx context.Context, id uint64) (*model.Category, error)
	FindBySlug(ctx context.Context, slug string) (*model.Category, error)
	FindBySlugs(ctx context.Context, slugs []string) ([]model.Category, error)
	ListAll(ctx context.Context) ([]model.Category, error)
}

type categoryRepository struct {
	db *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) CategoryRepository {
	return &categoryRepository{db: db}
}

func (r *categoryRepository) Create(ctx context.Context, c *model.Category) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *categoryRepository) Update(ctx context.Context, c *model.Category) error {
	return r.db.WithContext(ctx).Save(c).Error
}

// Delete removes a category and its whole subtree, plus the item membership
// rows pointing at the deleted nodes.
func (r *categoryRepository) Delete(ctx context.Context, id uint64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		ids := []uint64{id}
		frontier := []uint64{id}
		for len(frontier) > 0 {
			var children []uint64
			if err := tx.Model(&model.Category{}).
				Where("parent_id IN ?", frontier).
				Pluck("id", &children).Error; err != nil {
				return err
			}
			ids = append(ids, children...)
			frontier = children
		}
		if err := tx.Where("category_id IN ?", ids).Delete(&model.ItemCategory{}).Error; err != nil {
			return err
		}
		return tx.Where("id IN ?", ids).Delete(&model.Category{}).Error
	})
}

func (r *categoryRepository) FindByID(ctx context.Context, id uint64) (*model.Category, error) {
	var c model.Category
	if err := r.db.WithContext(ctx).First(&c, id).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *categoryRepository) FindBySlug(ctx context.Context, slug string) (*model.Category, error) {
	var c model.Category
	if err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&c).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *categoryRepository) FindBySlugs(ctx context.Context, slugs []string) ([]model.Category, error) {
	if len(slugs) == 0 {
		return nil, nil
	}
	var cs []model.Category
	if err := r.db.WithContext(ctx).Where("slug IN ?", slugs).Find(&cs).Error; err != nil {
		return nil, err
	}
	return cs, nil
}

// ListAll returns every category ordered by name, the insertion order the
// menu tree is built from.
func (r *categoryRepository) ListAll(ctx context.Context) ([]model.Category, error) {
	var cs []model.Category
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&cs).Error; err != nil {
		return nil, err
	}
	return cs, nil
}
