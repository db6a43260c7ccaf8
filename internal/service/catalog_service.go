package service

import (
	"context"
	"errors"
	"strings"

	"github.com/avolkov/goshop/internal/catalog"
	"github.com/avolkov/goshop/internal/model"
	"github.com/avolkov/goshop/internal/repository"
	"gorm.io/gorm"
)

// ItemPage is one page of a filtered listing.
type ItemPage struct {
	Items []model.Item
	Total int64
	Page  int
}

// ItemDetail is the full product view: the item with its images, reviews and
// derived metrics.
type ItemDetail struct {
	Item          model.Item
	Images        []model.ItemImage
	Reviews       []model.Review
	AverageRate   *float64
	ReviewCount   int64
	PurchaseCount int64
}

type CreateItemInput struct {
	Title         string
	Description   string
	PriceCents    int64
	SalesmanID    uint64
	CategorySlugs []string
	ImageURLs     []string
}

type CatalogService interface {
	List(ctx context.Context, spec catalog.FilterSpec, page int) (*ItemPage, error)
	ListByCategory(ctx context.Context, slug string, spec catalog.FilterSpec, page int) (*ItemPage, error)
	Search(ctx context.Context, text string, spec catalog.FilterSpec, page int) (*ItemPage, error)
	Favorites(ctx context.Context, userID uint64, spec catalog.FilterSpec, page int) (*ItemPage, error)
	Get(ctx context.Context, id uint64) (*ItemDetail, error)
	Create(ctx context.Context, in CreateItemInput) (*model.Item, error)
}

type catalogService struct {
	itemRepo     repository.ItemRepository
	categoryRepo repository.CategoryRepository
	reviewRepo   repository.ReviewRepository
	purchaseRepo repository.PurchaseRepository
}

func NewCatalogService(
	itemRepo repository.ItemRepository,
	categoryRepo repository.CategoryRepository,
	reviewRepo repository.ReviewRepository,
	purchaseRepo repository.PurchaseRepository,
) CatalogService {
	return &catalogService{
		itemRepo:     itemRepo,
		categoryRepo: categoryRepo,
		reviewRepo:   reviewRepo,
		purchaseRepo: purchaseRepo,
	}
}

func (s *catalogService) list(ctx context.Context, spec catalog.FilterSpec, ref repository.ListRefinement, page int) (*ItemPage, error) {
	if page < 1 {
		page = 1
	}
	items, total, err := s.itemRepo.ListFiltered(ctx, spec, ref, page)
	if err != nil {
		return nil, err
	}
	return &ItemPage{Items: items, Total: total, Page: page}, nil
}

func (s *catalogService) List(ctx context.Context, spec catalog.FilterSpec, page int) (*ItemPage, error) {
	return s.list(ctx, spec, repository.ListRefinement{}, page)
}

func (s *catalogService) ListByCategory(ctx context.Context, slug string, spec catalog.FilterSpec, page int) (*ItemPage, error) {
	if _, err := s.categoryRepo.FindBySlug(ctx, slug); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return s.list(ctx, spec, repository.ListRefinement{CategorySlug: slug}, page)
}

// Search matches the item title case-insensitively; empty text falls back to
// the plain listing.
func (s *catalogService) Search(ctx context.Context, text string, spec catalog.FilterSpec, page int) (*ItemPage, error) {
	return s.list(ctx, spec, repository.ListRefinement{Search: strings.TrimSpace(text)}, page)
}

func (s *catalogService) Favorites(ctx context.Context, userID uint64, spec catalog.FilterSpec, page int) (*ItemPage, error) {
	return s.list(ctx, spec, repository.ListRefinement{FavoritesOf: &userID}, page)
}

func (s *catalogService) Get(ctx context.Context, id uint64) (*ItemDetail, error) {
	item, err := s.itemRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	detail := ItemDetail{Item: *item}
	if detail.Images, err = s.itemRepo.ListImages(ctx, id); err != nil {
		return nil, err
	}
	if detail.Reviews, err = s.reviewRepo.ListByItem(ctx, id); err != nil {
		return nil, err
	}
	if detail.AverageRate, err = s.reviewRepo.AverageRate(ctx, id); err != nil {
		return nil, err
	}
	if detail.ReviewCount, err = s.reviewRepo.CountByItem(ctx, id); err != nil {
		return nil, err
	}
	if detail.PurchaseCount, err = s.purchaseRepo.CountByItem(ctx, id); err != nil {
		return nil, err
	}
	return &detail, nil
}

func (s *catalogService) Create(ctx context.Context, in CreateItemInput) (*model.Item, error) {
	in.Title = strings.TrimSpace(in.Title)
	in.Description = strings.TrimSpace(in.Description)

	fields := map[string]string{}
	if in.Title == "" || len(in.Title) > 124 {
		fields["title"] = "must be 1-124 characters"
	}
	if in.Description == "" {
		fields["description"] = "must not be empty"
	}
	if in.PriceCents < 0 {
		fields["price"] = "must not be negative"
	}
	if len(in.CategorySlugs) == 0 {
		fields["categories"] = "at least one category is required"
	}
	if len(fields) > 0 {
		return nil, &ValidationError{Fields: fields}
	}

	cats, err := s.categoryRepo.FindBySlugs(ctx, in.CategorySlugs)
	if err != nil {
		return nil, err
	}
	if len(cats) != len(in.CategorySlugs) {
		return nil, ErrNotFound
	}

	item := &model.Item{
		Title:       in.Title,
		Description: in.Description,
		PriceCents:  in.PriceCents,
		SalesmanID:  in.SalesmanID,
	}
	if err := s.itemRepo.Create(ctx, item); err != nil {
		return nil, err
	}
	ids := make([]uint64, 0, len(cats))
	for _, c := range cats {
		ids = append(ids, c.ID)
	}
	if err := s.itemRepo.AttachCategories(ctx, item.ID, ids); err != nil {
		return nil, err
	}
	if len(in.ImageURLs) > 0 {
		if err := s.itemRepo.AddImages(ctx, item.ID, in.ImageURLs); err != nil {
			return nil, err
		}
	}
	return item, nil
}
