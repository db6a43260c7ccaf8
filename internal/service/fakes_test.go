package service

import (
	"context"
	"sort"

	"github.com/avolkov/goshop/internal/basket"
	"github.com/avolkov/goshop/internal/catalog"
	"github.com/avolkov/goshop/internal/model"
	"github.com/avolkov/goshop/internal/repository"
	"gorm.io/gorm"
)

type fakeItemRepo struct {
	items map[uint64]model.Item
}

func newFakeItemRepo(items ...model.Item) *fakeItemRepo {
	r := &fakeItemRepo{items: map[uint64]model.Item{}}
	for _, it := range items {
		r.items[it.ID] = it
	}
	return r
}

func (r *fakeItemRepo) Create(ctx context.Context, item *model.Item) error {
	item.ID = uint64(len(r.items) + 1)
	r.items[item.ID] = *item
	return nil
}

func (r *fakeItemRepo) FindByID(ctx context.Context, id uint64) (*model.Item, error) {
	it, ok := r.items[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &it, nil
}

func (r *fakeItemRepo) FindByIDs(ctx context.Context, ids []uint64) ([]model.Item, error) {
	var out []model.Item
	for _, id := range ids {
		if it, ok := r.items[id]; ok {
			out = append(out, it)
		}
	}
	return out, nil
}

func (r *fakeItemRepo) ListFiltered(ctx context.Context, spec catalog.FilterSpec, ref repository.ListRefinement, page int) ([]model.Item, int64, error) {
	return nil, 0, nil
}

func (r *fakeItemRepo) AttachCategories(ctx context.Context, itemID uint64, categoryIDs []uint64) error {
	return nil
}

func (r *fakeItemRepo) AddImages(ctx context.Context, itemID uint64, urls []string) error {
	return nil
}

func (r *fakeItemRepo) ListImages(ctx context.Context, itemID uint64) ([]model.ItemImage, error) {
	return nil, nil
}

type fakeBasketStore struct {
	baskets map[string][]uint64
	clears  int
}

func newFakeBasketStore() *fakeBasketStore {
	return &fakeBasketStore{baskets: map[string][]uint64{}}
}

func (s *fakeBasketStore) Get(ctx context.Context, sid string) ([]uint64, error) {
	return s.baskets[sid], nil
}

func (s *fakeBasketStore) Add(ctx context.Context, sid string, itemID uint64) error {
	s.baskets[sid] = basket.Add(s.baskets[sid], itemID)
	return nil
}

func (s *fakeBasketStore) Remove(ctx context.Context, sid string, itemID uint64) error {
	s.baskets[sid] = basket.Remove(s.baskets[sid], itemID)
	return nil
}

func (s *fakeBasketStore) Contains(ctx context.Context, sid string, itemID uint64) (bool, error) {
	return basket.Contains(s.baskets[sid], itemID), nil
}

func (s *fakeBasketStore) Clear(ctx context.Context, sid string) error {
	delete(s.baskets, sid)
	s.clears++
	return nil
}

type fakePurchaseRepo struct {
	purchases map[uint64]model.Purchase
	links     map[uint64][]uint64
}

func newFakePurchaseRepo() *fakePurchaseRepo {
	return &fakePurchaseRepo{purchases: map[uint64]model.Purchase{}, links: map[uint64][]uint64{}}
}

func (r *fakePurchaseRepo) Create(ctx context.Context, p *model.Purchase, itemIDs []uint64) error {
	p.ID = uint64(len(r.purchases) + 1)
	r.purchases[p.ID] = *p
	r.links[p.ID] = append([]uint64(nil), itemIDs...)
	return nil
}

func (r *fakePurchaseRepo) ListByUser(ctx context.Context, userID uint64) ([]model.Purchase, error) {
	var out []model.Purchase
	for _, p := range r.purchases {
		if p.UserID != nil && *p.UserID == userID {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (r *fakePurchaseRepo) ListItems(ctx context.Context, purchaseID uint64) ([]model.Item, error) {
	var out []model.Item
	for _, id := range r.links[purchaseID] {
		out = append(out, model.Item{ID: id})
	}
	return out, nil
}

func (r *fakePurchaseRepo) CountByItem(ctx context.Context, itemID uint64) (int64, error) {
	var n int64
	for _, ids := range r.links {
		for _, id := range ids {
			if id == itemID {
				n++
			}
		}
	}
	return n, nil
}

type fakeReviewRepo struct {
	reviews []model.Review
}

func (r *fakeReviewRepo) Create(ctx context.Context, review *model.Review) error {
	review.ID = uint64(len(r.reviews) + 1)
	r.reviews = append(r.reviews, *review)
	return nil
}

func (r *fakeReviewRepo) ListByItem(ctx context.Context, itemID uint64) ([]model.Review, error) {
	var out []model.Review
	for _, rv := range r.reviews {
		if rv.ItemID == itemID {
			out = append(out, rv)
		}
	}
	return out, nil
}

func (r *fakeReviewRepo) CountByItem(ctx context.Context, itemID uint64) (int64, error) {
	list, _ := r.ListByItem(ctx, itemID)
	return int64(len(list)), nil
}

func (r *fakeReviewRepo) AverageRate(ctx context.Context, itemID uint64) (*float64, error) {
	list, _ := r.ListByItem(ctx, itemID)
	if len(list) == 0 {
		return nil, nil
	}
	var sum float64
	for _, rv := range list {
		sum += float64(rv.Rate)
	}
	avg := sum / float64(len(list))
	return &avg, nil
}

type favKey struct{ user, item uint64 }

type fakeFavoriteRepo struct {
	favs map[favKey]bool
}

func newFakeFavoriteRepo() *fakeFavoriteRepo {
	return &fakeFavoriteRepo{favs: map[favKey]bool{}}
}

func (r *fakeFavoriteRepo) Create(ctx context.Context, f *model.Favorite) error {
	r.favs[favKey{f.UserID, f.ItemID}] = true
	return nil
}

func (r *fakeFavoriteRepo) Delete(ctx context.Context, userID, itemID uint64) (int64, error) {
	k := favKey{userID, itemID}
	if r.favs[k] {
		delete(r.favs, k)
		return 1, nil
	}
	return 0, nil
}

func (r *fakeFavoriteRepo) Exists(ctx context.Context, userID, itemID uint64) (bool, error) {
	return r.favs[favKey{userID, itemID}], nil
}

type fakeCategoryRepo struct {
	categories map[uint64]model.Category
	nextID     uint64
}

func newFakeCategoryRepo() *fakeCategoryRepo {
	return &fakeCategoryRepo{categories: map[uint64]model.Category{}}
}

func (r *fakeCategoryRepo) add(c model.Category) model.Category {
	r.nextID++
	c.ID = r.nextID
	r.categories[c.ID] = c
	return c
}

func (r *fakeCategoryRepo) Create(ctx context.Context, c *model.Category) error {
	*c = r.add(*c)
	return nil
}

func (r *fakeCategoryRepo) Update(ctx context.Context, c *model.Category) error {
	r.categories[c.ID] = *c
	return nil
}

func (r *fakeCategoryRepo) Delete(ctx context.Context, id uint64) error {
	delete(r.categories, id)
	return nil
}

func (r *fakeCategoryRepo) FindByID(ctx context.Context, id uint64) (*model.Category, error) {
	c, ok := r.categories[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &c, nil
}

func (r *fakeCategoryRepo) FindBySlug(ctx context.Context, slug string) (*model.Category, error) {
	for _, c := range r.categories {
		if c.Slug == slug {
			c := c
			return &c, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeCategoryRepo) FindBySlugs(ctx context.Context, slugs []string) ([]model.Category, error) {
	var out []model.Category
	for _, slug := range slugs {
		if c, err := r.FindBySlug(ctx, slug); err == nil {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (r *fakeCategoryRepo) ListAll(ctx context.Context) ([]model.Category, error) {
	out := make([]model.Category, 0, len(r.categories))
	for _, c := range r.categories {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}
