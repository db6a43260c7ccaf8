package service

import (
	"context"
	"strings"

	"github.com/avolkov/goshop/internal/model"
	"github.com/avolkov/goshop/internal/repository"
	"go.uber.org/zap"
)

// ShippingForm is the checkout submission. IsDelivery and Email are required;
// the rest is optional contact data.
type ShippingForm struct {
	IsDelivery *bool
	Email      string
	Phone      string
	Country    string
	City       string
	Street     string
}

func (f *ShippingForm) validate() *ValidationError {
	fields := map[string]string{}
	if f.IsDelivery == nil {
		fields["is_delivery"] = "delivery flag is required"
	}
	email := strings.TrimSpace(f.Email)
	if email == "" {
		fields["email"] = "email is required"
	} else if !strings.Contains(email, "@") {
		fields["email"] = "email is invalid"
	}
	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

type CheckoutService interface {
	// Checkout converts the session basket into a purchase. userID is nil
	// for guest checkout. On validation failure nothing is persisted and the
	// basket is untouched.
	Checkout(ctx context.Context, sessionID string, userID *uint64, form ShippingForm) (*model.Purchase, error)
}

type checkoutService struct {
	store        BasketStore
	itemRepo     repository.ItemRepository
	purchaseRepo repository.PurchaseRepository
}

func NewCheckoutService(store BasketStore, itemRepo repository.ItemRepository, purchaseRepo repository.PurchaseRepository) CheckoutService {
	return &checkoutService{store: store, itemRepo: itemRepo, purchaseRepo: purchaseRepo}
}

func (s *checkoutService) Checkout(ctx context.Context, sessionID string, userID *uint64, form ShippingForm) (*model.Purchase, error) {
	if verr := form.validate(); verr != nil {
		return nil, verr
	}

	ids, err := s.store.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	items, err := s.itemRepo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, ErrEmptyBasket
	}

	// Total uses the prices at checkout time, not at basket-add time.
	var total int64
	itemIDs := make([]uint64, 0, len(items))
	for _, it := range items {
		total += it.PriceCents
		itemIDs = append(itemIDs, it.ID)
	}

	purchase := &model.Purchase{
		UserID:          userID,
		IsDelivery:      *form.IsDelivery,
		TotalPriceCents: &total,
		Email:           strings.TrimSpace(form.Email),
		Phone:           strings.TrimSpace(form.Phone),
		Country:         strings.TrimSpace(form.Country),
		City:            strings.TrimSpace(form.City),
		Street:          strings.TrimSpace(form.Street),
	}
	if err := s.purchaseRepo.Create(ctx, purchase, itemIDs); err != nil {
		return nil, err
	}

	// The purchase is already persisted; a failed clear only leaves a stale
	// basket behind.
	if err := s.store.Clear(ctx, sessionID); err != nil {
		zap.L().Warn("basket clear after checkout failed",
			zap.String("session_id", sessionID),
			zap.Uint64("purchase_id", purchase.ID),
			zap.Error(err))
	}
	return purchase, nil
}
