package service

import (
	"context"
	"errors"
	"testing"

	"github.com/avolkov/goshop/internal/model"
)

func boolPtr(b bool) *bool { return &b }

func TestCheckoutHappyPath(t *testing.T) {
	store := newFakeBasketStore()
	itemRepo := newFakeItemRepo(
		model.Item{ID: 1, Title: "A", PriceCents: 1000},
		model.Item{ID: 2, Title: "B", PriceCents: 1500},
	)
	purchaseRepo := newFakePurchaseRepo()
	svc := NewCheckoutService(store, itemRepo, purchaseRepo)
	ctx := context.Background()

	store.Add(ctx, "sid", 1)
	store.Add(ctx, "sid", 2)

	form := ShippingForm{IsDelivery: boolPtr(true), Email: "a@b.com"}
	p, err := svc.Checkout(ctx, "sid", nil, form)
	if err != nil {
		t.Fatalf("checkout: %v", err)
	}
	if p.TotalPriceCents == nil || *p.TotalPriceCents != 2500 {
		t.Fatalf("total=%v want 2500", p.TotalPriceCents)
	}
	if got := purchaseRepo.links[p.ID]; len(got) != 2 || got[0] != 1 || got[1] != 2 {
		t.Fatalf("linked items=%v", got)
	}
	if p.UserID != nil {
		t.Fatalf("guest checkout should have nil user, got %v", *p.UserID)
	}
	if ids, _ := store.Get(ctx, "sid"); len(ids) != 0 {
		t.Fatalf("basket not cleared: %v", ids)
	}
	if store.clears != 1 {
		t.Fatalf("clear called %d times", store.clears)
	}
}

func TestCheckoutKeepsBuyerIdentity(t *testing.T) {
	store := newFakeBasketStore()
	itemRepo := newFakeItemRepo(model.Item{ID: 1, PriceCents: 100})
	svc := NewCheckoutService(store, itemRepo, newFakePurchaseRepo())
	ctx := context.Background()

	store.Add(ctx, "sid", 1)
	uid := uint64(7)
	p, err := svc.Checkout(ctx, "sid", &uid, ShippingForm{IsDelivery: boolPtr(false), Email: "a@b.com"})
	if err != nil {
		t.Fatalf("checkout: %v", err)
	}
	if p.UserID == nil || *p.UserID != 7 {
		t.Fatalf("user=%v want 7", p.UserID)
	}
}

func TestCheckoutUsesCurrentPrices(t *testing.T) {
	store := newFakeBasketStore()
	itemRepo := newFakeItemRepo(model.Item{ID: 1, PriceCents: 1000})
	svc := NewCheckoutService(store, itemRepo, newFakePurchaseRepo())
	ctx := context.Background()

	store.Add(ctx, "sid", 1)
	// Price changes between basket-add and checkout.
	itemRepo.items[1] = model.Item{ID: 1, PriceCents: 2000}

	p, err := svc.Checkout(ctx, "sid", nil, ShippingForm{IsDelivery: boolPtr(true), Email: "a@b.com"})
	if err != nil {
		t.Fatalf("checkout: %v", err)
	}
	if *p.TotalPriceCents != 2000 {
		t.Fatalf("total=%d want 2000", *p.TotalPriceCents)
	}
}

func TestCheckoutInvalidFormMutatesNothing(t *testing.T) {
	tests := []struct {
		name  string
		form  ShippingForm
		field string
	}{
		{"missing email", ShippingForm{IsDelivery: boolPtr(true)}, "email"},
		{"bad email", ShippingForm{IsDelivery: boolPtr(true), Email: "nope"}, "email"},
		{"missing delivery flag", ShippingForm{Email: "a@b.com"}, "is_delivery"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newFakeBasketStore()
			itemRepo := newFakeItemRepo(model.Item{ID: 1, PriceCents: 100})
			purchaseRepo := newFakePurchaseRepo()
			svc := NewCheckoutService(store, itemRepo, purchaseRepo)
			ctx := context.Background()
			store.Add(ctx, "sid", 1)

			_, err := svc.Checkout(ctx, "sid", nil, tt.form)
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("want ValidationError, got %v", err)
			}
			if _, ok := verr.Fields[tt.field]; !ok {
				t.Fatalf("missing field %q in %v", tt.field, verr.Fields)
			}
			if len(purchaseRepo.purchases) != 0 {
				t.Fatal("purchase created despite invalid form")
			}
			if ids, _ := store.Get(ctx, "sid"); len(ids) != 1 {
				t.Fatalf("basket mutated: %v", ids)
			}
		})
	}
}

func TestCheckoutEmptyBasketRejected(t *testing.T) {
	store := newFakeBasketStore()
	purchaseRepo := newFakePurchaseRepo()
	svc := NewCheckoutService(store, newFakeItemRepo(), purchaseRepo)

	_, err := svc.Checkout(context.Background(), "sid", nil, ShippingForm{IsDelivery: boolPtr(true), Email: "a@b.com"})
	if !errors.Is(err, ErrEmptyBasket) {
		t.Fatalf("want ErrEmptyBasket, got %v", err)
	}
	if len(purchaseRepo.purchases) != 0 {
		t.Fatal("purchase created from empty basket")
	}
}

func TestCheckoutDropsDeletedItems(t *testing.T) {
	store := newFakeBasketStore()
	itemRepo := newFakeItemRepo(model.Item{ID: 1, PriceCents: 1000})
	svc := NewCheckoutService(store, itemRepo, newFakePurchaseRepo())
	ctx := context.Background()

	store.Add(ctx, "sid", 1)
	store.Add(ctx, "sid", 99) // deleted from the catalog since

	p, err := svc.Checkout(ctx, "sid", nil, ShippingForm{IsDelivery: boolPtr(true), Email: "a@b.com"})
	if err != nil {
		t.Fatalf("checkout: %v", err)
	}
	if *p.TotalPriceCents != 1000 {
		t.Fatalf("total=%d want 1000", *p.TotalPriceCents)
	}
}
