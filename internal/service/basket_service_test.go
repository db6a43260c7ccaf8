package service

import (
	"context"
	"errors"
	"testing"

	"github.com/avolkov/goshop/internal/model"
)

func TestBasketAddUnknownItem(t *testing.T) {
	svc := NewBasketService(newFakeBasketStore(), newFakeItemRepo())
	if err := svc.Add(context.Background(), "sid", 42); !errors.Is(err, ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}

func TestBasketRemoveFromEmptyIsNoop(t *testing.T) {
	svc := NewBasketService(newFakeBasketStore(), newFakeItemRepo())
	if err := svc.Remove(context.Background(), "sid", 42); err != nil {
		t.Fatalf("remove from empty basket should be a no-op, got %v", err)
	}
}

func TestBasketMaterializeDropsDeletedItems(t *testing.T) {
	store := newFakeBasketStore()
	itemRepo := newFakeItemRepo(
		model.Item{ID: 1, Title: "kept", PriceCents: 100},
		model.Item{ID: 2, Title: "doomed", PriceCents: 200},
	)
	svc := NewBasketService(store, itemRepo)
	ctx := context.Background()

	if err := svc.Add(ctx, "sid", 1); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := svc.Add(ctx, "sid", 2); err != nil {
		t.Fatalf("add: %v", err)
	}
	delete(itemRepo.items, 2)

	items, err := svc.Materialize(ctx, "sid")
	if err != nil {
		t.Fatalf("materialize: %v", err)
	}
	if len(items) != 1 || items[0].Title != "kept" {
		t.Fatalf("got %v", items)
	}
}

func TestBasketContains(t *testing.T) {
	store := newFakeBasketStore()
	svc := NewBasketService(store, newFakeItemRepo(model.Item{ID: 1}))
	ctx := context.Background()

	ok, err := svc.Contains(ctx, "sid", 1)
	if err != nil || ok {
		t.Fatalf("empty basket contains: ok=%v err=%v", ok, err)
	}
	if err := svc.Add(ctx, "sid", 1); err != nil {
		t.Fatalf("add: %v", err)
	}
	ok, err = svc.Contains(ctx, "sid", 1)
	if err != nil || !ok {
		t.Fatalf("after add: ok=%v err=%v", ok, err)
	}
}
