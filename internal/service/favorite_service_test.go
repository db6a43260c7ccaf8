package service

import (
	"context"
	"errors"
	"testing"

	"github.com/avolkov/goshop/internal/model"
)

func TestFavoriteToggle(t *testing.T) {
	svc := NewFavoriteService(newFakeFavoriteRepo(), newFakeItemRepo(model.Item{ID: 7}))
	ctx := context.Background()

	if err := svc.Add(ctx, 3, 7); err != nil {
		t.Fatalf("add: %v", err)
	}
	ok, err := svc.Contains(ctx, 3, 7)
	if err != nil || !ok {
		t.Fatalf("contains after add: ok=%v err=%v", ok, err)
	}
	if err := svc.Remove(ctx, 3, 7); err != nil {
		t.Fatalf("remove: %v", err)
	}
	ok, err = svc.Contains(ctx, 3, 7)
	if err != nil || ok {
		t.Fatalf("contains after remove: ok=%v err=%v", ok, err)
	}
}

func TestFavoriteDuplicateAddConflicts(t *testing.T) {
	svc := NewFavoriteService(newFakeFavoriteRepo(), newFakeItemRepo(model.Item{ID: 7}))
	ctx := context.Background()

	if err := svc.Add(ctx, 3, 7); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := svc.Add(ctx, 3, 7); !errors.Is(err, ErrAlreadyFavorite) {
		t.Fatalf("want ErrAlreadyFavorite, got %v", err)
	}
}

func TestFavoriteRemoveNeverAdded(t *testing.T) {
	svc := NewFavoriteService(newFakeFavoriteRepo(), newFakeItemRepo(model.Item{ID: 7}))
	if err := svc.Remove(context.Background(), 3, 7); !errors.Is(err, ErrNotFavorite) {
		t.Fatalf("want ErrNotFavorite, got %v", err)
	}
}

func TestFavoriteAddUnknownItem(t *testing.T) {
	svc := NewFavoriteService(newFakeFavoriteRepo(), newFakeItemRepo())
	if err := svc.Add(context.Background(), 3, 9); !errors.Is(err, ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}
