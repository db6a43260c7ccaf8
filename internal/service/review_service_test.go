package service

import (
	"context"
	"errors"
	"testing"

	"github.com/avolkov/goshop/internal/model"
)

func TestAddReviewRejectsOutOfRangeRate(t *testing.T) {
	reviewRepo := &fakeReviewRepo{}
	svc := NewReviewService(reviewRepo, newFakeItemRepo(model.Item{ID: 1}))
	ctx := context.Background()

	for _, rate := range []int{-1, 101, 1000} {
		if _, err := svc.AddReview(ctx, 1, 2, rate, "text"); !errors.Is(err, ErrInvalidRate) {
			t.Fatalf("rate %d: want ErrInvalidRate, got %v", rate, err)
		}
	}
	if len(reviewRepo.reviews) != 0 {
		t.Fatalf("reviews created for invalid rates: %v", reviewRepo.reviews)
	}
}

func TestAddReviewBoundsAreValid(t *testing.T) {
	reviewRepo := &fakeReviewRepo{}
	svc := NewReviewService(reviewRepo, newFakeItemRepo(model.Item{ID: 1}))
	ctx := context.Background()

	for _, rate := range []int{0, 100} {
		if _, err := svc.AddReview(ctx, 1, 2, rate, "text"); err != nil {
			t.Fatalf("rate %d: %v", rate, err)
		}
	}
	if len(reviewRepo.reviews) != 2 {
		t.Fatalf("want 2 reviews, got %d", len(reviewRepo.reviews))
	}
}

func TestAddReviewUnknownItem(t *testing.T) {
	svc := NewReviewService(&fakeReviewRepo{}, newFakeItemRepo())
	if _, err := svc.AddReview(context.Background(), 9, 2, 50, "t"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}

func TestAddReviewAllowsRepeatAuthors(t *testing.T) {
	reviewRepo := &fakeReviewRepo{}
	svc := NewReviewService(reviewRepo, newFakeItemRepo(model.Item{ID: 1}))
	ctx := context.Background()

	// Same author, same item, twice: both rows exist.
	for i := 0; i < 2; i++ {
		if _, err := svc.AddReview(ctx, 1, 2, 50, "again"); err != nil {
			t.Fatalf("review %d: %v", i, err)
		}
	}
	if len(reviewRepo.reviews) != 2 {
		t.Fatalf("want 2 reviews, got %d", len(reviewRepo.reviews))
	}
}

func TestAverageRating(t *testing.T) {
	reviewRepo := &fakeReviewRepo{}
	svc := NewReviewService(reviewRepo, newFakeItemRepo(model.Item{ID: 1}))
	ctx := context.Background()

	avg, err := svc.AverageRating(ctx, 1)
	if err != nil {
		t.Fatalf("avg: %v", err)
	}
	if avg != nil {
		t.Fatalf("no reviews should give nil, got %v", *avg)
	}

	svc.AddReview(ctx, 1, 2, 40, "a")
	svc.AddReview(ctx, 1, 3, 80, "b")
	avg, err = svc.AverageRating(ctx, 1)
	if err != nil || avg == nil || *avg != 60 {
		t.Fatalf("avg=%v err=%v want 60", avg, err)
	}
}
