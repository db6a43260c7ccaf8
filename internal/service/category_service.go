package service

import (
	"context"
	"errors"
	"strings"

	"github.com/avolkov/goshop/internal/model"
	"github.com/avolkov/goshop/internal/repository"
	"gorm.io/gorm"
)

// CategoryNode is one node of the menu tree, children ordered by name.
type CategoryNode struct {
	ID       uint64          `json:"id"`
	Name     string          `json:"name"`
	Slug     string          `json:"slug"`
	Children []*CategoryNode `json:"children,omitempty"`
}

type CategoryInput struct {
	Name     string
	Slug     string
	ParentID *uint64
}

type CategoryService interface {
	Tree(ctx context.Context) ([]*CategoryNode, error)
	Create(ctx context.Context, in CategoryInput) (*model.Category, error)
	Update(ctx context.Context, id uint64, in CategoryInput) (*model.Category, error)
	Delete(ctx context.Context, id uint64) error
}

type categoryService struct {
	repo repository.CategoryRepository
}

func NewCategoryService(repo repository.CategoryRepository) CategoryService {
	return &categoryService{repo: repo}
}

// BuildTree assembles the flat, name-ordered category rows into a forest.
// Nodes reference children by index into one arena, so the result stays a
// plain acyclic structure that serializes directly.
func BuildTree(categories []model.Category) []*CategoryNode {
	arena := make([]*CategoryNode, len(categories))
	byID := make(map[uint64]*CategoryNode, len(categories))
	for i, c := range categories {
		arena[i] = &CategoryNode{ID: c.ID, Name: c.Name, Slug: c.Slug}
		byID[c.ID] = arena[i]
	}
	var roots []*CategoryNode
	for i, c := range categories {
		if c.ParentID != nil {
			if parent, ok := byID[*c.ParentID]; ok {
				parent.Children = append(parent.Children, arena[i])
				continue
			}
		}
		roots = append(roots, arena[i])
	}
	return roots
}

func (s *categoryService) Tree(ctx context.Context) ([]*CategoryNode, error) {
	categories, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	return BuildTree(categories), nil
}

func (s *categoryService) validate(ctx context.Context, in *CategoryInput, selfID uint64) error {
	in.Name = strings.TrimSpace(in.Name)
	in.Slug = strings.TrimSpace(in.Slug)

	fields := map[string]string{}
	if in.Name == "" || len(in.Name) > 32 {
		fields["name"] = "must be 1-32 characters"
	}
	if in.Slug == "" || len(in.Slug) > 40 || strings.ContainsAny(in.Slug, " /") {
		fields["slug"] = "must be 1-40 characters without spaces or slashes"
	}
	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}

	if existing, err := s.repo.FindBySlug(ctx, in.Slug); err == nil {
		if existing.ID != selfID {
			return ErrSlugTaken
		}
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	if in.ParentID != nil {
		return s.checkCycle(ctx, *in.ParentID, selfID)
	}
	return nil
}

// checkCycle walks the ancestor chain of the proposed parent. Hitting selfID
// means the new edge would close a cycle.
func (s *categoryService) checkCycle(ctx context.Context, parentID, selfID uint64) error {
	for cur := &parentID; cur != nil; {
		if *cur == selfID {
			return ErrCategoryCycle
		}
		parent, err := s.repo.FindByID(ctx, *cur)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		cur = parent.ParentID
	}
	return nil
}

func (s *categoryService) Create(ctx context.Context, in CategoryInput) (*model.Category, error) {
	if err := s.validate(ctx, &in, 0); err != nil {
		return nil, err
	}
	c := &model.Category{Name: in.Name, Slug: in.Slug, ParentID: in.ParentID}
	if err := s.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *categoryService) Update(ctx context.Context, id uint64, in CategoryInput) (*model.Category, error) {
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if err := s.validate(ctx, &in, id); err != nil {
		return nil, err
	}
	c.Name = in.Name
	c.Slug = in.Slug
	c.ParentID = in.ParentID
	if err := s.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *categoryService) Delete(ctx context.Context, id uint64) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	return s.repo.Delete(ctx, id)
}
