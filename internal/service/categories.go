package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/Marco21c/backend-noticias/internal/domain/category"
)

type CategoryService struct {
	store CategoryStore
}

func NewCategoryService(store CategoryStore) *CategoryService {
	return &CategoryService{store: store}
}

func (s *CategoryService) List(ctx context.Context) ([]category.Category, error) {
	items, err := s.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing categories: %w", err)
	}
	return items, nil
}

func (s *CategoryService) GetByID(ctx context.Context, id string) (category.Category, error) {
	return s.store.GetByID(ctx, id)
}

func (s *CategoryService) Create(ctx context.Context, req category.CreateCategoryRequest) (category.Category, error) {
	name, err := s.checkName(ctx, req.Name, "")
	if err != nil {
		return category.Category{}, err
	}

	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	return s.store.Create(ctx, category.Category{
		Name:        name,
		Description: req.Description,
		IsActive:    isActive,
	})
}

// Update merges only the fields present in req.
func (s *CategoryService) Update(ctx context.Context, id string, req category.UpdateCategoryRequest) (category.Category, error) {
	var p category.Patch

	if req.Name != nil {
		name, err := s.checkName(ctx, *req.Name, id)
		if err != nil {
			return category.Category{}, err
		}
		p.Name = &name
	}
	p.Description = req.Description
	p.IsActive = req.IsActive

	return s.store.Update(ctx, id, p)
}

func (s *CategoryService) Delete(ctx context.Context, id string) (category.Category, error) {
	return s.store.Delete(ctx, id)
}

// checkName trims raw and rejects short or already-used names, ignoring case.
func (s *CategoryService) checkName(ctx context.Context, raw, exceptID string) (string, error) {
	name := strings.TrimSpace(raw)
	if utf8.RuneCountInString(name) < category.MinNameLength {
		return "", category.ErrInvalidName
	}

	existing, err := s.store.GetByName(ctx, name)
	switch {
	case errors.Is(err, category.ErrNotFound):
		return name, nil
	case err != nil:
		return "", fmt.Errorf("checking category name: %w", err)
	case existing.ID == exceptID:
		return name, nil
	default:
		return "", category.ErrNameDuplicate
	}
}
