package memory

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/Marco21c/backend-noticias/internal/domain/category"
	"github.com/Marco21c/backend-noticias/internal/utils"
)

type CategoriesRepo struct {
	mu    sync.RWMutex
	items map[string]category.Category
}

func NewCategoriesRepo() *CategoriesRepo {
	return &CategoriesRepo{
		items: make(map[string]category.Category),
	}
}

func (r *CategoriesRepo) Create(_ context.Context, c category.Category) (category.Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.nameTakenLocked(c.Name, "") {
		return category.Category{}, category.ErrNameDuplicate
	}

	now := time.Now().UTC()
	if c.ID == "" {
		c.ID = utils.NewID()
	}
	c.CreatedAt = now
	c.UpdatedAt = now

	r.items[c.ID] = c
	return c, nil
}

func (r *CategoriesRepo) GetByID(_ context.Context, id string) (category.Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.items[id]
	if !ok {
		return category.Category{}, category.ErrNotFound
	}
	return c, nil
}

func (r *CategoriesRepo) GetByName(_ context.Context, name string) (category.Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, c := range r.items {
		if strings.EqualFold(c.Name, name) {
			return c, nil
		}
	}
	return category.Category{}, category.ErrNotFound
}

func (r *CategoriesRepo) List(_ context.Context) ([]category.Category, error) {
	r.mu.RLock()
	out := make([]category.Category, 0, len(r.items))
	for _, c := range r.items {
		out = append(out, c)
	}
	r.mu.RUnlock()

	sortByCreation(out, func(c category.Category) (time.Time, string) { return c.CreatedAt, c.ID })
	return out, nil
}

func (r *CategoriesRepo) Update(_ context.Context, id string, p category.Patch) (category.Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.items[id]
	if !ok {
		return category.Category{}, category.ErrNotFound
	}

	if p.Name != nil {
		if r.nameTakenLocked(*p.Name, id) {
			return category.Category{}, category.ErrNameDuplicate
		}
		c.Name = *p.Name
	}
	if p.Description != nil {
		c.Description = *p.Description
	}
	if p.IsActive != nil {
		c.IsActive = *p.IsActive
	}
	c.UpdatedAt = time.Now().UTC()

	r.items[id] = c
	return c, nil
}

func (r *CategoriesRepo) Delete(_ context.Context, id string) (category.Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.items[id]
	if !ok {
		return category.Category{}, category.ErrNotFound
	}
	delete(r.items, id)
	return c, nil
}

func (r *CategoriesRepo) nameTakenLocked(name, exceptID string) bool {
	for id, c := range r.items {
		if id != exceptID && strings.EqualFold(c.Name, name) {
			return true
		}
	}
	return false
}
