package memory

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/Marco21c/backend-noticias/internal/domain/news"
	"github.com/Marco21c/backend-noticias/internal/utils"
)

type NewsRepo struct {
	mu    sync.RWMutex
	items map[string]news.News
}

func NewNewsRepo() *NewsRepo {
	return &NewsRepo{
		items: make(map[string]news.News),
	}
}

func (r *NewsRepo) Create(_ context.Context, n news.News) (news.News, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.slugTakenLocked(n.Slug, "") {
		return news.News{}, news.ErrSlugDuplicate
	}

	now := time.Now().UTC()
	if n.ID == "" {
		n.ID = utils.NewID()
	}
	n.Highlights = slices.Clone(n.Highlights)
	n.CreatedAt = now
	n.UpdatedAt = now

	r.items[n.ID] = n
	return copyNews(n), nil
}

func (r *NewsRepo) GetByID(_ context.Context, id string) (news.News, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	n, ok := r.items[id]
	if !ok {
		return news.News{}, news.ErrNotFound
	}
	return copyNews(n), nil
}

func (r *NewsRepo) GetBySlug(_ context.Context, slug string) (news.News, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, n := range r.items {
		if n.Slug == slug {
			return copyNews(n), nil
		}
	}
	return news.News{}, news.ErrNotFound
}

func (r *NewsRepo) List(_ context.Context, f news.ListFilter) ([]news.News, error) {
	return r.collect(func(n news.News) bool {
		if f.Status != nil && n.Status != *f.Status {
			return false
		}
		if f.AuthorID != nil && n.AuthorID != *f.AuthorID {
			return false
		}
		return true
	}), nil
}

func (r *NewsRepo) ListByCategory(_ context.Context, categoryID string) ([]news.News, error) {
	return r.collect(func(n news.News) bool {
		return n.CategoryID == categoryID
	}), nil
}

func (r *NewsRepo) Update(_ context.Context, id string, p news.Patch) (news.News, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	n, ok := r.items[id]
	if !ok {
		return news.News{}, news.ErrNotFound
	}

	if p.Slug != nil {
		if r.slugTakenLocked(*p.Slug, id) {
			return news.News{}, news.ErrSlugDuplicate
		}
		n.Slug = *p.Slug
	}
	if p.Title != nil {
		n.Title = *p.Title
	}
	if p.Summary != nil {
		n.Summary = *p.Summary
	}
	if p.Content != nil {
		n.Content = *p.Content
	}
	if p.Highlights != nil {
		n.Highlights = slices.Clone(*p.Highlights)
	}
	if p.CategoryID != nil {
		n.CategoryID = *p.CategoryID
	}
	if p.MainImage != nil {
		n.MainImage = *p.MainImage
	}
	if p.Source != nil {
		n.Source = *p.Source
	}
	if p.Variant != nil {
		n.Variant = *p.Variant
	}
	if p.Status != nil {
		n.Status = *p.Status
	}
	if p.PublicationDate != nil {
		t := *p.PublicationDate
		n.PublicationDate = &t
	}
	n.UpdatedAt = time.Now().UTC()

	r.items[id] = n
	return copyNews(n), nil
}

func (r *NewsRepo) Delete(_ context.Context, id string) (news.News, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	n, ok := r.items[id]
	if !ok {
		return news.News{}, news.ErrNotFound
	}
	delete(r.items, id)
	return n, nil
}

func (r *NewsRepo) collect(keep func(news.News) bool) []news.News {
	r.mu.RLock()
	out := make([]news.News, 0)
	for _, n := range r.items {
		if keep(n) {
			out = append(out, copyNews(n))
		}
	}
	r.mu.RUnlock()

	sortByCreation(out, func(n news.News) (time.Time, string) { return n.CreatedAt, n.ID })
	return out
}

func (r *NewsRepo) slugTakenLocked(slug, exceptID string) bool {
	for id, n := range r.items {
		if id != exceptID && n.Slug == slug {
			return true
		}
	}
	return false
}

// copyNews detaches the slice and pointer fields from the stored value.
func copyNews(n news.News) news.News {
	n.Highlights = slices.Clone(n.Highlights)
	if n.PublicationDate != nil {
		t := *n.PublicationDate
		n.PublicationDate = &t
	}
	return n
}
