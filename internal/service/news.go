package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Marco21c/backend-noticias/internal/domain/category"
	"github.com/Marco21c/backend-noticias/internal/domain/news"
	"github.com/Marco21c/backend-noticias/internal/utils"
)

const minSlugLength = 3

type CategoryLookup interface {
	GetByID(ctx context.Context, id string) (category.Category, error)
}

type NewsService struct {
	store      NewsStore
	categories CategoryLookup
	now        func() time.Time
}

func NewNewsService(store NewsStore, categories CategoryLookup) *NewsService {
	return &NewsService{
		store:      store,
		categories: categories,
		now:        time.Now,
	}
}

// List applies the optional filters. An author id that cannot exist matches nothing.
func (s *NewsService) List(ctx context.Context, f news.ListFilter) ([]news.News, error) {
	if f.AuthorID != nil {
		author := utils.NormalizeID(*f.AuthorID)
		if !utils.IsObjectID(author) {
			return []news.News{}, nil
		}
		f.AuthorID = &author
	}

	items, err := s.store.List(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("listing news: %w", err)
	}
	return items, nil
}

// ListByCategory reports NEWS_NOT_FOUND when the category has no news.
func (s *NewsService) ListByCategory(ctx context.Context, categoryID string) ([]news.News, error) {
	categoryID = utils.NormalizeID(categoryID)
	if !utils.IsObjectID(categoryID) {
		return nil, news.ErrNotFound
	}

	items, err := s.store.ListByCategory(ctx, categoryID)
	if err != nil {
		return nil, fmt.Errorf("listing news by category: %w", err)
	}
	if len(items) == 0 {
		return nil, news.ErrNotFound
	}
	return items, nil
}

func (s *NewsService) GetByID(ctx context.Context, id string) (news.News, error) {
	return s.store.GetByID(ctx, id)
}

// Create always stores a draft without a publication date, authored by authorID.
func (s *NewsService) Create(ctx context.Context, authorID string, req news.CreateNewsRequest) (news.News, error) {
	slug, err := s.checkSlug(ctx, req.Slug, "")
	if err != nil {
		return news.News{}, err
	}

	categoryID, err := s.checkCategory(ctx, req.CategoryID)
	if err != nil {
		return news.News{}, err
	}

	variant := req.Variant
	if variant == "" {
		variant = news.VariantDefault
	}

	highlights := req.Highlights
	if highlights == nil {
		highlights = []string{}
	}

	return s.store.Create(ctx, news.News{
		Title:           strings.TrimSpace(req.Title),
		Slug:            slug,
		Summary:         strings.TrimSpace(req.Summary),
		Content:         utils.SanitizeHTML(req.Content),
		Highlights:      highlights,
		AuthorID:        authorID,
		CategoryID:      categoryID,
		MainImage:       strings.TrimSpace(req.MainImage),
		Source:          strings.TrimSpace(req.Source),
		Variant:         variant,
		Status:          news.StatusDraft,
		PublicationDate: nil,
	})
}

// Update merges the fields present in req. Any status may follow any other;
// publishing without a publication date stamps the current time.
func (s *NewsService) Update(ctx context.Context, id string, req news.UpdateNewsRequest) (news.News, error) {
	current, err := s.store.GetByID(ctx, id)
	if err != nil {
		return news.News{}, err
	}

	p := news.Patch{
		Highlights: req.Highlights,
		Variant:    req.Variant,
		Status:     req.Status,
	}

	if req.Slug != nil {
		slug, err := s.checkSlug(ctx, *req.Slug, id)
		if err != nil {
			return news.News{}, err
		}
		p.Slug = &slug
	}

	if req.CategoryID != nil {
		categoryID, err := s.checkCategory(ctx, *req.CategoryID)
		if err != nil {
			return news.News{}, err
		}
		p.CategoryID = &categoryID
	}

	if req.Content != nil {
		content := utils.SanitizeHTML(*req.Content)
		p.Content = &content
	}

	p.Title = trimmed(req.Title)
	p.Summary = trimmed(req.Summary)
	p.MainImage = trimmed(req.MainImage)
	p.Source = trimmed(req.Source)

	if req.Status != nil && *req.Status == news.StatusPublished && current.PublicationDate == nil {
		now := s.now().UTC()
		p.PublicationDate = &now
	}

	return s.store.Update(ctx, id, p)
}

func (s *NewsService) Delete(ctx context.Context, id string) (news.News, error) {
	return s.store.Delete(ctx, id)
}

func (s *NewsService) checkSlug(ctx context.Context, raw, exceptID string) (string, error) {
	slug := utils.Slugify(raw)
	if len(slug) < minSlugLength {
		return "", news.ErrInvalidSlug
	}

	existing, err := s.store.GetBySlug(ctx, slug)
	switch {
	case errors.Is(err, news.ErrNotFound):
		return slug, nil
	case err != nil:
		return "", fmt.Errorf("checking slug: %w", err)
	case existing.ID == exceptID:
		return slug, nil
	default:
		return "", news.ErrSlugDuplicate
	}
}

func (s *NewsService) checkCategory(ctx context.Context, raw string) (string, error) {
	id := utils.NormalizeID(raw)
	if !utils.IsObjectID(id) {
		return "", news.ErrUnknownCategory
	}

	if _, err := s.categories.GetByID(ctx, id); err != nil {
		if errors.Is(err, category.ErrNotFound) {
			return "", news.ErrUnknownCategory
		}
		return "", fmt.Errorf("checking category: %w", err)
	}
	return id, nil
}

func trimmed(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	return &v
}
