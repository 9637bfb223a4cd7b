package news

import (
	"time"

	"github.com/Marco21c/backend-noticias/internal/apperr"
)

type Status string

const (
	StatusDraft     Status = "draft"
	StatusInReview  Status = "in_review"
	StatusApproved  Status = "approved"
	StatusPublished Status = "published"
	StatusRejected  Status = "rejected"
)

func (s Status) IsValid() bool {
	switch s {
	case StatusDraft, StatusInReview, StatusApproved, StatusPublished, StatusRejected:
		return true
	}
	return false
}

type Variant string

const (
	VariantHighlighted Variant = "highlighted"
	VariantFeatured    Variant = "featured"
	VariantDefault     Variant = "default"
)

type News struct {
	ID              string     `json:"id"`
	Title           string     `json:"title"`
	Slug            string     `json:"slug"`
	Summary         string     `json:"summary"`
	Content         string     `json:"content"`
	Highlights      []string   `json:"highlights"`
	AuthorID        string     `json:"author"`
	CategoryID      string     `json:"category"`
	MainImage       string     `json:"mainImage,omitempty"`
	Source          string     `json:"source,omitempty"`
	Variant         Variant    `json:"variant"`
	Status          Status     `json:"status"`
	PublicationDate *time.Time `json:"publicationDate"`
	CreatedAt       time.Time  `json:"createdAt"`
	UpdatedAt       time.Time  `json:"updatedAt"`
}

// with pointers if optional, nil means no filter
type ListFilter struct {
	Status   *Status
	AuthorID *string
}

type Patch struct {
	Title           *string
	Slug            *string
	Summary         *string
	Content         *string
	Highlights      *[]string
	CategoryID      *string
	MainImage       *string
	Source          *string
	Variant         *Variant
	Status          *Status
	PublicationDate *time.Time
}

// Status and publication date are not accepted on create; the service forces them.
type CreateNewsRequest struct {
	Title      string   `json:"title" binding:"required,min=3"`
	Slug       string   `json:"slug" binding:"required,min=3"`
	Summary    string   `json:"summary" binding:"required,min=10"`
	Content    string   `json:"content" binding:"required,min=20"`
	Highlights []string `json:"highlights" binding:"omitempty,dive,min=1"`
	CategoryID string   `json:"category" binding:"required,objectid"`
	MainImage  string   `json:"mainImage" binding:"omitempty,url"`
	Source     string   `json:"source"`
	Variant    Variant  `json:"variant" binding:"omitempty,oneof=highlighted featured default"`
}

type UpdateNewsRequest struct {
	Title      *string   `json:"title" binding:"omitempty,min=3"`
	Slug       *string   `json:"slug" binding:"omitempty,min=3"`
	Summary    *string   `json:"summary" binding:"omitempty,min=10"`
	Content    *string   `json:"content" binding:"omitempty,min=20"`
	Highlights *[]string `json:"highlights" binding:"omitempty,dive,min=1"`
	CategoryID *string   `json:"category" binding:"omitempty,objectid"`
	MainImage  *string   `json:"mainImage" binding:"omitempty,url"`
	Source     *string   `json:"source"`
	Variant    *Variant  `json:"variant" binding:"omitempty,oneof=highlighted featured default"`
	Status     *Status   `json:"status" binding:"omitempty,oneof=draft in_review approved published rejected"`
}

type ListQuery struct {
	Status string `form:"status" binding:"omitempty,oneof=draft in_review approved published rejected"`
	Author string `form:"author"`
}

type ByCategoryQuery struct {
	Category string `form:"category" binding:"required,min=1"`
}

var (
	ErrNotFound        = apperr.New(apperr.KindNotFound, "NEWS_NOT_FOUND", "news not found")
	ErrSlugDuplicate   = apperr.New(apperr.KindConflict, "SLUG_DUPLICATE", "slug already exists")
	ErrInvalidSlug     = apperr.New(apperr.KindValidation, "INVALID_SLUG", "slug must contain at least 3 url-safe characters")
	ErrUnknownCategory = apperr.New(apperr.KindValidation, "UNKNOWN_CATEGORY", "category does not exist")
)
