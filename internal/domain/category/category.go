package category

import (
	"time"

	"github.com/Marco21c/backend-noticias/internal/apperr"
)

const MinNameLength = 2

type Category struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	IsActive    bool      `json:"isActive"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type Patch struct {
	Name        *string
	Description *string
	IsActive    *bool
}

type CreateCategoryRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	IsActive    *bool  `json:"isActive"`
}

type UpdateCategoryRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	IsActive    *bool   `json:"isActive"`
}

var (
	ErrNotFound      = apperr.New(apperr.KindNotFound, "CATEGORY_NOT_FOUND", "category not found")
	ErrNameDuplicate = apperr.New(apperr.KindConflict, "NAME_DUPLICATE", "category already exists")
	ErrInvalidName   = apperr.New(apperr.KindValidation, "INVALID_NAME", "category name must be at least 2 characters")
)
