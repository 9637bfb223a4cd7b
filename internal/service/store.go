package service

import (
	"context"

	"github.com/Marco21c/backend-noticias/internal/auth"
	"github.com/Marco21c/backend-noticias/internal/domain/category"
	"github.com/Marco21c/backend-noticias/internal/domain/news"
	"github.com/Marco21c/backend-noticias/internal/domain/user"
)

// Store implementations report missing records and unique-key collisions with
// the domain errors (user.ErrNotFound, user.ErrEmailDuplicate, ...).

type UserStore interface {
	Create(ctx context.Context, u user.User) (user.User, error)
	GetByID(ctx context.Context, id string) (user.User, error)
	GetByEmail(ctx context.Context, email string) (user.User, error)
	FindByRole(ctx context.Context, role user.Role) (user.User, error)
	List(ctx context.Context) ([]user.User, error)
	Update(ctx context.Context, id string, p user.Patch) (user.User, error)
	Delete(ctx context.Context, id string) (user.User, error)
}

type CategoryStore interface {
	Create(ctx context.Context, c category.Category) (category.Category, error)
	GetByID(ctx context.Context, id string) (category.Category, error)
	GetByName(ctx context.Context, name string) (category.Category, error)
	List(ctx context.Context) ([]category.Category, error)
	Update(ctx context.Context, id string, p category.Patch) (category.Category, error)
	Delete(ctx context.Context, id string) (category.Category, error)
}

type NewsStore interface {
	Create(ctx context.Context, n news.News) (news.News, error)
	GetByID(ctx context.Context, id string) (news.News, error)
	GetBySlug(ctx context.Context, slug string) (news.News, error)
	List(ctx context.Context, f news.ListFilter) ([]news.News, error)
	ListByCategory(ctx context.Context, categoryID string) ([]news.News, error)
	Update(ctx context.Context, id string, p news.Patch) (news.News, error)
	Delete(ctx context.Context, id string) (news.News, error)
}

type PasswordHasher interface {
	Hash(plain string) (string, error)
	Compare(hash, plain string) error
}

type TokenManager interface {
	Sign(id auth.Identity) (string, error)
	Verify(token string) (*auth.Claims, error)
}
