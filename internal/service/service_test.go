package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/Marco21c/backend-noticias/internal/auth"
	"github.com/Marco21c/backend-noticias/internal/domain/category"
	"github.com/Marco21c/backend-noticias/internal/domain/user"
	"github.com/Marco21c/backend-noticias/internal/repo/memory"
	"github.com/Marco21c/backend-noticias/internal/security"
)

const strongPassword = "Str0ng!Pass"

type fixture struct {
	users      *memory.UsersRepo
	categories *memory.CategoriesRepo
	news       *memory.NewsRepo
	hasher     security.Hasher
	tokens     *auth.Manager

	userSvc     *UserService
	categorySvc *CategoryService
	newsSvc     *NewsService
	authSvc     *AuthService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	f := &fixture{
		users:      memory.NewUsersRepo(),
		categories: memory.NewCategoriesRepo(),
		news:       memory.NewNewsRepo(),
		hasher:     security.Hasher{Cost: bcrypt.MinCost},
		tokens:     auth.NewManager("test-secret", time.Hour),
	}
	f.userSvc = NewUserService(f.users, f.hasher)
	f.categorySvc = NewCategoryService(f.categories)
	f.newsSvc = NewNewsService(f.news, f.categories)
	f.authSvc = NewAuthService(f.users, f.hasher, f.tokens)
	return f
}

func (f *fixture) createUser(t *testing.T, email string, role user.Role) user.User {
	t.Helper()

	hash, err := f.hasher.Hash(strongPassword)
	require.NoError(t, err)

	u, err := f.users.Create(context.Background(), user.User{
		Email:        email,
		PasswordHash: hash,
		Role:         role,
		Name:         "Test",
		LastName:     "User",
	})
	require.NoError(t, err)
	return u
}

func (f *fixture) createCategory(t *testing.T, name string) category.Category {
	t.Helper()

	c, err := f.categorySvc.Create(context.Background(), category.CreateCategoryRequest{Name: name})
	require.NoError(t, err)
	return c
}

func ptr[T any](v T) *T { return &v }
