package memory

import (
	"cmp"
	"context"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/Marco21c/backend-noticias/internal/domain/user"
	"github.com/Marco21c/backend-noticias/internal/utils"
)

type UsersRepo struct {
	mu    sync.RWMutex
	items map[string]user.User
}

func NewUsersRepo() *UsersRepo {
	return &UsersRepo{
		items: make(map[string]user.User),
	}
}

func (r *UsersRepo) Create(_ context.Context, u user.User) (user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.emailTakenLocked(u.Email, "") {
		return user.User{}, user.ErrEmailDuplicate
	}

	now := time.Now().UTC()
	if u.ID == "" {
		u.ID = utils.NewID()
	}
	u.CreatedAt = now
	u.UpdatedAt = now

	r.items[u.ID] = u
	return u, nil
}

func (r *UsersRepo) GetByID(_ context.Context, id string) (user.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.items[id]
	if !ok {
		return user.User{}, user.ErrNotFound
	}
	return u, nil
}

func (r *UsersRepo) GetByEmail(_ context.Context, email string) (user.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.items {
		if strings.EqualFold(u.Email, email) {
			return u, nil
		}
	}
	return user.User{}, user.ErrNotFound
}

// FindByRole returns the oldest user holding role.
func (r *UsersRepo) FindByRole(_ context.Context, role user.Role) (user.User, error) {
	r.mu.RLock()
	var matches []user.User
	for _, u := range r.items {
		if u.Role == role {
			matches = append(matches, u)
		}
	}
	r.mu.RUnlock()

	if len(matches) == 0 {
		return user.User{}, user.ErrNotFound
	}
	sortByCreation(matches, func(u user.User) (time.Time, string) { return u.CreatedAt, u.ID })
	return matches[0], nil
}

// List never returns password hashes.
func (r *UsersRepo) List(_ context.Context) ([]user.User, error) {
	r.mu.RLock()
	out := make([]user.User, 0, len(r.items))
	for _, u := range r.items {
		out = append(out, u.Sanitized())
	}
	r.mu.RUnlock()

	sortByCreation(out, func(u user.User) (time.Time, string) { return u.CreatedAt, u.ID })
	return out, nil
}

func (r *UsersRepo) Update(_ context.Context, id string, p user.Patch) (user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.items[id]
	if !ok {
		return user.User{}, user.ErrNotFound
	}

	if p.Email != nil {
		if r.emailTakenLocked(*p.Email, id) {
			return user.User{}, user.ErrEmailDuplicate
		}
		u.Email = *p.Email
	}
	if p.PasswordHash != nil {
		u.PasswordHash = *p.PasswordHash
	}
	if p.Role != nil {
		u.Role = *p.Role
	}
	if p.Name != nil {
		u.Name = *p.Name
	}
	if p.LastName != nil {
		u.LastName = *p.LastName
	}
	u.UpdatedAt = time.Now().UTC()

	r.items[id] = u
	return u, nil
}

func (r *UsersRepo) Delete(_ context.Context, id string) (user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.items[id]
	if !ok {
		return user.User{}, user.ErrNotFound
	}
	delete(r.items, id)
	return u, nil
}

func (r *UsersRepo) emailTakenLocked(email, exceptID string) bool {
	for id, u := range r.items {
		if id != exceptID && strings.EqualFold(u.Email, email) {
			return true
		}
	}
	return false
}

func sortByCreation[T any](items []T, key func(T) (time.Time, string)) {
	slices.SortFunc(items, func(a, b T) int {
		at, aid := key(a)
		bt, bid := key(b)
		if c := at.Compare(bt); c != 0 {
			return c
		}
		return cmp.Compare(aid, bid)
	})
}
