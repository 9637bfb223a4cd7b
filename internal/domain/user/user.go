package user

import (
	"strings"
	"time"

	"github.com/Marco21c/backend-noticias/internal/apperr"
)

type Role string

const (
	RoleSuperadmin Role = "superadmin"
	RoleAdmin      Role = "admin"
	RoleEditor     Role = "editor"
	RoleUser       Role = "user"
)

func (r Role) IsValid() bool {
	switch r {
	case RoleSuperadmin, RoleAdmin, RoleEditor, RoleUser:
		return true
	}
	return false
}

type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"` // never expose hash in JSON
	Role         Role      `json:"role"`
	Name         string    `json:"name"`
	LastName     string    `json:"lastName"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// Sanitized drops the password hash before the record leaves the service boundary.
func (u User) Sanitized() User {
	u.PasswordHash = ""
	return u
}

// Patch holds the fields of a partial update; nil means untouched.
type Patch struct {
	Email        *string
	PasswordHash *string
	Role         *Role
	Name         *string
	LastName     *string
}

type CreateUserRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,strongpassword"`
	Role     Role   `json:"role" binding:"omitempty,role"`
	Name     string `json:"name" binding:"required,min=2"`
	LastName string `json:"lastName" binding:"required,min=2"`
}

type UpdateUserRequest struct {
	Email    *string `json:"email" binding:"omitempty,email"`
	Password *string `json:"password" binding:"omitempty,strongpassword"`
	Role     *Role   `json:"role" binding:"omitempty,role"`
	Name     *string `json:"name" binding:"omitempty,min=2"`
	LastName *string `json:"lastName" binding:"omitempty,min=2"`
}

type SignUpRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,strongpassword"`
	Name     string `json:"name" binding:"required,min=2"`
	LastName string `json:"lastName" binding:"required,min=2"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// NormalizeEmail is applied before every store lookup or write.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

var (
	ErrNotFound           = apperr.New(apperr.KindNotFound, "USER_NOT_FOUND", "user not found")
	ErrEmailDuplicate     = apperr.New(apperr.KindConflict, "EMAIL_DUPLICATE", "email already exists")
	ErrForbiddenRole      = apperr.New(apperr.KindForbidden, "FORBIDDEN_ROLE", "the superadmin role cannot be assigned through the API")
	ErrInvalidCredentials = apperr.New(apperr.KindUnauthenticated, "INVALID_CREDENTIALS", "email or password is incorrect")
)
