package handlers

import (
	"fmt"
	"sync"
	"unicode"

	"github.com/Marco21c/backend-noticias/internal/domain/user"
	"github.com/Marco21c/backend-noticias/internal/utils"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

const minPasswordLength = 8

var (
	registerOnce sync.Once
	registerErr  error
)

// RegisterValidators installs the custom binding tags and client field naming
// on gin's validator.
// Safe to call more than once.
func RegisterValidators() error {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			registerErr = fmt.Errorf("unexpected validator engine %T", binding.Validator.Engine())
			return
		}

		v.RegisterTagNameFunc(clientFieldName)

		for tag, fn := range map[string]validator.Func{
			"objectid":       validateObjectID,
			"strongpassword": validateStrongPassword,
			"role":           validateRole,
		} {
			if err := v.RegisterValidation(tag, fn); err != nil {
				registerErr = fmt.Errorf("registering %s: %w", tag, err)
				return
			}
		}
	})
	return registerErr
}

func validateObjectID(fl validator.FieldLevel) bool {
	return utils.IsObjectID(fl.Field().String())
}

// validateRole accepts every known role; refusing superadmin is a service rule
// with its own error code.
func validateRole(fl validator.FieldLevel) bool {
	return user.Role(fl.Field().String()).IsValid()
}

func validateStrongPassword(fl validator.FieldLevel) bool {
	return IsStrongPassword(fl.Field().String())
}

// IsStrongPassword wants 8+ characters mixing upper, lower, digit and symbol.
func IsStrongPassword(s string) bool {
	if len([]rune(s)) < minPasswordLength {
		return false
	}

	var upper, lower, digit, symbol bool
	for _, r := range s {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			digit = true
		case unicode.IsPunct(r) || unicode.IsSymbol(r):
			symbol = true
		}
	}
	return upper && lower && digit && symbol
}
