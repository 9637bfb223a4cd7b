package middlewares

import (
	"slices"

	"github.com/Marco21c/backend-noticias/internal/apperr"
	"github.com/Marco21c/backend-noticias/internal/domain/user"
	"github.com/Marco21c/backend-noticias/internal/policy"
	"github.com/gin-gonic/gin"
)

// Require lets the request through only when the current user's role is granted action.
func Require(action policy.Action) gin.HandlerFunc {
	return RequireRole(policy.Roles(action)...)
}

func RequireRole(allowed ...user.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		u, ok := CurrentUser(c)
		if !ok {
			c.Error(apperr.ErrUnauthenticated)
			c.Abort()
			return
		}

		if !slices.Contains(allowed, u.Role) {
			c.Error(apperr.ErrForbidden)
			c.Abort()
			return
		}
		c.Next()
	}
}
