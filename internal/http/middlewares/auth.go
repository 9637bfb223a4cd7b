package middlewares

import (
	"context"
	"strings"

	"github.com/Marco21c/backend-noticias/internal/actorctx"
	"github.com/Marco21c/backend-noticias/internal/auth"
	"github.com/Marco21c/backend-noticias/internal/domain/user"
	"github.com/gin-gonic/gin"
)

// Authenticator turns a raw token into the user it belongs to.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (user.User, error)
}

// Authenticate reads the Authorization header, resolves the user and stores it
// on the request. The "Bearer " prefix is optional.
func Authenticate(a Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := bearerToken(c.GetHeader("Authorization"))
		if raw == "" {
			c.Error(auth.ErrTokenMissing)
			c.Abort()
			return
		}

		u, err := a.Authenticate(c.Request.Context(), raw)
		if err != nil {
			c.Error(err)
			c.Abort()
			return
		}

		c.Set(CtxCurrentUser, u)
		c.Request = c.Request.WithContext(actorctx.WithUserID(c.Request.Context(), u.ID))

		c.Next()
	}
}

func bearerToken(header string) string {
	header = strings.TrimSpace(header)
	if strings.EqualFold(header, "bearer") {
		return ""
	}

	scheme, rest, found := strings.Cut(header, " ")
	if found && strings.EqualFold(scheme, "bearer") {
		return strings.TrimSpace(rest)
	}
	return header
}

// CurrentUser returns the user stored by Authenticate.
func CurrentUser(c *gin.Context) (user.User, bool) {
	v, ok := c.Get(CtxCurrentUser)
	if !ok {
		return user.User{}, false
	}
	u, ok := v.(user.User)
	return u, ok
}
