package middlewares

import (
	"net/http"

	"github.com/Marco21c/backend-noticias/internal/apperr"
	"github.com/gin-gonic/gin"
)

func MaxBodyBytes(max int64) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		if ctx.Request.ContentLength > max {
			ctx.Error(apperr.ErrValidation.WithMessage("request body too large"))
			ctx.Abort()
			return
		}

		ctx.Request.Body = http.MaxBytesReader(ctx.Writer, ctx.Request.Body, max)

		ctx.Next()
	}
}
