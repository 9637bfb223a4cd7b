package handlers

import (
	"context"
	"time"

	"github.com/Marco21c/backend-noticias/internal/http/middlewares"
	"github.com/gin-gonic/gin"
)

// storeTimeout bounds every storage round trip a handler makes.
const storeTimeout = 3 * time.Second

type Envelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data"`
	Message string `json:"message,omitempty"`
}

func requestIDFrom(ctx *gin.Context) string {
	if id := ctx.GetString(middlewares.CtxRequestID); id != "" {
		return id
	}

	// fallback header
	return ctx.GetHeader("X-Request-Id")
}

// storeContext derives a bounded context from the request so a client
// disconnect also cancels the store call.
func storeContext(ctx *gin.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx.Request.Context(), storeTimeout)
}

func Respond(ctx *gin.Context, status int, data any) {
	ctx.JSON(status, Envelope{Success: true, Data: data})
}

func RespondMessage(ctx *gin.Context, status int, message string, data any) {
	ctx.JSON(status, Envelope{Success: true, Data: data, Message: message})
}

// Fail hands err to the error translator and stops the chain.
func Fail(ctx *gin.Context, err error) {
	_ = ctx.Error(err)
	ctx.Abort()
}
