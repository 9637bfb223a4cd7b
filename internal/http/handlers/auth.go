package handlers

import (
	"context"
	"net/http"

	"github.com/Marco21c/backend-noticias/internal/apperr"
	"github.com/Marco21c/backend-noticias/internal/domain/user"
	"github.com/Marco21c/backend-noticias/internal/http/middlewares"
	"github.com/Marco21c/backend-noticias/internal/service"
	"github.com/gin-gonic/gin"
)

type SessionIssuer interface {
	Login(ctx context.Context, email, password string) (service.Session, error)
	SignUp(ctx context.Context, req user.SignUpRequest) (service.Session, error)
}

type AuthHandler struct {
	auth SessionIssuer
}

func NewAuthHandler(auth SessionIssuer) *AuthHandler {
	return &AuthHandler{auth: auth}
}

func (h *AuthHandler) Login(ctx *gin.Context) {
	var req user.LoginRequest

	if !BindJSON(ctx, &req) {
		return
	}

	cctx, cancel := storeContext(ctx)
	defer cancel()

	session, err := h.auth.Login(cctx, req.Email, req.Password)
	if err != nil {
		Fail(ctx, err)
		return
	}

	RespondMessage(ctx, http.StatusOK, "login successful", session)
}

// SignUp always creates a plain user; any role in the body is ignored.
func (h *AuthHandler) SignUp(ctx *gin.Context) {
	var req user.SignUpRequest

	if !BindJSON(ctx, &req) {
		return
	}

	cctx, cancel := storeContext(ctx)
	defer cancel()

	session, err := h.auth.SignUp(cctx, req)
	if err != nil {
		Fail(ctx, err)
		return
	}

	RespondMessage(ctx, http.StatusCreated, "account created", session)
}

// Me returns the user Authenticate loaded for this request.
func (h *AuthHandler) Me(ctx *gin.Context) {
	u, ok := middlewares.CurrentUser(ctx)
	if !ok {
		Fail(ctx, apperr.ErrUnauthenticated)
		return
	}

	Respond(ctx, http.StatusOK, u)
}
