package handlers

import (
	"context"
	"net/http"

	"github.com/Marco21c/backend-noticias/internal/apperr"
	"github.com/Marco21c/backend-noticias/internal/domain/user"
	"github.com/Marco21c/backend-noticias/internal/http/middlewares"
	"github.com/Marco21c/backend-noticias/internal/utils"
	"github.com/gin-gonic/gin"
)

type UserManager interface {
	List(ctx context.Context) ([]user.User, error)
	GetByID(ctx context.Context, id string) (user.User, error)
	GetByEmail(ctx context.Context, email string) (user.User, error)
	Create(ctx context.Context, req user.CreateUserRequest) (user.User, error)
	Update(ctx context.Context, actor user.User, id string, req user.UpdateUserRequest) (user.User, error)
	Delete(ctx context.Context, id string) (user.User, error)
}

type IDParam struct {
	ID string `uri:"id" binding:"required,objectid"`
}

// bindID reads the :id path segment as a lower-case ObjectID.
func bindID(ctx *gin.Context) (string, bool) {
	var p IDParam
	if !BindURI(ctx, &p) {
		return "", false
	}
	return utils.NormalizeID(p.ID), true
}

type EmailQuery struct {
	Email string `form:"email" binding:"required,email"`
}

type UsersHandler struct {
	users UserManager
}

func NewUsersHandler(users UserManager) *UsersHandler {
	return &UsersHandler{users: users}
}

func (h *UsersHandler) List(ctx *gin.Context) {
	cctx, cancel := storeContext(ctx)
	defer cancel()

	users, err := h.users.List(cctx)
	if err != nil {
		Fail(ctx, err)
		return
	}

	Respond(ctx, http.StatusOK, users)
}

func (h *UsersHandler) GetByID(ctx *gin.Context) {
	id, ok := bindID(ctx)
	if !ok {
		return
	}

	cctx, cancel := storeContext(ctx)
	defer cancel()

	u, err := h.users.GetByID(cctx, id)
	if err != nil {
		Fail(ctx, err)
		return
	}

	Respond(ctx, http.StatusOK, u)
}

func (h *UsersHandler) GetByEmail(ctx *gin.Context) {
	var q EmailQuery
	if !BindQuery(ctx, &q) {
		return
	}

	cctx, cancel := storeContext(ctx)
	defer cancel()

	u, err := h.users.GetByEmail(cctx, q.Email)
	if err != nil {
		Fail(ctx, err)
		return
	}

	Respond(ctx, http.StatusOK, u)
}

func (h *UsersHandler) Create(ctx *gin.Context) {
	var req user.CreateUserRequest
	if !BindJSON(ctx, &req) {
		return
	}

	cctx, cancel := storeContext(ctx)
	defer cancel()

	u, err := h.users.Create(cctx, req)
	if err != nil {
		Fail(ctx, err)
		return
	}

	RespondMessage(ctx, http.StatusCreated, "user created", u)
}

// Update is reachable by any authenticated user; the service decides whether
// the caller may touch this record.
func (h *UsersHandler) Update(ctx *gin.Context) {
	id, ok := bindID(ctx)
	if !ok {
		return
	}

	var req user.UpdateUserRequest
	if !BindJSON(ctx, &req) {
		return
	}

	actor, ok := middlewares.CurrentUser(ctx)
	if !ok {
		Fail(ctx, apperr.ErrUnauthenticated)
		return
	}

	cctx, cancel := storeContext(ctx)
	defer cancel()

	u, err := h.users.Update(cctx, actor, id, req)
	if err != nil {
		Fail(ctx, err)
		return
	}

	RespondMessage(ctx, http.StatusOK, "user updated", u)
}

func (h *UsersHandler) Delete(ctx *gin.Context) {
	id, ok := bindID(ctx)
	if !ok {
		return
	}

	cctx, cancel := storeContext(ctx)
	defer cancel()

	u, err := h.users.Delete(cctx, id)
	if err != nil {
		Fail(ctx, err)
		return
	}

	RespondMessage(ctx, http.StatusOK, "user deleted", u)
}
