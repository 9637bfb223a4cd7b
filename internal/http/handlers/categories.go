package handlers

import (
	"context"
	"net/http"

	"github.com/Marco21c/backend-noticias/internal/domain/category"
	"github.com/gin-gonic/gin"
)

type CategoryManager interface {
	List(ctx context.Context) ([]category.Category, error)
	GetByID(ctx context.Context, id string) (category.Category, error)
	Create(ctx context.Context, req category.CreateCategoryRequest) (category.Category, error)
	Update(ctx context.Context, id string, req category.UpdateCategoryRequest) (category.Category, error)
	Delete(ctx context.Context, id string) (category.Category, error)
}

type CategoriesHandler struct {
	categories CategoryManager
}

func NewCategoriesHandler(categories CategoryManager) *CategoriesHandler {
	return &CategoriesHandler{categories: categories}
}

func (h *CategoriesHandler) List(ctx *gin.Context) {
	cctx, cancel := storeContext(ctx)
	defer cancel()

	items, err := h.categories.List(cctx)
	if err != nil {
		Fail(ctx, err)
		return
	}

	RespondJSONWithETag(ctx, http.StatusOK, Envelope{Success: true, Data: items})
}

func (h *CategoriesHandler) GetByID(ctx *gin.Context) {
	id, ok := bindID(ctx)
	if !ok {
		return
	}

	cctx, cancel := storeContext(ctx)
	defer cancel()

	c, err := h.categories.GetByID(cctx, id)
	if err != nil {
		Fail(ctx, err)
		return
	}

	Respond(ctx, http.StatusOK, c)
}

func (h *CategoriesHandler) Create(ctx *gin.Context) {
	var req category.CreateCategoryRequest
	if !BindJSON(ctx, &req) {
		return
	}

	cctx, cancel := storeContext(ctx)
	defer cancel()

	c, err := h.categories.Create(cctx, req)
	if err != nil {
		Fail(ctx, err)
		return
	}

	RespondMessage(ctx, http.StatusCreated, "category created", c)
}

func (h *CategoriesHandler) Update(ctx *gin.Context) {
	id, ok := bindID(ctx)
	if !ok {
		return
	}

	var req category.UpdateCategoryRequest
	if !BindJSON(ctx, &req) {
		return
	}

	cctx, cancel := storeContext(ctx)
	defer cancel()

	c, err := h.categories.Update(cctx, id, req)
	if err != nil {
		Fail(ctx, err)
		return
	}

	RespondMessage(ctx, http.StatusOK, "category updated", c)
}

func (h *CategoriesHandler) Delete(ctx *gin.Context) {
	id, ok := bindID(ctx)
	if !ok {
		return
	}

	cctx, cancel := storeContext(ctx)
	defer cancel()

	c, err := h.categories.Delete(cctx, id)
	if err != nil {
		Fail(ctx, err)
		return
	}

	RespondMessage(ctx, http.StatusOK, "category deleted", c)
}
