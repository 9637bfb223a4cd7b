package handlers

import (
	"context"
	"net/http"

	"github.com/Marco21c/backend-noticias/internal/apperr"
	"github.com/Marco21c/backend-noticias/internal/domain/news"
	"github.com/Marco21c/backend-noticias/internal/http/middlewares"
	"github.com/gin-gonic/gin"
)

type NewsManager interface {
	List(ctx context.Context, f news.ListFilter) ([]news.News, error)
	ListByCategory(ctx context.Context, categoryID string) ([]news.News, error)
	GetByID(ctx context.Context, id string) (news.News, error)
	Create(ctx context.Context, authorID string, req news.CreateNewsRequest) (news.News, error)
	Update(ctx context.Context, id string, req news.UpdateNewsRequest) (news.News, error)
	Delete(ctx context.Context, id string) (news.News, error)
}

type NewsHandler struct {
	news NewsManager
}

func NewNewsHandler(n NewsManager) *NewsHandler {
	return &NewsHandler{news: n}
}

func (h *NewsHandler) List(ctx *gin.Context) {
	var q news.ListQuery
	if !BindQuery(ctx, &q) {
		return
	}

	var f news.ListFilter
	if q.Status != "" {
		s := news.Status(q.Status)
		f.Status = &s
	}
	if q.Author != "" {
		f.AuthorID = &q.Author
	}

	cctx, cancel := storeContext(ctx)
	defer cancel()

	items, err := h.news.List(cctx, f)
	if err != nil {
		Fail(ctx, err)
		return
	}

	RespondJSONWithETag(ctx, http.StatusOK, Envelope{Success: true, Data: items})
}

func (h *NewsHandler) ListByCategory(ctx *gin.Context) {
	var q news.ByCategoryQuery
	if !BindQuery(ctx, &q) {
		return
	}

	cctx, cancel := storeContext(ctx)
	defer cancel()

	items, err := h.news.ListByCategory(cctx, q.Category)
	if err != nil {
		Fail(ctx, err)
		return
	}

	RespondJSONWithETag(ctx, http.StatusOK, Envelope{Success: true, Data: items})
}

func (h *NewsHandler) GetByID(ctx *gin.Context) {
	id, ok := bindID(ctx)
	if !ok {
		return
	}

	cctx, cancel := storeContext(ctx)
	defer cancel()

	n, err := h.news.GetByID(cctx, id)
	if err != nil {
		Fail(ctx, err)
		return
	}

	Respond(ctx, http.StatusOK, n)
}

// Create takes the author from the token, never from the body.
func (h *NewsHandler) Create(ctx *gin.Context) {
	var req news.CreateNewsRequest
	if !BindJSON(ctx, &req) {
		return
	}

	author, ok := middlewares.CurrentUser(ctx)
	if !ok {
		Fail(ctx, apperr.ErrUnauthenticated)
		return
	}

	cctx, cancel := storeContext(ctx)
	defer cancel()

	n, err := h.news.Create(cctx, author.ID, req)
	if err != nil {
		Fail(ctx, err)
		return
	}

	RespondMessage(ctx, http.StatusCreated, "news created", n)
}

func (h *NewsHandler) Update(ctx *gin.Context) {
	id, ok := bindID(ctx)
	if !ok {
		return
	}

	var req news.UpdateNewsRequest
	if !BindJSON(ctx, &req) {
		return
	}

	cctx, cancel := storeContext(ctx)
	defer cancel()

	n, err := h.news.Update(cctx, id, req)
	if err != nil {
		Fail(ctx, err)
		return
	}

	RespondMessage(ctx, http.StatusOK, "news updated", n)
}

func (h *NewsHandler) Delete(ctx *gin.Context) {
	id, ok := bindID(ctx)
	if !ok {
		return
	}

	cctx, cancel := storeContext(ctx)
	defer cancel()

	n, err := h.news.Delete(cctx, id)
	if err != nil {
		Fail(ctx, err)
		return
	}

	RespondMessage(ctx, http.StatusOK, "news deleted", n)
}
