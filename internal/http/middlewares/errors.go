package middlewares

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/Marco21c/backend-noticias/internal/apperr"
	"github.com/gin-gonic/gin"
)

type ErrorBody struct {
	Success   bool   `json:"success"`
	Code      string `json:"code"`
	Message   string `json:"message"`
	Details   any    `json:"details,omitempty"`
	RequestID string `json:"requestId,omitempty"`
}

// ErrorTranslator renders the last error a handler attached with ctx.Error.
// Handlers never pick status codes for failures; the error's kind decides.
func ErrorTranslator(isDev bool) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		ctx.Next()

		last := ctx.Errors.Last()
		if last == nil || ctx.Writer.Written() {
			return
		}

		status, body := translate(last.Err, isDev)
		body.RequestID = ctx.GetString(CtxRequestID)

		if status >= http.StatusInternalServerError {
			slog.Default().ErrorContext(ctx.Request.Context(), "request failed",
				"err", last.Err,
				"route", ctx.FullPath(),
				"request_id", body.RequestID,
			)
		}

		ctx.AbortWithStatusJSON(status, body)
	}
}

func translate(err error, isDev bool) (int, ErrorBody) {
	appErr, ok := apperr.As(err)
	if !ok {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			appErr = apperr.ErrValidation.WithMessage("request body too large")
		} else {
			appErr = apperr.ErrInternal
			if isDev {
				appErr = appErr.WithMessage(err.Error())
			}
		}
	}

	return StatusFor(appErr.Kind), ErrorBody{
		Code:    appErr.Code,
		Message: appErr.Message,
		Details: appErr.Details,
	}
}

func StatusFor(kind apperr.Kind) int {
	switch kind {
	case apperr.KindValidation:
		return http.StatusBadRequest
	case apperr.KindUnauthenticated:
		return http.StatusUnauthorized
	case apperr.KindForbidden:
		return http.StatusForbidden
	case apperr.KindNotFound:
		return http.StatusNotFound
	case apperr.KindConflict:
		return http.StatusConflict
	case apperr.KindUnsupportedMedia:
		return http.StatusUnsupportedMediaType
	case apperr.KindRateLimited:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}
