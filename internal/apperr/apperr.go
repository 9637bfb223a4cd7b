// Package apperr carries the error taxonomy shared by services and the HTTP layer.
// Services return *Error values; only the HTTP translator knows about status codes.
package apperr

import "errors"

type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindUnauthenticated
	KindForbidden
	KindNotFound
	KindConflict
	KindUnsupportedMedia
	KindRateLimited
	KindMisconfigured
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindUnauthenticated:
		return "unauthenticated"
	case KindForbidden:
		return "forbidden"
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	case KindUnsupportedMedia:
		return "unsupported_media"
	case KindRateLimited:
		return "rate_limited"
	case KindMisconfigured:
		return "misconfigured"
	default:
		return "internal"
	}
}

// Error is a domain failure identified by a stable UPPER_SNAKE code.
type Error struct {
	Kind    Kind
	Code    string
	Message string
	Details any
	cause   error
}

func New(kind Kind, code, message string) *Error {
	return &Error{Kind: kind, Code: code, Message: message}
}

func (e *Error) Error() string {
	if e.cause != nil {
		return e.Code + ": " + e.Message + ": " + e.cause.Error()
	}
	return e.Code + ": " + e.Message
}

func (e *Error) Unwrap() error { return e.cause }

// Is matches on code so copies made by Wrap or WithDetails still match their sentinel.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Code == e.Code
}

// Wrap returns a copy of e that records cause.
func (e *Error) Wrap(cause error) *Error {
	cp := *e
	cp.cause = cause
	return &cp
}

// WithDetails returns a copy of e with details attached to the response.
func (e *Error) WithDetails(details any) *Error {
	cp := *e
	cp.Details = details
	return &cp
}

// WithMessage returns a copy of e with a different human message.
func (e *Error) WithMessage(message string) *Error {
	cp := *e
	cp.Message = message
	return &cp
}

func As(err error) (*Error, bool) {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

func KindOf(err error) Kind {
	if appErr, ok := As(err); ok {
		return appErr.Kind
	}
	return KindInternal
}

// Errors shared by more than one package.
var (
	ErrValidation      = New(KindValidation, "REQUEST_VALIDATION_ERROR", "request validation failed")
	ErrForbidden       = New(KindForbidden, "FORBIDDEN", "insufficient role")
	ErrUnauthenticated = New(KindUnauthenticated, "UNAUTHENTICATED", "authentication required")
	ErrRouteNotFound   = New(KindNotFound, "ROUTE_NOT_FOUND", "route not found")
	ErrRateLimited     = New(KindRateLimited, "RATE_LIMITED", "too many requests, please try again shortly")
	ErrUnsupportedType = New(KindUnsupportedMedia, "UNSUPPORTED_MEDIA_TYPE", "Content-Type must be application/json")
	ErrInternal        = New(KindInternal, "INTERNAL_SERVER_ERROR", "internal server error")
)
