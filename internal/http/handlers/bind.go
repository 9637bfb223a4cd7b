package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"reflect"
	"strings"

	"github.com/Marco21c/backend-noticias/internal/apperr"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// FieldError names one rejected input by the key the client sent.
type FieldError struct {
	Field   string `json:"field"`
	Rule    string `json:"rule"`
	Param   string `json:"param,omitempty"`
	Message string `json:"message,omitempty"`
}

// ValidationDetails is the details payload of REQUEST_VALIDATION_ERROR.
type ValidationDetails struct {
	Fields []FieldError `json:"fields,omitempty"`
	Reason string       `json:"reason,omitempty"`
}

const (
	reasonMalformedJSON = "malformed_json"
	reasonWrongType     = "wrong_type"
)

func BindJSON(ctx *gin.Context, out any) bool {
	err := ctx.ShouldBindJSON(out)
	if err == nil {
		return true
	}

	var tooLarge *http.MaxBytesError
	switch {
	case errors.As(err, &tooLarge):
		Fail(ctx, apperr.ErrValidation.WithMessage("request body too large"))
	case errors.Is(err, io.EOF):
		Fail(ctx, apperr.ErrValidation.WithMessage("request body is required"))
	default:
		Fail(ctx, invalidInput("invalid request body", err))
	}
	return false
}

func BindQuery(ctx *gin.Context, out any) bool {
	if err := ctx.ShouldBindQuery(out); err != nil {
		Fail(ctx, invalidInput("invalid query parameters", err))
		return false
	}
	return true
}

func BindURI(ctx *gin.Context, out any) bool {
	if err := ctx.ShouldBindUri(out); err != nil {
		Fail(ctx, invalidInput("invalid path parameters", err))
		return false
	}
	return true
}

func invalidInput(message string, err error) *apperr.Error {
	return apperr.ErrValidation.WithMessage(message).WithDetails(detailsFor(err))
}

func detailsFor(err error) ValidationDetails {
	var (
		rules     validator.ValidationErrors
		syntax    *json.SyntaxError
		wrongType *json.UnmarshalTypeError
	)

	switch {
	case errors.As(err, &rules):
		fields := make([]FieldError, 0, len(rules))
		for _, fe := range rules {
			fields = append(fields, FieldError{
				Field:   clientPath(fe.Namespace()),
				Rule:    fe.Tag(),
				Param:   fe.Param(),
				Message: validationMessage(fe.Tag(), fe.Param()),
			})
		}
		return ValidationDetails{Fields: fields}

	case errors.As(err, &syntax):
		return ValidationDetails{Reason: reasonMalformedJSON}

	case errors.As(err, &wrongType):
		return ValidationDetails{
			Reason: reasonWrongType,
			Fields: []FieldError{{
				Field:   wrongType.Field,
				Rule:    "type",
				Message: "must be of type " + wrongType.Type.String(),
			}},
		}
	}

	return ValidationDetails{Reason: err.Error()}
}

// clientPath drops the root struct name from a validator namespace
// ("CreateNewsRequest.highlights[0]" -> "highlights[0]").
func clientPath(namespace string) string {
	_, path, found := strings.Cut(namespace, ".")
	if !found {
		return namespace
	}
	return path
}

// clientFieldName makes validator report fields by their json, form or uri key.
func clientFieldName(sf reflect.StructField) string {
	for _, key := range []string{"json", "form", "uri"} {
		name, _, _ := strings.Cut(sf.Tag.Get(key), ",")
		if name == "-" {
			return ""
		}
		if name != "" {
			return name
		}
	}
	return ""
}

func validationMessage(rule, param string) string {
	switch rule {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "min":
		return "must be at least " + param
	case "max":
		return "must be at most " + param
	case "oneof":
		return "must be one of " + strings.ReplaceAll(param, " ", ", ")
	case "url":
		return "must be a valid URL"
	case "objectid":
		return "must be a 24-character hex id"
	case "strongpassword":
		return "must be at least 8 characters with upper-case, lower-case, digit and symbol"
	case "role":
		return "must be one of superadmin, admin, editor, user"
	}

	if param != "" {
		return "failed " + rule + " validation (" + param + ")"
	}
	return "failed " + rule + " validation"
}
