// Package apierror provides standardized error response structures for the API.
// All errors returned to clients go through this package to ensure consistency
// and to prevent leaking internal details (stack traces, DB errors, etc.).
package apierror

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
)

// APIError is the canonical error envelope for all 4xx/5xx HTTP responses.
type APIError struct {
	Detail string `json:"detail"`
}

func New(msg string) *APIError {
	return &APIError{Detail: msg}
}

// Validation wraps multiple field errors.
type ValidationError struct {
	Detail string            `json:"detail"`
	Fields map[string]string `json:"fields"`
}

func NewValidation(fields map[string]string) *ValidationError {
	return &ValidationError{Detail: "Error de validacion", Fields: fields}
}

// FromValidator maps validator errors to a field -> message envelope. Field
// names are the json/form names the client sent. Returns nil for any other
// kind of error.
func FromValidator(err error) *ValidationError {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil
	}
	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		fields[fe.Field()] = mensaje(fe)
	}
	return NewValidation(fields)
}

func mensaje(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required", "required_without":
		return "requerido"
	case "datetime":
		return "fecha invalida, use AAAA-MM-DD"
	case "oneof":
		return "debe ser uno de: " + strings.ReplaceAll(fe.Param(), " ", ", ")
	case "email":
		return "correo invalido"
	case "numeric":
		return "debe ser numerico"
	case "min":
		return "minimo " + fe.Param()
	case "max":
		return "maximo " + fe.Param()
	}
	return fe.Tag()
}
