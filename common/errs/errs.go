package errs

import (
	"fmt"
	"net/http"
)

type HttpError struct {
	Code    int
	Message string
	Data    any
}

func (e *HttpError) Error() string {
	return fmt.Sprintf("code %d: %s, data: %v", e.Code, e.Message, e.Data)
}

// ValidationField reports a single offending field with the reason it was
// rejected, e.g. ValidationField("heading", "required").
func ValidationField(field, reason string) *HttpError {
	return &HttpError{
		Code:    http.StatusBadRequest,
		Message: "Validation failed",
		Data:    map[string]any{field: reason},
	}
}

func Conflict(message string) *HttpError {
	return &HttpError{Code: http.StatusConflict, Message: message}
}

func NotFound(message string) *HttpError {
	return &HttpError{Code: http.StatusNotFound, Message: message}
}

func Unauthorized(message string) *HttpError {
	return &HttpError{Code: http.StatusUnauthorized, Message: message}
}
