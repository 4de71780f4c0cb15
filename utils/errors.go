package utils

import (
	"errors"
	"net/http"
	"strings"

	"gorm.io/gorm"
)

type ErrorKind string

const (
	KindValidation ErrorKind = "validation"
	KindConflict   ErrorKind = "conflict"
	KindPermission ErrorKind = "permission"
	KindNotFound   ErrorKind = "not_found"
	KindDatabase   ErrorKind = "database"
	KindUnknown    ErrorKind = "unknown"
)

type AppError struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func (e *AppError) HTTPStatus() int {
	switch e.Kind {
	case KindValidation:
		return http.StatusBadRequest
	case KindConflict:
		return http.StatusConflict
	case KindPermission:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func NewValidationError(message string) *AppError {
	return &AppError{Kind: KindValidation, Message: message}
}

func NewConflictError(message string) *AppError {
	return &AppError{Kind: KindConflict, Message: message}
}

func NewPermissionError(message string) *AppError {
	return &AppError{Kind: KindPermission, Message: message}
}

func NewNotFoundError(message string) *AppError {
	return &AppError{Kind: KindNotFound, Message: message}
}

// Classify buckets an arbitrary error into the taxonomy. Driver errors
// only expose their nature through code strings, hence the message
// sniffing for duplicate keys.
func Classify(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &AppError{Kind: KindNotFound, Message: "record not found", Err: err}
	}

	msg := err.Error()
	if strings.Contains(msg, "Duplicate entry") || strings.Contains(msg, "UNIQUE constraint failed") {
		return &AppError{Kind: KindConflict, Message: "duplicate record", Err: err}
	}
	if strings.Contains(msg, "a foreign key constraint fails") || strings.Contains(msg, "FOREIGN KEY constraint failed") {
		return &AppError{Kind: KindConflict, Message: "record is still referenced", Err: err}
	}
	if strings.Contains(msg, "connection refused") || strings.Contains(msg, "invalid connection") {
		return &AppError{Kind: KindDatabase, Message: "database unavailable", Err: err}
	}

	return &AppError{Kind: KindUnknown, Message: msg, Err: err}
}
