package httpapi

import (
	"errors"
	"fmt"
	"net/http"

	"ChartPulse/internal/calculator"
	"ChartPulse/internal/collector"
	"ChartPulse/internal/paper"
)

// AppError represents application-level error with HTTP status.
type AppError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
	Status  int    `json:"-"`
	Err     error  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error { return e.Err }

// NewAppError creates a new application error.
func NewAppError(code, message string, status int) *AppError {
	return &AppError{Code: code, Message: message, Status: status}
}

// WithError wraps an underlying error.
func (e *AppError) WithError(err error) *AppError {
	e.Err = err
	return e
}

// toAppError classifies domain errors into HTTP errors.
func toAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	msg := err.Error()
	switch {
	case errors.Is(err, calculator.ErrInvalidInput), errors.Is(err, paper.ErrInvalidQuantity):
		return NewAppError("ERR_INVALID_INPUT", msg, http.StatusUnprocessableEntity).WithError(err)
	case errors.Is(err, collector.ErrNoData), errors.Is(err, paper.ErrBarNotFound):
		return NewAppError("ERR_NOT_FOUND", msg, http.StatusNotFound).WithError(err)
	case errors.Is(err, paper.ErrPositionOpen), errors.Is(err, paper.ErrNoPosition):
		return NewAppError("ERR_CONFLICT", msg, http.StatusConflict).WithError(err)
	case errors.Is(err, collector.ErrUnavailable):
		return NewAppError("ERR_UNAVAILABLE", msg, http.StatusServiceUnavailable).WithError(err)
	default:
		return NewAppError("ERR_INTERNAL", "Something went wrong", http.StatusInternalServerError).WithError(err)
	}
}
