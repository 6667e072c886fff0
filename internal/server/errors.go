// Package server provides the HTTP REST API for the resume optimizer.
package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/google/uuid"

	"github.com/jonathan/resume-optimizer/internal/pipeline"
)

// ErrResumeNotFound indicates the resume record does not exist
type ErrResumeNotFound struct {
	ID uuid.UUID
}

func (e *ErrResumeNotFound) Error() string {
	return fmt.Sprintf("resume not found: %s", e.ID)
}

// ErrNotOptimized indicates the resume has no optimized output yet
type ErrNotOptimized struct {
	ID uuid.UUID
}

func (e *ErrNotOptimized) Error() string {
	return fmt.Sprintf("optimized resume not available: %s", e.ID)
}

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var inputErr *pipeline.InputError
	if errors.As(err, &inputErr) {
		return http.StatusBadRequest
	}

	switch err.(type) {
	case *ErrResumeNotFound, *ErrNotOptimized:
		return http.StatusNotFound
	case *ErrValidation:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
