package domain

import (
	"errors"
	"net/http"
)

// HTTPError defines errors that can be mapped to HTTP status codes.
type HTTPError interface {
	error
	StatusCode() int
}

type (
	// NotFoundError indicates a document or version was not found, or a
	// version id does not belong to the referenced document.
	NotFoundError struct {
		Message string
	}

	// ValidationError indicates invalid input (missing content, unknown kind,
	// out-of-range navigation index).
	ValidationError struct {
		Message string
	}

	// TransportError indicates a network/timeout failure at an I/O boundary.
	// The operation is treated as failed with no partial state committed.
	TransportError struct {
		Message string
	}
)

func (e *NotFoundError) Error() string   { return e.Message }
func (e *ValidationError) Error() string { return e.Message }
func (e *TransportError) Error() string  { return e.Message }

func (e *NotFoundError) StatusCode() int   { return http.StatusNotFound }
func (e *ValidationError) StatusCode() int { return http.StatusBadRequest }
func (e *TransportError) StatusCode() int  { return http.StatusBadGateway }

// Sentinel errors - use with errors.Is()
var (
	ErrNotFound   = errors.New("not found")
	ErrConflict   = errors.New("conflict")
	ErrValidation = errors.New("validation failed")
	ErrTransport  = errors.New("transport failure")
)

func (e *NotFoundError) Is(target error) bool   { return target == ErrNotFound }
func (e *ValidationError) Is(target error) bool { return target == ErrValidation }
func (e *TransportError) Is(target error) bool  { return target == ErrTransport }

// ConflictError represents a resource conflict: a version-number race, a
// uniqueness violation, or a rejected concurrent restore.
type ConflictError struct {
	Message      string
	ResourceType string // "document" or "version"
	ResourceID   string // ID of the existing/conflicting resource, if known
}

func (e *ConflictError) Error() string {
	return e.Message
}

// StatusCode implements the HTTPError interface
func (e *ConflictError) StatusCode() int {
	return http.StatusConflict
}

// Is allows errors.Is() to match against ErrConflict
func (e *ConflictError) Is(target error) bool {
	return target == ErrConflict
}
