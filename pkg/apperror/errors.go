package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind is the closed set of error conditions the service can raise.
// The HTTP boundary matches on Kind; string codes exist only for clients.
type Kind string

const (
	KindNotFound          Kind = "NOT_FOUND"
	KindForbidden         Kind = "FORBIDDEN"
	KindSoftDeleted       Kind = "SOFT_DELETED"
	KindAlreadyDeleted    Kind = "ALREADY_DELETED"
	KindParentSoftDeleted Kind = "PARENT_SOFT_DELETED"
	KindNameConflict      Kind = "NAME_CONFLICT"
	KindValidation        Kind = "VALIDATION"
	KindUnauthorized      Kind = "UNAUTHORIZED"
	KindRateLimited       Kind = "RATE_LIMITED"
	KindService           Kind = "SERVICE"
)

// AppError is a structured error that maps to HTTP responses.
type AppError struct {
	Kind       Kind   `json:"-"`
	Code       string `json:"error_code"`
	Message    string `json:"message"`
	HTTPStatus int    `json:"-"`
	Entity     string `json:"entity,omitempty"`    // entity kind the error refers to
	EntityID   string `json:"entity_id,omitempty"` // id of that entity, when known
	Err        error  `json:"-"`                   // wrapped internal error (not exposed to client)
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// KindOf extracts the Kind from an error chain. Non-AppError errors
// report KindService.
func KindOf(err error) Kind {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindService
}

// New creates a new AppError.
func New(kind Kind, code string, message string, httpStatus int) *AppError {
	return &AppError{
		Kind:       kind,
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
	}
}

// ---- Entity guard outcomes (ENT) ----

// ErrNotFound reports a missing entity. Soft-deleted rows surface here on
// read paths as well.
func ErrNotFound(entity string, entityID string) *AppError {
	e := New(KindNotFound, "ENT_001", fmt.Sprintf("%s not found", entity), http.StatusNotFound)
	e.Entity = entity
	e.EntityID = entityID
	return e
}

// ErrForbidden reports an entity owned by somebody else.
func ErrForbidden(entity string, entityID string) *AppError {
	e := New(KindForbidden, "ENT_002", fmt.Sprintf("%s belongs to another user", entity), http.StatusForbidden)
	e.Entity = entity
	e.EntityID = entityID
	return e
}

// ErrSoftDeleted reports a mutation against a soft-deleted entity.
func ErrSoftDeleted(entity string, entityID string) *AppError {
	e := New(KindSoftDeleted, "ENT_003", fmt.Sprintf("%s has been deleted", entity), http.StatusConflict)
	e.Entity = entity
	e.EntityID = entityID
	return e
}

// ErrAlreadyDeleted reports a second delete of the same entity.
func ErrAlreadyDeleted(entity string, entityID string) *AppError {
	e := New(KindAlreadyDeleted, "ENT_004", fmt.Sprintf("%s is already deleted", entity), http.StatusConflict)
	e.Entity = entity
	e.EntityID = entityID
	return e
}

// ErrParentSoftDeleted blocks a child mutation whose parent wallet is deleted.
func ErrParentSoftDeleted(entity string, entityID string) *AppError {
	e := New(KindParentSoftDeleted, "ENT_005", fmt.Sprintf("parent %s has been deleted", entity), http.StatusConflict)
	e.Entity = entity
	e.EntityID = entityID
	return e
}

// ErrNameConflict reports a sibling entity already using the requested name.
func ErrNameConflict(entity string, name string) *AppError {
	e := New(KindNameConflict, "ENT_006", fmt.Sprintf("a %s named %q already exists", entity, name), http.StatusConflict)
	e.Entity = entity
	return e
}

// ---- Validation (VAL) ----

// Validation returns a generic request validation error.
func Validation(message string) *AppError {
	return New(KindValidation, "VAL_000", message, http.StatusBadRequest)
}

// ErrAmountFormat reports a monetary string that is not a plain decimal
// with at most two fractional digits.
func ErrAmountFormat(input string) *AppError {
	return New(KindValidation, "VAL_001", fmt.Sprintf("invalid amount %q: expected digits with up to two decimals", input), http.StatusBadRequest)
}

// ErrAmountRange reports a monetary value outside the safe integer range.
func ErrAmountRange(input string) *AppError {
	return New(KindValidation, "VAL_002", fmt.Sprintf("amount %s out of range", input), http.StatusBadRequest)
}

// ---- Authentication (AUTH) ----

func ErrInvalidCredentials() *AppError {
	return New(KindUnauthorized, "AUTH_001", "Invalid credentials", http.StatusUnauthorized)
}

func ErrUsernameExists() *AppError {
	return New(KindNameConflict, "AUTH_002", "Username already exists", http.StatusConflict)
}

func ErrInvalidToken() *AppError {
	return New(KindUnauthorized, "AUTH_003", "Invalid or expired token", http.StatusUnauthorized)
}

// ---- Rate Limiting (RATE) ----

func ErrRateLimitExceeded() *AppError {
	return New(KindRateLimited, "RATE_001", "Rate limit exceeded", http.StatusTooManyRequests)
}

// ---- System & Infrastructure (SYS) ----

// Internal wraps an unexpected persistence or infrastructure failure.
func Internal(err error) *AppError {
	return &AppError{
		Kind:       KindService,
		Code:       "SYS_001",
		Message:    "Internal server error",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}
