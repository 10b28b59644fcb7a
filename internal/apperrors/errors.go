package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrConflict indicates that the operation conflicts with the current state of the resource.
var ErrConflict = errors.New("resource state conflict")

// ErrNoTenantContext indicates that a tenant-scoped operation was invoked without a
// resolved tenant. This is a hard failure, never a fallback to unscoped data.
var ErrNoTenantContext = errors.New("no tenant resolved for this request")

// ErrUnbalancedEntry indicates that the debit and credit totals of a journal entry
// do not match. The entry is rejected before anything is persisted.
var ErrUnbalancedEntry = errors.New("journal entry debits do not equal credits")

// ErrUnmappedAccount indicates a gap in the tenant's GL account configuration: a
// posting rule needs an account that is not mapped, does not exist, or is inactive.
var ErrUnmappedAccount = errors.New("no GL account mapped for posting rule")

// ErrInsufficientStock indicates that a stock-out asked for more quantity than the
// open costing layers hold. Nothing is consumed.
var ErrInsufficientStock = errors.New("insufficient stock for requested quantity")

// ErrDuplicateNumber indicates a concurrent collision on document number allocation.
// The whole posting call is safe to retry once.
var ErrDuplicateNumber = errors.New("document number already allocated")

// AppError carries an HTTP-ish status code alongside the wrapped cause. Repositories
// use it to report infrastructure failures without leaking driver errors upward.
type AppError struct {
	Code    int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates an AppError wrapping an underlying cause.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

// NewNotFoundError creates an AppError that matches errors.Is(err, ErrNotFound).
func NewNotFoundError(message string) *AppError {
	return &AppError{Code: 404, Message: message, Err: ErrNotFound}
}
