package apperrors

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrIllegalTransition indicates an invoice status change that violates the
// lifecycle transition table, or an edit attempted on a terminal-status invoice.
var ErrIllegalTransition = errors.New("illegal status transition")

// ErrFrozen indicates a mutation attempt on a payment voucher that is Paid or
// Reversed. Frozen documents can only be superseded by a reversal document.
var ErrFrozen = errors.New("document is frozen")

// ErrNotRecurring indicates recurrence advancement was requested for an
// invoice that is not configured as recurring.
var ErrNotRecurring = errors.New("invoice is not recurring")

// ErrInvalidParent indicates a cost-center level was selected without a valid
// parent chain above it.
var ErrInvalidParent = errors.New("invalid cost center parent chain")

// ErrInvalidRate indicates a negative tax rate was supplied.
var ErrInvalidRate = errors.New("invalid tax rate")

// ErrStaleVersion indicates an optimistic-concurrency conflict: the document
// was modified by another writer since it was read.
var ErrStaleVersion = errors.New("document version is stale")

// OutOfBalanceError is returned when a payment voucher's lines do not sum to
// its header total. Difference is signed (lineTotal - headerTotal) so the
// caller can render "short by X" vs "over by X".
type OutOfBalanceError struct {
	Difference decimal.Decimal
}

func (e *OutOfBalanceError) Error() string {
	return fmt.Sprintf("voucher lines out of balance by %s", e.Difference.String())
}

// NewOutOfBalanceError constructs an OutOfBalanceError with the signed difference.
func NewOutOfBalanceError(difference decimal.Decimal) *OutOfBalanceError {
	return &OutOfBalanceError{Difference: difference}
}

// AppError wraps an underlying error with a status code and message.
// Used by the repository layer for infrastructure failures.
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

// NewAppError creates a new AppError wrapping err.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}
