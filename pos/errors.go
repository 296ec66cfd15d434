/*
errors.go - Centralized error types for the accounting engine

PURPOSE:
  All domain error types in one place for consistency and discoverability.
  The API layer maps these to HTTP statuses; the store wraps low-level
  failures into ErrStorage.

ERROR CATEGORIES:
  1. Validation errors - bad input, tender mismatches
  2. Lifecycle errors  - closure state machine violations
  3. Store errors      - database-level failures

USAGE:
  Callers branch with errors.Is:

    if errors.Is(err, pos.ErrAlreadyClosed) {
        // 409
    }

  TenderMismatchError carries the computed total, tendered sum, and
  difference so the caller can show a correction hint.

SEE ALSO:
  - payment.go: Produces validation errors
  - closure.go: Produces lifecycle errors
  - api/handlers.go: Maps errors to HTTP statuses
*/
package pos

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrInvalidInput is returned for malformed or missing fields:
	// empty item/tender lists, non-positive amounts, unknown methods.
	ErrInvalidInput = errors.New("invalid input")

	// ErrTenderMismatch is returned when tendered payments differ from the
	// computed total by more than the currency epsilon.
	ErrTenderMismatch = errors.New("tendered amount does not match total")

	// ErrAlreadyClosed is returned when closing a date that already has a
	// closure. Enforces "at most one closure per date".
	ErrAlreadyClosed = errors.New("day already closed")

	// ErrNotFound is returned when a requested entity or closure does not exist.
	ErrNotFound = errors.New("not found")

	// ErrForbidden is returned when the acting identity lacks the required role.
	ErrForbidden = errors.New("forbidden")

	// ErrDuplicateEmployeeNumber is returned when an employee number is taken.
	ErrDuplicateEmployeeNumber = errors.New("employee number already exists")

	// ErrStorage wraps ledger store I/O failures. The in-flight operation
	// aborts with no partial writes; the caller may resubmit.
	ErrStorage = errors.New("storage error")
)

// =============================================================================
// STRUCTURED ERRORS - Carry additional context
// =============================================================================

// TenderMismatchError reports the amounts involved in a failed
// reconciliation so the cashier can correct the tender.
type TenderMismatchError struct {
	Total      decimal.Decimal
	Tendered   decimal.Decimal
	Difference decimal.Decimal
}

func (e *TenderMismatchError) Error() string {
	return fmt.Sprintf("tendered %s does not match total %s (difference %s)",
		e.Tendered.StringFixed(2), e.Total.StringFixed(2), e.Difference.StringFixed(2))
}

func (e *TenderMismatchError) Unwrap() error {
	return ErrTenderMismatch
}

// StorageError wraps an underlying store failure with the operation name.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage: %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return ErrStorage
}

// =============================================================================
// ERROR HELPERS
// =============================================================================

// IsClientError returns true if the error is due to invalid client input.
func IsClientError(err error) bool {
	return errors.Is(err, ErrInvalidInput) ||
		errors.Is(err, ErrTenderMismatch) ||
		errors.Is(err, ErrDuplicateEmployeeNumber)
}

// IsConflict returns true if the error is a lifecycle conflict.
func IsConflict(err error) bool {
	return errors.Is(err, ErrAlreadyClosed)
}

// IsNotFound returns true if the error indicates a missing record.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
