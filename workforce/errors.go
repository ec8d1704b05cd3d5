/*
errors.go - Centralized error types for the workforce model

PURPOSE:
  All data-integrity errors in one place. The engine surfaces bad input
  (malformed contracts, unknown members, unparseable dates) as errors that
  fail the single invocation; it never silently defaults and never holds
  partial state.

SEE ALSO:
  - types.go: Contract.Validate uses these
  - ../report: wraps these when building reports
*/
package workforce

import (
	"errors"
	"fmt"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrMemberNotFound is returned when a selector references an unknown
	// member id, or one outside the viewer's visibility.
	ErrMemberNotFound = errors.New("no member selected")

	// ErrInvalidContract wraps contract data-integrity failures.
	ErrInvalidContract = errors.New("invalid contract")

	// ErrInvalidPeriod is returned for a malformed period selector.
	ErrInvalidPeriod = errors.New("invalid period")

	// ErrEntryFrozen is returned when a time entry falls inside an active
	// freeze window for the member's team.
	ErrEntryFrozen = errors.New("date is frozen for edits")

	// ErrForbidden is returned when the viewer's role does not permit the
	// requested operation on the target member's data.
	ErrForbidden = errors.New("not permitted for this viewer")
)

// =============================================================================
// STRUCTURED ERRORS
// =============================================================================

// ContractError describes why a contract failed validation.
type ContractError struct {
	MemberID string
	Reason   string
}

func (e *ContractError) Error() string {
	if e.MemberID == "" {
		return fmt.Sprintf("invalid contract: %s", e.Reason)
	}
	return fmt.Sprintf("invalid contract for member %s: %s", e.MemberID, e.Reason)
}

func (e *ContractError) Unwrap() error { return ErrInvalidContract }

// FieldError describes a single malformed field value.
type FieldError struct {
	Field  string
	Value  string
	Reason string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("bad %s %q: %s", e.Field, e.Value, e.Reason)
}

// =============================================================================
// ERROR HELPERS
// =============================================================================

// IsClientError returns true if the error is due to invalid caller input.
func IsClientError(err error) bool {
	var fe *FieldError
	return errors.Is(err, ErrInvalidContract) ||
		errors.Is(err, ErrInvalidPeriod) ||
		errors.Is(err, ErrEntryFrozen) ||
		errors.As(err, &fe)
}

// IsNotFound returns true if the error indicates a missing member.
func IsNotFound(err error) bool { return errors.Is(err, ErrMemberNotFound) }
