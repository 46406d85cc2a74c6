package calculator

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidActivity matches any *InvalidActivityError.
	ErrInvalidActivity = errors.New("invalid activity")
	// ErrUnbalancedLedger matches any *UnbalancedLedgerError.
	ErrUnbalancedLedger = errors.New("unbalanced ledger")
	// ErrInvalidGroup is returned when a group snapshot has empty or duplicate member ids.
	ErrInvalidGroup = errors.New("invalid group")
	// ErrInvalidPayment is returned for recorded payments that cannot be applied.
	ErrInvalidPayment = errors.New("invalid payment")
	// ErrAmountOverflow is returned alongside ErrUnbalancedLedger when a sum
	// of amounts leaves the int64 range.
	ErrAmountOverflow = errors.New("amount overflow")
)

// InvalidActivityError reports why an activity was rejected.
type InvalidActivityError struct {
	ActivityID string
	Reason     string
}

func (e *InvalidActivityError) Error() string {
	return fmt.Sprintf("invalid activity %q: %s", e.ActivityID, e.Reason)
}

func (e *InvalidActivityError) Unwrap() error { return ErrInvalidActivity }

func invalidActivity(id, format string, args ...any) error {
	return &InvalidActivityError{ActivityID: id, Reason: fmt.Sprintf(format, args...)}
}

// UnbalancedLedgerError reports a broken conservation law. It always points
// at a bug upstream and is never corrected automatically.
type UnbalancedLedgerError struct {
	GroupID string
	// ActivityID is set when a single activity's allocation was off.
	ActivityID string
	Expected   Amount
	Actual     Amount
	// Overflow is set when a sum left the int64 range; Actual is then
	// meaningless.
	Overflow bool
}

func (e *UnbalancedLedgerError) Error() string {
	if e.Overflow {
		return fmt.Sprintf("unbalanced ledger: group %q amounts overflow int64", e.GroupID)
	}
	if e.ActivityID != "" {
		return fmt.Sprintf("unbalanced ledger: activity %q allocated %s, expected %s",
			e.ActivityID, e.Actual, e.Expected)
	}
	return fmt.Sprintf("unbalanced ledger: group %q balances sum to %s, expected %s",
		e.GroupID, e.Actual, e.Expected)
}

func (e *UnbalancedLedgerError) Unwrap() []error {
	if e.Overflow {
		return []error{ErrUnbalancedLedger, ErrAmountOverflow}
	}
	return []error{ErrUnbalancedLedger}
}
