/*
errors.go - Centralized error types for the payments engine

PURPOSE:
  All engine failure kinds in one place for consistency and discoverability.
  Every failure is non-fatal: the caller logs it and moves to the next
  command.

ERROR CATEGORIES:
  1. Validation errors - non-positive amounts, duplicate transaction ids
  2. Account errors    - missing, frozen, or underfunded accounts
  3. Reference errors  - dispute/resolve/chargeback naming a transaction
                         that is missing, mismatched, or already terminal

USAGE:
  Callers match with errors.Is / errors.As:

    if errors.Is(err, engine.ErrDuplicateTransaction) { ... }

    var inv *engine.InvalidTransactionError
    if errors.As(err, &inv) { log(inv.Tx) }
*/
package engine

import (
	"errors"
	"fmt"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrInvalidAmount is returned when a deposit or withdrawal carries a
	// non-positive amount.
	ErrInvalidAmount = errors.New("amount must be greater than zero")

	// ErrDuplicateTransaction is returned when a transaction id is reused,
	// or when a dispute/chargeback repeats one already in effect.
	ErrDuplicateTransaction = errors.New("transaction already processed")

	// ErrInsufficientFunds is returned when a withdrawal exceeds available funds.
	ErrInsufficientFunds = errors.New("insufficient funds")

	// ErrMissingAccount is returned when an operation references a client
	// with no account. Only a deposit creates accounts.
	ErrMissingAccount = errors.New("missing account")

	// ErrInvalidTransaction is returned when a dispute/resolve/chargeback
	// references a transaction that does not exist, belongs to another
	// client, or is not in the required status.
	ErrInvalidTransaction = errors.New("invalid transaction")

	// ErrChargedBack is returned when disputing a transaction that has
	// already been charged back. ChargedBack is terminal.
	ErrChargedBack = errors.New("transaction already charged back")

	// ErrFrozenAccount is returned when withdrawing from a frozen account.
	ErrFrozenAccount = errors.New("frozen account")
)

// =============================================================================
// STRUCTURED ERRORS - Carry the offending transaction id
// =============================================================================

// DuplicateError reports a reused or repeated transaction id.
type DuplicateError struct {
	Tx TransactionID
}

func (e *DuplicateError) Error() string {
	return fmt.Sprintf("transaction %d already processed", e.Tx)
}

func (e *DuplicateError) Unwrap() error { return ErrDuplicateTransaction }

// InvalidTransactionError reports a bad dispute/resolve/chargeback reference.
type InvalidTransactionError struct {
	Tx TransactionID
}

func (e *InvalidTransactionError) Error() string {
	return fmt.Sprintf("invalid transaction %d", e.Tx)
}

func (e *InvalidTransactionError) Unwrap() error { return ErrInvalidTransaction }

// ChargedBackError reports a dispute against a terminally charged-back entry.
type ChargedBackError struct {
	Tx TransactionID
}

func (e *ChargedBackError) Error() string {
	return fmt.Sprintf("transaction %d already charged back", e.Tx)
}

func (e *ChargedBackError) Unwrap() error { return ErrChargedBack }

// =============================================================================
// ERROR HELPERS
// =============================================================================

// FailureReason maps an engine error to a stable label for logs and metrics.
func FailureReason(err error) string {
	switch {
	case errors.Is(err, ErrInvalidAmount):
		return "invalid_amount"
	case errors.Is(err, ErrDuplicateTransaction):
		return "duplicate"
	case errors.Is(err, ErrInsufficientFunds):
		return "insufficient_funds"
	case errors.Is(err, ErrMissingAccount):
		return "missing_account"
	case errors.Is(err, ErrChargedBack):
		return "dispute_chargeback"
	case errors.Is(err, ErrInvalidTransaction):
		return "invalid_transaction"
	case errors.Is(err, ErrFrozenAccount):
		return "frozen_account"
	default:
		return "unknown"
	}
}
