/*
Package engine provides the core payments processing engine.

PURPOSE:
  This package contains the entity model and state machine for replaying a
  sequential ledger of client-initiated monetary events (deposits,
  withdrawals, disputes, resolutions, chargebacks) into final per-client
  account balances. Processing is single-pass and in-memory.

KEY CONCEPTS IN THIS FILE (types.go):
  - Amount: An exact base-10 monetary value (no floating-point error)
  - ClientID / TransactionID: Type-safe identifiers
  - Command: One input operation, consumed by exactly one Apply call

DESIGN PRINCIPLES:
  1. Precision: Uses decimal.Decimal to avoid floating-point errors
  2. Determinism: Commands applied strictly in input order; same input
     stream always produces the same snapshot
  3. Non-fatal failures: Every rejected command is returned as an error
     value; the engine keeps accepting commands afterwards
  4. Display rounding only at the boundary: internal accumulators are
     never rounded, so dispute/resolve cycles cannot drift

SEE ALSO:
  - engine.go: Apply dispatch and per-kind validity rules
  - history.go: Historical transaction records and their status machine
  - snapshot.go: Deterministic account reporting
*/
package engine

import (
	"github.com/shopspring/decimal"
)

// =============================================================================
// AMOUNT - Exact monetary value
// =============================================================================

// Amount is an exact base-10 fixed-point monetary value. Intermediate
// balances may legitimately go negative (a disputed withdrawal pulls funds
// that already left the account), so Amount never clamps.
type Amount struct {
	Value decimal.Decimal
}

// NewAmount wraps a decimal value.
func NewAmount(value decimal.Decimal) Amount {
	return Amount{Value: value}
}

// ParseAmount parses a decimal string such as "1.5" or "100.0".
func ParseAmount(s string) (Amount, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Amount{}, err
	}
	return Amount{Value: d}, nil
}

// MustAmount parses a decimal string and returns a zero amount on failure.
// Intended for constants and tests.
func MustAmount(s string) Amount {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Amount{Value: decimal.Zero}
	}
	return Amount{Value: d}
}

func ZeroAmount() Amount { return Amount{Value: decimal.Zero} }

func (a Amount) Add(b Amount) Amount      { return Amount{Value: a.Value.Add(b.Value)} }
func (a Amount) Sub(b Amount) Amount      { return Amount{Value: a.Value.Sub(b.Value)} }
func (a Amount) Neg() Amount              { return Amount{Value: a.Value.Neg()} }
func (a Amount) IsPositive() bool         { return a.Value.IsPositive() }
func (a Amount) IsNegative() bool         { return a.Value.IsNegative() }
func (a Amount) IsZero() bool             { return a.Value.IsZero() }
func (a Amount) Equal(b Amount) bool      { return a.Value.Equal(b.Value) }
func (a Amount) LessThan(b Amount) bool   { return a.Value.LessThan(b.Value) }
func (a Amount) GreaterThan(b Amount) bool { return a.Value.GreaterThan(b.Value) }

// Round4 rounds to 4 decimal places. Applied only at the reporting
// boundary, never during accumulation.
func (a Amount) Round4() Amount { return Amount{Value: a.Value.Round(4)} }

// StringFixed4 renders the amount with exactly 4 decimal places.
func (a Amount) StringFixed4() string { return a.Value.StringFixed(4) }

func (a Amount) String() string { return a.Value.String() }

// =============================================================================
// IDENTIFIERS
// =============================================================================

// ClientID identifies an account holder. The input format constrains it to
// the unsigned 16-bit range.
type ClientID uint16

// TransactionID identifies a deposit or withdrawal. Globally unique across
// the ledger's lifetime; never reused.
type TransactionID uint32
