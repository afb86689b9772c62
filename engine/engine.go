/*
engine.go - The ledger processing state machine

PURPOSE:
  The Engine owns the account table and the transaction history table and
  exposes one entry point, Apply, which dispatches to per-kind handlers
  enforcing the validity state machine.

CRITICAL INVARIANTS:
  1. ORDERED: commands are applied strictly in input order; the engine has
     no reordering or batching logic
  2. IDEMPOTENT IDS: a transaction id, once inserted, is never reinserted -
     any later deposit/withdrawal reusing an id is rejected as duplicate
  3. NON-FATAL FAILURES: handlers return errors as values and leave state
     untouched on rejection; the engine keeps processing
  4. EXCLUSIVE OWNERSHIP: nothing outside the engine mutates the two
     tables; only the final snapshot is exposed

VALIDATION ORDER:
  Both the deposit and withdrawal handlers check the duplicate transaction
  id first, then account existence, frozen state and funds. A single
  consistent order is used for both kinds.

CONCURRENCY:
  Single-threaded and synchronous. Apply is a pure in-memory state
  transition with no I/O and no blocking, so no context or locking is
  needed. A partitioned variant could shard by client id (no cross-client
  invariant exists) as long as commands for one client stay ordered.

SEE ALSO:
  - errors.go: The failure taxonomy returned by Apply
  - snapshot.go: Final reporting of accounts
*/
package engine

import "fmt"

// =============================================================================
// ENGINE
// =============================================================================

// Engine replays commands into per-client account balances. Construct with
// New; the zero value is not usable.
type Engine struct {
	accounts map[ClientID]*Account
	history  map[TransactionID]*HistoricalTransaction
}

func New() *Engine {
	return &Engine{
		accounts: make(map[ClientID]*Account),
		history:  make(map[TransactionID]*HistoricalTransaction),
	}
}

// Apply processes one command. A returned error means the command was
// rejected and no state changed; it is never fatal to the engine.
func (e *Engine) Apply(cmd Command) error {
	switch cmd.Kind {
	case CmdDeposit:
		return e.applyDeposit(cmd)
	case CmdWithdrawal:
		return e.applyWithdrawal(cmd)
	case CmdDispute:
		return e.applyDispute(cmd)
	case CmdResolve:
		return e.applyResolve(cmd)
	case CmdChargeback:
		return e.applyChargeback(cmd)
	default:
		return fmt.Errorf("unknown command kind %q", cmd.Kind)
	}
}

// =============================================================================
// DEPOSIT / WITHDRAWAL - Create history entries
// =============================================================================

func (e *Engine) applyDeposit(cmd Command) error {
	if !cmd.Amount.IsPositive() {
		return ErrInvalidAmount
	}
	if _, ok := e.history[cmd.Tx]; ok {
		return &DuplicateError{Tx: cmd.Tx}
	}

	acct, ok := e.accounts[cmd.Client]
	if !ok {
		acct = newAccount(cmd.Client)
		e.accounts[cmd.Client] = acct
	}

	acct.Available = acct.Available.Add(cmd.Amount)
	e.history[cmd.Tx] = &HistoricalTransaction{
		Tx:     cmd.Tx,
		Kind:   EntryDeposit,
		Client: cmd.Client,
		Amount: cmd.Amount,
		Status: StatusNormal,
	}
	return nil
}

func (e *Engine) applyWithdrawal(cmd Command) error {
	if !cmd.Amount.IsPositive() {
		return ErrInvalidAmount
	}
	if _, ok := e.history[cmd.Tx]; ok {
		return &DuplicateError{Tx: cmd.Tx}
	}

	// A withdrawal never creates an account.
	acct, ok := e.accounts[cmd.Client]
	if !ok {
		return ErrMissingAccount
	}
	if acct.Frozen {
		return ErrFrozenAccount
	}
	if acct.Available.LessThan(cmd.Amount) {
		return ErrInsufficientFunds
	}

	acct.Available = acct.Available.Sub(cmd.Amount)
	e.history[cmd.Tx] = &HistoricalTransaction{
		Tx:     cmd.Tx,
		Kind:   EntryWithdrawal,
		Client: cmd.Client,
		Amount: cmd.Amount,
		Status: StatusNormal,
	}
	return nil
}

// =============================================================================
// DISPUTE / RESOLVE / CHARGEBACK - Mutate history entry status
// =============================================================================

func (e *Engine) applyDispute(cmd Command) error {
	entry, ok := e.history[cmd.Tx]
	if !ok {
		return &InvalidTransactionError{Tx: cmd.Tx}
	}
	if entry.Client != cmd.Client {
		return &InvalidTransactionError{Tx: cmd.Tx}
	}
	if entry.Status == StatusChargedBack {
		return &ChargedBackError{Tx: cmd.Tx}
	}
	if entry.Status == StatusDisputed {
		return &DuplicateError{Tx: cmd.Tx}
	}
	acct, ok := e.accounts[entry.Client]
	if !ok {
		return ErrMissingAccount
	}

	delta := entry.disputeDelta()
	acct.Available = acct.Available.Sub(delta)
	acct.Held = acct.Held.Add(delta)
	entry.Status = StatusDisputed
	return nil
}

func (e *Engine) applyResolve(cmd Command) error {
	entry, ok := e.history[cmd.Tx]
	if !ok {
		return &InvalidTransactionError{Tx: cmd.Tx}
	}
	if entry.Client != cmd.Client {
		return &InvalidTransactionError{Tx: cmd.Tx}
	}
	// Covers both Normal (nothing to resolve) and ChargedBack (terminal).
	if entry.Status != StatusDisputed {
		return &InvalidTransactionError{Tx: cmd.Tx}
	}
	acct, ok := e.accounts[entry.Client]
	if !ok {
		return ErrMissingAccount
	}

	// Exact inverse of the dispute movement.
	delta := entry.disputeDelta()
	acct.Available = acct.Available.Add(delta)
	acct.Held = acct.Held.Sub(delta)
	entry.Status = StatusNormal
	return nil
}

func (e *Engine) applyChargeback(cmd Command) error {
	entry, ok := e.history[cmd.Tx]
	if !ok {
		return &InvalidTransactionError{Tx: cmd.Tx}
	}
	if entry.Client != cmd.Client {
		return &InvalidTransactionError{Tx: cmd.Tx}
	}
	if entry.Status == StatusChargedBack {
		return &DuplicateError{Tx: cmd.Tx}
	}
	if entry.Status != StatusDisputed {
		return &InvalidTransactionError{Tx: cmd.Tx}
	}
	acct, ok := e.accounts[entry.Client]
	if !ok {
		return ErrMissingAccount
	}

	// The disputed amount was held with the sign convention established at
	// dispute time; the chargeback removes the raw amount for both kinds.
	acct.Held = acct.Held.Sub(entry.Amount)
	acct.Frozen = true
	entry.Status = StatusChargedBack
	return nil
}
