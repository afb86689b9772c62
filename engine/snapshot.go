package engine

import "sort"

// =============================================================================
// SNAPSHOT - Deterministic account reporting
// =============================================================================

// AccountSnapshot is one report row. Amounts are rounded to 4 decimal
// places for display; the engine's internal accumulators stay unrounded.
type AccountSnapshot struct {
	Client    ClientID
	Available Amount
	Held      Amount
	Total     Amount
	Locked    bool
}

// Snapshot returns every account ever created, ascending by client id.
// The ordering is independent of insertion and processing order.
func (e *Engine) Snapshot() []AccountSnapshot {
	out := make([]AccountSnapshot, 0, len(e.accounts))
	for _, acct := range e.accounts {
		out = append(out, snapshotOf(acct))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Client < out[j].Client })
	return out
}

// Account returns the snapshot row for one client, if the account exists.
func (e *Engine) Account(client ClientID) (AccountSnapshot, bool) {
	acct, ok := e.accounts[client]
	if !ok {
		return AccountSnapshot{}, false
	}
	return snapshotOf(acct), true
}

// Transaction returns a copy of a recorded history entry, if present.
func (e *Engine) Transaction(tx TransactionID) (HistoricalTransaction, bool) {
	entry, ok := e.history[tx]
	if !ok {
		return HistoricalTransaction{}, false
	}
	return *entry, true
}

func snapshotOf(acct *Account) AccountSnapshot {
	return AccountSnapshot{
		Client:    acct.Client,
		Available: acct.Available.Round4(),
		Held:      acct.Held.Round4(),
		Total:     acct.Total().Round4(),
		Locked:    acct.Frozen,
	}
}
