package engine

// =============================================================================
// HISTORICAL TRANSACTION - Immutable identity, mutable status
// =============================================================================

// EntryKind is the original kind of a recorded transaction. Only deposits
// and withdrawals become history entries; dispute/resolve/chargeback act on
// existing ones.
type EntryKind string

const (
	EntryDeposit    EntryKind = "deposit"
	EntryWithdrawal EntryKind = "withdrawal"
)

// Status is the dispute lifecycle of a history entry.
//
// State machine: Normal -> Disputed -> {Normal (resolve), ChargedBack (terminal)}.
// An entry never leaves ChargedBack.
type Status string

const (
	StatusNormal      Status = "normal"
	StatusDisputed    Status = "disputed"
	StatusChargedBack Status = "charged_back"
)

// HistoricalTransaction records a past deposit or withdrawal. Identity,
// kind, client and amount are immutable once inserted; only Status changes,
// and only through dispute/resolve/chargeback handling.
type HistoricalTransaction struct {
	Tx     TransactionID
	Kind   EntryKind
	Client ClientID
	Amount Amount // strictly positive as stored
	Status Status
}

// disputeDelta is the amount moved from available to held when this entry
// is disputed. Disputing a withdrawal reverses the original debit, so the
// movement is sign-flipped and Held may go negative.
func (h *HistoricalTransaction) disputeDelta() Amount {
	if h.Kind == EntryWithdrawal {
		return h.Amount.Neg()
	}
	return h.Amount
}
