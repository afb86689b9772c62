package engine

// =============================================================================
// COMMAND - One input operation, consumed by exactly one Apply call
// =============================================================================

type CommandKind string

const (
	CmdDeposit    CommandKind = "deposit"    // Credit funds to an account
	CmdWithdrawal CommandKind = "withdrawal" // Debit funds from an account
	CmdDispute    CommandKind = "dispute"    // Contest a recorded deposit/withdrawal
	CmdResolve    CommandKind = "resolve"    // Release an active dispute
	CmdChargeback CommandKind = "chargeback" // Finalize a dispute against the client
)

// Command carries the fields relevant to a single operation. Amount is only
// meaningful for deposits and withdrawals; dispute, resolve and chargeback
// reference a previously recorded transaction by id.
type Command struct {
	Kind   CommandKind
	Client ClientID
	Tx     TransactionID
	Amount Amount
}

// NewDeposit builds a deposit command. The amount must be strictly positive;
// the ingest boundary rejects non-positive amounts too, this is the second
// line of defense.
func NewDeposit(client ClientID, tx TransactionID, amount Amount) (Command, error) {
	if !amount.IsPositive() {
		return Command{}, ErrInvalidAmount
	}
	return Command{Kind: CmdDeposit, Client: client, Tx: tx, Amount: amount}, nil
}

// NewWithdrawal builds a withdrawal command. The amount must be strictly positive.
func NewWithdrawal(client ClientID, tx TransactionID, amount Amount) (Command, error) {
	if !amount.IsPositive() {
		return Command{}, ErrInvalidAmount
	}
	return Command{Kind: CmdWithdrawal, Client: client, Tx: tx, Amount: amount}, nil
}

func NewDispute(client ClientID, tx TransactionID) Command {
	return Command{Kind: CmdDispute, Client: client, Tx: tx}
}

func NewResolve(client ClientID, tx TransactionID) Command {
	return Command{Kind: CmdResolve, Client: client, Tx: tx}
}

func NewChargeback(client ClientID, tx TransactionID) Command {
	return Command{Kind: CmdChargeback, Client: client, Tx: tx}
}
