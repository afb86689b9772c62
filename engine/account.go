package engine

// =============================================================================
// ACCOUNT - Per-client balance record
// =============================================================================

// Account tracks the funds of a single client.
//
// INVARIANTS:
//   - Total() = Available + Held is the reported value
//   - Available and Held may individually go negative transiently
//     (disputed withdrawal, chargeback after funds already left)
//   - Created lazily on the first deposit naming an unseen client; never deleted
//   - Once Frozen is true it never reverts
type Account struct {
	Client    ClientID
	Available Amount // funds free to withdraw
	Held      Amount // funds frozen pending dispute resolution
	Frozen    bool   // true once any chargeback has occurred
}

func newAccount(client ClientID) *Account {
	return &Account{
		Client:    client,
		Available: ZeroAmount(),
		Held:      ZeroAmount(),
	}
}

// Total is the derived reported balance.
func (a *Account) Total() Amount {
	return a.Available.Add(a.Held)
}
