// dto.go - JSON shapes for the report API.
//
// These types decouple the engine's internal model from the API contract.
// Amounts are rendered as fixed 4-decimal strings, matching the CSV table.
package api

import (
	"github.com/warp/payments-engine/engine"
	"github.com/warp/payments-engine/ledger"
)

// =============================================================================
// RESPONSE TYPES
// =============================================================================

// AccountDTO is one account row in API responses.
type AccountDTO struct {
	Client    uint16 `json:"client"`
	Available string `json:"available"`
	Held      string `json:"held"`
	Total     string `json:"total"`
	Locked    bool   `json:"locked"`
}

// TransactionDTO is one recorded deposit/withdrawal with its dispute status.
type TransactionDTO struct {
	Tx     uint32 `json:"tx"`
	Kind   string `json:"kind"`
	Client uint16 `json:"client"`
	Amount string `json:"amount"`
	Status string `json:"status"`
}

// SummaryDTO reports what the replay did.
type SummaryDTO struct {
	Processed int `json:"processed"`
	Failed    int `json:"failed"`
	Dropped   int `json:"dropped"`
	Accounts  int `json:"accounts"`
}

type errorDTO struct {
	Error string `json:"error"`
}

// =============================================================================
// CONVERSIONS
// =============================================================================

func toAccountDTO(snap engine.AccountSnapshot) AccountDTO {
	return AccountDTO{
		Client:    uint16(snap.Client),
		Available: snap.Available.StringFixed4(),
		Held:      snap.Held.StringFixed4(),
		Total:     snap.Total.StringFixed4(),
		Locked:    snap.Locked,
	}
}

func toAccountDTOs(snaps []engine.AccountSnapshot) []AccountDTO {
	dtos := make([]AccountDTO, 0, len(snaps))
	for _, snap := range snaps {
		dtos = append(dtos, toAccountDTO(snap))
	}
	return dtos
}

func toTransactionDTO(entry engine.HistoricalTransaction) TransactionDTO {
	return TransactionDTO{
		Tx:     uint32(entry.Tx),
		Kind:   string(entry.Kind),
		Client: uint16(entry.Client),
		Amount: entry.Amount.StringFixed4(),
		Status: string(entry.Status),
	}
}

func toSummaryDTO(sum ledger.Summary, accounts int) SummaryDTO {
	return SummaryDTO{
		Processed: sum.Processed,
		Failed:    sum.Failed,
		Dropped:   sum.Dropped,
		Accounts:  accounts,
	}
}
