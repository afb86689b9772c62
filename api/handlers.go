/*
handlers.go - HTTP handlers for the report API

PURPOSE:
  Read-only views over the final replay state. The server is only started
  after the input stream has been fully processed, so handlers never
  observe intermediate engine state.

HANDLER PATTERN:
  1. Parse path parameters
  2. Look up in the engine (read-only)
  3. Serialize response

ERROR HANDLING:
  - 400: malformed client/tx path parameter
  - 404: unknown account or transaction
*/
package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/warp/payments-engine/engine"
	"github.com/warp/payments-engine/ledger"
)

// =============================================================================
// HANDLER
// =============================================================================

// Handler holds the processed engine and the run summary.
type Handler struct {
	engine  *engine.Engine
	summary ledger.Summary
}

// NewHandler wraps a fully processed engine for read-only serving.
func NewHandler(eng *engine.Engine, summary ledger.Summary) *Handler {
	return &Handler{engine: eng, summary: summary}
}

// ListAccounts returns every account, ascending by client id.
func (h *Handler) ListAccounts(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, toAccountDTOs(h.engine.Snapshot()))
}

// GetAccount returns one account by client id.
func (h *Handler) GetAccount(w http.ResponseWriter, r *http.Request) {
	raw := chi.URLParam(r, "client")
	client, err := strconv.ParseUint(raw, 10, 16)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorDTO{Error: "invalid client id"})
		return
	}

	snap, ok := h.engine.Account(engine.ClientID(client))
	if !ok {
		writeJSON(w, http.StatusNotFound, errorDTO{Error: "account not found"})
		return
	}
	writeJSON(w, http.StatusOK, toAccountDTO(snap))
}

// GetTransaction returns one recorded deposit/withdrawal by transaction id.
func (h *Handler) GetTransaction(w http.ResponseWriter, r *http.Request) {
	raw := chi.URLParam(r, "tx")
	tx, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorDTO{Error: "invalid transaction id"})
		return
	}

	entry, ok := h.engine.Transaction(engine.TransactionID(tx))
	if !ok {
		writeJSON(w, http.StatusNotFound, errorDTO{Error: "transaction not found"})
		return
	}
	writeJSON(w, http.StatusOK, toTransactionDTO(entry))
}

// GetSummary returns the replay summary.
func (h *Handler) GetSummary(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, toSummaryDTO(h.summary, len(h.engine.Snapshot())))
}

// Health is a liveness probe.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// =============================================================================
// HELPERS
// =============================================================================

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
