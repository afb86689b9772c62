package sqlite

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/payments-engine/engine"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestRecordOutcome(t *testing.T) {
	store := newTestStore(t)

	dep, err := engine.NewDeposit(1, 1, engine.MustAmount("100.0"))
	require.NoError(t, err)
	require.NoError(t, store.RecordOutcome(dep, nil))
	require.NoError(t, store.RecordOutcome(engine.NewDispute(1, 99), engine.ErrInvalidTransaction))

	var count int
	require.NoError(t, store.db.QueryRow(`SELECT COUNT(*) FROM outcomes`).Scan(&count))
	assert.Equal(t, 2, count)

	var result string
	require.NoError(t, store.db.QueryRow(
		`SELECT result FROM outcomes WHERE tx_id = 99`).Scan(&result))
	assert.Equal(t, "invalid_transaction", result)

	// Dispute rows archive no amount.
	var amount any
	require.NoError(t, store.db.QueryRow(
		`SELECT amount FROM outcomes WHERE tx_id = 99`).Scan(&amount))
	assert.Nil(t, amount)
}

func TestSaveSnapshot_ReplacesAccounts(t *testing.T) {
	store := newTestStore(t)

	first := []engine.AccountSnapshot{
		{Client: 1, Available: engine.MustAmount("10"), Held: engine.MustAmount("0"), Total: engine.MustAmount("10")},
		{Client: 2, Available: engine.MustAmount("20"), Held: engine.MustAmount("0"), Total: engine.MustAmount("20")},
	}
	require.NoError(t, store.SaveSnapshot(first))

	second := []engine.AccountSnapshot{
		{Client: 1, Available: engine.MustAmount("-5"), Held: engine.MustAmount("0"), Total: engine.MustAmount("-5"), Locked: true},
	}
	require.NoError(t, store.SaveSnapshot(second))

	var count int
	require.NoError(t, store.db.QueryRow(`SELECT COUNT(*) FROM accounts`).Scan(&count))
	assert.Equal(t, 1, count)

	var available string
	var locked bool
	require.NoError(t, store.db.QueryRow(
		`SELECT available, locked FROM accounts WHERE client = 1`).Scan(&available, &locked))
	assert.Equal(t, "-5.0000", available)
	assert.True(t, locked)
}
