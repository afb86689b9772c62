package ingest_test

import (
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/payments-engine/engine"
	"github.com/warp/payments-engine/ingest"
)

func readAll(t *testing.T, input string) ([]ingest.Record, int) {
	t.Helper()
	r := ingest.NewReader(strings.NewReader(input))
	var records []ingest.Record
	for {
		rec, err := r.Next()
		if err == io.EOF {
			break
		}
		require.NoError(t, err)
		records = append(records, rec)
	}
	return records, r.Dropped()
}

func TestReader_WellFormedInput(t *testing.T) {
	input := "type,client,tx,amount\n" +
		"deposit,1,1,100.0\n" +
		"withdrawal,1,2,50.0\n" +
		"dispute,1,1,\n" +
		"resolve,1,1,\n" +
		"chargeback,1,1,\n"

	records, dropped := readAll(t, input)
	require.Len(t, records, 5)
	assert.Zero(t, dropped)

	assert.Equal(t, "deposit", records[0].Type)
	assert.Equal(t, engine.ClientID(1), records[0].Client)
	assert.Equal(t, engine.TransactionID(1), records[0].Tx)
	require.NotNil(t, records[0].Amount)
	assert.True(t, records[0].Amount.Equal(engine.MustAmount("100.0")))

	assert.Nil(t, records[2].Amount, "dispute rows carry no amount")
}

func TestReader_TrimsWhitespaceAndIgnoresCase(t *testing.T) {
	input := "type, client, tx, amount\n" +
		" Deposit , 1 , 1 , 100.0 \n" +
		" WITHDRAWAL ,1,2, 25.5\n"

	records, dropped := readAll(t, input)
	require.Len(t, records, 2)
	assert.Zero(t, dropped)
	assert.Equal(t, "deposit", records[0].Type)
	assert.Equal(t, "withdrawal", records[1].Type)
	assert.True(t, records[1].Amount.Equal(engine.MustAmount("25.5")))
}

func TestReader_DropsMalformedRows(t *testing.T) {
	input := "type,client,tx,amount\n" +
		"deposit,1,1,100.0\n" +
		"transfer,1,2,10.0\n" + // unknown type
		"deposit,notanumber,3,10.0\n" + // bad client
		"deposit,1,4,abc\n" + // bad amount
		"deposit,70000,5,10.0\n" + // client above uint16 range
		"deposit,2\n" + // too few fields
		"withdrawal,1,6,30.0\n"

	records, dropped := readAll(t, input)
	require.Len(t, records, 2)
	assert.Equal(t, 5, dropped)
	assert.Equal(t, engine.TransactionID(1), records[0].Tx)
	assert.Equal(t, engine.TransactionID(6), records[1].Tx)
}

func TestReader_ShortRowsWithoutAmountColumn(t *testing.T) {
	input := "type,client,tx,amount\n" +
		"deposit,1,1,100.0\n" +
		"dispute,1,1\n"

	records, dropped := readAll(t, input)
	require.Len(t, records, 2)
	assert.Zero(t, dropped)
	assert.Nil(t, records[1].Amount)
}

func TestReader_ReportsDropsToObserver(t *testing.T) {
	r := ingest.NewReader(strings.NewReader(
		"type,client,tx,amount\nbogus,1,1,1.0\ndeposit,1,1,1.0\n"))

	var seen int
	r.OnDrop = func(line int, err error) {
		seen++
		assert.Error(t, err)
	}

	rec, err := r.Next()
	require.NoError(t, err)
	assert.Equal(t, "deposit", rec.Type)
	assert.Equal(t, 1, seen)
}

func TestRecord_Command(t *testing.T) {
	amount := engine.MustAmount("10.0")

	cmd, err := ingest.Record{Type: "deposit", Client: 1, Tx: 2, Amount: &amount}.Command()
	require.NoError(t, err)
	assert.Equal(t, engine.CmdDeposit, cmd.Kind)

	// Deposit and withdrawal without an amount never reach the engine.
	_, err = ingest.Record{Type: "deposit", Client: 1, Tx: 2}.Command()
	assert.ErrorIs(t, err, engine.ErrInvalidAmount)
	_, err = ingest.Record{Type: "withdrawal", Client: 1, Tx: 2}.Command()
	assert.ErrorIs(t, err, engine.ErrInvalidAmount)

	negative := engine.MustAmount("-5")
	_, err = ingest.Record{Type: "withdrawal", Client: 1, Tx: 2, Amount: &negative}.Command()
	assert.ErrorIs(t, err, engine.ErrInvalidAmount)

	cmd, err = ingest.Record{Type: "chargeback", Client: 3, Tx: 9}.Command()
	require.NoError(t, err)
	assert.Equal(t, engine.CmdChargeback, cmd.Kind)
	assert.Equal(t, engine.ClientID(3), cmd.Client)
}
