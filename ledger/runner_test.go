package ledger_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/warp/payments-engine/engine"
	"github.com/warp/payments-engine/export"
	"github.com/warp/payments-engine/ledger"
	"github.com/warp/payments-engine/metrics"
)

type recordingSink struct {
	outcomes []string
}

func (s *recordingSink) RecordOutcome(cmd engine.Command, applyErr error) error {
	result := "ok"
	if applyErr != nil {
		result = engine.FailureReason(applyErr)
	}
	s.outcomes = append(s.outcomes, string(cmd.Kind)+":"+result)
	return nil
}

func TestRunner_EndToEnd(t *testing.T) {
	// GIVEN: The full command vocabulary plus a malformed row and an
	//        engine-rejected withdrawal
	// WHEN: Running the stream to the end
	// THEN: The rendered table matches the replayed state exactly

	input := "type,client,tx,amount\n" +
		"deposit,1,1,100.0\n" +
		"deposit,2,2,75.5\n" +
		"withdrawal,1,3,50.0\n" +
		"withdrawal,2,4,999.0\n" + // insufficient funds: rejected
		"garbage,x,y,z\n" + // malformed: dropped
		"dispute,1,1,\n" +
		"chargeback,1,1,\n"

	eng := engine.New()
	runner := &ledger.Runner{
		Engine:  eng,
		Log:     zap.NewNop(),
		Metrics: metrics.NewCollector("payments_test"),
	}

	sum, err := runner.Run(strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, 5, sum.Processed)
	assert.Equal(t, 1, sum.Failed)
	assert.Equal(t, 1, sum.Dropped)

	var buf bytes.Buffer
	require.NoError(t, export.Write(&buf, eng.Snapshot()))

	want := "client,available,held,total,locked\n" +
		"1,-50.0000,0.0000,-50.0000,true\n" +
		"2,75.5000,0.0000,75.5000,false\n"
	assert.Equal(t, want, buf.String())
}

func TestRunner_FailuresDoNotStopProcessing(t *testing.T) {
	input := "type,client,tx,amount\n" +
		"withdrawal,1,1,10.0\n" + // missing account
		"dispute,1,99,\n" + // invalid transaction
		"deposit,1,2,20.0\n"

	eng := engine.New()
	runner := &ledger.Runner{Engine: eng}

	sum, err := runner.Run(strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, 1, sum.Processed)
	assert.Equal(t, 2, sum.Failed)

	snap, ok := eng.Account(1)
	require.True(t, ok)
	assert.True(t, snap.Available.Equal(engine.MustAmount("20.0")))
}

func TestRunner_AuditSinkSeesEveryOutcome(t *testing.T) {
	input := "type,client,tx,amount\n" +
		"deposit,1,1,10.0\n" +
		"withdrawal,1,2,99.0\n"

	sink := &recordingSink{}
	runner := &ledger.Runner{Engine: engine.New(), Audit: sink}

	_, err := runner.Run(strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, []string{"deposit:ok", "withdrawal:insufficient_funds"}, sink.outcomes)
}

func TestRunner_EmptyInput(t *testing.T) {
	runner := &ledger.Runner{Engine: engine.New()}
	sum, err := runner.Run(strings.NewReader("type,client,tx,amount\n"))
	require.NoError(t, err)
	assert.Zero(t, sum.Processed)
	assert.Zero(t, sum.Failed)
	assert.Zero(t, sum.Dropped)
}
