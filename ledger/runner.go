/*
Package ledger drives a full replay of an input stream through the engine.

PURPOSE:
  The Runner is the warn-and-continue loop at the heart of the process
  boundary: read a record, convert it to a command, apply it, log any
  rejection, move on. Only an unreadable input stream aborts the run.

FAILURE POLICY:
  - Malformed rows: dropped by ingest, counted, logged at debug level
  - Invalid commands (e.g. deposit without amount): warned, skipped
  - Engine rejections: warned with a stable reason label, skipped
  - Stream read errors: fatal, returned to the caller

SEE ALSO:
  - ingest: Record parsing and drop semantics
  - engine: Apply and the failure taxonomy
*/
package ledger

import (
	"io"

	"go.uber.org/zap"

	"github.com/warp/payments-engine/engine"
	"github.com/warp/payments-engine/ingest"
	"github.com/warp/payments-engine/metrics"
)

// Sink observes the outcome of every converted command. Used by the
// optional audit archive; sink errors are logged, never fatal.
type Sink interface {
	RecordOutcome(cmd engine.Command, applyErr error) error
}

// Summary reports what a run did.
type Summary struct {
	Processed int // commands applied successfully
	Failed    int // commands rejected (conversion or engine)
	Dropped   int // malformed rows discarded during ingest
}

// Runner replays one input stream into an engine.
type Runner struct {
	Engine  *engine.Engine
	Log     *zap.Logger        // defaults to a no-op logger
	Metrics *metrics.Collector // optional
	Audit   Sink               // optional
}

// Run consumes the stream to the end, applying commands strictly in input
// order. The returned error is non-nil only for an unreadable stream;
// per-command failures are summarized, logged and skipped.
func (r *Runner) Run(input io.Reader) (Summary, error) {
	log := r.Log
	if log == nil {
		log = zap.NewNop()
	}

	reader := ingest.NewReader(input)
	reader.OnDrop = func(line int, err error) {
		log.Debug("dropping malformed record",
			zap.Int("line", line),
			zap.Error(err))
	}

	var sum Summary
	for {
		rec, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return sum, err
		}

		cmd, err := rec.Command()
		if err != nil {
			sum.Failed++
			r.Metrics.CommandFailed(rec.Type, engine.FailureReason(err))
			log.Warn("unable to parse transaction",
				zap.String("kind", rec.Type),
				zap.Uint16("client", uint16(rec.Client)),
				zap.Uint32("tx", uint32(rec.Tx)),
				zap.Error(err))
			continue
		}

		applyErr := r.Engine.Apply(cmd)
		if r.Audit != nil {
			if err := r.Audit.RecordOutcome(cmd, applyErr); err != nil {
				log.Warn("unable to archive outcome", zap.Error(err))
			}
		}
		if applyErr != nil {
			sum.Failed++
			r.Metrics.CommandFailed(string(cmd.Kind), engine.FailureReason(applyErr))
			log.Warn("unable to process transaction",
				zap.String("kind", string(cmd.Kind)),
				zap.Uint16("client", uint16(cmd.Client)),
				zap.Uint32("tx", uint32(cmd.Tx)),
				zap.String("reason", engine.FailureReason(applyErr)),
				zap.Error(applyErr))
			continue
		}

		sum.Processed++
		r.Metrics.CommandProcessed(string(cmd.Kind))
	}

	sum.Dropped = reader.Dropped()
	r.Metrics.RecordsDropped(sum.Dropped)
	r.Metrics.SetAccounts(len(r.Engine.Snapshot()))
	return sum, nil
}
