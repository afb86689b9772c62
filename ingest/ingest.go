/*
Package ingest reads the delimited transaction record format.

PURPOSE:
  Parses one input event at a time into a Record and converts it into a
  validated engine Command. The reader is deliberately lenient: rows that
  fail to parse into the expected shape are dropped (counted, never
  surfaced as errors), so the engine only ever sees well-formed records.

INPUT FORMAT:
  CSV with header "type,client,tx,amount". The type is case-insensitive,
  all fields are whitespace-trimmed, client fits the unsigned 16-bit range,
  tx the unsigned 32-bit range. The amount column is required for deposits
  and withdrawals and absent (or empty) for dispute/resolve/chargeback.

SEE ALSO:
  - engine/command.go: Validating command constructors
  - export: The matching output adapter
*/
package ingest

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/warp/payments-engine/engine"
)

// Record is one parsed input row, before command validation.
type Record struct {
	Type   string
	Client engine.ClientID
	Tx     engine.TransactionID
	Amount *engine.Amount // nil when the column is absent or empty
}

// Reader streams records from CSV input, skipping malformed rows.
type Reader struct {
	csv     *csv.Reader
	header  bool
	dropped int

	// OnDrop, if set, observes each dropped row with the reason.
	OnDrop func(line int, err error)
}

func NewReader(r io.Reader) *Reader {
	cr := csv.NewReader(r)
	// Rows legitimately omit the trailing amount field.
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	return &Reader{csv: cr}
}

// Next returns the next well-formed record. Malformed rows are dropped and
// counted, never returned as errors. Next returns io.EOF at end of input;
// any other error is an unrecoverable read failure.
func (r *Reader) Next() (Record, error) {
	for {
		row, err := r.csv.Read()
		if err == io.EOF {
			return Record{}, io.EOF
		}
		var parseErr *csv.ParseError
		if errors.As(err, &parseErr) {
			r.drop(parseErr.Line, err)
			continue
		}
		if err != nil {
			return Record{}, err
		}

		if !r.header {
			// First row is the header.
			r.header = true
			continue
		}

		rec, perr := parseRow(row)
		if perr != nil {
			line, _ := r.csv.FieldPos(0)
			r.drop(line, perr)
			continue
		}
		return rec, nil
	}
}

// Dropped reports how many rows were discarded so far.
func (r *Reader) Dropped() int { return r.dropped }

func (r *Reader) drop(line int, err error) {
	r.dropped++
	if r.OnDrop != nil {
		r.OnDrop(line, err)
	}
}

func parseRow(row []string) (Record, error) {
	if len(row) < 3 {
		return Record{}, fmt.Errorf("expected at least 3 fields, got %d", len(row))
	}

	typ := strings.ToLower(strings.TrimSpace(row[0]))
	switch typ {
	case "deposit", "withdrawal", "dispute", "resolve", "chargeback":
	default:
		return Record{}, fmt.Errorf("unknown record type %q", row[0])
	}

	client, err := strconv.ParseUint(strings.TrimSpace(row[1]), 10, 16)
	if err != nil {
		return Record{}, fmt.Errorf("invalid client id %q: %w", row[1], err)
	}
	tx, err := strconv.ParseUint(strings.TrimSpace(row[2]), 10, 32)
	if err != nil {
		return Record{}, fmt.Errorf("invalid transaction id %q: %w", row[2], err)
	}

	rec := Record{
		Type:   typ,
		Client: engine.ClientID(client),
		Tx:     engine.TransactionID(tx),
	}

	if len(row) >= 4 {
		raw := strings.TrimSpace(row[3])
		if raw != "" {
			amount, err := engine.ParseAmount(raw)
			if err != nil {
				return Record{}, fmt.Errorf("invalid amount %q: %w", row[3], err)
			}
			rec.Amount = &amount
		}
	}
	return rec, nil
}

// Command converts a record into a validated engine command. Deposits and
// withdrawals without a positive amount are rejected here, before they
// reach the engine.
func (r Record) Command() (engine.Command, error) {
	switch r.Type {
	case "deposit":
		if r.Amount == nil {
			return engine.Command{}, engine.ErrInvalidAmount
		}
		return engine.NewDeposit(r.Client, r.Tx, *r.Amount)
	case "withdrawal":
		if r.Amount == nil {
			return engine.Command{}, engine.ErrInvalidAmount
		}
		return engine.NewWithdrawal(r.Client, r.Tx, *r.Amount)
	case "dispute":
		return engine.NewDispute(r.Client, r.Tx), nil
	case "resolve":
		return engine.NewResolve(r.Client, r.Tx), nil
	case "chargeback":
		return engine.NewChargeback(r.Client, r.Tx), nil
	default:
		return engine.Command{}, fmt.Errorf("unknown record type %q", r.Type)
	}
}
