/*
Package sqlite provides an optional SQLite-backed audit archive.

PURPOSE:
  Records the outcome of every applied command and the final account
  snapshot into a database for offline inspection (e.g. "which commands
  against client 7 were rejected, and why").

WRITE-ONLY CONTRACT:
  The engine never reads from the archive. Replay state is rebuilt from
  the input stream on every run; the archive is an export artifact, like
  the CSV on stdout. Outcome rows are append-only.

KEY TABLES:
  outcomes: one row per converted command, in processing order, with the
            result ("ok" or a stable failure reason)
  accounts: the final snapshot, replaced wholesale at the end of a run

USAGE:
  store, err := sqlite.Open("./audit.db")
  if err != nil { ... }
  defer store.Close()

  runner.Audit = store            // receives per-command outcomes
  store.SaveSnapshot(eng.Snapshot())
*/
package sqlite

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/warp/payments-engine/engine"
)

// Store archives processing outcomes. Implements ledger.Sink.
type Store struct {
	db *sql.DB
}

// Open creates or opens an archive at the given path.
// Use ":memory:" for an in-memory database.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open audit database: %w", err)
	}

	// SQLite allows a single writer; one connection also keeps ":memory:"
	// databases from splitting across pooled connections.
	db.SetMaxOpenConns(1)

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate audit database: %w", err)
	}
	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	schema := `
	-- One row per converted command, in processing order (append-only)
	CREATE TABLE IF NOT EXISTS outcomes (
		seq INTEGER PRIMARY KEY AUTOINCREMENT,
		kind TEXT NOT NULL,
		client INTEGER NOT NULL,
		tx_id INTEGER NOT NULL,
		amount TEXT,
		result TEXT NOT NULL,
		processed_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_outcomes_client ON outcomes(client);
	CREATE INDEX IF NOT EXISTS idx_outcomes_tx ON outcomes(tx_id);
	CREATE INDEX IF NOT EXISTS idx_outcomes_result ON outcomes(result);

	-- Final snapshot, replaced at the end of each run
	CREATE TABLE IF NOT EXISTS accounts (
		client INTEGER PRIMARY KEY,
		available TEXT NOT NULL,
		held TEXT NOT NULL,
		total TEXT NOT NULL,
		locked INTEGER NOT NULL
	);
	`
	_, err := s.db.Exec(schema)
	return err
}

// RecordOutcome archives one command outcome. applyErr nil means the
// command was applied; otherwise the stable failure reason is stored.
func (s *Store) RecordOutcome(cmd engine.Command, applyErr error) error {
	result := "ok"
	if applyErr != nil {
		result = engine.FailureReason(applyErr)
	}

	var amount any
	if cmd.Kind == engine.CmdDeposit || cmd.Kind == engine.CmdWithdrawal {
		amount = cmd.Amount.String()
	}

	_, err := s.db.Exec(`
		INSERT INTO outcomes (kind, client, tx_id, amount, result, processed_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		string(cmd.Kind),
		uint16(cmd.Client),
		uint32(cmd.Tx),
		amount,
		result,
		time.Now().UTC().Format(time.RFC3339Nano),
	)
	return err
}

// SaveSnapshot replaces the archived account table with the final snapshot.
func (s *Store) SaveSnapshot(accounts []engine.AccountSnapshot) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM accounts`); err != nil {
		return err
	}
	for _, acct := range accounts {
		_, err := tx.Exec(`
			INSERT INTO accounts (client, available, held, total, locked)
			VALUES (?, ?, ?, ?, ?)`,
			uint16(acct.Client),
			acct.Available.StringFixed4(),
			acct.Held.StringFixed4(),
			acct.Total.StringFixed4(),
			acct.Locked,
		)
		if err != nil {
			return err
		}
	}
	return tx.Commit()
}
