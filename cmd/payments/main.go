/*
main.go - Application entry point

PURPOSE:
  Replays a CSV ledger of monetary events into final per-client account
  balances and writes the account table to stdout. Logs go to stderr so
  the table stays pipeable.

USAGE:
  payments [flags] <input.csv>

FLAGS:
  -log-level   debug|info|warn|error (default: warn)
  -audit       SQLite path for the write-only outcome archive (optional)
  -serve       address for the read-only report API, e.g. ":8080";
               processing completes before the listener starts (optional)

EXIT BEHAVIOR:
  Only an unreadable input stream is fatal. Rejected commands and
  malformed rows are logged and skipped.

EXAMPLES:
  # Plain replay
  payments transactions.csv > accounts.csv

  # Keep an audit archive and serve the result
  payments -audit=./audit.db -serve=:8080 transactions.csv

SEE ALSO:
  - ledger/runner.go: The warn-and-continue processing loop
  - api/server.go: Report API routes
*/
package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/warp/payments-engine/api"
	"github.com/warp/payments-engine/audit/sqlite"
	"github.com/warp/payments-engine/engine"
	"github.com/warp/payments-engine/export"
	"github.com/warp/payments-engine/ledger"
	"github.com/warp/payments-engine/logging"
	"github.com/warp/payments-engine/metrics"
)

func main() {
	logLevel := flag.String("log-level", "warn", "log level (debug, info, warn, error)")
	auditPath := flag.String("audit", "", "SQLite path for the write-only audit archive")
	serveAddr := flag.String("serve", "", "serve the report API on this address after processing")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintf(os.Stderr, "usage: %s [flags] <input.csv>\n", os.Args[0])
		flag.PrintDefaults()
		os.Exit(2)
	}

	logger, err := logging.New(*logLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	input, err := os.Open(flag.Arg(0))
	if err != nil {
		logger.Fatal("unable to open input", zap.Error(err))
	}
	defer input.Close()

	collector := metrics.NewCollector("payments")
	eng := engine.New()
	runner := &ledger.Runner{
		Engine:  eng,
		Log:     logger,
		Metrics: collector,
	}

	var archive *sqlite.Store
	if *auditPath != "" {
		archive, err = sqlite.Open(*auditPath)
		if err != nil {
			logger.Fatal("unable to open audit archive", zap.Error(err))
		}
		defer archive.Close()
		runner.Audit = archive
	}

	summary, err := runner.Run(input)
	if err != nil {
		logger.Fatal("unable to read input", zap.Error(err))
	}
	logger.Info("replay complete",
		zap.Int("processed", summary.Processed),
		zap.Int("failed", summary.Failed),
		zap.Int("dropped", summary.Dropped))

	if archive != nil {
		if err := archive.SaveSnapshot(eng.Snapshot()); err != nil {
			logger.Warn("unable to archive snapshot", zap.Error(err))
		}
	}

	if err := export.Write(os.Stdout, eng.Snapshot()); err != nil {
		logger.Warn("unable to write csv", zap.Error(err))
	}

	if *serveAddr != "" {
		serve(*serveAddr, eng, summary, collector, logger)
	}
}

// serve exposes the final snapshot read-only until interrupted.
func serve(addr string, eng *engine.Engine, summary ledger.Summary, collector *metrics.Collector, logger *zap.Logger) {
	handler := api.NewHandler(eng, summary)
	metricsHandler := promhttp.HandlerFor(collector.Registry(), promhttp.HandlerOpts{})
	router := api.NewRouter(handler, metricsHandler)

	server := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("report server listening", zap.String("addr", addr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down report server")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Fatal("server forced to shutdown", zap.Error(err))
	}
}
