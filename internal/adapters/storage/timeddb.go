package storage

import (
	"context"
	"database/sql"
	"log/slog"
	"strings"
	"time"

	"treetroopers/internal/adapters/http/perf"
)

// SQLDB is the database interface used by the SQLite stores.
// Both *sql.DB and *TimedDB satisfy this interface.
type SQLDB interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	BeginTx(ctx context.Context, opts *sql.TxOptions) (*sql.Tx, error)
}

var _ SQLDB = (*sql.DB)(nil)

// DefaultSlowQuery is the threshold above which statements are logged at warn level.
const DefaultSlowQuery = 50 * time.Millisecond

// TimedDB wraps a *sql.DB to log slow statements and feed the perf collector.
type TimedDB struct {
	db        *sql.DB
	collector *perf.Collector
	slow      time.Duration
}

var _ SQLDB = (*TimedDB)(nil)

// NewTimedDB wraps db with timing instrumentation.
// PRE: db is a valid database connection; collector may be nil
// POST: Returns a TimedDB; slow <= 0 selects DefaultSlowQuery
func NewTimedDB(db *sql.DB, collector *perf.Collector, slow time.Duration) *TimedDB {
	if slow <= 0 {
		slow = DefaultSlowQuery
	}
	return &TimedDB{db: db, collector: collector, slow: slow}
}

// RawDB returns the underlying *sql.DB (needed for migrations and pool config).
func (t *TimedDB) RawDB() *sql.DB {
	return t.db
}

// Close closes the underlying database.
func (t *TimedDB) Close() error {
	return t.db.Close()
}

// ExecContext runs a statement and records its timing.
func (t *TimedDB) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	start := time.Now()
	res, err := t.db.ExecContext(ctx, query, args...)
	t.observe(statementLabel(query), start, err)
	return res, err
}

// QueryContext runs a query and records its timing.
func (t *TimedDB) QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	start := time.Now()
	rows, err := t.db.QueryContext(ctx, query, args...)
	t.observe(statementLabel(query), start, err)
	return rows, err
}

// QueryRowContext runs a single-row query and records its timing.
// Scan errors surface later and are not logged here.
func (t *TimedDB) QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row {
	start := time.Now()
	row := t.db.QueryRowContext(ctx, query, args...)
	t.observe(statementLabel(query), start, nil)
	return row
}

// BeginTx starts a transaction and records how long acquiring it took.
func (t *TimedDB) BeginTx(ctx context.Context, opts *sql.TxOptions) (*sql.Tx, error) {
	start := time.Now()
	tx, err := t.db.BeginTx(ctx, opts)
	t.observe("begin", start, err)
	return tx, err
}

func (t *TimedDB) observe(label string, start time.Time, err error) {
	elapsed := time.Since(start)
	switch {
	case err != nil:
		slog.Warn("query_failed", "statement", label, "duration_ms", elapsed.Milliseconds(), "error", err)
	case elapsed >= t.slow:
		slog.Warn("slow_query", "statement", label, "duration_ms", elapsed.Milliseconds())
	default:
		slog.Debug("query", "statement", label, "duration_ms", elapsed.Milliseconds())
	}
	if t.collector != nil {
		t.collector.Record(perf.Entry{Kind: perf.KindQuery, Label: label, Duration: elapsed, At: start})
	}
}

// statementLabel reduces a SQL statement to "<verb> <table>" so samples
// group by shape rather than by argument values.
func statementLabel(query string) string {
	fields := strings.Fields(strings.ToLower(query))
	if len(fields) == 0 {
		return "empty"
	}
	verb := fields[0]
	marker := ""
	switch verb {
	case "select", "delete":
		marker = "from"
	case "insert":
		marker = "into"
	case "update":
		if len(fields) > 1 {
			return verb + " " + fields[1]
		}
	}
	for i, f := range fields {
		if f == marker && i+1 < len(fields) {
			table, _, _ := strings.Cut(fields[i+1], "(")
			return verb + " " + strings.TrimRight(table, ";,")
		}
	}
	return verb
}
