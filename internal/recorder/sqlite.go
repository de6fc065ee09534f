package recorder

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"ChartPulse/internal/logger"
	"ChartPulse/internal/model"

	"github.com/shopspring/decimal"
	_ "modernc.org/sqlite"
)

// SQLiteRecorder persists history to a SQLite database.
type SQLiteRecorder struct {
	db  *sql.DB
	mu  sync.Mutex
	log *logger.Logger
}

// NewSQLiteRecorder opens (or creates) the SQLite database and runs migrations.
func NewSQLiteRecorder(dbPath string, log *logger.Logger) (*SQLiteRecorder, error) {
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create db dir: %w", err)
		}
	}
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL lets readers inspect the file while the service writes.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	r := &SQLiteRecorder{db: db, log: log}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Info("sqlite recorder opened", logger.String("path", dbPath))
	return r, nil
}

func (r *SQLiteRecorder) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS paper_trades (
			id          INTEGER PRIMARY KEY AUTOINCREMENT,
			trade_id    TEXT NOT NULL,
			timestamp   INTEGER NOT NULL,
			action      TEXT NOT NULL,
			symbol      TEXT NOT NULL,
			bar_date    TEXT NOT NULL,
			price       TEXT NOT NULL,
			quantity    TEXT NOT NULL,
			profit      TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_trades_ts ON paper_trades(timestamp)`,

		`CREATE TABLE IF NOT EXISTS fetch_log (
			id          INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp   INTEGER NOT NULL,
			symbol      TEXT NOT NULL,
			provider    TEXT NOT NULL,
			bars        INTEGER,
			latency_ms  INTEGER,
			error       TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_fetch_ts ON fetch_log(timestamp)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

func stamp(t time.Time) int64 {
	if t.IsZero() {
		t = time.Now()
	}
	return t.UnixMilli()
}

func (r *SQLiteRecorder) RecordTrade(evt *TradeEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, err := r.db.Exec(`INSERT INTO paper_trades
		(trade_id, timestamp, action, symbol, bar_date, price, quantity, profit)
		VALUES (?,?,?,?,?,?,?,?)`,
		evt.ID, stamp(evt.At), string(evt.Action), evt.Symbol, evt.Date,
		evt.Price.String(), evt.Quantity.String(), evt.Profit.String(),
	)
	return err
}

func (r *SQLiteRecorder) RecordFetch(evt *FetchEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, err := r.db.Exec(`INSERT INTO fetch_log
		(timestamp, symbol, provider, bars, latency_ms, error)
		VALUES (?,?,?,?,?,?)`,
		stamp(evt.At), evt.Symbol, evt.Provider, evt.Bars, evt.Latency.Milliseconds(), evt.Err,
	)
	return err
}

// ListTrades returns the most recent trade events, newest first.
func (r *SQLiteRecorder) ListTrades(limit int) ([]TradeEvent, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := r.db.Query(`SELECT trade_id, timestamp, action, symbol, bar_date, price, quantity, profit
		FROM paper_trades ORDER BY timestamp DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query trades: %w", err)
	}
	defer rows.Close()

	var out []TradeEvent
	for rows.Next() {
		var (
			evt                TradeEvent
			ts                 int64
			action             string
			price, qty, profit string
		)
		if err := rows.Scan(&evt.ID, &ts, &action, &evt.Symbol, &evt.Date, &price, &qty, &profit); err != nil {
			return nil, fmt.Errorf("scan trade: %w", err)
		}
		evt.At = time.UnixMilli(ts)
		evt.Action = model.TradeAction(action)
		if evt.Price, err = decimal.NewFromString(price); err != nil {
			return nil, fmt.Errorf("parse price: %w", err)
		}
		if evt.Quantity, err = decimal.NewFromString(qty); err != nil {
			return nil, fmt.Errorf("parse quantity: %w", err)
		}
		if evt.Profit, err = decimal.NewFromString(profit); err != nil {
			return nil, fmt.Errorf("parse profit: %w", err)
		}
		out = append(out, evt)
	}
	return out, rows.Err()
}

func (r *SQLiteRecorder) Close() error {
	r.log.Info("closing sqlite recorder")
	return r.db.Close()
}
