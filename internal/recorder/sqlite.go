package recorder

import (
	"database/sql"
	"fmt"
	"sync"

	"github.com/rs/zerolog"
	_ "modernc.org/sqlite"

	"StockSandbox/internal/model"
)

// SQLiteRecorder journals runs to a SQLite database.
type SQLiteRecorder struct {
	db     *sql.DB
	mu     sync.Mutex
	logger zerolog.Logger
}

// NewSQLiteRecorder opens (or creates) the SQLite database and runs migrations.
func NewSQLiteRecorder(dbPath string, logger zerolog.Logger) (*SQLiteRecorder, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL so dashboards can read while runs are written.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	r := &SQLiteRecorder{db: db, logger: logger.With().Str("component", "recorder").Logger()}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	r.logger.Info().Str("path", dbPath).Msg("sqlite recorder opened")
	return r, nil
}

func (r *SQLiteRecorder) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS series_runs (
			id              TEXT PRIMARY KEY,
			timestamp       INTEGER NOT NULL,
			origin          TEXT,
			symbol          TEXT NOT NULL,
			period          TEXT NOT NULL,
			source          TEXT,
			point_count     INTEGER,
			first_date      TEXT,
			last_date       TEXT,
			last_price      REAL,
			change_abs      REAL,
			change_pct      REAL,
			min_price       REAL,
			max_price       REAL,
			last_volume     INTEGER,
			sma10           REAL,
			sma30           REAL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_runs_ts ON series_runs(timestamp)`,
		`CREATE INDEX IF NOT EXISTS idx_runs_symbol ON series_runs(symbol)`,

		`CREATE TABLE IF NOT EXISTS series_points (
			run_id  TEXT NOT NULL,
			day     TEXT NOT NULL,
			price   REAL,
			volume  INTEGER,
			sma10   REAL,
			sma30   REAL,
			PRIMARY KEY (run_id, day)
		)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

func (r *SQLiteRecorder) RecordRun(run *SeriesRun) error {
	if run == nil || run.Result == nil {
		return fmt.Errorf("record run: empty run")
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	res := run.Result
	st := res.Stats
	var firstDate, lastDate string
	if n := len(res.Points); n > 0 {
		firstDate = res.Points[0].Date.Format(model.DateLayout)
		lastDate = res.Points[n-1].Date.Format(model.DateLayout)
	}

	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`INSERT INTO series_runs
		(id, timestamp, origin, symbol, period, source, point_count, first_date, last_date,
		 last_price, change_abs, change_pct, min_price, max_price, last_volume, sma10, sma30)
		VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)`,
		run.ID, unixOrZero(res.GeneratedAt), string(run.Trigger), res.Symbol, res.Window.String(), res.Source,
		len(res.Points), firstDate, lastDate,
		st.LastPrice, st.ChangeAbsolute, st.ChangePercent, st.MinPrice, st.MaxPrice, st.LastVolume,
		nullable(st.SMA10), nullable(st.SMA30),
	); err != nil {
		return fmt.Errorf("insert run: %w", err)
	}

	stmt, err := tx.Prepare(`INSERT INTO series_points (run_id, day, price, volume, sma10, sma30) VALUES (?,?,?,?,?,?)`)
	if err != nil {
		return fmt.Errorf("prepare points: %w", err)
	}
	defer stmt.Close()
	for i, p := range res.Points {
		var avg model.RollingAverage
		if i < len(res.Rolling) {
			avg = res.Rolling[i]
		}
		if _, err := stmt.Exec(run.ID, p.Date.Format(model.DateLayout), p.Price, p.Volume,
			nullable(avg.SMA10), nullable(avg.SMA30)); err != nil {
			return fmt.Errorf("insert point %d: %w", i, err)
		}
	}

	return tx.Commit()
}

func (r *SQLiteRecorder) Close() error {
	r.logger.Info().Msg("closing sqlite recorder")
	return r.db.Close()
}

func nullable(v *float64) sql.NullFloat64 {
	if v == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *v, Valid: true}
}
