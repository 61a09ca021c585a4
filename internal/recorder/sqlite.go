package recorder

import (
	"database/sql"
	"fmt"
	"log"
	"sync"

	_ "modernc.org/sqlite"

	"CurveWatch/internal/model"
)

// SQLiteRecorder persists curve history to a SQLite database.
type SQLiteRecorder struct {
	db *sql.DB
	mu sync.Mutex
}

// NewSQLiteRecorder opens (or creates) the SQLite database and runs migrations.
func NewSQLiteRecorder(dbPath string) (*SQLiteRecorder, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL mode so dashboards can read while the bot writes.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	r := &SQLiteRecorder{db: db}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Printf("[INFO] sqlite recorder opened: %s", dbPath)
	return r, nil
}

func (r *SQLiteRecorder) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS curve_snapshots (
			date         TEXT PRIMARY KEY,
			fetched_at   INTEGER NOT NULL,
			source       TEXT,
			tenor_count  INTEGER,
			failures     INTEGER,
			yield_10y    REAL,
			steepness_bp REAL,
			avg_spot     REAL,
			avg_forward  REAL,
			status       TEXT
		)`,

		`CREATE TABLE IF NOT EXISTS curve_points (
			id             INTEGER PRIMARY KEY AUTOINCREMENT,
			date           TEXT NOT NULL,
			tenor          REAL NOT NULL,
			yield          REAL,
			spot_rate      REAL,
			spot_status    TEXT,
			forward_rate   REAL,
			forward_status TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_points_date ON curve_points(date)`,

		`CREATE TABLE IF NOT EXISTS bond_quotes (
			id     INTEGER PRIMARY KEY AUTOINCREMENT,
			date   TEXT NOT NULL,
			type   TEXT,
			series TEXT,
			price  REAL,
			yield  REAL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_bonds_date ON bond_quotes(date)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

// RecordCurve stores one curve date; re-recording a date replaces it.
func (r *SQLiteRecorder) RecordCurve(rec *CurveRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	m := rec.Metrics
	if m == nil {
		m = &model.KeyMetrics{}
	}
	if _, err := tx.Exec(`INSERT OR REPLACE INTO curve_snapshots
		(date, fetched_at, source, tenor_count, failures,
		 yield_10y, steepness_bp, avg_spot, avg_forward, status)
		VALUES (?,?,?,?,?,?,?,?,?,?)`,
		rec.Date, rec.FetchedAt.Unix(), rec.Source,
		len(rec.Curve.Points), rec.Curve.Failures,
		m.Yield10Y, m.SteepnessBp, m.AvgSpot, m.AvgForward,
		rec.Curve.Status(),
	); err != nil {
		return fmt.Errorf("insert snapshot: %w", err)
	}

	if _, err := tx.Exec(`DELETE FROM curve_points WHERE date = ?`, rec.Date); err != nil {
		return fmt.Errorf("clear points: %w", err)
	}
	for _, p := range rec.Curve.Points {
		if _, err := tx.Exec(`INSERT INTO curve_points
			(date, tenor, yield, spot_rate, spot_status, forward_rate, forward_status)
			VALUES (?,?,?,?,?,?,?)`,
			rec.Date, p.Tenor, p.Yield,
			nullableRate(p.Spot), string(p.Spot.Status),
			nullableRate(p.Forward), string(p.Forward.Status),
		); err != nil {
			return fmt.Errorf("insert point: %w", err)
		}
	}

	if _, err := tx.Exec(`DELETE FROM bond_quotes WHERE date = ?`, rec.Date); err != nil {
		return fmt.Errorf("clear bonds: %w", err)
	}
	for _, b := range rec.Bonds {
		if _, err := tx.Exec(`INSERT INTO bond_quotes (date, type, series, price, yield)
			VALUES (?,?,?,?,?)`,
			rec.Date, b.Type, b.Series, b.Price, b.Yield,
		); err != nil {
			return fmt.Errorf("insert bond: %w", err)
		}
	}

	return tx.Commit()
}

// RecentCurves returns the most recent n curve dates, newest first.
func (r *SQLiteRecorder) RecentCurves(n int) ([]CurveSummary, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rows, err := r.db.Query(`SELECT date, tenor_count, failures, yield_10y, steepness_bp, status
		FROM curve_snapshots ORDER BY date DESC LIMIT ?`, n)
	if err != nil {
		return nil, fmt.Errorf("query snapshots: %w", err)
	}
	defer rows.Close()

	var sums []CurveSummary
	for rows.Next() {
		var s CurveSummary
		if err := rows.Scan(&s.Date, &s.TenorCount, &s.Failures,
			&s.Yield10Y, &s.SteepnessBp, &s.Status); err != nil {
			return nil, fmt.Errorf("scan snapshot: %w", err)
		}
		sums = append(sums, s)
	}
	return sums, rows.Err()
}

func (r *SQLiteRecorder) Close() error {
	log.Println("[INFO] closing sqlite recorder")
	return r.db.Close()
}

// nullableRate maps a rate without a usable value to SQL NULL.
func nullableRate(rate model.Rate) interface{} {
	if !rate.OK() {
		return nil
	}
	return rate.Value
}
