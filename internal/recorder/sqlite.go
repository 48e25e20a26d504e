package recorder

import (
	"database/sql"
	"fmt"
	"log"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"StockCompass/internal/model"
)

// SQLiteRecorder persists recommendation runs to a SQLite database.
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

	// WAL mode so dashboards can read while the watcher writes.
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
		`CREATE TABLE IF NOT EXISTS prediction_runs (
			id           INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp    INTEGER NOT NULL,
			risk_score   INTEGER,
			time_horizon TEXT,
			top_k        INTEGER,
			realtime     INTEGER
		)`,
		`CREATE INDEX IF NOT EXISTS idx_runs_ts ON prediction_runs(timestamp)`,

		`CREATE TABLE IF NOT EXISTS recommendations (
			id                     INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id                 INTEGER NOT NULL REFERENCES prediction_runs(id),
			ticker                 TEXT NOT NULL,
			company                TEXT,
			action                 TEXT,
			confidence             INTEGER,
			confidence_explanation TEXT,
			reason                 TEXT,
			potential_return       TEXT,
			risk_level             TEXT,
			time_horizon           TEXT,
			price                  REAL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_recs_run ON recommendations(run_id)`,
	}
	for _, stmt := range stmts {
		if _, err := r.db.Exec(stmt); err != nil {
			return fmt.Errorf("exec migration: %w", err)
		}
	}
	return nil
}

// RecordRun writes the run header and its recommendations in one transaction.
func (r *SQLiteRecorder) RecordRun(run *RunRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	at := run.At
	if at.IsZero() {
		at = time.Now()
	}
	res, err := tx.Exec(
		`INSERT INTO prediction_runs (timestamp, risk_score, time_horizon, top_k, realtime) VALUES (?, ?, ?, ?, ?)`,
		at.Unix(), run.RiskScore, run.TimeHorizon, run.TopK, boolToInt(run.Realtime),
	)
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}
	runID, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("run id: %w", err)
	}

	for _, rec := range run.Recommendations {
		if _, err := tx.Exec(
			`INSERT INTO recommendations
				(run_id, ticker, company, action, confidence, confidence_explanation, reason, potential_return, risk_level, time_horizon, price)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			runID, rec.Ticker, rec.Company, string(rec.Action), rec.Confidence,
			rec.ConfidenceExplanation, rec.Reason, rec.PotentialReturn,
			string(rec.RiskLevel), rec.TimeHorizon, rec.Price,
		); err != nil {
			return fmt.Errorf("insert recommendation %s: %w", rec.Ticker, err)
		}
	}
	return tx.Commit()
}

// LatestRun loads the most recent run with its recommendations, or nil if
// nothing has been recorded yet.
func (r *SQLiteRecorder) LatestRun() (*RunRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var (
		runID int64
		ts    int64
		run   RunRecord
		rt    int
	)
	err := r.db.QueryRow(
		`SELECT id, timestamp, risk_score, time_horizon, top_k, realtime
		 FROM prediction_runs ORDER BY id DESC LIMIT 1`,
	).Scan(&runID, &ts, &run.RiskScore, &run.TimeHorizon, &run.TopK, &rt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query latest run: %w", err)
	}
	run.At = time.Unix(ts, 0)
	run.Realtime = rt != 0

	rows, err := r.db.Query(
		`SELECT ticker, company, action, confidence, confidence_explanation, reason, potential_return, risk_level, time_horizon, price
		 FROM recommendations WHERE run_id = ? ORDER BY id`, runID,
	)
	if err != nil {
		return nil, fmt.Errorf("query recommendations: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var rec model.Recommendation
		var action, riskLevel string
		if err := rows.Scan(
			&rec.Ticker, &rec.Company, &action, &rec.Confidence,
			&rec.ConfidenceExplanation, &rec.Reason, &rec.PotentialReturn,
			&riskLevel, &rec.TimeHorizon, &rec.Price,
		); err != nil {
			return nil, fmt.Errorf("scan recommendation: %w", err)
		}
		rec.Action = model.Action(action)
		rec.RiskLevel = model.RiskLevel(riskLevel)
		run.Recommendations = append(run.Recommendations, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return &run, nil
}

// Close closes the underlying database.
func (r *SQLiteRecorder) Close() error {
	return r.db.Close()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
