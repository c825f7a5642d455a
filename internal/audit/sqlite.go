package audit

// #region imports
import (
	"context"
	"database/sql"
	"fmt"
	"time"

	json "github.com/goccy/go-json"
	"github.com/officemates/antigravity/internal/classifier"
	_ "modernc.org/sqlite"
)

// #endregion

// #region schema

const schema = `
CREATE TABLE IF NOT EXISTS decisions (
	id            TEXT PRIMARY KEY,
	user_id       TEXT NOT NULL,
	action        TEXT NOT NULL,
	evidence_json TEXT,
	alternatives  TEXT,
	reason        TEXT,
	created_at    TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_decisions_user ON decisions(user_id, created_at);

CREATE TABLE IF NOT EXISTS learning_events (
	id            INTEGER PRIMARY KEY AUTOINCREMENT,
	user_id       TEXT NOT NULL,
	event_type    TEXT NOT NULL,
	evidence_json TEXT,
	confidence    REAL NOT NULL,
	should_intervene INTEGER NOT NULL DEFAULT 0,
	intervention_type TEXT,
	created_at    TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_learning_events_user ON learning_events(user_id, id);
`

// #endregion schema

// #region store

// SQLiteRecorder persists the decision and event streams in SQLite.
type SQLiteRecorder struct {
	db *sql.DB
}

// NewSQLiteRecorder opens (or creates) the audit database and runs migrations.
func NewSQLiteRecorder(dbPath string) (*SQLiteRecorder, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		return nil, fmt.Errorf("pragma: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return &SQLiteRecorder{db: db}, nil
}

// Close closes the underlying database connection.
func (r *SQLiteRecorder) Close() error {
	return r.db.Close()
}

// DB returns the underlying *sql.DB for inspection tooling.
func (r *SQLiteRecorder) DB() *sql.DB {
	return r.db
}

// #endregion store

// #region record-decision

// RecordDecision inserts one decision row.
func (r *SQLiteRecorder) RecordDecision(ctx context.Context, d Decision) error {
	evidence, err := json.Marshal(d.TriggeringEvidence)
	if err != nil {
		return fmt.Errorf("marshal evidence: %w", err)
	}
	alternatives, err := json.Marshal(d.AlternativesConsidered)
	if err != nil {
		return fmt.Errorf("marshal alternatives: %w", err)
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO decisions (id, user_id, action, evidence_json, alternatives, reason, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		d.ID, d.UserID, d.Action, string(evidence), string(alternatives), d.Reason,
		d.Timestamp.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("insert decision: %w", err)
	}
	return nil
}

// #endregion record-decision

// #region record-event

// RecordEvent inserts one learning-event row.
func (r *SQLiteRecorder) RecordEvent(ctx context.Context, userID string, ev classifier.LearningEvent) error {
	evidence, err := json.Marshal(ev.Evidence)
	if err != nil {
		return fmt.Errorf("marshal evidence: %w", err)
	}

	intervene := 0
	if ev.ShouldIntervene {
		intervene = 1
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO learning_events (user_id, event_type, evidence_json, confidence, should_intervene, intervention_type, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		userID, string(ev.EventType), string(evidence), ev.Confidence, intervene,
		string(ev.InterventionType), ev.Timestamp.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("insert event: %w", err)
	}
	return nil
}

// #endregion record-event

// #region decisions

// Decisions returns up to limit trailing decisions for the user, oldest first.
func (r *SQLiteRecorder) Decisions(ctx context.Context, userID string, limit int) ([]Decision, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, user_id, action, evidence_json, alternatives, reason, created_at
		 FROM decisions WHERE user_id = ? ORDER BY created_at DESC, id DESC LIMIT ?`,
		userID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query decisions: %w", err)
	}
	defer rows.Close()

	var out []Decision
	for rows.Next() {
		var d Decision
		var evidence, alternatives sql.NullString
		var createdStr string
		if err := rows.Scan(&d.ID, &d.UserID, &d.Action, &evidence, &alternatives, &d.Reason, &createdStr); err != nil {
			return nil, fmt.Errorf("scan decision: %w", err)
		}
		if evidence.Valid && evidence.String != "" {
			var ev any
			if err := json.Unmarshal([]byte(evidence.String), &ev); err == nil {
				d.TriggeringEvidence = ev
			}
		}
		if alternatives.Valid && alternatives.String != "" {
			_ = json.Unmarshal([]byte(alternatives.String), &d.AlternativesConsidered)
		}
		d.Timestamp, _ = time.Parse(time.RFC3339Nano, createdStr)
		out = append(out, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	reverse(out)
	return out, nil
}

// #endregion decisions

// #region events

// Events returns up to limit trailing learning events for the user, oldest first.
func (r *SQLiteRecorder) Events(ctx context.Context, userID string, limit int) ([]classifier.LearningEvent, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := r.db.QueryContext(ctx,
		`SELECT event_type, evidence_json, confidence, should_intervene, intervention_type, created_at
		 FROM learning_events WHERE user_id = ? ORDER BY id DESC LIMIT ?`,
		userID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query events: %w", err)
	}
	defer rows.Close()

	var out []classifier.LearningEvent
	for rows.Next() {
		var ev classifier.LearningEvent
		var eventType, interventionType string
		var evidence sql.NullString
		var intervene int
		var createdStr string
		if err := rows.Scan(&eventType, &evidence, &ev.Confidence, &intervene, &interventionType, &createdStr); err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		ev.EventType = classifier.EventType(eventType)
		ev.InterventionType = classifier.InterventionType(interventionType)
		ev.ShouldIntervene = intervene != 0
		if evidence.Valid && evidence.String != "" {
			_ = json.Unmarshal([]byte(evidence.String), &ev.Evidence)
		}
		ev.Timestamp, _ = time.Parse(time.RFC3339Nano, createdStr)
		out = append(out, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	reverse(out)
	return out, nil
}

// #endregion events

// #region helpers

func reverse[T any](list []T) {
	for i, j := 0, len(list)-1; i < j; i, j = i+1, j-1 {
		list[i], list[j] = list[j], list[i]
	}
}

// #endregion helpers
