// Package runlog journals every scrape run in a local sqlite
// database so operators can audit when runs happened, what triggered
// them and how they ended.
package runlog

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "embed"

	_ "github.com/tursodatabase/libsql-client-go/libsql"
	_ "modernc.org/sqlite"
)

//go:embed schema.sql
var schema string

type Outcome string

const (
	// a new record was persisted
	OutcomeInserted Outcome = "inserted"
	// a record for the day already existed, nothing was written
	OutcomeSkipped Outcome = "skipped"
	OutcomeFailed  Outcome = "failed"
)

// Entry is one journaled run. Stage and Error are only set for
// failed runs; RecordDate is empty when the run failed before the
// publication date could be resolved.
type Entry struct {
	RunID      string
	Trigger    string
	RecordDate string
	Outcome    Outcome
	Stage      string
	Error      string
	StartedAt  time.Time
	FinishedAt time.Time
}

type Journal struct {
	db *sql.DB
}

// Open opens (creating if needed) the journal database at path.
func Open(path string) (*Journal, error) {
	database, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	return New(database)
}

// New applies the schema to an already opened database.
func New(database *sql.DB) (*Journal, error) {
	if _, err := database.Exec(schema); err != nil {
		return nil, fmt.Errorf("apply run journal schema: %w", err)
	}
	return &Journal{db: database}, nil
}

func (j *Journal) Record(ctx context.Context, entry Entry) error {
	_, err := j.db.ExecContext(ctx,
		`INSERT INTO scrape_runs
			(run_id, triggered_by, record_date, outcome, stage, error, started_at, finished_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		entry.RunID,
		entry.Trigger,
		entry.RecordDate,
		string(entry.Outcome),
		entry.Stage,
		entry.Error,
		entry.StartedAt.Unix(),
		entry.FinishedAt.Unix(),
	)
	return err
}

// Recent returns up to limit entries, newest first.
func (j *Journal) Recent(ctx context.Context, limit int) ([]Entry, error) {
	rows, err := j.db.QueryContext(ctx,
		`SELECT run_id, triggered_by, record_date, outcome, stage, error, started_at, finished_at
		FROM scrape_runs
		ORDER BY started_at DESC, run_id
		LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Entry
	for rows.Next() {
		var entry Entry
		var outcome string
		var started, finished int64
		err := rows.Scan(
			&entry.RunID,
			&entry.Trigger,
			&entry.RecordDate,
			&outcome,
			&entry.Stage,
			&entry.Error,
			&started,
			&finished,
		)
		if err != nil {
			return nil, err
		}
		entry.Outcome = Outcome(outcome)
		entry.StartedAt = time.Unix(started, 0)
		entry.FinishedAt = time.Unix(finished, 0)
		out = append(out, entry)
	}
	return out, rows.Err()
}

func (j *Journal) Close() error {
	return j.db.Close()
}
