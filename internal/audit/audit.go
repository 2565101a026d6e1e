package audit

import (
	"context"
	"database/sql"
	"time"
)

// Event types recorded by the HTTP layer.
const (
	QuizCreated      = "quiz.created"
	QuizUpdated      = "quiz.updated"
	QuizDeleted      = "quiz.deleted"
	QuizImported     = "quiz.imported"
	SessionSubmitted = "session.submitted"
)

type Event struct {
	Type     string
	Key      string // natural key: quiz or session ID
	DataJSON string
}

// Recorder appends milestone events. Failures are the caller's to log and
// ignore; auditing never blocks the request path.
type Recorder interface {
	Append(ctx context.Context, e Event) error
}

// SQLRecorder writes to the event_log table created by db.Open.
type SQLRecorder struct{ db *sql.DB }

func NewSQLRecorder(db *sql.DB) *SQLRecorder { return &SQLRecorder{db: db} }

func (r *SQLRecorder) Append(ctx context.Context, e Event) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO event_log (typ, key, data, created_at)
		 VALUES ($1,$2,$3,$4)`,
		e.Type, e.Key, e.DataJSON, time.Now().Unix())
	return err
}

// Nop is used when running on the pure filesystem store.
type Nop struct{}

func (Nop) Append(context.Context, Event) error { return nil }
