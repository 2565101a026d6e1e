package quiz

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"
)

// SQLStore persists each quiz as a JSON document in a row, the same shape the
// FS store writes to disk. Works against sqlite (modernc) and postgres (pgx
// stdlib); both accept $N placeholders.
type SQLStore struct {
	db  *sql.DB
	now func() time.Time
}

func NewSQLStore(db *sql.DB) *SQLStore {
	return &SQLStore{db: db, now: time.Now}
}

func (s *SQLStore) Get(ctx context.Context, id string) (Quiz, error) {
	row := s.db.QueryRowContext(ctx, `SELECT definition_json FROM quizzes WHERE id=$1`, id)
	var doc string
	if err := row.Scan(&doc); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Quiz{}, ErrNotFound
		}
		return Quiz{}, err
	}
	var q Quiz
	if err := json.Unmarshal([]byte(doc), &q); err != nil {
		return Quiz{}, fmt.Errorf("parse quiz %s: %w", id, err)
	}
	q.Normalize()
	return q, nil
}

func (s *SQLStore) List(ctx context.Context) ([]Quiz, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT definition_json FROM quizzes ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Quiz
	for rows.Next() {
		var doc string
		if err := rows.Scan(&doc); err != nil {
			return nil, err
		}
		var q Quiz
		if err := json.Unmarshal([]byte(doc), &q); err != nil {
			return nil, fmt.Errorf("parse stored quiz: %w", err)
		}
		q.Normalize()
		out = append(out, q)
	}
	return out, rows.Err()
}

func (s *SQLStore) Save(ctx context.Context, q Quiz) (Quiz, error) {
	if err := q.Validate(); err != nil {
		return Quiz{}, err
	}
	q.Normalize()
	if q.ID == "" {
		q.ID = strconv.FormatInt(s.now().UnixMilli(), 10)
	}
	ts := s.now().UTC().Format(time.RFC3339)
	if q.CreatedAt == "" {
		q.CreatedAt = ts
	}
	q.UpdatedAt = ts

	doc, err := json.Marshal(q)
	if err != nil {
		return Quiz{}, fmt.Errorf("encode quiz: %w", err)
	}
	_, err = s.db.ExecContext(ctx, `INSERT INTO quizzes (id,title,definition_json,created_at,updated_at)
		VALUES ($1,$2,$3,$4,$5)
		ON CONFLICT (id) DO UPDATE SET title=EXCLUDED.title, definition_json=EXCLUDED.definition_json, updated_at=EXCLUDED.updated_at`,
		q.ID, q.Title, string(doc), q.CreatedAt, q.UpdatedAt)
	if err != nil {
		return Quiz{}, err
	}
	return q, nil
}

func (s *SQLStore) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM quizzes WHERE id=$1`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
