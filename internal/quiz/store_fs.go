package quiz

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"
)

// FSStore keeps one pretty-printed JSON document per quiz under base,
// named <id>.json. The layout is shared with older deployments, so the
// documents must round-trip byte-compatible field names.
type FSStore struct {
	base string
	now  func() time.Time
}

func NewFSStore(base string) (*FSStore, error) {
	if base == "" {
		base = "./quizzes"
	}
	if err := os.MkdirAll(base, 0o755); err != nil {
		return nil, fmt.Errorf("create quizzes dir: %w", err)
	}
	return &FSStore{base: base, now: time.Now}, nil
}

func (s *FSStore) path(id string) string {
	return filepath.Join(s.base, filepath.Clean(id)+".json")
}

func (s *FSStore) Get(ctx context.Context, id string) (Quiz, error) {
	data, err := os.ReadFile(s.path(id))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Quiz{}, ErrNotFound
		}
		return Quiz{}, err
	}
	var q Quiz
	if err := json.Unmarshal(data, &q); err != nil {
		return Quiz{}, fmt.Errorf("parse quiz %s: %w", id, err)
	}
	q.Normalize()
	return q, nil
}

// List scans the base directory. Files that fail to parse are skipped with a
// log line rather than failing the whole listing; one corrupt document should
// not hide the rest of the library.
func (s *FSStore) List(ctx context.Context) ([]Quiz, error) {
	entries, err := os.ReadDir(s.base)
	if err != nil {
		return nil, fmt.Errorf("read quizzes dir: %w", err)
	}
	out := make([]Quiz, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		data, err := os.ReadFile(filepath.Join(s.base, e.Name()))
		if err != nil {
			log.Printf("quiz store: read %s: %v", e.Name(), err)
			continue
		}
		var q Quiz
		if err := json.Unmarshal(data, &q); err != nil {
			log.Printf("quiz store: skipping unparsable %s: %v", e.Name(), err)
			continue
		}
		q.Normalize()
		out = append(out, q)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *FSStore) Save(ctx context.Context, q Quiz) (Quiz, error) {
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

	data, err := json.MarshalIndent(q, "", "  ")
	if err != nil {
		return Quiz{}, fmt.Errorf("encode quiz: %w", err)
	}
	if err := os.WriteFile(s.path(q.ID), data, 0o644); err != nil {
		return Quiz{}, fmt.Errorf("write quiz %s: %w", q.ID, err)
	}
	return q, nil
}

func (s *FSStore) Delete(ctx context.Context, id string) error {
	err := os.Remove(s.path(id))
	if errors.Is(err, fs.ErrNotExist) {
		return ErrNotFound
	}
	return err
}
