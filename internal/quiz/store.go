package quiz

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("quiz not found")

// Store is the boundary to quiz persistence. Save creates or updates; when
// the incoming quiz has no ID the store assigns one and returns the result.
type Store interface {
	Get(ctx context.Context, id string) (Quiz, error)
	List(ctx context.Context) ([]Quiz, error)
	Save(ctx context.Context, q Quiz) (Quiz, error)
	Delete(ctx context.Context, id string) error
}
