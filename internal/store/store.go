package store

import (
	"context"
	"fmt"

	"tasklist/internal/models"
)

// Store loads and saves the whole task list. Save always replaces
// everything previously stored; there is no incremental write.
type Store interface {
	// Load returns the stored tasks in position order. A store that has
	// never been saved returns an empty list.
	Load(ctx context.Context) ([]models.Task, error)
	Save(ctx context.Context, tasks []models.Task) error

	// Lifecycle
	Close() error
}

// Backend names accepted by Open.
const (
	BackendJSON   = "json"
	BackendSQLite = "sqlite"
)

// Open returns the store for the named backend at path.
func Open(backend, path string) (Store, error) {
	switch backend {
	case BackendJSON:
		return NewJSONStore(path)
	case BackendSQLite:
		return NewSQLiteStore(path)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", backend)
	}
}

func validateAll(tasks []models.Task) error {
	for i := range tasks {
		if err := tasks[i].Validate(); err != nil {
			return fmt.Errorf("task %d: %w", i+1, err)
		}
	}
	return nil
}
