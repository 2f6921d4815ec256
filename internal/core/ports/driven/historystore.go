package driven

import (
	"context"

	"github.com/lociq/sdlsplit/internal/core/domain"
)

// HistoryStore persists completed operations for the history command.
type HistoryStore interface {
	// Record stores one operation.
	Record(ctx context.Context, op domain.Operation) error

	// List returns the most recent operations, newest first.
	List(ctx context.Context, limit int) ([]domain.Operation, error)

	// Close releases the underlying storage.
	Close() error
}
