package driving

import (
	"context"

	"github.com/lociq/sdlsplit/internal/core/domain"
)

// DocumentInfo is the connector-agnostic summary shown by the inspect
// command.
type DocumentInfo struct {
	// Path is the inspected file.
	Path string

	// Encoding is the detected encoding.
	Encoding domain.Encoding

	// Segments, Words and Translated summarise the trans-units.
	Segments   int
	Words      int
	Translated int

	// Groups is the number of group elements.
	Groups int

	// Descriptor is non-nil when the file is a split part.
	Descriptor *domain.SplitDescriptor
}

// InspectService summarises a document or part without modifying it.
type InspectService interface {
	// Inspect scans the file and returns its summary.
	Inspect(ctx context.Context, path string) (*DocumentInfo, error)
}

// HistoryService exposes recorded split/merge operations.
type HistoryService interface {
	// List returns the most recent operations, newest first.
	List(ctx context.Context, limit int) ([]domain.Operation, error)
}
