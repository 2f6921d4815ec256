package driving

import (
	"context"

	"github.com/lociq/sdlsplit/internal/core/domain"
)

// MergeRequest describes one merge operation.
type MergeRequest struct {
	// PartPaths are the part files, in any order for metadata-carrying
	// parts; byte-exact parts are concatenated in the given order.
	PartPaths []string

	// OriginalPath is the pristine original document, required by the
	// overlay mode and ignored by the others.
	OriginalPath string

	// OutputPath receives the merged document. Defaults to
	// {stem}_merged{ext} next to the first part.
	OutputPath string

	// Mode selects the reconstruction strategy.
	Mode domain.MergeMode

	// Duplicates decides which copy wins when two parts supply the
	// same segment id in overlay mode.
	Duplicates domain.DuplicatePolicy

	// Progress and ShouldStop are optional callbacks.
	Progress   ProgressFunc
	ShouldStop StopFunc
}

// MergeResult reports a completed merge.
type MergeResult struct {
	// OutputPath is where the merged document was written.
	OutputPath string

	// Segments is the number of trans-units in the merged document.
	Segments int

	// Untranslated lists segment ids whose target is still empty.
	// Informational only.
	Untranslated []string

	// Untouched lists original segment ids no part supplied (overlay
	// mode). Soft warning, not a failure.
	Untouched []string
}

// MergeService reassembles a part set into one document.
type MergeService interface {
	// Merge validates the part set, reconstructs the document with
	// the requested mode and writes it.
	Merge(ctx context.Context, req MergeRequest) (*MergeResult, error)
}
