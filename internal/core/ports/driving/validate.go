package driving

import (
	"context"

	"github.com/lociq/sdlsplit/internal/core/domain"
)

// Validator gates every operation. All methods report failures with a
// specific message wrapping one of the domain error kinds; no silent
// fallback changes data semantics.
type Validator interface {
	// Validate runs the base checks: XLIFF namespace, required
	// elements, XML well-formedness, at least one trans-unit and a
	// minimum content length.
	Validate(text string) error

	// ValidateForSplitting runs Validate, rejects documents already
	// carrying a split descriptor and requires at least two segments.
	ValidateForSplitting(text string) error

	// IsSplitPart reports whether text carries the descriptor marker.
	IsSplitPart(text string) bool

	// ValidateSplitParts checks part-set compatibility: one split id,
	// agreed total, contiguous part numbers and contiguous segment
	// ranges.
	ValidateSplitParts(parts []domain.Part) error

	// ValidateForMerging requires at least two parts, validates each
	// individually and checks part-set compatibility.
	ValidateForMerging(parts []domain.Part) error

	// ValidateMergedFile requires merged output to carry no split
	// descriptor and to pass the base checks.
	ValidateMergedFile(text string) error
}

// FileValidator validates documents on disk for the CLI.
type FileValidator interface {
	// ValidateFile decodes and validates the file. splitPart reports
	// whether it carries a split descriptor; a nil error means the
	// base checks passed.
	ValidateFile(ctx context.Context, path string) (splitPart bool, err error)
}
