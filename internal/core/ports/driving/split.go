package driving

import "context"

// ProgressFunc receives coarse progress updates. Percent is 0..100;
// the message is human-readable and safe to display as-is.
type ProgressFunc func(percent int, message string)

// StopFunc is polled at checkpoints; returning true cancels the
// operation cooperatively. The engine never stops mid-element, so no
// partially rendered segment is ever emitted.
type StopFunc func() bool

// SplitRequest describes one split operation.
type SplitRequest struct {
	// InputPath is the document to split.
	InputPath string

	// OutputDir receives the part files. Defaults to the input's
	// directory.
	OutputDir string

	// PartsCount requests an equal-count split into this many parts.
	// Mutually exclusive with WordsPerPart.
	PartsCount int

	// WordsPerPart requests a word-target split. Mutually exclusive
	// with PartsCount.
	WordsPerPart int

	// PreserveGroups adjusts part boundaries so no group is split.
	PreserveGroups bool

	// ByteExact splits at top-level group boundaries into verbatim
	// byte slices with no embedded metadata. Merging such parts is
	// plain concatenation.
	ByteExact bool

	// DuplicateContext re-embeds the original's context-definition
	// blocks into every part rather than only the first.
	DuplicateContext bool

	// PartNaming selects the part file pattern: "NofM" (default,
	// {stem}.{i}of{N}{ext}) or "partN" ({stem}.part{i}{ext}).
	PartNaming string

	// Progress and ShouldStop are optional callbacks, polled at the
	// validation, partitioning, assembly and write checkpoints.
	Progress   ProgressFunc
	ShouldStop StopFunc
}

// PartInfo summarises one written part.
type PartInfo struct {
	// Path is where the part was written.
	Path string

	// Segments and Words are the part's share of the document.
	Segments int
	Words    int
}

// SplitResult reports a completed split.
type SplitResult struct {
	// SplitID is the UUID embedded in every part descriptor. Empty
	// for byte-exact splits.
	SplitID string

	// Parts lists the written parts in order.
	Parts []PartInfo

	// TotalSegments and TotalWords describe the input document.
	TotalSegments int
	TotalWords    int
}

// SplitService splits one document into independently valid parts.
type SplitService interface {
	// Split validates, partitions, assembles and writes the parts.
	// No part file is left behind on failure.
	Split(ctx context.Context, req SplitRequest) (*SplitResult, error)
}
