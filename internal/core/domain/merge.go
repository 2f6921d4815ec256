package domain

import (
	"fmt"
	"time"
)

// MergeMode selects the reconstruction strategy used when a part set
// is merged back into one document.
type MergeMode string

// Merge modes.
const (
	// MergeReconstruct rebuilds the document purely from the parts,
	// deduplicating segments by id.
	MergeReconstruct MergeMode = "reconstruct"

	// MergeOverlay splices each part's trans-units onto the pristine
	// original at their exact offsets, leaving every other original
	// byte untouched. The safe choice when translators may have
	// edited part structure.
	MergeOverlay MergeMode = "overlay"

	// MergeByteExact concatenates parts produced by a byte-exact
	// group split; the result reproduces the original byte for byte.
	MergeByteExact MergeMode = "byte-exact"
)

// ParseMergeMode converts a config or flag value into a MergeMode.
func ParseMergeMode(s string) (MergeMode, error) {
	switch MergeMode(s) {
	case MergeReconstruct, MergeOverlay, MergeByteExact:
		return MergeMode(s), nil
	}
	return "", fmt.Errorf("%w: unknown merge mode %q", ErrConfiguration, s)
}

// DuplicatePolicy decides which copy wins when the same segment id is
// supplied by more than one part during an overlay merge. A warning is
// logged on every duplicate regardless of policy.
type DuplicatePolicy string

// Duplicate policies.
const (
	// DuplicateFirstWins keeps the copy from the lowest-numbered part.
	DuplicateFirstWins DuplicatePolicy = "first"

	// DuplicateLastWins keeps the copy from the highest-numbered
	// part. This is the default.
	DuplicateLastWins DuplicatePolicy = "last"
)

// ParseDuplicatePolicy converts a config or flag value into a
// DuplicatePolicy.
func ParseDuplicatePolicy(s string) (DuplicatePolicy, error) {
	switch DuplicatePolicy(s) {
	case DuplicateFirstWins, DuplicateLastWins:
		return DuplicatePolicy(s), nil
	}
	return "", fmt.Errorf("%w: unknown duplicate policy %q", ErrConfiguration, s)
}

// Operation is one recorded split or merge run, persisted to the
// history store for the history command.
type Operation struct {
	// ID is the operation's unique identifier.
	ID string

	// Kind is "split" or "merge".
	Kind string

	// SplitID links the operation to a split descriptor family.
	// Empty for byte-exact runs, which carry no metadata.
	SplitID string

	// Input is the primary input path.
	Input string

	// Outputs holds the produced file paths.
	Outputs []string

	// Parts is the part count involved.
	Parts int

	// Segments and Words describe the processed document.
	Segments int
	Words    int

	// Status is "ok", "stopped" or "failed".
	Status string

	// CreatedAt is when the operation ran.
	CreatedAt time.Time
}
