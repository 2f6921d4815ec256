package services

import (
	"encoding/xml"
	"fmt"
	"io"
	"regexp"
	"sort"
	"strings"

	"github.com/lociq/sdlsplit/internal/core/domain"
	"github.com/lociq/sdlsplit/internal/core/ports/driving"
)

// minDocumentLength rejects truncated files before any scan runs.
const minDocumentLength = 100

var (
	// xliffNamespaceRe matches an XLIFF namespace declaration on any
	// prefix.
	xliffNamespaceRe = regexp.MustCompile(`xmlns(?::[A-Za-z0-9_-]+)?="[^"]*xliff[^"]*"`)

	// transUnitCountRe counts trans-unit start tags without a scan.
	transUnitCountRe = regexp.MustCompile(`<trans-unit[\s/>]`)
)

// requiredElements must all be present for the base validation.
var requiredElements = []string{"<file", "<header", "<body", "<trans-unit"}

// Ensure ValidationService implements the interface.
var _ driving.Validator = (*ValidationService)(nil)

// ValidationService runs the layered structural checks that gate every
// split and merge.
type ValidationService struct{}

// NewValidationService creates a validator.
func NewValidationService() *ValidationService {
	return &ValidationService{}
}

// Validate runs the base checks: namespace, required elements,
// well-formedness, at least one trans-unit, minimum length.
func (v *ValidationService) Validate(text string) error {
	if len(text) < minDocumentLength {
		return fmt.Errorf("%w: document is too short (%d bytes)", domain.ErrValidation, len(text))
	}
	if !xliffNamespaceRe.MatchString(text) {
		return fmt.Errorf("%w: no XLIFF namespace declaration", domain.ErrValidation)
	}
	for _, el := range requiredElements {
		if !strings.Contains(text, el) {
			return fmt.Errorf("%w: required element %s> is missing", domain.ErrValidation, el)
		}
	}
	if err := wellFormed(text); err != nil {
		return fmt.Errorf("%w: not well-formed XML: %v", domain.ErrValidation, err)
	}
	if transUnitCountRe.FindStringIndex(text) == nil {
		return fmt.Errorf("%w: document contains no trans-unit", domain.ErrValidation)
	}
	return nil
}

// ValidateForSplitting runs Validate, rejects existing split parts and
// requires at least two segments.
func (v *ValidationService) ValidateForSplitting(text string) error {
	if err := v.Validate(text); err != nil {
		return err
	}
	if v.IsSplitPart(text) {
		return fmt.Errorf("%w: document already carries a %s marker and cannot be split again",
			domain.ErrValidation, domain.MetadataMarker)
	}
	if len(transUnitCountRe.FindAllString(text, 2)) < 2 {
		return fmt.Errorf("%w: splitting needs at least 2 segments", domain.ErrValidation)
	}
	return nil
}

// IsSplitPart reports whether text carries the descriptor marker.
func (v *ValidationService) IsSplitPart(text string) bool {
	return domain.HasDescriptor(text)
}

// ValidateSplitParts checks that a part set belongs to one split
// operation and covers the original without gaps or overlaps.
func (v *ValidationService) ValidateSplitParts(parts []domain.Part) error {
	if len(parts) == 0 {
		return fmt.Errorf("%w: no parts given", domain.ErrCompatibility)
	}
	for i := range parts {
		if parts[i].Descriptor == nil {
			return fmt.Errorf("%w: %s carries no split descriptor", domain.ErrCompatibility, parts[i].Name)
		}
	}

	first := parts[0].Descriptor
	for i := range parts {
		d := parts[i].Descriptor
		if d.SplitID != first.SplitID {
			return fmt.Errorf("%w: %s belongs to split %s, expected %s",
				domain.ErrCompatibility, parts[i].Name, d.SplitID, first.SplitID)
		}
		if d.TotalParts != first.TotalParts {
			return fmt.Errorf("%w: %s declares %d total parts, expected %d",
				domain.ErrCompatibility, parts[i].Name, d.TotalParts, first.TotalParts)
		}
	}
	if len(parts) != first.TotalParts {
		return fmt.Errorf("%w: split has %d parts but %d were given",
			domain.ErrCompatibility, first.TotalParts, len(parts))
	}

	sorted := make([]*domain.SplitDescriptor, len(parts))
	for i := range parts {
		sorted[i] = parts[i].Descriptor
	}
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].PartNumber < sorted[j].PartNumber })

	for i, d := range sorted {
		if d.PartNumber != i+1 {
			return fmt.Errorf("%w: part numbers are not a contiguous 1..%d sequence (saw %d at position %d)",
				domain.ErrCompatibility, first.TotalParts, d.PartNumber, i+1)
		}
		if i > 0 && sorted[i-1].LastSegment+1 != d.FirstSegment {
			return fmt.Errorf("%w: segment ranges of parts %d and %d do not join (last %d, first %d)",
				domain.ErrCompatibility, i, i+1, sorted[i-1].LastSegment, d.FirstSegment)
		}
	}
	return nil
}

// ValidateForMerging requires at least two parts, validates each
// individually and checks part-set compatibility.
func (v *ValidationService) ValidateForMerging(parts []domain.Part) error {
	if len(parts) < 2 {
		return fmt.Errorf("%w: merging needs at least 2 parts, got %d", domain.ErrValidation, len(parts))
	}
	for i := range parts {
		if err := v.Validate(parts[i].Content); err != nil {
			return fmt.Errorf("part %s: %w", parts[i].Name, err)
		}
	}
	return v.ValidateSplitParts(parts)
}

// ValidateMergedFile requires merged output to carry no descriptor and
// to pass the base checks.
func (v *ValidationService) ValidateMergedFile(text string) error {
	if v.IsSplitPart(text) {
		return fmt.Errorf("%w: merged document still carries a split descriptor", domain.ErrValidation)
	}
	return v.Validate(text)
}

// wellFormed runs the stdlib tokenizer over the text as a pure check.
// No data is extracted this way; the offset index is the source of
// truth for all content.
func wellFormed(text string) error {
	dec := xml.NewDecoder(strings.NewReader(text))
	// The text is already decoded; ignore the charset named in the
	// XML declaration.
	dec.CharsetReader = func(_ string, input io.Reader) (io.Reader, error) {
		return input, nil
	}
	for {
		_, err := dec.Token()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
	}
}
