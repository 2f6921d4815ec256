package services

import (
	"fmt"
	"strings"

	"github.com/lociq/sdlsplit/internal/core/domain"
)

// AssembleOptions controls part rendering.
type AssembleOptions struct {
	// DuplicateContext re-embeds the original's context-definition
	// blocks into every part. When false they go only into part 1.
	// Whether downstream CAT tools tolerate the duplication is not
	// established, hence the switch.
	DuplicateContext bool
}

// AssemblePart renders the self-contained sub-document for segments
// [rng.From, rng.To). The header and tail are copied verbatim from the
// original; the descriptor comment sits immediately after body-open;
// groups enclosing the first segment are reopened with their original
// opening tags and groups still open after the last segment are
// closed. Interior gaps between segments are preserved byte for byte,
// so group nesting and extension blocks inside the range survive
// untouched.
func AssemblePart(doc *domain.Document, rng Range, desc *domain.SplitDescriptor, opts AssembleOptions) string {
	var b strings.Builder
	b.WriteString(doc.HeaderText())
	b.WriteString("\n")
	b.WriteString(desc.Encode())

	if opts.DuplicateContext || desc.PartNumber == 1 {
		for _, blk := range ContextBlocks(doc) {
			b.WriteString("\n")
			b.WriteString(blk)
		}
	}

	first := &doc.Segments[rng.From]
	for _, gid := range first.GroupPath {
		b.WriteString("\n")
		b.WriteString(doc.Group(gid).OpenTag)
	}
	b.WriteString("\n")
	b.WriteString(doc.SegmentText(rng.From))
	for i := rng.From + 1; i < rng.To; i++ {
		b.WriteString(doc.Gap(i))
		b.WriteString(doc.SegmentText(i))
	}

	last := &doc.Segments[rng.To-1]
	for range last.GroupPath {
		b.WriteString("\n")
		b.WriteString("</group>")
	}

	b.WriteString("\n")
	b.WriteString(doc.TailText())
	return b.String()
}

// byteExactSlices cuts the raw text at top-level group starts into
// parts whose plain concatenation reproduces the original exactly.
// Used by the byte-exact mode, which embeds no metadata.
func byteExactSlices(doc *domain.Document, parts int) ([]string, error) {
	top := doc.TopLevelGroups()
	if len(top) == 0 {
		return nil, fmt.Errorf("%w: byte-exact mode requires top-level groups, none found", domain.ErrStructural)
	}
	if len(top) < parts {
		return nil, fmt.Errorf("%w: %d parts requested but document has only %d top-level groups",
			domain.ErrStructural, parts, len(top))
	}

	base := len(top) / parts
	rem := len(top) % parts
	slices := make([]string, 0, parts)
	start := 0
	consumed := 0
	for i := 0; i < parts; i++ {
		count := base
		if i < rem {
			count++
		}
		consumed += count
		end := len(doc.Text)
		if i < parts-1 {
			end = top[consumed].Span.Start
		}
		slices = append(slices, doc.Text[start:end])
		start = end
	}
	return slices, nil
}
