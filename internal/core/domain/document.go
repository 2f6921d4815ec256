package domain

import "strings"

// Span marks a half-open [Start, End) byte range within a document's
// decoded text.
type Span struct {
	// Start is the offset of the first byte of the range.
	Start int

	// End is the offset one past the last byte of the range.
	End int
}

// Len returns the length of the span in bytes.
func (s Span) Len() int {
	return s.End - s.Start
}

// Segment is one trans-unit element located by the structural index.
// Segments never overlap and are totally ordered by document position.
type Segment struct {
	// ID is the trans-unit id attribute, unique within a document.
	ID string

	// Span covers the full element, start tag through end tag.
	Span Span

	// GroupPath holds the ids of the enclosing groups, outermost
	// first. Empty for an ungrouped segment.
	GroupPath []string

	// Source is the plain text content of the <source> element.
	Source string

	// Target is the plain text content of the <target> element,
	// empty when the element is absent or empty.
	Target string

	// Words is the number of word tokens in Source.
	Words int

	// Translated is true when a non-empty <target> is present.
	Translated bool
}

// GroupID returns the innermost enclosing group id, or "" when the
// segment is not inside any group.
func (s *Segment) GroupID() string {
	if len(s.GroupPath) == 0 {
		return ""
	}
	return s.GroupPath[len(s.GroupPath)-1]
}

// Depth returns the number of groups open around the segment.
func (s *Segment) Depth() int {
	return len(s.GroupPath)
}

// Group is a structural wrapper element that encloses one or more
// segments. Group membership is contiguous in the original document;
// only legally nested sub-groups interleave.
type Group struct {
	// ID is a synthetic identifier assigned in document order.
	ID string

	// OpenTag is the verbatim text of the opening tag, used to
	// reopen the group in an assembled part.
	OpenTag string

	// Span covers the group from opening tag through closing tag.
	Span Span

	// Depth is the nesting depth, 1 for a top-level group.
	Depth int

	// Members holds the ids of the segments inside the group, in
	// document order, including segments of nested sub-groups.
	Members []string
}

// Document is the structural index over one decoded SDLXLIFF text.
// The invariant is that Header + Gap(0) + SegmentText(0) + Gap(1) +
// ... + TrailingGap + Tail reproduces Text exactly.
type Document struct {
	// Name is the original file name, used for part naming and the
	// split descriptor.
	Name string

	// Text is the full decoded document text.
	Text string

	// Encoding is the detected input encoding, round-tripped onto
	// every output file.
	Encoding Encoding

	// Checksum is the SHA-256 hex digest of the raw input bytes.
	Checksum string

	// Header covers everything up to and including the body-open tag.
	Header Span

	// Tail covers everything from the body-close tag to end of file.
	Tail Span

	// Segments is the ordered trans-unit list.
	Segments []Segment

	// Groups holds every group in document order of its opening tag.
	Groups []Group
}

// HeaderText returns the verbatim header, including the body-open tag.
func (d *Document) HeaderText() string {
	return d.Text[d.Header.Start:d.Header.End]
}

// TailText returns the verbatim tail, from body-close to end of file.
func (d *Document) TailText() string {
	return d.Text[d.Tail.Start:d.Tail.End]
}

// SegmentText returns the verbatim trans-unit element at index i.
func (d *Document) SegmentText(i int) string {
	return d.Text[d.Segments[i].Span.Start:d.Segments[i].Span.End]
}

// Gap returns the verbatim text between segment i-1 (or the header,
// for i == 0) and segment i. Gaps carry group tags and extension
// blocks and must be preserved for byte fidelity.
func (d *Document) Gap(i int) string {
	start := d.Header.End
	if i > 0 {
		start = d.Segments[i-1].Span.End
	}
	return d.Text[start:d.Segments[i].Span.Start]
}

// TrailingGap returns the verbatim text between the last segment and
// the body-close tag, or the whole body when there are no segments.
func (d *Document) TrailingGap() string {
	start := d.Header.End
	if n := len(d.Segments); n > 0 {
		start = d.Segments[n-1].Span.End
	}
	return d.Text[start:d.Tail.Start]
}

// Group returns the group with the given id, or nil.
func (d *Document) Group(id string) *Group {
	for i := range d.Groups {
		if d.Groups[i].ID == id {
			return &d.Groups[i]
		}
	}
	return nil
}

// TopLevelGroups returns the groups at nesting depth 1, in document
// order.
func (d *Document) TopLevelGroups() []Group {
	var top []Group
	for _, g := range d.Groups {
		if g.Depth == 1 {
			top = append(top, g)
		}
	}
	return top
}

// TotalWords returns the sum of all segment word counts.
func (d *Document) TotalWords() int {
	total := 0
	for i := range d.Segments {
		total += d.Segments[i].Words
	}
	return total
}

// TranslatedCount returns the number of segments with a non-empty
// target.
func (d *Document) TranslatedCount() int {
	count := 0
	for i := range d.Segments {
		if d.Segments[i].Translated {
			count++
		}
	}
	return count
}

// Reassemble concatenates header, gaps, segments and tail. It must
// equal Text for any index produced by the scanner; tests rely on it.
func (d *Document) Reassemble() string {
	var b strings.Builder
	b.Grow(len(d.Text))
	b.WriteString(d.HeaderText())
	for i := range d.Segments {
		b.WriteString(d.Gap(i))
		b.WriteString(d.SegmentText(i))
	}
	b.WriteString(d.TrailingGap())
	b.WriteString(d.TailText())
	return b.String()
}

// Part is one produced sub-document: its decoded content plus the
// descriptor embedded in it. Descriptor is nil for byte-exact parts,
// which carry no metadata by design.
type Part struct {
	// Name is the file name the part was written to or read from.
	Name string

	// Content is the decoded part text.
	Content string

	// Descriptor is the decoded split descriptor, nil when absent.
	Descriptor *SplitDescriptor
}
