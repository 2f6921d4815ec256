package domain

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// MetadataMarker opens the embedded split descriptor comment. Its
// exact spelling is part of the on-disk format and must not change.
const MetadataMarker = "SDLXLIFF_SPLIT_METADATA"

// SplitDescriptor identifies a part's origin split operation and its
// position within it. It is created at split time, embedded in each
// part as a comment block, and never mutated afterwards.
type SplitDescriptor struct {
	// SplitID is the UUID shared by every part of one split.
	SplitID string

	// PartNumber is the 1-based position of the part.
	PartNumber int

	// TotalParts is the number of parts the split produced.
	TotalParts int

	// OriginalName is the file name of the split input.
	OriginalName string

	// CreatedAt is the split timestamp.
	CreatedAt time.Time

	// FirstSegment and LastSegment are the 0-based inclusive bounds
	// of the part's range in the original segment list.
	FirstSegment int
	LastSegment  int

	// PartSegments and PartWords describe the part's share.
	PartSegments int
	PartWords    int

	// TotalSegments and TotalWords describe the whole original.
	TotalSegments int
	TotalWords    int

	// OriginalChecksum is the SHA-256 hex digest of the original's
	// raw bytes.
	OriginalChecksum string

	// Encoding is the original's detected encoding name.
	Encoding string
}

// descriptorLine matches one key="value" line inside the comment.
// Tolerant of surrounding whitespace; anything else fails the decode.
var descriptorLine = regexp.MustCompile(`^\s*([a-z_]+)="([^"]*)"\s*$`)

// Encode renders the descriptor as the comment block placed
// immediately after the body-open tag, one key per line.
func (d *SplitDescriptor) Encode() string {
	var b strings.Builder
	b.WriteString("<!-- " + MetadataMarker + ":\n")
	write := func(key, value string) {
		b.WriteString(fmt.Sprintf("  %s=%q\n", key, value))
	}
	write("split_id", d.SplitID)
	write("part_number", strconv.Itoa(d.PartNumber))
	write("total_parts", strconv.Itoa(d.TotalParts))
	write("original_name", d.OriginalName)
	write("created_at", d.CreatedAt.UTC().Format(time.RFC3339))
	write("first_segment_index", strconv.Itoa(d.FirstSegment))
	write("last_segment_index", strconv.Itoa(d.LastSegment))
	write("part_segment_count", strconv.Itoa(d.PartSegments))
	write("part_word_count", strconv.Itoa(d.PartWords))
	write("total_segment_count", strconv.Itoa(d.TotalSegments))
	write("total_word_count", strconv.Itoa(d.TotalWords))
	write("original_checksum", d.OriginalChecksum)
	write("encoding", d.Encoding)
	b.WriteString("-->")
	return b.String()
}

// HasDescriptor reports whether text contains the split metadata
// marker. It is the cheap presence test behind is-split-part checks.
func HasDescriptor(text string) bool {
	return strings.Contains(text, MetadataMarker)
}

// descriptorSpan locates the full descriptor comment within text.
// Returns ok=false when no marker is present or the comment is
// unterminated.
func descriptorSpan(text string) (Span, bool) {
	marker := strings.Index(text, MetadataMarker)
	if marker < 0 {
		return Span{}, false
	}
	open := strings.LastIndex(text[:marker], "<!--")
	if open < 0 {
		return Span{}, false
	}
	end := strings.Index(text[marker:], "-->")
	if end < 0 {
		return Span{}, false
	}
	return Span{Start: open, End: marker + end + len("-->")}, true
}

// DecodeDescriptor extracts the split descriptor embedded in a part.
// It returns nil when the marker is absent or the comment is
// malformed; callers treat nil as "not a split part", never as a hard
// error.
func DecodeDescriptor(text string) *SplitDescriptor {
	span, ok := descriptorSpan(text)
	if !ok {
		return nil
	}
	body := text[span.Start:span.End]
	// Drop the comment delimiters and the marker line.
	body = strings.TrimPrefix(body, "<!--")
	body = strings.TrimSuffix(body, "-->")
	colon := strings.Index(body, ":")
	if colon < 0 {
		return nil
	}
	body = body[colon+1:]

	values := make(map[string]string)
	for _, line := range strings.Split(body, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		m := descriptorLine.FindStringSubmatch(line)
		if m == nil {
			return nil
		}
		values[m[1]] = m[2]
	}

	d := &SplitDescriptor{
		SplitID:          values["split_id"],
		OriginalName:     values["original_name"],
		OriginalChecksum: values["original_checksum"],
		Encoding:         values["encoding"],
	}
	if d.SplitID == "" {
		return nil
	}
	if ts, err := time.Parse(time.RFC3339, values["created_at"]); err == nil {
		d.CreatedAt = ts
	}

	ints := []struct {
		key string
		dst *int
	}{
		{"part_number", &d.PartNumber},
		{"total_parts", &d.TotalParts},
		{"first_segment_index", &d.FirstSegment},
		{"last_segment_index", &d.LastSegment},
		{"part_segment_count", &d.PartSegments},
		{"part_word_count", &d.PartWords},
		{"total_segment_count", &d.TotalSegments},
		{"total_word_count", &d.TotalWords},
	}
	for _, field := range ints {
		raw, present := values[field.key]
		if !present {
			return nil
		}
		n, err := strconv.Atoi(raw)
		if err != nil {
			return nil
		}
		*field.dst = n
	}
	return d
}

// StripDescriptor removes the descriptor comment from text, along
// with the line break that separated it from the body-open tag. Text
// without a descriptor is returned unchanged.
func StripDescriptor(text string) string {
	span, ok := descriptorSpan(text)
	if !ok {
		return text
	}
	before := text[:span.Start]
	after := text[span.End:]
	// Swallow the newline the assembler inserted before the comment.
	before = strings.TrimRight(before, " \t")
	if strings.HasSuffix(before, "\n") && strings.HasPrefix(after, "\n") {
		after = after[1:]
	}
	return before + after
}
