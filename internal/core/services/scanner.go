package services

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/lociq/sdlsplit/internal/core/domain"
)

// The scanner is deliberately not an XML parser. A DOM round-trip
// reorders attributes and whitespace and breaks byte fidelity, so the
// index records exact offsets and all output is built by slicing the
// original text.
var (
	bodyOpenRe = regexp.MustCompile(`<body(?:\s[^>]*)?>`)
	idAttrRe   = regexp.MustCompile(`\bid="([^"]*)"`)
	sourceRe   = regexp.MustCompile(`(?s)<source(?:\s[^>]*)?>(.*?)</source>`)
	targetRe   = regexp.MustCompile(`(?s)<target(?:\s[^>]*)?>(.*?)</target>`)
	markupRe   = regexp.MustCompile(`(?s)<[^>]*>`)
	wordRe     = regexp.MustCompile(`[\p{L}\p{N}]+`)

	// contextBlockRe matches a context-definition extension block as
	// emitted by the CAT tool between body-open and the first unit.
	contextBlockRe = regexp.MustCompile(`(?s)<cxt-defs\b[^>]*?(?:/>|>.*?</cxt-defs>)`)
)

const (
	bodyCloseTag      = "</body>"
	transUnitOpen     = "<trans-unit"
	transUnitClose    = "</trans-unit>"
	groupOpenPrefix   = "<group"
	groupCloseTag     = "</group>"
)

// Scanner builds the structural index over one decoded document text.
// A Scanner carries no state between calls; all bookkeeping is scoped
// to a single Scan.
type Scanner struct{}

// NewScanner creates a scanner.
func NewScanner() *Scanner {
	return &Scanner{}
}

// Scan locates the body span, every trans-unit with exact offsets, and
// the group nesting around them. The returned document reassembles to
// text exactly.
func (s *Scanner) Scan(name, text string, enc domain.Encoding, checksum string) (*domain.Document, error) {
	bodyOpen := bodyOpenRe.FindStringIndex(text)
	if bodyOpen == nil {
		return nil, fmt.Errorf("%w: no <body> element found", domain.ErrStructural)
	}
	bodyClose := strings.LastIndex(text, bodyCloseTag)
	if bodyClose < bodyOpen[1] {
		return nil, fmt.Errorf("%w: no closing </body> after body-open", domain.ErrStructural)
	}

	doc := &domain.Document{
		Name:     name,
		Text:     text,
		Encoding: enc,
		Checksum: checksum,
		Header:   domain.Span{Start: 0, End: bodyOpen[1]},
		Tail:     domain.Span{Start: bodyClose, End: len(text)},
	}

	st := &scanState{doc: doc}
	pos := bodyOpen[1]
	for {
		unitStart := findTransUnit(text, pos, bodyClose)
		if unitStart < 0 {
			break
		}
		unitEnd, err := transUnitEnd(text, unitStart, bodyClose)
		if err != nil {
			return nil, err
		}
		// Group transitions live in the gap before the unit.
		st.scanGroups(pos, unitStart)
		st.addSegment(unitStart, unitEnd)
		pos = unitEnd
	}
	// The trailing gap closes any groups still open.
	st.scanGroups(pos, bodyClose)
	st.finish(bodyClose)

	return doc, nil
}

// scanState tracks the open-group stack while the body is walked in
// document order.
type scanState struct {
	doc   *domain.Document
	stack []int // indexes into doc.Groups
}

// findTransUnit returns the offset of the next trans-unit start tag at
// or after pos, or -1. The character after the element name must end
// the name, so tags that merely share the prefix do not match.
func findTransUnit(text string, pos, limit int) int {
	for pos < limit {
		idx := strings.Index(text[pos:limit], transUnitOpen)
		if idx < 0 {
			return -1
		}
		abs := pos + idx
		next := abs + len(transUnitOpen)
		if next < limit && isNameEnd(text[next]) {
			return abs
		}
		pos = next
	}
	return -1
}

// transUnitEnd returns the offset one past the unit's closing tag.
func transUnitEnd(text string, start, limit int) (int, error) {
	gt := strings.Index(text[start:limit], ">")
	if gt < 0 {
		return 0, fmt.Errorf("%w: unterminated trans-unit tag at offset %d", domain.ErrStructural, start)
	}
	gt += start
	if text[gt-1] == '/' {
		return gt + 1, nil // self-closing unit
	}
	end := strings.Index(text[gt:limit], transUnitClose)
	if end < 0 {
		return 0, fmt.Errorf("%w: trans-unit at offset %d has no closing tag", domain.ErrStructural, start)
	}
	return gt + end + len(transUnitClose), nil
}

func isNameEnd(c byte) bool {
	switch c {
	case ' ', '\t', '\r', '\n', '>', '/':
		return true
	}
	return false
}

// scanGroups applies the group transitions found in text[from:to].
func (st *scanState) scanGroups(from, to int) {
	text := st.doc.Text
	pos := from
	for pos < to {
		open := strings.Index(text[pos:to], groupOpenPrefix)
		closing := strings.Index(text[pos:to], groupCloseTag)
		if open < 0 && closing < 0 {
			return
		}
		// Process whichever tag comes first.
		if open >= 0 && (closing < 0 || open < closing) {
			abs := pos + open
			next := abs + len(groupOpenPrefix)
			if next >= to || !isNameEnd(text[next]) || text[abs+1] == '/' {
				pos = next
				continue
			}
			gt := strings.Index(text[abs:to], ">")
			if gt < 0 {
				return // unterminated tag, tolerate
			}
			gt += abs
			g := domain.Group{
				ID:      fmt.Sprintf("g%d", len(st.doc.Groups)+1),
				OpenTag: text[abs : gt+1],
				Span:    domain.Span{Start: abs, End: gt + 1},
				Depth:   len(st.stack) + 1,
			}
			st.doc.Groups = append(st.doc.Groups, g)
			if text[gt-1] != '/' {
				st.stack = append(st.stack, len(st.doc.Groups)-1)
			}
			pos = gt + 1
			continue
		}
		abs := pos + closing
		if len(st.stack) > 0 {
			top := st.stack[len(st.stack)-1]
			st.doc.Groups[top].Span.End = abs + len(groupCloseTag)
			st.stack = st.stack[:len(st.stack)-1]
		}
		pos = abs + len(groupCloseTag)
	}
}

// addSegment indexes the unit at [start, end) under the current group
// stack.
func (st *scanState) addSegment(start, end int) {
	text := st.doc.Text
	unit := text[start:end]

	gt := strings.Index(unit, ">")
	openTag := unit
	if gt >= 0 {
		openTag = unit[:gt+1]
	}
	id := ""
	if m := idAttrRe.FindStringSubmatch(openTag); m != nil {
		id = m[1]
	}
	if id == "" {
		id = fmt.Sprintf("u%d", len(st.doc.Segments)+1)
	}

	source := elementText(sourceRe, unit)
	target := elementText(targetRe, unit)

	seg := domain.Segment{
		ID:         id,
		Span:       domain.Span{Start: start, End: end},
		Source:     source,
		Target:     target,
		Words:      len(wordRe.FindAllString(source, -1)),
		Translated: strings.TrimSpace(target) != "",
	}
	for _, gi := range st.stack {
		seg.GroupPath = append(seg.GroupPath, st.doc.Groups[gi].ID)
		st.doc.Groups[gi].Members = append(st.doc.Groups[gi].Members, id)
	}
	st.doc.Segments = append(st.doc.Segments, seg)
}

// finish closes groups left open at body end so their spans stay
// within the document.
func (st *scanState) finish(bodyClose int) {
	for _, gi := range st.stack {
		if st.doc.Groups[gi].Span.End <= st.doc.Groups[gi].Span.Start+len(st.doc.Groups[gi].OpenTag) {
			st.doc.Groups[gi].Span.End = bodyClose
		}
	}
	st.stack = nil
}

// elementText extracts the plain text content of the first match of
// re within unit: inner markup is stripped and basic entities decoded.
func elementText(re *regexp.Regexp, unit string) string {
	m := re.FindStringSubmatch(unit)
	if m == nil {
		return ""
	}
	return unescapeEntities(markupRe.ReplaceAllString(m[1], ""))
}

var entityReplacer = strings.NewReplacer(
	"&lt;", "<",
	"&gt;", ">",
	"&quot;", `"`,
	"&apos;", "'",
	"&amp;", "&",
)

func unescapeEntities(s string) string {
	if !strings.Contains(s, "&") {
		return s
	}
	return entityReplacer.Replace(s)
}

// ContextBlocks returns the context-definition extension blocks found
// between body-open and the first segment, verbatim and in order.
func ContextBlocks(doc *domain.Document) []string {
	region := doc.TrailingGap()
	if len(doc.Segments) > 0 {
		region = doc.Gap(0)
	}
	return contextBlockRe.FindAllString(region, -1)
}
