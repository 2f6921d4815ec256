package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// indexedDoc builds a small hand-indexed document:
//
//	<body><g><u1/></g><u2/></body>tail
//	0     6  9    14  18   23     30
func indexedDoc() *Document {
	text := "<body><g><u1/></g><u2/></body>tail"
	return &Document{
		Name:     "sample.sdlxliff",
		Text:     text,
		Encoding: EncodingUTF8,
		Header:   Span{Start: 0, End: 6},
		Tail:     Span{Start: 23, End: len(text)},
		Segments: []Segment{
			{ID: "1", Span: Span{Start: 9, End: 14}, GroupPath: []string{"g1"}, Source: "one two", Words: 2, Target: "uno dos", Translated: true},
			{ID: "2", Span: Span{Start: 18, End: 23}, Source: "three", Words: 1},
		},
		Groups: []Group{
			{ID: "g1", OpenTag: "<g>", Span: Span{Start: 6, End: 18}, Depth: 1, Members: []string{"1"}},
		},
	}
}

func TestDocument_SpanAccessors(t *testing.T) {
	doc := indexedDoc()

	assert.Equal(t, "<body>", doc.HeaderText())
	assert.Equal(t, "</body>tail", doc.TailText())
	assert.Equal(t, "<u1/>", doc.SegmentText(0))
	assert.Equal(t, "<u2/>", doc.SegmentText(1))
	assert.Equal(t, "<g>", doc.Gap(0))
	assert.Equal(t, "</g>", doc.Gap(1))
	assert.Equal(t, "", doc.TrailingGap())
}

func TestDocument_Reassemble(t *testing.T) {
	doc := indexedDoc()
	assert.Equal(t, doc.Text, doc.Reassemble())
}

func TestDocument_TrailingGap_NoSegments(t *testing.T) {
	text := "<body> </body>"
	doc := &Document{
		Text:   text,
		Header: Span{Start: 0, End: 6},
		Tail:   Span{Start: 7, End: len(text)},
	}
	assert.Equal(t, " ", doc.TrailingGap())
	assert.Equal(t, text, doc.Reassemble())
}

func TestDocument_Groups(t *testing.T) {
	doc := indexedDoc()

	g := doc.Group("g1")
	require.NotNil(t, g)
	assert.Equal(t, "<g>", g.OpenTag)
	assert.Nil(t, doc.Group("missing"))

	top := doc.TopLevelGroups()
	require.Len(t, top, 1)
	assert.Equal(t, "g1", top[0].ID)
}

func TestSegment_GroupID(t *testing.T) {
	doc := indexedDoc()

	assert.Equal(t, "g1", doc.Segments[0].GroupID())
	assert.Equal(t, 1, doc.Segments[0].Depth())
	assert.Equal(t, "", doc.Segments[1].GroupID())
	assert.Equal(t, 0, doc.Segments[1].Depth())

	nested := &Segment{GroupPath: []string{"g1", "g2"}}
	assert.Equal(t, "g2", nested.GroupID())
	assert.Equal(t, 2, nested.Depth())
}

func TestDocument_Totals(t *testing.T) {
	doc := indexedDoc()

	assert.Equal(t, 3, doc.TotalWords())
	assert.Equal(t, 1, doc.TranslatedCount())
}

func TestSpan_Len(t *testing.T) {
	assert.Equal(t, 5, Span{Start: 3, End: 8}.Len())
	assert.Equal(t, 0, Span{Start: 3, End: 3}.Len())
}
