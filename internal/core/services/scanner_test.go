package services

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lociq/sdlsplit/internal/core/domain"
)

// TestScanner_Reassemble is the load-bearing fidelity check: the index
// must reproduce the input byte for byte.
func TestScanner_Reassemble(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"flat", fourUnitDoc()},
		{"grouped", groupedDoc()},
		{"with context block", contextDoc()},
		{"ten units", tenUnitDoc()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := scanDoc(t, tt.text)
			assert.Equal(t, tt.text, doc.Reassemble())
		})
	}
}

func TestScanner_Segments(t *testing.T) {
	doc := scanDoc(t, fourUnitDoc())

	require.Len(t, doc.Segments, 4)
	assert.Equal(t, []string{"1", "2", "3", "4"}, segmentIDs(doc))
	assert.Equal(t, "one two three", doc.Segments[0].Source)
	assert.Equal(t, "four five six seven", doc.Segments[1].Source)
	assert.Equal(t, 3, doc.Segments[0].Words)
	assert.Equal(t, 4, doc.Segments[1].Words)
	assert.Equal(t, 2, doc.Segments[2].Words)
	assert.Equal(t, 1, doc.Segments[3].Words)
	assert.Equal(t, 10, doc.TotalWords())
	for i := range doc.Segments {
		assert.False(t, doc.Segments[i].Translated)
		assert.Empty(t, doc.Segments[i].Target)
	}
}

func TestScanner_Targets(t *testing.T) {
	doc := scanDoc(t, testDoc(
		unit("1", "one two", "uno dos")+
			unit("2", "three", "")))

	require.Len(t, doc.Segments, 2)
	assert.Equal(t, "uno dos", doc.Segments[0].Target)
	assert.True(t, doc.Segments[0].Translated)
	assert.False(t, doc.Segments[1].Translated)
	assert.Equal(t, 1, doc.TranslatedCount())
}

func TestScanner_Groups(t *testing.T) {
	doc := scanDoc(t, groupedDoc())

	require.Len(t, doc.Groups, 3)
	assert.Equal(t, `<group id="outer-a">`, doc.Groups[0].OpenTag)
	assert.Equal(t, `<group id="outer-b">`, doc.Groups[1].OpenTag)
	assert.Equal(t, `<group id="inner">`, doc.Groups[2].OpenTag)
	assert.Equal(t, 1, doc.Groups[0].Depth)
	assert.Equal(t, 1, doc.Groups[1].Depth)
	assert.Equal(t, 2, doc.Groups[2].Depth)
	assert.Equal(t, []string{"1", "2"}, doc.Groups[0].Members)
	assert.Equal(t, []string{"3", "4", "5"}, doc.Groups[1].Members)
	assert.Equal(t, []string{"4"}, doc.Groups[2].Members)

	assert.Equal(t, []string{"g1"}, doc.Segments[0].GroupPath)
	assert.Equal(t, []string{"g2", "g3"}, doc.Segments[3].GroupPath)
	assert.Empty(t, doc.Segments[5].GroupPath)
	assert.Len(t, doc.TopLevelGroups(), 2)
}

func TestScanner_SelfClosingUnit(t *testing.T) {
	doc := scanDoc(t, testDoc(
		"\n<trans-unit id=\"empty\"/>"+
			unit("2", "alpha beta", "")))

	require.Len(t, doc.Segments, 2)
	assert.Equal(t, "empty", doc.Segments[0].ID)
	assert.Empty(t, doc.Segments[0].Source)
	assert.Equal(t, 0, doc.Segments[0].Words)
}

func TestScanner_Entities(t *testing.T) {
	doc := scanDoc(t, testDoc(
		unit("1", "AT&amp;T works", "")+
			unit("2", "a &lt;b&gt;", "")))

	assert.Equal(t, "AT&T works", doc.Segments[0].Source)
	assert.Equal(t, 3, doc.Segments[0].Words)
	assert.Equal(t, "a <b>", doc.Segments[1].Source)
}

func TestScanner_IDFallback(t *testing.T) {
	doc := scanDoc(t, testDoc(
		"\n<trans-unit>\n<source>x y</source>\n<target></target>\n</trans-unit>"))

	require.Len(t, doc.Segments, 1)
	assert.Equal(t, "u1", doc.Segments[0].ID)
}

func TestScanner_NoBody(t *testing.T) {
	_, err := NewScanner().Scan("x", "<xliff><file/></xliff>", domain.EncodingUTF8, "")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrStructural))
}

func TestScanner_UnclosedUnit(t *testing.T) {
	_, err := NewScanner().Scan("x", testDoc("\n<trans-unit id=\"1\">\n<source>x</source>"), domain.EncodingUTF8, "")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrStructural))
}

func TestScanner_ContextBlocks(t *testing.T) {
	doc := scanDoc(t, contextDoc())

	blocks := ContextBlocks(doc)
	require.Len(t, blocks, 1)
	assert.Equal(t, `<cxt-defs><cxt-def id="c1" type="paragraph"/></cxt-defs>`, blocks[0])
}

func TestScanner_NoContextBlocks(t *testing.T) {
	doc := scanDoc(t, fourUnitDoc())
	assert.Empty(t, ContextBlocks(doc))
}

// segmentIDs collects the ids in document order.
func segmentIDs(doc *domain.Document) []string {
	ids := make([]string, 0, len(doc.Segments))
	for i := range doc.Segments {
		ids = append(ids, doc.Segments[i].ID)
	}
	return ids
}
