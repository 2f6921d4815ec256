package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lociq/sdlsplit/internal/core/domain"
	"github.com/lociq/sdlsplit/internal/core/ports/driven"
)

// testDoc wraps body in a minimal but complete SDLXLIFF skeleton.
func testDoc(body string) string {
	return `<?xml version="1.0" encoding="utf-8"?>
<xliff version="1.2" xmlns="urn:oasis:names:tc:xliff:document:1.2" xmlns:sdl="http://sdl.com/FileTypes/SdlXliff/1.0">
<file original="report.docx" source-language="en-US" target-language="es-ES" datatype="x-sdlfilterframework2">
<header>
<reference>base</reference>
</header>
<body>` + body + `
</body>
</file>
</xliff>
`
}

// unit renders one trans-unit with a leading newline, the way the CAT
// tool lays them out.
func unit(id, source, target string) string {
	return fmt.Sprintf("\n<trans-unit id=%q>\n<source>%s</source>\n<target>%s</target>\n</trans-unit>", id, source, target)
}

// fourUnitDoc has 4 ungrouped segments with 3, 4, 2 and 1 source words.
func fourUnitDoc() string {
	return testDoc(
		unit("1", "one two three", "") +
			unit("2", "four five six seven", "") +
			unit("3", "eight nine", "") +
			unit("4", "ten", ""))
}

// tenUnitDoc has 10 ungrouped segments with 3 words each.
func tenUnitDoc() string {
	var b strings.Builder
	for i := 1; i <= 10; i++ {
		b.WriteString(unit(fmt.Sprintf("%d", i), fmt.Sprintf("seg %d text", i), ""))
	}
	return testDoc(b.String())
}

// groupedDoc has 6 segments of 2 words each: ids 1-2 inside group
// outer-a, ids 3-5 inside outer-b with id 4 in a nested inner group,
// and id 6 ungrouped.
func groupedDoc() string {
	return testDoc(
		"\n<group id=\"outer-a\">" +
			unit("1", "alpha beta", "") +
			unit("2", "gamma delta", "") +
			"\n</group>" +
			"\n<group id=\"outer-b\">" +
			unit("3", "epsilon zeta", "") +
			"\n<group id=\"inner\">" +
			unit("4", "eta theta", "") +
			"\n</group>" +
			unit("5", "iota kappa", "") +
			"\n</group>" +
			unit("6", "lambda mu", ""))
}

// contextDoc carries a context-definition block before the first unit.
func contextDoc() string {
	return testDoc(
		"\n<cxt-defs><cxt-def id=\"c1\" type=\"paragraph\"/></cxt-defs>"+
			unit("1", "one two three", "")+
			unit("2", "four five six seven", "")+
			unit("3", "eight nine", "")+
			unit("4", "ten", ""))
}

// docWithWords builds one ungrouped unit per entry, each with the given
// number of source words.
func docWithWords(words []int) string {
	var b strings.Builder
	for i, n := range words {
		tokens := make([]string, n)
		for j := range tokens {
			tokens[j] = fmt.Sprintf("w%d", j+1)
		}
		b.WriteString(unit(fmt.Sprintf("%d", i+1), strings.Join(tokens, " "), ""))
	}
	return testDoc(b.String())
}

// scanDoc indexes text through a fresh scanner, failing the test on any
// structural error.
func scanDoc(t *testing.T, text string) *domain.Document {
	t.Helper()
	doc, err := NewScanner().Scan("report.sdlxliff", text, domain.EncodingUTF8, "")
	require.NoError(t, err)
	return doc
}

// fakeFileStore keeps files in memory so service tests run without
// disk IO.
type fakeFileStore struct {
	files map[string]fakeFile
}

type fakeFile struct {
	text string
	enc  domain.Encoding
}

var _ driven.FileStore = (*fakeFileStore)(nil)

func newFakeFileStore() *fakeFileStore {
	return &fakeFileStore{files: make(map[string]fakeFile)}
}

func (f *fakeFileStore) put(path, text string, enc domain.Encoding) {
	f.files[path] = fakeFile{text: text, enc: enc}
}

func (f *fakeFileStore) Read(path string) (*driven.TextFile, error) {
	file, ok := f.files[path]
	if !ok {
		return nil, fmt.Errorf("%w: reading %s: no such file", domain.ErrIO, path)
	}
	sum := sha256.Sum256([]byte(file.text))
	return &driven.TextFile{
		Text:     file.text,
		Encoding: file.enc,
		Checksum: hex.EncodeToString(sum[:]),
	}, nil
}

func (f *fakeFileStore) Write(path string, text string, enc domain.Encoding) error {
	f.put(path, text, enc)
	return nil
}

func (f *fakeFileStore) WriteBatch(_ context.Context, paths []string, texts []string, enc domain.Encoding) error {
	for i := range paths {
		f.put(paths[i], texts[i], enc)
	}
	return nil
}

// fakeHistoryStore records operations in memory.
type fakeHistoryStore struct {
	ops []domain.Operation
	err error
}

var _ driven.HistoryStore = (*fakeHistoryStore)(nil)

func (f *fakeHistoryStore) Record(_ context.Context, op domain.Operation) error {
	if f.err != nil {
		return f.err
	}
	f.ops = append(f.ops, op)
	return nil
}

func (f *fakeHistoryStore) List(_ context.Context, limit int) ([]domain.Operation, error) {
	out := make([]domain.Operation, 0, len(f.ops))
	for i := len(f.ops) - 1; i >= 0 && (limit <= 0 || len(out) < limit); i-- {
		out = append(out, f.ops[i])
	}
	return out, nil
}

func (f *fakeHistoryStore) Close() error { return nil }

// newEngine wires split and merge services over in-memory stores.
func newEngine() (*fakeFileStore, *fakeHistoryStore, *SplitService, *MergeService) {
	files := newFakeFileStore()
	history := &fakeHistoryStore{}
	validator := NewValidationService()
	return files, history,
		NewSplitService(files, history, validator),
		NewMergeService(files, history, validator)
}
