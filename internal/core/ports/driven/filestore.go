package driven

import (
	"context"

	"github.com/lociq/sdlsplit/internal/core/domain"
)

// TextFile is one file read through the store: decoded text plus the
// facts needed to round-trip it byte-identically.
type TextFile struct {
	// Text is the decoded content.
	Text string

	// Encoding is the detected encoding, reproduced on outputs.
	Encoding domain.Encoding

	// Checksum is the SHA-256 hex digest of the raw bytes.
	Checksum string
}

// FileStore reads and writes documents in their on-disk encoding.
type FileStore interface {
	// Read decodes the file at path, sniffing BOM and encoding.
	Read(path string) (*TextFile, error)

	// Write encodes text and writes it atomically to path.
	Write(path string, text string, enc domain.Encoding) error

	// WriteBatch writes every file or none. All texts are staged to
	// temporary files first; any failure removes the staged files and
	// leaves the directory untouched.
	WriteBatch(ctx context.Context, paths []string, texts []string, enc domain.Encoding) error
}

// TextCodec converts between raw bytes and decoded text for the
// supported encodings. FileStore implementations build on it; it is a
// separate port so the codec can be tested and reused without disk IO.
type TextCodec interface {
	// Decode sniffs the BOM, decodes raw and reports the encoding.
	Decode(raw []byte) (text string, enc domain.Encoding, err error)

	// Encode converts text back to bytes in enc, BOM included.
	Encode(text string, enc domain.Encoding) ([]byte, error)
}
