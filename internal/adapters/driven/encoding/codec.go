// Package encoding implements the text codec for the document family:
// UTF-8 with or without BOM and UTF-16 in either byte order. The
// encoding detected on input is reproduced exactly on output, BOM
// included, as required for CAT tool round-trips.
package encoding

import (
	"bytes"
	"fmt"
	"unicode/utf8"

	"golang.org/x/text/encoding/unicode"

	"github.com/lociq/sdlsplit/internal/core/domain"
	"github.com/lociq/sdlsplit/internal/core/ports/driven"
)

// Ensure Codec implements the interface.
var _ driven.TextCodec = (*Codec)(nil)

// Codec converts between raw file bytes and decoded text.
type Codec struct{}

// NewCodec creates a codec.
func NewCodec() *Codec {
	return &Codec{}
}

// Decode sniffs the BOM and decodes raw into text.
func (c *Codec) Decode(raw []byte) (string, domain.Encoding, error) {
	switch {
	case bytes.HasPrefix(raw, domain.EncodingUTF8BOM.BOM()):
		return string(raw[3:]), domain.EncodingUTF8BOM, nil

	case bytes.HasPrefix(raw, domain.EncodingUTF16LE.BOM()):
		text, err := decodeUTF16(raw[2:], unicode.LittleEndian)
		return text, domain.EncodingUTF16LE, err

	case bytes.HasPrefix(raw, domain.EncodingUTF16BE.BOM()):
		text, err := decodeUTF16(raw[2:], unicode.BigEndian)
		return text, domain.EncodingUTF16BE, err

	default:
		if !utf8.Valid(raw) {
			return "", "", fmt.Errorf("%w: content is neither valid UTF-8 nor BOM-marked UTF-16", domain.ErrValidation)
		}
		return string(raw), domain.EncodingUTF8, nil
	}
}

// Encode converts text back into raw bytes in enc, BOM included.
func (c *Codec) Encode(text string, enc domain.Encoding) ([]byte, error) {
	switch enc {
	case domain.EncodingUTF8:
		return []byte(text), nil

	case domain.EncodingUTF8BOM:
		out := make([]byte, 0, len(text)+3)
		out = append(out, enc.BOM()...)
		return append(out, text...), nil

	case domain.EncodingUTF16LE:
		return encodeUTF16(text, unicode.LittleEndian, enc.BOM())

	case domain.EncodingUTF16BE:
		return encodeUTF16(text, unicode.BigEndian, enc.BOM())

	default:
		return nil, fmt.Errorf("%w: unsupported encoding %q", domain.ErrConfiguration, enc)
	}
}

func decodeUTF16(raw []byte, endian unicode.Endianness) (string, error) {
	dec := unicode.UTF16(endian, unicode.IgnoreBOM).NewDecoder()
	out, err := dec.Bytes(raw)
	if err != nil {
		return "", fmt.Errorf("%w: decoding UTF-16: %v", domain.ErrValidation, err)
	}
	return string(out), nil
}

func encodeUTF16(text string, endian unicode.Endianness, bom []byte) ([]byte, error) {
	enc := unicode.UTF16(endian, unicode.IgnoreBOM).NewEncoder()
	body, err := enc.Bytes([]byte(text))
	if err != nil {
		return nil, fmt.Errorf("%w: encoding UTF-16: %v", domain.ErrIO, err)
	}
	out := make([]byte, 0, len(bom)+len(body))
	out = append(out, bom...)
	return append(out, body...), nil
}
