package domain

// Encoding identifies the character encoding and BOM convention of a
// document. The encoding detected on input must be reproduced on every
// output file, BOM included.
type Encoding string

// Supported encodings for the SDLXLIFF document family.
const (
	// EncodingUTF8 is UTF-8 without a byte-order mark.
	EncodingUTF8 Encoding = "utf-8"

	// EncodingUTF8BOM is UTF-8 with a leading byte-order mark.
	EncodingUTF8BOM Encoding = "utf-8-bom"

	// EncodingUTF16LE is little-endian UTF-16 with a byte-order mark.
	EncodingUTF16LE Encoding = "utf-16-le"

	// EncodingUTF16BE is big-endian UTF-16 with a byte-order mark.
	EncodingUTF16BE Encoding = "utf-16-be"
)

// Valid reports whether e is one of the supported encodings.
func (e Encoding) Valid() bool {
	switch e {
	case EncodingUTF8, EncodingUTF8BOM, EncodingUTF16LE, EncodingUTF16BE:
		return true
	}
	return false
}

// HasBOM reports whether files in this encoding start with a
// byte-order mark.
func (e Encoding) HasBOM() bool {
	return e != EncodingUTF8
}

// BOM returns the byte-order mark bytes for the encoding, or nil.
func (e Encoding) BOM() []byte {
	switch e {
	case EncodingUTF8BOM:
		return []byte{0xEF, 0xBB, 0xBF}
	case EncodingUTF16LE:
		return []byte{0xFF, 0xFE}
	case EncodingUTF16BE:
		return []byte{0xFE, 0xFF}
	default:
		return nil
	}
}
