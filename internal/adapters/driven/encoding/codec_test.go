package encoding

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lociq/sdlsplit/internal/core/domain"
)

func TestCodec_RoundTrip(t *testing.T) {
	codec := NewCodec()
	text := `<?xml version="1.0"?><body>café 中文 – dash</body>`

	for _, enc := range []domain.Encoding{
		domain.EncodingUTF8,
		domain.EncodingUTF8BOM,
		domain.EncodingUTF16LE,
		domain.EncodingUTF16BE,
	} {
		t.Run(string(enc), func(t *testing.T) {
			raw, err := codec.Encode(text, enc)
			require.NoError(t, err)

			decoded, detected, err := codec.Decode(raw)
			require.NoError(t, err)
			assert.Equal(t, enc, detected)
			assert.Equal(t, text, decoded)

			// Re-encoding reproduces the exact bytes, BOM included.
			again, err := codec.Encode(decoded, detected)
			require.NoError(t, err)
			assert.Equal(t, raw, again)
		})
	}
}

func TestCodec_Decode_BOMDetection(t *testing.T) {
	codec := NewCodec()

	tests := []struct {
		name string
		raw  []byte
		text string
		enc  domain.Encoding
	}{
		{"plain utf-8", []byte("hi"), "hi", domain.EncodingUTF8},
		{"utf-8 with BOM", []byte{0xEF, 0xBB, 0xBF, 'h', 'i'}, "hi", domain.EncodingUTF8BOM},
		{"utf-16 little endian", []byte{0xFF, 0xFE, 'h', 0x00, 'i', 0x00}, "hi", domain.EncodingUTF16LE},
		{"utf-16 big endian", []byte{0xFE, 0xFF, 0x00, 'h', 0x00, 'i'}, "hi", domain.EncodingUTF16BE},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			text, enc, err := codec.Decode(tt.raw)
			require.NoError(t, err)
			assert.Equal(t, tt.text, text)
			assert.Equal(t, tt.enc, enc)
		})
	}
}

func TestCodec_Decode_InvalidBytes(t *testing.T) {
	_, _, err := NewCodec().Decode([]byte{0xC3, 0x28, 0xA0, 0xA1})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrValidation))
}

func TestCodec_Encode_UTF16LE_Layout(t *testing.T) {
	raw, err := NewCodec().Encode("A", domain.EncodingUTF16LE)
	require.NoError(t, err)
	assert.Equal(t, []byte{0xFF, 0xFE, 0x41, 0x00}, raw)
}

func TestCodec_Encode_UnknownEncoding(t *testing.T) {
	_, err := NewCodec().Encode("x", domain.Encoding("latin-1"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrConfiguration))
}
