package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lociq/sdlsplit/internal/core/domain"
	"github.com/lociq/sdlsplit/internal/core/ports/driving"
)

func TestInspect_Document(t *testing.T) {
	files := newFakeFileStore()
	files.put("report.sdlxliff", groupedDoc(), domain.EncodingUTF8)

	info, err := NewInspectService(files).Inspect(context.Background(), "report.sdlxliff")
	require.NoError(t, err)

	assert.Equal(t, "report.sdlxliff", info.Path)
	assert.Equal(t, domain.EncodingUTF8, info.Encoding)
	assert.Equal(t, 6, info.Segments)
	assert.Equal(t, 12, info.Words)
	assert.Equal(t, 0, info.Translated)
	assert.Equal(t, 3, info.Groups)
	assert.Nil(t, info.Descriptor)
}

func TestInspect_SplitPart(t *testing.T) {
	files, _, split, _ := newEngine()
	files.put("report.sdlxliff", fourUnitDoc(), domain.EncodingUTF8)

	res, err := split.Split(context.Background(), driving.SplitRequest{
		InputPath:  "report.sdlxliff",
		PartsCount: 2,
	})
	require.NoError(t, err)

	info, err := NewInspectService(files).Inspect(context.Background(), res.Parts[0].Path)
	require.NoError(t, err)

	assert.Equal(t, 2, info.Segments)
	require.NotNil(t, info.Descriptor)
	assert.Equal(t, res.SplitID, info.Descriptor.SplitID)
	assert.Equal(t, 1, info.Descriptor.PartNumber)
}

func TestInspect_MissingFile(t *testing.T) {
	files := newFakeFileStore()

	_, err := NewInspectService(files).Inspect(context.Background(), "nope.sdlxliff")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrIO))
}
