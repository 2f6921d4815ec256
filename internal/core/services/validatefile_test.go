package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lociq/sdlsplit/internal/core/domain"
	"github.com/lociq/sdlsplit/internal/core/ports/driving"
)

func TestValidateFile(t *testing.T) {
	files, _, split, _ := newEngine()
	files.put("report.sdlxliff", fourUnitDoc(), domain.EncodingUTF8)
	files.put("broken.sdlxliff", "<xliff/>", domain.EncodingUTF8)

	res, err := split.Split(context.Background(), driving.SplitRequest{
		InputPath:  "report.sdlxliff",
		PartsCount: 2,
	})
	require.NoError(t, err)

	fv := NewFileValidator(files, NewValidationService())

	splitPart, err := fv.ValidateFile(context.Background(), "report.sdlxliff")
	require.NoError(t, err)
	assert.False(t, splitPart)

	splitPart, err = fv.ValidateFile(context.Background(), res.Parts[0].Path)
	require.NoError(t, err)
	assert.True(t, splitPart)

	_, err = fv.ValidateFile(context.Background(), "broken.sdlxliff")
	assert.Error(t, err)

	_, err = fv.ValidateFile(context.Background(), "missing.sdlxliff")
	assert.Error(t, err)
}
