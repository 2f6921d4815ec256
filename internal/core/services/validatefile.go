package services

import (
	"context"

	"github.com/lociq/sdlsplit/internal/core/ports/driven"
	"github.com/lociq/sdlsplit/internal/core/ports/driving"
)

// Ensure FileValidator implements the interface.
var _ driving.FileValidator = (*FileValidator)(nil)

// FileValidator validates documents on disk.
type FileValidator struct {
	files     driven.FileStore
	validator driving.Validator
}

// NewFileValidator creates a file validator.
func NewFileValidator(files driven.FileStore, validator driving.Validator) *FileValidator {
	return &FileValidator{files: files, validator: validator}
}

// ValidateFile implements driving.FileValidator.
func (s *FileValidator) ValidateFile(_ context.Context, path string) (bool, error) {
	tf, err := s.files.Read(path)
	if err != nil {
		return false, err
	}
	return s.validator.IsSplitPart(tf.Text), s.validator.Validate(tf.Text)
}
