package services

import (
	"context"
	"path/filepath"

	"github.com/lociq/sdlsplit/internal/core/domain"
	"github.com/lociq/sdlsplit/internal/core/ports/driven"
	"github.com/lociq/sdlsplit/internal/core/ports/driving"
)

// Ensure InspectService implements the interface.
var _ driving.InspectService = (*InspectService)(nil)

// InspectService summarises documents and parts without touching them.
type InspectService struct {
	files   driven.FileStore
	scanner *Scanner
}

// NewInspectService creates an inspect service.
func NewInspectService(files driven.FileStore) *InspectService {
	return &InspectService{files: files, scanner: NewScanner()}
}

// Inspect implements driving.InspectService.
func (s *InspectService) Inspect(_ context.Context, path string) (*driving.DocumentInfo, error) {
	tf, err := s.files.Read(path)
	if err != nil {
		return nil, err
	}
	doc, err := s.scanner.Scan(filepath.Base(path), tf.Text, tf.Encoding, tf.Checksum)
	if err != nil {
		return nil, err
	}
	return &driving.DocumentInfo{
		Path:       path,
		Encoding:   tf.Encoding,
		Segments:   len(doc.Segments),
		Words:      doc.TotalWords(),
		Translated: doc.TranslatedCount(),
		Groups:     len(doc.Groups),
		Descriptor: domain.DecodeDescriptor(tf.Text),
	}, nil
}
