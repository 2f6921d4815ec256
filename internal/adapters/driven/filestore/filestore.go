// Package filestore implements encoded file access for the engine.
// Writes are atomic: content is staged to a temporary file in the
// target directory and renamed into place. Batch writes are
// transactional across the whole part set, so a failed split never
// leaves a partial set of part files behind.
package filestore

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"

	"github.com/lociq/sdlsplit/internal/core/domain"
	"github.com/lociq/sdlsplit/internal/core/ports/driven"
	"github.com/lociq/sdlsplit/internal/logger"
)

// Ensure Store implements the interface.
var _ driven.FileStore = (*Store)(nil)

// Store reads and writes documents through a text codec.
type Store struct {
	codec driven.TextCodec
}

// New creates a file store using the given codec.
func New(codec driven.TextCodec) *Store {
	return &Store{codec: codec}
}

// Read decodes the file at path and computes the raw checksum.
func (s *Store) Read(path string) (*driven.TextFile, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: reading %s: %v", domain.ErrIO, path, err)
	}
	text, enc, err := s.codec.Decode(raw)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}
	sum := sha256.Sum256(raw)
	return &driven.TextFile{
		Text:     text,
		Encoding: enc,
		Checksum: hex.EncodeToString(sum[:]),
	}, nil
}

// Write encodes text and writes it atomically to path.
func (s *Store) Write(path string, text string, enc domain.Encoding) error {
	raw, err := s.codec.Encode(text, enc)
	if err != nil {
		return err
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o644); err != nil {
		return fmt.Errorf("%w: writing %s: %v", domain.ErrIO, path, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		removeQuiet(tmp)
		return fmt.Errorf("%w: committing %s: %v", domain.ErrIO, path, err)
	}
	return nil
}

// WriteBatch writes every file or none. All texts are staged first;
// renames happen only after every stage succeeded.
func (s *Store) WriteBatch(ctx context.Context, paths []string, texts []string, enc domain.Encoding) error {
	if len(paths) != len(texts) {
		return fmt.Errorf("%w: %d paths for %d texts", domain.ErrIO, len(paths), len(texts))
	}

	staged := make([]string, 0, len(paths))
	cleanup := func() {
		for _, tmp := range staged {
			removeQuiet(tmp)
		}
	}

	for i := range paths {
		if err := ctx.Err(); err != nil {
			cleanup()
			return fmt.Errorf("%w: %v", domain.ErrStopped, err)
		}
		raw, err := s.codec.Encode(texts[i], enc)
		if err != nil {
			cleanup()
			return err
		}
		tmp := paths[i] + ".tmp"
		if err := os.MkdirAll(filepath.Dir(paths[i]), 0o755); err != nil {
			cleanup()
			return fmt.Errorf("%w: creating %s: %v", domain.ErrIO, filepath.Dir(paths[i]), err)
		}
		if err := os.WriteFile(tmp, raw, 0o644); err != nil {
			cleanup()
			return fmt.Errorf("%w: staging %s: %v", domain.ErrIO, paths[i], err)
		}
		staged = append(staged, tmp)
	}

	for i, tmp := range staged {
		if err := os.Rename(tmp, paths[i]); err != nil {
			// Commit failed midway; remove the files not yet renamed.
			for _, rest := range staged[i:] {
				removeQuiet(rest)
			}
			return fmt.Errorf("%w: committing %s: %v", domain.ErrIO, paths[i], err)
		}
	}
	return nil
}

func removeQuiet(path string) {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		logger.Warn("removing %s: %v", path, err)
	}
}
