package services

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/lociq/sdlsplit/internal/core/domain"
	"github.com/lociq/sdlsplit/internal/core/ports/driven"
	"github.com/lociq/sdlsplit/internal/core/ports/driving"
	"github.com/lociq/sdlsplit/internal/logger"
)

// Ensure SplitService implements the interface.
var _ driving.SplitService = (*SplitService)(nil)

// SplitService orchestrates one split: validate, index, partition,
// assemble, write. All state is scoped to a single call.
type SplitService struct {
	files     driven.FileStore
	history   driven.HistoryStore
	validator driving.Validator
	scanner   *Scanner
}

// NewSplitService creates a split service. history may be nil; runs
// are then not recorded.
func NewSplitService(files driven.FileStore, history driven.HistoryStore, validator driving.Validator) *SplitService {
	return &SplitService{
		files:     files,
		history:   history,
		validator: validator,
		scanner:   NewScanner(),
	}
}

// Split implements driving.SplitService.
func (s *SplitService) Split(ctx context.Context, req driving.SplitRequest) (*driving.SplitResult, error) {
	if req.PartsCount != 0 && req.WordsPerPart != 0 {
		return nil, fmt.Errorf("%w: parts count and words per part are mutually exclusive", domain.ErrConfiguration)
	}
	if req.PartsCount == 0 && req.WordsPerPart == 0 {
		return nil, fmt.Errorf("%w: either a parts count or a words-per-part target is required", domain.ErrConfiguration)
	}
	if req.ByteExact && req.WordsPerPart != 0 {
		return nil, fmt.Errorf("%w: byte-exact splitting works on group counts, not word targets", domain.ErrConfiguration)
	}
	if req.ByteExact && (req.PartsCount < MinParts || req.PartsCount > MaxParts) {
		return nil, fmt.Errorf("%w: parts count %d outside [%d, %d]",
			domain.ErrConfiguration, req.PartsCount, MinParts, MaxParts)
	}

	logger.Section("Split")
	tf, err := s.files.Read(req.InputPath)
	if err != nil {
		return nil, err
	}
	name := filepath.Base(req.InputPath)

	report(req.Progress, 5, "validating document")
	if req.ByteExact {
		err = s.validator.Validate(tf.Text)
	} else {
		err = s.validator.ValidateForSplitting(tf.Text)
	}
	if err != nil {
		return nil, err
	}
	if stopped(req.ShouldStop) {
		return nil, domain.ErrStopped
	}

	doc, err := s.scanner.Scan(name, tf.Text, tf.Encoding, tf.Checksum)
	if err != nil {
		return nil, err
	}
	report(req.Progress, 15, fmt.Sprintf("indexed %d segments, %d words", len(doc.Segments), doc.TotalWords()))

	var (
		texts   []string
		infos   []driving.PartInfo
		splitID string
	)
	if req.ByteExact {
		texts, err = byteExactSlices(doc, req.PartsCount)
		if err != nil {
			return nil, err
		}
		infos = make([]driving.PartInfo, len(texts))
		for i := range texts {
			infos[i].Segments = len(transUnitCountRe.FindAllString(texts[i], -1))
		}
	} else {
		texts, infos, splitID, err = s.assembleParts(doc, req)
		if err != nil {
			return nil, err
		}
	}
	if stopped(req.ShouldStop) {
		return nil, domain.ErrStopped
	}

	outDir := req.OutputDir
	if outDir == "" {
		outDir = filepath.Dir(req.InputPath)
	}
	paths := make([]string, len(texts))
	for i := range texts {
		paths[i] = filepath.Join(outDir, partFileName(name, i+1, len(texts), req.PartNaming))
		infos[i].Path = paths[i]
	}

	report(req.Progress, 90, fmt.Sprintf("writing %d parts", len(texts)))
	if err := s.files.WriteBatch(ctx, paths, texts, tf.Encoding); err != nil {
		return nil, err
	}
	report(req.Progress, 100, "split complete")

	res := &driving.SplitResult{
		SplitID:       splitID,
		Parts:         infos,
		TotalSegments: len(doc.Segments),
		TotalWords:    doc.TotalWords(),
	}
	s.record(ctx, domain.Operation{
		ID:        uuid.New().String(),
		Kind:      "split",
		SplitID:   splitID,
		Input:     req.InputPath,
		Outputs:   paths,
		Parts:     len(texts),
		Segments:  res.TotalSegments,
		Words:     res.TotalWords,
		Status:    "ok",
		CreatedAt: time.Now(),
	})
	return res, nil
}

// assembleParts computes the ranges and renders one sub-document per
// range. Every rendered part must itself pass base validation before
// anything is written.
func (s *SplitService) assembleParts(doc *domain.Document, req driving.SplitRequest) ([]string, []driving.PartInfo, string, error) {
	var strategy BoundaryStrategy
	if req.PartsCount != 0 {
		strategy = NewEqualCountStrategy(req.PartsCount)
	} else {
		strategy = NewWordTargetStrategy(req.WordsPerPart)
	}

	ranges, err := strategy.Ranges(doc)
	if err != nil {
		return nil, nil, "", err
	}
	if req.PreserveGroups {
		ranges, err = adjustForGroups(doc, ranges)
		if err != nil {
			return nil, nil, "", err
		}
	}
	report(req.Progress, 30, fmt.Sprintf("partitioned into %d ranges (%s)", len(ranges), strategy.Name()))
	if stopped(req.ShouldStop) {
		return nil, nil, "", domain.ErrStopped
	}

	splitID := uuid.New().String()
	now := time.Now()
	texts := make([]string, 0, len(ranges))
	infos := make([]driving.PartInfo, 0, len(ranges))
	opts := AssembleOptions{DuplicateContext: req.DuplicateContext}

	for k, rng := range ranges {
		if stopped(req.ShouldStop) {
			return nil, nil, "", domain.ErrStopped
		}
		words := 0
		for i := rng.From; i < rng.To; i++ {
			words += doc.Segments[i].Words
		}
		desc := &domain.SplitDescriptor{
			SplitID:          splitID,
			PartNumber:       k + 1,
			TotalParts:       len(ranges),
			OriginalName:     doc.Name,
			CreatedAt:        now,
			FirstSegment:     rng.From,
			LastSegment:      rng.To - 1,
			PartSegments:     rng.To - rng.From,
			PartWords:        words,
			TotalSegments:    len(doc.Segments),
			TotalWords:       doc.TotalWords(),
			OriginalChecksum: doc.Checksum,
			Encoding:         string(doc.Encoding),
		}
		text := AssemblePart(doc, rng, desc, opts)
		if err := s.validator.Validate(text); err != nil {
			return nil, nil, "", fmt.Errorf("assembled part %d is not valid: %w", k+1, err)
		}
		texts = append(texts, text)
		infos = append(infos, driving.PartInfo{Segments: rng.To - rng.From, Words: words})
		report(req.Progress, 30+60*(k+1)/len(ranges), fmt.Sprintf("assembled part %d of %d", k+1, len(ranges)))
	}
	return texts, infos, splitID, nil
}

// record persists the operation; failures only warn, the split itself
// already succeeded.
func (s *SplitService) record(ctx context.Context, op domain.Operation) {
	if s.history == nil {
		return
	}
	if err := s.history.Record(ctx, op); err != nil {
		logger.Warn("recording %s history: %v", op.Kind, err)
	}
}

// partFileName builds the part file name for the chosen pattern.
func partFileName(original string, i, n int, pattern string) string {
	ext := filepath.Ext(original)
	stem := strings.TrimSuffix(original, ext)
	if pattern == "partN" {
		return fmt.Sprintf("%s.part%d%s", stem, i, ext)
	}
	return fmt.Sprintf("%s.%dof%d%s", stem, i, n, ext)
}

// report invokes the progress callback when one is set.
func report(fn driving.ProgressFunc, percent int, message string) {
	if fn != nil {
		fn(percent, message)
	}
}

// stopped polls the caller's stop predicate.
func stopped(fn driving.StopFunc) bool {
	return fn != nil && fn()
}
