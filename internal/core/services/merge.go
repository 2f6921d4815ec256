package services

import (
	"context"
	"fmt"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/lociq/sdlsplit/internal/core/domain"
	"github.com/lociq/sdlsplit/internal/core/ports/driven"
	"github.com/lociq/sdlsplit/internal/core/ports/driving"
	"github.com/lociq/sdlsplit/internal/logger"
)

// Ensure MergeService implements the interface.
var _ driving.MergeService = (*MergeService)(nil)

// MergeService reassembles a part set with one of three strategies:
// rebuild from parts, target overlay onto the original, or byte-exact
// concatenation.
type MergeService struct {
	files     driven.FileStore
	history   driven.HistoryStore
	validator driving.Validator
	scanner   *Scanner
}

// NewMergeService creates a merge service. history may be nil.
func NewMergeService(files driven.FileStore, history driven.HistoryStore, validator driving.Validator) *MergeService {
	return &MergeService{
		files:     files,
		history:   history,
		validator: validator,
		scanner:   NewScanner(),
	}
}

// Merge implements driving.MergeService.
func (m *MergeService) Merge(ctx context.Context, req driving.MergeRequest) (*driving.MergeResult, error) {
	if len(req.PartPaths) < 2 {
		return nil, fmt.Errorf("%w: merging needs at least 2 parts, got %d", domain.ErrValidation, len(req.PartPaths))
	}

	logger.Section("Merge")
	parts, enc, err := m.readParts(req.PartPaths)
	if err != nil {
		return nil, err
	}
	report(req.Progress, 10, fmt.Sprintf("read %d parts", len(parts)))

	var (
		merged    string
		untouched []string
		splitID   string
	)
	switch req.Mode {
	case domain.MergeByteExact:
		// Correctness rests entirely on the byte-exact splitter
		// having preserved every inter-group byte; nothing to check
		// beyond concatenation order.
		var b strings.Builder
		for i := range parts {
			b.WriteString(parts[i].Content)
		}
		merged = b.String()

	case domain.MergeReconstruct:
		if err := m.validator.ValidateForMerging(parts); err != nil {
			return nil, err
		}
		splitID = parts[0].Descriptor.SplitID
		if stopped(req.ShouldStop) {
			return nil, domain.ErrStopped
		}
		report(req.Progress, 30, "rebuilding document from parts")
		merged, err = m.reconstruct(parts)
		if err != nil {
			return nil, err
		}

	case domain.MergeOverlay:
		if req.OriginalPath == "" {
			return nil, fmt.Errorf("%w: overlay merge requires the original document", domain.ErrConfiguration)
		}
		if err := m.validator.ValidateForMerging(parts); err != nil {
			return nil, err
		}
		splitID = parts[0].Descriptor.SplitID
		if stopped(req.ShouldStop) {
			return nil, domain.ErrStopped
		}
		report(req.Progress, 30, "overlaying targets onto original")
		merged, untouched, err = m.overlay(req.OriginalPath, parts, req.Duplicates)
		if err != nil {
			return nil, err
		}

	default:
		return nil, fmt.Errorf("%w: unknown merge mode %q", domain.ErrConfiguration, req.Mode)
	}

	if stopped(req.ShouldStop) {
		return nil, domain.ErrStopped
	}

	var untranslated []string
	segments := 0
	if req.Mode != domain.MergeByteExact {
		if err := m.validator.ValidateMergedFile(merged); err != nil {
			return nil, err
		}
		untranslated, segments, err = m.completeness(merged, enc)
		if err != nil {
			return nil, err
		}
	}

	out := req.OutputPath
	if out == "" {
		out = defaultMergePath(req.PartPaths[0], parts)
	}
	report(req.Progress, 90, "writing merged document")
	if err := m.files.Write(out, merged, enc); err != nil {
		return nil, err
	}
	report(req.Progress, 100, "merge complete")

	res := &driving.MergeResult{
		OutputPath:   out,
		Segments:     segments,
		Untranslated: untranslated,
		Untouched:    untouched,
	}
	m.record(ctx, domain.Operation{
		ID:        uuid.New().String(),
		Kind:      "merge",
		SplitID:   splitID,
		Input:     req.PartPaths[0],
		Outputs:   []string{out},
		Parts:     len(parts),
		Segments:  segments,
		Status:    "ok",
		CreatedAt: time.Now(),
	})
	return res, nil
}

// readParts loads and decodes every part and requires one common
// encoding across the set.
func (m *MergeService) readParts(paths []string) ([]domain.Part, domain.Encoding, error) {
	parts := make([]domain.Part, 0, len(paths))
	var enc domain.Encoding
	for i, path := range paths {
		tf, err := m.files.Read(path)
		if err != nil {
			return nil, "", err
		}
		if i == 0 {
			enc = tf.Encoding
		} else if tf.Encoding != enc {
			return nil, "", fmt.Errorf("%w: %s is %s, other parts are %s",
				domain.ErrCompatibility, filepath.Base(path), tf.Encoding, enc)
		}
		parts = append(parts, domain.Part{
			Name:       filepath.Base(path),
			Content:    tf.Text,
			Descriptor: domain.DecodeDescriptor(tf.Text),
		})
	}
	return parts, enc, nil
}

// reconstruct rebuilds the whole document purely from the parts:
// header and tail come from part 1 with the descriptor stripped,
// segments are emitted once each in part order with their groups
// reopened from the parts' own opening tags. A group whose opening tag
// continues across a part boundary is merged rather than reopened.
func (m *MergeService) reconstruct(parts []domain.Part) (string, error) {
	ordered := make([]domain.Part, len(parts))
	copy(ordered, parts)
	sort.Slice(ordered, func(i, j int) bool {
		return ordered[i].Descriptor.PartNumber < ordered[j].Descriptor.PartNumber
	})

	docs := make([]*domain.Document, len(ordered))
	for i := range ordered {
		doc, err := m.scanner.Scan(ordered[i].Name, domain.StripDescriptor(ordered[i].Content), "", "")
		if err != nil {
			return "", fmt.Errorf("part %s: %w", ordered[i].Name, err)
		}
		docs[i] = doc
	}

	var b strings.Builder
	b.WriteString(docs[0].HeaderText())
	for _, blk := range ContextBlocks(docs[0]) {
		b.WriteString("\n")
		b.WriteString(blk)
	}

	seen := make(map[string]bool)
	var openTags []string
	for pi, doc := range docs {
		for i := range doc.Segments {
			seg := &doc.Segments[i]
			if seen[seg.ID] {
				logger.Warn("duplicate segment id %q in %s skipped", seg.ID, ordered[pi].Name)
				continue
			}
			seen[seg.ID] = true

			want := make([]string, 0, len(seg.GroupPath))
			for _, gid := range seg.GroupPath {
				want = append(want, doc.Group(gid).OpenTag)
			}
			common := 0
			for common < len(openTags) && common < len(want) && openTags[common] == want[common] {
				common++
			}
			for j := len(openTags); j > common; j-- {
				b.WriteString("\n</group>")
			}
			openTags = openTags[:common]
			for _, tag := range want[common:] {
				b.WriteString("\n")
				b.WriteString(tag)
				openTags = append(openTags, tag)
			}
			b.WriteString("\n")
			b.WriteString(doc.SegmentText(i))
		}
	}
	for range openTags {
		b.WriteString("\n</group>")
	}
	b.WriteString("\n")
	b.WriteString(docs[0].TailText())
	return b.String(), nil
}

// overlay splices each part's trans-units onto the pristine original
// at their exact original offsets. Every byte outside a replaced
// trans-unit is left untouched. Ids the parts never supplied stay as
// they were and are reported, not failed.
func (m *MergeService) overlay(originalPath string, parts []domain.Part, policy domain.DuplicatePolicy) (string, []string, error) {
	tf, err := m.files.Read(originalPath)
	if err != nil {
		return "", nil, err
	}
	orig, err := m.scanner.Scan(filepath.Base(originalPath), tf.Text, tf.Encoding, tf.Checksum)
	if err != nil {
		return "", nil, err
	}
	if d := parts[0].Descriptor; d != nil && d.OriginalChecksum != "" && d.OriginalChecksum != orig.Checksum {
		logger.Warn("original %s does not match the checksum recorded at split time; overlaying anyway", orig.Name)
	}

	ordered := make([]domain.Part, len(parts))
	copy(ordered, parts)
	sort.Slice(ordered, func(i, j int) bool {
		return ordered[i].Descriptor.PartNumber < ordered[j].Descriptor.PartNumber
	})

	replacements := make(map[string]string)
	for _, part := range ordered {
		doc, err := m.scanner.Scan(part.Name, domain.StripDescriptor(part.Content), "", "")
		if err != nil {
			return "", nil, fmt.Errorf("part %s: %w", part.Name, err)
		}
		for i := range doc.Segments {
			id := doc.Segments[i].ID
			if _, dup := replacements[id]; dup {
				logger.Warn("segment id %q supplied by more than one part; %s policy applies", id, policy)
				if policy == domain.DuplicateFirstWins {
					continue
				}
			}
			replacements[id] = doc.SegmentText(i)
		}
	}

	var untouched []string
	var b strings.Builder
	b.Grow(len(orig.Text))
	b.WriteString(orig.HeaderText())
	for i := range orig.Segments {
		b.WriteString(orig.Gap(i))
		if r, ok := replacements[orig.Segments[i].ID]; ok {
			b.WriteString(r)
		} else {
			b.WriteString(orig.SegmentText(i))
			untouched = append(untouched, orig.Segments[i].ID)
		}
	}
	b.WriteString(orig.TrailingGap())
	b.WriteString(orig.TailText())
	merged := b.String()

	for _, id := range untouched {
		logger.Warn("segment id %q was not supplied by any part; original content kept", id)
	}
	logStructuralDiff(orig.Text, merged)
	return merged, untouched, nil
}

// logStructuralDiff compares counts of structural markers before and
// after an overlay to flag unintended structural loss.
func logStructuralDiff(before, after string) {
	markers := []string{"<group", "</group>", "<cxt-defs", "<trans-unit"}
	for _, marker := range markers {
		b := strings.Count(before, marker)
		a := strings.Count(after, marker)
		if a != b {
			logger.Warn("structural snapshot changed: %s count %d -> %d", marker, b, a)
		}
	}
}

// completeness scans the merged result and reports segment ids whose
// target is still empty. Informational only.
func (m *MergeService) completeness(merged string, enc domain.Encoding) ([]string, int, error) {
	doc, err := m.scanner.Scan("merged", merged, enc, "")
	if err != nil {
		return nil, 0, err
	}
	var untranslated []string
	for i := range doc.Segments {
		if !doc.Segments[i].Translated {
			untranslated = append(untranslated, doc.Segments[i].ID)
		}
	}
	return untranslated, len(doc.Segments), nil
}

// record persists the operation; failures only warn.
func (m *MergeService) record(ctx context.Context, op domain.Operation) {
	if m.history == nil {
		return
	}
	if err := m.history.Record(ctx, op); err != nil {
		logger.Warn("recording %s history: %v", op.Kind, err)
	}
}

// defaultMergePath derives {stem}_merged{ext} from the original name
// recorded in the descriptors, falling back to the first part's name
// with its part suffix removed.
func defaultMergePath(firstPart string, parts []domain.Part) string {
	dir := filepath.Dir(firstPart)
	name := filepath.Base(firstPart)
	if d := parts[0].Descriptor; d != nil && d.OriginalName != "" {
		name = d.OriginalName
	} else {
		name = partSuffixRe.ReplaceAllString(name, "$2")
	}
	ext := filepath.Ext(name)
	stem := strings.TrimSuffix(name, ext)
	return filepath.Join(dir, stem+"_merged"+ext)
}

// partSuffixRe strips ".NofM" or ".partN" from a part file name.
var partSuffixRe = regexp.MustCompile(`\.(\d+of\d+|part\d+)(\.[^.]+)$`)
