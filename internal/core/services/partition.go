package services

import (
	"fmt"

	"github.com/lociq/sdlsplit/internal/core/domain"
)

// Partitioning limits.
const (
	// MinParts and MaxParts bound the part count of one split.
	MinParts = 2
	MaxParts = 100

	// MinWordsPerPart and MaxWordsPerPart bound the word target.
	MinWordsPerPart = 10
	MaxWordsPerPart = 50000
)

// Range is a half-open [From, To) slice of a document's segment list.
type Range struct {
	From int
	To   int
}

// BoundaryStrategy computes the raw part ranges over a document's
// segment list. Group adjustment is applied afterwards and is not a
// strategy concern.
type BoundaryStrategy interface {
	// Name identifies the strategy in logs and history records.
	Name() string

	// Ranges partitions the document into contiguous, non-empty
	// ranges covering every segment exactly once.
	Ranges(doc *domain.Document) ([]Range, error)
}

// equalCountStrategy distributes segments into a fixed number of
// contiguous ranges, giving the remainder to the first parts.
type equalCountStrategy struct {
	parts int
}

// NewEqualCountStrategy creates the equal-count boundary strategy.
func NewEqualCountStrategy(parts int) BoundaryStrategy {
	return &equalCountStrategy{parts: parts}
}

func (s *equalCountStrategy) Name() string {
	return "equal-count"
}

func (s *equalCountStrategy) Ranges(doc *domain.Document) ([]Range, error) {
	if s.parts < MinParts || s.parts > MaxParts {
		return nil, fmt.Errorf("%w: parts count %d outside [%d, %d]",
			domain.ErrConfiguration, s.parts, MinParts, MaxParts)
	}
	total := len(doc.Segments)
	if s.parts > total {
		return nil, fmt.Errorf("%w: %d parts requested but document has only %d segments",
			domain.ErrConfiguration, s.parts, total)
	}

	base := total / s.parts
	rem := total % s.parts
	ranges := make([]Range, 0, s.parts)
	from := 0
	for i := 0; i < s.parts; i++ {
		size := base
		if i < rem {
			size++
		}
		ranges = append(ranges, Range{From: from, To: from + size})
		from += size
	}
	return ranges, nil
}

// wordTargetStrategy derives a part count from a words-per-part target
// and then accumulates segments greedily until each part reaches its
// share of the total word count. The last part absorbs any remainder.
type wordTargetStrategy struct {
	wordsPerPart int
}

// NewWordTargetStrategy creates the word-target boundary strategy.
func NewWordTargetStrategy(wordsPerPart int) BoundaryStrategy {
	return &wordTargetStrategy{wordsPerPart: wordsPerPart}
}

func (s *wordTargetStrategy) Name() string {
	return "word-target"
}

func (s *wordTargetStrategy) Ranges(doc *domain.Document) ([]Range, error) {
	if s.wordsPerPart < MinWordsPerPart || s.wordsPerPart > MaxWordsPerPart {
		return nil, fmt.Errorf("%w: words per part %d outside [%d, %d]",
			domain.ErrConfiguration, s.wordsPerPart, MinWordsPerPart, MaxWordsPerPart)
	}
	total := len(doc.Segments)
	if total < MinParts {
		return nil, fmt.Errorf("%w: document has only %d segments",
			domain.ErrConfiguration, total)
	}

	totalWords := doc.TotalWords()
	// A target larger than the whole document still yields the
	// minimum of two parts. The derived count obeys the same limits
	// as an explicit parts count.
	parts := (totalWords + s.wordsPerPart - 1) / s.wordsPerPart
	if parts < MinParts {
		parts = MinParts
	}
	if parts > total {
		parts = total
	}
	if parts > MaxParts {
		parts = MaxParts
	}

	ranges := make([]Range, 0, parts)
	from := 0
	cum := 0
	idx := 0
	for k := 1; k < parts; k++ {
		// Each boundary targets the part's share of the total.
		target := totalWords * k / parts
		// Leave at least one segment for every remaining part.
		maxTo := total - (parts - k)
		for idx < maxTo && (cum < target || idx <= from) {
			cum += doc.Segments[idx].Words
			idx++
		}
		if idx <= from {
			idx = from + 1
		}
		ranges = append(ranges, Range{From: from, To: idx})
		from = idx
	}
	ranges = append(ranges, Range{From: from, To: total})
	return ranges, nil
}

// safeCut reports whether a boundary between segments b-1 and b splits
// no group. Shared enclosing groups always form a common prefix of the
// two group paths, so comparing the outermost entries is sufficient.
func safeCut(doc *domain.Document, b int) bool {
	if b <= 0 || b >= len(doc.Segments) {
		return true
	}
	prev := doc.Segments[b-1].GroupPath
	cur := doc.Segments[b].GroupPath
	if len(prev) == 0 || len(cur) == 0 {
		return true
	}
	return prev[0] != cur[0]
}

// adjustForGroups moves every internal boundary off a group: first
// left to the nearest safe cut inside the part, otherwise forward past
// the group in progress. Guarantees no group is split across parts, or
// fails when the document cannot be divided that way.
func adjustForGroups(doc *domain.Document, ranges []Range) ([]Range, error) {
	n := len(doc.Segments)
	adjusted := make([]Range, len(ranges))
	copy(adjusted, ranges)

	for i := 0; i < len(adjusted)-1; i++ {
		b := adjusted[i].To
		if b <= adjusted[i].From {
			b = adjusted[i].From + 1
		}
		if !safeCut(doc, b) {
			moved := -1
			for left := b - 1; left > adjusted[i].From; left-- {
				if safeCut(doc, left) {
					moved = left
					break
				}
			}
			if moved < 0 {
				for right := b + 1; right < n; right++ {
					if safeCut(doc, right) {
						moved = right
						break
					}
				}
			}
			if moved < 0 {
				return nil, fmt.Errorf("%w: cannot place a part boundary near segment %d without splitting a group",
					domain.ErrStructural, b)
			}
			b = moved
		}
		if n-b < len(adjusted)-1-i {
			return nil, fmt.Errorf("%w: group boundaries leave no room for %d parts",
				domain.ErrStructural, len(adjusted))
		}
		adjusted[i].To = b
		adjusted[i+1].From = b
		if adjusted[i+1].To < b+1 {
			adjusted[i+1].To = b + 1
		}
	}
	last := &adjusted[len(adjusted)-1]
	last.To = n
	if last.From >= last.To {
		return nil, fmt.Errorf("%w: group boundaries leave an empty final part", domain.ErrStructural)
	}
	return adjusted, nil
}
