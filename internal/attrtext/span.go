package attrtext

import "sort"

// Span is a contiguous range over which one attribution holds.
// Start and End are inclusive, 0-based byte offsets into the text.
type Span struct {
	Attribution Attribution
	Start       int
	End         int
}

// Contains reports whether offset lies within the span.
func (s Span) Contains(offset int) bool {
	return offset >= s.Start && offset <= s.End
}

// overlaps reports whether the span intersects the inclusive range [start, end].
func (s Span) overlaps(start, end int) bool {
	return s.Start <= end && s.End >= start
}

// overlapsOrAbuts reports whether the span intersects or directly touches
// the inclusive range [start, end].
func (s Span) overlapsOrAbuts(start, end int) bool {
	return s.Start <= end+1 && s.End >= start-1
}

// sameSpan reports whether two spans cover the same range with mergeable
// attributions. Used by Equal for order-independent span set comparison.
func (s Span) sameSpan(other Span) bool {
	return s.Start == other.Start && s.End == other.End &&
		s.Attribution.CanMergeWith(other.Attribution)
}

// sortSpans orders spans by start offset, then end offset, then
// attribution id so iteration order is deterministic.
func sortSpans(spans []Span) {
	sort.SliceStable(spans, func(i, j int) bool {
		if spans[i].Start != spans[j].Start {
			return spans[i].Start < spans[j].Start
		}
		if spans[i].End != spans[j].End {
			return spans[i].End < spans[j].End
		}
		return spans[i].Attribution.ID() < spans[j].Attribution.ID()
	})
}
