package attrtext

// Text is a string with run-length attribution spans.
//
// Text is not safe for concurrent mutation; the document layer guarantees
// a single writer. The zero value is not usable; use New.
type Text struct {
	text  string
	spans []Span
}

// New creates attributed text. Initial spans are coalesced so the merge
// invariant holds from the start; spans that fall outside the text are
// dropped.
func New(text string, spans ...Span) *Text {
	t := &Text{text: text}
	for _, s := range spans {
		if s.Start > s.End || s.Start < 0 || s.End >= len(text) {
			continue
		}
		t.mergeIn(s)
	}
	sortSpans(t.spans)
	return t
}

// String returns the underlying text.
func (t *Text) String() string { return t.text }

// Len returns the byte length of the text.
func (t *Text) Len() int { return len(t.text) }

// IsEmpty reports whether the text is empty.
func (t *Text) IsEmpty() bool { return len(t.text) == 0 }

// Spans returns a copy of the span set in deterministic order.
func (t *Text) Spans() []Span {
	out := make([]Span, len(t.spans))
	copy(out, t.spans)
	return out
}

// AttributionsAt returns every attribution whose span contains offset.
func (t *Text) AttributionsAt(offset int) []Attribution {
	var out []Attribution
	for _, s := range t.spans {
		if s.Contains(offset) {
			out = append(out, s.Attribution)
		}
	}
	return out
}

// HasAttributionAt reports whether a span mergeable with a contains offset.
func (t *Text) HasAttributionAt(offset int, a Attribution) bool {
	for _, s := range t.spans {
		if s.Contains(offset) && s.Attribution.CanMergeWith(a) {
			return true
		}
	}
	return false
}

// HasAttributionsThroughout reports whether every attribution in attrs
// holds over the entire inclusive range [start, end].
//
// Because mergeable spans never abut unmerged, full coverage of a
// contiguous range implies a single span contains it.
func (t *Text) HasAttributionsThroughout(attrs []Attribution, start, end int) bool {
	for _, a := range attrs {
		covered := false
		for _, s := range t.spans {
			if s.Attribution.CanMergeWith(a) && s.Start <= start && s.End >= end {
				covered = true
				break
			}
		}
		if !covered {
			return false
		}
	}
	return true
}

// AddAttribution applies a over the inclusive range [start, end]. Any
// existing mergeable span that overlaps or abuts the range is coalesced
// into one contiguous span. Unrelated attributions are untouched and may
// freely overlap the new span.
func (t *Text) AddAttribution(a Attribution, start, end int) error {
	if start > end {
		return ErrRangeInvalid
	}
	if start < 0 || end >= len(t.text) {
		return ErrOffsetOutOfRange
	}
	t.mergeIn(Span{Attribution: a, Start: start, End: end})
	sortSpans(t.spans)
	return nil
}

// mergeIn inserts s, absorbing every mergeable span that overlaps or
// abuts it. Does not re-sort.
func (t *Text) mergeIn(s Span) {
	merged := s
	out := t.spans[:0]
	for _, existing := range t.spans {
		if existing.Attribution.CanMergeWith(s.Attribution) &&
			existing.overlapsOrAbuts(merged.Start, merged.End) {
			if existing.Start < merged.Start {
				merged.Start = existing.Start
			}
			if existing.End > merged.End {
				merged.End = existing.End
			}
			continue
		}
		out = append(out, existing)
	}
	t.spans = append(out, merged)
}

// RemoveAttribution subtracts the inclusive range [start, end] from every
// span mergeable with a. A span may be split in two, shrunk on one side,
// or deleted entirely if the range covers it.
func (t *Text) RemoveAttribution(a Attribution, start, end int) error {
	if start > end {
		return ErrRangeInvalid
	}
	if start < 0 || end >= len(t.text) {
		return ErrOffsetOutOfRange
	}

	var out []Span
	for _, s := range t.spans {
		if !s.Attribution.CanMergeWith(a) || !s.overlaps(start, end) {
			out = append(out, s)
			continue
		}
		if s.Start < start {
			out = append(out, Span{Attribution: s.Attribution, Start: s.Start, End: start - 1})
		}
		if s.End > end {
			out = append(out, Span{Attribution: s.Attribution, Start: end + 1, End: s.End})
		}
	}
	sortSpans(out)
	t.spans = out
	return nil
}

// ToggleAttribution adds a over [start, end] unless a already holds over
// the whole range, in which case it is removed. Returns true if the
// attribution was added.
func (t *Text) ToggleAttribution(a Attribution, start, end int) (bool, error) {
	if t.HasAttributionsThroughout([]Attribution{a}, start, end) {
		return false, t.RemoveAttribution(a, start, end)
	}
	return true, t.AddAttribution(a, start, end)
}

// Copy returns a new Text holding text[start:end). Spans are clipped to
// the slice and re-offset to its zero base; spans fully outside are
// dropped. The copy shares nothing with the source.
func (t *Text) Copy(start, end int) (*Text, error) {
	if start > end {
		return nil, ErrRangeInvalid
	}
	if start < 0 || end > len(t.text) {
		return nil, ErrOffsetOutOfRange
	}

	out := &Text{text: t.text[start:end]}
	if start == end {
		return out, nil
	}
	for _, s := range t.spans {
		if !s.overlaps(start, end-1) {
			continue
		}
		clipped := s
		if clipped.Start < start {
			clipped.Start = start
		}
		if clipped.End > end-1 {
			clipped.End = end - 1
		}
		clipped.Start -= start
		clipped.End -= start
		out.spans = append(out.spans, clipped)
	}
	sortSpans(out.spans)
	return out, nil
}

// CopyAll returns a full copy of the text.
func (t *Text) CopyAll() *Text {
	out, _ := t.Copy(0, len(t.text))
	return out
}

// InsertString splices s into the text at offset at. Every span starting
// at or after the edit point shifts right by len(s); spans straddling the
// edit point extend. When attrs are given, the inserted run receives them
// (merging with any abutting equal span).
func (t *Text) InsertString(s string, at int, attrs ...Attribution) error {
	if at < 0 || at > len(t.text) {
		return ErrOffsetOutOfRange
	}
	if s == "" {
		return nil
	}

	n := len(s)
	t.text = t.text[:at] + s + t.text[at:]
	for i := range t.spans {
		switch {
		case t.spans[i].Start >= at:
			t.spans[i].Start += n
			t.spans[i].End += n
		case t.spans[i].End >= at:
			t.spans[i].End += n
		}
	}
	for _, a := range attrs {
		if err := t.AddAttribution(a, at, at+n-1); err != nil {
			return err
		}
	}
	return nil
}

// RemoveRegion deletes text[start:end). Spans fully inside the region are
// deleted; spans straddling it shrink; spans after it shift left.
func (t *Text) RemoveRegion(start, end int) error {
	if start > end {
		return ErrRangeInvalid
	}
	if start < 0 || end > len(t.text) {
		return ErrOffsetOutOfRange
	}
	n := end - start
	if n == 0 {
		return nil
	}

	t.text = t.text[:start] + t.text[end:]
	var out []Span
	for _, s := range t.spans {
		switch {
		case s.End < start:
			// Entirely before the region.
		case s.Start >= end:
			s.Start -= n
			s.End -= n
		case s.Start >= start && s.End < end:
			// Fully consumed.
			continue
		case s.Start < start && s.End >= end:
			// Region is interior to the span.
			s.End -= n
		case s.Start < start:
			// Right side of the span is consumed.
			s.End = start - 1
		default:
			// Left side of the span is consumed.
			s.Start = start
			s.End -= n
		}
		out = append(out, s)
	}

	// Deleting interior text can bring two previously separated spans of
	// the same attribution together; restore the merge invariant.
	t.spans = nil
	for _, s := range out {
		t.mergeIn(s)
	}
	sortSpans(t.spans)
	return nil
}

// Append concatenates other onto the end of t. Spans crossing the seam
// merge when their attributions allow it.
func (t *Text) Append(other *Text) {
	base := len(t.text)
	t.text += other.text
	for _, s := range other.spans {
		t.mergeIn(Span{Attribution: s.Attribution, Start: s.Start + base, End: s.End + base})
	}
	sortSpans(t.spans)
}

// Equal reports whether two attributed texts have the same text and the
// same span set, independent of span insertion order.
func (t *Text) Equal(other *Text) bool {
	if other == nil {
		return false
	}
	if t.text != other.text || len(t.spans) != len(other.spans) {
		return false
	}
	// Both span sets are normalized and sorted; compare pairwise.
	for i := range t.spans {
		if !t.spans[i].sameSpan(other.spans[i]) {
			return false
		}
	}
	return true
}
