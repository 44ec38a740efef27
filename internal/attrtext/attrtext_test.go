package attrtext

import (
	"errors"
	"testing"
)

func spanEqual(t *testing.T, got Span, a Attribution, start, end int) {
	t.Helper()
	if !got.Attribution.CanMergeWith(a) || got.Start != start || got.End != end {
		t.Errorf("expected span {%s, %d, %d}, got {%s, %d, %d}",
			a.ID(), start, end, got.Attribution.ID(), got.Start, got.End)
	}
}

func TestNewDropsInvalidSpans(t *testing.T) {
	txt := New("abc",
		Span{Attribution: Bold, Start: 0, End: 2},
		Span{Attribution: Italics, Start: 2, End: 5},
		Span{Attribution: Code, Start: 2, End: 1},
	)

	spans := txt.Spans()
	if len(spans) != 1 {
		t.Fatalf("expected 1 span, got %d", len(spans))
	}
	spanEqual(t, spans[0], Bold, 0, 2)
}

func TestAddAttribution(t *testing.T) {
	txt := New("Hello world")
	if err := txt.AddAttribution(Bold, 0, 4); err != nil {
		t.Fatalf("add failed: %v", err)
	}

	spans := txt.Spans()
	if len(spans) != 1 {
		t.Fatalf("expected 1 span, got %d", len(spans))
	}
	spanEqual(t, spans[0], Bold, 0, 4)
}

func TestAddAttributionRangeChecks(t *testing.T) {
	txt := New("abc")

	if err := txt.AddAttribution(Bold, 2, 1); !errors.Is(err, ErrRangeInvalid) {
		t.Errorf("expected ErrRangeInvalid, got %v", err)
	}
	if err := txt.AddAttribution(Bold, 0, 3); !errors.Is(err, ErrOffsetOutOfRange) {
		t.Errorf("expected ErrOffsetOutOfRange, got %v", err)
	}
	if err := txt.AddAttribution(Bold, -1, 1); !errors.Is(err, ErrOffsetOutOfRange) {
		t.Errorf("expected ErrOffsetOutOfRange, got %v", err)
	}
}

func TestAddAttributionMergesOverlap(t *testing.T) {
	txt := New("Hello world")
	if err := txt.AddAttribution(Bold, 0, 5); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if err := txt.AddAttribution(Bold, 3, 8); err != nil {
		t.Fatalf("add failed: %v", err)
	}

	spans := txt.Spans()
	if len(spans) != 1 {
		t.Fatalf("expected merged span, got %d spans", len(spans))
	}
	spanEqual(t, spans[0], Bold, 0, 8)
}

func TestAddAttributionMergesAbutting(t *testing.T) {
	txt := New("Hello world")
	if err := txt.AddAttribution(Bold, 0, 4); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if err := txt.AddAttribution(Bold, 5, 10); err != nil {
		t.Fatalf("add failed: %v", err)
	}

	spans := txt.Spans()
	if len(spans) != 1 {
		t.Fatalf("expected merged span, got %d spans", len(spans))
	}
	spanEqual(t, spans[0], Bold, 0, 10)
}

func TestAddAttributionMergeIdempotent(t *testing.T) {
	// Overlapping re-adds of the same attribution always collapse to one
	// span covering the union.
	ranges := [][2]int{{0, 5}, {3, 8}, {8, 10}, {0, 10}, {2, 7}}

	txt := New("Hello world")
	for _, r := range ranges {
		if err := txt.AddAttribution(Bold, r[0], r[1]); err != nil {
			t.Fatalf("add [%d,%d] failed: %v", r[0], r[1], err)
		}
		spans := txt.Spans()
		if len(spans) != 1 {
			t.Fatalf("after add [%d,%d]: expected 1 span, got %d", r[0], r[1], len(spans))
		}
	}
	spanEqual(t, txt.Spans()[0], Bold, 0, 10)
}

func TestUnrelatedAttributionsOverlap(t *testing.T) {
	txt := New("Hello world")
	if err := txt.AddAttribution(Bold, 0, 6); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if err := txt.AddAttribution(Italics, 3, 10); err != nil {
		t.Fatalf("add failed: %v", err)
	}

	if len(txt.Spans()) != 2 {
		t.Fatalf("expected 2 overlapping spans, got %d", len(txt.Spans()))
	}
}

func TestLinkAttributionsMergeOnlySameURL(t *testing.T) {
	txt := New("one two three")
	if err := txt.AddAttribution(LinkAttribution{URL: "https://a.example"}, 0, 2); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if err := txt.AddAttribution(LinkAttribution{URL: "https://b.example"}, 4, 6); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if len(txt.Spans()) != 2 {
		t.Fatalf("expected distinct link spans, got %d", len(txt.Spans()))
	}

	if err := txt.AddAttribution(LinkAttribution{URL: "https://a.example"}, 2, 3); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	spans := txt.Spans()
	if len(spans) != 2 {
		t.Fatalf("expected same-URL merge, got %d spans", len(spans))
	}
	spanEqual(t, spans[0], LinkAttribution{URL: "https://a.example"}, 0, 3)
}

func TestRemoveAttributionSplitsSpan(t *testing.T) {
	txt := New("Hello world")
	if err := txt.AddAttribution(Bold, 0, 10); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if err := txt.RemoveAttribution(Bold, 4, 6); err != nil {
		t.Fatalf("remove failed: %v", err)
	}

	spans := txt.Spans()
	if len(spans) != 2 {
		t.Fatalf("expected split into 2 spans, got %d", len(spans))
	}
	spanEqual(t, spans[0], Bold, 0, 3)
	spanEqual(t, spans[1], Bold, 7, 10)
}

func TestRemoveAttributionShrinksAndDeletes(t *testing.T) {
	txt := New("Hello world")
	if err := txt.AddAttribution(Bold, 2, 8); err != nil {
		t.Fatalf("add failed: %v", err)
	}

	if err := txt.RemoveAttribution(Bold, 0, 4); err != nil {
		t.Fatalf("remove failed: %v", err)
	}
	spans := txt.Spans()
	if len(spans) != 1 {
		t.Fatalf("expected 1 span, got %d", len(spans))
	}
	spanEqual(t, spans[0], Bold, 5, 8)

	if err := txt.RemoveAttribution(Bold, 0, 10); err != nil {
		t.Fatalf("remove failed: %v", err)
	}
	if len(txt.Spans()) != 0 {
		t.Errorf("expected full removal, got %d spans", len(txt.Spans()))
	}
}

func TestToggleAttribution(t *testing.T) {
	txt := New("Hello world")

	added, err := txt.ToggleAttribution(Bold, 0, 4)
	if err != nil {
		t.Fatalf("toggle failed: %v", err)
	}
	if !added {
		t.Error("first toggle should add")
	}

	added, err = txt.ToggleAttribution(Bold, 0, 4)
	if err != nil {
		t.Fatalf("toggle failed: %v", err)
	}
	if added {
		t.Error("second toggle should remove")
	}
	if len(txt.Spans()) != 0 {
		t.Errorf("expected no spans after double toggle, got %d", len(txt.Spans()))
	}
}

func TestTogglePartialCoverageAdds(t *testing.T) {
	txt := New("Hello world")
	if err := txt.AddAttribution(Bold, 0, 3); err != nil {
		t.Fatalf("add failed: %v", err)
	}

	// Range not fully covered: toggle extends rather than removes.
	added, err := txt.ToggleAttribution(Bold, 0, 8)
	if err != nil {
		t.Fatalf("toggle failed: %v", err)
	}
	if !added {
		t.Error("toggle over partial coverage should add")
	}
	spans := txt.Spans()
	if len(spans) != 1 {
		t.Fatalf("expected 1 span, got %d", len(spans))
	}
	spanEqual(t, spans[0], Bold, 0, 8)
}

func TestAttributionsAt(t *testing.T) {
	txt := New("Hello world")
	if err := txt.AddAttribution(Bold, 0, 6); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if err := txt.AddAttribution(Italics, 4, 10); err != nil {
		t.Fatalf("add failed: %v", err)
	}

	if got := len(txt.AttributionsAt(2)); got != 1 {
		t.Errorf("offset 2: expected 1 attribution, got %d", got)
	}
	if got := len(txt.AttributionsAt(5)); got != 2 {
		t.Errorf("offset 5: expected 2 attributions, got %d", got)
	}
	if got := len(txt.AttributionsAt(9)); got != 1 {
		t.Errorf("offset 9: expected 1 attribution, got %d", got)
	}
	if !txt.HasAttributionAt(5, Bold) {
		t.Error("expected bold at offset 5")
	}
	if txt.HasAttributionAt(8, Bold) {
		t.Error("did not expect bold at offset 8")
	}
}

func TestInsertStringShiftsSpans(t *testing.T) {
	txt := New("Hello world", Span{Attribution: Bold, Start: 6, End: 10})

	if err := txt.InsertString("big ", 6); err != nil {
		t.Fatalf("insert failed: %v", err)
	}

	if txt.String() != "Hello big world" {
		t.Errorf("expected 'Hello big world', got %q", txt.String())
	}
	spans := txt.Spans()
	if len(spans) != 1 {
		t.Fatalf("expected 1 span, got %d", len(spans))
	}
	spanEqual(t, spans[0], Bold, 10, 14)
}

func TestInsertStringExtendsStraddlingSpan(t *testing.T) {
	txt := New("Hello world", Span{Attribution: Bold, Start: 0, End: 4})

	if err := txt.InsertString("xx", 2); err != nil {
		t.Fatalf("insert failed: %v", err)
	}

	spans := txt.Spans()
	spanEqual(t, spans[0], Bold, 0, 6)
}

func TestInsertStringAfterSpanLeavesIt(t *testing.T) {
	txt := New("Hello world", Span{Attribution: Bold, Start: 0, End: 4})

	if err := txt.InsertString("!", 11); err != nil {
		t.Fatalf("insert failed: %v", err)
	}

	if txt.String() != "Hello world!" {
		t.Errorf("expected 'Hello world!', got %q", txt.String())
	}
	spans := txt.Spans()
	if len(spans) != 1 {
		t.Fatalf("expected 1 span, got %d", len(spans))
	}
	spanEqual(t, spans[0], Bold, 0, 4)
}

func TestInsertStringWithAttributions(t *testing.T) {
	txt := New("ab", Span{Attribution: Bold, Start: 0, End: 1})

	if err := txt.InsertString("cd", 2, Bold); err != nil {
		t.Fatalf("insert failed: %v", err)
	}

	spans := txt.Spans()
	if len(spans) != 1 {
		t.Fatalf("expected abutting bold runs to merge, got %d spans", len(spans))
	}
	spanEqual(t, spans[0], Bold, 0, 3)
}

func TestRemoveRegionShiftsAndConsumes(t *testing.T) {
	txt := New("Hello big world",
		Span{Attribution: Bold, Start: 6, End: 8},
		Span{Attribution: Italics, Start: 10, End: 14},
	)

	if err := txt.RemoveRegion(6, 10); err != nil {
		t.Fatalf("remove failed: %v", err)
	}

	if txt.String() != "Hello world" {
		t.Errorf("expected 'Hello world', got %q", txt.String())
	}
	spans := txt.Spans()
	if len(spans) != 1 {
		t.Fatalf("expected bold span consumed, got %d spans", len(spans))
	}
	spanEqual(t, spans[0], Italics, 6, 10)
}

func TestRemoveRegionShrinksStraddlers(t *testing.T) {
	txt := New("abcdefghij", Span{Attribution: Bold, Start: 2, End: 7})

	if err := txt.RemoveRegion(5, 9); err != nil {
		t.Fatalf("remove failed: %v", err)
	}

	if txt.String() != "abcdej" {
		t.Errorf("expected 'abcdej', got %q", txt.String())
	}
	spans := txt.Spans()
	if len(spans) != 1 {
		t.Fatalf("expected 1 span, got %d", len(spans))
	}
	spanEqual(t, spans[0], Bold, 2, 4)
}

func TestRemoveRegionRejoinsSplitSpans(t *testing.T) {
	txt := New("abcdefgh",
		Span{Attribution: Bold, Start: 0, End: 2},
		Span{Attribution: Bold, Start: 5, End: 7},
	)

	if err := txt.RemoveRegion(3, 5); err != nil {
		t.Fatalf("remove failed: %v", err)
	}

	spans := txt.Spans()
	if len(spans) != 1 {
		t.Fatalf("expected rejoined span, got %d spans", len(spans))
	}
	spanEqual(t, spans[0], Bold, 0, 5)
}

func TestInsertRemoveRoundTrip(t *testing.T) {
	// Inserting then removing the same run restores the original span set.
	original := New("Hello world",
		Span{Attribution: Bold, Start: 0, End: 4},
		Span{Attribution: Italics, Start: 6, End: 10},
	)
	txt := original.CopyAll()

	if err := txt.InsertString("XYZ", 5); err != nil {
		t.Fatalf("insert failed: %v", err)
	}
	if err := txt.RemoveRegion(5, 8); err != nil {
		t.Fatalf("remove failed: %v", err)
	}

	if !txt.Equal(original) {
		t.Errorf("round trip changed text: got %q spans %v", txt.String(), txt.Spans())
	}
}

func TestCopyClipsAndReoffsets(t *testing.T) {
	txt := New("Hello big world",
		Span{Attribution: Bold, Start: 0, End: 4},
		Span{Attribution: Italics, Start: 6, End: 12},
	)

	slice, err := txt.Copy(6, 15)
	if err != nil {
		t.Fatalf("copy failed: %v", err)
	}

	if slice.String() != "big world" {
		t.Errorf("expected 'big world', got %q", slice.String())
	}
	spans := slice.Spans()
	if len(spans) != 1 {
		t.Fatalf("expected bold dropped and italics clipped, got %d spans", len(spans))
	}
	spanEqual(t, spans[0], Italics, 0, 6)
}

func TestCopyEmptySlice(t *testing.T) {
	txt := New("abc", Span{Attribution: Bold, Start: 0, End: 2})

	slice, err := txt.Copy(1, 1)
	if err != nil {
		t.Fatalf("copy failed: %v", err)
	}
	if slice.Len() != 0 || len(slice.Spans()) != 0 {
		t.Errorf("expected empty slice, got %q with %d spans", slice.String(), len(slice.Spans()))
	}
}

func TestAppendMergesSeamSpans(t *testing.T) {
	left := New("foo", Span{Attribution: Bold, Start: 0, End: 2})
	right := New("bar", Span{Attribution: Bold, Start: 0, End: 2})

	left.Append(right)

	if left.String() != "foobar" {
		t.Errorf("expected 'foobar', got %q", left.String())
	}
	spans := left.Spans()
	if len(spans) != 1 {
		t.Fatalf("expected seam merge, got %d spans", len(spans))
	}
	spanEqual(t, spans[0], Bold, 0, 5)
}

func TestEqualOrderIndependent(t *testing.T) {
	a := New("abc")
	if err := a.AddAttribution(Bold, 0, 0); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if err := a.AddAttribution(Italics, 1, 2); err != nil {
		t.Fatalf("add failed: %v", err)
	}

	b := New("abc")
	if err := b.AddAttribution(Italics, 1, 2); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if err := b.AddAttribution(Bold, 0, 0); err != nil {
		t.Fatalf("add failed: %v", err)
	}

	if !a.Equal(b) {
		t.Error("span insertion order should not affect equality")
	}

	if err := b.AddAttribution(Code, 2, 2); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if a.Equal(b) {
		t.Error("different span sets should not be equal")
	}
}

func TestVisitorOrder(t *testing.T) {
	txt := New("abcdef",
		Span{Attribution: Italics, Start: 2, End: 5},
		Span{Attribution: Bold, Start: 0, End: 2},
	)

	v := txt.Visit()
	var events []Event
	for v.Next() {
		events = append(events, v.Event())
	}

	if len(events) != 4 {
		t.Fatalf("expected 4 events, got %d", len(events))
	}
	if events[0].Kind != SpanStart || events[0].Offset != 0 {
		t.Errorf("expected bold start at 0, got %+v", events[0])
	}
	// At offset 2 the bold end sorts before the italics start.
	if events[1].Kind != SpanEnd || events[1].Offset != 2 || events[1].Attribution.ID() != "bold" {
		t.Errorf("expected bold end at 2, got %+v", events[1])
	}
	if events[2].Kind != SpanStart || events[2].Offset != 2 || events[2].Attribution.ID() != "italics" {
		t.Errorf("expected italics start at 2, got %+v", events[2])
	}
	if events[3].Kind != SpanEnd || events[3].Offset != 5 {
		t.Errorf("expected italics end at 5, got %+v", events[3])
	}
}
