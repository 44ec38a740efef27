package attrtext

import "sort"

// EventKind distinguishes span boundary events.
type EventKind uint8

const (
	// SpanStart marks the first offset an attribution covers.
	SpanStart EventKind = iota
	// SpanEnd marks the last offset an attribution covers.
	SpanEnd
)

// Event is one span boundary produced by a visitor.
type Event struct {
	Kind        EventKind
	Offset      int
	Attribution Attribution
}

// SpanVisitor walks span boundary events in ascending offset order.
// At equal offsets, end events sort before start events so consumers can
// close markers before opening new ones. A visitor is single-use; call
// Visit again for a fresh walk.
type SpanVisitor struct {
	events []Event
	idx    int
}

// Visit returns a visitor over every span's start and end events.
func (t *Text) Visit() *SpanVisitor {
	events := make([]Event, 0, len(t.spans)*2)
	for _, s := range t.spans {
		events = append(events,
			Event{Kind: SpanStart, Offset: s.Start, Attribution: s.Attribution},
			Event{Kind: SpanEnd, Offset: s.End, Attribution: s.Attribution},
		)
	}
	sort.SliceStable(events, func(i, j int) bool {
		if events[i].Offset != events[j].Offset {
			return events[i].Offset < events[j].Offset
		}
		if events[i].Kind != events[j].Kind {
			return events[i].Kind == SpanEnd
		}
		return events[i].Attribution.ID() < events[j].Attribution.ID()
	})
	return &SpanVisitor{events: events, idx: -1}
}

// Next advances to the next event. Returns false when exhausted.
func (v *SpanVisitor) Next() bool {
	if v.idx+1 >= len(v.events) {
		return false
	}
	v.idx++
	return true
}

// Event returns the current event. Valid only after a true Next.
func (v *SpanVisitor) Event() Event {
	return v.events[v.idx]
}
