package selection

// NextGraphemeBoundary returns the byte offset just past the grapheme
// cluster at offset, or offset unchanged at the end of text. Caret
// movement steps by cluster so multi-byte characters are never split.
func NextGraphemeBoundary(text string, offset int) int {
	for _, c := range clustersOf(text) {
		if c.start >= offset {
			return c.end
		}
	}
	return offset
}

// PrevGraphemeBoundary returns the byte offset of the start of the
// grapheme cluster before offset, or offset unchanged at the start of
// text.
func PrevGraphemeBoundary(text string, offset int) int {
	prev := offset
	for _, c := range clustersOf(text) {
		if c.end <= offset {
			prev = c.start
			continue
		}
		break
	}
	if prev == offset {
		return offset
	}
	return prev
}

// WordUpstreamBoundary returns the start of the word before offset,
// skipping any whitespace between the caret and that word.
func WordUpstreamBoundary(text string, offset int) int {
	clusters := clustersOf(text)
	i := len(clusters) - 1
	for ; i >= 0; i-- {
		if clusters[i].end <= offset {
			break
		}
	}
	// Skip whitespace immediately upstream.
	for ; i >= 0 && isWordBreak(clusters[i]); i-- {
	}
	out := offset
	for ; i >= 0 && !isWordBreak(clusters[i]); i-- {
		out = clusters[i].start
	}
	if out > offset {
		return offset
	}
	return out
}

// WordDownstreamBoundary returns the end of the word after offset,
// skipping any whitespace between the caret and that word.
func WordDownstreamBoundary(text string, offset int) int {
	clusters := clustersOf(text)
	i := 0
	for ; i < len(clusters); i++ {
		if clusters[i].start >= offset {
			break
		}
	}
	for ; i < len(clusters) && isWordBreak(clusters[i]); i++ {
	}
	out := offset
	for ; i < len(clusters) && !isWordBreak(clusters[i]); i++ {
		out = clusters[i].end
	}
	if out < offset {
		return offset
	}
	return out
}
