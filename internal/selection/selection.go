// Package selection holds the nibble-granular range selection of a viewer.
package selection

// Selection is anchored at the position where it began; the other endpoint
// moves. Begin and End are always ordered and the selected range is the
// half-open [Begin, End).
type Selection struct {
	anchor int64
	begin  int64
	end    int64
}

// Reset collapses the selection onto pos. Negative positions become 0.
func (s *Selection) Reset(pos int64) {
	if pos < 0 {
		pos = 0
	}
	s.anchor = pos
	s.begin = pos
	s.end = pos
}

// Extend keeps the anchor and moves the other endpoint to pos.
func (s *Selection) Extend(pos int64) {
	if pos < 0 {
		pos = 0
	}
	if pos >= s.anchor {
		s.begin = s.anchor
		s.end = pos
	} else {
		s.begin = pos
		s.end = s.anchor
	}
}

// SelectAll covers the whole document plus one nibble past its end.
func (s *Selection) SelectAll(size int64) {
	s.Reset(0)
	if size < 0 {
		size = 0
	}
	s.Extend(2*size + 1)
}

// SetExplicit selects byteLength whole bytes starting at byteOffset.
func (s *Selection) SetExplicit(byteOffset, byteLength int64) {
	if byteOffset < 0 {
		byteOffset = 0
	}
	if byteLength < 0 {
		byteLength = 0
	}
	s.Reset(2 * byteOffset)
	s.Extend(s.begin + 2*byteLength)
}

// Clamp saturates every endpoint into [0, limit].
func (s *Selection) Clamp(limit int64) {
	limit = max(limit, 0)
	s.anchor = min(max(s.anchor, 0), limit)
	s.begin = min(max(s.begin, 0), limit)
	s.end = min(max(s.end, 0), limit)
}

func (s Selection) IsSelected(nibble int64) bool {
	return s.begin <= nibble && nibble < s.end
}

func (s Selection) Anchor() int64 { return s.anchor }
func (s Selection) Begin() int64  { return s.begin }
func (s Selection) End() int64    { return s.end }

// Empty reports whether nothing is selected.
func (s Selection) Empty() bool {
	return s.begin == s.end
}
