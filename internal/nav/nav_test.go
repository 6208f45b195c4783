package nav

import "testing"

func TestMaxPos(t *testing.T) {
	tests := []struct {
		size int64
		bpl  int
		want int64
	}{
		{0, 16, 0},
		{16, 16, 32},
		{26, 16, 53},
		{32, 16, 64},
		{5, 0, 10},
	}
	for _, tt := range tests {
		if got := MaxPos(tt.size, tt.bpl); got != tt.want {
			t.Errorf("MaxPos(%d, %d)=%d, want %d", tt.size, tt.bpl, got, tt.want)
		}
	}
}

func TestApplyMoves(t *testing.T) {
	base := State{Size: 100, BytesPerLine: 16, VisibleRows: 4}

	tests := []struct {
		cmd    Command
		cursor int64
		want   int64
	}{
		{MoveNextChar, 5, 6},
		{MovePrevChar, 5, 4},
		{MovePrevChar, 0, 0},
		{MoveNextLine, 5, 37},
		{MovePrevLine, 40, 8},
		{MovePrevLine, 10, 0},
		{MoveStartOfLine, 45, 32},
		{MoveEndOfLine, 45, 63},
		{MoveEndOfLine, 32, 63},
		{MoveNextPage, 0, 96},
		{MovePrevPage, 100, 4},
		{MoveStartOfDocument, 77, 0},
		{MoveEndOfDocument, 3, 200},
		{MoveNextLine, 190, 201},
		{SelectEndOfLine, 45, 64},
		{SelectStartOfLine, 45, 32},
		{SelectNextChar, 200, 201},
		{SelectNextChar, 201, 201},
		{SelectAll, 17, 17},
	}

	for _, tt := range tests {
		s := base
		s.Cursor = tt.cursor
		if got := Apply(tt.cmd, s); got != tt.want {
			t.Errorf("%v from %d: got %d, want %d", tt.cmd, tt.cursor, got, tt.want)
		}
	}
}

func TestApplyEndOfLineNonPowerOfTwo(t *testing.T) {
	s := State{Cursor: 20, Size: 100, BytesPerLine: 10, VisibleRows: 3}
	if got := Apply(MoveEndOfLine, s); got != 39 {
		t.Errorf("expected end of second line at 39, got %d", got)
	}
}

func TestApplyStaysInBounds(t *testing.T) {
	for _, size := range []int64{0, 1, 15, 16, 26, 300} {
		for _, bpl := range []int{1, 7, 16} {
			maxPos := MaxPos(size, bpl)
			for cmd := MoveNextChar; cmd <= SelectAll; cmd++ {
				for _, cursor := range []int64{0, 1, maxPos / 2, maxPos} {
					got := Apply(cmd, State{Cursor: cursor, Size: size, BytesPerLine: bpl, VisibleRows: 5})
					if got < 0 || got > maxPos {
						t.Fatalf("%v size=%d bpl=%d cursor=%d: %d outside [0,%d]", cmd, size, bpl, cursor, got, maxPos)
					}
				}
			}
		}
	}
}

func TestPageWithSingleVisibleRow(t *testing.T) {
	s := State{Cursor: 0, Size: 100, BytesPerLine: 16, VisibleRows: 1}
	if got := Apply(MoveNextPage, s); got != 32 {
		t.Errorf("expected a one-row page, got %d", got)
	}
}

func TestExtends(t *testing.T) {
	if MoveEndOfDocument.Extends() {
		t.Error("move commands must not extend")
	}
	if !SelectNextChar.Extends() || !SelectAll.Extends() {
		t.Error("select commands must extend")
	}
}

func TestCommandString(t *testing.T) {
	if got := SelectPrevPage.String(); got != "SelectPrevPage" {
		t.Errorf("got %q", got)
	}
	if got := Command(99).String(); got != "Command(99)" {
		t.Errorf("got %q", got)
	}
}

func TestEnsureVisible(t *testing.T) {
	tests := []struct {
		name                string
		cursorRow, firstRow int64
		visible             int
		want                int64
	}{
		{"inside", 5, 3, 4, 3},
		{"above", 1, 3, 4, 1},
		{"on last row edge", 7, 3, 4, 4},
		{"far below", 20, 3, 4, 17},
		{"no rows", 2, 0, 0, 2},
		{"no rows above", 2, 5, 0, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := EnsureVisible(tt.cursorRow, tt.firstRow, tt.visible); got != tt.want {
				t.Errorf("got %d, want %d", got, tt.want)
			}
		})
	}
}
