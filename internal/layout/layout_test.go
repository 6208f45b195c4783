package layout

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestRecomputeDefaultWidth(t *testing.T) {
	opts := DefaultOptions()
	// 10 address chars + 10 gap + 47 hex chars + 16 gap + 16 ascii chars at 8px
	width := 10*8 + 10 + 47*8 + 16 + 16*8
	g := Recompute(opts, width, 8, 14)

	want := Geometry{
		BytesPerLine:  16,
		CharWidth:     8,
		RowHeight:     14,
		AddressDigits: 10,
		AddressWidth:  80,
		HexStart:      90,
		ASCIIStart:    90 + 47*8 + 16,
		GapAddrHex:    10,
		GapHexASCII:   16,
		MinHexChars:   47,
	}
	if diff := cmp.Diff(want, g); diff != "" {
		t.Errorf("geometry mismatch (-want +got):\n%s", diff)
	}
	if g.FullWidth() != width {
		t.Errorf("expected full width %d, got %d", width, g.FullWidth())
	}
	if g.MinViewportWidth() != width {
		t.Errorf("expected minimum width %d, got %d", width, g.MinViewportWidth())
	}
}

func TestRecomputeASCIIInvariant(t *testing.T) {
	for _, width := range []int{0, 50, 300, 700, 1920} {
		g := Recompute(DefaultOptions(), width, 7, 12)
		want := g.HexStart + (g.BytesPerLine*3-1)*g.CharWidth + g.GapHexASCII
		if g.ASCIIStart != want {
			t.Errorf("width %d: ASCIIStart=%d, want %d", width, g.ASCIIStart, want)
		}
	}
}

func TestRecomputeMonotonicAndFloored(t *testing.T) {
	opts := DefaultOptions()
	prev := 0
	for width := -10; width < 2000; width += 3 {
		g := Recompute(opts, width, 8, 16)
		if g.BytesPerLine < 1 {
			t.Fatalf("width %d: bytesPerLine=%d", width, g.BytesPerLine)
		}
		if g.BytesPerLine < prev {
			t.Fatalf("width %d: bytesPerLine dropped from %d to %d", width, prev, g.BytesPerLine)
		}
		prev = g.BytesPerLine

		if again := Recompute(opts, width, 8, 16); again != g {
			t.Fatalf("width %d: recompute not idempotent", width)
		}
	}
}

func TestRecomputeFixedBytesPerLine(t *testing.T) {
	opts := DefaultOptions()
	opts.BytesPerLine = 16
	g := Recompute(opts, 10, 1, 1)
	if g.BytesPerLine != 16 {
		t.Errorf("expected pinned 16 bytes per line, got %d", g.BytesPerLine)
	}

	g = Recompute(opts, 100, 0, 0)
	if g.CharWidth != 1 || g.RowHeight != 1 {
		t.Errorf("expected glyph size floored at 1, got %dx%d", g.CharWidth, g.RowHeight)
	}
}

func TestRowsAndScrollRange(t *testing.T) {
	opts := DefaultOptions()
	opts.BytesPerLine = 16
	g := Recompute(opts, 0, 8, 10)

	if got := g.VisibleRows(95); got != 9 {
		t.Errorf("expected 9 visible rows, got %d", got)
	}
	if got := g.VisibleRows(-5); got != 0 {
		t.Errorf("expected 0 visible rows, got %d", got)
	}

	tests := []struct {
		size int64
		rows int64
	}{
		{0, 0},
		{1, 1},
		{16, 1},
		{17, 2},
		{26, 2},
	}
	for _, tt := range tests {
		if got := g.RowCount(tt.size); got != tt.rows {
			t.Errorf("RowCount(%d)=%d, want %d", tt.size, got, tt.rows)
		}
	}

	if got := g.ScrollRange(26, 10); got != 2 {
		t.Errorf("expected scroll range 2 for one visible row, got %d", got)
	}
	if got := g.ScrollRange(26, 100); got != 0 {
		t.Errorf("expected scroll range 0 when everything fits, got %d", got)
	}
}

func testGeometry() Geometry {
	opts := DefaultOptions()
	opts.BytesPerLine = 16
	return Recompute(opts, 0, 8, 14)
}

func TestPixelToNibbleColumns(t *testing.T) {
	g := testGeometry()

	tests := []struct {
		name string
		x    int
		want int64
	}{
		{"high nibble of byte 0", g.HexStart, 0},
		{"inside high nibble glyph", g.HexStart + 7, 0},
		{"low nibble of byte 0", g.HexStart + 8, 1},
		{"gap after byte 0", g.HexStart + 16, 1},
		{"high nibble of byte 1", g.HexStart + 24, 2},
		{"low nibble of last byte", g.HexStart + 46*8, 31},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := g.PixelToNibble(Point{X: tt.x, Y: 3}, 0)
			if !ok {
				t.Fatalf("expected a hit at x=%d", tt.x)
			}
			if got != tt.want {
				t.Errorf("nibble=%d, want %d", got, tt.want)
			}
		})
	}
}

func TestPixelToNibbleMiss(t *testing.T) {
	g := testGeometry()

	for _, p := range []Point{
		{X: g.HexStart - 1, Y: 0},
		{X: g.HexStart + g.HexWidth(), Y: 0},
		{X: g.ASCIIStart, Y: 0},
		{X: 0, Y: 0},
		{X: g.HexStart, Y: -1},
	} {
		if _, ok := g.PixelToNibble(p, 0); ok {
			t.Errorf("expected no hit at %+v", p)
		}
	}
}

func TestPixelToNibbleRows(t *testing.T) {
	g := testGeometry()

	got, ok := g.PixelToNibble(Point{X: g.HexStart + 24, Y: 2*14 + 1}, 5)
	if !ok {
		t.Fatal("expected a hit")
	}
	if want := int64(7*32 + 2); got != want {
		t.Errorf("nibble=%d, want %d", got, want)
	}
}

func TestNibblePixelRoundTrip(t *testing.T) {
	g := testGeometry()

	for n := int64(0); n < int64(2*g.BytesPerLine); n++ {
		p := g.NibbleToPixel(n, 0)
		got, ok := g.PixelToNibble(p, 0)
		if !ok || got != n {
			t.Errorf("round trip of %d via %+v gave %d (ok=%v)", n, p, got, ok)
		}
	}

	for _, first := range []int64{0, 3, 40} {
		n := first*32 + 9
		got, ok := g.PixelToNibble(g.NibbleToPixel(n, first), first)
		if !ok || got != n {
			t.Errorf("first row %d: round trip of %d gave %d", first, n, got)
		}
	}
}

func TestNibbleToPixelAboveViewport(t *testing.T) {
	g := testGeometry()
	if p := g.NibbleToPixel(0, 2); p.Y != -28 {
		t.Errorf("expected Y=-28 for a row above the viewport, got %d", p.Y)
	}
}

func TestByteToASCIIPixel(t *testing.T) {
	g := testGeometry()
	p := g.ByteToASCIIPixel(17, 0)
	want := Point{X: g.ASCIIStart + 8, Y: 14}
	if p != want {
		t.Errorf("got %+v, want %+v", p, want)
	}
}
