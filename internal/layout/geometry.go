// Package layout derives the column layout of a hex dump from the viewport
// size and glyph metrics, and maps between pixels and nibble offsets.
//
// All horizontal quantities are pixels. A terminal renderer uses a glyph size
// of 1x1 so that pixels and character cells coincide.
package layout

// Options are the fixed layout parameters. Gaps are in pixels.
type Options struct {
	AddressDigits int
	GapAddrHex    int
	GapHexASCII   int
	// MinHexChars is the hex column width, in characters, that the viewport
	// is expected to fit at its minimum size.
	MinHexChars int
	// BytesPerLine pins the line width when positive. Zero derives it from
	// the viewport width.
	BytesPerLine int
}

func DefaultOptions() Options {
	return Options{
		AddressDigits: 10,
		GapAddrHex:    10,
		GapHexASCII:   16,
		MinHexChars:   47,
	}
}

// Geometry is the layout of one viewport. It is recomputed, never edited.
type Geometry struct {
	BytesPerLine  int
	CharWidth     int
	RowHeight     int
	AddressDigits int
	AddressWidth  int
	HexStart      int
	ASCIIStart    int
	GapAddrHex    int
	GapHexASCII   int
	MinHexChars   int
}

// Recompute is a pure function of its inputs. BytesPerLine and the glyph
// size are never below 1.
func Recompute(opts Options, viewportWidth, charWidth, charHeight int) Geometry {
	if charWidth < 1 {
		charWidth = 1
	}
	if charHeight < 1 {
		charHeight = 1
	}

	g := Geometry{
		CharWidth:     charWidth,
		RowHeight:     charHeight,
		AddressDigits: max(opts.AddressDigits, 0),
		GapAddrHex:    max(opts.GapAddrHex, 0),
		GapHexASCII:   max(opts.GapHexASCII, 0),
		MinHexChars:   max(opts.MinHexChars, 0),
	}
	g.AddressWidth = g.AddressDigits * charWidth
	g.HexStart = g.AddressWidth + g.GapAddrHex

	bpl := opts.BytesPerLine
	if bpl <= 0 {
		// Each byte takes three hex columns (the last without its gap) and
		// one ASCII column: 4n-1 characters in total.
		avail := viewportWidth - g.HexStart - g.GapHexASCII
		bpl = (avail/charWidth + 1) / 4
	}
	if bpl < 1 {
		bpl = 1
	}
	g.BytesPerLine = bpl
	g.ASCIIStart = g.HexStart + g.HexWidth() + g.GapHexASCII
	return g
}

// HexWidth is the pixel width of the hex column.
func (g Geometry) HexWidth() int {
	return (g.BytesPerLine*3 - 1) * g.CharWidth
}

// FullWidth is the pixel width of a complete line including the ASCII column.
func (g Geometry) FullWidth() int {
	return g.ASCIIStart + g.BytesPerLine*g.CharWidth
}

// MinViewportWidth is the width at which a MinHexChars hex column and its
// matching ASCII column fit.
func (g Geometry) MinViewportWidth() int {
	bytes := (g.MinHexChars + 1) / 3
	return g.HexStart + g.MinHexChars*g.CharWidth + g.GapHexASCII + bytes*g.CharWidth
}

// VisibleRows is the number of whole rows that fit in viewportHeight.
func (g Geometry) VisibleRows(viewportHeight int) int {
	if viewportHeight <= 0 || g.RowHeight <= 0 {
		return 0
	}
	return viewportHeight / g.RowHeight
}

// RowCount is the number of rows needed for size bytes; a trailing partial
// line counts as a row.
func (g Geometry) RowCount(size int64) int64 {
	if size <= 0 {
		return 0
	}
	bpl := int64(g.BytesPerLine)
	return (size + bpl - 1) / bpl
}

// RowOf is the row holding the given nibble offset.
func (g Geometry) RowOf(nibble int64) int64 {
	if nibble < 0 {
		return 0
	}
	return nibble / (2 * int64(g.BytesPerLine))
}

// ScrollRange is the largest first-visible row for a document of size bytes.
// One row of slack is left below the data so the end-of-data position can be
// scrolled into view.
func (g Geometry) ScrollRange(size int64, viewportHeight int) int64 {
	rows := g.RowCount(size)
	limit := rows - int64(g.VisibleRows(viewportHeight)) + 1
	if limit < 0 {
		return 0
	}
	return limit
}
