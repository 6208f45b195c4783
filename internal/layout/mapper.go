package layout

// Point is a pixel position relative to the top-left of the viewport.
type Point struct {
	X, Y int
}

// PixelToNibble maps a viewport point to an absolute nibble offset. ok is
// false when the point lies outside the hex column.
//
// Within a byte group the high-nibble column maps to the even offset; the
// low-nibble column and the gap after it both map to the odd offset.
func (g Geometry) PixelToNibble(p Point, firstRow int64) (nibble int64, ok bool) {
	if p.X < g.HexStart || p.X >= g.HexStart+g.HexWidth() || p.Y < 0 {
		return 0, false
	}

	col := (p.X - g.HexStart) / g.CharWidth
	n := int64(col/3) * 2
	if col%3 != 0 {
		n++
	}

	row := int64(p.Y/g.RowHeight) + firstRow
	return row*int64(g.BytesPerLine)*2 + n, true
}

// NibbleToPixel places the top-left corner of the nibble's hex digit. Rows
// above firstRow yield negative Y.
func (g Geometry) NibbleToPixel(nibble, firstRow int64) Point {
	if nibble < 0 {
		nibble = 0
	}
	perRow := 2 * int64(g.BytesPerLine)
	x := nibble % perRow
	row := nibble/perRow - firstRow

	col := int((x/2)*3 + x%2)
	return Point{
		X: g.HexStart + col*g.CharWidth,
		Y: int(row) * g.RowHeight,
	}
}

// ByteToASCIIPixel places the ASCII-column glyph of the given byte offset.
func (g Geometry) ByteToASCIIPixel(offset, firstRow int64) Point {
	if offset < 0 {
		offset = 0
	}
	bpl := int64(g.BytesPerLine)
	return Point{
		X: g.ASCIIStart + int(offset%bpl)*g.CharWidth,
		Y: int(offset/bpl-firstRow) * g.RowHeight,
	}
}
