package viewer

import (
	"fmt"

	"hexview/internal/buffer"
	"hexview/internal/layout"
	"hexview/internal/selection"
)

const hexDigits = "0123456789abcdef"

// EditView is what a renderer needs to draw the edit box.
type EditView struct {
	Open   bool
	Offset int64
	Text   string
	Caret  int
	At     layout.Point
}

func (v *Viewer) Source() buffer.Source {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.src
}

func (v *Viewer) Cursor() int64 {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.cursor
}

func (v *Viewer) Selection() selection.Selection {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.sel
}

func (v *Viewer) Geometry() layout.Geometry {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.geom
}

func (v *Viewer) FirstRow() int64 {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.scroll.Value()
}

func (v *Viewer) VisibleRows() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.visibleRows()
}

func (v *Viewer) Focused() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.focused
}

func (v *Viewer) Editing() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.edit.IsOpen()
}

func (v *Viewer) Edit() EditView {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.editView()
}

func (v *Viewer) editView() EditView {
	if !v.edit.IsOpen() {
		return EditView{}
	}
	return EditView{
		Open:   true,
		Offset: v.edit.Offset(),
		Text:   v.edit.Text(),
		Caret:  v.edit.Caret(),
		At:     v.geom.NibbleToPixel(v.edit.Offset()*2, v.scroll.Value()),
	}
}

// Printable reports whether b is shown as itself in the ASCII column.
func Printable(b byte) bool {
	return b >= 0x20 && b <= 0x7e
}

// Paint draws the visible rows onto s.
func (v *Viewer) Paint(s Surface) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.updateScroll()
	g := v.geom

	s.FillRect(Rect{W: v.width, H: v.height}, RoleBase)
	s.FillRect(Rect{W: g.AddressWidth, H: v.height}, RoleAddressArea)
	s.FillRect(Rect{X: g.ASCIIStart - g.GapHexASCII/2, W: 1, H: v.height}, RoleSeparator)

	if v.src == nil {
		return
	}

	bpl := int64(g.BytesPerLine)
	first := v.scroll.Value()
	last := first + int64(v.visibleRows())
	if rows := g.RowCount(v.size()); last > rows {
		last = rows
	}
	if last <= first {
		v.paintCaret(s)
		return
	}

	data := v.src.Read(first*bpl, int((last-first)*bpl))
	for row := first; row < last; row++ {
		y := int(row-first) * g.RowHeight
		s.DrawText(layout.Point{Y: y}, fmt.Sprintf("%0*x", g.AddressDigits, row*bpl), RoleAddress)

		for i := int64(0); i < bpl; i++ {
			idx := (row-first)*bpl + i
			if idx >= int64(len(data)) {
				break
			}
			b := data[idx]
			n := (row*bpl + i) * 2

			v.drawNibble(s, n, hexDigits[b>>4], first)
			v.drawNibble(s, n+1, hexDigits[b&0x0F], first)

			ch := byte('.')
			if Printable(b) {
				ch = b
			}
			s.DrawText(g.ByteToASCIIPixel(row*bpl+i, first), string(ch), RoleASCII)
		}
	}

	if ev := v.editView(); ev.Open {
		s.FillRect(Rect{X: ev.At.X, Y: ev.At.Y, W: 2 * g.CharWidth, H: g.RowHeight}, RoleEdit)
		s.DrawText(ev.At, ev.Text, RoleEdit)
		s.FillRect(Rect{X: ev.At.X + ev.Caret*g.CharWidth, Y: ev.At.Y, W: caretWidth(g), H: g.RowHeight}, RoleCursor)
	}
	v.paintCaret(s)
}

func (v *Viewer) drawNibble(s Surface, n int64, digit byte, first int64) {
	role := RoleHex
	if v.sel.IsSelected(n) {
		role = RoleHexSelected
	}
	s.DrawText(v.geom.NibbleToPixel(n, first), string(digit), role)
}

func (v *Viewer) paintCaret(s Surface) {
	if !v.focused || v.edit.IsOpen() {
		return
	}
	p := v.geom.NibbleToPixel(v.cursor, v.scroll.Value())
	if p.Y < 0 || p.Y >= v.height {
		return
	}
	s.FillRect(Rect{X: p.X, Y: p.Y, W: caretWidth(v.geom), H: v.geom.RowHeight}, RoleCursor)
}

// caretWidth is 2px at typical glyph widths and a full cell on a terminal.
func caretWidth(g layout.Geometry) int {
	return max(g.CharWidth/4, 1)
}
