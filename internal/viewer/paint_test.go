package viewer

import (
	"testing"

	"hexview/internal/edit"
	"hexview/internal/layout"
)

type textOp struct {
	At   layout.Point
	Text string
	Role Role
}

type fillOp struct {
	Rect Rect
	Role Role
}

type recorder struct {
	texts []textOp
	fills []fillOp
}

func (r *recorder) FillRect(rect Rect, role Role) {
	r.fills = append(r.fills, fillOp{rect, role})
}

func (r *recorder) DrawText(p layout.Point, text string, role Role) {
	r.texts = append(r.texts, textOp{p, text, role})
}

func (r *recorder) textAt(p layout.Point) (textOp, bool) {
	for i := len(r.texts) - 1; i >= 0; i-- {
		if r.texts[i].At == p {
			return r.texts[i], true
		}
	}
	return textOp{}, false
}

func (r *recorder) filled(role Role) []Rect {
	var rects []Rect
	for _, f := range r.fills {
		if f.Role == role {
			rects = append(rects, f.Rect)
		}
	}
	return rects
}

func TestPaintRows(t *testing.T) {
	v, src := newCellViewer(t, 4)
	src.Write(16, 0x00)
	g := v.Geometry()

	var r recorder
	v.Paint(&r)

	if op, ok := r.textAt(layout.Point{X: 0, Y: 1}); !ok || op.Text != "0000000010" || op.Role != RoleAddress {
		t.Errorf("second row address: %+v", op)
	}
	if op, ok := r.textAt(g.NibbleToPixel(2, 0)); !ok || op.Text != "4" {
		t.Errorf("high nibble of byte 1: %+v", op)
	}
	if op, ok := r.textAt(g.NibbleToPixel(3, 0)); !ok || op.Text != "2" {
		t.Errorf("low nibble of byte 1: %+v", op)
	}
	if op, ok := r.textAt(g.ByteToASCIIPixel(1, 0)); !ok || op.Text != "B" || op.Role != RoleASCII {
		t.Errorf("ascii of byte 1: %+v", op)
	}
	if op, ok := r.textAt(g.ByteToASCIIPixel(16, 0)); !ok || op.Text != "." {
		t.Errorf("non-printable byte should render as '.': %+v", op)
	}
	if _, ok := r.textAt(g.ByteToASCIIPixel(26, 0)); ok {
		t.Error("painted a byte past the end of the data")
	}
	if _, ok := r.textAt(layout.Point{X: 0, Y: 2}); ok {
		t.Error("painted an address for a row with no data")
	}

	if rects := r.filled(RoleAddressArea); len(rects) != 1 || rects[0].W != g.AddressWidth {
		t.Errorf("address area fills: %+v", rects)
	}
	if rects := r.filled(RoleSeparator); len(rects) != 1 || rects[0].X != g.ASCIIStart-1 {
		t.Errorf("separator fills: %+v", rects)
	}
	if rects := r.filled(RoleCursor); len(rects) != 1 || rects[0].X != g.HexStart || rects[0].Y != 0 {
		t.Errorf("caret fills: %+v", rects)
	}
}

func TestPaintSelectionPerNibble(t *testing.T) {
	v, _ := newCellViewer(t, 4)
	g := v.Geometry()

	v.HandlePointerDown(g.NibbleToPixel(1, 0), false)
	v.HandlePointerMove(g.NibbleToPixel(4, 0))

	var r recorder
	v.Paint(&r)

	want := map[int64]Role{0: RoleHex, 1: RoleHexSelected, 2: RoleHexSelected, 3: RoleHexSelected, 4: RoleHex}
	for n, role := range want {
		op, ok := r.textAt(g.NibbleToPixel(n, 0))
		if !ok || op.Role != role {
			t.Errorf("nibble %d: role=%v, want %v", n, op.Role, role)
		}
	}
}

func TestPaintScrolledAndEditing(t *testing.T) {
	v, _ := newCellViewer(t, 1)
	g := v.Geometry()

	v.JumpToOffset(18)
	v.BeginEdit()
	v.HandleEditKey(edit.Key{Type: edit.KeyRune, Rune: 'a'})

	var r recorder
	v.Paint(&r)

	if op, ok := r.textAt(layout.Point{X: 0, Y: 0}); !ok || op.Text != "0000000010" {
		t.Errorf("expected the second row at the top, got %+v", op)
	}
	at := g.NibbleToPixel(36, 1)
	if op, ok := r.textAt(at); !ok || op.Text != "a" || op.Role != RoleEdit {
		t.Errorf("edit box text: %+v", op)
	}
	carets := r.filled(RoleCursor)
	if len(carets) != 1 || carets[0].X != at.X+1 {
		t.Errorf("expected only the edit caret after the typed digit, got %+v", carets)
	}
}

func TestPaintWithoutFocusHidesCaret(t *testing.T) {
	v, _ := newCellViewer(t, 4)
	v.SetFocus(false)

	var r recorder
	v.Paint(&r)
	if rects := r.filled(RoleCursor); len(rects) != 0 {
		t.Errorf("expected no caret, got %+v", rects)
	}
}

func TestPrintable(t *testing.T) {
	for b, want := range map[byte]bool{0x1f: false, 0x20: true, 'A': true, 0x7e: true, 0x7f: false, 0xff: false} {
		if Printable(b) != want {
			t.Errorf("Printable(%#x)=%v, want %v", b, !want, want)
		}
	}
}

func TestScrollModel(t *testing.T) {
	var s ScrollModel
	s.SetRange(0, 5)
	s.SetValue(9)
	if s.Value() != 5 {
		t.Errorf("value=%d, want 5", s.Value())
	}
	s.SetRange(0, 2)
	if s.Value() != 2 {
		t.Errorf("value=%d after shrinking range, want 2", s.Value())
	}
	s.SetRange(3, 1)
	if lo, hi := s.Range(); lo != 3 || hi != 3 || s.Value() != 3 {
		t.Errorf("range=[%d,%d] value=%d", lo, hi, s.Value())
	}
	s.SetPageStep(-4)
	if s.PageStep() != 0 {
		t.Errorf("page step=%d, want 0", s.PageStep())
	}
}
