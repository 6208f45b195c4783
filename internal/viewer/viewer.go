// Package viewer is the stateful core of a hex dump view: it owns the data
// source, layout, cursor, selection and edit session, and exposes the entry
// points a UI shell drives.
//
// Every exported method holds the viewer's mutex for its whole duration, so
// no caller observes a geometry that does not match the selection or source
// it was derived from.
package viewer

import (
	"io"
	"sync"

	"github.com/charmbracelet/log"

	"hexview/internal/buffer"
	"hexview/internal/clip"
	"hexview/internal/edit"
	"hexview/internal/layout"
	"hexview/internal/nav"
	"hexview/internal/selection"
)

type Config struct {
	Layout     layout.Options
	CharWidth  int
	CharHeight int
	// Scrollbar defaults to a ScrollModel.
	Scrollbar Scrollbar
	// Logger defaults to one that discards everything.
	Logger *log.Logger
}

type Viewer struct {
	mu sync.Mutex

	src     buffer.Source
	opts    layout.Options
	charW   int
	charH   int
	width   int
	height  int
	geom    layout.Geometry
	scroll  Scrollbar
	cursor  int64
	sel     selection.Selection
	edit    edit.Session
	focused bool
	log     *log.Logger
}

func New(cfg Config) *Viewer {
	v := &Viewer{
		opts:    cfg.Layout,
		charW:   cfg.CharWidth,
		charH:   cfg.CharHeight,
		scroll:  cfg.Scrollbar,
		log:     cfg.Logger,
		focused: true,
	}
	if v.scroll == nil {
		v.scroll = &ScrollModel{}
	}
	if v.log == nil {
		v.log = log.New(io.Discard)
	}
	v.geom = layout.Recompute(v.opts, v.width, v.charW, v.charH)
	return v
}

// SetDataSource replaces the source, closing the previous one when it is
// closable, and resets cursor, selection and scroll position to 0.
func (v *Viewer) SetDataSource(src buffer.Source) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.setSource(src)
}

// OpenFile replaces the source with a read-only file-backed one. On failure
// the current source stays in place.
func (v *Viewer) OpenFile(path string) error {
	f, err := buffer.OpenFile(path)
	if err != nil {
		v.log.Warn("open failed", "path", path, "err", err)
		return err
	}

	v.mu.Lock()
	defer v.mu.Unlock()
	v.setSource(f)
	return nil
}

func (v *Viewer) setSource(src buffer.Source) {
	v.cancelEdit()
	if old, ok := v.src.(io.Closer); ok && v.src != src {
		if err := old.Close(); err != nil {
			v.log.Warn("closing previous source", "err", err)
		}
	}

	v.src = src
	v.cursor = 0
	v.sel.Reset(0)
	v.scroll.SetValue(0)
	v.updateScroll()
	v.log.Info("data source set", "size", v.size())
}

// Clear scrolls back to the first row.
func (v *Viewer) Clear() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.setFirstRow(0)
}

// JumpToOffset places the cursor on byteOffset and scrolls its row to the
// top. Offsets outside the data are ignored.
func (v *Viewer) JumpToOffset(byteOffset int64) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.src == nil || byteOffset < 0 || byteOffset >= v.size() {
		return
	}
	v.cancelEdit()
	v.setCursor(byteOffset * 2)
	v.setFirstRow(v.geom.RowOf(v.cursor))
}

// SetSelectedRange highlights byteLength bytes starting at byteOffset.
func (v *Viewer) SetSelectedRange(byteOffset, byteLength int64) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.cancelEdit()
	v.sel.SetExplicit(byteOffset, byteLength)
}

// HandleCommand applies a navigation or selection command and scrolls the
// cursor into view.
func (v *Viewer) HandleCommand(cmd nav.Command) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.cancelEdit()
	if cmd == nav.SelectAll {
		v.sel.SelectAll(v.size())
	} else {
		pos := nav.Apply(cmd, v.navState())
		v.setCursor(pos)
		if cmd.Extends() {
			v.sel.Extend(pos)
		} else {
			v.sel.Reset(pos)
		}
		v.log.Debug("navigate", "cmd", cmd, "pos", pos)
	}
	v.ensureVisible()
}

// HandlePointerDown moves the cursor to the nibble under p, starting a new
// selection or, with shift held, extending the current one. It reports
// whether p hit the hex column.
func (v *Viewer) HandlePointerDown(p layout.Point, shift bool) bool {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.cancelEdit()
	pos, ok := v.hit(p)
	if !ok {
		return false
	}
	if shift {
		v.sel.Extend(pos)
	} else {
		v.sel.Reset(pos)
	}
	v.setCursor(pos)
	return true
}

// HandlePointerMove drags the selection end and cursor to the nibble under p.
func (v *Viewer) HandlePointerMove(p layout.Point) bool {
	v.mu.Lock()
	defer v.mu.Unlock()

	pos, ok := v.hit(p)
	if !ok {
		return false
	}
	v.cancelEdit()
	v.setCursor(pos)
	v.sel.Extend(pos)
	return true
}

// HandleDoubleClick places the cursor under p and opens an edit session on
// that byte. It reports whether a session was opened.
func (v *Viewer) HandleDoubleClick(p layout.Point) bool {
	v.mu.Lock()
	defer v.mu.Unlock()

	pos, ok := v.hit(p)
	if !ok {
		v.cancelEdit()
		return false
	}
	v.setCursor(pos)
	v.sel.Reset(pos)
	return v.openEdit()
}

// BeginEdit opens an edit session on the byte under the cursor.
func (v *Viewer) BeginEdit() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.openEdit()
}

func (v *Viewer) openEdit() bool {
	if !v.edit.Open(v.src, v.cursor/2) {
		return false
	}
	v.focused = false
	v.log.Debug("edit opened", "offset", v.edit.Offset(), "text", v.edit.Text())
	return true
}

// HandleEditKey feeds a key to the open edit session. Enter writes the byte
// through the source; Enter and Escape return focus to the viewer.
func (v *Viewer) HandleEditKey(k edit.Key) edit.Result {
	v.mu.Lock()
	defer v.mu.Unlock()

	offset := v.edit.Offset()
	res := v.edit.HandleKey(v.src, k)
	switch res {
	case edit.Committed:
		v.focused = true
		v.log.Debug("byte written", "offset", offset, "value", v.src.Read(offset, 1))
	case edit.Cancelled:
		v.focused = true
	}
	return res
}

// CancelEdit closes any open edit session without writing.
func (v *Viewer) CancelEdit() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.cancelEdit()
}

func (v *Viewer) cancelEdit() {
	if v.edit.Cancel() {
		v.focused = true
	}
}

// HandleViewportResize recomputes the layout for a viewport of w x h pixels.
func (v *Viewer) HandleViewportResize(w, h int) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.cancelEdit()
	v.width, v.height = w, h
	v.geom = layout.Recompute(v.opts, w, v.charW, v.charH)
	v.setCursor(v.cursor)
	v.sel.Clamp(v.selectionLimit())
	v.updateScroll()
	v.log.Debug("resize", "width", w, "height", h, "bytesPerLine", v.geom.BytesPerLine)
}

// HandleScroll moves the first visible row by delta rows. Any open edit
// session is cancelled, even when the view is already at its limit.
func (v *Viewer) HandleScroll(delta int64) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.cancelEdit()
	v.setFirstRow(v.scroll.Value() + delta)
}

// CopySelection serializes the selected range as clipboard text.
func (v *Viewer) CopySelection() string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return clip.Encode(v.sel.Begin(), v.sel.End(), v.src, v.geom.BytesPerLine)
}

type undoer interface {
	Undo() bool
	Redo() bool
}

type matchCounter interface {
	CountMatches(pattern []byte) int
}

// Undo reverts the source's last write when the source keeps history.
func (v *Viewer) Undo() bool {
	v.mu.Lock()
	defer v.mu.Unlock()

	u, ok := v.src.(undoer)
	if !ok {
		return false
	}
	v.cancelEdit()
	return u.Undo()
}

// Redo reapplies the last undone write when the source keeps history.
func (v *Viewer) Redo() bool {
	v.mu.Lock()
	defer v.mu.Unlock()

	u, ok := v.src.(undoer)
	if !ok {
		return false
	}
	v.cancelEdit()
	return u.Redo()
}

// Find returns the offset of the first occurrence of pattern at or after
// start, or -1.
func (v *Viewer) Find(pattern []byte, start int64) int64 {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.src == nil {
		return -1
	}
	return buffer.Search(v.src, pattern, start)
}

// CountMatches counts occurrences of pattern. It reports false when the
// source cannot count without a full scan.
func (v *Viewer) CountMatches(pattern []byte) (int, bool) {
	v.mu.Lock()
	defer v.mu.Unlock()

	c, ok := v.src.(matchCounter)
	if !ok {
		return 0, false
	}
	return c.CountMatches(pattern), true
}

// SetFocus controls whether the cursor caret is painted.
func (v *Viewer) SetFocus(focused bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.focused = focused
}

func (v *Viewer) size() int64 {
	if v.src == nil {
		return 0
	}
	return v.src.Size()
}

func (v *Viewer) visibleRows() int {
	return v.geom.VisibleRows(v.height)
}

func (v *Viewer) navState() nav.State {
	return nav.State{
		Cursor:       v.cursor,
		Size:         v.size(),
		BytesPerLine: v.geom.BytesPerLine,
		VisibleRows:  v.visibleRows(),
	}
}

func (v *Viewer) hit(p layout.Point) (int64, bool) {
	pos, ok := v.geom.PixelToNibble(p, v.scroll.Value())
	if !ok {
		return 0, false
	}
	return nav.Clamp(pos, v.size(), v.geom.BytesPerLine), true
}

// selectionLimit is the furthest selection endpoint: the cursor bound, or
// the select-all end one nibble past the data when that is further.
func (v *Viewer) selectionLimit() int64 {
	limit := nav.MaxPos(v.size(), v.geom.BytesPerLine)
	if size := v.size(); size > 0 {
		limit = max(limit, 2*size+1)
	}
	return limit
}

func (v *Viewer) setCursor(pos int64) {
	v.cursor = nav.Clamp(pos, v.size(), v.geom.BytesPerLine)
}

// setFirstRow scrolls, cancelling the edit session when the view moves.
func (v *Viewer) setFirstRow(row int64) {
	before := v.scroll.Value()
	v.scroll.SetValue(row)
	if v.scroll.Value() != before {
		v.cancelEdit()
	}
}

func (v *Viewer) ensureVisible() {
	first := v.scroll.Value()
	next := nav.EnsureVisible(v.geom.RowOf(v.cursor), first, v.visibleRows())
	v.setFirstRow(next)
}

func (v *Viewer) updateScroll() {
	v.scroll.SetPageStep(int64(v.visibleRows()))
	v.scroll.SetRange(0, v.geom.ScrollRange(v.size(), v.height))
}
