// Package nav turns named navigation commands into cursor and selection
// transitions over nibble offsets.
package nav

import "fmt"

type Command int

const (
	MoveNextChar Command = iota
	MovePrevChar
	MoveNextLine
	MovePrevLine
	MoveStartOfLine
	MoveEndOfLine
	MoveNextPage
	MovePrevPage
	MoveStartOfDocument
	MoveEndOfDocument

	SelectNextChar
	SelectPrevChar
	SelectNextLine
	SelectPrevLine
	SelectStartOfLine
	SelectEndOfLine
	SelectNextPage
	SelectPrevPage
	SelectStartOfDocument
	SelectEndOfDocument
	SelectAll
)

var commandNames = map[Command]string{
	MoveNextChar:          "MoveNextChar",
	MovePrevChar:          "MovePrevChar",
	MoveNextLine:          "MoveNextLine",
	MovePrevLine:          "MovePrevLine",
	MoveStartOfLine:       "MoveStartOfLine",
	MoveEndOfLine:         "MoveEndOfLine",
	MoveNextPage:          "MoveNextPage",
	MovePrevPage:          "MovePrevPage",
	MoveStartOfDocument:   "MoveStartOfDocument",
	MoveEndOfDocument:     "MoveEndOfDocument",
	SelectNextChar:        "SelectNextChar",
	SelectPrevChar:        "SelectPrevChar",
	SelectNextLine:        "SelectNextLine",
	SelectPrevLine:        "SelectPrevLine",
	SelectStartOfLine:     "SelectStartOfLine",
	SelectEndOfLine:       "SelectEndOfLine",
	SelectNextPage:        "SelectNextPage",
	SelectPrevPage:        "SelectPrevPage",
	SelectStartOfDocument: "SelectStartOfDocument",
	SelectEndOfDocument:   "SelectEndOfDocument",
	SelectAll:             "SelectAll",
}

func (c Command) String() string {
	if name, ok := commandNames[c]; ok {
		return name
	}
	return fmt.Sprintf("Command(%d)", int(c))
}

// Extends reports whether the command grows the selection instead of
// collapsing it onto the new cursor.
func (c Command) Extends() bool {
	return c >= SelectNextChar
}

// State is what a command needs to know about the viewer.
type State struct {
	Cursor       int64
	Size         int64
	BytesPerLine int
	VisibleRows  int
}

func (s State) lineNibbles() int64 {
	bpl := s.BytesPerLine
	if bpl < 1 {
		bpl = 1
	}
	return 2 * int64(bpl)
}

// pageNibbles keeps one row of overlap between pages but always moves at
// least one row.
func (s State) pageNibbles() int64 {
	rows := s.VisibleRows - 1
	if rows < 1 {
		rows = 1
	}
	return int64(rows) * s.lineNibbles()
}

// MaxPos is the largest cursor position: one past the last nibble, plus one
// more when the last line is partial.
func MaxPos(size int64, bytesPerLine int) int64 {
	if size <= 0 {
		return 0
	}
	if bytesPerLine < 1 {
		bytesPerLine = 1
	}
	maxPos := size * 2
	if size%int64(bytesPerLine) != 0 {
		maxPos++
	}
	return maxPos
}

// Clamp saturates pos into [0, MaxPos].
func Clamp(pos, size int64, bytesPerLine int) int64 {
	if pos < 0 {
		return 0
	}
	if maxPos := MaxPos(size, bytesPerLine); pos > maxPos {
		return maxPos
	}
	return pos
}

// Target is the unclamped position a command moves the cursor to.
// SelectAll leaves the cursor where it is.
func Target(cmd Command, s State) int64 {
	pos := s.Cursor
	line := s.lineNibbles()
	lineStart := pos - pos%line

	switch cmd {
	case MoveNextChar, SelectNextChar:
		return pos + 1
	case MovePrevChar, SelectPrevChar:
		return pos - 1
	case MoveNextLine, SelectNextLine:
		return pos + line
	case MovePrevLine, SelectPrevLine:
		return pos - line
	case MoveStartOfLine, SelectStartOfLine:
		return lineStart
	case MoveEndOfLine:
		return lineStart + line - 1
	case SelectEndOfLine:
		// The selection is half-open, so ending on the next line's first
		// nibble includes this line's last one.
		return lineStart + line
	case MoveNextPage, SelectNextPage:
		return pos + s.pageNibbles()
	case MovePrevPage, SelectPrevPage:
		return pos - s.pageNibbles()
	case MoveStartOfDocument, SelectStartOfDocument:
		return 0
	case MoveEndOfDocument, SelectEndOfDocument:
		return 2 * s.Size
	default:
		return pos
	}
}

// Apply returns the clamped cursor position after cmd.
func Apply(cmd Command, s State) int64 {
	return Clamp(Target(cmd, s), s.Size, s.BytesPerLine)
}

// EnsureVisible returns the first visible row that brings cursorRow into a
// viewport of visibleRows rows starting at firstRow. Without any visible
// rows the cursor row becomes the first row.
func EnsureVisible(cursorRow, firstRow int64, visibleRows int) int64 {
	if visibleRows < 1 {
		return cursorRow
	}
	if cursorRow < firstRow {
		return cursorRow
	}
	if cursorRow >= firstRow+int64(visibleRows) {
		next := cursorRow - int64(visibleRows) + 1
		if next < 0 {
			next = 0
		}
		return next
	}
	return firstRow
}
