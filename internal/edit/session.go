// Package edit implements the single-byte overwrite session of a viewer.
package edit

import (
	"fmt"
	"strconv"

	"hexview/internal/buffer"
)

type State int

const (
	Closed State = iota
	Open
)

func (s State) String() string {
	if s == Open {
		return "open"
	}
	return "closed"
}

type KeyType int

const (
	KeyRune KeyType = iota
	KeyLeft
	KeyRight
	KeyEnter
	KeyEscape
	KeyOther
)

// Key is a key press delivered to an open session. Rune is only meaningful
// for KeyRune.
type Key struct {
	Type KeyType
	Rune rune
}

// Result tells the owner what a key did.
type Result int

const (
	Ignored Result = iota
	Accepted
	Committed
	Cancelled
)

const maxDigits = 2

// Session is the edit box over one byte. The zero value is closed.
type Session struct {
	state  State
	offset int64
	text   []rune
	caret  int
	// selected is true while the seeded text is still wholly selected, so
	// the first typed digit replaces it.
	selected bool
}

// Open starts editing the byte at offset, cancelling any session already
// open. It fails on read-only sources and offsets past the data.
func (s *Session) Open(src buffer.Source, offset int64) bool {
	s.Cancel()
	if !buffer.Writable(src) || offset < 0 {
		return false
	}
	b := src.Read(offset, 1)
	if len(b) == 0 {
		return false
	}

	s.state = Open
	s.offset = offset
	s.text = []rune(fmt.Sprintf("%02x", b[0]))
	s.caret = 0
	s.selected = true
	return true
}

func (s *Session) IsOpen() bool {
	return s.state == Open
}

func (s *Session) State() State {
	return s.state
}

func (s *Session) Offset() int64 {
	return s.offset
}

func (s *Session) Text() string {
	return string(s.text)
}

func (s *Session) Caret() int {
	return s.caret
}

// Selected reports whether the whole text is still selected.
func (s *Session) Selected() bool {
	return s.selected
}

// HandleKey feeds one key to an open session. Enter writes through src.
func (s *Session) HandleKey(src buffer.Source, k Key) Result {
	if s.state != Open {
		return Ignored
	}

	switch k.Type {
	case KeyEnter:
		s.Commit(src)
		return Committed
	case KeyEscape:
		s.Cancel()
		return Cancelled
	case KeyLeft:
		if s.selected {
			s.selected = false
			s.caret = 0
		} else if s.caret > 0 {
			s.caret--
		}
		return Accepted
	case KeyRight:
		if s.selected {
			s.selected = false
			s.caret = len(s.text)
		} else if s.caret < len(s.text) {
			s.caret++
		}
		return Accepted
	case KeyRune:
		if !IsHexDigit(k.Rune) {
			return Ignored
		}
		return s.insert(k.Rune)
	}
	return Ignored
}

func (s *Session) insert(r rune) Result {
	if s.selected {
		s.text = []rune{r}
		s.caret = 1
		s.selected = false
		return Accepted
	}
	if len(s.text) >= maxDigits {
		return Ignored
	}
	s.text = append(s.text[:s.caret], append([]rune{r}, s.text[s.caret:]...)...)
	s.caret++
	return Accepted
}

// Value is the byte the current text would commit. Text that does not parse
// as hex commits 0.
func (s *Session) Value() byte {
	v, err := strconv.ParseUint(string(s.text), 16, 8)
	if err != nil {
		return 0
	}
	return byte(v)
}

// Commit writes the parsed value and closes the session.
func (s *Session) Commit(src buffer.Source) (offset int64, value byte, ok bool) {
	if s.state != Open {
		return 0, 0, false
	}
	offset, value = s.offset, s.Value()
	if src != nil {
		src.Write(offset, value)
	}
	s.reset()
	return offset, value, true
}

// Cancel closes the session without writing. It is safe on a closed session.
func (s *Session) Cancel() bool {
	if s.state != Open {
		return false
	}
	s.reset()
	return true
}

func (s *Session) reset() {
	*s = Session{}
}

func IsHexDigit(r rune) bool {
	return (r >= '0' && r <= '9') || (r >= 'a' && r <= 'f') || (r >= 'A' && r <= 'F')
}
