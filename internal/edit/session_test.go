package edit

import (
	"os"
	"path/filepath"
	"testing"

	"hexview/internal/buffer"
)

func alphabet() *buffer.Memory {
	data := make([]byte, 26)
	for i := range data {
		data[i] = byte('A' + i)
	}
	return buffer.NewMemory(data)
}

func typeString(s *Session, src buffer.Source, text string) {
	for _, r := range text {
		s.HandleKey(src, Key{Type: KeyRune, Rune: r})
	}
}

func TestOpenSeedsText(t *testing.T) {
	src := alphabet()
	var s Session

	if !s.Open(src, 5) {
		t.Fatal("expected session to open")
	}
	if s.State() != Open || s.Offset() != 5 {
		t.Errorf("state=%v offset=%d", s.State(), s.Offset())
	}
	if s.Text() != "46" {
		t.Errorf("expected seed 46, got %q", s.Text())
	}
	if !s.Selected() || s.Caret() != 0 {
		t.Errorf("expected whole text selected with caret 0, got selected=%v caret=%d", s.Selected(), s.Caret())
	}
}

func TestTypeAndCommit(t *testing.T) {
	src := alphabet()
	var s Session
	s.Open(src, 5)

	typeString(&s, src, "41")
	if s.Text() != "41" {
		t.Fatalf("expected 41, got %q", s.Text())
	}
	if res := s.HandleKey(src, Key{Type: KeyEnter}); res != Committed {
		t.Fatalf("expected Committed, got %v", res)
	}
	if s.IsOpen() {
		t.Error("expected session closed after commit")
	}
	if got := src.Read(5, 1); got[0] != 0x41 {
		t.Errorf("expected 0x41 at offset 5, got %02X", got[0])
	}
}

func TestFilterIgnoresNonHex(t *testing.T) {
	src := alphabet()
	var s Session
	s.Open(src, 0)

	for _, r := range "xyz!G " {
		if res := s.HandleKey(src, Key{Type: KeyRune, Rune: r}); res != Ignored {
			t.Errorf("expected %q to be ignored, got %v", r, res)
		}
	}
	if res := s.HandleKey(src, Key{Type: KeyOther}); res != Ignored {
		t.Errorf("expected other keys to be ignored, got %v", res)
	}
	if s.Text() != "41" {
		t.Errorf("ignored keys changed text to %q", s.Text())
	}
}

func TestCaretMovementAndMaxLength(t *testing.T) {
	src := alphabet()
	var s Session
	s.Open(src, 0)

	s.HandleKey(src, Key{Type: KeyRight})
	if s.Selected() || s.Caret() != 2 {
		t.Fatalf("expected caret at end without selection, got caret=%d selected=%v", s.Caret(), s.Selected())
	}
	if res := s.HandleKey(src, Key{Type: KeyRune, Rune: 'f'}); res != Ignored {
		t.Errorf("expected a full buffer to ignore input, got %v", res)
	}

	s.HandleKey(src, Key{Type: KeyLeft})
	s.HandleKey(src, Key{Type: KeyLeft})
	s.HandleKey(src, Key{Type: KeyLeft})
	if s.Caret() != 0 {
		t.Errorf("expected caret clamped at 0, got %d", s.Caret())
	}
}

func TestPartialTextCommits(t *testing.T) {
	src := alphabet()
	var s Session
	s.Open(src, 2)
	typeString(&s, src, "7")

	if _, value, ok := s.Commit(src); !ok || value != 0x07 {
		t.Errorf("expected 0x07, got %02X ok=%v", value, ok)
	}
}

func TestCancelDoesNotWrite(t *testing.T) {
	src := alphabet()
	var s Session
	s.Open(src, 3)
	typeString(&s, src, "00")

	if res := s.HandleKey(src, Key{Type: KeyEscape}); res != Cancelled {
		t.Fatalf("expected Cancelled, got %v", res)
	}
	if got := src.Read(3, 1); got[0] != 'D' {
		t.Errorf("cancel wrote %02X", got[0])
	}
	if src.IsModified() {
		t.Error("expected source unmodified")
	}
	if s.Cancel() {
		t.Error("expected second cancel to report nothing open")
	}
}

func TestReopenCancelsPrevious(t *testing.T) {
	src := alphabet()
	var s Session
	s.Open(src, 1)
	typeString(&s, src, "ff")
	s.Open(src, 2)

	if s.Offset() != 2 || s.Text() != "43" {
		t.Errorf("expected fresh session on byte 2, got offset=%d text=%q", s.Offset(), s.Text())
	}
	if got := src.Read(1, 1); got[0] != 'B' {
		t.Errorf("reopening wrote %02X to byte 1", got[0])
	}
}

func TestOpenRejected(t *testing.T) {
	var s Session
	if s.Open(alphabet(), 26) {
		t.Error("expected open past end to fail")
	}
	if s.Open(nil, 0) {
		t.Error("expected open without source to fail")
	}

	path := filepath.Join(t.TempDir(), "ro.bin")
	if err := os.WriteFile(path, []byte{1, 2, 3}, 0644); err != nil {
		t.Fatal(err)
	}
	f, err := buffer.OpenFile(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	if s.Open(f, 0) {
		t.Error("expected open on read-only source to fail")
	}
	if s.IsOpen() {
		t.Error("expected session to stay closed")
	}
}

func TestKeysWhenClosed(t *testing.T) {
	var s Session
	if res := s.HandleKey(nil, Key{Type: KeyEnter}); res != Ignored {
		t.Errorf("expected Ignored, got %v", res)
	}
	if _, _, ok := s.Commit(nil); ok {
		t.Error("expected commit on closed session to fail")
	}
}
