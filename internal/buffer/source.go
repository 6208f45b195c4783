package buffer

import (
	"bytes"
	"errors"
	"fmt"
)

// Source is the byte sequence a viewer displays. Read never fails: requests
// past the end return fewer bytes (possibly none). Write replaces a single
// byte and is a no-op on read-only sources.
type Source interface {
	Size() int64
	Read(offset int64, length int) []byte
	Write(offset int64, value byte)
}

// ErrNoFilename is returned when saving a memory source that was never named.
var ErrNoFilename = errors.New("no filename set")

// OpenError reports that a file-backed source could not be constructed.
type OpenError struct {
	Path string
	Err  error
}

func (e *OpenError) Error() string {
	return fmt.Sprintf("open %s: %v", e.Path, e.Err)
}

func (e *OpenError) Unwrap() error {
	return e.Err
}

type readOnly interface {
	ReadOnly() bool
}

// Writable reports whether writes to src have a visible effect.
func Writable(src Source) bool {
	if src == nil {
		return false
	}
	if ro, ok := src.(readOnly); ok {
		return !ro.ReadOnly()
	}
	return true
}

type finder interface {
	Find(pattern []byte, startOffset int64, forward bool) int64
}

const searchChunk = 64 * 1024

// Search returns the first offset at or after start where pattern occurs in
// src, or -1.
func Search(src Source, pattern []byte, start int64) int64 {
	if src == nil || len(pattern) == 0 {
		return -1
	}
	if start < 0 {
		start = 0
	}
	if f, ok := src.(finder); ok {
		return f.Find(pattern, start, true)
	}

	size := src.Size()
	overlap := int64(len(pattern) - 1)
	for pos := start; pos < size; pos += searchChunk {
		chunk := src.Read(pos, searchChunk+int(overlap))
		if idx := bytes.Index(chunk, pattern); idx >= 0 {
			return pos + int64(idx)
		}
		if int64(len(chunk)) < searchChunk+overlap {
			break
		}
	}
	return -1
}
