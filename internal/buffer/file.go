package buffer

import (
	"io"
	"os"
)

// File is a read-only source backed by an open file. Every Read seeks and
// reads, so the data is never held in memory.
type File struct {
	path string
	f    *os.File
}

// OpenFile opens path for reading. Failure is reported as an *OpenError.
func OpenFile(path string) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &OpenError{Path: path, Err: err}
	}
	return &File{path: path, f: f}, nil
}

func (s *File) Path() string {
	return s.path
}

func (s *File) ReadOnly() bool {
	return true
}

// Size is the file's current size, or 0 when it cannot be determined.
func (s *File) Size() int64 {
	info, err := s.f.Stat()
	if err != nil {
		return 0
	}
	return info.Size()
}

// Read returns at most length bytes from offset. I/O errors truncate the
// result instead of surfacing.
func (s *File) Read(offset int64, length int) []byte {
	size := s.Size()
	if offset < 0 || length <= 0 || offset >= size {
		return []byte{}
	}
	if n := size - offset; int64(length) > n {
		length = int(n)
	}
	if _, err := s.f.Seek(offset, io.SeekStart); err != nil {
		return []byte{}
	}

	buf := make([]byte, length)
	n, _ := io.ReadFull(s.f, buf)
	return buf[:n]
}

// Write is a no-op; file sources are never modified.
func (s *File) Write(offset int64, value byte) {}

func (s *File) Close() error {
	return s.f.Close()
}
