package buffer

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"io"
	"os"
)

// Operation is a single recorded byte write.
type Operation struct {
	Offset   int64
	OldValue byte
	NewValue byte
}

// Memory is a mutable source holding all of its bytes in an owned slice.
type Memory struct {
	filename     string
	data         []byte
	originalHash string
	modified     bool
	undoStack    []Operation
	redoStack    []Operation
}

// NewMemory takes a private copy of data.
func NewMemory(data []byte) *Memory {
	owned := make([]byte, len(data))
	copy(owned, data)
	return &Memory{
		data:         owned,
		originalHash: hashOf(owned),
	}
}

// Load reads the whole file into a new memory source.
func Load(filename string) (*Memory, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, &OpenError{Path: filename, Err: err}
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, &OpenError{Path: filename, Err: err}
	}

	return &Memory{
		filename:     filename,
		data:         data,
		originalHash: hashOf(data),
	}, nil
}

func hashOf(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

func (m *Memory) Filename() string {
	return m.filename
}

func (m *Memory) IsModified() bool {
	return m.modified
}

func (m *Memory) Size() int64 {
	return int64(len(m.data))
}

func (m *Memory) ByteAt(offset int64) (byte, bool) {
	if offset < 0 || offset >= int64(len(m.data)) {
		return 0, false
	}
	return m.data[offset], true
}

// Read copies up to length bytes starting at offset.
func (m *Memory) Read(offset int64, length int) []byte {
	if offset < 0 || offset >= int64(len(m.data)) || length <= 0 {
		return []byte{}
	}
	if n := int64(len(m.data)) - offset; int64(length) > n {
		length = int(n)
	}
	end := offset + int64(length)
	result := make([]byte, end-offset)
	copy(result, m.data[offset:end])
	return result
}

// Write replaces the byte at offset. Offsets outside the data are ignored.
func (m *Memory) Write(offset int64, value byte) {
	if offset < 0 || offset >= int64(len(m.data)) {
		return
	}

	m.undoStack = append(m.undoStack, Operation{
		Offset:   offset,
		OldValue: m.data[offset],
		NewValue: value,
	})
	m.redoStack = nil

	m.data[offset] = value
	m.modified = true
}

func (m *Memory) Undo() bool {
	if len(m.undoStack) == 0 {
		return false
	}

	op := m.undoStack[len(m.undoStack)-1]
	m.undoStack = m.undoStack[:len(m.undoStack)-1]
	m.data[op.Offset] = op.OldValue

	m.redoStack = append(m.redoStack, op)
	m.modified = len(m.undoStack) > 0
	return true
}

func (m *Memory) Redo() bool {
	if len(m.redoStack) == 0 {
		return false
	}

	op := m.redoStack[len(m.redoStack)-1]
	m.redoStack = m.redoStack[:len(m.redoStack)-1]
	m.data[op.Offset] = op.NewValue

	m.undoStack = append(m.undoStack, op)
	m.modified = true
	return true
}

func (m *Memory) CanUndo() bool {
	return len(m.undoStack) > 0
}

func (m *Memory) CanRedo() bool {
	return len(m.redoStack) > 0
}

// HasChangedOnDisk compares the file's current contents with what was loaded
// or last saved.
func (m *Memory) HasChangedOnDisk() (bool, error) {
	if m.filename == "" {
		return false, nil
	}

	data, err := os.ReadFile(m.filename)
	if err != nil {
		return false, err
	}
	return hashOf(data) != m.originalHash, nil
}

func (m *Memory) Save() error {
	if m.filename == "" {
		return ErrNoFilename
	}

	if err := os.WriteFile(m.filename, m.data, 0644); err != nil {
		return err
	}

	m.originalHash = hashOf(m.data)
	m.modified = false
	m.undoStack = nil
	m.redoStack = nil
	return nil
}

func (m *Memory) SaveAs(filename string) error {
	m.filename = filename
	return m.Save()
}

// Find returns the offset of the nearest match of pattern from startOffset in
// the given direction, or -1.
func (m *Memory) Find(pattern []byte, startOffset int64, forward bool) int64 {
	if len(pattern) == 0 || len(m.data) == 0 {
		return -1
	}

	if forward {
		if startOffset < 0 {
			startOffset = 0
		}
		if startOffset > int64(len(m.data)) {
			return -1
		}
		idx := bytes.Index(m.data[startOffset:], pattern)
		if idx < 0 {
			return -1
		}
		return startOffset + int64(idx)
	}

	end := startOffset - 1 + int64(len(pattern))
	if end > int64(len(m.data)) {
		end = int64(len(m.data))
	}
	if end < int64(len(pattern)) {
		return -1
	}
	return int64(bytes.LastIndex(m.data[:end], pattern))
}

func (m *Memory) CountMatches(pattern []byte) int {
	if len(pattern) == 0 {
		return 0
	}
	count := 0
	for i := 0; i+len(pattern) <= len(m.data); i++ {
		if bytes.Equal(m.data[i:i+len(pattern)], pattern) {
			count++
		}
	}
	return count
}
