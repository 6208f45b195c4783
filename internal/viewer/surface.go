package viewer

import "hexview/internal/layout"

// Role classifies what a painted element is, leaving colors to the renderer.
type Role int

const (
	RoleBase Role = iota
	RoleAddressArea
	RoleSeparator
	RoleAddress
	RoleHex
	RoleHexSelected
	RoleASCII
	RoleCursor
	RoleEdit
)

type Rect struct {
	X, Y, W, H int
}

// Surface is the render collaborator. Coordinates are viewport pixels.
type Surface interface {
	FillRect(r Rect, role Role)
	DrawText(p layout.Point, text string, role Role)
}

// Scrollbar is the vertical scroll collaborator, in rows.
type Scrollbar interface {
	Value() int64
	SetValue(v int64)
	SetRange(min, max int64)
	PageStep() int64
	SetPageStep(step int64)
}

// ScrollModel is a Scrollbar with no widget behind it. SetValue clamps into
// the current range.
type ScrollModel struct {
	value    int64
	min, max int64
	page     int64
}

func (s *ScrollModel) Value() int64 {
	return s.value
}

func (s *ScrollModel) SetValue(v int64) {
	if v > s.max {
		v = s.max
	}
	if v < s.min {
		v = s.min
	}
	s.value = v
}

func (s *ScrollModel) SetRange(min, max int64) {
	if max < min {
		max = min
	}
	s.min, s.max = min, max
	s.SetValue(s.value)
}

func (s *ScrollModel) Range() (int64, int64) {
	return s.min, s.max
}

func (s *ScrollModel) PageStep() int64 {
	return s.page
}

func (s *ScrollModel) SetPageStep(step int64) {
	if step < 0 {
		step = 0
	}
	s.page = step
}
