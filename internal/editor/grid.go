package editor

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"hexview/internal/config"
	"hexview/internal/layout"
	"hexview/internal/viewer"
)

type cell struct {
	ch rune
	fg viewer.Role
	bg viewer.Role
}

// grid is a viewer.Surface over terminal cells: one pixel is one cell.
type grid struct {
	width, height int
	cells         []cell
}

func newGrid(width, height int) *grid {
	width = max(width, 0)
	height = max(height, 0)
	g := &grid{width: width, height: height, cells: make([]cell, width*height)}
	for i := range g.cells {
		g.cells[i] = cell{ch: ' '}
	}
	return g
}

func (g *grid) at(x, y int) *cell {
	if x < 0 || y < 0 || x >= g.width || y >= g.height {
		return nil
	}
	return &g.cells[y*g.width+x]
}

func (g *grid) FillRect(r viewer.Rect, role viewer.Role) {
	for y := r.Y; y < r.Y+r.H; y++ {
		for x := r.X; x < r.X+r.W; x++ {
			c := g.at(x, y)
			if c == nil {
				continue
			}
			c.bg = role
			if role == viewer.RoleSeparator {
				c.ch = '│'
				c.fg = role
			}
		}
	}
}

func (g *grid) DrawText(p layout.Point, text string, role viewer.Role) {
	x := p.X
	for _, r := range text {
		if c := g.at(x, p.Y); c != nil {
			c.ch = r
			c.fg = role
		}
		x++
	}
}

func styleFor(s *config.Styles, c cell) lipgloss.Style {
	switch c.bg {
	case viewer.RoleCursor:
		return s.Cursor
	case viewer.RoleEdit:
		return s.Edit
	}

	switch c.fg {
	case viewer.RoleHexSelected:
		return s.Selection
	case viewer.RoleAddress:
		return s.Address
	case viewer.RoleHex:
		return s.Hex
	case viewer.RoleASCII:
		return s.ASCII
	case viewer.RoleSeparator:
		return s.Separator
	}

	if c.bg == viewer.RoleAddressArea {
		return s.AddressArea
	}
	return s.Base
}

// Render styles runs of cells that share a style.
func (g *grid) Render(s *config.Styles) string {
	lines := make([]string, 0, g.height)
	for y := 0; y < g.height; y++ {
		var line strings.Builder
		var run strings.Builder
		var runStyle lipgloss.Style
		runKey := cell{ch: -1}

		flush := func() {
			if run.Len() > 0 {
				line.WriteString(runStyle.Render(run.String()))
				run.Reset()
			}
		}

		for x := 0; x < g.width; x++ {
			c := g.cells[y*g.width+x]
			key := cell{fg: c.fg, bg: c.bg}
			if key != runKey {
				flush()
				runKey = key
				runStyle = styleFor(s, c)
			}
			run.WriteRune(c.ch)
		}
		flush()
		lines = append(lines, line.String())
	}
	return strings.Join(lines, "\n")
}
