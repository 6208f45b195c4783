package editor

import (
	"fmt"
	"strings"

	"hexview/internal/buffer"
)

func (m *Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	var b strings.Builder

	b.WriteString(m.renderLegend())
	b.WriteString("\n")

	if m.view == ViewHelp {
		b.WriteString(m.renderHelp())
		return b.String()
	}

	b.WriteString(m.renderTabs())
	b.WriteString("\n")
	b.WriteString(m.renderHex())
	b.WriteString("\n")
	b.WriteString(m.renderStatusLine())

	return b.String()
}

func (m *Model) renderLegend() string {
	var items []string

	hl := func(text string, highlightIdx int) string {
		var result strings.Builder
		for i, ch := range text {
			if i == highlightIdx {
				result.WriteString(m.styles.LegendHighlight.Render(string(ch)))
			} else {
				result.WriteString(m.styles.Legend.Render(string(ch)))
			}
		}
		return result.String()
	}
	disabled := func(text string) string {
		return m.styles.Disabled.Render(text)
	}

	items = append(items, hl("Quit", 0))
	items = append(items, hl("Help", 0))

	switch m.view {
	case ViewMain:
		tab := m.currentTab()
		var mem *buffer.Memory
		var writable bool
		if tab != nil {
			mem, writable = tab.memory()
		}

		items = append(items, hl("Find", 0))
		items = append(items, hl("Goto", 0))
		if writable {
			items = append(items, hl("Save", 0))
		} else {
			items = append(items, disabled("Save"))
		}
		if writable && mem.CanUndo() {
			items = append(items, hl("Undo", 0))
		} else {
			items = append(items, disabled("Undo"))
		}
		if writable && mem.CanRedo() {
			items = append(items, hl("reDo", 2))
		} else {
			items = append(items, disabled("reDo"))
		}
		items = append(items, m.styles.LegendHighlight.Render("TAB"))
		items = append(items, m.styles.LegendHighlight.Render("^C")+m.styles.Legend.Render(" Copy"))
		if writable {
			items = append(items, m.styles.LegendHighlight.Render("ENTER")+m.styles.Legend.Render(" Edit"))
		}
	case ViewFind, ViewGoto, ViewHelp:
		items = append(items, m.styles.LegendHighlight.Render("ESC")+m.styles.Legend.Render(" Back"))
	}

	legend := strings.Join(items, m.styles.Legend.Render(" | "))
	return m.styles.Legend.Width(m.width).Render(legend)
}

func (m *Model) renderTabs() string {
	var tabs []string
	for i, tab := range m.tabs {
		name := tab.Name
		if !buffer.Writable(tab.Source) {
			name += " [ro]"
		}

		style := m.styles.InactiveTab
		if i == m.activeTab {
			style = m.styles.ActiveTab
		}
		if tab.modified() {
			name = "*" + name
			if i != m.activeTab {
				style = m.styles.UnsavedFile
			}
		}

		tabs = append(tabs, style.Render(name))
	}

	return strings.Join(tabs, " | ")
}

func (m *Model) renderHex() string {
	g := newGrid(m.width, m.viewportHeight())
	if tab := m.currentTab(); tab != nil {
		tab.Viewer.Paint(g)
	}
	return g.Render(m.styles)
}

func (m *Model) renderStatusLine() string {
	switch m.view {
	case ViewFind:
		label := "ASCII"
		if m.findMode == "hex" {
			label = "Hex"
		}
		line := fmt.Sprintf("Find %s: %s_", label, m.findInput)
		if tab := m.currentTab(); tab != nil {
			if _, ok := tab.memory(); ok {
				line += fmt.Sprintf("  (%d matches)", m.findMatches)
			}
		}
		if m.statusMsg != "" {
			line += "  " + m.statusMsg
		}
		return line + "  [Up/Down mode, Enter next]"
	case ViewGoto:
		return fmt.Sprintf("Goto offset (prefix 0x for hex): %s_", m.gotoInput)
	case ViewConfirmQuit:
		return "Unsaved changes. Quit anyway? (Y/N)"
	case ViewFileChangedPrompt:
		return "File changed on disk. Overwrite? (Y/N)"
	}

	if m.statusMsg != "" {
		return m.statusMsg
	}
	return m.renderPosition()
}

func (m *Model) renderPosition() string {
	tab := m.currentTab()
	if tab == nil {
		return ""
	}

	v := tab.Viewer
	cursor := v.Cursor()
	line := fmt.Sprintf("Offset 0x%08x  Size %d", cursor/2, tab.Source.Size())
	if sel := v.Selection(); !sel.Empty() {
		line += fmt.Sprintf("  Selected %d nibbles", sel.End()-sel.Begin())
	}
	if v.Editing() {
		line += "  EDIT"
	}
	return line
}

func (m *Model) renderHelp() string {
	help := `
HELP - hexview
==============

NAVIGATION
  Arrow keys        Move cursor by nibble or line
  PgUp/PgDown       Page up/down
  Home/End          Start/end of line
  Ctrl+Home/End     Start/end of data
  Shift+movement    Extend selection
  Ctrl+A            Select all
  Mouse             Click to place cursor, drag to select,
                    double-click to edit, wheel to scroll

EDITING
  Enter             Edit byte at cursor
  0-9 a-f           Type hex digits in the edit box
  Enter / Esc       Commit / cancel the edit
  U                 Undo
  D                 Redo
  S / Ctrl+S        Save file

OTHER
  Ctrl+C            Copy selection as hex
  F                 Find (ASCII or hex)
  G                 Goto offset
  TAB / Shift+TAB   Next / previous file
  H                 Help (this screen)
  Q                 Quit

Press ESC or H to close this help screen.
`
	return help
}
