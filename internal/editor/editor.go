package editor

import (
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"hexview/internal/buffer"
	"hexview/internal/config"
	"hexview/internal/edit"
	"hexview/internal/layout"
	"hexview/internal/nav"
	"hexview/internal/viewer"
)

type View int

const (
	ViewMain View = iota
	ViewHelp
	ViewFind
	ViewGoto
	ViewConfirmQuit
	ViewFileChangedPrompt
)

const (
	// legend and tab bar above the hex area, status line below it
	viewportTop    = 2
	chromeRows     = 3
	wheelRows      = 3
	doubleClickGap = 400 * time.Millisecond
)

var errNoFiles = errors.New("no files given")

// Clipboard receives copied selections.
type Clipboard interface {
	WriteText(text string) error
}

type systemClipboard struct{}

func (systemClipboard) WriteText(text string) error {
	return clipboard.WriteAll(text)
}

type Tab struct {
	Viewer *viewer.Viewer
	Source buffer.Source
	Name   string
}

func (t *Tab) memory() (*buffer.Memory, bool) {
	mem, ok := t.Source.(*buffer.Memory)
	return mem, ok
}

func (t *Tab) modified() bool {
	mem, ok := t.memory()
	return ok && mem.IsModified()
}

type Options struct {
	// ReadOnly opens files through a file-backed source instead of loading
	// them into memory.
	ReadOnly  bool
	Config    *config.Config
	Logger    *log.Logger
	Clipboard Clipboard
}

type click struct {
	at    layout.Point
	time  time.Time
	valid bool
}

type Model struct {
	tabs      []*Tab
	activeTab int
	view      View
	readOnly  bool
	width     int
	height    int
	config    *config.Config
	styles    *config.Styles
	log       *log.Logger
	clipboard Clipboard

	// Find dialog state
	findInput   string
	findMode    string // "ascii" or "hex"
	findMatches int

	// Goto dialog state
	gotoInput string

	// Mouse state
	lastClick click
	dragging  bool
	now       func() time.Time

	statusMsg string
}

func NewModel(files []string, opts Options) (*Model, error) {
	if len(files) == 0 {
		return nil, errNoFiles
	}

	cfg := opts.Config
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	cb := opts.Clipboard
	if cb == nil {
		cb = systemClipboard{}
	}

	m := &Model{
		view:      ViewMain,
		readOnly:  opts.ReadOnly,
		config:    cfg,
		styles:    config.NewStyles(&cfg.Theme),
		log:       logger,
		clipboard: cb,
		findMode:  "ascii",
		now:       time.Now,
	}

	for _, f := range files {
		if err := m.openFile(f); err != nil {
			m.Close()
			return nil, err
		}
	}
	return m, nil
}

func (m *Model) openFile(path string) error {
	var src buffer.Source
	if m.readOnly {
		f, err := buffer.OpenFile(path)
		if err != nil {
			return err
		}
		src = f
	} else {
		mem, err := buffer.Load(path)
		if err != nil {
			return err
		}
		src = mem
	}

	name := filepath.Base(path)
	v := viewer.New(viewer.Config{
		Layout:     m.config.LayoutOptions(),
		CharWidth:  1,
		CharHeight: 1,
		Logger:     m.log.With("file", name),
	})
	v.SetDataSource(src)
	if m.width > 0 {
		v.HandleViewportResize(m.width, m.viewportHeight())
	}

	m.tabs = append(m.tabs, &Tab{Viewer: v, Source: src, Name: name})
	m.activeTab = len(m.tabs) - 1
	return nil
}

// Close releases file-backed sources.
func (m *Model) Close() {
	for _, tab := range m.tabs {
		if c, ok := tab.Source.(io.Closer); ok {
			if err := c.Close(); err != nil {
				m.log.Warn("close failed", "file", tab.Name, "err", err)
			}
		}
	}
}

func (m *Model) currentTab() *Tab {
	if m.activeTab < 0 || m.activeTab >= len(m.tabs) {
		return nil
	}
	return m.tabs[m.activeTab]
}

func (m *Model) viewportHeight() int {
	return max(m.height-chromeRows, 1)
}

func (m *Model) setView(v View) {
	m.view = v
	if tab := m.currentTab(); tab != nil {
		tab.Viewer.SetFocus(v == ViewMain)
	}
}

func (m *Model) Init() tea.Cmd {
	return nil
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		for _, tab := range m.tabs {
			tab.Viewer.HandleViewportResize(m.width, m.viewportHeight())
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		m.handleMouse(msg)
		return m, nil
	}

	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.statusMsg = ""

	switch m.view {
	case ViewHelp:
		return m.handleHelpKey(msg)
	case ViewFind:
		return m.handleFindKey(msg)
	case ViewGoto:
		return m.handleGotoKey(msg)
	case ViewConfirmQuit:
		return m.handleConfirmQuitKey(msg)
	case ViewFileChangedPrompt:
		return m.handleFileChangedPromptKey(msg)
	default:
		return m.handleMainKey(msg)
	}
}

var navKeys = map[string]nav.Command{
	"right":           nav.MoveNextChar,
	"left":            nav.MovePrevChar,
	"down":            nav.MoveNextLine,
	"up":              nav.MovePrevLine,
	"pgdown":          nav.MoveNextPage,
	"pgup":            nav.MovePrevPage,
	"home":            nav.MoveStartOfLine,
	"end":             nav.MoveEndOfLine,
	"ctrl+home":       nav.MoveStartOfDocument,
	"ctrl+end":        nav.MoveEndOfDocument,
	"shift+right":     nav.SelectNextChar,
	"shift+left":      nav.SelectPrevChar,
	"shift+down":      nav.SelectNextLine,
	"shift+up":        nav.SelectPrevLine,
	"shift+pgdown":    nav.SelectNextPage,
	"shift+pgup":      nav.SelectPrevPage,
	"shift+home":      nav.SelectStartOfLine,
	"shift+end":       nav.SelectEndOfLine,
	"ctrl+shift+home": nav.SelectStartOfDocument,
	"ctrl+shift+end":  nav.SelectEndOfDocument,
	"ctrl+a":          nav.SelectAll,
}

func (m *Model) handleMainKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	tab := m.currentTab()
	if tab == nil {
		return m, nil
	}

	if tab.Viewer.Editing() {
		m.handleEditKey(tab, msg)
		return m, nil
	}

	if cmd, ok := navKeys[msg.String()]; ok {
		tab.Viewer.HandleCommand(cmd)
		return m, nil
	}

	switch msg.String() {
	case "enter":
		if !tab.Viewer.BeginEdit() && !buffer.Writable(tab.Source) {
			m.statusMsg = "Read-only"
		}
	case "ctrl+c":
		m.copy()
	case "q", "Q":
		return m.tryQuit()
	case "h", "H":
		m.setView(ViewHelp)
	case "f", "F":
		m.setView(ViewFind)
		m.findInput = ""
		m.findMatches = 0
	case "g", "G":
		m.setView(ViewGoto)
		m.gotoInput = ""
	case "s", "S", "ctrl+s":
		return m.trySave()
	case "u", "U":
		tab.Viewer.Undo()
	case "d", "D":
		tab.Viewer.Redo()
	case "tab":
		m.nextTab()
	case "shift+tab":
		m.prevTab()
	}

	return m, nil
}

func (m *Model) handleEditKey(tab *Tab, msg tea.KeyMsg) {
	switch tab.Viewer.HandleEditKey(editKey(msg)) {
	case edit.Committed:
		m.statusMsg = "Byte written"
	case edit.Cancelled:
		m.statusMsg = "Edit cancelled"
	}
}

func editKey(msg tea.KeyMsg) edit.Key {
	switch msg.Type {
	case tea.KeyLeft:
		return edit.Key{Type: edit.KeyLeft}
	case tea.KeyRight:
		return edit.Key{Type: edit.KeyRight}
	case tea.KeyEnter:
		return edit.Key{Type: edit.KeyEnter}
	case tea.KeyEscape:
		return edit.Key{Type: edit.KeyEscape}
	case tea.KeyRunes:
		if len(msg.Runes) == 1 {
			return edit.Key{Type: edit.KeyRune, Rune: msg.Runes[0]}
		}
	}
	return edit.Key{Type: edit.KeyOther}
}

func (m *Model) handleMouse(msg tea.MouseMsg) {
	if m.view != ViewMain {
		return
	}
	tab := m.currentTab()
	if tab == nil {
		return
	}

	p := layout.Point{X: msg.X, Y: msg.Y - viewportTop}
	switch {
	case msg.Button == tea.MouseButtonWheelUp:
		tab.Viewer.HandleScroll(-wheelRows)
	case msg.Button == tea.MouseButtonWheelDown:
		tab.Viewer.HandleScroll(wheelRows)
	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft:
		if p.Y < 0 || p.Y >= m.viewportHeight() {
			return
		}
		now := m.now()
		if m.lastClick.valid && m.lastClick.at == p && now.Sub(m.lastClick.time) <= doubleClickGap {
			m.lastClick = click{}
			m.dragging = false
			tab.Viewer.HandleDoubleClick(p)
			return
		}
		m.lastClick = click{at: p, time: now, valid: true}
		m.dragging = tab.Viewer.HandlePointerDown(p, msg.Shift)
	case msg.Action == tea.MouseActionMotion && m.dragging:
		tab.Viewer.HandlePointerMove(p)
	case msg.Action == tea.MouseActionRelease:
		m.dragging = false
	}
}

func (m *Model) nextTab() {
	if len(m.tabs) > 1 {
		m.activeTab = (m.activeTab + 1) % len(m.tabs)
	}
}

func (m *Model) prevTab() {
	if len(m.tabs) > 1 {
		m.activeTab = (m.activeTab - 1 + len(m.tabs)) % len(m.tabs)
	}
}

func (m *Model) copy() {
	tab := m.currentTab()
	if tab == nil {
		return
	}

	text := tab.Viewer.CopySelection()
	if text == "" {
		m.statusMsg = "Nothing selected"
		return
	}
	if err := m.clipboard.WriteText(text); err != nil {
		m.log.Error("clipboard write failed", "err", err)
		m.statusMsg = fmt.Sprintf("Copy failed: %v", err)
		return
	}
	m.statusMsg = fmt.Sprintf("Copied %d characters", len(text))
}

func (m *Model) tryQuit() (tea.Model, tea.Cmd) {
	for _, tab := range m.tabs {
		if tab.modified() {
			m.setView(ViewConfirmQuit)
			return m, nil
		}
	}
	return m, tea.Quit
}

func (m *Model) trySave() (tea.Model, tea.Cmd) {
	tab := m.currentTab()
	if tab == nil {
		return m, nil
	}
	mem, ok := tab.memory()
	if !ok {
		m.statusMsg = "Read-only"
		return m, nil
	}

	changed, err := mem.HasChangedOnDisk()
	if err == nil && changed {
		m.setView(ViewFileChangedPrompt)
		return m, nil
	}

	m.save(mem)
	return m, nil
}

func (m *Model) save(mem *buffer.Memory) {
	if err := mem.Save(); err != nil {
		m.log.Error("save failed", "file", mem.Filename(), "err", err)
		m.statusMsg = fmt.Sprintf("Error saving: %v", err)
		return
	}
	m.log.Info("saved", "file", mem.Filename())
	m.statusMsg = "File saved"
}

func (m *Model) handleHelpKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyEscape || msg.String() == "h" || msg.String() == "H" {
		m.setView(ViewMain)
	}
	return m, nil
}

func (m *Model) handleFindKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEscape:
		m.setView(ViewMain)
	case tea.KeyUp, tea.KeyDown:
		if m.findMode == "ascii" {
			m.findMode = "hex"
		} else {
			m.findMode = "ascii"
		}
		m.findInput = ""
		m.findMatches = 0
	case tea.KeyEnter:
		m.doFind(true)
	case tea.KeyBackspace:
		if len(m.findInput) > 0 {
			m.findInput = m.findInput[:len(m.findInput)-1]
			m.updateFindMatches()
		}
	case tea.KeyRunes, tea.KeySpace:
		char := string(msg.Runes)
		if msg.Type == tea.KeySpace {
			char = " "
		}
		if m.isValidFindChar(char) {
			m.findInput += char
			m.updateFindMatches()
			m.doFind(false)
		}
	}
	return m, nil
}

func (m *Model) isValidFindChar(char string) bool {
	if len(char) != 1 {
		return false
	}
	if m.findMode == "hex" {
		return char == " " || edit.IsHexDigit(rune(char[0]))
	}
	return true
}

// findPattern returns the bytes to search for. Hex input ignores spaces and
// pads an odd digit count on the left.
func (m *Model) findPattern() []byte {
	if m.findMode != "hex" {
		return []byte(m.findInput)
	}
	s := strings.ReplaceAll(m.findInput, " ", "")
	if len(s)%2 != 0 {
		s = "0" + s
	}
	pattern, err := hex.DecodeString(s)
	if err != nil {
		return nil
	}
	return pattern
}

func (m *Model) updateFindMatches() {
	m.findMatches = 0
	tab := m.currentTab()
	if tab == nil {
		return
	}
	if n, ok := tab.Viewer.CountMatches(m.findPattern()); ok {
		m.findMatches = n
	}
}

// doFind searches from the cursor byte, or from the byte after it when next
// is set, wrapping to the start once. A hit is selected and scrolled to.
func (m *Model) doFind(next bool) {
	tab := m.currentTab()
	pattern := m.findPattern()
	if tab == nil || len(pattern) == 0 {
		return
	}

	v := tab.Viewer
	start := v.Cursor() / 2
	if next {
		start++
	}
	pos := v.Find(pattern, start)
	if pos < 0 && start > 0 {
		pos = v.Find(pattern, 0)
	}
	if pos < 0 {
		m.statusMsg = "Not found"
		return
	}

	v.JumpToOffset(pos)
	v.SetSelectedRange(pos, int64(len(pattern)))
}

func (m *Model) handleGotoKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEscape:
		m.setView(ViewMain)
	case tea.KeyEnter:
		m.doGoto()
		m.setView(ViewMain)
	case tea.KeyBackspace:
		if len(m.gotoInput) > 0 {
			m.gotoInput = m.gotoInput[:len(m.gotoInput)-1]
		}
	default:
		char := msg.String()
		if len(char) == 1 && (edit.IsHexDigit(rune(char[0])) || char == "x" || char == "X") {
			m.gotoInput += char
		}
	}
	return m, nil
}

func (m *Model) doGoto() {
	tab := m.currentTab()
	if tab == nil || m.gotoInput == "" {
		return
	}

	offset, err := parseOffset(m.gotoInput)
	if err != nil {
		m.statusMsg = fmt.Sprintf("Invalid offset %q", m.gotoInput)
		return
	}
	if offset >= tab.Source.Size() {
		m.statusMsg = "Offset beyond end of data"
		return
	}
	tab.Viewer.JumpToOffset(offset)
}

// parseOffset accepts decimal or 0x-prefixed hexadecimal byte offsets.
func parseOffset(input string) (int64, error) {
	s := strings.ToLower(strings.TrimSpace(input))
	if rest, ok := strings.CutPrefix(s, "0x"); ok {
		return strconv.ParseInt(rest, 16, 64)
	}
	return strconv.ParseInt(s, 10, 64)
}

func (m *Model) handleConfirmQuitKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		return m, tea.Quit
	case "n", "N", "esc":
		m.setView(ViewMain)
	}
	return m, nil
}

func (m *Model) handleFileChangedPromptKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		if tab := m.currentTab(); tab != nil {
			if mem, ok := tab.memory(); ok {
				m.save(mem)
			}
		}
		m.setView(ViewMain)
	case "n", "N", "esc":
		m.setView(ViewMain)
	}
	return m, nil
}
