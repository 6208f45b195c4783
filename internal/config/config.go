package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"hexview/internal/layout"
)

const (
	envConfigPath   = "HEXVIEW_CONFIG"
	envLogLevel     = "HEXVIEW_LOG_LEVEL"
	envBytesPerLine = "HEXVIEW_BYTES_PER_LINE"

	maxBytesPerLine = 256
)

type Theme struct {
	Background          string `toml:"background"`
	Foreground          string `toml:"foreground"`
	AddressBackground   string `toml:"address_background"`
	AddressForeground   string `toml:"address_foreground"`
	SeparatorColor      string `toml:"separator_color"`
	SelectionBackground string `toml:"selection_background"`
	SelectionForeground string `toml:"selection_foreground"`
	CursorBackground    string `toml:"cursor_background"`
	EditBackground      string `toml:"edit_background"`
	EditForeground      string `toml:"edit_foreground"`
	LegendBackground    string `toml:"legend_background"`
	LegendHighlight     string `toml:"legend_highlight"`
	ActiveTab           string `toml:"active_tab"`
	UnsavedFileColor    string `toml:"unsaved_file_color"`
	DisabledColor       string `toml:"disabled_color"`
}

// Layout holds terminal layout parameters in character cells.
type Layout struct {
	AddressDigits int `toml:"address_digits"`
	GapAddrHex    int `toml:"gap_addr_hex"`
	GapHexASCII   int `toml:"gap_hex_ascii"`
	MinHexChars   int `toml:"min_hex_chars"`
	BytesPerLine  int `toml:"bytes_per_line"`
}

type Log struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

type Config struct {
	Theme  Theme  `toml:"theme"`
	Layout Layout `toml:"layout"`
	Log    Log    `toml:"log"`
}

func DefaultConfig() *Config {
	return &Config{
		Theme: Theme{
			Background:          "#000000",
			Foreground:          "#DDDDDD",
			AddressBackground:   "#303030",
			AddressForeground:   "#AAAAAA",
			SeparatorColor:      "#666666",
			SelectionBackground: "#6D9EFF",
			SelectionForeground: "#000000",
			CursorBackground:    "#0000FF",
			EditBackground:      "#FFFF00",
			EditForeground:      "#000000",
			LegendBackground:    "#0000FF",
			LegendHighlight:     "#FF0000",
			ActiveTab:           "#FF00FF",
			UnsavedFileColor:    "#FF0000",
			DisabledColor:       "#666666",
		},
		Layout: Layout{
			AddressDigits: 8,
			GapAddrHex:    2,
			GapHexASCII:   2,
			MinHexChars:   47,
			BytesPerLine:  16,
		},
		Log: Log{
			Level: "info",
		},
	}
}

// LayoutOptions converts the cell-based layout section for the layout package.
func (c *Config) LayoutOptions() layout.Options {
	return layout.Options{
		AddressDigits: c.Layout.AddressDigits,
		GapAddrHex:    c.Layout.GapAddrHex,
		GapHexASCII:   c.Layout.GapHexASCII,
		MinHexChars:   c.Layout.MinHexChars,
		BytesPerLine:  c.Layout.BytesPerLine,
	}
}

// LogLevel parses the configured level, falling back to info.
func (c *Config) LogLevel() log.Level {
	level, err := log.ParseLevel(c.Log.Level)
	if err != nil {
		return log.InfoLevel
	}
	return level
}

func ConfigPath() string {
	if path, ok := os.LookupEnv(envConfigPath); ok && strings.TrimSpace(path) != "" {
		return filepath.Clean(path)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "hexview.toml"
	}
	return filepath.Join(home, ".config", "hexview", "hexview.toml")
}

// Load reads the config file if it exists and applies environment overrides.
// On error the returned config is still usable.
func Load() (*Config, error) {
	cfg := DefaultConfig()
	path := ConfigPath()

	if _, err := os.Stat(path); err == nil {
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return cfg, fmt.Errorf("decode %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return cfg, err
	}

	if err := cfg.applyEnv(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	if raw, ok := os.LookupEnv(envLogLevel); ok {
		if _, err := log.ParseLevel(raw); err != nil {
			return fmt.Errorf("%s: %w", envLogLevel, err)
		}
		c.Log.Level = raw
	}

	bpl, err := readInt(envBytesPerLine, c.Layout.BytesPerLine, 0, maxBytesPerLine)
	if err != nil {
		return err
	}
	c.Layout.BytesPerLine = bpl
	return nil
}

func readInt(key string, fallback, min, max int) (int, error) {
	raw, ok := os.LookupEnv(key)
	if !ok || strings.TrimSpace(raw) == "" {
		return fallback, nil
	}
	value, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer: %w", key, err)
	}
	if value < min || value > max {
		return 0, fmt.Errorf("%s must be between %d and %d", key, min, max)
	}
	return value, nil
}

func (c *Config) Save() error {
	path := ConfigPath()
	dir := filepath.Dir(path)

	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return toml.NewEncoder(f).Encode(c)
}

type Styles struct {
	Base            lipgloss.Style
	AddressArea     lipgloss.Style
	Address         lipgloss.Style
	Separator       lipgloss.Style
	Hex             lipgloss.Style
	Selection       lipgloss.Style
	ASCII           lipgloss.Style
	Cursor          lipgloss.Style
	Edit            lipgloss.Style
	Legend          lipgloss.Style
	LegendHighlight lipgloss.Style
	ActiveTab       lipgloss.Style
	InactiveTab     lipgloss.Style
	UnsavedFile     lipgloss.Style
	Disabled        lipgloss.Style
	HelpTitle       lipgloss.Style
	HelpKey         lipgloss.Style
	HelpDesc        lipgloss.Style
}

func NewStyles(theme *Theme) *Styles {
	return &Styles{
		Base: lipgloss.NewStyle().
			Background(lipgloss.Color(theme.Background)).
			Foreground(lipgloss.Color(theme.Foreground)),
		AddressArea: lipgloss.NewStyle().
			Background(lipgloss.Color(theme.AddressBackground)),
		Address: lipgloss.NewStyle().
			Background(lipgloss.Color(theme.AddressBackground)).
			Foreground(lipgloss.Color(theme.AddressForeground)),
		Separator: lipgloss.NewStyle().
			Foreground(lipgloss.Color(theme.SeparatorColor)),
		Hex: lipgloss.NewStyle().
			Foreground(lipgloss.Color(theme.Foreground)),
		Selection: lipgloss.NewStyle().
			Background(lipgloss.Color(theme.SelectionBackground)).
			Foreground(lipgloss.Color(theme.SelectionForeground)),
		ASCII: lipgloss.NewStyle().
			Foreground(lipgloss.Color(theme.Foreground)),
		Cursor: lipgloss.NewStyle().
			Background(lipgloss.Color(theme.CursorBackground)).
			Foreground(lipgloss.Color("#FFFFFF")),
		Edit: lipgloss.NewStyle().
			Background(lipgloss.Color(theme.EditBackground)).
			Foreground(lipgloss.Color(theme.EditForeground)).
			Bold(true),
		Legend: lipgloss.NewStyle().
			Background(lipgloss.Color(theme.LegendBackground)).
			Foreground(lipgloss.Color("#FFFFFF")),
		LegendHighlight: lipgloss.NewStyle().
			Background(lipgloss.Color(theme.LegendBackground)).
			Foreground(lipgloss.Color(theme.LegendHighlight)).
			Bold(true),
		ActiveTab: lipgloss.NewStyle().
			Foreground(lipgloss.Color(theme.ActiveTab)).
			Bold(true),
		InactiveTab: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#AAAAAA")),
		UnsavedFile: lipgloss.NewStyle().
			Foreground(lipgloss.Color(theme.UnsavedFileColor)),
		Disabled: lipgloss.NewStyle().
			Foreground(lipgloss.Color(theme.DisabledColor)),
		HelpTitle: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFFFFF")),
		HelpKey: lipgloss.NewStyle().
			Foreground(lipgloss.Color(theme.LegendHighlight)).
			Bold(true),
		HelpDesc: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#AAAAAA")),
	}
}
