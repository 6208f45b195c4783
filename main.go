package main

import (
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"hexview/internal/config"
	"hexview/internal/editor"
)

const usage = "usage: hexview [-r] FILE..."

func main() {
	readOnly := false
	var files []string
	for _, arg := range os.Args[1:] {
		switch arg {
		case "-r":
			readOnly = true
		case "-h", "--help":
			fmt.Println(usage)
			return
		default:
			files = append(files, arg)
		}
	}
	if len(files) == 0 {
		fmt.Fprintln(os.Stderr, usage)
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}

	logger, closeLog, err := newLogger(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()

	model, err := editor.NewModel(files, editor.Options{
		ReadOnly: readOnly,
		Config:   cfg,
		Logger:   logger,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer model.Close()

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion())

	if _, err := p.Run(); err != nil {
		logger.Error("program exited", "err", err)
		fmt.Fprintf(os.Stderr, "Error running program: %v\n", err)
		os.Exit(1)
	}
}

// newLogger writes to the configured log file. The terminal belongs to the
// UI, so without a file nothing is logged.
func newLogger(cfg *config.Config) (*log.Logger, func(), error) {
	var w io.Writer = io.Discard
	closeFn := func() {}

	if cfg.Log.File != "" {
		f, err := os.OpenFile(cfg.Log.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file: %w", err)
		}
		w = f
		closeFn = func() { f.Close() }
	}

	logger := log.NewWithOptions(w, log.Options{
		Level:           cfg.LogLevel(),
		ReportTimestamp: true,
		Prefix:          "hexview",
	})
	return logger, closeFn, nil
}
