package tui

import (
	"strings"

	"github.com/watchdeck/watchdeck/internal/supervise"
	"github.com/watchdeck/watchdeck/internal/vterm"
)

// renderPane draws the focused process's terminal, or the frozen
// history window in history mode. The rows already carry their own
// colors; they are passed through untouched.
func (m Model) renderPane(v supervise.View) string {
	lines := vterm.RenderLines(v.Lines)

	// Pad or trim to the pane height so the status bar stays put.
	if len(lines) > m.paneRows {
		lines = lines[:m.paneRows]
	}
	for len(lines) < m.paneRows {
		lines = append(lines, "")
	}

	return strings.Join(lines, "\n")
}
