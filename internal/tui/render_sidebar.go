package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/watchdeck/watchdeck/internal/classify"
	"github.com/watchdeck/watchdeck/internal/supervise"
	"github.com/watchdeck/watchdeck/internal/tui/styles"
)

// renderSidebar draws the process list: one row per process with a
// focus marker, the name, and a status badge.
func (m Model) renderSidebar(v supervise.View) string {
	innerWidth := sidebarWidth - 3 // separator border and padding

	var rows []string
	for i, p := range v.Procs {
		marker := "  "
		nameStyle := styles.ProcessName
		switch {
		case i == v.Focus:
			marker = "> "
			nameStyle = styles.ProcessNameFocused
		case p.Status.Kind == supervise.StatusRunning:
			marker = m.spinner.View() + " "
		}

		badge := statusBadge(p.Status)
		nameWidth := innerWidth - lipgloss.Width(marker) - lipgloss.Width(badge) - 1
		if nameWidth < 1 {
			nameWidth = 1
		}
		name := runewidth.Truncate(p.Name, nameWidth, "…")
		pad := nameWidth - runewidth.StringWidth(name)

		rows = append(rows, marker+nameStyle.Render(name)+strings.Repeat(" ", pad+1)+badge)
	}

	body := strings.Join(rows, "\n")
	return styles.SidebarBox.
		Width(sidebarWidth - 1).
		Height(m.paneRows).
		Render(body)
}

// statusBadge renders the short status label with its color. Error
// counts saturate at 99 to keep the column narrow.
func statusBadge(st supervise.Status) string {
	switch st.Kind {
	case supervise.StatusRunning:
		return styles.StatusRunning.Render("RUN")
	case supervise.StatusSuccess:
		return styles.StatusSuccess.Render("OK")
	case supervise.StatusError:
		switch {
		case st.ErrorCount == classify.CountUnknown:
			return styles.StatusError.Render("ERR")
		case st.ErrorCount > 99:
			return styles.StatusError.Render("ERR 99+")
		default:
			return styles.StatusError.Render(fmt.Sprintf("ERR %d", st.ErrorCount))
		}
	case supervise.StatusExited:
		if st.ExitCode == 0 {
			return styles.StatusSuccess.Render("EXIT 0")
		}
		return styles.StatusError.Render(fmt.Sprintf("EXIT %d", st.ExitCode))
	case supervise.StatusWaiting:
		return styles.StatusWaiting.Render("WAIT")
	case supervise.StatusStopped:
		return styles.StatusInactive.Render("STOP")
	case supervise.StatusFailed:
		return styles.StatusError.Render("FAIL")
	default:
		return styles.StatusInactive.Render("IDLE")
	}
}
