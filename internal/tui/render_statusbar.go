package tui

import (
	"fmt"
	"strings"

	"github.com/watchdeck/watchdeck/internal/supervise"
	"github.com/watchdeck/watchdeck/internal/tui/keymap"
	"github.com/watchdeck/watchdeck/internal/tui/styles"
)

// renderStatusBar draws the bottom help line for the active mode.
func (m Model) renderStatusBar(v supervise.View) string {
	var parts []string

	switch m.mode {
	case keymap.ModeInput:
		parts = append(parts, styles.StatusBarMode.Render("INPUT"))

	case keymap.ModeHistory:
		pos := fmt.Sprintf("%d/%d", v.HistoryTop, v.HistoryMax)
		parts = append(parts, styles.StatusBarMode.Render("HISTORY "+pos))
	}

	parts = append(parts, m.hints(v)...)

	return styles.StatusBar.Width(m.width).Render(strings.Join(parts, "  "))
}

// hints derives the help line from the active keymap, grouping keys
// bound to the same command. Bindings without a description are left
// out.
func (m Model) hints(v supervise.View) []string {
	type group struct {
		keys []string
		desc string
	}
	var order []keymap.Command
	groups := make(map[keymap.Command]*group)

	for _, kb := range m.keys.Bindings(m.mode) {
		if kb.Description == "" {
			continue
		}
		g, ok := groups[kb.Command]
		if !ok {
			g = &group{desc: kb.Description}
			groups[kb.Command] = g
			order = append(order, kb.Command)
		}
		g.keys = append(g.keys, kb.String())
	}

	var out []string
	for _, cmd := range order {
		g := groups[cmd]
		desc := g.desc
		if cmd == keymap.CmdToggleAutofocus {
			if v.Autofocus {
				desc += " on"
			} else {
				desc += " off"
			}
		}
		out = append(out, hint(strings.Join(g.keys, "/"), desc))
	}
	return out
}

func hint(key, action string) string {
	return styles.StatusBarKey.Render(key) + " " + action
}
