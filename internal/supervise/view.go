package supervise

import "github.com/watchdeck/watchdeck/internal/vterm"

// ProcView is one sidebar entry.
type ProcView struct {
	Name   string
	Status Status

	// LastLine is the output line that produced the current status.
	LastLine string
}

// View is a consistent snapshot of everything the UI renders. The
// Lines hold the focused terminal's visible rows, or the frozen
// history window in history mode.
type View struct {
	Procs     []ProcView
	Focus     int
	Autofocus bool
	Mode      Mode

	Lines         [][]vterm.Cell
	CursorX       int
	CursorY       int
	CursorVisible bool

	// HistoryTop and HistoryMax describe the scroll position in
	// history mode; both are zero otherwise.
	HistoryTop int
	HistoryMax int
}

// View captures the current state for rendering.
func (s *Supervisor) View() View {
	s.mu.Lock()
	defer s.mu.Unlock()

	v := View{
		Procs:     make([]ProcView, len(s.procs)),
		Focus:     s.focus,
		Autofocus: s.autofocus,
		Mode:      s.mode,
	}

	for i, p := range s.procs {
		v.Procs[i] = ProcView{
			Name:     p.spec.DisplayName(),
			Status:   p.status,
			LastLine: p.lastLine,
		}
	}

	if s.mode == ModeHistory {
		v.Lines = s.histSnap.Window(s.histTop)
		v.HistoryTop = s.histTop
		v.HistoryMax = s.histSnap.MaxTop()
		return v
	}

	if len(s.procs) > 0 {
		if term := s.procs[s.focus].term; term != nil {
			snap := term.Snapshot()
			v.Lines = snap.Window(snap.ScreenTop)
			v.CursorX = snap.CursorX
			v.CursorY = snap.CursorY
			v.CursorVisible = snap.CursorVisible && s.procs[s.focus].rt != nil
		}
	}

	return v
}
