package supervise

import "github.com/watchdeck/watchdeck/internal/vterm"

// Commands invoked from the UI. Each takes the supervisor mutex, so
// they interleave cleanly with the event pump.

// FocusNext moves the focus down the process list, stopping at the end.
func (s *Supervisor) FocusNext() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.focus < len(s.procs)-1 {
		s.focus++
	}
}

// FocusPrev moves the focus up the process list, stopping at the top.
func (s *Supervisor) FocusPrev() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.focus > 0 {
		s.focus--
	}
}

// SetFocus focuses process idx. Out-of-range indices are ignored.
func (s *Supervisor) SetFocus(idx int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if idx >= 0 && idx < len(s.procs) {
		s.focus = idx
	}
}

// ToggleAutofocus flips autofocus and returns the new setting. Turning
// it on immediately jumps to a failing process, if one exists and the
// focused process is not itself failing.
func (s *Supervisor) ToggleAutofocus() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.autofocus = !s.autofocus
	if s.autofocus {
		s.autofocusLocked()
	}
	return s.autofocus
}

// RestartFocused restarts the focused process. A restart is always
// allowed, whatever the current status.
func (s *Supervisor) RestartFocused() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.procs) == 0 {
		return
	}
	s.startLocked(s.focus)
}

// Restart restarts process idx.
func (s *Supervisor) Restart(idx int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if idx >= 0 && idx < len(s.procs) {
		s.startLocked(idx)
	}
}

// SendInput forwards raw terminal input to the focused process. Input
// to a process that is not running is dropped.
func (s *Supervisor) SendInput(p []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.procs) == 0 {
		return
	}
	if rt := s.procs[s.focus].rt; rt != nil {
		//nolint:errcheck // a write to a dying pty resolves as an exit event
		rt.WriteInput(p)
	}
}

// Resize updates the terminal size of every running process and the
// size used for future spawns.
func (s *Supervisor) Resize(cols, rows int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if cols < 1 {
		cols = 1
	}
	if rows < 1 {
		rows = 1
	}
	s.cols, s.rows = cols, rows

	for i, p := range s.procs {
		if p.rt == nil {
			continue
		}
		if err := p.rt.Resize(cols, rows); err != nil {
			s.log.Warn("resize failed",
				"process", s.procs[i].spec.DisplayName(),
				"error", err)
		}
	}
}

// Mode returns the current interaction mode.
func (s *Supervisor) Mode() Mode {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mode
}

// ToggleInput enters or leaves input mode for the focused process and
// reports whether input mode is now active. Entering requires a
// running process.
func (s *Supervisor) ToggleInput() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch s.mode {
	case ModeInput:
		s.mode = ModeMain
	case ModeMain:
		if len(s.procs) > 0 && s.procs[s.focus].rt != nil {
			s.mode = ModeInput
		}
	}
	return s.mode == ModeInput
}

// EnterHistory freezes the focused terminal and switches to history
// mode, scrolled to the bottom. It reports whether the switch
// happened; a process with no terminal has no history to show.
func (s *Supervisor) EnterHistory() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.mode != ModeMain || len(s.procs) == 0 {
		return false
	}
	term := s.procs[s.focus].term
	if term == nil {
		return false
	}

	s.histSnap = term.Snapshot()
	s.histTop = s.histSnap.MaxTop()
	s.mode = ModeHistory
	return true
}

// LeaveHistory returns to the live view.
func (s *Supervisor) LeaveHistory() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.mode == ModeHistory {
		s.mode = ModeMain
		s.histSnap = vterm.Snapshot{}
	}
}

// ScrollHistory moves the history viewport by delta lines. Negative is
// up, toward older output.
func (s *Supervisor) ScrollHistory(delta int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.mode != ModeHistory {
		return
	}
	s.histTop += delta
	if limit := s.histSnap.MaxTop(); s.histTop > limit {
		s.histTop = limit
	}
	if s.histTop < 0 {
		s.histTop = 0
	}
}
