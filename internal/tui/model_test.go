package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/watchdeck/watchdeck/internal/classify"
	"github.com/watchdeck/watchdeck/internal/supervise"
	"github.com/watchdeck/watchdeck/internal/tui/keymap"
)

// fakeBackend records the calls the model makes.
type fakeBackend struct {
	view supervise.View

	focusNext, focusPrev int
	focusSet             int
	restarts             int
	autofocusToggles     int
	input                []byte
	cols, rows           int
	inputMode            bool
	historyOK            bool
	inHistory            bool
	scrolled             int
}

func (f *fakeBackend) View() supervise.View { return f.view }
func (f *fakeBackend) FocusNext()           { f.focusNext++ }
func (f *fakeBackend) FocusPrev()           { f.focusPrev++ }
func (f *fakeBackend) SetFocus(idx int)     { f.focusSet = idx }
func (f *fakeBackend) ToggleAutofocus() bool {
	f.autofocusToggles++
	return f.autofocusToggles%2 == 0
}
func (f *fakeBackend) RestartFocused()     { f.restarts++ }
func (f *fakeBackend) SendInput(p []byte)  { f.input = append(f.input, p...) }
func (f *fakeBackend) Resize(c, r int)     { f.cols, f.rows = c, r }
func (f *fakeBackend) ToggleInput() bool   { f.inputMode = !f.inputMode; return f.inputMode }
func (f *fakeBackend) EnterHistory() bool  { f.inHistory = f.historyOK; return f.historyOK }
func (f *fakeBackend) LeaveHistory()       { f.inHistory = false }
func (f *fakeBackend) ScrollHistory(d int) { f.scrolled += d }

func key(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	nm, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T, want Model", next)
	}
	return nm
}

func TestUpdate_WindowSizeResizesPane(t *testing.T) {
	f := &fakeBackend{}
	m := NewModel(f)

	m = update(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})

	if f.cols != 120-sidebarWidth {
		t.Errorf("pane cols = %d, want %d", f.cols, 120-sidebarWidth)
	}
	if f.rows != 39 {
		t.Errorf("pane rows = %d, want 39 (one row for the status bar)", f.rows)
	}
}

func TestUpdate_NormalModeCommands(t *testing.T) {
	f := &fakeBackend{}
	m := NewModel(f)

	m = update(t, m, tea.KeyMsg{Type: tea.KeyDown})
	m = update(t, m, tea.KeyMsg{Type: tea.KeyUp})
	m = update(t, m, key('r'))
	m = update(t, m, key('a'))

	if f.focusNext != 1 || f.focusPrev != 1 {
		t.Errorf("focus calls = %d next / %d prev, want 1/1", f.focusNext, f.focusPrev)
	}
	if f.restarts != 1 {
		t.Errorf("restarts = %d, want 1", f.restarts)
	}
	if f.autofocusToggles != 1 {
		t.Errorf("autofocus toggles = %d, want 1", f.autofocusToggles)
	}

	m = update(t, m, key('3'))
	if f.focusSet != 2 {
		t.Errorf("focusSet = %d after pressing 3, want 2", f.focusSet)
	}
	if m.mode != keymap.ModeNormal {
		t.Errorf("mode = %v, want normal", m.mode)
	}
}

func TestUpdate_QuitKeys(t *testing.T) {
	for _, msg := range []tea.KeyMsg{key('q'), {Type: tea.KeyCtrlC}} {
		f := &fakeBackend{}
		m := NewModel(f)

		next, cmd := m.Update(msg)
		if cmd == nil {
			t.Errorf("%v produced no command, want tea.Quit", msg)
		}
		if !next.(Model).quitting {
			t.Errorf("%v did not set quitting", msg)
		}
	}
}

func TestUpdate_InputModeForwardsKeys(t *testing.T) {
	f := &fakeBackend{}
	m := NewModel(f)

	m = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlE})
	if m.mode != keymap.ModeInput {
		t.Fatalf("mode = %v after ctrl+e, want input", m.mode)
	}

	// q must go to the child, not quit the dashboard.
	m = update(t, m, key('q'))
	m = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlC})

	if got := string(f.input); got != "q\r\x03" {
		t.Errorf("forwarded input = %q, want %q", got, "q\r\x03")
	}
	if f.restarts != 0 {
		t.Error("input mode keys leaked into normal bindings")
	}

	m = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlE})
	if m.mode != keymap.ModeNormal {
		t.Errorf("mode = %v after leaving input, want normal", m.mode)
	}
}

func TestUpdate_InputModeRequiresRunningProcess(t *testing.T) {
	f := &fakeBackend{}
	m := NewModel(f)

	// The backend refuses input mode by reporting false.
	f.inputMode = true // next toggle flips to false
	m = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlE})
	if m.mode != keymap.ModeNormal {
		t.Errorf("mode = %v, want normal when backend refuses input mode", m.mode)
	}
}

func TestUpdate_HistoryMode(t *testing.T) {
	f := &fakeBackend{historyOK: true}
	m := NewModel(f)
	m = update(t, m, tea.WindowSizeMsg{Width: 80, Height: 25})

	m = update(t, m, key('h'))
	if m.mode != keymap.ModeHistory {
		t.Fatalf("mode = %v after h, want history", m.mode)
	}

	f.scrolled = 0
	m = update(t, m, tea.KeyMsg{Type: tea.KeyUp})
	if f.scrolled != -1 {
		t.Errorf("scrolled = %d after up, want -1", f.scrolled)
	}
	m = update(t, m, tea.KeyMsg{Type: tea.KeyPgDown})
	if f.scrolled != -1+24 {
		t.Errorf("scrolled = %d after pgdn, want %d", f.scrolled, -1+24)
	}

	m = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.mode != keymap.ModeNormal {
		t.Errorf("mode = %v after esc, want normal", m.mode)
	}
	if f.inHistory {
		t.Error("backend still in history mode after esc")
	}
}

func TestUpdate_HistoryRefusedWithoutTerminal(t *testing.T) {
	f := &fakeBackend{historyOK: false}
	m := NewModel(f)

	m = update(t, m, key('h'))
	if m.mode != keymap.ModeNormal {
		t.Errorf("mode = %v, want normal when there is no history", m.mode)
	}
}

func TestView_ShowsProcessesAndStatusBar(t *testing.T) {
	f := &fakeBackend{view: supervise.View{
		Procs: []supervise.ProcView{
			{Name: "build", Status: supervise.Status{Kind: supervise.StatusRunning}},
			{Name: "serve", Status: supervise.Status{Kind: supervise.StatusError, ErrorCount: 3}},
		},
		Autofocus: true,
	}}
	m := NewModel(f)
	m = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})

	out := m.View()
	for _, want := range []string{"build", "serve", "RUN", "ERR 3", "autofocus on", "restart"} {
		if !strings.Contains(out, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestStatusBadge(t *testing.T) {
	tests := []struct {
		status supervise.Status
		want   string
	}{
		{supervise.Status{Kind: supervise.StatusRunning}, "RUN"},
		{supervise.Status{Kind: supervise.StatusSuccess}, "OK"},
		{supervise.Status{Kind: supervise.StatusError, ErrorCount: 7}, "ERR 7"},
		{supervise.Status{Kind: supervise.StatusError, ErrorCount: 250}, "ERR 99+"},
		{supervise.Status{Kind: supervise.StatusError, ErrorCount: classify.CountUnknown}, "ERR"},
		{supervise.Status{Kind: supervise.StatusExited, ExitCode: 0}, "EXIT 0"},
		{supervise.Status{Kind: supervise.StatusExited, ExitCode: 2}, "EXIT 2"},
		{supervise.Status{Kind: supervise.StatusWaiting}, "WAIT"},
		{supervise.Status{Kind: supervise.StatusStopped}, "STOP"},
		{supervise.Status{Kind: supervise.StatusFailed}, "FAIL"},
		{supervise.Status{Kind: supervise.StatusInactive}, "IDLE"},
	}

	for _, tt := range tests {
		if got := statusBadge(tt.status); !strings.Contains(got, tt.want) {
			t.Errorf("statusBadge(%v) = %q, want it to contain %q", tt.status, got, tt.want)
		}
	}
}

func TestStatusBar_DerivedFromKeymap(t *testing.T) {
	f := &fakeBackend{view: supervise.View{Autofocus: false}}
	m := NewModel(f)
	m = update(t, m, tea.WindowSizeMsg{Width: 120, Height: 30})

	bar := m.renderStatusBar(f.view)
	for _, want := range []string{"up/k focus prev", "down/j focus next", "h/pgup history", "autofocus off", "q quit"} {
		if !strings.Contains(bar, want) {
			t.Errorf("normal bar missing %q: %q", want, bar)
		}
	}
	if strings.Contains(bar, "1/2") {
		t.Errorf("normal bar lists the jump keys: %q", bar)
	}

	m.mode = keymap.ModeHistory
	f.view.HistoryTop, f.view.HistoryMax = 3, 10
	bar = m.renderStatusBar(f.view)
	for _, want := range []string{"HISTORY 3/10", "up/k scroll up", "pgup page up", "esc/q back"} {
		if !strings.Contains(bar, want) {
			t.Errorf("history bar missing %q: %q", want, bar)
		}
	}

	m.mode = keymap.ModeInput
	bar = m.renderStatusBar(f.view)
	for _, want := range []string{"INPUT", "ctrl+e back"} {
		if !strings.Contains(bar, want) {
			t.Errorf("input bar missing %q: %q", want, bar)
		}
	}
}
