package supervise

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/watchdeck/watchdeck/internal/classify"
	"github.com/watchdeck/watchdeck/internal/config"
	"github.com/watchdeck/watchdeck/internal/procrun"
	"github.com/watchdeck/watchdeck/internal/vterm"
)

// eventBufSize bounds the shared runtime event channel. Readers block
// when the pump falls behind, which backpressures chatty children.
const eventBufSize = 256

// Mode is the supervisor's interaction mode. Autofocus only moves the
// focus in ModeMain.
type Mode int

const (
	// ModeMain is the default dashboard mode.
	ModeMain Mode = iota

	// ModeInput forwards keystrokes to the focused process.
	ModeInput

	// ModeHistory scrolls a frozen snapshot of the focused terminal.
	ModeHistory
)

// runtime is the supervisor's view of a running child. The concrete
// implementation is procrun.Runtime; tests substitute fakes.
type runtime interface {
	WriteInput(p []byte) (int, error)
	Resize(cols, rows int) error
	Terminate(grace time.Duration)
	Terminal() *vterm.Terminal
	Done() <-chan struct{}
}

// startFunc spawns one child process. Tests replace it to drive the
// supervisor without real processes.
type startFunc func(proc, gen int, argv []string, dir string, cols, rows int, events chan<- procrun.Event) (runtime, error)

func defaultStart(proc, gen int, argv []string, dir string, cols, rows int, events chan<- procrun.Event) (runtime, error) {
	return procrun.Start(proc, gen, argv, dir, cols, rows, events)
}

// process is the supervisor's per-process state. gen increments on
// every (re)start so events from a superseded runtime are dropped.
type process struct {
	spec   config.ProcessSpec
	rule   *classify.Rule
	dir    string
	status Status
	gen    int
	rt     runtime

	// lastLine is the most recent output line that produced the current
	// status, kept for display and debugging.
	lastLine string

	// term is the latest instance's terminal. It outlives the runtime
	// so the last output stays visible after an exit.
	term *vterm.Terminal
}

// Options configures a Supervisor.
type Options struct {
	// BaseDir resolves relative working directories. Usually the
	// supervisor's own working directory.
	BaseDir string

	// Cols and Rows size each child's terminal until the first Resize.
	Cols, Rows int

	// Grace is how long a terminated child gets between SIGTERM and
	// SIGKILL. Zero means procrun.DefaultGracePeriod.
	Grace time.Duration

	// Notify is called after every observable state change, from
	// whichever goroutine produced the change. The supervisor's lock is
	// not held during the call, so the callback may read supervisor
	// state, but it must not block: a slow callback stalls the event
	// pump.
	Notify func()

	Logger *slog.Logger
}

// Supervisor runs the configured processes and tracks their statuses.
type Supervisor struct {
	mu sync.Mutex

	procs      []*process
	downstream map[int][]int

	events   chan procrun.Event
	done     chan struct{}
	stopOnce sync.Once

	start  startFunc
	grace  time.Duration
	notify func()
	log    *slog.Logger

	cols, rows int

	focus     int
	autofocus bool
	mode      Mode

	histSnap vterm.Snapshot
	histTop  int
}

// New builds a Supervisor from a validated config. Rules are compiled
// up front so regex errors surface before anything is started.
func New(cfg *config.Config, opts Options) (*Supervisor, error) {
	if opts.Grace <= 0 {
		opts.Grace = procrun.DefaultGracePeriod
	}
	if opts.Cols <= 0 {
		opts.Cols = 80
	}
	if opts.Rows <= 0 {
		opts.Rows = 24
	}
	if opts.Notify == nil {
		opts.Notify = func() {}
	}
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.DiscardHandler)
	}

	s := &Supervisor{
		downstream: cfg.UpstreamIndex(),
		events:     make(chan procrun.Event, eventBufSize),
		done:       make(chan struct{}),
		start:      defaultStart,
		grace:      opts.Grace,
		notify:     opts.Notify,
		log:        opts.Logger,
		cols:       opts.Cols,
		rows:       opts.Rows,
		autofocus:  true,
	}

	for _, spec := range cfg.Processes {
		rule, err := spec.Rule()
		if err != nil {
			return nil, fmt.Errorf("process %s: %w", spec.DisplayName(), err)
		}
		s.procs = append(s.procs, &process{
			spec: spec,
			rule: rule,
			dir:  spec.Dir(opts.BaseDir),
		})
	}

	return s, nil
}

// SetNotify replaces the change notification callback. It exists so
// the UI, which is constructed after the supervisor, can hook in
// before Run.
func (s *Supervisor) SetNotify(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if fn == nil {
		fn = func() {}
	}
	s.notify = fn
}

// Run starts the event pump and spawns every autostart process.
// Processes with an upstream begin in the waiting state.
func (s *Supervisor) Run() {
	go s.pump()

	s.mu.Lock()
	for i, p := range s.procs {
		switch {
		case p.spec.AutostartEnabled():
			s.startLocked(i)
		case p.spec.After != "":
			p.status = Status{Kind: StatusWaiting}
		}
	}
	notify := s.notify
	s.mu.Unlock()

	notify()
}

func (s *Supervisor) pump() {
	for {
		select {
		case ev := <-s.events:
			s.handleEvent(ev)
		case <-s.done:
			return
		}
	}
}

// handleEvent folds one runtime event into supervisor state. The
// notification fires after the lock is released so the callback can
// read supervisor state without deadlocking.
func (s *Supervisor) handleEvent(ev procrun.Event) {
	s.mu.Lock()
	handled := s.handleEventLocked(ev)
	notify := s.notify
	s.mu.Unlock()

	if handled {
		notify()
	}
}

// handleEventLocked reports whether the event belonged to the current
// generation of a known process.
func (s *Supervisor) handleEventLocked(ev procrun.Event) bool {
	idx, gen := ev.Source()
	if idx < 0 || idx >= len(s.procs) {
		return false
	}
	p := s.procs[idx]
	if gen != p.gen {
		// Superseded runtime: a restart already replaced it.
		return false
	}

	switch ev := ev.(type) {
	case procrun.OutputEvent:
		// Screen content changed; the status did not.

	case procrun.LineEvent:
		s.classifyLocked(idx, ev.Line)

	case procrun.ExitEvent:
		p.rt = nil
		s.applyStatusLocked(idx, Status{Kind: StatusExited, ExitCode: ev.Code})
	}

	return true
}

// classifyLocked folds one completed output line into the process
// status. Lines that carry no signal leave the status untouched.
func (s *Supervisor) classifyLocked(idx int, line string) {
	p := s.procs[idx]

	switch res := p.rule.Classify(line); res.Analysis {
	case classify.AnalysisSuccess:
		p.lastLine = line
		s.applyStatusLocked(idx, Status{Kind: StatusSuccess})
	case classify.AnalysisError:
		p.lastLine = line
		s.applyStatusLocked(idx, Status{Kind: StatusError, ErrorCount: res.ErrorCount})
	}
}

// applyStatusLocked records a status change and propagates it along the
// dependency graph. Downstream processes restart only on the exact
// transition into a successful status, and fall back to waiting on the
// exact transition out of one.
func (s *Supervisor) applyStatusLocked(idx int, next Status) {
	p := s.procs[idx]
	prev := p.status
	p.status = next

	if prev != next {
		s.log.Debug("status change",
			"process", p.spec.DisplayName(),
			"from", prev.String(),
			"to", next.String())
	}

	switch {
	case !prev.Successful() && next.Successful():
		for _, d := range s.downstream[idx] {
			s.log.Info("upstream succeeded, starting dependent",
				"upstream", p.spec.DisplayName(),
				"process", s.procs[d].spec.DisplayName())
			s.startLocked(d)
		}
	case prev.Successful() && !next.Successful():
		for _, d := range s.downstream[idx] {
			s.demoteLocked(d)
		}
	}

	if next.Failing() && !prev.Failing() {
		s.autofocusLocked()
	}
}

// startLocked (re)spawns process idx. The old runtime, if any, is
// superseded by bumping the generation before it is terminated, so its
// remaining events are dropped.
func (s *Supervisor) startLocked(idx int) {
	p := s.procs[idx]

	if p.rt != nil {
		old := p.rt
		p.rt = nil
		old.Terminate(s.grace)
	}
	p.gen++
	p.lastLine = ""

	rt, err := s.start(idx, p.gen, p.spec.Command, p.dir, s.cols, s.rows, s.events)
	if err != nil {
		s.log.Error("spawn failed",
			"process", p.spec.DisplayName(),
			"error", err)
		s.applyStatusLocked(idx, Status{Kind: StatusFailed})
		return
	}

	p.rt = rt
	p.term = rt.Terminal()
	s.applyStatusLocked(idx, Status{Kind: StatusRunning})
}

// demoteLocked returns process idx to the waiting state because its
// upstream is no longer successful. A running instance is stopped.
func (s *Supervisor) demoteLocked(idx int) {
	p := s.procs[idx]

	if p.rt != nil {
		old := p.rt
		p.rt = nil
		p.gen++
		old.Terminate(s.grace)
	}

	s.applyStatusLocked(idx, Status{Kind: StatusWaiting})
}

// autofocusLocked moves the focus to the first failing process in
// declaration order. The focus stays put when autofocus is off, when
// the user is in an input or history session, or when the focused
// process is itself failing.
func (s *Supervisor) autofocusLocked() {
	if !s.autofocus || s.mode != ModeMain {
		return
	}
	if s.focus >= 0 && s.focus < len(s.procs) && s.procs[s.focus].status.Failing() {
		return
	}
	for i, p := range s.procs {
		if p.status.Failing() {
			s.focus = i
			return
		}
	}
}

// Shutdown terminates every running process and stops the event pump.
// It waits for children to exit until the context is cancelled. Calling
// it again is a no-op.
func (s *Supervisor) Shutdown(ctx context.Context) {
	s.stopOnce.Do(func() { s.shutdown(ctx) })
}

func (s *Supervisor) shutdown(ctx context.Context) {
	s.mu.Lock()
	var waits []<-chan struct{}
	for _, p := range s.procs {
		if p.rt == nil {
			continue
		}
		old := p.rt
		p.rt = nil
		p.gen++
		p.status = Status{Kind: StatusStopped}
		old.Terminate(s.grace)
		waits = append(waits, old.Done())
	}
	s.mu.Unlock()

	for _, w := range waits {
		select {
		case <-w:
		case <-ctx.Done():
		}
	}

	close(s.done)
}
