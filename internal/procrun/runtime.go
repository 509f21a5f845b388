package procrun

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"sync"
	"syscall"
	"time"

	"github.com/creack/pty"
	"golang.org/x/sys/unix"

	"github.com/watchdeck/watchdeck/internal/classify"
	"github.com/watchdeck/watchdeck/internal/vterm"
)

// DefaultGracePeriod is how long Terminate waits between the graceful
// signal and the forced kill.
const DefaultGracePeriod = 5 * time.Second

// readBufSize is the pty read chunk size. Escape sequences and UTF-8
// runes routinely straddle chunk boundaries at this size; the terminal
// and line scanner both resume mid-sequence.
const readBufSize = 4096

// Runtime is one live child process attached to a pty.
type Runtime struct {
	proc int
	gen  int

	cmd    *exec.Cmd
	ptmx   *os.File
	term   *vterm.Terminal
	events chan<- Event

	done     chan struct{}
	killOnce sync.Once
}

// Start spawns argv on a fresh pty of the given size, with dir as the
// child's working directory, and begins the read loop. A failure to
// spawn (missing executable, permission, pty allocation) is returned
// without any goroutine left behind.
func Start(proc, gen int, argv []string, dir string, cols, rows int, events chan<- Event) (*Runtime, error) {
	if len(argv) == 0 {
		return nil, errors.New("empty command")
	}

	cmd := exec.Command(argv[0], argv[1:]...)
	cmd.Dir = dir
	cmd.Env = append(os.Environ(), "TERM=xterm-256color")

	ws := &pty.Winsize{Cols: uint16(max(cols, 1)), Rows: uint16(max(rows, 1))}
	ptmx, err := pty.StartWithSize(cmd, ws)
	if err != nil {
		return nil, fmt.Errorf("spawning %s: %w", argv[0], err)
	}

	r := &Runtime{
		proc:   proc,
		gen:    gen,
		cmd:    cmd,
		ptmx:   ptmx,
		term:   vterm.New(cols, rows),
		events: events,
		done:   make(chan struct{}),
	}

	go r.readLoop()

	return r, nil
}

// Terminal returns the emulated terminal fed by this runtime. The
// terminal stays readable after exit until the supervisor replaces the
// runtime.
func (r *Runtime) Terminal() *vterm.Terminal {
	return r.term
}

// Done is closed after the child has been reaped and the final
// ExitEvent delivered.
func (r *Runtime) Done() <-chan struct{} {
	return r.done
}

// WriteInput forwards keyboard bytes to the child through the pty.
func (r *Runtime) WriteInput(p []byte) (int, error) {
	return r.ptmx.Write(p)
}

// Resize propagates a new pane size to the pty (delivering SIGWINCH to
// the child) and to the emulated terminal.
func (r *Runtime) Resize(cols, rows int) error {
	r.term.Resize(cols, rows)
	return pty.Setsize(r.ptmx, &pty.Winsize{Cols: uint16(max(cols, 1)), Rows: uint16(max(rows, 1))})
}

// Terminate asks the child to exit with SIGTERM and escalates to
// SIGKILL after the grace period. It is idempotent and returns
// immediately; observe Done for completion. Signals go to the child's
// process group (the pty makes the child a session leader) so shells
// take their own children down with them.
func (r *Runtime) Terminate(grace time.Duration) {
	r.killOnce.Do(func() {
		r.signal(unix.SIGTERM)

		if grace <= 0 {
			grace = DefaultGracePeriod
		}
		timer := time.AfterFunc(grace, func() {
			r.signal(unix.SIGKILL)
		})

		go func() {
			<-r.done
			timer.Stop()
		}()
	})
}

// signal sends sig to the child's process group; failures mean the
// child is already gone, which is what we wanted.
func (r *Runtime) signal(sig syscall.Signal) {
	if r.cmd.Process == nil {
		return
	}
	_ = unix.Kill(-r.cmd.Process.Pid, sig)
}

// readLoop pulls bytes off the pty master until EOF, feeding the
// terminal and the line scanner, then reaps the child and reports its
// exit. This is the only goroutine touching the terminal's write side.
func (r *Runtime) readLoop() {
	scanner := classify.NewLineScanner(func(line string) {
		r.events <- NewLineEvent(r.proc, r.gen, line)
	})

	buf := make([]byte, readBufSize)
	for {
		n, err := r.ptmx.Read(buf)
		if n > 0 {
			r.term.Write(buf[:n])
			scanner.Feed(buf[:n])
			r.events <- NewOutputEvent(r.proc, r.gen)
		}
		if err != nil {
			// EOF, or EIO once the slave side is closed on exit.
			break
		}
	}

	code := r.wait()
	_ = r.ptmx.Close()

	r.events <- NewExitEvent(r.proc, r.gen, code)
	close(r.done)
}

// wait reaps the child and normalizes its exit code. A child killed by
// a signal reports 128+signo, the shell convention; an unobtainable
// status reports 1.
func (r *Runtime) wait() int {
	err := r.cmd.Wait()
	if err == nil {
		return 0
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		if status, ok := exitErr.Sys().(syscall.WaitStatus); ok && status.Signaled() {
			return 128 + int(status.Signal())
		}
		if code := exitErr.ExitCode(); code >= 0 {
			return code
		}
	}
	return 1
}
