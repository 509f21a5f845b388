package tui

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/watchdeck/watchdeck/internal/supervise"
)

// shutdownGrace bounds how long quitting waits for children to exit.
const shutdownGrace = 10 * time.Second

// App ties the bubbletea program to the supervisor for one dashboard
// session.
type App struct {
	program *tea.Program
	sup     *supervise.Supervisor

	// refresh carries change notifications from the supervisor's
	// goroutines to the render loop. One buffered slot coalesces
	// bursts; the supervisor side never blocks on it.
	refresh chan struct{}
}

// NewApp builds the dashboard around a supervisor that has not been
// started yet. Extra program options come after the defaults, so tests
// can run headless.
func NewApp(sup *supervise.Supervisor, opts ...tea.ProgramOption) *App {
	a := &App{
		sup:     sup,
		refresh: make(chan struct{}, 1),
	}
	opts = append([]tea.ProgramOption{tea.WithAltScreen()}, opts...)
	a.program = tea.NewProgram(NewModel(sup), opts...)
	sup.SetNotify(a.notify)
	return a
}

// notify wakes the render loop after a supervisor state change. It is
// called from the supervisor's event pump, so it must not block:
// Program.Send waits for the render loop, which may itself be waiting
// on the supervisor.
func (a *App) notify() {
	select {
	case a.refresh <- struct{}{}:
	default:
	}
}

// Run starts the supervisor and blocks until the user quits. All
// children are terminated before it returns.
func (a *App) Run(ctx context.Context) error {
	done := make(chan struct{})
	defer close(done)

	// Forward coalesced refresh signals into the program. Send blocks
	// until the render loop is live, which is fine on this goroutine.
	go func() {
		for {
			select {
			case <-a.refresh:
				a.program.Send(refreshMsg{})
			case <-done:
				return
			}
		}
	}()

	go func() {
		select {
		case <-ctx.Done():
			a.program.Quit()
		case <-done:
		}
	}()

	a.sup.Run()

	_, err := a.program.Run()

	stopCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancel()
	a.sup.Shutdown(stopCtx)

	if err != nil {
		return fmt.Errorf("running dashboard: %w", err)
	}
	return nil
}
