package supervise

import (
	"fmt"

	"github.com/watchdeck/watchdeck/internal/classify"
)

// StatusKind enumerates the lifecycle states of a supervised process.
type StatusKind int

const (
	// StatusInactive means the process has never been started.
	StatusInactive StatusKind = iota

	// StatusWaiting means the process is waiting for its upstream to
	// reach a successful status before (re)starting.
	StatusWaiting

	// StatusStopped means the process was terminated by the supervisor.
	StatusStopped

	// StatusFailed means the process could not be spawned.
	StatusFailed

	// StatusRunning means the process is alive and no classified line
	// has reported an outcome yet.
	StatusRunning

	// StatusSuccess means the latest classified line reported a clean
	// state. The process is still alive.
	StatusSuccess

	// StatusError means the latest classified line reported a failure.
	// The process is still alive.
	StatusError

	// StatusExited means the process terminated on its own.
	StatusExited
)

// Status is the current state of one supervised process, including the
// error count or exit code where the kind carries one.
type Status struct {
	Kind StatusKind

	// ErrorCount is set for StatusError: the number of errors the
	// matching line reported, or classify.CountUnknown when the line
	// did not say.
	ErrorCount int

	// ExitCode is set for StatusExited.
	ExitCode int
}

// Successful reports whether the status counts as a successful outcome
// for dependency propagation: a clean classified line, or a zero exit.
func (s Status) Successful() bool {
	return s.Kind == StatusSuccess || (s.Kind == StatusExited && s.ExitCode == 0)
}

// Failing reports whether the status should attract autofocus.
func (s Status) Failing() bool {
	switch s.Kind {
	case StatusError, StatusFailed:
		return true
	case StatusExited:
		return s.ExitCode != 0
	default:
		return false
	}
}

// String returns a short label for logs and the sidebar.
func (s Status) String() string {
	switch s.Kind {
	case StatusInactive:
		return "inactive"
	case StatusWaiting:
		return "waiting"
	case StatusStopped:
		return "stopped"
	case StatusFailed:
		return "failed"
	case StatusRunning:
		return "running"
	case StatusSuccess:
		return "success"
	case StatusError:
		if s.ErrorCount == classify.CountUnknown {
			return "error"
		}
		return fmt.Sprintf("error (%d)", s.ErrorCount)
	case StatusExited:
		return fmt.Sprintf("exited (%d)", s.ExitCode)
	default:
		return "unknown"
	}
}
