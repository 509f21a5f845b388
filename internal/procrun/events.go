package procrun

// Event is anything a runtime reports to its supervisor. Proc is the
// stable process index; Gen identifies the runtime instance that
// produced the event, so stale events from a replaced runtime can be
// discarded.
type Event interface {
	Source() (proc, gen int)
}

type source struct {
	Proc int
	Gen  int
}

func (s source) Source() (int, int) { return s.Proc, s.Gen }

// OutputEvent signals that new bytes were written into the runtime's
// terminal. It carries no data: the terminal already has it, the
// supervisor only needs to know a redraw may be due.
type OutputEvent struct {
	source
}

// LineEvent carries one completed output line, stripped of escape
// sequences, ready for classification. Lines arrive in emission order.
type LineEvent struct {
	source
	Line string
}

// ExitEvent reports that the child terminated. It is the last event a
// runtime instance ever emits.
type ExitEvent struct {
	source
	Code int
}

// NewOutputEvent, NewLineEvent and NewExitEvent exist so tests and
// fakes outside this package can construct events.
func NewOutputEvent(proc, gen int) OutputEvent {
	return OutputEvent{source{proc, gen}}
}

func NewLineEvent(proc, gen int, line string) LineEvent {
	return LineEvent{source{proc, gen}, line}
}

func NewExitEvent(proc, gen int, code int) ExitEvent {
	return ExitEvent{source{proc, gen}, code}
}
