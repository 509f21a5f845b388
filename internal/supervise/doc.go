// Package supervise owns the process table: it starts and restarts
// child processes, folds their output lines into per-process statuses,
// and propagates successful-status edges along the dependency graph.
//
// A single goroutine consumes all runtime events, so status transitions
// are totally ordered. UI commands (focus, restart, input, resize) take
// the same mutex and interleave with the event pump.
package supervise
