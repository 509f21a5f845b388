// Package classify turns process output lines into status signals.
// A Rule holds the configured detection regexes for one process and
// classifies each completed line as success, error, or carrying no
// status information. Rules are pure and hold no mutable state, so a
// single Rule is safe for concurrent use.
package classify
