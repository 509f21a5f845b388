// Package vterm emulates a terminal screen for one supervised process.
// It consumes the raw byte stream coming off a pty (including ANSI
// escape sequences split across read boundaries) and maintains a
// fixed-size cell grid, cursor state, text attributes, and a bounded
// scrollback. The emulator keeps accumulating state while its process
// is hidden, so focusing a process always shows a current screen.
//
// The parser is an explicit state machine (ground / escape / CSI
// parameter accumulation / OSC), never recursive, so a sequence cut in
// half by a short read resumes correctly on the next Write.
package vterm
