package classify

import (
	"strings"
	"unicode/utf8"
)

// scanState tracks where the scanner is inside an escape sequence.
type scanState int

const (
	scanGround scanState = iota
	scanEscape
	scanCSI
	scanOSC
	scanOSCEscape
)

// maxLineLen caps the assembled line so a process that never emits a
// newline cannot grow the buffer without bound.
const maxLineLen = 8192

// LineScanner assembles classification lines from a raw output stream.
// It strips ANSI escape sequences (which may be split across Feed
// calls) and invoke the callback once per completed line. A line is
// completed by a carriage return, a line feed, or a full terminal
// reset, matching how watch-mode tools redraw their status lines.
//
// A LineScanner is owned by a single reader goroutine and is not safe
// for concurrent use.
type LineScanner struct {
	emit    func(line string)
	state   scanState
	line    strings.Builder
	partial []byte // incomplete UTF-8 rune carried over between feeds
}

// NewLineScanner returns a scanner that calls emit for every completed
// line, with escape sequences removed.
func NewLineScanner(emit func(line string)) *LineScanner {
	return &LineScanner{emit: emit}
}

// Feed consumes the next chunk of raw output bytes.
func (s *LineScanner) Feed(p []byte) {
	for len(p) > 0 {
		b := p[0]

		switch s.state {
		case scanGround:
			switch {
			case b == 0x1b:
				s.state = scanEscape
				p = p[1:]
			case b == '\r' || b == '\n':
				s.finishLine()
				p = p[1:]
			case b < 0x20 || b == 0x7f:
				// Other control bytes never contribute to a line.
				p = p[1:]
			default:
				p = s.consumeRune(p)
			}

		case scanEscape:
			switch b {
			case '[':
				s.state = scanCSI
			case ']':
				s.state = scanOSC
			case 'c':
				// RIS redraws the whole screen; treat it as a line
				// boundary so the pre-reset line is classified.
				s.finishLine()
				s.state = scanGround
			default:
				s.state = scanGround
			}
			p = p[1:]

		case scanCSI:
			// Parameter and intermediate bytes are 0x20..0x3f; the
			// final byte of a CSI sequence is 0x40..0x7e.
			if b >= 0x40 && b <= 0x7e {
				s.state = scanGround
			}
			p = p[1:]

		case scanOSC:
			switch b {
			case 0x07:
				s.state = scanGround
			case 0x1b:
				s.state = scanOSCEscape
			}
			p = p[1:]

		case scanOSCEscape:
			// ESC \ (ST) ends the OSC string; anything else returns to
			// consuming it.
			s.state = scanOSC
			if b == '\\' {
				s.state = scanGround
			}
			p = p[1:]
		}
	}
}

// consumeRune appends the next printable rune to the current line,
// buffering incomplete UTF-8 sequences until the remaining bytes
// arrive.
func (s *LineScanner) consumeRune(p []byte) []byte {
	if len(s.partial) > 0 {
		s.partial = append(s.partial, p[0])
		if r, _ := utf8.DecodeRune(s.partial); r != utf8.RuneError {
			s.appendRune(r)
			s.partial = s.partial[:0]
		} else if len(s.partial) >= utf8.UTFMax {
			// Invalid sequence: drop it rather than stall.
			s.partial = s.partial[:0]
		}
		return p[1:]
	}

	if p[0] < utf8.RuneSelf {
		s.appendRune(rune(p[0]))
		return p[1:]
	}

	r, size := utf8.DecodeRune(p)
	if r == utf8.RuneError && size <= 1 {
		if !utf8.FullRune(p) {
			// Rune split across read boundaries; keep the prefix.
			s.partial = append(s.partial, p...)
			return nil
		}
		return p[1:]
	}

	s.appendRune(r)
	return p[size:]
}

func (s *LineScanner) appendRune(r rune) {
	if s.line.Len() < maxLineLen {
		s.line.WriteRune(r)
	}
}

func (s *LineScanner) finishLine() {
	line := s.line.String()
	s.line.Reset()
	if line != "" {
		s.emit(line)
	}
}
