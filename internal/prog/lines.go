// Copyright Vespa.ai. Licensed under the terms of the Apache 2.0 license. See LICENSE in the project root.

package prog

import (
	"bufio"
	"io"
	"iter"
	"strings"
)

// LineHandler receives one line of output, without its line terminator.
type LineHandler func(line string)

// Decision is what a Matcher concludes from a line.
type Decision int

const (
	Continue Decision = iota
	SignalReady
	SignalFailed
)

func (d Decision) String() string {
	switch d {
	case SignalReady:
		return "ready"
	case SignalFailed:
		return "failed"
	}
	return "continue"
}

// Matcher inspects a line of output.
type Matcher func(line string) Decision

// Lines yields the lines read from r until EOF or a read error. Lines of any length are supported, and a final
// line without a terminator is yielded too.
func Lines(r io.Reader) iter.Seq[string] {
	return func(yield func(string) bool) {
		br := bufio.NewReader(r)
		for {
			line, err := br.ReadString('\n')
			if line != "" {
				if !yield(strings.TrimRight(line, "\r\n")) {
					return
				}
			}
			if err != nil {
				return
			}
		}
	}
}

// Scan reads lines from r until m returns something other than Continue, and returns that decision. Returns
// Continue when r is exhausted first.
func Scan(r io.Reader, m Matcher) Decision {
	for line := range Lines(r) {
		if d := m(line); d != Continue {
			return d
		}
	}
	return Continue
}

// Match adapts m into a LineHandler that calls signal with the first decision other than Continue. Later lines
// are not matched at all.
func Match(m Matcher, signal func(Decision)) LineHandler {
	decided := false
	return func(line string) {
		if decided {
			return
		}
		if d := m(line); d != Continue {
			decided = true
			signal(d)
		}
	}
}

// Tee returns a handler passing each line to every non-nil handler in order.
func Tee(handlers ...LineHandler) LineHandler {
	return func(line string) {
		for _, h := range handlers {
			if h != nil {
				h(line)
			}
		}
	}
}

func drain(r io.Reader, handler LineHandler) {
	for line := range Lines(r) {
		if handler != nil {
			handler(line)
		}
	}
	// keep the pipe flowing if iteration stopped on a read error
	_, _ = io.Copy(io.Discard, r)
}
