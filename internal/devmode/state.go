// Copyright Vespa.ai. Licensed under the terms of the Apache 2.0 license. See LICENSE in the project root.

package devmode

import (
	"strings"

	"github.com/putnami/gwtdev/internal/prog"
)

// Log markers of the code server.
const (
	ReadyPhrase = "The code server is ready"
	ErrorMarker = "[ERROR]"
)

// State of a dev-mode session.
type State int

const (
	NotStarted State = iota
	WaitingForReady
	Ready
	DependentStarted
	Failed
	Terminated
)

func (s State) String() string {
	switch s {
	case WaitingForReady:
		return "waiting for code server"
	case Ready:
		return "code server ready"
	case DependentStarted:
		return "web server started"
	case Failed:
		return "failed"
	case Terminated:
		return "terminated"
	}
	return "not started"
}

// Outcome of waiting for the code server.
type Outcome int

const (
	OutcomeReady Outcome = iota + 1
	OutcomeFailed
	OutcomeTimeout
)

func (o Outcome) String() string {
	switch o {
	case OutcomeReady:
		return "ready"
	case OutcomeFailed:
		return "failed"
	case OutcomeTimeout:
		return "timed out"
	}
	return "none"
}

// ReadinessMatcher recognizes the code server announcing it is ready, and error lines. Once combined with
// prog.Match, only the first of those counts, so errors after readiness are ignored.
func ReadinessMatcher(line string) prog.Decision {
	if strings.Contains(line, ReadyPhrase) {
		return prog.SignalReady
	}
	if strings.Contains(line, ErrorMarker) {
		return prog.SignalFailed
	}
	return prog.Continue
}
