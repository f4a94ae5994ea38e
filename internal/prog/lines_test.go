// Copyright Vespa.ai. Licensed under the terms of the Apache 2.0 license. See LICENSE in the project root.

package prog

import (
	"slices"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func readiness(line string) Decision {
	switch {
	case strings.Contains(line, "ready"):
		return SignalReady
	case strings.Contains(line, "[ERROR]"):
		return SignalFailed
	}
	return Continue
}

func TestLines(t *testing.T) {
	got := slices.Collect(Lines(strings.NewReader("one\ntwo\r\n\nthree")))
	assert.Equal(t, []string{"one", "two", "", "three"}, got)

	assert.Empty(t, slices.Collect(Lines(strings.NewReader(""))))

	long := strings.Repeat("x", 256*1024)
	got = slices.Collect(Lines(strings.NewReader(long + "\nshort\n")))
	assert.Equal(t, []string{long, "short"}, got)
}

func TestLinesStopsEarly(t *testing.T) {
	var got []string
	for line := range Lines(strings.NewReader("a\nb\nc\n")) {
		got = append(got, line)
		if line == "b" {
			break
		}
	}
	assert.Equal(t, []string{"a", "b"}, got)
}

func TestScan(t *testing.T) {
	assert.Equal(t, SignalReady, Scan(strings.NewReader("[INFO] starting\nserver is ready\n[ERROR] late\n"), readiness))
	assert.Equal(t, SignalFailed, Scan(strings.NewReader("[INFO] starting\n[ERROR] port in use\nready\n"), readiness))
	assert.Equal(t, Continue, Scan(strings.NewReader("[INFO] starting\n"), readiness))
}

func TestMatchSignalsOnce(t *testing.T) {
	var decisions []Decision
	handler := Match(readiness, func(d Decision) { decisions = append(decisions, d) })
	for _, line := range []string{"[INFO] starting", "ready", "[ERROR] after ready", "ready"} {
		handler(line)
	}
	assert.Equal(t, []Decision{SignalReady}, decisions)
}

func TestTee(t *testing.T) {
	var a, b []string
	h := Tee(func(l string) { a = append(a, l) }, nil, func(l string) { b = append(b, l) })
	h("x")
	h("y")
	assert.Equal(t, []string{"x", "y"}, a)
	assert.Equal(t, a, b)
}

func TestDecisionString(t *testing.T) {
	assert.Equal(t, "continue", Continue.String())
	assert.Equal(t, "ready", SignalReady.String())
	assert.Equal(t, "failed", SignalFailed.String())
}
