// Copyright Vespa.ai. Licensed under the terms of the Apache 2.0 license. See LICENSE in the project root.

// handling of informational output
package trace

import (
	"fmt"
)

type outputLevel int

const (
	levelError outputLevel = iota - 2
	levelWarning
	levelNone
	levelInfo
	levelTrace
	levelDebug
	levelSpam
)

var currentOutputLevel outputLevel = levelInfo

func AdjustVerbosity(howMuch int) {
	currentOutputLevel = (outputLevel)(howMuch + int(currentOutputLevel))
}

// SetVerbosity sets the level relative to the default, where 0 shows info messages.
func SetVerbosity(howMuch int) {
	currentOutputLevel = (outputLevel)(howMuch + int(levelInfo))
}

func Silent() {
	currentOutputLevel = levelNone
}

// Enabled reports whether messages at the trace level are currently shown.
func Enabled() bool {
	return currentOutputLevel >= levelTrace
}

func outputTracing(l outputLevel, v ...interface{}) {
	if l > currentOutputLevel {
		return
	}
	msg := fmt.Sprintln(v...)
	logMessage(l, msg)
}

func Info(v ...interface{}) {
	outputTracing(levelInfo, v...)
}

func Trace(v ...interface{}) {
	outputTracing(levelTrace, v...)
}

func Debug(v ...interface{}) {
	outputTracing(levelDebug, v...)
}

func SpamDebug(v ...interface{}) {
	outputTracing(levelSpam, v...)
}

func Warning(v ...interface{}) {
	outputTracing(levelWarning, v...)
}

func Error(v ...interface{}) {
	outputTracing(levelError, v...)
}
