// Copyright Vespa.ai. Licensed under the terms of the Apache 2.0 license. See LICENSE in the project root.

// handling of informational output
package trace

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"
)

var (
	outMu  sync.Mutex
	output io.Writer = os.Stderr
)

// SetOutput redirects log lines to w and returns the previous writer.
func SetOutput(w io.Writer) io.Writer {
	outMu.Lock()
	defer outMu.Unlock()
	prev := output
	output = w
	return prev
}

func getComponent() string {
	return filepath.Base(os.Args[0])
}

// make a tab-separated log line

func logMessage(l outputLevel, msg string) {
	unixTime := float64(time.Now().UnixMicro()) * 1.0e-6
	hostname, _ := os.Hostname()
	if hostname == "" {
		hostname = "-"
	}
	pid := os.Getpid()
	component := getComponent()
	level := "error"
	switch l {
	case levelWarning:
		level = "warning"
	case levelInfo:
		level = "info"
	case levelTrace:
		level = "info"
		msg = fmt.Sprintf("[trace] %s", msg)
	case levelDebug:
		level = "debug"
	case levelSpam:
		level = "spam"
	}
	if len(msg) == 0 || msg[len(msg)-1] != '\n' {
		msg = msg + "\n"
	}
	outMu.Lock()
	defer outMu.Unlock()
	fmt.Fprintf(output, "%.6f\t%s\t%d\t%s\t%s\t%s",
		unixTime, hostname, pid, component, level, msg)
}
