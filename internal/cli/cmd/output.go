// Copyright Vespa.ai. Licensed under the terms of the Apache 2.0 license. See LICENSE in the project root.

package cmd

import (
	"fmt"
	"io"
	"sync"

	"github.com/fatih/color"
	"github.com/putnami/gwtdev/internal/config"
	"github.com/putnami/gwtdev/internal/prog"
)

// processOutput prints the output lines of child processes, each prefixed with a colored process tag.
type processOutput struct {
	mu     sync.Mutex
	stdout io.Writer
	stderr io.Writer
}

func (c *CLI) newProcessOutput() *processOutput {
	return &processOutput{stdout: c.Stdout, stderr: c.Stderr}
}

func processTag(name string) string {
	tag := fmt.Sprintf("[%s]", name)
	switch name {
	case config.CodeServer:
		return color.CyanString(tag)
	case config.WebServer:
		return color.MagentaString(tag)
	}
	return color.BlueString(tag)
}

// handlers returns line handlers printing to stdout and stderr respectively.
func (o *processOutput) handlers(name string) (prog.LineHandler, prog.LineHandler) {
	tag := processTag(name)
	return o.printer(o.stdout, tag), o.printer(o.stderr, tag)
}

func (o *processOutput) printer(w io.Writer, tag string) prog.LineHandler {
	return func(line string) {
		o.mu.Lock()
		defer o.mu.Unlock()
		fmt.Fprintln(w, tag, line)
	}
}
