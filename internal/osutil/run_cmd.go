// Copyright Vespa.ai. Licensed under the terms of the Apache 2.0 license. See LICENSE in the project root.

package osutil

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/putnami/gwtdev/internal/trace"
)

type BackTicks int

const (
	BackTicksWithStderr BackTicks = iota
	BackTicksIgnoreStderr
	BackTicksForwardStderr
)

func (b BackTicks) Run(program string, args ...string) (string, error) {
	cmd := exec.Command(program, args...)
	var out bytes.Buffer
	cmd.Stdout = &out
	switch b {
	case BackTicksWithStderr:
		cmd.Stderr = &out
	case BackTicksIgnoreStderr:
		cmd.Stderr = nil
	case BackTicksForwardStderr:
		cmd.Stderr = os.Stderr
	}
	trace.Debug("running command:", program, strings.Join(args, " "))
	err := cmd.Run()
	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok && exitErr.ProcessState != nil {
			err = fmt.Errorf("%s exited with status %d: %w", program, exitErr.ExitCode(), err)
		}
	}
	return out.String(), err
}
