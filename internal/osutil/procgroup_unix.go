// Copyright Vespa.ai. Licensed under the terms of the Apache 2.0 license. See LICENSE in the project root.

//go:build !windows

package osutil

import (
	"errors"
	"os/exec"
	"syscall"

	"github.com/putnami/gwtdev/internal/trace"
	"golang.org/x/sys/unix"
)

// NewProcessGroup makes cmd the leader of a new process group, so that KillGroup also reaches
// any children it forks.
func NewProcessGroup(cmd *exec.Cmd) {
	if cmd.SysProcAttr == nil {
		cmd.SysProcAttr = &syscall.SysProcAttr{}
	}
	cmd.SysProcAttr.Setpgid = true
}

// KillGroup sends SIGKILL to the process group led by pid.
func KillGroup(pid int) error {
	trace.Debug("killing process group", pid)
	err := unix.Kill(-pid, unix.SIGKILL)
	if errors.Is(err, unix.ESRCH) {
		return nil
	}
	return err
}
