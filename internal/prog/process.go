// Copyright Vespa.ai. Licensed under the terms of the Apache 2.0 license. See LICENSE in the project root.

package prog

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"sync"
	"time"

	"github.com/putnami/gwtdev/internal/osutil"
	"github.com/putnami/gwtdev/internal/trace"
	"golang.org/x/sync/errgroup"
)

// State of a spawned process.
type State int

const (
	Running State = iota
	Exited
	Killed
)

func (s State) String() string {
	switch s {
	case Exited:
		return "exited"
	case Killed:
		return "killed"
	}
	return "running"
}

// drainDelay bounds how long Wait keeps reading output after the process exited, for when a surviving child
// still holds the pipes open.
var drainDelay = time.Second

// Process is a handle to a spawned program whose stdout and stderr are drained line by line.
type Process struct {
	cmd         *exec.Cmd
	commandLine string
	// done is closed when the process has been reaped, drained when both output streams are.
	done    chan struct{}
	drained chan struct{}
	pipes   []*os.File

	mu       sync.Mutex
	state    State
	killed   bool
	exitCode int
	waitErr  error
}

// Start spawns the program in its own process group. Every line written to stdout and stderr is passed to the
// corresponding handler, on a goroutine per stream. A nil handler discards the stream. Cancelling ctx kills the
// process.
func (p *Spec) Start(ctx context.Context, stdout, stderr LineHandler) (*Process, error) {
	cmd := exec.Command(p.Program, p.Args[1:]...)
	cmd.Env = p.EffectiveEnv()
	cmd.Dir = p.Dir
	osutil.NewProcessGroup(cmd)
	outRead, outWrite, err := os.Pipe()
	if err != nil {
		return nil, err
	}
	errRead, errWrite, err := os.Pipe()
	if err != nil {
		outRead.Close()
		outWrite.Close()
		return nil, err
	}
	cmd.Stdout = outWrite
	cmd.Stderr = errWrite
	if len(p.Env) > 0 {
		trace.Debug("starting", p.BaseName, "with env:", p.ReadableEnv())
	}
	trace.Trace("exec:", p.CommandLine())
	err = cmd.Start()
	// the child holds its own copies of the write ends
	outWrite.Close()
	errWrite.Close()
	if err != nil {
		outRead.Close()
		errRead.Close()
		return nil, fmt.Errorf("start %s: %w", p.BaseName, err)
	}
	proc := &Process{
		cmd:         cmd,
		commandLine: p.CommandLine(),
		done:        make(chan struct{}),
		drained:     make(chan struct{}),
		pipes:       []*os.File{outRead, errRead},
	}
	var g errgroup.Group
	g.Go(func() error {
		drain(outRead, stdout)
		return nil
	})
	g.Go(func() error {
		drain(errRead, stderr)
		return nil
	})
	go func() {
		_ = g.Wait()
		close(proc.drained)
	}()
	go proc.wait()
	go func() {
		select {
		case <-ctx.Done():
			if err := proc.Kill(); err != nil {
				trace.Warning("could not kill", p.BaseName+":", err)
			}
		case <-proc.done:
		}
	}()
	return proc, nil
}

func (p *Process) wait() {
	err := p.cmd.Wait()
	p.mu.Lock()
	p.exitCode = p.cmd.ProcessState.ExitCode()
	if p.killed {
		p.state = Killed
	} else {
		p.state = Exited
		p.waitErr = err
	}
	p.mu.Unlock()
	trace.Debug("process", p.Pid(), "finished:", p.cmd.ProcessState)
	close(p.done)
	select {
	case <-p.drained:
	case <-time.After(drainDelay):
		trace.Debug("process", p.Pid(), "exited but its output is still open, closing it")
		for _, f := range p.pipes {
			f.Close()
		}
	}
}

func (p *Process) Pid() int {
	return p.cmd.Process.Pid
}

func (p *Process) CommandLine() string {
	return p.commandLine
}

// IsAlive reports whether the process has not yet been reaped. Output may still be draining after that.
func (p *Process) IsAlive() bool {
	select {
	case <-p.done:
		return false
	default:
		return true
	}
}

// Wait blocks until the process has terminated and both output streams are drained. A process that exits with a
// non-zero status yields an *exec.ExitError. A killed process yields nil.
func (p *Process) Wait() error {
	<-p.done
	<-p.drained
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.waitErr
}

// Done is closed when the process has terminated, possibly before its output is drained. Use Wait for both.
func (p *Process) Done() <-chan struct{} {
	return p.done
}

// Kill forcibly terminates the process and every process in its group. Killing a terminated process is a no-op.
func (p *Process) Kill() error {
	if !p.IsAlive() {
		return nil
	}
	p.mu.Lock()
	p.killed = true
	p.mu.Unlock()
	trace.Trace("killing process group of", p.Pid())
	if err := osutil.KillGroup(p.Pid()); err != nil {
		if kerr := p.cmd.Process.Kill(); kerr != nil && !errors.Is(kerr, os.ErrProcessDone) {
			return errors.Join(err, kerr)
		}
	}
	return nil
}

// ExitCode returns the exit status, or -1 while running or when killed by a signal.
func (p *Process) ExitCode() int {
	if p.IsAlive() {
		return -1
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.exitCode
}

func (p *Process) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}
