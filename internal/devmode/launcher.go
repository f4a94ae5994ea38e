// Copyright Vespa.ai. Licensed under the terms of the Apache 2.0 license. See LICENSE in the project root.

package devmode

import (
	"context"

	"github.com/putnami/gwtdev/internal/jvm"
	"github.com/putnami/gwtdev/internal/prog"
)

// Process is the part of a running process the orchestrator uses. *prog.Process implements it.
type Process interface {
	CommandLine() string
	IsAlive() bool
	Done() <-chan struct{}
	Wait() error
	Kill() error
}

// Target is one of the two processes of a dev-mode session.
type Target struct {
	Name string
	// Build prepares the command. It is called once per launch, right before starting.
	Build func() (jvm.CommandSpec, error)
	// Options configure the executor running the command.
	Options []jvm.ExecutorOption
	// URL is where the process serves the application, if anywhere.
	URL string
}

// Launcher starts the command of a target.
type Launcher interface {
	Launch(ctx context.Context, target Target, spec jvm.CommandSpec, stdout, stderr prog.LineHandler) (Process, error)
}

// JavaLauncher runs targets as java child processes.
type JavaLauncher struct{}

func (JavaLauncher) Launch(ctx context.Context, target Target, spec jvm.CommandSpec, stdout, stderr prog.LineHandler) (Process, error) {
	return jvm.NewExecutor(spec, target.Options...).Start(ctx, stdout, stderr)
}
