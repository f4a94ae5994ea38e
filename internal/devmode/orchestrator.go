// Copyright Vespa.ai. Licensed under the terms of the Apache 2.0 license. See LICENSE in the project root.

package devmode

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/pkg/browser"
	"github.com/putnami/gwtdev/internal/prog"
	"github.com/putnami/gwtdev/internal/trace"
)

// Result describes how a session ended.
type Result struct {
	Outcome    Outcome
	State      State
	CodeServer Process
	WebServer  Process
}

// Orchestrator starts the code server, waits until it reports readiness and then runs the web server until it
// terminates.
type Orchestrator struct {
	CodeServer Target
	WebServer  Target
	// Launcher defaults to JavaLauncher.
	Launcher Launcher
	// ReadyTimeout bounds the wait for the code server. Zero waits forever.
	ReadyTimeout time.Duration
	// OpenBrowser opens the web server URL once it has started.
	OpenBrowser bool
	// Output returns the handlers receiving the output lines of the named process. Defaults to debug tracing.
	Output func(name string) (stdout, stderr prog.LineHandler)
	// AwaitReady wraps the wait for the code server, e.g. to show progress.
	AwaitReady func(wait func() Outcome) Outcome

	openURL func(url string) error

	mu    sync.Mutex
	state State
}

func (o *Orchestrator) State() State {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.state
}

func (o *Orchestrator) setState(s State) {
	o.mu.Lock()
	prev := o.state
	o.state = s
	o.mu.Unlock()
	trace.Debug("dev mode:", prev, "->", s)
}

func (o *Orchestrator) launcher() Launcher {
	if o.Launcher == nil {
		return JavaLauncher{}
	}
	return o.Launcher
}

func (o *Orchestrator) output(name string) (prog.LineHandler, prog.LineHandler) {
	if o.Output != nil {
		return o.Output(name)
	}
	h := func(line string) { trace.Debug(name+":", line) }
	return h, h
}

func (o *Orchestrator) result(res Result) Result {
	res.State = o.State()
	return res
}

func kill(name string, p Process) {
	if p == nil {
		return
	}
	if p.IsAlive() {
		trace.Trace("killing", name)
		if err := p.Kill(); err != nil {
			trace.Warning("could not kill", name+":", err)
			return
		}
	}
	_ = p.Wait()
}

// Run executes the session. A code server that fails or times out before becoming ready is killed, the web server
// is then never started, and Run returns without error; the Result tells what happened. Errors preparing or
// starting a process are returned. Cancelling ctx kills whatever is running.
func (o *Orchestrator) Run(ctx context.Context) (Result, error) {
	var res Result
	codeServer, outcome, err := o.startCodeServer(ctx)
	res.CodeServer = codeServer
	res.Outcome = outcome
	if err != nil {
		return o.result(res), err
	}
	if err := ctx.Err(); err != nil {
		kill(o.CodeServer.Name, codeServer)
		o.setState(Terminated)
		return o.result(res), err
	}
	if outcome != OutcomeReady {
		trace.Warning(o.CodeServer.Name, outcome.String()+", not starting", o.WebServer.Name)
		kill(o.CodeServer.Name, codeServer)
		o.setState(Failed)
		return o.result(res), nil
	}
	o.setState(Ready)
	if !codeServer.IsAlive() {
		trace.Warning(o.CodeServer.Name, "is no longer running, not starting", o.WebServer.Name)
		kill(o.CodeServer.Name, codeServer)
		o.setState(Failed)
		return o.result(res), nil
	}

	webServer, err := o.start(ctx, o.WebServer, nil)
	if err != nil {
		kill(o.CodeServer.Name, codeServer)
		o.setState(Failed)
		return o.result(res), err
	}
	res.WebServer = webServer
	o.setState(DependentStarted)
	o.browse()

	select {
	case <-webServer.Done():
	case <-ctx.Done():
		kill(o.WebServer.Name, webServer)
	}
	if err := webServer.Wait(); err != nil {
		trace.Warning(o.WebServer.Name, "exited:", err)
	}
	kill(o.CodeServer.Name, codeServer)
	o.setState(Terminated)
	return o.result(res), ctx.Err()
}

func (o *Orchestrator) startCodeServer(ctx context.Context) (Process, Outcome, error) {
	outcomes := make(chan Outcome, 1)
	var once sync.Once
	deliver := func(out Outcome) {
		once.Do(func() { outcomes <- out })
	}
	watch := prog.Match(ReadinessMatcher, func(d prog.Decision) {
		if d == prog.SignalReady {
			deliver(OutcomeReady)
		} else {
			deliver(OutcomeFailed)
		}
	})
	p, err := o.start(ctx, o.CodeServer, watch)
	if err != nil {
		return nil, 0, err
	}
	o.setState(WaitingForReady)
	go func() {
		<-p.Done()
		// a ready line printed just before exiting still counts
		_ = p.Wait()
		deliver(OutcomeFailed)
	}()

	var timeout <-chan time.Time
	if o.ReadyTimeout > 0 {
		timer := time.NewTimer(o.ReadyTimeout)
		defer timer.Stop()
		timeout = timer.C
	}
	wait := func() Outcome {
		select {
		case out := <-outcomes:
			return out
		case <-timeout:
			return OutcomeTimeout
		case <-ctx.Done():
			return OutcomeFailed
		}
	}
	if o.AwaitReady != nil {
		return p, o.AwaitReady(wait), nil
	}
	return p, wait(), nil
}

func (o *Orchestrator) start(ctx context.Context, t Target, watch prog.LineHandler) (Process, error) {
	spec, err := t.Build()
	if err != nil {
		return nil, fmt.Errorf("could not prepare %s: %w", t.Name, err)
	}
	stdout, stderr := o.output(t.Name)
	p, err := o.launcher().Launch(ctx, t, spec, prog.Tee(stdout, watch), stderr)
	if err != nil {
		return nil, fmt.Errorf("could not start %s: %w", t.Name, err)
	}
	trace.Trace("started", t.Name+":", p.CommandLine())
	return p, nil
}

func (o *Orchestrator) browse() {
	if !o.OpenBrowser || o.WebServer.URL == "" {
		return
	}
	open := o.openURL
	if open == nil {
		open = browser.OpenURL
	}
	trace.Info("opening", o.WebServer.URL)
	if err := open(o.WebServer.URL); err != nil {
		trace.Warning("could not open browser:", err)
	}
}
