// Copyright Vespa.ai. Licensed under the terms of the Apache 2.0 license. See LICENSE in the project root.

package jvm

import (
	"context"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"

	"github.com/putnami/gwtdev/internal/classpath"
	"github.com/putnami/gwtdev/internal/osutil"
	"github.com/putnami/gwtdev/internal/prog"
	"github.com/putnami/gwtdev/internal/trace"
)

type ExecutorOption func(*Executor)

// WithJavaExecutable uses java instead of looking one up.
func WithJavaExecutable(java string) ExecutorOption {
	return func(e *Executor) { e.java = java }
}

// WithGetenv replaces os.Getenv when looking up JAVA_HOME.
func WithGetenv(getenv func(string) string) ExecutorOption {
	return func(e *Executor) { e.getenv = getenv }
}

// WithDir sets the working directory of the launched process.
func WithDir(dir string) ExecutorOption {
	return func(e *Executor) { e.dir = dir }
}

// WithEnv adds NAME=value bindings to the environment of the launched process.
func WithEnv(kvs ...string) ExecutorOption {
	return func(e *Executor) { e.env = append(e.env, kvs...) }
}

// WithOutput sets where in-process entry points write.
func WithOutput(stdout, stderr io.Writer) ExecutorOption {
	return func(e *Executor) {
		e.stdout = stdout
		e.stderr = stderr
	}
}

// Executor launches a CommandSpec, either as a child process or in-process.
type Executor struct {
	spec   CommandSpec
	java   string
	getenv func(string) string
	dir    string
	env    []string
	stdout io.Writer
	stderr io.Writer
}

func NewExecutor(spec CommandSpec, opts ...ExecutorOption) *Executor {
	e := &Executor{
		spec:   spec,
		getenv: os.Getenv,
		stdout: os.Stdout,
		stderr: os.Stderr,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (e *Executor) javaExecutable() (string, error) {
	if e.java != "" {
		return e.java, nil
	}
	java, err := osutil.FindJava(e.getenv)
	if err != nil {
		return "", err
	}
	e.java = java
	return java, nil
}

// Command returns the argv: java, JVM arguments, class path, main class and program arguments.
func (e *Executor) Command() ([]string, error) {
	java, err := e.javaExecutable()
	if err != nil {
		return nil, err
	}
	return e.argv(java), nil
}

func (e *Executor) argv(java string) []string {
	argv := []string{java}
	argv = append(argv, e.spec.JvmArgs...)
	argv = append(argv, "-cp", e.spec.JoinedClassPath())
	argv = append(argv, e.spec.MainClass)
	return append(argv, e.spec.Args...)
}

// CommandLine renders the command space separated. When no java executable can be found, "java" is shown.
func (e *Executor) CommandLine() string {
	java, err := e.javaExecutable()
	if err != nil {
		java = "java"
	}
	return strings.Join(e.argv(java), " ")
}

func (e *Executor) String() string {
	return e.CommandLine()
}

// Start spawns java. When the class path refers to environment variables, the command runs through the platform
// shell with those variables set, so the references expand at launch.
func (e *Executor) Start(ctx context.Context, stdout, stderr prog.LineHandler) (*prog.Process, error) {
	argv, err := e.Command()
	if err != nil {
		return nil, err
	}
	if len(e.spec.Env) > 0 {
		argv = shellCommand(argv, e.spec.Platform, e.spec.Env)
	}
	p := prog.NewSpec(argv)
	p.Dir = e.dir
	p.SetenvList(e.spec.Env)
	p.SetenvList(e.env)
	trace.Trace("starting", e.spec.MainClass)
	return p.Start(ctx, stdout, stderr)
}

// RunInProcess invokes the entry point registered under the main class name, with a Loader over the class path.
func (e *Executor) RunInProcess(ctx context.Context) error {
	main, ok := lookupMain(e.spec.MainClass)
	if !ok {
		return fmt.Errorf("%w: %s", ErrEntryPointNotFound, e.spec.MainClass)
	}
	loader, err := NewLoader(e.spec.ExpandedClassPath())
	if err != nil {
		return err
	}
	trace.Trace("invoking", e.spec.MainClass, "in-process with", len(loader.URLs()), "class path URLs")
	return invoke(ctx, e.spec.MainClass, main, Invocation{
		Loader: loader,
		Args:   append([]string(nil), e.spec.Args...),
		Stdout: e.stdout,
		Stderr: e.stderr,
	})
}

func shellCommand(argv []string, platform classpath.Platform, env []string) []string {
	if platform == classpath.Windows {
		return append([]string{"cmd", "/C"}, argv...)
	}
	bound := make(map[string]bool, len(env))
	for _, kv := range env {
		if name, _, ok := strings.Cut(kv, "="); ok {
			bound[name] = true
		}
	}
	quoted := make([]string, len(argv))
	for i, arg := range argv {
		if i > 0 && argv[i-1] == "-cp" {
			quoted[i] = expandableQuote(arg, bound)
		} else {
			quoted[i] = shellQuote(arg)
		}
	}
	return []string{"/bin/sh", "-c", "exec " + strings.Join(quoted, " ")}
}

func shellQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}

var varReference = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)\}`)

// expandableQuote quotes s for sh. Only references to the bound variables stay live, every other character
// reaches java literally.
func expandableQuote(s string, bound map[string]bool) string {
	var sb strings.Builder
	literal := func(part string) {
		if part != "" {
			sb.WriteString(shellQuote(part))
		}
	}
	last := 0
	for _, m := range varReference.FindAllStringSubmatchIndex(s, -1) {
		if !bound[s[m[2]:m[3]]] {
			continue
		}
		literal(s[last:m[0]])
		sb.WriteString(`"` + s[m[0]:m[1]] + `"`)
		last = m[1]
	}
	literal(s[last:])
	if sb.Len() == 0 {
		return "''"
	}
	return sb.String()
}
