// Copyright Vespa.ai. Licensed under the terms of the Apache 2.0 license. See LICENSE in the project root.

package jvm

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/putnami/gwtdev/internal/classpath"
	"github.com/putnami/gwtdev/internal/ioutil"
	"github.com/putnami/gwtdev/internal/trace"
)

// ErrAlreadyBuilt is returned when Build is called more than once on the same builder.
var ErrAlreadyBuilt = errors.New("java command already built")

type builderConfig struct {
	platform   classpath.Platform
	pathingJar string
	compress   bool
	charset    string
}

type BuilderOption func(*builderConfig)

// WithPathingJar makes the builder collect its class path into a pathing jar written to file.
func WithPathingJar(file string) BuilderOption {
	return func(c *builderConfig) { c.pathingJar = file }
}

// WithPlatform selects the path conventions of the target platform.
func WithPlatform(p classpath.Platform) BuilderOption {
	return func(c *builderConfig) { c.platform = p }
}

// WithCompression shortens dependency cache paths in a plain class path.
func WithCompression() BuilderOption {
	return func(c *builderConfig) { c.compress = true }
}

// WithCharset overrides the value of -Dfile.encoding.
func WithCharset(charset string) BuilderOption {
	return func(c *builderConfig) { c.charset = charset }
}

// CommandBuilder collects the pieces of a java command line. A builder serves a single launch.
type CommandBuilder struct {
	platform          classpath.Platform
	javaArgs          []string
	mainClass         string
	args              []string
	separateClassPath []string
	accumulator       classpath.Accumulator
	built             bool
}

func NewCommandBuilder(opts ...BuilderOption) *CommandBuilder {
	cfg := builderConfig{platform: classpath.HostPlatform()}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.charset == "" {
		cfg.charset = DefaultCharset(os.Getenv)
	}
	b := &CommandBuilder{platform: cfg.platform}
	switch {
	case cfg.pathingJar != "":
		b.accumulator = classpath.NewPathingJar(cfg.pathingJar, cfg.platform)
	case cfg.compress:
		b.accumulator = classpath.NewCompressedPassThrough(cfg.platform)
	default:
		b.accumulator = classpath.NewPassThrough(cfg.platform)
	}
	b.AddJavaArg("-Dfile.encoding=" + cfg.charset)
	return b
}

func (b *CommandBuilder) SetMainClass(mainClass string) *CommandBuilder {
	b.mainClass = mainClass
	return b
}

func (b *CommandBuilder) AddJavaArg(arg string) *CommandBuilder {
	b.javaArgs = append(b.javaArgs, arg)
	return b
}

func (b *CommandBuilder) JavaArgs() []string {
	return append([]string(nil), b.javaArgs...)
}

// AddClassPath appends an entry, or a list of entries, to the accumulated class path.
func (b *CommandBuilder) AddClassPath(entry string) *CommandBuilder {
	b.accumulator.Add(entry)
	return b
}

// AddClassPathFiles appends the absolute path of every file that exists. Other files are skipped.
func (b *CommandBuilder) AddClassPathFiles(files []string) *CommandBuilder {
	for _, f := range files {
		if f == "" {
			continue
		}
		if !ioutil.Exists(f) {
			trace.Debug("skipping missing class path entry", f)
			continue
		}
		abs, err := filepath.Abs(f)
		if err != nil {
			abs = f
		}
		b.accumulator.Add(abs)
	}
	return b
}

// AddSeparateClassPath adds a segment placed before the accumulated class path and never written into a pathing
// jar or compressed.
func (b *CommandBuilder) AddSeparateClassPath(segment string) *CommandBuilder {
	b.separateClassPath = append(b.separateClassPath, segment)
	return b
}

func (b *CommandBuilder) AddArg(name string) *CommandBuilder {
	b.args = append(b.args, name)
	return b
}

// AddArgValue adds name and value, unless value is empty.
func (b *CommandBuilder) AddArgValue(name, value string) *CommandBuilder {
	if value != "" {
		b.args = append(b.args, name, value)
	}
	return b
}

// AddArgFile adds name and the absolute path of file, unless file is empty.
func (b *CommandBuilder) AddArgFile(name, file string) *CommandBuilder {
	if file == "" {
		return b
	}
	abs, err := filepath.Abs(file)
	if err != nil {
		abs = file
	}
	b.args = append(b.args, name, abs)
	return b
}

// AddArgAny adds name and the textual form of value, unless value is nil.
func (b *CommandBuilder) AddArgAny(name string, value any) *CommandBuilder {
	if value == nil {
		return b
	}
	b.args = append(b.args, name, fmt.Sprint(value))
	return b
}

// AddArgIf adds ifTrue or ifFalse depending on cond. A nil cond adds nothing.
func (b *CommandBuilder) AddArgIf(cond *bool, ifTrue, ifFalse string) *CommandBuilder {
	if cond == nil {
		return b
	}
	if *cond {
		return b.AddArg(ifTrue)
	}
	return b.AddArg(ifFalse)
}

func (b *CommandBuilder) AddArgIfTrue(cond *bool, value string) *CommandBuilder {
	if cond != nil && *cond {
		b.AddArg(value)
	}
	return b
}

// ConfigureJavaArgs translates opts into JVM flags, in a fixed order: heap sizes, perm size, temp dir, user dir,
// debug agent, then the extra arguments verbatim.
func (b *CommandBuilder) ConfigureJavaArgs(opts JavaOptions) *CommandBuilder {
	if opts.MinHeapSize != "" {
		b.AddJavaArg("-Xms" + opts.MinHeapSize)
	}
	if opts.MaxHeapSize != "" {
		b.AddJavaArg("-Xmx" + opts.MaxHeapSize)
	}
	if opts.MaxPermSize != "" {
		b.AddJavaArg("-XX:MaxPermSize=" + opts.MaxPermSize)
	}
	if opts.TmpDir != "" {
		b.AddJavaArg("-Djava.io.tmpdir=" + opts.TmpDir)
	}
	if opts.UserDir != "" {
		b.AddJavaArg("-Duser.dir=" + opts.UserDir)
	}
	if opts.DebugJava {
		b.AddJavaArg(opts.debugAgentArg())
	}
	for _, arg := range opts.JavaArgs {
		b.AddJavaArg(arg)
	}
	return b
}

// Preview returns the CommandSpec Build would produce without writing anything. When the class path goes into a
// pathing jar, the jar path is shown even though the jar may not exist yet. Compressed class paths are shown
// uncompressed.
func (b *CommandBuilder) Preview() CommandSpec {
	cp := append([]string(nil), b.separateClassPath...)
	switch acc := b.accumulator.(type) {
	case *classpath.PathingJar:
		cp = append(cp, acc.Get())
	default:
		if joined := strings.Join(acc.Entries(), b.platform.ListSeparator()); joined != "" {
			cp = append(cp, joined)
		}
	}
	return b.spec(cp, nil)
}

// Build materializes the accumulated class path and returns the finished command. Build succeeds at most once.
func (b *CommandBuilder) Build() (CommandSpec, error) {
	if b.built {
		return CommandSpec{}, ErrAlreadyBuilt
	}
	b.built = true
	if err := b.accumulator.Materialize(); err != nil {
		return CommandSpec{}, fmt.Errorf("could not prepare class path: %w", err)
	}
	cp := append([]string(nil), b.separateClassPath...)
	if token := b.accumulator.Get(); token != "" {
		cp = append(cp, token)
	}
	var env []string
	if e, ok := b.accumulator.(interface{ Environment() []string }); ok {
		env = e.Environment()
	}
	return b.spec(cp, env), nil
}

func (b *CommandBuilder) spec(cp, env []string) CommandSpec {
	return CommandSpec{
		JvmArgs:   append([]string(nil), b.javaArgs...),
		ClassPath: cp,
		MainClass: b.mainClass,
		Args:      append([]string(nil), b.args...),
		Env:       env,
		Platform:  b.platform,
	}
}
