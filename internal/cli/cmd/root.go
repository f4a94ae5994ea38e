// Copyright Vespa.ai. Licensed under the terms of the Apache 2.0 license. See LICENSE in the project root.

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
	"github.com/putnami/gwtdev/internal/classpath"
	"github.com/putnami/gwtdev/internal/config"
	"github.com/putnami/gwtdev/internal/trace"
	"github.com/putnami/gwtdev/internal/util"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

const (
	colorFlag   = "color"
	quietFlag   = "quiet"
	verboseFlag = "verbose"
	fileFlag    = "file"

	// envConfigFile names the launch configuration when --file is not given.
	envConfigFile = "GWTDEV_CONFIG"
)

// CLI holds the gwtdev command tree and its dependencies.
type CLI struct {
	// Environment holds the process environment.
	Environment map[string]string
	Stdout      io.Writer
	Stderr      io.Writer

	cmd        *cobra.Command
	flags      *globalFlags
	flagSet    map[string]*pflag.Flag
	platform   classpath.Platform
	isTerminal func() bool
	spinner    func(w io.Writer, message string, fn util.SpinFunc) error
}

type globalFlags struct {
	color      string
	quiet      bool
	verbose    int
	configFile string
}

// ErrCLI is an error returned to the user. It wraps an exit status, a regular error and optional hints for resolving
// the error.
type ErrCLI struct {
	Status int
	quiet  bool
	hints  []string
	error
}

func (e ErrCLI) Unwrap() error { return e.error }

// errHint creates a new CLI error, with optional hints that will be printed after the error
func errHint(err error, hints ...string) ErrCLI { return ErrCLI{Status: 1, hints: hints, error: err} }

// statusInterrupted is the conventional exit status of a process stopped by SIGINT.
const statusInterrupted = 130

// errInterrupted reports that name was stopped on request. The warning printed before is all the user sees.
func (c *CLI) errInterrupted(name string, cause error) ErrCLI {
	c.printWarning("Interrupted, stopped " + name)
	return ErrCLI{Status: statusInterrupted, quiet: true, error: cause}
}

// New creates the gwtdev CLI, writing output to stdout and stderr, and reading environment variables from environment.
func New(stdout, stderr io.Writer, environment []string) (*CLI, error) {
	cmd := &cobra.Command{
		Use:   "gwtdev command-name",
		Short: "Run GWT super dev mode from the command line",
		Long: `Run GWT super dev mode from the command line.

gwtdev starts the GWT code server, waits until it is ready and then starts the
web server hosting the application. Both processes are described in a YAML
launch configuration, gwtdev.yaml by default. Create one with 'gwtdev init'.
`,
		DisableAutoGenTag: true,
		SilenceErrors:     true, // We have our own error printing
		SilenceUsage:      false,
		Args:              cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return fmt.Errorf("invalid command: %s", args[0])
		},
	}
	env := make(map[string]string)
	for _, entry := range environment {
		k, v, _ := strings.Cut(entry, "=")
		env[k] = v
	}
	cli := CLI{
		Environment: env,
		Stdout:      stdout,
		Stderr:      stderr,

		cmd:      cmd,
		flags:    &globalFlags{},
		platform: classpath.HostPlatform(),
	}
	cli.isTerminal = func() bool { return isTerminal(cli.Stdout) && isTerminal(cli.Stderr) }
	cli.flagSet = cli.configureFlags()
	cli.configureCommands()
	cmd.PersistentPreRunE = cli.configureOutput
	return &cli, nil
}

func (c *CLI) configureFlags() map[string]*pflag.Flag {
	persistent := c.cmd.PersistentFlags()
	persistent.StringVarP(&c.flags.color, colorFlag, "c", "auto", `Whether to use colors in output. Must be "auto", "never", or "always"`)
	persistent.BoolVarP(&c.flags.quiet, quietFlag, "q", false, "Print only errors")
	persistent.CountVarP(&c.flags.verbose, verboseFlag, "v", "Print more details about what gwtdev does. Repeat for more")
	persistent.StringVarP(&c.flags.configFile, fileFlag, "f", config.DefaultFile, "The launch configuration file. Defaults to $"+envConfigFile+" when set")
	flags := make(map[string]*pflag.Flag)
	persistent.VisitAll(func(flag *pflag.Flag) {
		flags[flag.Name] = flag
	})
	return flags
}

// configFile returns the launch configuration named by --file, or by the environment when the flag is not given.
func (c *CLI) configFile() string {
	if !c.flagSet[fileFlag].Changed {
		if f := c.Environment[envConfigFile]; f != "" {
			return f
		}
	}
	return c.flags.configFile
}

func (c *CLI) configureOutput(cmd *cobra.Command, args []string) error {
	if f, ok := c.Stdout.(*os.File); ok {
		c.Stdout = colorable.NewColorable(f)
	}
	if f, ok := c.Stderr.(*os.File); ok {
		c.Stderr = colorable.NewColorable(f)
	}
	trace.SetOutput(c.Stderr)
	verbosity := c.flags.verbose
	if c.Environment["GWTDEV_TRACE"] != "" {
		verbosity = max(verbosity, 1)
	}
	if c.Environment["GWTDEV_DEBUG"] != "" {
		verbosity = max(verbosity, 2)
	}
	trace.SetVerbosity(verbosity)
	if c.flags.quiet {
		c.Stdout = io.Discard
		trace.Silent()
	}
	colorize := false
	switch c.flags.color {
	case "auto":
		_, nocolor := c.Environment["NO_COLOR"] // https://no-color.org
		colorize = !nocolor && c.isTerminal()
	case "always":
		colorize = true
	case "never":
	default:
		return errHint(fmt.Errorf("invalid color option: %s", c.flags.color), `Must be "auto", "never" or "always"`)
	}
	color.NoColor = !colorize
	c.configureSpinner()
	return nil
}

func (c *CLI) configureSpinner() {
	_, ci := c.Environment["CI"]
	if c.flags.quiet || !c.isTerminal() || ci {
		c.spinner = util.NoSpinner
	} else {
		c.spinner = util.Spinner
	}
}

func (c *CLI) configureCommands() {
	rootCmd := c.cmd
	classpathCmd := newClasspathCmd()
	classpathCmd.AddCommand(newClasspathJarCmd(c))      // classpath jar
	classpathCmd.AddCommand(newClasspathShowCmd(c))     // classpath show
	classpathCmd.AddCommand(newClasspathCompressCmd(c)) // classpath compress
	rootCmd.AddCommand(classpathCmd)                    // classpath
	rootCmd.AddCommand(newDevCmd(c))                    // dev
	rootCmd.AddCommand(newExecCmd(c))                   // exec
	rootCmd.AddCommand(newInitCmd(c))                   // init
	rootCmd.AddCommand(newPlanCmd(c))                   // plan
	rootCmd.AddCommand(newVersionCmd(c))                // version
}

func (c *CLI) printErr(err error, hints ...string) {
	fmt.Fprintln(c.Stderr, color.RedString("Error:"), err)
	for _, hint := range hints {
		fmt.Fprintln(c.Stderr, color.CyanString("Hint:"), hint)
	}
}

func (c *CLI) printSuccess(msg ...interface{}) {
	fmt.Fprintln(c.Stdout, color.GreenString("Success:"), fmt.Sprint(msg...))
}

func (c *CLI) printWarning(msg interface{}, hints ...string) {
	fmt.Fprintln(c.Stderr, color.YellowString("Warning:"), msg)
	for _, hint := range hints {
		fmt.Fprintln(c.Stderr, color.CyanString("Hint:"), hint)
	}
}

func (c *CLI) getenv(key string) string {
	return c.Environment[key]
}

// loadConfig reads the launch configuration named by the --file flag.
func (c *CLI) loadConfig() (*config.Config, error) {
	filename := c.configFile()
	cfg, err := config.Load(filename, c.getenv)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, errHint(err, "Create a launch configuration with 'gwtdev init'", "Or point to an existing one with --file")
		}
		return nil, err
	}
	trace.Trace("using launch configuration", filename)
	return cfg, nil
}

// absPath resolves path against the working directory, keeping it as is when that fails.
func absPath(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return path
	}
	return abs
}

// Run executes the CLI with given args. If args is nil, it defaults to os.Args[1:].
func (c *CLI) Run(args ...string) error {
	return c.RunContext(context.Background(), args...)
}

// RunContext is Run with a context that interrupts long-running commands when cancelled, like SIGINT does.
func (c *CLI) RunContext(ctx context.Context, args ...string) error {
	c.cmd.SetArgs(args)
	err := c.cmd.ExecuteContext(ctx)
	if err != nil {
		var cliErr ErrCLI
		if errors.As(err, &cliErr) {
			if !cliErr.quiet {
				c.printErr(cliErr, cliErr.hints...)
			}
		} else {
			c.printErr(err)
		}
	}
	return err
}

func isTerminal(w io.Writer) bool {
	if f, ok := w.(*os.File); ok {
		return isatty.IsTerminal(f.Fd())
	}
	return false
}
