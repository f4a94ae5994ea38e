// Copyright Vespa.ai. Licensed under the terms of the Apache 2.0 license. See LICENSE in the project root.

package cmd

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"os/signal"
	"strings"
	"syscall"

	"github.com/putnami/gwtdev/internal/config"
	"github.com/putnami/gwtdev/internal/jvm"
	"github.com/putnami/gwtdev/internal/trace"
	"github.com/spf13/cobra"
)

func newExecCmd(cli *CLI) *cobra.Command {
	var inProcess bool
	cmd := &cobra.Command{
		Use:   "exec codeserver|webserver",
		Short: "Run one of the configured processes and wait for it to exit",
		Long: `Run one of the configured processes and wait for it to exit.

With --in-process, the main class is looked up among the entry points built
into gwtdev and invoked directly, instead of forking java.`,
		Example: `$ gwtdev exec codeserver
$ gwtdev exec webserver -f config/gwtdev.yaml
$ gwtdev exec codeserver --in-process`,
		DisableAutoGenTag: true,
		SilenceUsage:      true,
		Args:              cobra.ExactArgs(1),
		ValidArgs:         []string{config.CodeServer, config.WebServer},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := cli.loadConfig()
			if err != nil {
				return err
			}
			p, err := cfg.Process(args[0])
			if err != nil {
				return errHint(err)
			}
			spec, err := p.CommandBuilder(cli.platform).Build()
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			if inProcess {
				executor := jvm.NewExecutor(spec, jvm.WithOutput(cli.Stdout, cli.Stderr))
				if err := executor.RunInProcess(ctx); err != nil {
					if errors.Is(err, jvm.ErrEntryPointNotFound) {
						return errHint(err, "Built-in entry points: "+strings.Join(jvm.RegisteredMains(), ", "), "Run without --in-process to use java")
					}
					return err
				}
				return nil
			}
			executor := jvm.NewExecutor(spec, cfg.ExecutorOptions(p)...)
			trace.Info("starting", args[0]+":", executor.CommandLine())
			stdout, stderr := cli.newProcessOutput().handlers(args[0])
			proc, err := executor.Start(ctx, stdout, stderr)
			if err != nil {
				return err
			}
			if err := proc.Wait(); err != nil {
				var exitErr *exec.ExitError
				if errors.As(err, &exitErr) {
					return ErrCLI{Status: exitErr.ExitCode(), error: fmt.Errorf("%s exited with status %d", args[0], exitErr.ExitCode())}
				}
				return err
			}
			if ctx.Err() != nil {
				return cli.errInterrupted(args[0], ctx.Err())
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&inProcess, "in-process", false, "Invoke the main class in-process instead of forking java")
	return cmd
}
