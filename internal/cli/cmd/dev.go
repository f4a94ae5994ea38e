// Copyright Vespa.ai. Licensed under the terms of the Apache 2.0 license. See LICENSE in the project root.

package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"
	"github.com/putnami/gwtdev/internal/config"
	"github.com/putnami/gwtdev/internal/devmode"
	"github.com/putnami/gwtdev/internal/jvm"
	"github.com/spf13/cobra"
)

func newDevCmd(cli *CLI) *cobra.Command {
	var noBrowser bool
	cmd := &cobra.Command{
		Use:   "dev",
		Short: "Run the code server and the web server in super dev mode",
		Long: `Run the code server and the web server in super dev mode.

The code server is started first. Once it logs that it is ready, the web
server is started and runs until it exits or gwtdev is interrupted. If the
code server logs an error before it is ready, or does not become ready within
ready_timeout, it is stopped and the web server is never started.`,
		Example: `$ gwtdev dev
$ gwtdev dev -f config/gwtdev.yaml
$ GWTDEV_DEBUG_PORT=5005 gwtdev dev`,
		DisableAutoGenTag: true,
		SilenceUsage:      true,
		Args:              cobra.ExactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := cli.loadConfig()
			if err != nil {
				return err
			}
			if noBrowser {
				cfg.OpenBrowser = false
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return cli.runDevMode(ctx, cfg)
		},
	}
	cmd.Flags().BoolVar(&noBrowser, "no-browser", false, "Do not open the application in a browser, regardless of open_browser")
	return cmd
}

func (c *CLI) target(cfg *config.Config, name string) devmode.Target {
	p, _ := cfg.Process(name)
	return devmode.Target{
		Name: name,
		Build: func() (jvm.CommandSpec, error) {
			return p.CommandBuilder(c.platform).Build()
		},
		Options: cfg.ExecutorOptions(p),
		URL:     p.URL,
	}
}

func (c *CLI) runDevMode(ctx context.Context, cfg *config.Config) error {
	out := c.newProcessOutput()
	o := &devmode.Orchestrator{
		CodeServer:   c.target(cfg, config.CodeServer),
		WebServer:    c.target(cfg, config.WebServer),
		ReadyTimeout: cfg.ReadyTimeout,
		OpenBrowser:  cfg.OpenBrowser,
		Output:       out.handlers,
		AwaitReady: func(wait func() devmode.Outcome) devmode.Outcome {
			var outcome devmode.Outcome
			_ = c.spinner(c.Stderr, "Waiting for code server ...", func() (string, error) {
				outcome = wait()
				return outcome.String(), nil
			})
			return outcome
		},
	}
	res, err := o.Run(ctx)
	if ctx.Err() != nil {
		return c.errInterrupted("dev mode", ctx.Err())
	}
	if err != nil {
		return err
	}
	switch res.State {
	case devmode.Failed:
		failure := fmt.Errorf("code server %s", res.Outcome)
		switch res.Outcome {
		case devmode.OutcomeTimeout:
			return errHint(failure, fmt.Sprintf("It did not log '%s' within %s", devmode.ReadyPhrase, cfg.ReadyTimeout),
				"Increase ready_timeout or set "+config.EnvReadyTimeout)
		case devmode.OutcomeReady:
			return errHint(fmt.Errorf("code server stopped right after becoming ready"), "Check its output above")
		}
		return errHint(failure, "Check the "+color.CyanString("[codeserver]")+" output above for the first error")
	case devmode.Terminated:
		if res.WebServer != nil {
			if err := res.WebServer.Wait(); err != nil {
				return fmt.Errorf("web server failed: %w", err)
			}
		}
		c.printSuccess("Web server stopped")
	}
	return nil
}
