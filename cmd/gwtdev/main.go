// Copyright Vespa.ai. Licensed under the terms of the Apache 2.0 license. See LICENSE in the project root.
// Entrypoint for gwtdev

package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/putnami/gwtdev/internal/cli/cmd"
	"github.com/putnami/gwtdev/internal/osutil"
)

func fatal(status int, err error) {
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
	}
	os.Exit(status)
}

func main() {
	defer handleSimplePanic()
	cli, err := cmd.New(os.Stdout, os.Stderr, os.Environ())
	if err != nil {
		osutil.ExitErr(err)
	}
	if err := cli.Run(); err != nil {
		var cliErr cmd.ErrCLI
		if errors.As(err, &cliErr) {
			fatal(cliErr.Status, nil)
		} else {
			fatal(1, nil)
		}
	}
}

func handleSimplePanic() {
	if r := recover(); r != nil {
		if jee, ok := r.(*osutil.ExitError); ok {
			fmt.Fprintln(os.Stderr, jee)
			os.Exit(1)
		} else {
			panic(r)
		}
	}
}
