// Copyright Vespa.ai. Licensed under the terms of the Apache 2.0 license. See LICENSE in the project root.

package cmd

import (
	"fmt"

	"github.com/putnami/gwtdev/internal/config"
	"github.com/putnami/gwtdev/internal/ioutil"
	"github.com/spf13/cobra"
)

func newInitCmd(cli *CLI) *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a starter launch configuration",
		Long: `Write a starter launch configuration.

The file is written to gwtdev.yaml, or the file given with --file. Adjust the
class paths, main module and ports to your project before running 'gwtdev dev'.`,
		Example: `$ gwtdev init
$ gwtdev init -f config/gwtdev.yaml --force`,
		DisableAutoGenTag: true,
		SilenceUsage:      true,
		Args:              cobra.ExactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			filename := cli.configFile()
			if ioutil.Exists(filename) && !force {
				return errHint(fmt.Errorf("%s already exists", filename), "Use --force to overwrite it")
			}
			if err := config.Sample().WriteFile(filename); err != nil {
				return fmt.Errorf("could not write %s: %w", filename, err)
			}
			cli.printSuccess("Wrote ", filename)
			return nil
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing file")
	return cmd
}
