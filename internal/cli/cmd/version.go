// Copyright Vespa.ai. Licensed under the terms of the Apache 2.0 license. See LICENSE in the project root.

package cmd

import (
	"fmt"
	"runtime"

	"github.com/fatih/color"
	"github.com/putnami/gwtdev/internal/cli/build"
	"github.com/putnami/gwtdev/internal/osutil"
	"github.com/spf13/cobra"
)

func newVersionCmd(cli *CLI) *cobra.Command {
	var skipJava bool
	cmd := &cobra.Command{
		Use:               "version",
		Short:             "Show current version and the java installation in use",
		DisableAutoGenTag: true,
		SilenceUsage:      true,
		Args:              cobra.ExactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintf(cli.Stdout, "gwtdev version %s compiled with %v on %v/%v\n", build.Version, runtime.Version(), runtime.GOOS, runtime.GOARCH)
			if skipJava {
				return nil
			}
			java := cli.getenv("GWTDEV_JAVA")
			if java == "" {
				var err error
				java, err = osutil.FindJava(cli.getenv)
				if err != nil {
					cli.printWarning(err)
					return nil
				}
			}
			if major := osutil.JavaMajorVersion(java); major > 0 {
				fmt.Fprintf(cli.Stdout, "java %s at %s\n", color.GreenString("%d", major), java)
			} else {
				cli.printWarning(fmt.Sprintf("could not determine the version of %s", java))
			}
			return nil
		},
	}
	cmd.Flags().BoolVarP(&skipJava, "no-java", "n", false, "Do not look for a java installation")
	return cmd
}
