// Copyright Vespa.ai. Licensed under the terms of the Apache 2.0 license. See LICENSE in the project root.

package cmd

import (
	"fmt"

	"github.com/putnami/gwtdev/internal/classpath"
	"github.com/spf13/cobra"
)

func newClasspathCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "classpath",
		Short: "Work with long class paths",
		Long: `Work with long class paths.

Class paths of GWT projects easily exceed the command line limits of some
platforms. A pathing jar holds the class path in its manifest instead, and
compression shortens dependency cache paths into variable references.`,
		DisableAutoGenTag: true,
		SilenceUsage:      false,
		Args:              cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return fmt.Errorf("invalid command: %s", args[0])
		},
	}
}

func newClasspathJarCmd(cli *CLI) *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "jar -o file entry...",
		Short: "Write a pathing jar referring to the given class path entries",
		Long: `Write a pathing jar referring to the given class path entries.

Entries are stored relative to the directory of the jar. Each argument may
itself be a list of entries separated by the platform path list separator.`,
		Example: `$ gwtdev classpath jar -o build/run.jar build/classes lib/gwt-user.jar
$ gwtdev classpath jar -o build/run.jar "$(cat classpath.txt)"`,
		DisableAutoGenTag: true,
		SilenceUsage:      true,
		Args:              cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if output == "" {
				return errHint(fmt.Errorf("no output file given"), "Set the jar to write with -o")
			}
			jar := classpath.NewPathingJar(output, cli.platform)
			for _, entry := range args {
				jar.Add(absPath(entry))
			}
			if err := jar.Materialize(); err != nil {
				return err
			}
			entries, err := jar.ManifestEntries()
			if err != nil {
				return err
			}
			cli.printSuccess(fmt.Sprintf("Wrote %s with %d class path entries", jar.Get(), len(entries)))
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "The pathing jar to write")
	return cmd
}

func newClasspathShowCmd(cli *CLI) *cobra.Command {
	return &cobra.Command{
		Use:               "show jar",
		Short:             "Print the class path entries of a pathing jar",
		Example:           "$ gwtdev classpath show build/putnami/codeserver.jar",
		DisableAutoGenTag: true,
		SilenceUsage:      true,
		Args:              cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			entries, err := classpath.ManifestClassPath(args[0])
			if err != nil {
				return err
			}
			for _, e := range entries {
				fmt.Fprintln(cli.Stdout, e)
			}
			return nil
		},
	}
}

func newClasspathCompressCmd(cli *CLI) *cobra.Command {
	var windows bool
	cmd := &cobra.Command{
		Use:   "compress path...",
		Short: "Shorten dependency cache paths into variable references",
		Long: `Shorten dependency cache paths into variable references.

Every path below a Gradle dependency cache (modules-2/files-2.1) has its cache
prefix replaced by a variable. The compressed class path is printed first,
followed by the NAME=value bindings that resolve it.`,
		Example: `$ gwtdev classpath compress ~/.gradle/caches/modules-2/files-2.1/com.google.gwt/gwt-user/2.8.2/abc/gwt-user-2.8.2.jar
$ gwtdev classpath compress --windows 'C:\Users\me\.gradle\caches\modules-2\files-2.1\g\a\1\x\a-1.jar'`,
		DisableAutoGenTag: true,
		SilenceUsage:      true,
		Args:              cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			platform := cli.platform
			if windows {
				platform = classpath.Windows
			}
			c := classpath.NewCompressor(platform)
			fmt.Fprintln(cli.Stdout, c.CompressPaths(args))
			for _, binding := range c.Environment() {
				fmt.Fprintln(cli.Stdout, binding)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&windows, "windows", false, "Compress Windows paths, using %NAME% references")
	return cmd
}
