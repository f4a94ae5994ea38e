// Copyright Vespa.ai. Licensed under the terms of the Apache 2.0 license. See LICENSE in the project root.

package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/go-json-experiment/json"
	"github.com/go-json-experiment/json/jsontext"
	"github.com/mattn/go-runewidth"
	"github.com/putnami/gwtdev/internal/config"
	"github.com/putnami/gwtdev/internal/jvm"
	"github.com/spf13/cobra"
)

// plan is the resolved launch of one process.
type plan struct {
	Name        string          `json:"name"`
	Java        string          `json:"java"`
	MainClass   string          `json:"mainClass"`
	JvmArgs     []string        `json:"jvmArgs"`
	ClassPath   []string        `json:"classPath"`
	PathingJar  string          `json:"pathingJar,omitempty"`
	Compressed  bool            `json:"compressed,omitempty"`
	Args        []string        `json:"args"`
	WorkDir     string          `json:"workDir,omitempty"`
	URL         string          `json:"url,omitempty"`
	JavaOptions jvm.JavaOptions `json:"javaOptions"`
	CommandLine string          `json:"commandLine"`
}

func newPlanCmd(cli *CLI) *cobra.Command {
	var printJSON bool
	cmd := &cobra.Command{
		Use:   "plan [codeserver|webserver]",
		Short: "Show how the configured processes would be launched",
		Long: `Show how the configured processes would be launched.

Nothing is written: a pathing jar is shown by the path it would be written to,
and a compressed class path is shown uncompressed.`,
		Example: `$ gwtdev plan
$ gwtdev plan codeserver --json`,
		DisableAutoGenTag: true,
		SilenceUsage:      true,
		Args:              cobra.MaximumNArgs(1),
		ValidArgs:         []string{config.CodeServer, config.WebServer},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := cli.loadConfig()
			if err != nil {
				return err
			}
			names := []string{config.CodeServer, config.WebServer}
			if len(args) == 1 {
				names = args
			}
			var plans []plan
			for _, name := range names {
				p, err := cfg.Process(name)
				if err != nil {
					return errHint(err)
				}
				plans = append(plans, cli.planFor(cfg, name, p))
			}
			if printJSON {
				return json.MarshalWrite(cli.Stdout, plans, jsontext.Multiline(true), jsontext.WithIndent("  "))
			}
			for i, pl := range plans {
				if i > 0 {
					fmt.Fprintln(cli.Stdout)
				}
				printPlan(cli.Stdout, pl)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&printJSON, "json", false, "Print the plan as JSON")
	return cmd
}

func (c *CLI) planFor(cfg *config.Config, name string, p *config.Process) plan {
	spec := p.CommandBuilder(c.platform).Preview()
	executor := jvm.NewExecutor(spec, cfg.ExecutorOptions(p)...)
	java := "java (not found)"
	if argv, err := executor.Command(); err == nil {
		java = argv[0]
	}
	return plan{
		Name:        name,
		Java:        java,
		MainClass:   spec.MainClass,
		JvmArgs:     spec.JvmArgs,
		ClassPath:   spec.ClassPathEntries(),
		PathingJar:  p.PathingJar,
		Compressed:  p.CompressClassPath && p.PathingJar == "",
		Args:        spec.Args,
		WorkDir:     p.WorkDir,
		URL:         p.URL,
		JavaOptions: p.Java,
		CommandLine: executor.CommandLine(),
	}
}

func printPlan(w io.Writer, p plan) {
	type row struct {
		label  string
		values []string
	}
	classPathLabel := "class path"
	if p.PathingJar != "" {
		classPathLabel = "class path (pathing jar)"
	} else if p.Compressed {
		classPathLabel = "class path (compressed)"
	}
	rows := []row{
		{"java", []string{p.Java}},
		{"main class", []string{p.MainClass}},
		{"jvm args", p.JvmArgs},
		{classPathLabel, p.ClassPath},
		{"args", p.Args},
		{"work dir", []string{p.WorkDir}},
		{"url", []string{p.URL}},
	}
	width := 0
	for _, r := range rows {
		width = max(width, runewidth.StringWidth(r.label))
	}
	fmt.Fprintln(w, color.CyanString(p.Name))
	for _, r := range rows {
		values := r.values
		if len(values) == 0 || (len(values) == 1 && values[0] == "") {
			continue
		}
		for i, v := range values {
			label := ""
			if i == 0 {
				label = r.label
			}
			line := "  " + runewidth.FillRight(label, width) + "  " + v
			fmt.Fprintln(w, strings.TrimRight(line, " "))
		}
	}
}
