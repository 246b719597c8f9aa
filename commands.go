// Copyright 2021 Google LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/google/ghcprof/internal"
	"github.com/google/ghcprof/internal/collapsed"
	"github.com/google/ghcprof/internal/parsers/ghc"
	"github.com/google/ghcprof/internal/render"
)

const (
	fileHelp      = "The .prof report to read. Reads from stdin if empty or -."
	moduleTagHelp = `Annotates the cost centres of a module with the given tag. Format is <module>:<tag>.
For example, 'fib [Annotation]' with --moduleTag=Main:Annotation
`
)

type viewFlags struct {
	file             string
	maxDepth         int
	minInheritedTime float32
	noColor          bool
}

func (v *viewFlags) bind(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.StringVarP(&v.file, "file", "f", "", fileHelp)
	fs.IntVar(&v.maxDepth, "max-depth", 0, "Only show this many levels of the call tree. 0 shows all.")
	fs.Float32Var(&v.minInheritedTime, "min-inherited-time", 0, "Hide call subtrees with less inherited %time.")
	fs.BoolVar(&v.noColor, "no-color", false, "Disable colored output.")
}

func runView(cmd *cobra.Command, g *globalOptions, v *viewFlags) error {
	cfg := *g.cfg
	if cmd.Flags().Changed("max-depth") {
		cfg.View.MaxDepth = v.maxDepth
	}
	if cmd.Flags().Changed("min-inherited-time") {
		cfg.View.MinInheritedTime = v.minInheritedTime
	}
	if v.noColor || color.NoColor {
		cfg.View.Color = false
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	report, err := g.readReport(cmd, v.file)
	if err != nil {
		return err
	}
	return render.Render(cmd.OutOrStdout(), report, render.Options{
		Color:            cfg.View.Color,
		MaxDepth:         cfg.View.MaxDepth,
		MinInheritedTime: cfg.View.MinInheritedTime,
	})
}

func newViewCommand(g *globalOptions) *cobra.Command {
	v := &viewFlags{}
	cmd := &cobra.Command{
		Use:   "view",
		Short: "Print the header, flat summary and call tree of a report",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runView(cmd, g, v)
		},
	}
	v.bind(cmd)
	return cmd
}

type pprofFlags struct {
	file        string
	output      string
	excludeMain bool
	qualify     bool
	annotations internal.ModuleAnnotationMap
}

func newPprofCommand(g *globalOptions) *cobra.Command {
	p := &pprofFlags{}
	cmd := &cobra.Command{
		Use:   "pprof",
		Short: "Convert a report to a pprof profile",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts := internal.PprofOptions{
				ExcludeMain:  g.cfg.Pprof.ExcludeMain,
				QualifyNames: g.cfg.Pprof.QualifyNames,
				Annotations:  p.annotations,
			}
			if cmd.Flags().Changed("exclude-main") {
				opts.ExcludeMain = p.excludeMain
			}
			if cmd.Flags().Changed("qualify") {
				opts.QualifyNames = p.qualify
			}
			report, err := g.readReport(cmd, p.file)
			if err != nil {
				return err
			}
			pprof := internal.ReportToPprof(report, opts)
			if err := pprof.CheckValid(); err != nil {
				return fmt.Errorf("invalid profile: %w", err)
			}
			out, err := os.Create(p.output)
			if err != nil {
				return fmt.Errorf("output failed: %w", err)
			}
			defer out.Close()
			if err := pprof.Write(out); err != nil {
				return fmt.Errorf("failed to write: %w", err)
			}
			slog.Info("Wrote profile", "output", p.output, "samples", len(pprof.Sample))
			return out.Close()
		},
	}
	fs := cmd.Flags()
	fs.StringVarP(&p.file, "file", "f", "", fileHelp)
	fs.StringVarP(&p.output, "output", "o", "profile.pb.gz", "Output file of the pprof profile.")
	fs.BoolVar(&p.excludeMain, "exclude-main", false, "Excludes the MAIN cost centre from all stack traces.")
	fs.BoolVar(&p.qualify, "qualify", false, "Prefixes function names with their module.")
	fs.Var(&p.annotations, "moduleTag", moduleTagHelp)
	return cmd
}

func newCollapsedCommand(g *globalOptions) *cobra.Command {
	var file, metric string
	var qualify bool
	cmd := &cobra.Command{
		Use:   "collapsed",
		Short: "Print the call tree as collapsed stacks for flame graph tools",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !cmd.Flags().Changed("metric") {
				metric = g.cfg.Collapsed.Metric
			}
			m, err := collapsed.ParseMetric(metric)
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("qualify") {
				qualify = g.cfg.Pprof.QualifyNames
			}
			report, err := g.readReport(cmd, file)
			if err != nil {
				return err
			}
			stacks := collapsed.FromReport(report, collapsed.Options{Metric: m, Qualify: qualify})
			return collapsed.Encode(stacks, cmd.OutOrStdout())
		},
	}
	fs := cmd.Flags()
	fs.StringVarP(&file, "file", "f", "", fileHelp)
	fs.StringVar(&metric, "metric", string(collapsed.MetricTime), "Value of each stack: time (ticks), alloc (bytes) or entries.")
	fs.BoolVar(&qualify, "qualify", false, "Prefixes frames with their module.")
	return cmd
}

func newDumpCommand(g *globalOptions) *cobra.Command {
	var file, format string
	cmd := &cobra.Command{
		Use:   "dump",
		Short: "Print the parsed report as YAML or JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !cmd.Flags().Changed("format") {
				format = g.cfg.Dump.Format
			}
			report, err := g.readReport(cmd, file)
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			switch format {
			case "yaml":
				enc := yaml.NewEncoder(w)
				enc.SetIndent(2)
				if err := enc.Encode(report); err != nil {
					return err
				}
				return enc.Close()
			case "json":
				enc := json.NewEncoder(w)
				enc.SetIndent("", "  ")
				return enc.Encode(report)
			default:
				return fmt.Errorf("unknown dump format %q, want yaml or json", format)
			}
		},
	}
	fs := cmd.Flags()
	fs.StringVarP(&file, "file", "f", "", fileHelp)
	fs.StringVar(&format, "format", "yaml", "Output format, yaml or json.")
	return cmd
}

func newFmtCommand(g *globalOptions) *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "fmt",
		Short: "Re-print a report in canonical layout",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			report, err := g.readReport(cmd, file)
			if err != nil {
				return err
			}
			return ghc.Format(cmd.OutOrStdout(), report)
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", fileHelp)
	return cmd
}
