// Copyright 2020 Google LLC
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

// ghcprof reads GHC cost-centre profiling reports (the .prof files written by
// +RTS -p) and views or converts them.
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/google/ghcprof/internal"
	"github.com/google/ghcprof/internal/config"
	"github.com/google/ghcprof/internal/parsers"
)

const (
	long = `Reads a GHC time and allocation profiling report and views or converts it.

If the input file is empty or -, reads from stdin. To view a report, use
	$ %[1]s -f prog.prof
To convert a report for pprof, use
	$ %[1]s pprof -f prog.prof -o profile.pb.gz
`
	formatHelp = `The format of the input. Only "ghc", the +RTS -p report, is supported.`
)

// globalOptions are shared by every command.
type globalOptions struct {
	configPath         string
	verbose            bool
	equalDepthSiblings bool
	inputFormat        string

	cfg *config.Config
}

func (g *globalOptions) setup(cmd *cobra.Command) error {
	cfg, err := config.LoadConfig(g.configPath)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("equal-depth-siblings") {
		cfg.Tree.EqualDepthSiblings = g.equalDepthSiblings
	}
	level, err := cfg.Log.SlogLevel()
	if err != nil {
		return err
	}
	if g.verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level})))
	g.cfg = cfg
	return nil
}

// readReport parses the report in file, or stdin when file is empty or -.
func (g *globalOptions) readReport(cmd *cobra.Command, file string) (*internal.Report, error) {
	var input io.Reader
	name := file
	if file == "-" || file == "" {
		input = cmd.InOrStdin()
		name = "stdin"
	} else {
		f, err := os.Open(file)
		if err != nil {
			return nil, fmt.Errorf("failed to open %s: %w", file, err)
		}
		defer f.Close()
		input = f
	}
	parser, err := parsers.MakeParser(g.inputFormat, input, parsers.Options{
		EqualDepthSiblings: g.cfg.Tree.EqualDepthSiblings,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", name, err)
	}
	report, err := parser.ParseReport()
	if err != nil {
		return nil, fmt.Errorf("could not parse %s: %w", name, err)
	}
	slog.Debug("Parsed report", "file", name, "cost_centres", report.ExtendedSummary.Len(),
		"flat_rows", len(report.FlatSummary))
	return report, nil
}

func newRootCommand() *cobra.Command {
	g := &globalOptions{}
	view := &viewFlags{}

	rootCmd := &cobra.Command{
		Use:   "ghcprof",
		Short: "View and convert GHC profiling reports",
		Long:  fmt.Sprintf(long, "ghcprof"),
		Args:  cobra.NoArgs,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return g.setup(cmd)
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runView(cmd, g, view)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&g.configPath, "config", "", "config file (default is .ghcprof.yaml in the current or home directory)")
	pf.BoolVarP(&g.verbose, "verbose", "v", false, "verbose output")
	pf.BoolVar(&g.equalDepthSiblings, "equal-depth-siblings", false,
		"Treat a row indented like the previous row as its sibling instead of its child.")
	pf.StringVar(&g.inputFormat, "input-format", parsers.FormatGHC, formatHelp)
	view.bind(rootCmd)

	rootCmd.AddCommand(newViewCommand(g))
	rootCmd.AddCommand(newPprofCommand(g))
	rootCmd.AddCommand(newCollapsedCommand(g))
	rootCmd.AddCommand(newDumpCommand(g))
	rootCmd.AddCommand(newFmtCommand(g))
	return rootCmd
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
