// Lantern: Content-source extensions and a host harness for manga readers.
// Copyright (C) 2025 Luca M. Schmidt (LuMiSxh)
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program. If not, see <http://www.gnu.org/licenses/>.

package commands

import (
	"context"
	"fmt"
	"os"

	"Lantern/pkg/cli"
	"Lantern/pkg/config"
	"Lantern/pkg/engine"
	"Lantern/pkg/errors"
	"Lantern/pkg/source/registry"

	"github.com/spf13/cobra"
)

var (
	appEngine      *engine.Engine
	formatter      = cli.NewFormatter()
	maxConcurrency int
	outputDir      string
	version        string
	debugMode      bool
	noColor        bool
	plainOutput    bool
)

var rootCmd = &cobra.Command{
	Use:   "lantern",
	Short: "Lantern runs manga source extensions from the command line.",
	Long: "Lantern hosts manga source extensions. It lists their catalogs, resolves chapters and pages, " +
		"downloads page images and manages per-source settings such as access tokens.",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if appEngine == nil {
			if err := initEngine(cmd); err != nil {
				return err
			}
		}

		formatter.SetColor(!noColor)
		if plainOutput {
			formatter.OutputType = cli.OutputTypeText
		}
		SetupDebugMode()
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

// initEngine builds the engine from the environment and the persistent flags
func initEngine(cmd *cobra.Command) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	if flags.Changed("output-dir") {
		cfg.OutputDir = outputDir
	}
	if flags.Changed("concurrency") {
		cfg.Concurrency = maxConcurrency
	}
	cfg.Debug = cfg.Debug || debugMode

	e, err := engine.New(cfg)
	if err != nil {
		return err
	}
	if err := registry.LoadAll(e); err != nil {
		_ = e.Shutdown()
		return err
	}
	appEngine = e
	return nil
}

// SetupDebugMode applies the --debug flag to the engine
func SetupDebugMode() {
	if appEngine != nil {
		appEngine.SetDebugMode(debugMode || appEngine.Config.Debug)
	}
}

// Execute runs the CLI and returns the process exit code
func Execute(ctx context.Context) int {
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		if !formatter.HandleError(err, debugMode) {
			_, _ = fmt.Fprintln(os.Stderr, err)
		}
		if hint := errorHint(err); hint != "" {
			formatter.PrintInfo(hint)
		}
		return 1
	}
	return 0
}

// errorHint suggests the next step for failures the user can act on
func errorHint(err error) string {
	switch {
	case errors.IsMissingConfig(err):
		return "Configure the source with 'lantern prefs set <source> <key> <value>'"
	case errors.IsUnauthorized(err):
		return "The site refused access; check the source settings with 'lantern prefs list <source>'"
	case errors.IsNotUsed(err):
		return "This source does not support that operation; see 'lantern sources'"
	case errors.IsRateLimited(err):
		return "The site is limiting requests; wait a moment and try again"
	case errors.IsUpstream(err):
		return "The site reported an error; try again later"
	case errors.IsNotFound(err):
		return "Check the source ID with 'lantern sources' and the URL with the listing commands"
	default:
		return ""
	}
}

// Shutdown releases the engine created for the command, if any
func Shutdown() error {
	if appEngine == nil {
		return nil
	}
	err := appEngine.Shutdown()
	appEngine = nil
	return err
}

// downloadRoot returns the directory downloads are written to
func downloadRoot(cmd *cobra.Command) string {
	if cmd.Flags().Changed("output-dir") || appEngine == nil {
		return outputDir
	}
	return appEngine.Config.OutputDir
}

// concurrencyFor returns the page download concurrency for this run
func concurrencyFor(cmd *cobra.Command) int {
	if cmd.Flags().Changed("concurrency") || appEngine == nil {
		return maxConcurrency
	}
	return appEngine.Config.Concurrency
}

func init() {
	rootCmd.PersistentFlags().IntVar(&maxConcurrency, "concurrency", 4, "Maximum number of concurrent page downloads")
	rootCmd.PersistentFlags().StringVar(&outputDir, "output-dir", "downloads", "Directory downloads are written to")
	rootCmd.PersistentFlags().BoolVar(&debugMode, "debug", false, "Enable debug logging and detailed error information")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colorized output")
	rootCmd.PersistentFlags().BoolVar(&plainOutput, "plain", false, "Print lists as plain text instead of tables")
}
