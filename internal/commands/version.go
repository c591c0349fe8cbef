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
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Long:  `Display version information for Lantern, including the log and preference file locations.`,
	Run: func(cmd *cobra.Command, args []string) {
		formatter.PrintHeader("Lantern Version Information")

		formatter.PrintDetail("Version", version)
		formatter.PrintDetail("Go version", runtime.Version())
		formatter.PrintDetail("OS/Arch", fmt.Sprintf("%s/%s", runtime.GOOS, runtime.GOARCH))

		if appEngine == nil {
			formatter.PrintWarning("Engine not initialized")
			return
		}
		formatter.PrintDetail("Log file", formatter.FormatPath(appEngine.Config.LogFile))
		if appEngine.Config.InMemoryPrefs {
			formatter.PrintDetail("Preferences", "in memory")
		} else {
			formatter.PrintDetail("Preferences", formatter.FormatPath(appEngine.Config.PrefsPath))
		}
		formatter.PrintDetail("Sources", formatter.FormatNumber(appEngine.SourceCount()))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
