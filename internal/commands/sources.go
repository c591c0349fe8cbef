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
	"Lantern/pkg/engine"

	"github.com/spf13/cobra"
)

var sourcesCmd = &cobra.Command{
	Use:   "sources",
	Short: "List all available sources",
	Long:  `Display every source extension bundled with Lantern, its language and whether it has settings.`,
	Run: func(cmd *cobra.Command, args []string) {
		formatter.PrintSourceList(appEngine.AllSources())
		formatter.PrintInfo("Use the source ID as the first argument of the other commands")
	},
}

// lookupSource resolves a source ID given on the command line
func lookupSource(id string) (engine.Source, error) {
	return appEngine.GetSource(id)
}

func init() {
	rootCmd.AddCommand(sourcesCmd)
}
