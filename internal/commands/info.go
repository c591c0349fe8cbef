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
	"Lantern/pkg/core"

	"github.com/spf13/cobra"
)

var infoCmd = &cobra.Command{
	Use:     "manga <source> <manga-url>",
	Aliases: []string{"info"},
	Short:   "Show the details of a title",
	Args:    cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		src, err := lookupSource(args[0])
		if err != nil {
			return err
		}
		manga, err := src.FetchMangaDetails(cmd.Context(), core.Manga{URL: args[1]})
		if err != nil {
			return err
		}
		formatter.PrintMangaDetails(manga)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(infoCmd)
}
