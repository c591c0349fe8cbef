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
	"strings"

	"Lantern/pkg/core"
	"Lantern/pkg/errors"

	"github.com/spf13/cobra"
)

var catalogPage int

var popularCmd = &cobra.Command{
	Use:   "popular <source>",
	Short: "List the popular titles of a source",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		src, err := lookupSource(args[0])
		if err != nil {
			return err
		}
		page, err := src.FetchPopularManga(cmd.Context(), catalogPage)
		if err != nil {
			return err
		}
		formatter.PrintMangasPage(fmt.Sprintf("%s: popular (page %d)", src.Name(), catalogPage), page)
		return nil
	},
}

var latestCmd = &cobra.Command{
	Use:   "latest <source>",
	Short: "List the latest updated titles of a source",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		src, err := lookupSource(args[0])
		if err != nil {
			return err
		}
		if !src.SupportsLatest() {
			return errors.Track(errors.ErrNotUsed).
				WithMessagef("%s does not list latest updates", src.Name()).
				AsSource(src.ID()).
				Error()
		}
		page, err := src.FetchLatestUpdates(cmd.Context(), catalogPage)
		if err != nil {
			return err
		}
		formatter.PrintMangasPage(fmt.Sprintf("%s: latest (page %d)", src.Name(), catalogPage), page)
		return nil
	},
}

var searchCmd = &cobra.Command{
	Use:   "search <source> <query>",
	Short: "Search the titles of a source",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		src, err := lookupSource(args[0])
		if err != nil {
			return err
		}
		query := strings.Join(args[1:], " ")
		page, err := src.FetchSearchManga(cmd.Context(), catalogPage, query, core.FilterList{})
		if err != nil {
			return err
		}
		formatter.PrintMangasPage(fmt.Sprintf("%s: results for %q (page %d)", src.Name(), query, catalogPage), page)
		return nil
	},
}

func init() {
	for _, cmd := range []*cobra.Command{popularCmd, latestCmd, searchCmd} {
		cmd.Flags().IntVar(&catalogPage, "page", 1, "Page of results to fetch")
		rootCmd.AddCommand(cmd)
	}
}
