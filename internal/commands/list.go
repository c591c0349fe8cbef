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

var (
	chapterNumber float64
	chapterName   string
)

var chaptersCmd = &cobra.Command{
	Use:   "chapters <source> <manga-url>",
	Short: "List the chapters of a title",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		src, err := lookupSource(args[0])
		if err != nil {
			return err
		}
		chapters, err := src.FetchChapterList(cmd.Context(), core.Manga{URL: args[1]})
		if err != nil {
			return err
		}
		formatter.PrintChapterList(chapters)
		return nil
	},
}

var pagesCmd = &cobra.Command{
	Use:   "pages <source> <chapter-url>",
	Short: "List the pages of a chapter",
	Long: `List the pages of a chapter with their keys and image URLs.
Some sources address chapters by number as well as URL; pass it with --number.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		src, err := lookupSource(args[0])
		if err != nil {
			return err
		}
		pages, err := src.FetchPageList(cmd.Context(), chapterFromArgs(args[1]))
		if err != nil {
			return err
		}
		formatter.PrintPageList(pages)
		return nil
	},
}

// chapterFromArgs rebuilds the chapter a page or download command refers to
func chapterFromArgs(url string) core.Chapter {
	return core.Chapter{URL: url, Name: chapterName, ChapterNumber: chapterNumber}
}

func addChapterFlags(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&chapterNumber, "number", -1, "Chapter number as listed by the chapters command")
	cmd.Flags().StringVar(&chapterName, "name", "", "Chapter name, used for the download directory")
}

func init() {
	addChapterFlags(pagesCmd)
	rootCmd.AddCommand(chaptersCmd, pagesCmd)
}
