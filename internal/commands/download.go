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
	"path/filepath"
	"strconv"
	"time"

	"Lantern/pkg/core"
	"Lantern/pkg/engine/download"
	"Lantern/pkg/errors"

	"github.com/spf13/cobra"
)

var downloadTimeout time.Duration

var downloadCmd = &cobra.Command{
	Use:   "download <source> <chapter-url>",
	Short: "Download the page images of a chapter",
	Long: `Download every page image of a chapter into <output-dir>/<source>/<chapter>/.
Pages already on disk are skipped, so an interrupted download can be resumed.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		src, err := lookupSource(args[0])
		if err != nil {
			return err
		}

		ctx := core.WithConcurrency(cmd.Context(), concurrencyFor(cmd))
		ctx, cancel := context.WithTimeout(ctx, downloadTimeout)
		defer cancel()

		chapter := chapterFromArgs(args[1])
		pages, err := src.FetchPageList(ctx, chapter)
		if err != nil {
			return err
		}

		dir := filepath.Join(downloadRoot(cmd), download.SanitizeFilename(src.ID()), chapterDirName(chapter))
		formatter.PrintInfo(fmt.Sprintf("Downloading %d pages from %s...", len(pages), src.Name()))

		paths, err := appEngine.Download.DownloadPages(ctx, src, pages, dir)
		formatter.PrintDownloadSummary(dir, len(paths), len(pages))
		if err != nil {
			return handleDownloadError(err, dir)
		}
		return nil
	},
}

// chapterDirName names the directory of a chapter from its name, number or URL
func chapterDirName(chapter core.Chapter) string {
	switch {
	case chapter.Name != "":
		return download.SanitizeFilename(chapter.Name)
	case chapter.ChapterNumber >= 0:
		return download.SanitizeFilename(chapter.URL + "-" + strconv.FormatFloat(chapter.ChapterNumber, 'f', -1, 64))
	default:
		return download.SanitizeFilename(chapter.URL)
	}
}

// handleDownloadError adds a hint for the failures a user can act on
func handleDownloadError(err error, dir string) error {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return errors.Track(err).
			WithMessage("download timed out, run the command again to resume").
			WithContext("directory", dir).
			Error()
	case errors.CategoryOf(err) == errors.CategoryFileSystem:
		return errors.Track(err).
			WithMessagef("cannot write to '%s', check that it exists and is writable", dir).
			Error()
	default:
		return err
	}
}

func init() {
	addChapterFlags(downloadCmd)
	downloadCmd.Flags().DurationVar(&downloadTimeout, "timeout", 10*time.Minute, "Maximum duration of the whole download")
	rootCmd.AddCommand(downloadCmd)
}
