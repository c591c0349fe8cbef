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
	"time"

	"Lantern/pkg/core"
	"Lantern/pkg/engine"
	"Lantern/pkg/errors"

	"github.com/gorilla/feeds"
	"github.com/spf13/cobra"
)

var feedFormat string

var feedCmd = &cobra.Command{
	Use:   "feed <source> <manga-url>",
	Short: "Print the chapter list of a title as a feed",
	Long:  `Print the chapters of a title as an Atom, RSS or JSON feed so a feed reader can follow new releases.`,
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		src, err := lookupSource(args[0])
		if err != nil {
			return err
		}

		ctx := cmd.Context()
		manga, err := src.FetchMangaDetails(ctx, core.Manga{URL: args[1]})
		if err != nil {
			return err
		}
		chapters, err := src.FetchChapterList(ctx, *manga)
		if err != nil {
			return err
		}

		out, err := renderFeed(buildFeed(src, manga, chapters, time.Now()), feedFormat)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(formatter.Writer, out)
		return err
	},
}

// buildFeed turns a chapter list into feed items, newest first as listed
func buildFeed(src engine.Source, manga *core.Manga, chapters []core.Chapter, now time.Time) *feeds.Feed {
	feed := &feeds.Feed{
		Title:       manga.Title,
		Link:        &feeds.Link{Href: absoluteURL(src, manga.URL)},
		Description: manga.Description,
		Author:      &feeds.Author{Name: manga.Author},
		Created:     now,
	}

	for _, c := range chapters {
		created := now
		if c.DateUpload > 0 {
			created = c.UploadTime()
		}
		feed.Items = append(feed.Items, &feeds.Item{
			Title:       c.Name,
			Id:          fmt.Sprintf("%s:%s:%v", src.ID(), c.URL, c.ChapterNumber),
			Link:        &feeds.Link{Href: absoluteURL(src, c.URL)},
			Description: c.Scanlator,
			Created:     created,
		})
	}
	return feed
}

func renderFeed(feed *feeds.Feed, format string) (string, error) {
	switch strings.ToLower(format) {
	case "atom":
		return feed.ToAtom()
	case "rss":
		return feed.ToRss()
	case "json":
		return feed.ToJSON()
	default:
		return "", errors.Track(errors.ErrInvalidInput).
			WithMessagef("unknown feed format %q, use atom, rss or json", format).
			AsValidation().
			Error()
	}
}

// absoluteURL resolves site-relative identifiers against the source base URL
func absoluteURL(src engine.Source, path string) string {
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path
	}
	if strings.HasPrefix(path, "/") {
		return src.BaseURL() + path
	}
	return src.BaseURL() + "/" + path
}

func init() {
	feedCmd.Flags().StringVar(&feedFormat, "format", "atom", "Feed format: atom, rss or json")
	rootCmd.AddCommand(feedCmd)
}
