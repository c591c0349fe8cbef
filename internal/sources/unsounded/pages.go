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

package unsounded

import (
	"fmt"

	"Lantern/pkg/core"
)

// pageRef addresses a page by chapter number and zero-based page index
type pageRef struct {
	chapter int
	index   int
}

// pageVariant is one image emitted in place of an irregular page.
// Asset names a file under comic/chNN/images; otherwise the standard
// page art URL is used with Suffix appended to the page number.
type pageVariant struct {
	Key    string
	Suffix string
	Asset  string
}

// pageExceptions lists the pages whose art is split across several files
var pageExceptions = map[pageRef][]pageVariant{
	{chapter: 7, index: 28}: suffixed(7, 28, "", "b", "c", "d", "e", "f", "g", "h", "i"),
	{chapter: 7, index: 29}: suffixed(7, 29, "a", "b"),
	{chapter: 10, index: 154}: {
		{Key: "ch10_155156a", Asset: "outside_left_d.jpg"},
		{Key: "ch10_155156b", Asset: "comic_leftd_bg.jpg"},
		{Key: "ch10_155156c", Suffix: "-156"},
	},
	{chapter: 10, index: 155}: {
		{Key: "ch10_155156d", Asset: "comic_rightd_bg.jpg"},
		{Key: "ch10_155156e", Asset: "outside_right_d.jpg"},
	},
	{chapter: 13, index: 85}: suffixed(13, 85, "a", "aa", "b", "c", "d"),
}

func suffixed(chapter, index int, suffixes ...string) []pageVariant {
	variants := make([]pageVariant, len(suffixes))
	for i, s := range suffixes {
		variants[i] = pageVariant{
			Key:    fmt.Sprintf("%s%s", pageKey(chapter, index+1), s),
			Suffix: s,
		}
	}
	return variants
}

// pageKey formats the chNN_PP key of a 1-based page number
func pageKey(chapter, page int) string {
	return fmt.Sprintf("ch%02d_%02d", chapter, page)
}

// imageURL builds the page art URL of a zero-based page index
func imageURL(baseURL string, chapter, pageIndex int, suffix string) string {
	return fmt.Sprintf("%s/comic/ch%02d/pageart/%s%s.jpg", baseURL, chapter, pageKey(chapter, pageIndex+1), suffix)
}

// assetURL builds the URL of a loose image used by a spread
func assetURL(baseURL string, chapter int, asset string) string {
	return fmt.Sprintf("%s/comic/ch%02d/images/%s", baseURL, chapter, asset)
}

// archivePages lists every image of an archived chapter with count index pages
func archivePages(baseURL string, chapter, count int) []core.Page {
	pages := make([]core.Page, 0, count)
	for i := 0; i < count; i++ {
		variants, irregular := pageExceptions[pageRef{chapter: chapter, index: i}]
		if !irregular {
			pages = append(pages, core.Page{
				Index:    len(pages),
				URL:      pageKey(chapter, i+1),
				ImageURL: imageURL(baseURL, chapter, i, ""),
			})
			continue
		}

		for _, v := range variants {
			image := imageURL(baseURL, chapter, i, v.Suffix)
			if v.Asset != "" {
				image = assetURL(baseURL, chapter, v.Asset)
			}
			pages = append(pages, core.Page{Index: len(pages), URL: v.Key, ImageURL: image})
		}
	}
	return pages
}

// latestPage returns the single page entry of page number n of the newest chapter
func latestPage(baseURL string, latest, n int) core.Page {
	return core.Page{
		Index:    0,
		URL:      pageKey(latest, n),
		ImageURL: imageURL(baseURL, latest, n-1, ""),
	}
}
