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

package core

import "time"

// Status is the publication state of a manga
type Status int

const (
	StatusUnknown Status = iota
	StatusOngoing
	StatusCompleted
	StatusLicensed
)

func (s Status) String() string {
	switch s {
	case StatusOngoing:
		return "Ongoing"
	case StatusCompleted:
		return "Completed"
	case StatusLicensed:
		return "Licensed"
	default:
		return "Unknown"
	}
}

// Manga describes one title of a source. URL identifies it and is stable per site.
type Manga struct {
	URL          string `json:"url"`
	Title        string `json:"title"`
	Artist       string `json:"artist,omitempty"`
	Author       string `json:"author,omitempty"`
	Description  string `json:"description,omitempty"`
	Genre        string `json:"genre,omitempty"`
	Status       Status `json:"status"`
	ThumbnailURL string `json:"thumbnail_url,omitempty"`
	Initialized  bool   `json:"initialized"`
}

// MangasPage is one page of a catalog listing
type MangasPage struct {
	Mangas      []Manga `json:"mangas"`
	HasNextPage bool    `json:"has_next_page"`
}

// Chapter describes one chapter of a manga
type Chapter struct {
	URL  string `json:"url"`
	Name string `json:"name"`
	// ChapterNumber allows fractional chapters; -1 means unknown
	ChapterNumber float64 `json:"chapter_number"`
	// DateUpload is in epoch milliseconds, 0 when unknown
	DateUpload int64  `json:"date_upload"`
	Scanlator  string `json:"scanlator,omitempty"`
}

// UploadTime converts DateUpload to a time.Time
func (c Chapter) UploadTime() time.Time {
	return time.UnixMilli(c.DateUpload)
}

// Page is a single image of a chapter
type Page struct {
	Index    int    `json:"index"`
	URL      string `json:"url"`
	ImageURL string `json:"image_url,omitempty"`
	Extra    string `json:"extra,omitempty"`
}

// Filter is a single search filter sent by the host
type Filter struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// FilterList is the ordered list of filters passed to a search
type FilterList []Filter

// NowMillis returns the current time in epoch milliseconds
func NowMillis() int64 {
	return time.Now().UnixMilli()
}
