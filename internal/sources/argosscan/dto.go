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

package argosscan

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// flexID accepts identifiers sent either as JSON strings or numbers
type flexID string

func (f *flexID) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		*f = ""
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*f = flexID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*f = flexID(n.String())
	return nil
}

func (f flexID) String() string { return string(f) }

type projectListDto struct {
	Projects    []projectDto `json:"projects"`
	Count       int          `json:"count"`
	CurrentPage int          `json:"currentPage"`
	TotalPages  int          `json:"totalPages"`
}

type projectDto struct {
	ID          flexID       `json:"id"`
	Name        string       `json:"name"`
	Cover       string       `json:"cover"`
	Description *string      `json:"description"`
	Authors     []string     `json:"authors"`
	Tags        []tagDto     `json:"tags"`
	Chapters    []chapterDto `json:"chapters"`
}

type tagDto struct {
	Name string `json:"name"`
}

type chapterDto struct {
	ID       flexID      `json:"id"`
	Title    string      `json:"title"`
	Number   *float64    `json:"number"`
	CreateAt string      `json:"createAt"`
	Images   []string    `json:"images"`
	Project  *projectDto `json:"project"`
}

// GraphQL data payloads

type projectsData struct {
	GetProjects projectListDto `json:"getProjects"`
}

type projectData struct {
	Project *projectDto `json:"project"`
}

type chaptersData struct {
	GetChapters struct {
		Chapters []chapterDto `json:"chapters"`
	} `json:"getChapters"`
}

// projectIDFromURL extracts the id of a /obras/{id} URL
func projectIDFromURL(url string) (int, bool) {
	id, err := strconv.Atoi(afterMarker(url, "obras/"))
	return id, err == nil
}

// chapterIDFromURL extracts the id of a /leitor/{id} URL
func chapterIDFromURL(url string) string {
	return afterMarker(url, "leitor/")
}

func afterMarker(s, marker string) string {
	if i := strings.Index(s, marker); i >= 0 {
		return s[i+len(marker):]
	}
	return s
}
