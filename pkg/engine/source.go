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

package engine

import (
	"context"

	"Lantern/pkg/core"
	"Lantern/pkg/engine/network"
	"Lantern/pkg/prefs"
)

// Source is the contract every site extension implements.
// The host calls one operation at a time per source instance.
type Source interface {
	ID() string
	Name() string
	Lang() string
	BaseURL() string
	SupportsLatest() bool

	// Client is the engine client decorated with the source's interceptors
	Client() *network.Client

	FetchPopularManga(ctx context.Context, page int) (*core.MangasPage, error)
	FetchLatestUpdates(ctx context.Context, page int) (*core.MangasPage, error)
	FetchSearchManga(ctx context.Context, page int, query string, filters core.FilterList) (*core.MangasPage, error)
	FetchMangaDetails(ctx context.Context, manga core.Manga) (*core.Manga, error)
	FetchChapterList(ctx context.Context, manga core.Manga) ([]core.Chapter, error)
	FetchPageList(ctx context.Context, chapter core.Chapter) ([]core.Page, error)
	FetchImageURL(ctx context.Context, page core.Page) (string, error)
	ImageRequest(ctx context.Context, page core.Page) (*network.Request, error)
}

// Configurable is implemented by sources that expose user settings
type Configurable interface {
	SetupPreferenceScreen(screen *prefs.Screen)
}
