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

package source

import (
	"context"

	"Lantern/pkg/core"
	"Lantern/pkg/engine"
	"Lantern/pkg/engine/network"
)

// Builder provides fluent configuration for sources
type Builder struct {
	source *HTTPSource
}

// New creates a new source builder
func New(e *engine.Engine, config Config) *Builder {
	return &Builder{
		source: &HTTPSource{
			Config: config,
			Engine: e,
		},
	}
}

// WithInterceptors appends interceptors to the source client
func (b *Builder) WithInterceptors(interceptors ...network.Interceptor) *Builder {
	b.source.Config.Interceptors = append(b.source.Config.Interceptors, interceptors...)
	return b
}

// WithPopularManga registers the popular listing request and parser
func (b *Builder) WithPopularManga(
	request func(context.Context, int) (*network.Request, error),
	parse func(context.Context, *network.Response) (*core.MangasPage, error),
) *Builder {
	b.source.ops.PopularMangaRequest = request
	b.source.ops.PopularMangaParse = parse
	return b
}

// WithLatestUpdates registers the latest updates request and parser
func (b *Builder) WithLatestUpdates(
	request func(context.Context, int) (*network.Request, error),
	parse func(context.Context, *network.Response) (*core.MangasPage, error),
) *Builder {
	b.source.ops.LatestUpdatesRequest = request
	b.source.ops.LatestUpdatesParse = parse
	return b
}

// WithSearchManga registers the search request and parser
func (b *Builder) WithSearchManga(
	request func(context.Context, int, string, core.FilterList) (*network.Request, error),
	parse func(context.Context, *network.Response) (*core.MangasPage, error),
) *Builder {
	b.source.ops.SearchMangaRequest = request
	b.source.ops.SearchMangaParse = parse
	return b
}

// WithMangaDetails registers the details request and parser; a nil request keeps the default
func (b *Builder) WithMangaDetails(
	request func(context.Context, core.Manga) (*network.Request, error),
	parse func(context.Context, *network.Response) (*core.Manga, error),
) *Builder {
	b.source.ops.MangaDetailsRequest = request
	b.source.ops.MangaDetailsParse = parse
	return b
}

// WithChapterList registers the chapter list request and parser; a nil request keeps the default
func (b *Builder) WithChapterList(
	request func(context.Context, core.Manga) (*network.Request, error),
	parse func(context.Context, *network.Response) ([]core.Chapter, error),
) *Builder {
	b.source.ops.ChapterListRequest = request
	b.source.ops.ChapterListParse = parse
	return b
}

// WithPageList registers the page list request and parser; a nil request keeps the default
func (b *Builder) WithPageList(
	request func(context.Context, core.Chapter) (*network.Request, error),
	parse func(context.Context, *network.Response) ([]core.Page, error),
) *Builder {
	b.source.ops.PageListRequest = request
	b.source.ops.PageListParse = parse
	return b
}

// WithImageURL registers the image URL request and parser; a nil request keeps the default
func (b *Builder) WithImageURL(
	request func(context.Context, core.Page) (*network.Request, error),
	parse func(context.Context, *network.Response) (string, error),
) *Builder {
	b.source.ops.ImageURLRequest = request
	b.source.ops.ImageURLParse = parse
	return b
}

// WithImageRequest replaces the request used to download page images
func (b *Builder) WithImageRequest(fn func(context.Context, core.Page) (*network.Request, error)) *Builder {
	b.source.ops.ImageRequest = fn
	return b
}

// OverrideFetchPopularManga replaces the whole popular listing flow
func (b *Builder) OverrideFetchPopularManga(fn func(context.Context, int) (*core.MangasPage, error)) *Builder {
	b.source.ops.FetchPopularManga = fn
	return b
}

// OverrideFetchLatestUpdates replaces the whole latest updates flow
func (b *Builder) OverrideFetchLatestUpdates(fn func(context.Context, int) (*core.MangasPage, error)) *Builder {
	b.source.ops.FetchLatestUpdates = fn
	return b
}

// OverrideFetchSearchManga replaces the whole search flow
func (b *Builder) OverrideFetchSearchManga(fn func(context.Context, int, string, core.FilterList) (*core.MangasPage, error)) *Builder {
	b.source.ops.FetchSearchManga = fn
	return b
}

// OverrideFetchMangaDetails replaces the whole details flow
func (b *Builder) OverrideFetchMangaDetails(fn func(context.Context, core.Manga) (*core.Manga, error)) *Builder {
	b.source.ops.FetchMangaDetails = fn
	return b
}

// OverrideFetchChapterList replaces the whole chapter list flow
func (b *Builder) OverrideFetchChapterList(fn func(context.Context, core.Manga) ([]core.Chapter, error)) *Builder {
	b.source.ops.FetchChapterList = fn
	return b
}

// OverrideFetchPageList replaces the whole page list flow
func (b *Builder) OverrideFetchPageList(fn func(context.Context, core.Chapter) ([]core.Page, error)) *Builder {
	b.source.ops.FetchPageList = fn
	return b
}

// OverrideFetchImageURL replaces image URL resolution
func (b *Builder) OverrideFetchImageURL(fn func(context.Context, core.Page) (string, error)) *Builder {
	b.source.ops.FetchImageURL = fn
	return b
}

// Build wires the source client and returns the configured source
func (b *Builder) Build() *HTTPSource {
	s := b.source
	s.client = s.Engine.Network.
		With(network.HeadersInterceptor(s.Config.Headers)).
		With(s.Config.Interceptors...)
	return s
}
