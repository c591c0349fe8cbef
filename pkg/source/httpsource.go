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
	"net/http"

	"Lantern/pkg/core"
	"Lantern/pkg/engine"
	"Lantern/pkg/engine/logger"
	"Lantern/pkg/engine/network"
	"Lantern/pkg/errors"
)

// Config holds source identity and transport settings
type Config struct {
	ID             string
	Name           string
	Lang           string
	BaseURL        string
	SupportsLatest bool

	// Headers are added to every request that does not set them
	Headers map[string]string
	// Interceptors run after the header interceptor, in order
	Interceptors []network.Interceptor
}

// HTTPSource is the base implementation of engine.Source.
// Every Fetch operation defaults to building a request, executing it through
// the source client and parsing the response; sources register the pieces
// they use through the Builder and may replace whole Fetch operations.
type HTTPSource struct {
	Config Config
	Engine *engine.Engine

	client *network.Client
	ops    Operations
}

// Operations that can be registered or overridden
type Operations struct {
	PopularMangaRequest func(ctx context.Context, page int) (*network.Request, error)
	PopularMangaParse   func(ctx context.Context, resp *network.Response) (*core.MangasPage, error)

	LatestUpdatesRequest func(ctx context.Context, page int) (*network.Request, error)
	LatestUpdatesParse   func(ctx context.Context, resp *network.Response) (*core.MangasPage, error)

	SearchMangaRequest func(ctx context.Context, page int, query string, filters core.FilterList) (*network.Request, error)
	SearchMangaParse   func(ctx context.Context, resp *network.Response) (*core.MangasPage, error)

	MangaDetailsRequest func(ctx context.Context, manga core.Manga) (*network.Request, error)
	MangaDetailsParse   func(ctx context.Context, resp *network.Response) (*core.Manga, error)

	ChapterListRequest func(ctx context.Context, manga core.Manga) (*network.Request, error)
	ChapterListParse   func(ctx context.Context, resp *network.Response) ([]core.Chapter, error)

	PageListRequest func(ctx context.Context, chapter core.Chapter) (*network.Request, error)
	PageListParse   func(ctx context.Context, resp *network.Response) ([]core.Page, error)

	ImageURLRequest func(ctx context.Context, page core.Page) (*network.Request, error)
	ImageURLParse   func(ctx context.Context, resp *network.Response) (string, error)

	ImageRequest func(ctx context.Context, page core.Page) (*network.Request, error)

	FetchPopularManga  func(ctx context.Context, page int) (*core.MangasPage, error)
	FetchLatestUpdates func(ctx context.Context, page int) (*core.MangasPage, error)
	FetchSearchManga   func(ctx context.Context, page int, query string, filters core.FilterList) (*core.MangasPage, error)
	FetchMangaDetails  func(ctx context.Context, manga core.Manga) (*core.Manga, error)
	FetchChapterList   func(ctx context.Context, manga core.Manga) ([]core.Chapter, error)
	FetchPageList      func(ctx context.Context, chapter core.Chapter) ([]core.Page, error)
	FetchImageURL      func(ctx context.Context, page core.Page) (string, error)
}

// Interface compliance check
var _ engine.Source = (*HTTPSource)(nil)

func (s *HTTPSource) ID() string           { return s.Config.ID }
func (s *HTTPSource) Name() string         { return s.Config.Name }
func (s *HTTPSource) Lang() string         { return s.Config.Lang }
func (s *HTTPSource) BaseURL() string      { return s.Config.BaseURL }
func (s *HTTPSource) SupportsLatest() bool { return s.Config.SupportsLatest }

// Client returns the engine client decorated with this source's interceptors
func (s *HTTPSource) Client() *network.Client { return s.client }

// Logger returns the engine logger
func (s *HTTPSource) Logger() logger.Logger { return s.Engine.Logger }

// NewRequest starts a GET request carrying the source headers
func (s *HTTPSource) NewRequest(url string) *network.RequestBuilder {
	return network.NewRequest(url).Headers(s.Config.Headers)
}

// notUsed is the error of every operation a source does not take part in
func (s *HTTPSource) notUsed(operation string) error {
	return errors.Track(errors.ErrNotUsed).
		WithContext("operation", operation).
		AsUnsupported().
		AsSource(s.ID()).
		Error()
}

// Request builders and parsers

func (s *HTTPSource) PopularMangaRequest(ctx context.Context, page int) (*network.Request, error) {
	if s.ops.PopularMangaRequest == nil {
		return nil, s.notUsed("popularMangaRequest")
	}
	return s.ops.PopularMangaRequest(ctx, page)
}

func (s *HTTPSource) PopularMangaParse(ctx context.Context, resp *network.Response) (*core.MangasPage, error) {
	if s.ops.PopularMangaParse == nil {
		return nil, s.notUsed("popularMangaParse")
	}
	return s.ops.PopularMangaParse(ctx, resp)
}

func (s *HTTPSource) LatestUpdatesRequest(ctx context.Context, page int) (*network.Request, error) {
	if s.ops.LatestUpdatesRequest == nil {
		return nil, s.notUsed("latestUpdatesRequest")
	}
	return s.ops.LatestUpdatesRequest(ctx, page)
}

func (s *HTTPSource) LatestUpdatesParse(ctx context.Context, resp *network.Response) (*core.MangasPage, error) {
	if s.ops.LatestUpdatesParse == nil {
		return nil, s.notUsed("latestUpdatesParse")
	}
	return s.ops.LatestUpdatesParse(ctx, resp)
}

func (s *HTTPSource) SearchMangaRequest(ctx context.Context, page int, query string, filters core.FilterList) (*network.Request, error) {
	if s.ops.SearchMangaRequest == nil {
		return nil, s.notUsed("searchMangaRequest")
	}
	return s.ops.SearchMangaRequest(ctx, page, query, filters)
}

func (s *HTTPSource) SearchMangaParse(ctx context.Context, resp *network.Response) (*core.MangasPage, error) {
	if s.ops.SearchMangaParse == nil {
		return nil, s.notUsed("searchMangaParse")
	}
	return s.ops.SearchMangaParse(ctx, resp)
}

// MangaDetailsRequest defaults to GET BaseURL + manga.URL
func (s *HTTPSource) MangaDetailsRequest(ctx context.Context, manga core.Manga) (*network.Request, error) {
	if s.ops.MangaDetailsRequest == nil {
		return s.NewRequest(s.BaseURL() + manga.URL).Build(), nil
	}
	return s.ops.MangaDetailsRequest(ctx, manga)
}

func (s *HTTPSource) MangaDetailsParse(ctx context.Context, resp *network.Response) (*core.Manga, error) {
	if s.ops.MangaDetailsParse == nil {
		return nil, s.notUsed("mangaDetailsParse")
	}
	return s.ops.MangaDetailsParse(ctx, resp)
}

// ChapterListRequest defaults to the manga details request
func (s *HTTPSource) ChapterListRequest(ctx context.Context, manga core.Manga) (*network.Request, error) {
	if s.ops.ChapterListRequest == nil {
		return s.MangaDetailsRequest(ctx, manga)
	}
	return s.ops.ChapterListRequest(ctx, manga)
}

func (s *HTTPSource) ChapterListParse(ctx context.Context, resp *network.Response) ([]core.Chapter, error) {
	if s.ops.ChapterListParse == nil {
		return nil, s.notUsed("chapterListParse")
	}
	return s.ops.ChapterListParse(ctx, resp)
}

// PageListRequest defaults to GET BaseURL + chapter.URL
func (s *HTTPSource) PageListRequest(ctx context.Context, chapter core.Chapter) (*network.Request, error) {
	if s.ops.PageListRequest == nil {
		return s.NewRequest(s.BaseURL() + chapter.URL).Build(), nil
	}
	return s.ops.PageListRequest(ctx, chapter)
}

func (s *HTTPSource) PageListParse(ctx context.Context, resp *network.Response) ([]core.Page, error) {
	if s.ops.PageListParse == nil {
		return nil, s.notUsed("pageListParse")
	}
	return s.ops.PageListParse(ctx, resp)
}

// ImageURLRequest defaults to GET page.URL
func (s *HTTPSource) ImageURLRequest(ctx context.Context, page core.Page) (*network.Request, error) {
	if s.ops.ImageURLRequest == nil {
		return s.NewRequest(page.URL).Build(), nil
	}
	return s.ops.ImageURLRequest(ctx, page)
}

func (s *HTTPSource) ImageURLParse(ctx context.Context, resp *network.Response) (string, error) {
	if s.ops.ImageURLParse == nil {
		return "", s.notUsed("imageUrlParse")
	}
	return s.ops.ImageURLParse(ctx, resp)
}

// ImageRequest defaults to GET page.ImageURL with the source headers
func (s *HTTPSource) ImageRequest(ctx context.Context, page core.Page) (*network.Request, error) {
	if s.ops.ImageRequest != nil {
		return s.ops.ImageRequest(ctx, page)
	}
	if page.ImageURL == "" {
		return nil, errors.Track(errors.ErrInvalidInput).
			WithMessage("page has no image URL").
			WithContext("page", page.Index).
			AsSource(s.ID()).Error()
	}
	return s.NewRequest(page.ImageURL).Header("Accept", "image/avif,image/webp,image/*,*/*;q=0.8").Build(), nil
}

// Fetch operations

func (s *HTTPSource) FetchPopularManga(ctx context.Context, page int) (*core.MangasPage, error) {
	if s.ops.FetchPopularManga != nil {
		mangas, err := s.ops.FetchPopularManga(ctx, page)
		return mangas, s.wrapErr(err)
	}
	return fetch(ctx, s, func() (*network.Request, error) {
		return s.PopularMangaRequest(ctx, page)
	}, s.PopularMangaParse)
}

func (s *HTTPSource) FetchLatestUpdates(ctx context.Context, page int) (*core.MangasPage, error) {
	if s.ops.FetchLatestUpdates != nil {
		mangas, err := s.ops.FetchLatestUpdates(ctx, page)
		return mangas, s.wrapErr(err)
	}
	return fetch(ctx, s, func() (*network.Request, error) {
		return s.LatestUpdatesRequest(ctx, page)
	}, s.LatestUpdatesParse)
}

func (s *HTTPSource) FetchSearchManga(ctx context.Context, page int, query string, filters core.FilterList) (*core.MangasPage, error) {
	if s.ops.FetchSearchManga != nil {
		mangas, err := s.ops.FetchSearchManga(ctx, page, query, filters)
		return mangas, s.wrapErr(err)
	}
	return fetch(ctx, s, func() (*network.Request, error) {
		return s.SearchMangaRequest(ctx, page, query, filters)
	}, s.SearchMangaParse)
}

func (s *HTTPSource) FetchMangaDetails(ctx context.Context, manga core.Manga) (*core.Manga, error) {
	if s.ops.FetchMangaDetails != nil {
		details, err := s.ops.FetchMangaDetails(ctx, manga)
		return details, s.wrapErr(err)
	}
	details, err := fetch(ctx, s, func() (*network.Request, error) {
		return s.MangaDetailsRequest(ctx, manga)
	}, s.MangaDetailsParse)
	if err != nil {
		return nil, err
	}
	// Parsers may leave the identifier to the caller
	if details.URL == "" {
		details.URL = manga.URL
	}
	details.Initialized = true
	return details, nil
}

func (s *HTTPSource) FetchChapterList(ctx context.Context, manga core.Manga) ([]core.Chapter, error) {
	if s.ops.FetchChapterList != nil {
		chapters, err := s.ops.FetchChapterList(ctx, manga)
		return chapters, s.wrapErr(err)
	}
	return fetch(ctx, s, func() (*network.Request, error) {
		return s.ChapterListRequest(ctx, manga)
	}, s.ChapterListParse)
}

func (s *HTTPSource) FetchPageList(ctx context.Context, chapter core.Chapter) ([]core.Page, error) {
	if s.ops.FetchPageList != nil {
		pages, err := s.ops.FetchPageList(ctx, chapter)
		return pages, s.wrapErr(err)
	}
	return fetch(ctx, s, func() (*network.Request, error) {
		return s.PageListRequest(ctx, chapter)
	}, s.PageListParse)
}

// FetchImageURL returns page.ImageURL when set, otherwise resolves it from the page URL
func (s *HTTPSource) FetchImageURL(ctx context.Context, page core.Page) (string, error) {
	if s.ops.FetchImageURL != nil {
		imageURL, err := s.ops.FetchImageURL(ctx, page)
		return imageURL, s.wrapErr(err)
	}
	if page.ImageURL != "" {
		return page.ImageURL, nil
	}
	return fetch(ctx, s, func() (*network.Request, error) {
		return s.ImageURLRequest(ctx, page)
	}, s.ImageURLParse)
}

// fetch builds a request, executes it with the source client and parses the response
func fetch[T any](ctx context.Context, s *HTTPSource, build func() (*network.Request, error), parse func(context.Context, *network.Response) (T, error)) (T, error) {
	var zero T

	req, err := build()
	if err != nil {
		return zero, s.wrapErr(err)
	}
	if req.Method == "" {
		req.Method = http.MethodGet
	}

	resp, err := s.client.Do(ctx, req)
	if err != nil {
		return zero, s.wrapErr(err)
	}

	result, err := parse(ctx, resp)
	if err != nil {
		return zero, s.wrapErr(err)
	}
	return result, nil
}

func (s *HTTPSource) wrapErr(err error) error {
	if err == nil {
		return nil
	}
	return errors.Track(err).AsSource(s.ID()).Error()
}
