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

// Package unsounded scrapes the Unsounded webcomic into two catalog entries:
// the finished chapters, and the chapter in progress exposed page by page.
package unsounded

import (
	"context"
	"fmt"
	"strings"

	"Lantern/pkg/core"
	"Lantern/pkg/engine"
	"Lantern/pkg/engine/network"
	"Lantern/pkg/engine/parser/html"
	"Lantern/pkg/errors"
	"Lantern/pkg/source"
	"Lantern/pkg/source/registry"
)

const (
	ID             = "unsounded"
	DefaultBaseURL = "https://www.casualvillain.com/Unsounded"

	author = "Ashley Cope"
	genre  = "Epic, Fantasy, Adventure"

	archiveURL = "UnsoundedArchive"
	latestURL  = "UnsoundedLatest"

	archiveChapterPrefix = "ArchiveChap"
	latestChapterPrefix  = "LatestChap"

	archiveSuffix = "\n\nAll chapters except the latest, updated only when a chapter ends."
	latestSuffix  = "\n\nLatest chapter of Unsounded, updated with every new page."
)

func init() {
	registry.Register(func(e *engine.Engine) engine.Source {
		return New(e, DefaultBaseURL)
	})
}

// Unsounded is the source of casualvillain.com
type Unsounded struct {
	*source.HTTPSource

	index lazyIndex
}

// New creates the source against baseURL
func New(e *engine.Engine, baseURL string) *Unsounded {
	u := &Unsounded{}
	u.HTTPSource = source.New(e, source.Config{
		ID:      ID,
		Name:    "Unsounded",
		Lang:    "en",
		BaseURL: strings.TrimSuffix(baseURL, "/"),
	}).
		WithPopularManga(u.popularMangaRequest, u.popularMangaParse).
		WithChapterList(u.chapterListRequest, nil).
		OverrideFetchSearchManga(u.fetchSearchManga).
		OverrideFetchMangaDetails(u.fetchMangaDetails).
		OverrideFetchChapterList(u.fetchChapterList).
		OverrideFetchPageList(u.fetchPageList).
		Build()
	return u
}

func (u *Unsounded) popularMangaRequest(ctx context.Context, page int) (*network.Request, error) {
	return u.NewRequest(u.BaseURL() + "/comic+index/").Build(), nil
}

// chapterListRequest reuses the comic index, which carries every chapter
func (u *Unsounded) chapterListRequest(ctx context.Context, manga core.Manga) (*network.Request, error) {
	return u.popularMangaRequest(ctx, 1)
}

// popularMangaParse refreshes the cached index and builds both catalog entries
func (u *Unsounded) popularMangaParse(ctx context.Context, resp *network.Response) (*core.MangasPage, error) {
	idx, err := parseIndexResponse(resp)
	if err != nil {
		return nil, err
	}
	u.index.set(idx)

	about, err := u.fetchAbout(ctx)
	if err != nil {
		return nil, err
	}

	return &core.MangasPage{
		Mangas:      []core.Manga{u.archiveManga(about), u.latestManga(idx, about)},
		HasNextPage: false,
	}, nil
}

func parseIndexResponse(resp *network.Response) (*Index, error) {
	doc, err := resp.HTML()
	if err != nil {
		return nil, err
	}
	idx := ParseIndex(doc)
	if idx.ChapterCount() == 0 {
		return nil, errors.New("comic index lists no chapters").
			WithContext("url", resp.URL).
			AsParser().
			Error()
	}
	return idx, nil
}

// fetchAbout returns the about page text with layout whitespace removed
func (u *Unsounded) fetchAbout(ctx context.Context) (string, error) {
	resp, err := u.Client().Do(ctx, u.NewRequest(u.BaseURL()+"/about.html").Build())
	if err != nil {
		return "", err
	}
	doc, err := resp.HTML()
	if err != nil {
		return "", err
	}
	content, err := doc.Select("#main_content").First()
	if err != nil {
		return "", errors.Track(err).WithContext("url", resp.URL).AsParser().Error()
	}
	return html.CleanParagraphs(content.Text()), nil
}

func (u *Unsounded) archiveManga(about string) core.Manga {
	return core.Manga{
		URL:          archiveURL,
		Title:        "Unsounded (archive)",
		Artist:       author,
		Author:       author,
		Description:  about + archiveSuffix,
		Genre:        genre,
		Status:       core.StatusCompleted,
		ThumbnailURL: u.BaseURL() + "/comic/ch01/pageart/ch01_01.jpg",
		Initialized:  true,
	}
}

func (u *Unsounded) latestManga(idx *Index, about string) core.Manga {
	latest := idx.ChapterCount()
	return core.Manga{
		URL:          latestURL,
		Title:        "Unsounded " + idx.ChapterTitle(latest),
		Artist:       author,
		Author:       author,
		Description:  about + latestSuffix,
		Genre:        genre,
		Status:       core.StatusOngoing,
		ThumbnailURL: imageURL(u.BaseURL(), latest, 0, ""),
		Initialized:  true,
	}
}

// fetchSearchManga returns an empty page; the comic has nothing to search
func (u *Unsounded) fetchSearchManga(ctx context.Context, page int, query string, filters core.FilterList) (*core.MangasPage, error) {
	return &core.MangasPage{Mangas: []core.Manga{}, HasNextPage: false}, nil
}

func (u *Unsounded) fetchMangaDetails(ctx context.Context, manga core.Manga) (*core.Manga, error) {
	catalog, err := u.FetchPopularManga(ctx, 1)
	if err != nil {
		return nil, err
	}
	for _, m := range catalog.Mangas {
		if m.URL == manga.URL {
			found := m
			return &found, nil
		}
	}
	return nil, errors.Track(fmt.Errorf("%w: manga %q", errors.ErrNotFound, manga.URL)).
		AsNotFound().
		Error()
}

// loadIndex prefers an index attached to ctx, then the cached one
func (u *Unsounded) loadIndex(ctx context.Context) (*Index, error) {
	if idx, ok := IndexFrom(ctx); ok {
		return idx, nil
	}
	return u.index.get(ctx, func(ctx context.Context) (*Index, error) {
		req, err := u.chapterListRequest(ctx, core.Manga{})
		if err != nil {
			return nil, err
		}
		u.Logger().Debug("[%s] Loading comic index from %s", ID, req.URL)
		resp, err := u.Client().Do(ctx, req)
		if err != nil {
			return nil, err
		}
		return parseIndexResponse(resp)
	})
}

func (u *Unsounded) fetchChapterList(ctx context.Context, manga core.Manga) ([]core.Chapter, error) {
	if manga.URL != archiveURL && manga.URL != latestURL {
		return []core.Chapter{}, nil
	}

	idx, err := u.loadIndex(ctx)
	if err != nil {
		return nil, err
	}

	now := core.NowMillis()
	if manga.URL == archiveURL {
		return archiveChapters(idx, now), nil
	}
	return latestChapters(idx, now), nil
}

// archiveChapters lists every chapter but the newest, newest first
func archiveChapters(idx *Index, now int64) []core.Chapter {
	chapters := make([]core.Chapter, 0, idx.ChapterCount())
	for n := idx.ChapterCount() - 1; n >= 1; n-- {
		chapters = append(chapters, core.Chapter{
			URL:           fmt.Sprintf("%s%02d", archiveChapterPrefix, n),
			Name:          idx.ChapterTitle(n),
			ChapterNumber: float64(n),
			DateUpload:    now,
		})
	}
	return chapters
}

// latestChapters exposes each page of the newest chapter as a chapter, newest page first
func latestChapters(idx *Index, now int64) []core.Chapter {
	count := idx.PageCount(idx.ChapterCount())
	chapters := make([]core.Chapter, 0, count)
	for p := count; p >= 1; p-- {
		chapters = append(chapters, core.Chapter{
			URL:           latestChapterPrefix,
			Name:          fmt.Sprintf("Page %02d", p),
			ChapterNumber: float64(p),
			DateUpload:    now,
		})
	}
	return chapters
}

func (u *Unsounded) fetchPageList(ctx context.Context, chapter core.Chapter) ([]core.Page, error) {
	isArchive := strings.HasPrefix(chapter.URL, archiveChapterPrefix)
	if !isArchive && !strings.HasPrefix(chapter.URL, latestChapterPrefix) {
		return []core.Page{}, nil
	}

	n := int(chapter.ChapterNumber)
	if n < 1 {
		return nil, errors.Track(errors.ErrInvalidInput).
			WithMessagef("invalid chapter number %v", chapter.ChapterNumber).
			WithContext("chapter_url", chapter.URL).
			Error()
	}

	idx, err := u.loadIndex(ctx)
	if err != nil {
		return nil, err
	}

	if isArchive {
		return archivePages(u.BaseURL(), n, idx.PageCount(n)), nil
	}
	return []core.Page{latestPage(u.BaseURL(), idx.ChapterCount(), n)}, nil
}
