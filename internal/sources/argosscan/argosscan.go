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

// Package argosscan reads the Argos Scan catalog through its token-gated GraphQL API.
package argosscan

import (
	"context"
	"fmt"
	"strings"
	"time"

	"Lantern/pkg/core"
	"Lantern/pkg/engine"
	"Lantern/pkg/engine/network"
	"Lantern/pkg/errors"
	"Lantern/pkg/prefs"
	"Lantern/pkg/source"
	"Lantern/pkg/source/registry"
)

const (
	ID                = "argosscan"
	DefaultBaseURL    = "http://argosscan.com"
	DefaultGraphQLURL = "https://argosscan.com/graphql"

	scanlator    = "Argos Scan"
	requestError = "Erro na requisição. Tente novamente mais tarde."

	tokenPrefKey     = "token"
	tokenPrefTitle   = "Token"
	tokenPrefSummary = "Defina o token de acesso ao conteúdo."
)

func init() {
	registry.Register(func(e *engine.Engine) engine.Source {
		return New(e, Options{})
	})
}

// Options overrides the site endpoints and request rate; zero values select the defaults
type Options struct {
	BaseURL     string
	GraphQLURL  string
	RatePermits int
	RatePeriod  time.Duration
}

func (o Options) withDefaults() Options {
	if o.BaseURL == "" {
		o.BaseURL = DefaultBaseURL
	}
	if o.GraphQLURL == "" {
		o.GraphQLURL = DefaultGraphQLURL
	}
	if o.RatePermits <= 0 {
		o.RatePermits = 1
	}
	if o.RatePeriod <= 0 {
		o.RatePeriod = 2 * time.Second
	}
	return o
}

// ArgosScan is the source of argosscan.com
type ArgosScan struct {
	*source.HTTPSource

	prefs      *prefs.Preferences
	graphQLURL string
}

// Interface compliance check
var _ engine.Configurable = (*ArgosScan)(nil)

// New creates the source; its token is read from the engine preferences
func New(e *engine.Engine, opts Options) *ArgosScan {
	opts = opts.withDefaults()

	a := &ArgosScan{
		prefs:      e.SourcePreferences(ID),
		graphQLURL: opts.GraphQLURL,
	}
	a.HTTPSource = source.New(e, source.Config{
		ID:             ID,
		Name:           "Argos Scan",
		Lang:           "pt-BR",
		BaseURL:        strings.TrimSuffix(opts.BaseURL, "/"),
		SupportsLatest: true,
	}).
		WithInterceptors(
			TokenInterceptor(a.prefs, a.graphQLURL),
			network.RateLimitInterceptor(e.Network.Limiter(), opts.RatePermits, opts.RatePeriod),
		).
		WithPopularManga(a.popularMangaRequest, a.projectListParse).
		WithLatestUpdates(a.latestUpdatesRequest, a.projectListParse).
		WithSearchManga(a.searchMangaRequest, a.projectListParse).
		WithMangaDetails(nil, a.mangaDetailsParse).
		OverrideFetchMangaDetails(a.fetchMangaDetails).
		WithChapterList(a.mangaDetailsAPIRequest, a.chapterListParse).
		WithPageList(a.pageListRequest, a.pageListParse).
		WithImageURL(nil, a.imageURLParse).
		WithImageRequest(a.imageRequest).
		Build()
	return a
}

// SetupPreferenceScreen exposes the access token setting
func (a *ArgosScan) SetupPreferenceScreen(screen *prefs.Screen) {
	screen.Add(&prefs.EditTextPreference{
		PrefKey:       tokenPrefKey,
		PrefTitle:     tokenPrefTitle,
		PrefSummary:   tokenPrefSummary,
		DialogTitle:   tokenPrefTitle,
		DialogMessage: tokenPrefSummary,
		DefaultValue:  "",
		Secret:        true,
		OnChange: func(newValue string) error {
			if strings.ContainsAny(newValue, " \t\r\n") {
				return errors.Track(errors.ErrInvalidInput).
					WithMessage("token must not contain whitespace").
					Error()
			}
			a.Logger().Info("[%s] Access token updated", ID)
			return nil
		},
	})
}

func (a *ArgosScan) graphQLRequest(query network.GraphQLQuery) (*network.Request, error) {
	req, err := network.NewGraphQLRequest(a.graphQLURL, query)
	if err != nil {
		return nil, err
	}
	for k, v := range a.Config.Headers {
		if req.Header(k) == "" {
			req.Headers[k] = v
		}
	}
	return req, nil
}

// decode unwraps a GraphQL envelope; upstream errors carry the site's message
func decode(resp *network.Response, v interface{}) error {
	if err := resp.GraphQL(v); err != nil {
		if errors.Is(err, errors.ErrUpstream) {
			return errors.Track(err).WithMessage(requestError).Error()
		}
		return err
	}
	return nil
}

func (a *ArgosScan) mangaFromProject(p projectDto) core.Manga {
	return core.Manga{
		URL:          "/obras/" + p.ID.String(),
		Title:        p.Name,
		ThumbnailURL: fmt.Sprintf("%s/images/%s/%s", a.BaseURL(), p.ID, p.Cover),
	}
}

// Catalog

func (a *ArgosScan) popularMangaRequest(ctx context.Context, page int) (*network.Request, error) {
	return a.graphQLRequest(popularPayload(page))
}

func (a *ArgosScan) latestUpdatesRequest(ctx context.Context, page int) (*network.Request, error) {
	return a.graphQLRequest(latestPayload(page))
}

func (a *ArgosScan) searchMangaRequest(ctx context.Context, page int, query string, filters core.FilterList) (*network.Request, error) {
	return a.graphQLRequest(searchPayload(page, strings.TrimSpace(query)))
}

func (a *ArgosScan) projectListParse(ctx context.Context, resp *network.Response) (*core.MangasPage, error) {
	var data projectsData
	if err := decode(resp, &data); err != nil {
		return nil, err
	}

	list := data.GetProjects
	mangas := make([]core.Manga, 0, len(list.Projects))
	for _, p := range list.Projects {
		mangas = append(mangas, a.mangaFromProject(p))
	}

	return &core.MangasPage{
		Mangas:      mangas,
		HasNextPage: list.CurrentPage < list.TotalPages,
	}, nil
}

// Details and chapters

// mangaDetailsAPIRequest queries a project; the plain details request stays the browser URL
func (a *ArgosScan) mangaDetailsAPIRequest(ctx context.Context, manga core.Manga) (*network.Request, error) {
	id, ok := projectIDFromURL(manga.URL)
	if !ok {
		return nil, errors.Track(errors.ErrInvalidInput).
			WithMessagef("invalid manga URL %q", manga.URL).
			AsValidation().
			Error()
	}
	return a.graphQLRequest(projectPayload(id))
}

func (a *ArgosScan) fetchMangaDetails(ctx context.Context, manga core.Manga) (*core.Manga, error) {
	req, err := a.mangaDetailsAPIRequest(ctx, manga)
	if err != nil {
		return nil, err
	}
	resp, err := a.Client().Do(ctx, req)
	if err != nil {
		return nil, err
	}
	details, err := a.mangaDetailsParse(ctx, resp)
	if err != nil {
		return nil, err
	}
	details.URL = manga.URL
	details.Initialized = true
	return details, nil
}

func (a *ArgosScan) project(resp *network.Response) (*projectDto, error) {
	var data projectData
	if err := decode(resp, &data); err != nil {
		return nil, err
	}
	if data.Project == nil {
		return nil, errors.Track(fmt.Errorf("%w: project", errors.ErrNotFound)).
			WithContext("url", resp.URL).
			AsNotFound().
			Error()
	}
	return data.Project, nil
}

func (a *ArgosScan) mangaDetailsParse(ctx context.Context, resp *network.Response) (*core.Manga, error) {
	p, err := a.project(resp)
	if err != nil {
		return nil, err
	}

	manga := a.mangaFromProject(*p)
	if p.Description != nil {
		manga.Description = *p.Description
	}
	manga.Author = strings.Join(p.Authors, ", ")
	manga.Status = core.StatusOngoing

	tags := make([]string, 0, len(p.Tags))
	for _, t := range p.Tags {
		tags = append(tags, t.Name)
	}
	manga.Genre = strings.Join(tags, ", ")
	return &manga, nil
}

func (a *ArgosScan) chapterListParse(ctx context.Context, resp *network.Response) ([]core.Chapter, error) {
	p, err := a.project(resp)
	if err != nil {
		return nil, err
	}

	chapters := make([]core.Chapter, 0, len(p.Chapters))
	for _, c := range p.Chapters {
		chapters = append(chapters, chapterFromDto(c))
	}
	return chapters, nil
}

func chapterFromDto(c chapterDto) core.Chapter {
	number := -1.0
	if c.Number != nil {
		number = *c.Number
	}
	return core.Chapter{
		URL:           "/leitor/" + c.ID.String(),
		Name:          c.Title,
		ChapterNumber: number,
		DateUpload:    parseDate(c.CreateAt),
		Scanlator:     scanlator,
	}
}

// Pages

func (a *ArgosScan) pageListRequest(ctx context.Context, chapter core.Chapter) (*network.Request, error) {
	id := chapterIDFromURL(chapter.URL)
	if id == "" {
		return nil, errors.Track(errors.ErrInvalidInput).
			WithMessagef("invalid chapter URL %q", chapter.URL).
			AsValidation().
			Error()
	}
	return a.graphQLRequest(chaptersPayload(id))
}

func (a *ArgosScan) pageListParse(ctx context.Context, resp *network.Response) ([]core.Page, error) {
	var data chaptersData
	if err := decode(resp, &data); err != nil {
		return nil, err
	}
	if len(data.GetChapters.Chapters) == 0 {
		return nil, errors.Track(fmt.Errorf("%w: chapter", errors.ErrNotFound)).
			WithContext("url", resp.URL).
			AsNotFound().
			Error()
	}

	chapter := data.GetChapters.Chapters[0]
	projectID := ""
	if chapter.Project != nil {
		projectID = chapter.Project.ID.String()
	}
	referer := fmt.Sprintf("%s/leitor/%s", a.BaseURL(), chapter.ID)

	pages := make([]core.Page, 0, len(chapter.Images))
	for i, image := range chapter.Images {
		pages = append(pages, core.Page{
			Index:    i,
			URL:      referer,
			ImageURL: fmt.Sprintf("%s/images/%s/%s", a.BaseURL(), projectID, image),
		})
	}
	return pages, nil
}

// imageURLParse is never reached: every page carries its image URL
func (a *ArgosScan) imageURLParse(ctx context.Context, resp *network.Response) (string, error) {
	return "", nil
}

// imageRequest fetches a page image with the reader page as Referer
func (a *ArgosScan) imageRequest(ctx context.Context, page core.Page) (*network.Request, error) {
	if page.ImageURL == "" {
		return nil, errors.Track(errors.ErrInvalidInput).
			WithMessage("page has no image URL").
			WithContext("page", page.Index).
			Error()
	}
	return a.NewRequest(page.ImageURL).
		Header("Referer", page.URL).
		Header("Accept", "image/avif,image/webp,image/*,*/*;q=0.8").
		Build(), nil
}
