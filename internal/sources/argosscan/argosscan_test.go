package argosscan

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"Lantern/pkg/config"
	"Lantern/pkg/core"
	"Lantern/pkg/engine"
	"Lantern/pkg/engine/logger"
	"Lantern/pkg/engine/network"
	"Lantern/pkg/errors"
	"Lantern/pkg/prefs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAPI struct {
	server    *httptest.Server
	gqlHits   int32
	imageHits int32
	// responses maps an operation name to the raw JSON body returned for it
	responses map[string]string
	lastQuery network.GraphQLQuery
	token     string

	mu       sync.Mutex
	referers []string
}

func newFakeAPI(t *testing.T, responses map[string]string) *fakeAPI {
	api := &fakeAPI{responses: responses}
	api.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.URL.Path == "/graphql":
			atomic.AddInt32(&api.gqlHits, 1)
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "application/json; charset=utf-8", r.Header.Get("Content-Type"))

			body, err := io.ReadAll(r.Body)
			require.NoError(t, err)
			assert.Equal(t, int64(len(body)), r.ContentLength)
			require.NoError(t, json.Unmarshal(body, &api.lastQuery))

			api.token = r.Header.Get("Token")
			w.Header().Set("Content-Type", "application/json")
			_, _ = io.WriteString(w, api.responses[api.lastQuery.OperationName])
		case strings.HasPrefix(r.URL.Path, "/images/"):
			atomic.AddInt32(&api.imageHits, 1)
			api.mu.Lock()
			api.referers = append(api.referers, r.Header.Get("Referer"))
			api.mu.Unlock()
			w.Header().Set("Content-Type", "image/jpeg")
			_, _ = w.Write([]byte{0xFF, 0xD8, 0xFF, 0xE0, 0x00, 0x10, 'J', 'F', 'I', 'F'})
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(api.server.Close)
	return api
}

func newTestSource(api *fakeAPI, token string) (*ArgosScan, *engine.Engine) {
	cfg := config.Default()
	cfg.Timeout = 5 * time.Second
	cfg.MaxRetries = 0
	cfg.Concurrency = 1
	e := engine.NewWithServices(cfg, logger.Nop(), prefs.NewMemoryStore())

	if token != "" {
		_ = e.SourcePreferences(ID).SetString("token", token)
	}

	a := New(e, Options{
		BaseURL:    api.server.URL,
		GraphQLURL: api.server.URL + "/graphql",
		RatePeriod: time.Millisecond,
	})
	return a, e
}

const projectsResponse = `{"data":{"getProjects":{
  "projects":[
    {"id":12,"name":"Solo Leveling","cover":"capa.jpg"},
    {"id":"40","name":"Omniscient Reader","cover":"cover.png"}
  ],
  "count":25,"currentPage":2,"totalPages":3}}}`

const projectResponse = `{"data":{"project":{
  "id":12,"name":"Solo Leveling","cover":"capa.jpg","description":null,
  "authors":["Chugong","Dubu"],
  "tags":[{"name":"Ação"},{"name":"Fantasia"}],
  "chapters":[
    {"id":"c2b1","title":"Capítulo 2","number":2,"createAt":"2023-01-15"},
    {"id":"c2b0","title":"Prólogo","number":null,"createAt":"ontem"}
  ]}}}`

const chaptersResponse = `{"data":{"getChapters":{"chapters":[
  {"id":"c2b1","images":["01.jpg","02.jpg"],"project":{"id":12}}
]}}}`

func TestMissingTokenFailsBeforeRequest(t *testing.T) {
	api := newFakeAPI(t, map[string]string{"getProjects": projectsResponse})
	a, _ := newTestSource(api, "")

	_, err := a.FetchPopularManga(context.Background(), 1)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrMissingConfig))
	assert.Equal(t, tokenNotFound, err.Error())
	assert.Equal(t, errors.CategoryConfig, errors.CategoryOf(err))

	_, err = a.FetchChapterList(context.Background(), core.Manga{URL: "/obras/12"})
	assert.True(t, errors.Is(err, errors.ErrMissingConfig))

	assert.Equal(t, int32(0), atomic.LoadInt32(&api.gqlHits))
}

func TestFetchPopularManga(t *testing.T) {
	api := newFakeAPI(t, map[string]string{"getProjects": projectsResponse})
	a, _ := newTestSource(api, "secret")

	page, err := a.FetchPopularManga(context.Background(), 2)
	require.NoError(t, err)

	assert.Equal(t, "secret", api.token)
	assert.Equal(t, "getProjects", api.lastQuery.OperationName)
	pagination := api.lastQuery.Variables["pagination"].(map[string]interface{})
	assert.Equal(t, float64(2), pagination["page"])
	assert.Equal(t, float64(10), pagination["limit"])

	assert.True(t, page.HasNextPage)
	require.Len(t, page.Mangas, 2)
	assert.Equal(t, core.Manga{
		URL:          "/obras/12",
		Title:        "Solo Leveling",
		ThumbnailURL: api.server.URL + "/images/12/capa.jpg",
	}, page.Mangas[0])
	assert.Equal(t, "/obras/40", page.Mangas[1].URL)
}

func TestLastPageHasNoNext(t *testing.T) {
	api := newFakeAPI(t, map[string]string{
		"getProjects": `{"data":{"getProjects":{"projects":[],"count":0,"currentPage":3,"totalPages":3}}}`,
	})
	a, _ := newTestSource(api, "secret")

	page, err := a.FetchLatestUpdates(context.Background(), 3)
	require.NoError(t, err)
	assert.False(t, page.HasNextPage)
	assert.Empty(t, page.Mangas)

	orders := api.lastQuery.Variables["orders"].(map[string]interface{})["orders"].([]interface{})
	assert.Equal(t, "Project.updateAt", orders[0].(map[string]interface{})["field"])
}

func TestFetchSearchManga(t *testing.T) {
	api := newFakeAPI(t, map[string]string{"getProjects": projectsResponse})
	a, _ := newTestSource(api, "secret")

	_, err := a.FetchSearchManga(context.Background(), 1, "  solo ", nil)
	require.NoError(t, err)

	filters := api.lastQuery.Variables["filters"].(map[string]interface{})["filters"].([]interface{})
	filter := filters[0].(map[string]interface{})
	assert.Equal(t, "Project.name", filter["field"])
	assert.Equal(t, []interface{}{"solo"}, filter["values"])
}

func TestGraphQLErrorsFailRegardlessOfData(t *testing.T) {
	api := newFakeAPI(t, map[string]string{
		"getProjects": `{"data":{"getProjects":{"projects":[{"id":1,"name":"x","cover":"y"}],"currentPage":1,"totalPages":1}},
		  "errors":[{"message":"token expired"}]}`,
	})
	a, _ := newTestSource(api, "secret")

	_, err := a.FetchPopularManga(context.Background(), 1)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrUpstream))
	assert.Equal(t, requestError, err.Error())
	assert.Equal(t, errors.CategoryUpstream, errors.CategoryOf(err))
}

func TestFetchMangaDetails(t *testing.T) {
	api := newFakeAPI(t, map[string]string{"project": projectResponse})
	a, _ := newTestSource(api, "secret")

	manga, err := a.FetchMangaDetails(context.Background(), core.Manga{URL: "/obras/12"})
	require.NoError(t, err)

	assert.Equal(t, float64(12), api.lastQuery.Variables["id"])
	assert.Equal(t, "/obras/12", manga.URL)
	assert.Equal(t, "Solo Leveling", manga.Title)
	assert.Equal(t, "", manga.Description)
	assert.Equal(t, "Chugong, Dubu", manga.Author)
	assert.Equal(t, "Ação, Fantasia", manga.Genre)
	assert.Equal(t, core.StatusOngoing, manga.Status)
	assert.True(t, manga.Initialized)

	// The browser URL stays the site page
	req, err := a.MangaDetailsRequest(context.Background(), core.Manga{URL: "/obras/12"})
	require.NoError(t, err)
	assert.Equal(t, api.server.URL+"/obras/12", req.URL)
}

func TestFetchMangaDetails_InvalidURL(t *testing.T) {
	api := newFakeAPI(t, nil)
	a, _ := newTestSource(api, "secret")

	_, err := a.FetchMangaDetails(context.Background(), core.Manga{URL: "/obras/abc"})
	assert.True(t, errors.Is(err, errors.ErrInvalidInput))
	assert.Equal(t, int32(0), atomic.LoadInt32(&api.gqlHits))
}

func TestFetchChapterList(t *testing.T) {
	api := newFakeAPI(t, map[string]string{"project": projectResponse})
	a, _ := newTestSource(api, "secret")

	chapters, err := a.FetchChapterList(context.Background(), core.Manga{URL: "/obras/12"})
	require.NoError(t, err)
	require.Len(t, chapters, 2)

	assert.Equal(t, core.Chapter{
		URL:           "/leitor/c2b1",
		Name:          "Capítulo 2",
		ChapterNumber: 2,
		DateUpload:    time.Date(2023, 1, 15, 0, 0, 0, 0, time.Local).UnixMilli(),
		Scanlator:     "Argos Scan",
	}, chapters[0])

	assert.Equal(t, -1.0, chapters[1].ChapterNumber)
	assert.Equal(t, int64(0), chapters[1].DateUpload)
}

func TestFetchPageListAndDownload(t *testing.T) {
	api := newFakeAPI(t, map[string]string{"getChapters": chaptersResponse})
	a, e := newTestSource(api, "secret")
	ctx := context.Background()

	pages, err := a.FetchPageList(ctx, core.Chapter{URL: "/leitor/c2b1"})
	require.NoError(t, err)

	filters := api.lastQuery.Variables["filters"].(map[string]interface{})
	assert.Equal(t, []interface{}{"c2b1"}, filters["ids"])

	referer := api.server.URL + "/leitor/c2b1"
	require.Len(t, pages, 2)
	assert.Equal(t, core.Page{Index: 0, URL: referer, ImageURL: api.server.URL + "/images/12/01.jpg"}, pages[0])
	assert.Equal(t, core.Page{Index: 1, URL: referer, ImageURL: api.server.URL + "/images/12/02.jpg"}, pages[1])

	req, err := a.ImageRequest(ctx, pages[1])
	require.NoError(t, err)
	assert.Equal(t, referer, req.Header("Referer"))

	imageURL, err := a.FetchImageURL(ctx, pages[0])
	require.NoError(t, err)
	assert.Equal(t, pages[0].ImageURL, imageURL)

	dir := t.TempDir()
	paths, err := e.Download.DownloadPages(ctx, a, pages, dir)
	require.NoError(t, err)
	require.Len(t, paths, 2)
	for _, p := range paths {
		_, statErr := os.Stat(p)
		assert.NoError(t, statErr)
	}

	assert.Equal(t, int32(2), atomic.LoadInt32(&api.imageHits))
	assert.Equal(t, []string{referer, referer}, api.referers)
}

func TestPageList_NoChapter(t *testing.T) {
	api := newFakeAPI(t, map[string]string{"getChapters": `{"data":{"getChapters":{"chapters":[]}}}`})
	a, _ := newTestSource(api, "secret")

	_, err := a.FetchPageList(context.Background(), core.Chapter{URL: "/leitor/gone"})
	assert.True(t, errors.Is(err, errors.ErrNotFound))
}

func TestTokenInterceptorOnlyTargetsEndpoint(t *testing.T) {
	api := newFakeAPI(t, nil)
	a, _ := newTestSource(api, "")

	resp, err := a.Client().Do(context.Background(), network.NewRequest(api.server.URL+"/images/12/01.jpg").Build())
	require.NoError(t, err)
	assert.True(t, resp.IsSuccess())
	assert.Equal(t, int32(1), atomic.LoadInt32(&api.imageHits))
}

func TestPreferenceScreen(t *testing.T) {
	api := newFakeAPI(t, nil)
	a, e := newTestSource(api, "")

	screen := e.PreferenceScreen(a)
	require.NotNil(t, screen)
	require.Len(t, screen.Items(), 1)

	item := screen.Items()[0]
	assert.Equal(t, "token", item.Key())
	assert.Equal(t, "Token", item.Title())
	assert.Equal(t, "Defina o token de acesso ao conteúdo.", item.Summary())
	assert.Equal(t, "", screen.Value(item))

	require.NoError(t, screen.Apply("token", "abc123"))
	assert.Equal(t, "abc123", e.SourcePreferences(ID).GetString("token", ""))

	err := screen.Apply("token", "abc 123")
	assert.True(t, errors.Is(err, errors.ErrInvalidInput))
	assert.Equal(t, "abc123", screen.Value(item))

	require.NoError(t, screen.Apply("token", "argos-token-9f2c"))
	assert.Equal(t, "************9f2c", screen.Display(item))
}

func TestParseDate(t *testing.T) {
	assert.Equal(t, time.Date(2023, 1, 15, 0, 0, 0, 0, time.Local).UnixMilli(), parseDate("2023-01-15"))
	assert.Equal(t, time.Date(2023, 1, 15, 0, 0, 0, 0, time.Local).UnixMilli(), parseDate("2023-01-15T18:42:00.000Z"))
	assert.Equal(t, int64(0), parseDate("not-a-date"))
	assert.Equal(t, int64(0), parseDate(""))
}

func TestFlexID(t *testing.T) {
	var ids []flexID
	require.NoError(t, json.Unmarshal([]byte(`[12,"c2b1",null]`), &ids))
	assert.Equal(t, []flexID{"12", "c2b1", ""}, ids)
}
