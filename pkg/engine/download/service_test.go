package download

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"
	"unicode/utf8"

	"Lantern/pkg/core"
	"Lantern/pkg/engine/logger"
	"Lantern/pkg/engine/network"
	"Lantern/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var pngHeader = []byte{0x89, 'P', 'N', 'G', 0x0D, 0x0A, 0x1A, 0x0A, 0, 0, 0, 0x0D, 'I', 'H', 'D', 'R'}

type fakeSource struct {
	client   *network.Client
	resolved int32
}

func (f *fakeSource) ID() string              { return "fake" }
func (f *fakeSource) Client() *network.Client { return f.client }

func (f *fakeSource) FetchImageURL(ctx context.Context, page core.Page) (string, error) {
	atomic.AddInt32(&f.resolved, 1)
	return page.URL + "/image", nil
}

func (f *fakeSource) ImageRequest(ctx context.Context, page core.Page) (*network.Request, error) {
	return network.NewRequest(page.ImageURL).Header("Referer", page.URL).Build(), nil
}

func newFakeSource() *fakeSource {
	return &fakeSource{client: network.NewClient(logger.Nop(), network.Config{
		Timeout:      5 * time.Second,
		RetryBackoff: time.Millisecond,
	})}
}

func TestDownloadPages(t *testing.T) {
	var hits int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		if r.URL.Path == "/missing.jpg" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write(pngHeader)
	}))
	defer server.Close()

	src := newFakeSource()
	svc := NewService(logger.Nop())
	dir := t.TempDir()

	pages := []core.Page{
		{Index: 0, URL: server.URL + "/read/1", ImageURL: server.URL + "/a.jpg"},
		{Index: 1, URL: server.URL + "/read/2"},
		{Index: 2, URL: server.URL + "/read/3", ImageURL: server.URL + "/c.webp?v=2"},
	}

	paths, err := svc.DownloadPages(core.WithConcurrency(context.Background(), 2), src, pages, dir)
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(dir, "001.jpg"),
		filepath.Join(dir, "002.png"),
		filepath.Join(dir, "003.webp"),
	}, paths)
	assert.Equal(t, int32(1), atomic.LoadInt32(&src.resolved))

	data, err := os.ReadFile(paths[1])
	require.NoError(t, err)
	assert.Equal(t, pngHeader, data)

	// Existing files are kept
	_, err = svc.DownloadPages(context.Background(), src, pages, dir)
	require.NoError(t, err)
	assert.Equal(t, int32(3), atomic.LoadInt32(&hits))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 3)
}

func TestDownloadPages_Errors(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer server.Close()

	svc := NewService(logger.Nop())

	_, err := svc.DownloadPages(context.Background(), newFakeSource(), nil, t.TempDir())
	assert.Error(t, err)

	pages := []core.Page{{Index: 0, ImageURL: server.URL + "/missing.jpg"}}
	paths, err := svc.DownloadPages(context.Background(), newFakeSource(), pages, t.TempDir())
	require.Error(t, err)
	assert.Empty(t, paths)
	assert.Equal(t, errors.CategoryDownload, errors.CategoryOf(err))
}

func TestSanitizeFilename(t *testing.T) {
	assert.Equal(t, "Chapter 01_ A Tale", SanitizeFilename(" Chapter 01: A Tale "))
	assert.Equal(t, "_", SanitizeFilename(""))
	assert.Len(t, SanitizeFilename(string(make([]byte, 300))), 100)

	long := SanitizeFilename(strings.Repeat("a", 99) + "ção")
	assert.True(t, utf8.ValidString(long))
	assert.Equal(t, strings.Repeat("a", 99), long)

	accents := SanitizeFilename(strings.Repeat("é", 60))
	assert.True(t, utf8.ValidString(accents))
	assert.Equal(t, strings.Repeat("é", 50), accents)
}

func TestExtractExtension(t *testing.T) {
	assert.Equal(t, "jpg", extractExtension("https://example.org/comic/ch01_01.jpg"))
	assert.Equal(t, "png", extractExtension("https://example.org/a.png?token=1"))
	assert.Equal(t, "", extractExtension("https://example.org"))
	assert.Equal(t, "", extractExtension("https://example.org/image"))
}
