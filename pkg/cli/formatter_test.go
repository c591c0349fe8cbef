package cli

import (
	"bytes"
	"testing"
	"time"

	"Lantern/pkg/core"
	"Lantern/pkg/errors"
	"Lantern/pkg/prefs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestFormatter() (*Formatter, *bytes.Buffer) {
	var buf bytes.Buffer
	f := NewFormatter()
	f.Writer = &buf
	f.SetColor(false)
	return f, &buf
}

func TestFormatChapterNumber(t *testing.T) {
	f, _ := newTestFormatter()

	assert.Equal(t, "12", f.FormatChapterNumber(12))
	assert.Equal(t, "10.5", f.FormatChapterNumber(10.5))
	assert.Equal(t, "-", f.FormatChapterNumber(-1))
}

func TestFormatDate(t *testing.T) {
	f, _ := newTestFormatter()

	noon := time.Date(2023, 7, 14, 12, 0, 0, 0, time.Local).UnixMilli()
	assert.Equal(t, "2023-07-14", f.FormatDate(noon))
	assert.Equal(t, "Unknown", f.FormatDate(0))
}

func TestFormatLanguage(t *testing.T) {
	f, _ := newTestFormatter()

	assert.Equal(t, "Portuguese (Brazil) (pt-BR)", f.FormatLanguage("pt-BR"))
	assert.Equal(t, "xx", f.FormatLanguage("xx"))
}

func TestPrintMangasPage(t *testing.T) {
	f, buf := newTestFormatter()
	f.OutputType = OutputTypeText

	f.PrintMangasPage("Popular", &core.MangasPage{
		Mangas:      []core.Manga{{URL: "/obras/7", Title: "Seven Seas"}},
		HasNextPage: true,
	})

	out := buf.String()
	assert.Contains(t, out, "Popular")
	assert.Contains(t, out, "Seven Seas")
	assert.Contains(t, out, "/obras/7")
	assert.Contains(t, out, "--page")
}

func TestPrintMangasPage_Empty(t *testing.T) {
	f, buf := newTestFormatter()

	f.PrintMangasPage("Search", &core.MangasPage{})
	assert.Contains(t, buf.String(), "No results.")
}

func TestPrintChapterList(t *testing.T) {
	f, buf := newTestFormatter()

	f.PrintChapterList([]core.Chapter{
		{URL: "/leitor/abc", Name: "Capítulo 3", ChapterNumber: 3, Scanlator: "Argos Scan"},
		{URL: "/leitor/def", Name: "Extra", ChapterNumber: -1},
	})

	out := buf.String()
	assert.Contains(t, out, "Chapters (2)")
	assert.Contains(t, out, "Capítulo 3")
	assert.Contains(t, out, "Argos Scan")
	assert.Contains(t, out, "Unknown")
}

func TestPrintPreferences(t *testing.T) {
	f, buf := newTestFormatter()

	p := prefs.ForSource(prefs.NewMemoryStore(), "demo")
	screen := prefs.NewScreen(p)
	screen.Add(&prefs.EditTextPreference{PrefKey: "token", PrefTitle: "Token", PrefSummary: "Access token"})

	f.PrintPreferences("Demo", screen)
	assert.Contains(t, buf.String(), "(not set)")

	buf.Reset()
	secret := prefs.NewScreen(p)
	secret.Add(&prefs.EditTextPreference{PrefKey: "token", PrefTitle: "Token", Secret: true})
	require.NoError(t, p.SetString("token", "very-secret-value"))
	f.PrintPreferences("Demo", secret)
	assert.Contains(t, buf.String(), "*************alue")
	assert.NotContains(t, buf.String(), "very-secret-value")

	buf.Reset()
	f.PrintPreferences("Demo", nil)
	assert.Contains(t, buf.String(), "no settings")
}

func TestPrintDownloadSummary(t *testing.T) {
	f, buf := newTestFormatter()

	f.PrintDownloadSummary("/tmp/out", 3, 3)
	assert.Contains(t, buf.String(), "Downloaded 3 pages to /tmp/out")

	buf.Reset()
	f.PrintDownloadSummary("/tmp/out", 1, 3)
	assert.Contains(t, buf.String(), "Downloaded 1 of 3 pages")
}

func TestHandleError(t *testing.T) {
	f, buf := newTestFormatter()

	assert.False(t, f.HandleError(nil, false))
	assert.True(t, f.HandleError(errors.Track(errors.ErrNotFound).WithMessage("no such chapter").Error(), false))
	assert.Contains(t, buf.String(), "no such chapter")
}
