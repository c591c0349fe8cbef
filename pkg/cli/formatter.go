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

package cli

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"Lantern/pkg/core"
	"Lantern/pkg/engine"
	"Lantern/pkg/errors"
	"Lantern/pkg/prefs"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

const (
	OutputTypeText  = "text"
	OutputTypeTable = "table"
)

var languageNames = map[string]string{
	"en":    "English",
	"pt-BR": "Portuguese (Brazil)",
	"pt":    "Portuguese",
	"es":    "Spanish",
	"fr":    "French",
	"ja":    "Japanese",
}

// Formatter handles all CLI output formatting
type Formatter struct {
	// Writer is where the formatted output will be written
	Writer io.Writer

	// DisableColor disables colorized output
	DisableColor bool

	// OutputType controls the type of output (text, table)
	OutputType string

	HeaderStyle      *color.Color
	TitleStyle       *color.Color
	SuccessStyle     *color.Color
	ErrorStyle       *color.Color
	WarningStyle     *color.Color
	InfoStyle        *color.Color
	HighlightStyle   *color.Color
	SecondaryStyle   *color.Color
	SectionStyle     *color.Color
	DetailLabelStyle *color.Color
	DetailValueStyle *color.Color
	IDStyle          *color.Color
	PathStyle        *color.Color
	DateStyle        *color.Color
	NumberStyle      *color.Color
}

// NewFormatter creates a new CLI formatter with default settings
func NewFormatter() *Formatter {
	f := &Formatter{
		Writer:     os.Stdout,
		OutputType: OutputTypeTable,
	}
	f.initStyles()
	return f
}

// SetColor enables or disables colorized output
func (f *Formatter) SetColor(enabled bool) {
	f.DisableColor = !enabled
	f.initStyles()
}

func (f *Formatter) initStyles() {
	if f.DisableColor {
		color.NoColor = true
	}

	f.HeaderStyle = color.New(color.Bold, color.FgCyan)
	f.TitleStyle = color.New(color.Bold, color.FgWhite)
	f.SuccessStyle = color.New(color.FgGreen)
	f.ErrorStyle = color.New(color.FgRed)
	f.WarningStyle = color.New(color.FgYellow)
	f.InfoStyle = color.New(color.FgBlue)
	f.HighlightStyle = color.New(color.FgMagenta)
	f.SecondaryStyle = color.New(color.FgHiBlack)
	f.SectionStyle = color.New(color.Underline, color.FgHiCyan)
	f.DetailLabelStyle = color.New(color.FgHiBlue)
	f.DetailValueStyle = color.New(color.FgWhite)
	f.IDStyle = color.New(color.FgHiMagenta)
	f.PathStyle = color.New(color.FgHiGreen)
	f.DateStyle = color.New(color.FgHiBlue)
	f.NumberStyle = color.New(color.FgHiYellow)
}

// PrintHeader prints a header section
func (f *Formatter) PrintHeader(text string) {
	_, _ = f.HeaderStyle.Fprintln(f.Writer, text)
	f.PrintDivider()
}

// PrintTitle prints a title
func (f *Formatter) PrintTitle(text string) {
	_, _ = f.TitleStyle.Fprintln(f.Writer, text)
}

// PrintSuccess prints a success message
func (f *Formatter) PrintSuccess(text string) {
	_, _ = f.SuccessStyle.Fprintln(f.Writer, text)
}

// PrintError prints an error message
func (f *Formatter) PrintError(text string) {
	_, _ = f.ErrorStyle.Fprintln(f.Writer, text)
}

// PrintWarning prints a warning message
func (f *Formatter) PrintWarning(text string) {
	_, _ = f.WarningStyle.Fprintln(f.Writer, text)
}

// PrintInfo prints an informational message
func (f *Formatter) PrintInfo(text string) {
	_, _ = f.InfoStyle.Fprintln(f.Writer, text)
}

// PrintDetail prints a labeled detail
func (f *Formatter) PrintDetail(label, value string) {
	_, _ = f.DetailLabelStyle.Fprintf(f.Writer, "%s: ", label)
	_, _ = f.DetailValueStyle.Fprintln(f.Writer, value)
}

// PrintDivider prints a horizontal divider
func (f *Formatter) PrintDivider() {
	_, _ = fmt.Fprintln(f.Writer, strings.Repeat("-", 80))
}

// PrintSection prints a section header
func (f *Formatter) PrintSection(text string) {
	_, _ = fmt.Fprintln(f.Writer)
	_, _ = f.SectionStyle.Fprintln(f.Writer, text)
	_, _ = fmt.Fprintln(f.Writer)
}

// FormatID formats an ID string
func (f *Formatter) FormatID(id string) string {
	return f.IDStyle.Sprint(id)
}

// FormatPath formats a file path
func (f *Formatter) FormatPath(path string) string {
	return f.PathStyle.Sprint(path)
}

// FormatDate formats an epoch-millisecond timestamp; 0 is shown as unknown
func (f *Formatter) FormatDate(millis int64) string {
	if millis <= 0 {
		return f.SecondaryStyle.Sprint("Unknown")
	}
	return f.DateStyle.Sprint(time.UnixMilli(millis).Format("2006-01-02"))
}

// FormatNumber formats a number with styling
func (f *Formatter) FormatNumber(num interface{}) string {
	return f.NumberStyle.Sprintf("%v", num)
}

// FormatChapterNumber prints fractional chapters without trailing zeros
func (f *Formatter) FormatChapterNumber(n float64) string {
	if n < 0 {
		return f.SecondaryStyle.Sprint("-")
	}
	return f.FormatNumber(strconv.FormatFloat(n, 'f', -1, 64))
}

// FormatLanguage formats a language code with its name
func (f *Formatter) FormatLanguage(code string) string {
	if name, ok := languageNames[code]; ok {
		return fmt.Sprintf("%s (%s)", f.DetailValueStyle.Sprint(name), f.SecondaryStyle.Sprint(code))
	}
	return f.DetailValueStyle.Sprint(code)
}

// PrintTable prints data in a table format
func (f *Formatter) PrintTable(headers []string, data [][]string) {
	table := tablewriter.NewTable(f.Writer)
	table.Configure(func(tableConfig *tablewriter.Config) {
		tableConfig.Header.Alignment.Global = tw.AlignLeft
		tableConfig.Row.Alignment.Global = tw.AlignLeft
		tableConfig.Header.Padding.Global = tw.Padding{Left: " ", Right: " "}
		tableConfig.Row.Padding.Global = tw.Padding{Left: " ", Right: " "}
	})

	table.Header(headers)
	if err := table.Bulk(data); err != nil {
		return
	}
	_ = table.Render()
}

// HandleError prints err and reports whether there was one to print
func (f *Formatter) HandleError(err error, debug bool) bool {
	if err == nil {
		return false
	}
	if debug {
		f.PrintError(errors.FormatCLIDebug(err))
	} else {
		f.PrintError(errors.FormatCLI(err))
	}
	return true
}

// PrintSourceList prints the registered sources
func (f *Formatter) PrintSourceList(sources []engine.Source) {
	f.PrintHeader("Available Sources")

	if len(sources) == 0 {
		f.PrintWarning("No sources available.")
		return
	}

	if f.OutputType == OutputTypeTable {
		data := make([][]string, len(sources))
		for i, s := range sources {
			_, configurable := s.(engine.Configurable)
			data[i] = []string{s.ID(), s.Name(), s.Lang(), yesNo(s.SupportsLatest()), yesNo(configurable)}
		}
		f.PrintTable([]string{"ID", "NAME", "LANG", "LATEST", "SETTINGS"}, data)
		return
	}

	for _, s := range sources {
		_, _ = f.TitleStyle.Fprintf(f.Writer, "%s ", s.ID())
		_, _ = f.SecondaryStyle.Fprintf(f.Writer, "(%s)\n", s.Name())
		_, _ = fmt.Fprintf(f.Writer, "  %s  %s\n\n", f.FormatLanguage(s.Lang()), s.BaseURL())
	}
}

// PrintMangasPage prints one page of a catalog listing
func (f *Formatter) PrintMangasPage(title string, page *core.MangasPage) {
	f.PrintHeader(title)

	if page == nil || len(page.Mangas) == 0 {
		f.PrintWarning("No results.")
		return
	}

	if f.OutputType == OutputTypeTable {
		data := make([][]string, len(page.Mangas))
		for i, m := range page.Mangas {
			data[i] = []string{m.URL, m.Title, m.Status.String()}
		}
		f.PrintTable([]string{"URL", "TITLE", "STATUS"}, data)
	} else {
		for _, m := range page.Mangas {
			_, _ = f.TitleStyle.Fprintln(f.Writer, m.Title)
			_, _ = fmt.Fprintf(f.Writer, "  %s\n", f.FormatID(m.URL))
		}
	}

	if page.HasNextPage {
		f.PrintInfo("More results available, use --page to continue")
	}
}

// PrintMangaDetails prints the details of a manga
func (f *Formatter) PrintMangaDetails(m *core.Manga) {
	f.PrintHeader(m.Title)

	f.PrintDetail("URL", f.FormatID(m.URL))
	if m.Author != "" {
		f.PrintDetail("Author", m.Author)
	}
	if m.Artist != "" && m.Artist != m.Author {
		f.PrintDetail("Artist", m.Artist)
	}
	f.PrintDetail("Status", m.Status.String())
	if m.Genre != "" {
		f.PrintDetail("Genre", m.Genre)
	}
	if m.ThumbnailURL != "" {
		f.PrintDetail("Cover", m.ThumbnailURL)
	}
	if m.Description != "" {
		f.PrintSection("Description")
		_, _ = fmt.Fprintln(f.Writer, m.Description)
	}
}

// PrintChapterList prints chapters in the order the source returned them
func (f *Formatter) PrintChapterList(chapters []core.Chapter) {
	f.PrintHeader(fmt.Sprintf("Chapters (%d)", len(chapters)))

	if len(chapters) == 0 {
		f.PrintWarning("No chapters found.")
		return
	}

	data := make([][]string, len(chapters))
	for i, c := range chapters {
		data[i] = []string{
			f.FormatChapterNumber(c.ChapterNumber),
			c.Name,
			c.URL,
			f.FormatDate(c.DateUpload),
			c.Scanlator,
		}
	}
	f.PrintTable([]string{"#", "NAME", "URL", "UPLOADED", "SCANLATOR"}, data)
}

// PrintPageList prints the pages of a chapter
func (f *Formatter) PrintPageList(pages []core.Page) {
	f.PrintHeader(fmt.Sprintf("Pages (%d)", len(pages)))

	if len(pages) == 0 {
		f.PrintWarning("No pages found.")
		return
	}

	data := make([][]string, len(pages))
	for i, p := range pages {
		data[i] = []string{strconv.Itoa(p.Index), p.URL, p.ImageURL}
	}
	f.PrintTable([]string{"INDEX", "KEY", "IMAGE"}, data)
}

// PrintPreferences prints a preference screen with its current values
func (f *Formatter) PrintPreferences(sourceName string, screen *prefs.Screen) {
	f.PrintHeader(sourceName + " Settings")

	if screen == nil || len(screen.Items()) == 0 {
		f.PrintWarning("This source has no settings.")
		return
	}

	data := make([][]string, 0, len(screen.Items()))
	for _, item := range screen.Items() {
		value := screen.Display(item)
		if value == "" {
			value = "(not set)"
		}
		data = append(data, []string{item.Key(), item.Title(), value, item.Summary()})
	}
	f.PrintTable([]string{"KEY", "TITLE", "VALUE", "DESCRIPTION"}, data)
}

// PrintDownloadSummary prints where the pages of a chapter were written
func (f *Formatter) PrintDownloadSummary(dir string, written, total int) {
	if written == total {
		f.PrintSuccess(fmt.Sprintf("Downloaded %d pages to %s", written, f.FormatPath(dir)))
		return
	}
	f.PrintWarning(fmt.Sprintf("Downloaded %d of %d pages to %s", written, total, f.FormatPath(dir)))
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
