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

package errors

import (
	"embed"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/fatih/color"
)

//go:embed suggestions.json
var suggestionFS embed.FS

// SuggestionsMap holds suggestions for different error categories
type SuggestionsMap map[string][]string

// CLIFormatter provides user-friendly error formatting for the command line
type CLIFormatter struct {
	// ShowDebugInfo adds context values and the root cause
	ShowDebugInfo bool

	// ShowFunctionChain adds the tracked call chain
	ShowFunctionChain bool

	Suggestions SuggestionsMap

	ErrorStyle       *color.Color
	WarningStyle     *color.Color
	HeaderStyle      *color.Color
	SectionStyle     *color.Color
	DetailLabelStyle *color.Color
	DetailValueStyle *color.Color
	HighlightStyle   *color.Color
	SecondaryStyle   *color.Color
}

// NewCLIFormatter creates a new CLI error formatter with default settings
func NewCLIFormatter() *CLIFormatter {
	f := &CLIFormatter{
		Suggestions:      loadSuggestions(),
		ErrorStyle:       color.New(color.FgRed),
		WarningStyle:     color.New(color.FgYellow),
		HeaderStyle:      color.New(color.Bold, color.FgCyan),
		SectionStyle:     color.New(color.Underline, color.FgHiCyan),
		DetailLabelStyle: color.New(color.FgHiBlue),
		DetailValueStyle: color.New(color.FgWhite),
		HighlightStyle:   color.New(color.FgMagenta),
		SecondaryStyle:   color.New(color.FgHiBlack),
	}
	return f
}

// NewDebugCLIFormatter creates a CLI formatter with debug information enabled
func NewDebugCLIFormatter() *CLIFormatter {
	f := NewCLIFormatter()
	f.ShowDebugInfo = true
	f.ShowFunctionChain = true
	return f
}

func loadSuggestions() SuggestionsMap {
	suggestions := make(SuggestionsMap)
	data, err := suggestionFS.ReadFile("suggestions.json")
	if err != nil {
		return suggestions
	}
	if err := json.Unmarshal(data, &suggestions); err != nil {
		return make(SuggestionsMap)
	}
	return suggestions
}

// Format formats an error for CLI display
func (f *CLIFormatter) Format(err error) string {
	if err == nil {
		return ""
	}

	var tracked *TrackedError
	if !As(err, &tracked) {
		return fmt.Sprintf("%s %s", f.HeaderStyle.Sprint("[ERROR]"), f.ErrorStyle.Sprint(err.Error()))
	}

	parts := []string{f.FormatSimple(err)}

	if suggestions := f.Suggestions[string(tracked.Category)]; len(suggestions) > 0 {
		lines := []string{"", f.SectionStyle.Sprint("Troubleshooting suggestions:")}
		for _, s := range suggestions {
			lines = append(lines, "  - "+f.DetailValueStyle.Sprint(s))
		}
		parts = append(parts, lines...)
	}

	if f.ShowDebugInfo {
		parts = append(parts, "", f.formatDebugInfo(tracked))
	}

	if f.ShowFunctionChain && len(tracked.CallChain) > 0 {
		parts = append(parts, "", f.SectionStyle.Sprint("Function Call Chain:"))
		for i, call := range tracked.CallChain {
			parts = append(parts, fmt.Sprintf("  %d. %s() at %s",
				i+1, f.HighlightStyle.Sprint(call.ShortName),
				f.SecondaryStyle.Sprintf("%s:%d", call.File, call.Line)))
		}
	}

	return strings.Join(parts, "\n")
}

// FormatSimple provides a one-line error format
func (f *CLIFormatter) FormatSimple(err error) string {
	if err == nil {
		return ""
	}

	var tracked *TrackedError
	if !As(err, &tracked) {
		return err.Error()
	}

	prefix := f.HeaderStyle.Sprint(categoryPrefix(tracked.Category))
	style := f.ErrorStyle
	if tracked.Category == CategoryConfig || tracked.Category == CategoryRateLimit {
		style = f.WarningStyle
	}
	return fmt.Sprintf("%s %s", prefix, style.Sprint(tracked.Error()))
}

func (f *CLIFormatter) formatDebugInfo(tracked *TrackedError) string {
	parts := []string{f.SectionStyle.Sprint("Debug Information")}

	if tracked.Original != nil && tracked.UserMessage != "" {
		parts = append(parts, fmt.Sprintf("%s %s",
			f.DetailLabelStyle.Sprint("Original Error:"),
			f.DetailValueStyle.Sprint(tracked.Original.Error())))
	}
	if tracked.RootCause != nil && tracked.Original != nil && tracked.RootCause.Error() != tracked.Original.Error() {
		parts = append(parts, fmt.Sprintf("%s %s",
			f.DetailLabelStyle.Sprint("Root Cause:"),
			f.DetailValueStyle.Sprint(tracked.RootCause.Error())))
	}

	keys := make([]string, 0, len(tracked.Context))
	for k := range tracked.Context {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("  %s %s",
			f.DetailLabelStyle.Sprintf("%s:", k),
			f.DetailValueStyle.Sprint(tracked.Context[k])))
	}

	return strings.Join(parts, "\n")
}

func categoryPrefix(category ErrorCategory) string {
	switch category {
	case CategoryNetwork:
		return "[NETWORK]"
	case CategorySource:
		return "[SOURCE]"
	case CategoryParsing:
		return "[PARSE]"
	case CategoryNotFound:
		return "[NOT FOUND]"
	case CategoryRateLimit:
		return "[RATE LIMIT]"
	case CategoryAuth:
		return "[AUTH]"
	case CategoryFileSystem:
		return "[FILE]"
	case CategoryDownload:
		return "[DOWNLOAD]"
	case CategoryTimeout:
		return "[TIMEOUT]"
	case CategoryUnsupported:
		return "[UNSUPPORTED]"
	case CategoryUpstream:
		return "[UPSTREAM]"
	case CategoryConfig:
		return "[CONFIG]"
	default:
		return "[ERROR]"
	}
}

// FormatCLI formats an error with suggestions
func FormatCLI(err error) string {
	return NewCLIFormatter().Format(err)
}

// FormatCLIDebug formats an error with debug details and the call chain
func FormatCLIDebug(err error) string {
	return NewDebugCLIFormatter().Format(err)
}

// FormatCLISimple formats an error on one line
func FormatCLISimple(err error) string {
	return NewCLIFormatter().FormatSimple(err)
}
