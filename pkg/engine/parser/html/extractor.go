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

package html

import (
	"regexp"
	"strings"
)

var (
	spaceRun     = regexp.MustCompile(`[ \t\f\r\x{00a0}]+`)
	anySpaceRun  = regexp.MustCompile(`\s+`)
	blankLineRun = regexp.MustCompile(`\n{3,}`)
)

// CollapseSpaces turns every whitespace run, newlines included, into a single space
func CollapseSpaces(s string) string {
	return strings.TrimSpace(anySpaceRun.ReplaceAllString(s, " "))
}

// CleanParagraphs keeps line structure while dropping layout whitespace:
// spaces are collapsed, lines are trimmed and at most one blank line separates paragraphs.
func CleanParagraphs(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = spaceRun.ReplaceAllString(s, " ")

	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(line)
	}
	s = strings.Join(lines, "\n")

	return strings.TrimSpace(blankLineRun.ReplaceAllString(s, "\n\n"))
}
