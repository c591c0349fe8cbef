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

package unsounded

import (
	"context"
	"regexp"
	"sync"

	"Lantern/pkg/engine/parser/html"
)

var (
	chapterTitlePattern = regexp.MustCompile(`Chapter \d\d:`)
	pageLinkPattern     = regexp.MustCompile(`.*comic/ch\d\d/.*.html`)
)

// Index is the parsed comic index: one marker element per chapter, newest first
type Index struct {
	markers []*html.Element
}

// ParseIndex collects the chapter markers of the comic index page.
// Chapter 7 is marked "chapter_box7", so ids are matched by substring.
func ParseIndex(doc *html.Document) *Index {
	return &Index{markers: doc.ElementsByAttrContaining("id", "chapter_box")}
}

// ChapterCount returns the number of chapters, which is also the newest chapter number
func (i *Index) ChapterCount() int {
	return len(i.markers)
}

// marker returns the marker of chapter n (1-based), or nil when out of range
func (i *Index) marker(n int) *html.Element {
	pos := len(i.markers) - n
	if n < 1 || pos < 0 {
		return nil
	}
	return i.markers[pos]
}

// ChapterTitle returns the "Chapter NN: ..." heading of chapter n, or "" when unknown
func (i *Index) ChapterTitle(n int) string {
	m := i.marker(n)
	if m == nil {
		return ""
	}
	matches := m.ElementsMatchingOwnText(chapterTitlePattern)
	if len(matches) == 0 {
		return ""
	}
	return matches[0].OwnText()
}

// PageCount returns the number of distinct page links listed under chapter n
func (i *Index) PageCount(n int) int {
	m := i.marker(n)
	if m == nil {
		return 0
	}
	seen := make(map[string]struct{})
	for _, link := range m.ElementsByAttrMatching("href", pageLinkPattern) {
		seen[link.AttrOr("href", "")] = struct{}{}
	}
	return len(seen)
}

type indexKey struct{}

// WithIndex attaches a preloaded index to a context
func WithIndex(ctx context.Context, idx *Index) context.Context {
	return context.WithValue(ctx, indexKey{}, idx)
}

// IndexFrom retrieves an index attached with WithIndex
func IndexFrom(ctx context.Context) (*Index, bool) {
	idx, ok := ctx.Value(indexKey{}).(*Index)
	return idx, ok && idx != nil
}

// lazyIndex holds the index loaded by the last catalog request
type lazyIndex struct {
	mu  sync.Mutex
	idx *Index
}

// get returns the cached index, loading it on first use
func (l *lazyIndex) get(ctx context.Context, load func(context.Context) (*Index, error)) (*Index, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.idx != nil {
		return l.idx, nil
	}
	idx, err := load(ctx)
	if err != nil {
		return nil, err
	}
	l.idx = idx
	return idx, nil
}

func (l *lazyIndex) set(idx *Index) {
	l.mu.Lock()
	l.idx = idx
	l.mu.Unlock()
}
