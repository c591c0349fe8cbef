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
	"bytes"
	"io"
	"strings"

	"Lantern/pkg/errors"

	"github.com/PuerkitoBio/goquery"
)

// Document wraps a goquery document for HTML parsing
type Document struct {
	doc *goquery.Document
}

// Parse creates a new document from HTML content
func Parse(content []byte) (*Document, error) {
	return ParseReader(bytes.NewReader(content))
}

// ParseReader creates a new document from an io.Reader
func ParseReader(r io.Reader) (*Document, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, errors.Track(err).
			WithContext("operation", "html_parse").
			AsParser().
			Error()
	}
	return &Document{doc: doc}, nil
}

// ParseString creates a new document from a string
func ParseString(html string) (*Document, error) {
	return ParseReader(strings.NewReader(html))
}

// Select returns the elements matching a CSS selector
func (d *Document) Select(selector string) *Selector {
	return &Selector{selection: d.doc.Find(selector), selector: selector}
}

// Root returns the document root as an element
func (d *Document) Root() *Element {
	return &Element{selection: d.doc.Selection}
}

// Title returns the document title
func (d *Document) Title() string {
	return strings.TrimSpace(d.doc.Find("title").Text())
}

// ElementsByAttrContaining returns, in document order, every element whose
// attribute value contains substr, ignoring case.
func (d *Document) ElementsByAttrContaining(attr, substr string) []*Element {
	return d.Root().ElementsByAttrContaining(attr, substr)
}
