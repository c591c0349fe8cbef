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

	"github.com/PuerkitoBio/goquery"
	xhtml "golang.org/x/net/html"
)

// Element wraps a single goquery selection
type Element struct {
	selection *goquery.Selection
}

// Text returns the trimmed text content of the element and its descendants
func (e *Element) Text() string {
	return strings.TrimSpace(e.selection.Text())
}

// OwnText returns the text of the element's direct text nodes with
// whitespace collapsed, ignoring text inside child elements.
func (e *Element) OwnText() string {
	var sb strings.Builder
	for _, node := range e.selection.Nodes {
		for child := node.FirstChild; child != nil; child = child.NextSibling {
			if child.Type == xhtml.TextNode {
				sb.WriteString(child.Data)
			}
		}
	}
	return CollapseSpaces(sb.String())
}

// Attr returns an attribute value
func (e *Element) Attr(name string) (string, bool) {
	return e.selection.Attr(name)
}

// AttrOr returns an attribute value or default if not found
func (e *Element) AttrOr(name string, defaultValue string) string {
	if val, exists := e.Attr(name); exists {
		return val
	}
	return defaultValue
}

// ID returns the element's ID attribute
func (e *Element) ID() string {
	return e.AttrOr("id", "")
}

// Find searches the descendants of this element
func (e *Element) Find(selector string) *Selector {
	return &Selector{selection: e.selection.Find(selector), selector: selector}
}

// self returns the element followed by all of its descendant elements in document order
func (e *Element) self() []*Element {
	elements := []*Element{e}
	e.selection.Find("*").Each(func(_ int, sel *goquery.Selection) {
		elements = append(elements, &Element{selection: sel})
	})
	return elements
}

// ElementsByAttrContaining returns the element and its descendants whose
// attribute value contains substr, ignoring case.
func (e *Element) ElementsByAttrContaining(attr, substr string) []*Element {
	substr = strings.ToLower(substr)
	var matched []*Element
	for _, el := range e.self() {
		if v, ok := el.Attr(attr); ok && strings.Contains(strings.ToLower(v), substr) {
			matched = append(matched, el)
		}
	}
	return matched
}

// ElementsByAttrMatching returns the element and its descendants whose
// attribute value contains a match of pattern.
func (e *Element) ElementsByAttrMatching(attr string, pattern *regexp.Regexp) []*Element {
	var matched []*Element
	for _, el := range e.self() {
		if v, ok := el.Attr(attr); ok && pattern.MatchString(v) {
			matched = append(matched, el)
		}
	}
	return matched
}

// ElementsMatchingOwnText returns the element and its descendants whose own
// text contains a match of pattern.
func (e *Element) ElementsMatchingOwnText(pattern *regexp.Regexp) []*Element {
	var matched []*Element
	for _, el := range e.self() {
		if pattern.MatchString(el.OwnText()) {
			matched = append(matched, el)
		}
	}
	return matched
}
