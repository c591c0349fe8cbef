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
	"Lantern/pkg/errors"

	"github.com/PuerkitoBio/goquery"
)

// Selector holds the result of a CSS query
type Selector struct {
	selection *goquery.Selection
	selector  string
}

// First returns the first matching element or a not-found error
func (s *Selector) First() (*Element, error) {
	if s.selection.Length() == 0 {
		return nil, errors.Track(errors.ErrNotFound).
			WithContext("selector", s.selector).
			AsParser().
			Error()
	}
	return &Element{selection: s.selection.First()}, nil
}

// Count returns the number of matching elements
func (s *Selector) Count() int {
	return s.selection.Length()
}

// Each calls fn for every matching element
func (s *Selector) Each(fn func(int, *Element)) {
	s.selection.Each(func(i int, sel *goquery.Selection) {
		fn(i, &Element{selection: sel})
	})
}

// Filter keeps the elements for which keep returns true
func (s *Selector) Filter(keep func(*Element) bool) []*Element {
	var kept []*Element
	s.Each(func(_ int, e *Element) {
		if keep(e) {
			kept = append(kept, e)
		}
	})
	return kept
}
