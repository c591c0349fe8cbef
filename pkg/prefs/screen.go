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

package prefs

import (
	"fmt"
	"strings"

	"Lantern/pkg/errors"
)

// Preference is one entry of a settings screen
type Preference interface {
	Key() string
	Title() string
	Summary() string
	// Validate is called with the new value before it is persisted
	Validate(value string) error
}

// EditTextPreference is a free-text setting
type EditTextPreference struct {
	PrefKey       string
	PrefTitle     string
	PrefSummary   string
	DialogTitle   string
	DialogMessage string
	DefaultValue  string
	// Secret values are masked whenever the screen is displayed
	Secret bool
	// OnChange may reject the new value by returning an error
	OnChange func(newValue string) error
}

func (e *EditTextPreference) Key() string     { return e.PrefKey }
func (e *EditTextPreference) Title() string   { return e.PrefTitle }
func (e *EditTextPreference) Summary() string { return e.PrefSummary }

func (e *EditTextPreference) Validate(value string) error {
	if e.OnChange == nil {
		return nil
	}
	return e.OnChange(value)
}

// Screen collects the preferences a source exposes and applies edits to them
type Screen struct {
	prefs *Preferences
	items []Preference
}

// NewScreen creates an empty screen backed by prefs
func NewScreen(prefs *Preferences) *Screen {
	return &Screen{prefs: prefs}
}

// Add appends a preference to the screen
func (s *Screen) Add(p Preference) {
	s.items = append(s.items, p)
}

// Items returns the preferences in the order they were added
func (s *Screen) Items() []Preference {
	return s.items
}

// Value returns the current value of a preference, falling back to its default
func (s *Screen) Value(p Preference) string {
	def := ""
	if et, ok := p.(*EditTextPreference); ok {
		def = et.DefaultValue
	}
	return s.prefs.GetString(p.Key(), def)
}

// Display returns the current value as it may be shown to the user
func (s *Screen) Display(p Preference) string {
	value := s.Value(p)
	if et, ok := p.(*EditTextPreference); ok && et.Secret {
		return MaskSecret(value)
	}
	return value
}

// MaskSecret hides all but the last four characters of a credential
func MaskSecret(value string) string {
	if value == "" {
		return ""
	}
	runes := []rune(value)
	if len(runes) <= 8 {
		return strings.Repeat("*", len(runes))
	}
	return strings.Repeat("*", len(runes)-4) + string(runes[len(runes)-4:])
}

// Apply validates and persists a new value for key
func (s *Screen) Apply(key, value string) error {
	for _, p := range s.items {
		if p.Key() != key {
			continue
		}
		if err := p.Validate(value); err != nil {
			return errors.Track(err).
				WithContext("key", key).
				AsValidation().Error()
		}
		return s.prefs.SetString(key, value)
	}

	return errors.Track(fmt.Errorf("%w: unknown preference %q", errors.ErrNotFound, key)).
		WithContext("scope", s.prefs.Scope()).
		Error()
}
