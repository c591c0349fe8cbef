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

import "Lantern/pkg/errors"

// Preferences is a view of a Store restricted to one scope
type Preferences struct {
	store Store
	scope string
}

// SourceScope returns the storage scope for a source ID
func SourceScope(sourceID string) string {
	return "source_" + sourceID
}

// Scoped returns the preferences of one scope
func Scoped(store Store, scope string) *Preferences {
	return &Preferences{store: store, scope: scope}
}

// ForSource returns the preferences of a source
func ForSource(store Store, sourceID string) *Preferences {
	return Scoped(store, SourceScope(sourceID))
}

// Scope returns the storage scope of these preferences
func (p *Preferences) Scope() string {
	return p.scope
}

// GetString returns the stored value for key, or def when unset or unreadable
func (p *Preferences) GetString(key, def string) string {
	v, ok, err := p.store.Get(p.scope, key)
	if err != nil || !ok {
		return def
	}
	return v
}

// Lookup returns the stored value and whether it exists
func (p *Preferences) Lookup(key string) (string, bool, error) {
	return p.store.Get(p.scope, key)
}

// SetString persists value under key
func (p *Preferences) SetString(key, value string) error {
	if key == "" {
		return errors.Track(errors.ErrInvalidInput).WithMessage("preference key is empty").Error()
	}
	return p.store.Set(p.scope, key, value)
}

// Remove deletes key
func (p *Preferences) Remove(key string) error {
	return p.store.Delete(p.scope, key)
}

// Keys lists the stored keys
func (p *Preferences) Keys() ([]string, error) {
	return p.store.Keys(p.scope)
}
