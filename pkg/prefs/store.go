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

// Package prefs persists per-source settings and describes the settings
// screen a source exposes to the host.
package prefs

import (
	"sort"
	"sync"
)

// Store persists string values grouped by scope
type Store interface {
	Get(scope, key string) (string, bool, error)
	Set(scope, key, value string) error
	Delete(scope, key string) error
	Keys(scope string) ([]string, error)
	Close() error
}

// MemoryStore keeps preferences in memory, for tests and ephemeral runs
type MemoryStore struct {
	mu     sync.RWMutex
	values map[string]map[string]string
}

// NewMemoryStore creates an empty in-memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: make(map[string]map[string]string)}
}

func (m *MemoryStore) Get(scope, key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	v, ok := m.values[scope][key]
	return v, ok, nil
}

func (m *MemoryStore) Set(scope, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.values[scope] == nil {
		m.values[scope] = make(map[string]string)
	}
	m.values[scope][key] = value
	return nil
}

func (m *MemoryStore) Delete(scope, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.values[scope], key)
	return nil
}

func (m *MemoryStore) Keys(scope string) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	keys := make([]string, 0, len(m.values[scope]))
	for k := range m.values[scope] {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys, nil
}

func (m *MemoryStore) Close() error { return nil }
