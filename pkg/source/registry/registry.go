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

package registry

import (
	"sync"

	"Lantern/pkg/engine"
)

// SourceConstructor creates a source bound to the engine
type SourceConstructor func(*engine.Engine) engine.Source

// Registry holds source constructors
type Registry struct {
	constructors []SourceConstructor
	mu           sync.RWMutex
}

var global = &Registry{
	constructors: make([]SourceConstructor, 0),
}

// Register adds a source constructor to the global registry
func Register(constructor SourceConstructor) {
	global.mu.Lock()
	defer global.mu.Unlock()

	global.constructors = append(global.constructors, constructor)
}

// LoadAll creates every registered source and adds it to the engine.
// A source that fails to register is logged and skipped.
func LoadAll(e *engine.Engine) error {
	global.mu.RLock()
	constructors := make([]SourceConstructor, len(global.constructors))
	copy(constructors, global.constructors)
	global.mu.RUnlock()

	for _, constructor := range constructors {
		source := constructor(e)
		if source == nil {
			continue
		}

		if err := e.RegisterSource(source); err != nil {
			e.Logger.Error("Failed to register source: %v", err)
		}
	}

	e.Logger.Info("Loaded %d sources", e.SourceCount())
	return nil
}

// Clear removes all registered constructors
func Clear() {
	global.mu.Lock()
	defer global.mu.Unlock()

	global.constructors = global.constructors[:0]
}

// Count returns the number of registered constructors
func Count() int {
	global.mu.RLock()
	defer global.mu.RUnlock()

	return len(global.constructors)
}
