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

package engine

import (
	"fmt"
	"os"
	"sort"
	"sync"

	"Lantern/pkg/config"
	"Lantern/pkg/engine/download"
	"Lantern/pkg/engine/logger"
	"Lantern/pkg/engine/network"
	"Lantern/pkg/errors"
	"Lantern/pkg/prefs"
)

// Engine is the host side every source plugs into
type Engine struct {
	Config   config.Config
	Network  *network.Client
	Download *download.Service
	Logger   logger.Logger
	Prefs    prefs.Store

	sources     map[string]Source
	sourceMutex sync.RWMutex

	debugMode bool
}

// New creates an engine from cfg, opening the log file and the preference store
func New(cfg config.Config) (*Engine, error) {
	log := logger.NewService(cfg.LogFile)

	var store prefs.Store
	if cfg.InMemoryPrefs {
		store = prefs.NewMemoryStore()
	} else {
		sqliteStore, err := prefs.OpenSQLite(cfg.PrefsPath)
		if err != nil {
			_ = log.Close()
			return nil, err
		}
		store = sqliteStore
	}

	e := NewWithServices(cfg, log, store)
	log.Info("Engine initialized (prefs: %s)", cfg.PrefsPath)
	return e, nil
}

// NewWithServices creates an engine around an existing logger and preference store
func NewWithServices(cfg config.Config, log logger.Logger, store prefs.Store) *Engine {
	client := network.NewClient(log, network.Config{
		Timeout:    cfg.Timeout,
		MaxRetries: cfg.MaxRetries,
		UserAgent:  cfg.UserAgent,
	})

	downloads := download.NewService(log)
	downloads.SetConcurrency(cfg.Concurrency)

	return &Engine{
		Config:   cfg,
		Network:  client,
		Download: downloads,
		Logger:   log,
		Prefs:    store,
		sources:  make(map[string]Source),
	}
}

// RegisterSource adds a source to the registry
func (e *Engine) RegisterSource(source Source) error {
	if source == nil {
		return errors.New("source is nil").AsValidation().Error()
	}

	id := source.ID()
	if id == "" {
		return errors.Newf("source %q has empty ID", source.Name()).AsValidation().Error()
	}

	e.sourceMutex.Lock()
	defer e.sourceMutex.Unlock()

	if _, exists := e.sources[id]; exists {
		return errors.Newf("source with ID '%s' already registered", id).AsValidation().Error()
	}

	e.sources[id] = source
	e.Logger.Info("Registered source: %s (%s)", source.Name(), id)
	return nil
}

// GetSource retrieves a registered source by ID
func (e *Engine) GetSource(id string) (Source, error) {
	e.sourceMutex.RLock()
	defer e.sourceMutex.RUnlock()

	source, exists := e.sources[id]
	if !exists {
		return nil, errors.Track(fmt.Errorf("%w: source '%s'", errors.ErrNotFound, id)).
			WithContext("available_sources", e.sourceIDs()).
			Error()
	}

	return source, nil
}

// AllSources returns every registered source sorted by ID
func (e *Engine) AllSources() []Source {
	e.sourceMutex.RLock()
	defer e.sourceMutex.RUnlock()

	sources := make([]Source, 0, len(e.sources))
	for _, s := range e.sources {
		sources = append(sources, s)
	}
	sort.Slice(sources, func(i, j int) bool { return sources[i].ID() < sources[j].ID() })
	return sources
}

// SourceCount returns the number of registered sources
func (e *Engine) SourceCount() int {
	e.sourceMutex.RLock()
	defer e.sourceMutex.RUnlock()
	return len(e.sources)
}

// SourcePreferences returns the preferences scoped to a source
func (e *Engine) SourcePreferences(sourceID string) *prefs.Preferences {
	return prefs.ForSource(e.Prefs, sourceID)
}

// PreferenceScreen builds the settings screen of a source, or nil if it has none
func (e *Engine) PreferenceScreen(source Source) *prefs.Screen {
	configurable, ok := source.(Configurable)
	if !ok {
		return nil
	}
	screen := prefs.NewScreen(e.SourcePreferences(source.ID()))
	configurable.SetupPreferenceScreen(screen)
	return screen
}

// Shutdown closes the preference store and the log file
func (e *Engine) Shutdown() error {
	e.Logger.Info("Shutting down engine...")

	var errs []error
	if e.Prefs != nil {
		errs = append(errs, e.Prefs.Close())
	}
	if closer, ok := e.Logger.(interface{ Close() error }); ok {
		errs = append(errs, closer.Close())
	}
	return errors.Join(errs...)
}

// SetDebugMode lowers the log level and mirrors entries to stderr
func (e *Engine) SetDebugMode(enabled bool) {
	e.debugMode = enabled
	service, _ := e.Logger.(*logger.Service)

	if enabled {
		e.Logger.SetLevel(logger.LevelDebug)
		if service != nil {
			service.SetConsoleOutput(os.Stderr)
		}
		e.Logger.Debug("Debug mode enabled")
		return
	}

	e.Logger.SetLevel(logger.LevelInfo)
	if service != nil {
		service.SetConsoleOutput(nil)
	}
}

// FormatError formats an error based on the current verbosity
func (e *Engine) FormatError(err error) string {
	if err == nil {
		return ""
	}
	if e.debugMode {
		return errors.FormatCLIDebug(err)
	}
	return errors.FormatCLI(err)
}

// sourceIDs returns the registered IDs; caller holds sourceMutex
func (e *Engine) sourceIDs() []string {
	ids := make([]string, 0, len(e.sources))
	for id := range e.sources {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
