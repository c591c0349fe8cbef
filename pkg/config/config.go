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

// Package config resolves runtime settings from the environment.
package config

import (
	"os"
	"path/filepath"
	"strconv"
	"time"

	"Lantern/pkg/errors"
)

// Config holds the settings the engine is built from
type Config struct {
	HomeDir    string
	PrefsPath  string
	LogFile    string
	OutputDir  string
	Timeout    time.Duration
	MaxRetries int
	UserAgent  string
	// Concurrency bounds parallel page downloads
	Concurrency int
	Debug       bool
	// InMemoryPrefs keeps preferences out of the sqlite file
	InMemoryPrefs bool
}

// Default returns the configuration used when no environment overrides are set
func Default() Config {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		home = "."
	}
	base := filepath.Join(home, ".lantern")

	return Config{
		HomeDir:     base,
		PrefsPath:   filepath.Join(base, "prefs.db"),
		LogFile:     filepath.Join(base, "logs", "lantern.log"),
		OutputDir:   "downloads",
		Timeout:     30 * time.Second,
		MaxRetries:  2,
		UserAgent:   "Lantern/1.0",
		Concurrency: 4,
	}
}

// Load applies LANTERN_* environment variables on top of Default
func Load() (Config, error) {
	cfg := Default()

	if v := os.Getenv("LANTERN_HOME"); v != "" {
		cfg.HomeDir = v
		cfg.PrefsPath = filepath.Join(v, "prefs.db")
		cfg.LogFile = filepath.Join(v, "logs", "lantern.log")
	}
	if v := os.Getenv("LANTERN_PREFS_PATH"); v != "" {
		cfg.PrefsPath = v
	}
	if v := os.Getenv("LANTERN_LOG_FILE"); v != "" {
		cfg.LogFile = v
	}
	if v := os.Getenv("LANTERN_OUTPUT_DIR"); v != "" {
		cfg.OutputDir = v
	}
	if v := os.Getenv("LANTERN_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return cfg, errors.Track(err).
				WithContext("variable", "LANTERN_TIMEOUT").
				AsValidation().Error()
		}
		cfg.Timeout = d
	}
	if v := os.Getenv("LANTERN_RETRIES"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return cfg, errors.Newf("invalid LANTERN_RETRIES %q", v).
				WithContext("variable", "LANTERN_RETRIES").
				AsValidation().Error()
		}
		cfg.MaxRetries = n
	}

	return cfg, nil
}
