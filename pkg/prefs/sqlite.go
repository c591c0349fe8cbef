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
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"Lantern/pkg/errors"

	_ "github.com/mattn/go-sqlite3"
)

const schema = `
CREATE TABLE IF NOT EXISTS preferences (
	scope      TEXT NOT NULL,
	key        TEXT NOT NULL,
	value      TEXT NOT NULL,
	updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
	PRIMARY KEY (scope, key)
);`

// SQLiteStore persists preferences in a single sqlite database file
type SQLiteStore struct {
	db   *sql.DB
	path string
}

// DefaultPath returns LANTERN_PREFS_PATH or ~/.lantern/prefs.db
func DefaultPath() string {
	if p := os.Getenv("LANTERN_PREFS_PATH"); p != "" {
		return p
	}

	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		home = "."
	}
	return filepath.Join(home, ".lantern", "prefs.db")
}

// OpenSQLite opens (and creates if needed) the database at path
func OpenSQLite(path string) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, errors.Track(fmt.Errorf("ensure prefs dir: %w", err)).
			WithContext("path", path).
			AsFileSystem().Error()
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, errors.Track(fmt.Errorf("open sqlite: %w", err)).WithContext("path", path).Error()
	}

	for _, stmt := range []string{`PRAGMA journal_mode = WAL;`, `PRAGMA busy_timeout = 5000;`, schema} {
		if _, err := db.Exec(stmt); err != nil {
			_ = db.Close()
			return nil, errors.Track(fmt.Errorf("prepare prefs db: %w", err)).WithContext("path", path).Error()
		}
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, errors.Track(fmt.Errorf("ping sqlite: %w", err)).WithContext("path", path).Error()
	}

	return &SQLiteStore{db: db, path: path}, nil
}

// Path returns the database file location
func (s *SQLiteStore) Path() string {
	return s.path
}

func (s *SQLiteStore) Get(scope, key string) (string, bool, error) {
	var value string
	err := s.db.QueryRow(`SELECT value FROM preferences WHERE scope = ? AND key = ?`, scope, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, errors.Track(err).WithContext("scope", scope).WithContext("key", key).Error()
	}
	return value, true, nil
}

func (s *SQLiteStore) Set(scope, key, value string) error {
	_, err := s.db.Exec(`
		INSERT INTO preferences (scope, key, value) VALUES (?, ?, ?)
		ON CONFLICT(scope, key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP`,
		scope, key, value)
	if err != nil {
		return errors.Track(err).WithContext("scope", scope).WithContext("key", key).Error()
	}
	return nil
}

func (s *SQLiteStore) Delete(scope, key string) error {
	if _, err := s.db.Exec(`DELETE FROM preferences WHERE scope = ? AND key = ?`, scope, key); err != nil {
		return errors.Track(err).WithContext("scope", scope).WithContext("key", key).Error()
	}
	return nil
}

func (s *SQLiteStore) Keys(scope string) ([]string, error) {
	rows, err := s.db.Query(`SELECT key FROM preferences WHERE scope = ? ORDER BY key`, scope)
	if err != nil {
		return nil, errors.Track(err).WithContext("scope", scope).Error()
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var k string
		if err := rows.Scan(&k); err != nil {
			return nil, errors.Track(err).WithContext("scope", scope).Error()
		}
		keys = append(keys, k)
	}
	return keys, rows.Err()
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
