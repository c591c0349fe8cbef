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

package core

import "context"

// ContextKey is a type for context keys specific to the host
type ContextKey string

const (
	ConcurrencyKey ContextKey = "concurrency"
)

// WithConcurrency overrides the number of parallel downloads for calls made with ctx
func WithConcurrency(ctx context.Context, limit int) context.Context {
	return context.WithValue(ctx, ConcurrencyKey, limit)
}

// GetConcurrency retrieves the concurrency set with WithConcurrency, or defaultLimit
func GetConcurrency(ctx context.Context, defaultLimit int) int {
	if limit, ok := ctx.Value(ConcurrencyKey).(int); ok && limit > 0 {
		return limit
	}
	return defaultLimit
}
