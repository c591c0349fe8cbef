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

package errors

import (
	"errors"
	"fmt"
)

// ErrorBuilder provides a fluent interface for building tracked errors
type ErrorBuilder struct {
	err *TrackedError
}

// Track wraps any error with automatic tracking and returns a builder
func Track(err error) *ErrorBuilder {
	if err == nil {
		return nil
	}

	// Already tracked: extend the chain with the current caller
	var tracked *TrackedError
	if As(err, &tracked) {
		if call, ok := callerOutsidePackage(); ok {
			tracked.CallChain = append(tracked.CallChain, call)
		}
		return &ErrorBuilder{err: tracked}
	}

	return &ErrorBuilder{err: trackError(err)}
}

// New creates a new error with tracking
func New(message string) *ErrorBuilder {
	return Track(errors.New(message))
}

// Newf creates a new formatted error with tracking
func Newf(format string, args ...interface{}) *ErrorBuilder {
	return Track(fmt.Errorf(format, args...))
}

// WithContext adds context data to the error
func (b *ErrorBuilder) WithContext(key string, value interface{}) *ErrorBuilder {
	if b == nil || b.err == nil {
		return b
	}

	b.err.Context[key] = value
	return b
}

// WithMessage sets a user-friendly message
func (b *ErrorBuilder) WithMessage(message string) *ErrorBuilder {
	if b == nil || b.err == nil {
		return b
	}

	b.err.UserMessage = message
	return b
}

// WithMessagef sets a formatted user-friendly message
func (b *ErrorBuilder) WithMessagef(format string, args ...interface{}) *ErrorBuilder {
	return b.WithMessage(fmt.Sprintf(format, args...))
}

// AsCategory sets the error category
func (b *ErrorBuilder) AsCategory(category ErrorCategory) *ErrorBuilder {
	if b == nil || b.err == nil {
		return b
	}

	b.err.Category = category
	return b
}

func (b *ErrorBuilder) AsNetwork() *ErrorBuilder     { return b.AsCategory(CategoryNetwork) }
func (b *ErrorBuilder) AsParser() *ErrorBuilder      { return b.AsCategory(CategoryParsing) }
func (b *ErrorBuilder) AsNotFound() *ErrorBuilder    { return b.AsCategory(CategoryNotFound) }
func (b *ErrorBuilder) AsAuth() *ErrorBuilder        { return b.AsCategory(CategoryAuth) }
func (b *ErrorBuilder) AsRateLimit() *ErrorBuilder   { return b.AsCategory(CategoryRateLimit) }
func (b *ErrorBuilder) AsFileSystem() *ErrorBuilder  { return b.AsCategory(CategoryFileSystem) }
func (b *ErrorBuilder) AsDownload() *ErrorBuilder    { return b.AsCategory(CategoryDownload) }
func (b *ErrorBuilder) AsValidation() *ErrorBuilder  { return b.AsCategory(CategoryValidation) }
func (b *ErrorBuilder) AsUnsupported() *ErrorBuilder { return b.AsCategory(CategoryUnsupported) }
func (b *ErrorBuilder) AsUpstream() *ErrorBuilder    { return b.AsCategory(CategoryUpstream) }
func (b *ErrorBuilder) AsConfig() *ErrorBuilder      { return b.AsCategory(CategoryConfig) }

// AsSource marks the error as coming from a content source.
// Categories already set by a more specific classification are kept.
func (b *ErrorBuilder) AsSource(sourceID string) *ErrorBuilder {
	if b == nil || b.err == nil {
		return b
	}
	if b.err.Category == CategoryUnknown {
		b.err.Category = CategorySource
	}
	return b.WithContext("source_id", sourceID)
}

// WithHTTPContext adds HTTP-related context
func (b *ErrorBuilder) WithHTTPContext(method, url string, statusCode int) *ErrorBuilder {
	return b.
		WithContext("method", method).
		WithContext("url", url).
		WithContext("status_code", statusCode)
}

// WithRetryContext adds retry-related context
func (b *ErrorBuilder) WithRetryContext(attempt, maxAttempts int) *ErrorBuilder {
	return b.
		WithContext("attempt", attempt).
		WithContext("max_attempts", maxAttempts)
}

// Error returns the tracked error
func (b *ErrorBuilder) Error() error {
	if b == nil || b.err == nil {
		return nil
	}
	return b.err
}
