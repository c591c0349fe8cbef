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
	"context"
	"runtime"
	"strings"
	"time"
)

// TrackedError wraps an error with the call site that produced it
type TrackedError struct {
	Original    error                  `json:"original_error"`
	RootCause   error                  `json:"root_cause"`
	CallChain   []FunctionCall         `json:"call_chain"`
	Context     map[string]interface{} `json:"context,omitempty"`
	UserMessage string                 `json:"user_message,omitempty"`
	Category    ErrorCategory          `json:"category"`
}

// FunctionCall represents a single function in the call chain
type FunctionCall struct {
	Function  string    `json:"function"`
	ShortName string    `json:"short_name"`
	Package   string    `json:"package"`
	File      string    `json:"file"`
	Line      int       `json:"line"`
	Timestamp time.Time `json:"timestamp"`
}

// ErrorCategory helps classify different types of errors
type ErrorCategory string

const (
	CategoryNetwork     ErrorCategory = "network"
	CategorySource      ErrorCategory = "source"
	CategoryParsing     ErrorCategory = "parsing"
	CategoryValidation  ErrorCategory = "validation"
	CategoryTimeout     ErrorCategory = "timeout"
	CategoryAuth        ErrorCategory = "authentication"
	CategoryRateLimit   ErrorCategory = "rate_limit"
	CategoryNotFound    ErrorCategory = "not_found"
	CategoryFileSystem  ErrorCategory = "filesystem"
	CategoryDownload    ErrorCategory = "download"
	CategoryUnsupported ErrorCategory = "unsupported"
	CategoryUpstream    ErrorCategory = "upstream"
	CategoryConfig      ErrorCategory = "configuration"
	CategoryUnknown     ErrorCategory = "unknown"
)

func (e *TrackedError) Error() string {
	if e.UserMessage != "" {
		return e.UserMessage
	}
	if e.Original != nil {
		return e.Original.Error()
	}
	return "unknown error"
}

func (e *TrackedError) Unwrap() error {
	return e.Original
}

func (e *TrackedError) Is(target error) bool {
	return (e.Original != nil && Is(e.Original, target)) ||
		(e.RootCause != nil && Is(e.RootCause, target))
}

// CategoryOf returns the category of a tracked error, or CategoryUnknown
func CategoryOf(err error) ErrorCategory {
	var tracked *TrackedError
	if As(err, &tracked) {
		return tracked.Category
	}
	return CategoryUnknown
}

// trackError creates a new TrackedError for err at the first caller outside this package
func trackError(err error) *TrackedError {
	tracked := &TrackedError{
		Original:  err,
		RootCause: findRootCause(err),
		Context:   make(map[string]interface{}),
		Category:  classifyError(err),
	}

	if call, ok := callerOutsidePackage(); ok {
		tracked.CallChain = []FunctionCall{call}
	}

	return tracked
}

// callerOutsidePackage walks up the stack to the first frame not in pkg/errors
func callerOutsidePackage() (FunctionCall, bool) {
	for i := 2; i < 12; i++ {
		pc, file, line, ok := runtime.Caller(i)
		if !ok {
			break
		}
		if strings.Contains(file, "pkg/errors/") && !strings.HasSuffix(file, "_test.go") {
			continue
		}

		name := "unknown"
		if fn := runtime.FuncForPC(pc); fn != nil {
			name = fn.Name()
		}

		return FunctionCall{
			Function:  name,
			ShortName: extractShortFunctionName(name),
			Package:   extractPackageName(name),
			File:      extractFileName(file),
			Line:      line,
			Timestamp: time.Now(),
		}, true
	}
	return FunctionCall{}, false
}

func findRootCause(err error) error {
	for {
		next := Unwrap(err)
		if next == nil {
			return err
		}
		err = next
	}
}

func extractShortFunctionName(fullName string) string {
	if idx := strings.LastIndex(fullName, "/"); idx != -1 {
		fullName = fullName[idx+1:]
	}
	if idx := strings.Index(fullName, "."); idx != -1 {
		fullName = fullName[idx+1:]
	}
	fullName = strings.ReplaceAll(fullName, "(*", "")
	return strings.ReplaceAll(fullName, ")", "")
}

func extractPackageName(fullName string) string {
	if idx := strings.LastIndex(fullName, "/"); idx != -1 {
		fullName = fullName[idx+1:]
	}
	if idx := strings.Index(fullName, "."); idx != -1 {
		return fullName[:idx]
	}
	return "unknown"
}

func extractFileName(fullPath string) string {
	if idx := strings.LastIndex(fullPath, "/"); idx != -1 {
		return fullPath[idx+1:]
	}
	return fullPath
}

func classifyError(err error) ErrorCategory {
	switch {
	case err == nil:
		return CategoryUnknown
	case Is(err, ErrNotUsed):
		return CategoryUnsupported
	case Is(err, ErrUpstream):
		return CategoryUpstream
	case Is(err, ErrMissingConfig):
		return CategoryConfig
	case Is(err, ErrNotFound):
		return CategoryNotFound
	case Is(err, ErrUnauthorized):
		return CategoryAuth
	case Is(err, ErrRateLimit):
		return CategoryRateLimit
	case Is(err, ErrTimeout), Is(err, context.DeadlineExceeded):
		return CategoryTimeout
	case Is(err, ErrInvalidInput), Is(err, ErrBadRequest):
		return CategoryValidation
	}

	errStr := strings.ToLower(err.Error())
	switch {
	case containsAny(errStr, "dial tcp", "connection refused", "no such host", "connection reset", "tls", "eof"):
		return CategoryNetwork
	case containsAny(errStr, "parse", "unmarshal", "invalid character", "unexpected end of json"):
		return CategoryParsing
	case containsAny(errStr, "permission denied", "no such file", "no space left"):
		return CategoryFileSystem
	default:
		return CategoryUnknown
	}
}

func containsAny(s string, patterns ...string) bool {
	for _, p := range patterns {
		if strings.Contains(s, p) {
			return true
		}
	}
	return false
}
