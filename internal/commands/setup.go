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

package commands

import (
	"io"

	"Lantern/pkg/engine"
)

// SetupEngine makes an existing engine available to all command handlers
func SetupEngine(e *engine.Engine) {
	appEngine = e
}

// SetupVersion sets the version for all commands
func SetupVersion(v string) {
	version = v
	rootCmd.Version = v
}

// SetupOutput redirects command output to w
func SetupOutput(w io.Writer) {
	formatter.Writer = w
}
