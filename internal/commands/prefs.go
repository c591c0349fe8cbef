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
	"fmt"

	"Lantern/pkg/errors"

	"github.com/spf13/cobra"
)

var prefsCmd = &cobra.Command{
	Use:   "prefs",
	Short: "Show or change source settings",
}

var prefsListCmd = &cobra.Command{
	Use:   "list <source>",
	Short: "Show the settings of a source and their current values",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		src, err := lookupSource(args[0])
		if err != nil {
			return err
		}
		formatter.PrintPreferences(src.Name(), appEngine.PreferenceScreen(src))
		return nil
	},
}

var prefsSetCmd = &cobra.Command{
	Use:   "set <source> <key> <value>",
	Short: "Change a setting of a source",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		src, err := lookupSource(args[0])
		if err != nil {
			return err
		}
		screen := appEngine.PreferenceScreen(src)
		if screen == nil {
			return errors.Track(fmt.Errorf("%w: %s has no settings", errors.ErrNotFound, src.Name())).
				AsSource(src.ID()).
				Error()
		}
		if err := screen.Apply(args[1], args[2]); err != nil {
			return err
		}
		formatter.PrintSuccess(fmt.Sprintf("Saved %s for %s", args[1], src.Name()))
		return nil
	},
}

func init() {
	prefsCmd.AddCommand(prefsListCmd, prefsSetCmd)
	rootCmd.AddCommand(prefsCmd)
}
