/*
Copyright © 2026 the pwr authors.
This file is part of pwr.

pwr is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

pwr is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with pwr.  If not, see <http://www.gnu.org/licenses/>.
*/

package pwr

import (
	"fmt"
	"strings"
)

// ConfigurationError reports required build parameters that are missing or
// malformed. It always lists every offending field, not just the first one
// found, so a bad model definition can be fixed in one pass.
type ConfigurationError struct {
	// Fields holds the names of the offending parameters.
	Fields []string
	// Reason describes what is wrong with them.
	Reason string
}

func (e *ConfigurationError) Error() string {
	if len(e.Fields) == 0 {
		return "pwr: configuration: " + e.Reason
	}
	return fmt.Sprintf("pwr: configuration: %s: %s", e.Reason,
		strings.Join(e.Fields, ", "))
}

// TypeError reports an entity of the wrong kind passed to a routine that
// only accepts certain kinds.
type TypeError struct {
	Got  string
	Want string
}

func (e *TypeError) Error() string {
	return fmt.Sprintf("pwr: got %s; expected %s", e.Got, e.Want)
}

// GeometryError reports a geometrically impossible configuration, such as a
// spacer-band thickness solve with no physical root or an axial elevation
// outside every lattice's declared range. A silently wrong geometry is worse
// than a hard failure for a physics model, so these are never recovered from.
type GeometryError struct {
	Op    string
	Value float64
	Msg   string
}

func (e *GeometryError) Error() string {
	return fmt.Sprintf("pwr: %s: %s (value %g)", e.Op, e.Msg, e.Value)
}
