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

// Package pad holds the plane-angle helpers for placing the neutron pads
// found between a PWR core barrel and the reactor vessel. The pads
// themselves are arcs bounded by rotated planes; these functions give the
// plane-equation coefficients for a plane at a given angle on the xy plane.
package pad

import "math"

// Phi returns the angle of the normal vector to a plane whose own angle on
// the xy plane is th degrees. The result is in radians unless radians is
// false.
func Phi(th float64, radians bool) float64 {
	angle := th*math.Pi/180 - math.Pi/2
	if radians {
		return angle
	}
	return angle * 180 / math.Pi
}

// A returns coefficient A of the plane equation Ax + By = D for a plane at
// th degrees on the xy plane.
func A(th float64) float64 {
	return math.Sin(Phi(th, true))
}

// B returns coefficient B of the plane equation Ax + By = D for a plane at
// th degrees on the xy plane.
func B(th float64) float64 {
	return math.Cos(Phi(th, true))
}
