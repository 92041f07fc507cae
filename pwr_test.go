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
	"math"

	"github.com/ctessum/geom"
)

func different(a, b, tolerance float64) bool {
	if a == b {
		return false
	}
	return math.Abs(a-b) > tolerance
}

func testModerator(alloc *IDAllocator) *Material {
	return NewMaterial(alloc, "mod", 1.0, []NuclideFraction{
		{Nuclide: "h1", Fraction: 2.0 / 3},
		{Nuclide: "o16", Fraction: 1.0 / 3},
	})
}

func testIron(alloc *IDAllocator) *Material {
	return NewMaterial(alloc, "iron", 7.8, []NuclideFraction{
		{Nuclide: "fe56", Fraction: 1},
	})
}

// newTestPincell builds a two-ring pin cell: fuel inside a 0.4 cm cylinder,
// moderator outside it.
func newTestPincell(alloc *IDAllocator, cache *SurfaceCache, fuel, mod *Material) *Universe {
	cyl, err := cache.GetZCylinder(0.4, Transmission, "clad", 0)
	if err != nil {
		panic(err)
	}
	pin := NewUniverse(alloc, "pin")
	if err := pin.AddCells(
		NewCell(alloc, "fuel", Minus(cyl), MaterialFill(fuel)),
		NewCell(alloc, "outer", Plus(cyl), MaterialFill(mod)),
	); err != nil {
		panic(err)
	}
	return pin
}

// containers returns the cells of u whose region contains the point.
func containers(u *Universe, p geom.Point, z float64) []*Cell {
	var out []*Cell
	for _, c := range u.Cells() {
		if c.Region.Contains(p, z) {
			out = append(out, c)
		}
	}
	return out
}
