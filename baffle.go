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
	"github.com/ctessum/geom"
	"github.com/ctessum/sparse"
)

// Baffle describes the thin plate structure surrounding the core footprint.
type Baffle struct {
	Material *Material
	// Thickness is the plate thickness (cm).
	Thickness float64
	// Gap is the water gap (cm) between the outside assembly and the
	// plate.
	Gap float64
}

// direction is a unit step on the occupancy grid.
type direction struct{ di, dj int }

var (
	north = direction{0, 1}
	south = direction{0, -1}
	east  = direction{1, 0}
	west  = direction{-1, 0}
)

// baffleScan carries the per-trace state: the occupancy grid, the plate
// offsets from each assembly center, and the accumulated plate regions.
type baffleScan struct {
	core  *sparse.DenseArray
	n     int
	pitch float64
	cache *SurfaceCache

	// Offsets from an assembly center: d0 is the half pitch, d1 the inner
	// plate face (d0 + gap), d2 the outer plate face (d1 + thickness),
	// and d3 the mitre pullback (d0 − gap).
	d0, d1, d2, d3 float64

	plates []Region
}

// occupied reports whether grid position (i, j) holds an assembly.
// Positions outside the grid are unoccupied, which lets one exposed-face
// test serve interior, border, and corner positions alike.
func (b *baffleScan) occupied(i, j int) bool {
	if i < 0 || j < 0 || i >= b.n || j >= b.n {
		return false
	}
	return b.core.Get(j, i) != 0
}

// center returns the xy center of grid position (i, j); the grid is
// centered on the origin with row 0 at the bottom.
func (b *baffleScan) center(i, j int) geom.Point {
	half := b.pitch * float64(b.n) / 2
	return geom.Point{
		X: (float64(i)+0.5)*b.pitch - half,
		Y: (float64(j)+0.5)*b.pitch - half,
	}
}

// extent returns how far a plate reaches along its own edge toward the
// given diagonal neighbor: pulled inward to d3 when the diagonal is
// occupied, so the neighbor's own perpendicular plate completes a mitred
// joint instead of overlapping the corner square.
func (b *baffleScan) extent(i, j int, d direction) float64 {
	if b.occupied(i+d.di, j+d.dj) {
		return b.d3
	}
	return b.d2
}

// plate emits one plate segment on the face of (i, j) pointing in dir,
// which must be an exposed face (the neighbor in dir unoccupied).
func (b *baffleScan) plate(i, j int, dir direction) {
	c := b.center(i, j)
	var xlo, xhi, ylo, yhi float64
	switch dir {
	case north:
		xlo = c.X - b.extent(i, j, direction{-1, 1})
		xhi = c.X + b.extent(i, j, direction{1, 1})
		ylo, yhi = c.Y+b.d1, c.Y+b.d2
	case south:
		xlo = c.X - b.extent(i, j, direction{-1, -1})
		xhi = c.X + b.extent(i, j, direction{1, -1})
		ylo, yhi = c.Y-b.d2, c.Y-b.d1
	case east:
		ylo = c.Y - b.extent(i, j, direction{1, -1})
		yhi = c.Y + b.extent(i, j, direction{1, 1})
		xlo, xhi = c.X+b.d1, c.X+b.d2
	case west:
		ylo = c.Y - b.extent(i, j, direction{-1, -1})
		yhi = c.Y + b.extent(i, j, direction{-1, 1})
		xlo, xhi = c.X-b.d2, c.X-b.d1
	}
	b.plates = append(b.plates, And(
		Plus(b.cache.XPlaneAt(xlo, "")),
		Minus(b.cache.XPlaneAt(xhi, "")),
		Plus(b.cache.YPlaneAt(ylo, "")),
		Minus(b.cache.YPlaneAt(yhi, "")),
	))
}

// Trace derives the baffle region from a 2D occupancy grid of assembly
// positions (nonzero = present) and returns it as one cell filled with the
// baffle material. Every exposed face of every occupied position emits a
// plate segment; all segments are combined with boolean union, so
// overlapping segments are harmless. The result is a CSG staircase
// approximation of the core shroud, derived from a purely combinatorial
// scan with no polygon tracing.
func (b *Baffle) Trace(core *sparse.DenseArray, pitch float64, alloc *IDAllocator, cache *SurfaceCache) (*Cell, error) {
	if b.Material == nil {
		return nil, &TypeError{Got: "nil material", Want: "*Material"}
	}
	if len(core.Shape) != 2 || core.Shape[0] != core.Shape[1] {
		return nil, &ConfigurationError{Fields: []string{"core"},
			Reason: "occupancy grid must be a square 2D array"}
	}
	if pitch <= 0 || b.Thickness <= 0 || b.Gap < 0 {
		return nil, &ConfigurationError{Fields: []string{"pitch", "Thickness", "Gap"},
			Reason: "baffle dimensions must be positive (gap may be zero)"}
	}

	scan := &baffleScan{
		core:  core,
		n:     core.Shape[0],
		pitch: pitch,
		cache: cache,
		d0:    pitch / 2,
	}
	scan.d1 = scan.d0 + b.Gap
	scan.d2 = scan.d1 + b.Thickness
	scan.d3 = scan.d0 - b.Gap

	for j := 0; j < scan.n; j++ {
		for i := 0; i < scan.n; i++ {
			if !scan.occupied(i, j) {
				continue
			}
			for _, dir := range []direction{north, south, east, west} {
				if !scan.occupied(i+dir.di, j+dir.dj) {
					scan.plate(i, j, dir)
				}
			}
		}
	}
	if len(scan.plates) == 0 {
		return nil, &GeometryError{Op: "Baffle.Trace", Value: 0,
			Msg: "occupancy grid holds no assemblies"}
	}

	return NewCell(alloc, "baffle", Or(scan.plates...), MaterialFill(b.Material)), nil
}
