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
	"math"

	"github.com/ctessum/geom"
	"github.com/sirupsen/logrus"
)

// SpacerGrid holds the properties of one of an assembly's spacer grids. The
// band half-thickness around each pin is derived once at construction from
// conservation of material volume and is immutable afterwards.
type SpacerGrid struct {
	// Key is the short unique name of this grid.
	Key string
	// Height is the axial height (cm) of the band around the pins.
	Height float64
	// Mass is the mass (g) of the entire grid's material.
	Mass     float64
	Material *Material

	thickness float64
}

// NewSpacerGrid builds a spacer grid for an assembly of npins×npins square
// pin cells of side pitch (cm), solving for the band half-thickness.
func NewSpacerGrid(key string, height, mass float64, mat *Material, pitch float64, npins int) (*SpacerGrid, error) {
	if mat == nil {
		return nil, &TypeError{Got: "nil material", Want: "*Material"}
	}
	t, err := spacerThickness(pitch, npins, mass, mat.Density, height)
	if err != nil {
		return nil, err
	}
	return &SpacerGrid{Key: key, Height: height, Mass: mass, Material: mat, thickness: t}, nil
}

// Thickness returns the band half-thickness (cm) around each pin cell,
// which is half the total spacer thickness between two adjacent pins.
func (g *SpacerGrid) Thickness() float64 { return g.thickness }

func (g *SpacerGrid) String() string {
	return fmt.Sprintf("%s: %g cm", g.Key, g.thickness)
}

// spacerThickness solves for the band half-thickness t.
//
// The grid's total cross-sectional area is A = mass/density/height, spread
// over npins² cells, so the area around one cell is a = A/npins². That same
// area written in terms of the pitch p and the half-thickness t is
// a = p² − (p − 2t)² = 4tp − 4t². Equating the two and applying the
// quadratic formula gives t = ½(p − sqrt(p² − A/npins²)); the smaller root
// is the physical one, and it must satisfy 0 ≤ t < p/2.
func spacerThickness(pitch float64, npins int, mass, density, height float64) (float64, error) {
	if pitch <= 0 || npins <= 0 || mass <= 0 || density <= 0 || height <= 0 {
		return 0, &ConfigurationError{
			Fields: []string{"pitch", "npins", "mass", "density", "height"},
			Reason: "spacer thickness inputs must all be positive",
		}
	}
	area := mass / density / height
	disc := pitch*pitch - area/float64(npins*npins)
	if disc < 0 {
		return 0, &GeometryError{Op: "spacerThickness", Value: disc,
			Msg: "no real root: spacer material volume exceeds the lattice cross-section"}
	}
	t := 0.5 * (pitch - math.Sqrt(disc))
	if t < 0 || t >= pitch/2 {
		return 0, &GeometryError{Op: "spacerThickness", Value: t,
			Msg: "root outside the physical range [0, pitch/2)"}
	}
	return t, nil
}

// InsertSpacer carves a spacer band into the outermost region of a pin-cell
// universe, returning a new universe named "<name> gridded". The pin cell's
// cells must form concentric regions with the last cell the outer
// (moderator) region. The result is geometrically equivalent to the input
// outside the border band: the inner-ring cells are carried over untouched,
// the original moderator cell is duplicated and shrunk to the inner square,
// and a new spacer cell covers the four border strips, so the two new cells
// tile the original moderator footprint without overlap.
//
// The surface cache must be shared with every other component building this
// model, so the band planes dedup against wall planes and the bands of
// neighboring pin cells.
func InsertSpacer(pincell *Universe, pitch, halfThickness float64, material *Material, alloc *IDAllocator, cache *SurfaceCache) (*Universe, error) {
	if pincell == nil {
		return nil, &TypeError{Got: "nil", Want: "*Universe"}
	}
	if material == nil {
		return nil, &TypeError{Got: "nil material", Want: "*Material"}
	}
	if pincell.NumCells() == 0 {
		return nil, &GeometryError{Op: "InsertSpacer", Value: 0,
			Msg: fmt.Sprintf("universe %d (%s) has no cells", pincell.ID, pincell.Name)}
	}

	p := pitch / 2
	t := halfThickness
	topOut := cache.YPlaneAt(p, "")
	topIn := cache.YPlaneAt(p-t, "")
	botIn := cache.YPlaneAt(-p+t, "")
	botOut := cache.YPlaneAt(-p, "")
	leftOut := cache.XPlaneAt(-p, "")
	leftIn := cache.XPlaneAt(-p+t, "")
	rightIn := cache.XPlaneAt(p-t, "")
	rightOut := cache.XPlaneAt(p, "")

	orig := pincell.Cells()

	// Fresh copy of the outermost (moderator) cell, shrunk to the inner
	// square so it tiles with the spacer band.
	dup, err := Duplicate(orig[len(orig)-1], alloc)
	if err != nil {
		return nil, err
	}
	modCell := dup.(*Cell)
	modCell.Region = And(modCell.Region,
		And(Plus(botIn), Plus(leftIn), Minus(topIn), Minus(rightIn)))

	// The spacer band: top, right, left, and bottom strips between the
	// outer and inner squares.
	spacer := NewCell(alloc, pincell.Name+" spacer",
		Or(
			And(Plus(leftOut), Plus(topIn), Minus(topOut), Minus(rightOut)),
			And(Plus(rightIn), Minus(rightOut), Plus(botIn), Minus(topIn)),
			And(Plus(leftOut), Minus(leftIn), Plus(botIn), Minus(topIn)),
			And(Plus(botOut), Minus(botIn), Plus(leftOut), Minus(rightOut)),
		),
		MaterialFill(material))

	gridded := NewUniverse(alloc, pincell.Name+" gridded")
	if err := gridded.AddCells(orig[:len(orig)-1]...); err != nil {
		return nil, err
	}
	if err := gridded.AddCells(modCell, spacer); err != nil {
		return nil, err
	}
	return gridded, nil
}

// ApplyGrid applies a spacer grid to every pin-cell position of a lattice,
// returning a new lattice named "<name>-gridded" with the same pitch. The
// memo table, keyed by original universe id, guarantees that repeated
// pin-cell types map to the identical gridded universe (identical geometry
// and identical ids) instead of being regenerated per position; it is owned
// by the caller and carried across calls within one build.
func ApplyGrid(lattice *Lattice, pitch float64, npins int, grid *SpacerGrid, alloc *IDAllocator, memo map[int]*Universe, cache *SurfaceCache) (*Lattice, error) {
	if lattice == nil {
		return nil, &TypeError{Got: "nil", Want: "*Lattice"}
	}
	if grid == nil {
		return nil, &TypeError{Got: "nil", Want: "*SpacerGrid"}
	}
	nx, ny := lattice.Shape()
	if nx != npins || ny != npins {
		return nil, &ConfigurationError{Fields: []string{"npins"},
			Reason: fmt.Sprintf("lattice %s is %dx%d but npins is %d",
				lattice.Name, nx, ny, npins)}
	}
	if memo == nil {
		memo = make(map[int]*Universe)
	}

	rows := make([][]*Universe, npins)
	for j := 0; j < npins; j++ {
		row := make([]*Universe, npins)
		for i := 0; i < npins; i++ {
			old := lattice.UniverseAt(i, j)
			gridded, ok := memo[old.ID]
			if !ok {
				var err error
				gridded, err = InsertSpacer(old, pitch, grid.Thickness(),
					grid.Material, alloc, cache)
				if err != nil {
					return nil, err
				}
				memo[old.ID] = gridded
				logrus.WithFields(logrus.Fields{
					"pincell": old.ID,
					"gridded": gridded.ID,
				}).Debug("generated gridded pincell")
			}
			row[i] = gridded
		}
		rows[j] = row
	}

	name := lattice.Name
	if name == "" {
		name = fmt.Sprintf("%d", lattice.ID)
	}
	half := pitch * float64(npins) / 2
	out := NewLattice(alloc, name+"-gridded", pitch, pitch,
		geom.Point{X: -half, Y: -half}, npins, npins)
	if err := out.SetUniverses(rows); err != nil {
		return nil, err
	}
	return out, nil
}
