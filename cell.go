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

	"github.com/ctessum/geom"
)

// NuclideFraction is one nuclide and its weight fraction within a material.
type NuclideFraction struct {
	Nuclide  string
	Fraction float64
}

// Material is a transport material. Density is in g/cm³. The core treats
// materials as opaque referenceable entities; blending them is the mixture
// package's business.
type Material struct {
	ID       int
	Name     string
	Density  float64
	Nuclides []NuclideFraction
}

// NewMaterial allocates a material with a fresh id.
func NewMaterial(alloc *IDAllocator, name string, density float64, nuclides []NuclideFraction) *Material {
	return &Material{
		ID:       alloc.Allocate(KindMaterial),
		Name:     name,
		Density:  density,
		Nuclides: append([]NuclideFraction(nil), nuclides...),
	}
}

// Fill is what a cell contains: a material, a nested universe, or a lattice.
// Exactly one variant is set at a time. The zero Fill is empty (a void cell).
type Fill struct {
	material *Material
	universe *Universe
	lattice  *Lattice
}

// MaterialFill fills a cell with a material.
func MaterialFill(m *Material) Fill { return Fill{material: m} }

// UniverseFill fills a cell with a nested universe.
func UniverseFill(u *Universe) Fill { return Fill{universe: u} }

// LatticeFill fills a cell with a lattice. A lattice behaves as a universe
// for filling purposes, the way the downstream solver treats a rectangular
// lattice as a universe subtype.
func LatticeFill(l *Lattice) Fill { return Fill{lattice: l} }

// Material returns the material variant, if set.
func (f Fill) Material() (*Material, bool) { return f.material, f.material != nil }

// Universe returns the universe variant, if set.
func (f Fill) Universe() (*Universe, bool) { return f.universe, f.universe != nil }

// Lattice returns the lattice variant, if set.
func (f Fill) Lattice() (*Lattice, bool) { return f.lattice, f.lattice != nil }

// IsZero reports whether no variant is set.
func (f Fill) IsZero() bool {
	return f.material == nil && f.universe == nil && f.lattice == nil
}

// Cell pairs a region with a fill.
type Cell struct {
	ID     int
	Name   string
	Region Region
	Fill   Fill
}

// NewCell allocates a cell with a fresh id.
func NewCell(alloc *IDAllocator, name string, region Region, fill Fill) *Cell {
	return &Cell{ID: alloc.Allocate(KindCell), Name: name, Region: region, Fill: fill}
}

// Universe is a named, self-contained, ordered collection of cells with
// unique ids, usable standalone or nested inside a lattice position. Its
// cell regions must not overlap and should together tile its bounding
// region.
type Universe struct {
	ID    int
	Name  string
	cells []*Cell
}

// NewUniverse allocates a universe with a fresh id and no cells.
func NewUniverse(alloc *IDAllocator, name string) *Universe {
	return &Universe{ID: alloc.Allocate(KindUniverse), Name: name}
}

// AddCell appends c, rejecting duplicate cell ids.
func (u *Universe) AddCell(c *Cell) error {
	for _, have := range u.cells {
		if have.ID == c.ID {
			return fmt.Errorf("pwr: universe %d (%s) already contains cell id %d",
				u.ID, u.Name, c.ID)
		}
	}
	u.cells = append(u.cells, c)
	return nil
}

// AddCells appends each cell in order, stopping at the first duplicate id.
func (u *Universe) AddCells(cs ...*Cell) error {
	for _, c := range cs {
		if err := u.AddCell(c); err != nil {
			return err
		}
	}
	return nil
}

// Cells returns the cells in insertion order.
func (u *Universe) Cells() []*Cell { return append([]*Cell(nil), u.cells...) }

// NumCells returns the number of cells.
func (u *Universe) NumCells() int { return len(u.cells) }

// Outermost returns the last cell, which by the pin-cell convention is the
// outer (moderator) region, or nil for an empty universe.
func (u *Universe) Outermost() *Cell {
	if len(u.cells) == 0 {
		return nil
	}
	return u.cells[len(u.cells)-1]
}

// Lattice is a regular 2D grid of universe references tiling a repeating
// structure. Universes holds rows in row-major order: the first index is the
// row (y, bottom row first), the second the column (x). The declared shape
// fixed at construction must match the array dimensions supplied to
// SetUniverses.
type Lattice struct {
	ID        int
	Name      string
	PitchX    float64
	PitchY    float64
	LowerLeft geom.Point
	nx, ny    int
	universes [][]*Universe
}

// NewLattice allocates an nx-by-ny lattice with a fresh universe-kind id
// (a lattice occupies the universe id space, since it fills cells the same
// way a universe does).
func NewLattice(alloc *IDAllocator, name string, pitchX, pitchY float64, lowerLeft geom.Point, nx, ny int) *Lattice {
	return &Lattice{
		ID:        alloc.Allocate(KindUniverse),
		Name:      name,
		PitchX:    pitchX,
		PitchY:    pitchY,
		LowerLeft: lowerLeft,
		nx:        nx,
		ny:        ny,
	}
}

// Shape returns the declared (nx, ny) dimensions.
func (l *Lattice) Shape() (nx, ny int) { return l.nx, l.ny }

// SetUniverses installs the row-major universe array, which must match the
// declared shape exactly.
func (l *Lattice) SetUniverses(u [][]*Universe) error {
	if len(u) != l.ny {
		return &ConfigurationError{Fields: []string{"universes"},
			Reason: fmt.Sprintf("lattice %s declares %d rows but %d were supplied",
				l.Name, l.ny, len(u))}
	}
	for j, row := range u {
		if len(row) != l.nx {
			return &ConfigurationError{Fields: []string{"universes"},
				Reason: fmt.Sprintf("lattice %s declares %d columns but row %d has %d",
					l.Name, l.nx, j, len(row))}
		}
	}
	l.universes = u
	return nil
}

// Universes returns the installed row-major universe array. The returned
// rows are the lattice's own; treat them as read-only.
func (l *Lattice) Universes() [][]*Universe { return l.universes }

// UniverseAt returns the universe occupying column i, row j.
func (l *Lattice) UniverseAt(i, j int) *Universe { return l.universes[j][i] }

// Bounds returns the rectangular xy extent the lattice tiles.
func (l *Lattice) Bounds() *geom.Bounds {
	return &geom.Bounds{
		Min: l.LowerLeft,
		Max: geom.Point{
			X: l.LowerLeft.X + l.PitchX*float64(l.nx),
			Y: l.LowerLeft.Y + l.PitchY*float64(l.ny),
		},
	}
}
