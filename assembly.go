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
	"sort"

	"github.com/ctessum/geom"
	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/floats"
)

// Nozzle is an axial end-fitting capping an assembly above or below the
// active lattice region, modeled as a smeared material of the given height.
type Nozzle struct {
	Name     string
	Material *Material
	// Height is the axial extent (cm) of the fitting.
	Height float64
}

// Walls are the four bounding planes of an assembly's rectangular
// footprint.
type Walls struct {
	MinX, MaxX, MinY, MaxY *Surface
}

// Assembly builds one fuel assembly: lower/upper nozzles, a stack of
// lattices switched at axial elevations, spacer grids at axial midpoints,
// and the surrounding moderator, merged into one bounded universe.
//
// All fields are set before calling Build; Build validates them in one pass
// and reports every missing or malformed parameter at once.
type Assembly struct {
	// Key is the short unique name of this assembly as it appears in the
	// core lattice. Name, if empty, defaults to Key.
	Key  string
	Name string

	// UniverseID, if positive, is used for the finished universe instead
	// of allocating one.
	UniverseID int

	// Pitch is the pin pitch (cm); NPins the number of pins across.
	Pitch float64
	NPins int

	// Walls, if non-nil, are pre-existing bounding planes; otherwise they
	// are built at ±Pitch·NPins/2 through the shared surface cache.
	Walls *Walls

	// Lattices, bottom to top, with LatticeElevs the elevations (cm) of
	// each boundary relative to the bottom core plate. Each lattice starts
	// where the previous leaves off, so LatticeElevs must hold exactly
	// len(Lattices)+1 entries.
	Lattices     []*Lattice
	LatticeElevs []float64

	// Spacers, bottom to top, with SpacerMids the elevations (cm) of each
	// grid's axial midpoint. Must be the same length.
	Spacers    []*SpacerGrid
	SpacerMids []float64

	// LowerNozzle spans z=0 to min(LatticeElevs); UpperNozzle spans
	// max(LatticeElevs) upward by its height. Either may be nil; the lower
	// one only when the first lattice starts at z=0.
	LowerNozzle *Nozzle
	UpperNozzle *Nozzle

	// Moderator surrounds the assembly on all sides not otherwise filled.
	Moderator *Material

	// Alloc is the build's shared id allocator. Surfaces, if nil, is a
	// fresh cache over Alloc; supply the build-wide cache so wall and
	// spacer planes dedup across assemblies.
	Alloc    *IDAllocator
	Surfaces *SurfaceCache

	wallRegion  Region
	spacerElevs []float64
	allElevs    []float64

	// Memo tables: original pin-cell universe id → gridded universe, and
	// original lattice id → gridded lattice. A lattice shape repeated at
	// several axial levels is gridded only once.
	griddedPincells map[int]*Universe
	griddedLattices map[int]*Lattice
}

// Bounds returns the assembly's xy footprint.
func (a *Assembly) Bounds() *geom.Bounds {
	half := a.Pitch * float64(a.NPins) / 2
	return &geom.Bounds{
		Min: geom.Point{X: -half, Y: -half},
		Max: geom.Point{X: half, Y: half},
	}
}

// prebuild validates the configuration and derives the merged elevation
// list, the memo tables, and the wall region.
func (a *Assembly) prebuild() error {
	if a.Name == "" {
		a.Name = a.Key
	}

	var missing []string
	if a.Key == "" {
		missing = append(missing, "Key")
	}
	if a.Pitch <= 0 {
		missing = append(missing, "Pitch")
	}
	if a.NPins <= 0 {
		missing = append(missing, "NPins")
	}
	if len(a.Lattices) == 0 {
		missing = append(missing, "Lattices")
	}
	if len(a.LatticeElevs) == 0 {
		missing = append(missing, "LatticeElevs")
	}
	if a.Moderator == nil {
		missing = append(missing, "Moderator")
	}
	if a.Alloc == nil {
		missing = append(missing, "Alloc")
	}
	if a.LowerNozzle == nil && len(a.LatticeElevs) > 0 && floats.Min(a.LatticeElevs) != 0 {
		missing = append(missing, "LowerNozzle")
	}
	if len(missing) > 0 {
		return &ConfigurationError{Fields: missing,
			Reason: "the following parameters need to be set"}
	}

	if len(a.LatticeElevs) != len(a.Lattices)+1 {
		return &ConfigurationError{Fields: []string{"LatticeElevs"},
			Reason: fmt.Sprintf("must hold len(Lattices)+1 = %d entries, not %d",
				len(a.Lattices)+1, len(a.LatticeElevs))}
	}
	if len(a.Spacers) != len(a.SpacerMids) {
		return &ConfigurationError{Fields: []string{"SpacerMids"},
			Reason: fmt.Sprintf("must hold len(Spacers) = %d entries, not %d",
				len(a.Spacers), len(a.SpacerMids))}
	}
	if a.LowerNozzle != nil && a.LowerNozzle.Height != floats.Min(a.LatticeElevs) {
		return &ConfigurationError{Fields: []string{"LowerNozzle"},
			Reason: fmt.Sprintf("must terminate at min(LatticeElevs)=%g, but its height is %g",
				floats.Min(a.LatticeElevs), a.LowerNozzle.Height)}
	}

	// Merge lattice boundaries with the tops and bottoms of every spacer
	// band into one sorted, duplicate-free elevation list.
	a.spacerElevs = a.spacerElevs[:0]
	for i, g := range a.Spacers {
		mid := a.SpacerMids[i]
		a.spacerElevs = append(a.spacerElevs, mid-g.Height/2, mid+g.Height/2)
	}
	elevs := append([]float64(nil), a.LatticeElevs...)
	elevs = append(elevs, a.spacerElevs...)
	sort.Float64s(elevs)
	a.allElevs = elevs[:0:0]
	for i, z := range elevs {
		if i == 0 || z != elevs[i-1] {
			a.allElevs = append(a.allElevs, z)
		}
	}

	a.griddedPincells = make(map[int]*Universe)
	a.griddedLattices = make(map[int]*Lattice)

	if a.Surfaces == nil {
		a.Surfaces = NewSurfaceCache(a.Alloc)
	}
	if a.Walls == nil {
		half := a.Pitch * float64(a.NPins) / 2
		a.Walls = &Walls{
			MinX: a.Surfaces.XPlaneAt(-half, a.Name+" - min_x"),
			MaxX: a.Surfaces.XPlaneAt(+half, a.Name+" - max_x"),
			MinY: a.Surfaces.YPlaneAt(-half, a.Name+" - min_y"),
			MaxY: a.Surfaces.YPlaneAt(+half, a.Name+" - max_y"),
		}
	}
	a.wallRegion = And(Plus(a.Walls.MinX), Plus(a.Walls.MinY),
		Minus(a.Walls.MaxX), Minus(a.Walls.MaxY))
	return nil
}

// latticeFor returns the lattice whose elevation range contains z as its
// upper bound. An elevation outside every lattice's declared range is a
// fatal geometry error; there is no sensible fallback lattice.
func (a *Assembly) latticeFor(z float64) (*Lattice, error) {
	for i := 1; i < len(a.LatticeElevs); i++ {
		if z > a.LatticeElevs[i-1] && z <= a.LatticeElevs[i] {
			return a.Lattices[i-1], nil
		}
	}
	return nil, &GeometryError{Op: "Assembly.Build", Value: z,
		Msg: "axial elevation not covered by any lattice"}
}

// activeGrid returns the spacer grid whose band contains the axial interval
// (z0, z1], or nil. The interval endpoints come from the merged elevation
// list, so a band wholly contains the interval exactly when its bottom is at
// or below z0 and its top at or above z1: the most recently crossed band
// boundary was a bottom.
func (a *Assembly) activeGrid(z0, z1 float64) *SpacerGrid {
	for b, g := range a.Spacers {
		bot, top := a.spacerElevs[2*b], a.spacerElevs[2*b+1]
		if bot <= z0 && z1 <= top {
			return g
		}
	}
	return nil
}

// Build constructs the assembly from the ground up and packages it into one
// universe. It uses the caller-supplied UniverseID if given, else allocates
// one.
func (a *Assembly) Build() (*Universe, error) {
	if err := a.prebuild(); err != nil {
		return nil, err
	}

	var cells []*Cell
	bottom := a.Surfaces.ZPlaneAt(0, "bottom")
	last := bottom

	if a.LowerNozzle != nil {
		top := a.Surfaces.ZPlaneAt(a.LowerNozzle.Height, "")
		cells = append(cells, NewCell(a.Alloc, "lower nozzle",
			And(a.wallRegion, Plus(last), Minus(top)),
			MaterialFill(a.LowerNozzle.Material)))
		last = top
	}

	z0 := a.allElevs[0]
	for _, z1 := range a.allElevs[1:] {
		s := a.Surfaces.ZPlaneAt(z1, "")
		lat, err := a.latticeFor(z1)
		if err != nil {
			return nil, err
		}
		if grid := a.activeGrid(z0, z1); grid != nil {
			gridded, ok := a.griddedLattices[lat.ID]
			if !ok {
				gridded, err = ApplyGrid(lat, a.Pitch, a.NPins, grid,
					a.Alloc, a.griddedPincells, a.Surfaces)
				if err != nil {
					return nil, err
				}
				a.griddedLattices[lat.ID] = gridded
				logrus.WithFields(logrus.Fields{
					"lattice": lat.Name,
					"grid":    grid.Key,
				}).Debug("generated gridded lattice")
			}
			lat = gridded
		}
		cells = append(cells, NewCell(a.Alloc, lat.Name,
			And(a.wallRegion, Plus(last), Minus(s)),
			LatticeFill(lat)))
		last = s
		z0 = z1
	}

	if a.UpperNozzle != nil {
		top := a.Surfaces.ZPlaneAt(z0+a.UpperNozzle.Height, "")
		cells = append(cells, NewCell(a.Alloc, "upper nozzle",
			And(a.wallRegion, Plus(last), Minus(top)),
			MaterialFill(a.UpperNozzle.Material)))
		last = top
	}

	// Everything outside the walls, below the bottom plane, or above the
	// top of the stack is moderator, so the assembly is bounded on all
	// sides.
	cells = append(cells, NewCell(a.Alloc, a.Name+" mod",
		Or(Not(a.wallRegion), Plus(last), Minus(bottom)),
		MaterialFill(a.Moderator)))

	uid := a.UniverseID
	if uid <= 0 {
		uid = a.Alloc.Allocate(KindUniverse)
	}
	assembly := &Universe{ID: uid, Name: a.Name}
	if err := assembly.AddCells(cells...); err != nil {
		return nil, err
	}
	logrus.WithFields(logrus.Fields{
		"assembly": a.Name,
		"cells":    len(cells),
		"universe": uid,
	}).Debug("built assembly")
	return assembly, nil
}

// GriddedLattices returns the memo of lattices gridded during the last
// Build, keyed by original lattice id.
func (a *Assembly) GriddedLattices() map[int]*Lattice { return a.griddedLattices }

// GriddedPincells returns the memo of pin cells gridded during the last
// Build, keyed by original universe id.
func (a *Assembly) GriddedPincells() map[int]*Universe { return a.griddedPincells }
