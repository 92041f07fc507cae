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
	"errors"
	"testing"

	"github.com/ctessum/geom"
)

// newTestLattice fills an npins×npins lattice with the one pin cell.
func newTestLattice(alloc *IDAllocator, name string, pin *Universe, npins int) *Lattice {
	rows := make([][]*Universe, npins)
	for j := range rows {
		rows[j] = make([]*Universe, npins)
		for i := range rows[j] {
			rows[j][i] = pin
		}
	}
	half := testPitch * float64(npins) / 2
	lat := NewLattice(alloc, name, testPitch, testPitch,
		geom.Point{X: -half, Y: -half}, npins, npins)
	if err := lat.SetUniverses(rows); err != nil {
		panic(err)
	}
	return lat
}

func TestAssemblyMissingFields(t *testing.T) {
	a := &Assembly{}
	_, err := a.Build()
	var confErr *ConfigurationError
	if !errors.As(err, &confErr) {
		t.Fatalf("got %v; want a ConfigurationError", err)
	}
	want := []string{"Key", "Pitch", "NPins", "Lattices", "LatticeElevs", "Moderator", "Alloc"}
	for _, field := range want {
		found := false
		for _, got := range confErr.Fields {
			if got == field {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("missing-field list %v does not mention %s", confErr.Fields, field)
		}
	}
}

func TestAssemblyElevationCountMismatch(t *testing.T) {
	alloc := NewIDAllocator(1)
	cache := NewSurfaceCache(alloc)
	iron := testIron(alloc)
	mod := testModerator(alloc)
	pin := newTestPincell(alloc, cache, iron, mod)
	lat := newTestLattice(alloc, "L", pin, testNPins)

	a := &Assembly{
		Key:          "A1",
		Pitch:        testPitch,
		NPins:        testNPins,
		Lattices:     []*Lattice{lat},
		LatticeElevs: []float64{0, 200, 400}, // one lattice needs exactly 2
		Moderator:    mod,
		Alloc:        alloc,
		Surfaces:     cache,
	}
	_, err := a.Build()
	var confErr *ConfigurationError
	if !errors.As(err, &confErr) {
		t.Fatalf("got %v; want a ConfigurationError", err)
	}
}

func TestAssemblySpacerCountMismatch(t *testing.T) {
	alloc := NewIDAllocator(1)
	cache := NewSurfaceCache(alloc)
	iron := testIron(alloc)
	mod := testModerator(alloc)
	pin := newTestPincell(alloc, cache, iron, mod)
	lat := newTestLattice(alloc, "L", pin, testNPins)
	grid, err := NewSpacerGrid("g", testHeight, testSpacerMass(iron.Density, testNPins),
		iron, testPitch, testNPins)
	if err != nil {
		t.Fatal(err)
	}

	a := &Assembly{
		Key:          "A1",
		Pitch:        testPitch,
		NPins:        testNPins,
		Lattices:     []*Lattice{lat},
		LatticeElevs: []float64{0, 400},
		Spacers:      []*SpacerGrid{grid},
		SpacerMids:   []float64{100, 300}, // one grid needs exactly 1
		Moderator:    mod,
		Alloc:        alloc,
		Surfaces:     cache,
	}
	_, err = a.Build()
	var confErr *ConfigurationError
	if !errors.As(err, &confErr) {
		t.Fatalf("got %v; want a ConfigurationError", err)
	}
}

func TestAssemblyLowerNozzleRequired(t *testing.T) {
	alloc := NewIDAllocator(1)
	cache := NewSurfaceCache(alloc)
	iron := testIron(alloc)
	mod := testModerator(alloc)
	pin := newTestPincell(alloc, cache, iron, mod)
	lat := newTestLattice(alloc, "L", pin, testNPins)

	a := &Assembly{
		Key:          "A1",
		Pitch:        testPitch,
		NPins:        testNPins,
		Lattices:     []*Lattice{lat},
		LatticeElevs: []float64{10, 400}, // does not start at z=0
		Moderator:    mod,
		Alloc:        alloc,
		Surfaces:     cache,
	}
	_, err := a.Build()
	var confErr *ConfigurationError
	if !errors.As(err, &confErr) {
		t.Fatalf("got %v; want a ConfigurationError", err)
	}
	if len(confErr.Fields) != 1 || confErr.Fields[0] != "LowerNozzle" {
		t.Errorf("fields = %v; want [LowerNozzle]", confErr.Fields)
	}
}

func TestAssemblySingleLattice(t *testing.T) {
	alloc := NewIDAllocator(1)
	cache := NewSurfaceCache(alloc)
	iron := testIron(alloc)
	mod := testModerator(alloc)
	pin := newTestPincell(alloc, cache, iron, mod)
	lat := newTestLattice(alloc, "L", pin, testNPins)

	a := &Assembly{
		Key:          "A1",
		Pitch:        testPitch,
		NPins:        testNPins,
		Lattices:     []*Lattice{lat},
		LatticeElevs: []float64{0, 400},
		Moderator:    mod,
		Alloc:        alloc,
		Surfaces:     cache,
	}
	u, err := a.Build()
	if err != nil {
		t.Fatal(err)
	}
	if u.NumCells() != 2 {
		t.Fatalf("assembly has %d cells; want 2 (one axial layer + moderator)", u.NumCells())
	}

	layer, modCell := u.Cells()[0], u.Cells()[1]
	if fill, ok := layer.Fill.Lattice(); !ok || fill != lat {
		t.Error("axial layer is not filled with the original lattice")
	}
	if fill, ok := modCell.Fill.Material(); !ok || fill != mod {
		t.Error("outer cell is not filled with moderator")
	}

	// half-width = 1.26*17/2 = 10.71.
	inside := []struct {
		p geom.Point
		z float64
	}{
		{geom.Point{X: 0, Y: 0}, 200},
		{geom.Point{X: 10, Y: -10}, 1},
		{geom.Point{X: -10, Y: 10}, 399},
	}
	for _, pt := range inside {
		if !layer.Region.Contains(pt.p, pt.z) {
			t.Errorf("axial layer should contain %v z=%g", pt.p, pt.z)
		}
		if modCell.Region.Contains(pt.p, pt.z) {
			t.Errorf("moderator should not contain %v z=%g", pt.p, pt.z)
		}
	}
	outside := []struct {
		p geom.Point
		z float64
	}{
		{geom.Point{X: 11, Y: 0}, 200}, // outside the walls
		{geom.Point{X: 0, Y: 0}, 401},  // above the stack
		{geom.Point{X: 0, Y: 0}, -1},   // below the bottom plane
	}
	for _, pt := range outside {
		if layer.Region.Contains(pt.p, pt.z) {
			t.Errorf("axial layer should not contain %v z=%g", pt.p, pt.z)
		}
		if !modCell.Region.Contains(pt.p, pt.z) {
			t.Errorf("moderator should contain %v z=%g", pt.p, pt.z)
		}
	}
}

func TestAssemblyWithSpacerGrid(t *testing.T) {
	alloc := NewIDAllocator(1)
	cache := NewSurfaceCache(alloc)
	iron := testIron(alloc)
	mod := testModerator(alloc)
	pin := newTestPincell(alloc, cache, iron, mod)
	lat := newTestLattice(alloc, "L", pin, testNPins)
	grid, err := NewSpacerGrid("g1", testHeight, testSpacerMass(iron.Density, testNPins),
		iron, testPitch, testNPins)
	if err != nil {
		t.Fatal(err)
	}

	a := &Assembly{
		Key:          "A1",
		Pitch:        testPitch,
		NPins:        testNPins,
		Lattices:     []*Lattice{lat},
		LatticeElevs: []float64{0, 400},
		Spacers:      []*SpacerGrid{grid},
		SpacerMids:   []float64{200},
		Moderator:    mod,
		Alloc:        alloc,
		Surfaces:     cache,
	}
	u, err := a.Build()
	if err != nil {
		t.Fatal(err)
	}
	// Elevations 0, 200-h/2, 200+h/2, 400: three layers plus moderator.
	if u.NumCells() != 4 {
		t.Fatalf("assembly has %d cells; want 4", u.NumCells())
	}
	cells := u.Cells()
	if fill, ok := cells[0].Fill.Lattice(); !ok || fill != lat {
		t.Error("bottom layer should hold the ungridded lattice")
	}
	mid, ok := cells[1].Fill.Lattice()
	if !ok || mid == lat {
		t.Error("middle layer should hold the gridded lattice")
	}
	if mid.Name != "L-gridded" {
		t.Errorf("gridded lattice name = %q; want %q", mid.Name, "L-gridded")
	}
	if fill, ok := cells[2].Fill.Lattice(); !ok || fill != lat {
		t.Error("top layer should hold the ungridded lattice")
	}

	if len(a.GriddedLattices()) != 1 {
		t.Errorf("gridded-lattice memo holds %d entries; want 1", len(a.GriddedLattices()))
	}
	if len(a.GriddedPincells()) != 1 {
		t.Errorf("gridded-pincell memo holds %d entries; want 1", len(a.GriddedPincells()))
	}
	if a.GriddedLattices()[lat.ID] != mid {
		t.Error("gridded-lattice memo is not keyed by the original lattice id")
	}
}

func TestAssemblyGridRepeatedAcrossLevels(t *testing.T) {
	alloc := NewIDAllocator(1)
	cache := NewSurfaceCache(alloc)
	iron := testIron(alloc)
	mod := testModerator(alloc)
	pin := newTestPincell(alloc, cache, iron, mod)
	lat := newTestLattice(alloc, "L", pin, testNPins)
	grid, err := NewSpacerGrid("g", testHeight, testSpacerMass(iron.Density, testNPins),
		iron, testPitch, testNPins)
	if err != nil {
		t.Fatal(err)
	}

	a := &Assembly{
		Key:          "A1",
		Pitch:        testPitch,
		NPins:        testNPins,
		Lattices:     []*Lattice{lat},
		LatticeElevs: []float64{0, 400},
		Spacers:      []*SpacerGrid{grid, grid},
		SpacerMids:   []float64{100, 300},
		Moderator:    mod,
		Alloc:        alloc,
		Surfaces:     cache,
	}
	u, err := a.Build()
	if err != nil {
		t.Fatal(err)
	}
	// Two grid bands split the stack into five layers plus moderator.
	if u.NumCells() != 6 {
		t.Fatalf("assembly has %d cells; want 6", u.NumCells())
	}
	// The same lattice shape at two axial levels is gridded only once.
	if len(a.GriddedLattices()) != 1 {
		t.Errorf("gridded-lattice memo holds %d entries; want 1", len(a.GriddedLattices()))
	}
	lower, _ := u.Cells()[1].Fill.Lattice()
	upper, _ := u.Cells()[3].Fill.Lattice()
	if lower == nil || lower != upper {
		t.Error("both grid bands should hold the identical gridded lattice")
	}
}

func TestAssemblyNozzles(t *testing.T) {
	alloc := NewIDAllocator(1)
	cache := NewSurfaceCache(alloc)
	iron := testIron(alloc)
	mod := testModerator(alloc)
	pin := newTestPincell(alloc, cache, iron, mod)
	lat := newTestLattice(alloc, "L", pin, testNPins)

	a := &Assembly{
		Key:          "A1",
		Pitch:        testPitch,
		NPins:        testNPins,
		Lattices:     []*Lattice{lat},
		LatticeElevs: []float64{10, 400},
		LowerNozzle:  &Nozzle{Name: "lower", Material: iron, Height: 10},
		UpperNozzle:  &Nozzle{Name: "upper", Material: iron, Height: 15},
		Moderator:    mod,
		Alloc:        alloc,
		Surfaces:     cache,
	}
	u, err := a.Build()
	if err != nil {
		t.Fatal(err)
	}
	if u.NumCells() != 4 {
		t.Fatalf("assembly has %d cells; want 4 (two nozzles, one layer, moderator)", u.NumCells())
	}
	cells := u.Cells()
	if cells[0].Name != "lower nozzle" || cells[2].Name != "upper nozzle" {
		t.Errorf("cell order = %q, %q, %q, %q", cells[0].Name, cells[1].Name,
			cells[2].Name, cells[3].Name)
	}
	center := geom.Point{}
	if !cells[0].Region.Contains(center, 5) {
		t.Error("lower nozzle should contain z=5")
	}
	if !cells[2].Region.Contains(center, 410) {
		t.Error("upper nozzle should contain z=410 (400 + 15 high)")
	}
	if cells[2].Region.Contains(center, 416) {
		t.Error("upper nozzle should stop at z=415")
	}
	if !cells[3].Region.Contains(center, 416) {
		t.Error("moderator should take over above the upper nozzle")
	}
}

func TestAssemblyUniverseID(t *testing.T) {
	alloc := NewIDAllocator(1)
	cache := NewSurfaceCache(alloc)
	iron := testIron(alloc)
	mod := testModerator(alloc)
	pin := newTestPincell(alloc, cache, iron, mod)
	lat := newTestLattice(alloc, "L", pin, testNPins)

	a := &Assembly{
		Key:          "A1",
		UniverseID:   77,
		Pitch:        testPitch,
		NPins:        testNPins,
		Lattices:     []*Lattice{lat},
		LatticeElevs: []float64{0, 400},
		Moderator:    mod,
		Alloc:        alloc,
		Surfaces:     cache,
	}
	u, err := a.Build()
	if err != nil {
		t.Fatal(err)
	}
	if u.ID != 77 {
		t.Errorf("universe id = %d; want the caller-supplied 77", u.ID)
	}
}

func TestAssemblyElevationOutsideLattices(t *testing.T) {
	alloc := NewIDAllocator(1)
	cache := NewSurfaceCache(alloc)
	iron := testIron(alloc)
	mod := testModerator(alloc)
	pin := newTestPincell(alloc, cache, iron, mod)
	lat := newTestLattice(alloc, "L", pin, testNPins)
	grid, err := NewSpacerGrid("g", testHeight, testSpacerMass(iron.Density, testNPins),
		iron, testPitch, testNPins)
	if err != nil {
		t.Fatal(err)
	}

	a := &Assembly{
		Key:          "A1",
		Pitch:        testPitch,
		NPins:        testNPins,
		Lattices:     []*Lattice{lat},
		LatticeElevs: []float64{0, 400},
		Spacers:      []*SpacerGrid{grid},
		SpacerMids:   []float64{400}, // band top pokes above the last lattice
		Moderator:    mod,
		Alloc:        alloc,
		Surfaces:     cache,
	}
	_, err = a.Build()
	var geomErr *GeometryError
	if !errors.As(err, &geomErr) {
		t.Fatalf("got %v; want a GeometryError", err)
	}
}

func TestAssemblySharedSurfaces(t *testing.T) {
	alloc := NewIDAllocator(1)
	cache := NewSurfaceCache(alloc)
	iron := testIron(alloc)
	mod := testModerator(alloc)
	pin := newTestPincell(alloc, cache, iron, mod)

	build := func(key string) *Universe {
		a := &Assembly{
			Key:          key,
			Pitch:        testPitch,
			NPins:        testNPins,
			Lattices:     []*Lattice{newTestLattice(alloc, "L-"+key, pin, testNPins)},
			LatticeElevs: []float64{0, 400},
			Moderator:    mod,
			Alloc:        alloc,
			Surfaces:     cache,
		}
		u, err := a.Build()
		if err != nil {
			t.Fatal(err)
		}
		return u
	}
	build("A1")
	before := cache.Len()
	build("A2")
	// Identical footprint and stack: the second assembly mints no planes.
	if made := cache.Len() - before; made != 0 {
		t.Errorf("second assembly created %d new surfaces; want 0", made)
	}
}
