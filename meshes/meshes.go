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

// Package meshes generates the stacked tally meshes covering a 3D assembly:
// uniform (x, y) pitch throughout, with sequential axial layers that may
// each use a different z-pitch.
package meshes

import (
	"fmt"

	"github.com/ctessum/geom"
	"gonum.org/v1/gonum/floats/scalar"
)

// MeshError reports a mesh layer that cannot be constructed.
type MeshError struct{ Msg string }

func (e *MeshError) Error() string { return "meshes: " + e.Msg }

// Mesh is one regular tally mesh.
type Mesh struct {
	ID        int
	LowerLeft geom.Point
	Z0        float64
	// Dimension is the number of cuts in x, y, z; Width the cut size (cm)
	// in each direction.
	Dimension [3]int
	Width     [3]float64
}

// Tally scores solver results over one mesh.
type Tally struct {
	ID     int
	Mesh   *Mesh
	Scores []string
}

// Group is a stack of uniform meshes covering an assembly. Layers are added
// bottom to top; each starts where the previous left off.
type Group struct {
	dx, dy float64
	nx, ny int

	lowerLeft geom.Point
	z0        float64
	z         float64

	nextID  int
	meshes  []*Mesh
	tallies []*Tally

	// Nzs and Dzs, when set, drive BuildGroup: parallel slices of cut
	// counts and cut heights per layer.
	Nzs []int
	Dzs []float64
}

// NewGroup returns an empty mesh group with the given (x, y) pitch and cut
// counts, lower-left corner, starting elevation, and first mesh id.
func NewGroup(pitchX, pitchY float64, nx, ny int, lowerLeft geom.Point, z0 float64, id0 int) *Group {
	return &Group{
		dx: pitchX, dy: pitchY,
		nx: nx, ny: ny,
		lowerLeft: lowerLeft,
		z0:        z0,
		z:         z0,
		nextID:    id0,
	}
}

// Meshes returns the meshes added so far, bottom to top.
func (g *Group) Meshes() []*Mesh { return append([]*Mesh(nil), g.meshes...) }

// Tallies returns one fission tally per mesh, in mesh order.
func (g *Group) Tallies() []*Tally { return append([]*Tally(nil), g.tallies...) }

// Height returns the current top elevation of the stack.
func (g *Group) Height() float64 { return g.z }

func (g *Group) emit(nz int, dz float64) {
	m := &Mesh{
		ID:        g.nextID,
		LowerLeft: g.lowerLeft,
		Z0:        g.z,
		Dimension: [3]int{g.nx, g.ny, nz},
		Width:     [3]float64{g.dx, g.dy, dz},
	}
	g.meshes = append(g.meshes, m)
	g.tallies = append(g.tallies, &Tally{ID: g.nextID, Mesh: m, Scores: []string{"fission"}})
	g.nextID++
	g.z += float64(nz) * dz
}

// AddMeshTo adds a layer of nz equal cuts reaching up to elevation z1.
func (g *Group) AddMeshTo(z1 float64, nz int) error {
	if z1 <= g.z {
		return &MeshError{Msg: fmt.Sprintf("z1 must be larger than %g", g.z)}
	}
	if nz <= 0 {
		return &MeshError{Msg: "nz must be positive"}
	}
	g.emit(nz, (z1-g.z)/float64(nz))
	return nil
}

// AddMeshLayers adds a layer of nz cuts of height dz each.
func (g *Group) AddMeshLayers(nz int, dz float64) error {
	if nz <= 0 || dz <= 0 {
		return &MeshError{Msg: "nz and dz must be positive"}
	}
	g.emit(nz, dz)
	return nil
}

// AddMeshSliced adds a layer of dz-high cuts reaching up to elevation z1,
// which must be an integer number of cuts away.
func (g *Group) AddMeshSliced(z1, dz float64) error {
	if z1 <= g.z {
		return &MeshError{Msg: fmt.Sprintf("z1 must be larger than %g", g.z)}
	}
	if dz <= 0 {
		return &MeshError{Msg: "dz must be positive"}
	}
	n := (z1 - g.z) / dz
	nz := int(n + 0.5)
	if nz == 0 || !scalar.EqualWithinAbs(n, float64(nz), 1e-9) {
		return &MeshError{Msg: fmt.Sprintf("cannot cut %g cm into slices of %g cm",
			z1-g.z, dz)}
	}
	g.emit(nz, dz)
	return nil
}

// BuildGroup builds the whole stack from the parallel Nzs and Dzs slices.
func (g *Group) BuildGroup() error {
	if len(g.Nzs) == 0 || len(g.Dzs) == 0 {
		return &MeshError{Msg: "Nzs and Dzs must be set before BuildGroup"}
	}
	if len(g.Nzs) != len(g.Dzs) {
		return &MeshError{Msg: "the length of Nzs must match the length of Dzs"}
	}
	for i := range g.Nzs {
		if err := g.AddMeshLayers(g.Nzs[i], g.Dzs[i]); err != nil {
			return err
		}
	}
	return nil
}
