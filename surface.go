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

import "math"

// SurfaceKind enumerates the axis-aligned surface primitives the engine
// works with.
type SurfaceKind int

const (
	XPlane SurfaceKind = iota
	YPlane
	ZPlane
	ZCylinder
)

func (k SurfaceKind) String() string {
	switch k {
	case XPlane:
		return "x-plane"
	case YPlane:
		return "y-plane"
	case ZPlane:
		return "z-plane"
	case ZCylinder:
		return "z-cylinder"
	}
	return "unknown surface kind"
}

// BoundaryType is the transport boundary condition applied on a surface.
type BoundaryType string

const (
	Transmission BoundaryType = "transmission"
	Vacuum       BoundaryType = "vacuum"
	Reflective   BoundaryType = "reflective"
)

// Surface is an axis-aligned plane or cylinder primitive. Value is the plane
// coordinate (x0, y0, or z0) for planes and the radius for cylinders, in cm.
// Surfaces are immutable after creation; do not modify one once it has been
// handed out by a SurfaceCache, because other cells may share it.
type Surface struct {
	ID       int
	Kind     SurfaceKind
	Value    float64
	Boundary BoundaryType
	Name     string
}

// DefaultEps is the number of decimal places at which two surface
// coordinates are considered equal.
const DefaultEps = 5

// SurfaceCache is an ordered collection of surface primitives with a
// lookup-or-create policy: requesting a surface whose orientation and
// coordinate (within a decimal tolerance) already exist returns the stored
// instance rather than allocating a new one. This sharing is the single most
// important correctness property of the engine: geometrically adjacent cells
// on either side of a shared boundary must reference the identical Surface,
// or the union of their regions will leave a gap or produce an inconsistent
// transport boundary.
type SurfaceCache struct {
	alloc    *IDAllocator
	surfaces []*Surface

	// Eps is the default decimal precision for coordinate comparison.
	// Zero means DefaultEps.
	Eps int
}

// NewSurfaceCache returns an empty cache minting ids from alloc.
func NewSurfaceCache(alloc *IDAllocator) *SurfaceCache {
	return &SurfaceCache{alloc: alloc}
}

// Surfaces returns the cached surfaces in creation order.
func (c *SurfaceCache) Surfaces() []*Surface {
	return append([]*Surface(nil), c.surfaces...)
}

// Len returns the number of cached surfaces.
func (c *SurfaceCache) Len() int { return len(c.surfaces) }

// roundTo rounds x to eps decimal places.
func roundTo(x float64, eps int) float64 {
	p := math.Pow(10, float64(eps))
	return math.Round(x*p) / p
}

// GetPlane returns a plane of the requested orientation and coordinate. If
// the cache already holds a plane of that orientation whose coordinate
// rounds to the same value at eps decimal places, the stored plane is
// returned; otherwise a new one is allocated and appended. An eps of zero
// or below selects the cache default. Non-plane kinds are a TypeError.
func (c *SurfaceCache) GetPlane(kind SurfaceKind, coord float64, boundary BoundaryType, name string, eps int) (*Surface, error) {
	switch kind {
	case XPlane, YPlane, ZPlane:
	default:
		return nil, &TypeError{Got: kind.String(), Want: "x-plane, y-plane, or z-plane"}
	}
	return c.lookupOrCreate(kind, coord, boundary, name, eps), nil
}

// GetZCylinder is the cylinder analogue of GetPlane, matching on radius.
func (c *SurfaceCache) GetZCylinder(r float64, boundary BoundaryType, name string, eps int) (*Surface, error) {
	if r <= 0 {
		return nil, &GeometryError{Op: "GetZCylinder", Value: r,
			Msg: "cylinder radius must be positive"}
	}
	return c.lookupOrCreate(ZCylinder, r, boundary, name, eps), nil
}

func (c *SurfaceCache) lookupOrCreate(kind SurfaceKind, val float64, boundary BoundaryType, name string, eps int) *Surface {
	if eps <= 0 {
		eps = c.Eps
	}
	if eps <= 0 {
		eps = DefaultEps
	}
	if boundary == "" {
		boundary = Transmission
	}
	want := roundTo(val, eps)
	for _, s := range c.surfaces {
		if s.Kind == kind && roundTo(s.Value, eps) == want {
			return s
		}
	}
	s := &Surface{
		ID:       c.alloc.Allocate(KindSurface),
		Kind:     kind,
		Value:    val,
		Boundary: boundary,
		Name:     name,
	}
	c.surfaces = append(c.surfaces, s)
	return s
}

// XPlaneAt, YPlaneAt, and ZPlaneAt are shorthands for GetPlane with a
// transmission boundary and the cache's default precision.

func (c *SurfaceCache) XPlaneAt(x0 float64, name string) *Surface {
	return c.lookupOrCreate(XPlane, x0, Transmission, name, 0)
}

func (c *SurfaceCache) YPlaneAt(y0 float64, name string) *Surface {
	return c.lookupOrCreate(YPlane, y0, Transmission, name, 0)
}

func (c *SurfaceCache) ZPlaneAt(z0 float64, name string) *Surface {
	return c.lookupOrCreate(ZPlane, z0, Transmission, name, 0)
}
