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

// Sense is the signed side of a surface: Positive is the side where the
// governing coordinate exceeds the surface constant (outside, for a
// cylinder).
type Sense int

const (
	Negative Sense = -1
	Positive Sense = 1
)

// Region is a boolean expression over signed half-spaces of surfaces.
// Regions are immutable value expressions with no identity; build them with
// Plus, Minus, And, Or, and Not. Contains evaluates membership of a point,
// with the horizontal coordinates carried in a geom.Point and the elevation
// separate, matching how the downstream solver samples the geometry.
type Region interface {
	Contains(p geom.Point, z float64) bool
	// Equal reports structural equality: same expression shape over the
	// same surfaces with the same senses.
	Equal(o Region) bool
}

// Halfspace is the leaf region on one signed side of a surface.
type Halfspace struct {
	surface *Surface
	sense   Sense
}

// Plus returns the positive half-space of s.
func Plus(s *Surface) Region { return Halfspace{surface: s, sense: Positive} }

// Minus returns the negative half-space of s.
func Minus(s *Surface) Region { return Halfspace{surface: s, sense: Negative} }

// Surface returns the surface this half-space is bounded by.
func (h Halfspace) Surface() *Surface { return h.surface }

// Sense returns which side of the surface this half-space is.
func (h Halfspace) Sense() Sense { return h.sense }

func (h Halfspace) Contains(p geom.Point, z float64) bool {
	var v float64
	switch h.surface.Kind {
	case XPlane:
		v = p.X - h.surface.Value
	case YPlane:
		v = p.Y - h.surface.Value
	case ZPlane:
		v = z - h.surface.Value
	case ZCylinder:
		v = math.Hypot(p.X, p.Y) - h.surface.Value
	}
	if h.sense == Positive {
		return v > 0
	}
	return v < 0
}

func (h Halfspace) Equal(o Region) bool {
	ho, ok := o.(Halfspace)
	return ok && ho.surface == h.surface && ho.sense == h.sense
}

// Intersection is the boolean AND of its operands.
type Intersection struct {
	regions []Region
}

// And intersects the given regions.
func And(rs ...Region) Region {
	return Intersection{regions: append([]Region(nil), rs...)}
}

// Regions returns the operands in order.
func (r Intersection) Regions() []Region { return append([]Region(nil), r.regions...) }

func (r Intersection) Contains(p geom.Point, z float64) bool {
	for _, sub := range r.regions {
		if !sub.Contains(p, z) {
			return false
		}
	}
	return true
}

func (r Intersection) Equal(o Region) bool {
	ro, ok := o.(Intersection)
	return ok && regionsEqual(r.regions, ro.regions)
}

// Union is the boolean OR of its operands.
type Union struct {
	regions []Region
}

// Or unions the given regions.
func Or(rs ...Region) Region {
	return Union{regions: append([]Region(nil), rs...)}
}

// Regions returns the operands in order.
func (r Union) Regions() []Region { return append([]Region(nil), r.regions...) }

func (r Union) Contains(p geom.Point, z float64) bool {
	for _, sub := range r.regions {
		if sub.Contains(p, z) {
			return true
		}
	}
	return false
}

func (r Union) Equal(o Region) bool {
	ro, ok := o.(Union)
	return ok && regionsEqual(r.regions, ro.regions)
}

// Complement is the boolean NOT of its operand.
type Complement struct {
	region Region
}

// Not complements r.
func Not(r Region) Region { return Complement{region: r} }

// Region returns the complemented operand.
func (r Complement) Region() Region { return r.region }

func (r Complement) Contains(p geom.Point, z float64) bool {
	return !r.region.Contains(p, z)
}

func (r Complement) Equal(o Region) bool {
	ro, ok := o.(Complement)
	return ok && r.region.Equal(ro.region)
}

func regionsEqual(a, b []Region) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !a[i].Equal(b[i]) {
			return false
		}
	}
	return true
}
