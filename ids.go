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

import "fmt"

// EntityKind partitions the identifier space. Each kind has its own
// independent counter.
type EntityKind int

const (
	KindSurface EntityKind = iota
	KindCell
	KindMaterial
	KindUniverse
	numKinds
)

func (k EntityKind) String() string {
	switch k {
	case KindSurface:
		return "surface"
	case KindCell:
		return "cell"
	case KindMaterial:
		return "material"
	case KindUniverse:
		return "universe"
	}
	return fmt.Sprintf("EntityKind(%d)", int(k))
}

// IDAllocator issues unique, monotonically increasing integer identifiers,
// partitioned by entity kind. An id is never reused, even for duplicated
// entities. One allocator instance must be threaded through every component
// that creates entities during a model build; two components holding
// separate allocators will clash on ids. Each build must own a fresh
// allocator: re-entrant or parallel builds sharing one are unsupported.
type IDAllocator struct {
	next [numKinds]int
}

// NewIDAllocator returns an allocator whose first issued id for every kind
// is first. Ids below 1 are reserved by the downstream solver, so first
// values less than 1 are raised to 1.
func NewIDAllocator(first int) *IDAllocator {
	if first < 1 {
		first = 1
	}
	a := new(IDAllocator)
	for k := range a.next {
		a.next[k] = first
	}
	return a
}

// Allocate returns a fresh id for the given kind. It never fails; unknown
// kinds panic, as they indicate a programming error rather than bad input.
func (a *IDAllocator) Allocate(kind EntityKind) int {
	if kind < 0 || kind >= numKinds {
		panic(fmt.Sprintf("pwr: allocate: unknown entity kind %d", int(kind)))
	}
	id := a.next[kind]
	a.next[kind]++
	return id
}

// Duplicate copies a Surface, Cell, Material, or Universe, assigning the
// copy a fresh id of the matching kind from alloc. The copy is shallow in
// the same way a host-language object copy would be: a duplicated Universe
// gets a fresh cell slice holding the same cell pointers. Any other type
// returns a TypeError.
func Duplicate(orig any, alloc *IDAllocator) (any, error) {
	switch v := orig.(type) {
	case *Surface:
		d := *v
		d.ID = alloc.Allocate(KindSurface)
		return &d, nil
	case *Cell:
		d := *v
		d.ID = alloc.Allocate(KindCell)
		return &d, nil
	case *Material:
		d := *v
		d.Nuclides = append([]NuclideFraction(nil), v.Nuclides...)
		d.ID = alloc.Allocate(KindMaterial)
		return &d, nil
	case *Universe:
		d := &Universe{
			ID:    alloc.Allocate(KindUniverse),
			Name:  v.Name,
			cells: append([]*Cell(nil), v.cells...),
		}
		return d, nil
	default:
		return nil, &TypeError{
			Got:  fmt.Sprintf("%T", orig),
			Want: "*Surface, *Cell, *Material, or *Universe",
		}
	}
}
