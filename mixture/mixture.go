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

// Package mixture blends several materials into one smeared material with
// volume-fraction-weighted density and mass-weighted nuclide fractions.
// Only weight fractions and densities in g/cm³ are supported.
package mixture

import (
	"fmt"

	"github.com/reactormodel/pwr"
	"gonum.org/v1/gonum/floats"
)

// New blends the given materials according to their volume fractions and
// returns the result as an ordinary material with a fresh id from alloc.
// The fractions need not sum to one; they are normalized. Nuclides shared
// between constituents are merged, keeping first-appearance order.
func New(alloc *pwr.IDAllocator, materials []*pwr.Material, vfracs []float64, name string) (*pwr.Material, error) {
	if len(materials) == 0 {
		return nil, fmt.Errorf("mixture: no materials to mix")
	}
	if len(materials) != len(vfracs) {
		return nil, fmt.Errorf("mixture: %d materials but %d volume fractions",
			len(materials), len(vfracs))
	}
	total := floats.Sum(vfracs)
	if total <= 0 {
		return nil, fmt.Errorf("mixture: volume fractions sum to %g; must be positive", total)
	}

	var density float64
	for i, m := range materials {
		density += m.Density * vfracs[i] / total
	}

	// Weight fraction of each constituent is its volume fraction times its
	// density; each nuclide's mixed fraction is its constituent fraction
	// scaled by that weight over the mixture density.
	index := make(map[string]int)
	var nuclides []pwr.NuclideFraction
	for i, m := range materials {
		wtf := vfracs[i] / total * m.Density
		for _, nf := range m.Nuclides {
			w := wtf * nf.Fraction / density
			if k, ok := index[nf.Nuclide]; ok {
				nuclides[k].Fraction += w
			} else {
				index[nf.Nuclide] = len(nuclides)
				nuclides = append(nuclides, pwr.NuclideFraction{
					Nuclide: nf.Nuclide, Fraction: w,
				})
			}
		}
	}

	return pwr.NewMaterial(alloc, name, density, nuclides), nil
}
