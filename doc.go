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

// Package pwr builds constructive-solid-geometry descriptions of
// pressurized-water-reactor core components (fuel assemblies, spacer grids,
// the core baffle) for input to a Monte-Carlo transport solver.
//
// A model build is a single-threaded, one-shot batch: create one
// IDAllocator and one SurfaceCache, thread them through every constructor,
// hand the finished universes to the solver, and discard everything.
// Correctness depends on every component observing the same allocator and
// cache instances; a component holding a private copy will mint clashing
// ids or duplicate boundary surfaces.
package pwr
