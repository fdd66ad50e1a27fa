/*
Copyright © 2017 the Raceway authors.
This file is part of Raceway.

Raceway is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

Raceway is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with Raceway.  If not, see <http://www.gnu.org/licenses/>.
*/

// Package steele provides the Steele (1962) photoinhibition light-response
// model for photosynthetic growth.
package steele

import (
	"math"

	"github.com/spatialmodel/raceway"
)

// Factor returns the Steele light limitation factor
// (I/Iopt)·exp(1 − I/Iopt) for photon flux par and optimum optimalPAR
// [µmol/m²/s]. The factor is 1 at the optimum and falls off on both the
// light-limited and the photoinhibited side.
func Factor(par, optimalPAR float64) float64 {
	if par <= 0 {
		return 0
	}
	r := par / optimalPAR
	return r * math.Exp(1-r)
}

// Response returns Factor as a growth-kinetics collaborator for the
// simulation engine.
func Response() raceway.LightResponse {
	return Factor
}
