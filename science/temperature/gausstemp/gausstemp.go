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

// Package gausstemp provides a Gaussian temperature-response model for
// photosynthetic growth.
package gausstemp

import (
	"math"

	"github.com/spatialmodel/raceway"
)

// Factor returns the Gaussian temperature limitation factor
// exp(−((T−Topt)/w)²) for temperature t, optimum optimum, and curve width
// w, all in °C. The factor is 1 at the optimum and symmetric around it.
func Factor(t, optimum, w float64) float64 {
	d := (t - optimum) / w
	return math.Exp(-d * d)
}

// Response returns Factor as a growth-kinetics collaborator for the
// simulation engine.
func Response() raceway.TemperatureResponse {
	return Factor
}
