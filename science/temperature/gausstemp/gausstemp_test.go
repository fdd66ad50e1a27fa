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

package gausstemp

import (
	"math"
	"testing"
)

func TestFactor(t *testing.T) {
	const optimum, width = 28., 8.

	if got := Factor(optimum, optimum, width); got != 1 {
		t.Errorf("factor at the optimum is %g; want 1", got)
	}
	// One curve width off the optimum gives e⁻¹, on either side.
	want := math.Exp(-1)
	if got := Factor(optimum+width, optimum, width); math.Abs(got-want) > 1e-12 {
		t.Errorf("factor one width above is %g; want %g", got, want)
	}
	if got := Factor(optimum-width, optimum, width); math.Abs(got-want) > 1e-12 {
		t.Errorf("factor one width below is %g; want %g", got, want)
	}
	// Symmetric around the optimum.
	for d := 1.; d < 20; d++ {
		above := Factor(optimum+d, optimum, width)
		below := Factor(optimum-d, optimum, width)
		if above != below {
			t.Fatalf("asymmetric response at ±%g °C: %g vs %g", d, above, below)
		}
		if above < 0 || above > 1 {
			t.Fatalf("factor %g outside [0, 1]", above)
		}
	}
	// A cold-tolerant strain (wider curve) is less limited off-optimum.
	if Factor(15, optimum, 12) <= Factor(15, optimum, width) {
		t.Error("wider response curve did not reduce limitation")
	}
}

func TestResponse(t *testing.T) {
	r := Response()
	if got := r(28, 28, 8); got != 1 {
		t.Errorf("response at the optimum is %g; want 1", got)
	}
}
