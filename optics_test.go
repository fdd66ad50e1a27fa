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

package raceway

import (
	"math"
	"testing"

	"github.com/spatialmodel/raceway/weather"
)

func TestFresnelTransmission(t *testing.T) {
	// At normal incidence the air-water interface transmits about 98%.
	if got := fresnelTransmission(0); math.Abs(got-0.9797) > 1e-3 {
		t.Errorf("transmission at 0° is %g; want ≈0.9797", got)
	}
	if got := fresnelTransmission(90); got != 0 {
		t.Errorf("transmission at 90° is %g; want 0", got)
	}
	if got := fresnelTransmission(95); got != 0 {
		t.Errorf("transmission past grazing is %g; want 0", got)
	}

	// Transmission can only fall as the incidence angle steepens.
	prev := 1.
	for deg := 0.; deg <= 90; deg++ {
		got := fresnelTransmission(deg)
		if got > prev+testTolerance {
			t.Fatalf("transmission rose from %g to %g at %g°", prev, got, deg)
		}
		if got < 0 || got > 1 {
			t.Fatalf("transmission %g at %g° outside [0,1]", got, deg)
		}
		prev = got
	}
}

func TestPathLengthFactor(t *testing.T) {
	if got := pathLengthFactor(0); different(got, 1, testTolerance) {
		t.Errorf("path factor at 0° is %g; want 1", got)
	}
	// Refraction keeps the in-water angle below the critical angle, so
	// even grazing incidence stays finite and under the cap.
	got := pathLengthFactor(89.9)
	if got <= 1 || got > maxPathLengthFactor {
		t.Errorf("path factor near grazing is %g; want in (1, %g]", got, maxPathLengthFactor)
	}
	prev := 0.
	for deg := 0.; deg <= 89; deg++ {
		f := pathLengthFactor(deg)
		if f < prev {
			t.Fatalf("path factor fell from %g to %g at %g°", prev, f, deg)
		}
		prev = f
	}
}

func TestBeerLambertAvg(t *testing.T) {
	// Optically thin: the surface intensity passes through unattenuated.
	if got := beerLambertAvg(500, 0, 0.2); got != 500 {
		t.Errorf("optically thin average %g; want 500", got)
	}
	if got := beerLambertAvg(500, 1e-6, 0.2); got != 500 {
		t.Errorf("optically thin average %g; want 500", got)
	}

	// Optically thick: the average tends to I₀/(kl).
	const i0, k, l = 500., 50., 0.2 // kl = 10
	want := i0 * (1 - math.Exp(-10)) / 10
	if got := beerLambertAvg(i0, k, l); different(got, want, testTolerance) {
		t.Errorf("optically thick average %g; want %g", got, want)
	}

	// The average is bounded by the surface intensity and decreases with
	// extinction.
	prev := 500.
	for kk := 1.; kk < 100; kk += 5 {
		got := beerLambertAvg(500, kk, 0.2)
		if got > prev || got <= 0 {
			t.Fatalf("average %g at k=%g; want positive and non-increasing from %g", got, kk, prev)
		}
		prev = got
	}
}

func TestLightedDepthFraction(t *testing.T) {
	// Below the usable threshold nothing is lighted.
	if got := lightedDepthFraction(0.5, 10, 0.2); got != 0 {
		t.Errorf("fraction %g below threshold; want 0", got)
	}
	// Clear water: the whole depth is lighted.
	if got := lightedDepthFraction(1000, 0, 0.2); got != 1 {
		t.Errorf("fraction %g with no extinction; want 1", got)
	}
	// A dilute culture is lighted through: ln(1000)/1 ≫ 0.2 m.
	if got := lightedDepthFraction(1000, 1, 0.2); got != 1 {
		t.Errorf("fraction %g in dilute culture; want 1", got)
	}
	// A dense culture is lighted only partway down.
	want := math.Log(1000) / 100 / 0.2
	if got := lightedDepthFraction(1000, 100, 0.2); different(got, want, testTolerance) {
		t.Errorf("fraction %g in dense culture; want %g", got, want)
	}
}

func TestExtinction(t *testing.T) {
	// 0.5 g/L at 0.05 m²/g plus 0.2 /m background.
	if got := extinction(0.5, 0.05, 0.2); different(got, 25.2, testTolerance) {
		t.Errorf("extinction %g; want 25.2", got)
	}
	if got := extinction(0, 0.05, 0.2); got != 0.2 {
		t.Errorf("extinction %g with no biomass; want background 0.2", got)
	}
}

// TestCultureLightNight checks that below the horizon the direct beam is
// fully blocked while the diffuse sky still transmits.
func TestCultureLightNight(t *testing.T) {
	s := &Simulation{
		Pond: &Pond{Config: testConfig()},
		Weather: []*weather.Day{constantDay(weather.Hour{
			SolarElevation:   -5,
			DirectRadiation:  10, // e.g. horizon glow in the data
			DiffuseRadiation: 20,
		})},
		Days:      1,
		InitFuncs: []SimulationManipulator{InitState()},
	}
	if err := s.Init(); err != nil {
		t.Fatal(err)
	}
	if err := SelectWeather()(s); err != nil {
		t.Fatal(err)
	}
	if err := CultureLight()(s); err != nil {
		t.Fatal(err)
	}
	l := s.Pond.Light
	if l.DirectTransmission != 0 || l.SurfaceDirect != 0 {
		t.Errorf("direct transmission %g, direct PAR %g below horizon; want 0, 0",
			l.DirectTransmission, l.SurfaceDirect)
	}
	if l.SurfaceDiffuse <= 0 {
		t.Errorf("diffuse PAR %g; want > 0", l.SurfaceDiffuse)
	}
}

// TestCultureLightDay checks the daytime chain end to end: transmitted PAR
// at the surface, depth-averaged PAR below it, and a lighted fraction
// consistent with the surface intensity.
func TestCultureLightDay(t *testing.T) {
	s := &Simulation{
		Pond: &Pond{Config: testConfig()},
		Weather: []*weather.Day{constantDay(weather.Hour{
			SolarElevation:   60,
			DirectRadiation:  700,
			DiffuseRadiation: 120,
		})},
		Days:      1,
		InitFuncs: []SimulationManipulator{InitState()},
	}
	if err := s.Init(); err != nil {
		t.Fatal(err)
	}
	if err := SelectWeather()(s); err != nil {
		t.Fatal(err)
	}
	if err := CultureLight()(s); err != nil {
		t.Fatal(err)
	}
	l := s.Pond.Light

	wantDirect := 700 * parFraction * photonsPerJoulePAR * fresnelTransmission(30)
	if different(l.SurfaceDirect, wantDirect, testTolerance) {
		t.Errorf("direct PAR %g; want %g", l.SurfaceDirect, wantDirect)
	}
	if l.Average <= 0 || l.Average >= l.SurfaceDirect+l.SurfaceDiffuse {
		t.Errorf("average PAR %g; want in (0, %g)", l.Average, l.SurfaceDirect+l.SurfaceDiffuse)
	}
	if l.LightedFraction <= 0 || l.LightedFraction > 1 {
		t.Errorf("lighted fraction %g; want in (0, 1]", l.LightedFraction)
	}
}
