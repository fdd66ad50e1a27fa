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
	"testing"

	"github.com/spatialmodel/raceway/weather"
)

// growthTestSim builds an initialized simulation whose light field can be
// set directly, bypassing the optics.
func growthTestSim(t *testing.T) *Simulation {
	t.Helper()
	s := &Simulation{
		Pond:      &Pond{Config: testConfig()},
		Weather:   []*weather.Day{darkDay()},
		Days:      1,
		InitFuncs: []SimulationManipulator{InitState()},
	}
	if err := s.Init(); err != nil {
		t.Fatal(err)
	}
	return s
}

func TestGrowthRates(t *testing.T) {
	s := growthTestSim(t)
	p := s.Pond
	p.Light.Average = p.OptimalPAR // light factor 0.5 for testLight
	p.Light.LightedFraction = 0.5

	if err := Growth(testLight, testTemp)(s); err != nil {
		t.Fatal(err)
	}
	g := p.Growth

	if different(g.LightFactor, 0.5, testTolerance) {
		t.Errorf("light factor %g; want 0.5", g.LightFactor)
	}
	if g.TemperatureFactor != 1 {
		t.Errorf("temperature factor %g; want 1", g.TemperatureFactor)
	}
	wantGross := p.MaxGrowthRate * 0.5
	if different(g.Gross, wantGross, testTolerance) {
		t.Errorf("gross rate %g; want %g", g.Gross, wantGross)
	}
	if different(g.Net, wantGross-p.DeathRate, testTolerance) {
		t.Errorf("net rate %g; want %g", g.Net, wantGross-p.DeathRate)
	}
	// Growth happens only in the lighted half of the depth; death happens
	// everywhere.
	wantEff := wantGross*0.5 - p.DeathRate
	if different(g.Effective, wantEff, testTolerance) {
		t.Errorf("effective rate %g; want %g", g.Effective, wantEff)
	}

	// Euler step against the pre-step concentration.
	wantBiomass := g.BiomassPreStep * (1 + wantEff/24)
	if different(p.Biomass, wantBiomass, testTolerance) {
		t.Errorf("biomass %g after step; want %g", p.Biomass, wantBiomass)
	}
	if g.BiomassPreHarvest != p.Biomass {
		t.Errorf("pre-harvest biomass %g; want %g", g.BiomassPreHarvest, p.Biomass)
	}
}

func TestGrowthDark(t *testing.T) {
	s := growthTestSim(t)
	p := s.Pond

	if err := Growth(testLight, testTemp)(s); err != nil {
		t.Fatal(err)
	}
	g := p.Growth
	if g.LightFactor != 0 || g.Gross != 0 {
		t.Errorf("light factor %g, gross %g in the dark; want 0, 0", g.LightFactor, g.Gross)
	}
	if different(g.Effective, -p.DeathRate, testTolerance) {
		t.Errorf("effective rate %g in the dark; want %g", g.Effective, -p.DeathRate)
	}
	want := g.BiomassPreStep * (1 - p.DeathRate/24)
	if different(p.Biomass, want, testTolerance) {
		t.Errorf("biomass %g after dark hour; want %g", p.Biomass, want)
	}
}

func TestGrowthFloor(t *testing.T) {
	s := growthTestSim(t)
	p := s.Pond
	p.Biomass = biomassFloor

	if err := Growth(testLight, testTemp)(s); err != nil {
		t.Fatal(err)
	}
	if p.Biomass != biomassFloor {
		t.Errorf("biomass %g fell below the floor %g", p.Biomass, biomassFloor)
	}
}

func TestProductivity(t *testing.T) {
	s := growthTestSim(t)
	p := s.Pond
	p.Light.Average = 3 * p.OptimalPAR // light factor 0.75 for testLight
	p.Light.LightedFraction = 1

	if err := Growth(testLight, testTemp)(s); err != nil {
		t.Fatal(err)
	}
	if err := Productivity()(s); err != nil {
		t.Fatal(err)
	}
	g := p.Growth

	wantVol := g.Effective * g.BiomassPreStep
	if different(g.VolumetricProductivity, wantVol, testTolerance) {
		t.Errorf("volumetric productivity %g; want %g", g.VolumetricProductivity, wantVol)
	}
	// g/L/day is kg/m³/day; over the culture depth that is g/m²/day.
	wantAreal := wantVol * p.effectiveDepth() * 1000
	if different(g.ArealProductivity, wantAreal, testTolerance) {
		t.Errorf("areal productivity %g; want %g", g.ArealProductivity, wantAreal)
	}
}
