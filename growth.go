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

// LightResponse maps a light intensity and the optimal intensity
// [µmol/m²/s] to a dimensionless growth limitation factor in [0, 1]. The
// engine is agnostic to which kinetic model supplies it.
type LightResponse func(par, optimalPAR float64) float64

// TemperatureResponse maps a temperature, the optimal temperature, and the
// response-curve width [°C] to a dimensionless growth limitation factor in
// [0, 1].
type TemperatureResponse func(temperature, optimum, width float64) float64

// Growth returns a manipulator that computes the hour's growth rates from
// the limitation factors and advances biomass by an explicit forward Euler
// step. Nutrient and pH limitation are fixed at 1 in this version of the
// model.
func Growth(light LightResponse, temp TemperatureResponse) SimulationManipulator {
	return func(s *Simulation) error {
		p := s.Pond
		g := &p.Growth

		g.LightFactor = light(p.Light.Average, p.OptimalPAR)
		g.TemperatureFactor = temp(p.Temperature, p.OptimalTemperature, p.TemperatureWidth)
		const nutrientFactor, phFactor = 1., 1.

		g.Gross = p.MaxGrowthRate * g.LightFactor * g.TemperatureFactor *
			nutrientFactor * phFactor
		g.Net = g.Gross - p.DeathRate
		// Only the lighted fraction of the depth grows; death applies to
		// the whole culture.
		g.Effective = g.Gross*p.Light.LightedFraction - p.DeathRate

		g.BiomassPreStep = p.Biomass
		p.Biomass += g.Effective / hoursPerDay * p.Biomass
		if p.Biomass < biomassFloor {
			p.Biomass = biomassFloor
		}
		g.BiomassPreHarvest = p.Biomass
		return nil
	}
}

// Productivity returns a manipulator that computes volumetric and areal
// productivity from the hour's effective growth rate and the pre-step
// concentration.
func Productivity() SimulationManipulator {
	return func(s *Simulation) error {
		g := &s.Pond.Growth
		g.VolumetricProductivity = g.Effective * g.BiomassPreStep
		// g/L/day is kg/m³/day, so depth and g/kg give g/m²/day.
		g.ArealProductivity = g.VolumetricProductivity * s.Pond.effectiveDepth() * gramsPerKilogram
		return nil
	}
}
