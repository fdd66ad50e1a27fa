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

import "math"

// HeatFlux holds the pond surface energy-exchange terms for one hour.
// Fluxes are positive in the direction named: gains warm the pond, losses
// cool it.
type HeatFlux struct {
	Solar       float64 `desc:"Shortwave gain after interface reflection" units:"W/m²"`
	LongwaveIn  float64 `desc:"Atmospheric longwave gain" units:"W/m²"`
	LongwaveOut float64 `desc:"Surface longwave loss" units:"W/m²"`
	Evaporative float64 `desc:"Latent heat loss" units:"W/m²"`
	Convective  float64 `desc:"Sensible heat loss" units:"W/m²"`
	Conductive  float64 `desc:"Ground conduction loss" units:"W/m²"`
	BiomassSink float64 `desc:"Energy stored chemically by growth" units:"W/m²"`
	Net         float64 `desc:"Net surface flux" units:"W/m²"`

	EvaporativeMJDay float64 `desc:"Latent heat loss" units:"MJ/m²/day"`
	ΔTemperature     float64 `desc:"Pond temperature change this hour" units:"°C"`
	WindSpeed2m      float64 `desc:"Wind speed converted to 2 m height" units:"m/s"`
}

// saturationVaporPressure returns the saturation vapor pressure [kPa] over
// water at temperature t [°C] (Magnus form).
func saturationVaporPressure(t float64) float64 {
	return 0.6108 * math.Exp(17.27*t/(t+237.3))
}

// windAt2m converts a 10 m wind speed to 2 m height with a power-law
// profile.
func windAt2m(u10 float64) float64 {
	return u10 * math.Pow(2./10., windProfileExponent)
}

// atmosphericEmissivity returns the sky longwave emissivity from the
// Brutsaert clear-sky relation with a quadratic cloud-cover correction:
// heavy overcast raises emission disproportionately.
func atmosphericEmissivity(airTemp, dewPoint, cloudFrac float64) float64 {
	eHPa := saturationVaporPressure(dewPoint) * 10 // kPa → hPa
	tK := airTemp + kelvinOffset
	clear := brutsaertCoeff * math.Pow(eHPa/tK, brutsaertExponent)
	return clear * (1 + cloudLongwaveGain*cloudFrac*cloudFrac)
}

// HeatTransfer returns a manipulator that computes every surface
// energy-exchange term, resolves them into an hourly temperature change,
// and applies it to the pond. It runs after Harvest but uses the
// pre-harvest biomass and the hour's effective growth rate.
func HeatTransfer() SimulationManipulator {
	return func(s *Simulation) error {
		p := s.Pond
		w := p.hourWeather
		h := &p.Heat

		h.WindSpeed2m = windAt2m(w.WindSpeed)

		// Shortwave: each radiation component crosses the interface with
		// its own Fresnel transmission instead of a flat albedo.
		h.Solar = w.DirectRadiation*p.Light.DirectTransmission +
			w.DiffuseRadiation*diffuseTransmission

		airK := w.AirTemperature + kelvinOffset
		pondK := p.Temperature + kelvinOffset
		h.LongwaveIn = atmosphericEmissivity(w.AirTemperature, w.DewPoint, w.CloudCover) *
			stefanBoltzmann * airK * airK * airK * airK
		h.LongwaveOut = waterEmissivity * stefanBoltzmann * pondK * pondK * pondK * pondK

		// Penman-type evaporation: vapor-pressure deficit between the
		// pond surface and the air, times a wind function.
		vpd := saturationVaporPressure(p.Temperature) - saturationVaporPressure(w.DewPoint)
		h.EvaporativeMJDay = (evapCalm + evapWindCoeff*h.WindSpeed2m) * vpd
		h.Evaporative = h.EvaporativeMJDay * mjPerDayToW

		// Sensible heat via the Bowen ratio, which couples it to the
		// evaporative flux through the same vapor-pressure deficit.
		if math.Abs(vpd) > 1e-6 {
			bowen := psychrometricConstant * (p.Temperature - w.AirTemperature) / vpd
			h.Convective = bowen * h.Evaporative
		} else {
			// Near-zero deficit: fall back to a McAdams convection
			// coefficient.
			h.Convective = (mcadamsBase + mcadamsWindCoeff*h.WindSpeed2m) *
				(p.Temperature - w.AirTemperature)
		}

		// Ground conduction over the bottom plus the submerged walls.
		areaRatio := p.Geom.SoilContactArea / p.Geom.SurfaceArea
		h.Conductive = soilConductivity / groundEffectiveDepth *
			(p.Temperature - w.SoilTemperature) * areaRatio

		// Growth stores a share of the absorbed light as chemical energy
		// instead of heat. g/L is kg/m³, so the increment × depth ×
		// heat of combustion is J/m² per hour.
		h.BiomassSink = 0
		if p.Growth.Effective > 0 {
			Δx := p.Growth.Effective / hoursPerDay * p.Growth.BiomassPreHarvest
			h.BiomassSink = biomassHeatOfCombustion * Δx * p.effectiveDepth() / secondsPerHour
		}

		h.Net = h.Solar + h.LongwaveIn - h.LongwaveOut - h.Evaporative -
			h.Convective - h.Conductive - h.BiomassSink

		h.ΔTemperature = h.Net * secondsPerHour /
			(waterDensity * waterHeatCapacity * p.effectiveDepth())
		p.Temperature += h.ΔTemperature
		return nil
	}
}
