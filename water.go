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

// WaterFlux holds the pond water-mass balance terms for one hour.
type WaterFlux struct {
	EvaporationL float64 `desc:"Water evaporated this hour" units:"L"`
	RainfallL    float64 `desc:"Rain captured this hour" units:"L"`
	MakeupL      float64 `desc:"Makeup water added this hour" units:"L"`
	NetL         float64 `desc:"Net volume change this hour" units:"L"`
}

// WaterBalance returns a manipulator that updates the culture volume from
// evaporation (or condensation, when the pond has cooled below the dew
// point), rainfall, harvest water exchange, and makeup water. The water
// fluxes move water only, so any volume change rescales the biomass
// concentration to conserve standing mass. Makeup water offsets the current
// hour's losses and is only added when the pond is at or below its nominal
// volume; it is never negative, and it does not refill a standing deficit
// accumulated during hours spent above nominal volume.
func WaterBalance() SimulationManipulator {
	return func(s *Simulation) error {
		p := s.Pond
		wf := &p.Water
		w := p.hourWeather

		// Latent flux [W/m²] × area over an hour, through the latent
		// heat of vaporization and the density of water, gives liters.
		wf.EvaporationL = p.Heat.Evaporative * p.Geom.SurfaceArea * secondsPerHour /
			latentHeatVaporization / waterDensity * m3ToL

		// mm of rain on m² of surface is liters directly.
		wf.RainfallL = w.Precipitation * p.Geom.SurfaceArea

		harvestLossL := p.Harvest.WaterRemovedL - p.Harvest.WaterReturnedL

		wf.MakeupL = 0
		if p.Volume <= p.NominalVolume {
			if need := wf.EvaporationL + harvestLossL - wf.RainfallL; need > 0 {
				wf.MakeupL = need
			}
		}

		wf.NetL = wf.RainfallL + wf.MakeupL - wf.EvaporationL - harvestLossL

		oldVolume := p.Volume
		p.Volume += wf.NetL / m3ToL
		if p.Volume != oldVolume {
			// Rain, makeup, condensation, and evaporation carry no
			// biomass: conserve mass by scaling the concentration with
			// the volume ratio. Added water dilutes; lost water
			// concentrates.
			p.Biomass *= oldVolume / p.Volume
			if p.Biomass < biomassFloor {
				p.Biomass = biomassFloor
			}
		}
		return nil
	}
}
