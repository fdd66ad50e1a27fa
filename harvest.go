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

// HarvestState holds the harvest activity of the current hour plus the
// per-night rate accumulator.
type HarvestState struct {
	Occurred       bool    `desc:"Biomass was removed this hour" units:""`
	EventStarted   bool    `desc:"A harvest night began this hour" units:""`
	MassKg         float64 `desc:"Dry mass harvested this hour" units:"kg"`
	WaterRemovedL  float64 `desc:"Culture water extracted this hour" units:"L"`
	WaterReturnedL float64 `desc:"Extracted water recycled back this hour" units:"L"`

	// nightRate is the concentration removed per window hour for the
	// current night [g/L/hour]. Set at the window's first hour, used
	// until the window closes.
	nightRate float64
}

// Harvest returns a manipulator that applies the configured harvest policy
// during the nightly window. At the window's first hour it computes a
// per-hour removal rate for the night; every window hour then removes
// min(rate, biomass above the floor), converts the removed concentration to
// harvested mass via the current volume, and tracks the extracted and
// recycled water volumes.
func Harvest() SimulationManipulator {
	return func(s *Simulation) error {
		p := s.Pond
		h := &p.Harvest
		h.Occurred = false
		h.EventStarted = false
		h.MassKg = 0
		h.WaterRemovedL = 0
		h.WaterReturnedL = 0

		if p.HarvestMode == HarvestNone {
			return nil
		}
		hour := s.Hour()
		if hour < harvestWindowStart || hour >= harvestWindowEnd {
			return nil
		}

		window := float64(harvestWindowEnd - harvestWindowStart)
		if hour == harvestWindowStart {
			switch p.HarvestMode {
			case HarvestSemiContinuous:
				// Harvest only the excess above the maintained floor,
				// spread over the window.
				h.nightRate = (p.Biomass - p.HarvestThreshold) / window
				if h.nightRate < 0 {
					h.nightRate = 0
				}
			case HarvestBatch:
				// Drain to the restart density once the trigger is
				// exceeded; otherwise skip the night.
				if p.Biomass > p.HarvestThreshold {
					h.nightRate = (p.Biomass - p.HarvestTarget) / window
				} else {
					h.nightRate = 0
				}
			}
			h.EventStarted = h.nightRate > 0
		}
		if h.nightRate <= 0 {
			return nil
		}

		Δx := h.nightRate
		if max := p.Biomass - biomassFloor; Δx > max {
			Δx = max
		}
		if Δx <= 0 {
			return nil
		}

		volumeL := p.Volume * m3ToL
		h.Occurred = true
		h.MassKg = Δx * volumeL / gramsPerKilogram
		// Removing concentration Δx from a well-mixed pond is extracting
		// the culture volume that carries that share of the mass.
		h.WaterRemovedL = volumeL * Δx / p.Biomass
		h.WaterReturnedL = h.WaterRemovedL * harvestRecycleFrac
		p.Biomass -= Δx
		return nil
	}
}
