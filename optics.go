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

// LightField holds the optical state of the culture for one hour.
type LightField struct {
	SurfaceDirect      float64 `desc:"Direct PAR just below the surface" units:"µmol/m²/s"`
	SurfaceDiffuse     float64 `desc:"Diffuse PAR just below the surface" units:"µmol/m²/s"`
	Average            float64 `desc:"Volume-averaged culture PAR" units:"µmol/m²/s"`
	DirectTransmission float64 `desc:"Fresnel transmission of the direct beam" units:"fraction"`
	LightedFraction    float64 `desc:"Fraction of the depth receiving usable light" units:"fraction"`
}

// The hemispherical diffuse sky is modeled as arriving at one fixed
// equivalent incidence angle, so its interface transmission and path-length
// correction are computed once and reused every timestep.
var (
	diffuseTransmission = fresnelTransmission(diffuseIncidenceAngle)
	diffusePathFactor   = pathLengthFactor(diffuseIncidenceAngle)
)

// fresnelTransmission returns the fraction of unpolarized light transmitted
// across the air-water interface at the given incidence angle [degrees],
// averaging the s- and p-polarization reflectances. It returns 0 at grazing
// incidence (θ ≥ 90°) and for any angle past the total-internal-reflection
// condition.
func fresnelTransmission(incidenceDeg float64) float64 {
	if incidenceDeg >= 90 {
		return 0
	}
	if incidenceDeg < 0 {
		incidenceDeg = 0
	}
	θi := incidenceDeg * math.Pi / 180
	sinθt := airRefractiveIndex / waterRefractiveIndex * math.Sin(θi)
	if sinθt >= 1 {
		return 0
	}
	θt := math.Asin(sinθt)
	cosθi, cosθt := math.Cos(θi), math.Cos(θt)

	rs := (airRefractiveIndex*cosθi - waterRefractiveIndex*cosθt) /
		(airRefractiveIndex*cosθi + waterRefractiveIndex*cosθt)
	rp := (airRefractiveIndex*cosθt - waterRefractiveIndex*cosθi) /
		(airRefractiveIndex*cosθt + waterRefractiveIndex*cosθi)
	return 1 - (rs*rs+rp*rp)/2
}

// pathLengthFactor returns the ratio of the in-water optical path to the
// physical depth for light incident at the given angle [degrees]. The beam
// bends toward the surface normal on entry, so the factor is 1/cos of the
// refracted angle, capped to avoid the grazing-incidence singularity.
func pathLengthFactor(incidenceDeg float64) float64 {
	if incidenceDeg < 0 {
		incidenceDeg = 0
	}
	θi := incidenceDeg * math.Pi / 180
	sinθt := airRefractiveIndex / waterRefractiveIndex * math.Sin(θi)
	if sinθt >= 1 {
		return maxPathLengthFactor
	}
	f := 1 / math.Cos(math.Asin(sinθt))
	if f > maxPathLengthFactor {
		f = maxPathLengthFactor
	}
	return f
}

// beerLambertAvg returns the Beer-Lambert depth-averaged intensity over an
// optical path of length l [m] with combined extinction k [1/m]:
// I₀(1-e^(-kl))/(kl). When kl is numerically negligible the medium is
// optically thin and the surface intensity passes through unattenuated.
func beerLambertAvg(i0, k, l float64) float64 {
	kl := k * l
	if kl < opticallyThinKL {
		return i0
	}
	return i0 * (1 - math.Exp(-kl)) / kl
}

// lightedDepthFraction returns the fraction of the pond depth at which the
// intensity remains above the minimum usable PAR, clamped to [0, 1]. It is
// 0 whenever the surface intensity is already below the threshold.
func lightedDepthFraction(surfacePAR, k, depth float64) float64 {
	if surfacePAR <= minUsablePAR {
		return 0
	}
	if k <= 0 {
		return 1
	}
	z := math.Log(surfacePAR/minUsablePAR) / k
	frac := z / depth
	if frac > 1 {
		return 1
	}
	if frac < 0 {
		return 0
	}
	return frac
}

// extinction returns the combined extinction coefficient [1/m] for the
// current biomass concentration [g/L]. The biomass term needs the g/L →
// g/m³ conversion.
func extinction(biomass, biomassExtinction, backgroundExtinction float64) float64 {
	return biomassExtinction*biomass*gPerLtoGPerM3 + backgroundExtinction
}

// CultureLight returns a manipulator that converts the hour's surface
// irradiance into light available to the culture: Fresnel interface loss,
// refraction-corrected path length, and Beer-Lambert depth averaging, with
// separate chains for the direct beam and the diffuse sky.
func CultureLight() SimulationManipulator {
	return func(s *Simulation) error {
		p := s.Pond
		w := p.hourWeather

		var tDir float64
		incidence := 90 - w.SolarElevation
		if w.SolarElevation > 0 {
			tDir = fresnelTransmission(incidence)
		}

		p.Light.DirectTransmission = tDir
		p.Light.SurfaceDirect = w.DirectRadiation * parFraction * photonsPerJoulePAR * tDir
		p.Light.SurfaceDiffuse = w.DiffuseRadiation * parFraction * photonsPerJoulePAR * diffuseTransmission

		k := extinction(p.Biomass, p.BiomassExtinction, p.BackgroundExtinction)
		depth := p.effectiveDepth()

		lDir := depth * pathLengthFactor(incidence)
		lDif := depth * diffusePathFactor

		p.Light.Average = beerLambertAvg(p.Light.SurfaceDirect, k, lDir) +
			beerLambertAvg(p.Light.SurfaceDiffuse, k, lDif)
		p.Light.LightedFraction = lightedDepthFraction(
			p.Light.SurfaceDirect+p.Light.SurfaceDiffuse, k, depth)
		return nil
	}
}
