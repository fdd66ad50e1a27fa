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

import "github.com/ctessum/unit"

// Dimensioned physical constants. Each is declared with its SI dimensions
// and unwrapped once at package initialization; the hourly integration
// then works on bare float64 values.
var (
	// stefanBoltzmann is the Stefan-Boltzmann constant [W/m²/K⁴].
	stefanBoltzmann = mustValue(unit.New(5.670367e-8,
		unit.Dimensions{unit.MassDim: 1, unit.TimeDim: -3, unit.TemperatureDim: -4}),
		unit.Dimensions{unit.MassDim: 1, unit.TimeDim: -3, unit.TemperatureDim: -4})

	// waterDensity is the density of water near 20°C [kg/m³].
	waterDensity = mustValue(unit.New(998.2,
		unit.Dimensions{unit.MassDim: 1, unit.LengthDim: -3}),
		unit.Dimensions{unit.MassDim: 1, unit.LengthDim: -3})

	// waterHeatCapacity is the specific heat capacity of water [J/kg/K].
	waterHeatCapacity = mustValue(unit.New(4184.,
		unit.Dimensions{unit.LengthDim: 2, unit.TimeDim: -2, unit.TemperatureDim: -1}),
		unit.Dimensions{unit.LengthDim: 2, unit.TimeDim: -2, unit.TemperatureDim: -1})

	// latentHeatVaporization is the latent heat of vaporization of
	// water [J/kg].
	latentHeatVaporization = mustValue(unit.New(2.45e6,
		unit.Dimensions{unit.LengthDim: 2, unit.TimeDim: -2}),
		unit.Dimensions{unit.LengthDim: 2, unit.TimeDim: -2})

	// biomassHeatOfCombustion is the energy stored in algal biomass by
	// photosynthesis [J/kg dry weight].
	biomassHeatOfCombustion = mustValue(unit.New(24.7e6,
		unit.Dimensions{unit.LengthDim: 2, unit.TimeDim: -2}),
		unit.Dimensions{unit.LengthDim: 2, unit.TimeDim: -2})

	// soilConductivity is the thermal conductivity of wet soil [W/m/K].
	soilConductivity = mustValue(unit.New(1.5,
		unit.Dimensions{unit.MassDim: 1, unit.LengthDim: 1, unit.TimeDim: -3, unit.TemperatureDim: -1}),
		unit.Dimensions{unit.MassDim: 1, unit.LengthDim: 1, unit.TimeDim: -3, unit.TemperatureDim: -1})
)

// mustValue checks that u carries the dimensions d and returns its SI value.
func mustValue(u *unit.Unit, d unit.Dimensions) float64 {
	if err := u.Check(d); err != nil {
		panic(err)
	}
	return u.Value()
}

// Optical constants.
const (
	airRefractiveIndex   = 1.000293 // refractive index of air
	waterRefractiveIndex = 1.333    // refractive index of water

	// diffuseIncidenceAngle is the single equivalent incidence angle
	// used for hemispherical diffuse radiation [degrees].
	diffuseIncidenceAngle = 60.

	// parFraction is the fraction of broadband solar irradiance that
	// falls in the photosynthetically active band.
	parFraction = 0.45

	// photonsPerJoulePAR converts PAR-band irradiance to photon flux
	// [µmol photons per J].
	photonsPerJoulePAR = 4.57

	// minUsablePAR is the photon flux below which the culture is
	// considered dark [µmol/m²/s].
	minUsablePAR = 1.0

	// maxPathLengthFactor caps the refraction-corrected optical path at
	// this multiple of the physical depth to avoid the grazing-incidence
	// singularity.
	maxPathLengthFactor = 100.

	// opticallyThinKL is the extinction×path product below which the
	// medium is treated as optically thin.
	opticallyThinKL = 0.001
)

// Heat balance constants.
const (
	waterEmissivity = 0.97 // longwave emissivity of a water surface

	// Brutsaert clear-sky atmospheric emissivity: ε = a(e/T)^b with
	// vapor pressure e in hPa and air temperature T in K.
	brutsaertCoeff    = 1.24
	brutsaertExponent = 1. / 7.

	// cloudLongwaveGain is the fractional increase in incoming longwave
	// at full overcast; the correction is quadratic in cloud fraction.
	cloudLongwaveGain = 0.2

	// Penman wind function f(u) = evapCalm + evapWindCoeff·u₂
	// [MJ/m²/day/kPa] with the 2 m wind speed u₂ in m/s.
	evapCalm      = 2.33
	evapWindCoeff = 1.65

	// psychrometricConstant couples the Bowen ratio to the
	// vapor-pressure deficit [kPa/K].
	psychrometricConstant = 0.066

	// McAdams free+forced convection coefficient h = a + b·u₂ [W/m²/K],
	// used when the vapor-pressure deficit is too small for a Bowen
	// ratio.
	mcadamsBase      = 5.7
	mcadamsWindCoeff = 3.8

	// groundEffectiveDepth is the soil depth over which the
	// pond-to-soil temperature gradient acts [m].
	groundEffectiveDepth = 0.5

	// windProfileExponent is the power-law exponent used to convert the
	// reported 10 m wind speed to 2 m height.
	windProfileExponent = 1. / 7.
)

// Unit conversions.
const (
	hoursPerDay      = 24.
	secondsPerHour   = 3600.
	mjPerDayToW      = 1.e6 / 86400. // MJ/m²/day → W/m²
	gPerLtoGPerM3    = 1000.         // g/L → g/m³
	m3ToL            = 1000.
	hectaresToM2     = 10000.
	kelvinOffset     = 273.15
	gramsPerKilogram = 1000.
)

// Engine policy constants.
const (
	// biomassFloor is the minimum allowed biomass concentration [g/L].
	// The engine never lets the culture go extinct; divisions by
	// concentration are safe everywhere downstream.
	biomassFloor = 0.01

	// harvestRecycleFrac is the fraction of water extracted with
	// harvested culture that is returned to the pond.
	harvestRecycleFrac = 0.8

	// Nightly harvest window [start, end) in hours of the day.
	harvestWindowStart = 20
	harvestWindowEnd   = 24
)
