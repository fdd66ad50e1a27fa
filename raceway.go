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

// Package raceway implements a deterministic hourly simulator for open
// raceway algae-cultivation ponds. It couples light transport through the
// culture, photosynthetic growth kinetics, the pond surface energy balance,
// and the water-mass balance over multi-day horizons driven by historical
// weather data. The pond is treated as well-mixed; the engine performs no
// I/O and, given identical configuration and weather input, its output is
// bit-for-bit reproducible.
package raceway

import (
	"errors"
	"fmt"
	"time"

	"github.com/spatialmodel/raceway/weather"
)

// Version gives the model version number.
const Version = "1.1.0"

// Harvest policy selectors.
const (
	HarvestNone = "none"
	// HarvestSemiContinuous removes only the excess above a maintained
	// floor density each night.
	HarvestSemiContinuous = "semi-continuous"
	// HarvestBatch drains the pond to a restart density once a trigger
	// density is reached.
	HarvestBatch = "batch"
)

// Configuration validation errors.
var (
	ErrNonPositiveGeometry = errors.New("raceway: pond area, aspect ratio, depth, and berm width must be positive")
	ErrNonPositiveKinetics = errors.New("raceway: growth-kinetics parameters must be positive")
	ErrUnknownHarvestMode  = errors.New("raceway: unknown harvest mode")
)

// Config holds the immutable parameters of one simulation run. It is
// created once at simulation start and never mutated.
type Config struct {
	// PondAreaHa is the reference pond surface area [hectares].
	PondAreaHa float64

	// AspectRatio is the ratio of total racetrack length to channel
	// width [dimensionless].
	AspectRatio float64

	// Depth is the culture depth [m].
	Depth float64

	// BermWidth is the width of the center berm dividing the straight
	// channels [m].
	BermWidth float64

	// InitialBiomass is the starting biomass concentration [g/L].
	InitialBiomass float64

	// InitialTemperature is the starting pond temperature [°C].
	InitialTemperature float64

	// MaxGrowthRate is the maximum specific growth rate under optimal
	// conditions [1/day].
	MaxGrowthRate float64

	// OptimalPAR is the light intensity at which growth peaks
	// [µmol/m²/s].
	OptimalPAR float64

	// OptimalTemperature is the temperature at which growth peaks [°C].
	OptimalTemperature float64

	// TemperatureWidth is the width of the temperature response curve
	// [°C].
	TemperatureWidth float64

	// DeathRate is the fixed specific decay rate [1/day].
	DeathRate float64

	// BiomassExtinction is the light extinction cross-section of the
	// biomass [m²/g].
	BiomassExtinction float64

	// BackgroundExtinction is the extinction of the water itself [1/m].
	BackgroundExtinction float64

	// HarvestMode selects the harvest policy: "none", "semi-continuous",
	// or "batch".
	HarvestMode string

	// HarvestThreshold is the concentration that triggers (batch) or is
	// maintained by (semi-continuous) harvesting [g/L].
	HarvestThreshold float64

	// HarvestTarget is the restart concentration a batch harvest drains
	// the pond down to [g/L].
	HarvestTarget float64
}

// Validate returns an error if the configuration cannot produce a
// physically meaningful simulation.
func (c *Config) Validate() error {
	if c.PondAreaHa <= 0 || c.AspectRatio <= 0 || c.Depth <= 0 || c.BermWidth <= 0 {
		return ErrNonPositiveGeometry
	}
	if c.MaxGrowthRate <= 0 || c.OptimalPAR <= 0 || c.TemperatureWidth <= 0 {
		return ErrNonPositiveKinetics
	}
	switch c.HarvestMode {
	case HarvestNone, HarvestSemiContinuous, HarvestBatch:
	default:
		return fmt.Errorf("%w %q", ErrUnknownHarvestMode, c.HarvestMode)
	}
	return nil
}

// GrowthState holds the kinetic state of the culture for one hour.
type GrowthState struct {
	LightFactor       float64 `desc:"Light limitation factor" units:"fraction"`
	TemperatureFactor float64 `desc:"Temperature limitation factor" units:"fraction"`
	Gross             float64 `desc:"Gross specific growth rate" units:"1/day"`
	Net               float64 `desc:"Gross rate minus death rate" units:"1/day"`
	Effective         float64 `desc:"Lighted-fraction-scaled net rate" units:"1/day"`

	VolumetricProductivity float64 `desc:"Volumetric productivity" units:"g/L/day"`
	ArealProductivity      float64 `desc:"Areal productivity" units:"g/m²/day"`

	// BiomassPreStep is the concentration before this hour's Euler step;
	// productivity is computed against it.
	BiomassPreStep float64
	// BiomassPreHarvest is the concentration after growth but before any
	// harvest removal; the heat balance uses it.
	BiomassPreHarvest float64
}

// Pond holds the evolving state of a single well-mixed raceway pond. It is
// initialized from a Config, mutated exactly once per simulated hour by the
// engine's manipulator pipeline, and never touched by anything else.
type Pond struct {
	Config
	Geom Geometry

	Biomass     float64 `desc:"Biomass concentration" units:"g/L"`
	Temperature float64 `desc:"Pond temperature" units:"°C"`
	Volume      float64 `desc:"Culture volume" units:"m³"`

	// NominalVolume is the design volume; makeup water is only added
	// when the pond is at or below it.
	NominalVolume float64 `desc:"Design culture volume" units:"m³"`

	Light   LightField
	Growth  GrowthState
	Heat    HeatFlux
	Water   WaterFlux
	Harvest HarvestState

	hourWeather *weather.Hour
}

// effectiveDepth recovers the culture depth from the volume/surface-area
// ratio so it tracks volume drift from evaporation and rainfall.
func (p *Pond) effectiveDepth() float64 {
	return p.Volume / p.Geom.SurfaceArea
}

// SimulationManipulator is a function that operates on a simulation: one
// step of the per-hour update pipeline, an initializer, or a cleanup
// action.
type SimulationManipulator func(s *Simulation) error

// Simulation is a deterministic forward integrator for one pond. InitFuncs
// run once before integration, HourFuncs run in order once per simulated
// hour, and CleanupFuncs run once after the final hour.
type Simulation struct {
	Pond *Pond

	// Weather is the supplied array of weather days; the engine indexes
	// it read-only and cycles through it if Days exceeds the data.
	Weather []*weather.Day

	// Days is the simulation horizon; the run produces exactly Days×24
	// timestep records.
	Days int

	InitFuncs    []SimulationManipulator
	HourFuncs    []SimulationManipulator
	CleanupFuncs []SimulationManipulator

	// Records is the append-only simulation trace.
	Records []*TimestepRecord

	// Summary holds aggregate statistics; it is filled by the Summarize
	// cleanup manipulator.
	Summary *Summary

	day, hour int
}

// Day returns the simulated day index of the current step.
func (s *Simulation) Day() int { return s.day }

// Hour returns the hour of day of the current step.
func (s *Simulation) Hour() int { return s.hour }

// Init runs the initialization functions.
func (s *Simulation) Init() error {
	for _, f := range s.InitFuncs {
		if err := f(s); err != nil {
			return err
		}
	}
	return nil
}

// Run integrates the pond state forward hour by hour until the horizon is
// reached. There is no early termination and no failure state in the
// physics; an error can only come from a caller-supplied manipulator.
func (s *Simulation) Run() error {
	for d := 0; d < s.Days; d++ {
		for h := 0; h < 24; h++ {
			s.day, s.hour = d, h
			for _, f := range s.HourFuncs {
				if err := f(s); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

// Cleanup runs the cleanup functions.
func (s *Simulation) Cleanup() error {
	for _, f := range s.CleanupFuncs {
		if err := f(s); err != nil {
			return err
		}
	}
	return nil
}

// InitState returns a manipulator that validates the configuration,
// derives the pond geometry, and sets the initial pond state.
func InitState() SimulationManipulator {
	return func(s *Simulation) error {
		p := s.Pond
		if err := p.Config.Validate(); err != nil {
			return err
		}
		if len(s.Weather) == 0 {
			return fmt.Errorf("raceway: no weather data supplied")
		}
		p.Geom = NewGeometry(p.PondAreaHa, p.AspectRatio, p.Depth, p.BermWidth)
		p.Biomass = p.InitialBiomass
		if p.Biomass < biomassFloor {
			p.Biomass = biomassFloor
		}
		p.Temperature = p.InitialTemperature
		p.Volume = p.Geom.Volume
		p.NominalVolume = p.Geom.Volume
		return nil
	}
}

// SelectWeather returns a manipulator that picks the weather record for the
// current (day, hour), cycling through the supplied days by modulo indexing
// when the horizon exceeds the data: the engine never fails for lack of
// weather, it reuses days.
func SelectWeather() SimulationManipulator {
	return func(s *Simulation) error {
		s.Pond.hourWeather = &weather.Cycle(s.Weather, s.day).Hours[s.hour]
		return nil
	}
}

// SimulationStatus holds information about the progress of a simulation.
type SimulationStatus struct {
	Day, Hour   int
	Biomass     float64 // [g/L]
	Temperature float64 // [°C]
	VolumeL     float64 // [L]
	Walltime    time.Duration
}

func (s *SimulationStatus) String() string {
	return fmt.Sprintf("Day %-4d hour %-2d  biomass=%.3f g/L  temp=%.2f °C  volume=%.0f L  walltime=%v",
		s.Day, s.Hour, s.Biomass, s.Temperature, s.VolumeL, s.Walltime.Round(time.Millisecond))
}

// Log returns a manipulator that sends simulation status messages to c.
func Log(c chan *SimulationStatus) SimulationManipulator {
	startTime := time.Now()
	return func(s *Simulation) error {
		c <- &SimulationStatus{
			Day:         s.day,
			Hour:        s.hour,
			Biomass:     s.Pond.Biomass,
			Temperature: s.Pond.Temperature,
			VolumeL:     s.Pond.Volume * m3ToL,
			Walltime:    time.Since(startTime),
		}
		return nil
	}
}

// DefaultHourFuncs returns the standard per-hour update pipeline in the
// order the integration requires: weather selection, culture light, growth
// kinetics, harvest, heat transfer, water balance, productivity, and trace
// recording. light and temp supply the growth limitation factors.
func DefaultHourFuncs(light LightResponse, temp TemperatureResponse) []SimulationManipulator {
	return []SimulationManipulator{
		SelectWeather(),
		CultureLight(),
		Growth(light, temp),
		Harvest(),
		HeatTransfer(),
		WaterBalance(),
		Productivity(),
		RecordTimestep(),
	}
}

// Simulate runs a complete simulation of totalDays days with the standard
// pipeline and the given growth-kinetics collaborators, returning the full
// timestep trace and its summary.
func Simulate(days []*weather.Day, cfg Config, totalDays int,
	light LightResponse, temp TemperatureResponse) ([]*TimestepRecord, *Summary, error) {
	s := &Simulation{
		Pond:         &Pond{Config: cfg},
		Weather:      days,
		Days:         totalDays,
		InitFuncs:    []SimulationManipulator{InitState()},
		HourFuncs:    DefaultHourFuncs(light, temp),
		CleanupFuncs: []SimulationManipulator{Summarize()},
	}
	if err := s.Init(); err != nil {
		return nil, nil, err
	}
	if err := s.Run(); err != nil {
		return nil, nil, err
	}
	if err := s.Cleanup(); err != nil {
		return nil, nil, err
	}
	return s.Records, s.Summary, nil
}
