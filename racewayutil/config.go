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

// Package racewayutil holds the configuration and command-line glue for
// running pond simulations.
package racewayutil

import (
	"fmt"
	"io/ioutil"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/spatialmodel/raceway"
)

// ConfigData holds the contents of a simulation configuration file.
type ConfigData struct {
	// Pond holds the pond geometry, initial state, kinetics, optics,
	// and harvest policy for the run.
	Pond raceway.Config

	// WeatherFile is the path to the hourly weather CSV file driving
	// the simulation. It can include environment variables.
	WeatherFile string

	// TotalDays is the simulation horizon in days.
	TotalDays int

	// OutputFile is the path the timestep trace CSV is written to. It
	// can include environment variables.
	OutputFile string

	// SummaryFile is the path the summary JSON is written to. If empty,
	// it defaults to OutputFile with a "_summary.json" suffix. It can
	// include environment variables.
	SummaryFile string

	// OutputVariables maps output column names to expressions over
	// timestep-record fields, for example
	//	[OutputVariables]
	//	biomass = "{Biomass}"
	//	harvest_g = "{HarvestMassKg} * 1000"
	// If empty, every record field is output under its own name.
	OutputVariables map[string]string
}

// ReadConfigFile reads and parses a TOML simulation configuration file.
func ReadConfigFile(filename string) (*ConfigData, error) {
	b, err := ioutil.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("racewayutil: the configuration file %q does not appear to exist: %v",
			filename, err)
	}
	config := new(ConfigData)
	if _, err := toml.Decode(string(b), config); err != nil {
		return nil, fmt.Errorf("racewayutil: parsing configuration file %q: %v", filename, err)
	}

	config.WeatherFile = os.ExpandEnv(config.WeatherFile)
	config.OutputFile = os.ExpandEnv(config.OutputFile)
	config.SummaryFile = os.ExpandEnv(config.SummaryFile)

	if config.WeatherFile == "" {
		return nil, fmt.Errorf("racewayutil: the configuration file needs to specify a WeatherFile " +
			`(for example: WeatherFile="weather.csv")`)
	}
	if config.OutputFile == "" {
		return nil, fmt.Errorf("racewayutil: the configuration file needs to specify an OutputFile " +
			`(for example: OutputFile="trace.csv")`)
	}
	if config.SummaryFile == "" {
		ext := filepath.Ext(config.OutputFile)
		config.SummaryFile = config.OutputFile[:len(config.OutputFile)-len(ext)] + "_summary.json"
	}
	if config.TotalDays < 1 {
		return nil, fmt.Errorf("racewayutil: TotalDays must be at least 1, but is %d", config.TotalDays)
	}
	if err := config.Pond.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}
