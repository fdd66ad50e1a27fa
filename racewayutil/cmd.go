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

package racewayutil

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spatialmodel/raceway"
	"github.com/spf13/cobra"
)

var configFile string

// Log is the logger used for operational messages.
var Log = logrus.New()

// Root is the main command.
var Root = &cobra.Command{
	Use:   "raceway",
	Short: "A simulation model for open raceway algae ponds.",
	Long: `Raceway is a deterministic hourly simulator for open-pond algae
cultivation, coupling light transport, growth kinetics, the pond energy
balance, and the water balance, driven by historical weather data.`,
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a pond simulation",
	Long: "Run a pond simulation as specified in the configuration file, " +
		"writing the hourly trace CSV and the summary JSON.",
	RunE: func(cmd *cobra.Command, args []string) error {
		config, err := ReadConfigFile(configFile)
		if err != nil {
			return err
		}
		return Run(config)
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of Raceway",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("Raceway v%s\n", raceway.Version)
	},
}

func init() {
	Root.AddCommand(runCmd)
	Root.AddCommand(versionCmd)

	Root.PersistentFlags().StringVar(&configFile, "config", "./raceway.toml",
		"configuration file location")
}
