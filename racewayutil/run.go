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
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spatialmodel/raceway"
	"github.com/spatialmodel/raceway/science/light/steele"
	"github.com/spatialmodel/raceway/science/temperature/gausstemp"
	"github.com/spatialmodel/raceway/weather"
)

// Run executes the simulation described by config: it loads the weather
// data, integrates the pond with the standard hourly pipeline and the
// Steele/Gaussian growth kinetics, and writes the trace CSV and summary
// JSON.
func Run(config *ConfigData) error {
	startTime := time.Now()

	wf, err := os.Open(config.WeatherFile)
	if err != nil {
		return fmt.Errorf("racewayutil: opening weather file: %v", err)
	}
	days, err := weather.ReadCSV(wf)
	wf.Close()
	if err != nil {
		return err
	}
	Log.WithFields(logrus.Fields{
		"file": config.WeatherFile,
		"days": len(days),
	}).Info("loaded weather data")
	if config.TotalDays > len(days) {
		Log.Warnf("simulating %d days with %d days of weather data; days will repeat",
			config.TotalDays, len(days))
	}

	of, err := os.Create(config.OutputFile)
	if err != nil {
		return fmt.Errorf("racewayutil: creating output file: %v", err)
	}
	defer of.Close()
	o, err := raceway.NewOutputter(of, config.OutputVariables, nil)
	if err != nil {
		return err
	}

	// Print one status line per simulated day.
	cLog := make(chan *raceway.SimulationStatus)
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		for msg := range cLog {
			if msg.Hour == 0 {
				Log.Info(msg.String())
			}
		}
		wg.Done()
	}()

	s := &raceway.Simulation{
		Pond:    &raceway.Pond{Config: config.Pond},
		Weather: days,
		Days:    config.TotalDays,
		InitFuncs: []raceway.SimulationManipulator{
			raceway.InitState(),
		},
		HourFuncs: append([]raceway.SimulationManipulator{
			raceway.Log(cLog),
		}, raceway.DefaultHourFuncs(steele.Response(), gausstemp.Response())...),
		CleanupFuncs: []raceway.SimulationManipulator{
			raceway.Summarize(),
			o.Output(),
		},
	}

	if err := s.Init(); err != nil {
		return fmt.Errorf("racewayutil: problem initializing simulation: %v", err)
	}
	if err := s.Run(); err != nil {
		close(cLog)
		return fmt.Errorf("racewayutil: problem running simulation: %v", err)
	}
	close(cLog)
	wg.Wait()
	if err := s.Cleanup(); err != nil {
		return fmt.Errorf("racewayutil: problem writing results: %v", err)
	}

	if err := writeSummary(config.SummaryFile, s.Summary); err != nil {
		return err
	}

	Log.WithFields(logrus.Fields{
		"trace":        config.OutputFile,
		"summary":      config.SummaryFile,
		"harvest_kg":   s.Summary.TotalHarvestKg,
		"final_g_per_L": s.Summary.FinalBiomass,
		"elapsed":      time.Since(startTime).Round(time.Millisecond),
	}).Info("simulation complete")
	return nil
}

func writeSummary(filename string, summary *raceway.Summary) error {
	f, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("racewayutil: creating summary file: %v", err)
	}
	defer f.Close()
	e := json.NewEncoder(f)
	e.SetIndent("", "\t")
	if err := e.Encode(summary); err != nil {
		return fmt.Errorf("racewayutil: encoding summary: %v", err)
	}
	return nil
}
