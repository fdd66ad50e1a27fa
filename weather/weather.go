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

// Package weather holds the hourly historical weather observations that
// drive a pond simulation. The simulation engine treats this data as
// read-only: it is fully materialized before a run begins and is never
// fetched or mutated mid-simulation.
package weather

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
)

// Hour is one hour of weather observations.
type Hour struct {
	AirTemperature   float64 `desc:"Air temperature" units:"°C"`
	DewPoint         float64 `desc:"Dew point temperature" units:"°C"`
	RelativeHumidity float64 `desc:"Relative humidity" units:"fraction"`
	CloudCover       float64 `desc:"Cloud cover" units:"fraction"`
	WindSpeed        float64 `desc:"Wind speed at 10 m" units:"m/s"`
	WindDirection    float64 `desc:"Wind direction" units:"degrees"`
	Precipitation    float64 `desc:"Precipitation depth" units:"mm"`
	DirectRadiation  float64 `desc:"Direct solar irradiance" units:"W/m²"`
	DiffuseRadiation float64 `desc:"Diffuse solar irradiance" units:"W/m²"`
	SoilTemperature  float64 `desc:"Soil temperature" units:"°C"`
	SolarElevation   float64 `desc:"Solar elevation angle" units:"degrees"`
	SolarAzimuth     float64 `desc:"Solar azimuth angle" units:"degrees"`
}

// Day is one day of hourly observations.
type Day struct {
	Hours [24]Hour
}

// Cycle returns the weather day for simulated day index i, reusing the
// supplied days by modulo indexing when the simulation horizon exceeds the
// data. days must be non-empty; Cycle panics on an empty slice. Callers
// that would rather fail fast on insufficient data should compare their
// horizon against len(days) before starting.
func Cycle(days []*Day, i int) *Day {
	return days[i%len(days)]
}

// csv column order for ReadCSV and WriteCSV.
var columns = []string{
	"day", "hour", "air_temperature", "dew_point", "relative_humidity",
	"cloud_cover", "wind_speed", "wind_direction", "precipitation",
	"direct_radiation", "diffuse_radiation", "soil_temperature",
	"solar_elevation", "solar_azimuth",
}

// ReadCSV reads hourly weather records from r. The file must have a header
// row matching the expected columns and complete days of 24 consecutive
// hourly rows. Rows that are short, out of order, or non-numeric are
// rejected rather than letting NaNs propagate into the physics.
func ReadCSV(r io.Reader) ([]*Day, error) {
	cr := csv.NewReader(r)
	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("weather: reading header: %v", err)
	}
	if len(header) != len(columns) {
		return nil, fmt.Errorf("weather: header has %d columns; want %d", len(header), len(columns))
	}
	for i, name := range columns {
		if header[i] != name {
			return nil, fmt.Errorf("weather: header column %d is %q; want %q", i, header[i], name)
		}
	}

	var days []*Day
	line := 1
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		} else if err != nil {
			return nil, fmt.Errorf("weather: reading line %d: %v", line+1, err)
		}
		line++

		vals := make([]float64, len(rec))
		for i, field := range rec {
			vals[i], err = strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, fmt.Errorf("weather: line %d column %q: %v", line, columns[i], err)
			}
		}
		day, hour := int(vals[0]), int(vals[1])
		row := line - 2 // 0-based data row index
		if day != row/24 || hour != row%24 {
			return nil, fmt.Errorf("weather: line %d: day %d hour %d out of order (want day %d hour %d)",
				line, day, hour, row/24, row%24)
		}
		if hour == 0 {
			days = append(days, new(Day))
		}
		days[len(days)-1].Hours[hour] = Hour{
			AirTemperature:   vals[2],
			DewPoint:         vals[3],
			RelativeHumidity: vals[4],
			CloudCover:       vals[5],
			WindSpeed:        vals[6],
			WindDirection:    vals[7],
			Precipitation:    vals[8],
			DirectRadiation:  vals[9],
			DiffuseRadiation: vals[10],
			SoilTemperature:  vals[11],
			SolarElevation:   vals[12],
			SolarAzimuth:     vals[13],
		}
	}
	if len(days) == 0 {
		return nil, fmt.Errorf("weather: no data rows")
	}
	if (line-1)%24 != 0 {
		return nil, fmt.Errorf("weather: final day is incomplete (%d hourly rows)", (line-1)%24)
	}
	return days, nil
}

// WriteCSV writes days to w in the format accepted by ReadCSV.
func WriteCSV(w io.Writer, days []*Day) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(columns); err != nil {
		return fmt.Errorf("weather: writing header: %v", err)
	}
	f := func(v float64) string { return strconv.FormatFloat(v, 'g', -1, 64) }
	for d, day := range days {
		for h, hr := range day.Hours {
			row := []string{
				strconv.Itoa(d), strconv.Itoa(h),
				f(hr.AirTemperature), f(hr.DewPoint), f(hr.RelativeHumidity),
				f(hr.CloudCover), f(hr.WindSpeed), f(hr.WindDirection),
				f(hr.Precipitation), f(hr.DirectRadiation), f(hr.DiffuseRadiation),
				f(hr.SoilTemperature), f(hr.SolarElevation), f(hr.SolarAzimuth),
			}
			if err := cw.Write(row); err != nil {
				return fmt.Errorf("weather: writing day %d hour %d: %v", d, h, err)
			}
		}
	}
	cw.Flush()
	return cw.Error()
}
