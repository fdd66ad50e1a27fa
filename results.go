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

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"reflect"
	"sort"
	"strconv"
	"strings"

	"github.com/Knetic/govaluate"
	"gonum.org/v1/gonum/floats"
)

// TimestepRecord captures the complete pond state and every intermediate
// physical flux for one simulated hour. Records are append-only; the
// sequence of them is the full simulation trace.
type TimestepRecord struct {
	Day  int `desc:"Simulated day index" units:""`
	Hour int `desc:"Hour of day" units:""`

	Biomass     float64 `desc:"Biomass concentration after this hour" units:"g/L"`
	Temperature float64 `desc:"Pond temperature after this hour" units:"°C"`
	VolumeL     float64 `desc:"Culture volume after this hour" units:"L"`

	SurfaceDirectPAR   float64 `desc:"Direct PAR below the surface" units:"µmol/m²/s"`
	SurfaceDiffusePAR  float64 `desc:"Diffuse PAR below the surface" units:"µmol/m²/s"`
	AveragePAR         float64 `desc:"Volume-averaged culture PAR" units:"µmol/m²/s"`
	DirectTransmission float64 `desc:"Fresnel transmission of the direct beam" units:"fraction"`
	LightedFraction    float64 `desc:"Fraction of depth receiving usable light" units:"fraction"`

	LightFactor            float64 `desc:"Light limitation factor" units:"fraction"`
	TemperatureFactor      float64 `desc:"Temperature limitation factor" units:"fraction"`
	GrossGrowthRate        float64 `desc:"Gross specific growth rate" units:"1/day"`
	NetGrowthRate          float64 `desc:"Gross minus death rate" units:"1/day"`
	EffectiveGrowthRate    float64 `desc:"Lighted-fraction-scaled rate" units:"1/day"`
	VolumetricProductivity float64 `desc:"Volumetric productivity" units:"g/L/day"`
	ArealProductivity      float64 `desc:"Areal productivity" units:"g/m²/day"`

	SolarFlux        float64 `desc:"Shortwave gain" units:"W/m²"`
	LongwaveInFlux   float64 `desc:"Atmospheric longwave gain" units:"W/m²"`
	LongwaveOutFlux  float64 `desc:"Surface longwave loss" units:"W/m²"`
	EvaporativeFlux  float64 `desc:"Latent heat loss" units:"W/m²"`
	ConvectiveFlux   float64 `desc:"Sensible heat loss" units:"W/m²"`
	ConductiveFlux   float64 `desc:"Ground conduction loss" units:"W/m²"`
	BiomassSinkFlux  float64 `desc:"Photosynthetic heat sink" units:"W/m²"`
	NetHeatFlux      float64 `desc:"Net surface flux" units:"W/m²"`
	ΔTemperature     float64 `desc:"Temperature change this hour" units:"°C"`
	WindSpeed2m      float64 `desc:"Wind speed at 2 m" units:"m/s"`

	EvaporationL float64 `desc:"Water evaporated" units:"L"`
	RainfallL    float64 `desc:"Rain captured" units:"L"`
	MakeupL      float64 `desc:"Makeup water added" units:"L"`

	HarvestOccurred       bool    `desc:"Biomass was removed this hour" units:""`
	HarvestEventStarted   bool    `desc:"A harvest night began this hour" units:""`
	HarvestMassKg         float64 `desc:"Dry mass harvested" units:"kg"`
	HarvestWaterRemovedL  float64 `desc:"Culture water extracted" units:"L"`
	HarvestWaterReturnedL float64 `desc:"Extracted water recycled" units:"L"`
}

// RecordTimestep returns a manipulator that appends a record of the
// current hour to the simulation trace.
func RecordTimestep() SimulationManipulator {
	return func(s *Simulation) error {
		p := s.Pond
		s.Records = append(s.Records, &TimestepRecord{
			Day:  s.Day(),
			Hour: s.Hour(),

			Biomass:     p.Biomass,
			Temperature: p.Temperature,
			VolumeL:     p.Volume * m3ToL,

			SurfaceDirectPAR:   p.Light.SurfaceDirect,
			SurfaceDiffusePAR:  p.Light.SurfaceDiffuse,
			AveragePAR:         p.Light.Average,
			DirectTransmission: p.Light.DirectTransmission,
			LightedFraction:    p.Light.LightedFraction,

			LightFactor:            p.Growth.LightFactor,
			TemperatureFactor:      p.Growth.TemperatureFactor,
			GrossGrowthRate:        p.Growth.Gross,
			NetGrowthRate:          p.Growth.Net,
			EffectiveGrowthRate:    p.Growth.Effective,
			VolumetricProductivity: p.Growth.VolumetricProductivity,
			ArealProductivity:      p.Growth.ArealProductivity,

			SolarFlux:       p.Heat.Solar,
			LongwaveInFlux:  p.Heat.LongwaveIn,
			LongwaveOutFlux: p.Heat.LongwaveOut,
			EvaporativeFlux: p.Heat.Evaporative,
			ConvectiveFlux:  p.Heat.Convective,
			ConductiveFlux:  p.Heat.Conductive,
			BiomassSinkFlux: p.Heat.BiomassSink,
			NetHeatFlux:     p.Heat.Net,
			ΔTemperature:    p.Heat.ΔTemperature,
			WindSpeed2m:     p.Heat.WindSpeed2m,

			EvaporationL: p.Water.EvaporationL,
			RainfallL:    p.Water.RainfallL,
			MakeupL:      p.Water.MakeupL,

			HarvestOccurred:       p.Harvest.Occurred,
			HarvestEventStarted:   p.Harvest.EventStarted,
			HarvestMassKg:         p.Harvest.MassKg,
			HarvestWaterRemovedL:  p.Harvest.WaterRemovedL,
			HarvestWaterReturnedL: p.Harvest.WaterReturnedL,
		})
		return nil
	}
}

// Summary holds aggregate statistics computed once over the full timestep
// trace.
type Summary struct {
	AvgArealProductivity      float64 `desc:"Mean areal productivity over productive hours" units:"g/m²/day"`
	AvgVolumetricProductivity float64 `desc:"Mean volumetric productivity over productive hours" units:"g/L/day"`
	AvgTemperature            float64 `desc:"Mean pond temperature" units:"°C"`
	MinTemperature            float64 `desc:"Minimum pond temperature" units:"°C"`
	MaxTemperature            float64 `desc:"Maximum pond temperature" units:"°C"`
	TotalHarvestKg            float64 `desc:"Total dry mass harvested" units:"kg"`
	HarvestEvents             int     `desc:"Number of harvest nights" units:""`
	TotalEvaporationL         float64 `desc:"Total water evaporated" units:"L"`
	TotalMakeupL              float64 `desc:"Total makeup water added" units:"L"`
	FinalBiomass              float64 `desc:"Biomass concentration after the last hour" units:"g/L"`
}

// Summarize returns a cleanup manipulator that reduces the timestep trace
// to aggregate statistics. Productivity averages only count hours with
// positive productivity.
func Summarize() SimulationManipulator {
	return func(s *Simulation) error {
		if len(s.Records) == 0 {
			return fmt.Errorf("raceway: nothing to summarize: no timestep records")
		}
		sum := new(Summary)

		temps := make([]float64, len(s.Records))
		var areal, volumetric []float64
		for i, r := range s.Records {
			temps[i] = r.Temperature
			if r.ArealProductivity > 0 {
				areal = append(areal, r.ArealProductivity)
				volumetric = append(volumetric, r.VolumetricProductivity)
			}
			sum.TotalHarvestKg += r.HarvestMassKg
			sum.TotalEvaporationL += r.EvaporationL
			sum.TotalMakeupL += r.MakeupL
			if r.HarvestEventStarted {
				sum.HarvestEvents++
			}
		}
		sum.AvgTemperature = floats.Sum(temps) / float64(len(temps))
		sum.MinTemperature = floats.Min(temps)
		sum.MaxTemperature = floats.Max(temps)
		if len(areal) > 0 {
			sum.AvgArealProductivity = floats.Sum(areal) / float64(len(areal))
			sum.AvgVolumetricProductivity = floats.Sum(volumetric) / float64(len(volumetric))
		}
		sum.FinalBiomass = s.Records[len(s.Records)-1].Biomass

		s.Summary = sum
		return nil
	}
}

// Outputter holds the configuration for writing the simulation trace.
// Output variables are arithmetic expressions over timestep-record fields
// written inside curly braces, for example
// "{HarvestMassKg} * 1000" or "{Biomass} * {VolumeL}".
type Outputter struct {
	w               io.Writer
	outputVariables map[string]string
	outputFunctions map[string]govaluate.ExpressionFunction
	names           []string
	expressions     []*govaluate.EvaluableExpression
}

// NewOutputter initializes an Outputter that writes CSV to w and adds a
// set of default expression functions: 'exp(x)', 'sqrt(x)', and 'abs(x)'.
// If outputVariables is empty, every record field is output under its own
// name.
func NewOutputter(w io.Writer, outputVariables map[string]string,
	outputFunctions map[string]govaluate.ExpressionFunction) (*Outputter, error) {
	defaultOutputFuncs := map[string]govaluate.ExpressionFunction{
		"exp": func(arg ...interface{}) (interface{}, error) {
			if len(arg) != 1 {
				return nil, fmt.Errorf("raceway: got %d arguments for function 'exp', but needs 1", len(arg))
			}
			return (float64)(math.Exp(arg[0].(float64))), nil
		},
		"sqrt": func(arg ...interface{}) (interface{}, error) {
			if len(arg) != 1 {
				return nil, fmt.Errorf("raceway: got %d arguments for function 'sqrt', but needs 1", len(arg))
			}
			return (float64)(math.Sqrt(arg[0].(float64))), nil
		},
		"abs": func(arg ...interface{}) (interface{}, error) {
			if len(arg) != 1 {
				return nil, fmt.Errorf("raceway: got %d arguments for function 'abs', but needs 1", len(arg))
			}
			return (float64)(math.Abs(arg[0].(float64))), nil
		},
	}
	for key, val := range outputFunctions {
		defaultOutputFuncs[key] = val
	}

	if len(outputVariables) == 0 {
		outputVariables = make(map[string]string)
		for _, name := range recordFieldNames() {
			outputVariables[name] = "{" + name + "}"
		}
	}

	o := &Outputter{
		w:               w,
		outputVariables: outputVariables,
		outputFunctions: defaultOutputFuncs,
	}
	if err := o.prepare(); err != nil {
		return nil, err
	}
	return o, nil
}

// prepare parses the output variable expressions and checks that every
// referenced variable is a timestep-record field.
func (o *Outputter) prepare() error {
	fields := make(map[string]bool)
	for _, name := range recordFieldNames() {
		fields[name] = true
	}

	o.names = make([]string, 0, len(o.outputVariables))
	for name := range o.outputVariables {
		o.names = append(o.names, name)
	}
	sort.Strings(o.names)

	o.expressions = make([]*govaluate.EvaluableExpression, len(o.names))
	for i, name := range o.names {
		expr := strings.Replace(o.outputVariables[name], "{", "", -1)
		expr = strings.Replace(expr, "}", "", -1)
		expression, err := govaluate.NewEvaluableExpressionWithFunctions(expr, o.outputFunctions)
		if err != nil {
			return fmt.Errorf("raceway: output variable %q: %v", name, err)
		}
		for _, v := range expression.Vars() {
			if !fields[v] {
				return fmt.Errorf("raceway: output variable %q references unknown field %q", name, v)
			}
		}
		o.expressions[i] = expression
	}
	return nil
}

// Output returns a cleanup manipulator that evaluates the output variable
// expressions for every timestep record and writes the result as CSV.
func (o *Outputter) Output() SimulationManipulator {
	return func(s *Simulation) error {
		cw := csv.NewWriter(o.w)
		if err := cw.Write(o.names); err != nil {
			return fmt.Errorf("raceway: writing output header: %v", err)
		}
		row := make([]string, len(o.names))
		for _, rec := range s.Records {
			vars := recordVariables(rec)
			for i, expression := range o.expressions {
				result, err := expression.Evaluate(vars)
				if err != nil {
					return fmt.Errorf("raceway: evaluating output variable %q: %v", o.names[i], err)
				}
				switch v := result.(type) {
				case float64:
					row[i] = strconv.FormatFloat(v, 'g', -1, 64)
				case bool:
					row[i] = strconv.FormatBool(v)
				default:
					row[i] = fmt.Sprintf("%v", v)
				}
			}
			if err := cw.Write(row); err != nil {
				return fmt.Errorf("raceway: writing output row: %v", err)
			}
		}
		cw.Flush()
		return cw.Error()
	}
}

// recordFieldNames lists the field names of TimestepRecord in declaration
// order.
func recordFieldNames() []string {
	t := reflect.TypeOf(TimestepRecord{})
	names := make([]string, t.NumField())
	for i := range names {
		names[i] = t.Field(i).Name
	}
	return names
}

// recordVariables converts a record into an expression-variable map.
// Integers become float64 so arithmetic works uniformly.
func recordVariables(rec *TimestepRecord) map[string]interface{} {
	v := reflect.ValueOf(*rec)
	t := v.Type()
	vars := make(map[string]interface{}, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		f := v.Field(i)
		switch f.Kind() {
		case reflect.Int:
			vars[t.Field(i).Name] = float64(f.Int())
		case reflect.Bool:
			vars[t.Field(i).Name] = f.Bool()
		default:
			vars[t.Field(i).Name] = f.Float()
		}
	}
	return vars
}

// RecordUnits returns the measurement unit of a timestep-record field, from
// its struct tag.
func RecordUnits(field string) (string, error) {
	f, ok := reflect.TypeOf(TimestepRecord{}).FieldByName(field)
	if !ok {
		return "", fmt.Errorf("raceway: unknown timestep record field %q", field)
	}
	return f.Tag.Get("units"), nil
}
