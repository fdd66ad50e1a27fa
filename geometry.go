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

// Geometry holds the derived dimensions of a racetrack pond: two straight
// channels joined by semicircular ends, with a center berm running along
// the straight sections. All values are computed once from the
// configuration targets and never change during a simulation.
type Geometry struct {
	ChannelWidth    float64 `desc:"Channel width" units:"m"`
	TotalLength     float64 `desc:"End-to-end racetrack length" units:"m"`
	StraightLength  float64 `desc:"Length of the straight sections" units:"m"`
	SurfaceArea     float64 `desc:"Net culture surface area" units:"m²"`
	Perimeter       float64 `desc:"Wetted perimeter" units:"m"`
	SoilContactArea float64 `desc:"Bottom plus submerged side-wall area" units:"m²"`
	Depth           float64 `desc:"Culture depth" units:"m"`
	Volume          float64 `desc:"Culture volume" units:"m³"`
	VolumeL         float64 `desc:"Culture volume" units:"L"`
}

// NewGeometry derives racetrack pond dimensions from a reference surface
// area [hectares], an aspect ratio (total length / channel width), a culture
// depth [m], and a center berm width [m]. All inputs must be strictly
// positive; validation happens in Config.Validate, not here.
func NewGeometry(areaHa, aspectRatio, depth, bermWidth float64) Geometry {
	refArea := areaHa * hectaresToM2

	w := math.Sqrt(refArea / aspectRatio)
	l := refArea / w
	straight := l - w

	// The slot shape is a straight rectangle capped by two semicircular
	// ends of radius w/2. The berm footprint runs only along the
	// straight sections, not around the ends.
	surface := straight*w + math.Pi*(w/2)*(w/2) - bermWidth*straight
	perimeter := 2*straight + math.Pi*w

	g := Geometry{
		ChannelWidth:   w,
		TotalLength:    l,
		StraightLength: straight,
		SurfaceArea:    surface,
		Perimeter:      perimeter,
		Depth:          depth,
	}
	g.SoilContactArea = surface + perimeter*depth
	g.Volume = surface * depth
	g.VolumeL = g.Volume * m3ToL
	return g
}
