//  Copyright (c) 2026 Ulyzses
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// 		http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package sphere

import (
	"fmt"
	"math"

	"github.com/golang/geo/r3"
)

// Point is a location on the unit sphere. It carries both the geographic
// representation (latitude and longitude in degrees) and the corresponding
// unit Cartesian vector; the two representations agree to within Epsilon.
//
// Fields should be treated as read-only. Use one of the factory methods for
// creation.
type Point struct {
	Lat float64
	Lon float64
	Vec r3.Vector
}

// FromDegrees creates a Point from a latitude in [-90, 90] and a longitude
// in [-180, 180], both in degrees.
func FromDegrees(lat, lon float64) Point {
	phi := lat * math.Pi / 180
	lam := lon * math.Pi / 180
	cosPhi := math.Cos(phi)
	return Point{
		Lat: lat,
		Lon: lon,
		Vec: r3.Vector{
			X: cosPhi * math.Cos(lam),
			Y: cosPhi * math.Sin(lam),
			Z: math.Sin(phi),
		},
	}
}

// FromVector creates a Point from a Cartesian vector, normalizing it onto
// the unit sphere. Latitudes within Epsilon of a pole are snapped to the
// pole, with longitude fixed at 0, so that the polar equality rule behaves
// deterministically for computed points.
func FromVector(v r3.Vector) Point {
	u := v.Normalize()
	lat := math.Atan2(u.Z, math.Hypot(u.X, u.Y)) * 180 / math.Pi
	lon := math.Atan2(u.Y, u.X) * 180 / math.Pi
	if math.Abs(lat)+Epsilon >= 90 {
		lat = math.Copysign(90, lat)
		lon = 0
	}
	return Point{Lat: lat, Lon: lon, Vec: u}
}

// Equal reports whether two points coincide under the kernel tolerance:
// the latitudes agree within Epsilon, and either both points are polar or
// the longitudes agree within Epsilon. A pole's longitude is arbitrary,
// which is the reason for the polar carve-out.
func (p Point) Equal(o Point) bool {
	if math.Abs(p.Lat-o.Lat) > Epsilon {
		return false
	}
	if p.isPolar() && o.isPolar() {
		return true
	}
	return math.Abs(p.Lon-o.Lon) <= Epsilon
}

// isPolar reports whether the point sits exactly on a pole. This is the one
// place exact float comparison is intended: factory methods snap near-polar
// latitudes to ±90.
func (p Point) isPolar() bool {
	return math.Abs(p.Lat) == 90
}

// Antipode returns the point diametrically opposite p. A point and its
// antipode are always distinct under Equal.
func (p Point) Antipode() Point {
	lon := p.Lon - 180
	if p.Lon < 0 {
		lon = p.Lon + 180
	}
	return Point{Lat: -p.Lat, Lon: lon, Vec: p.Vec.Mul(-1)}
}

func (p Point) String() string {
	return fmt.Sprintf("(%.7f, %.7f)", p.Lat, p.Lon)
}
