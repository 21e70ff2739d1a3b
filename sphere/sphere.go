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

/*
Package sphere implements the spherical-geometry kernel: unit-sphere points,
great-circle orientation, intersection, minor-arc containment, reflection and
distance. All predicates compare against ±Epsilon rather than exact zero and
are stable near the poles and the antimeridian, since every test is carried
out on Cartesian vectors rather than on raw coordinates.
*/
package sphere

import (
	"math"

	"github.com/golang/geo/s1"
)

// Epsilon is the process-wide tolerance used by every comparison in the
// kernel and by the search layer's root quantisation. It is read-only.
const Epsilon = 1e-9

// Dir is the orientation of a point relative to a directed great-circle arc.
type Dir int

const (
	// Clockwise means the point lies right of the directed arc.
	Clockwise Dir = iota - 1
	// Colinear means the point lies on the arc's great circle, or at least
	// two of the three points coincide.
	Colinear
	// Anticlockwise means the point lies left of the directed arc.
	Anticlockwise
)

func (d Dir) String() string {
	switch d {
	case Clockwise:
		return "clockwise"
	case Anticlockwise:
		return "anticlockwise"
	default:
		return "colinear"
	}
}

// Orientation classifies p3 against the directed great-circle arc from p1
// to p2 using the sign of (p1 × p2) · p3. Properties:
//
//	(1) Orientation(a,b,c) == Orientation(b,c,a) == Orientation(c,a,b)
//	(2) Orientation(a,b,c) == -Orientation(b,a,c)
//	(3) the result is Colinear whenever any two arguments are Equal
func Orientation(p1, p2, p3 Point) Dir {
	if p1.Equal(p2) || p1.Equal(p3) || p2.Equal(p3) {
		return Colinear
	}
	det := p1.Vec.Cross(p2.Vec).Dot(p3.Vec)
	switch {
	case det > Epsilon:
		return Anticlockwise
	case det < -Epsilon:
		return Clockwise
	default:
		return Colinear
	}
}

// IsBounded reports whether p lies on the minor great-circle arc from r to l,
// as opposed to the antipodal complement of that arc. The endpoints count as
// bounded; their antipodes do not.
func IsBounded(p, r, l Point) bool {
	if p.Equal(r) || p.Equal(l) {
		return true
	}
	ap := p.Antipode()
	if ap.Equal(r) || ap.Equal(l) {
		return false
	}
	if r.Vec.Cross(p.Vec).Dot(r.Vec.Cross(l.Vec)) < -Epsilon {
		return false
	}
	return l.Vec.Cross(p.Vec).Dot(l.Vec.Cross(r.Vec)) >= -Epsilon
}

// Intersection returns the two antipodal points where the great circle
// through (p1, p2) meets the great circle through (p3, p4). The plane
// normals are normalized before crossing, so the returned coincident flag
// is scale-free: it is true when the two circles are the same circle (or a
// degenerate input pins no circle down), and the caller must handle that as
// a colinear edge case rather than an error.
func Intersection(p1, p2, p3, p4 Point) (Point, Point, bool) {
	a := p1.Vec.Cross(p2.Vec).Normalize()
	b := p3.Vec.Cross(p4.Vec).Normalize()
	c := a.Cross(b)
	if c.Norm() < Epsilon {
		return Point{}, Point{}, true
	}
	first := FromVector(c)
	return first, first.Antipode(), false
}

// Reflect mirrors p across the plane of the great circle through r and l.
// Reflection is an involution and preserves distances to any point on the
// (r, l) circle, which is what makes it usable for unfolding a goal across
// a visibility interval.
func Reflect(p, r, l Point) Point {
	n := r.Vec.Cross(l.Vec).Normalize()
	return FromVector(p.Vec.Sub(n.Mul(2 * p.Vec.Dot(n))))
}

// Distance returns the great-circle arc length between a and b in degrees,
// in [0, 180]. The angle is computed as atan2(|a × b|, a · b), which keeps
// full precision for very short arcs where the plain acos formulation loses
// digits; it is exactly zero for points that are Equal.
func Distance(a, b Point) float64 {
	if a.Equal(b) {
		return 0
	}
	angle := s1.Angle(math.Atan2(a.Vec.Cross(b.Vec).Norm(), a.Vec.Dot(b.Vec)))
	return angle.Degrees()
}
