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

package mesh

import "github.com/Ulyzses/spherical-polyanya/sphere"

// Polygon is a convex spherical polygon of the traversable region. The
// vertex ring is ordered so that the interior lies to the left of each
// directed edge (counter-clockwise as seen from outside the sphere), and
// Neighbours[i] is the polygon across the edge (Vertices[i], Vertices[i+1]),
// or Obstacle when that edge is a mesh border.
type Polygon struct {
	Vertices   []int
	Neighbours []int

	// Bounding extents in degrees. For a polygon that crosses the
	// antimeridian, WrapsLon is true and the longitude extent runs eastward
	// from MinLon across ±180 to MaxLon (so MinLon > MaxLon). A polar
	// polygon's latitude extent is widened to the pole it contains.
	MinLat, MaxLat float64
	MinLon, MaxLon float64
	WrapsLon       bool

	// IsPolar is true when the polygon strictly contains a pole.
	IsPolar bool

	// IsOneWay is true when at most one neighbour is traversable; such a
	// polygon is a dead end for search expansion.
	IsOneWay bool
}

// ContainmentType classifies a point against a single polygon.
type ContainmentType int

const (
	Outside ContainmentType = iota
	Inside
	OnEdge
	OnVertex
)

func (t ContainmentType) String() string {
	switch t {
	case Inside:
		return "inside"
	case OnEdge:
		return "on-edge"
	case OnVertex:
		return "on-vertex"
	default:
		return "outside"
	}
}

// Containment is the result of testing a point against one polygon.
// AdjPoly is the neighbour across the matched edge for OnEdge (possibly
// Obstacle) and Obstacle otherwise. Verts holds the two edge endpoints for
// OnEdge, the single vertex for OnVertex, and is empty otherwise.
type Containment struct {
	Type    ContainmentType
	AdjPoly int
	Verts   []int
}

// Contains classifies p against polygon poly by walking the ring once.
// The polygon must be convex: a single strictly-clockwise verdict against
// any directed edge places the point outside.
func (m *Mesh) Contains(poly int, p sphere.Point) Containment {
	pg := &m.Polygons[poly]
	n := len(pg.Vertices)
	onEdge := -1
	for i := 0; i < n; i++ {
		vi := &m.Vertices[pg.Vertices[i]]
		if p.Equal(vi.P) {
			return Containment{Type: OnVertex, AdjPoly: Obstacle, Verts: []int{vi.ID}}
		}
		// A colinear-and-bounded verdict on the previous edge commits here,
		// after the vertex check above has had its chance: a point on the
		// far endpoint of that edge is OnVertex, not OnEdge.
		if onEdge >= 0 {
			return m.onEdgeResult(pg, onEdge)
		}
		vj := &m.Vertices[pg.Vertices[(i+1)%n]]
		switch sphere.Orientation(vi.P, vj.P, p) {
		case sphere.Colinear:
			if sphere.IsBounded(p, vi.P, vj.P) {
				onEdge = i
			}
		case sphere.Clockwise:
			return Containment{Type: Outside, AdjPoly: Obstacle}
		}
	}
	if onEdge >= 0 {
		return m.onEdgeResult(pg, onEdge)
	}
	return Containment{Type: Inside, AdjPoly: Obstacle}
}

func (m *Mesh) onEdgeResult(pg *Polygon, edge int) Containment {
	n := len(pg.Vertices)
	return Containment{
		Type:    OnEdge,
		AdjPoly: pg.Neighbours[edge],
		Verts:   []int{pg.Vertices[edge], pg.Vertices[(edge+1)%n]},
	}
}

// deriveBounds computes the polygon's latitude/longitude extents from its
// vertex ring. Longitudes spanning more than 180 degrees are treated as an
// antimeridian crossing, with the extent re-anchored to run eastward across
// ±180. The extents are advisory: the band index narrows candidate sets
// with them, but containment never depends on them.
func (pg *Polygon) deriveBounds(m *Mesh) {
	first := m.Vertices[pg.Vertices[0]].P
	pg.MinLat, pg.MaxLat = first.Lat, first.Lat
	minLon, maxLon := first.Lon, first.Lon
	for _, vi := range pg.Vertices[1:] {
		p := m.Vertices[vi].P
		pg.MinLat = min(pg.MinLat, p.Lat)
		pg.MaxLat = max(pg.MaxLat, p.Lat)
		minLon = min(minLon, p.Lon)
		maxLon = max(maxLon, p.Lon)
	}
	if maxLon-minLon > 180 {
		pg.WrapsLon = true
		east, west := 180.0, -180.0
		for _, vi := range pg.Vertices {
			lon := m.Vertices[vi].P.Lon
			if lon >= 0 {
				east = min(east, lon)
			} else {
				west = max(west, lon)
			}
		}
		pg.MinLon, pg.MaxLon = east, west
		return
	}
	pg.MinLon, pg.MaxLon = minLon, maxLon
}

// deriveTopology fills IsPolar and IsOneWay, widening a polar polygon's
// latitude extent to the pole so that latitude-band candidate sets remain
// supersets of the truth.
func (pg *Polygon) deriveTopology(m *Mesh, id int) {
	if m.Contains(id, northPole).Type == Inside {
		pg.IsPolar = true
		pg.MaxLat = 90
	}
	if m.Contains(id, southPole).Type == Inside {
		pg.IsPolar = true
		pg.MinLat = -90
	}
	open := 0
	for _, nb := range pg.Neighbours {
		if nb != Obstacle {
			open++
		}
	}
	pg.IsOneWay = open <= 1
}

var (
	northPole = sphere.FromDegrees(90, 0)
	southPole = sphere.FromDegrees(-90, 0)
)
