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
Package mesh holds the navigation mesh over the unit sphere: vertices,
convex polygons with neighbour links, point-in-polygon classification,
point location with an optional latitude-band index, and the .sph text
parser. A mesh is immutable once parsed and may be shared read-only across
concurrent searches.
*/
package mesh

import "github.com/Ulyzses/spherical-polyanya/sphere"

// Mesh is the traversable region: vertices and polygons indexed by id.
// The optional latitude-band index narrows point-location candidate sets;
// correctness never depends on it.
type Mesh struct {
	Vertices []Vertex
	Polygons []Polygon

	bands *bandIndex
}

// IsObstacle reports whether a neighbour id refers to no traversable
// polygon.
func (m *Mesh) IsObstacle(id int) bool {
	return id < 0 || id >= len(m.Polygons)
}

// LocationType classifies a point against the whole mesh.
type LocationType int

const (
	// InObstacle means no traversable polygon contains the point.
	InObstacle LocationType = iota
	// InPolygon means the point is strictly inside one polygon.
	InPolygon
	// OnMeshBorder means the point is on an edge whose far side is
	// an obstacle.
	OnMeshBorder
	// OnEdgeBetween means the point is on an edge between two traversable
	// polygons.
	OnEdgeBetween
	// OnAmbigCornerVertex means the point is a vertex adjacent to more than
	// one obstacle sector.
	OnAmbigCornerVertex
	// OnUnambigCornerVertex means the point is a vertex adjacent to exactly
	// one obstacle sector.
	OnUnambigCornerVertex
	// OnNonCornerVertex means the point is a vertex with no obstacle
	// sector.
	OnNonCornerVertex
)

func (t LocationType) String() string {
	switch t {
	case InPolygon:
		return "in-polygon"
	case OnMeshBorder:
		return "on-mesh-border"
	case OnEdgeBetween:
		return "on-edge"
	case OnAmbigCornerVertex:
		return "on-ambiguous-corner-vertex"
	case OnUnambigCornerVertex:
		return "on-unambiguous-corner-vertex"
	case OnNonCornerVertex:
		return "on-non-corner-vertex"
	default:
		return "in-obstacle"
	}
}

// Location is the result of locating a point in the mesh. Polys lists the
// traversable polygons incident to the location: one for the interior case,
// up to two for an edge, and every non-obstacle sector for a vertex. Verts
// holds the edge endpoints or the matched vertex.
type Location struct {
	Type  LocationType
	Polys []int
	Verts []int
}

// Locate finds p in the mesh. With a band index present the candidate set
// is the point's latitude band; a banded miss falls back to the full linear
// scan, which keeps the index advisory.
func (m *Mesh) Locate(p sphere.Point) Location {
	if m.bands != nil {
		if loc, ok := m.locateAmong(m.bands.candidates(p.Lat), p); ok {
			return loc
		}
	}
	all := make([]int, len(m.Polygons))
	for i := range all {
		all[i] = i
	}
	loc, _ := m.locateAmong(all, p)
	return loc
}

func (m *Mesh) locateAmong(candidates []int, p sphere.Point) (Location, bool) {
	for _, id := range candidates {
		c := m.Contains(id, p)
		switch c.Type {
		case Inside:
			return Location{Type: InPolygon, Polys: []int{id}}, true
		case OnEdge:
			if m.IsObstacle(c.AdjPoly) {
				return Location{Type: OnMeshBorder, Polys: []int{id}, Verts: c.Verts}, true
			}
			return Location{Type: OnEdgeBetween, Polys: []int{id, c.AdjPoly}, Verts: c.Verts}, true
		case OnVertex:
			return m.vertexLocation(c.Verts[0]), true
		}
	}
	return Location{Type: InObstacle}, false
}

func (m *Mesh) vertexLocation(vid int) Location {
	v := &m.Vertices[vid]
	var polys []int
	for _, p := range v.Polygons {
		if p != Obstacle {
			polys = append(polys, p)
		}
	}
	t := OnNonCornerVertex
	switch {
	case v.Ambiguous:
		t = OnAmbigCornerVertex
	case v.Corner:
		t = OnUnambigCornerVertex
	}
	return Location{Type: t, Polys: polys, Verts: []int{vid}}
}

// derive computes every derived field after the raw rings are in place:
// vertex flags, polygon bounds and topology, and optionally the band index.
func (m *Mesh) derive(buildIndex bool) {
	for i := range m.Vertices {
		m.Vertices[i].deriveFlags()
	}
	for i := range m.Polygons {
		m.Polygons[i].deriveBounds(m)
	}
	for i := range m.Polygons {
		m.Polygons[i].deriveTopology(m, i)
	}
	if buildIndex {
		m.bands = newBandIndex(m)
	}
}
