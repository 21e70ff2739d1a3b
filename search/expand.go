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

package search

import (
	"github.com/pkg/errors"

	"github.com/Ulyzses/spherical-polyanya/mesh"
	"github.com/Ulyzses/spherical-polyanya/sphere"
)

// successors projects a popped node across its next polygon and splits the
// far boundary into child nodes.
//
// The walk runs over the polygon's edges in ring order starting just after
// the entry edge, i.e. from the interval's right side around the perimeter
// to its left side. The right visibility ray (root through Right) is traced
// to the edge it exits through, then the left ray from there on. Between
// the two exits lies the observable range, split per edge into children
// that keep the current root; outside it lie the edges reachable only by
// pivoting around a corner vertex at an interval endpoint, which spawn
// children rooted at that corner.
func (s *Search) successors(nd *Node) ([]*Node, error) {
	pg := &s.mesh.Polygons[nd.NextPoly]
	if pg.IsOneWay {
		// The polygon was entered through its only traversable edge.
		return nil, nil
	}
	n := len(pg.Vertices)
	e, err := s.entryEdge(pg, nd)
	if err != nil {
		return nil, err
	}

	// ringPoint resolves walk position k to a vertex: position 0 is the
	// entry edge's left vertex, position 1 its right vertex, and the walk
	// proceeds in ring order from there.
	ringPoint := func(k int) (sphere.Point, int) {
		id := pg.Vertices[(e+k)%n]
		return s.mesh.Vertices[id].P, id
	}
	neighbour := func(k int) int {
		return pg.Neighbours[(e+k)%n]
	}

	R := nd.Root
	newRight, newLeft := sphere.Point{}, sphere.Point{}
	nrV, nlV := NoVertex, NoVertex
	a, b := -1, -1

	// Right projection: find where the great circle through (R, Right)
	// leaves the polygon. A root sitting on the right endpoint pins no
	// circle down; the whole fan from that vertex onward is then visible.
	if R.Equal(nd.Right) {
		newRight, nrV = ringPoint(1)
		a = 1
	}
	for k := 1; k < n && a < 0; k++ {
		vi, viID := ringPoint(k)
		vj, vjID := ringPoint(k + 1)
		x1, x2, coincident := sphere.Intersection(R, nd.Right, vi, vj)
		if coincident {
			newRight, nrV, a = vi, viID, k
			break
		}
		x, ok := s.insidePoint(nd.NextPoly, x1, x2)
		if !ok {
			continue
		}
		switch sphere.Orientation(R, x, vj) {
		case sphere.Clockwise:
			// The exit lies beyond this edge.
		case sphere.Colinear:
			// The right ray leaves through the far vertex of this edge.
			newRight, nrV, a = vj, vjID, k+1
		case sphere.Anticlockwise:
			if x.Equal(vi) {
				newRight, nrV, a = vi, viID, k
			} else {
				newRight, nrV, a = x, NoVertex, k
			}
		}
	}
	if a < 0 {
		return nil, errors.Wrapf(ErrPrecondition,
			"right ray %v -> %v exits no edge of polygon %d", R, nd.Right, nd.NextPoly)
	}

	// Left projection, from the edge the right ray exited through. As on
	// the right, a root sitting on the left endpoint sees everything up to
	// the entry edge.
	if a < n {
		if R.Equal(nd.Left) {
			newLeft, nlV = ringPoint(n)
			b = n
		}
		for k := a; k < n && b < 0; k++ {
			vi, viID := ringPoint(k)
			vj, vjID := ringPoint(k + 1)
			x1, x2, coincident := sphere.Intersection(R, nd.Left, vi, vj)
			if coincident {
				newLeft, nlV, b = vj, vjID, k+1
				break
			}
			x, ok := s.insidePoint(nd.NextPoly, x1, x2)
			if !ok {
				continue
			}
			switch sphere.Orientation(R, x, vi) {
			case sphere.Anticlockwise:
				// The exit lies beyond this edge.
			case sphere.Colinear:
				// The left ray leaves through the near vertex of this edge.
				newLeft, nlV, b = vi, viID, k
			case sphere.Clockwise:
				if x.Equal(vj) {
					newLeft, nlV, b = vj, vjID, k+1
				} else {
					newLeft, nlV, b = x, NoVertex, k+1
				}
			}
		}
		if b < 0 {
			return nil, errors.Wrapf(ErrPrecondition,
				"left ray %v -> %v exits no edge of polygon %d", R, nd.Left, nd.NextPoly)
		}
	} else {
		b = a
	}

	var out []*Node
	add := func(root, r sphere.Point, rid int, l sphere.Point, lid, nb int, g float64) error {
		if s.mesh.IsObstacle(nb) || r.Equal(l) {
			return nil
		}
		c, err := newNode(nd, root, r, l, rid, lid, nb, g, s.end)
		if err != nil {
			return err
		}
		out = append(out, c)
		return nil
	}

	// Observable range [a, b): children keep the root, with the interval
	// clipped to the projected cuts at both extremes.
	for k := a; k < b; k++ {
		r, rid := ringPoint(k)
		if k == a {
			r, rid = newRight, nrV
		}
		l, lid := ringPoint(k + 1)
		if k == b-1 {
			l, lid = newLeft, nlV
		}
		if err := add(R, r, rid, l, lid, neighbour(k), nd.g); err != nil {
			return nil, err
		}
	}

	// Edges right of the observable range are reachable only by turning at
	// the right endpoint, and only a corner vertex justifies a turn.
	if nd.RightVertex != NoVertex && s.mesh.Vertices[nd.RightVertex].Corner {
		root := nd.Right
		g := nd.g + sphere.Distance(nd.Root, root)
		for k := 1; k < a && k < n; k++ {
			vi, viID := ringPoint(k)
			vj, vjID := ringPoint(k + 1)
			if err := add(root, vi, viID, vj, vjID, neighbour(k), g); err != nil {
				return nil, err
			}
		}
		if a < n {
			vi, viID := ringPoint(a)
			if !newRight.Equal(vi) {
				if err := add(root, vi, viID, newRight, nrV, neighbour(a), g); err != nil {
					return nil, err
				}
			}
		}
	}

	// Symmetrically for the left endpoint.
	if nd.LeftVertex != NoVertex && s.mesh.Vertices[nd.LeftVertex].Corner {
		root := nd.Left
		g := nd.g + sphere.Distance(nd.Root, root)
		if b > a {
			vj, vjID := ringPoint(b)
			if !newLeft.Equal(vj) {
				if err := add(root, newLeft, nlV, vj, vjID, neighbour(b-1), g); err != nil {
					return nil, err
				}
			}
		}
		for k := b; k < n; k++ {
			vi, viID := ringPoint(k)
			vj, vjID := ringPoint(k + 1)
			if err := add(root, vi, viID, vj, vjID, neighbour(k), g); err != nil {
				return nil, err
			}
		}
	}

	return out, nil
}

// entryEdge finds the ring index of the edge the node's interval lies on:
// the edge through which the root observes the polygon. In ring order the
// interval's left endpoint comes first, since the polygon's interior lies
// on the far side of the entry edge from the root.
func (s *Search) entryEdge(pg *mesh.Polygon, nd *Node) (int, error) {
	n := len(pg.Vertices)
	if nd.RightVertex != NoVertex && nd.LeftVertex != NoVertex {
		for i := 0; i < n; i++ {
			if pg.Vertices[i] == nd.LeftVertex && pg.Vertices[(i+1)%n] == nd.RightVertex {
				return i, nil
			}
		}
	}
	for i := 0; i < n; i++ {
		vi := s.mesh.Vertices[pg.Vertices[i]].P
		vj := s.mesh.Vertices[pg.Vertices[(i+1)%n]].P
		if sphere.Orientation(vi, vj, nd.Right) == sphere.Colinear &&
			sphere.IsBounded(nd.Right, vi, vj) &&
			sphere.Orientation(vi, vj, nd.Left) == sphere.Colinear &&
			sphere.IsBounded(nd.Left, vi, vj) {
			return i, nil
		}
	}
	return 0, errors.Wrapf(ErrPrecondition,
		"interval %v -> %v lies on no edge of polygon %d", nd.Right, nd.Left, nd.NextPoly)
}

// insidePoint picks whichever of the two antipodal intersection candidates
// lands in or on the polygon. When neither does, the traced ray does not
// exit through this edge at all.
func (s *Search) insidePoint(poly int, x1, x2 sphere.Point) (sphere.Point, bool) {
	if s.mesh.Contains(poly, x1).Type != mesh.Outside {
		return x1, true
	}
	if s.mesh.Contains(poly, x2).Type != mesh.Outside {
		return x2, true
	}
	return sphere.Point{}, false
}
