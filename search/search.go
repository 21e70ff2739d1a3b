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
Package search implements the spherical Polyanya any-angle shortest-path
search over a navigation mesh. Each search instance is single-threaded and
owns its open list, history map and nodes; the mesh it reads is shared
immutably. The search expands intervals of polygon edges rather than graph
vertices, so returned paths may turn at arbitrary points of the mesh
boundary, and the reported length in arc-degrees is a lower bound on every
mesh-constrained path between the endpoints.
*/
package search

import (
	"io"
	"log/slog"
	"math"

	"github.com/Ulyzses/spherical-polyanya/mesh"
	"github.com/Ulyzses/spherical-polyanya/sphere"
)

// Path is a polyline of great-circle segments from start to end. The zero
// value means no path exists; that is a result, not an error.
type Path struct {
	Points []sphere.Point
	Length float64
}

// Option configures a search instance.
type Option func(*Search)

// WithLogger routes search tracing to l. The default discards everything.
func WithLogger(l *slog.Logger) Option {
	return func(s *Search) { s.log = l }
}

// Search drives one A*-style interval search. Instances are not reusable
// and not safe for concurrent use; the mesh may be shared across instances.
type Search struct {
	mesh  *mesh.Mesh
	start sphere.Point
	end   sphere.Point
	log   *slog.Logger

	open     queue
	history  map[rootKey]float64
	endPolys []int
	final    *Node
	popped   int
}

// New prepares a search for one (start, end) query on m.
func New(m *mesh.Mesh, start, end sphere.Point, opts ...Option) *Search {
	s := &Search{
		mesh:    m,
		start:   start,
		end:     end,
		log:     slog.New(slog.NewTextHandler(io.Discard, nil)),
		history: make(map[rootKey]float64),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Run executes the search to completion and returns the shortest path, or
// the zero Path when none exists. Errors indicate violated geometric
// contracts, never mere unreachability.
func (s *Search) Run() (Path, error) {
	endLoc := s.mesh.Locate(s.end)
	s.endPolys = endLoc.Polys
	if len(s.endPolys) == 0 {
		s.log.Debug("end point unreachable", "end", s.end, "location", endLoc.Type)
		return Path{}, nil
	}

	if err := s.seed(); err != nil {
		return Path{}, err
	}

	for s.final == nil && !s.open.empty() {
		nd := s.open.pop()
		s.popped++
		s.log.Debug("pop", "f", nd.F(), "g", nd.g, "root", nd.Root, "poly", nd.NextPoly)
		if s.isEndPoly(nd.NextPoly) {
			s.final = s.terminal(nd)
			break
		}
		succs, err := s.successors(nd)
		if err != nil {
			return Path{}, err
		}
		for _, c := range succs {
			k := quantise(c.Root)
			if g, ok := s.history[k]; !ok || g >= c.g {
				s.history[k] = c.g
				s.open.push(c)
			}
		}
	}

	if s.final == nil {
		s.log.Debug("open list exhausted", "expansions", s.popped)
		return Path{}, nil
	}
	return s.reconstruct(), nil
}

// seed locates the start and pushes one node per edge visible from it, per
// incident polygon. A start polygon that already contains the goal yields
// the trivial final node instead.
func (s *Search) seed() error {
	loc := s.mesh.Locate(s.start)
	if loc.Type == mesh.InObstacle {
		s.log.Debug("start point in obstacle", "start", s.start)
		return nil
	}
	for _, pi := range loc.Polys {
		if s.isEndPoly(pi) {
			s.final = &Node{
				Root:        s.start,
				Right:       s.end,
				Left:        s.end,
				RightVertex: NoVertex,
				LeftVertex:  NoVertex,
				NextPoly:    pi,
				h:           sphere.Distance(s.start, s.end),
			}
			return nil
		}
	}
	for _, pi := range loc.Polys {
		pg := &s.mesh.Polygons[pi]
		n := len(pg.Vertices)
		for i := 0; i < n; i++ {
			nb := pg.Neighbours[i]
			if s.mesh.IsObstacle(nb) {
				continue
			}
			r := &s.mesh.Vertices[pg.Vertices[i]]
			l := &s.mesh.Vertices[pg.Vertices[(i+1)%n]]
			// Edges the start lies on contribute nothing: the start sees
			// the polygons on both sides directly.
			if s.start.Equal(r.P) || s.start.Equal(l.P) {
				continue
			}
			if sphere.Orientation(r.P, l.P, s.start) == sphere.Colinear &&
				sphere.IsBounded(s.start, r.P, l.P) {
				continue
			}
			nd, err := newNode(nil, s.start, r.P, l.P, r.ID, l.ID, nb, 0, s.end)
			if err != nil {
				return err
			}
			s.open.push(nd)
		}
	}
	return nil
}

// terminal finishes a node whose next polygon contains the goal. The goal
// must still be visible through the node's interval: when it is blocked at
// an endpoint the path turns there and pays the extra arc.
func (s *Search) terminal(nd *Node) *Node {
	root, g := nd.Root, nd.g
	switch {
	case sphere.Orientation(root, nd.Right, s.end) != sphere.Anticlockwise:
		g += sphere.Distance(root, nd.Right)
		root = nd.Right
	case sphere.Orientation(root, nd.Left, s.end) != sphere.Clockwise:
		g += sphere.Distance(root, nd.Left)
		root = nd.Left
	}
	return &Node{
		Parent:      nd,
		Root:        root,
		Right:       s.end,
		Left:        s.end,
		RightVertex: NoVertex,
		LeftVertex:  NoVertex,
		NextPoly:    nd.NextPoly,
		g:           g,
		h:           sphere.Distance(root, s.end),
	}
}

// reconstruct unwinds the final node's parent chain into the path polyline.
// A point joins the polyline exactly where the root changes hands, which is
// where the path turned.
func (s *Search) reconstruct() Path {
	pts := []sphere.Point{s.end}
	for c := s.final; c.Parent != nil; c = c.Parent {
		if !c.Root.Equal(c.Parent.Root) {
			pts = append(pts, c.Root)
		}
	}
	pts = append(pts, s.start)
	for i, j := 0, len(pts)-1; i < j; i, j = i+1, j-1 {
		pts[i], pts[j] = pts[j], pts[i]
	}
	s.log.Debug("path found", "points", len(pts), "length", s.final.F(), "expansions", s.popped)
	return Path{Points: pts, Length: s.final.F()}
}

func (s *Search) isEndPoly(id int) bool {
	for _, p := range s.endPolys {
		if p == id {
			return true
		}
	}
	return false
}

// rootKey buckets a root to the kernel tolerance so that a root reached
// again by a strictly longer path is not pushed again; a successor whose g
// equals the recorded one is still pushed.
type rootKey struct {
	lat, lon int64
}

func quantise(p sphere.Point) rootKey {
	return rootKey{
		lat: int64(math.Round(p.Lat / sphere.Epsilon)),
		lon: int64(math.Round(p.Lon / sphere.Epsilon)),
	}
}
