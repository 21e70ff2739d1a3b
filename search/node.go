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

	"github.com/Ulyzses/spherical-polyanya/sphere"
)

// ErrPrecondition is the sentinel behind geometric-contract violations
// inside node construction or successor projection. These are programming
// errors: the search fails fast instead of recovering.
var ErrPrecondition = errors.New("search: geometric precondition violated")

// NoVertex marks an interval endpoint that is not a mesh vertex but an
// intersection point interior to an edge.
const NoVertex = -1

// Node is one immutable search state: a root (the last turning point of
// the partial path) observing the interval from Right to Left on an edge
// of NextPoly. The root lies left of (or on) the directed arc Right -> Left,
// and NextPoly lies on the far side of that edge. Children share their parent by
// reference; parents never point back.
type Node struct {
	Parent *Node

	Root  sphere.Point
	Right sphere.Point
	Left  sphere.Point

	// RightVertex and LeftVertex are the mesh vertices bounding the
	// interval's edge, or NoVertex when the endpoint is interior to it.
	RightVertex int
	LeftVertex  int

	NextPoly int

	g float64
	h float64
}

// G is the accumulated great-circle distance from the start to the root,
// in degrees.
func (n *Node) G() float64 { return n.g }

// H is the admissible estimate from the interval to the goal, in degrees.
func (n *Node) H() float64 { return n.h }

// F is the node's priority.
func (n *Node) F() float64 { return n.g + n.h }

// newNode builds a node and computes its heuristic. The root must not lie
// strictly clockwise of the directed arc Right -> Left; a violation means
// an upstream projection produced a malformed interval.
func newNode(parent *Node, root, right, left sphere.Point, rightVertex, leftVertex, nextPoly int, g float64, goal sphere.Point) (*Node, error) {
	if sphere.Orientation(right, left, root) == sphere.Clockwise {
		return nil, errors.Wrapf(ErrPrecondition,
			"root %v lies clockwise of interval %v -> %v", root, right, left)
	}
	return &Node{
		Parent:      parent,
		Root:        root,
		Right:       right,
		Left:        left,
		RightVertex: rightVertex,
		LeftVertex:  leftVertex,
		NextPoly:    nextPoly,
		g:           g,
		h:           heuristic(root, right, left, goal),
	}, nil
}

// heuristic lower-bounds the geodesic distance from the root to the goal
// for any path that passes through the interval. A goal on the root's side
// of the interval arc is first reflected across it; the geodesic to the
// (possibly reflected) goal then either fits through the interval or is
// pinned at one of its endpoints.
func heuristic(root, right, left, goal sphere.Point) float64 {
	if root.Equal(right) || root.Equal(left) {
		return sphere.Distance(root, goal)
	}
	g := goal
	if sphere.Orientation(right, left, g) == sphere.Anticlockwise {
		g = sphere.Reflect(g, right, left)
	}
	switch {
	case sphere.Orientation(root, right, g) == sphere.Clockwise:
		return sphere.Distance(root, right) + sphere.Distance(right, g)
	case sphere.Orientation(root, left, g) == sphere.Anticlockwise:
		return sphere.Distance(root, left) + sphere.Distance(left, g)
	default:
		return sphere.Distance(root, g)
	}
}
