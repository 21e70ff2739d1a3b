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

// Obstacle marks a missing neighbour: an edge with no traversable polygon
// on the far side, or an impassable sector around a vertex. There is no
// sentinel polygon object behind it; the id simply refers to nothing.
const Obstacle = -1

// Vertex is a mesh corner: a point on the sphere together with the ordered
// list of polygons incident to it, one entry per sector around the vertex.
// Obstacle entries mark impassable sectors.
type Vertex struct {
	ID int
	P  sphere.Point

	// Polygons lists the incident sectors in rotational order. The list is
	// cyclic: the last entry is adjacent to the first.
	Polygons []int

	// Corner is true when at least one incident sector is an obstacle.
	// Only corner vertices can serve as turning points of a shortest path.
	Corner bool

	// Ambiguous is true when more than one incident sector is an obstacle.
	Ambiguous bool
}

// deriveFlags fills Corner and Ambiguous from the incident-sector list.
func (v *Vertex) deriveFlags() {
	obstacles := 0
	for _, p := range v.Polygons {
		if p == Obstacle {
			obstacles++
		}
	}
	v.Corner = obstacles >= 1
	v.Ambiguous = obstacles > 1
}
