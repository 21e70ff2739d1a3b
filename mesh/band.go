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

import "sort"

// bandIndex accelerates point location. The distinct vertex latitudes cut
// the sphere into horizontal bands; band i covers latitudes between
// lats[i-1] and lats[i], with the extremal bands open towards the poles.
// Each band lists every polygon whose latitude extent overlaps it, so a
// band's list is always a superset of the polygons a query at that latitude
// can hit. Polar polygons participate through their widened extents.
type bandIndex struct {
	lats  []float64
	bands [][]int
}

func newBandIndex(m *Mesh) *bandIndex {
	seen := make(map[float64]struct{}, len(m.Vertices))
	lats := make([]float64, 0, len(m.Vertices))
	for i := range m.Vertices {
		lat := m.Vertices[i].P.Lat
		if _, ok := seen[lat]; !ok {
			seen[lat] = struct{}{}
			lats = append(lats, lat)
		}
	}
	sort.Float64s(lats)

	idx := &bandIndex{lats: lats, bands: make([][]int, len(lats)+1)}
	for id := range m.Polygons {
		pg := &m.Polygons[id]
		for b := range idx.bands {
			lo, hi := -90.0, 90.0
			if b > 0 {
				lo = lats[b-1]
			}
			if b < len(lats) {
				hi = lats[b]
			}
			if pg.MinLat <= hi && pg.MaxLat >= lo {
				idx.bands[b] = append(idx.bands[b], id)
			}
		}
	}
	return idx
}

// candidates returns the polygons whose latitude extent covers lat.
func (idx *bandIndex) candidates(lat float64) []int {
	b := sort.SearchFloat64s(idx.lats, lat)
	return idx.bands[b]
}
