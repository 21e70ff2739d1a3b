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
Package geojson renders search results and meshes as GeoJSON so they can be
dropped straight onto a map. Coordinates follow the GeoJSON axis order,
longitude before latitude.
*/
package geojson

import (
	jsoniter "github.com/json-iterator/go"

	"github.com/Ulyzses/spherical-polyanya/mesh"
	"github.com/Ulyzses/spherical-polyanya/search"
	"github.com/Ulyzses/spherical-polyanya/sphere"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Geometry is a GeoJSON geometry object.
type Geometry struct {
	Type        string `json:"type"`
	Coordinates any    `json:"coordinates"`
}

// Feature is a GeoJSON feature object.
type Feature struct {
	Type       string         `json:"type"`
	Properties map[string]any `json:"properties,omitempty"`
	Geometry   Geometry       `json:"geometry"`
}

// FeatureCollection is a GeoJSON feature collection.
type FeatureCollection struct {
	Type     string    `json:"type"`
	Features []Feature `json:"features"`
}

// FromPath renders a path polyline as a LineString feature carrying the
// path length, in arc-degrees, as a property.
func FromPath(p search.Path) Feature {
	coords := make([][2]float64, len(p.Points))
	for i, pt := range p.Points {
		coords[i] = position(pt)
	}
	return Feature{
		Type:       "Feature",
		Properties: map[string]any{"length_deg": p.Length},
		Geometry:   Geometry{Type: "LineString", Coordinates: coords},
	}
}

// FromMesh renders every polygon of a mesh as a Polygon feature. GeoJSON
// rings are closed, so the first vertex is repeated at the end.
func FromMesh(m *mesh.Mesh) FeatureCollection {
	fc := FeatureCollection{Type: "FeatureCollection"}
	for id := range m.Polygons {
		pg := &m.Polygons[id]
		ring := make([][2]float64, 0, len(pg.Vertices)+1)
		for _, vi := range pg.Vertices {
			ring = append(ring, position(m.Vertices[vi].P))
		}
		ring = append(ring, ring[0])
		fc.Features = append(fc.Features, Feature{
			Type:       "Feature",
			Properties: map[string]any{"id": id, "one_way": pg.IsOneWay},
			Geometry:   Geometry{Type: "Polygon", Coordinates: [][][2]float64{ring}},
		})
	}
	return fc
}

// Marshal encodes any of the package's values as indented GeoJSON.
func Marshal(v any) ([]byte, error) {
	return json.MarshalIndent(v, "", "  ")
}

func position(p sphere.Point) [2]float64 {
	return [2]float64{p.Lon, p.Lat}
}
