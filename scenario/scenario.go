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
Package scenario parses version-2 scenario files: a header line followed by
one query per line, each naming a mesh file, a label and the start and end
coordinates in degrees.
*/
package scenario

import (
	"bufio"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/Ulyzses/spherical-polyanya/sphere"
)

// ErrMalformed is the sentinel behind every malformed-content failure of a
// scenario file. Errors from the underlying reader, and from opening the
// file in ParseFile, are returned wrapped with context but do not carry
// ErrMalformed.
var ErrMalformed = errors.New("scenario: malformed input")

// Scenario is one path query against a named mesh.
type Scenario struct {
	MapPath string
	Label   string
	Start   sphere.Point
	End     sphere.Point
}

// Parse reads a scenario file:
//
//	version 2
//	map_path label startLat startLon endLat endLon
//	...
//
// Blank lines are skipped. Latitudes must be in [-90, 90] and longitudes in
// [-180, 180].
func Parse(r io.Reader) ([]Scenario, error) {
	sc := bufio.NewScanner(r)
	if !sc.Scan() {
		if err := sc.Err(); err != nil {
			return nil, errors.Wrap(err, "scenario: read")
		}
		return nil, errors.Wrap(ErrMalformed, "empty file")
	}
	header := strings.Fields(sc.Text())
	if len(header) < 2 || !strings.EqualFold(header[0], "version") || header[1] != "2" {
		return nil, errors.Wrapf(ErrMalformed, "header %q, want \"version 2\"", sc.Text())
	}

	var out []Scenario
	line := 1
	for sc.Scan() {
		line++
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 {
			continue
		}
		if len(fields) != 6 {
			return nil, errors.Wrapf(ErrMalformed, "line %d: %d fields, want 6", line, len(fields))
		}
		coords := make([]float64, 4)
		for i, f := range fields[2:] {
			v, err := strconv.ParseFloat(f, 64)
			if err != nil {
				return nil, errors.Wrapf(ErrMalformed, "line %d: %q is not a number", line, f)
			}
			coords[i] = v
		}
		for i := 0; i < 4; i += 2 {
			if coords[i] < -90 || coords[i] > 90 {
				return nil, errors.Wrapf(ErrMalformed, "line %d: latitude %v out of [-90, 90]", line, coords[i])
			}
			if coords[i+1] < -180 || coords[i+1] > 180 {
				return nil, errors.Wrapf(ErrMalformed, "line %d: longitude %v out of [-180, 180]", line, coords[i+1])
			}
		}
		out = append(out, Scenario{
			MapPath: fields[0],
			Label:   fields[1],
			Start:   sphere.FromDegrees(coords[0], coords[1]),
			End:     sphere.FromDegrees(coords[2], coords[3]),
		})
	}
	if err := sc.Err(); err != nil {
		return nil, errors.Wrap(err, "scenario: read")
	}
	return out, nil
}

// ParseFile parses the scenario file at path, releasing the handle on all
// exit paths.
func ParseFile(path string) ([]Scenario, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "scenario: open")
	}
	defer f.Close()
	out, err := Parse(f)
	if err != nil {
		return nil, errors.Wrapf(err, "scenario: %s", path)
	}
	return out, nil
}
