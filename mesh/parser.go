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

import (
	"bufio"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/Ulyzses/spherical-polyanya/sphere"
)

// ErrMalformed is the sentinel behind every malformed-content failure:
// truncated input, wrong header, non-numeric tokens, out-of-range
// coordinates or ids, rings shorter than three vertices, or two adjacent
// obstacle sectors on one vertex. Errors from the underlying reader, and
// from opening the file in ParseFile, are returned wrapped with context but
// do not carry ErrMalformed.
var ErrMalformed = errors.New("mesh: malformed input")

// Option configures parsing.
type Option func(*parseConfig)

type parseConfig struct {
	bandIndex bool
}

// WithoutBandIndex skips building the latitude-band index; Locate then
// always runs the linear scan.
func WithoutBandIndex() Option {
	return func(c *parseConfig) { c.bandIndex = false }
}

// Parse reads a mesh in the .sph text format:
//
//	sph
//	V P
//	lat lon n p_0 ... p_{n-1}     (V vertex lines)
//	n v_0 ... v_{n-1} nb_0 ... nb_{n-1}   (P polygon lines)
//
// Tokens are whitespace-separated; line structure is not significant beyond
// ordering. nb_i is the neighbour across edge (v_i, v_{i+1}), with -1 for a
// border. Input is buffered, so the reader may be read past the end of the
// mesh; it is not closed. Use ParseFile to scope a file handle to the parse.
func Parse(r io.Reader, opts ...Option) (*Mesh, error) {
	cfg := parseConfig{bandIndex: true}
	for _, opt := range opts {
		opt(&cfg)
	}

	tr := newTokens(r)
	head, err := tr.next()
	if err != nil {
		return nil, err
	}
	if !strings.EqualFold(head, "sph") {
		return nil, errors.Wrapf(ErrMalformed, "header %q, want \"sph\"", head)
	}
	nv, err := tr.count("vertex count")
	if err != nil {
		return nil, err
	}
	np, err := tr.count("polygon count")
	if err != nil {
		return nil, err
	}

	m := &Mesh{
		Vertices: make([]Vertex, nv),
		Polygons: make([]Polygon, np),
	}
	for i := 0; i < nv; i++ {
		if err := tr.vertex(m, i, np); err != nil {
			return nil, err
		}
	}
	for i := 0; i < np; i++ {
		if err := tr.polygon(m, i); err != nil {
			return nil, err
		}
	}
	m.derive(cfg.bandIndex)
	return m, nil
}

// ParseFile parses the mesh at path, releasing the file handle on all exit
// paths.
func ParseFile(path string, opts ...Option) (*Mesh, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "mesh: open")
	}
	defer f.Close()
	m, err := Parse(f, opts...)
	if err != nil {
		return nil, errors.Wrapf(err, "mesh: %s", path)
	}
	return m, nil
}

// tokens reads whitespace-separated tokens one at a time.
type tokens struct {
	s *bufio.Scanner
}

func newTokens(r io.Reader) *tokens {
	s := bufio.NewScanner(r)
	s.Split(bufio.ScanWords)
	return &tokens{s: s}
}

func (t *tokens) next() (string, error) {
	if !t.s.Scan() {
		if err := t.s.Err(); err != nil {
			return "", errors.Wrap(err, "mesh: read")
		}
		return "", errors.Wrap(ErrMalformed, "unexpected end of input")
	}
	return t.s.Text(), nil
}

func (t *tokens) int(what string) (int, error) {
	tok, err := t.next()
	if err != nil {
		return 0, err
	}
	n, err := strconv.Atoi(tok)
	if err != nil {
		return 0, errors.Wrapf(ErrMalformed, "%s: %q is not an integer", what, tok)
	}
	return n, nil
}

func (t *tokens) count(what string) (int, error) {
	n, err := t.int(what)
	if err != nil {
		return 0, err
	}
	if n < 0 {
		return 0, errors.Wrapf(ErrMalformed, "%s: negative (%d)", what, n)
	}
	return n, nil
}

func (t *tokens) float(what string) (float64, error) {
	tok, err := t.next()
	if err != nil {
		return 0, err
	}
	f, err := strconv.ParseFloat(tok, 64)
	if err != nil {
		return 0, errors.Wrapf(ErrMalformed, "%s: %q is not a number", what, tok)
	}
	return f, nil
}

func (t *tokens) vertex(m *Mesh, id, np int) error {
	lat, err := t.float("vertex latitude")
	if err != nil {
		return err
	}
	lon, err := t.float("vertex longitude")
	if err != nil {
		return err
	}
	if lat < -90 || lat > 90 {
		return errors.Wrapf(ErrMalformed, "vertex %d: latitude %v out of [-90, 90]", id, lat)
	}
	if lon < -180 || lon > 180 {
		return errors.Wrapf(ErrMalformed, "vertex %d: longitude %v out of [-180, 180]", id, lon)
	}
	n, err := t.count("vertex sector count")
	if err != nil {
		return err
	}
	polys := make([]int, n)
	for i := range polys {
		p, err := t.int("vertex sector")
		if err != nil {
			return err
		}
		if p != Obstacle && (p < 0 || p >= np) {
			return errors.Wrapf(ErrMalformed, "vertex %d: polygon id %d out of range", id, p)
		}
		polys[i] = p
	}
	// Sectors are cyclic around the vertex; two obstacle sectors may not
	// touch without a traversable polygon between them.
	for i := 0; n > 1 && i < n; i++ {
		if polys[i] == Obstacle && polys[(i+1)%n] == Obstacle {
			return errors.Wrapf(ErrMalformed, "vertex %d: adjacent obstacle sectors", id)
		}
	}
	m.Vertices[id] = Vertex{ID: id, P: sphere.FromDegrees(lat, lon), Polygons: polys}
	return nil
}

func (t *tokens) polygon(m *Mesh, id int) error {
	n, err := t.count("polygon vertex count")
	if err != nil {
		return err
	}
	if n < 3 {
		return errors.Wrapf(ErrMalformed, "polygon %d: ring of %d vertices", id, n)
	}
	verts := make([]int, n)
	for i := range verts {
		v, err := t.int("polygon vertex id")
		if err != nil {
			return err
		}
		if v < 0 || v >= len(m.Vertices) {
			return errors.Wrapf(ErrMalformed, "polygon %d: vertex id %d out of range", id, v)
		}
		verts[i] = v
	}
	nbs := make([]int, n)
	for i := range nbs {
		nb, err := t.int("polygon neighbour id")
		if err != nil {
			return err
		}
		if nb != Obstacle && (nb < 0 || nb >= len(m.Polygons)) {
			return errors.Wrapf(ErrMalformed, "polygon %d: neighbour id %d out of range", id, nb)
		}
		nbs[i] = nb
	}
	m.Polygons[id] = Polygon{Vertices: verts, Neighbours: nbs}
	return nil
}
