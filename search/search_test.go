package search

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ulyzses/spherical-polyanya/mesh"
	"github.com/Ulyzses/spherical-polyanya/sphere"
)

// One octahedron face: corners at the north pole, (0, 0) and (0, 90).
const triangleMesh = `sph
3 1
90 0 2 0 -1
0 0 2 0 -1
0 90 2 0 -1
3 0 1 2 -1 -1 -1
`

// A square split into two triangles along the diagonal (0,0)-(10,10).
const twoTriangleMesh = `sph
4 2
0 0 3 0 1 -1
0 10 2 0 -1
10 10 3 0 1 -1
10 0 2 1 -1
3 0 1 2 -1 -1 1
3 0 2 3 0 -1 -1
`

// An L-shaped corridor of three quads around an obstacle notch. The inner
// corner sits at (10, 10); any path between the two arms must turn there.
const cornerMesh = `sph
8 3
0 0 2 0 -1
0 10 3 0 1 -1
0 30 2 1 -1
10 30 2 1 -1
10 10 4 1 0 2 -1
10 0 3 0 2 -1
30 10 2 2 -1
30 0 2 2 -1
4 0 1 4 5 -1 1 2 -1
4 1 2 3 4 -1 -1 -1 0
4 5 4 6 7 0 -1 -1 -1
`

// The corner corridor again, with the horizontal arm split in two so the
// search must pivot at the inner corner mid-expansion rather than during
// terminal detection.
const corridorMesh = `sph
10 4
0 0 2 0 -1
0 10 3 0 1 -1
0 30 2 2 -1
10 30 2 2 -1
10 10 4 1 0 3 -1
10 0 3 0 3 -1
30 10 2 3 -1
30 0 2 3 -1
0 20 3 1 2 -1
10 20 3 2 1 -1
4 0 1 4 5 -1 1 3 -1
4 1 8 9 4 -1 2 -1 0
4 8 2 3 9 -1 -1 -1 1
4 5 4 6 7 0 -1 -1 -1
`

// Two triangles with no connection between them.
const disconnectedMesh = `sph
6 2
0 0 2 0 -1
0 10 2 0 -1
10 10 2 0 -1
20 0 2 1 -1
20 10 2 1 -1
30 10 2 1 -1
3 0 1 2 -1 -1 -1
3 3 4 5 -1 -1 -1
`

// A quad crossing the antimeridian between lon 170 and lon -170.
const wrapMesh = `sph
4 1
-10 170 2 0 -1
-10 -170 2 0 -1
10 -170 2 0 -1
10 170 2 0 -1
4 0 1 2 3 -1 -1 -1 -1
`

func parseMesh(t *testing.T, text string) *mesh.Mesh {
	t.Helper()
	m, err := mesh.Parse(strings.NewReader(text))
	require.NoError(t, err)
	return m
}

// assertPath checks the structural properties every returned path must
// have: it runs from start to end and its reported length is the sum of
// its great-circle segments.
func assertPath(t *testing.T, p Path, start, end sphere.Point) {
	t.Helper()
	require.NotEmpty(t, p.Points)
	assert.True(t, p.Points[0].Equal(start), "path starts at %v, want %v", p.Points[0], start)
	assert.True(t, p.Points[len(p.Points)-1].Equal(end), "path ends at %v, want %v", p.Points[len(p.Points)-1], end)
	sum := 0.0
	for i := 1; i < len(p.Points); i++ {
		sum += sphere.Distance(p.Points[i-1], p.Points[i])
	}
	assert.InDelta(t, sum, p.Length, 1e-6)
}

func TestSamePolygon(t *testing.T) {
	m := parseMesh(t, triangleMesh)
	start := sphere.FromDegrees(30, 10)
	end := sphere.FromDegrees(30, 40)
	p, err := New(m, start, end).Run()
	require.NoError(t, err)
	assertPath(t, p, start, end)
	require.Len(t, p.Points, 2)
	assert.InDelta(t, sphere.Distance(start, end), p.Length, 1e-9)
}

func TestStartInObstacle(t *testing.T) {
	m := parseMesh(t, triangleMesh)
	p, err := New(m, sphere.FromDegrees(-10, 45), sphere.FromDegrees(30, 30)).Run()
	require.NoError(t, err)
	assert.Empty(t, p.Points)
	assert.Zero(t, p.Length)
}

func TestEndInObstacle(t *testing.T) {
	m := parseMesh(t, triangleMesh)
	p, err := New(m, sphere.FromDegrees(30, 30), sphere.FromDegrees(-10, 45)).Run()
	require.NoError(t, err)
	assert.Empty(t, p.Points)
	assert.Zero(t, p.Length)
}

func TestTwoPolygonTraverse(t *testing.T) {
	m := parseMesh(t, twoTriangleMesh)
	start := sphere.FromDegrees(2, 6)
	end := sphere.FromDegrees(6, 2)
	p, err := New(m, start, end).Run()
	require.NoError(t, err)
	assertPath(t, p, start, end)
	require.Len(t, p.Points, 2, "a chord through the shared edge needs no turn")
	assert.InDelta(t, sphere.Distance(start, end), p.Length, 1e-9)
}

func TestCornerTurn(t *testing.T) {
	m := parseMesh(t, cornerMesh)
	start := sphere.FromDegrees(25, 5)
	end := sphere.FromDegrees(5, 25)
	corner := sphere.FromDegrees(10, 10)
	p, err := New(m, start, end).Run()
	require.NoError(t, err)
	assertPath(t, p, start, end)
	require.Len(t, p.Points, 3)
	assert.True(t, p.Points[1].Equal(corner), "turn at %v, want %v", p.Points[1], corner)
	want := sphere.Distance(start, corner) + sphere.Distance(corner, end)
	assert.InDelta(t, want, p.Length, 1e-9)
	assert.Greater(t, p.Length, sphere.Distance(start, end),
		"the detour around the notch is longer than the blocked chord")
}

func TestCornerTurnThroughCorridor(t *testing.T) {
	m := parseMesh(t, corridorMesh)
	start := sphere.FromDegrees(25, 5)
	end := sphere.FromDegrees(5, 25)
	corner := sphere.FromDegrees(10, 10)
	p, err := New(m, start, end).Run()
	require.NoError(t, err)
	assertPath(t, p, start, end)
	require.Len(t, p.Points, 3)
	assert.True(t, p.Points[1].Equal(corner), "turn at %v, want %v", p.Points[1], corner)
	want := sphere.Distance(start, corner) + sphere.Distance(corner, end)
	assert.InDelta(t, want, p.Length, 1e-9)
}

func TestNoPathAcrossDisconnection(t *testing.T) {
	m := parseMesh(t, disconnectedMesh)
	p, err := New(m, sphere.FromDegrees(2, 6), sphere.FromDegrees(22, 9)).Run()
	require.NoError(t, err)
	assert.Empty(t, p.Points)
	assert.Zero(t, p.Length)
}

func TestAntimeridianCrossing(t *testing.T) {
	m := parseMesh(t, wrapMesh)
	start := sphere.FromDegrees(0, 175)
	end := sphere.FromDegrees(0, -175)
	p, err := New(m, start, end).Run()
	require.NoError(t, err)
	assertPath(t, p, start, end)
	assert.InDelta(t, 10, p.Length, 1e-6, "the short way across the antimeridian")
}

func TestStartOnSharedEdge(t *testing.T) {
	m := parseMesh(t, twoTriangleMesh)
	// The midpoint of the diagonal arc lies on the edge shared by both
	// triangles, so the end polygon is directly incident to the start.
	start := sphere.FromVector(
		sphere.FromDegrees(0, 0).Vec.Add(sphere.FromDegrees(10, 10).Vec))
	end := sphere.FromDegrees(6, 2)
	p, err := New(m, start, end).Run()
	require.NoError(t, err)
	assertPath(t, p, start, end)
	assert.InDelta(t, sphere.Distance(start, end), p.Length, 1e-6)
}

func TestDeterministicResults(t *testing.T) {
	m := parseMesh(t, cornerMesh)
	start := sphere.FromDegrees(25, 5)
	end := sphere.FromDegrees(5, 25)
	first, err := New(m, start, end).Run()
	require.NoError(t, err)
	second, err := New(m, start, end).Run()
	require.NoError(t, err)
	require.Len(t, second.Points, len(first.Points))
	for i := range first.Points {
		assert.True(t, second.Points[i].Equal(first.Points[i]))
	}
	assert.Equal(t, first.Length, second.Length)
}
