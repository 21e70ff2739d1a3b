package mesh

import (
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTriangle(t *testing.T) {
	m := parse(t, triangleMesh)
	require.Len(t, m.Vertices, 3)
	require.Len(t, m.Polygons, 1)
	assert.Equal(t, []int{0, 1, 2}, m.Polygons[0].Vertices)
	assert.Equal(t, []int{Obstacle, Obstacle, Obstacle}, m.Polygons[0].Neighbours)
	assert.Equal(t, []int{0, Obstacle}, m.Vertices[0].Polygons)
}

func TestParseHeaderCaseInsensitive(t *testing.T) {
	_, err := Parse(strings.NewReader(strings.Replace(triangleMesh, "sph", "SPH", 1)))
	assert.NoError(t, err)
}

func TestParseMalformed(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"wrong header", "mesh\n1 0\n0 0 1 -1\n"},
		{"truncated", "sph\n3 1\n90 0 2 0 -1\n"},
		{"latitude out of range", "sph\n1 0\n91 0 1 0\n"},
		{"longitude out of range", "sph\n1 0\n0 181 1 0\n"},
		{"ring too short", "sph\n2 1\n0 0 1 0\n0 10 1 0\n2 0 1 -1 -1\n"},
		{"vertex id out of range", "sph\n3 1\n90 0 1 0\n0 0 1 0\n0 90 1 0\n3 0 1 5 -1 -1 -1\n"},
		{"neighbour id out of range", "sph\n3 1\n90 0 1 0\n0 0 1 0\n0 90 1 0\n3 0 1 2 -1 -1 7\n"},
		{"sector id out of range", "sph\n1 1\n0 0 1 3\n3 0 0 0 -1 -1 -1\n"},
		{"adjacent obstacle sectors", "sph\n1 1\n0 0 3 0 -1 -1\n3 0 0 0 -1 -1 -1\n"},
		{"non-numeric token", "sph\n1 0\nzero 0 1 0\n"},
		{"negative counts", "sph\n-1 0\n"},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(test.text))
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrMalformed), "got %v", err)
		})
	}
}

func TestParseFileMissing(t *testing.T) {
	_, err := ParseFile("does/not/exist.sph")
	assert.Error(t, err)
}
