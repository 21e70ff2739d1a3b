package scenario

import (
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ulyzses/spherical-polyanya/sphere"
)

func TestParse(t *testing.T) {
	const text = `version 2
maps/world.sph easy 30 10 30 40
maps/world.sph wrap 0 175 0 -175

maps/other.sph far -60 -45 80 170
`
	scens, err := Parse(strings.NewReader(text))
	require.NoError(t, err)
	require.Len(t, scens, 3)

	assert.Equal(t, "maps/world.sph", scens[0].MapPath)
	assert.Equal(t, "easy", scens[0].Label)
	assert.True(t, scens[0].Start.Equal(sphere.FromDegrees(30, 10)))
	assert.True(t, scens[0].End.Equal(sphere.FromDegrees(30, 40)))

	assert.Equal(t, "wrap", scens[1].Label)
	assert.True(t, scens[1].End.Equal(sphere.FromDegrees(0, -175)))

	assert.Equal(t, "maps/other.sph", scens[2].MapPath)
}

func TestParseHeaderCaseInsensitive(t *testing.T) {
	_, err := Parse(strings.NewReader("VERSION 2\n"))
	assert.NoError(t, err)
}

func TestParseMalformed(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"empty", ""},
		{"wrong version", "version 1\n"},
		{"missing version", "map.sph a 0 0 1 1\n"},
		{"short line", "version 2\nmap.sph a 0 0 1\n"},
		{"long line", "version 2\nmap.sph a 0 0 1 1 extra\n"},
		{"non-numeric", "version 2\nmap.sph a zero 0 1 1\n"},
		{"latitude out of range", "version 2\nmap.sph a 91 0 1 1\n"},
		{"longitude out of range", "version 2\nmap.sph a 0 0 1 -181\n"},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(test.text))
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrMalformed), "got %v", err)
		})
	}
}
