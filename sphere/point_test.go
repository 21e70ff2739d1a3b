package sphere

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPointRepresentationsAgree(t *testing.T) {
	tests := []struct {
		lat, lon float64
	}{
		{0, 0},
		{30, 10},
		{-45, 135},
		{89.999, -180},
		{-90, 0},
		{90, 0},
	}
	for _, test := range tests {
		p := FromDegrees(test.lat, test.lon)
		assert.InDelta(t, 1, p.Vec.Norm(), 1e-12, "unit vector for %v", p)
		back := FromVector(p.Vec)
		assert.True(t, back.Equal(p), "round trip of (%v, %v) gave %v", test.lat, test.lon, back)
	}
}

func TestPointEqual(t *testing.T) {
	tests := []struct {
		name string
		a, b Point
		want bool
	}{
		{"identical", FromDegrees(10, 20), FromDegrees(10, 20), true},
		{"within tolerance", FromDegrees(10, 20), FromDegrees(10+1e-10, 20-1e-10), true},
		{"latitudes differ", FromDegrees(10, 20), FromDegrees(10.1, 20), false},
		{"longitudes differ", FromDegrees(10, 20), FromDegrees(10, 20.1), false},
		{"poles ignore longitude", FromDegrees(90, 50), FromDegrees(90, -120), true},
		{"opposite poles", FromDegrees(90, 0), FromDegrees(-90, 0), false},
		{"near-polar longitudes still count", FromDegrees(89.9, 50), FromDegrees(89.9, -120), false},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			assert.Equal(t, test.want, test.a.Equal(test.b))
		})
	}
}

func TestAntipode(t *testing.T) {
	tests := []struct {
		p, want Point
	}{
		{FromDegrees(0, 0), FromDegrees(0, -180)},
		{FromDegrees(30, 10), FromDegrees(-30, -170)},
		{FromDegrees(-45, -135), FromDegrees(45, 45)},
	}
	for _, test := range tests {
		got := test.p.Antipode()
		assert.True(t, got.Equal(test.want), "antipode of %v gave %v", test.p, got)
		assert.False(t, got.Equal(test.p), "a point must differ from its antipode")
		assert.InDelta(t, 180, Distance(test.p, got), 1e-9)
		assert.InDelta(t, -1, test.p.Vec.Dot(got.Vec), 1e-12)
	}
}

func TestFromVectorSnapsPoles(t *testing.T) {
	p := FromVector(FromDegrees(90, 0).Vec)
	assert.Equal(t, 90.0, math.Abs(p.Lat))
	assert.Equal(t, 0.0, p.Lon)
}
