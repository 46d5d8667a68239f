package scorer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/twpayne/go-geom"
)

func TestHaversine(t *testing.T) {
	tests := []struct {
		name string
		a, b geom.Coord
		want float64
	}{
		{"same point", geom.Coord{-72.9424, -41.4693}, geom.Coord{-72.9424, -41.4693}, 0},
		// Santiago to Puerto Montt, ~915 km.
		{"santiago to puerto montt", geom.Coord{-70.6693, -33.4489}, geom.Coord{-72.9424, -41.4693}, 915},
		// Quarter of the equator.
		{"90 degrees along equator", geom.Coord{0, 0}, geom.Coord{90, 0}, 10007.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Haversine(tt.a, tt.b)
			assert.InDelta(t, tt.want, got, tt.want*0.01+0.1)
		})
	}
}

func TestHaversineSymmetric(t *testing.T) {
	a := geom.Coord{-58.3816, -34.6037}
	b := geom.Coord{-70.6693, -33.4489}
	assert.InDelta(t, Haversine(a, b), Haversine(b, a), 1e-9)
}
