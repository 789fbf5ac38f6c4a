package geometry

import (
	"math"
	"testing"

	"numkit/domain/core"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const tolerance = 1e-9

func TestFormulas(t *testing.T) {
	assert.InDelta(t, math.Pi*4, CircleArea(2), tolerance)
	assert.InDelta(t, math.Pi*4, CirclePerimeter(2), tolerance)
	assert.Equal(t, 12.0, RectangleArea(3, 4))
	assert.Equal(t, 14.0, RectanglePerimeter(3, 4))
	assert.Equal(t, 6.0, TriangleArea(3, 4))
	assert.InDelta(t, 4.0/3.0*math.Pi*27, SphereVolume(3), tolerance)
	assert.InDelta(t, math.Pi*4*5, CylinderVolume(2, 5), tolerance)
}

func TestDistance(t *testing.T) {
	assert.InDelta(t, 5.0, Distance(0, 0, 3, 4), tolerance)
	assert.InDelta(t, 5.0, Distance(3, 4, 0, 0), tolerance)
	assert.InDelta(t, 0.0, Distance(1, 1, 1, 1), tolerance)
	assert.InDelta(t, math.Sqrt2, Distance(-1, -1, 0, 0), tolerance)
}

func TestTriangleAreaFromSides(t *testing.T) {
	area, err := TriangleAreaFromSides(3, 4, 5)
	require.NoError(t, err)
	assert.InDelta(t, 6.0, area, tolerance)

	area, err = TriangleAreaFromSides(1, 2, 3)
	require.NoError(t, err)
	assert.InDelta(t, 0.0, area, tolerance)

	_, err = TriangleAreaFromSides(1, 1, 5)
	assert.ErrorIs(t, err, core.ErrInvalidArgument)

	_, err = TriangleAreaFromSides(-3, 4, 5)
	assert.ErrorIs(t, err, core.ErrInvalidArgument)
}

func TestPolygonArea(t *testing.T) {
	square := []Point{{X: 0, Y: 0}, {X: 4, Y: 0}, {X: 4, Y: 4}, {X: 0, Y: 4}}
	area, err := PolygonArea(square)
	require.NoError(t, err)
	assert.InDelta(t, 16.0, area, tolerance)

	// clockwise winding gives the same area
	clockwise := []Point{{X: 0, Y: 0}, {X: 0, Y: 4}, {X: 4, Y: 4}, {X: 4, Y: 0}}
	area, err = PolygonArea(clockwise)
	require.NoError(t, err)
	assert.InDelta(t, 16.0, area, tolerance)

	_, err = PolygonArea(square[:2])
	assert.ErrorIs(t, err, core.ErrInvalidArgument)
}

func TestEvaluate(t *testing.T) {
	tests := []struct {
		measure string
		args    []float64
		want    float64
		wantErr bool
	}{
		{"circle_area", []float64{1}, math.Pi, false},
		{"Circle-Perimeter", []float64{1}, 2 * math.Pi, false},
		{"rectangle_area", []float64{2, 3}, 6, false},
		{"rectangle_perimeter", []float64{2, 3}, 10, false},
		{"triangle_area", []float64{4, 5}, 10, false},
		{"distance", []float64{0, 0, 6, 8}, 10, false},
		{"sphere_volume", []float64{1}, 4.0 / 3.0 * math.Pi, false},
		{"cylinder_volume", []float64{1, 2}, 2 * math.Pi, false},
		{"triangle_area_sides", []float64{3, 4, 5}, 6, false},
		{"polygon_area", []float64{0, 0, 2, 0, 0, 2}, 2, false},
		{"polygon_area", []float64{0, 0, 2}, 0, true},
		{"circle_area", []float64{1, 2}, 0, true},
		{"distance", nil, 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.measure, func(t *testing.T) {
			m, err := ParseMeasure(tt.measure)
			require.NoError(t, err)

			got, err := Evaluate(m, tt.args)
			if tt.wantErr {
				assert.ErrorIs(t, err, core.ErrInvalidArgument)
				return
			}
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, tolerance)
		})
	}

	_, err := ParseMeasure("hexagon_area")
	assert.ErrorIs(t, err, core.ErrInvalidArgument)

	_, err = Evaluate(Measure("hexagon_area"), []float64{1})
	assert.ErrorIs(t, err, core.ErrInvalidArgument)
}
