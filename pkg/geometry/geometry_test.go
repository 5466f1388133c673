package geometry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAngle_RightAngle(t *testing.T) {
	a := Point3{X: 1, Y: 0, Z: 0}
	b := Point3{X: 0, Y: 0, Z: 0}
	c := Point3{X: 0, Y: 1, Z: 0}

	angle, err := Angle(a, b, c)
	require.NoError(t, err)
	assert.InDelta(t, 90.0, angle, 1e-9)
}

func TestAngle_Collinear(t *testing.T) {
	// b between a and c on a straight line
	a := Point3{X: -1, Y: 0, Z: 0}
	b := Point3{X: 0, Y: 0, Z: 0}
	c := Point3{X: 1, Y: 0, Z: 0}

	angle, err := Angle(a, b, c)
	require.NoError(t, err)
	assert.InDelta(t, 180.0, angle, 1e-9)
}

func TestAngle_SameRay(t *testing.T) {
	a := Point3{X: 1, Y: 1, Z: 1}
	b := Point3{X: 0, Y: 0, Z: 0}
	c := Point3{X: 2, Y: 2, Z: 2}

	angle, err := Angle(a, b, c)
	require.NoError(t, err)
	assert.InDelta(t, 0.0, angle, 1e-9)
}

func TestAngle_Symmetry(t *testing.T) {
	triples := [][3]Point3{
		{{1, 0, 0}, {0, 0, 0}, {0, 1, 0}},
		{{1, 2, 3}, {4, 5, 6}, {7, 8, 10}},
		{{-1, 0.5, 2}, {0, 0, 0}, {3, -2, 1}},
	}

	for _, tr := range triples {
		forward, err := Angle(tr[0], tr[1], tr[2])
		require.NoError(t, err)
		backward, err := Angle(tr[2], tr[1], tr[0])
		require.NoError(t, err)

		assert.InDelta(t, forward, backward, 1e-9)
		assert.GreaterOrEqual(t, forward, 0.0)
		assert.LessOrEqual(t, forward, 180.0)
	}
}

func TestAngle_DegenerateVertex(t *testing.T) {
	b := Point3{X: 1, Y: 1, Z: 1}

	_, err := Angle(b, b, Point3{X: 2, Y: 2, Z: 2})
	assert.ErrorIs(t, err, ErrDegenerateGeometry)

	_, err = Angle(Point3{X: 2, Y: 2, Z: 2}, b, b)
	assert.ErrorIs(t, err, ErrDegenerateGeometry)
}

func TestDistance(t *testing.T) {
	d := Distance(Point3{X: 0, Y: 0, Z: 0}, Point3{X: 3, Y: 4, Z: 0})
	assert.InDelta(t, 5.0, d, 1e-9)
}

func TestMidpoint(t *testing.T) {
	m := Midpoint(Point3{X: 0, Y: 0, Z: 2}, Point3{X: 2, Y: 4, Z: 0})
	assert.Equal(t, Point3{X: 1, Y: 2, Z: 1}, m)
}
