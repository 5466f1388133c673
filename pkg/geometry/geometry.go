package geometry

import (
	"errors"
	"math"
)

// ErrDegenerateGeometry is returned when an angle is requested at a vertex
// whose rays have zero length, so no angle is defined.
var ErrDegenerateGeometry = errors.New("degenerate geometry: zero-length vector")

type Point3 struct {
	X float64
	Y float64
	Z float64
}

// Angle returns the interior angle at vertex b formed by the rays b->a and
// b->c, in degrees within [0, 180]. The cosine is clamped to [-1, 1] before
// arccos so floating-point drift never produces NaN.
func Angle(a, b, c Point3) (float64, error) {
	ba := Point3{a.X - b.X, a.Y - b.Y, a.Z - b.Z}
	bc := Point3{c.X - b.X, c.Y - b.Y, c.Z - b.Z}

	normBA := norm(ba)
	normBC := norm(bc)
	if normBA == 0 || normBC == 0 {
		return 0, ErrDegenerateGeometry
	}

	cosine := dot(ba, bc) / (normBA * normBC)
	cosine = clamp(cosine, -1.0, 1.0)

	return math.Acos(cosine) * 180.0 / math.Pi, nil
}

// Distance returns the Euclidean distance between two points.
func Distance(p1, p2 Point3) float64 {
	return norm(Point3{p1.X - p2.X, p1.Y - p2.Y, p1.Z - p2.Z})
}

// Midpoint returns the point halfway between p1 and p2.
func Midpoint(p1, p2 Point3) Point3 {
	return Point3{
		X: (p1.X + p2.X) / 2,
		Y: (p1.Y + p2.Y) / 2,
		Z: (p1.Z + p2.Z) / 2,
	}
}

func dot(p1, p2 Point3) float64 {
	return p1.X*p2.X + p1.Y*p2.Y + p1.Z*p2.Z
}

func norm(p Point3) float64 {
	return math.Sqrt(p.X*p.X + p.Y*p.Y + p.Z*p.Z)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
