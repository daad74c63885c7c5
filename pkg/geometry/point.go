package geometry

import (
	"fmt"
	"math"
)

// Point is a location (x, y) on the plane.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// NewPoint creates a new Point.
func NewPoint(x, y float64) Point {
	return Point{X: x, Y: y}
}

// String implements the fmt.Stringer interface.
func (p Point) String() string {
	return fmt.Sprintf("(%.2f, %.2f)", p.X, p.Y)
}

// Add displaces the point by v.
func (p Point) Add(v Vector) Point {
	return Point{p.X + v.DX, p.Y + v.DY}
}

// VectorTo returns the vector going from p to other.
func (p Point) VectorTo(other Point) Vector {
	return Vector{other.X - p.X, other.Y - p.Y}
}

// DistanceTo calculates the Euclidean distance to another point.
func (p Point) DistanceTo(other Point) float64 {
	return math.Hypot(other.X-p.X, other.Y-p.Y)
}

// DistanceSquaredTo calculates the squared Euclidean distance to another point.
func (p Point) DistanceSquaredTo(other Point) float64 {
	dx, dy := other.X-p.X, other.Y-p.Y
	return dx*dx + dy*dy
}

// Eq checks if two points are approximately equal using the Epsilon constant.
func (p Point) Eq(other Point) bool {
	return math.Abs(p.X-other.X) <= Epsilon && math.Abs(p.Y-other.Y) <= Epsilon
}

// Centroid returns the mean position of ps.
// It panics when ps is empty.
func Centroid(ps ...Point) Point {
	if len(ps) == 0 {
		panic("geometry: Centroid of an empty point list")
	}
	var sx, sy float64
	for _, p := range ps {
		sx += p.X
		sy += p.Y
	}
	n := float64(len(ps))
	return Point{sx / n, sy / n}
}
