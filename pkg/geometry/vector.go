package geometry

import (
	"errors"
	"fmt"
	"math"
)

// Epsilon Precision constant used for float64 comparisons.
const (
	Epsilon = 1e-9
	TwoPi   = 2 * math.Pi
)

// Vector represents a displacement (dx, dy) in cartesian space.
// It is a value type: every operation returns a new Vector.
type Vector struct {
	DX float64 `json:"dx"`
	DY float64 `json:"dy"`
}

// NewVector creates a new Vector from raw components.
func NewVector(dx, dy float64) Vector {
	return Vector{DX: dx, DY: dy}
}

// NewVectorPolar creates a new Vector from polar coordinates.
// theta is in radians.
func NewVectorPolar(length, theta float64) Vector {
	dx := length * math.Cos(theta)
	dy := length * math.Sin(theta)

	// Handle standard floating point precision issues near zero
	if math.Abs(dx) < Epsilon {
		dx = 0
	}
	if math.Abs(dy) < Epsilon {
		dy = 0
	}

	return Vector{DX: dx, DY: dy}
}

// String implements the fmt.Stringer interface.
func (v Vector) String() string {
	return fmt.Sprintf("<%.2f, %.2f>", v.DX, v.DY)
}

// ---------------------------------------------------------------------
// Arithmetic Operations
// ---------------------------------------------------------------------

// Add adds two vectors and returns the result.
func (v Vector) Add(other Vector) Vector {
	return Vector{v.DX + other.DX, v.DY + other.DY}
}

// Sub subtracts the other vector from the current vector.
func (v Vector) Sub(other Vector) Vector {
	return Vector{v.DX - other.DX, v.DY - other.DY}
}

// Mul scales the vector by a scalar value.
func (v Vector) Mul(scalar float64) Vector {
	return Vector{v.DX * scalar, v.DY * scalar}
}

// Neg returns the vector pointing the opposite way.
func (v Vector) Neg() Vector {
	return Vector{-v.DX, -v.DY}
}

// Div scales the vector by 1/scalar.
// if scalar is zero it returns a math.Inf vector together with an error.
func (v Vector) Div(scalar float64) (Vector, error) {
	if scalar == 0 {
		return Vector{math.Inf(1), math.Inf(1)}, errors.New("vector cannot be divided by zero")
	}
	return Vector{v.DX / scalar, v.DY / scalar}, nil
}

// Dot calculates the dot product of two vectors.
func (v Vector) Dot(other Vector) float64 {
	return v.DX*other.DX + v.DY*other.DY
}

// Cross calculates the 2D scalar cross product (z-component of 3D cross product).
// Positive when other lies counter-clockwise of v.
func (v Vector) Cross(other Vector) float64 {
	return v.DX*other.DY - v.DY*other.DX
}

// ---------------------------------------------------------------------
// Length and Angle
// ---------------------------------------------------------------------

// LenSqr calculates the squared magnitude of the vector.
// Use it for comparisons, it avoids the square root.
func (v Vector) LenSqr() float64 {
	return v.DX*v.DX + v.DY*v.DY
}

// Len calculates the magnitude (length) of the vector.
func (v Vector) Len() float64 {
	return math.Hypot(v.DX, v.DY)
}

// Angle returns the direction of the vector in radians, normalized to [0, 2π).
// A zero vector has angle 0 (atan2 convention); callers must not read a heading into it.
func (v Vector) Angle() float64 {
	return NormalizeAngle(math.Atan2(v.DY, v.DX))
}

// WithAngle returns a vector of the same length pointing at theta.
func (v Vector) WithAngle(theta float64) Vector {
	return NewVectorPolar(v.Len(), theta)
}

// WithLength returns a vector with the same angle rescaled to length.
// A negative length points the vector the opposite way.
func (v Vector) WithLength(length float64) Vector {
	return NewVectorPolar(length, v.Angle())
}

// Normalize returns a unit vector in the same direction.
// Returns a zero vector if the length is effectively zero.
func (v Vector) Normalize() Vector {
	l := v.Len()
	if l < Epsilon {
		return Vector{0, 0}
	}
	return v.Mul(1 / l)
}

// IsZero reports whether the vector has (effectively) no length.
func (v Vector) IsZero() bool {
	return v.LenSqr() < Epsilon*Epsilon
}

// Eq checks if two vectors are approximately equal using the Epsilon constant.
func (v Vector) Eq(other Vector) bool {
	return math.Abs(v.DX-other.DX) <= Epsilon && math.Abs(v.DY-other.DY) <= Epsilon
}

// Average returns the component-wise mean of vs.
// It panics when vs is empty: callers guard with a length check.
func Average(vs ...Vector) Vector {
	if len(vs) == 0 {
		panic("geometry: Average of an empty vector list")
	}
	var sum Vector
	for _, v := range vs {
		sum = sum.Add(v)
	}
	n := float64(len(vs))
	return Vector{sum.DX / n, sum.DY / n}
}

// ---------------------------------------------------------------------
// Angles
// ---------------------------------------------------------------------

// NormalizeAngle maps theta into [0, 2π).
func NormalizeAngle(theta float64) float64 {
	a := math.Mod(theta, TwoPi)
	if a < 0 {
		a += TwoPi
	}
	// a tiny negative value plus 2π rounds up to exactly 2π
	if a >= TwoPi {
		a = 0
	}
	return a
}

// RadialDistance is the unsigned angular gap between a and b, in [0, π].
// It ignores turn direction.
func RadialDistance(a, b float64) float64 {
	d := math.Abs(NormalizeAngle(a) - NormalizeAngle(b))
	return math.Min(d, TwoPi-d)
}
