package simulation

import (
	"math"

	"github.com/lao-tseu-is-alive/go-flock/pkg/geometry"
)

// Agent is a kinematic body: a position and a velocity (position delta per second).
type Agent struct {
	Position geometry.Point
	Velocity geometry.Vector
}

// Speed is the length of the velocity.
func (a *Agent) Speed() float64 {
	return a.Velocity.Len()
}

// Heading is the angle of the velocity in [0, 2π).
func (a *Agent) Heading() float64 {
	return a.Velocity.Angle()
}

// Move displaces the agent by velocity*fraction. It does not wrap, the World does.
func (a *Agent) Move(fraction float64) {
	a.Position = a.Position.Add(a.Velocity.Mul(fraction))
}

// Distance gives the cartesian distance between this Agent and the other
func (a *Agent) Distance(other *Agent) float64 {
	return a.Position.DistanceTo(other.Position)
}

// RelativeTo returns an Agent whose position and velocity are expressed relative to other.
func (a *Agent) RelativeTo(other *Agent) Agent {
	return Agent{
		Position: geometry.Point{X: a.Position.X - other.Position.X, Y: a.Position.Y - other.Position.Y},
		Velocity: a.Velocity.Sub(other.Velocity),
	}
}

// TurnTowards rotates the velocity toward heading by percent of the angular gap,
// always along the shorter arc. An exact half-turn goes clockwise. Speed is preserved.
// percent is not clamped: callers pick a value that does not overshoot.
func (a *Agent) TurnTowards(heading, percent float64) {
	current := a.Heading()
	target := geometry.NormalizeAngle(heading)
	if target < current {
		target += geometry.TwoPi
	}
	diff := target - current
	if diff == 0 {
		return
	}
	if diff >= math.Pi {
		diff -= geometry.TwoPi
	}
	a.Velocity = a.Velocity.WithAngle(current + diff*percent)
}
