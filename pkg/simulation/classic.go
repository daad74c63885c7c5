package simulation

import (
	"github.com/lao-tseu-is-alive/go-flock/pkg/geometry"
)

// Classic is the velocity-space variant of Reynolds' boids: instead of turning toward a
// desired heading it nudges the velocity itself, then clamps the speed.
// Separation only reacts inside ProtectedRange, cohesion and alignment use NeighborRadius.
type Classic struct{ uniformState }

func (Classic) Name() string { return PolicyClassic }

func (Classic) Steer(b *Bird, dt float64, w *World) {
	cfg := w.cfg
	var away geometry.Vector
	var velocities []geometry.Vector
	var positions []geometry.Point
	for _, other := range w.Neighbors(b, max(cfg.NeighborRadius, cfg.ProtectedRange)) {
		d := b.Distance(&other.Agent)
		if d < cfg.ProtectedRange {
			away = away.Add(other.Position.VectorTo(b.Position))
		}
		if d < cfg.NeighborRadius {
			velocities = append(velocities, other.Velocity)
			positions = append(positions, other.Position)
		}
	}
	b.Steering = Steering{Neighbors: len(positions)}

	// Separation
	separation := away.Mul(cfg.AvoidFactor)
	b.Steering.Separation = separation
	b.Velocity = b.Velocity.Add(separation)

	// Alignment and Cohesion
	if len(positions) > 0 {
		alignment := geometry.Average(velocities...).Sub(b.Velocity).Mul(cfg.MatchingFactor)
		cohesion := b.Position.VectorTo(geometry.Centroid(positions...)).Mul(cfg.CenteringFactor)
		b.Steering.Alignment = alignment
		b.Steering.Cohesion = cohesion
		b.Velocity = b.Velocity.Add(alignment).Add(cohesion)
	}
	b.Steering.Desired = b.Velocity

	// Speed Limits
	if speed := b.Speed(); speed > cfg.MaxSpeed {
		b.Velocity = b.Velocity.WithLength(cfg.MaxSpeed)
	} else if speed > 0 && speed < cfg.MinSpeed {
		b.Velocity = b.Velocity.WithLength(cfg.MinSpeed)
	}

	b.Move(dt)
}
