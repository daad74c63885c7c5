package simulation

import (
	"github.com/lao-tseu-is-alive/go-flock/pkg/geometry"
)

// FlockAverage turns every bird toward the mean heading of all birds within NeighborRadius.
type FlockAverage struct{ uniformState }

func (FlockAverage) Name() string { return PolicyFlock }

func (FlockAverage) Steer(b *Bird, dt float64, w *World) {
	neighbors := w.Neighbors(b, w.cfg.NeighborRadius)
	b.Steering = Steering{Neighbors: len(neighbors)}
	if len(neighbors) > 0 {
		headings := make([]geometry.Vector, len(neighbors))
		for i, n := range neighbors {
			headings[i] = geometry.NewVectorPolar(1, n.Heading())
		}
		desired := geometry.Average(headings...)
		b.Steering.Alignment = desired
		b.Steering.Desired = desired
		if !desired.IsZero() {
			b.TurnTowards(desired.Angle(), steerPercent(w.cfg.SteerRate, dt))
		}
	}
	b.Move(dt)
}

// Loops seeks the centroid of the birds that are in range but not too close,
// which makes small groups circle around each other.
type Loops struct{ uniformState }

func (Loops) Name() string { return PolicyLoops }

func (Loops) Steer(b *Bird, dt float64, w *World) {
	var distant []geometry.Point
	for _, n := range w.Neighbors(b, w.cfg.LoopOuterRadius) {
		if b.Distance(&n.Agent) >= w.cfg.LoopInnerRadius {
			distant = append(distant, n.Position)
		}
	}
	b.Steering = Steering{Neighbors: len(distant)}
	if len(distant) > 0 {
		desired := b.Position.VectorTo(geometry.Centroid(distant...))
		b.Steering.Cohesion = desired
		b.Steering.Desired = desired
		if !desired.IsZero() {
			b.TurnTowards(desired.Angle(), steerPercent(w.cfg.SteerRate, dt))
		}
	}
	b.Move(dt)
}

// Nearest only looks at the closest sighted bird: it turns away inside PersonalSpace
// and toward it otherwise.
type Nearest struct{ uniformState }

func (Nearest) Name() string { return PolicyNearest }

func (Nearest) Steer(b *Bird, dt float64, w *World) {
	neighbors := w.VisibleNeighbors(b)
	b.Steering = Steering{Neighbors: len(neighbors)}
	var closest *Bird
	best := 0.0
	for _, n := range neighbors {
		if d := b.Distance(&n.Agent); closest == nil || d < best {
			closest, best = n, d
		}
	}
	if closest != nil {
		var desired geometry.Vector
		if best < w.cfg.PersonalSpace {
			desired = closest.Position.VectorTo(b.Position)
			b.Steering.Separation = desired
		} else {
			desired = b.Position.VectorTo(closest.Position)
			b.Steering.Cohesion = desired
		}
		b.Steering.Desired = desired
		if !desired.IsZero() {
			b.TurnTowards(desired.Angle(), steerPercent(w.cfg.SteerRate, dt))
		}
	}
	b.Move(dt)
}

// Drift slides the bird diagonally by DriftSpeed on each axis every step, whatever dt is.
type Drift struct{ uniformState }

func (Drift) Name() string { return PolicyDrift }

func (Drift) Steer(b *Bird, _ float64, w *World) {
	b.Velocity = geometry.NewVector(w.cfg.DriftSpeed, w.cfg.DriftSpeed)
	b.Move(1)
}

// Still never moves the bird.
type Still struct{ uniformState }

func (Still) Name() string { return PolicyStill }

func (Still) Steer(*Bird, float64, *World) {}
