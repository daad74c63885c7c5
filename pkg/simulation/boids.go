package simulation

import (
	"math"

	"github.com/lao-tseu-is-alive/go-flock/pkg/geometry"
)

// Boids combines separation, cohesion and alignment over the sighted neighbors.
// Boids is an artificial life program, developed by Craig Reynolds in 1986,
// which simulates the flocking behaviour of birds. https://en.wikipedia.org/wiki/Boids
type Boids struct{}

func (Boids) Name() string { return PolicyBoids }

// NewState draws the bird's weights once: uniform, or spread around 1 when RandomWeights is set.
func (Boids) NewState(w *World) PolicyState {
	if !w.cfg.RandomWeights {
		return PolicyState{Weights: UniformWeights}
	}
	spread := w.cfg.WeightSpread
	draw := func() float64 {
		return 1 + spread*(2*w.rng.Float64()-1)
	}
	return PolicyState{Weights: Weights{
		Separation: draw(),
		Cohesion:   draw(),
		Alignment:  draw(),
	}}
}

// Steer turns the bird toward the weighted sum of the three rules, then moves it.
// With nobody in sight it holds its heading.
func (Boids) Steer(b *Bird, dt float64, w *World) {
	neighbors := w.VisibleNeighbors(b)
	b.Steering = Steering{Neighbors: len(neighbors)}
	if len(neighbors) > 0 {
		desired := boidsDesire(b, neighbors, w.cfg)
		if !desired.IsZero() {
			b.TurnTowards(desired.Angle(), boidsTurnPercent(w.cfg, dt))
		}
	}
	b.Move(dt)
}

// boidsDesire computes the three weighted rule vectors and records them on the bird.
// neighbors must not be empty.
func boidsDesire(b *Bird, neighbors []*Bird, cfg Config) geometry.Vector {
	toNeighbors := make([]geometry.Vector, len(neighbors))
	positions := make([]geometry.Point, len(neighbors))
	headings := make([]geometry.Vector, len(neighbors))
	for i, n := range neighbors {
		toNeighbors[i] = b.Position.VectorTo(n.Position)
		positions[i] = n.Position
		headings[i] = geometry.NewVectorPolar(1, n.Heading())
	}

	// closer than the bias, the averaged offset flips and pushes away
	separation := geometry.Average(toNeighbors...)
	separation = separation.WithLength(separation.Len() - cfg.SeparationBias)

	cohesion := b.Position.VectorTo(geometry.Centroid(positions...))

	alignment := geometry.Average(headings...)
	if !alignment.IsZero() {
		alignment = alignment.WithLength(cfg.AlignmentMagnitude)
	}

	weights := b.State.Weights
	separation = separation.Mul(weights.Separation)
	cohesion = cohesion.Mul(weights.Cohesion)
	alignment = alignment.Mul(weights.Alignment)

	desired := separation.Add(cohesion).Add(alignment)
	b.Steering.Separation = separation
	b.Steering.Cohesion = cohesion
	b.Steering.Alignment = alignment
	b.Steering.Desired = desired
	return desired
}

// boidsTurnPercent is TurnRate per tick. It ignores dt unless TimeScaledTurn is set, in which
// case TurnRate is read as the fraction per reference tick of 1/TicksPerSecond.
func boidsTurnPercent(cfg Config, dt float64) float64 {
	if !cfg.TimeScaledTurn {
		return cfg.TurnRate
	}
	tps := float64(cfg.TicksPerSecond)
	if tps <= 0 {
		tps = 60
	}
	return math.Min(cfg.TurnRate*dt*tps, 1)
}
