package simulation

import (
	"fmt"
	"math"
	"math/rand/v2"
	"runtime"

	"github.com/google/uuid"
	"github.com/lao-tseu-is-alive/go-flock/pkg/geometry"
	"github.com/tochemey/goakt/v3/log"
	"golang.org/x/sync/errgroup"
)

// World owns the flock and the toroidal plane it lives on.
// It is not safe for concurrent use: exactly one Step runs at a time.
type World struct {
	id     uuid.UUID
	cfg    Config
	birds  []*Bird
	nextID uint64

	tick    uint64
	elapsed float64

	rng    *rand.Rand
	logger log.Logger

	useGrid  bool
	parallel bool
	grid     *grid

	// view is what neighbor queries read: the live birds, or a frozen copy during a parallel step.
	view       []*Bird
	frozen     []Bird
	frozenView []*Bird
}

// Option customizes a World at construction.
type Option func(*World)

// WithLogger sets the logger used by the world.
func WithLogger(logger log.Logger) Option {
	return func(w *World) {
		w.logger = logger
	}
}

// WithRand sets the random source used to place birds and draw per-bird weights.
func WithRand(rng *rand.Rand) Option {
	return func(w *World) {
		w.rng = rng
	}
}

// NewWorld creates an empty world. Invalid settings, such as non-positive dimensions,
// are rejected with an error wrapping ErrInvalidConfig.
func NewWorld(cfg *Config, opts ...Option) (*World, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	w := &World{
		id:       uuid.New(),
		cfg:      *cfg,
		logger:   log.DiscardLogger,
		useGrid:  cfg.UseGrid,
		parallel: cfg.Parallel,
		grid:     newGrid(cfg.SightRadius),
	}
	for _, opt := range opts {
		opt(w)
	}
	if w.rng == nil {
		seed := cfg.Seed
		if seed == 0 {
			seed = rand.Uint64()
		}
		w.rng = rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	}
	w.view = w.birds
	w.logger.Infof("world %s created: %.0fx%.0f, sight %.1f, fov %.2f rad, grid=%t parallel=%t",
		w.id, cfg.WorldWidth, cfg.WorldHeight, cfg.SightRadius, cfg.FieldOfView, w.useGrid, w.parallel)
	return w, nil
}

// ID is the unique run id of this world.
func (w *World) ID() uuid.UUID { return w.id }

// Config returns a copy of the settings the world was built with.
func (w *World) Config() Config { return w.cfg }

func (w *World) Width() float64  { return w.cfg.WorldWidth }
func (w *World) Height() float64 { return w.cfg.WorldHeight }

// Tick is the number of non-empty steps taken so far.
func (w *World) Tick() uint64 { return w.tick }

// Elapsed is the total simulated time, in seconds.
func (w *World) Elapsed() float64 { return w.elapsed }

// Birds returns the flock in its stable iteration order.
func (w *World) Birds() []*Bird { return w.birds }

func (w *World) Len() int { return len(w.birds) }

// Rand exposes the world's random source to policies building per-bird state.
func (w *World) Rand() *rand.Rand { return w.rng }

// Spawn adds a bird at pos (wrapped onto the plane) with the given velocity and policy.
// Its id comes from the world's own counter.
func (w *World) Spawn(pos geometry.Point, vel geometry.Vector, policy Policy) *Bird {
	w.nextID++
	b := &Bird{
		Agent:  Agent{Position: w.Wrap(pos), Velocity: vel},
		ID:     w.nextID,
		Policy: policy,
		slot:   len(w.birds),
	}
	if policy != nil {
		b.State = policy.NewState(w)
	}
	w.birds = append(w.birds, b)
	w.view = w.birds
	w.grid.invalidate()
	return b
}

// Populate spawns n birds at random positions with random headings and the configured
// initial speed, all steered by the configured policy.
func (w *World) Populate(n int) error {
	policy, err := LookupPolicy(w.cfg.Policy)
	if err != nil {
		return err
	}
	for i := 0; i < n; i++ {
		pos := geometry.Point{
			X: w.rng.Float64() * w.cfg.WorldWidth,
			Y: w.rng.Float64() * w.cfg.WorldHeight,
		}
		heading := w.rng.Float64() * geometry.TwoPi
		w.Spawn(pos, geometry.NewVectorPolar(w.cfg.InitialSpeed, heading), policy)
	}
	w.logger.Infof("world %s populated with %d birds (%s)", w.id, n, policy.Name())
	return nil
}

// SetPolicy switches every bird to policy, giving each a fresh policy state.
func (w *World) SetPolicy(policy Policy) {
	for _, b := range w.birds {
		b.Policy = policy
		b.State = policy.NewState(w)
	}
	w.cfg.Policy = policy.Name()
	w.logger.Infof("world %s switched to policy %s", w.id, policy.Name())
}

// SetGrid enables or disables grid-accelerated sighted-neighbor queries.
func (w *World) SetGrid(enabled bool) {
	w.useGrid = enabled
	w.grid.invalidate()
}

// GridEnabled reports whether sighted-neighbor queries use the grid.
func (w *World) GridEnabled() bool { return w.useGrid }

// InvalidateGrid drops the cached grid cells. Call it after moving birds outside of Step.
func (w *World) InvalidateGrid() {
	w.grid.invalidate()
}

// Wrap maps p back onto the plane with a floor modulo: exiting one edge re-enters the opposite one.
func (w *World) Wrap(p geometry.Point) geometry.Point {
	return geometry.Point{
		X: floorMod(p.X, w.cfg.WorldWidth),
		Y: floorMod(p.Y, w.cfg.WorldHeight),
	}
}

func floorMod(v, m float64) float64 {
	r := math.Mod(v, m)
	if r < 0 {
		r += m
	}
	if r >= m {
		// -tiny + m rounds up to m
		return 0
	}
	return r + 0 // no negative zero
}

// Neighbors returns every other bird closer than radius to b.
func (w *World) Neighbors(b *Bird, radius float64) []*Bird {
	var out []*Bird
	for _, other := range w.view {
		if other.ID == b.ID {
			continue
		}
		if b.Position.DistanceTo(other.Position) < radius {
			out = append(out, other)
		}
	}
	return out
}

// VisibleNeighbors returns the birds b can see: within the sight radius and inside the
// field of view around its heading. Results follow world order whether or not the grid is used.
func (w *World) VisibleNeighbors(b *Bird) []*Bird {
	if !w.useGrid {
		return w.visibleBruteForce(b)
	}
	w.ensureGrid()
	var out []*Bird
	for _, i := range w.grid.candidates(b.Position) {
		other := w.view[i]
		if other.ID != b.ID && w.canSee(b, other) {
			out = append(out, other)
		}
	}
	return out
}

func (w *World) visibleBruteForce(b *Bird) []*Bird {
	var out []*Bird
	for _, other := range w.view {
		if other.ID != b.ID && w.canSee(b, other) {
			out = append(out, other)
		}
	}
	return out
}

// canSee is the exact sight test of a looking at b.
func (w *World) canSee(a, b *Bird) bool {
	if a.Position.DistanceTo(b.Position) >= w.cfg.SightRadius {
		return false
	}
	bearing := a.Position.VectorTo(b.Position).Angle()
	return geometry.RadialDistance(bearing, a.Heading()) <= w.cfg.FieldOfView
}

func (w *World) ensureGrid() {
	if !w.grid.fresh(w.tick, len(w.view)) {
		w.grid.rebuild(w.view, w.tick)
	}
}

// Step advances every bird by dt seconds. A zero dt does nothing.
func (w *World) Step(dt float64) {
	if dt == 0 {
		return
	}
	w.tick++
	w.elapsed += dt
	if w.parallel {
		w.stepParallel(dt)
	} else {
		w.stepSequential(dt)
	}
	w.logger.Debugf("world %s tick %d: %d birds, dt=%.4fs", w.id, w.tick, len(w.birds), dt)
}

// stepSequential mutates birds in order; later birds see the moves of earlier ones.
func (w *World) stepSequential(dt float64) {
	w.view = w.birds
	if w.useGrid {
		w.ensureGrid()
	}
	for _, b := range w.birds {
		b.Step(dt, w)
		b.Position = w.Wrap(b.Position)
		if w.useGrid {
			w.grid.relocate(b.slot, b.Position)
		}
	}
}

// stepParallel evaluates every policy against a frozen copy of the tick-start state, then
// wraps once all birds are done. Policies only write to their own bird.
func (w *World) stepParallel(dt float64) {
	w.frozen = w.frozen[:0]
	for _, b := range w.birds {
		w.frozen = append(w.frozen, *b)
	}
	w.frozenView = w.frozenView[:0]
	for i := range w.frozen {
		w.frozenView = append(w.frozenView, &w.frozen[i])
	}
	w.view = w.frozenView
	if w.useGrid {
		w.grid.rebuild(w.view, w.tick)
	}

	workers := runtime.GOMAXPROCS(0)
	chunk := (len(w.birds) + workers - 1) / workers
	var g errgroup.Group
	g.SetLimit(workers)
	for start := 0; start < len(w.birds); start += chunk {
		part := w.birds[start:min(start+chunk, len(w.birds))]
		g.Go(func() error {
			for _, b := range part {
				b.Step(dt, w)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		w.logger.Errorf("world %s tick %d: %v", w.id, w.tick, err)
	}

	for _, b := range w.birds {
		b.Position = w.Wrap(b.Position)
	}
	w.view = w.birds
	w.grid.invalidate()
}

// String implements the fmt.Stringer interface.
func (w *World) String() string {
	return fmt.Sprintf("world %s (%.0fx%.0f, %d birds, tick %d)", w.id, w.cfg.WorldWidth, w.cfg.WorldHeight, len(w.birds), w.tick)
}
