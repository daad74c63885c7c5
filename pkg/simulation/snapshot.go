package simulation

import (
	"image/color"

	"github.com/google/uuid"
	"github.com/lao-tseu-is-alive/go-flock/pkg/geometry"
)

// BirdView is the read-only state of one bird handed to renderers.
type BirdView struct {
	ID       uint64
	Position geometry.Point
	Velocity geometry.Vector
	Heading  float64
	Speed    float64
	Color    color.RGBA
	Steering Steering
}

// Snapshot is a copy of the world taken between two steps.
// Renderers may keep it after the world has moved on.
type Snapshot struct {
	WorldID uuid.UUID
	Tick    uint64
	Elapsed float64
	Width   float64
	Height  float64
	Policy  string
	Grid    bool
	Birds   []BirdView
}

// Snapshot copies the current state of every bird.
func (w *World) Snapshot() *Snapshot {
	snap := &Snapshot{
		WorldID: w.id,
		Tick:    w.tick,
		Elapsed: w.elapsed,
		Width:   w.cfg.WorldWidth,
		Height:  w.cfg.WorldHeight,
		Policy:  w.cfg.Policy,
		Grid:    w.useGrid,
		Birds:   make([]BirdView, 0, len(w.birds)),
	}
	for _, b := range w.birds {
		snap.Birds = append(snap.Birds, BirdView{
			ID:       b.ID,
			Position: b.Position,
			Velocity: b.Velocity,
			Heading:  b.Heading(),
			Speed:    b.Speed(),
			Color:    b.Color(),
			Steering: b.Steering,
		})
	}
	return snap
}
