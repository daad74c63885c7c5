package simulation

import (
	"fmt"
	"image/color"
	"math"

	"github.com/lao-tseu-is-alive/go-flock/pkg/geometry"
)

// Weights scales the three boids steering components for one bird.
type Weights struct {
	Separation float64 `json:"separation"`
	Cohesion   float64 `json:"cohesion"`
	Alignment  float64 `json:"alignment"`
}

// UniformWeights gives every component the same weight of 1.
var UniformWeights = Weights{Separation: 1, Cohesion: 1, Alignment: 1}

// PolicyState is the per-bird memory of a steering policy.
// It is created by Policy.NewState when the bird is built and lives as long as the bird.
type PolicyState struct {
	Weights Weights
}

// Steering keeps the intermediate vectors of the last policy evaluation, for debug overlays.
type Steering struct {
	Separation geometry.Vector
	Cohesion   geometry.Vector
	Alignment  geometry.Vector
	Desired    geometry.Vector
	Neighbors  int
}

// Bird is a flock member: an Agent with an identity and a steering policy.
type Bird struct {
	Agent
	ID       uint64
	Policy   Policy
	State    PolicyState
	Steering Steering

	slot int // index in the world's flock
}

// Step lets the bird's policy steer and move it for dt seconds.
func (b *Bird) Step(dt float64, w *World) {
	if b.Policy == nil {
		return
	}
	b.Policy.Steer(b, dt, w)
}

// Color returns a stable color derived from the bird ID.
func (b *Bird) Color() color.RGBA {
	return birdColor(b.ID)
}

func (b *Bird) String() string {
	return fmt.Sprintf("bird-%03d at %s heading %.2f", b.ID, b.Position, b.Heading())
}

// birdColor walks the hue circle by the golden angle so that consecutive ids stay distinguishable.
func birdColor(id uint64) color.RGBA {
	const goldenRatioConjugate = 0.618033988749895
	hue := math.Mod(float64(id)*goldenRatioConjugate, 1) * 6
	sector := int(hue)
	f := hue - float64(sector)
	// saturation 0.6, value 0.95
	v := 0.95
	p := v * (1 - 0.6)
	q := v * (1 - 0.6*f)
	t := v * (1 - 0.6*(1-f))
	var r, g, bl float64
	switch sector {
	case 0:
		r, g, bl = v, t, p
	case 1:
		r, g, bl = q, v, p
	case 2:
		r, g, bl = p, v, t
	case 3:
		r, g, bl = p, q, v
	case 4:
		r, g, bl = t, p, v
	default:
		r, g, bl = v, p, q
	}
	return color.RGBA{R: uint8(r * 255), G: uint8(g * 255), B: uint8(bl * 255), A: 255}
}
