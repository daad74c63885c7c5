package simulation

import (
	"math"
	"testing"

	"github.com/lao-tseu-is-alive/go-flock/pkg/geometry"
)

func TestClassic_SpeedLimits(t *testing.T) {
	tests := []struct {
		name      string
		speed     float64
		wantSpeed float64
	}{
		{"Too fast", 200, 120},
		{"Too slow", 10, 40},
		{"In range", 80, 80},
		{"Standing", 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := newTestWorld(t, testConfig())
			b := spawnAt(w, 250, 250, 1, tt.speed, mustPolicy(t, PolicyClassic))
			w.Step(0.1)
			if !floatEquals(b.Speed(), tt.wantSpeed) {
				t.Errorf("speed = %v; want %v", b.Speed(), tt.wantSpeed)
			}
			if tt.speed > 0 && !floatEquals(b.Heading(), 1) {
				t.Errorf("a lonely bird should keep its heading, got %v", b.Heading())
			}
		})
	}
}

func TestClassic_Separation(t *testing.T) {
	w := newTestWorld(t, testConfig())
	a := spawnAt(w, 100, 100, 0, 60, mustPolicy(t, PolicyClassic))
	spawnAt(w, 105, 110, math.Pi/2, 60, mustPolicy(t, PolicyStill))

	w.Step(1.0 / 60)

	// (105,110) -> (100,100) times AvoidFactor 3
	if want := geometry.NewVector(-15, -30); !a.Steering.Separation.Eq(want) {
		t.Errorf("separation = %v; want %v", a.Steering.Separation, want)
	}
	if a.Steering.Neighbors != 1 {
		t.Errorf("neighbors = %d; want 1", a.Steering.Neighbors)
	}
	if a.Heading() < math.Pi || a.Heading() > 2*math.Pi {
		t.Errorf("heading %v should point away from the neighbor below", a.Heading())
	}
	if s := a.Speed(); s < 40-tolerance || s > 120+tolerance {
		t.Errorf("speed %v outside the limits", s)
	}
}

func TestClassic_AlignsWithFarNeighbor(t *testing.T) {
	w := newTestWorld(t, testConfig())
	a := spawnAt(w, 100, 100, 0, 60, mustPolicy(t, PolicyClassic))
	spawnAt(w, 100, 140, math.Pi/2, 60, mustPolicy(t, PolicyStill))

	w.Step(1.0 / 60)

	if !a.Steering.Separation.IsZero() {
		t.Errorf("no separation expected outside the protected range, got %v", a.Steering.Separation)
	}
	// alignment (0-60, 60-0)*0.05 + cohesion (0, 40)*0.03
	if want := geometry.NewVector(57, 4.2); !a.Velocity.Eq(want) {
		t.Errorf("velocity = %v; want %v", a.Velocity, want)
	}
}
