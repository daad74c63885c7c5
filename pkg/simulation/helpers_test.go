package simulation

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/lao-tseu-is-alive/go-flock/pkg/geometry"
	"github.com/tochemey/goakt/v3/log"
)

const tolerance = 1e-9

func floatEquals(a, b float64) bool {
	return math.Abs(a-b) <= tolerance
}

// testConfig is a 500x500 world with sight 75 and a 3π/4 field of view.
func testConfig() *Config {
	cfg := DefaultConfig()
	cfg.WorldWidth = 500
	cfg.WorldHeight = 500
	cfg.NumBirds = 0
	cfg.Seed = 42
	return cfg
}

func newTestWorld(t testing.TB, cfg *Config) *World {
	t.Helper()
	w, err := NewWorld(cfg, WithLogger(log.DiscardLogger), WithRand(rand.New(rand.NewPCG(7, 11))))
	if err != nil {
		t.Fatalf("NewWorld: %v", err)
	}
	return w
}

func mustPolicy(t testing.TB, name string) Policy {
	t.Helper()
	p, err := LookupPolicy(name)
	if err != nil {
		t.Fatalf("LookupPolicy(%q): %v", name, err)
	}
	return p
}

func spawnAt(w *World, x, y, heading, speed float64, policy Policy) *Bird {
	return w.Spawn(geometry.Point{X: x, Y: y}, geometry.NewVectorPolar(speed, heading), policy)
}

func ids(birds []*Bird) []uint64 {
	out := make([]uint64, len(birds))
	for i, b := range birds {
		out[i] = b.ID
	}
	return out
}
