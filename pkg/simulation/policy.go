package simulation

import (
	"fmt"
	"math"
	"slices"
	"sync"
)

// Registered policy names.
const (
	PolicyBoids   = "boids"
	PolicyClassic = "classic"
	PolicyFlock   = "flock"
	PolicyLoops   = "loops"
	PolicyNearest = "nearest"
	PolicyDrift   = "drift"
	PolicyStill   = "still"
)

// Policy steers a bird: it reads the world, turns the bird and moves it.
// Steer must only write to b, several birds may be steered concurrently in parallel mode.
type Policy interface {
	Name() string
	// NewState builds the per-bird state when a bird is spawned or switched to this policy.
	NewState(w *World) PolicyState
	Steer(b *Bird, dt float64, w *World)
}

var (
	policiesMu sync.RWMutex
	policies   = make(map[string]Policy)
)

// RegisterPolicy makes a policy available by name. It panics on a duplicate name.
func RegisterPolicy(p Policy) {
	policiesMu.Lock()
	defer policiesMu.Unlock()
	if _, dup := policies[p.Name()]; dup {
		panic("simulation: RegisterPolicy called twice for policy " + p.Name())
	}
	policies[p.Name()] = p
}

// LookupPolicy returns the registered policy called name.
func LookupPolicy(name string) (Policy, error) {
	policiesMu.RLock()
	defer policiesMu.RUnlock()
	p, ok := policies[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownPolicy, name)
	}
	return p, nil
}

// PolicyNames lists the registered policies in alphabetical order.
func PolicyNames() []string {
	policiesMu.RLock()
	defer policiesMu.RUnlock()
	names := make([]string, 0, len(policies))
	for name := range policies {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

func init() {
	RegisterPolicy(Boids{})
	RegisterPolicy(Classic{})
	RegisterPolicy(FlockAverage{})
	RegisterPolicy(Loops{})
	RegisterPolicy(Nearest{})
	RegisterPolicy(Drift{})
	RegisterPolicy(Still{})
}

// steerPercent turns a per-second rate into the fraction of the angular gap to close this step.
func steerPercent(rate, dt float64) float64 {
	return math.Min(rate*dt, 1)
}

type uniformState struct{}

func (uniformState) NewState(*World) PolicyState {
	return PolicyState{Weights: UniformWeights}
}
