package simulation

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/santhosh-tekuri/jsonschema/v5"
)

var (
	// ErrInvalidConfig is wrapped by every configuration validation failure.
	ErrInvalidConfig = errors.New("invalid flock configuration")
	// ErrUnknownPolicy is returned when a steering policy name is not registered.
	ErrUnknownPolicy = errors.New("unknown steering policy")
)

type Config struct {
	// World Dimensions
	WorldWidth  float64 `json:"worldWidth"`
	WorldHeight float64 `json:"worldHeight"`

	// Population
	NumBirds     int     `json:"numBirds"`
	InitialSpeed float64 `json:"initialSpeed"` // units per second
	Policy       string  `json:"policy"`
	Seed         uint64  `json:"seed"` // 0 picks a random seed

	// Perception
	SightRadius    float64 `json:"sightRadius"`
	FieldOfView    float64 `json:"fieldOfView"` // half-angle around the heading, radians
	NeighborRadius float64 `json:"neighborRadius"`
	UseGrid        bool    `json:"useGrid"`
	Parallel       bool    `json:"parallel"`

	// Boids
	TurnRate           float64 `json:"turnRate"` // fraction of the angular gap per tick
	TimeScaledTurn     bool    `json:"timeScaledTurn"`
	SeparationBias     float64 `json:"separationBias"`
	AlignmentMagnitude float64 `json:"alignmentMagnitude"`
	RandomWeights      bool    `json:"randomWeights"`
	WeightSpread       float64 `json:"weightSpread"`

	// Simpler policies
	SteerRate       float64 `json:"steerRate"` // fraction of the angular gap per second
	LoopInnerRadius float64 `json:"loopInnerRadius"`
	LoopOuterRadius float64 `json:"loopOuterRadius"`
	PersonalSpace   float64 `json:"personalSpace"`
	DriftSpeed      float64 `json:"driftSpeed"`

	// Classic velocity boids
	ProtectedRange  float64 `json:"protectedRange"`
	AvoidFactor     float64 `json:"avoidFactor"`
	MatchingFactor  float64 `json:"matchingFactor"`
	CenteringFactor float64 `json:"centeringFactor"`
	MinSpeed        float64 `json:"minSpeed"`
	MaxSpeed        float64 `json:"maxSpeed"`

	// Driver
	TicksPerSecond int `json:"ticksPerSecond"`
}

func DefaultConfig() *Config {
	return &Config{
		WorldWidth:         1000,
		WorldHeight:        800,
		NumBirds:           300,
		InitialSpeed:       60,
		Policy:             PolicyBoids,
		SightRadius:        75,
		FieldOfView:        3 * math.Pi / 4,
		NeighborRadius:     50,
		UseGrid:            true,
		TurnRate:           0.05,
		SeparationBias:     25,
		AlignmentMagnitude: 20,
		WeightSpread:       0.5,
		SteerRate:          2,
		LoopInnerRadius:    50,
		LoopOuterRadius:    150,
		PersonalSpace:      20,
		DriftSpeed:         0.2,
		ProtectedRange:     20,
		AvoidFactor:        3,
		MatchingFactor:     0.05,
		CenteringFactor:    0.03,
		MinSpeed:           40,
		MaxSpeed:           120,
		TicksPerSecond:     60,
	}
}

// Validate reports the first setting that makes the world ill-defined.
func (c *Config) Validate() error {
	switch {
	case !(c.WorldWidth > 0) || !(c.WorldHeight > 0):
		return fmt.Errorf("%w: world dimensions must be positive, got %vx%v", ErrInvalidConfig, c.WorldWidth, c.WorldHeight)
	case c.NumBirds < 0:
		return fmt.Errorf("%w: numBirds must not be negative, got %d", ErrInvalidConfig, c.NumBirds)
	case !(c.SightRadius > 0):
		return fmt.Errorf("%w: sightRadius must be positive, got %v", ErrInvalidConfig, c.SightRadius)
	case !(c.FieldOfView > 0) || c.FieldOfView > math.Pi:
		return fmt.Errorf("%w: fieldOfView must be in (0, π], got %v", ErrInvalidConfig, c.FieldOfView)
	case c.WeightSpread < 0 || c.WeightSpread >= 1:
		return fmt.Errorf("%w: weightSpread must be in [0, 1), got %v", ErrInvalidConfig, c.WeightSpread)
	case c.MinSpeed < 0 || c.MinSpeed > c.MaxSpeed:
		return fmt.Errorf("%w: speed limits must satisfy 0 <= minSpeed <= maxSpeed, got %v and %v", ErrInvalidConfig, c.MinSpeed, c.MaxSpeed)
	case c.TicksPerSecond <= 0:
		return fmt.Errorf("%w: ticksPerSecond must be positive, got %d", ErrInvalidConfig, c.TicksPerSecond)
	case c.LoopInnerRadius > c.LoopOuterRadius:
		return fmt.Errorf("%w: loopInnerRadius %v exceeds loopOuterRadius %v", ErrInvalidConfig, c.LoopInnerRadius, c.LoopOuterRadius)
	}
	if c.Policy != "" {
		if _, err := LookupPolicy(c.Policy); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
		}
	}
	return nil
}

// LoadConfig loads configuration from a JSON or TOML file and validates it against the schema.
// Settings missing from the file keep their DefaultConfig value.
func LoadConfig(configFile string, schemaFile string) (*Config, error) {
	// 1. Compile Schema
	sch, err := jsonschema.Compile(schemaFile)
	if err != nil {
		return nil, fmt.Errorf("failed to compile schema: %w", err)
	}

	// 2. Read Config File, TOML is re-encoded so both formats share the schema
	b, err := os.ReadFile(configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	if strings.EqualFold(filepath.Ext(configFile), ".toml") {
		var raw map[string]any
		if _, err := toml.Decode(string(b), &raw); err != nil {
			return nil, fmt.Errorf("failed to decode config toml: %w", err)
		}
		if b, err = json.Marshal(raw); err != nil {
			return nil, fmt.Errorf("failed to re-encode config toml: %w", err)
		}
	}

	// 3. Validate
	var v interface{}
	if err := json.NewDecoder(bytes.NewReader(b)).Decode(&v); err != nil {
		return nil, fmt.Errorf("failed to decode config json: %w", err)
	}
	if err := sch.Validate(v); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	// 4. Unmarshal over the defaults
	cfg := DefaultConfig()
	if err := json.Unmarshal(b, cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
