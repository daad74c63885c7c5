package main

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/lao-tseu-is-alive/go-flock/pkg/geometry"
	"github.com/lao-tseu-is-alive/go-flock/pkg/simulation"
	"github.com/tochemey/goakt/v3/actor"
	golog "github.com/tochemey/goakt/v3/log"
	"google.golang.org/protobuf/types/known/durationpb"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

func main() {
	configFile := flag.String("config", "", "JSON or TOML configuration file (defaults are used when empty)")
	schemaFile := flag.String("schema", "configs/flock.schema.json", "JSON schema the configuration is validated against")
	steps := flag.Int("steps", 1000, "number of simulation steps")
	policy := flag.String("policy", "", "override the configured steering policy")
	debug := flag.Bool("debug", false, "log every simulation step")
	flag.Parse()

	logger := golog.New(golog.InfoLevel, os.Stdout)
	if *debug {
		logger = golog.New(golog.DebugLevel, os.Stdout)
	}

	cfg := simulation.DefaultConfig()
	if *configFile != "" {
		var err error
		if cfg, err = simulation.LoadConfig(*configFile, *schemaFile); err != nil {
			logger.Fatalf("cannot load configuration: %v", err)
		}
	}
	if *policy != "" {
		cfg.Policy = *policy
	}

	world, err := simulation.NewWorld(cfg, simulation.WithLogger(logger))
	if err != nil {
		logger.Fatalf("cannot create world: %v", err)
	}
	if err := world.Populate(cfg.NumBirds); err != nil {
		logger.Fatalf("cannot populate world: %v", err)
	}

	ctx := context.Background()
	system, err := actor.NewActorSystem("FlockHeadless", actor.WithLogger(logger))
	if err != nil {
		logger.Fatalf("cannot create actor system: %v", err)
	}
	if err := system.Start(ctx); err != nil {
		logger.Fatalf("cannot start actor system: %v", err)
	}
	defer func() { _ = system.Stop(ctx) }()

	pid, err := simulation.SpawnFlock(ctx, system, "flock", world, nil)
	if err != nil {
		logger.Fatalf("cannot spawn flock: %v", err)
	}

	dt := durationpb.New(time.Second / time.Duration(cfg.TicksPerSecond))
	start := time.Now()
	for i := 0; i < *steps; i++ {
		if err := actor.Tell(ctx, pid, dt); err != nil {
			logger.Fatalf("step %d: %v", i, err)
		}
	}
	// the reply comes after every queued step
	reply, err := actor.Ask(ctx, pid, &emptypb.Empty{}, 10*time.Minute)
	if err != nil {
		logger.Fatalf("cannot sync with flock: %v", err)
	}
	wall := time.Since(start)
	tick := reply.(*wrapperspb.UInt64Value).GetValue()

	snap := world.Snapshot()
	logger.Infof("run %s: %s birds, policy %s, grid=%t", snap.WorldID, humanize.Comma(int64(len(snap.Birds))), snap.Policy, snap.Grid)
	logger.Infof("%s ticks, %.1fs simulated in %s (%s)", humanize.Comma(int64(tick)), snap.Elapsed,
		wall.Round(time.Millisecond), humanize.SIWithDigits(float64(tick)/wall.Seconds(), 1, "steps/s"))
	if len(snap.Birds) > 0 {
		headings := make([]geometry.Vector, len(snap.Birds))
		neighbors := 0
		for i, b := range snap.Birds {
			headings[i] = geometry.NewVectorPolar(1, b.Heading)
			neighbors += b.Steering.Neighbors
		}
		// 1 when every bird flies the same way, near 0 for random headings
		polarization := geometry.Average(headings...).Len()
		logger.Infof("polarization %.3f, mean neighbors in sight %.2f", polarization, float64(neighbors)/float64(len(snap.Birds)))
	}
}
