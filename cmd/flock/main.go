package main

import (
	"context"
	"flag"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/lao-tseu-is-alive/go-flock/pkg/simulation"
	"github.com/tochemey/goakt/v3/actor"
	golog "github.com/tochemey/goakt/v3/log"
)

func main() {
	configFile := flag.String("config", "", "JSON or TOML configuration file (defaults are used when empty)")
	schemaFile := flag.String("schema", "configs/flock.schema.json", "JSON schema the configuration is validated against")
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

	world, err := simulation.NewWorld(cfg, simulation.WithLogger(logger))
	if err != nil {
		logger.Fatalf("cannot create world: %v", err)
	}
	if err := world.Populate(cfg.NumBirds); err != nil {
		logger.Fatalf("cannot populate world: %v", err)
	}

	ctx := context.Background()
	system, err := actor.NewActorSystem("FlockWorld",
		actor.WithLogger(logger),
		actor.WithActorInitMaxRetries(3))
	if err != nil {
		logger.Fatalf("cannot create actor system: %v", err)
	}
	if err := system.Start(ctx); err != nil {
		logger.Fatalf("cannot start actor system: %v", err)
	}
	defer func() { _ = system.Stop(ctx) }()

	game, err := NewGame(ctx, system, world)
	if err != nil {
		logger.Fatalf("cannot start viewer: %v", err)
	}

	ebiten.SetWindowSize(int(cfg.WorldWidth), int(cfg.WorldHeight))
	ebiten.SetWindowTitle("Flock: " + cfg.Policy)
	ebiten.SetTPS(cfg.TicksPerSecond)
	if err := ebiten.RunGame(game); err != nil {
		logger.Error(err)
	}
}
