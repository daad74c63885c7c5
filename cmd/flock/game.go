package main

import (
	"context"
	"fmt"
	"image/color"
	"math"
	"slices"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/lao-tseu-is-alive/go-flock/pkg/geometry"
	"github.com/lao-tseu-is-alive/go-flock/pkg/simulation"
	"github.com/lao-tseu-is-alive/go-flock/pkg/ui"
	"github.com/tochemey/goakt/v3/actor"
	"github.com/tochemey/goakt/v3/log"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/durationpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

var (
	whiteImage = ebiten.NewImage(3, 3)
	background = color.RGBA{R: 10, G: 10, B: 30, A: 255}
)

func init() {
	whiteImage.Fill(color.White)
}

type Game struct {
	ctx        context.Context
	logger     log.Logger
	pid        *actor.PID
	snapshotCh chan *simulation.Snapshot
	lastState  *simulation.Snapshot
	cfg        simulation.Config

	paused   bool
	stepOnce bool
	policies []string
	policy   int

	// UI Controls
	panel         *ui.UIPanel
	widgetSpeed   *ui.Slider
	widgetPause   *ui.Checkbox
	widgetGrid    *ui.Checkbox
	widgetDebug   *ui.Checkbox
	widgetSight   *ui.Checkbox
	widgetPolicy  *ui.Button
	widgetStep    *ui.Button
	widgetVisible *ui.Checkbox

	vertices []ebiten.Vertex
	indices  []uint16

	// Timing instrumentation
	updateAvg float64 // Rolling average in ms
	drawAvg   float64 // Rolling average in ms
}

// NewGame spawns the flock actor for world and builds the control panel.
func NewGame(ctx context.Context, system actor.ActorSystem, world *simulation.World) (*Game, error) {
	// the world belongs to the actor once spawned
	cfg := world.Config()
	initial := world.Snapshot()
	grid := world.GridEnabled()

	snapshotCh := make(chan *simulation.Snapshot, 10) // Buffer to avoid blocking
	pid, err := simulation.SpawnFlock(ctx, system, "flock", world, snapshotCh)
	if err != nil {
		return nil, fmt.Errorf("failed to spawn flock: %w", err)
	}

	g := &Game{
		ctx:        ctx,
		logger:     system.Logger(),
		pid:        pid,
		snapshotCh: snapshotCh,
		lastState:  initial,
		cfg:        cfg,
		policies:   simulation.PolicyNames(),
	}
	g.policy = max(0, slices.Index(g.policies, cfg.Policy))

	panel := ui.NewUIPanel("Flock", 10, 10, 200, 300)
	panel.AddSection("Simulation")
	g.widgetPause = panel.AddCheckbox("Paused [space]", false, func(v bool) { g.paused = v })
	g.widgetStep = panel.AddButton("Step [s]", func() { g.stepOnce = true })
	g.widgetSpeed = panel.AddSlider("Time scale", 0.1, 4, 1)
	g.widgetPolicy = panel.AddButton("Policy: "+cfg.Policy+" [p]", g.nextPolicy)
	g.widgetGrid = panel.AddCheckbox("Grid queries [g]", grid, g.setGrid)
	panel.AddSection("Overlay")
	g.widgetDebug = panel.AddCheckbox("Steering vectors [d]", false, nil)
	g.widgetSight = panel.AddCheckbox("Sight radius", false, nil)
	g.widgetVisible = panel.AddCheckbox("Panel [h]", true, nil)
	g.panel = panel
	return g, nil
}

func (g *Game) nextPolicy() {
	g.policy = (g.policy + 1) % len(g.policies)
	name := g.policies[g.policy]
	g.widgetPolicy.Label = "Policy: " + name + " [p]"
	ebiten.SetWindowTitle("Flock: " + name)
	g.tell(wrapperspb.String(name))
}

func (g *Game) setGrid(enabled bool) {
	g.tell(wrapperspb.Bool(enabled))
}

func (g *Game) tell(msg proto.Message) {
	if err := actor.Tell(g.ctx, g.pid, msg); err != nil {
		g.logger.Warnf("viewer: cannot reach %s: %v", g.pid.Name(), err)
	}
}

func (g *Game) Update() error {
	start := time.Now()
	defer func() {
		g.updateAvg = g.updateAvg*0.95 + float64(time.Since(start).Microseconds())/1000.0*0.05
	}()

	g.handleKeys()
	if g.widgetVisible.Value {
		g.panel.Update()
	}

	// Keep only the newest snapshot
Loop:
	for {
		select {
		case snap := <-g.snapshotCh:
			g.lastState = snap
		default:
			break Loop
		}
	}

	if !g.paused || g.stepOnce {
		g.stepOnce = false
		dt := time.Duration(g.widgetSpeed.Value * float64(time.Second) / float64(ebiten.TPS()))
		g.tell(durationpb.New(dt))
	}
	return nil
}

func (g *Game) handleKeys() {
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeySpace):
		g.widgetPause.Set(!g.widgetPause.Value)
	case inpututil.IsKeyJustPressed(ebiten.KeyS):
		g.stepOnce = true
	case inpututil.IsKeyJustPressed(ebiten.KeyP):
		g.nextPolicy()
	case inpututil.IsKeyJustPressed(ebiten.KeyG):
		g.widgetGrid.Set(!g.widgetGrid.Value)
	case inpututil.IsKeyJustPressed(ebiten.KeyD):
		g.widgetDebug.Set(!g.widgetDebug.Value)
	case inpututil.IsKeyJustPressed(ebiten.KeyH):
		g.widgetVisible.Set(!g.widgetVisible.Value)
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	start := time.Now()
	defer func() {
		g.drawAvg = g.drawAvg*0.95 + float64(time.Since(start).Microseconds())/1000.0*0.05
	}()

	screen.Fill(background)
	state := g.lastState

	if g.widgetSight.Value {
		for _, b := range state.Birds {
			vector.StrokeCircle(screen, float32(b.Position.X), float32(b.Position.Y),
				float32(g.cfg.SightRadius), 1, color.RGBA{R: 60, G: 60, B: 90, A: 80}, true)
		}
	}

	g.drawBirds(screen, state.Birds)

	if g.widgetDebug.Value {
		for _, b := range state.Birds {
			drawSteering(screen, b)
		}
	}

	if g.widgetVisible.Value {
		g.panel.Draw(screen)
	}

	status := "running"
	if g.paused {
		status = "paused"
	}
	msg := fmt.Sprintf("FPS: %.2f\nTPS: %.2f\n\nTick:   %s\nTime:   %.1fs\nBirds:  %s\nPolicy: %s\nGrid:   %t\n%s\n\nUpdate: %.2fms\nDraw:   %.2fms",
		ebiten.ActualFPS(),
		ebiten.ActualTPS(),
		humanize.Comma(int64(state.Tick)),
		state.Elapsed,
		humanize.Comma(int64(len(state.Birds))),
		state.Policy,
		state.Grid,
		status,
		g.updateAvg,
		g.drawAvg)
	ebitenutil.DebugPrintAt(screen, msg, int(state.Width)-170, 10)
}

// drawBirds batches every bird triangle into a single draw call, tinted with the bird color.
func (g *Game) drawBirds(screen *ebiten.Image, birds []simulation.BirdView) {
	g.vertices = g.vertices[:0]
	g.indices = g.indices[:0]
	for _, b := range birds {
		// uint16 indices cap one batch
		if len(g.vertices)+3 > math.MaxUint16 {
			screen.DrawTriangles(g.vertices, g.indices, whiteImage, &ebiten.DrawTrianglesOptions{})
			g.vertices = g.vertices[:0]
			g.indices = g.indices[:0]
		}
		base := uint16(len(g.vertices))
		r, gr, bl := float32(b.Color.R)/255, float32(b.Color.G)/255, float32(b.Color.B)/255
		for _, corner := range triangle(b.Position, b.Heading) {
			g.vertices = append(g.vertices, ebiten.Vertex{
				DstX: float32(corner.X), DstY: float32(corner.Y),
				SrcX: 1, SrcY: 1,
				ColorR: r, ColorG: gr, ColorB: bl, ColorA: 1,
			})
		}
		g.indices = append(g.indices, base, base+1, base+2)
	}
	if len(g.vertices) > 0 {
		screen.DrawTriangles(g.vertices, g.indices, whiteImage, &ebiten.DrawTrianglesOptions{})
	}
}

// triangle returns the tip, right and left corners of a bird shape pointing along heading.
func triangle(p geometry.Point, heading float64) [3]geometry.Point {
	return [3]geometry.Point{
		p.Add(geometry.NewVectorPolar(6, heading)),
		p.Add(geometry.NewVectorPolar(5, heading+2.5)),
		p.Add(geometry.NewVectorPolar(5, heading-2.5)),
	}
}

var (
	separationColor = color.RGBA{R: 255, G: 80, B: 80, A: 255}
	cohesionColor   = color.RGBA{R: 80, G: 255, B: 80, A: 255}
	alignmentColor  = color.RGBA{R: 80, G: 160, B: 255, A: 255}
	desiredColor    = color.RGBA{R: 255, G: 255, B: 255, A: 255}
)

func drawSteering(screen *ebiten.Image, b simulation.BirdView) {
	s := b.Steering
	for _, v := range []struct {
		vec geometry.Vector
		clr color.RGBA
	}{
		{s.Separation, separationColor},
		{s.Cohesion, cohesionColor},
		{s.Alignment, alignmentColor},
		{s.Desired, desiredColor},
	} {
		if v.vec.IsZero() {
			continue
		}
		end := b.Position.Add(v.vec)
		vector.StrokeLine(screen, float32(b.Position.X), float32(b.Position.Y), float32(end.X), float32(end.Y), 1, v.clr, true)
	}
}

func (g *Game) Layout(w, h int) (int, int) { return int(g.cfg.WorldWidth), int(g.cfg.WorldHeight) }
