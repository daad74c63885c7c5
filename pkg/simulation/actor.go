package simulation

import (
	"context"
	"time"

	"github.com/tochemey/goakt/v3/actor"
	"github.com/tochemey/goakt/v3/goaktpb"
	"google.golang.org/protobuf/types/known/durationpb"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// FlockActor owns a World and serializes every access to it: one message, one mutation.
// Messages are protobuf well-known types:
//   - *durationpb.Duration steps the world by that much simulated time
//   - *wrapperspb.StringValue switches every bird to the named policy
//   - *wrapperspb.BoolValue turns grid-accelerated queries on or off
//   - *emptypb.Empty is answered with the current tick as a *wrapperspb.UInt64Value
type FlockActor struct {
	world      *World
	snapshotCh chan<- *Snapshot

	// --- Benchmark Stats ---
	steps       int
	stepTime    time.Duration
	dropped     int
	lastLogTime time.Time
}

var _ actor.Actor = (*FlockActor)(nil)

// NewFlockActor wraps world. Snapshots are pushed on snapshotCh after every step, when it is not nil.
func NewFlockActor(world *World, snapshotCh chan<- *Snapshot) *FlockActor {
	return &FlockActor{
		world:       world,
		snapshotCh:  snapshotCh,
		lastLogTime: time.Now(),
	}
}

// SpawnFlock starts a FlockActor for world in system.
func SpawnFlock(ctx context.Context, system actor.ActorSystem, name string, world *World, snapshotCh chan<- *Snapshot) (*actor.PID, error) {
	return system.Spawn(ctx, name, NewFlockActor(world, snapshotCh))
}

func (f *FlockActor) PreStart(ctx *actor.Context) error {
	ctx.ActorSystem().Logger().Infof("flock actor %s taking over %s", ctx.ActorName(), f.world)
	return nil
}

func (f *FlockActor) Receive(ctx *actor.ReceiveContext) {
	switch msg := ctx.Message().(type) {
	case *goaktpb.PostStart:
		ctx.Logger().Infof("flock actor %s started with %d birds", ctx.Self().Name(), f.world.Len())

	case *durationpb.Duration:
		if err := msg.CheckValid(); err != nil {
			ctx.Logger().Warnf("flock actor %s: ignoring tick: %v", ctx.Self().Name(), err)
			return
		}
		start := time.Now()
		f.world.Step(msg.AsDuration().Seconds())
		f.stepTime += time.Since(start)
		f.steps++
		f.logBenchmarks(ctx)
		f.pushSnapshot()

	case *wrapperspb.StringValue:
		policy, err := LookupPolicy(msg.GetValue())
		if err != nil {
			ctx.Logger().Warnf("flock actor %s: %v", ctx.Self().Name(), err)
			return
		}
		f.world.SetPolicy(policy)

	case *wrapperspb.BoolValue:
		f.world.SetGrid(msg.GetValue())
		ctx.Logger().Infof("flock actor %s: grid queries enabled=%t", ctx.Self().Name(), msg.GetValue())

	case *emptypb.Empty:
		ctx.Response(wrapperspb.UInt64(f.world.Tick()))

	default:
		ctx.Unhandled()
	}
}

func (f *FlockActor) logBenchmarks(ctx *actor.ReceiveContext) {
	if time.Since(f.lastLogTime) < time.Second || f.steps == 0 {
		return
	}
	ctx.Logger().Infof("📊 STEPS: %d/sec | avg step %s | dropped frames %d | birds %d | tick %d",
		f.steps, f.stepTime/time.Duration(f.steps), f.dropped, f.world.Len(), f.world.Tick())
	f.steps = 0
	f.stepTime = 0
	f.dropped = 0
	f.lastLogTime = time.Now()
}

func (f *FlockActor) pushSnapshot() {
	if f.snapshotCh == nil {
		return
	}
	select {
	case f.snapshotCh <- f.world.Snapshot():
	default:
		// UI busy, skip frame
		f.dropped++
	}
}

func (f *FlockActor) PostStop(ctx *actor.Context) error {
	ctx.ActorSystem().Logger().Infof("flock actor %s stopped at tick %d", ctx.ActorName(), f.world.Tick())
	return nil
}
