// Package scheduler implements App: the fixed-stage, fixed-timestep
// driver spec §4.9 names (perception → ai_planning → simulation → sync →
// presentation), a plugin/system registration builder, and the legacy
// bridge consistency check run at the end of the sync stage every tick.
// The composition-root shape (construct, then run to completion) follows
// the teacher's cmd entrypoint; the background lifecycle split between
// "things set up before the first tick" and "things that run every tick"
// follows pkg/queue/pool.go's Start/Stop separation.
package scheduler

import (
	"log/slog"

	"github.com/astraweave/core/pkg/ecs"
	"github.com/astraweave/core/pkg/world"
)

// Stage is one of the five fixed buckets a tick executes in order.
type Stage string

const (
	StagePerception   Stage = "perception"
	StageAIPlanning   Stage = "ai_planning"
	StageSimulation   Stage = "simulation"
	StageSync         Stage = "sync"
	StagePresentation Stage = "presentation"
)

// stageOrder is the one fixed sequence every tick runs, spec §4.9's
// "stages in fixed order per tick".
var stageOrder = []Stage{StagePerception, StageAIPlanning, StageSimulation, StageSync, StagePresentation}

// System is a plain function over the world, run once per tick within
// its registered stage, in registration order.
type System func(*world.World)

// Plugin bundles systems/resources/buses into the app in one call, the
// extension point spec's SUPPLEMENTED director hook (see DESIGN.md)
// would attach through.
type Plugin interface {
	Build(app *App)
}

// App is the scheduler: a prepopulated world plus the stage-ordered
// system registry driving it. Zero value is not usable — construct with
// New.
type App struct {
	W  *world.World
	Dt float64

	systems      map[Stage][]System
	busClearers  []func()
	legacyChecks []func(*world.World, *slog.Logger)

	logger *slog.Logger
}

// New constructs a scheduler over a prepopulated world. dt is the fixed
// per-tick timestep in seconds (spec §4.9's resource Dt).
func New(w *world.World, dt float64, logger *slog.Logger) *App {
	if logger == nil {
		logger = slog.Default()
	}
	a := &App{
		W:      w,
		Dt:     dt,
		systems: map[Stage][]System{
			StagePerception:   nil,
			StageAIPlanning:   nil,
			StageSimulation:   nil,
			StageSync:         nil,
			StagePresentation: nil,
		},
		logger: logger,
	}
	a.legacyChecks = append(a.legacyChecks, checkLegacyBridge)
	return a
}

// AddPlugin runs p.Build(a), letting it register systems/resources/buses
// in one call. Returns a for chaining.
func (a *App) AddPlugin(p Plugin) *App {
	p.Build(a)
	return a
}

// AddSystem appends fn to stage. Registration order within a stage is
// preserved and determines call order (spec §4.9).
func (a *App) AddSystem(stage Stage, fn System) *App {
	a.systems[stage] = append(a.systems[stage], fn)
	return a
}

// InsertResource installs v as a world resource. Free function, not a
// method, because Go methods cannot carry their own type parameters.
func InsertResource[T any](a *App, v T) *App {
	ecs.Set(a.W.Resources, v)
	return a
}

// RegisterBus installs a fresh Bus[T] resource and registers it for the
// scheduler's once-per-tick clear at the start of each tick (spec §4.9 "events
// ... until drained" / DESIGN.md's event-bus-drain-semantics addition).
func RegisterBus[T any](a *App) *ecs.Bus[T] {
	bus := ecs.NewBus[T]()
	ecs.Set(a.W.Resources, bus)
	a.busClearers = append(a.busClearers, bus.Clear)
	return bus
}

// RunFixed advances n ticks of Dt seconds each, executing every stage
// once per tick in fixed order (spec §4.9's run_fixed). Returns a for
// chaining.
func (a *App) RunFixed(n int) *App {
	for i := 0; i < n; i++ {
		a.tick()
	}
	return a
}

func (a *App) tick() {
	// Clear the previous tick's events before this tick produces new
	// ones, so a host reading buses any time between two RunFixed calls
	// always sees exactly the prior tick's events (spec §4.9's "events
	// live at most one tick unless a consumer drains them first").
	for _, clear := range a.busClearers {
		clear()
	}

	a.W.Tick(a.Dt)

	for _, stage := range stageOrder {
		for _, sys := range a.systems[stage] {
			sys(a.W)
		}
		if stage == StageSync {
			for _, check := range a.legacyChecks {
				check(a.W, a.logger)
			}
		}
	}
}
