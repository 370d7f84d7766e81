// Package driver runs a game frame by frame on top of the ecs scheduler:
// it queues input, paces gravity, holds line clears, flushes redraws and
// fans game events out to listeners.
package driver

import (
	"log"
	"math/rand/v2"
	"time"

	"github.com/plus3/blockfall/config"
	"github.com/plus3/blockfall/display"
	"github.com/plus3/blockfall/ecs"
	"github.com/plus3/blockfall/tetris"
)

// Options configure a Driver. Zero fields take the game defaults and a
// one second tick.
type Options struct {
	Width             int
	Height            int
	TickInterval      time.Duration
	AnimationDuration time.Duration
	Speedup           float64
	Generator         tetris.Generator
	Logger            *log.Logger
}

// OptionsFromConfig builds driver options from a loaded config. A zero
// seed draws one at random.
func OptionsFromConfig(cfg config.Config) (Options, error) {
	seed := cfg.Seed
	if seed == 0 {
		seed = rand.Uint64()
	}
	gen, err := tetris.NewGenerator(cfg.Randomizer, rand.New(rand.NewPCG(seed, seed)))
	if err != nil {
		return Options{}, err
	}
	return Options{
		Width:             cfg.Width,
		Height:            cfg.Height,
		TickInterval:      cfg.TickInterval.Std(),
		AnimationDuration: cfg.AnimationDuration.Std(),
		Speedup:           cfg.Speedup,
		Generator:         gen,
	}, nil
}

// Driver owns the ECS world that runs one game.
type Driver struct {
	registry  *ecs.ComponentRegistry
	storage   *ecs.Storage
	scheduler *ecs.Scheduler
	logger    *log.Logger

	session *ecs.Singleton[Session]
	clock   *ecs.Singleton[Clock]
	keys    *ecs.Singleton[KeyQueue]
	events  *ecs.Singleton[EventQueue]
	stats   *ecs.Singleton[FrameStats]
}

// New builds the world, spawns the first piece and arms the clock so the
// first frame ticks.
func New(opts Options) *Driver {
	if opts.Width <= 0 {
		opts.Width = tetris.DefaultWidth
	}
	if opts.Height <= 0 {
		opts.Height = tetris.DefaultHeight
	}
	if opts.TickInterval <= 0 {
		opts.TickInterval = time.Second
	}
	if opts.AnimationDuration <= 0 {
		opts.AnimationDuration = tetris.DefaultAnimationDuration
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}

	registry := ecs.NewComponentRegistry()
	ecs.RegisterComponent[EventHandler](registry)
	storage := ecs.NewStorage(registry)

	d := &Driver{
		registry: registry,
		storage:  storage,
		logger:   opts.Logger,
		clock:    ecs.NewSingleton(storage, Clock{Interval: opts.TickInterval, Speedup: opts.Speedup}),
		keys:     ecs.NewSingleton(storage, KeyQueue{}),
		events:   ecs.NewSingleton(storage, EventQueue{}),
		stats:    ecs.NewSingleton(storage, FrameStats{}),
	}

	surface := display.NewSurface(opts.Width, opts.Height)
	buffer := display.NewBuffer(surface, opts.AnimationDuration)
	game := tetris.NewGame(tetris.Options{
		Width:             opts.Width,
		Height:            opts.Height,
		AnimationDuration: opts.AnimationDuration,
		Generator:         opts.Generator,
		Display:           buffer,
		Listener:          d.queueEvent,
	})
	d.session = ecs.NewSingleton(storage, Session{Game: game, Buffer: buffer, Surface: surface})
	d.clock.Get().Start()

	d.scheduler = ecs.NewScheduler(storage)
	d.scheduler.Register(&ClearHoldSystem{})
	d.scheduler.Register(&InputSystem{Logger: d.logger})
	d.scheduler.Register(&GravitySystem{Logger: d.logger})
	d.scheduler.Register(&RedrawSystem{})
	d.scheduler.Register(&AnimationSystem{})
	d.scheduler.Register(&EventSystem{})
	return d
}

func (d *Driver) queueEvent(e tetris.Event) {
	queue := d.events.Get()
	queue.Events = append(queue.Events, e)
}

// Press queues a key for the next frame.
func (d *Driver) Press(k tetris.Key) {
	queue := d.keys.Get()
	queue.Keys = append(queue.Keys, k)
}

// Frame runs every system once. dt is the frame length in seconds.
func (d *Driver) Frame(dt float64) {
	d.stats.Get().Frames++
	d.scheduler.Once(dt)
}

// OnEvent registers fn to receive every game event from the next frame on.
func (d *Driver) OnEvent(name string, fn func(tetris.Event)) ecs.EntityId {
	return d.storage.Spawn(EventHandler{Name: name, Handle: fn})
}

// RemoveHandler unregisters a handler returned by OnEvent.
func (d *Driver) RemoveHandler(id ecs.EntityId) {
	d.storage.Delete(id)
}

// Register appends a system after the core ones. Front-ends use it for
// overlays that share the game's world.
func (d *Driver) Register(system ecs.System) {
	d.scheduler.Register(system)
}

// Apply takes the live-tunable parts of a reloaded config: pacing and the
// clear hold. Board size and randomizer only apply to new drivers.
func (d *Driver) Apply(cfg config.Config) {
	clock := d.clock.Get()
	clock.Interval = cfg.TickInterval.Std()
	clock.Speedup = cfg.Speedup

	session := d.session.Get()
	session.Game.SetAnimationDuration(cfg.AnimationDuration.Std())
	session.Buffer.SetPulseDuration(cfg.AnimationDuration.Std())
	d.logger.Printf("config applied: tick=%s hold=%s speedup=%.2f",
		cfg.TickInterval.Std(), cfg.AnimationDuration.Std(), cfg.Speedup)
}

func (d *Driver) Game() *tetris.Game { return d.session.Get().Game }
func (d *Driver) Surface() *display.Surface { return d.session.Get().Surface }
func (d *Driver) Storage() *ecs.Storage { return d.storage }
func (d *Driver) Registry() *ecs.ComponentRegistry { return d.registry }
func (d *Driver) Stats() *ecs.SchedulerStats { return d.scheduler.GetStats() }
func (d *Driver) Counters() FrameStats { return *d.stats.Get() }
func (d *Driver) Running() bool { return d.clock.Get().Running }
func (d *Driver) TickInterval() time.Duration { return d.clock.Get().Interval }
