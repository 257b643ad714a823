package engine

import (
	"errors"
	"fmt"
	"io"
	"log"
	"math/rand"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/lixenwraith/cants/ant"
	"github.com/lixenwraith/cants/colony"
	"github.com/lixenwraith/cants/constants"
	"github.com/lixenwraith/cants/core"
	"github.com/lixenwraith/cants/events"
	"github.com/lixenwraith/cants/status"
	"github.com/lixenwraith/cants/world"
)

var (
	ErrNoMap       = errors.New("no map loaded")
	ErrTooManyNpcs = errors.New("npc limit reached")
	ErrGameWon     = errors.New("game is won")
)

// Options tunes a Simulation
type Options struct {
	TickInterval time.Duration
	LevelTable   []int
	TilesPerFood int
	MaxNpcs      int // 0 is unlimited
	Seed         int64
	Clock        core.Clock
	Manual       bool // Actor ticks only run through Advance
}

// DefaultOptions returns the compiled defaults
func DefaultOptions() Options {
	return Options{
		TickInterval: constants.ActorTickInterval,
		LevelTable:   constants.DefaultLevelTable,
		TilesPerFood: constants.TilesPerFood,
		Seed:         time.Now().UnixNano(),
		Clock:        core.SystemClock{},
	}
}

// Simulation owns one running game: grid, actors, their tasks and the event pipeline
//
// Every exported method except the read-only snapshots must be called from the main loop.
// Actor tasks touch only the grid, their own actor and the event queue
type Simulation struct {
	opts    Options
	clock   core.Clock
	rng     *rand.Rand // Main loop only
	metrics *status.Registry
	queue   *events.EventQueue
	router  *events.Router[colony.Context]
	sched   *Scheduler

	grid        *world.Grid
	resolver    *ant.Resolver
	anthill     *colony.Anthill
	player      *ant.Player
	npcs        *ant.Registry
	food        *colony.Food
	progression *colony.Progression

	mapName     string
	running     bool
	won         bool
	frame       int64
	lastDropped uint64

	playerTicks *atomic.Int64
	npcTicks    *atomic.Int64
	dropped     *atomic.Int64
}

// New creates a simulation without a map; call LoadMap before Start
func New(opts Options, metrics *status.Registry) *Simulation {
	def := DefaultOptions()
	if opts.TickInterval <= 0 {
		opts.TickInterval = def.TickInterval
	}
	if len(opts.LevelTable) == 0 {
		opts.LevelTable = def.LevelTable
	}
	if opts.TilesPerFood <= 0 {
		opts.TilesPerFood = def.TilesPerFood
	}
	if opts.Clock == nil {
		opts.Clock = def.Clock
	}
	if metrics == nil {
		metrics = status.NewRegistry()
	}

	rng := rand.New(rand.NewSource(opts.Seed))
	queue := events.NewEventQueue()
	s := &Simulation{
		opts:        opts,
		clock:       opts.Clock,
		rng:         rng,
		metrics:     metrics,
		queue:       queue,
		router:      events.NewRouter[colony.Context](queue),
		sched:       NewScheduler(opts.TickInterval, opts.Manual),
		npcs:        ant.NewRegistry(),
		food:        colony.NewFood(opts.TilesPerFood, rand.New(rand.NewSource(rng.Int63())), metrics),
		progression: colony.NewProgression(opts.LevelTable, metrics),
		playerTicks: metrics.Ints.Get(status.KeyPlayerTicks),
		npcTicks:    metrics.Ints.Get(status.KeyNpcTicks),
		dropped:     metrics.Ints.Get(status.KeyEventsDrops),
	}

	// Progression credits the player before Food refills the grid
	s.router.Register(s.progression)
	s.router.Register(s.food)
	return s
}

// Register adds an event handler after the built-in ones
func (s *Simulation) Register(h events.Handler[colony.Context]) {
	s.router.Register(h)
}

// LoadMap parses a map and, only if it is valid, replaces the running one
// Reset protocol: cancel every task, swap the grid, drop stale events, respawn the player, restart its task
func (s *Simulation) LoadMap(name string, r io.Reader) error {
	g, err := world.Load(r)
	if err != nil {
		return fmt.Errorf("load map %s: %w", name, err)
	}
	hill, err := colony.FindAnthill(g)
	if err != nil {
		return fmt.Errorf("load map %s: %w", name, err)
	}

	cancelled := s.sched.CancelAll()
	s.npcs.Clear()
	stale := s.queue.Discard()
	s.lastDropped = s.queue.Dropped()

	s.grid = g
	s.anthill = hill
	s.resolver = ant.NewResolver(g, s.queue)
	s.mapName = name
	s.won = false

	x, y := hill.PlayerSpawn()
	if s.player == nil {
		s.player = ant.NewPlayer(x, y, s.clock)
	} else {
		s.player.Respawn(x, y)
	}

	if err := s.food.Reset(g); err != nil {
		log.Printf("sim: seeding food on %s: %v", name, err)
	}
	s.progression.Reset(hill)

	s.metrics.Strings.Get(status.KeyMapName).Store(filepath.Base(name))
	s.metrics.Bools.Get(status.KeyGameWon).Store(false)
	s.metrics.Ints.Get(status.KeyNpcCount).Store(0)
	log.Printf("sim: loaded %s (%dx%d, food target %d), cancelled %d tasks, discarded %d events",
		name, g.Width(), g.Height(), s.food.Target(), cancelled, stale)

	if s.running {
		s.schedulePlayer()
	}

	s.router.Dispatch(s, events.GameEvent{
		Type: events.EventMapLoaded,
		Payload: &events.MapLoadedPayload{
			Name:       name,
			Width:      g.Width(),
			Height:     g.Height(),
			FoodTarget: s.food.Target(),
		},
		Frame:     s.frame,
		Timestamp: time.Now(),
	})
	return nil
}

// LoadMapFile loads the map stored at path
func (s *Simulation) LoadMapFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open map: %w", err)
	}
	defer f.Close()
	return s.LoadMap(path, f)
}

// Start launches the player task and the task of every existing NPC
func (s *Simulation) Start() error {
	if s.grid == nil {
		return ErrNoMap
	}
	if s.running {
		return nil
	}
	s.running = true
	s.schedulePlayer()
	for _, n := range s.npcs.All() {
		s.scheduleNpc(n)
	}
	return nil
}

// Stop cancels every actor task and waits for them
func (s *Simulation) Stop() {
	s.running = false
	s.sched.CancelAll()
}

// Advance runs n rounds of actor ticks when the simulation was created in manual mode
func (s *Simulation) Advance(n int) {
	s.sched.Advance(n)
}

func (s *Simulation) schedulePlayer() {
	p, res := s.player, s.resolver
	s.sched.Schedule(GroupPlayer, "player", func() {
		p.Tick(res)
		s.playerTicks.Add(1)
	})
}

func (s *Simulation) scheduleNpc(n *ant.Npc) {
	res := s.resolver
	s.sched.Schedule(GroupNpc, n.ID().String(), func() {
		n.Tick(res)
		s.npcTicks.Add(1)
	})
}

// Frame drains the event queue into the handlers and tops food up after overflow
// Returns the number of events dispatched
func (s *Simulation) Frame() int {
	s.frame++
	n := s.router.DispatchAll(s)

	if d := s.queue.Dropped(); d != s.lastDropped {
		log.Printf("sim: %d events dropped, reconciling food", d-s.lastDropped)
		s.lastDropped = d
		s.dropped.Store(int64(d))
		if s.grid != nil {
			if _, err := s.food.Reconcile(); err != nil {
				log.Printf("sim: reconcile food: %v", err)
			}
		}
	}

	s.metrics.Ints.Get(status.KeyFoodActive).Store(int64(s.food.Active()))
	s.metrics.Ints.Get(status.KeyNpcCount).Store(int64(s.npcs.Len()))
	return n
}

// Press forwards a control press unless the game is won
func (s *Simulation) Press(c ant.Control) bool {
	if s.player == nil || s.won {
		return false
	}
	return s.player.Press(c)
}

// Release forwards a control release
func (s *Simulation) Release(c ant.Control) bool {
	if s.player == nil {
		return false
	}
	return s.player.Release(c)
}

// Upgrade attempts an anthill upgrade and publishes the outcome
func (s *Simulation) Upgrade() (colony.UpgradeResult, error) {
	if s.grid == nil {
		return colony.UpgradeResult{}, ErrNoMap
	}
	if s.won {
		return colony.UpgradeResult{}, ErrGameWon
	}
	res, err := s.progression.Upgrade(s.player, s.anthill, s.SpawnNpc)
	if err != nil {
		return res, err
	}
	log.Printf("sim: anthill upgraded to %d/%d, %d npcs hatched", res.Level, s.progression.MaxLevel(), res.Spawned)

	s.router.Dispatch(s, events.GameEvent{
		Type:      events.EventAnthillUpgraded,
		Payload:   &events.AnthillUpgradedPayload{Level: res.Level, Spent: res.Spent, Spawned: res.Spawned},
		Frame:     s.frame,
		Timestamp: time.Now(),
	})
	if res.Won {
		s.won = true
		s.player.ReleaseAll()
		s.metrics.Bools.Get(status.KeyGameWon).Store(true)
		s.router.Dispatch(s, events.GameEvent{Type: events.EventGameWon, Frame: s.frame, Timestamp: time.Now()})
	}
	return res, nil
}

// SpawnNpc hatches one NPC at cell and starts its task if the simulation runs
func (s *Simulation) SpawnNpc(cell world.Cell) error {
	if s.grid == nil {
		return ErrNoMap
	}
	if !s.grid.InBounds(cell) {
		return fmt.Errorf("spawn at %v: %w", cell, world.ErrOutOfBounds)
	}
	if s.opts.MaxNpcs > 0 && s.npcs.Len() >= s.opts.MaxNpcs {
		return ErrTooManyNpcs
	}

	n := ant.NewNpc(cell, rand.New(rand.NewSource(s.rng.Int63())), s.clock)
	s.npcs.Add(n)
	if s.running {
		s.scheduleNpc(n)
	}

	s.router.Dispatch(s, events.GameEvent{
		Type:      events.EventNpcSpawned,
		Payload:   &events.NpcSpawnedPayload{ID: n.ID(), Cell: cell},
		Frame:     s.frame,
		Timestamp: time.Now(),
	})
	return nil
}

// DebugSpawnNpc hatches one NPC at the anthill entrance
func (s *Simulation) DebugSpawnNpc() error {
	if s.anthill == nil {
		return ErrNoMap
	}
	return s.SpawnNpc(s.anthill.Entrance)
}

// DebugAddFood credits the player with one food
func (s *Simulation) DebugAddFood() {
	if s.player != nil {
		s.player.AddFood(1)
	}
}

// SetViewport records the cells on screen so new food appears off screen
func (s *Simulation) SetViewport(r world.Rect) {
	s.food.SetViewport(r)
}

// Player implements colony.Context
func (s *Simulation) Player() *ant.Player { return s.player }

// Grid returns the active grid, nil before the first load
func (s *Simulation) Grid() *world.Grid { return s.grid }

// Anthill returns the anthill of the active map
func (s *Simulation) Anthill() *colony.Anthill { return s.anthill }

// Npcs returns the NPC registry
func (s *Simulation) Npcs() *ant.Registry { return s.npcs }

// Food returns the food system
func (s *Simulation) Food() *colony.Food { return s.food }

// Progression returns the upgrade controller
func (s *Simulation) Progression() *colony.Progression { return s.progression }

// Queue returns the event queue actor tasks publish to
func (s *Simulation) Queue() *events.EventQueue { return s.queue }

// Scheduler returns the actor task scheduler
func (s *Simulation) Scheduler() *Scheduler { return s.sched }

// Metrics returns the status registry
func (s *Simulation) Metrics() *status.Registry { return s.metrics }

// MapName returns the name the active map was loaded under
func (s *Simulation) MapName() string { return s.mapName }

// Won reports whether the anthill reached its maximum level
func (s *Simulation) Won() bool { return s.won }

// FrameCount returns the number of frames processed
func (s *Simulation) FrameCount() int64 { return s.frame }
