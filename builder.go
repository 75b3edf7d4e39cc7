package arena

import (
	"errors"
	"fmt"
	"log/slog"
	"maps"

	"github.com/google/uuid"
)

// Builder configures an arena before it is created.
// Use NewBuilder() to create a builder and chain configuration methods.
type Builder struct {
	name     string
	cfg      *Config
	settings map[string]string
	goal     Goal
	modules  []Module
	pools    map[string][]Location
	regions  map[string]Region
	seed     *uint64

	host  Host
	stats StatsSink
	sched Scheduler
	repo  *Participants
	log   *slog.Logger
}

// NewBuilder creates a builder for the named arena.
func NewBuilder(name string) *Builder {
	return &Builder{
		name:    name,
		pools:   make(map[string][]Location),
		regions: make(map[string]Region),
	}
}

// Config sets the arena configuration. It takes precedence over Settings.
func (b *Builder) Config(cfg Config) *Builder {
	b.cfg = &cfg
	return b
}

// Settings sets the key/value settings the configuration, spawn pools and
// regions are read from.
//
// Example:
//
//	builder.Settings(map[string]string{
//		"TEAMS":        "red,blue",
//		"SPAWN_RED":    "0,64,0;4,64,0",
//		"SPAWN_LOUNGE": "lobby@0,80,0",
//	})
func (b *Builder) Settings(kv map[string]string) *Builder {
	b.settings = kv
	return b
}

// Goal sets the win condition. Without a goal the match never ends by itself.
func (b *Builder) Goal(g Goal) *Builder {
	b.goal = g
	return b
}

// Module adds modules to the arena.
func (b *Builder) Module(ms ...Module) *Builder {
	b.modules = append(b.modules, ms...)
	return b
}

// Spawn adds locations to a spawn pool.
func (b *Builder) Spawn(pool string, locs ...Location) *Builder {
	b.pools[pool] = append(b.pools[pool], locs...)
	return b
}

// Region adds a named region. Regions also serve pools without fixed spawns.
func (b *Builder) Region(name string, r Region) *Builder {
	b.regions[name] = r
	return b
}

// Seed makes random spawn selection deterministic.
func (b *Builder) Seed(seed uint64) *Builder {
	b.seed = &seed
	return b
}

// Host sets the world collaborators.
func (b *Builder) Host(h Host) *Builder {
	b.host = h
	return b
}

// Stats sets the statistics sink.
func (b *Builder) Stats(s StatsSink) *Builder {
	b.stats = s
	return b
}

// Scheduler sets the scheduler the arena registers timers with.
func (b *Builder) Scheduler(s Scheduler) *Builder {
	b.sched = s
	return b
}

// Participants sets the participant repository shared between arenas.
func (b *Builder) Participants(r *Participants) *Builder {
	b.repo = r
	return b
}

// Logger sets the logger.
func (b *Builder) Logger(l *slog.Logger) *Builder {
	b.log = l
	return b
}

// Build creates the arena.
func (b *Builder) Build() (*Arena, error) {
	if b.name == "" {
		return nil, errors.New("arena: name required")
	}
	if b.host == nil {
		return nil, fmt.Errorf("arena %s: host required", b.name)
	}
	if b.sched == nil {
		return nil, fmt.Errorf("arena %s: scheduler required", b.name)
	}

	var cfg Config
	pools := make(map[string][]Location)
	regions := make(map[string]Region)
	if b.settings != nil {
		var err error
		if cfg, err = ParseConfig(b.settings); err != nil {
			return nil, fmt.Errorf("arena %s: %w", b.name, err)
		}
		if pools, regions, err = ParseSpawns(b.settings); err != nil {
			return nil, fmt.Errorf("arena %s: %w", b.name, err)
		}
	} else {
		cfg = DefaultConfig()
	}
	if b.cfg != nil {
		cfg = *b.cfg
		if err := cfg.Validate(); err != nil {
			return nil, fmt.Errorf("arena %s: %w", b.name, err)
		}
	}
	for pool, locs := range b.pools {
		pools[pool] = append(pools[pool], locs...)
	}
	maps.Copy(regions, b.regions)

	teams, err := cfg.BuildTeams()
	if err != nil {
		return nil, fmt.Errorf("arena %s: %w", b.name, err)
	}

	log := b.log
	if log == nil {
		log = slog.Default()
	}
	stats := b.stats
	if stats == nil {
		stats = nopStats{}
	}
	repo := b.repo
	if repo == nil {
		repo = NewParticipants()
	}
	goal := b.goal
	if goal == nil {
		goal = NopGoal{}
	}

	a := &Arena{
		name:     b.name,
		cfg:      cfg,
		log:      log,
		host:     b.host,
		stats:    stats,
		sched:    b.sched,
		repo:     repo,
		spawns:   NewSpawnSelector(pools, regions),
		goal:     goal,
		workflow: NewWorkflow(log, b.modules...),
		teams:    teams,
		watchers: make(map[uuid.UUID]*Participant),
		locked:   cfg.Locked,
		respawns: make(map[uuid.UUID]*TaskHandle),
		history:  make(map[string][]Location),
	}
	if b.seed != nil {
		a.spawns.Seed(*b.seed)
	}
	goal.Attach(a)
	return a, nil
}
