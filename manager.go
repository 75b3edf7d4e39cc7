package arena

import (
	"fmt"
	"log/slog"
	"sort"

	"github.com/google/uuid"
)

// Runner is a scheduler that also serialises calls. TickScheduler implements it.
type Runner interface {
	Scheduler
	Executor
}

// Manager is the host facing entry point. It owns the arenas, the participant
// repository and the scheduler, and runs every call through the scheduler's
// executor so arena state is only ever touched by one goroutine.
//
// Manager methods are safe for concurrent use. They must not be called from
// inside arena callbacks, which already run on the executor.
type Manager struct {
	log    *slog.Logger
	host   Host
	stats  StatsSink
	writer *StatsWriter
	runner Runner
	repo   *Participants

	arenas    map[string]*Arena
	listeners []Listener
}

// ManagerOption configures a Manager.
type ManagerOption func(*Manager)

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) ManagerOption {
	return func(m *Manager) { m.log = l }
}

// WithStats sets the statistics sink. The manager writes to it through a
// StatsWriter, off the arena goroutine.
func WithStats(s StatsSink) ManagerOption {
	return func(m *Manager) { m.stats = s }
}

// WithRunner sets the scheduler and executor. The default is a TickScheduler.
func WithRunner(r Runner) ManagerOption {
	return func(m *Manager) { m.runner = r }
}

// NewManager creates a manager for the host.
func NewManager(host Host, opts ...ManagerOption) *Manager {
	m := &Manager{
		log:    slog.Default(),
		host:   host,
		stats:  nopStats{},
		repo:   NewParticipants(),
		arenas: make(map[string]*Arena),
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.runner == nil {
		m.runner = NewTickScheduler(m.log)
	}
	if _, ok := m.stats.(nopStats); !ok {
		m.writer = NewStatsWriter(m.stats, m.log, 0)
		m.stats = m.writer
	}
	return m
}

// Runner returns the scheduler and executor of the manager.
func (m *Manager) Runner() Runner {
	return m.runner
}

// Do runs fn on the arena goroutine.
func (m *Manager) Do(fn func()) {
	m.runner.Do(fn)
}

// Listen registers a listener on every arena, current and future.
func (m *Manager) Listen(l Listener) {
	m.Do(func() {
		m.listeners = append(m.listeners, l)
		for _, a := range m.arenas {
			a.Listen(l)
		}
	})
}

// Add builds an arena with the manager's host, statistics sink, scheduler,
// repository and logger, and registers it.
func (m *Manager) Add(b *Builder) (*Arena, error) {
	if b.host == nil {
		b.host = m.host
	}
	if b.stats == nil {
		b.stats = m.stats
	}
	if b.sched == nil {
		b.sched = m.runner
	}
	if b.log == nil {
		b.log = m.log
	}
	b.repo = m.repo

	var (
		a   *Arena
		err error
	)
	m.Do(func() {
		if _, ok := m.arenas[b.name]; ok {
			err = fmt.Errorf("arena %s already exists", b.name)
			return
		}
		if a, err = b.Build(); err != nil {
			return
		}
		for _, l := range m.listeners {
			a.Listen(l)
		}
		m.arenas[a.name] = a
	})
	if err != nil {
		return nil, err
	}
	m.log.Info("arena: registered", "arena", a.name, "goal", a.goal.Name(), "modules", len(a.workflow.modules))
	return a, nil
}

// Remove resets and unregisters an arena.
func (m *Manager) Remove(name string) error {
	var err error
	m.Do(func() {
		a, ok := m.arenas[name]
		if !ok {
			err = unknownArena(name)
			return
		}
		a.Reset(true)
		delete(m.arenas, name)
	})
	return err
}

// Names returns the names of all arenas, sorted.
func (m *Manager) Names() []string {
	var names []string
	m.Do(func() {
		for name := range m.arenas {
			names = append(names, name)
		}
	})
	sort.Strings(names)
	return names
}

// Inspect runs fn with the arena on the arena goroutine.
func (m *Manager) Inspect(name string, fn func(a *Arena)) error {
	return m.with(name, func(a *Arena) error {
		fn(a)
		return nil
	})
}

// ArenaOf returns the name of the arena the participant is in.
func (m *Manager) ArenaOf(id uuid.UUID) (string, bool) {
	var name string
	m.Do(func() {
		if p, ok := m.repo.Lookup(id); ok && p.arena != nil {
			name = p.arena.name
		}
	})
	return name, name != ""
}

// Join adds the participant to an arena. An empty team picks one.
func (m *Manager) Join(arena string, who Identity, team string) error {
	return m.with(arena, func(a *Arena) error {
		p := m.repo.Get(who)
		err := a.Join(p, team)
		if err != nil && p.arena == nil {
			// Drop records that were created only for this attempt.
			m.repo.Remove(who.ID)
		}
		return err
	})
}

// Spectate lets the participant watch an arena.
func (m *Manager) Spectate(arena string, who Identity) error {
	return m.with(arena, func(a *Arena) error {
		p := m.repo.Get(who)
		err := a.Spectate(p)
		if err != nil && p.arena == nil {
			m.repo.Remove(who.ID)
		}
		return err
	})
}

// Leave removes the participant from an arena. An empty arena name means the
// participant's current arena.
func (m *Manager) Leave(arena string, id uuid.UUID, opts LeaveOptions) error {
	return m.withParticipant(arena, id, func(a *Arena, p *Participant) error {
		return a.Leave(p, opts)
	})
}

// Relay re-places a participant that left softly.
func (m *Manager) Relay(id uuid.UUID) error {
	return m.withParticipant("", id, func(a *Arena, p *Participant) error {
		return a.Relay(p)
	})
}

// Ready declares the participant ready.
func (m *Manager) Ready(id uuid.UUID) error {
	return m.withParticipant("", id, func(a *Arena, p *Participant) error {
		return a.Ready(p)
	})
}

// ChooseLoadout selects the participant's loadout.
func (m *Manager) ChooseLoadout(id uuid.UUID, loadout string) error {
	return m.withParticipant("", id, func(a *Arena, p *Participant) error {
		return a.ChooseLoadout(p, loadout)
	})
}

// ForceStart starts an arena, skipping the each-player check and the ready
// ratio.
func (m *Manager) ForceStart(arena string) (Readiness, error) {
	var r Readiness
	err := m.with(arena, func(a *Arena) error {
		var err error
		r, err = a.Start(true)
		return err
	})
	return r, err
}

// Reset resets an arena.
func (m *Manager) Reset(arena string, force bool) error {
	return m.with(arena, func(a *Arena) error {
		a.Reset(force)
		return nil
	})
}

// OnParticipantDeath reports a death. killer may be nil. An empty arena name
// means the participant's current arena; deaths outside arenas are ignored.
// It returns whether the participant keeps its inventory.
func (m *Manager) OnParticipantDeath(arena string, id uuid.UUID, reason string, killer *uuid.UUID) (keep bool) {
	_ = m.withParticipant(arena, id, func(a *Arena, p *Participant) error {
		keep = !p.mayDrop
		cause := DeathCause{Reason: reason}
		if killer != nil {
			if k, ok := a.Participant(*killer); ok {
				cause.Killer = k
			}
		}
		a.Death(p, cause)
		return nil
	})
	return keep
}

// OnParticipantInteract reports an interaction with a location and returns
// whether the arena consumed it.
func (m *Manager) OnParticipantInteract(arena string, id uuid.UUID, loc Location) bool {
	handled := false
	_ = m.withParticipant(arena, id, func(a *Arena, p *Participant) error {
		handled = a.Interact(p, loc)
		return nil
	})
	return handled
}

// Quit removes a disconnecting participant from its arena, if any.
func (m *Manager) Quit(id uuid.UUID) {
	_ = m.withParticipant("", id, func(a *Arena, p *Participant) error {
		return a.Leave(p, LeaveOptions{})
	})
}

// Close resets every arena, stops the scheduler if it is a TickScheduler and
// flushes pending statistics.
func (m *Manager) Close() {
	m.Do(func() {
		for _, a := range m.arenas {
			a.Reset(true)
		}
	})
	if s, ok := m.runner.(*TickScheduler); ok {
		s.Stop()
	}
	if m.writer != nil {
		m.writer.Close()
	}
}

func (m *Manager) with(name string, fn func(a *Arena) error) error {
	var err error
	m.Do(func() {
		a, ok := m.arenas[name]
		if !ok {
			err = unknownArena(name)
			return
		}
		err = fn(a)
	})
	return err
}

func (m *Manager) withParticipant(name string, id uuid.UUID, fn func(a *Arena, p *Participant) error) error {
	var err error
	m.Do(func() {
		p, ok := m.repo.Lookup(id)
		if !ok || p.arena == nil {
			err = Reject(CodeNotInArena, "not in an arena")
			return
		}
		if name != "" && p.arena.name != name {
			err = Reject(CodeNotInArena, "not in this arena", name)
			return
		}
		err = fn(p.arena, p)
	})
	return err
}

func unknownArena(name string) *Error {
	return Reject(CodeUnknownArena, "unknown arena", name)
}
