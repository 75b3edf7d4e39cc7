// Package arenatest provides a recording host and arena fixtures for tests.
package arenatest

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/oriumgames/arena"
)

// Host records every call the arena makes. Positions can be set to drive
// proximity based goals.
type Host struct {
	mu sync.Mutex

	Positions  map[uuid.UUID]arena.Location
	Teleports  map[uuid.UUID][]arena.Location
	Equipped   map[uuid.UUID]string
	Cleared    map[uuid.UUID]int
	Broadcasts []arena.Message
	Messages   map[uuid.UUID][]arena.Message
	Scores     [][]arena.ScoreEntry

	// TeleportErr is returned by every Teleport when set.
	TeleportErr error
}

// NewHost creates an empty recording host.
func NewHost() *Host {
	return &Host{
		Positions: make(map[uuid.UUID]arena.Location),
		Teleports: make(map[uuid.UUID][]arena.Location),
		Equipped:  make(map[uuid.UUID]string),
		Cleared:   make(map[uuid.UUID]int),
		Messages:  make(map[uuid.UUID][]arena.Message),
	}
}

func (h *Host) Teleport(id uuid.UUID, loc arena.Location) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.TeleportErr != nil {
		return h.TeleportErr
	}
	h.Teleports[id] = append(h.Teleports[id], loc)
	h.Positions[id] = loc
	return nil
}

func (h *Host) Position(id uuid.UUID) (arena.Location, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	loc, ok := h.Positions[id]
	return loc, ok
}

// SetPosition moves a player without recording a teleport.
func (h *Host) SetPosition(id uuid.UUID, loc arena.Location) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.Positions[id] = loc
}

func (h *Host) ClearInventory(id uuid.UUID) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.Cleared[id]++
	delete(h.Equipped, id)
	return nil
}

func (h *Host) Equip(id uuid.UUID, loadout string) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.Equipped[id] = loadout
	return nil
}

func (h *Host) Broadcast(_ string, msg arena.Message) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.Broadcasts = append(h.Broadcasts, msg)
}

func (h *Host) MessageTo(id uuid.UUID, msg arena.Message) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.Messages[id] = append(h.Messages[id], msg)
}

func (h *Host) ScoreboardUpdate(_ string, entries []arena.ScoreEntry) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.Scores = append(h.Scores, entries)
}

// LastTeleport returns the most recent teleport of a player.
func (h *Host) LastTeleport(id uuid.UUID) (arena.Location, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	ts := h.Teleports[id]
	if len(ts) == 0 {
		return arena.Location{}, false
	}
	return ts[len(ts)-1], true
}

// Broadcasted counts the broadcasts with the key.
func (h *Host) Broadcasted(key string) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	n := 0
	for _, m := range h.Broadcasts {
		if m.Key == key {
			n++
		}
	}
	return n
}

// Messaged counts the messages with the key sent to a player.
func (h *Host) Messaged(id uuid.UUID, key string) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	n := 0
	for _, m := range h.Messages[id] {
		if m.Key == key {
			n++
		}
	}
	return n
}

// LastScores returns the most recent scoreboard.
func (h *Host) LastScores() []arena.ScoreEntry {
	h.mu.Lock()
	defer h.mu.Unlock()
	if len(h.Scores) == 0 {
		return nil
	}
	return h.Scores[len(h.Scores)-1]
}

// Stats records statistics deltas in memory.
type Stats struct {
	mu     sync.Mutex
	Totals map[uuid.UUID]arena.StatDelta
	Calls  int
}

// NewStats creates an empty statistics recorder.
func NewStats() *Stats {
	return &Stats{Totals: make(map[uuid.UUID]arena.StatDelta)}
}

func (s *Stats) RecordStatistics(_ context.Context, _ string, id uuid.UUID, delta arena.StatDelta) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Calls++
	s.Totals[id] = s.Totals[id].Add(delta)
	return nil
}

// Fixture is an arena wired to a recording host and a manual scheduler.
type Fixture struct {
	T     testing.TB
	Arena *arena.Arena
	Host  *Host
	Stats *Stats
	Sched *arena.TickScheduler
	Repo  *arena.Participants

	// Events holds every emitted event in order.
	Events []any
}

// Settings returns settings for a two team arena with lounge, spectator and
// four spawns per team. The countdown does not start by itself.
func Settings() map[string]string {
	return map[string]string{
		"TEAMS":           "red,blue",
		"AUTO_COUNTDOWN":  "false",
		"COUNTDOWN_TICKS": "60",
		"SPAWN_LOUNGE":    "0,64,0",
		"SPAWN_SPECTATOR": "0,90,0",
		"SPAWN_EXIT":      "0,64,100",
		"SPAWN_RED":       "-20,64,-20;-20,64,20;-30,64,-20;-30,64,20",
		"SPAWN_BLUE":      "20,64,-20;20,64,20;30,64,-20;30,64,20",
	}
}

// Discard returns a logger that drops everything.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// New builds an arena. Extra settings override Settings().
func New(t testing.TB, extra map[string]string, g arena.Goal, modules ...arena.Module) *Fixture {
	t.Helper()

	kv := Settings()
	for k, v := range extra {
		kv[k] = v
	}
	f := &Fixture{
		T:     t,
		Host:  NewHost(),
		Stats: NewStats(),
		Sched: arena.NewTickScheduler(Discard()),
		Repo:  arena.NewParticipants(),
	}
	b := arena.NewBuilder("test").
		Settings(kv).
		Host(f.Host).
		Stats(f.Stats).
		Scheduler(f.Sched).
		Participants(f.Repo).
		Logger(Discard()).
		Seed(1).
		Module(modules...)
	if g != nil {
		b.Goal(g)
	}
	a, err := b.Build()
	if err != nil {
		t.Fatalf("build arena: %v", err)
	}
	a.Listen(func(ev any) { f.Events = append(f.Events, ev) })
	f.Arena = a
	return f
}

// Join creates a participant and joins it to a team.
func (f *Fixture) Join(name, team string) *arena.Participant {
	f.T.Helper()
	p := f.Repo.Get(arena.Identity{ID: uuid.New(), Name: name})
	if err := f.Arena.Join(p, team); err != nil {
		f.T.Fatalf("join %s to %s: %v", name, team, err)
	}
	return p
}

// Fill joins n participants per team named after the team.
func (f *Fixture) Fill(n int, teams ...string) map[string][]*arena.Participant {
	f.T.Helper()
	out := make(map[string][]*arena.Participant)
	for _, team := range teams {
		for i := 0; i < n; i++ {
			out[team] = append(out[team], f.Join(fmt.Sprintf("%s%d", team, i), team))
		}
	}
	return out
}

// Start force-starts the match and fails the test on rejection.
func (f *Fixture) Start() {
	f.T.Helper()
	if _, err := f.Arena.Start(true); err != nil {
		f.T.Fatalf("start: %v", err)
	}
}

// CountEvents counts the emitted events of type T.
func CountEvents[T any](f *Fixture) int {
	n := 0
	for _, ev := range f.Events {
		if _, ok := ev.(T); ok {
			n++
		}
	}
	return n
}
