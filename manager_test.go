package arena_test

import (
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/oriumgames/arena"
	"github.com/oriumgames/arena/internal/arenatest"
)

func newManager(t *testing.T, extra map[string]string) (*arena.Manager, *arenatest.Host, *arenatest.Stats) {
	t.Helper()

	host := arenatest.NewHost()
	stats := arenatest.NewStats()
	m := arena.NewManager(host, arena.WithLogger(arenatest.Discard()), arena.WithStats(stats))

	kv := arenatest.Settings()
	for k, v := range extra {
		kv[k] = v
	}
	if _, err := m.Add(arena.NewBuilder("alpha").Settings(kv)); err != nil {
		t.Fatalf("add arena: %v", err)
	}
	return m, host, stats
}

func TestManagerRegistersArenas(t *testing.T) {
	t.Parallel()

	m, _, _ := newManager(t, nil)
	if _, err := m.Add(arena.NewBuilder("alpha").Settings(arenatest.Settings())); err == nil {
		t.Fatal("duplicate arena accepted")
	}
	if _, err := m.Add(arena.NewBuilder("beta").Settings(arenatest.Settings())); err != nil {
		t.Fatalf("add beta: %v", err)
	}
	names := m.Names()
	if len(names) != 2 || names[0] != "alpha" || names[1] != "beta" {
		t.Fatalf("names = %v, want [alpha beta]", names)
	}

	if err := m.Remove("beta"); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if code := arena.CodeOf(m.Remove("beta")); code != arena.CodeUnknownArena {
		t.Fatalf("code = %q, want %q", code, arena.CodeUnknownArena)
	}
}

func TestManagerJoinAndQuit(t *testing.T) {
	t.Parallel()

	m, _, stats := newManager(t, nil)
	who := arena.Identity{ID: uuid.New(), Name: "steve"}
	if err := m.Join("alpha", who, "red"); err != nil {
		t.Fatalf("join: %v", err)
	}
	if name, ok := m.ArenaOf(who.ID); !ok || name != "alpha" {
		t.Fatalf("arena of = %q %v, want alpha", name, ok)
	}
	if code := arena.CodeOf(m.Join("alpha", who, "blue")); code != arena.CodeAlreadyInArena {
		t.Fatalf("code = %q, want %q", code, arena.CodeAlreadyInArena)
	}

	m.Quit(who.ID)
	if _, ok := m.ArenaOf(who.ID); ok {
		t.Fatal("participant still in an arena after quitting")
	}
	if stats.Calls != 0 {
		t.Fatalf("stats calls = %d, want none for an idle arena", stats.Calls)
	}
}

func TestManagerRejectedJoinDropsRecord(t *testing.T) {
	t.Parallel()

	m, _, _ := newManager(t, map[string]string{"LOCKED": "true"})
	who := arena.Identity{ID: uuid.New(), Name: "alex"}
	if code := arena.CodeOf(m.Join("alpha", who, "")); code != arena.CodeArenaLocked {
		t.Fatalf("code = %q, want %q", code, arena.CodeArenaLocked)
	}
	if code := arena.CodeOf(m.Join("omega", who, "")); code != arena.CodeUnknownArena {
		t.Fatalf("code = %q, want %q", code, arena.CodeUnknownArena)
	}
	if code := arena.CodeOf(m.Ready(who.ID)); code != arena.CodeNotInArena {
		t.Fatalf("code = %q, want %q", code, arena.CodeNotInArena)
	}
}

func TestManagerDeathKeepsInventory(t *testing.T) {
	t.Parallel()

	m, _, _ := newManager(t, nil)
	red := arena.Identity{ID: uuid.New(), Name: "red"}
	blue := arena.Identity{ID: uuid.New(), Name: "blue"}
	for team, who := range map[string]arena.Identity{"red": red, "blue": blue} {
		if err := m.Join("alpha", who, team); err != nil {
			t.Fatalf("join: %v", err)
		}
	}
	if _, err := m.ForceStart("alpha"); err != nil {
		t.Fatalf("force start: %v", err)
	}

	if keep := m.OnParticipantDeath("", red.ID, "attack", &blue.ID); !keep {
		t.Fatal("inventory dropped although DROP_ON_DEATH is off")
	}
	if keep := m.OnParticipantDeath("", uuid.New(), "void", nil); keep {
		t.Fatal("death outside an arena kept the inventory")
	}

	err := m.Inspect("alpha", func(a *arena.Arena) {
		p, ok := a.Participant(blue.ID)
		if !ok || p.Stats().Kills != 1 {
			t.Errorf("killer stats not booked")
		}
	})
	if err != nil {
		t.Fatalf("inspect: %v", err)
	}
}

func TestManagerSerialisesConcurrentJoins(t *testing.T) {
	m, _, _ := newManager(t, map[string]string{"MAX_PLAYERS": "10"})
	s, ok := m.Runner().(*arena.TickScheduler)
	if !ok {
		t.Fatal("default runner is not a TickScheduler")
	}
	s.Start()
	defer m.Close()

	var (
		wg     sync.WaitGroup
		mu     sync.Mutex
		joined int
		full   int
	)
	for i := 0; i < 25; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := m.Join("alpha", arena.Identity{ID: uuid.New()}, "")
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				joined++
			case arena.CodeOf(err) == arena.CodeArenaFull:
				full++
			default:
				t.Errorf("join: %v", err)
			}
		}()
	}
	wg.Wait()

	if joined != 10 || full != 15 {
		t.Fatalf("joined = %d full = %d, want 10 and 15", joined, full)
	}
	err := m.Inspect("alpha", func(a *arena.Arena) {
		red, _ := a.Team("red")
		blue, _ := a.Team("blue")
		if red.Len() != 5 || blue.Len() != 5 {
			t.Errorf("teams = %d/%d, want balanced 5/5", red.Len(), blue.Len())
		}
	})
	if err != nil {
		t.Fatalf("inspect: %v", err)
	}
}

func TestManagerSerialisesJoinsWithoutLoop(t *testing.T) {
	tests := []struct {
		name  string
		setup func(s *arena.TickScheduler)
	}{
		{"never started", func(*arena.TickScheduler) {}},
		{"stopped", func(s *arena.TickScheduler) {
			s.Start()
			s.Stop()
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, _, _ := newManager(t, map[string]string{"MAX_PLAYERS": "10"})
			tt.setup(m.Runner().(*arena.TickScheduler))

			var (
				wg     sync.WaitGroup
				mu     sync.Mutex
				joined int
			)
			for i := 0; i < 16; i++ {
				wg.Add(1)
				go func() {
					defer wg.Done()
					if err := m.Join("alpha", arena.Identity{ID: uuid.New()}, ""); err == nil {
						mu.Lock()
						joined++
						mu.Unlock()
					}
				}()
			}
			wg.Wait()

			if joined != 10 {
				t.Fatalf("joined = %d, want 10", joined)
			}
			err := m.Inspect("alpha", func(a *arena.Arena) {
				if n := len(a.Members()); n != 10 {
					t.Errorf("members = %d, want 10", n)
				}
			})
			if err != nil {
				t.Fatalf("inspect: %v", err)
			}
		})
	}
}
