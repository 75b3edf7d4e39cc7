package arena_test

import (
	"errors"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/oriumgames/arena"
)

func square() []arena.Location {
	return []arena.Location{
		arena.At(0, 64, 0),
		arena.At(10, 64, 0),
		arena.At(10, 64, 10),
		arena.At(0, 64, 10),
	}
}

func TestSmartOrderPicksOppositeCornerSecond(t *testing.T) {
	t.Parallel()

	spawns := square()
	opposite := map[int]int{0: 2, 1: 3, 2: 0, 3: 1}
	for first := range spawns {
		order := arena.SmartOrder(spawns, first)
		if len(order) != 4 {
			t.Fatalf("first %d: order has %d spawns, want 4", first, len(order))
		}
		if order[0] != spawns[first] {
			t.Fatalf("first %d: order[0] = %v, want %v", first, order[0], spawns[first])
		}
		if order[1] != spawns[opposite[first]] {
			t.Fatalf("first %d: order[1] = %v, want opposite corner %v", first, order[1], spawns[opposite[first]])
		}

		seen := map[arena.Location]bool{}
		for _, loc := range order {
			if seen[loc] {
				t.Fatalf("first %d: %v selected twice", first, loc)
			}
			seen[loc] = true
		}
	}
}

func TestSmartOrderIsDeterministic(t *testing.T) {
	t.Parallel()

	spawns := square()
	a := arena.SmartOrder(spawns, 1)
	b := arena.SmartOrder(spawns, 1)
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("orders differ at %d: %v vs %v", i, a[i], b[i])
		}
	}
	// Remaining corners tie; the lower index wins.
	if a[2] != spawns[0] || a[3] != spawns[2] {
		t.Fatalf("tail = %v, %v; want %v, %v", a[2], a[3], spawns[0], spawns[2])
	}
}

func TestPickSmartUsesHistory(t *testing.T) {
	t.Parallel()

	s := arena.NewSpawnSelector(map[string][]arena.Location{"red": square()}, nil)
	first, err := s.PickSmart("red", nil)
	if err != nil {
		t.Fatalf("pick first: %v", err)
	}
	if first != square()[0] {
		t.Fatalf("first = %v, want %v", first, square()[0])
	}
	second, err := s.PickSmart("red", []arena.Location{first})
	if err != nil {
		t.Fatalf("pick second: %v", err)
	}
	if second != square()[2] {
		t.Fatalf("second = %v, want %v", second, square()[2])
	}
}

func TestPickSequentialCycles(t *testing.T) {
	t.Parallel()

	spawns := square()
	s := arena.NewSpawnSelector(map[string][]arena.Location{"red": spawns}, nil)
	for i := 0; i < 6; i++ {
		loc, err := s.PickSequential("red")
		if err != nil {
			t.Fatalf("pick %d: %v", i, err)
		}
		if loc != spawns[i%len(spawns)] {
			t.Fatalf("pick %d = %v, want %v", i, loc, spawns[i%len(spawns)])
		}
	}
}

func TestPickFallsBackToRegion(t *testing.T) {
	t.Parallel()

	r := arena.NewRegion("", mgl64.Vec3{0, 64, 0}, mgl64.Vec3{10, 70, 10})
	s := arena.NewSpawnSelector(nil, map[string]arena.Region{"lounge": r})
	s.Seed(7)
	for i := 0; i < 20; i++ {
		loc, err := s.Pick("lounge", arena.SpawnRandom, nil)
		if err != nil {
			t.Fatalf("pick: %v", err)
		}
		if !r.Contains(loc) {
			t.Fatalf("%v outside region", loc)
		}
		if loc.Pos[1] != 64 {
			t.Fatalf("y = %v, want region floor 64", loc.Pos[1])
		}
	}
}

func TestPickMissingPoolRejects(t *testing.T) {
	t.Parallel()

	s := arena.NewSpawnSelector(nil, nil)
	_, err := s.Pick("red", arena.SpawnSequential, nil)
	if !errors.Is(err, arena.ErrNoSpawn) {
		t.Fatalf("err = %v, want ErrNoSpawn", err)
	}
	if arena.CodeOf(err) != arena.CodeNoSpawn {
		t.Fatalf("code = %q, want %q", arena.CodeOf(err), arena.CodeNoSpawn)
	}
}

func TestDistributeSmartWrapsAround(t *testing.T) {
	t.Parallel()

	spawns := square()
	s := arena.NewSpawnSelector(map[string][]arena.Location{"red": spawns}, nil)
	locs, err := s.Distribute("red", arena.SpawnSmart, 6)
	if err != nil {
		t.Fatalf("distribute: %v", err)
	}
	if len(locs) != 6 {
		t.Fatalf("len = %d, want 6", len(locs))
	}
	if locs[4] != locs[0] || locs[5] != locs[1] {
		t.Fatalf("expected wrap around, got %v", locs)
	}
}

func TestSpawnStrategyUnmarshalText(t *testing.T) {
	t.Parallel()

	var s arena.SpawnStrategy
	if err := s.UnmarshalText([]byte("SMART")); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if s != arena.SpawnSmart {
		t.Fatalf("strategy = %v, want smart", s)
	}
	if err := s.UnmarshalText([]byte("nearest")); err == nil {
		t.Fatal("expected error for unknown strategy")
	}
}
