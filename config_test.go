package arena_test

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/oriumgames/arena"
)

func TestDefaultConfig(t *testing.T) {
	t.Parallel()

	cfg := arena.DefaultConfig()
	if cfg.MinPlayers != 2 || cfg.ReadyRatio != 0.5 || cfg.CountdownTicks != 200 {
		t.Fatalf("defaults = %+v", cfg)
	}
	if !cfg.AutoCountdown {
		t.Fatal("auto countdown disabled by default")
	}
	if len(cfg.Teams) != 2 || cfg.Teams[0] != "red" || cfg.Teams[1] != "blue" {
		t.Fatalf("teams = %v, want [red blue]", cfg.Teams)
	}
	if cfg.SpawnStrategy != arena.SpawnSequential {
		t.Fatalf("strategy = %v, want sequential", cfg.SpawnStrategy)
	}
}

func TestParseConfig(t *testing.T) {
	t.Parallel()

	cfg, err := arena.ParseConfig(map[string]string{
		"MIN_PLAYERS":     "4",
		"MAX_PLAYERS":     "8",
		"TEAMS":           "red:gold,blue",
		"LOADOUTS":        "fighter,archer",
		"DEFAULT_LOADOUT": "archer",
		"SPAWN_STRATEGY":  "smart",
		"READY_RATIO":     "0.75",
	})
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if cfg.MinPlayers != 4 || cfg.MaxPlayers != 8 || cfg.ReadyRatio != 0.75 {
		t.Fatalf("limits = %+v", cfg)
	}
	if cfg.SpawnStrategy != arena.SpawnSmart {
		t.Fatalf("strategy = %v, want smart", cfg.SpawnStrategy)
	}
	if !cfg.HasLoadout("ARCHER") {
		t.Fatal("HasLoadout is case sensitive")
	}

	teams, err := cfg.BuildTeams()
	if err != nil {
		t.Fatalf("build teams: %v", err)
	}
	if len(teams) != 2 || teams[0].Name() != "red" || teams[1].Name() != "blue" {
		t.Fatalf("teams = %v", teams)
	}
}

func TestParseConfigRejectsContradictions(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		kv   map[string]string
	}{
		{"min above max", map[string]string{"MIN_PLAYERS": "6", "MAX_PLAYERS": "4"}},
		{"negative limit", map[string]string{"MAX_TEAM_PLAYERS": "-1"}},
		{"ratio out of range", map[string]string{"READY_RATIO": "1.5"}},
		{"unknown default loadout", map[string]string{"LOADOUTS": "fighter", "DEFAULT_LOADOUT": "mage"}},
		{"unknown strategy", map[string]string{"SPAWN_STRATEGY": "nearest"}},
		{"bad number", map[string]string{"MIN_PLAYERS": "many"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if _, err := arena.ParseConfig(tt.kv); err == nil {
				t.Fatalf("expected error for %v", tt.kv)
			}
		})
	}
}

func TestBuildTeamsRejectsDuplicates(t *testing.T) {
	t.Parallel()

	cfg := arena.DefaultConfig()
	cfg.Teams = []string{"red", "RED"}
	if _, err := cfg.BuildTeams(); err == nil {
		t.Fatal("expected duplicate team error")
	}
}

func TestBuildTeamsFreeForAll(t *testing.T) {
	t.Parallel()

	cfg := arena.DefaultConfig()
	cfg.FreeForAll = true
	teams, err := cfg.BuildTeams()
	if err != nil {
		t.Fatalf("build teams: %v", err)
	}
	if len(teams) != 1 || teams[0].Name() != arena.FreeForAllTeam {
		t.Fatalf("teams = %v, want the free-for-all team", teams)
	}
}

func TestParseSpawns(t *testing.T) {
	t.Parallel()

	pools, regions, err := arena.ParseSpawns(map[string]string{
		"SPAWN_RED":    "1,64,1;2,64,2",
		"REGION_ARENA": "nether@0,0,0;10,10,10",
		"MIN_PLAYERS":  "2",
	})
	if err != nil {
		t.Fatalf("parse spawns: %v", err)
	}
	if len(pools["red"]) != 2 {
		t.Fatalf("red pool = %v, want 2 spawns", pools["red"])
	}
	r, ok := regions["arena"]
	if !ok || r.World != "nether" {
		t.Fatalf("region = %+v, want nether region", r)
	}
	if len(pools) != 1 || len(regions) != 1 {
		t.Fatalf("unrelated keys were parsed: %v %v", pools, regions)
	}
}

func TestParseLocation(t *testing.T) {
	t.Parallel()

	loc, err := arena.ParseLocation(" lobby@1.5, 64 ,-3,90,10 ")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if loc.World != "lobby" || loc.Pos != (mgl64.Vec3{1.5, 64, -3}) {
		t.Fatalf("location = %+v", loc)
	}
	if loc.Rotation.Yaw() != 90 || loc.Rotation.Pitch() != 10 {
		t.Fatalf("rotation = %v", loc.Rotation)
	}

	back, err := arena.ParseLocation(loc.String())
	if err != nil || back != loc {
		t.Fatalf("String() = %q does not parse back: %v", loc.String(), err)
	}

	for _, bad := range []string{"1,2", "1,2,3,4", "a,b,c"} {
		if _, err := arena.ParseLocation(bad); err == nil {
			t.Fatalf("expected error for %q", bad)
		}
	}
}

func TestRegionContainsBorders(t *testing.T) {
	t.Parallel()

	r, err := arena.ParseRegion("10,70,10;0,64,0")
	if err != nil {
		t.Fatalf("parse region: %v", err)
	}
	for _, loc := range []arena.Location{arena.At(0, 64, 0), arena.At(10, 70, 10), arena.At(5, 65, 5)} {
		if !r.Contains(loc) {
			t.Fatalf("%v not inside %v", loc, r.Box)
		}
	}
	if r.Contains(arena.At(11, 65, 5)) {
		t.Fatal("point outside the region contained")
	}
	if !r.Contains(arena.Location{World: "nether", Pos: mgl64.Vec3{5, 65, 5}}) {
		t.Fatal("region without world rejected a named world")
	}
}

func TestLivesInitDoesNotReset(t *testing.T) {
	t.Parallel()

	var l arena.Lives
	if !l.Init("red", 3) {
		t.Fatal("first Init did not create the entry")
	}
	l.Decrement("red")
	if l.Init("red", 3) {
		t.Fatal("second Init reset the entry")
	}
	if n, _ := l.Remaining("red"); n != 2 {
		t.Fatalf("remaining = %d, want 2", n)
	}

	l.Decrement("red")
	if n := l.Decrement("red"); n != 0 {
		t.Fatalf("remaining = %d, want 0", n)
	}
	if _, ok := l.Remaining("red"); ok {
		t.Fatal("entry at zero was not removed")
	}
	if n := l.Decrement("red"); n != 0 || l.Len() != 0 {
		t.Fatal("decrementing a missing entry recreated it")
	}
}

func TestStatusTransitions(t *testing.T) {
	t.Parallel()

	legal := [][2]arena.PlayerStatus{
		{arena.PlayerNone, arena.PlayerLounge},
		{arena.PlayerLounge, arena.PlayerReady},
		{arena.PlayerReady, arena.PlayerFight},
		{arena.PlayerFight, arena.PlayerDead},
		{arena.PlayerDead, arena.PlayerFight},
		{arena.PlayerFight, arena.PlayerLost},
		{arena.PlayerLost, arena.PlayerWatch},
	}
	for _, tr := range legal {
		if !arena.CanTransition(tr[0], tr[1]) {
			t.Fatalf("%v -> %v rejected", tr[0], tr[1])
		}
	}
	illegal := [][2]arena.PlayerStatus{
		{arena.PlayerNone, arena.PlayerFight},
		{arena.PlayerLost, arena.PlayerFight},
		{arena.PlayerWatch, arena.PlayerFight},
	}
	for _, tr := range illegal {
		if arena.CanTransition(tr[0], tr[1]) {
			t.Fatalf("%v -> %v accepted", tr[0], tr[1])
		}
	}
}
