package goal_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/oriumgames/arena"
	"github.com/oriumgames/arena/goal"
	"github.com/oriumgames/arena/internal/arenatest"
)

var (
	redFlag  = arena.At(-10, 64, 0)
	blueFlag = arena.At(10, 64, 0)
)

func newFlags(t *testing.T, captures int) (*arenatest.Fixture, *goal.Flags, *arena.Participant, *arena.Participant) {
	t.Helper()
	g := goal.NewFlags(captures, map[string]arena.Location{"red": redFlag, "blue": blueFlag})
	f := arenatest.New(t, nil, g)
	teams := f.Fill(1, "red", "blue")
	f.Start()
	return f, g, teams["red"][0], teams["blue"][0]
}

func TestFlagsCaptureWins(t *testing.T) {
	t.Parallel()

	f, g, red, _ := newFlags(t, 1)

	if !f.Arena.Interact(red, blueFlag) {
		t.Fatal("taking the enemy flag was not consumed")
	}
	if c, ok := g.Carrier("blue"); !ok || c != red {
		t.Fatalf("carrier = %v, want red", c)
	}
	if !f.Arena.Interact(red, redFlag) {
		t.Fatal("capture was not consumed")
	}
	if _, ok := g.Carrier("blue"); ok {
		t.Fatal("flag still carried after capture")
	}

	res, ok := f.Arena.Result()
	if !ok || len(res.Winners) != 1 || res.Winners[0].Name() != "red" {
		t.Fatalf("result = %+v, want red winning", res)
	}
	if n := f.Host.Broadcasted("flags.captured"); n != 1 {
		t.Fatalf("capture broadcasts = %d, want 1", n)
	}
}

func TestFlagsCarrierDeathReturnsFlag(t *testing.T) {
	t.Parallel()

	f, g, red, blue := newFlags(t, 3)

	f.Arena.Interact(red, blueFlag)
	f.Arena.Death(red, arena.DeathCause{Killer: blue})
	if _, ok := g.Carrier("blue"); ok {
		t.Fatal("flag not returned after the carrier died")
	}
	if red.Status() != arena.PlayerDead {
		t.Fatalf("status = %v, want Dead", red.Status())
	}
	if n := f.Host.Broadcasted("flags.returned"); n != 1 {
		t.Fatalf("return broadcasts = %d, want 1", n)
	}

	f.Sched.Advance(f.Arena.Config().RespawnDelay)
	if red.Status() != arena.PlayerFight {
		t.Fatalf("status = %v, want Fight", red.Status())
	}
}

func TestFlagsNoCaptureWhileOwnFlagIsTaken(t *testing.T) {
	t.Parallel()

	f, g, red, blue := newFlags(t, 3)

	f.Arena.Interact(red, blueFlag)
	f.Arena.Interact(blue, redFlag)
	if f.Arena.Interact(red, redFlag) {
		t.Fatal("captured while the own flag was away")
	}
	if s := g.Scores()["red"]; s != 0 {
		t.Fatalf("red captures = %v, want 0", s)
	}
	if f.Arena.Interact(red, arena.At(100, 64, 100)) {
		t.Fatal("interaction away from any flag was consumed")
	}
}

func TestFlagsRejectTeamWithoutFlag(t *testing.T) {
	t.Parallel()

	g := goal.NewFlags(3, map[string]arena.Location{"red": redFlag, "blue": blueFlag})
	f := arenatest.New(t, map[string]string{"TEAMS": "red,blue,green"}, g)
	p := f.Repo.Get(arena.Identity{ID: uuid.New(), Name: "green"})
	if code := arena.CodeOf(f.Arena.Join(p, "green")); code != arena.CodeTeamUnknown {
		t.Fatalf("code = %q, want %q", code, arena.CodeTeamUnknown)
	}
}

func TestFlagsSoftLeaveReturnsFlag(t *testing.T) {
	t.Parallel()

	f, g, red, _ := newFlags(t, 3)

	f.Arena.Interact(red, blueFlag)
	if err := f.Arena.Leave(red, arena.LeaveOptions{Soft: true}); err != nil {
		t.Fatalf("soft leave: %v", err)
	}
	if _, ok := g.Carrier("blue"); ok {
		t.Fatal("flag still carried by a participant that stepped out")
	}
	if n := f.Host.Broadcasted("flags.returned"); n != 1 {
		t.Fatalf("return broadcasts = %d, want 1", n)
	}
	if red.Team() == nil || red.Status() != arena.PlayerFight {
		t.Fatal("soft leave dropped the carrier's team or status")
	}
}
