package goal_test

import (
	"testing"

	"github.com/oriumgames/arena"
	"github.com/oriumgames/arena/goal"
	"github.com/oriumgames/arena/internal/arenatest"
)

func TestNew(t *testing.T) {
	t.Parallel()

	g, err := goal.New("TeamLives", map[string]string{"GOAL_LIVES": "5"})
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if g.Name() != goal.TeamLivesName {
		t.Fatalf("name = %q, want %q", g.Name(), goal.TeamLivesName)
	}
	if g, err := goal.New("", nil); err != nil || g.Name() != "none" {
		t.Fatalf("empty goal = %v, %v; want none", g, err)
	}
	if _, err := goal.New("king-of-the-hill", nil); err == nil {
		t.Fatal("unknown goal accepted")
	}
	if _, err := goal.New(goal.DominationName, nil); err == nil {
		t.Fatal("domination without points accepted")
	}
	if _, err := goal.New(goal.FlagsName, map[string]string{"GOAL_FLAG_RED": "0,64,0"}); err == nil {
		t.Fatal("flags with a single flag accepted")
	}

	flags, err := goal.ParseFlags(map[string]string{
		"GOAL_CAPTURES":  "2",
		"GOAL_FLAG_RED":  "-10,64,0",
		"GOAL_FLAG_BLUE": "10,64,0",
	})
	if err != nil {
		t.Fatalf("parse flags: %v", err)
	}
	if flags.Name() != goal.FlagsName {
		t.Fatalf("name = %q", flags.Name())
	}
}

func TestTeamLivesLastTeamWinsOnce(t *testing.T) {
	t.Parallel()

	g := goal.NewTeamLives(3)
	f := arenatest.New(t, nil, g)
	teams := f.Fill(1, "red", "blue")
	red := teams["red"][0]
	f.Start()

	for i := 2; i >= 1; i-- {
		f.Arena.Death(red, arena.DeathCause{Reason: "void"})
		if n, _ := g.Lives("red"); n != i {
			t.Fatalf("red lives = %d, want %d", n, i)
		}
		if red.Status() != arena.PlayerDead {
			t.Fatalf("status = %v, want Dead", red.Status())
		}
		f.Sched.Advance(f.Arena.Config().RespawnDelay)
		if red.Status() != arena.PlayerFight {
			t.Fatalf("status = %v, want Fight after respawn", red.Status())
		}
	}

	f.Arena.Death(red, arena.DeathCause{Reason: "void"})
	if red.Status() != arena.PlayerLost {
		t.Fatalf("status = %v, want Lost", red.Status())
	}
	if _, ok := g.Lives("red"); ok {
		t.Fatal("red still holds lives")
	}
	res, ok := f.Arena.Result()
	if !ok || len(res.Winners) != 1 || res.Winners[0].Name() != "blue" {
		t.Fatalf("result = %+v, want blue winning", res)
	}

	g.CommitEnd(true)
	f.Arena.Death(red, arena.DeathCause{})
	if got := arenatest.CountEvents[arena.EventEnd](f); got != 1 {
		t.Fatalf("end events = %d, want 1", got)
	}
	if n := f.Host.Broadcasted("goal.team_out"); n != 1 {
		t.Fatalf("team out broadcasts = %d, want 1", n)
	}
}

func TestTeamLivesLateJoinerKeepsCounter(t *testing.T) {
	t.Parallel()

	g := goal.NewTeamLives(3)
	f := arenatest.New(t, map[string]string{"JOIN_IN_BATTLE": "true"}, g)
	teams := f.Fill(1, "red", "blue")
	f.Start()

	f.Arena.Death(teams["red"][0], arena.DeathCause{})
	f.Join("late", "red")
	if n, _ := g.Lives("red"); n != 2 {
		t.Fatalf("red lives = %d, want 2", n)
	}
	scores := f.Arena.Goal().Scores()
	if scores["red"] != 2 || scores["blue"] != 3 {
		t.Fatalf("scores = %v, want red 2 blue 3", scores)
	}
}

func TestTeamLivesResetClears(t *testing.T) {
	t.Parallel()

	g := goal.NewTeamLives(3)
	f := arenatest.New(t, nil, g)
	f.Fill(1, "red", "blue")
	f.Start()
	f.Arena.Reset(true)
	if len(g.Scores()) != 0 {
		t.Fatalf("scores after reset = %v", g.Scores())
	}
}

func TestPlayerLivesLastStandingWins(t *testing.T) {
	t.Parallel()

	g := goal.NewPlayerLives(1)
	f := arenatest.New(t, map[string]string{
		"FREE_FOR_ALL": "true",
		"SPAWN_FREE":   "0,64,0;10,64,0;0,64,10",
	}, g)
	a := f.Join("a", "")
	b := f.Join("b", "")
	c := f.Join("c", "")
	f.Start()

	f.Arena.Death(a, arena.DeathCause{Killer: c})
	if a.Status() != arena.PlayerLost {
		t.Fatalf("status = %v, want Lost", a.Status())
	}
	if f.Arena.Status() != arena.StatusFighting {
		t.Fatalf("match ended with two players left")
	}

	f.Arena.Death(b, arena.DeathCause{Killer: c})
	res, ok := f.Arena.Result()
	if !ok || len(res.Players) != 1 || res.Players[0] != c {
		t.Fatalf("result = %+v, want c winning", res)
	}
	if c.Stats().Kills != 2 || c.Stats().Wins != 1 {
		t.Fatalf("winner stats = %+v", c.Stats())
	}
}

func TestPlayerLivesRespawnsWhileLivesLeft(t *testing.T) {
	t.Parallel()

	g := goal.NewPlayerLives(2)
	f := arenatest.New(t, nil, g)
	teams := f.Fill(1, "red", "blue")
	red := teams["red"][0]
	f.Start()

	f.Arena.Death(red, arena.DeathCause{})
	if red.Status() != arena.PlayerDead {
		t.Fatalf("status = %v, want Dead", red.Status())
	}
	if n, _ := g.Lives(red); n != 1 {
		t.Fatalf("lives = %d, want 1", n)
	}
}
