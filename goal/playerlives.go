package goal

import (
	"github.com/oriumgames/arena"
)

// PlayerLivesName is the configuration name of PlayerLives.
const PlayerLivesName = "playerlives"

// PlayerLivesConfig configures PlayerLives.
type PlayerLivesConfig struct {
	Lives int `env:"LIVES" envDefault:"1"`
}

// PlayerLives gives every participant its own lives. In free-for-all arenas
// the last participant standing wins, otherwise the last team with a
// participant holding lives.
type PlayerLives struct {
	arena.NopGoal
	ender

	cfg   PlayerLivesConfig
	lives arena.Lives
}

// NewPlayerLives creates the goal with the given lives per participant.
func NewPlayerLives(lives int) *PlayerLives {
	return &PlayerLives{cfg: PlayerLivesConfig{Lives: lives}}
}

// ParsePlayerLives creates the goal from key/value settings.
func ParsePlayerLives(kv map[string]string) (*PlayerLives, error) {
	var cfg PlayerLivesConfig
	if err := arena.ParseSettings(kv, Prefix, &cfg); err != nil {
		return nil, err
	}
	return &PlayerLives{cfg: cfg}, nil
}

func (g *PlayerLives) Name() string { return PlayerLivesName }

func (g *PlayerLives) Attach(a *arena.Arena) { g.a = a }

// Lives returns the lives a participant has left.
func (g *PlayerLives) Lives(p *arena.Participant) (int, bool) {
	return g.lives.Remaining(p.Key())
}

func (g *PlayerLives) OnEnter(p *arena.Participant) {
	g.lives.Init(p.Key(), g.cfg.Lives)
}

func (g *PlayerLives) OnStart() {
	g.ender.reset()
	g.lives.Clear()
	for _, p := range g.a.Members() {
		g.lives.Set(p.Key(), g.cfg.Lives)
	}
}

func (g *PlayerLives) OnDeath(p *arena.Participant, _ arena.DeathCause) arena.Verdict {
	if _, ok := g.lives.Remaining(p.Key()); !ok {
		return arena.VerdictEliminate
	}
	if g.lives.Decrement(p.Key()) == 0 {
		return arena.VerdictEliminate
	}
	return arena.VerdictRespawn
}

func (g *PlayerLives) OnLeave(p *arena.Participant) {
	g.lives.Remove(p.Key())
}

// ShouldEnd reports whether at most one side still holds lives.
func (g *PlayerLives) ShouldEnd() bool {
	if g.a.Status() != arena.StatusFighting {
		return false
	}
	if g.a.Config().FreeForAll {
		return len(g.players()) <= 1
	}
	return len(g.teams()) <= 1
}

func (g *PlayerLives) CommitEnd(force bool) {
	if !force && !g.ShouldEnd() {
		return
	}
	result := arena.Result{Reason: "lives"}
	if g.a.Config().FreeForAll {
		if players := g.players(); len(players) == 1 {
			result.Players = players
		} else if len(players) == 0 {
			result.Draw = true
		}
	} else {
		if teams := g.teams(); len(teams) == 1 {
			result.Winners = teams
		} else if len(teams) == 0 {
			result.Draw = true
		}
	}
	g.commit(result)
}

func (g *PlayerLives) Scores() map[string]float64 {
	return g.lives.Snapshot()
}

func (g *PlayerLives) Reset(bool) {
	g.lives.Clear()
	g.ender.reset()
}

// players returns the fighters with lives left.
func (g *PlayerLives) players() []*arena.Participant {
	var out []*arena.Participant
	for _, p := range g.a.Fighters() {
		if _, ok := g.lives.Remaining(p.Key()); ok {
			out = append(out, p)
		}
	}
	return out
}

// teams returns the teams with a fighter holding lives.
func (g *PlayerLives) teams() []*arena.Team {
	var out []*arena.Team
	for _, t := range g.a.Teams() {
		for _, p := range t.ActiveMembers() {
			if _, ok := g.lives.Remaining(p.Key()); ok {
				out = append(out, t)
				break
			}
		}
	}
	return out
}
