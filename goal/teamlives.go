package goal

import (
	"github.com/oriumgames/arena"
)

// TeamLivesName is the configuration name of TeamLives.
const TeamLivesName = "teamlives"

// TeamLivesConfig configures TeamLives.
type TeamLivesConfig struct {
	Lives int `env:"LIVES" envDefault:"3"`
}

// TeamLives gives every team a shared pool of lives. Each death of a member
// costs one life; the member dying on the last life is eliminated together
// with the team's entry, and the last team holding lives wins.
type TeamLives struct {
	arena.NopGoal
	ender

	cfg   TeamLivesConfig
	lives arena.Lives
}

// NewTeamLives creates the goal with the given lives per team.
func NewTeamLives(lives int) *TeamLives {
	return &TeamLives{cfg: TeamLivesConfig{Lives: lives}}
}

// ParseTeamLives creates the goal from key/value settings.
func ParseTeamLives(kv map[string]string) (*TeamLives, error) {
	var cfg TeamLivesConfig
	if err := arena.ParseSettings(kv, Prefix, &cfg); err != nil {
		return nil, err
	}
	return &TeamLives{cfg: cfg}, nil
}

func (g *TeamLives) Name() string { return TeamLivesName }

func (g *TeamLives) Attach(a *arena.Arena) { g.a = a }

// Lives returns the lives a team has left.
func (g *TeamLives) Lives(team string) (int, bool) {
	return g.lives.Remaining(team)
}

func (g *TeamLives) OnEnter(p *arena.Participant) {
	if t := p.Team(); t != nil {
		g.lives.Init(t.Name(), g.cfg.Lives)
	}
}

func (g *TeamLives) OnStart() {
	g.ender.reset()
	g.lives.Clear()
	for _, t := range g.a.Teams() {
		if t.Len() > 0 {
			g.lives.Set(t.Name(), g.cfg.Lives)
		}
	}
}

func (g *TeamLives) OnDeath(p *arena.Participant, _ arena.DeathCause) arena.Verdict {
	t := p.Team()
	if t == nil {
		return arena.VerdictEliminate
	}
	if _, ok := g.lives.Remaining(t.Name()); !ok {
		return arena.VerdictEliminate
	}
	if g.lives.Decrement(t.Name()) == 0 {
		g.a.Broadcast(arena.Msg("goal.team_out", t.Name()))
		return arena.VerdictEliminate
	}
	return arena.VerdictRespawn
}

func (g *TeamLives) OnLeave(p *arena.Participant) {
	if t := p.Team(); t != nil && len(t.ActiveMembers()) == 0 && g.a.Status() == arena.StatusFighting {
		g.lives.Remove(t.Name())
	}
}

// ShouldEnd reports whether at most one team still holds lives and fighters.
func (g *TeamLives) ShouldEnd() bool {
	if g.a.Status() != arena.StatusFighting {
		return false
	}
	return len(g.holders()) <= 1
}

func (g *TeamLives) CommitEnd(force bool) {
	if !force && !g.ShouldEnd() {
		return
	}
	winners := g.holders()
	result := arena.Result{Reason: "lives"}
	switch {
	case len(winners) == 1:
		result.Winners = winners
	case force:
		result.Draw = len(winners) == 0
	default:
		result.Draw = true
	}
	g.commit(result)
}

func (g *TeamLives) Scores() map[string]float64 {
	return g.lives.Snapshot()
}

func (g *TeamLives) Reset(bool) {
	g.lives.Clear()
	g.ender.reset()
}

// holders returns the teams that have lives left and members fighting.
func (g *TeamLives) holders() []*arena.Team {
	var out []*arena.Team
	for _, t := range g.a.Teams() {
		if _, ok := g.lives.Remaining(t.Name()); ok && len(t.ActiveMembers()) > 0 {
			out = append(out, t)
		}
	}
	return out
}
