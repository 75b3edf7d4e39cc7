package goal

import (
	"fmt"
	"strings"

	"github.com/df-mc/dragonfly/server/block/cube"
	"github.com/oriumgames/arena"
)

// FlagsName is the configuration name of Flags.
const FlagsName = "flags"

// FlagsConfig configures Flags. Flag locations are read from
// GOAL_FLAG_<TEAM>=x,y,z keys.
type FlagsConfig struct {
	Captures int `env:"CAPTURES" envDefault:"3"`
}

type flag struct {
	team    *arena.Team
	home    arena.Location
	carrier *arena.Participant
}

// Flags is capture the flag. A fighter takes an enemy flag by interacting with
// its home block and captures it by interacting with the own flag's home
// block while the own flag is at home. Deaths always respawn; a dying or
// leaving carrier returns the flag.
type Flags struct {
	arena.NopGoal
	ender

	cfg      FlagsConfig
	homes    map[string]arena.Location
	flags    map[string]*flag
	captures map[string]float64
}

// NewFlags creates the goal with flag homes keyed by team name.
func NewFlags(captures int, homes map[string]arena.Location) *Flags {
	return &Flags{
		cfg:      FlagsConfig{Captures: captures},
		homes:    homes,
		flags:    make(map[string]*flag),
		captures: make(map[string]float64),
	}
}

// ParseFlags creates the goal from key/value settings.
func ParseFlags(kv map[string]string) (*Flags, error) {
	var cfg FlagsConfig
	if err := arena.ParseSettings(kv, Prefix, &cfg); err != nil {
		return nil, err
	}
	homes := make(map[string]arena.Location)
	for k, v := range kv {
		team, ok := strings.CutPrefix(k, Prefix+"FLAG_")
		if !ok {
			continue
		}
		loc, err := arena.ParseLocation(v)
		if err != nil {
			return nil, fmt.Errorf("flag %s: %w", team, err)
		}
		homes[strings.ToLower(team)] = loc
	}
	if len(homes) < 2 {
		return nil, fmt.Errorf("flags needs a flag for at least two teams")
	}
	g := NewFlags(cfg.Captures, homes)
	return g, nil
}

func (g *Flags) Name() string { return FlagsName }

func (g *Flags) Attach(a *arena.Arena) {
	g.a = a
	for _, t := range a.Teams() {
		if home, ok := g.homes[t.Name()]; ok {
			g.flags[t.Name()] = &flag{team: t, home: home}
		}
	}
}

// CheckJoin rejects teams without a flag.
func (g *Flags) CheckJoin(_ *arena.Participant, team *arena.Team) error {
	if _, ok := g.flags[team.Name()]; !ok {
		return arena.Reject(arena.CodeTeamUnknown, "team has no flag", team.Name())
	}
	return nil
}

// Carrier returns who carries the team's flag.
func (g *Flags) Carrier(team string) (*arena.Participant, bool) {
	f, ok := g.flags[team]
	if !ok || f.carrier == nil {
		return nil, false
	}
	return f.carrier, true
}

func (g *Flags) OnEnter(p *arena.Participant) {
	if t := p.Team(); t != nil {
		if _, ok := g.captures[t.Name()]; !ok {
			g.captures[t.Name()] = 0
		}
	}
}

func (g *Flags) OnStart() {
	g.ender.reset()
	g.returnAll()
	clear(g.captures)
	for _, t := range g.a.Teams() {
		if t.Len() > 0 {
			g.captures[t.Name()] = 0
		}
	}
}

func (g *Flags) OnDeath(p *arena.Participant, _ arena.DeathCause) arena.Verdict {
	g.drop(p)
	return arena.VerdictRespawn
}

func (g *Flags) OnLeave(p *arena.Participant) {
	g.drop(p)
}

// OnSoftLeave returns any flag the participant carries.
func (g *Flags) OnSoftLeave(p *arena.Participant) {
	g.drop(p)
}

func (g *Flags) OnInteract(p *arena.Participant, loc arena.Location) bool {
	f := g.flagAt(loc.Block())
	if f == nil || p.Team() == nil {
		return false
	}
	if f.team != p.Team() {
		if f.carrier != nil {
			return false
		}
		f.carrier = p
		g.a.Broadcast(arena.Msg("flags.taken", p.Name(), f.team.Name()))
		return true
	}

	// Own flag: capture every flag the participant carries, if the own
	// flag is at home.
	if f.carrier != nil {
		return false
	}
	captured := false
	for _, other := range g.flags {
		if other.carrier != p {
			continue
		}
		other.carrier = nil
		g.captures[f.team.Name()]++
		captured = true
		g.a.Broadcast(arena.Msg("flags.captured", p.Name(), other.team.Name()))
	}
	if captured {
		g.a.ScoresChanged()
	}
	return captured
}

// ShouldEnd reports whether a team reached the captures or fewer than two
// teams are left fighting.
func (g *Flags) ShouldEnd() bool {
	if g.a.Status() != arena.StatusFighting {
		return false
	}
	if len(standingTeams(g.a)) < 2 {
		return true
	}
	for _, n := range g.captures {
		if n >= float64(g.cfg.Captures) {
			return true
		}
	}
	return false
}

func (g *Flags) CommitEnd(force bool) {
	if !force && !g.ShouldEnd() {
		return
	}
	result := arena.Result{Reason: "flags"}
	standing := standingTeams(g.a)
	switch len(standing) {
	case 0:
		result.Draw = true
	case 1:
		result.Winners = standing
	default:
		for _, t := range standing {
			if g.captures[t.Name()] >= float64(g.cfg.Captures) {
				result.Winners = append(result.Winners, t)
			}
		}
	}
	g.commit(result)
}

func (g *Flags) Scores() map[string]float64 {
	out := make(map[string]float64, len(g.captures))
	for k, v := range g.captures {
		out[k] = v
	}
	return out
}

func (g *Flags) Reset(bool) {
	g.returnAll()
	clear(g.captures)
	g.ender.reset()
}

func (g *Flags) flagAt(pos cube.Pos) *flag {
	for _, f := range g.flags {
		if f.home.Block() == pos {
			return f
		}
	}
	return nil
}

func (g *Flags) drop(p *arena.Participant) {
	for _, f := range g.flags {
		if f.carrier == p {
			f.carrier = nil
			g.a.Broadcast(arena.Msg("flags.returned", f.team.Name()))
		}
	}
}

func (g *Flags) returnAll() {
	for _, f := range g.flags {
		f.carrier = nil
	}
}
