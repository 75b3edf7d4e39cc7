package module

import (
	"github.com/oriumgames/arena"
)

// SpectateName is the configuration name of Spectate.
const SpectateName = "spectate"

// Spectate owns watching. It places new watchers at the spectator pool and
// turns eliminated fighters into watchers instead of leaving them lost.
type Spectate struct{}

// NewSpectate creates the module.
func NewSpectate() *Spectate {
	return &Spectate{}
}

func (*Spectate) Name() string  { return SpectateName }
func (*Spectate) Priority() int { return arena.PriorityNormal }

// HandleSpectate places a new watcher.
func (*Spectate) HandleSpectate(a *arena.Arena, p *arena.Participant) bool {
	if err := a.Watch(p); err != nil {
		a.Logger().Debug("arena: spectate failed", "arena", a.Name(), "participant", p.Name(), "error", err)
		return false
	}
	a.Message(p, arena.Msg("spectate.watching", a.Name()))
	return true
}

// HandleDeath turns an eliminated fighter into a watcher.
func (*Spectate) HandleDeath(a *arena.Arena, p *arena.Participant, _ arena.DeathCause, verdict arena.Verdict) bool {
	if verdict != arena.VerdictEliminate {
		return false
	}
	if err := a.Watch(p); err != nil {
		a.Logger().Debug("arena: spectate after elimination failed", "arena", a.Name(), "participant", p.Name(), "error", err)
		return false
	}
	a.Message(p, arena.Msg("spectate.eliminated"))
	return true
}
