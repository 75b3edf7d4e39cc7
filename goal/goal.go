// Package goal provides the win conditions arenas can be configured with.
package goal

import (
	"fmt"
	"strings"

	"github.com/oriumgames/arena"
)

// Prefix is the settings prefix goal configuration is read with.
const Prefix = "GOAL_"

// New creates the goal with the given name from key/value settings.
func New(name string, kv map[string]string) (arena.Goal, error) {
	switch strings.ToLower(name) {
	case "", "none":
		return arena.NopGoal{}, nil
	case TeamLivesName:
		return ParseTeamLives(kv)
	case PlayerLivesName:
		return ParsePlayerLives(kv)
	case DominationName:
		return ParseDomination(kv)
	case FlagsName:
		return ParseFlags(kv)
	default:
		return nil, fmt.Errorf("unknown goal %q", name)
	}
}

// ender guards the end sequence of a goal. The first commit hands the result
// to the arena, later commits are dropped until the goal is reset.
type ender struct {
	a      *arena.Arena
	ending bool
}

func (e *ender) commit(result arena.Result) {
	if e.ending {
		e.a.Logger().Debug("arena: end already in progress", "arena", e.a.Name())
		return
	}
	e.ending = true
	e.a.End(result)
}

func (e *ender) reset() {
	e.ending = false
}

// standingTeams returns the teams that still have fighting members.
func standingTeams(a *arena.Arena) []*arena.Team {
	var out []*arena.Team
	for _, t := range a.Teams() {
		if len(t.ActiveMembers()) > 0 {
			out = append(out, t)
		}
	}
	return out
}
