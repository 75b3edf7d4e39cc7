package arena

import (
	"sort"
)

// Result is the outcome of a match. Team matches fill Winners, free-for-all
// matches fill Players.
type Result struct {
	Winners []*Team
	Players []*Participant
	Draw    bool
	Reason  string
}

// WinnerNames returns the names of the winning teams or participants.
func (r Result) WinnerNames() []string {
	names := make([]string, 0, len(r.Winners)+len(r.Players))
	for _, t := range r.Winners {
		names = append(names, t.name)
	}
	for _, p := range r.Players {
		names = append(names, p.Name())
	}
	return names
}

// Won reports whether the participant is among the winners.
func (r Result) Won(p *Participant) bool {
	if r.Draw {
		return false
	}
	for _, w := range r.Players {
		if w == p {
			return true
		}
	}
	for _, t := range r.Winners {
		if p.team == t {
			return true
		}
	}
	return false
}

func (r Result) empty() bool {
	return len(r.Winners) == 0 && len(r.Players) == 0 && !r.Draw
}

// End ends the running match. A result without winners is completed from the
// fighters left standing, then from the score snapshot. End is guarded by the
// match status: it returns false when no match is fighting, which makes goal
// CommitEnd calls from several deaths in one tick safe.
//
// Modules may claim the end sequence. The first claimer suppresses the
// default broadcast and rewards and may distribute rewards itself; the reset
// follows after the claimer's delay or EndTicks.
func (a *Arena) End(result Result) bool {
	if a.status != StatusFighting {
		a.log.Debug("arena: end ignored", "arena", a.name, "status", a.status)
		return false
	}
	a.status = StatusEnding
	a.timeLimit.Cancel()
	a.timeLimit = nil
	for id, h := range a.respawns {
		h.Cancel()
		delete(a.respawns, id)
	}

	if result.empty() {
		result = a.candidateResult()
	}

	delay, claimed := a.workflow.End(a, &result)
	a.result = &result
	if !claimed {
		a.announce(result)
		a.DistributeRewards(result)
	}
	if delay <= 0 {
		delay = a.cfg.EndTicks
	}
	a.endTimer.Cancel()
	a.endTimer = a.sched.ScheduleOnce(delay, func() {
		a.endTimer = nil
		a.Reset(false)
	})

	a.log.Info("arena: match ended", "arena", a.name, "match", a.matchID,
		"winners", result.WinnerNames(), "draw", result.Draw, "claimed", claimed)
	a.emit(EventEnd{Arena: a.name, MatchID: a.matchID, Result: result, Claimed: claimed})
	return true
}

func (a *Arena) announce(result Result) {
	switch {
	case result.Draw:
		a.Broadcast(Msg("arena.draw"))
	case len(result.Winners) > 0:
		for _, t := range result.Winners {
			a.Broadcast(Msg("arena.team_won", t.name))
		}
	default:
		for _, p := range result.Players {
			a.Broadcast(Msg("arena.player_won", p.Name()))
		}
	}
}

// DistributeRewards books wins and losses and runs every Rewarder module. It
// runs once per match; later calls are no-ops.
func (a *Arena) DistributeRewards(result Result) {
	if a.rewarded {
		return
	}
	a.rewarded = true
	for _, p := range a.teamMembers() {
		if result.Won(p) {
			p.stats.Wins++
		} else if !result.Draw {
			p.stats.Losses++
		}
	}
	a.workflow.Reward(a, result)
}

// candidateResult determines the winner from the fighters still standing,
// falling back to the best score.
func (a *Arena) candidateResult() Result {
	if a.cfg.FreeForAll {
		if f := a.Fighters(); len(f) == 1 {
			return Result{Players: f, Reason: "last standing"}
		}
	} else {
		var standing []*Team
		for _, t := range a.teams {
			if len(t.ActiveMembers()) > 0 {
				standing = append(standing, t)
			}
		}
		if len(standing) == 1 {
			return Result{Winners: standing, Reason: "last standing"}
		}
	}
	return a.scoreResult("score")
}

// scoreResult picks the winners with the highest score. A shared top score
// yields several winners; no scores yield a draw.
func (a *Arena) scoreResult(reason string) Result {
	scores := a.goal.Scores()
	if len(scores) == 0 {
		return Result{Draw: true, Reason: reason}
	}
	keys := make([]string, 0, len(scores))
	for k := range scores {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	best := scores[keys[0]]
	for _, k := range keys[1:] {
		if scores[k] > best {
			best = scores[k]
		}
	}
	r := Result{Reason: reason}
	for _, k := range keys {
		if scores[k] != best {
			continue
		}
		if t, ok := a.Team(k); ok {
			r.Winners = append(r.Winners, t)
		} else if p, ok := a.ParticipantByKey(k); ok {
			r.Players = append(r.Players, p)
		}
	}
	if r.empty() {
		r.Draw = true
	}
	return r
}

// timeUp ends the match by score when the time limit expires.
func (a *Arena) timeUp() {
	a.timeLimit = nil
	if a.status != StatusFighting {
		return
	}
	a.Broadcast(Msg("arena.time_up"))
	a.End(a.scoreResult("time limit"))
}
