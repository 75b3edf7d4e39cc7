package arena

// ReadyOutcome is the result of a readiness evaluation.
type ReadyOutcome int

const (
	// ReadyReject means the match cannot start.
	ReadyReject ReadyOutcome = iota

	// ReadySoft means the match may start although not every participant is
	// ready, because the ready ratio was met or the start was forced.
	ReadySoft

	// ReadyHard means every participant is ready.
	ReadyHard
)

// String returns the string representation of the outcome.
func (o ReadyOutcome) String() string {
	switch o {
	case ReadySoft:
		return "Soft"
	case ReadyHard:
		return "Hard"
	default:
		return "Reject"
	}
}

// Readiness is the outcome of a readiness evaluation. Err is set only for
// ReadyReject.
type Readiness struct {
	Outcome ReadyOutcome
	Err     *Error
}

// CanStart reports whether the match may start.
func (r Readiness) CanStart() bool {
	return r.Outcome != ReadyReject
}

func reject(code Code, message string, args ...any) Readiness {
	return Readiness{Outcome: ReadyReject, Err: Reject(code, message, args...)}
}

// Evaluate checks whether the match can start. The checks run in a fixed order
// and stop at the first rejection; the loadout step assigns default loadouts,
// so it only runs once every earlier check passed.
//
// A forced evaluation skips the each-player check and turns a missing ready
// ratio into a soft pass.
//
// Only members waiting in the lounge count; team members that watch do not.
func (a *Arena) Evaluate(force bool) Readiness {
	members := a.queuedMembers()

	// 1. Enough players.
	if len(members) < 2 {
		return reject(CodeAlone, "not enough players to start")
	}
	if len(members) < a.cfg.MinPlayers {
		return reject(CodeMissingPlayers, "waiting for more players", len(members), a.cfg.MinPlayers)
	}

	// 2. Every player ready.
	if a.cfg.CheckEachPlayer && !force {
		for _, p := range members {
			if p.status != PlayerReady {
				return reject(CodePlayerNotReady, "player is not ready", p.Name())
			}
		}
	}

	// 3. Team structure.
	if !a.cfg.FreeForAll {
		var active []*Team
		sizes := make(map[*Team]int)
		for _, t := range a.teams {
			if n := len(t.QueuedMembers()); n > 0 {
				active = append(active, t)
				sizes[t] = n
			}
		}
		if len(active) < 2 {
			return reject(CodeTeamAlone, "only one team has players")
		}
		if a.cfg.EvenTeams {
			for _, t := range active[1:] {
				if sizes[t] != sizes[active[0]] {
					return reject(CodeWaitingEqualTeams, "waiting for equal teams")
				}
			}
		}
		for _, t := range active {
			if sizes[t] < a.cfg.MinTeamPlayers {
				return reject(CodeMissingTeamPlayers, "team is missing players", t.Name(), a.cfg.MinTeamPlayers)
			}
		}
	}

	// 4. Loadouts.
	if len(a.cfg.Loadouts) > 0 || a.cfg.DefaultLoadout != "" {
		for _, p := range members {
			if p.loadout != "" {
				continue
			}
			loadout := a.defaultLoadout()
			if loadout == "" {
				return reject(CodeNoLoadout, "player has no loadout", p.Name())
			}
			p.loadout = loadout
		}
	}

	// 5. Ready ratio.
	ready := 0
	for _, p := range members {
		if p.status == PlayerReady {
			ready++
		}
	}
	if ready == len(members) {
		return Readiness{Outcome: ReadyHard}
	}
	if force || (ready > 0 && float64(ready)/float64(len(members)) >= a.cfg.ReadyRatio) {
		return Readiness{Outcome: ReadySoft}
	}
	return reject(CodeNotEnoughReady, "not enough players are ready", ready, len(members))
}

// defaultLoadout resolves the loadout assigned to participants without one.
func (a *Arena) defaultLoadout() string {
	if a.cfg.DefaultLoadout != "" {
		return a.cfg.DefaultLoadout
	}
	if len(a.cfg.Loadouts) == 1 {
		return a.cfg.Loadouts[0]
	}
	return ""
}
