package arena

// Status is the match-wide state of an arena.
type Status int

const (
	// StatusIdle means no match is running. Participants may wait in the lounge.
	StatusIdle Status = iota

	// StatusCountdown means a countdown towards the match start is running.
	StatusCountdown

	// StatusFighting means the match is running and the goal is tracking the win condition.
	StatusFighting

	// StatusEnding means a winner was declared and the arena is waiting to be reset.
	StatusEnding
)

// String returns the string representation of the status.
func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "Idle"
	case StatusCountdown:
		return "Countdown"
	case StatusFighting:
		return "Fighting"
	case StatusEnding:
		return "Ending"
	default:
		return "Unknown"
	}
}

// PlayerStatus is the state of a single participant within a match.
// Statuses cycle None → Lounge → Ready → Fight → {Watch, Dead, Lost} → None.
type PlayerStatus int

const (
	// PlayerNone means the participant is not part of any match.
	PlayerNone PlayerStatus = iota

	// PlayerLounge means the participant joined and waits in the lounge.
	PlayerLounge

	// PlayerReady means the participant declared ready during the lounge phase.
	PlayerReady

	// PlayerFight means the participant actively takes part in a running match.
	PlayerFight

	// PlayerWatch means the participant spectates without win or lose bookkeeping.
	PlayerWatch

	// PlayerDead means the participant died and waits for a respawn.
	PlayerDead

	// PlayerLost means the participant was eliminated for the rest of the match.
	PlayerLost
)

// String returns the string representation of the player status.
func (s PlayerStatus) String() string {
	switch s {
	case PlayerNone:
		return "None"
	case PlayerLounge:
		return "Lounge"
	case PlayerReady:
		return "Ready"
	case PlayerFight:
		return "Fight"
	case PlayerWatch:
		return "Watch"
	case PlayerDead:
		return "Dead"
	case PlayerLost:
		return "Lost"
	default:
		return "Unknown"
	}
}

// transitions lists the legal targets for every status. Moving to PlayerNone
// is always legal and therefore not listed.
var transitions = map[PlayerStatus][]PlayerStatus{
	PlayerNone:   {PlayerLounge, PlayerWatch},
	PlayerLounge: {PlayerReady, PlayerFight, PlayerWatch},
	PlayerReady:  {PlayerLounge, PlayerFight, PlayerWatch},
	PlayerFight:  {PlayerDead, PlayerLost, PlayerWatch},
	PlayerDead:   {PlayerFight, PlayerLost, PlayerWatch},
	PlayerLost:   {PlayerWatch},
	PlayerWatch:  {},
}

// CanTransition reports whether a participant may move from one status to another.
func CanTransition(from, to PlayerStatus) bool {
	if to == PlayerNone {
		return true
	}
	for _, s := range transitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// Active reports whether the status counts towards win or lose bookkeeping.
func (s PlayerStatus) Active() bool {
	return s == PlayerFight || s == PlayerDead
}

// Queued reports whether the participant waits in the lounge for the match.
func (s PlayerStatus) Queued() bool {
	return s == PlayerLounge || s == PlayerReady
}

// InMatch reports whether the participant takes part in the match in any role.
func (s PlayerStatus) InMatch() bool {
	return s != PlayerNone
}
