package arena

import (
	"github.com/google/uuid"
)

// Event types describe lifecycle transitions. They are delivered to listeners
// after the arena finished mutating its state, so a listener always observes
// the final state and may call back into the arena.
//
// Events carry identities rather than participant records because records are
// cleared once a participant fully exits.

// EventJoin is emitted when a participant joined a team.
type EventJoin struct {
	Arena       string
	Participant Identity
	Team        string
	InBattle    bool
}

// EventSpectate is emitted when a participant started watching.
type EventSpectate struct {
	Arena       string
	Participant Identity
}

// EventLeave is emitted when a participant left. Soft leaves keep the
// participant in the arena until it is relayed.
type EventLeave struct {
	Arena       string
	Participant Identity
	Team        string
	Soft        bool
}

// EventRelay is emitted when a softly left participant was re-placed.
type EventRelay struct {
	Arena       string
	Participant Identity
	Status      PlayerStatus
}

// EventReady is emitted when a participant declared ready.
type EventReady struct {
	Arena       string
	Participant Identity
}

// EventCountdown is emitted when a countdown started, ticked or was cancelled.
type EventCountdown struct {
	Arena     string
	Seconds   int
	Cancelled bool
}

// EventStart is emitted when the match started.
type EventStart struct {
	Arena   string
	MatchID uuid.UUID
	Teams   []string
}

// EventDeath is emitted after a death was handled.
type EventDeath struct {
	Arena       string
	Participant Identity
	Killer      *Identity
	Verdict     Verdict
}

// EventRespawn is emitted when a participant returned to the fight.
type EventRespawn struct {
	Arena       string
	Participant Identity
}

// EventEnd is emitted when the match ended.
type EventEnd struct {
	Arena   string
	MatchID uuid.UUID
	Result  Result
	Claimed bool
}

// EventReset is emitted when the arena returned to idle.
type EventReset struct {
	Arena string
	Force bool
}

// Listener receives lifecycle events. Use a type switch on ev.
type Listener func(ev any)

// identity returns the identity of a participant.
func identity(p *Participant) Identity {
	return Identity{ID: p.id, Name: p.Name()}
}
