package arena

// Common module priorities. Modules with a higher priority see lifecycle
// triggers first.
const (
	PriorityLowest  = -100
	PriorityLow     = -50
	PriorityNormal  = 0
	PriorityHigh    = 50
	PriorityHighest = 100
)

// Module extends the arena lifecycle without owning the win condition. A
// module implements Module plus any of the hook interfaces below; the
// Workflow discovers hooks with type assertions.
type Module interface {
	// Name returns the module's configuration name.
	Name() string

	// Priority orders modules; higher runs first.
	Priority() int
}

// JoinChecker may reject a participant before it joins a team.
type JoinChecker interface {
	CheckJoin(a *Arena, p *Participant, team *Team) error
}

// JoinHandler is called after a participant joined. Returning true takes
// ownership of the join flow.
type JoinHandler interface {
	HandleJoin(a *Arena, p *Participant) bool
}

// StartChecker may reject a match start.
type StartChecker interface {
	CheckStart(a *Arena) error
}

// StartHandler is called when the match starts. Returning true takes
// ownership of participant placement.
type StartHandler interface {
	HandleStart(a *Arena) bool
}

// DeathHandler is called after the goal decided about a death. Returning true
// takes ownership of what happens to the participant.
type DeathHandler interface {
	HandleDeath(a *Arena, p *Participant, cause DeathCause, verdict Verdict) bool
}

// RespawnHandler is called when a participant respawns. Returning true takes
// ownership of placement and equipment.
type RespawnHandler interface {
	HandleRespawn(a *Arena, p *Participant) bool
}

// InteractHandler is called when a fighting participant interacts with a
// location. Returning true consumes the interaction.
type InteractHandler interface {
	HandleInteract(a *Arena, p *Participant, loc Location) bool
}

// SpectateHandler owns spectating. Returning true means the participant was
// placed as a watcher.
type SpectateHandler interface {
	HandleSpectate(a *Arena, p *Participant) bool
}

// EndClaimer may claim the end sequence. A claimer suppresses the default
// broadcast and reward path and returns the ticks to wait before the reset,
// or zero for the arena's default.
type EndClaimer interface {
	ClaimEnd(a *Arena, result *Result) (delay int, claimed bool)
}

// Rewarder hands out rewards once per match.
type Rewarder interface {
	Reward(a *Arena, result Result)
}

// LeaveHandler is notified after a participant left.
type LeaveHandler interface {
	HandleLeave(a *Arena, p *Participant)
}

// SoftLeaveHandler is notified when a participant steps out softly. The
// participant keeps its team and status until it relays or leaves.
type SoftLeaveHandler interface {
	HandleSoftLeave(a *Arena, p *Participant)
}

// ResetHandler is notified when the arena resets.
type ResetHandler interface {
	HandleReset(a *Arena, force bool)
}
