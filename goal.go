package arena

// Verdict is a goal's decision about a dead participant.
type Verdict int

const (
	// VerdictRespawn puts the participant back into the fight after the respawn delay.
	VerdictRespawn Verdict = iota

	// VerdictEliminate removes the participant from the fight for the rest of the match.
	VerdictEliminate
)

// String returns the string representation of the verdict.
func (v Verdict) String() string {
	if v == VerdictEliminate {
		return "Eliminate"
	}
	return "Respawn"
}

// DeathCause describes why a participant died.
type DeathCause struct {
	// Killer is the participant that dealt the final blow, or nil.
	Killer *Participant

	// Reason is a host defined reason such as "attack", "void" or "fall".
	Reason string
}

// Goal is the win condition of an arena. Exactly one goal is active per
// arena. The goal exclusively owns its lives or score state; everything else
// reads it through Scores.
//
// All methods are called on the arena goroutine.
type Goal interface {
	// Name returns the goal's configuration name.
	Name() string

	// Attach binds the goal to its arena. It is called once before any other
	// method.
	Attach(a *Arena)

	// CheckJoin may reject a participant joining the team.
	CheckJoin(p *Participant, team *Team) error

	// OnEnter initialises the participant's or team's entry if it is absent.
	// It never resets a counter that already exists.
	OnEnter(p *Participant)

	// OnStart seeds the goal state for the participants that are fighting.
	OnStart()

	// OnDeath books the death and decides whether the participant respawns.
	OnDeath(p *Participant, cause DeathCause) Verdict

	// OnRespawn is called after a participant was put back into the fight.
	OnRespawn(p *Participant)

	// OnLeave is called after the participant left its team.
	OnLeave(p *Participant)

	// OnInteract handles a participant interacting with a location and
	// reports whether the goal consumed the interaction.
	OnInteract(p *Participant, loc Location) bool

	// ShouldEnd reports whether the match is decided. It must not mutate state.
	ShouldEnd() bool

	// CommitEnd announces the result and hands over to the arena's end
	// sequence. Calling it while an end sequence is in flight is a no-op.
	CommitEnd(force bool)

	// Scores returns the current score snapshot keyed by team name or
	// participant key.
	Scores() map[string]float64

	// Reset clears all goal state.
	Reset(force bool)
}

// SoftLeaver is implemented by goals that react to a participant stepping out
// softly, such as dropping what it carries.
type SoftLeaver interface {
	OnSoftLeave(p *Participant)
}

// NopGoal implements Goal with no behaviour. Embed it to implement only the
// hooks a goal needs.
type NopGoal struct{}

func (NopGoal) Name() string                             { return "none" }
func (NopGoal) Attach(*Arena)                            {}
func (NopGoal) CheckJoin(*Participant, *Team) error      { return nil }
func (NopGoal) OnEnter(*Participant)                     {}
func (NopGoal) OnStart()                                 {}
func (NopGoal) OnDeath(*Participant, DeathCause) Verdict { return VerdictRespawn }
func (NopGoal) OnRespawn(*Participant)                   {}
func (NopGoal) OnLeave(*Participant)                     {}
func (NopGoal) OnInteract(*Participant, Location) bool   { return false }
func (NopGoal) ShouldEnd() bool                          { return false }
func (NopGoal) CommitEnd(bool)                           {}
func (NopGoal) Scores() map[string]float64               { return nil }
func (NopGoal) Reset(bool)                               {}
