package arena

import (
	"github.com/google/uuid"
)

// Identity identifies a player towards the core.
type Identity struct {
	ID   uuid.UUID
	Name string
}

// StatDelta holds the statistics a participant accumulated during a match.
type StatDelta struct {
	Kills  int
	Deaths int
	Wins   int
	Losses int
	Played int
}

// IsZero reports whether nothing was recorded.
func (d StatDelta) IsZero() bool {
	return d == StatDelta{}
}

// Add returns the sum of both deltas.
func (d StatDelta) Add(o StatDelta) StatDelta {
	return StatDelta{
		Kills:  d.Kills + o.Kills,
		Deaths: d.Deaths + o.Deaths,
		Wins:   d.Wins + o.Wins,
		Losses: d.Losses + o.Losses,
		Played: d.Played + o.Played,
	}
}

// Participant is the per-player record of a match.
//
// Participants are created lazily by the Participants repository and shared by
// reference between the arena, its goal and its modules. Only the arena (or
// the workflow acting on its behalf) changes the status field.
type Participant struct {
	id   uuid.UUID
	name string

	status PlayerStatus
	arena  *Arena
	team   *Team

	// loadout is the chosen class, empty until chosen or auto-assigned
	loadout string

	// saved is the location the participant had before joining
	saved    Location
	hasSaved bool

	mayDrop    bool
	mayRespawn bool

	// relaying marks a soft leave waiting to be re-placed
	relaying bool

	stats StatDelta
}

// ID returns the participant's unique id.
func (p *Participant) ID() uuid.UUID {
	return p.id
}

// Name returns the participant's display name.
func (p *Participant) Name() string {
	if p.name == "" {
		return p.id.String()
	}
	return p.name
}

// Key returns the key goals use for per-participant bookkeeping.
func (p *Participant) Key() string {
	return p.id.String()
}

// Status returns the current status.
func (p *Participant) Status() PlayerStatus {
	return p.status
}

// Arena returns the arena the participant is in, or nil.
func (p *Participant) Arena() *Arena {
	return p.arena
}

// Team returns the participant's team, or nil.
func (p *Participant) Team() *Team {
	return p.team
}

// Loadout returns the chosen loadout name.
func (p *Participant) Loadout() string {
	return p.loadout
}

// SavedLocation returns the location recorded before the participant joined.
func (p *Participant) SavedLocation() (Location, bool) {
	return p.saved, p.hasSaved
}

// MayDrop reports whether the participant drops items on death.
func (p *Participant) MayDrop() bool {
	return p.mayDrop
}

// MayRespawn reports whether the participant is allowed to respawn.
func (p *Participant) MayRespawn() bool {
	return p.mayRespawn
}

// Relaying reports whether the participant left softly and awaits re-placement.
func (p *Participant) Relaying() bool {
	return p.relaying
}

// Stats returns the statistics accumulated in the current match.
func (p *Participant) Stats() StatDelta {
	return p.stats
}

// clear resets every field except the identity.
func (p *Participant) clear() {
	id, name := p.id, p.name
	*p = Participant{id: id, name: name}
}

// Participants is the repository of participant records, keyed by id.
// It replaces a process-wide lookup table: the Manager owns one instance and
// hands it to every arena it creates.
type Participants struct {
	byID map[uuid.UUID]*Participant
}

// NewParticipants creates an empty repository.
func NewParticipants() *Participants {
	return &Participants{byID: make(map[uuid.UUID]*Participant)}
}

// Get returns the record for the id, creating it on first use. Repeated calls
// return the same instance.
func (r *Participants) Get(who Identity) *Participant {
	if p, ok := r.byID[who.ID]; ok {
		if who.Name != "" {
			p.name = who.Name
		}
		return p
	}
	p := &Participant{id: who.ID, name: who.Name}
	r.byID[who.ID] = p
	return p
}

// Lookup returns the record for the id without creating it.
func (r *Participants) Lookup(id uuid.UUID) (*Participant, bool) {
	p, ok := r.byID[id]
	return p, ok
}

// Remove destroys the record. The caller clears team membership first.
func (r *Participants) Remove(id uuid.UUID) {
	if p, ok := r.byID[id]; ok {
		p.clear()
		delete(r.byID, id)
	}
}

// Len returns the number of live records.
func (r *Participants) Len() int {
	return len(r.byID)
}
