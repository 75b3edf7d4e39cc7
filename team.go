package arena

import (
	"strings"

	"github.com/google/uuid"
)

// FreeForAllTeam is the name of the synthetic team used when an arena has no
// team structure.
const FreeForAllTeam = "free"

// Color is the display color of a team.
type Color int

const (
	ColorWhite Color = iota
	ColorRed
	ColorBlue
	ColorGreen
	ColorYellow
	ColorAqua
	ColorPurple
	ColorGold
	ColorGray
	ColorBlack
)

var colorNames = [...]string{"white", "red", "blue", "green", "yellow", "aqua", "purple", "gold", "gray", "black"}

// String returns the lower case color name.
func (c Color) String() string {
	if c < 0 || int(c) >= len(colorNames) {
		return "unknown"
	}
	return colorNames[c]
}

// ParseColor resolves a color by name. The second return value is false if the
// name is not a known color.
func ParseColor(name string) (Color, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	for i, n := range colorNames {
		if n == name {
			return Color(i), true
		}
	}
	return ColorWhite, false
}

// Team is a named group of participants. Teams only hold membership; the
// arena decides who joins and leaves them.
type Team struct {
	name    string
	color   Color
	max     int
	members []*Participant
}

// NewTeam creates an empty team. A max of zero means unlimited members.
func NewTeam(name string, color Color, max int) *Team {
	return &Team{name: name, color: color, max: max}
}

// Name returns the team name.
func (t *Team) Name() string {
	return t.name
}

// Color returns the team color.
func (t *Team) Color() Color {
	return t.color
}

// Members returns a copy of the members in join order.
func (t *Team) Members() []*Participant {
	out := make([]*Participant, len(t.members))
	copy(out, t.members)
	return out
}

// Len returns the number of members.
func (t *Team) Len() int {
	return len(t.members)
}

// Full reports whether the team reached its member limit.
func (t *Team) Full() bool {
	return t.max > 0 && len(t.members) >= t.max
}

// Has reports whether the participant is a member.
func (t *Team) Has(id uuid.UUID) bool {
	return t.index(id) >= 0
}

// ActiveMembers returns the members whose status counts towards the match result.
func (t *Team) ActiveMembers() []*Participant {
	var out []*Participant
	for _, p := range t.members {
		if p.status.Active() {
			out = append(out, p)
		}
	}
	return out
}

// QueuedMembers returns the members waiting for the match to start. Members
// that switched to watching are left out.
func (t *Team) QueuedMembers() []*Participant {
	var out []*Participant
	for _, p := range t.members {
		if p.status.Queued() {
			out = append(out, p)
		}
	}
	return out
}

// CountStatus returns the number of members in the given status.
func (t *Team) CountStatus(s PlayerStatus) int {
	n := 0
	for _, p := range t.members {
		if p.status == s {
			n++
		}
	}
	return n
}

func (t *Team) index(id uuid.UUID) int {
	for i, p := range t.members {
		if p.id == id {
			return i
		}
	}
	return -1
}

// add appends the participant. The caller removes it from any previous team.
func (t *Team) add(p *Participant) {
	if t.index(p.id) >= 0 {
		return
	}
	t.members = append(t.members, p)
}

func (t *Team) remove(id uuid.UUID) bool {
	i := t.index(id)
	if i < 0 {
		return false
	}
	t.members = append(t.members[:i], t.members[i+1:]...)
	return true
}

func (t *Team) clear() {
	t.members = nil
}
