package arena

import (
	"context"

	"github.com/google/uuid"
)

// Message is a notification for participants. The core only passes keys and
// arguments; the host owns formatting and localisation.
type Message struct {
	Key  string
	Args []any
}

// Msg creates a message with positional arguments.
func Msg(key string, args ...any) Message {
	return Message{Key: key, Args: args}
}

// ScoreEntry is one line of a scoreboard.
type ScoreEntry struct {
	Name  string
	Value float64
}

// Teleporter places participants in the world. Teleport is fire-and-forget:
// the host may defer it.
type Teleporter interface {
	// Teleport moves the participant to the location.
	Teleport(id uuid.UUID, loc Location) error

	// Position returns the participant's last known location.
	Position(id uuid.UUID) (Location, bool)
}

// Inventory applies loadouts.
type Inventory interface {
	// ClearInventory removes every item and armour piece.
	ClearInventory(id uuid.UUID) error

	// Equip applies the named loadout. Unknown loadouts return an error.
	Equip(id uuid.UUID, loadout string) error
}

// Messenger delivers notifications.
type Messenger interface {
	// Broadcast sends a message to every participant of an arena.
	Broadcast(arena string, msg Message)

	// MessageTo sends a message to one participant.
	MessageTo(id uuid.UUID, msg Message)
}

// Scoreboard presents scores. It is called after every score or lives mutation.
type Scoreboard interface {
	ScoreboardUpdate(arena string, entries []ScoreEntry)
}

// Host is the subset of the world layer the core needs. It is implemented by
// the dragonfly package for live servers and mocked in tests.
type Host interface {
	Teleporter
	Inventory
	Messenger
	Scoreboard
}

// StatsSink persists statistics deltas. It is called when a participant fully
// exits a match.
type StatsSink interface {
	RecordStatistics(ctx context.Context, arena string, id uuid.UUID, delta StatDelta) error
}

// nopStats discards statistics.
type nopStats struct{}

func (nopStats) RecordStatistics(context.Context, string, uuid.UUID, StatDelta) error { return nil }
