package dragonfly

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/df-mc/dragonfly/server/block/cube"
	"github.com/df-mc/dragonfly/server/player"
	"github.com/df-mc/dragonfly/server/player/scoreboard"
	"github.com/df-mc/dragonfly/server/world"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"
	"github.com/oriumgames/arena"
	"golang.org/x/text/language"
)

// maxScoreLines is the number of lines a Bedrock scoreboard shows.
const maxScoreLines = 15

// tracked is what the host knows about an online player.
type tracked struct {
	handle *world.EntityHandle
	name   string
	locale language.Tag
	loc    arena.Location
	arena  string
	calls  *lane
}

// Host implements arena.Host on top of a Dragonfly server.
//
// Every call that touches a player is queued on that player's lane and run
// with ExecWorld there: arena callbacks run on the arena goroutine while
// player handlers block on it, so waiting for a world transaction here would
// deadlock. Calls for one player run in the order they were made.
type Host struct {
	log     *slog.Logger
	catalog *Catalog

	mu      sync.RWMutex
	worlds  map[string]*world.World
	def     *world.World
	kits    map[string]Kit
	players map[uuid.UUID]*tracked
	members map[string]map[uuid.UUID]struct{}

	// wg tracks in-flight world calls.
	wg sync.WaitGroup
}

// HostOption configures a Host.
type HostOption func(*Host)

// WithHostLogger sets the logger.
func WithHostLogger(l *slog.Logger) HostOption {
	return func(h *Host) { h.log = l }
}

// WithCatalog sets the message catalog.
func WithCatalog(c *Catalog) HostOption {
	return func(h *Host) { h.catalog = c }
}

// WithKits replaces the loadouts.
func WithKits(kits map[string]Kit) HostOption {
	return func(h *Host) { h.kits = kits }
}

// NewHost creates a host whose default world is def.
func NewHost(def *world.World, opts ...HostOption) *Host {
	h := &Host{
		log:     slog.Default(),
		catalog: NewCatalog(),
		worlds:  make(map[string]*world.World),
		def:     def,
		kits:    DefaultKits(),
		players: make(map[uuid.UUID]*tracked),
		members: make(map[string]map[uuid.UUID]struct{}),
	}
	for _, opt := range opts {
		opt(h)
	}
	if def != nil {
		h.worlds[def.Name()] = def
	}
	return h
}

// AddWorld makes a world addressable by name in locations.
func (h *Host) AddWorld(w *world.World) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.worlds[w.Name()] = w
}

// Track starts tracking a player that joined the server.
func (h *Host) Track(p *player.Player, w *world.World) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.players[p.UUID()] = &tracked{
		handle: p.H(),
		name:   p.Name(),
		locale: p.Locale(),
		loc:    arena.Location{World: w.Name(), Pos: p.Position(), Rotation: p.Rotation()},
		calls:  &lane{},
	}
}

// Untrack forgets a player that left the server.
func (h *Host) Untrack(id uuid.UUID) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if t, ok := h.players[id]; ok && t.arena != "" {
		delete(h.members[t.arena], id)
	}
	delete(h.players, id)
}

// Wait blocks until every dispatched world call finished.
func (h *Host) Wait() {
	h.wg.Wait()
}

// moved updates the cached location of a player.
func (h *Host) moved(id uuid.UUID, pos mgl64.Vec3, rot cube.Rotation, w *world.World) {
	h.mu.Lock()
	defer h.mu.Unlock()
	t, ok := h.players[id]
	if !ok {
		return
	}
	t.loc.Pos = pos
	t.loc.Rotation = rot
	if w != nil {
		t.loc.World = w.Name()
	}
}

// Position returns the last known location of a player.
func (h *Host) Position(id uuid.UUID) (arena.Location, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	t, ok := h.players[id]
	if !ok {
		return arena.Location{}, false
	}
	return t.loc, true
}

// Teleport moves a player, transferring it to another world first if the
// location names one.
func (h *Host) Teleport(id uuid.UUID, loc arena.Location) error {
	target, err := h.world(loc.World)
	if err != nil {
		return err
	}
	h.mu.Lock()
	if t, ok := h.players[id]; ok {
		t.loc = loc
		t.loc.World = target.Name()
	}
	h.mu.Unlock()

	return h.exec(id, func(tx *world.Tx, p *player.Player) {
		if tx.World() == target {
			place(p, loc)
			return
		}
		handle := tx.RemoveEntity(p)
		target.Exec(func(tx *world.Tx) {
			if e, ok := tx.AddEntity(handle).(*player.Player); ok {
				place(e, loc)
			}
		})
	})
}

func place(p *player.Player, loc arena.Location) {
	p.Teleport(loc.Pos)
	if loc.Rotation != (cube.Rotation{}) {
		cur := p.Rotation()
		p.Move(mgl64.Vec3{}, loc.Rotation.Yaw()-cur.Yaw(), loc.Rotation.Pitch()-cur.Pitch())
	}
}

// ClearInventory empties inventory and armour.
func (h *Host) ClearInventory(id uuid.UUID) error {
	return h.exec(id, func(_ *world.Tx, p *player.Player) {
		p.Inventory().Clear()
		p.Armour().Clear()
		p.Heal(p.MaxHealth(), nil)
		p.Extinguish()
	})
}

// Equip applies a kit.
func (h *Host) Equip(id uuid.UUID, loadout string) error {
	kit, ok := h.kit(loadout)
	if !ok {
		return fmt.Errorf("equip %s: unknown kit %q", id, loadout)
	}
	return h.exec(id, func(_ *world.Tx, p *player.Player) {
		kit.Apply(p)
	})
}

// Give hands out a reward kit. It implements module.Giver.
func (h *Host) Give(id uuid.UUID, reward string) error {
	kit, ok := h.kit(reward)
	if !ok {
		return fmt.Errorf("give %s: unknown reward %q", id, reward)
	}
	return h.exec(id, func(_ *world.Tx, p *player.Player) {
		kit.Give(p)
	})
}

// Broadcast sends a message to every player in the arena.
func (h *Host) Broadcast(name string, msg arena.Message) {
	for _, id := range h.membersOf(name) {
		h.MessageTo(id, msg)
	}
}

// MessageTo sends a message rendered in the player's language.
func (h *Host) MessageTo(id uuid.UUID, msg arena.Message) {
	h.mu.RLock()
	t, ok := h.players[id]
	var tag language.Tag
	if ok {
		tag = t.locale
	}
	h.mu.RUnlock()
	if !ok {
		return
	}
	text := h.catalog.Render(tag, msg)
	_ = h.exec(id, func(_ *world.Tx, p *player.Player) {
		p.Message(text)
	})
}

// ScoreboardUpdate shows the entries to every player in the arena. Nil
// entries remove the scoreboard.
func (h *Host) ScoreboardUpdate(name string, entries []arena.ScoreEntry) {
	lines := make([]string, 0, min(len(entries), maxScoreLines))
	for _, e := range entries {
		if len(lines) == maxScoreLines {
			break
		}
		lines = append(lines, fmt.Sprintf("§7%s: §f%g", e.Name, e.Value))
	}
	for _, id := range h.membersOf(name) {
		h.showScores(id, name, lines)
	}
}

func (h *Host) showScores(id uuid.UUID, name string, lines []string) {
	_ = h.exec(id, func(_ *world.Tx, p *player.Player) {
		if len(lines) == 0 {
			p.RemoveScoreboard()
			return
		}
		sb := scoreboard.New("§l" + name)
		for i, l := range lines {
			sb.Set(i, l)
		}
		p.SendScoreboard(sb)
	})
}

// Listen keeps the host's view of arena membership current. Register it on
// the manager.
func (h *Host) Listen(ev any) {
	switch ev := ev.(type) {
	case arena.EventJoin:
		h.join(ev.Arena, ev.Participant.ID)
		h.gameMode(ev.Participant.ID, world.GameModeSurvival)
	case arena.EventSpectate:
		h.join(ev.Arena, ev.Participant.ID)
		h.gameMode(ev.Participant.ID, world.GameModeSpectator)
	case arena.EventRelay:
		if ev.Status == arena.PlayerWatch {
			h.gameMode(ev.Participant.ID, world.GameModeSpectator)
		} else {
			h.gameMode(ev.Participant.ID, world.GameModeSurvival)
		}
	case arena.EventDeath:
		if ev.Verdict == arena.VerdictEliminate {
			h.gameMode(ev.Participant.ID, world.GameModeSpectator)
		}
	case arena.EventLeave:
		if ev.Soft {
			return
		}
		h.leave(ev.Arena, ev.Participant.ID)
	case arena.EventReset:
		for _, id := range h.membersOf(ev.Arena) {
			h.leave(ev.Arena, id)
		}
	}
}

func (h *Host) join(name string, id uuid.UUID) {
	h.mu.Lock()
	defer h.mu.Unlock()
	t, ok := h.players[id]
	if !ok {
		return
	}
	if t.arena != "" && t.arena != name {
		delete(h.members[t.arena], id)
	}
	t.arena = name
	set, ok := h.members[name]
	if !ok {
		set = make(map[uuid.UUID]struct{})
		h.members[name] = set
	}
	set[id] = struct{}{}
}

func (h *Host) leave(name string, id uuid.UUID) {
	h.mu.Lock()
	delete(h.members[name], id)
	if t, ok := h.players[id]; ok && t.arena == name {
		t.arena = ""
	}
	h.mu.Unlock()

	h.showScores(id, name, nil)
	h.gameMode(id, world.GameModeSurvival)
}

func (h *Host) gameMode(id uuid.UUID, mode world.GameMode) {
	_ = h.exec(id, func(_ *world.Tx, p *player.Player) {
		p.SetGameMode(mode)
	})
}

// Arena returns the arena a tracked player is in.
func (h *Host) Arena(id uuid.UUID) (string, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	t, ok := h.players[id]
	if !ok || t.arena == "" {
		return "", false
	}
	return t.arena, true
}

func (h *Host) membersOf(name string) []uuid.UUID {
	h.mu.RLock()
	defer h.mu.RUnlock()
	ids := make([]uuid.UUID, 0, len(h.members[name]))
	for id := range h.members[name] {
		ids = append(ids, id)
	}
	return ids
}

func (h *Host) kit(name string) (Kit, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	k, ok := h.kits[name]
	return k, ok
}

func (h *Host) world(name string) (*world.World, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if name == "" {
		if h.def == nil {
			return nil, fmt.Errorf("no default world")
		}
		return h.def, nil
	}
	w, ok := h.worlds[name]
	if !ok {
		return nil, fmt.Errorf("unknown world %q", name)
	}
	return w, nil
}

// exec queues fn to run with the player inside its world transaction. A
// transfer to another world leaves the handle worldless until it is added
// there; the next ExecWorld on the lane blocks until then.
func (h *Host) exec(id uuid.UUID, fn func(tx *world.Tx, p *player.Player)) error {
	h.mu.RLock()
	t, ok := h.players[id]
	h.mu.RUnlock()
	if !ok {
		return fmt.Errorf("player %s is not online", id)
	}
	handle := t.handle
	h.wg.Add(1)
	t.calls.submit(func() {
		defer h.wg.Done()
		ok := handle.ExecWorld(func(tx *world.Tx, e world.Entity) {
			if p, ok := e.(*player.Player); ok {
				fn(tx, p)
			}
		})
		if !ok {
			h.log.Debug("arena: player left before world call", "player", id)
		}
	})
	return nil
}
