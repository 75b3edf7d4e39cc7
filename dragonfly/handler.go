package dragonfly

import (
	"github.com/df-mc/dragonfly/server/block/cube"
	"github.com/df-mc/dragonfly/server/entity"
	"github.com/df-mc/dragonfly/server/player"
	"github.com/df-mc/dragonfly/server/world"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"
	"github.com/oriumgames/arena"
)

// Handler forwards player events to the arena manager. Attach one per player
// with p.Handle.
type Handler struct {
	player.NopHandler

	host *Host
	mgr  *arena.Manager
}

// NewHandler creates a handler for a player already tracked by the host.
func NewHandler(host *Host, mgr *arena.Manager) *Handler {
	return &Handler{host: host, mgr: mgr}
}

// Attach tracks the player and installs a handler on it.
func Attach(p *player.Player, w *world.World, host *Host, mgr *arena.Manager) {
	host.Track(p, w)
	p.Handle(NewHandler(host, mgr))
}

func (h *Handler) HandleMove(ctx *player.Context, newPos mgl64.Vec3, newRot cube.Rotation) {
	h.host.moved(ctx.Val().UUID(), newPos, newRot, nil)
}

func (h *Handler) HandleTeleport(ctx *player.Context, pos mgl64.Vec3) {
	p := ctx.Val()
	h.host.moved(p.UUID(), pos, p.Rotation(), nil)
}

func (h *Handler) HandleChangeWorld(p *player.Player, _, after *world.World) {
	h.host.moved(p.UUID(), p.Position(), p.Rotation(), after)
}

func (h *Handler) HandleDeath(p *player.Player, src world.DamageSource, keepInv *bool) {
	if _, ok := h.host.Arena(p.UUID()); !ok {
		return
	}
	var killer *uuid.UUID
	if atk, ok := src.(entity.AttackDamageSource); ok {
		if k, ok := atk.Attacker.(*player.Player); ok {
			id := k.UUID()
			killer = &id
		}
	}
	if h.mgr.OnParticipantDeath("", p.UUID(), deathReason(src), killer) {
		*keepInv = true
	}
}

// HandleRespawn keeps arena players where they died until the arena places
// them.
func (h *Handler) HandleRespawn(p *player.Player, pos *mgl64.Vec3, _ **world.World) {
	if _, ok := h.host.Arena(p.UUID()); !ok {
		return
	}
	if loc, ok := h.host.Position(p.UUID()); ok {
		*pos = loc.Pos
	}
}

func (h *Handler) HandleItemUseOnBlock(ctx *player.Context, pos cube.Pos, _ cube.Face, _ mgl64.Vec3) {
	p := ctx.Val()
	if _, ok := h.host.Arena(p.UUID()); !ok {
		return
	}
	loc := arena.Location{Pos: pos.Vec3Centre()}
	if cur, ok := h.host.Position(p.UUID()); ok {
		loc.World = cur.World
	}
	if h.mgr.OnParticipantInteract("", p.UUID(), loc) {
		ctx.Cancel()
	}
}

func (h *Handler) HandleQuit(p *player.Player) {
	h.mgr.Quit(p.UUID())
	h.host.Untrack(p.UUID())
}

// deathReason names the damage source for logs and goals.
func deathReason(src world.DamageSource) string {
	switch src.(type) {
	case entity.AttackDamageSource:
		return "attack"
	case entity.VoidDamageSource:
		return "void"
	case entity.FallDamageSource:
		return "fall"
	case entity.ProjectileDamageSource:
		return "projectile"
	case nil:
		return "unknown"
	default:
		return "other"
	}
}
