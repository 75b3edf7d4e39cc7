package arena

import (
	"fmt"
	"log/slog"
	"runtime/debug"
	"slices"
)

// Workflow sequences module and goal hooks for every lifecycle trigger.
//
// Modules are visited by descending priority, ties in registration order.
// Check hooks abort the chain with the first error. Handle hooks stop at the
// first module that takes ownership. The goal hook runs afterwards either way,
// except for triggers the goal decides alone (death verdicts and the end).
//
// A panicking hook is recovered and logged. It counts as "no rejection" for a
// check and "not handled" for a handle, so the remaining modules still run.
type Workflow struct {
	log     *slog.Logger
	modules []Module
}

// NewWorkflow creates a workflow over the modules.
func NewWorkflow(log *slog.Logger, modules ...Module) *Workflow {
	if log == nil {
		log = slog.Default()
	}
	w := &Workflow{log: log}
	for _, m := range modules {
		w.Add(m)
	}
	return w
}

// Add registers a module.
func (w *Workflow) Add(m Module) {
	w.modules = append(w.modules, m)
	slices.SortStableFunc(w.modules, func(a, b Module) int {
		return b.Priority() - a.Priority()
	})
}

// Modules returns the modules in dispatch order.
func (w *Workflow) Modules() []Module {
	return slices.Clone(w.modules)
}

// Module returns the module with the given name.
func (w *Workflow) Module(name string) (Module, bool) {
	for _, m := range w.modules {
		if m.Name() == name {
			return m, true
		}
	}
	return nil, false
}

// CheckJoin runs the join checks of modules and then the goal.
func (w *Workflow) CheckJoin(a *Arena, p *Participant, team *Team) error {
	for _, m := range w.modules {
		if c, ok := m.(JoinChecker); ok {
			if err := w.check(m.Name(), func() error { return c.CheckJoin(a, p, team) }); err != nil {
				return err
			}
		}
	}
	return w.check("goal:"+a.goal.Name(), func() error { return a.goal.CheckJoin(p, team) })
}

// Join runs the join handlers and initialises the goal entry. It reports
// whether a module owned the join.
func (w *Workflow) Join(a *Arena, p *Participant) bool {
	owned := w.first(func(m Module) (bool, bool) {
		h, ok := m.(JoinHandler)
		if !ok {
			return false, false
		}
		return h.HandleJoin(a, p), true
	})
	w.goal(a, "OnEnter", func() { a.goal.OnEnter(p) })
	return owned
}

// CheckStart runs the start checks of modules.
func (w *Workflow) CheckStart(a *Arena) error {
	for _, m := range w.modules {
		if c, ok := m.(StartChecker); ok {
			if err := w.check(m.Name(), func() error { return c.CheckStart(a) }); err != nil {
				return err
			}
		}
	}
	return nil
}

// Start runs the start handlers and seeds the goal. It reports whether a
// module owned participant placement.
func (w *Workflow) Start(a *Arena) bool {
	owned := w.first(func(m Module) (bool, bool) {
		h, ok := m.(StartHandler)
		if !ok {
			return false, false
		}
		return h.HandleStart(a), true
	})
	w.goal(a, "OnStart", a.goal.OnStart)
	return owned
}

// Death asks the goal for its verdict and then offers the death to modules.
// The verdict is the goal's alone.
func (w *Workflow) Death(a *Arena, p *Participant, cause DeathCause) (Verdict, bool) {
	verdict := VerdictRespawn
	w.goal(a, "OnDeath", func() { verdict = a.goal.OnDeath(p, cause) })
	owned := w.first(func(m Module) (bool, bool) {
		h, ok := m.(DeathHandler)
		if !ok {
			return false, false
		}
		return h.HandleDeath(a, p, cause, verdict), true
	})
	return verdict, owned
}

// Respawn runs the respawn handlers. The goal hook runs after placement
// through AfterRespawn.
func (w *Workflow) Respawn(a *Arena, p *Participant) bool {
	return w.first(func(m Module) (bool, bool) {
		h, ok := m.(RespawnHandler)
		if !ok {
			return false, false
		}
		return h.HandleRespawn(a, p), true
	})
}

// AfterRespawn notifies the goal about a respawn.
func (w *Workflow) AfterRespawn(a *Arena, p *Participant) {
	w.goal(a, "OnRespawn", func() { a.goal.OnRespawn(p) })
}

// Interact offers an interaction to modules and then to the goal. It reports
// whether anyone consumed it.
func (w *Workflow) Interact(a *Arena, p *Participant, loc Location) bool {
	owned := w.first(func(m Module) (bool, bool) {
		h, ok := m.(InteractHandler)
		if !ok {
			return false, false
		}
		return h.HandleInteract(a, p, loc), true
	})
	consumed := false
	w.goal(a, "OnInteract", func() { consumed = a.goal.OnInteract(p, loc) })
	return owned || consumed
}

// CanSpectate reports whether any module owns spectating.
func (w *Workflow) CanSpectate() bool {
	for _, m := range w.modules {
		if _, ok := m.(SpectateHandler); ok {
			return true
		}
	}
	return false
}

// Spectate offers a new watcher to the spectate handlers.
func (w *Workflow) Spectate(a *Arena, p *Participant) bool {
	return w.first(func(m Module) (bool, bool) {
		h, ok := m.(SpectateHandler)
		if !ok {
			return false, false
		}
		return h.HandleSpectate(a, p), true
	})
}

// End asks modules in order to claim the end sequence. The first claim wins.
func (w *Workflow) End(a *Arena, result *Result) (delay int, claimed bool) {
	for _, m := range w.modules {
		c, ok := m.(EndClaimer)
		if !ok {
			continue
		}
		w.guard(m.Name(), "ClaimEnd", func() { delay, claimed = c.ClaimEnd(a, result) })
		if claimed {
			w.log.Debug("arena: end sequence claimed", "arena", a.Name(), "module", m.Name())
			return delay, true
		}
	}
	return 0, false
}

// Reward runs every rewarder.
func (w *Workflow) Reward(a *Arena, result Result) {
	for _, m := range w.modules {
		if r, ok := m.(Rewarder); ok {
			w.guard(m.Name(), "Reward", func() { r.Reward(a, result) })
		}
	}
}

// Leave notifies modules and the goal about a participant that left.
func (w *Workflow) Leave(a *Arena, p *Participant) {
	for _, m := range w.modules {
		if h, ok := m.(LeaveHandler); ok {
			w.guard(m.Name(), "HandleLeave", func() { h.HandleLeave(a, p) })
		}
	}
	w.goal(a, "OnLeave", func() { a.goal.OnLeave(p) })
}

// SoftLeave notifies modules and the goal about a participant that stepped
// out softly.
func (w *Workflow) SoftLeave(a *Arena, p *Participant) {
	for _, m := range w.modules {
		if h, ok := m.(SoftLeaveHandler); ok {
			w.guard(m.Name(), "HandleSoftLeave", func() { h.HandleSoftLeave(a, p) })
		}
	}
	if g, ok := a.goal.(SoftLeaver); ok {
		w.goal(a, "OnSoftLeave", func() { g.OnSoftLeave(p) })
	}
}

// Reset clears the goal and notifies modules.
func (w *Workflow) Reset(a *Arena, force bool) {
	w.goal(a, "Reset", func() { a.goal.Reset(force) })
	for _, m := range w.modules {
		if h, ok := m.(ResetHandler); ok {
			w.guard(m.Name(), "HandleReset", func() { h.HandleReset(a, force) })
		}
	}
}

// first visits modules in order until one takes ownership. visit returns
// whether the module owned the action and whether it implements the hook.
func (w *Workflow) first(visit func(m Module) (owned, implemented bool)) bool {
	for _, m := range w.modules {
		owned, implemented := false, false
		w.guard(m.Name(), "handle", func() { owned, implemented = visit(m) })
		if implemented && owned {
			return true
		}
	}
	return false
}

// check runs a check hook. A panic is logged and ignored.
func (w *Workflow) check(name string, fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			w.log.Error("arena: panic in check hook", "module", name, "panic", fmt.Sprint(r), "stack", string(debug.Stack()))
			err = nil
		}
	}()
	return fn()
}

func (w *Workflow) goal(a *Arena, hook string, fn func()) {
	w.guard("goal:"+a.goal.Name(), hook, fn)
}

// guard runs a hook with panic recovery.
func (w *Workflow) guard(name, hook string, fn func()) {
	defer func() {
		if r := recover(); r != nil {
			w.log.Error("arena: panic in hook", "module", name, "hook", hook, "panic", fmt.Sprint(r), "stack", string(debug.Stack()))
		}
	}()
	fn()
}
