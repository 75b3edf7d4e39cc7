package arena

import (
	"context"
	"errors"
	"log/slog"
	"slices"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

// statsTimeout bounds a single statistics write.
const statsTimeout = 5 * time.Second

// Arena is the controller of one match. It owns the match status, the teams
// and every timer of the match, and runs lifecycle triggers through its
// Workflow.
//
// Arena is not safe for concurrent use. All methods, scheduled callbacks
// included, must run on one goroutine; Manager funnels host calls through its
// executor for that reason.
type Arena struct {
	name string
	cfg  Config
	log  *slog.Logger

	host     Host
	stats    StatsSink
	sched    Scheduler
	repo     *Participants
	spawns   *SpawnSelector
	goal     Goal
	workflow *Workflow

	teams    []*Team
	watchers map[uuid.UUID]*Participant

	status    Status
	locked    bool
	matchID   uuid.UUID
	startedAt time.Time

	// Timers owned by the arena. Each is cancelled before it is replaced.
	countdown     *TaskHandle
	countdownLeft int
	timeLimit     *TaskHandle
	endTimer      *TaskHandle
	respawns      map[uuid.UUID]*TaskHandle

	// history holds the spawns handed out per pool during the current match.
	history map[string][]Location

	result    *Result
	rewarded  bool
	resetting bool

	listeners []Listener
}

// Name returns the arena name.
func (a *Arena) Name() string { return a.name }

// Config returns the arena configuration.
func (a *Arena) Config() Config { return a.cfg }

// Status returns the match status.
func (a *Arena) Status() Status { return a.status }

// Goal returns the active goal.
func (a *Arena) Goal() Goal { return a.goal }

// Workflow returns the arena's workflow.
func (a *Arena) Workflow() *Workflow { return a.workflow }

// Host returns the host collaborators.
func (a *Arena) Host() Host { return a.host }

// Scheduler returns the scheduler timers are registered with.
func (a *Arena) Scheduler() Scheduler { return a.sched }

// Spawns returns the spawn selector.
func (a *Arena) Spawns() *SpawnSelector { return a.spawns }

// Logger returns the arena's logger.
func (a *Arena) Logger() *slog.Logger { return a.log }

// MatchID returns the id of the running match, or uuid.Nil.
func (a *Arena) MatchID() uuid.UUID { return a.matchID }

// StartedAt returns when the running match started.
func (a *Arena) StartedAt() time.Time { return a.startedAt }

// Locked reports whether joining is disabled.
func (a *Arena) Locked() bool { return a.locked }

// Lock disables joining.
func (a *Arena) Lock() { a.locked = true }

// Unlock enables joining.
func (a *Arena) Unlock() { a.locked = false }

// Listen registers a lifecycle listener.
func (a *Arena) Listen(l Listener) {
	a.listeners = append(a.listeners, l)
}

// Result returns the result of the last ended match, if it has not been reset.
func (a *Arena) Result() (Result, bool) {
	if a.result == nil {
		return Result{}, false
	}
	return *a.result, true
}

// Teams returns the teams in configuration order.
func (a *Arena) Teams() []*Team {
	return slices.Clone(a.teams)
}

// Team returns the team with the given name.
func (a *Arena) Team(name string) (*Team, bool) {
	for _, t := range a.teams {
		if t.name == name {
			return t, true
		}
	}
	return nil, false
}

// Members returns the team members in team order.
func (a *Arena) Members() []*Participant {
	return a.teamMembers()
}

// Watchers returns the participants that watch without being on a team.
func (a *Arena) Watchers() []*Participant {
	out := make([]*Participant, 0, len(a.watchers))
	for _, p := range a.watchers {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key() < out[j].Key() })
	return out
}

// Participant returns the record of a participant in this arena.
func (a *Arena) Participant(id uuid.UUID) (*Participant, bool) {
	p, ok := a.repo.Lookup(id)
	if !ok || p.arena != a {
		return nil, false
	}
	return p, true
}

// ParticipantByKey returns the record of a participant in this arena by key.
func (a *Arena) ParticipantByKey(key string) (*Participant, bool) {
	id, err := uuid.Parse(key)
	if err != nil {
		return nil, false
	}
	return a.Participant(id)
}

// Fighters returns the members whose status counts towards the result.
func (a *Arena) Fighters() []*Participant {
	var out []*Participant
	for _, t := range a.teams {
		out = append(out, t.ActiveMembers()...)
	}
	return out
}

func (a *Arena) teamMembers() []*Participant {
	var out []*Participant
	for _, t := range a.teams {
		out = append(out, t.members...)
	}
	return out
}

func (a *Arena) queuedMembers() []*Participant {
	var out []*Participant
	for _, t := range a.teams {
		out = append(out, t.QueuedMembers()...)
	}
	return out
}

func (a *Arena) memberCount() int {
	n := 0
	for _, t := range a.teams {
		n += t.Len()
	}
	return n
}

// empty reports whether nobody is left in the arena.
func (a *Arena) empty() bool {
	return a.memberCount() == 0 && len(a.watchers) == 0
}

// SetStatus moves a participant to a new status. Illegal transitions are
// ignored with a warning and reported as false.
func (a *Arena) SetStatus(p *Participant, s PlayerStatus) bool {
	if p.status == s {
		return true
	}
	if !CanTransition(p.status, s) {
		a.log.Warn("arena: illegal status transition",
			"arena", a.name, "participant", p.Name(), "from", p.status, "to", s)
		return false
	}
	p.status = s
	return true
}

// Broadcast sends a message to everyone in the arena.
func (a *Arena) Broadcast(msg Message) {
	a.host.Broadcast(a.name, msg)
}

// Message sends a message to one participant.
func (a *Arena) Message(p *Participant, msg Message) {
	a.host.MessageTo(p.id, msg)
}

// Teleport moves a participant. Failures are logged and the participant keeps
// its status.
func (a *Arena) Teleport(p *Participant, loc Location) {
	if err := a.host.Teleport(p.id, loc); err != nil {
		a.log.Warn("arena: teleport failed", "arena", a.name, "participant", p.Name(), "location", loc.String(), "error", err)
	}
}

// Place picks a spawn of the pool for the participant and teleports it there.
func (a *Arena) Place(p *Participant, pool string) error {
	loc, err := a.pick(pool)
	if err != nil {
		return err
	}
	a.Teleport(p, loc)
	return nil
}

// pick selects a spawn of the pool with the configured strategy and records it.
func (a *Arena) pick(pool string) (Location, error) {
	loc, err := a.spawns.Pick(pool, a.cfg.SpawnStrategy, a.history[pool])
	if err != nil {
		return Location{}, err
	}
	a.history[pool] = append(a.history[pool], loc)
	return loc, nil
}

// loungePool returns the pool a team member waits in.
func (a *Arena) loungePool(t *Team) string {
	if pool := TeamLoungePool(t.name); a.spawns.Has(pool) {
		return pool
	}
	return PoolLounge
}

// Equip clears the inventory and applies the participant's loadout.
func (a *Arena) Equip(p *Participant) {
	if err := a.host.ClearInventory(p.id); err != nil {
		a.log.Warn("arena: clear inventory failed", "arena", a.name, "participant", p.Name(), "error", err)
	}
	if p.loadout == "" {
		return
	}
	if err := a.host.Equip(p.id, p.loadout); err != nil {
		a.log.Warn("arena: equip failed", "arena", a.name, "participant", p.Name(), "loadout", p.loadout, "error", err)
	}
}

// ScoresChanged pushes the goal's score snapshot to the scoreboard. Goals call
// it after every mutation of their lives or scores.
func (a *Arena) ScoresChanged() {
	scores := a.goal.Scores()
	entries := make([]ScoreEntry, 0, len(scores))
	for key, v := range scores {
		name := key
		if p, ok := a.ParticipantByKey(key); ok {
			name = p.Name()
		}
		entries = append(entries, ScoreEntry{Name: name, Value: v})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Value != entries[j].Value {
			return entries[i].Value > entries[j].Value
		}
		return entries[i].Name < entries[j].Name
	})
	a.host.ScoreboardUpdate(a.name, entries)
}

func (a *Arena) emit(ev any) {
	for _, l := range a.listeners {
		func() {
			defer func() {
				if r := recover(); r != nil {
					a.log.Error("arena: panic in listener", "arena", a.name, "panic", r)
				}
			}()
			l(ev)
		}()
	}
}

// Join adds a participant to a team. An empty team name picks the team with
// the fewest members. Joining a running match requires JoinInBattle.
func (a *Arena) Join(p *Participant, teamName string) error {
	if p.arena != nil {
		return Reject(CodeAlreadyInArena, "already in an arena", p.arena.name)
	}
	if a.locked {
		return Reject(CodeArenaLocked, "arena is locked", a.name)
	}
	inBattle := false
	switch a.status {
	case StatusFighting:
		if !a.cfg.JoinInBattle {
			return Reject(CodeArenaRunning, "match is running", a.name)
		}
		inBattle = true
	case StatusEnding:
		return Reject(CodeArenaRunning, "match is ending", a.name)
	}
	if a.cfg.MaxPlayers > 0 && a.memberCount() >= a.cfg.MaxPlayers {
		return Reject(CodeArenaFull, "arena is full", a.name)
	}

	team, err := a.resolveTeam(teamName)
	if err != nil {
		return err
	}
	if err := a.workflow.CheckJoin(a, p, team); err != nil {
		return err
	}

	// Resolve the destination before touching any state, so a missing spawn
	// rejects the join cleanly.
	pool := a.loungePool(team)
	if inBattle {
		pool = team.name
	}
	dest, err := a.spawns.Pick(pool, a.cfg.SpawnStrategy, a.history[pool])
	if err != nil {
		return err
	}

	if loc, ok := a.host.Position(p.id); ok {
		p.saved, p.hasSaved = loc, true
	}
	p.arena = a
	p.team = team
	p.mayRespawn = true
	p.mayDrop = a.cfg.DropOnDeath
	p.relaying = false
	team.add(p)
	a.SetStatus(p, PlayerLounge)
	if inBattle {
		if p.loadout == "" {
			p.loadout = a.defaultLoadout()
		}
		a.SetStatus(p, PlayerFight)
		p.stats.Played = 1
		a.history[pool] = append(a.history[pool], dest)
	}

	if err := a.host.ClearInventory(p.id); err != nil {
		a.log.Warn("arena: clear inventory failed", "arena", a.name, "participant", p.Name(), "error", err)
	}
	owned := a.workflow.Join(a, p)
	if !owned {
		a.Teleport(p, dest)
		if inBattle {
			a.Equip(p)
		}
	}

	a.log.Info("arena: participant joined", "arena", a.name, "participant", p.Name(), "team", team.name)
	a.emit(EventJoin{Arena: a.name, Participant: identity(p), Team: team.name, InBattle: inBattle})
	a.Broadcast(Msg("arena.joined", p.Name(), team.name))
	a.ScoresChanged()

	if a.status == StatusIdle && a.cfg.AutoCountdown && a.memberCount() >= a.cfg.MinPlayers {
		if err := a.RequestCountdown(); err != nil {
			a.log.Debug("arena: auto countdown not started", "arena", a.name, "error", err)
		}
	}
	return nil
}

// resolveTeam finds the team to join.
func (a *Arena) resolveTeam(name string) (*Team, error) {
	if a.cfg.FreeForAll {
		t := a.teams[0]
		if t.Full() {
			return nil, Reject(CodeArenaFull, "arena is full", a.name)
		}
		return t, nil
	}
	if name != "" {
		t, ok := a.Team(name)
		if !ok {
			return nil, Reject(CodeTeamUnknown, "unknown team", name)
		}
		if t.Full() {
			return nil, Reject(CodeTeamFull, "team is full", name)
		}
		return t, nil
	}
	var best *Team
	for _, t := range a.teams {
		if t.Full() {
			continue
		}
		if best == nil || t.Len() < best.Len() {
			best = t
		}
	}
	if best == nil {
		return nil, Reject(CodeArenaFull, "every team is full", a.name)
	}
	return best, nil
}

// Ready marks a lounging participant as ready and re-evaluates readiness. A
// hard pass starts the match, a soft pass starts the countdown.
func (a *Arena) Ready(p *Participant) error {
	if p.arena != a {
		return Reject(CodeNotInArena, "not in this arena", a.name)
	}
	if a.status != StatusIdle && a.status != StatusCountdown {
		return Reject(CodeStatusForbidden, "match is running", a.name)
	}
	if p.status == PlayerReady {
		return nil
	}
	if p.status != PlayerLounge || !a.SetStatus(p, PlayerReady) {
		return Reject(CodeStatusForbidden, "cannot ready now", p.status.String())
	}
	a.emit(EventReady{Arena: a.name, Participant: identity(p)})
	a.Broadcast(Msg("arena.ready", p.Name()))

	r := a.Evaluate(false)
	switch r.Outcome {
	case ReadyHard:
		if _, err := a.Start(false); err != nil {
			a.Message(p, notice(err))
		}
	case ReadySoft:
		if a.status == StatusIdle {
			if err := a.RequestCountdown(); err != nil {
				a.Message(p, notice(err))
			}
		}
	default:
		a.Message(p, r.Err.Notice())
	}
	return nil
}

// ChooseLoadout selects a loadout for the participant. Outside a running
// match only; dead participants get it on respawn.
func (a *Arena) ChooseLoadout(p *Participant, name string) error {
	if p.arena != a {
		return Reject(CodeNotInArena, "not in this arena", a.name)
	}
	if !a.cfg.HasLoadout(name) {
		return Reject(CodeLoadoutUnknown, "unknown loadout", name)
	}
	switch p.status {
	case PlayerLounge, PlayerReady, PlayerDead:
	default:
		return Reject(CodeStatusForbidden, "cannot change loadout now", p.status.String())
	}
	for _, l := range a.cfg.Loadouts {
		if strings.EqualFold(l, name) {
			p.loadout = l
			break
		}
	}
	a.Message(p, Msg("arena.loadout_chosen", p.loadout))
	return nil
}

// RequestCountdown starts the countdown towards the match start. It announces
// the remaining seconds and evaluates readiness on expiry.
func (a *Arena) RequestCountdown() error {
	switch a.status {
	case StatusCountdown:
		return nil
	case StatusFighting, StatusEnding:
		return Reject(CodeAlreadyRunning, "match is already running", a.name)
	}
	seconds := a.cfg.CountdownTicks / TicksPerSecond
	if seconds < 1 {
		seconds = 1
	}
	a.status = StatusCountdown
	a.countdownLeft = seconds
	a.countdown.Cancel()
	a.countdown = a.sched.ScheduleRepeating(TicksPerSecond, a.countdownTick)

	a.emit(EventCountdown{Arena: a.name, Seconds: seconds})
	a.Broadcast(Msg("arena.countdown", seconds))
	return nil
}

func (a *Arena) countdownTick() {
	if a.status != StatusCountdown {
		a.countdown.Cancel()
		return
	}
	a.countdownLeft--
	if a.countdownLeft > 0 {
		if a.countdownLeft <= 5 || a.countdownLeft%10 == 0 {
			a.Broadcast(Msg("arena.countdown", a.countdownLeft))
		}
		a.emit(EventCountdown{Arena: a.name, Seconds: a.countdownLeft})
		return
	}
	a.countdown.Cancel()
	a.countdown = nil

	r, err := a.Start(a.cfg.EnforceCountdown)
	if err == nil {
		return
	}
	a.status = StatusIdle
	a.log.Debug("arena: countdown expired without start", "arena", a.name, "outcome", r.Outcome, "error", err)
	a.emit(EventCountdown{Arena: a.name, Cancelled: true})
	a.Broadcast(notice(err))
}

// CancelCountdown stops a running countdown and notifies everyone.
func (a *Arena) CancelCountdown() {
	if a.status != StatusCountdown {
		return
	}
	a.countdown.Cancel()
	a.countdown = nil
	a.status = StatusIdle
	a.emit(EventCountdown{Arena: a.name, Cancelled: true})
	a.Broadcast(Msg("arena.countdown_cancelled"))
}

// Start starts the match after a readiness evaluation. Spawns for every team
// are chosen before any state changes; a missing spawn rejects the start.
func (a *Arena) Start(force bool) (Readiness, error) {
	if a.status == StatusFighting || a.status == StatusEnding {
		err := Reject(CodeAlreadyRunning, "match is already running", a.name)
		return Readiness{Outcome: ReadyReject, Err: err}, err
	}
	r := a.Evaluate(force)
	if !r.CanStart() {
		return r, r.Err
	}
	if err := a.workflow.CheckStart(a); err != nil {
		return Readiness{Outcome: ReadyReject, Err: asError(err)}, err
	}

	placements := make(map[uuid.UUID]Location)
	history := make(map[string][]Location)
	for _, t := range a.teams {
		queued := t.QueuedMembers()
		if len(queued) == 0 {
			continue
		}
		locs, err := a.spawns.Distribute(t.name, a.cfg.SpawnStrategy, len(queued))
		if err != nil {
			return Readiness{Outcome: ReadyReject, Err: asError(err)}, err
		}
		for i, p := range queued {
			placements[p.id] = locs[i]
		}
		history[t.name] = locs
	}

	a.countdown.Cancel()
	a.countdown = nil
	a.status = StatusFighting
	a.matchID = uuid.New()
	a.startedAt = time.Now()
	a.history = history
	a.result = nil
	a.rewarded = false

	members := a.queuedMembers()
	for _, p := range members {
		a.SetStatus(p, PlayerFight)
		p.stats.Played = 1
		a.Equip(p)
	}

	owned := a.workflow.Start(a)
	if !owned {
		for _, p := range members {
			a.Teleport(p, placements[p.id])
		}
	}

	if a.cfg.TimeLimit > 0 {
		a.timeLimit.Cancel()
		a.timeLimit = a.sched.ScheduleOnce(a.cfg.TimeLimit, a.timeUp)
	}

	teams := make([]string, 0, len(a.teams))
	for _, t := range a.teams {
		if t.CountStatus(PlayerFight) > 0 {
			teams = append(teams, t.name)
		}
	}
	a.log.Info("arena: match started", "arena", a.name, "match", a.matchID, "participants", len(members), "forced", force)
	a.emit(EventStart{Arena: a.name, MatchID: a.matchID, Teams: teams})
	a.Broadcast(Msg("arena.started"))
	a.ScoresChanged()
	return r, nil
}

// LeaveOptions controls how a participant leaves.
type LeaveOptions struct {
	// Destination overrides the saved pre-match location.
	Destination *Location

	// Silent suppresses the leave broadcast.
	Silent bool

	// Force skips statistics bookkeeping.
	Force bool

	// Soft keeps the participant's team and status for a following Relay.
	Soft bool
}

// Leave removes a participant from the arena.
func (a *Arena) Leave(p *Participant, opts LeaveOptions) error {
	if p.arena != a {
		return Reject(CodeNotInArena, "not in this arena", a.name)
	}
	who := identity(p)
	teamName := ""
	if p.team != nil {
		teamName = p.team.name
	}

	if opts.Soft {
		p.relaying = true
		a.workflow.SoftLeave(a, p)
		if opts.Destination != nil {
			a.Teleport(p, *opts.Destination)
		}
		a.emit(EventLeave{Arena: a.name, Participant: who, Team: teamName, Soft: true})
		return nil
	}

	prev := p.status
	if p.team != nil {
		p.team.remove(p.id)
	}
	delete(a.watchers, p.id)
	a.cancelRespawn(p.id)
	a.workflow.Leave(a, p)

	if !opts.Force {
		if a.status == StatusFighting && prev.Active() {
			p.stats.Losses++
		}
		a.persist(p)
	}
	a.sendOut(p, opts.Destination)

	if !opts.Silent {
		a.Broadcast(Msg("arena.left", who.Name))
	}
	a.repo.Remove(p.id)
	a.log.Info("arena: participant left", "arena", a.name, "participant", who.Name)
	a.emit(EventLeave{Arena: a.name, Participant: who, Team: teamName})

	switch {
	case a.resetting:
	case a.empty():
		if a.status != StatusIdle || a.hasTimers() {
			a.Reset(false)
		}
	case a.status == StatusCountdown && a.memberCount() < a.cfg.MinPlayers:
		a.CancelCountdown()
	case a.status == StatusFighting:
		a.ScoresChanged()
		a.checkEnd()
	default:
		a.ScoresChanged()
	}
	return nil
}

// sendOut teleports a participant out of the arena and clears its inventory.
func (a *Arena) sendOut(p *Participant, dest *Location) {
	if err := a.host.ClearInventory(p.id); err != nil {
		a.log.Warn("arena: clear inventory failed", "arena", a.name, "participant", p.Name(), "error", err)
	}
	switch {
	case dest != nil:
		a.Teleport(p, *dest)
	case p.hasSaved:
		a.Teleport(p, p.saved)
	default:
		if err := a.Place(p, PoolExit); err != nil {
			a.log.Debug("arena: no exit spawn", "arena", a.name, "participant", p.Name())
		}
	}
}

// Relay re-places a participant that left softly, based on the status it kept.
func (a *Arena) Relay(p *Participant) error {
	if p.arena != a {
		return Reject(CodeNotInArena, "not in this arena", a.name)
	}
	if !p.relaying {
		return nil
	}
	p.relaying = false

	var err error
	switch p.status {
	case PlayerLounge, PlayerReady:
		err = a.Place(p, a.loungePool(p.team))
	case PlayerFight:
		err = a.Place(p, p.team.name)
	case PlayerWatch, PlayerLost:
		err = a.Place(p, PoolSpectator)
	}
	if err != nil {
		a.log.Warn("arena: relay placement failed", "arena", a.name, "participant", p.Name(), "error", err)
	}
	a.emit(EventRelay{Arena: a.name, Participant: identity(p), Status: p.status})
	return nil
}

// Spectate lets a participant watch the arena. It requires a module that owns
// spectating.
func (a *Arena) Spectate(p *Participant) error {
	if p.arena != nil {
		return Reject(CodeAlreadyInArena, "already in an arena", p.arena.name)
	}
	if !a.workflow.CanSpectate() {
		return Reject(CodeSpectateOff, "spectating is disabled", a.name)
	}
	if loc, ok := a.host.Position(p.id); ok {
		p.saved, p.hasSaved = loc, true
	}
	p.arena = a
	a.watchers[p.id] = p
	if !a.workflow.Spectate(a, p) {
		delete(a.watchers, p.id)
		p.clear()
		return Reject(CodeSpectateOff, "spectating is disabled", a.name)
	}
	a.emit(EventSpectate{Arena: a.name, Participant: identity(p)})
	return nil
}

// Watch turns a participant into a watcher and places it at the spectator
// pool. Team members that watch stay on their team until the reset.
func (a *Arena) Watch(p *Participant) error {
	if p.arena != a {
		return Reject(CodeNotInArena, "not in this arena", a.name)
	}
	if !a.SetStatus(p, PlayerWatch) {
		return Reject(CodeStatusForbidden, "cannot watch now", p.status.String())
	}
	if p.team == nil {
		a.watchers[p.id] = p
	}
	a.cancelRespawn(p.id)
	if err := a.host.ClearInventory(p.id); err != nil {
		a.log.Warn("arena: clear inventory failed", "arena", a.name, "participant", p.Name(), "error", err)
	}
	return a.Place(p, PoolSpectator)
}

// Death handles a participant's death. The goal decides about the verdict,
// modules may take over what happens next.
func (a *Arena) Death(p *Participant, cause DeathCause) {
	if p.arena != a || a.status != StatusFighting || p.status != PlayerFight {
		a.log.Debug("arena: ignoring death", "arena", a.name, "participant", p.Name(), "status", p.status)
		return
	}
	p.stats.Deaths++
	var killer *Identity
	if k := cause.Killer; k != nil && k != p && k.arena == a {
		k.stats.Kills++
		id := identity(k)
		killer = &id
	}

	verdict, owned := a.workflow.Death(a, p, cause)
	if !owned {
		switch verdict {
		case VerdictEliminate:
			p.mayRespawn = false
			a.SetStatus(p, PlayerLost)
			if err := a.host.ClearInventory(p.id); err != nil {
				a.log.Warn("arena: clear inventory failed", "arena", a.name, "participant", p.Name(), "error", err)
			}
			if err := a.Place(p, PoolSpectator); err != nil {
				a.sendOut(p, nil)
			}
			a.Message(p, Msg("arena.eliminated"))
		default:
			a.SetStatus(p, PlayerDead)
			a.cancelRespawn(p.id)
			id := p.id
			a.respawns[id] = a.sched.ScheduleOnce(a.cfg.RespawnDelay, func() {
				delete(a.respawns, id)
				if p, ok := a.Participant(id); ok {
					a.Respawn(p)
				}
			})
		}
	}

	if killer != nil {
		a.Broadcast(Msg("arena.killed", p.Name(), killer.Name))
	} else {
		a.Broadcast(Msg("arena.died", p.Name()))
	}
	a.emit(EventDeath{Arena: a.name, Participant: identity(p), Killer: killer, Verdict: verdict})
	a.ScoresChanged()
	a.checkEnd()
}

// Respawn puts a dead participant back into the fight.
func (a *Arena) Respawn(p *Participant) {
	if p.arena != a || a.status != StatusFighting || p.status != PlayerDead {
		return
	}
	a.cancelRespawn(p.id)
	owned := a.workflow.Respawn(a, p)
	a.SetStatus(p, PlayerFight)
	if !owned {
		if err := a.Place(p, p.team.name); err != nil {
			a.log.Warn("arena: respawn placement failed", "arena", a.name, "participant", p.Name(), "error", err)
		}
		a.Equip(p)
	}
	a.workflow.AfterRespawn(a, p)
	a.emit(EventRespawn{Arena: a.name, Participant: identity(p)})
}

// Interact offers an interaction at loc to modules and the goal.
func (a *Arena) Interact(p *Participant, loc Location) bool {
	if p.arena != a || a.status != StatusFighting || p.status != PlayerFight {
		return false
	}
	handled := a.workflow.Interact(a, p, loc)
	if handled {
		a.checkEnd()
	}
	return handled
}

// checkEnd asks the goal whether the match is decided.
func (a *Arena) checkEnd() {
	if a.status == StatusFighting && a.goal.ShouldEnd() {
		a.goal.CommitEnd(false)
	}
}

func (a *Arena) cancelRespawn(id uuid.UUID) {
	if h, ok := a.respawns[id]; ok {
		h.Cancel()
		delete(a.respawns, id)
	}
}

// hasTimers reports whether any arena timer is still pending.
func (a *Arena) hasTimers() bool {
	return a.countdown.Active() || a.timeLimit.Active() || a.endTimer.Active() || len(a.respawns) > 0
}

// persist writes the participant's statistics.
func (a *Arena) persist(p *Participant) {
	delta := p.stats
	p.stats = StatDelta{}
	if delta.IsZero() {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), statsTimeout)
	defer cancel()
	if err := a.stats.RecordStatistics(ctx, a.name, p.id, delta); err != nil {
		a.log.Error("arena: persist statistics", "arena", a.name, "participant", p.Name(), "error", err)
	}
}

// Reset cancels every timer, clears goal and team state, sends everyone out
// and returns the arena to idle. Resetting an idle, empty arena is a no-op.
func (a *Arena) Reset(force bool) {
	if a.resetting {
		return
	}
	if a.status == StatusIdle && a.empty() && !a.hasTimers() {
		return
	}
	a.resetting = true
	defer func() { a.resetting = false }()

	a.countdown.Cancel()
	a.timeLimit.Cancel()
	a.endTimer.Cancel()
	a.countdown, a.timeLimit, a.endTimer = nil, nil, nil
	for id, h := range a.respawns {
		h.Cancel()
		delete(a.respawns, id)
	}

	a.status = StatusIdle
	a.workflow.Reset(a, force)

	everyone := append(a.teamMembers(), a.Watchers()...)
	for _, p := range everyone {
		a.persist(p)
		a.sendOut(p, nil)
		a.repo.Remove(p.id)
	}
	for _, t := range a.teams {
		t.clear()
	}
	clear(a.watchers)
	clear(a.history)
	a.matchID = uuid.Nil
	a.startedAt = time.Time{}
	a.result = nil
	a.rewarded = false
	a.countdownLeft = 0

	a.log.Info("arena: reset", "arena", a.name, "force", force, "participants", len(everyone))
	a.emit(EventReset{Arena: a.name, Force: force})
	a.host.ScoreboardUpdate(a.name, nil)
}

func notice(err error) Message {
	return asError(err).Notice()
}

// asError converts any error into a rejection.
func asError(err error) *Error {
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return Wrap(CodeRejectedByModule, "rejected", err)
}
